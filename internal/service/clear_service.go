package service

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/focuslog/internal/db"
	"gorm.io/gorm"
)

// 当日完成率达到该阈值记为达标
const achievedPercentThreshold = 80

// ClearResult 汇总一次当日清算的产出
// Applied 为 false 表示命中了幂等重放，返回的是当时已记录的结果
type ClearResult struct {
	Percent     int
	GoalOutcome string
	NextDate    time.Time
	Applied     bool
}

// DailyClearService 编排"一天的收尾"：统计完成率、写达标标记、推进目标、前移活动日期
// 目标与专注时长两个模块互不感知，跨模块时序只在这里出现

type DailyClearService struct {
	db    *gorm.DB
	study *StudyTimeService
	goals *GoalService
}

// NewDailyClearService 构造 DailyClearService
func NewDailyClearService(gdb *gorm.DB, study *StudyTimeService, goals *GoalService) *DailyClearService {
	return &DailyClearService{db: gdb, study: study, goals: goals}
}

// ClearDay 对 (userID, date) 执行当日清算
// 达标标记、目标推进与清算流水在同一事务内落盘；同一天的重复调用
// 直接返回首次清算的结果，不会再次写入
func (s *DailyClearService) ClearDay(userID uint, date time.Time) (*ClearResult, error) {
	clearDate := normalizeToDate(date)
	result := &ClearResult{NextDate: clearDate.AddDate(0, 0, 1)}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var replay db.ClearRecord
		err := tx.Where("user_id = ? AND clear_date = ?", userID, clearDate).First(&replay).Error
		if err == nil {
			result.Percent = replay.Percent
			result.GoalOutcome = replay.GoalOutcome
			result.Applied = false
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check clear record: %w", err)
		}

		var total, done int64
		if err := tx.Model(&db.Todo{}).
			Where("user_id = ? AND todo_date = ?", userID, clearDate).
			Count(&total).Error; err != nil {
			return fmt.Errorf("count todos: %w", err)
		}
		if err := tx.Model(&db.Todo{}).
			Where("user_id = ? AND todo_date = ? AND status = ?", userID, clearDate, db.StatusDone).
			Count(&done).Error; err != nil {
			return fmt.Errorf("count done todos: %w", err)
		}

		percent := 0
		if total > 0 {
			percent = int(math.Round(float64(done) / float64(total) * 100))
		}

		if err := s.study.setAchieved(tx, userID, clearDate, percent >= achievedPercentThreshold); err != nil {
			return err
		}

		outcome, err := s.goals.onDailyClear(tx, userID, clearDate)
		if err != nil {
			return err
		}

		record := db.ClearRecord{
			UserID:      userID,
			ClearDate:   clearDate,
			Percent:     percent,
			GoalOutcome: outcome,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("record daily clear: %w", err)
		}

		result.Percent = percent
		result.GoalOutcome = outcome
		result.Applied = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

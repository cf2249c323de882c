package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/focuslog/internal/db"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrInvalidDelta 当会话增量不是正数时返回
	ErrInvalidDelta = errors.New("flush delta must be positive")
	// ErrInvalidSessionID 当会话 ID 不是合法 UUID 时返回
	ErrInvalidSessionID = errors.New("invalid session id")
	// ErrDuplicateFlush 当同一会话增量被重复提交时返回，此时不会产生任何累加
	ErrDuplicateFlush = errors.New("session delta already flushed")
)

// StudyTimeService 负责按天累计专注时长
// 存储层是纯累加器：只接收会话增量，从不接收累计总量，避免覆盖语义

type StudyTimeService struct {
	db *gorm.DB
}

// NewStudyTimeService 构造 StudyTimeService
func NewStudyTimeService(gdb *gorm.DB) *StudyTimeService {
	return &StudyTimeService{db: gdb}
}

// TodayTotal 返回指定日期已累计的专注秒数
// 无记录返回 (0, nil)；查询失败返回错误而不是默认 0，两种情况必须可区分
func (s *StudyTimeService) TodayTotal(userID uint, date time.Time) (int64, error) {
	var day db.StudyDay
	err := s.db.Where("user_id = ? AND study_date = ?", userID, normalizeToDate(date)).First(&day).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("load study day: %w", err)
	}
	return day.StudySeconds, nil
}

// Flush 把一段会话增量累加到当日总量，行不存在时懒创建
// sessionID 在流水表上有唯一索引：同一段时长重复提交会拿到 ErrDuplicateFlush，
// 总量保持不变，调用方可以放心重试
func (s *StudyTimeService) Flush(userID uint, date time.Time, sessionID string, deltaSeconds int64) (*db.StudyDay, error) {
	if deltaSeconds <= 0 {
		return nil, ErrInvalidDelta
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSessionID, sessionID)
	}

	studyDate := normalizeToDate(date)
	var day db.StudyDay

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var seen db.SessionFlush
		if err := tx.Where("session_id = ?", sessionID).First(&seen).Error; err == nil {
			return ErrDuplicateFlush
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check session flush: %w", err)
		}

		record := db.SessionFlush{
			SessionID:    sessionID,
			UserID:       userID,
			StudyDate:    studyDate,
			DeltaSeconds: deltaSeconds,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("record session flush: %w", err)
		}

		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "study_date"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"study_seconds": gorm.Expr("study_seconds + ?", deltaSeconds),
				"updated_at":    time.Now(),
			}),
		}).Create(&db.StudyDay{
			UserID:       userID,
			StudyDate:    studyDate,
			StudySeconds: deltaSeconds,
		}).Error; err != nil {
			return fmt.Errorf("accumulate study seconds: %w", err)
		}

		if err := tx.Where("user_id = ? AND study_date = ?", userID, studyDate).First(&day).Error; err != nil {
			return fmt.Errorf("reload study day: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &day, nil
}

// SetAchieved 独立写入当日达标标记，不触碰 StudySeconds
func (s *StudyTimeService) SetAchieved(userID uint, date time.Time, achieved bool) error {
	return s.setAchieved(s.db, userID, date, achieved)
}

// setAchieved 供清算事务复用的内部实现
func (s *StudyTimeService) setAchieved(tx *gorm.DB, userID uint, date time.Time, achieved bool) error {
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "study_date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"goal_achieved": achieved,
			"updated_at":    time.Now(),
		}),
	}).Create(&db.StudyDay{
		UserID:       userID,
		StudyDate:    normalizeToDate(date),
		GoalAchieved: achieved,
	}).Error; err != nil {
		return fmt.Errorf("set goal achieved: %w", err)
	}
	return nil
}

// Range 返回日期区间内的专注记录，供统计接口使用
func (s *StudyTimeService) Range(userID uint, from, to time.Time) ([]db.StudyDay, error) {
	var days []db.StudyDay

	if err := s.db.Where("user_id = ?", userID).
		Where("study_date BETWEEN ? AND ?", normalizeToDate(from), normalizeToDate(to)).
		Order("study_date ASC").
		Find(&days).Error; err != nil {
		return nil, fmt.Errorf("list study days: %w", err)
	}

	return days, nil
}

package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/focuslog/internal/db"
	"gorm.io/gorm"
)

var (
	// ErrGoalNotFound 在指定目标不存在时返回
	ErrGoalNotFound = errors.New("goal not found")
	// ErrNoOngoingGoal 当用户没有进行中的目标时返回
	ErrNoOngoingGoal = errors.New("no ongoing goal")
	// ErrGoalAlreadyOngoing 当用户已有进行中的目标时返回，已有目标保持不变
	ErrGoalAlreadyOngoing = errors.New("an ongoing goal already exists")
	// ErrInvalidGoalDays 当目标天数不是正整数时返回
	ErrInvalidGoalDays = errors.New("goal days must be a positive integer")
	// ErrEmptyGoalTitle 当目标名称为空时返回
	ErrEmptyGoalTitle = errors.New("goal title is required")
	// ErrGoalStillOngoing 当对进行中的目标写复盘时返回
	ErrGoalStillOngoing = errors.New("goal is still ongoing")
)

// GoalService 负责目标模式的生命周期
// D-Day 只有一个权威来源：EndDate 与活动日期的差值，不另存递减计数器
// 倒计时的"减一"由清算后活动日期前进一天自然实现，两套视图不会漂移

type GoalService struct {
	db *gorm.DB
}

// NewGoalService 构造 GoalService
func NewGoalService(gdb *gorm.DB) *GoalService {
	return &GoalService{db: gdb}
}

// DaysUntil 推导目标在 asOf 当天的剩余天数，到期日当天为 0
func DaysUntil(endDate, asOf time.Time) int {
	return daysUntil(endDate, asOf)
}

// Create 进入目标模式：从 asOf 起倒数 totalDays 天
// 同一用户至多一条 ongoing 记录，检查与插入在同一事务内完成
func (s *GoalService) Create(userID uint, title string, totalDays int, asOf time.Time) (*db.Goal, error) {
	cleaned := strings.TrimSpace(contentSanitizer.Sanitize(title))
	if cleaned == "" {
		return nil, ErrEmptyGoalTitle
	}
	if totalDays <= 0 {
		return nil, ErrInvalidGoalDays
	}

	start := normalizeToDate(asOf)
	goal := db.Goal{
		UserID:    userID,
		Title:     cleaned,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, totalDays),
		Status:    db.GoalOngoing,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing db.Goal
		err := tx.Where("user_id = ? AND status = ?", userID, db.GoalOngoing).First(&existing).Error
		if err == nil {
			return ErrGoalAlreadyOngoing
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("check ongoing goal: %w", err)
		}

		if err := tx.Create(&goal).Error; err != nil {
			return fmt.Errorf("create goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &goal, nil
}

// Ongoing 返回用户当前进行中的目标
func (s *GoalService) Ongoing(userID uint) (*db.Goal, error) {
	var goal db.Goal
	if err := s.db.Where("user_id = ? AND status = ?", userID, db.GoalOngoing).First(&goal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOngoingGoal
		}
		return nil, fmt.Errorf("load ongoing goal: %w", err)
	}
	return &goal, nil
}

// onDailyClear 在清算事务内推进目标：到期日当天的清算把目标收官为 success，
// 其余情况行保持不变，剩余天数的减少由活动日期前进体现
// 返回本次清算产生的终态（"" 或 success）
func (s *GoalService) onDailyClear(tx *gorm.DB, userID uint, asOf time.Time) (string, error) {
	var goal db.Goal
	err := tx.Where("user_id = ? AND status = ?", userID, db.GoalOngoing).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("load ongoing goal: %w", err)
	}

	if daysUntil(goal.EndDate, asOf) > 0 {
		return "", nil
	}

	goal.Status = db.GoalSuccess
	if err := tx.Save(&goal).Error; err != nil {
		return "", fmt.Errorf("complete goal: %w", err)
	}
	return db.GoalSuccess, nil
}

// Abandon 用户主动结束目标模式
// 剩余天数大于 0 视为放弃（fail）；到期日当天主动结束与自然完成同等对待，记为 success。
// 这一不对称是源自产品的既定行为，不要"修复"
func (s *GoalService) Abandon(userID uint, asOf time.Time) (*db.Goal, error) {
	var goal db.Goal

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND status = ?", userID, db.GoalOngoing).First(&goal).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoOngoingGoal
			}
			return fmt.Errorf("load ongoing goal: %w", err)
		}

		if daysUntil(goal.EndDate, asOf) > 0 {
			goal.Status = db.GoalFail
		} else {
			goal.Status = db.GoalSuccess
		}

		if err := tx.Save(&goal).Error; err != nil {
			return fmt.Errorf("abandon goal: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &goal, nil
}

// SetRetrospective 为已结束的目标补写 Markdown 复盘
func (s *GoalService) SetRetrospective(goalID uint, markdown string) (*db.Goal, error) {
	var goal db.Goal
	if err := s.db.First(&goal, goalID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGoalNotFound
		}
		return nil, fmt.Errorf("find goal: %w", err)
	}

	if goal.Status == db.GoalOngoing {
		return nil, ErrGoalStillOngoing
	}

	goal.Retrospective = strings.TrimSpace(markdown)
	if err := s.db.Save(&goal).Error; err != nil {
		return nil, fmt.Errorf("save retrospective: %w", err)
	}
	return &goal, nil
}

// History 返回用户全部目标，最新创建的在前
func (s *GoalService) History(userID uint) ([]db.Goal, error) {
	var goals []db.Goal
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

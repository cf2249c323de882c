package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/focuslog/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

var (
	// ErrTodoNotFound 在指定待办不存在时返回
	ErrTodoNotFound = errors.New("todo not found")
	// ErrEmptyContent 当待办内容为空时返回
	ErrEmptyContent = errors.New("todo content is required")
	// ErrInvalidStatus 当状态不在枚举范围内时返回
	ErrInvalidStatus = errors.New("invalid todo status")
	// ErrInvalidCategory 当分类不在枚举范围内时返回
	ErrInvalidCategory = errors.New("invalid todo category")
)

// 待办内容按纯文本处理，剥掉一切标签
var contentSanitizer = bluemonday.StrictPolicy()

// TodoService 负责待办的增删改查与跨日移动
// 不校验状态迁移图：任意状态可以迁移到任意状态，重复设置同一状态是观察等价的空操作

type TodoService struct {
	db *gorm.DB
}

// TodoUpdate 描述一次部分更新，nil 字段保持原值
type TodoUpdate struct {
	Status   *string
	Category *string
}

// NewTodoService 构造 TodoService
func NewTodoService(gdb *gorm.DB) *TodoService {
	return &TodoService{db: gdb}
}

// List 返回指定用户指定日期的待办快照，按创建顺序排列
func (s *TodoService) List(userID uint, date time.Time) ([]db.Todo, error) {
	var todos []db.Todo

	if err := s.db.Where("user_id = ? AND todo_date = ?", userID, normalizeToDate(date)).
		Order("id ASC").
		Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}

	return todos, nil
}

// Add 新建待办。category 为空时走关键词自动分类
func (s *TodoService) Add(userID uint, content string, date time.Time, category string) (*db.Todo, error) {
	cleaned := strings.TrimSpace(contentSanitizer.Sanitize(content))
	if cleaned == "" {
		return nil, ErrEmptyContent
	}

	finalCategory := strings.TrimSpace(strings.ToLower(category))
	if finalCategory == "" {
		finalCategory = DetectCategory(cleaned)
	} else if !validCategory(finalCategory) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, category)
	}

	todo := db.Todo{
		UserID:   userID,
		Content:  cleaned,
		Category: finalCategory,
		Status:   db.StatusNone,
		TodoDate: normalizeToDate(date),
	}

	if err := s.db.Create(&todo).Error; err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return &todo, nil
}

// Get 根据 ID 获取待办
func (s *TodoService) Get(id uint) (*db.Todo, error) {
	var todo db.Todo
	if err := s.db.First(&todo, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return &todo, nil
}

// Update 局部更新状态/分类，目标不存在时返回 ErrTodoNotFound
func (s *TodoService) Update(id uint, update TodoUpdate) (*db.Todo, error) {
	if update.Status != nil && !validStatus(*update.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *update.Status)
	}
	if update.Category != nil && !validCategory(*update.Category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, *update.Category)
	}

	var existing db.Todo
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}

	if update.Status != nil {
		existing.Status = *update.Status
	}
	if update.Category != nil {
		existing.Category = *update.Category
	}

	if err := s.db.Save(&existing).Error; err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return &existing, nil
}

// Delete 删除待办，目标不存在时返回 ErrTodoNotFound
func (s *TodoService) Delete(id uint) error {
	result := s.db.Delete(&db.Todo{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete todo: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// Move 把待办挪到目标日期：同一事务内先建副本再删原件，不会出现只剩一半的中间态
// 副本沿用内容和分类，状态重置为 none
func (s *TodoService) Move(id uint, targetDate time.Time) (*db.Todo, error) {
	var moved db.Todo

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var original db.Todo
		if err := tx.First(&original, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTodoNotFound
			}
			return fmt.Errorf("find todo: %w", err)
		}

		moved = db.Todo{
			UserID:   original.UserID,
			Content:  original.Content,
			Category: original.Category,
			Status:   db.StatusNone,
			TodoDate: normalizeToDate(targetDate),
		}
		if err := tx.Create(&moved).Error; err != nil {
			return fmt.Errorf("create moved todo: %w", err)
		}

		if err := tx.Delete(&db.Todo{}, original.ID).Error; err != nil {
			return fmt.Errorf("delete original todo: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &moved, nil
}

func validStatus(status string) bool {
	switch status {
	case db.StatusNone, db.StatusDone, db.StatusFail, db.StatusDeferred:
		return true
	}
	return false
}

func validCategory(category string) bool {
	switch category {
	case db.CategoryStudy, db.CategoryExercise, db.CategoryMeal, db.CategoryRest, db.CategoryOther:
		return true
	}
	return false
}

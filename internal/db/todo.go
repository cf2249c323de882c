package db

import (
	"time"

	"gorm.io/gorm"
)

// 待办分类，由关键词自动识别或用户手动指定
const (
	CategoryStudy    = "study"
	CategoryExercise = "exercise"
	CategoryMeal     = "meal"
	CategoryRest     = "rest"
	CategoryOther    = "other"
)

// 待办状态。deferred（三角标记）表示"未完成也未失败，之后再看"，不附带任何自动行为
const (
	StatusNone     = "none"
	StatusDone     = "done"
	StatusFail     = "fail"
	StatusDeferred = "deferred"
)

// Todo 定义了单条待办模型
// UserID + TodoDate 组合索引支撑按天列表查询
// TodoDate 统一归一化到当天零点，创建后仅能通过 move 改变
type Todo struct {
	gorm.Model
	UserID   uint      `gorm:"index;index:idx_todo_user_date"`
	Content  string    `gorm:"not null"`
	Category string    `gorm:"not null;default:other"`
	Status   string    `gorm:"not null;default:none"`
	TodoDate time.Time `gorm:"index:idx_todo_user_date"`
}

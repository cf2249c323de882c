package db

import (
	"time"

	"gorm.io/gorm"
)

// 目标状态，进入终态后行记录只读保留，不再删除
const (
	GoalOngoing = "ongoing"
	GoalSuccess = "success"
	GoalFail    = "fail"
)

// Goal 定义了目标模式的倒计时模型
// 每个用户同一时刻至多一条 ongoing 记录，由服务层在事务内保证
// D-Day 不单独存储，统一由 EndDate 与当前活动日期推导
// Retrospective 为目标结束后的 Markdown 复盘，可为空
type Goal struct {
	gorm.Model
	UserID        uint `gorm:"index"`
	Title         string
	Retrospective string
	StartDate     time.Time
	EndDate       time.Time
	Status        string `gorm:"not null;default:ongoing"`
}

// ClearRecord 记录每次"当日清算"的结果
// UserID + ClearDate 唯一索引使整个清算操作可幂等重放
// GoalOutcome 为空串或 success，重放时原样返回当时的结果
type ClearRecord struct {
	gorm.Model
	UserID      uint      `gorm:"index:idx_clear_unique,unique"`
	ClearDate   time.Time `gorm:"index:idx_clear_unique,unique"`
	Percent     int
	GoalOutcome string
}

// TableName 重写确保唯一索引作用到 user_id + clear_date
func (ClearRecord) TableName() string {
	return "clear_records"
}

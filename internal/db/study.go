package db

import (
	"time"

	"gorm.io/gorm"
)

// StudyDay 记录单用户单日的累计专注时长与当日达标标记
// UserID + StudyDate 采用唯一索引，首次写入时懒创建
// StudySeconds 只会通过会话增量累加，单日内单调不减
type StudyDay struct {
	gorm.Model
	UserID       uint      `gorm:"index:idx_study_day_unique,unique"`
	StudyDate    time.Time `gorm:"index:idx_study_day_unique,unique"`
	StudySeconds int64     `gorm:"not null;default:0"`
	GoalAchieved bool      `gorm:"not null;default:false"`
}

// TableName 重写确保唯一索引作用到 user_id + study_date
func (StudyDay) TableName() string {
	return "study_days"
}

// SessionFlush 是计时会话增量的落账流水
// SessionID 唯一索引保证同一段会话时长不会被重复累加
type SessionFlush struct {
	gorm.Model
	SessionID    string    `gorm:"uniqueIndex;not null"`
	UserID       uint      `gorm:"index"`
	StudyDate    time.Time
	DeltaSeconds int64
}

package handler

import (
	"github.com/focuslog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db     *gorm.DB
	todos  *service.TodoService
	study  *service.StudyTimeService
	goals  *service.GoalService
	clears *service.DailyClearService
	stats  *service.StatsService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB) *API {
	study := service.NewStudyTimeService(gdb)
	goals := service.NewGoalService(gdb)

	return &API{
		db:     gdb,
		todos:  service.NewTodoService(gdb),
		study:  study,
		goals:  goals,
		clears: service.NewDailyClearService(gdb, study, goals),
		stats:  service.NewStatsService(gdb, study),
	}
}

// DB exposes the underlying gorm instance for bootstrap paths.
func (a *API) DB() *gorm.DB {
	return a.db
}

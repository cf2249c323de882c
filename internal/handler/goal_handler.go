package handler

import (
	"errors"
	"net/http"

	"github.com/focuslog/internal/db"
	"github.com/focuslog/internal/service"
	"github.com/gin-gonic/gin"
)

func goalToPayload(goal db.Goal, dDay int) gin.H {
	return gin.H{
		"id":         goal.ID,
		"title":      goal.Title,
		"start_date": goal.StartDate.Format(dateFormat),
		"end_date":   goal.EndDate.Format(dateFormat),
		"status":     goal.Status,
		"d_day":      dDay,
	}
}

func handleGoalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrGoalNotFound), errors.Is(err, service.ErrNoOngoingGoal):
		respondError(c, http.StatusNotFound, "目标不存在")
	case errors.Is(err, service.ErrGoalAlreadyOngoing):
		respondError(c, http.StatusConflict, "已有进行中的目标")
	case errors.Is(err, service.ErrEmptyGoalTitle):
		respondError(c, http.StatusBadRequest, "请输入目标名称")
	case errors.Is(err, service.ErrInvalidGoalDays):
		respondError(c, http.StatusBadRequest, "目标天数必须是正整数")
	case errors.Is(err, service.ErrGoalStillOngoing):
		respondError(c, http.StatusConflict, "目标尚未结束")
	default:
		respondError(c, http.StatusInternalServerError, "目标操作失败")
	}
}

// GetOngoingGoal 返回进行中的目标及其按活动日期推导的 D-Day
func (a *API) GetOngoingGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	goal, err := a.goals.Ongoing(userID)
	if err != nil {
		handleGoalError(c, err)
		return
	}

	dDay := service.DaysUntil(goal.EndDate, activeDate(c))
	c.JSON(http.StatusOK, gin.H{"goal": goalToPayload(*goal, dDay)})
}

// CreateGoal 进入目标模式
func (a *API) CreateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	var payload struct {
		Title     string `json:"title"`
		TotalDays int    `json:"total_days"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	asOf := activeDate(c)
	goal, err := a.goals.Create(userID, payload.Title, payload.TotalDays, asOf)
	if err != nil {
		handleGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goalToPayload(*goal, service.DaysUntil(goal.EndDate, asOf))})
}

// AbandonGoal 主动结束目标模式
// 到期日当天主动结束与自然完成记为同一种结果
func (a *API) AbandonGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	goal, err := a.goals.Abandon(userID, activeDate(c))
	if err != nil {
		handleGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goalToPayload(*goal, 0)})
}

// SetGoalRetrospective 为已结束的目标写复盘
func (a *API) SetGoalRetrospective(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的目标ID")
		return
	}

	var payload struct {
		Retrospective string `json:"retrospective"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	goal, err := a.goals.SetRetrospective(id, payload.Retrospective)
	if err != nil {
		handleGoalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goalToPayload(*goal, 0)})
}

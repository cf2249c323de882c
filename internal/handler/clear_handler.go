package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ClearDay 执行"一天的收尾"：统计完成率、写达标标记、推进目标，并把会话的活动日期前移一天
// 同一天重复调用命中幂等重放，返回首次清算的结果
func (a *API) ClearDay(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	date := activeDate(c)
	result, err := a.clears.ClearDay(userID, date)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "当日清算失败")
		return
	}

	if err := setActiveDate(c, result.NextDate); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"percent":      result.Percent,
		"goal_outcome": result.GoalOutcome,
		"next_date":    result.NextDate.Format(dateFormat),
		"applied":      result.Applied,
	})
}

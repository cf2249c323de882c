package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetDailyStats 返回最近 N 天的专注时长与达标记录
func (a *API) GetDailyStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	stats, err := a.stats.Daily(userID, parseDaysQuery(c), time.Now().In(time.Local))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取统计数据失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetCategoryStats 返回最近 N 天已完成待办的分类分布
func (a *API) GetCategoryStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	stats, err := a.stats.Categories(userID, parseDaysQuery(c), time.Now().In(time.Local))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取分类统计失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": stats})
}

// GetGoalHistory 返回目标历史，附带渲染后的复盘 HTML
func (a *API) GetGoalHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	history, err := a.stats.GoalHistory(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取目标历史失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": history})
}

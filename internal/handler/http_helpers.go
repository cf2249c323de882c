package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const dateFormat = "2006-01-02"

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

func parseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(dateFormat, raw, time.Local)
}

// parseDateQuery 解析日期类查询参数，空值回退到 fallback
func parseDateQuery(c *gin.Context, key string, fallback time.Time) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	return time.ParseInLocation(dateFormat, raw, time.Local)
}

// parseDaysQuery 解析统计窗口天数，缺省 7 天
func parseDaysQuery(c *gin.Context) int {
	raw := c.DefaultQuery("days", "7")
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return 7
	}
	return days
}

package handler

import (
	"errors"
	"net/http"

	"github.com/focuslog/internal/service"
	"github.com/gin-gonic/gin"
)

// GetTodayStudy 返回指定日期（缺省活动日期）已累计的专注秒数
func (a *API) GetTodayStudy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	date, err := parseDateQuery(c, "date", activeDate(c))
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的日期")
		return
	}

	total, err := a.study.TodayTotal(userID, date)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取专注时长失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"total_seconds": total, "date": date.Format(dateFormat)})
}

// FlushStudy 落账一段计时会话增量
// 同一 session_id 的重复提交不会二次累加，返回 409 提示
func (a *API) FlushStudy(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	var payload struct {
		SessionID    string `json:"session_id"`
		DeltaSeconds int64  `json:"delta_seconds"`
		StudyDate    string `json:"study_date"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	date := activeDate(c)
	if payload.StudyDate != "" {
		parsed, err := parseDate(payload.StudyDate)
		if err != nil {
			respondError(c, http.StatusBadRequest, "无效的日期")
			return
		}
		date = parsed
	}

	day, err := a.study.Flush(userID, date, payload.SessionID, payload.DeltaSeconds)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDelta):
			respondError(c, http.StatusBadRequest, "无效的时长增量")
		case errors.Is(err, service.ErrInvalidSessionID):
			respondError(c, http.StatusBadRequest, "无效的会话ID")
		case errors.Is(err, service.ErrDuplicateFlush):
			respondError(c, http.StatusConflict, "该会话时长已保存")
		default:
			respondError(c, http.StatusInternalServerError, "保存专注时长失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_seconds": day.StudySeconds,
		"date":          day.StudyDate.Format(dateFormat),
	})
}

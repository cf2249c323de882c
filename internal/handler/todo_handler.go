package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/focuslog/internal/db"
	"github.com/focuslog/internal/service"
	"github.com/gin-gonic/gin"
)

func todoToPayload(todo db.Todo) gin.H {
	return gin.H{
		"id":        todo.ID,
		"content":   todo.Content,
		"category":  todo.Category,
		"status":    todo.Status,
		"todo_date": todo.TodoDate.Format(dateFormat),
	}
}

func handleTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTodoNotFound):
		respondError(c, http.StatusNotFound, "待办不存在")
	case errors.Is(err, service.ErrEmptyContent):
		respondError(c, http.StatusBadRequest, "请输入待办内容")
	case errors.Is(err, service.ErrInvalidStatus):
		respondError(c, http.StatusBadRequest, "无效的待办状态")
	case errors.Is(err, service.ErrInvalidCategory):
		respondError(c, http.StatusBadRequest, "无效的待办分类")
	default:
		respondError(c, http.StatusInternalServerError, "待办操作失败")
	}
}

// ListTodos 返回指定日期的待办列表，缺省为会话的活动日期
func (a *API) ListTodos(c *gin.Context) {
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

	todos, err := a.todos.List(userID, date)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取待办列表失败")
		return
	}

	items := make([]gin.H, 0, len(todos))
	for _, todo := range todos {
		items = append(items, todoToPayload(todo))
	}

	c.JSON(http.StatusOK, gin.H{"todos": items, "date": date.Format(dateFormat)})
}

// CreateTodo 新建待办，分类缺省时由服务端自动识别
func (a *API) CreateTodo(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "请先登录")
		return
	}

	var payload struct {
		Content  string `json:"content"`
		Category string `json:"category"`
		TodoDate string `json:"todo_date"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	date := activeDate(c)
	if payload.TodoDate != "" {
		parsed, err := time.ParseInLocation(dateFormat, payload.TodoDate, time.Local)
		if err != nil {
			respondError(c, http.StatusBadRequest, "无效的日期")
			return
		}
		date = parsed
	}

	todo, err := a.todos.Add(userID, payload.Content, date, payload.Category)
	if err != nil {
		handleTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": todoToPayload(*todo)})
}

// UpdateTodo 局部更新状态/分类，未携带的字段保持不变
func (a *API) UpdateTodo(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的待办ID")
		return
	}

	var payload struct {
		Status   *string `json:"status"`
		Category *string `json:"category"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	todo, err := a.todos.Update(id, service.TodoUpdate{
		Status:   payload.Status,
		Category: payload.Category,
	})
	if err != nil {
		handleTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": todoToPayload(*todo)})
}

// DeleteTodo 删除待办
func (a *API) DeleteTodo(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的待办ID")
		return
	}

	if err := a.todos.Delete(id); err != nil {
		handleTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// MoveTodo 把待办挪到目标日期，缺省挪到次日（"明日再说"）
func (a *API) MoveTodo(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的待办ID")
		return
	}

	var payload struct {
		TargetDate string `json:"target_date"`
	}
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	target := activeDate(c).AddDate(0, 0, 1)
	if payload.TargetDate != "" {
		parsed, err := time.ParseInLocation(dateFormat, payload.TargetDate, time.Local)
		if err != nil {
			respondError(c, http.StatusBadRequest, "无效的日期")
			return
		}
		target = parsed
	}

	moved, err := a.todos.Move(id, target)
	if err != nil {
		handleTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"todo": todoToPayload(*moved)})
}

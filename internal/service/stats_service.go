package service

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/focuslog/internal/db"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	"gorm.io/gorm"
)

var (
	retroMarkdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	retroSanitizer = bluemonday.UGCPolicy()
)

// DailyStat 是统计页单日数据：分钟数四舍五入，achieved 来自清算写入的标记
type DailyStat struct {
	Date     string `json:"date"`
	Minutes  int    `json:"minutes"`
	Achieved bool   `json:"achieved"`
}

// CategoryStat 统计窗口期内各分类的已完成待办数量
type CategoryStat struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// GoalHistoryEntry 是目标历史的展示模型
// 已结束且写过复盘的目标附带渲染后的 HTML
type GoalHistoryEntry struct {
	ID                uint   `json:"id"`
	Title             string `json:"title"`
	StartDate         string `json:"start_date"`
	EndDate           string `json:"end_date"`
	Status            string `json:"status"`
	Retrospective     string `json:"retrospective,omitempty"`
	RetrospectiveHTML string `json:"retrospective_html,omitempty"`
}

// StatsService 聚合统计页所需的只读数据

type StatsService struct {
	db    *gorm.DB
	study *StudyTimeService
}

// NewStatsService 构造 StatsService
func NewStatsService(gdb *gorm.DB, study *StudyTimeService) *StatsService {
	return &StatsService{db: gdb, study: study}
}

// Daily 返回截至 today 往前 days 天内的专注记录
func (s *StatsService) Daily(userID uint, days int, today time.Time) ([]DailyStat, error) {
	if days <= 0 {
		days = 7
	}

	end := normalizeToDate(today)
	start := end.AddDate(0, 0, -(days - 1))

	rows, err := s.study.Range(userID, start, end)
	if err != nil {
		return nil, err
	}

	stats := make([]DailyStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, DailyStat{
			Date:     row.StudyDate.Format("2006-01-02"),
			Minutes:  int(math.Round(float64(row.StudySeconds) / 60)),
			Achieved: row.GoalAchieved,
		})
	}

	return stats, nil
}

// Categories 返回窗口期内已完成待办的分类分布
func (s *StatsService) Categories(userID uint, days int, today time.Time) ([]CategoryStat, error) {
	if days <= 0 {
		days = 7
	}

	end := normalizeToDate(today)
	start := end.AddDate(0, 0, -(days - 1))

	var rows []CategoryStat
	if err := s.db.Model(&db.Todo{}).
		Select("category, COUNT(*) as count").
		Where("user_id = ? AND status = ?", userID, db.StatusDone).
		Where("todo_date BETWEEN ? AND ?", start, end).
		Group("category").
		Order("count DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list category stats: %w", err)
	}

	return rows, nil
}

// GoalHistory 返回用户全部目标，最新创建的在前
func (s *StatsService) GoalHistory(userID uint) ([]GoalHistoryEntry, error) {
	var goals []db.Goal
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list goal history: %w", err)
	}

	entries := make([]GoalHistoryEntry, 0, len(goals))
	for _, goal := range goals {
		entry := GoalHistoryEntry{
			ID:            goal.ID,
			Title:         goal.Title,
			StartDate:     goal.StartDate.Format("2006-01-02"),
			EndDate:       goal.EndDate.Format("2006-01-02"),
			Status:        goal.Status,
			Retrospective: goal.Retrospective,
		}
		if goal.Status != db.GoalOngoing && goal.Retrospective != "" {
			rendered, err := renderRetrospective(goal.Retrospective)
			if err != nil {
				return nil, err
			}
			entry.RetrospectiveHTML = rendered
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func renderRetrospective(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := retroMarkdown.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("render retrospective: %w", err)
	}
	return retroSanitizer.Sanitize(buf.String()), nil
}

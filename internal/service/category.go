package service

import (
	"regexp"
	"strings"

	"github.com/focuslog/internal/db"
)

// 关键词分组按声明顺序匹配，第一个命中的分组胜出
// 韩文与英文关键词并存，来自真实用户的输入习惯
var categoryRules = []struct {
	category string
	pattern  *regexp.Regexp
}{
	{db.CategoryStudy, regexp.MustCompile(`공부|수학|영어|코딩|과제|시험|독서|강의|study|read|learn`)},
	{db.CategoryExercise, regexp.MustCompile(`운동|헬스|산책|걷기|요가|수영|gym|run|walk`)},
	{db.CategoryMeal, regexp.MustCompile(`밥|식사|점심|저녁|아침|간식|물|meal|food|eat`)},
	{db.CategoryRest, regexp.MustCompile(`휴식|잠|낮잠|멍|넷플릭스|게임|rest|sleep`)},
}

// DetectCategory 根据待办内容自动识别分类
// 对任意输入都是全函数：无命中时固定返回 other
func DetectCategory(content string) string {
	text := strings.ToLower(strings.TrimSpace(content))
	if text == "" {
		return db.CategoryOther
	}

	for _, rule := range categoryRules {
		if rule.pattern.MatchString(text) {
			return rule.category
		}
	}
	return db.CategoryOther
}

package service

import "time"

// normalizeToDate 将时间归一化到所在时区的当天零点
func normalizeToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysUntil 计算 asOf 距离 end 还剩多少个自然日，钳制到 0
// 按日历日计数：两端重新锚定到 UTC 零点再相除，
// 夏令时切换产生的 23/25 小时天不会影响结果
func daysUntil(end, asOf time.Time) int {
	e := normalizeToDate(end)
	a := normalizeToDate(asOf)

	eu := time.Date(e.Year(), e.Month(), e.Day(), 0, 0, 0, 0, time.UTC)
	au := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)

	days := int(eu.Sub(au) / (24 * time.Hour))
	if days < 0 {
		return 0
	}
	return days
}

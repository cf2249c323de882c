package service

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/focuslog/internal/db"
)

func TestDaysUntil(t *testing.T) {
	asOf := testDate(t, "2025-06-02")

	cases := []struct {
		end  string
		want int
	}{
		{"2025-06-05", 3},
		{"2025-06-03", 1},
		{"2025-06-02", 0},
		// 过了截止日只会钳制到 0，不出现负数
		{"2025-05-30", 0},
	}

	for _, tc := range cases {
		if got := DaysUntil(testDate(t, tc.end), asOf); got != tc.want {
			t.Errorf("DaysUntil(%s, 2025-06-02) = %d, want %d", tc.end, got, tc.want)
		}
	}
}

// 夏令时切换当周存在 23/25 小时的自然日，计数只看日历日
func TestDaysUntilAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}

	// 2025-11-02 回拨一小时，2025-11-01 到 11-04 实际时长为 73 小时
	fallBack := time.Date(2025, 11, 1, 0, 0, 0, 0, loc)
	if got := DaysUntil(fallBack.AddDate(0, 0, 3), fallBack); got != 3 {
		t.Errorf("DaysUntil across fall-back = %d, want 3", got)
	}

	// 2025-03-09 拨快一小时，3 天只有 71 小时
	springForward := time.Date(2025, 3, 8, 0, 0, 0, 0, loc)
	if got := DaysUntil(springForward.AddDate(0, 0, 3), springForward); got != 3 {
		t.Errorf("DaysUntil across spring-forward = %d, want 3", got)
	}
}

func TestGoalCreateValidation(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewGoalService(db.DB)
	asOf := testDate(t, "2025-06-02")

	if _, err := svc.Create(1, "   ", 30, asOf); !errors.Is(err, ErrEmptyGoalTitle) {
		t.Fatalf("expected ErrEmptyGoalTitle, got %v", err)
	}
	if _, err := svc.Create(1, "수능 D-30", 0, asOf); !errors.Is(err, ErrInvalidGoalDays) {
		t.Fatalf("expected ErrInvalidGoalDays, got %v", err)
	}
	if _, err := svc.Create(1, "수능 D-30", -5, asOf); !errors.Is(err, ErrInvalidGoalDays) {
		t.Fatalf("expected ErrInvalidGoalDays, got %v", err)
	}
}

func TestGoalCreateAndOngoing(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewGoalService(db.DB)
	asOf := testDate(t, "2025-06-02")

	goal, err := svc.Create(1, "기말고사 대비", 30, asOf)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if got := DaysUntil(goal.EndDate, asOf); got != 30 {
		t.Fatalf("expected initial d-day 30, got %d", got)
	}
	if goal.Status != db.GoalOngoing {
		t.Fatalf("expected status ongoing, got %s", goal.Status)
	}

	// 已有进行中的目标时再次创建被拒绝，原目标保持不变
	if _, err := svc.Create(1, "another goal", 7, asOf); !errors.Is(err, ErrGoalAlreadyOngoing) {
		t.Fatalf("expected ErrGoalAlreadyOngoing, got %v", err)
	}

	ongoing, err := svc.Ongoing(1)
	if err != nil {
		t.Fatalf("Ongoing returned error: %v", err)
	}
	if ongoing.ID != goal.ID || ongoing.Title != "기말고사 대비" {
		t.Fatalf("expected original goal unchanged, got %+v", ongoing)
	}

	// 目标按用户隔离
	if _, err := svc.Create(2, "user two goal", 7, asOf); err != nil {
		t.Fatalf("Create for another user returned error: %v", err)
	}
}

func TestGoalAbandonAsymmetry(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewGoalService(db.DB)
	asOf := testDate(t, "2025-06-02")

	// 剩余 2 天时放弃记为 fail
	if _, err := svc.Create(1, "포기할 목표", 2, asOf); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	goal, err := svc.Abandon(1, asOf)
	if err != nil {
		t.Fatalf("Abandon returned error: %v", err)
	}
	if goal.Status != db.GoalFail {
		t.Fatalf("expected fail, got %s", goal.Status)
	}

	// 到期日当天主动结束与自然完成同等对待，记为 success
	if _, err := svc.Create(1, "D-Day 목표", 1, asOf); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	goal, err = svc.Abandon(1, asOf.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Abandon returned error: %v", err)
	}
	if goal.Status != db.GoalSuccess {
		t.Fatalf("expected success at d-day 0, got %s", goal.Status)
	}

	// 没有进行中的目标时放弃报错
	if _, err := svc.Abandon(1, asOf); !errors.Is(err, ErrNoOngoingGoal) {
		t.Fatalf("expected ErrNoOngoingGoal, got %v", err)
	}
}

func TestGoalRetrospective(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewGoalService(db.DB)
	asOf := testDate(t, "2025-06-02")

	goal, err := svc.Create(1, "복기할 목표", 3, asOf)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// 进行中的目标不能写复盘
	if _, err := svc.SetRetrospective(goal.ID, "too early"); !errors.Is(err, ErrGoalStillOngoing) {
		t.Fatalf("expected ErrGoalStillOngoing, got %v", err)
	}

	if _, err := svc.Abandon(1, asOf); err != nil {
		t.Fatalf("Abandon returned error: %v", err)
	}

	updated, err := svc.SetRetrospective(goal.ID, "## 复盘\n前两天节奏太松")
	if err != nil {
		t.Fatalf("SetRetrospective returned error: %v", err)
	}
	if updated.Retrospective == "" {
		t.Fatal("expected retrospective to be saved")
	}

	if _, err := svc.SetRetrospective(9999, "x"); !errors.Is(err, ErrGoalNotFound) {
		t.Fatalf("expected ErrGoalNotFound, got %v", err)
	}
}

func TestGoalHistoryOrder(t *testing.T) {
	cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewGoalService(db.DB)
	asOf := testDate(t, "2025-06-02")

	if _, err := svc.Create(1, "첫 목표", 1, asOf); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := svc.Abandon(1, asOf); err != nil {
		t.Fatalf("Abandon returned error: %v", err)
	}
	if _, err := svc.Create(1, "두번째 목표", 5, asOf); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	goals, err := svc.History(1)
	if err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if len(goals) != 2 {
		t.Fatalf("expected 2 goals, got %d", len(goals))
	}
	// 终态行保留为历史，不会被删除
	if goals[0].Title != "두번째 목표" && goals[1].Title != "두번째 목표" {
		t.Fatalf("expected both goals present, got %+v", goals)
	}
}

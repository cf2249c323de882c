package timer

import (
	"testing"
	"time"
)

// fakeClock 手动推进的时钟，替换 Session 的 now
type fakeClock struct {
	current time.Time
}

func (f *fakeClock) now() time.Time {
	return f.current
}

func (f *fakeClock) advance(d time.Duration) {
	f.current = f.current.Add(d)
}

func newTestSession() (*Session, *fakeClock) {
	clock := &fakeClock{current: time.Date(2025, 6, 2, 9, 0, 0, 0, time.Local)}
	s := NewSession()
	s.now = clock.now
	return s, clock
}

func TestSessionAccumulates(t *testing.T) {
	s, clock := newTestSession()

	s.Start()
	clock.advance(10 * time.Second)

	if got := s.Elapsed(); got != 10*time.Second {
		t.Fatalf("expected 10s elapsed, got %v", got)
	}

	flush, ok := s.Pause()
	if !ok {
		t.Fatal("expected a flush after pause")
	}
	if flush.DeltaSeconds != 10 {
		t.Fatalf("expected delta 10, got %d", flush.DeltaSeconds)
	}
	if flush.SessionID == "" {
		t.Fatal("expected a session id")
	}

	// 同一运行区间至多产出一次增量
	if _, ok := s.Pause(); ok {
		t.Fatal("expected no flush on repeated pause")
	}

	// 继续计时后是新的区间、新的增量 ID
	s.Start()
	clock.advance(5 * time.Second)
	second, ok := s.Stop()
	if !ok {
		t.Fatal("expected a flush after stop")
	}
	if second.DeltaSeconds != 5 {
		t.Fatalf("expected delta 5, got %d", second.DeltaSeconds)
	}
	if second.SessionID == flush.SessionID {
		t.Fatal("expected a fresh session id per run interval")
	}

	if got := s.Elapsed(); got != 15*time.Second {
		t.Fatalf("expected 15s total, got %v", got)
	}
}

func TestSessionStartIsIdempotentWhileRunning(t *testing.T) {
	s, clock := newTestSession()

	s.Start()
	clock.advance(3 * time.Second)
	// 运行中重复 Start 不应重置计时锚点
	s.Start()
	clock.advance(4 * time.Second)

	flush, ok := s.Pause()
	if !ok {
		t.Fatal("expected a flush")
	}
	if flush.DeltaSeconds != 7 {
		t.Fatalf("expected delta 7, got %d", flush.DeltaSeconds)
	}
}

func TestSessionSubSecondCarry(t *testing.T) {
	s, clock := newTestSession()

	s.Start()
	clock.advance(1500 * time.Millisecond)
	flush, ok := s.Pause()
	if !ok {
		t.Fatal("expected a flush")
	}
	if flush.DeltaSeconds != 1 {
		t.Fatalf("expected truncated delta 1, got %d", flush.DeltaSeconds)
	}

	// 不足一秒的零头并入下一次结算
	s.Start()
	clock.advance(600 * time.Millisecond)
	flush, ok = s.Pause()
	if !ok {
		t.Fatal("expected a flush carrying the remainder")
	}
	if flush.DeltaSeconds != 1 {
		t.Fatalf("expected delta 1 from carry, got %d", flush.DeltaSeconds)
	}
}

func TestSessionZeroDeltaProducesNoFlush(t *testing.T) {
	s, _ := newTestSession()

	s.Start()
	if _, ok := s.Pause(); ok {
		t.Fatal("expected no flush for zero elapsed time")
	}

	if _, ok := s.Reset(); ok {
		t.Fatal("expected no flush on reset of idle session")
	}
}

func TestSessionReset(t *testing.T) {
	s, clock := newTestSession()

	s.Start()
	clock.advance(8 * time.Second)

	flush, ok := s.Reset()
	if !ok {
		t.Fatal("expected reset to settle the pending delta")
	}
	if flush.DeltaSeconds != 8 {
		t.Fatalf("expected delta 8, got %d", flush.DeltaSeconds)
	}

	if s.Elapsed() != 0 {
		t.Fatalf("expected elapsed 0 after reset, got %v", s.Elapsed())
	}
	if s.Running() {
		t.Fatal("expected session to be idle after reset")
	}
}

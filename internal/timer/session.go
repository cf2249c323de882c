// Package timer 实现客户端侧的计时会话账本。
// 会话本身从不落库，只有每段运行区间的增量会被提交给服务端累加。
package timer

import (
	"time"

	"github.com/google/uuid"
)

// Flush 是一次待提交的会话增量
// SessionID 随每段运行区间生成，服务端以它去重
type Flush struct {
	SessionID    string
	DeltaSeconds int64
}

// Session 维护一个专注计时会话
// 经过时长基于 time.Now 的单调时钟读数，系统墙钟被调整也不会污染累计值。
// 设计上服务于单个用户会话，不做并发防护
type Session struct {
	running     bool
	startedAt   time.Time
	accumulated time.Duration
	flushed     time.Duration
	runID       string

	now func() time.Time
}

// NewSession 构造一个空闲状态的会话
func NewSession() *Session {
	return &Session{now: time.Now}
}

// Running 报告计时是否进行中
func (s *Session) Running() bool {
	return s.running
}

// Elapsed 返回会话累计经过的时长，含当前运行区间
func (s *Session) Elapsed() time.Duration {
	if !s.running {
		return s.accumulated
	}
	return s.accumulated + s.now().Sub(s.startedAt)
}

// Start 开始或继续计时。已在运行时是空操作
// 每段运行区间持有一个新的增量 ID
func (s *Session) Start() {
	if s.running {
		return
	}
	s.running = true
	s.startedAt = s.now()
	s.runID = uuid.NewString()
}

// Pause 暂停计时并结算当前运行区间
// 每段区间至多产出一次增量；没有新增时长时返回 false
func (s *Session) Pause() (Flush, bool) {
	if s.running {
		s.accumulated += s.now().Sub(s.startedAt)
		s.running = false
	}
	return s.pending()
}

// Stop 与 Pause 结算规则一致：停止即必须提交最后一段未保存的时长
func (s *Session) Stop() (Flush, bool) {
	return s.Pause()
}

// Reset 结算未提交的增量后清零计时器
func (s *Session) Reset() (Flush, bool) {
	flush, ok := s.Pause()
	s.accumulated = 0
	s.flushed = 0
	s.runID = ""
	return flush, ok
}

func (s *Session) pending() (Flush, bool) {
	delta := int64((s.accumulated - s.flushed) / time.Second)
	if delta <= 0 || s.runID == "" {
		return Flush{}, false
	}

	// 不足一秒的零头留在账上，并入下一次结算，增量之和不丢失时长
	flush := Flush{SessionID: s.runID, DeltaSeconds: delta}
	s.flushed += time.Duration(delta) * time.Second
	return flush, true
}

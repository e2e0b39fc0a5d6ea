package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// SharedState holds the process-wide state shared by every surface: the
// scroll-buffer positions and the periodic-refresh timer. Both are
// cleared exactly once when the last session across all surfaces is
// torn down.
//
// The timer goroutine never touches session state. A tick only flags a
// pending refresh; the engine consumes the flag at the start of its
// next operation and applies the refresh there, on the control thread.
type SharedState struct {
	mu          sync.Mutex
	scroll      map[string]int
	refreshStop chan struct{}
	refreshDue  atomic.Bool
}

// NewSharedState creates empty shared state with no timer running.
func NewSharedState() *SharedState {
	return &SharedState{
		scroll: make(map[string]int),
	}
}

// SetScroll remembers a buffer's scroll position.
func (st *SharedState) SetScroll(buffer string, line int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.scroll[buffer] = line
}

// Scroll returns a buffer's remembered scroll position.
func (st *SharedState) Scroll(buffer string) (int, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	line, ok := st.scroll[buffer]
	return line, ok
}

// ClearScroll drops all remembered scroll positions.
func (st *SharedState) ClearScroll() {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.scroll = make(map[string]int)
}

// EnsureRefresh starts the periodic-refresh timer if it is not already
// running. Ticks only mark a refresh as due; they mutate nothing.
func (st *SharedState) EnsureRefresh(interval time.Duration) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.refreshStop != nil {
		return
	}
	stop := make(chan struct{})
	st.refreshStop = stop

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				st.refreshDue.Store(true)
			}
		}
	}()
}

// ConsumeRefreshDue reports whether a refresh tick is pending and
// clears the flag.
func (st *SharedState) ConsumeRefreshDue() bool {
	return st.refreshDue.Swap(false)
}

// CancelRefresh stops the periodic-refresh timer and drops any pending
// tick. Safe to call when no timer is running; the timer is only ever
// canceled once per run.
func (st *SharedState) CancelRefresh() {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.refreshStop == nil {
		return
	}
	close(st.refreshStop)
	st.refreshStop = nil
	st.refreshDue.Store(false)
}

// RefreshRunning reports whether the periodic-refresh timer is active.
func (st *SharedState) RefreshRunning() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.refreshStop != nil
}

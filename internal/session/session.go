// Package session runs a search off the caller's control-flow path, so a
// host UI can keep animating while the engine thinks. One Runner owns one
// Searcher (and hence its transposition table); only one session may be in
// flight at a time.
package session

import (
	"sync"
	"sync/atomic"

	"github.com/janpfeifer/fourGo/internal/searchers"
	. "github.com/janpfeifer/fourGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	// ErrSessionBusy is returned by Runner.Start while a previous session
	// is still in flight. This is a programming error in the integration:
	// requests are surfaced, never silently queued.
	ErrSessionBusy = errors.New("search session already in flight")

	// ErrResultConsumed is returned by Poll and Join after the result has
	// been read once: delivery is one-shot.
	ErrResultConsumed = errors.New("search result already consumed")
)

// Runner wraps a Searcher for asynchronous use. The zero value is not
// useful, use New.
type Runner struct {
	searcher searchers.Searcher
	busy     atomic.Bool
}

// New returns a Runner executing searches on the given Searcher.
func New(searcher searchers.Searcher) *Runner {
	return &Runner{searcher: searcher}
}

// Start spawns the search for the board on its own goroutine and returns
// immediately. It fails with ErrSessionBusy if a previous session has not
// finished computing yet.
//
// Sessions always run to completion once started, there is no cancellation:
// a caller that no longer wants the result simply discards the handle, the
// worker's completion is then a no-op and nothing beyond the result value
// itself is retained.
func (r *Runner) Start(board Board) (*Session, error) {
	if !r.busy.CompareAndSwap(false, true) {
		return nil, ErrSessionBusy
	}
	s := &Session{result: make(chan searchers.SearchResult, 1)}
	go func() {
		if klog.V(2).Enabled() {
			klog.Infof("Session started for move #%d (%s)", board.MoveCount(), r.searcher)
		}
		// The channel has capacity one, so the handoff never blocks the
		// worker, even if the handle was discarded.
		s.result <- r.searcher.Search(board)
		r.busy.Store(false)
	}()
	return s, nil
}

// Session is the handle to one in-flight (or finished) search. Results are
// delivered exactly once: the first successful Poll or Join consumes the
// result, subsequent calls return ErrResultConsumed instead of blocking
// forever.
type Session struct {
	result chan searchers.SearchResult

	mu       sync.Mutex
	consumed bool
}

// Poll checks for the result without blocking. ready is false while the
// search is still computing. After the result has been consumed once, err
// is ErrResultConsumed.
func (s *Session) Poll() (result searchers.SearchResult, ready bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumed {
		return result, false, ErrResultConsumed
	}
	select {
	case result = <-s.result:
		s.consumed = true
		return result, true, nil
	default:
		return result, false, nil
	}
}

// Join blocks until the result is available and consumes it. Use it only
// when the caller has nothing to interleave; otherwise Poll. After the
// result has been consumed once, it returns ErrResultConsumed.
func (s *Session) Join() (searchers.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.consumed {
		return searchers.SearchResult{}, ErrResultConsumed
	}
	result := <-s.result
	s.consumed = true
	return result, nil
}

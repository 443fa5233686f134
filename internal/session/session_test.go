package session

import (
	"testing"
	"time"

	"github.com/janpfeifer/fourGo/internal/ai/threat"
	"github.com/janpfeifer/fourGo/internal/searchers"
	"github.com/janpfeifer/fourGo/internal/searchers/alphabeta"
	. "github.com/janpfeifer/fourGo/internal/state"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSearcher returns a fixed result, optionally blocking until release is
// closed, to make the timing of a session deterministic in tests.
type stubSearcher struct {
	release chan struct{}
	result  searchers.SearchResult
}

func (s *stubSearcher) Search(Board) searchers.SearchResult {
	if s.release != nil {
		<-s.release
	}
	return s.result
}

func (s *stubSearcher) String() string { return "stub" }

func waitIdle(t *testing.T, r *Runner) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if !r.busy.Load() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("runner still busy")
}

func TestJoinDeliversResult(t *testing.T) {
	want := searchers.SearchResult{Column: 4, Score: 0.25}
	runner := New(&stubSearcher{result: want})

	session, err := runner.Start(NewBoard())
	require.NoError(t, err)
	got, err := session.Join()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStartWhileBusy(t *testing.T) {
	release := make(chan struct{})
	runner := New(&stubSearcher{release: release})

	session, err := runner.Start(NewBoard())
	require.NoError(t, err)

	_, err = runner.Start(NewBoard())
	assert.True(t, errors.Is(err, ErrSessionBusy))

	close(release)
	_, err = session.Join()
	require.NoError(t, err)

	// Once the worker finished, the runner accepts a new session.
	waitIdle(t, runner)
	session, err = runner.Start(NewBoard())
	require.NoError(t, err)
	_, err = session.Join()
	require.NoError(t, err)
}

func TestPollPendingThenReady(t *testing.T) {
	release := make(chan struct{})
	want := searchers.SearchResult{Column: 2, Score: -0.5}
	runner := New(&stubSearcher{release: release, result: want})

	session, err := runner.Start(NewBoard())
	require.NoError(t, err)

	_, ready, err := session.Poll()
	require.NoError(t, err)
	assert.False(t, ready)

	close(release)
	deadline := time.Now().Add(5 * time.Second)
	for {
		result, ready, err := session.Poll()
		require.NoError(t, err)
		if ready {
			assert.Equal(t, want, result)
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("session never became ready")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestResultConsumedOnce(t *testing.T) {
	runner := New(&stubSearcher{result: searchers.SearchResult{Column: 1}})
	session, err := runner.Start(NewBoard())
	require.NoError(t, err)

	_, err = session.Join()
	require.NoError(t, err)

	_, err = session.Join()
	assert.True(t, errors.Is(err, ErrResultConsumed))
	_, _, err = session.Poll()
	assert.True(t, errors.Is(err, ErrResultConsumed))
}

func TestDiscardedSessionDoesNotWedgeRunner(t *testing.T) {
	runner := New(&stubSearcher{result: searchers.SearchResult{Column: 0}})

	// Start and drop the handle without ever reading the result.
	_, err := runner.Start(NewBoard())
	require.NoError(t, err)

	// The worker must still complete and free the runner.
	waitIdle(t, runner)
	session, err := runner.Start(NewBoard())
	require.NoError(t, err)
	_, err = session.Join()
	require.NoError(t, err)
}

func TestForcedMoveSession(t *testing.T) {
	// Against a real searcher: a position whose only open column is 0 must
	// join to that forced column at any depth.
	b, err := ParseBoard(`
		.XOOXXO
		OOXXOOX
		XXOOXXO
		OOXXOOX
		XXOOXXO
		OOXXOOX`)
	require.NoError(t, err)
	require.Equal(t, []int{0}, b.LegalMoves())

	runner := New(alphabeta.New(threat.Default).WithMaxDepth(12))
	session, err := runner.Start(b)
	require.NoError(t, err)
	result, err := session.Join()
	require.NoError(t, err)
	assert.Equal(t, 0, result.Column)
}

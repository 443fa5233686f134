// selfplay runs batches of AI vs AI matches in parallel and reports
// aggregate results, for comparing configurations:
//
//	selfplay -matches=100 -config=threat,ab,max_depth=8 -config2=threat,ab,max_depth=4
package main

import (
	"context"
	"flag"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/janpfeifer/fourGo/internal/game"
	"github.com/janpfeifer/fourGo/internal/players"
	. "github.com/janpfeifer/fourGo/internal/state"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var (
	flagMatches  = flag.Int("matches", 20, "Number of matches to play")
	flagParallel = flag.Int("parallelism", runtime.NumCPU(), "Matches played concurrently")
	flagAIConfig = flag.String("config", players.DefaultPlayerConfig, "Configuration of the first AI")
	flagAIConfig2 = flag.String("config2", players.DefaultPlayerConfig,
		"Configuration of the second AI")
	flagSwap = flag.Bool("swap", true,
		"Alternate which configuration moves first, to factor out the first-move advantage")
)

// matchResult is the outcome of one match from the point of view of the two
// configurations (not of the board sides, which may be swapped).
type matchResult struct {
	winnerConfig int // 0 or 1, -1 for a draw
	moves        int
}

// tally accumulates matchResults.
type tally struct {
	mu     sync.Mutex
	wins   [2]int
	draws  int
	moves  int
	played int
}

func (t *tally) add(r matchResult) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if r.winnerConfig < 0 {
		t.draws++
	} else {
		t.wins[r.winnerConfig]++
	}
	t.moves += r.moves
	t.played++
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagMatches <= 0 || *flagParallel <= 0 {
		klog.Fatalf("--matches and --parallelism must be positive")
	}

	configs := [2]string{*flagAIConfig, *flagAIConfig2}
	start := time.Now()
	var results tally

	group, ctx := errgroup.WithContext(context.Background())
	group.SetLimit(*flagParallel)
	for matchIdx := 0; matchIdx < *flagMatches; matchIdx++ {
		group.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// Searchers keep per-match state, so each match builds its own
			// players.
			firstConfig := 0
			if *flagSwap && matchIdx%2 == 1 {
				firstConfig = 1
			}
			result, err := playMatch(configs, firstConfig)
			if err != nil {
				return err
			}
			results.add(result)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		klog.Exitf("Self-play failed: %+v", err)
	}

	elapsed := time.Since(start)
	fmt.Printf("Played %d matches in %s (%.1f matches/s)\n",
		results.played, elapsed, float64(results.played)/elapsed.Seconds())
	for configIdx, config := range configs {
		fmt.Printf("  config %d (%q): %d wins\n", configIdx+1, config, results.wins[configIdx])
	}
	fmt.Printf("  draws: %d\n", results.draws)
	fmt.Printf("  mean match length: %.1f moves\n", float64(results.moves)/float64(results.played))
}

// playMatch plays one full match; firstConfig selects which configuration
// takes the first move.
func playMatch(configs [2]string, firstConfig int) (matchResult, error) {
	var sides [2]*players.SearcherScorer
	for sideIdx := range sides {
		configIdx := (sideIdx + firstConfig) % 2
		player, err := players.New(configs[configIdx])
		if err != nil {
			return matchResult{}, err
		}
		sides[sideIdx] = player
	}

	match := game.NewMatch()
	if err := match.Start(); err != nil {
		return matchResult{}, err
	}
	for match.Phase() == game.PhasePlaying {
		board := match.Board()
		result := sides[board.NextPlayer()].Play(board)
		if _, err := match.Play(result.Column); err != nil {
			return matchResult{}, err
		}
	}

	outcome, winner := match.Outcome()
	r := matchResult{winnerConfig: -1, moves: match.MoveCount()}
	if outcome == OutcomeWin {
		r.winnerConfig = (int(winner) + firstConfig) % 2
	}
	return r, nil
}

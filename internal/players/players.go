// Package players provides a factory of AI players from a configuration
// string, pairing a static evaluator (scorer) with a search algorithm.
package players

import (
	"strings"

	"github.com/janpfeifer/fourGo/internal/ai"
	"github.com/janpfeifer/fourGo/internal/ai/threat"
	"github.com/janpfeifer/fourGo/internal/generics"
	"github.com/janpfeifer/fourGo/internal/parameters"
	"github.com/janpfeifer/fourGo/internal/searchers"
	"github.com/janpfeifer/fourGo/internal/searchers/alphabeta"
	. "github.com/janpfeifer/fourGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Player is anything able to choose the next column for the side to move on
// a non-terminal board.
type Player interface {
	Play(board Board) searchers.SearchResult
	String() string
}

// DefaultPlayerConfig is used when an empty configuration is given to New.
var DefaultPlayerConfig = "threat,ab,max_depth=10"

// SearcherScorer is the standard setup for an AI: a searcher and the scorer
// it orders and evaluates with. It implements the Player interface.
type SearcherScorer struct {
	Searcher searchers.Searcher
	Scorer   ai.ValueScorer
}

// Assert that SearcherScorer is a Player.
var _ Player = (*SearcherScorer)(nil)

// New creates an AI player from a configuration string: a comma-separated
// list of parameters with optional values.
//
// Supported parameters:
//
//   - threat (bool): use the threat-counting static evaluator. Currently the
//     only scorer, but it must be named.
//   - open_three, pair (float32): override the threat evaluator weights.
//   - ab (bool): use the alpha-beta pruning search algorithm.
//   - max_depth (int): search depth budget in plies, default 10.
//   - discount (float32): per-ply discount factor, default 0.99999.
//
// E.g.: "threat,ab,max_depth=12".
func New(config string) (*SearcherScorer, error) {
	if config == "" {
		config = DefaultPlayerConfig
	}
	params := parameters.NewFromConfigString(config)
	player := &SearcherScorer{}

	// Scorer.
	useThreat, err := parameters.PopParamOr(params, "threat", false)
	if err != nil {
		return nil, err
	}
	if useThreat {
		openThree, err := parameters.PopParamOr(params, "open_three", threat.DefaultOpenThreeWeight)
		if err != nil {
			return nil, err
		}
		pair, err := parameters.PopParamOr(params, "pair", threat.DefaultPairWeight)
		if err != nil {
			return nil, err
		}
		player.Scorer = threat.New().WithWeights(openThree, pair)
	}
	if player.Scorer == nil {
		return nil, errors.Errorf("no scorer defined in configuration %q, e.g. \"threat\"", config)
	}

	// Searcher.
	useAB, err := parameters.PopParamOr(params, "ab", false)
	if err != nil {
		return nil, err
	}
	if useAB {
		maxDepth, err := parameters.PopParamOr(params, "max_depth", 10)
		if err != nil {
			return nil, err
		}
		discount, err := parameters.PopParamOr(params, "discount", alphabeta.DefaultDiscount)
		if err != nil {
			return nil, err
		}
		player.Searcher = alphabeta.New(player.Scorer).WithMaxDepth(maxDepth).WithDiscount(discount)
	}
	if player.Searcher == nil {
		return nil, errors.Errorf("no searcher defined in configuration %q, e.g. \"ab\"", config)
	}

	// Check that all parameters were processed.
	if len(params) > 0 {
		return nil, errors.Errorf("unknown AI parameters %q passed", strings.Join(generics.SortedKeys(params), ", "))
	}
	return player, nil
}

// Play implements the Player interface: it chooses a column given a Board.
func (p *SearcherScorer) Play(b Board) searchers.SearchResult {
	result := p.Searcher.Search(b)
	if klog.V(2).Enabled() {
		klog.Infof("Move #%d: AI (%s) playing column %d, score=%.3f",
			b.MoveCount(), p.Scorer, result.Column, result.Score)
	}
	return result
}

// Reset clears the player's accumulated search state (the transposition
// generations) between matches.
func (p *SearcherScorer) Reset() {
	if resetter, ok := p.Searcher.(interface{ Reset() }); ok {
		resetter.Reset()
	}
}

// String implements fmt.Stringer.
func (p *SearcherScorer) String() string {
	return p.Searcher.String()
}

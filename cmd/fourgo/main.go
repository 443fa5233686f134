// fourgo plays Connect Four on the terminal: human vs AI by default, with
// hotseat (human vs human) and watch (AI vs AI) modes.
//
// Examples:
//
//	fourgo                     # play against the default AI, random side
//	fourgo -first=human        # human drops the first stone
//	fourgo -watch -config2=threat,ab,max_depth=6
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/janpfeifer/fourGo/internal/game"
	"github.com/janpfeifer/fourGo/internal/players"
	"github.com/janpfeifer/fourGo/internal/searchers"
	"github.com/janpfeifer/fourGo/internal/session"
	. "github.com/janpfeifer/fourGo/internal/state"
	"github.com/janpfeifer/fourGo/internal/ui/cli"
	"github.com/janpfeifer/fourGo/internal/ui/spinning"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"
)

var (
	flagHotseat  = flag.Bool("hotseat", false, "Hotseat match: human vs human")
	flagWatch    = flag.Bool("watch", false, "Watch mode: AI vs AI playing")
	flagFirst    = flag.String("first", "", "Who plays first: human or ai. Default is random.")
	flagAIConfig = flag.String("config", players.DefaultPlayerConfig, "AI configuration against which to play")
	flagAIConfig2 = flag.String("config2", players.DefaultPlayerConfig,
		"Second AI configuration, if playing AI vs AI with --watch")
	flagColor = flag.Bool("color", true, "Colored board rendering")
	flagClear = flag.Bool("clear", false, "Clear the screen between moves")

	// aiPlayers/runners: a nil entry means a human plays that side.
	aiPlayers = [2]*players.SearcherScorer{nil, nil}
	runners   = [2]*session.Runner{nil, nil}

	globalCtx = context.Background()
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	// Capture Control+C.
	var cancel func()
	globalCtx, cancel = context.WithCancel(context.Background())
	spinning.SafeInterrupt(cancel, 3*time.Second)
	defer cancel()

	createPlayers()
	ui := cli.New(*flagColor, *flagClear)
	match := game.NewMatch()
	must.M(match.Start())

	for match.Phase() == game.PhasePlaying {
		board := match.Board()
		ui.Print(board)
		if aiPlayer := aiPlayers[board.NextPlayer()]; aiPlayer != nil {
			runAIMove(match, ui, aiPlayer)
		} else {
			runHumanMove(match, ui)
		}
		if globalCtx.Err() != nil {
			return
		}
		fmt.Println()
	}

	ui.Print(match.Board())
	ui.PrintOutcome(match.Board())
}

func runHumanMove(match *game.Match, ui *cli.UI) {
	board := match.Board()
	ui.PrintPlayer(board)
	fmt.Println()
	column, undo, quit, err := ui.ReadColumn(board)
	if err != nil {
		klog.Exitf("Failed to read move: %+v", err)
	}
	if quit {
		fmt.Println("Bye!")
		os.Exit(0)
	}
	if undo {
		// Against an AI, take back the AI's reply as well, so the same
		// human is to move again.
		match.Undo()
		if !*flagHotseat && aiPlayers[match.Board().NextPlayer()] != nil {
			match.Undo()
		}
		return
	}
	if _, err := match.Play(column); err != nil {
		klog.Exitf("Failed to play column %d: %+v", column, err)
	}
}

func runAIMove(match *game.Match, ui *cli.UI, aiPlayer *players.SearcherScorer) {
	board := match.Board()
	fmt.Printf("AI (%s) thinking ", aiPlayer)
	handle, err := runners[board.NextPlayer()].Start(board)
	if err != nil {
		klog.Exitf("Failed to start search: %+v", err)
	}

	spinner := spinning.New(globalCtx)
	var result searchers.SearchResult
	for {
		r, ready, err := handle.Poll()
		if err != nil {
			klog.Exitf("Failed to poll search: %+v", err)
		}
		if ready {
			result = r
			break
		}
		select {
		case <-globalCtx.Done():
			spinner.Done()
			fmt.Println("\nInterrupted.")
			return
		case <-time.After(50 * time.Millisecond):
		}
	}
	spinner.Done()

	fmt.Printf("\rAI (%s) plays column %d (score=%.3f)\n", aiPlayer, result.Column, result.Score)
	if _, err := match.Play(result.Column); err != nil {
		klog.Exitf("AI chose an unplayable column %d: %+v", result.Column, err)
	}
}

// createPlayers fills aiPlayers and runners according to the flags.
func createPlayers() {
	if *flagHotseat && *flagWatch {
		klog.Fatalf("--hotseat and --watch cannot be used together")
	}
	if *flagHotseat {
		// Both players are human, nothing to do.
		return
	}

	var aiPlayerNum PlayerNum
	if !*flagWatch {
		switch strings.ToLower(*flagFirst) {
		case "human":
			aiPlayerNum = PlayerSecond
		case "ai":
			aiPlayerNum = PlayerFirst
		case "":
			aiPlayerNum = PlayerNum(rand.IntN(2))
		default:
			klog.Fatalf("invalid --first=%q, only valid values are \"human\" or \"ai\"", *flagFirst)
		}
	}
	aiPlayers[aiPlayerNum] = must.M1(players.New(*flagAIConfig))
	runners[aiPlayerNum] = session.New(aiPlayers[aiPlayerNum].Searcher)
	if !*flagWatch {
		return
	}

	otherPlayerNum := aiPlayerNum.Other()
	aiPlayers[otherPlayerNum] = must.M1(players.New(*flagAIConfig2))
	runners[otherPlayerNum] = session.New(aiPlayers[otherPlayerNum].Searcher)
}

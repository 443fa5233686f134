// Package spinning provides a small terminal spinner to show while the
// engine is thinking, and a helper to capture Ctrl+C for a graceful
// shutdown.
package spinning

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"k8s.io/klog/v2"
)

var (
	ThemeAscii = []rune(`|/-\`)
	ThemeClock = []rune("🕐🕑🕒🕓🕔🕕🕖🕗🕘🕙🕚🕛")

	// Theme defaults to ThemeClock, but it can be set to anything else.
	Theme = ThemeClock
)

// Spinning is one running spinner, see New.
type Spinning struct {
	wg     sync.WaitGroup
	cancel func()
}

// New starts a spinner on its own goroutine. Stop it with Done.
func New(ctx context.Context) *Spinning {
	s := &Spinning{}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		fmt.Print("\033[?25l")       // Hide cursor.
		defer fmt.Print("\033[?25h") // Restore cursor.

		idx := 0
		fmt.Print("  ")
		for {
			fmt.Printf("\b\b%c", Theme[idx])
			idx = (idx + 1) % len(Theme)
			select {
			case <-ctx.Done():
				fmt.Print("\b\b  \b\b")
				return
			case <-ticker.C:
			}
		}
	}()
	return s
}

// Done stops the spinner and waits for its goroutine to clean the screen.
func (s *Spinning) Done() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.wg.Wait()
}

// Reset terminal: make cursor visible, restore default colors.
func Reset() {
	fmt.Print("\033[?25h\033[39;49;0m\n")
}

// SafeInterrupt captures SIGINT (Ctrl+C) and SIGTERM and calls onInterrupt.
// If the program hasn't exited after gracePeriod, it resets the terminal
// and exits.
func SafeInterrupt(onInterrupt func(), gracePeriod time.Duration) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		s := <-sigChan
		fmt.Println()
		klog.Errorf("Got interrupted (signal %q), shutting down... (%s)", s, gracePeriod)
		if onInterrupt != nil {
			go onInterrupt()
		}
		time.Sleep(gracePeriod)
		Reset()
		klog.Fatalf("Graceful shutdown period (%s) expired, exiting.", gracePeriod)
	}()
}

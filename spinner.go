package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

// progressSpinner animates batch progress on the terminal. The message can
// be swapped while the animation runs, so the analyze loop reports which
// page it is currently on.
type progressSpinner struct {
	chars []string
	delay time.Duration
	out   io.Writer

	mu      sync.Mutex
	message string

	end chan struct{}
	wg  sync.WaitGroup
}

func newProgressSpinner(out io.Writer) *progressSpinner {
	return &progressSpinner{
		chars: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		delay: 100 * time.Millisecond,
		out:   out,
	}
}

// Update replaces the message shown next to the animation. Safe to call
// from the analyze loop while the spinner is running.
func (s *progressSpinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

func (s *progressSpinner) current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *progressSpinner) Start(message string) {
	s.Update(message)
	s.end = make(chan struct{})
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		i := 0
		for {
			select {
			case <-s.end:
				return
			default:
				fmt.Fprintf(s.out, "\r%s %s", s.chars[i%len(s.chars)], s.current())
				i++
				time.Sleep(s.delay)
			}
		}
	}()
}

// Stop ends the animation and prints the final message on its own line.
func (s *progressSpinner) Stop(message string) {
	close(s.end)
	s.wg.Wait()
	fmt.Fprintf(s.out, "\r%s %s\n", color.GreenString("✓"), message)
}

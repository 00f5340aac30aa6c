package logger

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Spinner represents an animated spinner for long-running operations
type Spinner struct {
	mu       sync.Mutex
	active   bool
	message  string
	frames   []string
	interval time.Duration
	stopChan chan struct{}
	done     chan struct{}
}

// SpinnerDots are the default spinner frames
var SpinnerDots = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewSpinner creates a new spinner with the default frames
func NewSpinner(message string) *Spinner {
	return &Spinner{
		message:  message,
		frames:   SpinnerDots,
		interval: 100 * time.Millisecond,
	}
}

// Start starts the spinner animation
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.stopChan = make(chan struct{})
	s.done = make(chan struct{})
	stop, done := s.stopChan, s.done
	s.mu.Unlock()

	w, noColor := output()

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			s.mu.Lock()
			message := s.message
			s.mu.Unlock()

			frame := s.frames[i%len(s.frames)]
			if !noColor {
				frame = colorCyan.Sprint(frame)
			}
			_, _ = fmt.Fprintf(w, "\r%s %s", frame, message)

			select {
			case <-stop:
				_, _ = fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", len(message)+4))
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop stops the spinner and clears its line
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	close(s.stopChan)
	done := s.done
	s.mu.Unlock()

	<-done
}

// UpdateMessage updates the spinner message
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Success stops the spinner and shows a success message
func (s *Spinner) Success(message string) {
	s.Stop()
	Success(message)
}

// Error stops the spinner and shows an error message
func (s *Spinner) Error(message string) {
	s.Stop()
	Error(message)
}

// ProgressBar renders a single-line progress bar
type ProgressBar struct {
	w       io.Writer
	noColor bool
	total   int
	current int
	width   int
	message string
}

// NewProgressBar creates a progress bar writing to the default logger's output
func NewProgressBar(total int, message string) *ProgressBar {
	w, noColor := output()
	return NewProgressBarTo(w, noColor, total, message)
}

// NewProgressBarTo creates a progress bar writing to w
func NewProgressBarTo(w io.Writer, noColor bool, total int, message string) *ProgressBar {
	return &ProgressBar{
		w:       w,
		noColor: noColor,
		total:   total,
		width:   40,
		message: message,
	}
}

// Update sets the progress and redraws the bar
func (p *ProgressBar) Update(current int) {
	p.current = min(max(current, 0), p.total)
	p.draw()
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	p.current = p.total
	p.draw()
	_, _ = fmt.Fprintln(p.w)
}

func (p *ProgressBar) draw() {
	percent := 1.0
	if p.total > 0 {
		percent = float64(p.current) / float64(p.total)
	}
	filled := int(percent * float64(p.width))

	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)
	if p.noColor {
		bar = "[" + bar + "]"
	} else {
		bar = colorGreen.Sprint(bar)
	}

	_, _ = fmt.Fprintf(p.w, "\r%s: %s %3.0f%%", p.message, bar, percent*100)
}

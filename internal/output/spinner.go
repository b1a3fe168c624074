package output

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Spinner animates a message on stderr while quick, silent commands run
// (doctor checks). It must not be used around commands that stream output.
type Spinner struct {
	message string
	w       io.Writer
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
	mu      sync.Mutex
	active  bool
}

// NewSpinner creates a spinner writing to the log writer.
func NewSpinner(message string) *Spinner {
	loggerMu.Lock()
	w := logOut
	loggerMu.Unlock()
	return &Spinner{
		message: message,
		w:       w,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. Only the first call has an effect.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return
	}
	s.active = true
	if JSONMode {
		close(s.stopped)
		return
	}
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.stopped)
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	if NoColor() {
		frames = []string{"|", "/", "-", "\\"}
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.done:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
			fmt.Fprintf(s.w, "\r%s %s", frames[i%len(frames)], s.message)
		}
	}
}

// Stop ends the animation and clears the line. Safe to call repeatedly.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		s.mu.Lock()
		started := s.active
		s.mu.Unlock()
		if started {
			<-s.stopped
		}
	})
}

// WithSpinner runs fn behind a spinner unless disabled is true.
func WithSpinner(message string, disabled bool, fn func() error) error {
	if disabled {
		return fn()
	}
	sp := NewSpinner(message)
	sp.Start()
	err := fn()
	sp.Stop()
	return err
}

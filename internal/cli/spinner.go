package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/distviz/distviz/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a progress line on stderr while the pipeline runs.
// The message tracks the active pipeline stage and can be swapped with
// phase.
type spinner struct {
	mu      sync.Mutex
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
}

// startSpinner starts a spinner that also stops when ctx is cancelled.
func startSpinner(ctx context.Context, message string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	s := &spinner{
		message: message,
		ctx:     sctx,
		cancel:  cancel,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *spinner) run() {
	defer close(s.stopped)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			s.clearLine()
			return
		case <-s.done:
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			s.mu.Lock()
			fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
			s.mu.Unlock()
		}
	}
}

// phase swaps the displayed message when the pipeline enters a new stage.
func (s *spinner) phase(message string) {
	s.mu.Lock()
	if len(message) < len(s.message) {
		fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
	}
	s.message = message
	s.mu.Unlock()
}

// stop halts the animation and clears the line.
func (s *spinner) stop() {
	s.cancel()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	<-s.stopped
	s.clearLine()
}

// fail stops the spinner and prints an error line.
func (s *spinner) fail(message string) {
	s.stop()
	printError("%s", message)
}

func (s *spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// spinnerPhases drives the spinner message from pipeline events, so the
// user sees which stage (loading or rendering) is underway.
type spinnerPhases struct {
	observability.NoopPipelineHooks
	spin *spinner
}

func (p *spinnerPhases) OnLoadStart(_ context.Context, input string) {
	p.spin.phase(fmt.Sprintf("Loading %s...", input))
}

func (p *spinnerPhases) OnRenderStart(_ context.Context, formats []string) {
	p.spin.phase(fmt.Sprintf("Rendering %s...", strings.Join(formats, ", ")))
}

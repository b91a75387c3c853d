package cli

import (
	"context"
	"testing"
)

func TestSpinnerPhases(t *testing.T) {
	s := startSpinner(context.Background(), "Plotting points.csv...")
	defer s.stop()

	hooks := &spinnerPhases{spin: s}
	hooks.OnLoadStart(context.Background(), "points.csv")
	if got := s.currentMessage(); got != "Loading points.csv..." {
		t.Errorf("message after load start = %q", got)
	}

	hooks.OnRenderStart(context.Background(), []string{"png", "svg"})
	if got := s.currentMessage(); got != "Rendering png, svg..." {
		t.Errorf("message after render start = %q", got)
	}
}

func TestSpinnerStopAfterContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := startSpinner(ctx, "working")
	cancel()
	s.stop() // must not hang or panic after cancellation
}

func (s *spinner) currentMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

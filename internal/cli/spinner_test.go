package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerBasic(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Generating...")
	s.Start()
	time.Sleep(250 * time.Millisecond)
	s.Stop()

	if !s.Cancelled() {
		// Stop cancels the spinner's own context.
		t.Error("Cancelled() = false after Stop")
	}
	if !strings.Contains(buf.String(), "Generating...") {
		t.Errorf("output %q should contain the message", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, &bytes.Buffer{}, "Testing with context...")
	s.Start()
	cancel()

	// Give goroutine time to notice cancellation
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), &bytes.Buffer{}, "Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerSetMessage(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "a long first message")
	s.SetMessage("short")
	if got := s.message; got != "short"+strings.Repeat(" ", len("a long first message")-len("short")) {
		t.Errorf("message = %q, want padded", got)
	}
	s.Start()
	s.Stop()
}

func TestSpinnerStopWithStatus(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Working...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Done!")
	if !strings.Contains(buf.String(), "Done!") {
		t.Errorf("output %q should contain success message", buf.String())
	}

	buf.Reset()
	s = newSpinner(context.Background(), &buf, "Working...")
	s.Start()
	s.StopWithError("Failed!")
	if !strings.Contains(buf.String(), "Failed!") {
		t.Errorf("output %q should contain error message", buf.String())
	}
}

package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"promptbooth/internal/domain"
)

func TestHandleReportsNotReadyWhenUninitialized(t *testing.T) {
	t.Parallel()

	app := &App{}
	reply, quit := app.Handle(context.Background(), "status")
	if quit {
		t.Fatal("expected quit=false")
	}
	if !strings.Contains(reply, "not ready") {
		t.Fatalf("expected not-ready reply, got %q", reply)
	}
}

func TestHandleSurfacesBootError(t *testing.T) {
	t.Parallel()

	app := &App{bootErr: errBoot}
	reply, _ := app.Handle(context.Background(), "start")
	if !strings.Contains(reply, "boot broke") {
		t.Fatalf("expected boot error in reply, got %q", reply)
	}
}

var errBoot = &bootError{}

type bootError struct{}

func (*bootError) Error() string { return "boot broke" }

func TestStateReasonMessages(t *testing.T) {
	t.Parallel()

	cases := map[domain.StateReason]string{
		domain.ReasonSessionStarted:   "Session started",
		domain.ReasonRecordingStarted: "Recording started",
		domain.ReasonRecordingStopped: "Recording stopped",
		domain.ReasonRetake:           "Take discarded",
		domain.ReasonCommitted:        "Recording committed",
		domain.ReasonSessionComplete:  "Session complete",
		domain.ReasonShutdown:         "Shutting down",
	}
	for reason, want := range cases {
		if got := stateReasonMessage(reason); !strings.Contains(got, want) {
			t.Errorf("stateReasonMessage(%q) = %q, want prefix %q", reason, got, want)
		}
	}
	if got := stateReasonMessage(domain.StateReason("bogus")); got != "" {
		t.Errorf("unknown reason should map to empty string, got %q", got)
	}
}

func TestErrorMessages(t *testing.T) {
	t.Parallel()

	cases := map[domain.ErrorCode]string{
		domain.ErrorCodeStartup:      "Startup failed",
		domain.ErrorCodeDeviceDenied: "Microphone unavailable",
		domain.ErrorCodeAudioStream:  "Audio streaming issue",
		domain.ErrorCodeAudioStop:    "Audio stop issue",
		domain.ErrorCodeSubmission:   "Submission failed",
	}
	for code, want := range cases {
		if got := errorMessage(code, "detail"); got != want {
			t.Errorf("errorMessage(%q) = %q, want %q", code, got, want)
		}
	}
	if got := errorMessage(domain.ErrorCode("bogus"), "raw detail"); got != "raw detail" {
		t.Errorf("unknown code should fall back to detail, got %q", got)
	}
	if got := errorMessage(domain.ErrorCode("bogus"), ""); got != "Unknown error" {
		t.Errorf("unknown code with no detail = %q", got)
	}
}

func TestConsoleSinkOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sink := newConsoleSink(&buf)

	sink.StateChanged(domain.CaptureStateRecording, domain.ReasonRecordingStarted)
	sink.PromptPresented(0, "The birch canoe slid on the smooth planks.")
	sink.ElapsedSeconds(3)
	sink.SessionError(domain.ErrorCodeDeviceDenied, "permission denied")

	out := buf.String()
	for _, want := range []string{
		"Recording started",
		"prompt 1",
		"recording... 3s",
		"Microphone unavailable",
		"permission denied",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("sink output missing %q:\n%s", want, out)
		}
	}
}

func TestConsoleSinkUnknownErrorPrintsDetailOnce(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sink := newConsoleSink(&buf)
	sink.SessionError(domain.ErrorCode("bogus"), "something odd")

	out := buf.String()
	if got := strings.Count(out, "something odd"); got != 1 {
		t.Fatalf("detail printed %d times in %q", got, out)
	}

	buf.Reset()
	sink.SessionError(domain.ErrorCode("bogus"), "")
	if got := strings.TrimSpace(buf.String()); got != "error: Unknown error" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestFormatStatus(t *testing.T) {
	t.Parallel()

	got := formatStatus(domain.Status{
		State:   domain.CaptureStateReview,
		Elapsed: 7,
		Session: domain.SessionSnapshot{Slot: 2, Total: 20, Used: 2, Limit: 5},
	})
	for _, want := range []string{"state=review", "elapsed=7s", "used=2/5"} {
		if !strings.Contains(got, want) {
			t.Errorf("status %q missing %q", got, want)
		}
	}
}

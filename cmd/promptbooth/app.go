package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"promptbooth/internal/domain"
	"promptbooth/internal/usecase"
)

// App is the command-line front end over the recording controller.
type App struct {
	controller *usecase.RecordingController
	bootErr    error
}

// Handle executes one participant command and returns the reply text.
// quit is true once the participant asked to leave the booth.
func (a *App) Handle(ctx context.Context, line string) (reply string, quit bool) {
	cmd := strings.ToLower(strings.TrimSpace(line))
	switch cmd {
	case "quit", "exit", "q":
		return "bye", true
	case "help", "?":
		return "commands: start stop retake submit new status quit", false
	case "":
		return "", false
	}

	if err := a.requireReady(); err != nil {
		return "not ready: " + err.Error(), false
	}

	switch cmd {
	case "start", "r":
		if err := a.controller.StartRecording(ctx); err != nil {
			return "cannot start: " + err.Error(), false
		}
		return "recording... type 'stop' when done", false

	case "stop", "s":
		artifact, err := a.controller.StopRecording(ctx)
		if err != nil {
			return "cannot stop: " + err.Error(), false
		}
		return fmt.Sprintf("take %s ready for review (%ds, %d bytes); 'submit' or 'retake'",
			artifact.Identifier, artifact.Seconds, len(artifact.PCM)), false

	case "retake":
		if err := a.controller.Retake(); err != nil {
			return "cannot retake: " + err.Error(), false
		}
		return "take discarded; type 'start' to record again", false

	case "submit":
		result, err := a.controller.Submit(ctx)
		if err != nil {
			return "submit failed: " + err.Error(), false
		}
		if result.Complete {
			return fmt.Sprintf("committed %s; session complete, thank you! ('new' for another session)", result.Identifier), false
		}
		snap := a.controller.Status().Session
		return fmt.Sprintf("committed %s (%d/%d)", result.Identifier, result.Used, snap.Limit), false

	case "new":
		snap := a.controller.StartSession(ctx)
		return fmt.Sprintf("new session: %d prompts drawn, %d recordings to go", snap.Total, snap.Limit), false

	case "status":
		return formatStatus(a.controller.Status()), false

	default:
		return "unknown command; type 'help'", false
	}
}

func (a *App) requireReady() error {
	if a.bootErr != nil {
		return a.bootErr
	}
	if a.controller == nil {
		return fmt.Errorf("application is not initialized")
	}
	return nil
}

func formatStatus(status domain.Status) string {
	s := status.Session
	return fmt.Sprintf("state=%s elapsed=%ds slot=%d/%d used=%d/%d complete=%t",
		status.State, status.Elapsed, s.Slot, s.Total, s.Used, s.Limit, s.Complete)
}

// consoleSink prints backend events for the participant.
type consoleSink struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsoleSink(out io.Writer) *consoleSink {
	return &consoleSink{out: out}
}

func (c *consoleSink) StateChanged(state domain.CaptureState, reason domain.StateReason) {
	c.printf("[%s] %s", state, stateReasonMessage(reason))
}

func (c *consoleSink) PromptPresented(slot int, text string) {
	c.printf("prompt %d: %q", slot+1, text)
}

func (c *consoleSink) ElapsedSeconds(seconds int) {
	c.printf("recording... %ds", seconds)
}

func (c *consoleSink) SessionError(code domain.ErrorCode, detail string) {
	message := errorMessage(code, detail)
	if detail == "" || detail == message {
		c.printf("error: %s", message)
		return
	}
	c.printf("error: %s (%s)", message, detail)
}

func (c *consoleSink) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format+"\n", args...)
}

func stateReasonMessage(reason domain.StateReason) string {
	switch reason {
	case domain.ReasonSessionStarted:
		return "Session started; read the prompt aloud after typing 'start'"
	case domain.ReasonRecordingStarted:
		return "Recording started"
	case domain.ReasonRecordingStopped:
		return "Recording stopped; review your take"
	case domain.ReasonRetake:
		return "Take discarded"
	case domain.ReasonCommitted:
		return "Recording committed"
	case domain.ReasonSessionComplete:
		return "Session complete"
	case domain.ReasonShutdown:
		return "Shutting down"
	default:
		return ""
	}
}

func errorMessage(code domain.ErrorCode, detail string) string {
	switch code {
	case domain.ErrorCodeStartup:
		return "Startup failed"
	case domain.ErrorCodeDeviceDenied:
		return "Microphone unavailable"
	case domain.ErrorCodeAudioStream:
		return "Audio streaming issue"
	case domain.ErrorCodeAudioStop:
		return "Audio stop issue"
	case domain.ErrorCodeSubmission:
		return "Submission failed"
	default:
		if detail == "" {
			return "Unknown error"
		}
		return detail
	}
}

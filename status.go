package main

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"

	"github.com/taglme/typist/typing"
)

// StatusBoard tracks what the typing session is doing and prints it to the
// console. It is the terminal counterpart of a tray icon.
type StatusBoard struct {
	out        io.Writer
	logManager *LogManager

	mu        sync.Mutex
	status    typing.Status
	changedAt time.Time
	started   int
	finished  int
	failed    int
}

// StatusSummary is a point in time copy of the board.
type StatusSummary struct {
	Status    typing.Status
	ChangedAt time.Time
	Started   int
	Finished  int
	Failed    int
}

// NewStatusBoard creates a board printing to out.
func NewStatusBoard(out io.Writer, logManager *LogManager) *StatusBoard {
	return &StatusBoard{
		out:        out,
		logManager: logManager,
		status:     typing.StatusReady,
		changedAt:  time.Now(),
	}
}

// OnStateChange records the transition and prints a one line update.
func (sb *StatusBoard) OnStateChange(status typing.Status) {
	sb.mu.Lock()
	prev := sb.status
	sb.status = status
	sb.changedAt = time.Now()
	switch {
	case status == typing.StatusTyping && prev != typing.StatusPaused:
		sb.started++
	case status == typing.StatusReady:
		sb.finished++
	case status == typing.StatusError:
		sb.failed++
	}
	sb.mu.Unlock()

	fmt.Fprintf(sb.out, "%s %s\n", statusIcon(status), statusLabel(status))
	sb.logManager.LogDebug("Status updated", "from", string(prev), "to", string(status))
}

// Summary returns the current counters.
func (sb *StatusBoard) Summary() StatusSummary {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	return StatusSummary{
		Status:    sb.status,
		ChangedAt: sb.changedAt,
		Started:   sb.started,
		Finished:  sb.finished,
		Failed:    sb.failed,
	}
}

// DisplayCurrentStatus shows the current status in the console
func (sb *StatusBoard) DisplayCurrentStatus(params *typing.Params, config *Config) {
	s := sb.Summary()
	w := sb.out
	fmt.Fprintln(w)
	fmt.Fprintln(w, "┌─────────────────────────────────────────────────────────┐")
	fmt.Fprintf(w, "│  📊 Current Status: %-35s │\n", statusLabel(s.Status))
	fmt.Fprintf(w, "│  ⌨️  Speed: %-44s │\n", fmt.Sprintf("%d wpm, temperature %d, pause %d",
		params.WPM(), params.Temperature(), params.PauseMultiplier()))
	fmt.Fprintf(w, "│  ▶️  Start/Stop: %-39s │\n", config.Hotkeys.StartStop)
	fmt.Fprintf(w, "│  ⏸️  Pause/Resume: %-37s │\n", config.Hotkeys.PauseResume)
	fmt.Fprintf(w, "│  🧾 Jobs: %-45s │\n", fmt.Sprintf("%d started, %d finished, %d failed", s.Started, s.Finished, s.Failed))
	fmt.Fprintf(w, "│  📝 Log File: %-41s │\n", filepath.Base(sb.logManager.GetLogFilePath()))
	fmt.Fprintln(w, "└─────────────────────────────────────────────────────────┘")
	fmt.Fprintln(w)
}

func statusLabel(s typing.Status) string {
	switch s {
	case typing.StatusTyping:
		return "TYPING"
	case typing.StatusPaused:
		return "PAUSED"
	case typing.StatusError:
		return "ERROR"
	default:
		return "READY"
	}
}

func statusIcon(s typing.Status) string {
	switch s {
	case typing.StatusTyping:
		return "⌨️"
	case typing.StatusPaused:
		return "⏸️"
	case typing.StatusError:
		return "❌"
	default:
		return "✅"
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	hook "github.com/robotn/gohook"

	"github.com/taglme/typist/typing"
)

// HotkeyAction is what a registered hotkey does.
type HotkeyAction int

const (
	// ActionStartStop stops a running job or types the clipboard.
	ActionStartStop HotkeyAction = iota
	// ActionPauseResume pauses or resumes the running job.
	ActionPauseResume
)

func (a HotkeyAction) String() string {
	switch a {
	case ActionStartStop:
		return "start/stop"
	case ActionPauseResume:
		return "pause/resume"
	default:
		return "unknown"
	}
}

// hotkeyBinding ties a parsed hotkey to its action.
type hotkeyBinding struct {
	Definition *HotkeyDefinition
	Action     HotkeyAction
}

// HotkeyMonitor listens for the global hotkeys and drives the session.
type HotkeyMonitor struct {
	session             *typing.Session
	readText            func() (string, error)
	notificationManager *NotificationManager
	logManager          *LogManager
	bindings            []hotkeyBinding

	maxRetries int
	retryDelay time.Duration

	mutex   sync.Mutex
	running bool
}

// NewHotkeyMonitor parses the configured hotkeys.
func NewHotkeyMonitor(config *Config, session *typing.Session, readText func() (string, error), nm *NotificationManager, lm *LogManager) (*HotkeyMonitor, error) {
	keyMapping := NewKeyMapping()
	hm := &HotkeyMonitor{
		session:             session,
		readText:            readText,
		notificationManager: nm,
		logManager:          lm,
		maxRetries:          3,
		retryDelay:          time.Second,
	}

	for _, h := range []struct {
		accelerator string
		action      HotkeyAction
	}{
		{config.Hotkeys.StartStop, ActionStartStop},
		{config.Hotkeys.PauseResume, ActionPauseResume},
	} {
		def, err := keyMapping.Parse(h.accelerator)
		if err != nil {
			return nil, fmt.Errorf("failed to build %s hotkey: %w", h.action, err)
		}
		hm.bindings = append(hm.bindings, hotkeyBinding{Definition: def, Action: h.action})
	}
	return hm, nil
}

// Run monitors hotkeys until ctx is done. Hook failures are retried a few
// times before Run gives up and returns the last error.
func (hm *HotkeyMonitor) Run(ctx context.Context) error {
	hm.mutex.Lock()
	if hm.running {
		hm.mutex.Unlock()
		return fmt.Errorf("hotkey monitor is already running")
	}
	hm.running = true
	hm.mutex.Unlock()

	defer func() {
		hm.mutex.Lock()
		hm.running = false
		hm.mutex.Unlock()
	}()

	for _, b := range hm.bindings {
		hm.logManager.LogInfo("Hotkey registered", "action", b.Action.String(), "keys", b.Definition.String())
	}

	retryCount := 0
	for {
		err := hm.monitorLoop(ctx)
		if ctx.Err() != nil {
			hm.logManager.LogInfo("Hotkey monitor stopped")
			return nil
		}

		retryCount++
		if retryCount > hm.maxRetries {
			hm.notificationManager.NotifyError("Hotkey monitor failed permanently")
			return fmt.Errorf("hotkey monitor failed after %d retries: %w", hm.maxRetries, err)
		}

		hm.logManager.LogError("Hotkey monitor error, restarting", err, "attempt", fmt.Sprintf("%d/%d", retryCount, hm.maxRetries))
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(retryCount) * hm.retryDelay):
		}
	}
}

// monitorLoop registers the hooks and processes events until ctx is done or
// the event stream dies.
func (hm *HotkeyMonitor) monitorLoop(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("hook panicked: %v", r)
		}
	}()

	for _, b := range hm.bindings {
		hook.Register(hook.KeyDown, b.Definition.Keys(), func(hook.Event) {
			go hm.Trigger(ctx, b.Action)
		})
	}

	events := hook.Start()
	done := hook.Process(events)

	select {
	case <-ctx.Done():
		hook.End()
		<-done
		return nil
	case <-done:
		return errors.New("hook event stream ended unexpectedly")
	}
}

// Trigger performs action as if its hotkey had been pressed.
func (hm *HotkeyMonitor) Trigger(ctx context.Context, action HotkeyAction) {
	hm.logManager.LogDebug("Hotkey detected", "action", action.String())

	switch action {
	case ActionStartStop:
		started, err := hm.session.Toggle(ctx, hm.readText)
		switch {
		case errors.Is(err, typing.ErrEmptyText):
			hm.logManager.LogWarning("Clipboard is empty, nothing to type")
			hm.notificationManager.NotifyInfo(AppName, "Clipboard is empty, nothing to type")
		case err != nil:
			hm.logManager.LogError("Failed to start typing", err)
			hm.notificationManager.NotifyError(fmt.Sprintf("Failed to start typing: %v", err))
		case started:
			hm.logManager.LogInfo("Typing started from clipboard")
		default:
			hm.logManager.LogInfo("Typing stopped by hotkey")
		}
	case ActionPauseResume:
		if !hm.session.TogglePause() {
			hm.logManager.LogDebug("Pause/resume ignored, nothing is typing")
		}
	}
}

package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/gen2brain/beeep"

	"github.com/taglme/typist/typing"
)

// NotificationManager handles system notifications. It observes typing jobs
// and reports starts, completions and faults according to the config.
type NotificationManager struct {
	enabled    bool
	showState  bool
	showErrors bool
	sound      bool
	logManager *LogManager

	notify func(title, message string) error
	alert  func(title, message string) error
	beep   func() error

	mu   sync.Mutex
	last typing.Status
}

// NewNotificationManager creates a new notification manager
func NewNotificationManager(config *Config, logManager *LogManager) *NotificationManager {
	return &NotificationManager{
		enabled:    config.Notifications.Enabled,
		showState:  config.Notifications.ShowState,
		showErrors: config.Notifications.ShowErrors,
		sound:      config.Notifications.Sound,
		logManager: logManager,
		notify:     func(title, message string) error { return beeep.Notify(title, message, "") },
		alert:      func(title, message string) error { return beeep.Alert(title, message, "") },
		beep:       func() error { return beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration) },
		last:       typing.StatusReady,
	}
}

// OnStateChange turns job transitions into desktop notifications.
func (nm *NotificationManager) OnStateChange(status typing.Status) {
	nm.mu.Lock()
	prev := nm.last
	nm.last = status
	nm.mu.Unlock()

	switch status {
	case typing.StatusTyping:
		if prev == typing.StatusReady || prev == typing.StatusError {
			nm.NotifyState("Typing started")
		}
	case typing.StatusPaused:
		nm.NotifyState("Typing paused")
	case typing.StatusReady:
		if prev == typing.StatusTyping || prev == typing.StatusPaused {
			nm.NotifyState("Typing finished")
			nm.Beep()
		}
	case typing.StatusError:
		nm.NotifyError("Typing stopped after an error, see the log for details")
		nm.Beep()
	}
}

// NotifyState sends a job progress notification
func (nm *NotificationManager) NotifyState(message string) {
	if !nm.enabled || !nm.showState {
		return
	}

	if err := nm.notify(AppName, message); err != nil {
		nm.logManager.LogWarning("Failed to send state notification", "error", err.Error())
	}
}

// NotifyError sends an error notification
func (nm *NotificationManager) NotifyError(message string) {
	if !nm.enabled || !nm.showErrors {
		return
	}

	if err := nm.alert(AppName+" error", message); err != nil {
		nm.logManager.LogWarning("Failed to send error notification", "error", err.Error())
	}
}

// NotifyInfo sends an informational notification
func (nm *NotificationManager) NotifyInfo(title, message string) {
	if !nm.enabled {
		return
	}

	if err := nm.notify(title, message); err != nil {
		nm.logManager.LogWarning("Failed to send info notification", "error", err.Error())
	}
}

// Beep plays the system beep when sound is enabled
func (nm *NotificationManager) Beep() {
	if !nm.sound {
		return
	}
	if err := nm.beep(); err != nil {
		nm.logManager.LogWarning("Failed to beep", "error", err.Error())
	}
}

// RetryManager handles retry logic with linear backoff
type RetryManager struct {
	maxAttempts int
	baseDelay   time.Duration
	logManager  *LogManager
}

// NewRetryManager creates a new retry manager
func NewRetryManager(maxAttempts int, baseDelay time.Duration, logManager *LogManager) *RetryManager {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &RetryManager{
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logManager:  logManager,
	}
}

// Retry executes the given function with retry logic
func (rm *RetryManager) Retry(what string, operation func() error) error {
	err := retry.Do(
		operation,
		retry.Attempts(uint(rm.maxAttempts)),
		retry.Delay(rm.baseDelay),
		retry.DelayType(func(n uint, _ error, _ *retry.Config) time.Duration {
			return time.Duration(n+1) * rm.baseDelay
		}),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			rm.logManager.LogWarning("Attempt failed, retrying",
				"operation", what,
				"attempt", fmt.Sprintf("%d/%d", n+1, rm.maxAttempts),
				"error", err.Error())
		}),
	)
	if err != nil {
		return fmt.Errorf("%s failed after %d attempts: %w", what, rm.maxAttempts, err)
	}
	return nil
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrAlreadyRunning is returned by TryLock when another live process holds
// the lock.
var ErrAlreadyRunning = errors.New("another instance is already running")

// SingleInstance keeps two copies of the application from registering the
// same global hotkeys and typing into the same window.
type SingleInstance struct {
	lockFile *os.File
	lockPath string
}

// NewSingleInstance places the lock file for appName in dir, or in the
// system temp directory when dir is empty.
func NewSingleInstance(appName, dir string) *SingleInstance {
	if dir == "" {
		dir = os.TempDir()
	}
	return &SingleInstance{
		lockPath: filepath.Join(dir, fmt.Sprintf("%s.lock", appName)),
	}
}

// TryLock acquires the lock. A lock left behind by a dead process is
// removed and taken over.
func (si *SingleInstance) TryLock() error {
	for attempt := 0; attempt < 2; attempt++ {
		file, err := os.OpenFile(si.lockPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
		if err == nil {
			if _, err := file.WriteString(strconv.Itoa(os.Getpid())); err != nil {
				file.Close()
				os.Remove(si.lockPath)
				return fmt.Errorf("write pid to lock file: %w", err)
			}
			si.lockFile = file
			return nil
		}
		if !os.IsExist(err) {
			return fmt.Errorf("create lock file: %w", err)
		}

		running, pid, err := si.GetRunningInstanceInfo()
		if err == nil && running {
			return fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
		}
		// stale or unreadable
		if err := os.Remove(si.lockPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove stale lock file: %w", err)
		}
	}
	return fmt.Errorf("%w: lock file %s keeps reappearing", ErrAlreadyRunning, si.lockPath)
}

// Release releases the lock when the application is shutting down
func (si *SingleInstance) Release() {
	if si.lockFile == nil {
		return
	}
	si.lockFile.Close()
	si.lockFile = nil
	os.Remove(si.lockPath)
}

// GetRunningInstanceInfo reports whether the pid in the lock file is alive.
func (si *SingleInstance) GetRunningInstanceInfo() (bool, int, error) {
	data, err := os.ReadFile(si.lockPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}

	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return false, 0, fmt.Errorf("invalid PID in lock file: %s", pidStr)
	}

	return isProcessRunning(pid), pid, nil
}

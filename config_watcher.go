package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fsnotify/fsnotify"
)

// configDebounce coalesces the bursts of events editors produce on save.
const configDebounce = 100 * time.Millisecond

// ParamSetter receives reloaded typing parameters. typing.Session
// implements it.
type ParamSetter interface {
	SetWPM(n int) bool
	SetTemperature(n int) bool
	SetPauseMultiplier(n int) bool
}

// ConfigWatcher reloads the typing section of the config file when it
// changes and pushes the values into the running session.
type ConfigWatcher struct {
	path       string
	base       Config
	setter     ParamSetter
	logManager *LogManager
	debounce   time.Duration
	reloaded   func()
}

// NewConfigWatcher watches path on behalf of setter. Keys missing from the
// reloaded file keep their value from base.
func NewConfigWatcher(path string, base *Config, setter ParamSetter, logManager *LogManager) *ConfigWatcher {
	return &ConfigWatcher{
		path:       path,
		base:       *base,
		setter:     setter,
		logManager: logManager,
		debounce:   configDebounce,
	}
}

// Watch blocks until ctx is done. The directory is watched instead of the
// file so that editors replacing the file on save are still seen.
func (cw *ConfigWatcher) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(cw.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch directory %s: %w", dir, err)
	}
	cw.logManager.LogInfo("Watching configuration for changes", "path", cw.path)

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(cw.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(cw.debounce, cw.reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			cw.logManager.LogWarning("Config watcher error", "error", err.Error())
		}
	}
}

// reload applies the typing parameters of the file. Each value is applied on
// its own; a rejected one leaves the previous setting in place.
func (cw *ConfigWatcher) reload() {
	config := cw.base
	if err := loadConfigFromFile(&config, cw.path); err != nil {
		cw.logManager.LogError("Failed to reload configuration", err, "path", cw.path)
		return
	}

	apply := func(name string, value int, set func(int) bool) {
		if set(value) {
			cw.logManager.LogDebug("Parameter reloaded", name, strconv.Itoa(value))
			return
		}
		cw.logManager.LogWarning("Ignoring out of range parameter", "param", name, "value", strconv.Itoa(value))
	}
	apply("wpm", config.Typing.WPM, cw.setter.SetWPM)
	apply("temperature", config.Typing.Temperature, cw.setter.SetTemperature)
	apply("pause_multiplier", config.Typing.PauseMultiplier, cw.setter.SetPauseMultiplier)

	cw.logManager.LogInfo("Configuration reloaded", "path", cw.path)
	if cw.reloaded != nil {
		cw.reloaded()
	}
}

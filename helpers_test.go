package main

import (
	"io"
	"sync"
	"testing"

	"go.uber.org/goleak"
	"go.uber.org/zap/zapcore"
)

// lumberjack starts its mill goroutine on first write and never stops it.
var ignoreLumberjack = goleak.IgnoreTopFunction("gopkg.in/natefinch/lumberjack%2ev2.(*Logger).millRun")

func newTestLogManager(t *testing.T) *LogManager {
	t.Helper()
	config := DefaultConfig()
	config.Logging.Dir = t.TempDir()
	config.Logging.Level = "debug"
	lm := newLogManager(config, zapcore.AddSync(io.Discard))
	t.Cleanup(lm.Close)
	return lm
}

// recordingInjector collects what would have been typed.
type recordingInjector struct {
	mu    sync.Mutex
	typed []string
}

func (r *recordingInjector) Tap(key string, modifiers ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.typed = append(r.typed, key)
	return nil
}

func (r *recordingInjector) InjectLiteral(s string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.typed = append(r.typed, s)
	return nil
}

func (r *recordingInjector) ReleaseAllModifiers() error { return nil }

func (r *recordingInjector) Typed() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.typed...)
}

package typing

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var errInjectFailed = errors.New("inject failed")

type call struct {
	op   string
	key  string
	mods []string
	text string
}

// fakeInjector records what the engine asked for.
type fakeInjector struct {
	mu    sync.Mutex
	calls []call

	failTaps     map[string]bool
	failLiterals map[string]bool
	failRelease  bool
	panicOnKey   string

	// onTap runs on the engine goroutine after a successful tap.
	onTap func(key string)
}

func newFakeInjector() *fakeInjector {
	return &fakeInjector{
		failTaps:     map[string]bool{},
		failLiterals: map[string]bool{},
	}
}

func (f *fakeInjector) record(c call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *fakeInjector) Tap(key string, modifiers ...string) error {
	if key == f.panicOnKey {
		panic("keyboard went away")
	}
	f.record(call{op: "tap", key: key, mods: modifiers})
	if f.failTaps[key] {
		return errInjectFailed
	}
	if f.onTap != nil {
		f.onTap(key)
	}
	return nil
}

func (f *fakeInjector) InjectLiteral(s string) error {
	f.record(call{op: "literal", text: s})
	if f.failLiterals[s] {
		return errInjectFailed
	}
	return nil
}

func (f *fakeInjector) ReleaseAllModifiers() error {
	f.record(call{op: "release"})
	if f.failRelease {
		return errInjectFailed
	}
	return nil
}

func (f *fakeInjector) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]call, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeInjector) Taps() []call {
	var taps []call
	for _, c := range f.Calls() {
		if c.op == "tap" || c.op == "literal" {
			taps = append(taps, c)
		}
	}
	return taps
}

// guardedInjector adds Caps Lock handling to the fake.
type guardedInjector struct {
	*fakeInjector
}

func (g guardedInjector) DisableCapsLock() error {
	g.record(call{op: "caps-off"})
	return nil
}

func (g guardedInjector) RestoreCapsLock() error {
	g.record(call{op: "caps-restore"})
	return nil
}

// statusRecorder is an Observer collecting every notification.
type statusRecorder struct {
	mu       sync.Mutex
	statuses []Status
}

func (r *statusRecorder) OnStateChange(s Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, s)
}

func (r *statusRecorder) Statuses() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Status, len(r.statuses))
	copy(out, r.statuses)
	return out
}

func tap(key string, mods ...string) call {
	return call{op: "tap", key: key, mods: mods}
}

func literal(s string) call {
	return call{op: "literal", text: s}
}

func waitDone(t *testing.T, e *Engine, within time.Duration) {
	t.Helper()
	select {
	case <-e.Done():
	case <-time.After(within):
		t.Fatalf("job %s still %s after %v", e.Job().ID, e.State(), within)
	}
}

func fastParams(t *testing.T) *Params {
	t.Helper()
	p := NewParams()
	require.True(t, p.SetWPM(600))
	require.True(t, p.SetTemperature(0))
	require.True(t, p.SetPauseMultiplier(0))
	return p
}

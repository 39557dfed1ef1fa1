package typing

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Session is the trigger layer: it owns the shared Params and the single
// process wide reference to the active Engine. Hotkey handlers talk to a
// Session, never to an Engine directly.
type Session struct {
	settings
	injector Injector
	params   *Params

	mu     sync.Mutex
	active *Engine
}

// NewSession builds a session typing through injector. A nil params uses
// the defaults.
func NewSession(injector Injector, params *Params, opts ...Option) *Session {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	if s.delays == nil {
		s.delays = NewDelayModel(nil)
	}
	if params == nil {
		params = NewParams()
	}
	return &Session{
		settings: s,
		injector: injector,
		params:   params,
	}
}

// Params returns the live parameters.
func (s *Session) Params() *Params { return s.params }

// SetWPM updates the live WPM when valid.
func (s *Session) SetWPM(n int) bool { return s.params.SetWPM(n) }

// SetTemperature updates the live temperature when valid.
func (s *Session) SetTemperature(n int) bool { return s.params.SetTemperature(n) }

// SetPauseMultiplier updates the live pause multiplier when valid.
func (s *Session) SetPauseMultiplier(n int) bool { return s.params.SetPauseMultiplier(n) }

// Start creates a job for text and runs it. Only one job may be active.
func (s *Session) Start(ctx context.Context, text string) (*Engine, error) {
	if text == "" {
		return nil, ErrEmptyText
	}

	s.mu.Lock()
	for s.active != nil {
		prev := s.active
		if !prev.ended() {
			s.mu.Unlock()
			return nil, ErrBusy
		}
		// prev has stopped typing but is still being released
		s.mu.Unlock()
		select {
		case <-prev.Done():
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		s.mu.Lock()
		if s.active == prev {
			s.active = nil
		}
	}
	e := newEngine(NewJob(text, s.params), s.injector, s.settings)
	e.onFinish = s.release
	s.active = e
	s.mu.Unlock()

	if err := e.Start(ctx); err != nil {
		s.release(e)
		return nil, err
	}
	return e, nil
}

// Toggle is the start/stop hotkey: it stops a running job, or reads the text
// to type and starts a new one. It reports whether a job was started.
func (s *Session) Toggle(ctx context.Context, text func() (string, error)) (bool, error) {
	if s.Stop() {
		return false, nil
	}
	t, err := text()
	if err != nil {
		return false, fmt.Errorf("read text to type: %w", err)
	}
	if _, err := s.Start(ctx, t); err != nil {
		return false, err
	}
	return true, nil
}

// Stop stops the active job.
func (s *Session) Stop() bool {
	if e := s.Active(); e != nil {
		return e.Stop()
	}
	return false
}

// Pause pauses the active job.
func (s *Session) Pause() bool {
	if e := s.Active(); e != nil {
		return e.Pause()
	}
	return false
}

// Resume resumes the active job.
func (s *Session) Resume() bool {
	if e := s.Active(); e != nil {
		return e.Resume()
	}
	return false
}

// TogglePause is the pause/resume hotkey.
func (s *Session) TogglePause() bool {
	e := s.Active()
	if e == nil {
		return false
	}
	if e.State() == Paused {
		return e.Resume()
	}
	return e.Pause()
}

// State reports whether a job is typing or paused.
func (s *Session) State() Snapshot {
	e := s.Active()
	if e == nil {
		return Snapshot{}
	}
	st := e.State()
	return Snapshot{
		IsTyping: st == Typing || st == Paused,
		IsPaused: st == Paused,
	}
}

// Active returns the active engine or nil.
func (s *Session) Active() *Engine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Shutdown stops the active job and waits for it to finish or ctx to end.
func (s *Session) Shutdown(ctx context.Context) error {
	e := s.Active()
	if e == nil {
		return nil
	}
	e.Stop()
	select {
	case <-e.Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for job %s: %w", e.job.ID, ctx.Err())
	}
}

func (s *Session) release(e *Engine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == e {
		s.active = nil
		s.logger.Debug("Active job released", zap.String("job", e.job.ID))
	}
}

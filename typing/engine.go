package typing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrNotReady is returned by Start on an engine that already ran.
	ErrNotReady = errors.New("typing engine is not ready")
	// ErrBusy is returned by Session.Start while another job is active.
	ErrBusy = errors.New("a typing job is already active")
	// ErrEmptyText is returned when there is nothing to type.
	ErrEmptyText = errors.New("nothing to type")
)

const (
	// DefaultSettleDelay lets the hotkey chord that triggered the run be
	// released before the first character goes out.
	DefaultSettleDelay = time.Second
	// MinSettleDelay is the shortest settle delay WithSettleDelay accepts.
	MinSettleDelay = 500 * time.Millisecond
	// DefaultPollInterval bounds how long a paused run sleeps between checks.
	DefaultPollInterval = 100 * time.Millisecond
)

// Job is one activation of the start trigger: the text to reproduce and a
// handle on the live parameters. Jobs are never reused.
type Job struct {
	ID     string
	text   []rune
	params *Params
}

// NewJob captures text. params is shared, not copied, so later setter calls
// affect the job while it runs.
func NewJob(text string, params *Params) *Job {
	if params == nil {
		params = NewParams()
	}
	return &Job{
		ID:     uuid.NewString(),
		text:   []rune(text),
		params: params,
	}
}

// Len is the number of characters in the job.
func (j *Job) Len() int { return len(j.text) }

// Params returns the live parameters the job reads.
func (j *Job) Params() *Params { return j.params }

type settings struct {
	observer Observer
	logger   *zap.Logger
	delays   *DelayModel
	settle   time.Duration
	poll     time.Duration
}

func defaultSettings() settings {
	return settings{
		logger: zap.NewNop(),
		settle: DefaultSettleDelay,
		poll:   DefaultPollInterval,
	}
}

// Option customizes an Engine or a Session.
type Option func(*settings)

// WithObserver sets the state change observer.
func WithObserver(o Observer) Option {
	return func(s *settings) { s.observer = o }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDelayModel sets the delay model, mostly to seed it in tests.
func WithDelayModel(m *DelayModel) Option {
	return func(s *settings) { s.delays = m }
}

// WithSettleDelay overrides the wait between start and the first character.
// Values below MinSettleDelay are raised to it.
func WithSettleDelay(d time.Duration) Option {
	return withSettleDelay(max(d, MinSettleDelay))
}

func withSettleDelay(d time.Duration) Option {
	return func(s *settings) {
		if d >= 0 {
			s.settle = d
		}
	}
}

// WithPollInterval overrides the paused polling interval.
func WithPollInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.poll = d
		}
	}
}

// Engine runs a single Job. It assumes it is the only engine injecting
// keys; Session is what guarantees that.
type Engine struct {
	settings
	job      *Job
	injector Injector
	onFinish func(*Engine)

	mu     sync.Mutex
	state  State
	over   bool
	cancel context.CancelFunc
	wake   chan struct{}
	cursor atomic.Int64

	// notifyMu keeps notifications in transition order without holding mu
	// while observers run.
	notifyMu sync.Mutex
	done     chan struct{}
}

// NewEngine prepares an engine in the Ready state.
func NewEngine(job *Job, injector Injector, opts ...Option) *Engine {
	s := defaultSettings()
	for _, opt := range opts {
		opt(&s)
	}
	return newEngine(job, injector, s)
}

func newEngine(job *Job, injector Injector, s settings) *Engine {
	if s.delays == nil {
		s.delays = NewDelayModel(nil)
	}
	return &Engine{
		settings: s,
		job:      job,
		injector: injector,
		state:    Ready,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Job returns the job the engine runs.
func (e *Engine) Job() *Job { return e.job }

// Cursor is the number of characters processed so far.
func (e *Engine) Cursor() int { return int(e.cursor.Load()) }

// Done is closed once the run has fully finished and observers were told.
func (e *Engine) Done() <-chan struct{} { return e.done }

// State returns the current run state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// ended reports whether the run loop has exited.
func (e *Engine) ended() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.over
}

// Start moves a Ready engine to Typing and launches the run loop. Cancelling
// ctx has the same effect as Stop.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.state != Ready {
		e.mu.Unlock()
		return fmt.Errorf("start job %s: %w", e.job.ID, ErrNotReady)
	}
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.logger.Info("Typing job started",
		zap.String("job", e.job.ID),
		zap.Int("chars", e.job.Len()),
		zap.Int("wpm", e.job.params.WPM()),
		zap.Int("temperature", e.job.params.Temperature()),
		zap.Int("pause", e.job.params.PauseMultiplier()))
	e.transitionAndUnlock(Typing)

	go e.run(runCtx)
	return nil
}

// Pause suspends a typing run at the next character boundary. It reports
// whether the state changed.
func (e *Engine) Pause() bool {
	e.mu.Lock()
	if e.state != Typing {
		e.mu.Unlock()
		return false
	}
	e.transitionAndUnlock(Paused)
	return true
}

// Resume continues a paused run.
func (e *Engine) Resume() bool {
	e.mu.Lock()
	if e.state != Paused {
		e.mu.Unlock()
		return false
	}
	e.poke()
	e.transitionAndUnlock(Typing)
	return true
}

// Stop abandons the run. Observers hear about it once the loop has exited.
func (e *Engine) Stop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Typing && e.state != Paused {
		return false
	}
	e.state = Stopped
	e.cancel()
	e.poke()
	e.logger.Info("Typing job stop requested", zap.String("job", e.job.ID), zap.Int("cursor", e.Cursor()))
	return true
}

// transitionAndUnlock must be called with mu held and returns with it
// released.
func (e *Engine) transitionAndUnlock(s State) {
	e.state = s
	e.notifyMu.Lock()
	e.mu.Unlock()
	defer e.notifyMu.Unlock()
	deliver(e.observer, s.Status(), e.logger)
}

func (e *Engine) poke() {
	select {
	case e.wake <- struct{}{}:
	default:
	}
}

func (e *Engine) run(ctx context.Context) {
	final := Completed
	guard, hasGuard := e.injector.(CapsLockGuard)
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("Typing job failed",
				zap.String("job", e.job.ID),
				zap.Int("cursor", e.Cursor()),
				zap.Any("panic", r))
			final = Error
		}
		if hasGuard {
			e.bestEffort("restore caps lock", guard.RestoreCapsLock)
		}
		e.finish(final)
	}()

	e.bestEffort("release modifiers", e.injector.ReleaseAllModifiers)
	if hasGuard {
		e.bestEffort("disable caps lock", guard.DisableCapsLock)
	}
	if !sleepContext(ctx, e.settle) {
		final = Stopped
		return
	}

	text := e.job.text
	for i := e.Cursor(); i < len(text); i++ {
		if !e.waitWhilePaused(ctx) {
			final = Stopped
			return
		}

		r := text[i]
		// a CRLF pair is a single enter
		if r != '\r' || i+1 == len(text) || text[i+1] != '\n' {
			e.typeRune(r)
		}
		e.cursor.Store(int64(i + 1))
		if i+1 == len(text) {
			break
		}

		p := e.job.params
		d := e.delays.Duration(r, text[i+1], p.WPM(), p.Temperature(), p.PauseMultiplier())
		if !sleepContext(ctx, d) {
			final = Stopped
			return
		}
	}
}

// typeRune taps the character, falling back to literal injection, and
// finally skipping it.
func (e *Engine) typeRune(r rune) {
	in := Classify(r)
	if in.Kind == KindTap {
		err := e.injector.Tap(in.Key, in.Modifiers...)
		if err == nil {
			return
		}
		e.logger.Debug("Key tap failed, injecting literal",
			zap.String("job", e.job.ID),
			zap.Stringer("instruction", in),
			zap.Error(err))
	}
	if err := e.injector.InjectLiteral(string(r)); err != nil {
		e.logger.Debug("Skipping character",
			zap.String("job", e.job.ID),
			zap.String("char", string(r)),
			zap.Error(err))
	}
}

func (e *Engine) waitWhilePaused(ctx context.Context) bool {
	for {
		switch e.State() {
		case Typing:
			return ctx.Err() == nil
		case Paused:
		default:
			return false
		}
		select {
		case <-ctx.Done():
			return false
		case <-e.wake:
		case <-time.After(e.poll):
		}
	}
}

func (e *Engine) finish(final State) {
	e.mu.Lock()
	if e.state == Stopped && final != Error {
		final = Stopped
	}
	e.state = final
	e.over = true
	e.cancel()
	e.mu.Unlock()

	if e.onFinish != nil {
		e.onFinish(e)
	}

	e.notifyMu.Lock()
	deliver(e.observer, final.Status(), e.logger)
	e.notifyMu.Unlock()

	e.logger.Info("Typing job finished",
		zap.String("job", e.job.ID),
		zap.Stringer("state", final),
		zap.Int("cursor", e.Cursor()),
		zap.Int("chars", e.job.Len()))
	close(e.done)
}

func (e *Engine) bestEffort(what string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("Injector panicked", zap.String("job", e.job.ID), zap.String("op", what), zap.Any("panic", r))
		}
	}()
	if err := fn(); err != nil {
		e.logger.Debug("Ignoring injector failure", zap.String("job", e.job.ID), zap.String("op", what), zap.Error(err))
	}
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

package typing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func newTestSession(t *testing.T, inj Injector, opts ...Option) (*Session, *statusRecorder) {
	t.Helper()
	rec := &statusRecorder{}
	base := []Option{
		WithObserver(rec),
		WithLogger(zaptest.NewLogger(t)),
		withSettleDelay(0),
		WithPollInterval(5 * time.Millisecond),
	}
	return NewSession(inj, fastParams(t), append(base, opts...)...), rec
}

func TestSessionStartRunsAndReleases(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, rec := newTestSession(t, newFakeInjector())
	assert.Equal(t, Snapshot{}, s.State())

	e, err := s.Start(context.Background(), "hey")
	require.NoError(t, err)
	assert.Same(t, e, s.Active())

	waitDone(t, e, 2*time.Second)
	assert.Nil(t, s.Active())
	assert.Equal(t, Snapshot{}, s.State())
	assert.Equal(t, []Status{StatusTyping, StatusReady}, rec.Statuses())
}

func TestSessionRejectsEmptyAndConcurrentStarts(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, _ := newTestSession(t, newFakeInjector(), WithSettleDelay(time.Hour))

	_, err := s.Start(context.Background(), "")
	assert.True(t, errors.Is(err, ErrEmptyText))

	e, err := s.Start(context.Background(), "first")
	require.NoError(t, err)

	_, err = s.Start(context.Background(), "second")
	assert.True(t, errors.Is(err, ErrBusy))
	assert.Same(t, e, s.Active())

	require.NoError(t, s.Shutdown(context.Background()))
	assert.Nil(t, s.Active())
}

func TestSessionStateSnapshot(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, _ := newTestSession(t, newFakeInjector(), WithSettleDelay(time.Hour))
	_, err := s.Start(context.Background(), "abc")
	require.NoError(t, err)

	assert.Equal(t, Snapshot{IsTyping: true}, s.State())
	assert.Equal(t, StatusTyping, s.State().Status())

	assert.True(t, s.TogglePause())
	assert.Equal(t, Snapshot{IsTyping: true, IsPaused: true}, s.State())
	assert.Equal(t, StatusPaused, s.State().Status())
	assert.False(t, s.Pause())

	assert.True(t, s.TogglePause())
	assert.Equal(t, Snapshot{IsTyping: true}, s.State())
	assert.False(t, s.Resume())

	assert.True(t, s.Stop())
	assert.Equal(t, Snapshot{}, s.State())
	require.NoError(t, s.Shutdown(context.Background()))
}

func TestSessionIdleTriggersAreNoops(t *testing.T) {
	s, rec := newTestSession(t, newFakeInjector())
	assert.False(t, s.Stop())
	assert.False(t, s.Pause())
	assert.False(t, s.Resume())
	assert.False(t, s.TogglePause())
	assert.NoError(t, s.Shutdown(context.Background()))
	assert.Empty(t, rec.Statuses())
}

func TestSessionToggle(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, rec := newTestSession(t, newFakeInjector(), WithSettleDelay(time.Hour))
	reads := 0
	clipboard := func() (string, error) {
		reads++
		return "from the clipboard", nil
	}

	started, err := s.Toggle(context.Background(), clipboard)
	require.NoError(t, err)
	assert.True(t, started)
	e := s.Active()
	require.NotNil(t, e)

	started, err = s.Toggle(context.Background(), clipboard)
	require.NoError(t, err)
	assert.False(t, started)
	waitDone(t, e, time.Second)

	assert.Equal(t, 1, reads, "stopping must not read the clipboard")
	assert.Equal(t, []Status{StatusTyping, StatusReady}, rec.Statuses())
}

func TestSessionToggleWhileEndedJobIsReleased(t *testing.T) {
	defer goleak.VerifyNone(t)

	s, rec := newTestSession(t, newFakeInjector())
	prev := newEngine(NewJob("old", s.params), s.injector, s.settings)
	prev.state = Completed
	prev.over = true
	s.active = prev

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Start(cancelled, "new")
	assert.ErrorIs(t, err, context.Canceled)

	released := make(chan struct{})
	go func() {
		defer close(released)
		time.Sleep(20 * time.Millisecond)
		s.release(prev)
		close(prev.done)
	}()

	started, err := s.Toggle(context.Background(), func() (string, error) { return "new", nil })
	require.NoError(t, err)
	assert.True(t, started)

	e := s.Active()
	require.NotNil(t, e)
	assert.NotSame(t, prev, e)
	waitDone(t, e, 2*time.Second)
	<-released

	assert.Equal(t, "new", string(e.Job().text))
	assert.Equal(t, []Status{StatusTyping, StatusReady}, rec.Statuses())
}

func TestSessionToggleErrors(t *testing.T) {
	s, rec := newTestSession(t, newFakeInjector())

	_, err := s.Toggle(context.Background(), func() (string, error) { return "", nil })
	assert.True(t, errors.Is(err, ErrEmptyText))

	boom := errors.New("clipboard locked")
	_, err = s.Toggle(context.Background(), func() (string, error) { return "", boom })
	assert.True(t, errors.Is(err, boom))

	assert.Nil(t, s.Active())
	assert.Empty(t, rec.Statuses())
}

func TestSessionSettersValidate(t *testing.T) {
	s, _ := newTestSession(t, newFakeInjector())

	assert.False(t, s.SetWPM(5))
	assert.False(t, s.SetWPM(1000))
	assert.Equal(t, 600, s.Params().WPM())
	assert.True(t, s.SetWPM(80))
	assert.Equal(t, 80, s.Params().WPM())

	assert.False(t, s.SetTemperature(101))
	assert.True(t, s.SetTemperature(30))
	assert.False(t, s.SetPauseMultiplier(-3))
	assert.True(t, s.SetPauseMultiplier(70))
	assert.Equal(t, 30, s.Params().Temperature())
	assert.Equal(t, 70, s.Params().PauseMultiplier())
}

func TestSessionNewJobAfterFault(t *testing.T) {
	defer goleak.VerifyNone(t)

	inj := newFakeInjector()
	inj.panicOnKey = "x"
	s, rec := newTestSession(t, inj)

	e, err := s.Start(context.Background(), "x")
	require.NoError(t, err)
	waitDone(t, e, time.Second)
	assert.Equal(t, Error, e.State())
	assert.Nil(t, s.Active())

	e2, err := s.Start(context.Background(), "y")
	require.NoError(t, err)
	assert.NotSame(t, e, e2)
	assert.NotEqual(t, e.Job().ID, e2.Job().ID)
	waitDone(t, e2, time.Second)

	assert.Equal(t, []Status{StatusTyping, StatusError, StatusTyping, StatusReady}, rec.Statuses())
}

func TestSessionShutdownTimesOut(t *testing.T) {
	defer goleak.VerifyNone(t)

	inj := newFakeInjector()
	block := make(chan struct{})
	inj.onTap = func(string) { <-block }
	s, _ := newTestSession(t, inj)

	e, err := s.Start(context.Background(), "ab")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return len(inj.Taps()) == 1 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = s.Shutdown(ctx)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	close(block)
	waitDone(t, e, time.Second)
	assert.Equal(t, Stopped, e.State())
}

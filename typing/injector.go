package typing

// Injector is the platform primitive the engine types through. Every call
// may fail; the engine treats a returned error as a per-character problem
// and never aborts the job because of it. A panic is different: it escapes
// the per-character path and faults the run.
type Injector interface {
	// Tap presses and releases key while holding modifiers.
	Tap(key string, modifiers ...string) error
	// InjectLiteral types s without discrete key simulation.
	InjectLiteral(s string) error
	// ReleaseAllModifiers lifts cmd, ctrl, alt and shift.
	ReleaseAllModifiers() error
}

// CapsLockGuard is implemented by injectors that can switch Caps Lock off
// for the duration of a run and put it back afterwards.
type CapsLockGuard interface {
	DisableCapsLock() error
	RestoreCapsLock() error
}

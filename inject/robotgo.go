package inject

import (
	"fmt"
	"sync"

	"github.com/go-vgo/robotgo"
	"github.com/hashicorp/go-multierror"
)

// Robotgo types through robotgo's key tap and unicode string injection.
type Robotgo struct {
	mu   sync.Mutex
	caps capsLock
}

// NewRobotgo returns the default backend.
func NewRobotgo() *Robotgo {
	r := &Robotgo{}
	r.caps.toggle = func() error { return robotgo.KeyTap("capslock") }
	return r
}

// Tap presses key with modifiers held.
func (r *Robotgo) Tap(key string, modifiers ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := robotgoKeyName(key)
	if len(modifiers) == 0 {
		return robotgo.KeyTap(name)
	}
	args := make([]interface{}, len(modifiers))
	for i, m := range modifiers {
		args[i] = robotgoKeyName(m)
	}
	if err := robotgo.KeyTap(name, args...); err != nil {
		return fmt.Errorf("tap %s %v: %w", name, modifiers, err)
	}
	return nil
}

// InjectLiteral types s as unicode text.
func (r *Robotgo) InjectLiteral(s string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return typeLiteral(s)
}

// ReleaseAllModifiers sends a key up for every modifier, collecting errors.
func (r *Robotgo) ReleaseAllModifiers() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result *multierror.Error
	for _, key := range modifierKeys {
		if err := robotgo.KeyToggle(key, "up"); err != nil {
			result = multierror.Append(result, fmt.Errorf("release %s: %w", key, err))
		}
	}
	return result.ErrorOrNil()
}

// DisableCapsLock turns Caps Lock off if it is on.
func (r *Robotgo) DisableCapsLock() error { return r.caps.disable() }

// RestoreCapsLock puts Caps Lock back the way DisableCapsLock found it.
func (r *Robotgo) RestoreCapsLock() error { return r.caps.restore() }

func typeLiteral(s string) error {
	if s == "" {
		return nil
	}
	robotgo.TypeStr(s)
	return nil
}

//go:build linux || windows

package inject

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/micmonay/keybd_event"

	"github.com/taglme/typist/typing"
)

// linuxWarmup gives uinput time to register the virtual keyboard; keys sent
// earlier are lost.
const linuxWarmup = 2 * time.Second

// keybdCodes covers what is identical across keybd_event platforms. Other
// keys report ErrUnknownKey and the engine falls back to literal injection.
var keybdCodes = map[string]int{
	"a": keybd_event.VK_A, "b": keybd_event.VK_B, "c": keybd_event.VK_C,
	"d": keybd_event.VK_D, "e": keybd_event.VK_E, "f": keybd_event.VK_F,
	"g": keybd_event.VK_G, "h": keybd_event.VK_H, "i": keybd_event.VK_I,
	"j": keybd_event.VK_J, "k": keybd_event.VK_K, "l": keybd_event.VK_L,
	"m": keybd_event.VK_M, "n": keybd_event.VK_N, "o": keybd_event.VK_O,
	"p": keybd_event.VK_P, "q": keybd_event.VK_Q, "r": keybd_event.VK_R,
	"s": keybd_event.VK_S, "t": keybd_event.VK_T, "u": keybd_event.VK_U,
	"v": keybd_event.VK_V, "w": keybd_event.VK_W, "x": keybd_event.VK_X,
	"y": keybd_event.VK_Y, "z": keybd_event.VK_Z,
	"0": keybd_event.VK_0, "1": keybd_event.VK_1, "2": keybd_event.VK_2,
	"3": keybd_event.VK_3, "4": keybd_event.VK_4, "5": keybd_event.VK_5,
	"6": keybd_event.VK_6, "7": keybd_event.VK_7, "8": keybd_event.VK_8,
	"9": keybd_event.VK_9,
	"space": keybd_event.VK_SPACE,
	"enter": keybd_event.VK_ENTER,
	"tab":   keybd_event.VK_TAB,
}

// keyBonding is the part of keybd_event.KeyBonding Keybd drives.
type keyBonding interface {
	Clear()
	SetKeys(keys ...int)
	HasSHIFT(bool)
	HasCTRL(bool)
	HasALT(bool)
	HasSuper(bool)
	Launching() error
	Release() error
}

// Keybd types through a keybd_event key bonding. Literal text has no
// keybd_event equivalent and goes through robotgo.
type Keybd struct {
	mu      sync.Mutex
	kb      keyBonding
	literal func(string) error
	caps    capsLock
}

// NewKeybd creates the key bonding. On linux this blocks for the uinput
// warm-up.
func NewKeybd() (*Keybd, error) {
	kb, err := keybd_event.NewKeyBonding()
	if err != nil {
		return nil, fmt.Errorf("initialize keyboard: %w", err)
	}
	if runtime.GOOS == "linux" {
		time.Sleep(linuxWarmup)
	}

	k := &Keybd{kb: &kb, literal: typeLiteral}
	k.caps.toggle = func() error {
		k.mu.Lock()
		defer k.mu.Unlock()
		return k.launch(keybd_event.VK_CAPSLOCK, nil)
	}
	return k, nil
}

func newKeybd() (typing.Injector, error) {
	k, err := NewKeybd()
	if err != nil {
		return nil, err
	}
	return k, nil
}

// Tap presses key with modifiers held.
func (k *Keybd) Tap(key string, modifiers ...string) error {
	code, ok := keybdCodes[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.launch(code, modifiers)
}

// InjectLiteral delegates to robotgo.
func (k *Keybd) InjectLiteral(s string) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.literal(s)
}

// ReleaseAllModifiers sends key up for shift, ctrl, alt and super.
func (k *Keybd) ReleaseAllModifiers() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.kb.Clear()
	defer k.kb.Clear()
	k.kb.HasSHIFT(true)
	k.kb.HasCTRL(true)
	k.kb.HasALT(true)
	k.kb.HasSuper(true)
	if err := k.kb.Release(); err != nil {
		return fmt.Errorf("release modifiers: %w", err)
	}
	return nil
}

// DisableCapsLock turns Caps Lock off if it is on.
func (k *Keybd) DisableCapsLock() error { return k.caps.disable() }

// RestoreCapsLock puts Caps Lock back the way DisableCapsLock found it.
func (k *Keybd) RestoreCapsLock() error { return k.caps.restore() }

// launch must be called with mu held.
func (k *Keybd) launch(code int, modifiers []string) error {
	k.kb.Clear()
	k.kb.SetKeys(code)
	for _, m := range modifiers {
		switch robotgoKeyName(m) {
		case "shift":
			k.kb.HasSHIFT(true)
		case "ctrl":
			k.kb.HasCTRL(true)
		case "alt":
			k.kb.HasALT(true)
		case "cmd":
			k.kb.HasSuper(true)
		default:
			return fmt.Errorf("%w: modifier %s", ErrUnknownKey, m)
		}
	}
	return k.kb.Launching()
}

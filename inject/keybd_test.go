//go:build linux || windows

package inject

import (
	"errors"
	"testing"

	"github.com/micmonay/keybd_event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBonding records the flags set before each Launching or Release.
type fakeBonding struct {
	keys                    []int
	shift, ctrl, alt, super bool

	launched []fakeBonding
	released []fakeBonding
	err      error
}

func (f *fakeBonding) Clear() {
	f.keys = nil
	f.shift, f.ctrl, f.alt, f.super = false, false, false, false
}
func (f *fakeBonding) SetKeys(keys ...int) { f.keys = keys }
func (f *fakeBonding) HasSHIFT(b bool)     { f.shift = b }
func (f *fakeBonding) HasCTRL(b bool)      { f.ctrl = b }
func (f *fakeBonding) HasALT(b bool)       { f.alt = b }
func (f *fakeBonding) HasSuper(b bool)     { f.super = b }

func (f *fakeBonding) snapshot() fakeBonding {
	return fakeBonding{keys: f.keys, shift: f.shift, ctrl: f.ctrl, alt: f.alt, super: f.super}
}

func (f *fakeBonding) Launching() error {
	f.launched = append(f.launched, f.snapshot())
	return f.err
}

func (f *fakeBonding) Release() error {
	f.released = append(f.released, f.snapshot())
	return f.err
}

func TestKeybdReleaseAllModifiers(t *testing.T) {
	kb := &fakeBonding{}
	k := &Keybd{kb: kb}

	require.NoError(t, k.ReleaseAllModifiers())
	require.Len(t, kb.released, 1)
	assert.Equal(t, fakeBonding{shift: true, ctrl: true, alt: true, super: true}, kb.released[0])
	assert.Equal(t, fakeBonding{}, kb.snapshot(), "flags are cleared afterwards")

	kb.err = errors.New("uinput closed")
	assert.ErrorIs(t, k.ReleaseAllModifiers(), kb.err)
}

func TestKeybdTap(t *testing.T) {
	kb := &fakeBonding{}
	k := &Keybd{kb: kb}

	require.NoError(t, k.Tap("v", "command", "shift"))
	require.NoError(t, k.Tap("a"))
	assert.Equal(t, []fakeBonding{
		{keys: []int{keybd_event.VK_V}, shift: true, super: true},
		{keys: []int{keybd_event.VK_A}},
	}, kb.launched)

	assert.ErrorIs(t, k.Tap("f13"), ErrUnknownKey)
	assert.ErrorIs(t, k.Tap("a", "hyper"), ErrUnknownKey)
	assert.Len(t, kb.launched, 2)
}

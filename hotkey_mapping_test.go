package main

import (
	"testing"

	hook "github.com/robotn/gohook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyMappingParse(t *testing.T) {
	tests := []struct {
		goos        string
		accelerator string
		want        []string
	}{
		{"linux", "CommandOrControl+Alt+V", []string{"alt", "ctrl", "v"}},
		{"windows", "CmdOrCtrl+Shift+P", []string{"ctrl", "shift", "p"}},
		{"darwin", "CommandOrControl+Alt+V", []string{"alt", "cmd", "v"}},
		{"darwin", "Option+Escape", []string{"alt", "esc"}},
		{"linux", "F12", []string{"f12"}},
		{"linux", "ctrl + shift + Return", []string{"ctrl", "shift", "enter"}},
		{"linux", "Control+Ctrl+1", []string{"ctrl", "1"}},
	}

	for _, test := range tests {
		t.Run(test.goos+" "+test.accelerator, func(t *testing.T) {
			def, err := newKeyMapping(test.goos).Parse(test.accelerator)
			require.NoError(t, err)
			assert.Equal(t, test.want, def.Keys())
			assert.Equal(t, test.accelerator, def.Name)
		})
	}
}

func TestKeyMappingParseErrors(t *testing.T) {
	km := newKeyMapping("linux")
	for _, accelerator := range []string{
		"", "  ", "Ctrl+", "Hyper+V", "Ctrl+Shift", "Ctrl+PrintScreen", "Ctrl++V",
		"Ctrl+Home", "Ctrl+Alt+End", "Ctrl+Backspace", "Alt+Insert",
	} {
		t.Run(accelerator, func(t *testing.T) {
			_, err := km.Parse(accelerator)
			assert.Error(t, err)
		})
	}
}

func TestKeyMappingKeysAreRegistrable(t *testing.T) {
	for _, accelerator := range []string{"CommandOrControl+Alt+V", "Ctrl+Shift+F9", "Alt+Escape", "Ctrl+Return", "Shift+7"} {
		t.Run(accelerator, func(t *testing.T) {
			def, err := newKeyMapping("linux").Parse(accelerator)
			require.NoError(t, err)
			for _, key := range def.Keys() {
				assert.NotZero(t, hook.Keycode[key], key)
			}
		})
	}
}

func TestKeyMappingSame(t *testing.T) {
	km := newKeyMapping("linux")
	assert.True(t, km.Same("CommandOrControl+Alt+V", "alt+ctrl+v"))
	assert.False(t, km.Same("CommandOrControl+Alt+V", "CommandOrControl+Shift+V"))
	assert.False(t, km.Same("bogus", "bogus"))

	assert.False(t, newKeyMapping("darwin").Same("CommandOrControl+V", "Ctrl+V"))
}

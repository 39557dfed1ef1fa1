package main

import (
	"fmt"
	"runtime"
	"sort"
	"strings"

	hook "github.com/robotn/gohook"
)

// KeyMapping turns accelerator strings such as "CommandOrControl+Alt+V" into
// the key names gohook registers.
type KeyMapping struct {
	goos        string
	known       func(name string) bool
	modifierMap map[string]string
}

// NewKeyMapping creates a key mapping for the running platform.
func NewKeyMapping() *KeyMapping {
	return newKeyMapping(runtime.GOOS)
}

func newKeyMapping(goos string) *KeyMapping {
	km := &KeyMapping{
		goos:        goos,
		known:       hookKnows,
		modifierMap: make(map[string]string),
	}
	km.initializeKeyMaps()
	return km
}

// hookKnows reports whether gohook has a keycode for name. Keys it cannot
// resolve would register a chord that never fires.
func hookKnows(name string) bool {
	_, ok := hook.Keycode[name]
	return ok
}

// initializeKeyMaps sets up the modifier spellings
func (km *KeyMapping) initializeKeyMaps() {
	primary := "ctrl"
	if km.goos == "darwin" {
		primary = "cmd"
	}
	km.modifierMap["commandorcontrol"] = primary
	km.modifierMap["cmdorctrl"] = primary
	km.modifierMap["command"] = "cmd"
	km.modifierMap["cmd"] = "cmd"
	km.modifierMap["super"] = "cmd"
	km.modifierMap["meta"] = "cmd"
	km.modifierMap["control"] = "ctrl"
	km.modifierMap["ctrl"] = "ctrl"
	km.modifierMap["alt"] = "alt"
	km.modifierMap["option"] = "alt"
	km.modifierMap["shift"] = "shift"
}

// keyAliases are accepted spellings of key names.
var keyAliases = map[string]string{
	"escape": "esc",
	"return": "enter",
	"del":    "delete",
}

// HotkeyDefinition represents a parsed hotkey
type HotkeyDefinition struct {
	Name      string   // Accelerator as written in the config
	Key       string   // Primary key name
	Modifiers []string // Normalized, sorted modifier names
}

// Keys returns modifiers followed by the key, as gohook expects.
func (d *HotkeyDefinition) Keys() []string {
	keys := append([]string{}, d.Modifiers...)
	return append(keys, d.Key)
}

func (d *HotkeyDefinition) String() string {
	return strings.Join(d.Keys(), "+")
}

// Parse validates accelerator and resolves it for this platform.
func (km *KeyMapping) Parse(accelerator string) (*HotkeyDefinition, error) {
	if strings.TrimSpace(accelerator) == "" {
		return nil, fmt.Errorf("hotkey cannot be empty")
	}

	parts := strings.Split(accelerator, "+")
	def := &HotkeyDefinition{Name: accelerator}
	seen := make(map[string]bool)

	for i, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			return nil, fmt.Errorf("empty key in hotkey %q", accelerator)
		}
		if i < len(parts)-1 {
			mod, ok := km.modifierMap[name]
			if !ok {
				return nil, fmt.Errorf("unsupported modifier %q in hotkey %q", part, accelerator)
			}
			if !seen[mod] {
				seen[mod] = true
				def.Modifiers = append(def.Modifiers, mod)
			}
			continue
		}
		if alias, ok := keyAliases[name]; ok {
			name = alias
		}
		if !km.known(name) {
			return nil, fmt.Errorf("unsupported key %q in hotkey %q", part, accelerator)
		}
		def.Key = name
	}

	sort.Strings(def.Modifiers)
	return def, nil
}

// Same reports whether a and b resolve to the same chord. Unparsable
// accelerators are never the same.
func (km *KeyMapping) Same(a, b string) bool {
	da, err := km.Parse(a)
	if err != nil {
		return false
	}
	db, err := km.Parse(b)
	if err != nil {
		return false
	}
	return da.String() == db.String()
}

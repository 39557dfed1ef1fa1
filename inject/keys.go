package inject

import "strings"

// robotgoKeys translates the classifier's key names into robotgo's. Names
// not listed are passed through.
var robotgoKeys = map[string]string{
	"minus":         "-",
	"equal":         "=",
	"left_bracket":  "[",
	"right_bracket": "]",
	"backslash":     "\\",
	"semicolon":     ";",
	"quote":         "'",
	"comma":         ",",
	"period":        ".",
	"slash":         "/",
	"backquote":     "`",
	"escape":        "esc",
	"win":           "cmd",
	"command":       "cmd",
	"control":       "ctrl",
}

// modifierKeys are released before every run.
var modifierKeys = []string{"cmd", "ctrl", "alt", "shift"}

func robotgoKeyName(key string) string {
	key = strings.ToLower(key)
	if name, ok := robotgoKeys[key]; ok {
		return name
	}
	return key
}

package inject

import (
	"os/exec"
	"regexp"
)

var xsetCapsLock = regexp.MustCompile(`Caps Lock:\s+(on|off)`)

// capsLockOn reads the X keyboard LED state through xset. Without X, or
// without xset, Caps Lock is assumed off.
func capsLockOn() bool {
	out, err := exec.Command("xset", "q").Output()
	if err != nil {
		return false
	}
	return parseXsetCapsLock(out)
}

func parseXsetCapsLock(out []byte) bool {
	m := xsetCapsLock.FindSubmatch(out)
	return m != nil && string(m[1]) == "on"
}

package inject

import "syscall"

var (
	user32      = syscall.NewLazyDLL("user32.dll")
	getKeyState = user32.NewProc("GetKeyState")
)

const vkCapital = 0x14

// capsLockOn asks GetKeyState; the low-order bit is the toggle state.
func capsLockOn() bool {
	ret, _, _ := getKeyState.Call(uintptr(vkCapital))
	return (ret & 0x0001) != 0
}

package inject

// capsLockOn is not wired to CoreGraphics; Caps Lock is assumed off.
func capsLockOn() bool {
	return false
}

package inject

// capsLock switches Caps Lock off for a run and restores what the user had.
type capsLock struct {
	originalState bool
	toggle        func() error
	// on reads the current state; nil means the platform capsLockOn.
	on func() bool
}

func (c *capsLock) state() bool {
	if c.on != nil {
		return c.on()
	}
	return capsLockOn()
}

func (c *capsLock) disable() error {
	c.originalState = c.state()
	if c.originalState {
		return c.toggle()
	}
	return nil
}

// restore only toggles when the current state differs from the saved one.
func (c *capsLock) restore() error {
	if c.state() != c.originalState {
		return c.toggle()
	}
	return nil
}

package typing

import "sync/atomic"

// Valid parameter ranges.
const (
	MinWPM         = 10
	MaxWPM         = 900
	MinTemperature = 0
	MaxTemperature = 100
	MinPause       = 0
	MaxPause       = 100
)

// Defaults used by NewParams.
const (
	DefaultWPM         = 80
	DefaultTemperature = 50
	DefaultPause       = 50
)

// Params are the humanization settings shared between the trigger layer and
// the running job. Setters may be called from any goroutine at any time; the
// run loop reads the latest value on every delay computation.
type Params struct {
	wpm         atomic.Int32
	temperature atomic.Int32
	pause       atomic.Int32
}

// NewParams returns Params holding the defaults.
func NewParams() *Params {
	p := &Params{}
	p.wpm.Store(DefaultWPM)
	p.temperature.Store(DefaultTemperature)
	p.pause.Store(DefaultPause)
	return p
}

// WPM returns the target words per minute.
func (p *Params) WPM() int { return int(p.wpm.Load()) }

// Temperature returns the jitter setting.
func (p *Params) Temperature() int { return int(p.temperature.Load()) }

// PauseMultiplier returns the boundary pause setting.
func (p *Params) PauseMultiplier() int { return int(p.pause.Load()) }

// SetWPM stores n when it is within [MinWPM, MaxWPM] and reports whether it did.
func (p *Params) SetWPM(n int) bool {
	return setInRange(&p.wpm, n, MinWPM, MaxWPM)
}

// SetTemperature stores n when it is within [0, 100].
func (p *Params) SetTemperature(n int) bool {
	return setInRange(&p.temperature, n, MinTemperature, MaxTemperature)
}

// SetPauseMultiplier stores n when it is within [0, 100].
func (p *Params) SetPauseMultiplier(n int) bool {
	return setInRange(&p.pause, n, MinPause, MaxPause)
}

func setInRange(v *atomic.Int32, n, lo, hi int) bool {
	if n < lo || n > hi {
		return false
	}
	v.Store(int32(n))
	return true
}

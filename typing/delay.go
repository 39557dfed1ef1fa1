package typing

import (
	"math/rand/v2"
	"sync"
	"time"
)

const (
	// CharsPerWord is the word length used to turn WPM into a per
	// character rate.
	CharsPerWord = 5
	// JitterAmplitude is the relative spread of the jitter factor at
	// temperature 100.
	JitterAmplitude = 0.25
	// FloorMillis is the smallest delay ever returned.
	FloorMillis = 10.0
)

// boundary ranges in milliseconds, scaled by the pause multiplier
var (
	spacePause    = pauseRange{150, 250}
	sentencePause = pauseRange{400, 800}
	commaPause    = pauseRange{100, 200}
)

type pauseRange struct{ lo, hi float64 }

// DelayModel computes inter-keystroke delays: base rate, plus a pause after
// word and sentence boundaries, scaled by a temperature driven jitter.
// It is safe for concurrent use.
type DelayModel struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewDelayModel returns a model drawing from src. A nil src seeds from the
// clock; pass a fixed source to get reproducible delays.
func NewDelayModel(src rand.Source) *DelayModel {
	if src == nil {
		now := uint64(time.Now().UnixNano())
		src = rand.NewPCG(now, now>>1|1)
	}
	return &DelayModel{rnd: rand.New(src)}
}

// BaseMillis is the nominal delay for wpm with no humanization.
func BaseMillis(wpm int) float64 {
	if wpm <= 0 {
		wpm = MinWPM
	}
	return 60000.0 / float64(wpm*CharsPerWord)
}

// Millis returns the wait before typing cur, given that prev was just typed.
func (m *DelayModel) Millis(prev, cur rune, wpm, temperature, pauseMultiplier int) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	delay := BaseMillis(wpm)

	if pauseFactor := float64(pauseMultiplier) / 100; pauseFactor > 0 {
		switch prev {
		case ' ':
			delay += m.uniform(spacePause) * pauseFactor
		case '.', '!', '?':
			delay += m.uniform(sentencePause) * pauseFactor
		case ',':
			delay += m.uniform(commaPause) * pauseFactor
		}
	}

	if tempFactor := float64(temperature) / 100; tempFactor > 0 {
		spread := tempFactor * JitterAmplitude
		delay *= 1 - spread + m.rnd.Float64()*2*spread
	}

	if delay < FloorMillis {
		return FloorMillis
	}
	return delay
}

// Duration is Millis as a time.Duration.
func (m *DelayModel) Duration(prev, cur rune, wpm, temperature, pauseMultiplier int) time.Duration {
	return time.Duration(m.Millis(prev, cur, wpm, temperature, pauseMultiplier) * float64(time.Millisecond))
}

func (m *DelayModel) uniform(r pauseRange) float64 {
	return r.lo + m.rnd.Float64()*(r.hi-r.lo)
}

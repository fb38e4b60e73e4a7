package synth

// Lfo is a triangle-wave low-frequency oscillator used for vibrato and
// modulation routing. It is silent until delay seconds elapse and is
// permanently inactive (outputs a fixed 0) when frequency is at or below
// 1mHz, per spec.md S4.3.3.
type Lfo struct {
	sampleRate int

	active bool
	delay  float64
	period float64

	processedSamples int
	value             float64
}

// NewLfo constructs an Lfo with the given delay (seconds) and frequency
// (Hz), sampled once per rendered block.
func NewLfo(sampleRate int, delay, frequency float64) *Lfo {
	l := &Lfo{sampleRate: sampleRate}
	if frequency > 1e-3 {
		l.active = true
		l.delay = delay
		l.period = 1 / frequency
	}
	return l
}

// Process advances the LFO by sampleCount samples (the length of the
// block just rendered, which may be shorter than the synthesizer's
// configured BlockSize on the final sub-block of a Render call) and
// returns its current value in [-1, 1].
func (l *Lfo) Process(sampleCount int) float64 {
	if !l.active {
		return l.value
	}

	l.processedSamples += sampleCount
	currentTime := float64(l.processedSamples) / float64(l.sampleRate)

	if currentTime < l.delay {
		l.value = 0
		return l.value
	}

	phase := mod(currentTime-l.delay, l.period) / l.period
	switch {
	case phase < 0.25:
		l.value = 4 * phase
	case phase < 0.75:
		l.value = 4 * (0.5 - phase)
	default:
		l.value = 4 * (phase - 1)
	}
	return l.value
}

func mod(a, b float64) float64 {
	m := a - float64(int(a/b))*b
	if m < 0 {
		m += b
	}
	return m
}

package synth

import "math"

// BiQuadFilter is a Direct-Form-I resonant low-pass biquad, recomputed
// whenever (cutoff, resonance) changes. Coefficients follow the RBJ
// Audio EQ Cookbook low-pass section, per spec.md S4.3.5.
type BiQuadFilter struct {
	sampleRate int

	a0, a1, a2 float64
	b1, b2     float64

	x1, x2 float64
	y1, y2 float64

	active bool
}

// NewBiQuadFilter constructs a filter with a cleared history buffer.
func NewBiQuadFilter(sampleRate int) *BiQuadFilter {
	return &BiQuadFilter{sampleRate: sampleRate}
}

// ClearBuffer zeros the filter's two-sample history, used when a voice is
// (re)allocated so a stolen slot doesn't carry over stale state.
func (f *BiQuadFilter) ClearBuffer() {
	f.x1, f.x2, f.y1, f.y2 = 0, 0, 0, 0
}

// SetLowPassFilter recomputes the filter coefficients for cutoff (Hz) and
// resonanceLinear (the linear Q-equivalent gain, per region.initialFilterQDb
// converted via decibelsToLinear). A cutoff at or beyond the Nyquist
// frequency disables filtering (pass-through).
func (f *BiQuadFilter) SetLowPassFilter(cutoffHz, resonanceLinear float64) {
	if cutoffHz < float64(f.sampleRate)/2*0.999 {
		f.active = true

		q := resonanceLinear
		w := 2 * math.Pi * cutoffHz / float64(f.sampleRate)
		cosw := math.Cos(w)
		alpha := math.Sin(w) / (2 * q)

		b0 := (1 - cosw) / 2
		b1 := 1 - cosw
		b2 := (1 - cosw) / 2
		a0 := 1 + alpha
		a1 := -2 * cosw
		a2 := 1 - alpha

		f.a0 = b0 / a0
		f.a1 = b1 / a0
		f.a2 = b2 / a0
		f.b1 = a1 / a0
		f.b2 = a2 / a0
	} else {
		f.active = false
	}
}

// Process filters block in place.
func (f *BiQuadFilter) Process(block []float64) {
	if !f.active {
		return
	}
	for i, x0 := range block {
		y0 := f.a0*x0 + f.a1*f.x1 + f.a2*f.x2 - f.b1*f.y1 - f.b2*f.y2
		f.x2, f.x1 = f.x1, x0
		f.y2, f.y1 = f.y1, y0
		block[i] = y0
	}
}

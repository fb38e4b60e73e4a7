package synth

import "math"

// Oscillator is the per-voice sample player: fractional-phase playback
// of one mono PCM segment out of SoundFont.WaveData, with cubic
// interpolation and the four SF2 loop modes, per spec.md S4.3.4.
type Oscillator struct {
	sampleRate int

	start, end         int32
	startLoop, endLoop int32

	sampleRateRatio float64
	rootKey         int
	tuneCents       float64 // constant part: pitchCorrection + coarseTune*100 + fineTune
	scaleTuning     float64

	mode SampleMode

	position float64 // fractional index into WaveData
	released bool
}

// NewOscillator constructs the oscillator for a voice from its resolved
// region and sample header.
func NewOscillator(sampleRate int, rp *RegionPair) *Oscillator {
	sh := rp.Sample

	start := int32(sh.Start) + rp.sampleStartOffset()
	end := int32(sh.End) + rp.sampleEndOffset()
	startLoop := int32(sh.StartLoop) + rp.sampleStartLoopOffset()
	endLoop := int32(sh.EndLoop) + rp.sampleEndLoopOffset()

	return &Oscillator{
		sampleRate:      sampleRate,
		start:           start,
		end:             end,
		startLoop:       startLoop,
		endLoop:         endLoop,
		sampleRateRatio: float64(sh.SampleRate) / float64(sampleRate),
		rootKey:         rp.overridingRootKey(),
		tuneCents:       float64(sh.PitchCorrection) + float64(rp.coarseTune())*100 + float64(rp.fineTune()),
		scaleTuning:     rp.scaleTuning(),
		mode:            rp.sampleModes(),
		position:        float64(start),
	}
}

// Release notifies the oscillator that its voice has entered the release
// phase: LoopUntilRelease stops wrapping and plays out to end.
func (o *Oscillator) Release() { o.released = true }

func (o *Oscillator) looping() bool {
	switch o.mode {
	case SampleModeLoop:
		return true
	case SampleModeLoopUntilRelease:
		return !o.released
	default:
		return false
	}
}

// Process renders len(out) samples from waveData into out, advancing the
// playback position according to pitch (effective MIDI note number,
// possibly fractional). Returns false when the sample has been exhausted
// (NoLoop reaching end, or LoopAndPlayAfter running past end).
func (o *Oscillator) Process(waveData []int16, out []float64, pitch float64) bool {
	cents := o.scaleTuning*(pitch-float64(o.rootKey)) + o.tuneCents
	ratio := o.sampleRateRatio * math.Pow(2, cents/1200)

	loopLen := float64(o.endLoop - o.startLoop)

	for i := 0; i < len(out); i++ {
		looping := o.looping()
		if looping && loopLen > 0 {
			for o.position >= float64(o.endLoop) {
				o.position -= loopLen
			}
		} else if o.position >= float64(o.end) {
			for ; i < len(out); i++ {
				out[i] = 0
			}
			return false
		}

		out[i] = cubicSample(waveData, o.position, o.start, o.end, o.startLoop, o.endLoop, looping && loopLen > 0)
		o.position += ratio
	}
	return true
}

// cubicSample interpolates a fractional-index sample using a Catmull-Rom
// cubic, falling back to the nearest valid point at the ends of the
// sample where a full 4-point neighborhood isn't available.
func cubicSample(data []int16, pos float64, start, end, loopStart, loopEnd int32, looping bool) float64 {
	idx := int32(math.Floor(pos))
	t := pos - math.Floor(pos)

	at := func(i int32) float64 {
		if looping {
			loopLen := loopEnd - loopStart
			if loopLen > 0 {
				for i >= loopEnd {
					i -= loopLen
				}
				for i < loopStart {
					i += loopLen
				}
			}
		}
		if i < start || i >= end || int(i) >= len(data) || i < 0 {
			return 0
		}
		return float64(data[i]) / 32768
	}

	y0 := at(idx - 1)
	y1 := at(idx)
	y2 := at(idx + 1)
	y3 := at(idx + 2)

	a0 := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	a1 := y0 - 2.5*y1 + 2*y2 - 0.5*y3
	a2 := -0.5*y0 + 0.5*y2
	a3 := y1

	return ((a0*t+a1)*t+a2)*t + a3
}

package synth

import "math"

// voiceState tracks a Voice's position in its NoteOn/NoteOff/hold-pedal
// lifecycle, per spec.md S3.
type voiceState int

const (
	voicePlaying voiceState = iota
	voiceReleaseRequested
	voiceReleased
)

// Voice is one active (channel, key) rendering instance: an envelope
// pair, an LFO pair, an oscillator, and a biquad filter, plus the mix-gain
// bookkeeping the synthesizer needs to ramp gain changes pop-free across
// blocks. See spec.md S3/S4.3.
type Voice struct {
	volEnv *VolumeEnvelope
	modEnv *ModulationEnvelope

	vibLFO *Lfo
	modLFO *Lfo

	osc    *Oscillator
	filter *BiQuadFilter

	Block []float64

	PreviousMixGainLeft, PreviousMixGainRight float64
	CurrentMixGainLeft, CurrentMixGainRight   float64
	PreviousReverbSend, PreviousChorusSend    float64
	CurrentReverbSend, CurrentChorusSend      float64

	ExclusiveClass int
	Channel        int
	Key            int

	noteGain float64

	cutoff    float64
	resonance float64

	vibLfoToPitch float64
	modLfoToPitch float64
	modEnvToPitch float64

	modLfoToCutoff int
	modEnvToCutoff int
	dynamicCutoff  bool

	modLfoToVolume float64
	dynamicVolume  bool

	instrumentPan     float64
	instrumentReverb  float64
	instrumentChorus  float64

	smoothedCutoff float64

	state           voiceState
	VoiceLength     int
	minVoiceLength  int
}

// NewVoice allocates and initializes a Voice from a resolved region for
// the given (channel, key, velocity) note-on.
func NewVoice(sampleRate, blockSize int, rp *RegionPair, channel, key, velocity int) *Voice {
	noteGain := 0.0
	if velocity > 0 {
		// Polyphone reduces the initial attenuation to 40% of its region
		// value; matched here for the same loudness-variability reason.
		sampleAttenuation := 0.4 * float64(rp.Generator(GenInitialAttenuation)) / 10 // dB
		filterAttenuation := 0.5 * rp.initialFilterQDb()
		db := 2*linearToDecibels(float64(velocity)/127) - sampleAttenuation - filterAttenuation
		noteGain = decibelsToLinear(db)
	}

	cutoff := rp.initialFilterCutoffHz()
	resonance := decibelsToLinear(rp.initialFilterQDb())

	filter := NewBiQuadFilter(sampleRate)
	filter.ClearBuffer()
	filter.SetLowPassFilter(cutoff, resonance)

	modLfoToCutoff := int(rp.modLfoToFilterFc())
	modEnvToCutoff := int(rp.modEnvToFilterFc())

	v := &Voice{
		volEnv:           NewVolumeEnvelope(sampleRate, rp, key),
		modEnv:           NewModulationEnvelope(sampleRate, rp, key, velocity),
		vibLFO:           NewLfo(sampleRate, rp.delayVibLFO(), rp.freqVibLFOHz()),
		modLFO:           NewLfo(sampleRate, rp.delayModLFO(), rp.freqModLFOHz()),
		osc:              NewOscillator(sampleRate, rp),
		filter:           filter,
		Block:            make([]float64, blockSize),
		ExclusiveClass:   rp.exclusiveClass(),
		Channel:          channel,
		Key:              key,
		noteGain:         noteGain,
		cutoff:           cutoff,
		resonance:        resonance,
		vibLfoToPitch:    0.01 * rp.vibLfoToPitch(),
		modLfoToPitch:    0.01 * rp.modLfoToPitch(),
		modEnvToPitch:    0.01 * rp.modEnvToPitch(),
		modLfoToCutoff:   modLfoToCutoff,
		modEnvToCutoff:   modEnvToCutoff,
		dynamicCutoff:    modLfoToCutoff != 0 || modEnvToCutoff != 0,
		modLfoToVolume:   rp.modLfoToVolume(),
		instrumentPan:    clampPan(rp.pan()),
		instrumentReverb: rp.reverbSend(),
		instrumentChorus: rp.chorusSend(),
		smoothedCutoff:   cutoff,
		state:            voicePlaying,
		minVoiceLength:   sampleRate / 500,
	}
	v.dynamicVolume = v.modLfoToVolume > 0.05
	return v
}

func clampPan(p float64) float64 {
	if p < -50 {
		return -50
	}
	if p > 50 {
		return 50
	}
	return p
}

// End requests the voice transition to release on its next Process call,
// gated by hold-pedal.
func (v *Voice) End() {
	if v.state == voicePlaying {
		v.state = voiceReleaseRequested
	}
}

// Kill immediately silences the voice without a release tail, used for
// exclusive-class cancellation.
func (v *Voice) Kill() { v.noteGain = 0 }

// Priority reports the voice's current stealing priority.
func (v *Voice) Priority() float64 {
	if v.noteGain < NonAudible {
		return 0
	}
	return v.volEnv.Priority()
}

func (v *Voice) releaseIfNecessary(ch *Channel) {
	if v.VoiceLength < v.minVoiceLength {
		return
	}
	if v.state == voiceReleaseRequested && !ch.HoldPedal() {
		v.volEnv.Release()
		v.modEnv.Release()
		v.osc.Release()
		v.state = voiceReleased
	}
}

// Process renders sampleCount samples into v.Block[:sampleCount] and
// returns false when the voice has become inaudible or its oscillator has
// run out of sample, in which case it should be retired. sampleCount is
// the length of the sub-block being rendered, which is the synthesizer's
// configured BlockSize except possibly on the final sub-block of a
// Render call. See spec.md S4.3.6.
func (v *Voice) Process(waveData []int16, channels []*Channel, sampleCount int) bool {
	if v.noteGain < NonAudible {
		return false
	}

	ch := channels[v.Channel]
	v.releaseIfNecessary(ch)

	volEnv, ok := v.volEnv.Process(sampleCount)
	if !ok {
		return false
	}
	modEnv := v.modEnv.Process(sampleCount)

	vibLFO := v.vibLFO.Process(sampleCount)
	modLFO := v.modLFO.Process(sampleCount)

	vibPitchChange := (0.01*ch.Modulation() + v.vibLfoToPitch) * vibLFO
	modPitchChange := v.modLfoToPitch*modLFO + v.modEnvToPitch*modEnv
	channelPitchChange := ch.tune() + ch.PitchBend()
	pitch := float64(v.Key) + vibPitchChange + modPitchChange + channelPitchChange

	block := v.Block[:sampleCount]
	if !v.osc.Process(waveData, block, pitch) {
		return false
	}

	if v.dynamicCutoff {
		cents := float64(v.modLfoToCutoff)*modLFO + float64(v.modEnvToCutoff)*modEnv
		factor := centsToMultiplyingFactor(cents)
		newCutoff := factor * v.cutoff

		lower := 0.5 * v.smoothedCutoff
		upper := 2 * v.smoothedCutoff
		switch {
		case newCutoff < lower:
			v.smoothedCutoff = lower
		case newCutoff > upper:
			v.smoothedCutoff = upper
		default:
			v.smoothedCutoff = newCutoff
		}
		v.filter.SetLowPassFilter(v.smoothedCutoff, v.resonance)
	}
	v.filter.Process(block)

	v.PreviousMixGainLeft = v.CurrentMixGainLeft
	v.PreviousMixGainRight = v.CurrentMixGainRight
	v.PreviousReverbSend = v.CurrentReverbSend
	v.PreviousChorusSend = v.CurrentChorusSend

	// Per the GM spec, volume*expression is combined by squaring.
	ve := ch.Volume() * ch.Expression()
	channelGain := ve * ve

	mixGain := v.noteGain * channelGain * volEnv
	if v.dynamicVolume {
		db := v.modLfoToVolume * modLFO
		mixGain *= decibelsToLinear(db)
	}

	angle := (math.Pi / 200) * (ch.Pan() + v.instrumentPan + 50)
	switch {
	case angle <= 0:
		v.CurrentMixGainLeft = mixGain
		v.CurrentMixGainRight = 0
	case angle >= HalfPi:
		v.CurrentMixGainLeft = 0
		v.CurrentMixGainRight = mixGain
	default:
		v.CurrentMixGainLeft = mixGain * math.Cos(angle)
		v.CurrentMixGainRight = mixGain * math.Sin(angle)
	}

	v.CurrentReverbSend = clamp01(ch.ReverbSend() + v.instrumentReverb)
	v.CurrentChorusSend = clamp01(ch.ChorusSend() + v.instrumentChorus)

	if v.VoiceLength == 0 {
		v.PreviousMixGainLeft = v.CurrentMixGainLeft
		v.PreviousMixGainRight = v.CurrentMixGainRight
		v.PreviousReverbSend = v.CurrentReverbSend
		v.PreviousChorusSend = v.CurrentChorusSend
	}

	v.VoiceLength += sampleCount
	return true
}

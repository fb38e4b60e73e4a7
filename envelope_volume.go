package synth

// VolumeEnvelope is the 6-stage (Delay, Attack, Hold, Decay, Sustain,
// Release) amplitude envelope described in spec.md S4.3.1. Attack is
// linear; Decay and Release are exponential with the "-80dB over the
// segment" slope convention SF2 synths use. It also tracks a priority
// scalar that voice stealing uses to rank live voices.
type VolumeEnvelope struct {
	sampleRate int

	attackSlope  float64
	decaySlope   float64
	releaseSlope float64

	attackStartTime float64
	holdStartTime   float64
	decayStartTime  float64

	sustainLevel float64

	releaseStartTime  float64
	releaseStartLevel float64

	processedSamples int
	stage            envelopeStage
	value            float64
	priority         float64
}

// NewVolumeEnvelope builds the envelope for a newly allocated voice from
// the region's generator values, scaling hold/decay by the SF2
// key-to-envelope convention centered at key 60.
func NewVolumeEnvelope(sampleRate int, rp *RegionPair, key int) *VolumeEnvelope {
	delay := rp.delayVolEnv()
	attack := rp.attackVolEnv()
	hold := rp.holdVolEnv() * keyNumberToMultiplyingFactor(rp.keynumToVolEnvHold(), key)
	decay := rp.decayVolEnv() * keyNumberToMultiplyingFactor(rp.keynumToVolEnvDecay(), key)
	sustain := clamp01(decibelsToLinear(-rp.sustainVolEnvCb()))

	// Release times shorter than 10ms are clamped to suppress pop noise
	// from an abrupt gain discontinuity.
	release := rp.releaseVolEnv()
	if release < 0.01 {
		release = 0.01
	}

	e := &VolumeEnvelope{
		sampleRate:      sampleRate,
		attackSlope:     1 / attack,
		decaySlope:      -9.226 / decay,
		releaseSlope:    -9.226 / release,
		attackStartTime: delay,
		holdStartTime:   delay + attack,
		decayStartTime:  delay + attack + hold,
		sustainLevel:    sustain,
		stage:           stageDelay,
	}
	e.Process(0)
	return e
}

// Release transitions the envelope into its Release stage, capturing the
// current time and value as the release segment's starting point.
func (e *VolumeEnvelope) Release() {
	e.releaseStartTime = float64(e.processedSamples) / float64(e.sampleRate)
	e.releaseStartLevel = e.value
	e.stage = stageRelease
}

// Process advances the envelope by sampleCount samples and returns the
// current gain and whether the voice is still audible. A false ok means
// the envelope has decayed below NonAudible and the voice should be
// freed.
func (e *VolumeEnvelope) Process(sampleCount int) (gain float64, ok bool) {
	e.processedSamples += sampleCount
	currentTime := float64(e.processedSamples) / float64(e.sampleRate)

	for e.stage == stageDelay || e.stage == stageAttack || e.stage == stageHold {
		var endTime float64
		switch e.stage {
		case stageDelay:
			endTime = e.attackStartTime
		case stageAttack:
			endTime = e.holdStartTime
		case stageHold:
			endTime = e.decayStartTime
		}
		if currentTime < endTime {
			break
		}
		switch e.stage {
		case stageDelay:
			e.stage = stageAttack
		case stageAttack:
			e.stage = stageHold
		case stageHold:
			e.stage = stageDecay
		}
	}

	switch e.stage {
	case stageDelay:
		e.value = 0
		e.priority = 4 + e.value
		return 0, true
	case stageAttack:
		e.value = e.attackSlope * (currentTime - e.attackStartTime)
		e.priority = 3 + e.value
		return e.value, true
	case stageHold:
		e.value = 1
		e.priority = 2 + e.value
		return 1, true
	case stageDecay:
		v := expCutoff(e.decaySlope * (currentTime - e.decayStartTime))
		if v < e.sustainLevel {
			v = e.sustainLevel
		}
		e.value = v
		e.priority = 1 + e.value
		return v, v > NonAudible
	default: // stageRelease
		v := e.releaseStartLevel * expCutoff(e.releaseSlope*(currentTime-e.releaseStartTime))
		e.value = v
		e.priority = e.value
		return v, v > NonAudible
	}
}

// Priority reports the envelope's current priority scalar, used by the
// voice pool to rank candidates for stealing.
func (e *VolumeEnvelope) Priority() float64 { return e.priority }

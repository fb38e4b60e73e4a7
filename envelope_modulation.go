package synth

// ModulationEnvelope is the same 6-stage shape as VolumeEnvelope but
// linear in Attack and Decay, and drives pitch/cutoff
// modulation rather than amplitude. Its output is used raw and never
// gates voice liveness -- per spec.md S4.3.2 that job belongs solely to
// the volume envelope.
//
// Attack time is scaled by velocity (TinySoundFont's convention: a
// harder hit shortens the attack). Release is re-derived from the
// release-start (time, level) pair as an exponential decay, matching
// VolumeEnvelope's shape, rather than the source's time-independent
// formula (see DESIGN.md).
type ModulationEnvelope struct {
	sampleRate int

	attackSlope  float64
	decaySlope   float64
	releaseSlope float64

	attackStartTime float64
	holdStartTime   float64
	decayStartTime  float64
	decayEndTime    float64

	sustainLevel float64

	releaseStartTime  float64
	releaseStartLevel float64

	processedSamples int
	stage            envelopeStage
	value            float64
}

// NewModulationEnvelope builds the envelope from the region's generator
// values for the given key and note-on velocity.
func NewModulationEnvelope(sampleRate int, rp *RegionPair, key, velocity int) *ModulationEnvelope {
	delay := rp.delayModEnv()
	attack := rp.attackModEnv() * (float64(145-velocity) / 144)
	hold := rp.holdModEnv() * keyNumberToMultiplyingFactor(rp.keynumToModEnvHold(), key)
	decay := rp.decayModEnv() * keyNumberToMultiplyingFactor(rp.keynumToModEnvDecay(), key)
	sustain := clamp01(1 - rp.sustainModEnvPct()/100)
	release := rp.releaseModEnv()

	e := &ModulationEnvelope{
		sampleRate:      sampleRate,
		attackSlope:     1 / attack,
		decaySlope:      1 / decay,
		releaseSlope:    -9.226 / release,
		attackStartTime: delay,
		holdStartTime:   delay + attack,
		decayStartTime:  delay + attack + hold,
		decayEndTime:    delay + attack + hold + decay,
		sustainLevel:    sustain,
		stage:           stageDelay,
	}
	e.Process(0)
	return e
}

// Release transitions the envelope into its Release stage.
func (e *ModulationEnvelope) Release() {
	e.releaseStartTime = float64(e.processedSamples) / float64(e.sampleRate)
	e.releaseStartLevel = e.value
	e.stage = stageRelease
}

// Process advances the envelope by sampleCount samples and returns its
// current value in [0, 1].
func (e *ModulationEnvelope) Process(sampleCount int) float64 {
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
	case stageAttack:
		e.value = e.attackSlope * (currentTime - e.attackStartTime)
	case stageHold:
		e.value = 1
	case stageDecay:
		v := e.decaySlope * (e.decayEndTime - currentTime)
		if v < e.sustainLevel {
			v = e.sustainLevel
		}
		e.value = v
	default: // stageRelease
		e.value = e.releaseStartLevel * expCutoff(e.releaseSlope*(currentTime-e.releaseStartTime))
	}
	return e.value
}

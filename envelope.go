package synth

// envelopeStage is the tagged variant backing both VolumeEnvelope and
// ModulationEnvelope, per the "voice state as data, not inheritance"
// design note: Release carries its own (startTime, startLevel) payload
// instead of a separate class.
//
// Decay subsumes Sustain: there is no distinct runtime stage for it.
// Decay's value is floored at sustainLevel, so once the exponential (or,
// for the modulation envelope, linear) ramp reaches the sustain floor it
// simply holds there -- indefinitely, until release() is called
// externally. This matches the envelope's own stage-transition table,
// which only ever advances Delay->Attack->Hold->Decay on elapsed time;
// Decay->Release happens only on an explicit release() call.
type envelopeStage int

const (
	stageDelay envelopeStage = iota
	stageAttack
	stageHold
	stageDecay
	stageRelease
)

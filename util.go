package synth

import "math"

// NonAudible is the linear amplitude (~-94dB) below which an envelope
// segment is considered to have decayed to silence.
const NonAudible = 2e-5

// HalfPi is pi/2, used by the pan law.
const HalfPi = math.Pi / 2

// decibelsToLinear converts decibels to a linear amplitude multiplier.
func decibelsToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// linearToDecibels converts a linear amplitude multiplier to decibels.
func linearToDecibels(x float64) float64 {
	if x <= 0 {
		return -math.MaxFloat64
	}
	return 20 * math.Log10(x)
}

// centibelsToLinear converts SF2 centibels (attenuation, 1/10 dB) to a
// linear gain multiplier.
func centibelsToLinear(cb float64) float64 {
	return math.Pow(10, -cb/200)
}

// timecentsToSeconds converts a SF2 timecent value to seconds.
func timecentsToSeconds(tc float64) float64 {
	return math.Pow(2, tc/1200)
}

// absoluteCentsToHz converts a SF2 absolute-cents pitch value to Hz.
func absoluteCentsToHz(cents float64) float64 {
	return 8.176 * math.Pow(2, cents/1200)
}

// centsToMultiplyingFactor converts a relative cents offset to a
// multiplying factor, i.e. 2^(c/1200).
func centsToMultiplyingFactor(c float64) float64 {
	return math.Pow(2, c/1200)
}

// keyNumberToMultiplyingFactor implements the SF2 key-scaling convention
// used by keynumToVolEnvHold/Decay and keynumToModEnvHold/Decay: a scale
// factor centered at key 60 (middle C).
func keyNumberToMultiplyingFactor(scaleCents float64, key int) float64 {
	return math.Pow(2, scaleCents*float64(60-key)/1200)
}

// panToNormalized converts a SF2 pan generator value (0.1% units,
// -500..500) to the conventional -50..50 range.
func panToNormalized(raw int16) float64 {
	return float64(raw) / 10
}

// expCutoff implements the guarded exponential used by envelope release
// segments: true zero below -60dB (ln(1000) ~= 6.9) rather than a
// vanishingly small but nonzero float, so a decayed voice can be detected
// by comparing against NonAudible precisely.
func expCutoff(x float64) float64 {
	if x > -math.Log(1000) {
		return math.Exp(x)
	}
	return 0
}

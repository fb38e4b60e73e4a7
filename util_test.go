package synth

import (
	"math"
	"testing"
)

func TestDecibelsToLinear(t *testing.T) {
	if got := decibelsToLinear(0); math.Abs(got-1) > 1e-9 {
		t.Errorf("decibelsToLinear(0) = %v, want 1", got)
	}
	if got := decibelsToLinear(-20); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("decibelsToLinear(-20) = %v, want 0.1", got)
	}
}

func TestCentibelsToLinear(t *testing.T) {
	// 0 centibels of attenuation is unity gain.
	if got := centibelsToLinear(0); math.Abs(got-1) > 1e-9 {
		t.Errorf("centibelsToLinear(0) = %v, want 1", got)
	}
	// 200 centibels = 20dB of attenuation = 0.1 linear.
	if got := centibelsToLinear(200); math.Abs(got-0.1) > 1e-9 {
		t.Errorf("centibelsToLinear(200) = %v, want 0.1", got)
	}
}

func TestTimecentsToSeconds(t *testing.T) {
	// -12000 timecents is the SF2 default: 2^-10 s, roughly 1ms.
	if got := timecentsToSeconds(-12000); math.Abs(got-0.0009765625) > 1e-9 {
		t.Errorf("timecentsToSeconds(-12000) = %v, want 0.0009765625", got)
	}
}

func TestKeyNumberToMultiplyingFactor(t *testing.T) {
	// At key 60 the factor is always 1 regardless of scale.
	if got := keyNumberToMultiplyingFactor(100, 60); math.Abs(got-1) > 1e-9 {
		t.Errorf("keyNumberToMultiplyingFactor(100, 60) = %v, want 1", got)
	}
	if got := keyNumberToMultiplyingFactor(0, 72); math.Abs(got-1) > 1e-9 {
		t.Errorf("keyNumberToMultiplyingFactor(0, 72) = %v, want 1", got)
	}
}

func TestExpCutoff(t *testing.T) {
	if got := expCutoff(0); math.Abs(got-1) > 1e-9 {
		t.Errorf("expCutoff(0) = %v, want 1", got)
	}
	if got := expCutoff(-100); got != 0 {
		t.Errorf("expCutoff(-100) = %v, want 0", got)
	}
}

func TestPanToNormalized(t *testing.T) {
	if got := panToNormalized(500); got != 50 {
		t.Errorf("panToNormalized(500) = %v, want 50", got)
	}
	if got := panToNormalized(-500); got != -50 {
		t.Errorf("panToNormalized(-500) = %v, want -50", got)
	}
}

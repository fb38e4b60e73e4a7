package synth

import "testing"

func TestLfoInactiveBelowThreshold(t *testing.T) {
	l := NewLfo(44100, 0, 1e-4)
	for i := 0; i < 10; i++ {
		if got := l.Process(64); got != 0 {
			t.Fatalf("inactive LFO produced nonzero output: %v", got)
		}
	}
}

func TestLfoSilentDuringDelay(t *testing.T) {
	l := NewLfo(44100, 1.0, 5)
	// Far fewer than a second of samples have elapsed, so we're still
	// inside the delay.
	if got := l.Process(64); got != 0 {
		t.Errorf("expected 0 during delay, got %v", got)
	}
}

func TestLfoBoundedAfterDelay(t *testing.T) {
	l := NewLfo(44100, 0, 5) // 5 Hz, period 0.2s
	for i := 0; i < 1000; i++ {
		v := l.Process(64)
		if v < -1 || v > 1 {
			t.Fatalf("LFO output %v out of [-1, 1]", v)
		}
	}
}

func TestLfoAdvancesByActualSampleCount(t *testing.T) {
	// A short final sub-block should advance the LFO's internal clock by
	// exactly that many samples, not a fixed block size.
	l := NewLfo(44100, 0, 5)
	l.Process(64)
	afterFullBlock := l.processedSamples
	l.Process(7)
	if l.processedSamples != afterFullBlock+7 {
		t.Errorf("processedSamples = %d, want %d", l.processedSamples, afterFullBlock+7)
	}
}

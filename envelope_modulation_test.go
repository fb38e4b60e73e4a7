package synth

import "testing"

func TestModulationEnvelopeIsLinearAndBounded(t *testing.T) {
	rp := testRegion(map[GeneratorID]int16{
		GenDelayModEnv:   -12000,
		GenAttackModEnv:  timecentsFor(0.1),
		GenHoldModEnv:    -12000,
		GenDecayModEnv:   timecentsFor(0.1),
		GenReleaseModEnv: timecentsFor(0.05),
		GenSustainModEnv: 500, // 50%
	})
	// Velocity 1 leaves the attack unscaled ((145-1)/144 == 1), so the
	// ten 10ms steps below all fall inside the 100ms attack.
	env := NewModulationEnvelope(44100, rp, 60, 1)

	prev := -1.0
	for i := 0; i < 10; i++ {
		v := env.Process(441)
		if v < 0 || v > 1 {
			t.Fatalf("modulation envelope value %v out of [0,1] during attack", v)
		}
		if v < prev {
			t.Fatalf("modulation envelope decreased during attack: %v < %v", v, prev)
		}
		prev = v
	}

	env.Release()
	for i := 0; i < 50; i++ {
		v := env.Process(4410)
		if v < -1e-9 {
			t.Fatalf("modulation envelope went negative during release: %v", v)
		}
	}
}

func TestModulationEnvelopeAttackScalesWithVelocity(t *testing.T) {
	gens := map[GeneratorID]int16{
		GenDelayModEnv:  -12000,
		GenAttackModEnv: timecentsFor(1),
		GenHoldModEnv:   -12000,
		GenDecayModEnv:  -12000,
	}
	softRegion := testRegion(gens)
	hardRegion := testRegion(gens)

	soft := NewModulationEnvelope(44100, softRegion, 60, 1)
	hard := NewModulationEnvelope(44100, hardRegion, 60, 127)

	// A harder velocity shortens the attack (TinySoundFont convention),
	// so after a fixed number of samples the hard-hit envelope should
	// have risen further.
	var softVal, hardVal float64
	for i := 0; i < 10; i++ {
		softVal = soft.Process(4410)
		hardVal = hard.Process(4410)
	}
	if hardVal <= softVal {
		t.Errorf("expected harder velocity to reach a higher value sooner: hard=%v soft=%v", hardVal, softVal)
	}
}

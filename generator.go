package synth

// GeneratorID identifies one of the ~58 SF2 generator parameters. Values
// follow the SoundFont 2.04 specification's SFGenerator enumeration.
type GeneratorID uint16

const (
	GenStartAddrsOffset           GeneratorID = 0
	GenEndAddrsOffset              GeneratorID = 1
	GenStartloopAddrsOffset        GeneratorID = 2
	GenEndloopAddrsOffset           GeneratorID = 3
	GenStartAddrsCoarseOffset      GeneratorID = 4
	GenModLfoToPitch               GeneratorID = 5
	GenVibLfoToPitch               GeneratorID = 6
	GenModEnvToPitch               GeneratorID = 7
	GenInitialFilterFc             GeneratorID = 8
	GenInitialFilterQ              GeneratorID = 9
	GenModLfoToFilterFc            GeneratorID = 10
	GenModEnvToFilterFc            GeneratorID = 11
	GenEndAddrsCoarseOffset        GeneratorID = 12
	GenModLfoToVolume              GeneratorID = 13
	GenChorusEffectsSend           GeneratorID = 15
	GenReverbEffectsSend           GeneratorID = 16
	GenPan                         GeneratorID = 17
	GenDelayModLFO                 GeneratorID = 21
	GenFreqModLFO                  GeneratorID = 22
	GenDelayVibLFO                 GeneratorID = 23
	GenFreqVibLFO                  GeneratorID = 24
	GenDelayModEnv                 GeneratorID = 25
	GenAttackModEnv                GeneratorID = 26
	GenHoldModEnv                  GeneratorID = 27
	GenDecayModEnv                 GeneratorID = 28
	GenSustainModEnv               GeneratorID = 29
	GenReleaseModEnv               GeneratorID = 30
	GenKeynumToModEnvHold          GeneratorID = 31
	GenKeynumToModEnvDecay         GeneratorID = 32
	GenDelayVolEnv                 GeneratorID = 33
	GenAttackVolEnv                GeneratorID = 34
	GenHoldVolEnv                  GeneratorID = 35
	GenDecayVolEnv                 GeneratorID = 36
	GenSustainVolEnv               GeneratorID = 37
	GenReleaseVolEnv               GeneratorID = 38
	GenKeynumToVolEnvHold          GeneratorID = 39
	GenKeynumToVolEnvDecay         GeneratorID = 40
	GenInstrument                  GeneratorID = 41
	GenKeyRange                    GeneratorID = 43
	GenVelRange                    GeneratorID = 44
	GenStartloopAddrsCoarseOffset  GeneratorID = 45
	GenKeynum                      GeneratorID = 46
	GenVelocity                    GeneratorID = 47
	GenInitialAttenuation          GeneratorID = 48
	GenEndloopAddrsCoarseOffset    GeneratorID = 50
	GenCoarseTune                  GeneratorID = 51
	GenFineTune                    GeneratorID = 52
	GenSampleID                    GeneratorID = 53
	GenSampleModes                 GeneratorID = 54
	GenScaleTuning                 GeneratorID = 56
	GenExclusiveClass              GeneratorID = 57
	GenOverridingRootKey           GeneratorID = 58
)

// SampleMode is the value of the sampleModes (54) generator.
type SampleMode int16

const (
	SampleModeNoLoop             SampleMode = 0
	SampleModeLoop               SampleMode = 1
	SampleModeLoopUntilRelease   SampleMode = 3 // bit 1 reserved, value 2 behaves as 0 per spec
	SampleModeLoopAndPlayAfter   SampleMode = 2
)

// generatorIsInstrumentOnly reports whether a generator takes its value
// from the instrument layer alone, with no preset-layer offset: keynum,
// velocity, the structural links instrument/sampleID, sampleModes, the
// sample address offsets, overridingRootKey, exclusiveClass, and the
// key/velocity ranges.
func generatorIsInstrumentOnly(id GeneratorID) bool {
	switch id {
	case GenKeynum, GenVelocity, GenInstrument, GenSampleID, GenSampleModes,
		GenStartAddrsOffset, GenEndAddrsOffset, GenStartloopAddrsOffset, GenEndloopAddrsOffset,
		GenStartAddrsCoarseOffset, GenEndAddrsCoarseOffset, GenStartloopAddrsCoarseOffset, GenEndloopAddrsCoarseOffset,
		GenOverridingRootKey, GenExclusiveClass, GenKeyRange, GenVelRange:
		return true
	}
	return false
}

// generatorDefaults holds the SF2-specified default value for every
// generator that has one. Generators absent from this map default to 0.
var generatorDefaults = map[GeneratorID]int16{
	GenInitialFilterFc:    13500,
	GenDelayModLFO:        -12000,
	GenFreqModLFO:         -12000,
	GenDelayVibLFO:        -12000,
	GenFreqVibLFO:         -12000,
	GenDelayModEnv:        -12000,
	GenAttackModEnv:       -12000,
	GenHoldModEnv:         -12000,
	GenDecayModEnv:        -12000,
	GenReleaseModEnv:      -12000,
	GenDelayVolEnv:        -12000,
	GenAttackVolEnv:       -12000,
	GenHoldVolEnv:         -12000,
	GenDecayVolEnv:        -12000,
	GenReleaseVolEnv:      -12000,
	GenKeyRange:           int16(0x7F00), // 0..127, see Range.fromRaw
	GenVelRange:           int16(0x7F00),
	GenOverridingRootKey:  -1,
	GenScaleTuning:        100,
}

// Range represents a SF2 key/velocity range generator, packed as
// (lo byte, hi byte) in the low/high bytes of the raw 16-bit amount.
type Range struct {
	Lo, Hi uint8
}

// Covers reports whether v falls within the inclusive range.
func (r Range) Covers(v int) bool {
	return v >= int(r.Lo) && v <= int(r.Hi)
}

func rangeFromRaw(raw int16) Range {
	u := uint16(raw)
	return Range{Lo: uint8(u & 0xFF), Hi: uint8(u >> 8)}
}

func defaultKeyRange() Range { return Range{0, 127} }
func defaultVelRange() Range { return Range{0, 127} }

package synth

// RegionPair is a flattened (preset zone, instrument zone) view for a
// specific (key, velocity), produced by RegionPairsForNote. It resolves
// each of the ~58 SF2 generators using the instrument-sets /
// preset-offsets rule from spec.md S4.2.
type RegionPair struct {
	presetZone, presetGlobal *Zone
	instZone, instGlobal     *Zone
	Sample                   *SampleHeader
}

func zoneValue(zone, global *Zone, id GeneratorID) (int16, bool) {
	if zone != nil {
		if v, ok := zone.generator(id); ok {
			return v, true
		}
	}
	if global != nil {
		if v, ok := global.generator(id); ok {
			return v, true
		}
	}
	return 0, false
}

// Generator resolves the effective value of a single generator for this
// region: instrument-layer absolute value (or SF2 default if unset),
// offset additively by the preset layer, except for the instrument-only
// generators listed at generatorIsInstrumentOnly (keynum, velocity, the
// structural links, sampleModes, the address-offset generators,
// overridingRootKey, exclusiveClass, and the key/velocity ranges).
func (rp *RegionPair) Generator(id GeneratorID) int16 {
	instVal, instSet := zoneValue(rp.instZone, rp.instGlobal, id)
	if !instSet {
		if def, ok := generatorDefaults[id]; ok {
			instVal = def
		}
	}

	if generatorIsInstrumentOnly(id) {
		return instVal
	}

	presetVal, presetSet := zoneValue(rp.presetZone, rp.presetGlobal, id)
	if !presetSet {
		return instVal
	}
	return instVal + presetVal
}

// RegionPairsForNote flattens the preset -> instrument -> zone hierarchy
// for the given program and note, per spec.md S4.2. bank 128 is General
// MIDI percussion.
func RegionPairsForNote(sf *SoundFont, bank, patch, key, vel int) []RegionPair {
	preset := findPreset(sf, bank, patch)
	if preset == nil {
		return nil
	}

	presetGlobal := presetGlobalZone(preset)

	var out []RegionPair
	for pzIdx := range preset.Zones {
		pz := &preset.Zones[pzIdx]
		if pz.isGlobalPreset() {
			continue
		}
		if !pz.KeyRange.Covers(key) || !pz.VelRange.Covers(vel) {
			continue
		}
		if pz.InstrumentIndex < 0 || pz.InstrumentIndex >= len(sf.Instruments) {
			continue
		}
		inst := &sf.Instruments[pz.InstrumentIndex]
		instGlobal := instrumentGlobalZone(inst)

		for izIdx := range inst.Zones {
			iz := &inst.Zones[izIdx]
			if iz.isGlobalInstrument() {
				continue
			}
			if !iz.KeyRange.Covers(key) || !iz.VelRange.Covers(vel) {
				continue
			}
			if iz.SampleIndex < 0 || iz.SampleIndex >= len(sf.SampleHeaders) {
				continue
			}

			out = append(out, RegionPair{
				presetZone:   pz,
				presetGlobal: presetGlobal,
				instZone:     iz,
				instGlobal:   instGlobal,
				Sample:       &sf.SampleHeaders[iz.SampleIndex],
			})
		}
	}
	return out
}

func findPreset(sf *SoundFont, bank, patch int) *Preset {
	for i := range sf.Presets {
		if sf.Presets[i].BankNumber == bank && sf.Presets[i].PatchNumber == patch {
			return &sf.Presets[i]
		}
	}
	return nil
}

func presetGlobalZone(p *Preset) *Zone {
	if len(p.Zones) > 0 && p.Zones[0].isGlobalPreset() {
		return &p.Zones[0]
	}
	return nil
}

func instrumentGlobalZone(i *Instrument) *Zone {
	if len(i.Zones) > 0 && i.Zones[0].isGlobalInstrument() {
		return &i.Zones[0]
	}
	return nil
}

// --- physical-unit accessors used by the voice DSP -----------------------

func (rp *RegionPair) pan() float64 { return panToNormalized(rp.Generator(GenPan)) }

func (rp *RegionPair) initialFilterCutoffHz() float64 {
	return absoluteCentsToHz(float64(rp.Generator(GenInitialFilterFc)))
}

func (rp *RegionPair) initialFilterQDb() float64 {
	return float64(rp.Generator(GenInitialFilterQ)) / 10
}

func (rp *RegionPair) initialAttenuationLinear() float64 {
	return centibelsToLinear(float64(rp.Generator(GenInitialAttenuation)))
}

func (rp *RegionPair) delayVolEnv() float64  { return timecentsToSeconds(float64(rp.Generator(GenDelayVolEnv))) }
func (rp *RegionPair) attackVolEnv() float64 { return timecentsToSeconds(float64(rp.Generator(GenAttackVolEnv))) }
func (rp *RegionPair) holdVolEnv() float64   { return timecentsToSeconds(float64(rp.Generator(GenHoldVolEnv))) }
func (rp *RegionPair) decayVolEnv() float64  { return timecentsToSeconds(float64(rp.Generator(GenDecayVolEnv))) }
func (rp *RegionPair) releaseVolEnv() float64 {
	return timecentsToSeconds(float64(rp.Generator(GenReleaseVolEnv)))
}
func (rp *RegionPair) sustainVolEnvCb() float64 { return float64(rp.Generator(GenSustainVolEnv)) / 10 }
func (rp *RegionPair) keynumToVolEnvHold() float64 {
	return float64(rp.Generator(GenKeynumToVolEnvHold))
}
func (rp *RegionPair) keynumToVolEnvDecay() float64 {
	return float64(rp.Generator(GenKeynumToVolEnvDecay))
}

func (rp *RegionPair) delayModEnv() float64  { return timecentsToSeconds(float64(rp.Generator(GenDelayModEnv))) }
func (rp *RegionPair) attackModEnv() float64 { return timecentsToSeconds(float64(rp.Generator(GenAttackModEnv))) }
func (rp *RegionPair) holdModEnv() float64   { return timecentsToSeconds(float64(rp.Generator(GenHoldModEnv))) }
func (rp *RegionPair) decayModEnv() float64  { return timecentsToSeconds(float64(rp.Generator(GenDecayModEnv))) }
func (rp *RegionPair) releaseModEnv() float64 {
	return timecentsToSeconds(float64(rp.Generator(GenReleaseModEnv)))
}
func (rp *RegionPair) sustainModEnvPct() float64 { return float64(rp.Generator(GenSustainModEnv)) / 10 }
func (rp *RegionPair) keynumToModEnvHold() float64 {
	return float64(rp.Generator(GenKeynumToModEnvHold))
}
func (rp *RegionPair) keynumToModEnvDecay() float64 {
	return float64(rp.Generator(GenKeynumToModEnvDecay))
}

func (rp *RegionPair) delayVibLFO() float64 { return timecentsToSeconds(float64(rp.Generator(GenDelayVibLFO))) }
func (rp *RegionPair) freqVibLFOHz() float64 {
	return absoluteCentsToHz(float64(rp.Generator(GenFreqVibLFO)))
}
func (rp *RegionPair) delayModLFO() float64 { return timecentsToSeconds(float64(rp.Generator(GenDelayModLFO))) }
func (rp *RegionPair) freqModLFOHz() float64 {
	return absoluteCentsToHz(float64(rp.Generator(GenFreqModLFO)))
}

func (rp *RegionPair) vibLfoToPitch() float64    { return float64(rp.Generator(GenVibLfoToPitch)) }
func (rp *RegionPair) modLfoToPitch() float64    { return float64(rp.Generator(GenModLfoToPitch)) }
func (rp *RegionPair) modEnvToPitch() float64    { return float64(rp.Generator(GenModEnvToPitch)) }
func (rp *RegionPair) modLfoToFilterFc() float64 { return float64(rp.Generator(GenModLfoToFilterFc)) }
func (rp *RegionPair) modEnvToFilterFc() float64 { return float64(rp.Generator(GenModEnvToFilterFc)) }
func (rp *RegionPair) modLfoToVolume() float64   { return float64(rp.Generator(GenModLfoToVolume)) }

func (rp *RegionPair) coarseTune() int     { return int(rp.Generator(GenCoarseTune)) }
func (rp *RegionPair) fineTune() int       { return int(rp.Generator(GenFineTune)) }
func (rp *RegionPair) scaleTuning() float64 { return float64(rp.Generator(GenScaleTuning)) }
func (rp *RegionPair) exclusiveClass() int { return int(rp.Generator(GenExclusiveClass)) }

func (rp *RegionPair) overridingRootKey() int {
	v := rp.Generator(GenOverridingRootKey)
	if v < 0 {
		return int(rp.Sample.OriginalPitch)
	}
	return int(v)
}

func (rp *RegionPair) sampleModes() SampleMode {
	return SampleMode(rp.Generator(GenSampleModes))
}

func (rp *RegionPair) reverbSend() float64 {
	return clamp01(float64(rp.Generator(GenReverbEffectsSend)) / 1000)
}
func (rp *RegionPair) chorusSend() float64 {
	return clamp01(float64(rp.Generator(GenChorusEffectsSend)) / 1000)
}

func (rp *RegionPair) sampleStartOffset() int32 {
	return int32(rp.Generator(GenStartAddrsOffset)) + int32(rp.Generator(GenStartAddrsCoarseOffset))*32768
}
func (rp *RegionPair) sampleEndOffset() int32 {
	return int32(rp.Generator(GenEndAddrsOffset)) + int32(rp.Generator(GenEndAddrsCoarseOffset))*32768
}
func (rp *RegionPair) sampleStartLoopOffset() int32 {
	return int32(rp.Generator(GenStartloopAddrsOffset)) + int32(rp.Generator(GenStartloopAddrsCoarseOffset))*32768
}
func (rp *RegionPair) sampleEndLoopOffset() int32 {
	return int32(rp.Generator(GenEndloopAddrsOffset)) + int32(rp.Generator(GenEndloopAddrsCoarseOffset))*32768
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

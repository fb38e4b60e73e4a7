package synth

import "testing"

func fullRange() Range { return Range{Lo: 0, Hi: 127} }

func TestRegionPairsForNoteFlattensPresetInstrumentZones(t *testing.T) {
	sh := SampleHeader{Name: "tone", Start: 0, End: 100, SampleRate: 44100, OriginalPitch: 60}
	sf := &SoundFont{
		SampleHeaders: []SampleHeader{sh},
		Instruments: []Instrument{{
			Name: "inst0",
			Zones: []Zone{{
				Generators:      map[GeneratorID]int16{},
				KeyRange:        fullRange(),
				VelRange:        fullRange(),
				InstrumentIndex: -1,
				SampleIndex:     0,
			}},
		}},
		Presets: []Preset{{
			Name: "preset0", BankNumber: 0, PatchNumber: 0,
			Zones: []Zone{{
				Generators:      map[GeneratorID]int16{},
				KeyRange:        fullRange(),
				VelRange:        fullRange(),
				InstrumentIndex: 0,
				SampleIndex:     -1,
			}},
		}},
	}

	regions := RegionPairsForNote(sf, 0, 0, 60, 100)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	if regions[0].Sample.Name != "tone" {
		t.Errorf("region sample = %q, want tone", regions[0].Sample.Name)
	}
}

func TestRegionPairsForNoteFiltersByKeyAndVelocityRange(t *testing.T) {
	sh := SampleHeader{Name: "tone", Start: 0, End: 100, SampleRate: 44100, OriginalPitch: 60}
	sf := &SoundFont{
		SampleHeaders: []SampleHeader{sh},
		Instruments: []Instrument{{
			Zones: []Zone{{
				Generators:      map[GeneratorID]int16{},
				KeyRange:        Range{Lo: 60, Hi: 72},
				VelRange:        fullRange(),
				InstrumentIndex: -1,
				SampleIndex:     0,
			}},
		}},
		Presets: []Preset{{
			Zones: []Zone{{
				Generators:      map[GeneratorID]int16{},
				KeyRange:        fullRange(),
				VelRange:        fullRange(),
				InstrumentIndex: 0,
				SampleIndex:     -1,
			}},
		}},
	}

	if got := RegionPairsForNote(sf, 0, 0, 40, 100); len(got) != 0 {
		t.Errorf("expected no regions for a key outside the instrument zone's range, got %d", len(got))
	}
	if got := RegionPairsForNote(sf, 0, 0, 64, 100); len(got) != 1 {
		t.Errorf("expected one region for a key inside range, got %d", len(got))
	}
}

func TestRegionPairsForNoteUnknownProgramReturnsNil(t *testing.T) {
	sf := &SoundFont{}
	if got := RegionPairsForNote(sf, 0, 5, 60, 100); got != nil {
		t.Errorf("expected nil for an unknown (bank, patch), got %v", got)
	}
}

func TestGeneratorAdditiveCombination(t *testing.T) {
	rp := &RegionPair{
		instZone:   &Zone{Generators: map[GeneratorID]int16{GenCoarseTune: 2}},
		presetZone: &Zone{Generators: map[GeneratorID]int16{GenCoarseTune: 1}},
	}
	if got := rp.Generator(GenCoarseTune); got != 3 {
		t.Errorf("coarse tune = %d, want 3 (instrument 2 + preset offset 1)", got)
	}
}

func TestGeneratorInstrumentOnlyIgnoresPresetLayer(t *testing.T) {
	rp := &RegionPair{
		instZone:   &Zone{Generators: map[GeneratorID]int16{GenSampleID: 7}},
		presetZone: &Zone{Generators: map[GeneratorID]int16{GenSampleID: 99}},
	}
	if got := rp.Generator(GenSampleID); got != 7 {
		t.Errorf("sampleID = %d, want 7 (instrument-only generator must ignore preset offset)", got)
	}
}

func TestGeneratorFallsBackToDefaultWhenUnset(t *testing.T) {
	rp := &RegionPair{
		instZone: &Zone{Generators: map[GeneratorID]int16{}},
	}
	if got := rp.Generator(GenInitialFilterFc); got != generatorDefaults[GenInitialFilterFc] {
		t.Errorf("Generator(GenInitialFilterFc) = %d, want default %d", got, generatorDefaults[GenInitialFilterFc])
	}
}

func TestGeneratorGlobalZoneProvidesFallback(t *testing.T) {
	rp := &RegionPair{
		instZone:   &Zone{Generators: map[GeneratorID]int16{}},
		instGlobal: &Zone{Generators: map[GeneratorID]int16{GenPan: 250}},
	}
	if got := rp.Generator(GenPan); got != 250 {
		t.Errorf("Generator(GenPan) = %d, want 250 from the global zone", got)
	}
}

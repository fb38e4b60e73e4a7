package synth

// sanityCheckRegions validates every instrument zone's sample reference
// against the wave data pool. Per the Open Question in spec.md S9, this
// resolves to fail-the-load: any violation aborts ReadSoundFont with a
// typed error rather than logging and continuing.
func sanityCheckRegions(sf *SoundFont) error {
	waveLen := len(sf.WaveData)

	for _, inst := range sf.Instruments {
		for zoneIdx, z := range inst.Zones {
			if z.isGlobalInstrument() {
				continue
			}
			if z.SampleIndex >= len(sf.SampleHeaders) {
				return &RegionCheckFailedError{
					InstrumentName: inst.Name,
					ZoneIndex:      zoneIdx,
					Msg:            "sample index out of range",
				}
			}
			sh := sf.SampleHeaders[z.SampleIndex]

			if sh.End <= sh.Start {
				return &RegionSampleOutOfBoundsError{
					SampleName: sh.Name, Start: sh.Start, End: sh.End,
					StartLoop: sh.StartLoop, EndLoop: sh.EndLoop, WaveDataLen: waveLen,
				}
			}
			if sh.EndLoop < sh.StartLoop {
				return &RegionSampleOutOfBoundsError{
					SampleName: sh.Name, Start: sh.Start, End: sh.End,
					StartLoop: sh.StartLoop, EndLoop: sh.EndLoop, WaveDataLen: waveLen,
				}
			}
			if int(sh.End) >= waveLen || int(sh.EndLoop) >= waveLen {
				return &RegionSampleOutOfBoundsError{
					SampleName: sh.Name, Start: sh.Start, End: sh.End,
					StartLoop: sh.StartLoop, EndLoop: sh.EndLoop, WaveDataLen: waveLen,
				}
			}
		}
	}

	return nil
}

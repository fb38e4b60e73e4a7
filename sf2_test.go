package synth

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// --- minimal SF2 byte-stream builder, for exercising ReadSoundFont
// without needing a real bundled .sf2 asset. ---

func u16le(v uint16) []byte { b := make([]byte, 2); binary.LittleEndian.PutUint16(b, v); return b }
func u32le(v uint32) []byte { b := make([]byte, 4); binary.LittleEndian.PutUint32(b, v); return b }

func fixedStr(s string, n int) []byte {
	b := make([]byte, n)
	copy(b, s)
	return b
}

func chunk(id string, data []byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(id)
	buf.Write(u32le(uint32(len(data))))
	buf.Write(data)
	if len(data)%2 == 1 {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func list(form string, subchunks ...[]byte) []byte {
	var buf bytes.Buffer
	buf.WriteString(form)
	for _, c := range subchunks {
		buf.Write(c)
	}
	return chunk("LIST", buf.Bytes())
}

// buildMinimalSF2 returns a one-preset, one-instrument, one-sample
// SoundFont: a single 100-sample looped mono tone mapped across the full
// key range.
func buildMinimalSF2(t *testing.T) []byte {
	t.Helper()

	info := list("INFO", chunk("ifil", append(u16le(2), u16le(1)...)), chunk("INAM", fixedStr("unit test bank", 16)))

	pcm := make([]byte, 220) // 110 16-bit samples; shdr below stays strictly inside this pool
	for i := 0; i < 110; i++ {
		v := int16(1000)
		if i%2 == 0 {
			v = -1000
		}
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(v))
	}
	sdta := list("sdta", chunk("smpl", pcm))

	// shdr: one real sample record + terminal sentinel.
	shdrRec := func(name string, start, end, startLoop, endLoop, sampleRate uint32, origPitch uint8) []byte {
		var b bytes.Buffer
		b.Write(fixedStr(name, 20))
		b.Write(u32le(start))
		b.Write(u32le(end))
		b.Write(u32le(startLoop))
		b.Write(u32le(endLoop))
		b.Write(u32le(sampleRate))
		b.WriteByte(origPitch)
		b.WriteByte(0) // pitch correction
		b.Write(u16le(0))
		b.Write(u16le(1)) // sfSampleTypeMono
		return b.Bytes()
	}
	shdr := append(shdrRec("tone", 0, 100, 10, 90, 44100, 60), shdrRec("EOS", 0, 0, 0, 0, 0, 0)...)

	genRec := func(op GeneratorID, amount int16) []byte {
		return append(u16le(uint16(op)), u16le(uint16(amount))...)
	}
	bagRec := func(genIdx, modIdx uint16) []byte {
		return append(u16le(genIdx), u16le(modIdx)...)
	}

	// igen: one zone referencing sample 0, covering the whole key range.
	igen := append(genRec(GenSampleModes, int16(SampleModeLoop)), genRec(GenSampleID, 0)...)
	ibag := append(bagRec(0, 0), bagRec(uint16(len(igen)/4), 0)...)
	instRec := func(name string, bagNdx uint16) []byte {
		return append(fixedStr(name, 20), u16le(bagNdx)...)
	}
	// The terminal record's bagNdx points at the terminal ibag record.
	inst := append(instRec("inst0", 0), instRec("EOI", uint16(len(ibag)/4-1))...)

	// pgen: one zone referencing instrument 0.
	pgen := genRec(GenInstrument, 0)
	pbag := append(bagRec(0, 0), bagRec(uint16(len(pgen)/4), 0)...)
	phdrRec := func(name string, patch, bank, bagNdx uint16) []byte {
		var b bytes.Buffer
		b.Write(fixedStr(name, 20))
		b.Write(u16le(patch))
		b.Write(u16le(bank))
		b.Write(u16le(bagNdx))
		b.Write(make([]byte, 12)) // library/genre/morphology
		return b.Bytes()
	}
	phdr := append(phdrRec("preset0", 0, 0, 0), phdrRec("EOP", 0, 0, uint16(len(pbag)/4-1))...)

	pdta := list("pdta",
		chunk("phdr", phdr),
		chunk("pbag", pbag),
		chunk("pmod", nil),
		chunk("pgen", pgen),
		chunk("inst", inst),
		chunk("ibag", ibag),
		chunk("imod", nil),
		chunk("igen", igen),
		chunk("shdr", shdr),
	)

	var body bytes.Buffer
	body.WriteString("sfbk")
	body.Write(info)
	body.Write(sdta)
	body.Write(pdta)

	return chunk("RIFF", body.Bytes())
}

func TestReadSoundFontMinimal(t *testing.T) {
	data := buildMinimalSF2(t)
	sf, err := ReadSoundFont(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadSoundFont: %v", err)
	}
	if len(sf.Presets) != 1 {
		t.Fatalf("got %d presets, want 1", len(sf.Presets))
	}
	if len(sf.Instruments) != 1 {
		t.Fatalf("got %d instruments, want 1", len(sf.Instruments))
	}
	if len(sf.SampleHeaders) != 1 {
		t.Fatalf("got %d sample headers, want 1", len(sf.SampleHeaders))
	}
	if len(sf.WaveData) == 0 {
		t.Fatal("WaveData is empty")
	}
	if sf.Info.MajorVersion != 2 || sf.Info.MinorVersion != 1 {
		t.Errorf("Info version = %d.%d, want 2.1", sf.Info.MajorVersion, sf.Info.MinorVersion)
	}
}

func TestReadSoundFontRejectsBadRiffTag(t *testing.T) {
	data := buildMinimalSF2(t)
	data[0] = 'X' // corrupt "RIFF"
	if _, err := ReadSoundFont(bytes.NewReader(data)); err == nil {
		t.Fatal("expected an error for a corrupted RIFF tag")
	}
}

func TestReadSoundFontSampleBoundsWithinWaveData(t *testing.T) {
	data := buildMinimalSF2(t)
	sf, err := ReadSoundFont(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadSoundFont: %v", err)
	}
	for _, sh := range sf.SampleHeaders {
		if !(sh.Start < sh.End && int(sh.End) <= len(sf.WaveData)) {
			t.Errorf("sample %q bounds invalid: start=%d end=%d len=%d", sh.Name, sh.Start, sh.End, len(sf.WaveData))
		}
		if sh.StartLoop > sh.EndLoop {
			t.Errorf("sample %q loop bounds invalid: startLoop=%d endLoop=%d", sh.Name, sh.StartLoop, sh.EndLoop)
		}
	}
}

package synth

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/chriskillpack/sf2synth/internal/riffio"
)

var (
	fourccRIFF = [4]byte{'R', 'I', 'F', 'F'}
	fourccLIST = [4]byte{'L', 'I', 'S', 'T'}
	fourccSfbk = [4]byte{'s', 'f', 'b', 'k'}
	fourccINFO = [4]byte{'I', 'N', 'F', 'O'}
	fourccSdta = [4]byte{'s', 'd', 't', 'a'}
	fourccPdta = [4]byte{'p', 'd', 't', 'a'}
	fourccSmpl = [4]byte{'s', 'm', 'p', 'l'}
	fourccSm24 = [4]byte{'s', 'm', '2', '4'}
)

// rawChunk is a fully-buffered RIFF chunk: FourCC id plus its data bytes,
// with the odd-size pad byte (if any) already consumed from the stream.
type rawChunk struct {
	id   [4]byte
	data []byte
}

func readChunk(r *riffio.Reader) (rawChunk, error) {
	var ck rawChunk
	id, err := r.ReadFourCC()
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return ck, io.EOF
		}
		return ck, err
	}
	size, err := r.ReadU32LE()
	if err != nil {
		return ck, err
	}
	data, err := r.ReadExact(int(size))
	if err != nil {
		return ck, err
	}
	if size%2 == 1 {
		// RIFF pads odd-sized chunks to an even boundary.
		if _, err := r.ReadU8(); err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
			return ck, err
		}
	}
	ck.id, ck.data = id, data
	return ck, nil
}

func expectChunk(r *riffio.Reader, want [4]byte) (rawChunk, error) {
	ck, err := readChunk(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ck, fmt.Errorf("%w: expected %q", ErrRiffChunkNotFound, tag(want))
		}
		return ck, err
	}
	if ck.id != want {
		return ck, &InvalidRiffChunkTypeError{Expected: want, Actual: ck.id}
	}
	return ck, nil
}

// expectList reads a chunk, requires it to be a LIST, requires its first
// four data bytes to equal wantForm, and returns the remaining data (the
// LIST's sub-chunks) as a fresh reader.
func expectList(r *riffio.Reader, wantForm [4]byte) (*riffio.Reader, error) {
	ck, err := readChunk(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: expected LIST %q", ErrListChunkNotFound, tag(wantForm))
		}
		return nil, err
	}
	if ck.id != fourccLIST {
		return nil, &InvalidRiffChunkTypeError{Expected: fourccLIST, Actual: ck.id}
	}
	if len(ck.data) < 4 {
		return nil, &InvalidListChunkTypeError{Expected: wantForm}
	}
	var form [4]byte
	copy(form[:], ck.data[:4])
	if form != wantForm {
		return nil, &InvalidListChunkTypeError{Expected: wantForm, Actual: form}
	}
	return riffio.NewReader(bytes.NewReader(ck.data[4:])), nil
}

// ReadSoundFont parses a RIFF sfbk SoundFont 2.x file into an immutable,
// shareable SoundFont. Parsing is fail-fast: the first fatal error is
// returned and no partial SoundFont is handed back.
func ReadSoundFont(r io.Reader) (*SoundFont, error) {
	outer := riffio.NewReader(r)

	riffCk, err := expectChunk(outer, fourccRIFF)
	if err != nil {
		return nil, err
	}
	if len(riffCk.data) < 4 {
		return nil, &InvalidRiffChunkTypeError{Expected: fourccSfbk}
	}
	var form [4]byte
	copy(form[:], riffCk.data[:4])
	if form != fourccSfbk {
		return nil, &InvalidRiffChunkTypeError{Expected: fourccSfbk, Actual: form}
	}

	body := riffio.NewReader(bytes.NewReader(riffCk.data[4:]))

	infoReader, err := expectList(body, fourccINFO)
	if err != nil {
		return nil, err
	}
	info, err := parseInfoList(infoReader)
	if err != nil {
		return nil, err
	}
	if info.MajorVersion == 3 {
		// SoundFont 3: compressed sample data.
		return nil, ErrUnsupportedSampleFormat
	}

	sdtaReader, err := expectList(body, fourccSdta)
	if err != nil {
		return nil, err
	}
	waveData, err := parseSdtaList(sdtaReader)
	if err != nil {
		return nil, err
	}

	pdtaReader, err := expectList(body, fourccPdta)
	if err != nil {
		return nil, err
	}
	hydra, err := parsePdtaList(pdtaReader)
	if err != nil {
		return nil, err
	}

	sf := &SoundFont{
		Info:          info,
		BitsPerSample: 16,
		WaveData:      waveData,
		SampleHeaders: hydra.sampleHeaders,
		Presets:       hydra.presets,
		Instruments:   hydra.instruments,
	}

	if err := sanityCheckRegions(sf); err != nil {
		return nil, err
	}

	sortPresets(sf.Presets)

	return sf, nil
}

// sortPresets orders presets by (bank, patch) ascending while preserving
// the relative order of duplicates (stable sort), per spec.md S4.1.
func sortPresets(presets []Preset) {
	sort.SliceStable(presets, func(i, j int) bool {
		if presets[i].BankNumber != presets[j].BankNumber {
			return presets[i].BankNumber < presets[j].BankNumber
		}
		return presets[i].PatchNumber < presets[j].PatchNumber
	})
}

// --- INFO -------------------------------------------------------------

func parseInfoList(r *riffio.Reader) (Info, error) {
	info := Info{Engine: "EMU8000"}
	sawIfil := false

	for {
		ck, err := readChunk(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return info, err
		}

		cr := riffio.NewReader(bytes.NewReader(ck.data))
		switch ck.id {
		case [4]byte{'i', 'f', 'i', 'l'}:
			if len(ck.data) != 4 {
				return info, fmt.Errorf("synth: ifil subchunk must be 4 bytes")
			}
			info.MajorVersion, _ = cr.ReadU16LE()
			info.MinorVersion, _ = cr.ReadU16LE()
			sawIfil = true
		case [4]byte{'i', 's', 'n', 'g'}:
			info.Engine = riffio.SanitizeFixedString(ck.data)
		case [4]byte{'I', 'N', 'A', 'M'}:
			info.Name = riffio.SanitizeFixedString(ck.data)
		case [4]byte{'i', 'r', 'o', 'm'}:
			info.ROM = riffio.SanitizeFixedString(ck.data)
		case [4]byte{'i', 'v', 'e', 'r'}:
			if len(ck.data) != 4 {
				return info, fmt.Errorf("synth: iver subchunk must be 4 bytes")
			}
			info.ROMMajorVersion, _ = cr.ReadU16LE()
			info.ROMMinorVersion, _ = cr.ReadU16LE()
		case [4]byte{'I', 'C', 'R', 'D'}:
			info.CreationDate = riffio.SanitizeFixedString(ck.data)
		case [4]byte{'I', 'E', 'N', 'G'}:
			info.Engineers = riffio.SanitizeFixedString(ck.data)
		case [4]byte{'I', 'P', 'R', 'D'}:
			info.Product = riffio.SanitizeFixedString(ck.data)
		case [4]byte{'I', 'C', 'O', 'P'}:
			info.Copyright = riffio.SanitizeFixedString(ck.data)
		case [4]byte{'I', 'C', 'M', 'T'}:
			info.Comments = riffio.SanitizeFixedString(ck.data)
		case [4]byte{'I', 'S', 'F', 'T'}:
			info.Software = riffio.SanitizeFixedString(ck.data)
		default:
			// Recoverable: unknown INFO records are logged, not fatal.
			Logger.Warn("unknown INFO record", "fourcc", tag(ck.id))
		}
	}

	if !sawIfil {
		return info, fmt.Errorf("synth: ifil chunk is missing")
	}
	return info, nil
}

// --- sdta ---------------------------------------------------------------

func parseSdtaList(r *riffio.Reader) ([]int16, error) {
	ck, err := readChunk(r)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrSampleDataNotFound
		}
		return nil, err
	}
	if ck.id != fourccSmpl {
		return nil, ErrSampleDataNotFound
	}

	wave := make([]int16, len(ck.data)/2)
	for i := range wave {
		wave[i] = int16(uint16(ck.data[2*i]) | uint16(ck.data[2*i+1])<<8)
	}

	// A sibling sm24 sub-chunk means 24-bit samples, which this engine
	// (SoundFont 2 core, 16-bit only) does not support.
	if ck2, err := readChunk(r); err == nil && ck2.id == fourccSm24 {
		return nil, ErrUnsupportedSampleFormat
	}

	return wave, nil
}

// --- pdta -----------------------------------------------------------------

type hydra struct {
	presets       []Preset
	instruments   []Instrument
	sampleHeaders []SampleHeader
}

type rawBag struct {
	genIndex, modIndex uint16
}

type rawGenerator struct {
	op     uint16
	amount int16
}

func parsePdtaList(r *riffio.Reader) (hydra, error) {
	var h hydra

	order := []struct {
		id     [4]byte
		stride int
		err    error
	}{
		{[4]byte{'p', 'h', 'd', 'r'}, 38, &SubChunkNotFoundError{ID: [4]byte{'p', 'h', 'd', 'r'}}},
		{[4]byte{'p', 'b', 'a', 'g'}, 4, &SubChunkNotFoundError{ID: [4]byte{'p', 'b', 'a', 'g'}}},
		{[4]byte{'p', 'm', 'o', 'd'}, 10, &SubChunkNotFoundError{ID: [4]byte{'p', 'm', 'o', 'd'}}},
		{[4]byte{'p', 'g', 'e', 'n'}, 4, &SubChunkNotFoundError{ID: [4]byte{'p', 'g', 'e', 'n'}}},
		{[4]byte{'i', 'n', 's', 't'}, 22, &SubChunkNotFoundError{ID: [4]byte{'i', 'n', 's', 't'}}},
		{[4]byte{'i', 'b', 'a', 'g'}, 4, &SubChunkNotFoundError{ID: [4]byte{'i', 'b', 'a', 'g'}}},
		{[4]byte{'i', 'm', 'o', 'd'}, 10, &SubChunkNotFoundError{ID: [4]byte{'i', 'm', 'o', 'd'}}},
		{[4]byte{'i', 'g', 'e', 'n'}, 4, &SubChunkNotFoundError{ID: [4]byte{'i', 'g', 'e', 'n'}}},
		{[4]byte{'s', 'h', 'd', 'r'}, 46, &SubChunkNotFoundError{ID: [4]byte{'s', 'h', 'd', 'r'}}},
	}

	raw := make(map[[4]byte][]byte, len(order))
	for _, spec := range order {
		ck, err := readChunk(r)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return h, spec.err
			}
			return h, err
		}
		if ck.id != spec.id {
			return h, &ListContainsUnknownIDError{ID: ck.id}
		}
		if len(ck.data)%spec.stride != 0 {
			return h, fmt.Errorf("synth: %s chunk size %d is not a multiple of %d", tag(ck.id), len(ck.data), spec.stride)
		}
		raw[ck.id] = ck.data
	}

	// Any trailing chunk after shdr is unexpected inside pdta.
	if ck, err := readChunk(r); err == nil {
		return h, &ListContainsUnknownIDError{ID: ck.id}
	}

	phdr := raw[[4]byte{'p', 'h', 'd', 'r'}]
	pbag := decodeBags(raw[[4]byte{'p', 'b', 'a', 'g'}])
	pgen := decodeGenerators(raw[[4]byte{'p', 'g', 'e', 'n'}])
	inst := raw[[4]byte{'i', 'n', 's', 't'}]
	ibag := decodeBags(raw[[4]byte{'i', 'b', 'a', 'g'}])
	igen := decodeGenerators(raw[[4]byte{'i', 'g', 'e', 'n'}])
	shdr := raw[[4]byte{'s', 'h', 'd', 'r'}]

	sampleHeaders, err := decodeSampleHeaders(shdr)
	if err != nil {
		return h, err
	}
	nSamples := len(sampleHeaders)

	instruments, err := decodeInstruments(inst, ibag, igen, nSamples)
	if err != nil {
		return h, err
	}

	presets, err := decodePresets(phdr, pbag, pgen, len(instruments))
	if err != nil {
		return h, err
	}

	h.sampleHeaders = sampleHeaders
	h.instruments = instruments
	h.presets = presets
	return h, nil
}

func decodeBags(data []byte) []rawBag {
	bags := make([]rawBag, len(data)/4)
	for i := range bags {
		bags[i].genIndex = uint16(data[4*i]) | uint16(data[4*i+1])<<8
		bags[i].modIndex = uint16(data[4*i+2]) | uint16(data[4*i+3])<<8
	}
	return bags
}

func decodeGenerators(data []byte) []rawGenerator {
	gens := make([]rawGenerator, len(data)/4)
	for i := range gens {
		gens[i].op = uint16(data[4*i]) | uint16(data[4*i+1])<<8
		gens[i].amount = int16(uint16(data[4*i+2]) | uint16(data[4*i+3])<<8)
	}
	return gens
}

func decodeSampleHeaders(data []byte) ([]SampleHeader, error) {
	stride := 46
	n := len(data)/stride - 1 // drop the terminal sentinel record
	if n < 0 {
		return nil, ErrInvalidSampleHeaderList
	}
	out := make([]SampleHeader, n)
	for i := 0; i < n; i++ {
		rec := data[i*stride : (i+1)*stride]
		cr := riffio.NewReader(bytes.NewReader(rec))
		name, _ := cr.ReadFixedString(20)
		start, _ := cr.ReadU32LE()
		end, _ := cr.ReadU32LE()
		startLoop, _ := cr.ReadU32LE()
		endLoop, _ := cr.ReadU32LE()
		sampleRate, _ := cr.ReadU32LE()
		originalPitch, _ := cr.ReadU8()
		pitchCorrection, _ := cr.ReadI8()
		sampleLink, _ := cr.ReadU16LE()
		sampleType, _ := cr.ReadU16LE()

		out[i] = SampleHeader{
			Name:            name,
			Start:           start,
			End:             end,
			StartLoop:       startLoop,
			EndLoop:         endLoop,
			SampleRate:      sampleRate,
			OriginalPitch:   originalPitch,
			PitchCorrection: pitchCorrection,
			SampleLink:      sampleLink,
			SampleType:      SampleType(sampleType),
		}
	}
	return out, nil
}

// decodeInstruments builds the Instrument table (with flattened zones)
// from the inst/ibag/igen triple.
func decodeInstruments(instData []byte, ibag []rawBag, igen []rawGenerator, nSamples int) ([]Instrument, error) {
	stride := 22
	nInst := len(instData)/stride - 1
	if nInst < 0 {
		return nil, ErrInvalidInstrumentList
	}

	type rawInst struct {
		name    string
		bagNdx  uint16
	}
	recs := make([]rawInst, nInst+1) // +1 to read the terminal's bagNdx as an end marker
	for i := 0; i <= nInst; i++ {
		rec := instData[i*stride : (i+1)*stride]
		cr := riffio.NewReader(bytes.NewReader(rec))
		name, _ := cr.ReadFixedString(20)
		bagNdx, _ := cr.ReadU16LE()
		recs[i] = rawInst{name: name, bagNdx: bagNdx}
	}

	instruments := make([]Instrument, nInst)
	for i := 0; i < nInst; i++ {
		lo, hi := recs[i].bagNdx, recs[i+1].bagNdx
		if int(hi) > len(ibag)-1 || lo > hi {
			return nil, ErrInvalidZoneList
		}
		zones, err := buildZones(ibag, igen, lo, hi, nSamples, false, i)
		if err != nil {
			return nil, err
		}
		instruments[i] = Instrument{Name: recs[i].name, Zones: zones}
	}
	return instruments, nil
}

// decodePresets builds the Preset table (with flattened zones) from the
// phdr/pbag/pgen triple.
func decodePresets(phdrData []byte, pbag []rawBag, pgen []rawGenerator, nInstruments int) ([]Preset, error) {
	stride := 38
	nPresets := len(phdrData)/stride - 1
	if nPresets < 0 {
		return nil, ErrInvalidPresetList
	}

	type rawPreset struct {
		name        string
		patch, bank uint16
		bagNdx      uint16
	}
	recs := make([]rawPreset, nPresets+1)
	for i := 0; i <= nPresets; i++ {
		rec := phdrData[i*stride : (i+1)*stride]
		cr := riffio.NewReader(bytes.NewReader(rec))
		name, _ := cr.ReadFixedString(20)
		patch, _ := cr.ReadU16LE()
		bank, _ := cr.ReadU16LE()
		bagNdx, _ := cr.ReadU16LE()
		// library/genre/morphology (12 bytes) intentionally unread: reserved
		recs[i] = rawPreset{name: name, patch: patch, bank: bank, bagNdx: bagNdx}
	}

	presets := make([]Preset, nPresets)
	for i := 0; i < nPresets; i++ {
		lo, hi := recs[i].bagNdx, recs[i+1].bagNdx
		if int(hi) > len(pbag)-1 || lo > hi {
			return nil, ErrInvalidZoneList
		}
		zones, err := buildZones(pbag, pgen, lo, hi, nInstruments, true, i)
		if err != nil {
			return nil, err
		}
		presets[i] = Preset{
			Name:        recs[i].name,
			PatchNumber: int(recs[i].patch),
			BankNumber:  int(recs[i].bank),
			Zones:       zones,
		}
	}
	return presets, nil
}

// buildZones pairs bag[lo..hi) against the generator array, producing one
// Zone per bag entry. isPreset controls whether the terminal generator
// that makes a zone non-global is "instrument" (41) or "sampleID" (53),
// and which of Zone.InstrumentIndex/SampleIndex gets populated.
func buildZones(bags []rawBag, gens []rawGenerator, lo, hi uint16, linkTableLen int, isPreset bool, ownerIndex int) ([]Zone, error) {
	zones := make([]Zone, 0, hi-lo)
	for b := lo; b < hi; b++ {
		genLo, genHi := bags[b].genIndex, bags[b+1].genIndex
		if int(genHi) > len(gens) || genLo > genHi {
			return nil, ErrInvalidGeneratorList
		}

		z := Zone{
			Generators:      make(map[GeneratorID]int16, genHi-genLo),
			KeyRange:        defaultKeyRange(),
			VelRange:        defaultVelRange(),
			InstrumentIndex: -1,
			SampleIndex:     -1,
		}

		for g := genLo; g < genHi; g++ {
			gen := gens[g]
			id := GeneratorID(gen.op)
			switch id {
			case GenKeyRange:
				z.KeyRange = rangeFromRaw(gen.amount)
				continue
			case GenVelRange:
				z.VelRange = rangeFromRaw(gen.amount)
				continue
			}
			z.Generators[id] = gen.amount

			if isPreset && id == GenInstrument {
				z.InstrumentIndex = int(uint16(gen.amount))
			}
			if !isPreset && id == GenSampleID {
				z.SampleIndex = int(uint16(gen.amount))
			}
		}

		if isPreset && z.InstrumentIndex >= 0 && z.InstrumentIndex >= linkTableLen {
			return nil, &InvalidInstrumentIDError{PresetID: ownerIndex, InstrumentID: z.InstrumentIndex}
		}
		if !isPreset && z.SampleIndex >= 0 && z.SampleIndex >= linkTableLen {
			return nil, &InvalidSampleIDError{InstrumentID: ownerIndex, SampleID: z.SampleIndex}
		}

		zones = append(zones, z)
	}
	return zones, nil
}

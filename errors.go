package synth

import "fmt"

// Sentinel errors for conditions that carry no extra context, mirroring the
// teacher's own package-level sentinel (ErrUnrecognizedMODFormat).
var (
	ErrRiffChunkNotFound     = fmt.Errorf("synth: RIFF chunk not found")
	ErrListChunkNotFound     = fmt.Errorf("synth: LIST chunk not found")
	ErrSampleDataNotFound    = fmt.Errorf("synth: sdta LIST is missing its smpl sub-chunk")
	ErrUnsupportedSampleFormat = fmt.Errorf("synth: SoundFont 3 or 24-bit (sm24) samples are not supported")
	ErrInvalidPresetList     = fmt.Errorf("synth: phdr chunk is malformed")
	ErrInvalidInstrumentList = fmt.Errorf("synth: inst chunk is malformed")
	ErrInvalidSampleHeaderList = fmt.Errorf("synth: shdr chunk is malformed")
	ErrInvalidZoneList       = fmt.Errorf("synth: pbag/ibag chunk is malformed")
	ErrInvalidGeneratorList  = fmt.Errorf("synth: pgen/igen chunk is malformed")
	ErrInvalidPreset         = fmt.Errorf("synth: preset has no zones")
	ErrInvalidInstrument     = fmt.Errorf("synth: instrument has no zones")
)

// InvalidRiffChunkTypeError is returned when a chunk's FourCC tag does not
// match what the grammar at that position requires.
type InvalidRiffChunkTypeError struct {
	Expected, Actual [4]byte
}

func (e *InvalidRiffChunkTypeError) Error() string {
	return fmt.Sprintf("synth: expected chunk type %q, got %q", tag(e.Expected), tag(e.Actual))
}

// InvalidListChunkTypeError is returned when a LIST sub-chunk's form type
// (INFO/sdta/pdta) does not match what is expected at that position.
type InvalidListChunkTypeError struct {
	Expected, Actual [4]byte
}

func (e *InvalidListChunkTypeError) Error() string {
	return fmt.Sprintf("synth: expected LIST form %q, got %q", tag(e.Expected), tag(e.Actual))
}

// ListContainsUnknownIDError is returned when a pdta LIST contains a
// sub-chunk FourCC outside the nine required ones, or one out of order.
type ListContainsUnknownIDError struct {
	ID [4]byte
}

func (e *ListContainsUnknownIDError) Error() string {
	return fmt.Sprintf("synth: pdta LIST contains unexpected chunk %q", tag(e.ID))
}

// SubChunkNotFoundError is returned when a required pdta sub-chunk is
// missing entirely.
type SubChunkNotFoundError struct {
	ID [4]byte
}

func (e *SubChunkNotFoundError) Error() string {
	return fmt.Sprintf("synth: required sub-chunk %q not found", tag(e.ID))
}

// InvalidInstrumentIDError is returned when a preset zone references an
// instrument index outside the instrument table.
type InvalidInstrumentIDError struct {
	PresetID, InstrumentID int
}

func (e *InvalidInstrumentIDError) Error() string {
	return fmt.Sprintf("synth: preset %d references unknown instrument %d", e.PresetID, e.InstrumentID)
}

// InvalidSampleIDError is returned when an instrument zone references a
// sample header index outside the sample header table.
type InvalidSampleIDError struct {
	InstrumentID, SampleID int
}

func (e *InvalidSampleIDError) Error() string {
	return fmt.Sprintf("synth: instrument %d references unknown sample %d", e.InstrumentID, e.SampleID)
}

// RegionCheckFailedError is returned by the post-load sanity pass (see
// DESIGN.md for the Open Question this resolves: the pass fails the load
// rather than logging and continuing).
type RegionCheckFailedError struct {
	InstrumentName string
	ZoneIndex      int
	Msg            string
}

func (e *RegionCheckFailedError) Error() string {
	return fmt.Sprintf("synth: region check failed for instrument %q zone %d: %s", e.InstrumentName, e.ZoneIndex, e.Msg)
}

// RegionSampleOutOfBoundsError is returned when a resolved sample's start
// / end / loop indices fall outside the wave data pool, or are otherwise
// internally inconsistent (end <= start, end_loop < start_loop).
type RegionSampleOutOfBoundsError struct {
	SampleName               string
	Start, End                uint32
	StartLoop, EndLoop        uint32
	WaveDataLen               int
}

func (e *RegionSampleOutOfBoundsError) Error() string {
	return fmt.Sprintf("synth: sample %q out of bounds (start=%d end=%d loop=[%d,%d) wave_data len=%d)",
		e.SampleName, e.Start, e.End, e.StartLoop, e.EndLoop, e.WaveDataLen)
}

// InvalidConfigError is returned by NewSynthesizer when a Config field
// falls outside its documented range.
type InvalidConfigError struct {
	Field string
	Value int
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("synth: invalid Config.%s: %d", e.Field, e.Value)
}

func tag(b [4]byte) string { return string(b[:]) }

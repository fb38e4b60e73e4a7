package synth

// SoundFont is an immutable, shareable in-memory SF2 instrument bank.
// Built once by ReadSoundFont and then safe to hand to any number of
// Synthesizer instances: nothing below this type is ever mutated after
// load.
type SoundFont struct {
	Info Info

	// BitsPerSample is always 16: SoundFont 3 (compressed) and the 24-bit
	// sm24 extension are both rejected at load (ErrUnsupportedSampleFormat).
	BitsPerSample int

	// WaveData is the single mono 16-bit PCM sample pool. Every
	// SampleHeader's Start/End/StartLoop/EndLoop index into this slice.
	WaveData []int16

	SampleHeaders []SampleHeader
	Presets       []Preset
	Instruments   []Instrument
}

// Info carries the SF2 bank metadata from the INFO chunk.
type Info struct {
	MajorVersion, MinorVersion uint16
	Engine                     string // "isng", defaults to "EMU8000"
	Name                       string
	ROM                        string
	ROMMajorVersion            uint16
	ROMMinorVersion            uint16
	CreationDate               string
	Engineers                  string
	Product                    string
	Copyright                  string
	Comments                   string
	Software                   string
}

// SampleHeader describes one mono PCM segment inside SoundFont.WaveData.
type SampleHeader struct {
	Name                                   string
	Start, End, StartLoop, EndLoop         uint32
	SampleRate                             uint32
	OriginalPitch                          uint8 // MIDI key number
	PitchCorrection                        int8  // cents
	SampleLink                             uint16
	SampleType                             SampleType
}

// SampleType is the sfSampleType enumeration (mono/left/right/linked, each
// optionally ORed with the ROM-sample high bit).
type SampleType uint16

const (
	SampleTypeMono    SampleType = 1
	SampleTypeRight   SampleType = 2
	SampleTypeLeft    SampleType = 4
	SampleTypeLinked  SampleType = 8
	SampleTypeROMFlag SampleType = 0x8000
)

// Preset is a MIDI (bank, patch) program: an ordered list of preset zones
// layered over instruments. Bank 128 is the General MIDI percussion bank.
type Preset struct {
	Name        string
	PatchNumber int
	BankNumber  int
	Zones       []Zone // Zones[0] is the global zone iff it has no Instrument set
}

// Instrument is an ordered list of instrument zones, each bound to a
// sample header.
type Instrument struct {
	Name  string
	Zones []Zone
}

// Zone is a single preset or instrument zone: a sparse generator map plus
// the key/velocity range it applies to. A zone is "global" when it carries
// no terminal generator (Instrument at the preset level, SampleID at the
// instrument level) -- its generators are defaults layered beneath its
// siblings, per spec.md S4.1.
type Zone struct {
	Generators map[GeneratorID]int16
	KeyRange   Range
	VelRange   Range

	// Exactly one of these is set, depending on whether this zone belongs
	// to a Preset or an Instrument, and is -1 for a global zone.
	InstrumentIndex int
	SampleIndex     int
}

func (z Zone) isGlobalPreset() bool { return z.InstrumentIndex < 0 }
func (z Zone) isGlobalInstrument() bool { return z.SampleIndex < 0 }

// generator returns the raw generator value and whether it was present.
func (z Zone) generator(id GeneratorID) (int16, bool) {
	v, ok := z.Generators[id]
	return v, ok
}

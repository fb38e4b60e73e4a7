package synth

// Config carries the construction-time parameters of a Synthesizer, per
// spec.md S6. All fields are validated by NewSynthesizer.
type Config struct {
	// SampleRate is the output sample rate in Hz, 8000..192000.
	SampleRate int

	// BlockSize is the number of samples rendered per internal block.
	// Defaults to 64 when zero.
	BlockSize int

	// MaximumPolyphony caps the number of simultaneously live voices.
	// Defaults to 64 when zero, must be in 1..1024.
	MaximumPolyphony int

	// EnableReverbAndChorus controls whether the per-voice reverb/chorus
	// send levels are accumulated into the mix buses exposed by
	// ReverbBus/ChorusBus. The engine never runs the effect itself
	// (see DESIGN.md); when disabled the sends are computed but discarded.
	// Defaults to true (enabled) when nil; use BoolPtr(false) to disable.
	EnableReverbAndChorus *bool
}

// BoolPtr returns a pointer to b, for setting Config.EnableReverbAndChorus
// explicitly.
func BoolPtr(b bool) *bool { return &b }

func (c *Config) setDefaults() {
	if c.BlockSize == 0 {
		c.BlockSize = 64
	}
	if c.MaximumPolyphony == 0 {
		c.MaximumPolyphony = 64
	}
	if c.EnableReverbAndChorus == nil {
		c.EnableReverbAndChorus = BoolPtr(true)
	}
}

// Synthesizer is a polyphonic MIDI SoundFont renderer: 16 channels, a
// fixed-capacity voice pool with priority-based stealing, and a stereo
// block mixer. Safe to construct many instances sharing one SoundFont.
type Synthesizer struct {
	sf     *SoundFont
	config Config

	channels [16]*Channel
	voices   []*Voice // len == MaximumPolyphony; nil slots are free

	reverbBus []float64
	chorusBus []float64

	blockLeft, blockRight []float64
}

// NewSynthesizer builds a Synthesizer over an immutable, shareable
// SoundFont. Returns an error if the configuration is out of range.
func NewSynthesizer(sf *SoundFont, config Config) (*Synthesizer, error) {
	config.setDefaults()
	if config.SampleRate < 8000 || config.SampleRate > 192000 {
		return nil, &InvalidConfigError{Field: "SampleRate", Value: config.SampleRate}
	}
	if config.BlockSize < 1 {
		return nil, &InvalidConfigError{Field: "BlockSize", Value: config.BlockSize}
	}
	if config.MaximumPolyphony < 1 || config.MaximumPolyphony > 1024 {
		return nil, &InvalidConfigError{Field: "MaximumPolyphony", Value: config.MaximumPolyphony}
	}

	s := &Synthesizer{
		sf:         sf,
		config:     config,
		voices:     make([]*Voice, config.MaximumPolyphony),
		reverbBus:  make([]float64, config.BlockSize),
		chorusBus:  make([]float64, config.BlockSize),
		blockLeft:  make([]float64, config.BlockSize),
		blockRight: make([]float64, config.BlockSize),
	}
	for i := range s.channels {
		s.channels[i] = NewChannel()
	}
	return s, nil
}

func (s *Synthesizer) noteOn(channel, key, velocity int) {
	c := s.channels[channel]
	regions := RegionPairsForNote(s.sf, c.BankNumber, c.PatchNumber, key, velocity)
	for i := range regions {
		rp := &regions[i]
		s.killExclusiveClassPeers(channel, rp.exclusiveClass())

		v := NewVoice(s.config.SampleRate, s.config.BlockSize, rp, channel, key, velocity)
		s.allocate(v)
	}
}

func (s *Synthesizer) noteOff(channel, key int) {
	for _, v := range s.voices {
		if v == nil {
			continue
		}
		if v.Channel == channel && v.Key == key {
			v.End()
		}
	}
}

func (s *Synthesizer) allNotesOff(channel int) {
	for _, v := range s.voices {
		if v != nil && v.Channel == channel {
			v.End()
		}
	}
}

func (s *Synthesizer) allSoundOff(channel int) {
	for i, v := range s.voices {
		if v != nil && v.Channel == channel {
			s.voices[i] = nil
		}
	}
}

func (s *Synthesizer) killExclusiveClassPeers(channel, class int) {
	if class == 0 {
		return
	}
	for _, v := range s.voices {
		if v != nil && v.Channel == channel && v.ExclusiveClass == class {
			v.Kill()
		}
	}
}

// allocate places v into a free voice slot, or steals the slot holding
// the lowest-priority voice (ties broken by greatest VoiceLength), per
// spec.md S4.4.2.
func (s *Synthesizer) allocate(v *Voice) {
	for i, slot := range s.voices {
		if slot == nil {
			s.voices[i] = v
			return
		}
	}

	worst := 0
	for i := 1; i < len(s.voices); i++ {
		a, b := s.voices[i], s.voices[worst]
		if a.Priority() < b.Priority() || (a.Priority() == b.Priority() && a.VoiceLength > b.VoiceLength) {
			worst = i
		}
	}
	s.voices[worst] = v
}

// Render fills left and right with synthesized stereo audio, looping
// internal blocks of Config.BlockSize samples until both slices are
// full. len(left) must equal len(right).
func (s *Synthesizer) Render(left, right []float64) {
	n := len(left)
	offset := 0
	bs := s.config.BlockSize
	for offset < n {
		count := bs
		if offset+count > n {
			count = n - offset
		}
		s.renderBlock(left[offset:offset+count], right[offset:offset+count])
		offset += count
	}
}

func (s *Synthesizer) renderBlock(left, right []float64) {
	n := len(left)
	for i := range left {
		left[i] = 0
		right[i] = 0
	}
	reverb := s.reverbBus[:n]
	chorus := s.chorusBus[:n]
	for i := range reverb {
		reverb[i] = 0
		chorus[i] = 0
	}

	for i, v := range s.voices {
		if v == nil {
			continue
		}
		if !v.Process(s.sf.WaveData, s.channels[:], n) {
			s.voices[i] = nil
			continue
		}
		block := v.Block[:n]
		mixVoice(v, block, left, right)
		if *s.config.EnableReverbAndChorus {
			accumulateSend(block, v.PreviousReverbSend, v.CurrentReverbSend, reverb)
			accumulateSend(block, v.PreviousChorusSend, v.CurrentChorusSend, chorus)
		}
	}
	// Effect buses are exposed for a collaborator to process and add
	// back; this engine performs no reverb/chorus DSP itself.
}

// mixVoice adds block into left/right, ramping gain linearly from the
// previous block's mix gain to this block's across the block so a
// sudden gain jump (e.g. on release) doesn't pop. block, left, and right
// must all have the same length (the sub-block being rendered, which may
// be shorter than Config.BlockSize on the final sub-block of a Render
// call).
func mixVoice(v *Voice, block, left, right []float64) {
	n := len(block)
	if n == 0 {
		return
	}
	dl := (v.CurrentMixGainLeft - v.PreviousMixGainLeft) / float64(n)
	dr := (v.CurrentMixGainRight - v.PreviousMixGainRight) / float64(n)
	gl := v.PreviousMixGainLeft
	gr := v.PreviousMixGainRight
	for i, s := range block {
		gl += dl
		gr += dr
		left[i] += s * gl
		right[i] += s * gr
	}
}

func accumulateSend(block []float64, prevSend, curSend float64, bus []float64) {
	n := len(block)
	if n == 0 {
		return
	}
	d := (curSend - prevSend) / float64(n)
	g := prevSend
	for i, s := range block {
		g += d
		bus[i] += s * g
	}
}

// ReverbBus returns the mono reverb-send accumulation from the most
// recent block of Render, valid until the next Render call.
func (s *Synthesizer) ReverbBus() []float64 { return s.reverbBus }

// ChorusBus returns the mono chorus-send accumulation from the most
// recent block of Render, valid until the next Render call.
func (s *Synthesizer) ChorusBus() []float64 { return s.chorusBus }

package synth

// MidiMessage is a single already-decoded MIDI channel-voice message
// (status nibble 0x8-0xE). System-common, system-exclusive, and
// real-time messages are out of scope for ProcessMIDIMessage and should
// not be passed in; the core makes no running-status assumption.
type MidiMessage struct {
	Status byte // 0x80-0xE0, channel in the low nibble
	Data1  byte
	Data2  byte
}

func (m MidiMessage) channel() int { return int(m.Status & 0x0F) }
func (m MidiMessage) kind() byte   { return m.Status & 0xF0 }

const (
	midiNoteOff        = 0x80
	midiNoteOn         = 0x90
	midiControlChange  = 0xB0
	midiProgramChange  = 0xC0
	midiChannelPress   = 0xD0
	midiPitchBend      = 0xE0
)

// Control change controller numbers recognized by ProcessMIDIMessage.
const (
	ccBankSelectMSB     = 0
	ccModulation        = 1
	ccDataEntryMSB      = 6
	ccVolume            = 7
	ccPan               = 10
	ccExpression        = 11
	ccBankSelectLSB     = 32
	ccDataEntryLSB      = 38
	ccHoldPedal         = 64
	ccReverbSend        = 91
	ccChorusSend        = 93
	ccRPNLSB            = 100
	ccRPNMSB            = 101
	ccAllSoundOff       = 120
	ccResetControllers  = 121
	ccAllNotesOff       = 123
)

const (
	rpnPitchBendRange = 0x0000
	rpnFineTune       = 0x0001
	rpnCoarseTune     = 0x0002
	rpnNone           = 0x3FFF
)

// ProcessMIDIMessage applies one decoded MIDI channel-voice message to
// channel state and the voice pool, per spec.md S4.4.1. All effects
// apply starting at the next Render call.
func (s *Synthesizer) ProcessMIDIMessage(msg MidiMessage) {
	ch := msg.channel()
	if ch < 0 || ch >= len(s.channels) {
		return
	}
	c := s.channels[ch]

	switch msg.kind() {
	case midiNoteOff:
		s.noteOff(ch, int(msg.Data1))
	case midiNoteOn:
		if msg.Data2 == 0 {
			s.noteOff(ch, int(msg.Data1))
		} else {
			s.noteOn(ch, int(msg.Data1), int(msg.Data2))
		}
	case midiControlChange:
		s.controlChange(ch, c, msg.Data1, msg.Data2)
	case midiProgramChange:
		c.setProgram(msg.Data1)
	case midiPitchBend:
		c.setPitchBend(msg.Data1, msg.Data2)
	case midiChannelPress:
		// Channel pressure has no defined routing in this engine's
		// generator set; accepted and ignored.
	}
}

func (s *Synthesizer) controlChange(ch int, c *Channel, controller, value byte) {
	switch controller {
	case ccBankSelectMSB:
		c.setBankMSB(value)
	case ccBankSelectLSB:
		c.setBankLSB(value)
	case ccModulation:
		c.setModulation(value)
	case ccVolume:
		c.setVolume(value)
	case ccPan:
		c.setPan(value)
	case ccExpression:
		c.setExpression(value)
	case ccHoldPedal:
		c.setHoldPedal(value)
	case ccReverbSend:
		c.setReverbSend(value)
	case ccChorusSend:
		c.setChorusSend(value)
	case ccRPNMSB:
		c.rpn = (c.rpn &^ (0x7F << 7)) | (int(value) << 7)
		if c.rpn&0x7F == 0x7F && c.rpn>>7 == 0x7F {
			c.rpn = rpnNone
		}
	case ccRPNLSB:
		c.rpn = (c.rpn &^ 0x7F) | int(value)
	case ccDataEntryMSB:
		s.rpnDataEntry(c, value, true)
	case ccDataEntryLSB:
		s.rpnDataEntry(c, value, false)
	case ccAllSoundOff:
		s.allSoundOff(ch)
	case ccResetControllers:
		c.Reset()
	case ccAllNotesOff:
		s.allNotesOff(ch)
	}
}

func (s *Synthesizer) rpnDataEntry(c *Channel, value byte, msb bool) {
	switch c.rpn {
	case rpnPitchBendRange:
		if msb {
			c.pitchBendRange = float64(value)
		}
	case rpnFineTune:
		if msb {
			c.fineTune = (float64(value) - 64) / 64
		}
	case rpnCoarseTune:
		if msb {
			c.coarseTune = float64(value) - 64
		}
	}
}

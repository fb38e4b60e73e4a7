package synth

// Channel holds the per-MIDI-channel controller state consumed by the
// voice DSP pipeline, per spec.md S3 ("Channel"). All fields initialize
// to the General MIDI defaults.
type Channel struct {
	BankNumber  int
	PatchNumber int

	volume     float64 // 0..1
	expression float64 // 0..1
	pan        float64 // -50..50
	modulation float64 // 0..1 (CC1 / 127)

	pitchBendRange float64 // semitones
	pitchBend      float64 // semitones, signed

	coarseTune float64 // semitones
	fineTune   float64 // semitones

	reverbSend float64 // 0..1
	chorusSend float64 // 0..1

	holdPedal bool

	rpn int // currently-selected RPN, rpnNone when none is selected
}

// NewChannel returns a Channel reset to General MIDI defaults.
func NewChannel() *Channel {
	c := &Channel{}
	c.Reset()
	return c
}

// Reset restores GM default controller values. Used by Reset-All-Controllers
// and at construction.
func (c *Channel) Reset() {
	c.BankNumber = 0
	c.PatchNumber = 0
	c.volume = 100.0 / 127
	c.expression = 1
	c.pan = 0
	c.modulation = 0
	c.pitchBendRange = 2
	c.pitchBend = 0
	c.coarseTune = 0
	c.fineTune = 0
	c.reverbSend = 0
	c.chorusSend = 0
	c.holdPedal = false
	c.rpn = rpnNone
}

func (c *Channel) setVolume(v uint8)     { c.volume = float64(v) / 127 }
func (c *Channel) setExpression(v uint8) { c.expression = float64(v) / 127 }
func (c *Channel) setPan(v uint8)        { c.pan = (float64(v)/127)*100 - 50 }
func (c *Channel) setModulation(v uint8) { c.modulation = float64(v) / 127 }
func (c *Channel) setReverbSend(v uint8) { c.reverbSend = float64(v) / 127 }
func (c *Channel) setChorusSend(v uint8) { c.chorusSend = float64(v) / 127 }

func (c *Channel) setHoldPedal(v uint8) { c.holdPedal = v >= 64 }

func (c *Channel) setPitchBend(lsb, msb uint8) {
	raw := int(msb)<<7 | int(lsb)
	c.pitchBend = c.pitchBendRange * (float64(raw)-8192)/8192
}

func (c *Channel) setProgram(patch uint8) { c.PatchNumber = int(patch) }

func (c *Channel) setBankMSB(v uint8) { c.BankNumber = (c.BankNumber & 0x7F) | (int(v) << 7) }
func (c *Channel) setBankLSB(v uint8) { c.BankNumber = (c.BankNumber &^ 0x7F) | int(v) }

// tune returns the channel's combined coarse+fine tuning in semitones.
func (c *Channel) tune() float64 { return c.coarseTune + c.fineTune }

func (c *Channel) Volume() float64        { return c.volume }
func (c *Channel) Expression() float64    { return c.expression }
func (c *Channel) Pan() float64           { return c.pan }
func (c *Channel) Modulation() float64    { return c.modulation }
func (c *Channel) PitchBend() float64     { return c.pitchBend }
func (c *Channel) ReverbSend() float64    { return c.reverbSend }
func (c *Channel) ChorusSend() float64    { return c.chorusSend }
func (c *Channel) HoldPedal() bool        { return c.holdPedal }

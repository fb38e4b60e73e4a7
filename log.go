package synth

import (
	"io"

	"github.com/charmbracelet/log"
)

// Logger is the package-level logger used for parser warnings (unknown
// INFO records). It defaults to discarding everything: this
// package has no opinion on logging configuration (an explicit spec
// non-goal), a host that wants the diagnostics wires its own logger in.
//
// Never touched from the real-time render path (Voice.Process, Render):
// logging allocates and this package promises zero allocation there.
var Logger = log.NewWithOptions(io.Discard, log.Options{ReportTimestamp: false})

// SetLogger replaces the package logger, e.g. to route parser warnings to
// a host's own charmbracelet/log instance.
func SetLogger(l *log.Logger) {
	if l == nil {
		Logger = log.NewWithOptions(io.Discard, log.Options{ReportTimestamp: false})
		return
	}
	Logger = l
}

package wav

import (
	"os"
	"testing"
)

func TestWriterProducesValidRiffHeader(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "wav-writer-*.wav")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer f.Close()

	w, err := NewWriter(f, 44100)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	left := make([]float64, 128)
	right := make([]float64, 128)
	for i := range left {
		left[i] = float64(i) / float64(len(left))
		right[i] = -left[i]
	}
	if err := w.WriteFrame(left, right); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	wlen, err := w.Finish()
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	// RIFF header (8) + WAVE + fmt chunk (8+16) + data chunk header (8) +
	// 128 stereo frames * 4 bytes.
	wantLen := int64(4 + 4 + 4 + 8 + 16 + 8 + len(left)*4)
	if wlen != wantLen {
		t.Errorf("Finish returned length %d, want %d", wlen, wantLen)
	}

	header := make([]byte, 4)
	if _, err := f.ReadAt(header, 0); err != nil {
		t.Fatalf("ReadAt: %v", err)
	}
	if string(header) != "RIFF" {
		t.Errorf("header = %q, want RIFF", header)
	}
}

func TestQuantizeClampsOutOfRangeRenderOutput(t *testing.T) {
	cases := []struct {
		in   float64
		want int16
	}{
		{0, 0},
		{1, 32767},
		{-1, -32768},
		{1.5, 32767},   // a dense mix can briefly exceed unity gain
		{-1.5, -32768},
	}
	for _, c := range cases {
		if got := quantize(c.in); got != c.want {
			t.Errorf("quantize(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

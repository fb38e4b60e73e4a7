// Package riffio provides the little-endian primitive reads, fixed and
// NUL-terminated strings, and FourCC tags that the RIFF-based SF2 parser is
// built on. It is split out of the parser package because nothing else in
// the synthesizer needs a byte cursor.
package riffio

import (
	"errors"
	"fmt"
	"io"

	"github.com/icza/bitio"
)

// ErrUnexpectedEOF is returned (wrapped) whenever a read runs off the end of
// the underlying stream before the requested number of bytes is available.
var ErrUnexpectedEOF = io.ErrUnexpectedEOF

// Reader is a forward-only byte cursor over an io.Reader. All multi-byte
// reads are little-endian unless the method name says BE.
type Reader struct {
	br *bitio.Reader

	// pos tracks bytes consumed so chunk code can detect odd-sized chunks
	// that need a pad byte skipped.
	pos int64
}

// NewReader wraps r in a Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bitio.NewReader(r)}
}

func (r *Reader) wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("riffio: %w", io.ErrUnexpectedEOF)
	}
	return fmt.Errorf("riffio: %w", err)
}

// ReadExact reads exactly n bytes or returns an error. bitio.Reader only
// exposes byte/bit-granularity reads (no bulk Read), so this pulls the
// bytes one at a time off the bit cursor.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	for i := 0; i < n; i++ {
		b, err := r.br.ReadByte()
		if err != nil {
			return nil, r.wrap(err)
		}
		buf[i] = b
		r.pos++
	}
	return buf, nil
}

// ReadU8 reads one unsigned byte.
func (r *Reader) ReadU8() (uint8, error) {
	v, err := r.br.ReadByte()
	if err != nil {
		return 0, r.wrap(err)
	}
	r.pos++
	return v, nil
}

// ReadI8 reads one signed byte.
func (r *Reader) ReadI8() (int8, error) {
	v, err := r.ReadU8()
	return int8(v), err
}

// ReadU16LE reads an unsigned 16-bit little-endian value.
func (r *Reader) ReadU16LE() (uint16, error) {
	b, err := r.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

// ReadI16LE reads a signed 16-bit little-endian value.
func (r *Reader) ReadI16LE() (int16, error) {
	v, err := r.ReadU16LE()
	return int16(v), err
}

// ReadU32LE reads an unsigned 32-bit little-endian value.
func (r *Reader) ReadU32LE() (uint32, error) {
	b, err := r.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

// ReadFourCC reads a 4-byte ASCII tag, e.g. "RIFF" or "sfbk".
func (r *Reader) ReadFourCC() ([4]byte, error) {
	var tag [4]byte
	b, err := r.ReadExact(4)
	if err != nil {
		return tag, err
	}
	copy(tag[:], b)
	return tag, nil
}

// ReadFixedString reads n bytes and decodes them as a NUL-terminated ASCII
// string: the string ends at the first NUL byte (or n, if none), and any
// remaining non-printable byte (outside the printable ASCII range
// ['\t', '~']) is replaced with '?'.
func (r *Reader) ReadFixedString(n int) (string, error) {
	b, err := r.ReadExact(n)
	if err != nil {
		return "", err
	}
	return SanitizeFixedString(b), nil
}

// SanitizeFixedString applies the fixed-length-string decoding rule to an
// already-read byte slice: stop at the first NUL, replace any byte outside
// ['\t', '~'] with '?'.
func SanitizeFixedString(b []byte) string {
	end := len(b)
	for i, c := range b {
		if c == 0 {
			end = i
			break
		}
	}
	out := make([]byte, end)
	for i := 0; i < end; i++ {
		c := b[i]
		if c < '\t' || c > '~' {
			c = '?'
		}
		out[i] = c
	}
	return string(out)
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int64 { return r.pos }

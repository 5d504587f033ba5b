// Package hpack implements the primitive integer representation of RFC 7541
// section 5.1, the variable-length encoding HTTP/2 header compression uses
// for table indexes, string lengths, and size updates, along with the
// protocol's static header table.
//
// An integer occupies the low `width` bits of its first octet; the bits above
// the prefix belong to the caller (field-type flags and the like) and are
// never touched here. Values too large for the prefix continue into a chain
// of octets each carrying seven bits of the remaining magnitude, least
// significant chunk first, with the high bit marking every octet except the
// last. Encoding is canonical: for a given width every value has exactly one
// representation, and decoding it back is the identity.
package hpack

import (
	"io"
	"math"
)

const (
	// maxContinuation bounds the continuation chain. Five 7-bit chunks hold
	// up to 2^35-1, so a uint64 accumulator plus a final range check keeps
	// every accepted value within 32 bits. A sixth octet can never appear in
	// a canonical encoding of a 32-bit value.
	maxContinuation = 5

	// MaxIntLen is the worst-case encoded size of a 32-bit integer: one
	// prefix octet plus the longest continuation chain.
	MaxIntLen = 1 + maxContinuation
)

// prefixMask gives the all-ones prefix pattern for a width. The width-8 case
// is special only because 1<<8 overflows a byte.
func prefixMask(width uint8) byte {
	if width == 8 {
		return 0xFF
	}
	return 1<<width - 1
}

func mustValidWidth(width uint8) {
	if width < 1 || width > 8 {
		panic("hpack: prefix width must be between 1 and 8")
	}
}

// Decoder parses prefix-encoded integers from a byte buffer.
//
// A failed read leaves the cursor where the failure was detected, so a
// Decoder cannot be resumed after an error. Callers feeding a partial stream
// should copy the Decoder before each read and retry from the copy once more
// input is available.
type Decoder struct {
	buf []byte
}

// NewDecoder creates a decoder that parses data from buffer b.
//
// The decoder aliases b rather than copying it; the caller should not mutate
// b until decoding is done.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{b}
}

// RemainingBytes gives the number of bytes remaining in the buffer.
func (d *Decoder) RemainingBytes() int {
	return len(d.buf)
}

// Peek returns the next octet without consuming it, so the caller can inspect
// the flag bits above an integer's prefix before deciding how to decode it.
func (d *Decoder) Peek() (byte, error) {
	if len(d.buf) == 0 {
		return 0, ErrInsufficientInput
	}
	return d.buf[0], nil
}

// Bytes consumes the next n raw octets, typically the payload of a string
// literal whose length was just decoded.
//
// The returned slice aliases the decoder's buffer.
func (d *Decoder) Bytes(n int) ([]byte, error) {
	if n > len(d.buf) {
		return nil, ErrInsufficientInput
	}
	b := d.buf[:n]
	d.buf = d.buf[n:]
	return b, nil
}

// PrefixedInt decodes one integer whose first octet reserves its low `width`
// bits. Flag bits above the prefix are masked off and otherwise ignored.
//
// An encoding that needs more than five continuation octets, or that decodes
// above 2^32-1, fails with ErrTooManyOctets without reading past the octet
// that proved it oversized.
func (d *Decoder) PrefixedInt(width uint8) (uint32, error) {
	if width < 1 || width > 8 {
		return 0, ErrInvalidPrefixWidth
	}
	if len(d.buf) == 0 {
		return 0, ErrInsufficientInput
	}
	mask := prefixMask(width)
	v := uint64(d.buf[0] & mask)
	d.buf = d.buf[1:]
	if v < uint64(mask) {
		// Fit entirely within the prefix.
		return uint32(v), nil
	}
	for i := 0; ; i++ {
		if len(d.buf) == 0 {
			return 0, ErrInsufficientInput
		}
		b := d.buf[0]
		d.buf = d.buf[1:]
		v += uint64(b&0x7F) << (7 * i)
		if b&0x80 == 0 {
			break
		}
		if i == maxContinuation-1 {
			return 0, ErrTooManyOctets
		}
	}
	if v > math.MaxUint32 {
		return 0, ErrTooManyOctets
	}
	return uint32(v), nil
}

// AppendInt appends the encoding of value to dst and returns the extended
// buffer. The prefix octet's bits above `width` are left clear so the caller
// can OR its flag bits into dst afterward.
//
// Every 32-bit value encodes within MaxIntLen octets at every width. AppendInt
// panics if width is outside [1,8]: unlike malformed input, a bad width is a
// bug in the calling code.
func AppendInt(dst []byte, value uint32, width uint8) []byte {
	mustValidWidth(width)
	mask := prefixMask(width)
	if value < uint32(mask) {
		return append(dst, byte(value))
	}
	dst = append(dst, mask)
	remainder := value - uint32(mask)
	for remainder >= 0x80 {
		dst = append(dst, 0x80|byte(remainder&0x7F))
		remainder >>= 7
	}
	return append(dst, byte(remainder))
}

// IntLen reports the exact number of octets AppendInt emits for value, from 1
// up to MaxIntLen. Like AppendInt it panics on a width outside [1,8].
func IntLen(value uint32, width uint8) int {
	mustValidWidth(width)
	mask := prefixMask(width)
	if value < uint32(mask) {
		return 1
	}
	n := 2
	for remainder := value - uint32(mask); remainder >= 0x80; remainder >>= 7 {
		n++
	}
	return n
}

// Encoder writes prefix-encoded integers to an output stream.
//
// Encoding itself cannot fail, so the methods have no error returns; if the
// underlying writer fails the Encoder panics with its error. This fits
// callers that write to in-memory buffers or files where a short write is
// already fatal.
type Encoder struct {
	w io.Writer
	// total bytes written since initialization
	bytesWritten int
}

// NewEncoder creates an encoder that writes to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, bytesWritten: 0}
}

// BytesWritten returns the number of bytes written since the encoder was
// created.
func (e *Encoder) BytesWritten() int {
	return e.bytesWritten
}

// Bytes copies raw octets through to the stream, for payloads that follow an
// encoded length.
func (e *Encoder) Bytes(b []byte) {
	for len(b) > 0 {
		n, err := e.w.Write(b)
		if err != nil {
			panic(err)
		}
		e.bytesWritten += n
		b = b[n:]
	}
}

// PrefixedInt encodes value into the low `width` bits of a prefix octet plus
// whatever continuation octets it needs, and writes the result to the stream.
// The flag bits of the prefix octet are emitted clear.
func (e *Encoder) PrefixedInt(value uint32, width uint8) {
	var scratch [MaxIntLen]byte
	e.Bytes(AppendInt(scratch[:0], value, width))
}

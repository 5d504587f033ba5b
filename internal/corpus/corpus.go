// Package corpus reads and writes integer-stream corpus files, the container
// the benchmark and dump tools use to exchange prefix-encoded integers.
//
// A corpus file is a 10-byte header followed by back-to-back encoded
// integers, all sharing the header's prefix width:
//
//	magic "HPKI" | version (1 byte) | prefix width (1 byte) | count (uint32 LE)
//
// An integer representation always finishes at the end of an octet, so the
// payload is self-delimiting and needs no per-value framing.
package corpus

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/vonZuben/kurisu-http2/hpack"
)

const (
	magic   = "HPKI"
	version = 1

	headerLen = 10
)

// ErrCorrupt reports a header that is not a valid corpus header: wrong magic,
// unknown version, or a prefix width outside [1,8].
var ErrCorrupt = errors.New("corpus: invalid header")

// A Writer streams prefix-encoded integers into a corpus file.
//
// The value count is part of the header, so it must be known up front; writing
// more than count values panics, and the caller is expected to write exactly
// count of them before closing the underlying file.
type Writer struct {
	enc       *hpack.Encoder
	width     uint8
	remaining uint32
}

// NewWriter writes a corpus header for count values of the given prefix width
// to w and returns a Writer for the payload.
func NewWriter(w io.Writer, width uint8, count uint32) *Writer {
	var hdr [headerLen]byte
	copy(hdr[:4], magic)
	hdr[4] = version
	hdr[5] = width
	binary.LittleEndian.PutUint32(hdr[6:], count)
	enc := hpack.NewEncoder(w)
	enc.Bytes(hdr[:])
	return &Writer{enc: enc, width: width, remaining: count}
}

// Add appends one value to the payload.
func (w *Writer) Add(v uint32) {
	if w.remaining == 0 {
		panic("corpus: more values written than declared in header")
	}
	w.remaining--
	w.enc.PrefixedInt(v, w.width)
}

// BytesWritten returns the total file size so far, header included.
func (w *Writer) BytesWritten() int {
	return w.enc.BytesWritten()
}

// A Reader is a pull iterator over the values of a corpus file.
//
//	r, err := corpus.NewReader(data)
//	for r.More() {
//		v, err := r.Next()
//		...
//	}
type Reader struct {
	dec       *hpack.Decoder
	width     uint8
	count     uint32
	remaining uint32
}

// NewReader validates the corpus header at the start of data and returns a
// Reader positioned at the first value.
func NewReader(data []byte) (*Reader, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: %d-byte file shorter than header", ErrCorrupt, len(data))
	}
	if string(data[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, data[:4])
	}
	if data[4] != version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, data[4])
	}
	width := data[5]
	if width < 1 || width > 8 {
		return nil, fmt.Errorf("%w: prefix width %d", ErrCorrupt, width)
	}
	count := binary.LittleEndian.Uint32(data[6:])
	return &Reader{
		dec:       hpack.NewDecoder(data[headerLen:]),
		width:     width,
		count:     count,
		remaining: count,
	}, nil
}

// Width returns the prefix width every value in the file is encoded with.
func (r *Reader) Width() uint8 {
	return r.width
}

// Count returns the number of values the header declares.
func (r *Reader) Count() int {
	return int(r.count)
}

// More reports whether undecoded values remain.
func (r *Reader) More() bool {
	return r.remaining > 0
}

// Next decodes the next value. Decode failures carry the value's position and
// wrap the hpack sentinel, so errors.Is(err, hpack.ErrInsufficientInput) still
// distinguishes a truncated file from a corrupt one.
func (r *Reader) Next() (uint32, error) {
	if r.remaining == 0 {
		panic("corpus: Next past the end of the file")
	}
	v, err := r.dec.PrefixedInt(r.width)
	if err != nil {
		return 0, fmt.Errorf("corpus: value %d/%d: %w", r.count-r.remaining, r.count, err)
	}
	r.remaining--
	return v, nil
}

package main

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/quic-go/quic-go/quicvarint"

	"github.com/vonZuben/kurisu-http2/hpack"
)

// codec is the surface the benchmarks drive: append one value's encoding,
// or decode one value off the front of a buffer, reporting octets consumed.
//
// The baselines are established variable-length integer formats playing the
// same role a reference database plays in a storage benchmark: a yardstick
// for the codec under test, not alternatives to it.
type codec interface {
	Append(dst []byte, v uint32) []byte
	Decode(data []byte) (v uint32, n int, err error)
}

// hpackCodec is the RFC 7541 prefixed-integer codec this module implements.
type hpackCodec struct {
	width uint8
}

func (c hpackCodec) Append(dst []byte, v uint32) []byte {
	return hpack.AppendInt(dst, v, c.width)
}

func (c hpackCodec) Decode(data []byte) (uint32, int, error) {
	d := hpack.NewDecoder(data)
	v, err := d.PrefixedInt(c.width)
	if err != nil {
		return 0, 0, err
	}
	return v, len(data) - d.RemainingBytes(), nil
}

// quicCodec is the RFC 9000 variable-length integer encoding, via quic-go.
type quicCodec struct{}

func (quicCodec) Append(dst []byte, v uint32) []byte {
	return quicvarint.Append(dst, uint64(v))
}

func (quicCodec) Decode(data []byte) (uint32, int, error) {
	v, n, err := quicvarint.Parse(data)
	if err != nil {
		return 0, 0, err
	}
	return uint32(v), n, nil
}

// uvarintCodec is the protobuf-style LEB128 encoding from encoding/binary.
type uvarintCodec struct{}

func (uvarintCodec) Append(dst []byte, v uint32) []byte {
	return binary.AppendUvarint(dst, uint64(v))
}

func (uvarintCodec) Decode(data []byte) (uint32, int, error) {
	v, n := binary.Uvarint(data)
	if n <= 0 {
		return 0, 0, errors.New("uvarint: truncated or oversized value")
	}
	return uint32(v), n, nil
}

func newCodec(name string, width uint8) (codec, error) {
	switch name {
	case "hpack":
		return hpackCodec{width: width}, nil
	case "quicvarint":
		return quicCodec{}, nil
	case "uvarint":
		return uvarintCodec{}, nil
	}
	return nil, fmt.Errorf("unknown codec %s", name)
}

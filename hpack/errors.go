package hpack

import "errors"

// Decoding failures fall into three kinds. ErrInsufficientInput is the only
// recoverable one: once more input arrives the caller may retry the same
// logical read on a fresh Decoder. The other two mean the read can never
// succeed, no matter how much input follows.
var (
	// ErrInvalidPrefixWidth reports a prefix width outside [1,8]. The
	// decoder returns it before consuming any input.
	ErrInvalidPrefixWidth = errors.New("hpack: prefix width must be between 1 and 8")

	// ErrInsufficientInput reports that the buffer ran out of octets before
	// a complete value was read.
	ErrInsufficientInput = errors.New("hpack: insufficient input decoding integer")

	// ErrTooManyOctets reports an integer whose encoding runs past the
	// five-continuation-octet bound, or whose value does not fit in 32 bits.
	// RFC 7541 requires treating this as a fatal decompression error.
	ErrTooManyOctets = errors.New("hpack: integer encoding exceeds five continuation octets")
)

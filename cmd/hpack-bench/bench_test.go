package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vonZuben/kurisu-http2/hpack"
)

func TestStatsReports(t *testing.T) {
	assert := assert.New(t)
	now := time.Now()
	s := stats{
		Ops:   1000,
		Bytes: 1024 * 1024,
		Start: now.Add(-1 * time.Second),
		End:   &now,
	}
	assert.Equal(1.0, s.seconds())
	assert.Equal(1000.0, s.MicrosPerOp())
	assert.Equal(1.0, s.MegabytesPerSec())
	assert.InDelta(1048.576, s.BytesPerOp(), 0.001)
}

func TestGeneratorDeterministic(t *testing.T) {
	g1, g2 := newGenerator(42), newGenerator(42)
	for i := 0; i < 1000; i++ {
		assert.Equal(t, g1.Value(), g2.Value())
	}
}

func TestGeneratorSequential(t *testing.T) {
	g := newGenerator(0)
	assert.Equal(t, uint32(0), g.NextValue())
	assert.Equal(t, uint32(1), g.NextValue())
	assert.Equal(t, uint32(2), g.NextValue())
}

// The generator is stratified so decode benchmarks see every encoded length,
// not an endless run of four-octet values.
func TestGeneratorCoversAllLengths(t *testing.T) {
	g := newGenerator(0)
	seen := make(map[int]int)
	for i := 0; i < 10000; i++ {
		seen[hpack.IntLen(g.Value(), 5)]++
	}
	for n := 1; n <= hpack.MaxIntLen; n++ {
		assert.NotZero(t, seen[n], "no %d-octet encodings generated", n)
	}
}

func TestCodecsAgreeWithThemselves(t *testing.T) {
	assert := assert.New(t)
	for _, name := range []string{"hpack", "quicvarint", "uvarint"} {
		c, err := newCodec(name, 5)
		assert.NoError(err)
		for _, v := range []uint32{0, 1, 30, 31, 1337, 1 << 20, 1<<32 - 1} {
			buf := c.Append(nil, v)
			got, n, err := c.Decode(buf)
			assert.NoError(err, "%s decode of %d", name, v)
			assert.Equal(v, got, "%s round-trip of %d", name, v)
			assert.Equal(len(buf), n, "%s consumed octets for %d", name, v)
		}
	}
}

func TestUnknownCodec(t *testing.T) {
	_, err := newCodec("gob", 5)
	assert.Error(t, err)
}

package hpack

import (
	"math"
	"testing"
)

// benchCases span the encoded-size classes: prefix only, short chain, full
// five-octet chain.
var benchCases = []struct {
	name  string
	value uint32
}{
	{"prefix", 9},
	{"1cont", 100},
	{"3cont", 1 << 20},
	{"5cont", math.MaxUint32},
}

func BenchmarkAppendInt(b *testing.B) {
	for _, bc := range benchCases {
		b.Run(bc.name, func(b *testing.B) {
			buf := make([]byte, 0, MaxIntLen)
			for i := 0; i < b.N; i++ {
				buf = AppendInt(buf[:0], bc.value, 5)
			}
		})
	}
}

func BenchmarkPrefixedInt(b *testing.B) {
	for _, bc := range benchCases {
		b.Run(bc.name, func(b *testing.B) {
			enc := AppendInt(nil, bc.value, 5)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				d := NewDecoder(enc)
				if _, err := d.PrefixedInt(5); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkStaticIndex(b *testing.B) {
	for i := 0; i < b.N; i++ {
		StaticIndex(":method", "GET")
		StaticIndex("content-type", "text/html")
		StaticIndex("x-request-id", "1")
	}
}

package hpack

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaticEntryBounds(t *testing.T) {
	assert := assert.New(t)
	for _, i := range []int{0, -1, StaticTableSize + 1, 1000} {
		_, ok := StaticEntry(i)
		assert.False(ok, "index %d is outside the static table", i)
	}
	for i := 1; i <= StaticTableSize; i++ {
		e, ok := StaticEntry(i)
		assert.True(ok, "index %d", i)
		assert.NotEmpty(e.Name)
	}
}

func TestStaticEntryContents(t *testing.T) {
	assert := assert.New(t)
	for _, tt := range []struct {
		index int
		field HeaderField
	}{
		{1, HeaderField{":authority", ""}},
		{2, HeaderField{":method", "GET"}},
		{3, HeaderField{":method", "POST"}},
		{4, HeaderField{":path", "/"}},
		{7, HeaderField{":scheme", "https"}},
		{14, HeaderField{":status", "500"}},
		{16, HeaderField{"accept-encoding", "gzip, deflate"}},
		{38, HeaderField{"host", ""}},
		{55, HeaderField{"set-cookie", ""}},
		{61, HeaderField{"www-authenticate", ""}},
	} {
		e, ok := StaticEntry(tt.index)
		assert.True(ok)
		assert.Equal(tt.field, e, "entry %d", tt.index)
	}
}

func TestStaticTableNamesAreLowercase(t *testing.T) {
	assert := assert.New(t)
	for i := 1; i <= StaticTableSize; i++ {
		e, _ := StaticEntry(i)
		assert.Equal(strings.ToLower(e.Name), e.Name,
			"entry %d has a non-lowercase name", i)
	}
}

func TestStaticIndex(t *testing.T) {
	assert := assert.New(t)
	for _, tt := range []struct {
		name, value string
		index       int
		exact       bool
	}{
		{":authority", "", 1, true},
		{":method", "GET", 2, true},
		{":method", "POST", 3, true},
		{":path", "/", 4, true},
		{"accept-encoding", "gzip, deflate", 16, true},
		{"host", "", 38, true},
		// known name, value not in the table: lowest name index, not exact
		{":method", "DELETE", 2, false},
		{":status", "418", 8, false},
		{"cookie", "a=b", 32, false},
		{"accept-encoding", "br", 16, false},
		// unknown names, including case mismatches
		{"x-custom-header", "", 0, false},
		{":METHOD", "GET", 0, false},
		{"", "", 0, false},
	} {
		index, exact := StaticIndex(tt.name, tt.value)
		assert.Equal(tt.index, index, "index for %q: %q", tt.name, tt.value)
		assert.Equal(tt.exact, exact, "exactness for %q: %q", tt.name, tt.value)
	}
}

func TestStaticIndexRoundTrip(t *testing.T) {
	assert := assert.New(t)
	for i := 1; i <= StaticTableSize; i++ {
		e, _ := StaticEntry(i)
		index, exact := StaticIndex(e.Name, e.Value)
		assert.True(exact, "entry %d should match itself exactly", i)
		assert.Equal(i, index)
	}
}

package hpack

// HeaderField is a name/value pair from the static table. Names are always
// lowercase; most entries carry an empty value and index the name alone.
type HeaderField struct {
	Name  string
	Value string
}

// StaticTableSize is the number of entries in the static table, per RFC 7541
// Appendix A. Static indexes run from 1 to StaticTableSize inclusive.
const StaticTableSize = 61

// staticTable holds RFC 7541 Appendix A. Entry 0 is unused so that slice
// positions match the protocol's 1-based indexing.
var staticTable = [StaticTableSize + 1]HeaderField{
	1:  {":authority", ""},
	2:  {":method", "GET"},
	3:  {":method", "POST"},
	4:  {":path", "/"},
	5:  {":path", "/index.html"},
	6:  {":scheme", "http"},
	7:  {":scheme", "https"},
	8:  {":status", "200"},
	9:  {":status", "204"},
	10: {":status", "206"},
	11: {":status", "304"},
	12: {":status", "400"},
	13: {":status", "404"},
	14: {":status", "500"},
	15: {"accept-charset", ""},
	16: {"accept-encoding", "gzip, deflate"},
	17: {"accept-language", ""},
	18: {"accept-ranges", ""},
	19: {"accept", ""},
	20: {"access-control-allow-origin", ""},
	21: {"age", ""},
	22: {"allow", ""},
	23: {"authorization", ""},
	24: {"cache-control", ""},
	25: {"content-disposition", ""},
	26: {"content-encoding", ""},
	27: {"content-language", ""},
	28: {"content-length", ""},
	29: {"content-location", ""},
	30: {"content-range", ""},
	31: {"content-type", ""},
	32: {"cookie", ""},
	33: {"date", ""},
	34: {"etag", ""},
	35: {"expect", ""},
	36: {"expires", ""},
	37: {"from", ""},
	38: {"host", ""},
	39: {"if-match", ""},
	40: {"if-modified-since", ""},
	41: {"if-none-match", ""},
	42: {"if-range", ""},
	43: {"if-unmodified-since", ""},
	44: {"last-modified", ""},
	45: {"link", ""},
	46: {"location", ""},
	47: {"max-forwards", ""},
	48: {"proxy-authenticate", ""},
	49: {"proxy-authorization", ""},
	50: {"range", ""},
	51: {"referer", ""},
	52: {"refresh", ""},
	53: {"retry-after", ""},
	54: {"server", ""},
	55: {"set-cookie", ""},
	56: {"strict-transport-security", ""},
	57: {"transfer-encoding", ""},
	58: {"user-agent", ""},
	59: {"vary", ""},
	60: {"via", ""},
	61: {"www-authenticate", ""},
}

var (
	// staticNameIndex maps a header name to its lowest static index.
	staticNameIndex = make(map[string]int, StaticTableSize)
	// staticPairIndex maps a full name/value pair to its static index.
	staticPairIndex = make(map[string]int, StaticTableSize)
)

// pairKey joins name and value with a separator no header name can contain.
func pairKey(name, value string) string {
	return name + "\x00" + value
}

func init() {
	for i := 1; i <= StaticTableSize; i++ {
		e := staticTable[i]
		if _, ok := staticNameIndex[e.Name]; !ok {
			staticNameIndex[e.Name] = i
		}
		staticPairIndex[pairKey(e.Name, e.Value)] = i
	}
}

// StaticEntry returns the static table entry at a 1-based protocol index,
// reporting false for indexes outside [1, StaticTableSize].
func StaticEntry(index int) (HeaderField, bool) {
	if index < 1 || index > StaticTableSize {
		return HeaderField{}, false
	}
	return staticTable[index], true
}

// StaticIndex finds the static index for a header field. A full name/value
// match returns (index, true); a name whose value is not in the table returns
// its lowest name-only index and false; an unknown name returns (0, false).
func StaticIndex(name, value string) (index int, exact bool) {
	if i, ok := staticPairIndex[pairKey(name, value)]; ok {
		return i, true
	}
	if i, ok := staticNameIndex[name]; ok {
		return i, false
	}
	return 0, false
}

package main

import (
	"fmt"
	"math/rand"
	"time"
)

type generator struct {
	*rand.Rand
	next uint32
}

func newGenerator(seed int64) *generator {
	r := rand.New(rand.NewSource(seed))
	return &generator{r, 0}
}

// NextValue returns sequential values, for the *seq benchmarks.
func (g *generator) NextValue() uint32 {
	v := g.next
	g.next++
	return v
}

// Value draws a magnitude-stratified random value: a random bit-width class
// first, then a value within it, so every encoded length from one octet to
// the worst case shows up in the stream rather than almost every draw being
// four octets wide.
func (g *generator) Value() uint32 {
	bits := g.Intn(32) + 1
	return uint32(g.Int63n(int64(1) << bits))
}

type stats struct {
	Ops   int
	Bytes int
	Start time.Time
	End   *time.Time
}

func newStats() *stats {
	return &stats{Ops: 0, Bytes: 0, Start: time.Now()}
}

// FinishedSingleOp records finishing an operation that processed some number
// of bytes.
func (s *stats) FinishedSingleOp(bytes int) {
	s.Ops++
	s.Bytes += bytes
}

// done marks the benchmark finished.
//
// Records a final timestamp in a stats object.
func (s *stats) done() {
	if s.End != nil {
		panic("stats object marked done multiple times")
	}
	t := time.Now()
	s.End = &t
}

func (s stats) seconds() float64 {
	return s.End.Sub(s.Start).Seconds()
}

func (s stats) MicrosPerOp() float64 {
	return (s.seconds() * 1e6) / float64(s.Ops)
}

func (s stats) MegabytesPerSec() float64 {
	mb := float64(s.Bytes) / (1024 * 1024)
	return mb / s.seconds()
}

func (s stats) BytesPerOp() float64 {
	return float64(s.Bytes) / float64(s.Ops)
}

func (s stats) formatStats() string {
	if s.Bytes == 0 {
		return fmt.Sprintf("%7.3f micros/op", s.MicrosPerOp())
	}
	return fmt.Sprintf("%7.3f micros/op; %6.1f MB/s; %4.2f bytes/value",
		s.MicrosPerOp(),
		s.MegabytesPerSec(),
		s.BytesPerOp())
}

// BenchState tracks information for a single benchmark.
type BenchState struct {
	name string
	*generator
	*stats
}

// NewBench initializes a BenchState.
func NewBench(name string, seed int64) BenchState {
	return BenchState{name, newGenerator(seed), newStats()}
}

// report is what one finished benchmark boils down to, in the shape the
// -json flag emits.
type report struct {
	Name            string  `json:"name"`
	Ops             int     `json:"ops"`
	Bytes           int     `json:"bytes"`
	Seconds         float64 `json:"seconds"`
	MicrosPerOp     float64 `json:"micros_per_op"`
	MegabytesPerSec float64 `json:"mb_per_sec"`
}

// Report finishes the benchmark and returns its final statistics.
func (s BenchState) Report() report {
	s.stats.done()
	return report{
		Name:            s.name,
		Ops:             s.stats.Ops,
		Bytes:           s.stats.Bytes,
		Seconds:         s.stats.seconds(),
		MicrosPerOp:     s.stats.MicrosPerOp(),
		MegabytesPerSec: s.stats.MegabytesPerSec(),
	}
}

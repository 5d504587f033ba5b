package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/vonZuben/kurisu-http2/fs"
	"github.com/vonZuben/kurisu-http2/internal/corpus"
)

const corpusFile = "bench.corpus"

var log = logrus.New()

var benchmarks = flag.String("benchmarks",
	"encodeseq,encoderandom,decodeseq,decoderandom,roundtrip,corpus-write,corpus-read",
	"comma-separated list of benchmarks to run")
var codecName = flag.String("codec", "hpack", "codec to benchmark (hpack|quicvarint|uvarint)")
var prefixWidth = flag.Int("width", 5, "prefix width for the hpack codec")
var numValues = flag.Int("values", 1000000, "number of values per benchmark")
var fsType = flag.String("fs", "dir", "filesystem for corpus benchmarks (dir|mem)")
var corpusDir = flag.String("dir", "bench.corpus.d", "directory for corpus files")
var printStats = flag.Bool("stats", false, "print out filesystem stats")
var jsonOutput = flag.Bool("json", false, "emit the report as JSON instead of a table")
var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")
var seed = flag.Int64("seed", 0, "seed for the value generator")

func initFs() fs.Filesys {
	switch *fsType {
	case "dir":
		filesys := fs.DirFs(*corpusDir)
		fs.DeleteAll(filesys)
		return filesys
	case "mem":
		return fs.MemFs()
	}
	log.Fatalf("unknown filesystem type %s", *fsType)
	return nil
}

func showNum(i int) string {
	if i > 2000 {
		if i%1000 == 0 {
			return fmt.Sprintf("%dK", i/1000)
		}
		return fmt.Sprintf("%.1fK", float64(i)/1000)
	}
	return fmt.Sprintf("%d", i)
}

func writeMemProfile(fname string) {
	f, err := os.Create(fname)
	if err != nil {
		log.Fatal("could not create memory profile: ", err)
	}
	runtime.GC() // get up-to-date statistics
	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Fatal("could not write memory profile: ", err)
	}
	f.Close()
}

// encodeStream encodes *numValues values with next into one buffer, for the
// decode benchmarks to consume. Runs outside the timed region.
func encodeStream(c codec, next func(g *generator) uint32) []byte {
	g := newGenerator(*seed)
	var buf []byte
	for i := 0; i < *numValues; i++ {
		buf = c.Append(buf, next(g))
	}
	return buf
}

func decodeBench(s BenchState, c codec, data []byte) {
	for len(data) > 0 {
		_, n, err := c.Decode(data)
		if err != nil {
			log.Fatal("decode failed mid-stream: ", err)
		}
		data = data[n:]
		s.FinishedSingleOp(n)
	}
}

func writeCorpus(s BenchState, filesys fs.Filesys) {
	f := filesys.Create(corpusFile)
	w := corpus.NewWriter(f, uint8(*prefixWidth), uint32(*numValues))
	written := w.BytesWritten()
	for i := 0; i < *numValues; i++ {
		w.Add(s.Value())
		s.FinishedSingleOp(w.BytesWritten() - written)
		written = w.BytesWritten()
	}
	f.Sync()
	f.Close()
}

func readCorpus(s BenchState, filesys fs.Filesys) {
	f := filesys.Open(corpusFile)
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		log.Fatal("could not read corpus file: ", err)
	}
	r, err := corpus.NewReader(data)
	if err != nil {
		log.Fatal("corpus file does not parse: ", err)
	}
	if r.Count() != *numValues {
		log.Fatalf("corpus has %d values, expected %d", r.Count(), *numValues)
	}
	for r.More() {
		v, err := r.Next()
		if err != nil {
			log.Fatal("corpus decode failed: ", err)
		}
		if want := s.Value(); v != want {
			log.Fatalf("corpus value mismatch: got %d, expected %d", v, want)
		}
		s.FinishedSingleOp(0)
	}
	s.stats.Bytes = len(data)
}

func runBenchmarks(c codec, filesys fs.Filesys) ([]report, time.Time) {
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}
	if *memprofile != "" {
		defer writeMemProfile(*memprofile)
	}

	var reports []report
	var scratch []byte
	for _, name := range strings.Split(*benchmarks, ",") {
		// decode inputs are prepared before the benchmark clock starts
		var data []byte
		switch name {
		case "decodeseq":
			data = encodeStream(c, (*generator).NextValue)
		case "decoderandom":
			data = encodeStream(c, (*generator).Value)
		}

		s := NewBench(name, *seed)
		switch name {
		case "encodeseq":
			for i := 0; i < *numValues; i++ {
				scratch = c.Append(scratch[:0], s.NextValue())
				s.FinishedSingleOp(len(scratch))
			}
		case "encoderandom":
			for i := 0; i < *numValues; i++ {
				scratch = c.Append(scratch[:0], s.Value())
				s.FinishedSingleOp(len(scratch))
			}
		case "decodeseq", "decoderandom":
			decodeBench(s, c, data)
		case "roundtrip":
			for i := 0; i < *numValues; i++ {
				v := s.Value()
				scratch = c.Append(scratch[:0], v)
				got, n, err := c.Decode(scratch)
				if err != nil || got != v || n != len(scratch) {
					log.Fatalf("round-trip failed for %d: got %d (%d octets, err %v)", v, got, n, err)
				}
				s.FinishedSingleOp(len(scratch))
			}
		case "corpus-write":
			writeCorpus(s, filesys)
		case "corpus-read":
			readCorpus(s, filesys)
		default:
			log.Fatalf("unknown benchmark %s", name)
		}
		r := s.Report()
		reports = append(reports, r)
		if !*jsonOutput {
			fmt.Printf("%-20s : %s\n", r.Name, s.stats.formatStats())
		}
	}
	return reports, time.Now()
}

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	if len(flag.Args()) > 0 {
		log.Error("extra command line arguments ", flag.Args())
		flag.Usage()
		os.Exit(1)
	}
	if *prefixWidth < 1 || *prefixWidth > 8 {
		log.Fatalf("prefix width %d outside [1,8]", *prefixWidth)
	}

	c, err := newCodec(*codecName, uint8(*prefixWidth))
	if err != nil {
		log.Fatal(err)
	}

	reportedCodec := *codecName
	if *codecName == "hpack" {
		reportedCodec += fmt.Sprintf(" (width %d)", *prefixWidth)
	}
	if !*jsonOutput {
		for _, info := range []struct {
			Key   string
			Value string
		}{
			{"codec", reportedCodec},
			{"values", showNum(*numValues)},
			{"seed", fmt.Sprintf("%d", *seed)},
		} {
			fmt.Printf("%20s %s\n", info.Key+":", info.Value)
		}
		fmt.Println(strings.Repeat("-", 30))
	}

	filesys := initFs()
	start := time.Now()
	reports, end := runBenchmarks(c, filesys)

	if *jsonOutput {
		out, err := jsoniter.MarshalIndent(reports, "", "  ")
		if err != nil {
			log.Fatal("could not marshal report: ", err)
		}
		os.Stdout.Write(out)
		fmt.Println()
	}

	if *printStats {
		fsstats := filesys.GetStats()
		writes := stats{fsstats.WriteOps, fsstats.WriteBytes, start, &end}
		reads := stats{fsstats.ReadOps, fsstats.ReadBytes, start, &end}
		fmt.Printf("%-20s : %s [%6d ops]\n", "[meta] fs-writes", writes.formatStats(), writes.Ops)
		fmt.Printf("%-20s : %s [%6d ops]\n", "[meta] fs-reads", reads.formatStats(), reads.Ops)
	}
}

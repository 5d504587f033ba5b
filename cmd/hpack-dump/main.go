// hpack-dump prints the integers in a corpus file (or a raw stream of
// prefix-encoded integers) one per line, alongside their encoded octets.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/vonZuben/kurisu-http2/hpack"
	"github.com/vonZuben/kurisu-http2/internal/corpus"
)

var log = logrus.New()

var raw = flag.Bool("raw", false, "treat input as bare integers with no corpus header")
var width = flag.Int("width", 5, "prefix width for -raw streams")
var maxValues = flag.Int("values", -1, "stop after this many values (-1 for all)")

func readInput(fname string) []byte {
	if fname == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal("could not read stdin: ", err)
		}
		return data
	}
	fs := afero.NewReadOnlyFs(afero.NewOsFs())
	data, err := afero.ReadFile(fs, fname)
	if err != nil {
		log.Fatal("could not read input: ", err)
	}
	return data
}

// dump decodes up to count values from payload (count < 0 means until the
// payload runs out), printing each with its encoded octets.
func dump(payload []byte, width uint8, count int) error {
	d := hpack.NewDecoder(payload)
	total := len(payload)
	for i := 0; count < 0 || i < count; i++ {
		if d.RemainingBytes() == 0 {
			if count >= 0 {
				return fmt.Errorf("offset %d: %w", total, hpack.ErrInsufficientInput)
			}
			return nil
		}
		start := total - d.RemainingBytes()
		v, err := d.PrefixedInt(width)
		if err != nil {
			return fmt.Errorf("offset %d: %w", start, err)
		}
		end := total - d.RemainingBytes()
		fmt.Printf("%10d  % x\n", v, payload[start:end])
	}
	return nil
}

func main() {
	flag.Parse()
	log.SetOutput(os.Stderr)

	if len(flag.Args()) != 1 {
		fmt.Fprintln(os.Stderr, "usage: hpack-dump [flags] file (- for stdin)")
		flag.Usage()
		os.Exit(1)
	}
	data := readInput(flag.Arg(0))

	payload, w, count := data, uint8(*width), *maxValues
	if *raw {
		if *width < 1 || *width > 8 {
			log.Fatalf("prefix width %d outside [1,8]", *width)
		}
	} else {
		r, err := corpus.NewReader(data)
		if err != nil {
			log.Fatal(err)
		}
		payload, w = data[10:], r.Width()
		count = r.Count()
		if *maxValues >= 0 && *maxValues < count {
			count = *maxValues
		}
		fmt.Printf("corpus: width %d, %d values, %d payload bytes\n",
			r.Width(), r.Count(), len(payload))
	}

	if err := dump(payload, w, count); err != nil {
		log.Fatal(err)
	}
}

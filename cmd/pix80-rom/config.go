package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// Config defines program configuration.
type Config struct {
	Inputs   []string // Binaries to concatenate, in order.
	Output   string   // Target image file.
	Revision string   // Board revision whose ROM size the image is padded to.
	Fill     byte     // Padding byte.
	Truncate bool     // Cut oversized input instead of failing.
	Version  bool     // Print version information and exit.
}

// parseArgs parses command line arguments. Usage errors are written to out.
func parseArgs(args []string, out io.Writer) (*Config, error) {
	var c Config
	c.Revision = "flat"
	c.Fill = 0

	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.Usage = func() {
		fmt.Fprintf(out, "%s [options] <input files>\n", AppName)
		fs.PrintDefaults()
	}

	fill := strconv.Itoa(int(c.Fill))

	fs.StringVar(&c.Output, "out", c.Output, "Output file to generate (Not optional).")
	fs.StringVar(&c.Revision, "revision", c.Revision, "Board revision: flat, single or banked.")
	fs.StringVar(&fill, "fill", fill, "Padding byte, e.g. 0 or 0xff.")
	fs.BoolVar(&c.Truncate, "truncate", c.Truncate, "Cut input that does not fit the ROM.")
	fs.BoolVar(&c.Version, "version", c.Version, "Display version information.")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if c.Version {
		return &c, nil
	}

	v, err := strconv.ParseUint(fill, 0, 8)
	if err != nil {
		err = errors.Errorf("invalid fill byte %q", fill)
		fmt.Fprintln(out, err)
		return nil, err
	}
	c.Fill = byte(v)

	c.Inputs = fs.Args()

	if len(c.Output) == 0 || len(c.Inputs) == 0 {
		fs.Usage()
		return nil, errors.New("missing output or input files")
	}

	return &c, nil
}

package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/OfficialPixelBrush/Pix80Emu/machine"
)

func main() {
	config, err := parseArgs(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if config.Version {
		fmt.Println(Version())
		return
	}

	if err := build(config); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// build writes the ROM image described by c.
func build(c *Config) error {
	mc, ok := machine.Revision(c.Revision)
	if !ok {
		return errors.Errorf("unknown revision %q", c.Revision)
	}

	inputs := make([]io.Reader, 0, len(c.Inputs))
	for _, file := range c.Inputs {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		inputs = append(inputs, bytes.NewReader(data))
	}

	image, err := buildImage(inputs, mc.Layout.ROMSize, c.Fill, c.Truncate)
	if err != nil {
		return errors.Wrapf(err, "%s", c.Output)
	}

	// Ensure the target directory exists.
	dir, _ := filepath.Split(c.Output)
	if dir != "" {
		err = os.MkdirAll(dir, 0744)
		if err != nil && !os.IsExist(err) {
			return err
		}
	}

	return os.WriteFile(c.Output, image, 0644)
}

// buildImage concatenates the inputs and pads the result with fill to
// size bytes. Input past size is an error unless truncate is set.
func buildImage(inputs []io.Reader, size int, fill byte, truncate bool) ([]byte, error) {
	var buf bytes.Buffer

	for _, r := range inputs {
		if _, err := buf.ReadFrom(r); err != nil {
			return nil, err
		}
	}

	if buf.Len() > size {
		if !truncate {
			return nil, errors.Errorf("input is %d bytes, rom holds %d", buf.Len(), size)
		}
		buf.Truncate(size)
	}

	image := buf.Bytes()
	for len(image) < size {
		image = append(image, fill)
	}

	return image, nil
}

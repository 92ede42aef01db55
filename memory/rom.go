package memory

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// LoadROM replaces the ROM contents with the image read from r, starting
// at address 0. A short image leaves the remaining ROM bytes zero. Bytes
// past the end of the ROM region are not loaded and truncated is set.
// It returns the number of bytes loaded.
func (s *Space) LoadROM(r io.Reader) (n int, truncated bool, err error) {
	clear(s.rom)

	n, err = io.ReadFull(r, s.rom)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		return n, false, nil
	default:
		return n, false, errors.Wrapf(err, "failed to read rom image")
	}

	var extra [1]byte
	m, err := r.Read(extra[:])
	if m > 0 {
		return n, true, nil
	}

	if err != nil && err != io.EOF {
		return n, false, errors.Wrapf(err, "failed to read rom image")
	}

	return n, false, nil
}

// LoadROMFile loads the ROM image from the given file. See LoadROM.
func (s *Space) LoadROMFile(file string) (n int, truncated bool, err error) {
	fd, err := os.Open(file)
	if err != nil {
		return 0, false, errors.Wrapf(err, "failed to open rom image")
	}

	defer fd.Close()

	n, truncated, err = s.LoadROM(fd)
	if err != nil {
		return n, truncated, errors.Wrapf(err, "%s", file)
	}
	return n, truncated, nil
}

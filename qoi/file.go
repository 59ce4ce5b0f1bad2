package qoi

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// ReadHeaderFile reads the header of the QOI file at path.
func ReadHeaderFile(path string) (Desc, error) {
	f, err := openRegular(path)
	if err != nil {
		return Desc{}, err
	}
	defer f.Close()

	h := make([]byte, qoiHeaderSize)
	n, err := io.ReadFull(f, h)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Desc{}, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return ReadHeader(h[:n])
}

// EncodeFile encodes data as described by desc and writes the result to
// path. An existing file is only replaced if overwrite is set. It returns
// the number of bytes written.
func EncodeFile(path string, data []byte, desc Desc, overwrite bool) (int, error) {
	fi, err := os.Stat(path)
	switch {
	case err == nil && !overwrite:
		return 0, fmt.Errorf("%w: %s", ErrFileExists, path)
	case err == nil && !fi.Mode().IsRegular():
		return 0, fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}

	encoded, err := Encode(data, desc)
	if err != nil {
		return 0, err
	}

	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return len(encoded), nil
}

// DecodeFile reads and decodes the QOI file at path.
func DecodeFile(path string, opts *DecodeOptions) ([]byte, Desc, error) {
	f, err := openRegular(path)
	if err != nil {
		return nil, Desc{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, Desc{}, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return Decode(data, opts)
}

func openRegular(path string) (*os.File, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotExists, path)
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotRegularFile, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return f, nil
}

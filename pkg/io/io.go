package io

import (
	"bufio"
	"io"
	"os"
)

// Copy copies data from src to dst. If dst is not big enough, return an
// InsufficientBufferError.
func Copy(dst, src []byte) (n int, err error) {
	if len(dst) < len(src) {
		return 0, &InsufficientBufferError{len(src)}
	}

	return copy(dst, src), nil
}

// ReadFile reads the whole file at path. Failures are reported as *FileError.
func ReadFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	return b, nil
}

// WriteFile creates or truncates the file at path and lets write fill it
// through a buffered writer. Path "-" writes to stdout. Failures are reported
// as *FileError, and a file that could not be fully written is removed.
func WriteFile(path string, write func(w io.Writer) error) (err error) {
	if path == "-" {
		return writeTo(os.Stdout, path, write)
	}

	f, err := os.Create(path)
	if err != nil {
		return &FileError{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &FileError{Op: "close", Path: path, Err: cerr}
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	return writeTo(f, path, write)
}

func writeTo(f *os.File, path string, write func(w io.Writer) error) error {
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	if err := bw.Flush(); err != nil {
		return &FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}

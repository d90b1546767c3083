package io

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopy(t *testing.T) {
	dst := make([]byte, 4)
	n, err := Copy(dst, []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []byte{1, 2, 3, 0}, dst)

	_, err = Copy(dst[:2], []byte{1, 2, 3})
	var e *InsufficientBufferError
	require.True(t, errors.As(err, &e))
	assert.Equal(t, 3, e.RequiredSize)
}

func TestReadWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.raw")

	err := WriteFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte{0x10, 0x80, 0x80})
		return err
	})
	require.NoError(t, err)

	b, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x10, 0x80, 0x80}, b)
}

func TestReadFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.raw")
	_, err := ReadFile(path)

	var e *FileError
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "read", e.Op)
	assert.Equal(t, path, e.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWriteFileErrors(t *testing.T) {
	dir := t.TempDir()

	err := WriteFile(filepath.Join(dir, "no-such-dir", "out.png"), func(io.Writer) error { return nil })
	var e *FileError
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "create", e.Op)

	encodeErr := errors.New("encode failed")
	out := filepath.Join(dir, "out.png")
	err = WriteFile(out, func(w io.Writer) error {
		// More than the bufio buffer, so part of it reaches the file.
		if _, err := w.Write(make([]byte, 8192)); err != nil {
			return err
		}
		return encodeErr
	})
	require.True(t, errors.As(err, &e))
	assert.Equal(t, "write", e.Op)
	assert.ErrorIs(t, err, encodeErr)

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err), "partial file should be removed")
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, WriteFile(path, func(w io.Writer) error {
		_, err := w.Write([]byte("new"))
		return err
	}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), b)
}

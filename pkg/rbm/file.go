package rbm

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File header: length-prefixed "RBMDL" magic and version 1.16.0.
var fileHeader = concat(
	[]byte{0x05, 0x00, 0x00, 0x00},
	[]byte("RBMDL"),
	[]byte{0x01, 0x00, 0x00, 0x00}, // major
	[]byte{0x10, 0x00, 0x00, 0x00}, // minor
	[]byte{0x00, 0x00, 0x00, 0x00}, // revision
)

// objectTableTag follows the object count in the header.
const objectTableTag = 8

// Encode writes a complete RBM file for records to w in input order.
// Every record is validated before the first byte is written.
func Encode(w io.Writer, records []*Record) error {
	if len(records) == 0 {
		return ErrEmptyBatch
	}
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return err
		}
	}
	bounds, err := ComputeBounds(records)
	if err != nil {
		return err
	}

	e := newEncoder(w)
	e.bytes(fileHeader)
	b := bounds.Array()
	e.f32s(b[:]...)
	e.count(len(records))
	e.u32(objectTableTag)
	for _, rec := range records {
		writeBlock(e, rec)
	}

	if e.err != nil {
		return fmt.Errorf("%w: %w", ErrIO, e.err)
	}
	return nil
}

// Marshal returns the encoded RBM file for records.
func Marshal(records []*Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes records and writes them to path. The data goes to a
// temporary file in the same directory that is renamed over path only
// after it was fully written and synced; on failure path is untouched.
// It returns the bytes written.
func WriteFile(path string, records []*Record) ([]byte, error) {
	data, err := Marshal(records)
	if err != nil {
		return nil, err
	}

	file, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("%w: creating temporary file: %w", ErrIO, err)
	}
	temporaryPath := file.Name()

	if _, err := file.Write(data); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return nil, fmt.Errorf("%w: writing temporary file: %w", ErrIO, err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		os.Remove(temporaryPath)
		return nil, fmt.Errorf("%w: syncing temporary file: %w", ErrIO, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(temporaryPath)
		return nil, fmt.Errorf("%w: closing temporary file: %w", ErrIO, err)
	}
	if err := os.Chmod(temporaryPath, 0644); err != nil {
		os.Remove(temporaryPath)
		return nil, fmt.Errorf("%w: setting mode: %w", ErrIO, err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		os.Remove(temporaryPath)
		return nil, fmt.Errorf("%w: renaming to %s: %w", ErrIO, path, err)
	}
	return data, nil
}

// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package kzip

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Format constants. Changing any of these breaks compatibility with
// existing archives.
const (
	// FormatVersion is recorded in every archive header. It is
	// informational: readers display it but never reject an archive
	// because of it.
	FormatVersion = "0.0.7"

	// ArchiveSuffix is the conventional file extension for archives.
	ArchiveSuffix = ".kzip"

	// magicChecksum is the value the three magic bytes must sum to.
	// This is a weak integrity check (many triples sum to 138), kept
	// for wire compatibility.
	magicChecksum = 138
)

// magicBytes is the triple written by this implementation. The reader
// accepts any triple whose byte sum equals magicChecksum.
var magicBytes = [3]byte{12, 10, 116}

// Entry flag bytes.
const (
	flagUnique    byte = 0
	flagDuplicate byte = 1
)

// Header is the fixed archive preamble: three magic bytes, the
// length-prefixed version string of the writer, and the total number
// of entries (unique and duplicate).
type Header struct {
	// Version is the format version string recorded at write time.
	Version string

	// EntryCount is the total number of entry records that follow.
	EntryCount uint32
}

// Entry is the metadata prefix of one record. The payload of a unique
// entry (exactly StoredSize compressed bytes) follows the prefix on
// the wire and is handled separately by the writer and reader so it
// can be streamed.
type Entry struct {
	// Path is the stored relative path, exactly as written. It must
	// pass through NormalizePath before any filesystem use.
	Path string

	// CreatedAt and ModifiedAt are Unix-epoch seconds from the source
	// file's metadata.
	CreatedAt  uint64
	ModifiedAt uint64

	// Duplicate reports which variant this entry is. Duplicate
	// entries carry ReferenceIndex and no payload; unique entries
	// carry RawSize, StoredSize, and a payload.
	Duplicate bool

	// ReferenceIndex is the 0-based ordinal, among unique entries
	// only, of the entry whose content this one repeats. Valid
	// references always point at an already-emitted unique entry.
	ReferenceIndex uint32

	// RawSize is the original byte length of the content.
	RawSize uint64

	// StoredSize is the compressed byte length of the payload.
	StoredSize uint64
}

// writeHeader writes the archive preamble.
func writeHeader(w io.Writer, h *Header) error {
	if _, err := w.Write(magicBytes[:]); err != nil {
		return fmt.Errorf("writing magic bytes: %w", err)
	}
	if err := writeString(w, h.Version); err != nil {
		return fmt.Errorf("writing version string: %w", err)
	}
	if err := writeUint32(w, h.EntryCount); err != nil {
		return fmt.Errorf("writing entry count: %w", err)
	}
	return nil
}

// readHeader reads and validates the archive preamble. The magic
// check happens before anything else is parsed; a bad checksum
// returns ErrInvalidHeader.
func readHeader(r io.Reader) (*Header, error) {
	var magic [3]byte
	if err := readFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("reading magic bytes: %w", err)
	}
	if int(magic[0])+int(magic[1])+int(magic[2]) != magicChecksum {
		return nil, fmt.Errorf("%w: magic bytes %v do not sum to %d",
			ErrInvalidHeader, magic, magicChecksum)
	}

	version, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("reading version string: %w", err)
	}
	count, err := readUint32(r)
	if err != nil {
		return nil, fmt.Errorf("reading entry count: %w", err)
	}
	return &Header{Version: version, EntryCount: count}, nil
}

// writeEntryPrefix writes everything in a record except the payload:
// flag byte, path, timestamps, and the variant-specific fields.
func writeEntryPrefix(w io.Writer, e *Entry) error {
	flag := flagUnique
	if e.Duplicate {
		flag = flagDuplicate
	}
	if _, err := w.Write([]byte{flag}); err != nil {
		return fmt.Errorf("writing flag byte: %w", err)
	}
	if err := writeString(w, e.Path); err != nil {
		return fmt.Errorf("writing path: %w", err)
	}
	if err := writeUint64(w, e.CreatedAt); err != nil {
		return fmt.Errorf("writing created-at: %w", err)
	}
	if err := writeUint64(w, e.ModifiedAt); err != nil {
		return fmt.Errorf("writing modified-at: %w", err)
	}

	if e.Duplicate {
		if err := writeUint32(w, e.ReferenceIndex); err != nil {
			return fmt.Errorf("writing reference index: %w", err)
		}
		return nil
	}

	if err := writeUint64(w, e.RawSize); err != nil {
		return fmt.Errorf("writing raw size: %w", err)
	}
	if err := writeUint64(w, e.StoredSize); err != nil {
		return fmt.Errorf("writing stored size: %w", err)
	}
	return nil
}

// readEntryPrefix parses one record's metadata prefix. The prefix is
// variable-length and self-describing: each length field is read
// first, then exactly that many bytes, so a prefix of any size (an
// arbitrarily long path, in particular) parses correctly. The caller
// is left positioned at the payload of a unique entry.
func readEntryPrefix(r io.Reader) (*Entry, error) {
	var flag [1]byte
	if err := readFull(r, flag[:]); err != nil {
		return nil, fmt.Errorf("reading flag byte: %w", err)
	}
	if flag[0] != flagUnique && flag[0] != flagDuplicate {
		return nil, fmt.Errorf("%w: unknown flag byte 0x%02x", ErrMalformedRecord, flag[0])
	}

	entry := &Entry{Duplicate: flag[0] == flagDuplicate}

	var err error
	if entry.Path, err = readString(r); err != nil {
		return nil, fmt.Errorf("reading path: %w", err)
	}
	if entry.CreatedAt, err = readUint64(r); err != nil {
		return nil, fmt.Errorf("reading created-at: %w", err)
	}
	if entry.ModifiedAt, err = readUint64(r); err != nil {
		return nil, fmt.Errorf("reading modified-at: %w", err)
	}

	if entry.Duplicate {
		if entry.ReferenceIndex, err = readUint32(r); err != nil {
			return nil, fmt.Errorf("reading reference index: %w", err)
		}
		return entry, nil
	}

	if entry.RawSize, err = readUint64(r); err != nil {
		return nil, fmt.Errorf("reading raw size: %w", err)
	}
	if entry.StoredSize, err = readUint64(r); err != nil {
		return nil, fmt.Errorf("reading stored size: %w", err)
	}
	if entry.StoredSize > math.MaxInt64 || entry.RawSize > math.MaxInt64 {
		return nil, fmt.Errorf("%w: entry sizes exceed int64", ErrMalformedRecord)
	}
	return entry, nil
}

// Low-level wire primitives. All integers are little-endian; strings
// are a uint32 byte length followed by UTF-8 bytes.

func writeString(w io.Writer, s string) error {
	if err := writeUint32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	length, err := readUint32(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, length)
	if err := readFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeUint32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeUint64(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if err := readFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// readFull fills buf from r, mapping an early end of stream to
// ErrTruncatedArchive so callers can wrap it with positional context.
func readFull(r io.Reader, buf []byte) error {
	if _, err := io.ReadFull(r, buf); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrTruncatedArchive
		}
		return err
	}
	return nil
}

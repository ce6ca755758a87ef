// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package kzip

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Reader parses an archive stream sequentially. The header is
// validated when the Reader is constructed; entries are then consumed
// exactly once by either Extract or List. Entries are never loaded
// wholesale: record metadata is parsed field by field and payloads
// are streamed through the decompressor in bounded chunks, so memory
// use does not grow with archive size.
type Reader struct {
	in     *bufio.Reader
	header *Header
	logger *slog.Logger
}

// NewReader wraps r and reads the archive header. A header whose
// magic bytes fail the checksum returns ErrInvalidHeader before
// anything else is touched. A nil logger discards log output.
func NewReader(r io.Reader, logger *slog.Logger) (*Reader, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	in := bufio.NewReader(r)
	header, err := readHeader(in)
	if err != nil {
		return nil, err
	}
	return &Reader{in: in, header: header, logger: logger}, nil
}

// Header returns the parsed archive header.
func (r *Reader) Header() *Header {
	return r.header
}

// ExtractSummary reports what one Extract call materialized.
type ExtractSummary struct {
	EntryCount     uint32
	UniqueCount    uint32
	DuplicateCount uint32

	// RawBytes is the total number of decompressed bytes written for
	// unique entries (duplicates are copies and not counted twice).
	RawBytes uint64
}

// Extract materializes every entry under outputDir. Stored paths are
// normalized first, so no entry can land outside outputDir. Unique
// entries are decompressed and their output path is cached under the
// running unique-entry ordinal; duplicate entries copy the bytes of
// the cached path they reference (the archive stores no payload for
// them).
//
// Any parse failure mid-stream is fatal for the whole read. Entries
// extracted before the failure remain on disk; there is no rollback.
func (r *Reader) Extract(outputDir string) (*ExtractSummary, error) {
	if err := EnsureDir(outputDir); err != nil {
		return nil, err
	}

	summary := &ExtractSummary{}
	cache := make(map[uint32]string, r.header.EntryCount)
	var uniqueOrdinal uint32

	for i := uint32(0); i < r.header.EntryCount; i++ {
		entry, err := readEntryPrefix(r.in)
		if err != nil {
			return summary, fmt.Errorf("entry %d: %w", i, err)
		}

		destination := JoinUnder(outputDir, entry.Path)
		if err := EnsureDir(filepath.Dir(destination)); err != nil {
			return summary, fmt.Errorf("entry %d (%s): %w", i, entry.Path, err)
		}

		if entry.Duplicate {
			source, ok := cache[entry.ReferenceIndex]
			if !ok {
				return summary, fmt.Errorf("entry %d (%s): %w: reference %d does not name an earlier unique entry",
					i, entry.Path, ErrMalformedRecord, entry.ReferenceIndex)
			}
			if err := copyFile(source, destination); err != nil {
				return summary, fmt.Errorf("entry %d (%s): %w", i, entry.Path, err)
			}
			summary.DuplicateCount++
			r.logger.Debug("extracted duplicate", "path", entry.Path, "reference", entry.ReferenceIndex)
		} else {
			if err := r.extractUnique(entry, destination); err != nil {
				return summary, fmt.Errorf("entry %d (%s): %w", i, entry.Path, err)
			}
			cache[uniqueOrdinal] = destination
			uniqueOrdinal++
			summary.UniqueCount++
			summary.RawBytes += entry.RawSize
			r.logger.Debug("extracted file", "path", entry.Path, "raw", entry.RawSize)
		}

		restoreTimes(destination, entry)
		summary.EntryCount++
	}

	return summary, nil
}

// extractUnique streams one unique entry's payload from the archive
// into a new file at destination. The payload is bounded by the
// declared stored size and must decompress to exactly the declared
// raw size.
func (r *Reader) extractUnique(entry *Entry, destination string) error {
	out, err := os.Create(destination)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	payload := io.LimitReader(r.in, int64(entry.StoredSize))
	if err := decompressTo(out, payload, entry.RawSize); err != nil {
		out.Close()
		return err
	}

	// The zlib stream is self-terminating and may end before the
	// declared stored size. Bytes left over inside the payload window
	// mean the record's lengths are inconsistent.
	leftover, err := io.Copy(io.Discard, payload)
	if err != nil {
		out.Close()
		return fmt.Errorf("draining payload: %w", err)
	}
	if leftover > 0 {
		out.Close()
		return fmt.Errorf("%w: %d trailing payload bytes after the compressed stream",
			ErrMalformedRecord, leftover)
	}

	return out.Close()
}

// restoreTimes applies the entry's recorded modification time to the
// extracted file. Best effort: a failure here does not abort the
// extraction.
func restoreTimes(path string, entry *Entry) {
	modified := time.Unix(int64(entry.ModifiedAt), 0)
	_ = os.Chtimes(path, modified, modified)
}

// ListEntry is one entry's metadata as reported by List. Display
// formatting (byte sizes, dates) is the caller's concern.
type ListEntry struct {
	Path           string
	Duplicate      bool
	ReferenceIndex uint32
	CreatedAt      uint64
	ModifiedAt     uint64
	RawSize        uint64
	StoredSize     uint64
}

// Listing is the result of reading an archive without extracting it.
type Listing struct {
	// Version is the format version string the archive was written
	// with.
	Version string

	// Entries holds every entry in archive order.
	Entries []ListEntry

	// EntryCount is the total number of entries (unique + duplicate).
	EntryCount uint32

	// PackedBytes and UnpackedBytes total the stored and raw sizes of
	// unique entries. Duplicate entries contribute no bytes.
	PackedBytes   uint64
	UnpackedBytes uint64
}

// Ratio returns the compression ratio (unpacked / packed) and whether
// it is defined. An archive whose packed total is zero (only
// zero-byte files, say) has no meaningful ratio, and dividing by zero
// is not an acceptable way to report that.
func (l *Listing) Ratio() (float64, bool) {
	if l.PackedBytes == 0 {
		return 0, false
	}
	return float64(l.UnpackedBytes) / float64(l.PackedBytes), true
}

// List reads every entry's metadata, skipping over payloads, and
// returns the listing. Payload bytes are discarded in bounded chunks
// sized by each entry's declared stored size.
func (r *Reader) List() (*Listing, error) {
	listing := &Listing{Version: r.header.Version}

	for i := uint32(0); i < r.header.EntryCount; i++ {
		entry, err := readEntryPrefix(r.in)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		listing.Entries = append(listing.Entries, ListEntry{
			Path:           entry.Path,
			Duplicate:      entry.Duplicate,
			ReferenceIndex: entry.ReferenceIndex,
			CreatedAt:      entry.CreatedAt,
			ModifiedAt:     entry.ModifiedAt,
			RawSize:        entry.RawSize,
			StoredSize:     entry.StoredSize,
		})
		listing.EntryCount++

		if entry.Duplicate {
			continue
		}

		listing.PackedBytes += entry.StoredSize
		listing.UnpackedBytes += entry.RawSize

		if _, err := io.CopyN(io.Discard, r.in, int64(entry.StoredSize)); err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				err = ErrTruncatedArchive
			}
			return nil, fmt.Errorf("entry %d (%s): skipping payload: %w", i, entry.Path, err)
		}
	}

	return listing, nil
}

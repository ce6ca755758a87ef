// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package kzip

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Writer serializes a filesystem subtree into the archive format,
// streaming each record to the output as it is built. Memory use is
// bounded by the largest single file: one file's content is held from
// read through fingerprint, compress, and write, never the whole
// archive.
//
// A Writer owns one write session: its deduplication index is
// constructed fresh in NewWriter and lives exactly as long as the
// session, so concurrent archive operations in one process never
// share state.
type Writer struct {
	out     io.Writer
	index   *Index
	scratch bytes.Buffer
	logger  *slog.Logger
}

// WriteSummary reports what one Archive call produced.
type WriteSummary struct {
	// EntryCount is the total number of records written.
	EntryCount uint32

	// UniqueCount and DuplicateCount split EntryCount by variant.
	UniqueCount    uint32
	DuplicateCount uint32

	// RawBytes is the total uncompressed content size of unique
	// entries; StoredBytes is their total compressed payload size.
	// Duplicate entries contribute to neither.
	RawBytes    uint64
	StoredBytes uint64
}

// NewWriter creates a Writer for one archive session writing to out.
// A nil logger discards log output.
func NewWriter(out io.Writer, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Writer{out: out, index: NewIndex(), logger: logger}
}

// Archive packs the file or directory at inputPath into the output
// stream. The entry count is computed up front so the header can be
// written before any record; the tree is then walked with an explicit
// work stack (enumeration order is unspecified) and one record is
// appended per regular file.
//
// Files that cannot be read are skipped with a warning and do not
// abort the run. A file whose metadata cannot supply epoch-second
// timestamps is fatal. Directories are walked into, never stored as
// records.
func (w *Writer) Archive(inputPath string) (*WriteSummary, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading input %s: %w", inputPath, err)
	}

	storedRoot := filepath.Base(filepath.Clean(inputPath))

	count, err := w.countEntries(inputPath, info)
	if err != nil {
		return nil, err
	}

	header := &Header{Version: FormatVersion, EntryCount: count}
	if err := writeHeader(w.out, header); err != nil {
		return nil, err
	}
	w.logger.Debug("wrote archive header", "entries", count, "version", FormatVersion)

	summary := &WriteSummary{}

	if !info.IsDir() {
		if err := w.appendFile(inputPath, storedRoot, summary); err != nil {
			return nil, err
		}
		return summary, nil
	}

	// Explicit work stack instead of recursion: depth is bounded by
	// the stack slice, not the goroutine stack, so pathological tree
	// depth cannot overflow.
	type workItem struct {
		fsPath     string
		storedPath string
	}
	stack := []workItem{{inputPath, storedRoot}}

	for len(stack) > 0 {
		item := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(item.fsPath)
		if err != nil {
			w.logger.Warn("skipping unreadable directory", "path", item.fsPath, "error", err)
			continue
		}

		for _, entry := range entries {
			fsPath := filepath.Join(item.fsPath, entry.Name())
			storedPath := item.storedPath + "/" + entry.Name()

			switch {
			case entry.IsDir():
				stack = append(stack, workItem{fsPath, storedPath})
			case entry.Type().IsRegular():
				if err := w.appendFile(fsPath, storedPath, summary); err != nil {
					return nil, err
				}
			default:
				w.logger.Warn("skipping irregular file", "path", fsPath, "type", entry.Type().String())
			}
		}
	}

	if summary.EntryCount != count {
		w.logger.Warn("entry count drifted from header",
			"header", count, "written", summary.EntryCount)
	}

	return summary, nil
}

// appendFile reads one regular file and appends its record to the
// output. An unreadable file is skipped with a warning; every other
// failure aborts the run.
func (w *Writer) appendFile(fsPath, storedPath string, summary *WriteSummary) error {
	content, err := os.ReadFile(fsPath)
	if err != nil {
		w.logger.Warn("skipping unreadable file", "path", fsPath, "error", err)
		return nil
	}

	createdAt, modifiedAt, err := fileTimes(fsPath)
	if err != nil {
		return fmt.Errorf("reading metadata for %s: %w", fsPath, err)
	}

	entry := &Entry{
		Path:       storedPath,
		CreatedAt:  createdAt,
		ModifiedAt: modifiedAt,
	}

	duplicate, ordinal := w.index.Observe(content)
	if duplicate {
		entry.Duplicate = true
		entry.ReferenceIndex = ordinal

		if err := w.appendRecord(entry, nil); err != nil {
			return fmt.Errorf("writing duplicate record for %s: %w", storedPath, err)
		}

		summary.EntryCount++
		summary.DuplicateCount++
		w.logger.Debug("stored duplicate", "path", storedPath, "reference", ordinal)
		return nil
	}

	payload, err := Compress(content)
	if err != nil {
		return fmt.Errorf("compressing %s: %w", storedPath, err)
	}
	entry.RawSize = uint64(len(content))
	entry.StoredSize = uint64(len(payload))

	if err := w.appendRecord(entry, payload); err != nil {
		return fmt.Errorf("writing record for %s: %w", storedPath, err)
	}

	summary.EntryCount++
	summary.UniqueCount++
	summary.RawBytes += entry.RawSize
	summary.StoredBytes += entry.StoredSize
	w.logger.Debug("stored file", "path", storedPath,
		"raw", entry.RawSize, "stored", entry.StoredSize)
	return nil
}

// appendRecord serializes the metadata prefix into the scratch
// buffer, flushes it to the output, streams the payload (if any)
// after it, and resets the scratch buffer for the next record.
func (w *Writer) appendRecord(entry *Entry, payload []byte) error {
	defer w.scratch.Reset()

	if err := writeEntryPrefix(&w.scratch, entry); err != nil {
		return err
	}
	if _, err := w.out.Write(w.scratch.Bytes()); err != nil {
		return err
	}
	if payload != nil {
		if _, err := w.out.Write(payload); err != nil {
			return err
		}
	}
	return nil
}

// countEntries walks the subtree with an explicit stack and counts
// regular files. Directories are not counted (they are never stored
// as records). Unreadable directories are skipped, matching the walk
// itself.
func (w *Writer) countEntries(inputPath string, info os.FileInfo) (uint32, error) {
	if !info.IsDir() {
		if !info.Mode().IsRegular() {
			return 0, fmt.Errorf("input %s is neither a regular file nor a directory", inputPath)
		}
		return 1, nil
	}

	var count uint32
	stack := []string{inputPath}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				stack = append(stack, filepath.Join(dir, entry.Name()))
			} else if entry.Type().IsRegular() {
				count++
			}
		}
	}
	return count, nil
}

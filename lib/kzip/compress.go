// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package kzip

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Compress returns data as a zlib stream at the strongest compression
// level. The output is deflate-compatible and self-terminating; its
// length becomes the entry's stored size on the wire.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("creating zlib writer: %w", err)
	}
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("compressing %d bytes: %w", len(data), err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finishing zlib stream: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress inflates a complete compressed payload and verifies it
// reproduces exactly rawSize bytes. A payload that inflates short or
// long returns ErrLengthMismatch; a corrupted stream surfaces the
// zlib error. Nothing is silently truncated.
func Decompress(compressed []byte, rawSize uint64) ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(int(rawSize))
	if err := decompressTo(&buf, bytes.NewReader(compressed), rawSize); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decompressTo streams a zlib payload from r into w and verifies the
// decompressed byte count equals rawSize. The payload is consumed
// through the decompressor in bounded chunks (io.Copy's internal
// buffer), so memory use does not depend on the payload size.
func decompressTo(w io.Writer, r io.Reader, rawSize uint64) error {
	zr, err := zlib.NewReader(r)
	if err != nil {
		return fmt.Errorf("opening zlib stream: %w", err)
	}
	defer zr.Close()

	// Copy at most rawSize bytes, then check both directions: the
	// stream must not end early and must not continue past the
	// declared length.
	written, err := io.Copy(w, io.LimitReader(zr, int64(rawSize)))
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: payload ends mid-stream", ErrTruncatedArchive)
		}
		return fmt.Errorf("inflating payload: %w", err)
	}
	if uint64(written) < rawSize {
		return fmt.Errorf("%w: got %d bytes, declared %d", ErrLengthMismatch, written, rawSize)
	}

	var overrun [1]byte
	n, rerr := zr.Read(overrun[:])
	if n > 0 {
		return fmt.Errorf("%w: payload inflates past declared %d bytes", ErrLengthMismatch, rawSize)
	}
	if rerr != nil && rerr != io.EOF {
		// Reading the stream terminator also verifies the zlib
		// checksum; corruption in the trailer surfaces here.
		return fmt.Errorf("verifying stream end: %w", rerr)
	}
	return nil
}

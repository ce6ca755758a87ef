// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package kzip

import "errors"

// Error kinds surfaced by the reader. All are fatal for the operation
// that produced them: the archive stream cannot be trusted past the
// first inconsistency, so there is no record-level recovery. Callers
// match with errors.Is.
var (
	// ErrInvalidHeader is returned when the three magic bytes at the
	// start of an archive do not sum to the required checksum. It is
	// returned before any entry is parsed and before any output is
	// produced.
	ErrInvalidHeader = errors.New("invalid kzip header")

	// ErrTruncatedArchive is returned when the stream ends before a
	// length field says it should: a cut-off string, payload, or
	// fixed-width field.
	ErrTruncatedArchive = errors.New("truncated archive")

	// ErrMalformedRecord is returned for structurally invalid records,
	// such as a duplicate reference to a unique entry that has not
	// been emitted yet (forward references are invalid by
	// construction) or a flag byte with an unknown value.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrLengthMismatch is returned when a unique entry's payload
	// decompresses to a byte count different from its declared raw
	// size.
	ErrLengthMismatch = errors.New("decompressed length mismatch")
)

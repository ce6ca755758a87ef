// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package kzip

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint is a 32-byte BLAKE3 digest of a file's raw,
// uncompressed bytes. It is the deduplication key: two files with
// equal fingerprints are treated as having identical content
// (collision probability is negligible for archive use).
type Fingerprint [32]byte

// FingerprintContent computes the fingerprint of raw content bytes.
func FingerprintContent(content []byte) Fingerprint {
	return blake3.Sum256(content)
}

// String returns the hex form, for logs.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Index maps content fingerprints to the ordinal of the first unique
// entry holding that content. It is session-scoped: the writer
// constructs a fresh Index per archive and it never evicts. Multiple
// archive operations in one process each get their own Index and
// cannot interfere.
//
// Directories are never observed; they carry no content.
type Index struct {
	ordinals map[Fingerprint]uint32
}

// NewIndex creates an empty index for one write session.
func NewIndex() *Index {
	return &Index{ordinals: make(map[Fingerprint]uint32)}
}

// Observe registers content with the index. If content with the same
// fingerprint was observed before, it returns (true, ordinal) of the
// first occurrence. Otherwise the content is assigned the next
// unique-entry ordinal (the count of unique entries seen so far) and
// (false, newOrdinal) is returned.
func (x *Index) Observe(content []byte) (duplicate bool, ordinal uint32) {
	fp := FingerprintContent(content)
	if ord, ok := x.ordinals[fp]; ok {
		return true, ord
	}
	ord := uint32(len(x.ordinals))
	x.ordinals[fp] = ord
	return false, ord
}

// UniqueCount returns the number of distinct contents observed.
func (x *Index) UniqueCount() int {
	return len(x.ordinals)
}

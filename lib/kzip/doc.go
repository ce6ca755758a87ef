// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

// Package kzip implements the kzip single-archive container format:
// a sequential, deduplicating, per-entry-compressed alternative to
// tar/zip. A tree of regular files is packed into one archive file;
// identical file content is stored once and later occurrences are
// recorded as references to the first copy.
//
// The package is organized in layers, each usable independently:
//
//   - Format: the binary container layout. A short header (three
//     magic bytes whose sum must equal 138, a length-prefixed version
//     string, and a 32-bit entry count) followed by one record per
//     file. Records are polymorphic: unique records carry a
//     zlib-compressed payload with its raw and stored lengths;
//     duplicate records carry only the ordinal index of the unique
//     record whose content they repeat.
//
//   - Fingerprinting: BLAKE3-256 over raw (uncompressed) file bytes.
//     The session-scoped Index maps fingerprints to unique-entry
//     ordinals so the writer can decide unique-vs-duplicate in O(1).
//
//   - Compression: a deflate-compatible zlib stream per unique entry,
//     written at the strongest compression level. Decompression must
//     reproduce exactly the declared raw length; any surplus or
//     deficit is an error, never a silent truncation.
//
//   - Writer: walks a file or directory tree with an explicit work
//     stack (no recursion), counts entries up front, and streams each
//     record to the output as it is built. Memory use is bounded by
//     the size of the single entry in flight, not the archive.
//
//   - Reader: parses the header, then iterates exactly entry-count
//     records sequentially. Record metadata is self-describing and
//     variable-length: the reader reads each length field and then
//     exactly that many bytes, never assuming a record fits in a
//     fixed window. Only payloads, whose stored length is known
//     before they are read, are streamed in bounded chunks.
//
//   - Path safety: stored paths are normalized before any filesystem
//     use. Separators are converted to the host form and leading
//     parent- and current-directory segments are stripped repeatedly,
//     so no archive can extract outside its output directory.
//
// All fixed-width integers in the container are little-endian.
// Strings are a 32-bit byte length followed by UTF-8 bytes.
//
// The three-byte magic check (sum equals 138) is deliberately weak;
// many byte triples satisfy it. It is preserved as-is for wire
// compatibility; strengthening it would be a format version change.
package kzip

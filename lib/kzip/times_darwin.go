// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

//go:build darwin

package kzip

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// fileTimes returns the creation and modification times of the file
// at path as Unix-epoch seconds. Darwin exposes a true birth time. A
// file whose times cannot be expressed as epoch seconds (pre-1970) is
// an error; the caller treats that file as fatal.
func fileTimes(path string) (createdAt, modifiedAt uint64, err error) {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return 0, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if stat.Birthtimespec.Sec < 0 || stat.Mtimespec.Sec < 0 {
		return 0, 0, fmt.Errorf("stat %s: timestamp precedes the Unix epoch", path)
	}
	return uint64(stat.Birthtimespec.Sec), uint64(stat.Mtimespec.Sec), nil
}

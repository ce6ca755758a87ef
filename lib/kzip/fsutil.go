// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package kzip

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir creates path and all missing ancestors. It is a no-op if
// the directory already exists; any other failure is returned to the
// caller (and is fatal for the operation in progress).
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

// CollisionFreePath returns path if nothing exists there, otherwise
// the first free name produced by inserting a monotonically
// increasing counter before the extension: name.kzip, name-1.kzip,
// name-2.kzip, and so on. Probing continues until a free name is
// found, so repeated collisions always produce distinct names.
func CollisionFreePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	extension := filepath.Ext(path)
	stem := strings.TrimSuffix(path, extension)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, i, extension)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// copyFile copies the bytes of src to dst, creating or truncating
// dst. Used when a duplicate entry is extracted: the archive stores
// no payload for it, so the bytes come from the already-extracted
// unique entry.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

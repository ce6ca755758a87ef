// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package kzip

import (
	"path/filepath"
	"strings"
)

// NormalizePath sanitizes a stored path for filesystem use. Both
// separator conventions ('/' and '\') are converted to the host
// separator, then leading parent-directory ("..") and
// current-directory (".") segments are stripped — repeatedly, so
// "../.././../x" collapses to "x". Interior ".." segments are also
// dropped, so a crafted path can never climb above where it is
// joined.
//
// NormalizePath never fails. Degenerate input produces a safe but
// possibly empty result (empty components collapse).
func NormalizePath(stored string) string {
	normalized := strings.ReplaceAll(stored, "\\", string(filepath.Separator))
	normalized = strings.ReplaceAll(normalized, "/", string(filepath.Separator))

	var kept []string
	for _, segment := range strings.Split(normalized, string(filepath.Separator)) {
		switch segment {
		case "", ".", "..":
			continue
		}
		kept = append(kept, segment)
	}
	return strings.Join(kept, string(filepath.Separator))
}

// JoinUnder joins a stored path under outputDir after normalization.
// The result is always rooted under outputDir: normalization removes
// every segment that could escape it, including an absolute-looking
// prefix.
func JoinUnder(outputDir, stored string) string {
	return filepath.Join(outputDir, NormalizePath(stored))
}

// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package kzip

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		want   string // slash-separated; converted per host below
	}{
		{"plain", "dir/file.txt", "dir/file.txt"},
		{"single segment", "file.txt", "file.txt"},
		{"traversal prefix", "../../etc/passwd", "etc/passwd"},
		{"interior traversal", "dir/../../../file", "dir/file"},
		{"current dir segments", "./dir/./file", "dir/file"},
		{"backslash separators", "dir\\sub\\file.txt", "dir/sub/file.txt"},
		{"mixed separators", "dir\\..\\../sub/file", "dir/sub/file"},
		{"absolute-looking", "/etc/passwd", "etc/passwd"},
		{"doubled separators", "dir//file", "dir/file"},
		{"only traversal", "../..", ""},
		{"empty", "", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := NormalizePath(test.stored)
			want := filepath.FromSlash(test.want)
			if got != want {
				t.Errorf("NormalizePath(%q) = %q, want %q", test.stored, got, want)
			}
		})
	}
}

func TestJoinUnder_StaysInsideOutputDir(t *testing.T) {
	outputDir := filepath.FromSlash("/tmp/out")
	prefix := outputDir + string(filepath.Separator)

	hostile := []string{
		"../../../../etc/passwd",
		"..\\..\\windows\\system32",
		"/absolute/path",
		"a/../../b",
		strings.Repeat("../", 64) + "escape",
	}

	for _, stored := range hostile {
		joined := JoinUnder(outputDir, stored)
		if !strings.HasPrefix(joined, prefix) {
			t.Errorf("JoinUnder(%q, %q) = %q escapes the output directory",
				outputDir, stored, joined)
		}
	}
}

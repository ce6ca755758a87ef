// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import "testing"

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1 << 20, "1.0 MB"},
		{5 << 20, "5.0 MB"},
		{1 << 30, "1.0 GB"},
	}

	for _, test := range tests {
		if got := formatSize(test.bytes); got != test.want {
			t.Errorf("formatSize(%d) = %q, want %q", test.bytes, got, test.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	// 2023-11-14T22:13:20Z
	if got := formatDate(1700000000); got != "2023-11-14" {
		t.Errorf("formatDate(1700000000) = %q, want 2023-11-14", got)
	}
	if got := formatDate(0); got != "1970-01-01" {
		t.Errorf("formatDate(0) = %q, want 1970-01-01", got)
	}
}

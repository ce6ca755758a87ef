// Copyright 2026 The KZip Authors
// SPDX-License-Identifier: Apache-2.0

package kzip

import "testing"

func TestFingerprintContent(t *testing.T) {
	a := FingerprintContent([]byte("hello"))
	b := FingerprintContent([]byte("hello"))
	c := FingerprintContent([]byte("world"))

	if a != b {
		t.Error("identical content produced different fingerprints")
	}
	if a == c {
		t.Error("different content produced the same fingerprint")
	}

	var zero Fingerprint
	if a == zero {
		t.Error("fingerprint is zero")
	}
}

func TestIndex_Observe(t *testing.T) {
	index := NewIndex()

	duplicate, ordinal := index.Observe([]byte("hello"))
	if duplicate || ordinal != 0 {
		t.Fatalf("first observe = (%v, %d), want (false, 0)", duplicate, ordinal)
	}

	duplicate, ordinal = index.Observe([]byte("hello"))
	if !duplicate || ordinal != 0 {
		t.Fatalf("repeat observe = (%v, %d), want (true, 0)", duplicate, ordinal)
	}

	duplicate, ordinal = index.Observe([]byte("world"))
	if duplicate || ordinal != 1 {
		t.Fatalf("second unique observe = (%v, %d), want (false, 1)", duplicate, ordinal)
	}

	duplicate, ordinal = index.Observe([]byte("world"))
	if !duplicate || ordinal != 1 {
		t.Fatalf("repeat of second = (%v, %d), want (true, 1)", duplicate, ordinal)
	}

	if count := index.UniqueCount(); count != 2 {
		t.Errorf("UniqueCount = %d, want 2", count)
	}
}

func TestIndex_SessionsAreIndependent(t *testing.T) {
	// Each write session gets its own index: observations in one must
	// not leak into another.
	first := NewIndex()
	first.Observe([]byte("hello"))

	second := NewIndex()
	duplicate, ordinal := second.Observe([]byte("hello"))
	if duplicate || ordinal != 0 {
		t.Errorf("fresh index observe = (%v, %d), want (false, 0)", duplicate, ordinal)
	}
}

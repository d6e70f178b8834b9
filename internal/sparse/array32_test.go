// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

package sparse

import (
	"math/rand/v2"
	"testing"
)

func TestBitmap32Rank(t *testing.T) {
	t.Parallel()

	var b Bitmap32 = 1<<2 | 1<<5 | 1<<7

	if got := b.Rank(5); got != 1 {
		t.Errorf("Rank(5) = %d, want 1", got)
	}
	if got := b.Rank(0); got != 0 {
		t.Errorf("Rank(0) = %d, want 0", got)
	}
	if got := b.Rank(31); got != 3 {
		t.Errorf("Rank(31) = %d, want 3", got)
	}
	if b.Len() != 3 {
		t.Errorf("Len = %d", b.Len())
	}
	if b.Full() {
		t.Error("sparse bitmap reports full")
	}

	// a saturated bitmap ranks by slot index directly
	full := ^Bitmap32(0)
	if !full.Full() {
		t.Error("full bitmap not full")
	}
	for i := range uint8(32) {
		if got := full.Rank(i); got != int(i) {
			t.Errorf("full.Rank(%d) = %d", i, got)
		}
	}
}

func TestArray32InsertGetDelete(t *testing.T) {
	t.Parallel()

	var a Array32[string]

	if _, ok := a.Get(3); ok {
		t.Error("Get on empty array succeeded")
	}

	if exists := a.InsertAt(7, "seven"); exists {
		t.Error("first insert reported exists")
	}
	a.InsertAt(3, "three")
	a.InsertAt(31, "thirty-one")

	if a.Len() != 3 {
		t.Fatalf("Len = %d", a.Len())
	}
	for slot, want := range map[uint8]string{3: "three", 7: "seven", 31: "thirty-one"} {
		got, ok := a.Get(slot)
		if !ok || got != want {
			t.Errorf("Get(%d) = %q, %v", slot, got, ok)
		}
		if a.MustGet(slot) != want {
			t.Errorf("MustGet(%d) = %q", slot, a.MustGet(slot))
		}
	}

	// overwrite keeps the length
	if exists := a.InsertAt(7, "SEVEN"); !exists {
		t.Error("overwrite insert reported new")
	}
	if a.Len() != 3 || a.MustGet(7) != "SEVEN" {
		t.Error("overwrite broken")
	}

	a.SetAt(3, "THREE")
	if a.MustGet(3) != "THREE" {
		t.Error("SetAt broken")
	}

	val, ok := a.DeleteAt(7)
	if !ok || val != "SEVEN" {
		t.Errorf("DeleteAt = %q, %v", val, ok)
	}
	if a.Len() != 2 || a.Bitmap.Test(7) {
		t.Error("delete left residue")
	}
	if _, ok := a.DeleteAt(7); ok {
		t.Error("double delete succeeded")
	}
}

func TestArray32CopyIsIndependent(t *testing.T) {
	t.Parallel()

	var a Array32[int]
	a.InsertAt(1, 10)
	a.InsertAt(2, 20)

	b := a.Copy()
	b.InsertAt(3, 30)
	b.SetAt(1, -10)

	if a.Len() != 2 {
		t.Errorf("copy insert leaked into original, Len = %d", a.Len())
	}
	if a.MustGet(1) != 10 {
		t.Error("copy SetAt leaked into original")
	}
	if b.Len() != 3 || b.MustGet(1) != -10 {
		t.Error("copy lost its own updates")
	}
}

func TestArray32AgainstMap(t *testing.T) {
	t.Parallel()

	prng := rand.New(rand.NewPCG(5, 13))

	var a Array32[int]
	ref := map[uint8]int{}

	for range 10000 {
		slot := uint8(prng.IntN(32))
		switch prng.IntN(3) {
		case 0:
			a.DeleteAt(slot)
			delete(ref, slot)
		default:
			v := prng.IntN(1 << 20)
			a.InsertAt(slot, v)
			ref[slot] = v
		}

		if a.Len() != len(ref) {
			t.Fatalf("Len = %d, ref %d", a.Len(), len(ref))
		}
	}

	for slot := range uint8(32) {
		want, inRef := ref[slot]
		got, ok := a.Get(slot)
		if ok != inRef || (ok && got != want) {
			t.Fatalf("Get(%d) = %d, %v; ref %d, %v", slot, got, ok, want, inRef)
		}
	}
}

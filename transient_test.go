package pds_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/spork-it/pds"
)

// transient bulk ingest: conj! 0..999, persist, then every further
// transient op must fail.
func TestTransientVectorBulkIngest(t *testing.T) {
	t.Parallel()

	tr := pds.EmptyVector.Transient()
	for i := range 1000 {
		if err := tr.Conj(i); err != nil {
			t.Fatalf("Conj(%d): %v", i, err)
		}
	}

	v, err := tr.Persistent()
	if err != nil {
		t.Fatal(err)
	}
	if v.Count() != 1000 {
		t.Fatalf("Count() = %d, want 1000", v.Count())
	}
	for i := range 1000 {
		if got, _ := v.Nth(i); got != i {
			t.Fatalf("Nth(%d) = %v", i, got)
		}
	}

	if err := tr.Conj(1000); !errors.Is(err, pds.ErrTransientInvalidated) {
		t.Errorf("Conj after Persistent: err = %v, want ErrTransientInvalidated", err)
	}
	if err := tr.Assoc(0, 0); !errors.Is(err, pds.ErrTransientInvalidated) {
		t.Errorf("Assoc after Persistent: err = %v", err)
	}
	if err := tr.Pop(); !errors.Is(err, pds.ErrTransientInvalidated) {
		t.Errorf("Pop after Persistent: err = %v", err)
	}
	if _, err := tr.Persistent(); !errors.Is(err, pds.ErrTransientInvalidated) {
		t.Errorf("second Persistent: err = %v", err)
	}
}

// a transient never mutates the persistent value it came from
func TestTransientIsolation(t *testing.T) {
	t.Parallel()

	src := pds.EmptyVector
	for i := range 100 {
		src = src.Conj(i)
	}

	tr := src.Transient()
	for i := range 100 {
		if err := tr.Assoc(i, -i); err != nil {
			t.Fatal(err)
		}
	}
	for i := 100; i < 300; i++ {
		if err := tr.Conj(i); err != nil {
			t.Fatal(err)
		}
	}
	for range 50 {
		if err := tr.Pop(); err != nil {
			t.Fatal(err)
		}
	}

	// src must be byte-for-byte what it was
	if src.Count() != 100 {
		t.Fatalf("source count changed: %d", src.Count())
	}
	for i := range 100 {
		if got, _ := src.Nth(i); got != i {
			t.Fatalf("source Nth(%d) = %v, transient leaked", i, got)
		}
	}
}

func TestTransientMapIsolation(t *testing.T) {
	t.Parallel()

	src := pds.EmptyMap
	for i := range 500 {
		src = src.Assoc(i, i)
	}

	tr := src.Transient()
	for i := range 500 {
		_ = tr.Assoc(i, -i)
	}
	for i := 0; i < 500; i += 2 {
		_ = tr.Dissoc(i)
	}

	out, err := tr.Persistent()
	if err != nil {
		t.Fatal(err)
	}
	if out.Count() != 250 {
		t.Fatalf("transient result count = %d, want 250", out.Count())
	}

	if src.Count() != 500 {
		t.Fatalf("source count changed: %d", src.Count())
	}
	for i := range 500 {
		if got, ok := src.Get(i); !ok || got != i {
			t.Fatalf("source Get(%d) = %v, %v — transient leaked", i, got, ok)
		}
	}
}

// persistent!(transient(p)) == p with no intervening ops
func TestTransientIdentityRoundtrip(t *testing.T) {
	t.Parallel()

	v := pds.Vec(1, 2, 3, 4, 5)
	vv, err := v.Transient().Persistent()
	if err != nil {
		t.Fatal(err)
	}
	if !pds.Equal(v, vv) {
		t.Error("vector transient identity roundtrip broke equality")
	}

	m := mustHashMap(t, "a", 1, "b", 2)
	mm, err := m.Transient().Persistent()
	if err != nil {
		t.Fatal(err)
	}
	if !pds.Equal(m, mm) {
		t.Error("map transient identity roundtrip broke equality")
	}

	s := pds.HashSet(1, 2, 3)
	ss, err := s.Transient().Persistent()
	if err != nil {
		t.Fatal(err)
	}
	if !pds.Equal(s, ss) {
		t.Error("set transient identity roundtrip broke equality")
	}
}

func TestTransientMapInvalidation(t *testing.T) {
	t.Parallel()

	tr := pds.EmptyMap.Transient()
	_ = tr.Assoc("a", 1)
	if _, err := tr.Persistent(); err != nil {
		t.Fatal(err)
	}

	if err := tr.Assoc("b", 2); !errors.Is(err, pds.ErrTransientInvalidated) {
		t.Errorf("Assoc after Persistent: err = %v", err)
	}
	if err := tr.Dissoc("a"); !errors.Is(err, pds.ErrTransientInvalidated) {
		t.Errorf("Dissoc after Persistent: err = %v", err)
	}
}

func TestTransientSetOps(t *testing.T) {
	t.Parallel()

	tr := pds.HashSet(1, 2, 3).Transient()
	_ = tr.Conj(4)
	_ = tr.Disj(1)

	s, err := tr.Persistent()
	if err != nil {
		t.Fatal(err)
	}
	if !pds.Equal(s, pds.HashSet(2, 3, 4)) {
		t.Errorf("set = %v, want #{2 3 4}", s)
	}
	if err := tr.Conj(9); !errors.Is(err, pds.ErrTransientInvalidated) {
		t.Errorf("Conj after Persistent: err = %v", err)
	}
}

// generic bang functions route by transient kind
func TestGenericTransientOps(t *testing.T) {
	t.Parallel()

	tv, err := pds.Transient(pds.Vec(1, 2))
	if err != nil {
		t.Fatal(err)
	}
	if err := pds.ConjBang(tv, 3); err != nil {
		t.Fatal(err)
	}
	if err := pds.AssocBang(tv, 0, 9); err != nil {
		t.Fatal(err)
	}
	out, err := pds.PersistentBang(tv)
	if err != nil {
		t.Fatal(err)
	}
	if !pds.Equal(out, pds.Vec(9, 2, 3)) {
		t.Errorf("generic transient pipeline = %v, want [9 2 3]", out)
	}

	tm, _ := pds.Transient(pds.EmptyMap)
	if err := pds.AssocBang(tm, "k", 1); err != nil {
		t.Fatal(err)
	}
	if err := pds.DissocBang(tm, "k"); err != nil {
		t.Fatal(err)
	}
	mOut, err := pds.PersistentBang(tm)
	if err != nil {
		t.Fatal(err)
	}
	if !pds.Equal(mOut, pds.EmptyMap) {
		t.Errorf("map pipeline = %v, want {}", mOut)
	}

	if _, err := pds.Transient("not a collection"); err == nil {
		t.Error("Transient of a string succeeded")
	}
	if err := pds.PopBang(tm); err == nil {
		t.Error("pop! on a transient map succeeded")
	}
}

// a snapshot of the persistent source taken before heavy transient
// churn sees no change even at trie boundaries
func TestTransientChurnAtBoundaries(t *testing.T) {
	t.Parallel()

	for _, size := range []int{31, 32, 33, 1024, 1056} {
		src := buildVector(t, size)

		tr := src.Transient()
		for i := range 200 {
			_ = tr.Conj(i + size)
		}
		out, err := tr.Persistent()
		if err != nil {
			t.Fatal(err)
		}

		if out.Count() != size+200 {
			t.Fatalf("size %d: out count = %d", size, out.Count())
		}
		if src.Count() != size {
			t.Fatalf("size %d: source count changed", size)
		}
		for i := range size {
			if got, _ := src.Nth(i); got != i {
				t.Fatalf("size %d: source Nth(%d) = %v", size, i, got)
			}
		}
		for i := range 200 {
			if got, _ := out.Nth(size + i); got != i+size {
				t.Fatalf("size %d: out Nth(%d) = %v", size, size+i, got)
			}
		}
	}
}

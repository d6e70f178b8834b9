package pds_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/spork-it/pds"
)

func TestDoubleVectorBasics(t *testing.T) {
	t.Parallel()

	v := pds.VecF64(1.5, 2.5, 3.5)
	if v.Count() != 3 {
		t.Fatalf("Count = %d", v.Count())
	}
	if got, _ := v.Nth(1); got != 2.5 {
		t.Errorf("Nth(1) = %v", got)
	}
	if _, err := v.Nth(3); !errors.Is(err, pds.ErrIndexOutOfRange) {
		t.Errorf("Nth(3): %v", err)
	}

	v2 := v.Conj(4.5)
	if v.Count() != 3 || v2.Count() != 4 {
		t.Error("Conj mutated the original")
	}

	v3, err := v2.Assoc(0, -1.5)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := v3.Nth(0); got != -1.5 {
		t.Errorf("Assoc result = %v", got)
	}
	if got, _ := v2.Nth(0); got != 1.5 {
		t.Error("Assoc mutated the original")
	}
}

func TestIntVectorBoundaries(t *testing.T) {
	t.Parallel()

	for _, size := range []int{31, 32, 33, 1024, 1025} {
		v := pds.EmptyIntVector
		for i := range size {
			v = v.Conj(int64(i))
		}
		if v.Count() != size {
			t.Fatalf("size %d: Count = %d", size, v.Count())
		}
		for _, i := range []int{0, 31, 32, size / 2, size - 1} {
			if i >= size {
				continue
			}
			if got, _ := v.Nth(i); got != int64(i) {
				t.Fatalf("size %d: Nth(%d) = %v", size, i, got)
			}
		}

		var err error
		v, err = v.Pop()
		if err != nil {
			t.Fatal(err)
		}
		if v.Count() != size-1 {
			t.Fatalf("size %d: Count after pop = %d", size, v.Count())
		}
	}
}

// slabs are the contiguous leaves plus the tail, zero boxing
func TestNumVectorSlabs(t *testing.T) {
	t.Parallel()

	v := pds.EmptyDoubleVector
	const n = 70
	for i := range n {
		v = v.Conj(float64(i))
	}

	var lens []int
	var flat []float64
	for slab := range v.Slabs() {
		lens = append(lens, len(slab))
		flat = append(flat, slab...)
	}

	if diff := cmp.Diff([]int{32, 32, 6}, lens); diff != "" {
		t.Errorf("slab lengths (-want +got):\n%s", diff)
	}
	for i := range n {
		if flat[i] != float64(i) {
			t.Fatalf("flat[%d] = %v", i, flat[i])
		}
	}
}

func TestNumVectorTypeMismatch(t *testing.T) {
	t.Parallel()

	if _, err := pds.EmptyDoubleVector.ConjValue("nope"); !errors.Is(err, pds.ErrTypeMismatch) {
		t.Errorf("ConjValue(string): %v", err)
	}
	if _, err := pds.EmptyIntVector.ConjValue(1.5); !errors.Is(err, pds.ErrTypeMismatch) {
		t.Errorf("ConjValue(1.5) into i64: %v", err)
	}

	// integral values cross the numeric kinds
	if _, err := pds.EmptyIntVector.ConjValue(2.0); err != nil {
		t.Errorf("ConjValue(2.0) into i64: %v", err)
	}
	if _, err := pds.EmptyDoubleVector.ConjValue(7); err != nil {
		t.Errorf("ConjValue(int) into f64: %v", err)
	}
}

func TestNumVectorEquality(t *testing.T) {
	t.Parallel()

	if !pds.Equal(pds.VecI64(1, 2, 3), pds.Vec(1, 2, 3)) {
		t.Error("i64 vector != boxed vector with same contents")
	}
	if !pds.Equal(pds.VecF64(1, 2), pds.VecI64(1, 2)) {
		t.Error("f64 vector != i64 vector with same numeric contents")
	}
	if pds.Hash(pds.VecI64(1, 2, 3)) != pds.Hash(pds.Vec(1, 2, 3)) {
		t.Error("equal vectors hash unequal across specializations")
	}
	if pds.Equal(pds.VecF64(1.5), pds.VecI64(1)) {
		t.Error("different contents compare equal")
	}
}

func TestTransientNumVector(t *testing.T) {
	t.Parallel()

	tr := pds.EmptyIntVector.Transient()
	for i := range 1000 {
		if err := tr.Conj(int64(i)); err != nil {
			t.Fatal(err)
		}
	}
	v, err := tr.Persistent()
	if err != nil {
		t.Fatal(err)
	}
	if v.Count() != 1000 {
		t.Fatalf("Count = %d", v.Count())
	}
	for _, i := range []int{0, 31, 32, 500, 999} {
		if got, _ := v.Nth(i); got != int64(i) {
			t.Fatalf("Nth(%d) = %v", i, got)
		}
	}
	if err := tr.Conj(0); !errors.Is(err, pds.ErrTransientInvalidated) {
		t.Errorf("conj after persistent: %v", err)
	}
}

func TestNumVectorGenericBridge(t *testing.T) {
	t.Parallel()

	v, err := pds.Conj(pds.EmptyDoubleVector, 1.5)
	if err != nil {
		t.Fatal(err)
	}
	got, err := pds.Nth(v, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1.5 {
		t.Errorf("Nth = %v", got)
	}

	wantElems(t, pds.VecI64(1, 2), int64(1), int64(2))
}

package pds_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/spork-it/pds"
	"github.com/spork-it/pds/internal/golden"
)

// collideKey forces every instance into the same hash bucket while
// keeping name equality, exercising the collision nodes.
type collideKey struct {
	name string
}

func (collideKey) Hash() uint32 {
	return 0xdeadbeef
}

func (k collideKey) Equal(other pds.Value) bool {
	o, ok := other.(collideKey)
	return ok && k.name == o.name
}

func mustHashMap(tb testing.TB, kvs ...pds.Value) *pds.Map {
	tb.Helper()
	m, err := pds.HashMap(kvs...)
	if err != nil {
		tb.Fatal(err)
	}
	return m
}

func TestMapBasics(t *testing.T) {
	t.Parallel()

	m := mustHashMap(t, "a", 1, "b", 2, "c", 3)

	if m.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", m.Count())
	}
	for k, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		got, ok := m.Get(k)
		if !ok || got != want {
			t.Errorf("Get(%q) = %v, %v", k, got, ok)
		}
	}
	if _, ok := m.Get("d"); ok {
		t.Error("Get of absent key reported present")
	}
	if got := m.GetOr("d", 42); got != 42 {
		t.Errorf("GetOr default = %v", got)
	}

	m2 := m.Assoc("a", 10)
	if got, _ := m2.Get("a"); got != 10 {
		t.Errorf("replaced value = %v", got)
	}
	if m2.Count() != 3 {
		t.Errorf("replace changed count: %d", m2.Count())
	}
	if got, _ := m.Get("a"); got != 1 {
		t.Error("Assoc mutated the original map")
	}

	m3 := m.Dissoc("b")
	if m3.Count() != 2 || m3.Contains("b") {
		t.Errorf("Dissoc failed: %v", m3)
	}
	if !m.Contains("b") {
		t.Error("Dissoc mutated the original map")
	}
	if m.Dissoc("nope") != m {
		t.Error("Dissoc of absent key did not return the receiver")
	}
}

func TestHashMapArity(t *testing.T) {
	t.Parallel()

	if _, err := pds.HashMap("a", 1, "b"); err == nil {
		t.Fatal("odd arity accepted")
	}
}

// HAMT insert/remove canonical equality: adding and removing a key
// yields a map equal (and hash-equal) to the untouched original.
func TestMapCanonicalEquality(t *testing.T) {
	t.Parallel()

	m0 := mustHashMap(t, "a", 1, "b", 2, "c", 3)
	m1 := m0.Assoc("d", 4).Dissoc("d")

	if !pds.Equal(m1, m0) {
		t.Fatalf("m1 != m0 after assoc/dissoc roundtrip: %v vs %v", m1, m0)
	}
	if pds.Hash(m1) != pds.Hash(m0) {
		t.Error("hash differs after assoc/dissoc roundtrip")
	}
}

func TestMapCanonicalEqualityLarge(t *testing.T) {
	t.Parallel()

	m0 := pds.EmptyMap
	for i := range 2000 {
		m0 = m0.Assoc(i, i*i)
	}

	// drive keys in and out again, in a different order
	m1 := m0
	for i := 2000; i < 2500; i++ {
		m1 = m1.Assoc(i, i)
	}
	for i := 2499; i >= 2000; i-- {
		m1 = m1.Dissoc(i)
	}

	if !pds.Equal(m1, m0) {
		t.Fatal("maps differ after churn")
	}
	if pds.Hash(m1) != pds.Hash(m0) {
		t.Error("hashes differ after churn")
	}
}

func TestMapCollisions(t *testing.T) {
	t.Parallel()

	m := pds.EmptyMap
	const n = 40
	for i := range n {
		m = m.Assoc(collideKey{name: fmt.Sprint(i)}, i)
	}

	if m.Count() != n {
		t.Fatalf("Count() = %d, want %d", m.Count(), n)
	}
	for i := range n {
		got, ok := m.Get(collideKey{name: fmt.Sprint(i)})
		if !ok || got != i {
			t.Fatalf("Get(collide %d) = %v, %v", i, got, ok)
		}
	}

	// remove half, the rest must survive
	for i := 0; i < n; i += 2 {
		m = m.Dissoc(collideKey{name: fmt.Sprint(i)})
	}
	if m.Count() != n/2 {
		t.Fatalf("Count() after dissoc = %d, want %d", m.Count(), n/2)
	}
	for i := 1; i < n; i += 2 {
		if !m.Contains(collideKey{name: fmt.Sprint(i)}) {
			t.Fatalf("collide %d lost", i)
		}
	}
	for i := 0; i < n; i += 2 {
		if m.Contains(collideKey{name: fmt.Sprint(i)}) {
			t.Fatalf("collide %d still present", i)
		}
	}
}

func TestMapNilValues(t *testing.T) {
	t.Parallel()

	m := pds.EmptyMap.Assoc("k", nil)

	v, ok := m.Get("k")
	if !ok || v != nil {
		t.Errorf("Get = %v, %v, want nil, true", v, ok)
	}
	if !m.Contains("k") {
		t.Error("nil value reported absent")
	}
	if got := m.GetOr("k", "dflt"); got != nil {
		t.Errorf("GetOr returned default for a present nil value: %v", got)
	}
}

func TestMapNumericKeyUnification(t *testing.T) {
	t.Parallel()

	m := pds.EmptyMap.Assoc(1, "one")

	if got, ok := m.Get(1.0); !ok || got != "one" {
		t.Errorf("Get(1.0) = %v, %v, want one", got, ok)
	}

	m2 := m.Assoc(1.0, "uno")
	if m2.Count() != 1 {
		t.Errorf("1 and 1.0 are distinct keys, count = %d", m2.Count())
	}
	if got, _ := m2.Get(1); got != "uno" {
		t.Errorf("Get(1) = %v, want uno", got)
	}
}

func TestMapKeywordStringDistinct(t *testing.T) {
	t.Parallel()

	m := pds.EmptyMap.
		Assoc(pds.KW("foo"), 1).
		Assoc(":foo", 2).
		Assoc("foo", 3)

	if m.Count() != 3 {
		t.Fatalf("keyword and string keys merged, count = %d", m.Count())
	}
	if got, _ := m.Get(pds.KW("foo")); got != 1 {
		t.Errorf("Get(:foo keyword) = %v", got)
	}
	if got, _ := m.Get(":foo"); got != 2 {
		t.Errorf("Get(\":foo\") = %v", got)
	}
	if got, _ := m.Get("foo"); got != 3 {
		t.Errorf("Get(\"foo\") = %v", got)
	}
}

func TestMapIterationDeterministic(t *testing.T) {
	t.Parallel()

	m := pds.EmptyMap
	for i := range 500 {
		m = m.Assoc(i, i)
	}

	var first []pds.Value
	for k := range m.Keys() {
		first = append(first, k)
	}

	for run := range 3 {
		i := 0
		for k := range m.Keys() {
			if !pds.Equal(k, first[i]) {
				t.Fatalf("run %d: iteration order differs at %d", run, i)
			}
			i++
		}
		if i != len(first) {
			t.Fatalf("run %d: yielded %d keys, want %d", run, i, len(first))
		}
	}
}

func TestMapAgainstGolden(t *testing.T) {
	t.Parallel()

	prng := rand.New(rand.NewPCG(77, 13))

	m := pds.EmptyMap
	var gold golden.Table

	// small key space forces plenty of hits, including collision keys
	key := func() pds.Value {
		k := prng.IntN(400)
		if k%5 == 0 {
			return collideKey{name: fmt.Sprint(k)}
		}
		return k
	}

	for range 6000 {
		k := key()
		switch {
		case prng.IntN(3) > 0: // assoc
			v := prng.IntN(1 << 20)
			m = m.Assoc(k, v)
			gold = gold.Assoc(k, v)
		default: // dissoc
			m = m.Dissoc(k)
			gold = gold.Dissoc(k)
		}

		if m.Count() != gold.Count() {
			t.Fatalf("count mismatch: %d vs %d", m.Count(), gold.Count())
		}
	}

	for _, item := range gold {
		got, ok := m.Get(item.Key)
		if !ok || !pds.Equal(got, item.Val) {
			t.Fatalf("Get(%v) = %v, %v, want %v", item.Key, got, ok, item.Val)
		}
	}

	// and nothing extra
	n := 0
	for range m.Keys() {
		n++
	}
	if n != gold.Count() {
		t.Fatalf("iteration yielded %d keys, want %d", n, gold.Count())
	}
}

func TestMapString(t *testing.T) {
	t.Parallel()

	if got := pds.EmptyMap.String(); got != "{}" {
		t.Errorf("String() = %q", got)
	}
	m := pds.EmptyMap.Assoc(pds.KW("a"), 1)
	if got := m.String(); got != "{:a 1}" {
		t.Errorf("String() = %q", got)
	}
}

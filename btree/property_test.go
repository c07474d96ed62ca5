package btree

import (
	"math/rand"
	"sort"
	"testing"
)

// How to run:
//   - Deterministic randomized property test:
//     go test ./btree -run TestRandomizedModel -count=1
//   - Fuzz test for this file:
//     go test ./btree -run '^$' -fuzz FuzzRandomizedModel -fuzztime=10s
//   - Replay a specific saved failing input:
//     go test ./btree -run 'FuzzRandomizedModel/<id>'

func assertTreeMatchesModel(t *testing.T, tree *Tree[int, int], model map[int]int) {
	t.Helper()
	if tree.Len() != len(model) {
		t.Fatalf("count mismatch: tree=%d model=%d", tree.Len(), len(model))
	}
	want := make([]int, 0, len(model))
	for k := range model {
		want = append(want, k)
	}
	sort.Ints(want)
	got := collectKeys(tree)
	if len(got) != len(want) {
		t.Fatalf("iteration length mismatch: got=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("iteration mismatch at %d: got=%d want=%d", i, got[i], want[i])
		}
		if v, ok := tree.Get(want[i]); !ok || v != model[want[i]] {
			t.Fatalf("value mismatch for key %d: got=%d,%v want=%d", want[i], v, ok, model[want[i]])
		}
	}
}

func runRandomModelSequence(t *testing.T, seed uint64, steps, order, keyRange int) {
	t.Helper()
	r := rand.New(rand.NewSource(int64(seed)))
	tree, err := New[int, int](order, intCmp)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	model := make(map[int]int, 64)

	for i := 0; i < steps; i++ {
		k := r.Intn(keyRange)
		switch r.Intn(6) {
		case 0, 1, 2:
			v := r.Intn(1000)
			added := tree.InsertUnique(k, v)
			_, present := model[k]
			if added == present {
				t.Fatalf("step %d: InsertUnique(%d) = %v, model disagrees", i, k, added)
			}
			if added {
				model[k] = v
			}
		case 3, 4:
			removed := tree.Remove(k)
			_, present := model[k]
			if removed != present {
				t.Fatalf("step %d: Remove(%d) = %v, model disagrees", i, k, removed)
			}
			delete(model, k)
		default:
			v, ok := tree.Get(k)
			mv, present := model[k]
			if ok != present || (ok && v != mv) {
				t.Fatalf("step %d: Get(%d) = %d,%v, model has %d,%v", i, k, v, ok, mv, present)
			}
		}
		if err := tree.Check(); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	assertTreeMatchesModel(t, tree, model)
}

func TestRandomizedModel(t *testing.T) {
	for _, order := range []int{2, 4, 8, 32} {
		for seed := uint64(1); seed <= 8; seed++ {
			runRandomModelSequence(t, seed, 600, order, 150)
		}
	}
}

func TestRandomizedModelDenseKeys(t *testing.T) {
	// A narrow key range maximizes duplicate hits and delete traffic.
	for seed := uint64(1); seed <= 4; seed++ {
		runRandomModelSequence(t, seed, 800, 4, 25)
	}
}

func FuzzRandomizedModel(f *testing.F) {
	for seed := uint64(0); seed < 4; seed++ {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, seed uint64) {
		runRandomModelSequence(t, seed, 300, 4, 60)
	})
}

func TestRandomizedBounds(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	tree := newIntTree(t, 4)
	keys := make([]int, 0, 200)
	for len(keys) < 200 {
		k := r.Intn(10000)
		if tree.InsertUnique(k, k) {
			keys = append(keys, k)
		}
	}
	sort.Ints(keys)
	for trial := 0; trial < 500; trial++ {
		probe := r.Intn(10001)
		upper := r.Intn(2) == 0
		it := tree.FindBound(probe, upper)
		idx := sort.SearchInts(keys, probe)
		if upper && idx < len(keys) && keys[idx] == probe {
			idx++
		}
		if idx == len(keys) {
			if it.Valid() {
				k, _, _ := it.Current()
				t.Fatalf("bound(%d, upper=%v) = %d, expected past-the-end", probe, upper, k)
			}
		} else {
			k, _, err := it.Current()
			if err != nil || k != keys[idx] {
				t.Fatalf("bound(%d, upper=%v) = %d (%v), expected %d", probe, upper, k, err, keys[idx])
			}
		}
		it.Release()
	}
}

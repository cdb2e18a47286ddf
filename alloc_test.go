package deque_test

import (
	"slices"
	"testing"

	"github.com/sixall/deque"
)

func TestPoolAllocator(t *testing.T) {
	pool := &deque.PoolAllocator[int]{}
	d := deque.FromSlice(ints(0, 2000), deque.WithAllocator[int](pool))
	if got := d.Allocator(); got != deque.Allocator[int](pool) {
		t.Errorf("wrong Allocator: got %T", got)
	}
	d.Delete(100, 1700)
	d.Shrink() // returns the freed chunks to the pool
	want := slices.Concat(ints(0, 100), ints(1700, 2000))
	if got := contents(d); !slices.Equal(got, want) {
		t.Errorf("wrong contents: got %d elements", len(got))
	}
	// A second deque on the same pool reuses the recycled chunks and must
	// see them zeroed.
	d2 := deque.NewWithSize(300, deque.WithAllocator[int](pool))
	for i, v := range d2.All() {
		if v != 0 {
			t.Fatalf("recycled chunk not clean: element %d is %d", i, v)
		}
	}
	if err := d2.Check(); err != nil {
		t.Fatal(err)
	}
}

func TestPoolAllocatorWidthMismatch(t *testing.T) {
	pool := &deque.PoolAllocator[int]{}
	c := pool.Alloc(64)
	c[0] = 5
	pool.Free(c)
	got := pool.Alloc(16)
	if len(got) != 16 {
		t.Fatalf("wrong width: want 16, got %d", len(got))
	}
	got = pool.Alloc(64)
	if len(got) != 64 {
		t.Fatalf("wrong width: want 64, got %d", len(got))
	}
	for i, v := range got {
		if v != 0 {
			t.Errorf("recycled chunk not zeroed at %d: %d", i, v)
		}
	}
}

func TestPushBackSteadyStateAllocs(t *testing.T) {
	// Once ghost capacity exists, oscillating at the ends allocates nothing.
	d := deque.NewFilled(256, 1)
	for range 64 {
		d.PopFront()
		d.PushBack(1)
	}
	avg := testing.AllocsPerRun(100, func() {
		for range 32 {
			d.PopFront()
			d.PushBack(1)
		}
	})
	// The occasional map rearrangement allocates a scratch slice; anything
	// more than that means ghost chunks are not being reused.
	if avg > 2 {
		t.Errorf("oscillation allocates: %v allocs per run", avg)
	}
}

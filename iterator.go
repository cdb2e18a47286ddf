package deque

import (
	"cmp"
	"iter"
)

// Iterator is a random-access cursor into a deque. It is a small value and
// is freely copyable; the navigation methods return a new Iterator rather
// than mutating the receiver.
//
// An Iterator holds the chunk map index of its position, the offset within
// the chunk, and the chunk itself, so dereferencing costs one slice index.
// Any operation that grows or shrinks the map, or that inserts or erases
// away from the iterator's end of the deque, invalidates it: rearranging
// chunk pointers shifts positions even when no element moves.
type Iterator[E any] struct {
	d     *Deque[E]
	chunk []E
	outer int
	inner int
}

// Begin returns an iterator at the first element.
func (d *Deque[E]) Begin() Iterator[E] {
	return d.iter(d.begin)
}

// End returns an iterator one past the last element. It addresses a valid
// chunk slot, so End().Prev() is always well formed on a non-empty deque,
// but its value must not be read.
func (d *Deque[E]) End() Iterator[E] {
	return d.iter(d.end)
}

func (d *Deque[E]) iter(c cursor) Iterator[E] {
	return Iterator[E]{d: d, chunk: d.m[c.outer], outer: c.outer, inner: c.inner}
}

// refetch rebinds the cached chunk after outer moved. Off the end of the
// map, or on an unallocated slot, the chunk becomes nil and dereferencing
// panics.
func (it Iterator[E]) refetch() Iterator[E] {
	if it.outer >= 0 && it.outer < len(it.d.m) {
		it.chunk = it.d.m[it.outer]
	} else {
		it.chunk = nil
	}
	return it
}

// Value returns the element the iterator addresses.
func (it Iterator[E]) Value() E {
	return it.chunk[it.inner]
}

// SetValue replaces the element the iterator addresses.
func (it Iterator[E]) SetValue(v E) {
	it.chunk[it.inner] = v
}

// Next returns the iterator advanced by one position.
func (it Iterator[E]) Next() Iterator[E] {
	it.inner++
	if it.inner == it.d.width {
		it.outer++
		it.inner = 0
		return it.refetch()
	}
	return it
}

// Prev returns the iterator moved back by one position.
func (it Iterator[E]) Prev() Iterator[E] {
	if it.inner == 0 {
		it.outer--
		it.inner = it.d.width - 1
		return it.refetch()
	}
	it.inner--
	return it
}

// Add returns the iterator advanced by k positions, which may be negative.
func (it Iterator[E]) Add(k int) Iterator[E] {
	q, r := floorDiv(it.inner+k, it.d.width)
	it.outer += q
	it.inner = r
	return it.refetch()
}

// Sub returns the number of positions from other to it. Both iterators must
// address the same deque.
func (it Iterator[E]) Sub(other Iterator[E]) int {
	return (it.outer-other.outer)*it.d.width + it.inner - other.inner
}

// Compare orders two iterators into the same deque by position.
func (it Iterator[E]) Compare(other Iterator[E]) int {
	if c := cmp.Compare(it.outer, other.outer); c != 0 {
		return c
	}
	return cmp.Compare(it.inner, other.inner)
}

// All returns an iterator over index-element pairs in order, in the manner
// of slices.All. The deque must not be modified during iteration.
func (d *Deque[E]) All() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		i := 0
		for c := d.begin; c != d.end; {
			if c.inner == d.width {
				c = cursor{c.outer + 1, 0}
				continue
			}
			if !yield(i, d.m[c.outer][c.inner]) {
				return
			}
			i++
			c.inner++
		}
	}
}

// Values returns an iterator over the elements in order, in the manner of
// slices.Values. The deque must not be modified during iteration.
func (d *Deque[E]) Values() iter.Seq[E] {
	return func(yield func(E) bool) {
		for c := d.begin; c != d.end; {
			if c.inner == d.width {
				c = cursor{c.outer + 1, 0}
				continue
			}
			if !yield(d.m[c.outer][c.inner]) {
				return
			}
			c.inner++
		}
	}
}

// Backward returns an iterator over index-element pairs from back to front,
// in the manner of slices.Backward. The deque must not be modified during
// iteration.
func (d *Deque[E]) Backward() iter.Seq2[int, E] {
	return func(yield func(int, E) bool) {
		i := d.Len() - 1
		for c := d.end; c != d.begin; {
			if c.inner == 0 {
				c = cursor{c.outer - 1, d.width}
				continue
			}
			c.inner--
			if !yield(i, d.m[c.outer][c.inner]) {
				return
			}
			i--
		}
	}
}

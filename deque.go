// Package deque provides a chunked double-ended queue.
//
// A Deque stores its elements in fixed-size contiguous chunks indexed by a
// central map of chunk slices. Pushing and popping at either end is amortized
// constant time, indexing is constant time, and inserting or deleting in the
// middle shifts whichever side is shorter. Chunks vacated by pops are kept
// allocated as ghost capacity so that oscillating workloads do not thrash the
// allocator.
package deque

import (
	"fmt"
	"iter"
)

// chunkPadding is the number of spare map slots a freshly constructed deque
// gets around its active chunks, half on each side, so it can grow a chunk at
// either end without touching the map.
const chunkPadding = 4

// cursor is a position in the chunk map: the chunk's index and the offset
// within it.
type cursor struct {
	outer int
	inner int
}

// Deque is a chunked double-ended queue.
//
// To create a Deque, use one of the constructors: New, NewWithSize,
// NewFilled, FromSlice, Of, or Collect. The zero value of Deque is not
// usable.
//
// A Deque is not safe for concurrent use. Distinct Deques are independent.
type Deque[E any] struct {
	// m is the chunk map. Slots in [beginChunk, endChunk) hold allocated
	// chunks of exactly width slots; every other slot is nil.
	m [][]E
	// beginChunk and endChunk delimit the allocated chunks.
	beginChunk int
	endChunk   int
	// begin is the position of the first element.
	begin cursor
	// end is the position one past the last element. It always lands on an
	// allocated chunk, even when the deque is empty.
	end cursor
	// width is the number of element slots per chunk.
	width int
	// alloc provisions and recycles chunk storage.
	alloc Allocator[E]
}

// Option configures a constructed Deque.
type Option[E any] func(*Deque[E])

// WithAllocator makes the deque provision its chunks through a.
func WithAllocator[E any](a Allocator[E]) Option[E] {
	return func(d *Deque[E]) { d.alloc = a }
}

// New creates an empty deque.
func New[E any](opts ...Option[E]) *Deque[E] {
	return newDeque(0, nil, opts)
}

// NewWithSize creates a deque of n zero-valued elements.
func NewWithSize[E any](n int, opts ...Option[E]) *Deque[E] {
	if n < 0 {
		panic(fmt.Sprintf("deque: negative size %d", n))
	}
	return newDeque(n, nil, opts)
}

// NewFilled creates a deque of n copies of v.
func NewFilled[E any](n int, v E, opts ...Option[E]) *Deque[E] {
	if n < 0 {
		panic(fmt.Sprintf("deque: negative size %d", n))
	}
	fill := func(c []E) {
		for i := range c {
			c[i] = v
		}
	}
	return newDeque(n, fill, opts)
}

// FromSlice creates a deque holding a copy of the elements of s. The slice's
// memory is not shared.
func FromSlice[E any](s []E, opts ...Option[E]) *Deque[E] {
	i := 0
	return newDeque(len(s), func(c []E) { i += copy(c, s[i:]) }, opts)
}

// Of creates a deque of the given elements.
func Of[E any](vs ...E) *Deque[E] {
	return FromSlice(vs)
}

// Collect creates a deque from the values of seq, in the manner of
// slices.Collect.
func Collect[E any](seq iter.Seq[E], opts ...Option[E]) *Deque[E] {
	d := New(opts...)
	for v := range seq {
		d.PushBack(v)
	}
	return d
}

// newDeque lays out a map sized for n elements, places the active chunks at
// its center, and fills them chunk by chunk through fill.
func newDeque[E any](n int, fill func([]E), opts []Option[E]) *Deque[E] {
	d := &Deque[E]{width: chunkWidthOf[E](), alloc: heapAllocator[E]{}}
	for _, o := range opts {
		o(d)
	}
	w := d.width
	d.m = make([][]E, chunkPadding+(n+w)/w)
	d.beginChunk = chunkPadding / 2
	d.endChunk = d.beginChunk
	// n+1 slots are provisioned so the end cursor lands on an allocated
	// chunk.
	for remain := n + 1; remain > 0; d.endChunk++ {
		c := d.alloc.Alloc(w)
		d.m[d.endChunk] = c
		if k := min(w, remain-1); fill != nil && k > 0 {
			fill(c[:k])
		}
		remain -= min(w, remain)
	}
	d.begin = cursor{d.beginChunk, 0}
	d.end = d.advance(d.begin, n)
	return d
}

// Allocator returns the allocator the deque provisions chunks through.
func (d *Deque[E]) Allocator() Allocator[E] { return d.alloc }

// Len returns the number of elements in the deque.
func (d *Deque[E]) Len() int {
	return d.distance(d.begin, d.end)
}

// Empty reports whether the deque has no elements.
func (d *Deque[E]) Empty() bool {
	return d.begin == d.end
}

// At returns the element at index i. It panics if i is out of range.
func (d *Deque[E]) At(i int) E {
	d.checkBounds(i)
	c := d.advance(d.begin, i)
	return d.m[c.outer][c.inner]
}

// Set replaces the element at index i with v. It panics if i is out of
// range.
func (d *Deque[E]) Set(i int, v E) {
	d.checkBounds(i)
	c := d.advance(d.begin, i)
	d.m[c.outer][c.inner] = v
}

// Front returns the first element. It panics if the deque is empty.
func (d *Deque[E]) Front() E {
	if d.Empty() {
		panic("deque: Front on empty deque")
	}
	return d.m[d.begin.outer][d.begin.inner]
}

// Back returns the last element. It panics if the deque is empty.
func (d *Deque[E]) Back() E {
	if d.Empty() {
		panic("deque: Back on empty deque")
	}
	c := d.advance(d.end, -1)
	return d.m[c.outer][c.inner]
}

// PushBack appends v to the end of the deque.
func (d *Deque[E]) PushBack(v E) {
	d.m[d.end.outer][d.end.inner] = v
	d.end.inner++
	if d.end.inner == d.width {
		d.nextEndChunk()
	}
}

// nextEndChunk steps the end cursor into the next chunk, allocating it or
// making room in the map as needed. The end cursor's chunk is full when this
// is called.
func (d *Deque[E]) nextEndChunk() {
	if d.end.outer+1 == len(d.m) {
		// makeRoomEnd recomputes the cursors; end lands at the start of
		// the next chunk, which it guarantees is allocated.
		d.makeRoomEnd(1)
		return
	}
	next := d.end.outer + 1
	if d.m[next] == nil {
		d.m[next] = d.alloc.Alloc(d.width)
		d.endChunk = next + 1
	}
	d.end = cursor{next, 0}
}

// PushFront prepends v to the beginning of the deque.
func (d *Deque[E]) PushFront(v E) {
	if d.begin.inner == 0 {
		d.prevBeginChunk()
	} else {
		d.begin.inner--
	}
	d.m[d.begin.outer][d.begin.inner] = v
}

// prevBeginChunk steps the begin cursor to the last slot of the previous
// chunk, allocating it or making room in the map as needed.
func (d *Deque[E]) prevBeginChunk() {
	if d.begin.outer == 0 {
		d.makeRoomBegin(1)
	}
	prev := d.begin.outer - 1
	if d.m[prev] == nil {
		d.m[prev] = d.alloc.Alloc(d.width)
		d.beginChunk = prev
	}
	d.begin = cursor{prev, d.width - 1}
}

// PopBack removes and returns the last element. The vacated slot is zeroed
// so the element's references are released. It panics if the deque is empty.
// The chunk the element occupied stays allocated as ghost capacity.
func (d *Deque[E]) PopBack() E {
	if d.Empty() {
		panic("deque: PopBack on empty deque")
	}
	if d.end.inner == 0 {
		d.end = cursor{d.end.outer - 1, d.width}
	}
	d.end.inner--
	c := d.m[d.end.outer]
	v := c[d.end.inner]
	var zero E
	c[d.end.inner] = zero
	return v
}

// PopFront removes and returns the first element. The vacated slot is zeroed
// so the element's references are released. It panics if the deque is empty.
// The chunk the element occupied stays allocated as ghost capacity.
func (d *Deque[E]) PopFront() E {
	if d.Empty() {
		panic("deque: PopFront on empty deque")
	}
	c := d.m[d.begin.outer]
	v := c[d.begin.inner]
	var zero E
	c[d.begin.inner] = zero
	d.begin.inner++
	if d.begin.inner == d.width {
		d.begin = cursor{d.begin.outer + 1, 0}
	}
	return v
}

// Resize changes the deque to hold n elements. Growth appends zero-valued
// elements; shrinking deletes from the end.
func (d *Deque[E]) Resize(n int) {
	switch k := d.Len(); {
	case n < 0:
		panic(fmt.Sprintf("deque: negative size %d", n))
	case n < k:
		d.Delete(n, k)
	case n > k:
		// Slots past the end are already zero, so the opened gap needs no
		// fill.
		d.shiftEnd(k, n-k)
	}
}

// ResizeWith changes the deque to hold n elements. Growth appends copies of
// v; shrinking deletes from the end.
func (d *Deque[E]) ResizeWith(n int, v E) {
	switch k := d.Len(); {
	case n < 0:
		panic(fmt.Sprintf("deque: negative size %d", n))
	case n < k:
		d.Delete(n, k)
	case n > k:
		gap := d.shiftEnd(k, n-k)
		d.fillValue(gap, n-k, v)
	}
}

// Assign replaces the deque's contents with the given elements.
func (d *Deque[E]) Assign(vs ...E) {
	d.Clear()
	d.Insert(0, vs...)
}

// AssignN replaces the deque's contents with n copies of v.
func (d *Deque[E]) AssignN(n int, v E) {
	d.Clear()
	d.InsertN(0, n, v)
}

// AssignSeq replaces the deque's contents with the values of seq.
func (d *Deque[E]) AssignSeq(seq iter.Seq[E]) {
	d.Clear()
	d.InsertSeq(0, seq)
}

// Swap exchanges the contents of d and other in constant time.
func (d *Deque[E]) Swap(other *Deque[E]) {
	*d, *other = *other, *d
}

// Clone returns a deque with the same contents and the same chunk layout as
// d, with freshly allocated chunks. Options apply to the clone, so a
// different allocator may be supplied.
func (d *Deque[E]) Clone(opts ...Option[E]) *Deque[E] {
	c := &Deque[E]{
		m:          make([][]E, len(d.m)),
		beginChunk: d.beginChunk,
		endChunk:   d.endChunk,
		begin:      d.begin,
		end:        d.end,
		width:      d.width,
		alloc:      d.alloc,
	}
	for _, o := range opts {
		o(c)
	}
	for i := c.beginChunk; i < c.endChunk; i++ {
		c.m[i] = c.alloc.Alloc(c.width)
	}
	copySpan(c, c.begin, d, d.begin, d.end)
	return c
}

// CopyFrom replaces the deque's contents with a copy of src. When the
// currently allocated chunks can hold src's elements plus the end slot, they
// are reused in place; otherwise the deque takes over a fresh clone.
func (d *Deque[E]) CopyFrom(src *Deque[E]) {
	if d == src {
		return
	}
	n := src.Len()
	total := (d.endChunk - d.beginChunk) * d.width
	if total >= n+1 {
		d.zeroRange(d.begin, d.end)
		d.begin = d.advance(cursor{d.beginChunk, 0}, (total-n-1)/2)
		d.end = d.advance(d.begin, n)
		copySpan(d, d.begin, src, src.begin, src.end)
		return
	}
	d.Swap(src.Clone(WithAllocator(d.alloc)))
}

// advance returns c moved by k slots, which may be negative. The offset
// within the chunk is reduced with flooring division, so the result is
// normalized even when c.inner sits on a chunk boundary.
func (d *Deque[E]) advance(c cursor, k int) cursor {
	q, r := floorDiv(c.inner+k, d.width)
	return cursor{c.outer + q, r}
}

// distance returns the number of slots from a to b.
func (d *Deque[E]) distance(a, b cursor) int {
	return (b.outer-a.outer)*d.width + b.inner - a.inner
}

// floorDiv divides a by b rounding toward negative infinity, returning the
// quotient and a non-negative remainder.
func floorDiv(a, b int) (q, r int) {
	q, r = a/b, a%b
	if r < 0 {
		q--
		r += b
	}
	return q, r
}

func (d *Deque[E]) checkBounds(i int) {
	if i < 0 || i >= d.Len() {
		panic(fmt.Sprintf("deque: index %d out of range with length %d", i, d.Len()))
	}
}

func (d *Deque[E]) checkInsert(i int) {
	if i < 0 || i > d.Len() {
		panic(fmt.Sprintf("deque: insert index %d out of range with length %d", i, d.Len()))
	}
}

func (d *Deque[E]) checkRange(i, j int) {
	if i < 0 || j < i || j > d.Len() {
		panic(fmt.Sprintf("deque: range [%d, %d) out of range with length %d", i, j, d.Len()))
	}
}

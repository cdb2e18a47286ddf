package deque

import "unsafe"

// chunkWidthOf returns the number of element slots per chunk for E: the
// smallest power of two no less than 16 such that a chunk spans at least 512
// bytes. Zero-size elements get a fixed width.
func chunkWidthOf[E any]() int {
	var zero E
	size := unsafe.Sizeof(zero)
	if size == 0 {
		return 512
	}
	w := uintptr(16)
	for w*size < 512 {
		w *= 2
	}
	return int(w)
}

// makeRoomEnd guarantees k allocated chunks immediately after the chunk the
// end cursor is in, repositioning the active chunks at the map's center.
func (d *Deque[E]) makeRoomEnd(k int) {
	d.room(k, false)
}

// makeRoomBegin guarantees k allocated chunks immediately before the chunk
// the begin cursor is in, repositioning the active chunks at the map's
// center.
func (d *Deque[E]) makeRoomBegin(k int) {
	d.room(k, true)
}

// room recenters the chunks that hold elements and provisions k chunks on
// the demand side, reusing ghost chunks before allocating new ones. When the
// used chunks plus the demand would still occupy no more than a third of the
// map, the pointers are rearranged within it; otherwise a new map of three
// times the active size replaces it. Leftover ghost chunks are split evenly
// between the two sides. No element moves; element positions relative to the
// begin cursor are unchanged, so only the cursors' outer indices shift.
func (d *Deque[E]) room(k int, front bool) {
	n := d.distance(d.begin, d.end)
	bic, eic := d.begin.outer, d.end.outer+1
	used := eic - bic
	active := used + k

	// Pull the ghost chunks out of the map; they are interchangeable and get
	// redistributed below.
	ghosts := make([][]E, 0, (bic-d.beginChunk)+(d.endChunk-eic))
	for i := d.beginChunk; i < bic; i++ {
		ghosts = append(ghosts, d.m[i])
		d.m[i] = nil
	}
	for i := eic; i < d.endChunk; i++ {
		ghosts = append(ghosts, d.m[i])
		d.m[i] = nil
	}

	m := d.m
	same := active <= len(d.m)/3
	if !same {
		m = make([][]E, 3*active)
	}
	newBIC := (len(m) - active) / 2
	if front {
		newBIC += k
	}
	copy(m[newBIC:newBIC+used], d.m[bic:eic])
	if same {
		for i := bic; i < eic; i++ {
			if i < newBIC || i >= newBIC+used {
				m[i] = nil
			}
		}
	}

	take := func() []E {
		if len(ghosts) == 0 {
			return d.alloc.Alloc(d.width)
		}
		c := ghosts[len(ghosts)-1]
		ghosts = ghosts[:len(ghosts)-1]
		return c
	}
	lo, hi := newBIC, newBIC+used
	if front {
		for range k {
			lo--
			m[lo] = take()
		}
	} else {
		for range k {
			m[hi] = take()
			hi++
		}
	}
	gf := len(ghosts) / 2
	for _, c := range ghosts[:gf] {
		lo--
		m[lo] = c
	}
	for _, c := range ghosts[gf:] {
		m[hi] = c
		hi++
	}

	d.m = m
	d.beginChunk, d.endChunk = lo, hi
	d.begin = cursor{newBIC, d.begin.inner}
	d.end = d.advance(d.begin, n)
}

// Shrink releases unused capacity: elements are slid to the start of their
// first chunk when that frees a chunk's worth of slack, ghost chunks are
// returned to the allocator, and the map is reallocated to the minimum size
// that holds the surviving chunks. It does nothing when there is less than a
// chunk of slack and either the used chunks fill the whole map or they span
// no more than chunkPadding chunks; in the latter case a small deque keeps
// its ghost chunks and map slots. Calling Shrink a second time has no further
// effect.
func (d *Deque[E]) Shrink() {
	w := d.width
	bic := d.begin.outer
	eic := d.end.outer + 1
	n := d.Len()
	needed := n + 1
	total := len(d.m) * w
	occupied := (eic - bic) * w
	if needed+w > occupied && (occupied == total || occupied <= chunkPadding*w) {
		return
	}
	if needed+w <= occupied {
		// Compacting to the chunk boundary frees exactly one trailing chunk.
		amt := min(d.begin.inner, n)
		newBegin := cursor{bic, 0}
		oldEnd := d.end
		d.moveForward(d.begin, d.end, newBegin)
		d.begin = newBegin
		d.end = d.advance(newBegin, n)
		d.zeroRange(d.advance(oldEnd, -amt), oldEnd)
		eic--
	}
	for i := d.beginChunk; i < bic; i++ {
		d.alloc.Free(d.m[i])
		d.m[i] = nil
	}
	for i := eic; i < d.endChunk; i++ {
		d.alloc.Free(d.m[i])
		d.m[i] = nil
	}
	m := make([][]E, (needed+w-1)/w)
	copy(m, d.m[bic:eic])
	d.m = m
	d.beginChunk = 0
	d.endChunk = eic - bic
	d.begin = cursor{0, d.begin.inner}
	d.end = d.advance(d.begin, n)
}

// moveForward copies the elements in [first, last) to the region beginning
// at dst, which must precede first, front to back. It returns the cursor one
// past the last slot written.
func (d *Deque[E]) moveForward(first, last, dst cursor) cursor {
	n := d.distance(first, last)
	for n > 0 {
		if first.inner == d.width {
			first = cursor{first.outer + 1, 0}
		}
		if dst.inner == d.width {
			dst = cursor{dst.outer + 1, 0}
		}
		k := min(d.width-first.inner, d.width-dst.inner, n)
		copy(d.m[dst.outer][dst.inner:dst.inner+k], d.m[first.outer][first.inner:first.inner+k])
		first.inner += k
		dst.inner += k
		n -= k
	}
	return d.advance(dst, 0)
}

// moveBackward copies the elements in [first, last) to the region ending at
// dlast, which must follow last, back to front. It returns the cursor of the
// first slot written.
func (d *Deque[E]) moveBackward(first, last, dlast cursor) cursor {
	n := d.distance(first, last)
	for n > 0 {
		if last.inner == 0 {
			last = cursor{last.outer - 1, d.width}
		}
		if dlast.inner == 0 {
			dlast = cursor{dlast.outer - 1, d.width}
		}
		k := min(last.inner, dlast.inner, n)
		copy(d.m[dlast.outer][dlast.inner-k:dlast.inner], d.m[last.outer][last.inner-k:last.inner])
		last.inner -= k
		dlast.inner -= k
		n -= k
	}
	return dlast
}

// copySpan copies the elements of src in [first, last) into dst beginning at
// dc. The deques must not alias unless the regions are disjoint.
func copySpan[E any](dst *Deque[E], dc cursor, src *Deque[E], first, last cursor) {
	n := src.distance(first, last)
	for n > 0 {
		if first.inner == src.width {
			first = cursor{first.outer + 1, 0}
		}
		if dc.inner == dst.width {
			dc = cursor{dc.outer + 1, 0}
		}
		k := min(src.width-first.inner, dst.width-dc.inner, n)
		copy(dst.m[dc.outer][dc.inner:dc.inner+k], src.m[first.outer][first.inner:first.inner+k])
		first.inner += k
		dc.inner += k
		n -= k
	}
}

// zeroRange resets the slots in [first, last) to the zero value, releasing
// any references they hold.
func (d *Deque[E]) zeroRange(first, last cursor) {
	n := d.distance(first, last)
	for n > 0 {
		if first.inner == d.width {
			first = cursor{first.outer + 1, 0}
		}
		k := min(d.width-first.inner, n)
		clear(d.m[first.outer][first.inner : first.inner+k])
		first.inner += k
		n -= k
	}
}

// fillValue writes n copies of v starting at c.
func (d *Deque[E]) fillValue(c cursor, n int, v E) {
	for n > 0 {
		if c.inner == d.width {
			c = cursor{c.outer + 1, 0}
		}
		k := min(d.width-c.inner, n)
		s := d.m[c.outer][c.inner : c.inner+k]
		for i := range s {
			s[i] = v
		}
		c.inner += k
		n -= k
	}
}

// fillRange writes the elements of vs starting at c.
func (d *Deque[E]) fillRange(c cursor, vs []E) {
	for len(vs) > 0 {
		if c.inner == d.width {
			c = cursor{c.outer + 1, 0}
		}
		k := copy(d.m[c.outer][c.inner:], vs)
		vs = vs[k:]
		c.inner += k
	}
}

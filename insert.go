package deque

import "iter"

// Insert inserts the given elements before index i, so that the first of
// them ends up at index i. Inserting at 0 or at Len() is equivalent to
// pushing at the corresponding end. It panics if i is out of range.
//
// The side of the deque with fewer elements shifts to open the gap, so an
// interior insert costs time proportional to the lesser of i and Len()-i,
// plus the number of inserted elements.
func (d *Deque[E]) Insert(i int, vs ...E) {
	d.checkInsert(i)
	switch len(vs) {
	case 0:
	case 1:
		d.insertOne(i, vs[0])
	default:
		d.fillRange(d.gap(i, len(vs)), vs)
	}
}

// InsertN inserts n copies of v before index i. It panics if i is out of
// range or n is negative.
func (d *Deque[E]) InsertN(i, n int, v E) {
	d.checkInsert(i)
	switch {
	case n < 0:
		panic("deque: negative insert count")
	case n == 0:
	case n == 1:
		d.insertOne(i, v)
	default:
		d.fillValue(d.gap(i, n), n, v)
	}
}

// InsertSeq inserts the values of seq before index i. The sequence is
// single-pass: it is buffered into a temporary deque first, then spliced in.
// It panics if i is out of range.
func (d *Deque[E]) InsertSeq(i int, seq iter.Seq[E]) {
	d.checkInsert(i)
	tmp := New(WithAllocator(d.alloc))
	for v := range seq {
		tmp.PushBack(v)
	}
	if tmp.Len() == 0 {
		return
	}
	copySpan(d, d.gap(i, tmp.Len()), tmp, tmp.begin, tmp.end)
}

// insertOne inserts a single element, delegating to the push operations at
// the endpoints.
func (d *Deque[E]) insertOne(i int, v E) {
	switch i {
	case 0:
		d.PushFront(v)
	case d.Len():
		d.PushBack(v)
	default:
		c := d.gap(i, 1)
		d.m[c.outer][c.inner] = v
	}
}

// gap opens amount unoccupied slots before index i and returns the cursor of
// the first one, shifting whichever side of the deque is shorter. Every gap
// slot must be overwritten by the caller; the slots may hold stale copies of
// shifted elements.
func (d *Deque[E]) gap(i, amount int) cursor {
	if 2*i <= d.Len() {
		return d.shiftBegin(i, amount)
	}
	return d.shiftEnd(i, amount)
}

// shiftBegin opens a gap of amount slots ending where index i was by moving
// the first i elements left. Missing chunks in front are allocated; if the
// map itself lacks space, room is made first.
func (d *Deque[E]) shiftBegin(i, amount int) cursor {
	// remain is the number of slots before begin in the whole map.
	remain := d.begin.outer*d.width + d.begin.inner
	if remain < amount {
		// The chunk index the new begin falls in, relative to the map start;
		// negative, found with flooring division.
		q, _ := floorDiv(remain-amount, d.width)
		d.makeRoomBegin(d.begin.outer - q)
	} else {
		fs := d.advance(d.begin, -amount).outer
		for c := fs; c < d.beginChunk; c++ {
			d.m[c] = d.alloc.Alloc(d.width)
		}
		if fs < d.beginChunk {
			d.beginChunk = fs
		}
	}
	pos := d.advance(d.begin, i)
	newBegin := d.advance(d.begin, -amount)
	if i > 0 {
		d.moveForward(d.begin, pos, newBegin)
	}
	d.begin = newBegin
	return d.advance(newBegin, i)
}

// shiftEnd opens a gap of amount slots starting at index i by moving the
// elements from i onward right. Missing chunks behind are allocated; if the
// map itself lacks space, room is made first. The end cursor still lands on
// an allocated chunk afterward.
func (d *Deque[E]) shiftEnd(i, amount int) cursor {
	w := d.width
	// remain is the number of slots from end to the end of the whole map.
	remain := (len(d.m)-d.end.outer)*w - d.end.inner
	if remain <= amount {
		endSlot := d.end.outer*w + d.end.inner + amount
		d.makeRoomEnd(endSlot/w + 1 - (d.end.outer + 1))
	} else {
		fe := d.advance(d.end, amount).outer + 1
		for c := d.endChunk; c < fe; c++ {
			d.m[c] = d.alloc.Alloc(w)
		}
		if fe > d.endChunk {
			d.endChunk = fe
		}
	}
	pos := d.advance(d.begin, i)
	newEnd := d.advance(d.end, amount)
	if d.distance(pos, d.end) > 0 {
		d.moveBackward(pos, d.end, newEnd)
	}
	d.end = newEnd
	return pos
}

package deque

import "fmt"

// Check validates the deque's structural invariants. Tests call it after
// every operation under scrutiny.
func (d *Deque[E]) Check() error {
	if d.width < 16 {
		return fmt.Errorf("bad chunk width %d", d.width)
	}
	if !(0 <= d.beginChunk && d.beginChunk <= d.endChunk && d.endChunk <= len(d.m)) {
		return fmt.Errorf("chunk range [%d, %d) outside map of %d", d.beginChunk, d.endChunk, len(d.m))
	}
	for i, c := range d.m {
		in := i >= d.beginChunk && i < d.endChunk
		switch {
		case in && c == nil:
			return fmt.Errorf("chunk %d in active range is nil", i)
		case in && len(c) != d.width:
			return fmt.Errorf("chunk %d has %d slots, want %d", i, len(c), d.width)
		case !in && c != nil:
			return fmt.Errorf("chunk %d outside active range is allocated", i)
		}
	}
	if !(d.beginChunk <= d.begin.outer && d.begin.outer < d.endChunk) {
		return fmt.Errorf("begin chunk %d outside active range [%d, %d)", d.begin.outer, d.beginChunk, d.endChunk)
	}
	if !(d.beginChunk <= d.end.outer && d.end.outer < d.endChunk) {
		return fmt.Errorf("end chunk %d outside active range [%d, %d)", d.end.outer, d.beginChunk, d.endChunk)
	}
	if d.begin.inner < 0 || d.begin.inner >= d.width {
		return fmt.Errorf("begin offset %d outside chunk of %d", d.begin.inner, d.width)
	}
	if d.end.inner < 0 || d.end.inner >= d.width {
		return fmt.Errorf("end offset %d outside chunk of %d", d.end.inner, d.width)
	}
	if d.distance(d.begin, d.end) < 0 {
		return fmt.Errorf("end precedes begin")
	}
	return nil
}

// UnusedSlotsClean reports whether every slot outside the live element range
// holds the zero value, so popped and erased elements do not pin memory.
func (d *Deque[E]) UnusedSlotsClean(isZero func(E) bool) bool {
	for i := d.beginChunk; i < d.endChunk; i++ {
		for j, v := range d.m[i] {
			c := cursor{i, j}
			live := d.distance(d.begin, c) >= 0 && d.distance(c, d.end) > 0
			if !live && !isZero(v) {
				return false
			}
		}
	}
	return true
}

// MapLen returns the size of the chunk map.
func (d *Deque[E]) MapLen() int { return len(d.m) }

// ActiveChunks returns the number of allocated chunks.
func (d *Deque[E]) ActiveChunks() int { return d.endChunk - d.beginChunk }

// UsedChunks returns the number of chunks the live elements and the end
// cursor touch.
func (d *Deque[E]) UsedChunks() int { return d.end.outer + 1 - d.begin.outer }

// ChunkWidth returns the number of element slots per chunk.
func (d *Deque[E]) ChunkWidth() int { return d.width }

// FrontGhostCapacity returns the number of free slots before the first
// element within the allocated chunks.
func (d *Deque[E]) FrontGhostCapacity() int {
	return d.distance(cursor{d.beginChunk, 0}, d.begin)
}

// BackGhostCapacity returns the number of free slots after the end cursor
// within the allocated chunks.
func (d *Deque[E]) BackGhostCapacity() int {
	return d.distance(d.end, cursor{d.endChunk, 0})
}

// ChunkWidthOf exposes the chunk width policy.
func ChunkWidthOf[E any]() int { return chunkWidthOf[E]() }

package deque

import "sync"

// Allocator provisions chunk storage for a deque. Every chunk a deque
// acquires or releases passes through its allocator, so an Allocator can
// recycle chunk memory across operations or across deques.
//
// Alloc must return a slice of exactly width slots, all zero. Free receives
// chunks the deque no longer needs; implementations may retain them.
type Allocator[E any] interface {
	Alloc(width int) []E
	Free(chunk []E)
}

// heapAllocator is the default allocator: plain make, with frees left to the
// garbage collector.
type heapAllocator[E any] struct{}

func (heapAllocator[E]) Alloc(width int) []E { return make([]E, width) }

func (heapAllocator[E]) Free([]E) {}

// PoolAllocator recycles chunks through a [sync.Pool]. It is safe for use by
// several deques at once, including concurrently; the deques sharing it
// remain individually single-threaded.
type PoolAllocator[E any] struct {
	pool sync.Pool
}

// Alloc takes one chunk from the pool and returns it if it has the right
// width. Otherwise it returns a fresh chunk; a pooled chunk of another width
// is dropped.
func (p *PoolAllocator[E]) Alloc(width int) []E {
	if c, ok := p.pool.Get().(*[]E); ok && len(*c) == width {
		return *c
	}
	return make([]E, width)
}

// Free zeroes the chunk and returns it to the pool.
func (p *PoolAllocator[E]) Free(chunk []E) {
	clear(chunk)
	p.pool.Put(&chunk)
}

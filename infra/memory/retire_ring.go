package memory

import "sync"

// RetireRing buffers orders unlinked from the venue books until the
// epoch job can prove no market-data reader still observes them.
// Every venue book is a producer under its own lock; the epoch job is
// the single consumer. FIFO order keeps retire epochs roughly
// non-decreasing, which is what lets reclamation stop at the first
// unsafe entry.
type RetireRing struct {
	mu   sync.Mutex
	head uint64
	tail uint64
	buf  []any
	mask uint64
}

// NewRetireRing sizes the buffer for the retire backlog between two
// epoch advances. A full ring drops the order to the GC rather than
// blocking a matching path.
func NewRetireRing(size uint64) *RetireRing {
	if size&(size-1) != 0 {
		panic("RetireRing size must be power of two")
	}
	return &RetireRing{
		buf:  make([]any, size),
		mask: size - 1,
	}
}

func (r *RetireRing) Enqueue(v any) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.head-r.tail == uint64(len(r.buf)) {
		return false
	}
	r.buf[r.head&r.mask] = v
	r.head++
	return true
}

func (r *RetireRing) Dequeue() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tail == r.head {
		return nil
	}
	v := r.buf[r.tail&r.mask]
	r.buf[r.tail&r.mask] = nil
	r.tail++
	return v
}

// Len reports the retired-but-unreclaimed backlog.
func (r *RetireRing) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.head - r.tail)
}

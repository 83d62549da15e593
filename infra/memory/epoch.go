package memory

import "sync/atomic"

// GlobalEpoch monotonically increases.
var GlobalEpoch atomic.Uint64

const inactive = ^uint64(0)

// ReaderEpoch marks when a reader entered a read section. Depth and
// snapshot readers hold one while walking the book.
type ReaderEpoch struct {
	epoch atomic.Uint64
}

func NewReaderEpoch() *ReaderEpoch {
	r := &ReaderEpoch{}
	r.epoch.Store(inactive)
	return r
}

func (r *ReaderEpoch) Enter() {
	r.epoch.Store(GlobalEpoch.Load())
}

func (r *ReaderEpoch) Exit() {
	r.epoch.Store(inactive)
}

func (r *ReaderEpoch) Value() uint64 {
	return r.epoch.Load()
}

// ReclaimablePool is the only requirement for reclamation. It is
// intentionally type-erased.
type ReclaimablePool interface {
	PutAny(any)
}

// Reclaimable is what retired objects must implement so pools can
// reset them before reuse.
type Reclaimable interface {
	Reset()
	RetireEpoch() uint64
	SetRetireEpoch(uint64)
}

// AdvanceEpochAndReclaim advances the epoch and returns retired
// objects to the pool once no reader can still observe them. An
// object retired at epoch E is safe when every active reader entered
// after E: readers entering later can no longer reach it through the
// book.
func AdvanceEpochAndReclaim(
	ring *RetireRing,
	pool ReclaimablePool,
	readers ...*ReaderEpoch,
) {
	GlobalEpoch.Add(1)
	min := minReaderEpoch(readers...)

	for {
		obj := ring.Dequeue()
		if obj == nil {
			return
		}

		rc, ok := obj.(Reclaimable)
		if ok && min != inactive && min <= rc.RetireEpoch() {
			// A reader entered at or before the retirement and may
			// still hold a reference. FIFO: everything behind it was
			// retired no earlier, so stop here.
			_ = ring.Enqueue(obj)
			return
		}

		if ok {
			rc.Reset()
		}
		pool.PutAny(obj)
	}
}

func minReaderEpoch(rs ...*ReaderEpoch) uint64 {
	min := inactive
	for _, r := range rs {
		if r == nil {
			continue
		}
		v := r.Value()
		if v < min {
			min = v
		}
	}
	return min
}

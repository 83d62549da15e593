package orderbook

import (
	"sync/atomic"

	"ampere/infra/memory"
)

// Algorithm selects how fills are allocated inside a price level.
type Algorithm int

const (
	// FIFO consumes resting orders strictly in arrival order.
	FIFO Algorithm = iota
	// ProRata splits a fill across a level proportionally to each
	// resting order's remaining size, rounding remainder to the
	// earliest order.
	ProRata
)

// Config is fixed per venue at construction time.
type Config struct {
	Algorithm      Algorithm
	AllowSelfMatch bool
}

func DefaultConfig() Config {
	return Config{Algorithm: FIFO, AllowSelfMatch: true}
}

// Execution records one match. Price is always the resting order's
// price, so the aggressor never trades worse than quoted.
type Execution struct {
	RestingID       uint64
	IncomingID      uint64
	RestingAccount  uint64
	IncomingAccount uint64
	Price           int64
	Qty             int64
}

type CancelResult int

const (
	CancelOK CancelResult = iota
	CancelNotFound
	CancelNotOwner
)

// OrderBook is the per-venue book. It is not internally locked; the
// owning coordinator serializes all mutations (single writer).
type OrderBook struct {
	Bids *RBTree
	Asks *RBTree

	LastSeq atomic.Uint64

	cfg  Config
	byID map[uint64]*Order
	ring *memory.RetireRing
}

func NewOrderBook(cfg Config, ring *memory.RetireRing) *OrderBook {
	return &OrderBook{
		Bids: NewRBTree(),
		Asks: NewRBTree(),
		cfg:  cfg,
		byID: make(map[uint64]*Order, 1024),
		ring: ring,
	}
}

func (b *OrderBook) Config() Config { return b.cfg }

// Place matches an incoming order against the opposite side and
// applies its time-in-force policy to any remainder. The returned
// executions are in match order.
func (b *OrderBook) Place(o *Order) []Execution {
	b.LastSeq.Store(o.Seq)

	if o.TIF == FillOrKill && b.available(o) < o.Remaining {
		// All or nothing: leave the book untouched.
		o.Status = Cancelled
		b.retire(o)
		return nil
	}

	execs := b.match(o)

	switch {
	case o.Remaining == 0:
		o.Status = Filled
		b.retire(o)
	case o.Kind == Market || o.TIF == ImmediateOrCancel:
		o.Status = Cancelled
		b.retire(o)
	default:
		b.rest(o)
	}
	return execs
}

// Cancel removes a resting order if the caller owns it.
func (b *OrderBook) Cancel(orderID, accountID uint64) CancelResult {
	o, ok := b.byID[orderID]
	if !ok {
		return CancelNotFound
	}
	if o.AccountID != accountID {
		return CancelNotOwner
	}
	b.removeResting(o, Cancelled)
	return CancelOK
}

// ExpireBefore sweeps resting orders whose deadline passed. Returned
// orders are already retired; callers must copy what they need before
// the next epoch advance.
func (b *OrderBook) ExpireBefore(now int64) []*Order {
	var expired []*Order
	for _, o := range b.byID {
		if o.ExpiresAt != 0 && o.ExpiresAt <= now {
			expired = append(expired, o)
		}
	}
	for _, o := range expired {
		b.removeResting(o, Expired)
	}
	return expired
}

// Lookup returns the resting order with the given id, or nil.
func (b *OrderBook) Lookup(orderID uint64) *Order {
	return b.byID[orderID]
}

// --- matching ---

func (b *OrderBook) match(o *Order) []Execution {
	var execs []Execution
	var skipUpTo int64
	skipping := false

	for o.Remaining > 0 {
		lvl := b.bestOpposite(o.Side, skipping, skipUpTo)
		if lvl == nil || !b.crosses(o, lvl.Price) {
			break
		}

		var n int
		if b.cfg.Algorithm == ProRata {
			n = b.consumeProRata(lvl, o, &execs)
		} else {
			n = b.consumeFIFO(lvl, o, &execs)
		}
		if n == 0 {
			// Every remaining order at this level was a self-match
			// skip; continue with the next eligible level.
			skipping = true
			skipUpTo = lvl.Price
		}
	}
	return execs
}

func (b *OrderBook) crosses(o *Order, levelPrice int64) bool {
	if o.Kind == Market {
		return true
	}
	if o.Side == Bid {
		return levelPrice <= o.Price
	}
	return levelPrice >= o.Price
}

// bestOpposite returns the most aggressive opposite level, optionally
// past a price that was exhausted by self-match skips.
func (b *OrderBook) bestOpposite(side Side, skipping bool, skipUpTo int64) *PriceLevel {
	var found *PriceLevel
	pick := func(lvl *PriceLevel) bool {
		if skipping {
			if side == Bid && lvl.Price <= skipUpTo {
				return true
			}
			if side == Ask && lvl.Price >= skipUpTo {
				return true
			}
		}
		found = lvl
		return false
	}
	if side == Bid {
		b.Asks.ForEachAscending(pick)
	} else {
		b.Bids.ForEachDescending(pick)
	}
	return found
}

func (b *OrderBook) eligible(o, resting *Order) bool {
	return b.cfg.AllowSelfMatch || resting.AccountID != o.AccountID
}

func (b *OrderBook) consumeFIFO(lvl *PriceLevel, o *Order, execs *[]Execution) int {
	n := 0
	cur := lvl.head
	for cur != nil && o.Remaining > 0 {
		next := cur.next
		if !b.eligible(o, cur) {
			cur = next
			continue
		}
		b.fill(lvl, cur, o, min64(o.Remaining, cur.Remaining), execs)
		n++
		cur = next
	}
	b.dropIfEmpty(lvl, o.Side)
	return n
}

func (b *OrderBook) consumeProRata(lvl *PriceLevel, o *Order, execs *[]Execution) int {
	var eligible []*Order
	var pool int64
	for cur := lvl.head; cur != nil; cur = cur.next {
		if b.eligible(o, cur) {
			eligible = append(eligible, cur)
			pool += cur.Remaining
		}
	}
	if pool == 0 {
		return 0
	}

	cap := min64(o.Remaining, pool)
	allocs := make([]int64, len(eligible))
	var allocated int64
	for i, r := range eligible {
		allocs[i] = cap * r.Remaining / pool
		allocated += allocs[i]
	}
	// Rounding remainder goes to the earliest order, spilling forward
	// if it does not fit.
	spare := cap - allocated
	for i := 0; spare > 0 && i < len(eligible); i++ {
		room := eligible[i].Remaining - allocs[i]
		give := min64(spare, room)
		allocs[i] += give
		spare -= give
	}

	n := 0
	for i, r := range eligible {
		if allocs[i] == 0 {
			continue
		}
		b.fill(lvl, r, o, allocs[i], execs)
		n++
	}
	b.dropIfEmpty(lvl, o.Side)
	return n
}

// fill applies one trade between an incoming order and a resting one.
func (b *OrderBook) fill(lvl *PriceLevel, resting, incoming *Order, qty int64, execs *[]Execution) {
	resting.Remaining -= qty
	incoming.Remaining -= qty
	lvl.TotalQty -= qty

	*execs = append(*execs, Execution{
		RestingID:       resting.ID,
		IncomingID:      incoming.ID,
		RestingAccount:  resting.AccountID,
		IncomingAccount: incoming.AccountID,
		Price:           lvl.Price,
		Qty:             qty,
	})

	switch {
	case resting.Remaining < 0:
		// Invariant violation: drop the order, rebuild the level
		// counters, keep the engine alive.
		lvl.unlink(resting)
		lvl.recount()
		delete(b.byID, resting.ID)
		resting.Status = Cancelled
		b.retire(resting)
	case resting.Remaining == 0:
		lvl.unlink(resting)
		delete(b.byID, resting.ID)
		resting.Status = Filled
		b.retire(resting)
	default:
		resting.Status = PartiallyFilled
	}
	if incoming.Remaining > 0 {
		incoming.Status = PartiallyFilled
	}
}

// available computes the immediately fillable quantity for a FOK
// pre-check without mutating the book.
func (b *OrderBook) available(o *Order) int64 {
	var avail int64
	scan := func(lvl *PriceLevel) bool {
		if !b.crosses(o, lvl.Price) {
			return false
		}
		for cur := lvl.head; cur != nil; cur = cur.next {
			if b.eligible(o, cur) {
				avail += cur.Remaining
				if avail >= o.Remaining {
					return false
				}
			}
		}
		return true
	}
	if o.Side == Bid {
		b.Asks.ForEachAscending(scan)
	} else {
		b.Bids.ForEachDescending(scan)
	}
	return avail
}

// --- book mutation helpers ---

func (b *OrderBook) rest(o *Order) {
	var lvl *PriceLevel
	if o.Side == Bid {
		lvl = b.Bids.UpsertLevel(o.Price)
	} else {
		lvl = b.Asks.UpsertLevel(o.Price)
	}
	lvl.Enqueue(o)
	b.byID[o.ID] = o
}

func (b *OrderBook) removeResting(o *Order, status Status) {
	var tree *RBTree
	if o.Side == Bid {
		tree = b.Bids
	} else {
		tree = b.Asks
	}
	if lvl := tree.FindLevel(o.Price); lvl != nil {
		lvl.unlink(o)
		if lvl.head == nil {
			tree.DeleteLevel(o.Price)
		}
	}
	delete(b.byID, o.ID)
	o.Status = status
	b.retire(o)
}

func (b *OrderBook) dropIfEmpty(lvl *PriceLevel, incomingSide Side) {
	if lvl.head != nil {
		return
	}
	if incomingSide == Bid {
		b.Asks.DeleteLevel(lvl.Price)
	} else {
		b.Bids.DeleteLevel(lvl.Price)
	}
}

func (b *OrderBook) retire(o *Order) {
	if b.ring != nil {
		o.SetRetireEpoch(memory.GlobalEpoch.Load())
		_ = b.ring.Enqueue(o)
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

package orderbook

import (
	"testing"

	"ampere/infra/memory"
)

var nextSeq uint64

func newOrder(id, account uint64, side Side, kind Kind, tif TimeInForce, price, qty int64) *Order {
	nextSeq++
	return &Order{
		ID:        id,
		AccountID: account,
		Side:      side,
		Kind:      kind,
		TIF:       tif,
		Price:     price,
		Qty:       qty,
		Remaining: qty,
		Seq:       nextSeq,
		Status:    Active,
	}
}

func newTestBook() *OrderBook {
	return NewOrderBook(DefaultConfig(), nil)
}

func TestLimitCrossPartialFill(t *testing.T) {
	book := newTestBook()

	sell := newOrder(1, 10, Ask, Limit, GoodTillCancelled, 480, 100)
	if execs := book.Place(sell); len(execs) != 0 {
		t.Fatalf("expected no executions on empty book, got %d", len(execs))
	}

	buy := newOrder(2, 20, Bid, Limit, GoodTillCancelled, 500, 50)
	execs := book.Place(buy)
	if len(execs) != 1 {
		t.Fatalf("expected 1 execution, got %d", len(execs))
	}
	ex := execs[0]
	if ex.Price != 480 {
		t.Errorf("execution price = %d, want resting price 480", ex.Price)
	}
	if ex.Qty != 50 {
		t.Errorf("execution qty = %d, want 50", ex.Qty)
	}
	if ex.RestingID != 1 || ex.IncomingID != 2 {
		t.Errorf("execution ids = (%d,%d), want (1,2)", ex.RestingID, ex.IncomingID)
	}

	rest := book.Lookup(1)
	if rest == nil {
		t.Fatal("seller should still rest")
	}
	if rest.Remaining != 50 {
		t.Errorf("resting remaining = %d, want 50", rest.Remaining)
	}
	if rest.Status != PartiallyFilled {
		t.Errorf("resting status = %v, want partially_filled", rest.Status)
	}
	if buy.Status != Filled {
		t.Errorf("incoming status = %v, want filled", buy.Status)
	}
}

func TestNoCrossRests(t *testing.T) {
	book := newTestBook()
	book.Place(newOrder(1, 10, Bid, Limit, GoodTillCancelled, 100, 5))
	book.Place(newOrder(2, 20, Ask, Limit, GoodTillCancelled, 200, 5))

	if book.BestBid() == nil || book.BestBid().Price != 100 {
		t.Error("bid should rest at 100")
	}
	if book.BestAsk() == nil || book.BestAsk().Price != 200 {
		t.Error("ask should rest at 200")
	}
}

func TestTimePriorityWithinLevel(t *testing.T) {
	book := newTestBook()
	book.Place(newOrder(1, 10, Ask, Limit, GoodTillCancelled, 100, 5))
	book.Place(newOrder(2, 11, Ask, Limit, GoodTillCancelled, 100, 5))

	execs := book.Place(newOrder(3, 20, Bid, Limit, GoodTillCancelled, 100, 7))
	if len(execs) != 2 {
		t.Fatalf("expected 2 executions, got %d", len(execs))
	}
	if execs[0].RestingID != 1 || execs[0].Qty != 5 {
		t.Errorf("first fill should fully consume the earlier order")
	}
	if execs[1].RestingID != 2 || execs[1].Qty != 2 {
		t.Errorf("second fill should hit the later order for 2")
	}
}

func TestPriceBeatsTime(t *testing.T) {
	book := newTestBook()
	book.Place(newOrder(1, 10, Ask, Limit, GoodTillCancelled, 110, 5))
	book.Place(newOrder(2, 11, Ask, Limit, GoodTillCancelled, 100, 5))

	execs := book.Place(newOrder(3, 20, Bid, Limit, GoodTillCancelled, 120, 5))
	if len(execs) != 1 || execs[0].RestingID != 2 {
		t.Fatal("better-priced later ask should fill first")
	}
	if execs[0].Price != 100 {
		t.Errorf("execution price = %d, want 100", execs[0].Price)
	}
}

func TestVolumeConservation(t *testing.T) {
	book := newTestBook()
	book.Place(newOrder(1, 10, Ask, Limit, GoodTillCancelled, 100, 30))
	book.Place(newOrder(2, 11, Ask, Limit, GoodTillCancelled, 101, 40))

	buy := newOrder(3, 20, Bid, Limit, GoodTillCancelled, 101, 60)
	execs := book.Place(buy)

	var total int64
	for _, ex := range execs {
		total += ex.Qty
	}
	if total != buy.Filled() {
		t.Errorf("executed %d != incoming filled %d", total, buy.Filled())
	}
	if total != 60 {
		t.Errorf("executed %d, want 60", total)
	}
	if rest := book.Lookup(2); rest == nil || rest.Remaining != 10 {
		t.Error("second ask should keep remaining 10")
	}
}

func TestIOCRemainderCancelled(t *testing.T) {
	book := newTestBook()
	book.Place(newOrder(1, 10, Ask, Limit, GoodTillCancelled, 100, 5))

	ioc := newOrder(2, 20, Bid, Limit, ImmediateOrCancel, 100, 8)
	execs := book.Place(ioc)
	if len(execs) != 1 || execs[0].Qty != 5 {
		t.Fatal("IOC should fill the available 5")
	}
	if ioc.Status != Cancelled {
		t.Errorf("IOC remainder status = %v, want cancelled", ioc.Status)
	}
	if book.Lookup(2) != nil {
		t.Error("IOC order must not rest")
	}
}

func TestIOCEmptyBookNoMutation(t *testing.T) {
	book := newTestBook()
	ioc := newOrder(1, 10, Bid, Limit, ImmediateOrCancel, 100, 5)
	execs := book.Place(ioc)
	if len(execs) != 0 {
		t.Fatal("no liquidity, no executions")
	}
	if ioc.Status != Cancelled {
		t.Errorf("status = %v, want cancelled", ioc.Status)
	}
	if book.BestBid() != nil || book.BestAsk() != nil {
		t.Error("book must stay empty")
	}
}

func TestFOKInsufficientLeavesBookUntouched(t *testing.T) {
	book := newTestBook()
	book.Place(newOrder(1, 10, Ask, Limit, GoodTillCancelled, 100, 5))

	fok := newOrder(2, 20, Bid, Limit, FillOrKill, 100, 8)
	execs := book.Place(fok)
	if len(execs) != 0 {
		t.Fatal("partial fill is not allowed for FOK")
	}
	if fok.Status != Cancelled {
		t.Errorf("status = %v, want cancelled", fok.Status)
	}
	if rest := book.Lookup(1); rest == nil || rest.Remaining != 5 {
		t.Error("resting ask must be untouched")
	}
}

func TestFOKFullFill(t *testing.T) {
	book := newTestBook()
	book.Place(newOrder(1, 10, Ask, Limit, GoodTillCancelled, 100, 5))
	book.Place(newOrder(2, 11, Ask, Limit, GoodTillCancelled, 101, 5))

	fok := newOrder(3, 20, Bid, Limit, FillOrKill, 101, 8)
	execs := book.Place(fok)
	if len(execs) != 2 {
		t.Fatalf("expected 2 executions, got %d", len(execs))
	}
	if fok.Status != Filled {
		t.Errorf("status = %v, want filled", fok.Status)
	}
}

func TestMarketOrderWalksLevels(t *testing.T) {
	book := newTestBook()
	book.Place(newOrder(1, 10, Ask, Limit, GoodTillCancelled, 100, 5))
	book.Place(newOrder(2, 11, Ask, Limit, GoodTillCancelled, 200, 5))

	mkt := newOrder(3, 20, Bid, Market, ImmediateOrCancel, 0, 12)
	execs := book.Place(mkt)
	if len(execs) != 2 {
		t.Fatalf("expected 2 executions, got %d", len(execs))
	}
	if execs[0].Price != 100 || execs[1].Price != 200 {
		t.Error("market order should sweep best price first")
	}
	if mkt.Status != Cancelled {
		t.Errorf("unfilled market remainder status = %v, want cancelled", mkt.Status)
	}
	if book.BestAsk() != nil {
		t.Error("both ask levels should be consumed")
	}
}

func TestProRataAllocation(t *testing.T) {
	book := NewOrderBook(Config{Algorithm: ProRata, AllowSelfMatch: true}, nil)
	book.Place(newOrder(1, 10, Ask, Limit, GoodTillCancelled, 100, 100))
	book.Place(newOrder(2, 11, Ask, Limit, GoodTillCancelled, 100, 300))

	execs := book.Place(newOrder(3, 20, Bid, Limit, GoodTillCancelled, 100, 100))
	if len(execs) != 2 {
		t.Fatalf("expected 2 executions, got %d", len(execs))
	}
	got := map[uint64]int64{}
	for _, ex := range execs {
		got[ex.RestingID] += ex.Qty
	}
	if got[1] != 25 || got[2] != 75 {
		t.Errorf("allocation = %v, want 25/75 split", got)
	}
}

func TestProRataRemainderToEarliest(t *testing.T) {
	book := NewOrderBook(Config{Algorithm: ProRata, AllowSelfMatch: true}, nil)
	book.Place(newOrder(1, 10, Ask, Limit, GoodTillCancelled, 100, 3))
	book.Place(newOrder(2, 11, Ask, Limit, GoodTillCancelled, 100, 3))
	book.Place(newOrder(3, 12, Ask, Limit, GoodTillCancelled, 100, 3))

	// 7 over a pool of 9: floor allocs 2/2/2, spare 1 to the earliest.
	execs := book.Place(newOrder(4, 20, Bid, Limit, GoodTillCancelled, 100, 7))
	got := map[uint64]int64{}
	var total int64
	for _, ex := range execs {
		got[ex.RestingID] += ex.Qty
		total += ex.Qty
	}
	if total != 7 {
		t.Fatalf("total filled = %d, want 7", total)
	}
	if got[1] != 3 || got[2] != 2 || got[3] != 2 {
		t.Errorf("allocation = %v, want 3/2/2", got)
	}
}

func TestSelfMatchAllowedByDefault(t *testing.T) {
	book := newTestBook()
	book.Place(newOrder(1, 10, Ask, Limit, GoodTillCancelled, 100, 5))

	execs := book.Place(newOrder(2, 10, Bid, Limit, GoodTillCancelled, 100, 5))
	if len(execs) != 1 {
		t.Fatal("same-account match should execute when allowed")
	}
}

func TestSelfMatchSkipped(t *testing.T) {
	book := NewOrderBook(Config{Algorithm: FIFO, AllowSelfMatch: false}, nil)
	book.Place(newOrder(1, 10, Ask, Limit, GoodTillCancelled, 100, 5))
	book.Place(newOrder(2, 11, Ask, Limit, GoodTillCancelled, 100, 5))

	execs := book.Place(newOrder(3, 10, Bid, Limit, GoodTillCancelled, 100, 5))
	if len(execs) != 1 {
		t.Fatalf("expected 1 execution with the other account, got %d", len(execs))
	}
	if execs[0].RestingAccount != 11 {
		t.Errorf("matched account %d, want 11", execs[0].RestingAccount)
	}
	if own := book.Lookup(1); own == nil || own.Remaining != 5 {
		t.Error("own resting order must be untouched")
	}
}

func TestSelfMatchSkipWholeLevel(t *testing.T) {
	book := NewOrderBook(Config{Algorithm: FIFO, AllowSelfMatch: false}, nil)
	book.Place(newOrder(1, 10, Ask, Limit, GoodTillCancelled, 100, 5))
	book.Place(newOrder(2, 11, Ask, Limit, GoodTillCancelled, 110, 5))

	// Best level is entirely own liquidity; matching continues at 110.
	execs := book.Place(newOrder(3, 10, Bid, Limit, GoodTillCancelled, 120, 5))
	if len(execs) != 1 || execs[0].Price != 110 {
		t.Fatalf("expected fill at the next level, got %v", execs)
	}
}

func TestCancel(t *testing.T) {
	book := newTestBook()
	book.Place(newOrder(1, 10, Bid, Limit, GoodTillCancelled, 100, 5))

	if res := book.Cancel(99, 10); res != CancelNotFound {
		t.Errorf("unknown id: got %v, want not_found", res)
	}
	if res := book.Cancel(1, 999); res != CancelNotOwner {
		t.Errorf("wrong owner: got %v, want not_owner", res)
	}
	if res := book.Cancel(1, 10); res != CancelOK {
		t.Errorf("owner cancel: got %v, want ok", res)
	}
	if book.Lookup(1) != nil || book.BestBid() != nil {
		t.Error("cancelled order must leave the book")
	}
}

func TestExpireBefore(t *testing.T) {
	book := newTestBook()
	keep := newOrder(1, 10, Bid, Limit, GoodTillCancelled, 100, 5)
	gone := newOrder(2, 10, Bid, Limit, GoodTillCancelled, 101, 5)
	gone.ExpiresAt = 50
	book.Place(keep)
	book.Place(gone)

	expired := book.ExpireBefore(100)
	if len(expired) != 1 || expired[0].ID != 2 {
		t.Fatalf("expected order 2 expired, got %v", expired)
	}
	if expired[0].Status != Expired {
		t.Errorf("status = %v, want expired", expired[0].Status)
	}
	if book.Lookup(1) == nil {
		t.Error("undated order must survive the sweep")
	}
	if book.Lookup(2) != nil {
		t.Error("expired order must leave the book")
	}
}

func TestDepthSnapshot(t *testing.T) {
	book := newTestBook()
	book.Place(newOrder(1, 10, Bid, Limit, GoodTillCancelled, 100, 5))
	book.Place(newOrder(2, 11, Bid, Limit, GoodTillCancelled, 100, 3))
	book.Place(newOrder(3, 12, Bid, Limit, GoodTillCancelled, 90, 7))
	book.Place(newOrder(4, 13, Ask, Limit, GoodTillCancelled, 110, 4))

	d := book.DepthSnapshot(1)
	if len(d.Bids) != 1 || len(d.Asks) != 1 {
		t.Fatalf("top-1 depth: got %d/%d levels", len(d.Bids), len(d.Asks))
	}
	if d.Bids[0].Price != 100 || d.Bids[0].Qty != 8 || d.Bids[0].Orders != 2 {
		t.Errorf("bid level = %+v, want 100/8/2", d.Bids[0])
	}
	if d.Asks[0].Price != 110 || d.Asks[0].Qty != 4 {
		t.Errorf("ask level = %+v, want 110/4", d.Asks[0])
	}

	full := book.DepthSnapshot(0)
	if len(full.Bids) != 2 {
		t.Errorf("full depth bids = %d, want 2", len(full.Bids))
	}
}

func TestRetiredOrdersCarryEpoch(t *testing.T) {
	ring := memory.NewRetireRing(8)
	book := NewOrderBook(DefaultConfig(), ring)

	book.Place(newOrder(1, 10, Ask, Limit, GoodTillCancelled, 480, 50))
	book.Place(newOrder(2, 20, Bid, Limit, GoodTillCancelled, 500, 50))

	retired := ring.Dequeue()
	if retired == nil {
		t.Fatal("filled order must be retired into the ring")
	}
	o := retired.(*Order)
	if o.Status != Filled {
		t.Errorf("retired order status = %v, want Filled", o.Status)
	}
	if o.RetireEpoch() != memory.GlobalEpoch.Load() {
		t.Errorf("retire epoch = %d, want %d", o.RetireEpoch(), memory.GlobalEpoch.Load())
	}
}

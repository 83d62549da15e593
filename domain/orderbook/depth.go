package orderbook

// LevelView is one aggregated price level of a depth snapshot.
type LevelView struct {
	Price  int64
	Qty    int64
	Orders int
}

// Depth is a top-N view of resting liquidity, derived from the live
// book rather than replayed from the event log.
type Depth struct {
	Bids []LevelView
	Asks []LevelView
}

// DepthSnapshot aggregates the top n levels per side. n <= 0 means
// the whole book.
func (b *OrderBook) DepthSnapshot(n int) Depth {
	d := Depth{}
	take := func(dst *[]LevelView) func(*PriceLevel) bool {
		return func(lvl *PriceLevel) bool {
			*dst = append(*dst, LevelView{
				Price:  lvl.Price,
				Qty:    lvl.TotalQty,
				Orders: lvl.OrderCount,
			})
			return n <= 0 || len(*dst) < n
		}
	}
	b.Bids.ForEachDescending(take(&d.Bids))
	b.Asks.ForEachAscending(take(&d.Asks))
	return d
}

// BestBid returns the highest bid level, or nil on an empty side.
func (b *OrderBook) BestBid() *PriceLevel { return b.Bids.MaxLevel() }

// BestAsk returns the lowest ask level, or nil on an empty side.
func (b *OrderBook) BestAsk() *PriceLevel { return b.Asks.MinLevel() }

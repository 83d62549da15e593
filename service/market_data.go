package service

import (
	"sync"
	"time"

	"ampere/domain/orderbook"
)

// LastTrade is the most recent execution on a venue.
type LastTrade struct {
	Price int64
	Qty   int64
	Time  int64
}

// venueStats tracks last trade and a rolling 24-hour volume in
// hourly buckets.
type venueStats struct {
	mu      sync.Mutex
	last    LastTrade
	buckets [25]volumeBucket // 24 full hours plus the current one
}

type volumeBucket struct {
	hour int64 // unix hour the bucket covers
	qty  int64
}

func newVenueStats() *venueStats {
	return &venueStats{}
}

func (vs *venueStats) AddTrade(price, qty, now int64) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.last = LastTrade{Price: price, Qty: qty, Time: now}

	hour := now / int64(time.Hour)
	b := &vs.buckets[hour%int64(len(vs.buckets))]
	if b.hour != hour {
		b.hour = hour
		b.qty = 0
	}
	b.qty += qty
}

func (vs *venueStats) Last() LastTrade {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.last
}

func (vs *venueStats) Volume24h(now int64) int64 {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	hour := now / int64(time.Hour)
	var total int64
	for _, b := range vs.buckets {
		if b.hour > hour-24 && b.hour <= hour {
			total += b.qty
		}
	}
	return total
}

// Depth returns the top-n aggregated levels per side, derived from
// the live book.
func (s *TradingService) Depth(venueName string, n int) (orderbook.Depth, error) {
	v, ok := s.venues[venueName]
	if !ok {
		return orderbook.Depth{}, ErrUnknownVenue
	}
	s.reader.Enter()
	defer s.reader.Exit()

	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.book.DepthSnapshot(n), nil
}

// LastTrade returns the most recent execution on the venue.
func (s *TradingService) LastTrade(venueName string) (LastTrade, error) {
	v, ok := s.venues[venueName]
	if !ok {
		return LastTrade{}, ErrUnknownVenue
	}
	return v.stats.Last(), nil
}

// Volume24h returns the venue's rolling 24-hour traded volume.
func (s *TradingService) Volume24h(venueName string) (int64, error) {
	v, ok := s.venues[venueName]
	if !ok {
		return 0, ErrUnknownVenue
	}
	return v.stats.Volume24h(time.Now().UnixNano()), nil
}

// Package grid holds the default capacity oracle used when no
// external feed is wired in.
package grid

import "sync"

// StaticOracle admits orders against a fixed per-venue line capacity.
// Venues without a configured limit are unconstrained.
type StaticOracle struct {
	mu     sync.RWMutex
	limits map[string]int64
}

func NewStaticOracle(limits map[string]int64) *StaticOracle {
	if limits == nil {
		limits = make(map[string]int64)
	}
	return &StaticOracle{limits: limits}
}

// SetLimit updates a venue's capacity at runtime.
func (o *StaticOracle) SetLimit(venue string, qty int64) {
	o.mu.Lock()
	o.limits[venue] = qty
	o.mu.Unlock()
}

func (o *StaticOracle) CheckCapacity(venue string, qty int64) bool {
	o.mu.RLock()
	limit, ok := o.limits[venue]
	o.mu.RUnlock()
	if !ok || limit <= 0 {
		return true
	}
	return qty <= limit
}

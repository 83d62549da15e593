package chain

import (
	"sync"
	"time"
)

// Schedule deterministically assigns block-production rights: the
// validator for round r is active[r mod len(active)]. It advances
// exactly once per accepted block.
type Schedule struct {
	mu        sync.RWMutex
	active    []string
	round     uint64
	interval  time.Duration
	lastBlock time.Time
}

func NewSchedule(active []string, interval time.Duration) *Schedule {
	cp := make([]string, len(active))
	copy(cp, active)
	return &Schedule{
		active:    cp,
		interval:  interval,
		lastBlock: time.Now(),
	}
}

// ScheduledFor returns the validator that may produce the block for
// the given round. Empty string when no validator is active.
func (s *Schedule) ScheduledFor(round uint64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scheduledLocked(round)
}

func (s *Schedule) scheduledLocked(round uint64) string {
	if len(s.active) == 0 {
		return ""
	}
	return s.active[round%uint64(len(s.active))]
}

// Current returns the round counter and its scheduled validator.
func (s *Schedule) Current() (round uint64, validator string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.round, s.scheduledLocked(s.round)
}

// Interval is the fixed block interval.
func (s *Schedule) Interval() time.Duration {
	return s.interval
}

// Due reports whether the block interval has elapsed since the last
// accepted block.
func (s *Schedule) Due(now time.Time) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return now.Sub(s.lastBlock) >= s.interval
}

// Advance moves to the next round after a block was accepted.
func (s *Schedule) Advance(blockTime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.round++
	s.lastBlock = blockTime
}

// Recompute replaces the active set after a registry change. The
// round counter is preserved; if the currently-scheduled validator
// was removed, the modulus rule falls through to the next active one
// without skipping a block interval.
func (s *Schedule) Recompute(active []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]string, len(active))
	copy(cp, active)
	s.active = cp
}

// ActiveCount returns the size of the rotation.
func (s *Schedule) ActiveCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.active)
}

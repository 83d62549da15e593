package service

import (
	"context"
	"time"
)

// RunEpochJob periodically advances the reclamation epoch so retired
// orders flow back into the pool.
func (s *TradingService) RunEpochJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.AdvanceEpoch()
		}
	}
}

// RunExpiryJob periodically sweeps resting orders past their
// time-in-force deadline.
func (s *TradingService) RunExpiryJob(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.ExpireSweep(now); n > 0 {
				s.log.Debug().Int("expired", n).Msg("expiry sweep")
			}
		}
	}
}

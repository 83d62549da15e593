package service

import (
	"fmt"

	"ampere/domain/orderbook"
	"ampere/infra/journal"
)

/*
ReplayJournal rebuilds the venue books from the intent journal.

IMPORTANT:
- This MUST run before accepting traffic.
- Replay only mutates the books: no events, no settlement
  transactions, no persistence writes. Those already happened (or
  were lost with the process, which the chain does not depend on).
*/
func (s *TradingService) ReplayJournal(dir string) error {
	lastSeq, err := journal.Replay(dir, func(rec *journal.Record) error {
		switch rec.Type {
		case journal.RecordSubmit:
			p, err := decodeSubmit(rec.Data)
			if err != nil {
				return fmt.Errorf("replay submit %d: %w", rec.Seq, err)
			}
			v, ok := s.venues[p.Venue]
			if !ok {
				// Venue was removed from config; skip its history.
				return nil
			}
			o := s.pool.Get()
			*o = orderbook.Order{
				ID:        p.OrderID,
				AccountID: p.AccountID,
				Venue:     p.Venue,
				Source:    p.Source,
				Side:      p.Side,
				Kind:      p.Kind,
				TIF:       p.TIF,
				Price:     p.Price,
				Qty:       p.Qty,
				Remaining: p.Qty,
				Seq:       p.OrderID,
				ExpiresAt: p.ExpiresAt,
				Status:    orderbook.Active,
			}
			v.book.Place(o)
			return nil

		case journal.RecordCancel:
			p, err := decodeCancel(rec.Data)
			if err != nil {
				return fmt.Errorf("replay cancel %d: %w", rec.Seq, err)
			}
			if v, ok := s.venues[p.Venue]; ok {
				_ = v.book.Cancel(p.OrderID, p.AccountID)
			}
			return nil

		default:
			return nil
		}
	})
	if err != nil {
		return err
	}

	// Resume sequencing after replay.
	s.seq.Reset(lastSeq)
	s.log.Info().Uint64("last_seq", lastSeq).Msg("journal replay complete")
	return nil
}

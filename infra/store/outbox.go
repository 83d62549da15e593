package store

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble"
)

// Outbox states for block-finality broadcast. A record moves
// NEW -> SENT -> ACKED; the broadcaster replays anything not ACKED.
type OutboxState uint8

const (
	StateNew OutboxState = iota
	StateSent
	StateAcked
	StateFailed
)

func (s OutboxState) String() string {
	switch s {
	case StateNew:
		return "NEW"
	case StateSent:
		return "SENT"
	case StateAcked:
		return "ACKED"
	case StateFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

type OutboxRecord struct {
	Seq         uint64
	State       OutboxState
	Retries     uint32
	LastAttempt int64
	Payload     []byte
}

// binary encoding: [state:1][retries:4][lastAttempt:8][payload]
func encodeOutbox(r OutboxRecord) []byte {
	buf := make([]byte, 1+4+8+len(r.Payload))
	buf[0] = byte(r.State)
	binary.BigEndian.PutUint32(buf[1:5], r.Retries)
	binary.BigEndian.PutUint64(buf[5:13], uint64(r.LastAttempt))
	copy(buf[13:], r.Payload)
	return buf
}

func decodeOutbox(seq uint64, b []byte) (OutboxRecord, error) {
	if len(b) < 13 {
		return OutboxRecord{}, errors.New("store: short outbox record")
	}
	payload := make([]byte, len(b)-13)
	copy(payload, b[13:])
	return OutboxRecord{
		Seq:         seq,
		State:       OutboxState(b[0]),
		Retries:     binary.BigEndian.Uint32(b[1:5]),
		LastAttempt: int64(binary.BigEndian.Uint64(b[5:13])),
		Payload:     payload,
	}, nil
}

// OutboxPut stages a new broadcast payload. Called on block commit.
func (s *Store) OutboxPut(seq uint64, payload []byte) error {
	rec := OutboxRecord{Seq: seq, State: StateNew, Payload: payload}
	return s.db.Set(outboxKey(seq), encodeOutbox(rec), pebble.Sync)
}

// OutboxMarkSent flips a record to SENT before the Kafka write so a
// crash between write and ack errs on the side of re-delivery.
func (s *Store) OutboxMarkSent(seq uint64) error {
	return s.outboxSetState(seq, StateSent)
}

// OutboxMarkAcked finalizes a delivered record.
func (s *Store) OutboxMarkAcked(seq uint64) error {
	return s.outboxSetState(seq, StateAcked)
}

// OutboxDelete removes an ACKED record during cleanup.
func (s *Store) OutboxDelete(seq uint64) error {
	return s.db.Delete(outboxKey(seq), pebble.Sync)
}

func (s *Store) outboxSetState(seq uint64, state OutboxState) error {
	val, closer, err := s.db.Get(outboxKey(seq))
	if err != nil {
		return err
	}
	rec, err := decodeOutbox(seq, val)
	_ = closer.Close()
	if err != nil {
		return err
	}
	rec.State = state
	rec.Retries++
	rec.LastAttempt = time.Now().UnixNano()
	return s.db.Set(outboxKey(seq), encodeOutbox(rec), pebble.Sync)
}

// OutboxScanPending iterates records not yet ACKED, in seq order.
func (s *Store) OutboxScanPending(fn func(rec *OutboxRecord) error) error {
	iter, err := s.db.NewIter(&pebble.IterOptions{
		LowerBound: []byte{prefixOutbox},
		UpperBound: []byte{prefixOutbox + 1},
	})
	if err != nil {
		return err
	}
	defer iter.Close()

	for iter.First(); iter.Valid(); iter.Next() {
		key := iter.Key()
		if len(key) != 9 {
			return fmt.Errorf("store: malformed outbox key %x", key)
		}
		seq := binary.BigEndian.Uint64(key[1:])
		rec, err := decodeOutbox(seq, iter.Value())
		if err != nil {
			return err
		}
		if rec.State == StateAcked {
			continue
		}
		if err := fn(&rec); err != nil {
			return err
		}
	}
	return iter.Error()
}

func outboxKey(seq uint64) []byte {
	return append([]byte{prefixOutbox}, u64be(seq)...)
}

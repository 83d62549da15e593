package store

import (
	"bytes"
	"encoding/binary"

	"github.com/cockroachdb/pebble"

	"ampere/domain/chain"
	"ampere/domain/orderbook"
)

// One-byte key prefixes. Orders and trades are keyed by id with a
// secondary index by (venue, price, arrival seq); blocks by height
// with a secondary index by hash; balances by account id.
const (
	prefixBalance     byte = 0x02
	prefixOrder       byte = 0x10
	prefixOrderByBook byte = 0x11
	prefixTrade       byte = 0x30
	prefixBlock       byte = 0x40
	prefixBlockHash   byte = 0x41
	prefixOutbox      byte = 0xE0
)

// Store is the pebble-backed audit trail. The core treats it as
// fire-and-forget: failures are logged by the caller and never roll
// back in-memory state.
type Store struct {
	db *pebble.DB
}

func Open(dir string) (*Store, error) {
	db, err := pebble.Open(dir, &pebble.Options{})
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// --- orders ---

func (s *Store) PersistOrder(o orderbook.Order) error {
	var buf bytes.Buffer
	putU64(&buf, o.AccountID)
	putStr(&buf, o.Venue)
	putStr(&buf, o.Source)
	buf.WriteByte(byte(o.Side))
	buf.WriteByte(byte(o.Kind))
	buf.WriteByte(byte(o.TIF))
	buf.WriteByte(byte(o.Status))
	putU64(&buf, uint64(o.Price))
	putU64(&buf, uint64(o.Qty))
	putU64(&buf, uint64(o.Remaining))
	putU64(&buf, o.Seq)

	batch := s.db.NewBatch()
	defer batch.Close()
	if err := batch.Set(orderKey(o.ID), buf.Bytes(), nil); err != nil {
		return err
	}
	if err := batch.Set(orderBookKey(o.Venue, o.Price, o.Seq), u64be(o.ID), nil); err != nil {
		return err
	}
	return batch.Commit(pebble.NoSync)
}

// --- trades ---

func (s *Store) PersistTrade(t chain.TradeSettlement) error {
	tx := chain.Transaction{Kind: chain.TxTradeSettlement, Trade: t}
	return s.db.Set(tradeKey(t.TradeID), tx.SignBytes(), pebble.NoSync)
}

// --- blocks ---

func (s *Store) PersistBlock(b *chain.Block) error {
	hash := b.Hash()
	batch := s.db.NewBatch()
	defer batch.Close()
	if err := batch.Set(blockKey(b.Header.Height), chain.EncodeBlock(b), nil); err != nil {
		return err
	}
	if err := batch.Set(blockHashKey(hash), u64be(b.Header.Height), nil); err != nil {
		return err
	}
	return batch.Commit(pebble.Sync)
}

// BlockByHeight loads and decodes one persisted block.
func (s *Store) BlockByHeight(h uint64) (*chain.Block, error) {
	val, closer, err := s.db.Get(blockKey(h))
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	return chain.DecodeBlock(val)
}

// --- balances ---

func (s *Store) PersistBalance(account uint64, amount int64) error {
	return s.db.Set(balanceKey(account), u64be(uint64(amount)), pebble.NoSync)
}

// --- keys ---

func orderKey(id uint64) []byte {
	return append([]byte{prefixOrder}, u64be(id)...)
}

func orderBookKey(venue string, price int64, seq uint64) []byte {
	b := make([]byte, 0, 1+2+len(venue)+8+8)
	b = append(b, prefixOrderByBook)
	var l [2]byte
	binary.BigEndian.PutUint16(l[:], uint16(len(venue)))
	b = append(b, l[:]...)
	b = append(b, venue...)
	b = append(b, u64be(uint64(price))...)
	b = append(b, u64be(seq)...)
	return b
}

func tradeKey(id string) []byte {
	return append([]byte{prefixTrade}, id...)
}

func blockKey(h uint64) []byte {
	return append([]byte{prefixBlock}, u64be(h)...)
}

func blockHashKey(hash [32]byte) []byte {
	return append([]byte{prefixBlockHash}, hash[:]...)
}

func balanceKey(account uint64) []byte {
	return append([]byte{prefixBalance}, u64be(account)...)
}

func u64be(v uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return b[:]
}

func putU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func putStr(buf *bytes.Buffer, s string) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(len(s)))
	buf.Write(b[:])
	buf.WriteString(s)
}

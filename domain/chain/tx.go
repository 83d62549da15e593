package chain

import (
	"bytes"
	"encoding/binary"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/zeebo/blake3"
)

type TxKind uint8

const (
	// TxTradeSettlement settles one matched execution on the ledger.
	TxTradeSettlement TxKind = iota
	// TxTransfer moves balance between accounts.
	TxTransfer
)

// TradeSettlement is the ledger payload for one execution. It is
// immutable once created by the matching engine.
type TradeSettlement struct {
	TradeID     string // uuidv7 assigned at execution time
	Venue       string
	BuyOrderID  uint64
	SellOrderID uint64
	BuyAccount  uint64
	SellAccount uint64
	Price       int64 // fixed-point currency per kWh
	Qty         int64 // watt-hours
	Source      string
	ExecutedAt  int64 // unix nanos
}

// Notional is the settled amount the buyer owes the seller.
func (t *TradeSettlement) Notional() int64 {
	return t.Price * t.Qty / 1000 // price is per kWh, qty in Wh
}

// Transaction is the signed envelope admitted to the pool. A given
// (Account, Nonce) pair is accepted at most once.
type Transaction struct {
	Kind    TxKind
	Account uint64
	Nonce   uint64
	Fee     int64

	Trade TradeSettlement

	// Transfer fields, used when Kind == TxTransfer.
	To     uint64
	Amount int64

	PubKey    ed25519.PublicKey
	Signature []byte
}

// SignBytes returns the deterministic encoding covered by the
// signature.
func (tx *Transaction) SignBytes() []byte {
	var buf bytes.Buffer
	writeU8(&buf, uint8(tx.Kind))
	writeU64(&buf, tx.Account)
	writeU64(&buf, tx.Nonce)
	writeI64(&buf, tx.Fee)
	switch tx.Kind {
	case TxTradeSettlement:
		writeString(&buf, tx.Trade.TradeID)
		writeString(&buf, tx.Trade.Venue)
		writeU64(&buf, tx.Trade.BuyOrderID)
		writeU64(&buf, tx.Trade.SellOrderID)
		writeU64(&buf, tx.Trade.BuyAccount)
		writeU64(&buf, tx.Trade.SellAccount)
		writeI64(&buf, tx.Trade.Price)
		writeI64(&buf, tx.Trade.Qty)
		writeString(&buf, tx.Trade.Source)
		writeI64(&buf, tx.Trade.ExecutedAt)
	case TxTransfer:
		writeU64(&buf, tx.To)
		writeI64(&buf, tx.Amount)
	}
	return buf.Bytes()
}

// Hash is the transaction id: blake3 over sign bytes and signature.
func (tx *Transaction) Hash() [32]byte {
	h := blake3.New()
	_, _ = h.Write(tx.SignBytes())
	_, _ = h.Write(tx.Signature)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// Sign signs the blake3 digest of the sign bytes.
func (tx *Transaction) Sign(priv ed25519.PrivateKey) {
	digest := blake3.Sum256(tx.SignBytes())
	tx.PubKey = priv.Public().(ed25519.PublicKey)
	tx.Signature = ed25519.Sign(priv, digest[:])
}

// VerifySignature checks the envelope signature against its own
// public key. Binding the key to the account is the pool's job.
func (tx *Transaction) VerifySignature() bool {
	if len(tx.PubKey) != ed25519.PublicKeySize || len(tx.Signature) == 0 {
		return false
	}
	digest := blake3.Sum256(tx.SignBytes())
	return ed25519.Verify(tx.PubKey, digest[:], tx.Signature)
}

// Cost is what the submitting account must be able to cover for the
// transaction to be admitted.
func (tx *Transaction) Cost() int64 {
	switch tx.Kind {
	case TxTradeSettlement:
		return tx.Trade.Notional() + tx.Fee
	case TxTransfer:
		return tx.Amount + tx.Fee
	default:
		return tx.Fee
	}
}

func writeU8(buf *bytes.Buffer, v uint8) { buf.WriteByte(v) }

func writeU64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func writeI64(buf *bytes.Buffer, v int64) { writeU64(buf, uint64(v)) }

func writeString(buf *bytes.Buffer, s string) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(len(s)))
	buf.Write(b[:])
	buf.WriteString(s)
}

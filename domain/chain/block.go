package chain

import (
	"bytes"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/zeebo/blake3"
)

// BlockHeader commits to the parent, the transaction set, and the
// producing validator for one round.
type BlockHeader struct {
	Height     uint64
	Round      uint64
	ParentHash [32]byte
	Time       int64
	Validator  string
	TxRoot     [32]byte

	// Aggregated energy statistics for the block.
	TotalEnergy int64 // watt-hours settled
	TotalFees   int64
}

// Block is an ordered transaction batch sealed by a single validator
// signature over the header (which commits to the tx root).
type Block struct {
	Header    BlockHeader
	Txs       []*Transaction
	Signature []byte
}

// SignBytes is the deterministic header encoding covered by the
// validator signature.
func (h *BlockHeader) SignBytes() []byte {
	var buf bytes.Buffer
	writeU64(&buf, h.Height)
	writeU64(&buf, h.Round)
	buf.Write(h.ParentHash[:])
	writeI64(&buf, h.Time)
	writeString(&buf, h.Validator)
	buf.Write(h.TxRoot[:])
	writeI64(&buf, h.TotalEnergy)
	writeI64(&buf, h.TotalFees)
	return buf.Bytes()
}

// Hash identifies the block: blake3 over the signed header.
func (b *Block) Hash() [32]byte {
	return blake3.Sum256(b.Header.SignBytes())
}

// Seal signs the header digest as the producing validator.
func (b *Block) Seal(priv ed25519.PrivateKey) {
	digest := blake3.Sum256(b.Header.SignBytes())
	b.Signature = ed25519.Sign(priv, digest[:])
}

// VerifySeal checks the validator signature against the given key.
func (b *Block) VerifySeal(pub ed25519.PublicKey) bool {
	if len(b.Signature) == 0 {
		return false
	}
	digest := blake3.Sum256(b.Header.SignBytes())
	return ed25519.Verify(pub, digest[:], b.Signature)
}

// TxRoot builds a binary blake3 merkle tree over the transaction
// hashes. An empty set hashes to blake3 of nothing.
func TxRoot(txs []*Transaction) [32]byte {
	if len(txs) == 0 {
		return blake3.Sum256(nil)
	}
	layer := make([][32]byte, len(txs))
	for i, tx := range txs {
		layer[i] = tx.Hash()
	}
	for len(layer) > 1 {
		next := make([][32]byte, 0, (len(layer)+1)/2)
		for i := 0; i < len(layer); i += 2 {
			if i+1 == len(layer) {
				// Odd node is promoted unchanged.
				next = append(next, layer[i])
				continue
			}
			h := blake3.New()
			_, _ = h.Write(layer[i][:])
			_, _ = h.Write(layer[i+1][:])
			var parent [32]byte
			copy(parent[:], h.Sum(nil))
			next = append(next, parent)
		}
		layer = next
	}
	return layer[0]
}

// BlockStats recomputes the aggregated statistics for a tx set.
func BlockStats(txs []*Transaction) (totalEnergy, totalFees int64) {
	for _, tx := range txs {
		if tx.Kind == TxTradeSettlement {
			totalEnergy += tx.Trade.Qty
		}
		totalFees += tx.Fee
	}
	return totalEnergy, totalFees
}

package chain

import (
	"errors"
	"testing"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

func sealedBlock(t *testing.T, priv ed25519.PrivateKey, parent *Block, validator string, round uint64, txs []*Transaction) *Block {
	t.Helper()
	energy, fees := BlockStats(txs)
	b := &Block{
		Header: BlockHeader{
			Height:      parent.Header.Height + 1,
			Round:       round,
			ParentHash:  parent.Hash(),
			Time:        1700000000000000000 + int64(round),
			Validator:   validator,
			TxRoot:      TxRoot(txs),
			TotalEnergy: energy,
			TotalFees:   fees,
		},
		Txs: txs,
	}
	b.Seal(priv)
	return b
}

func TestGenesis(t *testing.T) {
	c := NewChainState()
	head := c.Head()
	if head.Header.Height != 0 {
		t.Fatalf("genesis height = %d", head.Header.Height)
	}
	if NewChainState().Head().Hash() != head.Hash() {
		t.Error("genesis hash must be deterministic across nodes")
	}
	if c.BlockByHeight(0) != head {
		t.Error("genesis must be addressable by height")
	}
}

func TestAppendContinuity(t *testing.T) {
	priv := testKey(t)
	c := NewChainState()

	b1 := sealedBlock(t, priv, c.Head(), "v0", 0, nil)
	if err := c.Append(b1); err != nil {
		t.Fatal(err)
	}
	if c.Height() != 1 {
		t.Errorf("height = %d, want 1", c.Height())
	}

	// Re-appending the same block: parent is now b1, not genesis.
	if err := c.Append(b1); !errors.Is(err, ErrBadParent) {
		t.Errorf("got %v, want ErrBadParent", err)
	}

	bad := sealedBlock(t, priv, c.Head(), "v0", 1, nil)
	bad.Header.Height = 5
	bad.Seal(priv)
	if err := c.Append(bad); !errors.Is(err, ErrBadHeight) {
		t.Errorf("got %v, want ErrBadHeight", err)
	}
}

func TestAppendAppliesSettlements(t *testing.T) {
	priv := testKey(t)
	c := NewChainState()

	tx := testSettlement(t, 1, 0) // buyer 100, seller 200, notional 24000, fee 2
	b1 := sealedBlock(t, priv, c.Head(), "v0", 0, []*Transaction{tx})
	if err := c.Append(b1); err != nil {
		t.Fatal(err)
	}

	if got := c.Balance(100); got != -24_002 {
		t.Errorf("buyer balance = %d, want -24002", got)
	}
	if got := c.Balance(200); got != 24_000 {
		t.Errorf("seller balance = %d, want 24000", got)
	}
}

func TestBlockLookups(t *testing.T) {
	priv := testKey(t)
	c := NewChainState()

	b1 := sealedBlock(t, priv, c.Head(), "v0", 0, nil)
	if err := c.Append(b1); err != nil {
		t.Fatal(err)
	}

	if c.BlockByHeight(1) != b1 {
		t.Error("lookup by height failed")
	}
	if c.BlockByHeight(9) != nil {
		t.Error("out-of-range height must return nil")
	}
	if c.BlockByHash(b1.Hash()) != b1 {
		t.Error("lookup by hash failed")
	}
	if c.BlockByHash([32]byte{1}) != nil {
		t.Error("unknown hash must return nil")
	}
}

package chain

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

var (
	ErrBadParent = errors.New("chain: parent hash does not match head")
	ErrBadHeight = errors.New("chain: height is not head height + 1")
)

// ChainState is the append-only sequence of sealed blocks plus the
// balances derived from them. The consensus engine is the only
// writer; everyone else reads the head through an atomic snapshot.
type ChainState struct {
	mu       sync.RWMutex
	blocks   []*Block
	byHash   map[[32]byte]uint64
	balances map[uint64]int64

	head atomic.Pointer[Block]
}

// NewChainState starts a chain from a genesis block at height 0.
// Genesis is deterministic so every node derives the same hash.
func NewChainState() *ChainState {
	genesis := &Block{
		Header: BlockHeader{
			Height:    0,
			Validator: "genesis",
			TxRoot:    TxRoot(nil),
		},
	}
	c := &ChainState{
		blocks:   []*Block{genesis},
		byHash:   map[[32]byte]uint64{genesis.Hash(): 0},
		balances: make(map[uint64]int64),
	}
	c.head.Store(genesis)
	return c
}

// Head returns the current chain head without taking the write lock.
func (c *ChainState) Head() *Block {
	return c.head.Load()
}

func (c *ChainState) Height() uint64 {
	return c.Head().Header.Height
}

// Append attaches a block after re-checking continuity against the
// head. The check guards against a producer racing a received block.
func (c *ChainState) Append(b *Block) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	head := c.blocks[len(c.blocks)-1]
	if b.Header.ParentHash != head.Hash() {
		return ErrBadParent
	}
	if b.Header.Height != head.Header.Height+1 {
		return fmt.Errorf("%w: got %d, head %d", ErrBadHeight, b.Header.Height, head.Header.Height)
	}

	c.blocks = append(c.blocks, b)
	c.byHash[b.Hash()] = b.Header.Height
	c.applySettlements(b)
	c.head.Store(b)
	return nil
}

func (c *ChainState) applySettlements(b *Block) {
	for _, tx := range b.Txs {
		switch tx.Kind {
		case TxTradeSettlement:
			amount := tx.Trade.Notional()
			c.balances[tx.Trade.BuyAccount] -= amount + tx.Fee
			c.balances[tx.Trade.SellAccount] += amount
		case TxTransfer:
			c.balances[tx.Account] -= tx.Amount + tx.Fee
			c.balances[tx.To] += tx.Amount
		}
	}
}

// Balance returns the derived on-chain balance for an account.
func (c *ChainState) Balance(account uint64) int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.balances[account]
}

// BlockByHeight returns the block at the given height, or nil.
func (c *ChainState) BlockByHeight(h uint64) *Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if h >= uint64(len(c.blocks)) {
		return nil
	}
	return c.blocks[h]
}

// BlockByHash returns the block with the given hash, or nil.
func (c *ChainState) BlockByHash(hash [32]byte) *Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.byHash[hash]
	if !ok {
		return nil
	}
	return c.blocks[h]
}

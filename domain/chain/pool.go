package chain

import (
	"errors"
	"sync"
)

var (
	ErrDuplicateNonce      = errors.New("txpool: duplicate (account, nonce)")
	ErrInvalidSignature    = errors.New("txpool: invalid signature")
	ErrInsufficientBalance = errors.New("txpool: insufficient balance")
	ErrPoolFull            = errors.New("txpool: pool full")
)

// Ledger is the account/balance boundary the pool validates against.
type Ledger interface {
	GetBalance(account uint64) int64
	Reserve(account uint64, amount int64) bool
}

type accountNonce struct {
	account uint64
	nonce   uint64
}

// TxPool admits validated transactions and orders them for block
// inclusion. Admission is idempotent per (account, nonce); a second
// submission with the same pair is a duplicate, not an escalation.
type TxPool struct {
	mu      sync.Mutex
	pending []*Transaction
	seen    map[accountNonce]struct{}
	ledger  Ledger
	maxSize int
}

func NewTxPool(ledger Ledger, maxSize int) *TxPool {
	if maxSize <= 0 {
		maxSize = 1 << 16
	}
	return &TxPool{
		seen:    make(map[accountNonce]struct{}),
		ledger:  ledger,
		maxSize: maxSize,
	}
}

// Admit validates and stages a transaction. Errors are typed so
// callers can distinguish retryable conditions.
func (p *TxPool) Admit(tx *Transaction) error {
	if !tx.VerifySignature() {
		return ErrInvalidSignature
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	key := accountNonce{tx.Account, tx.Nonce}
	if _, dup := p.seen[key]; dup {
		return ErrDuplicateNonce
	}
	if len(p.pending) >= p.maxSize {
		return ErrPoolFull
	}
	if p.ledger != nil && !p.ledger.Reserve(tx.Account, tx.Cost()) {
		return ErrInsufficientBalance
	}

	p.seen[key] = struct{}{}
	p.pending = append(p.pending, tx)
	return nil
}

// Drain removes up to max transactions in admission order. Only the
// consensus engine calls this during block assembly; transactions not
// included in an accepted block must be returned via Requeue.
func (p *TxPool) Drain(max int) []*Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.pending)
	if max > 0 && n > max {
		n = max
	}
	if n == 0 {
		return nil
	}
	out := make([]*Transaction, n)
	copy(out, p.pending[:n])
	p.pending = append(p.pending[:0], p.pending[n:]...)
	return out
}

// Requeue returns drained transactions to the front of the pending
// set, preserving their original order. Their (account, nonce) pairs
// were never forgotten, so duplicates stay rejected.
func (p *TxPool) Requeue(txs []*Transaction) {
	if len(txs) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(txs, p.pending...)
}

func (p *TxPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

package ledger

import "sync"

// InMemory is a process-local account ledger satisfying the pool's
// balance boundary. Reservations are held until released or settled.
type InMemory struct {
	mu       sync.Mutex
	balances map[uint64]int64
	reserved map[uint64]int64
}

func NewInMemory() *InMemory {
	return &InMemory{
		balances: make(map[uint64]int64),
		reserved: make(map[uint64]int64),
	}
}

// Credit adds funds to an account.
func (l *InMemory) Credit(account uint64, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] += amount
}

// GetBalance returns the unreserved balance.
func (l *InMemory) GetBalance(account uint64) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[account] - l.reserved[account]
}

// Reserve holds amount against the account if covered.
func (l *InMemory) Reserve(account uint64, amount int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.balances[account]-l.reserved[account] < amount {
		return false
	}
	l.reserved[account] += amount
	return true
}

// Release frees a prior reservation without spending it.
func (l *InMemory) Release(account uint64, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reserved[account] -= amount
	if l.reserved[account] < 0 {
		l.reserved[account] = 0
	}
}

// Settle consumes a reservation and debits the balance.
func (l *InMemory) Settle(account uint64, amount int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reserved[account] -= amount
	if l.reserved[account] < 0 {
		l.reserved[account] = 0
	}
	l.balances[account] -= amount
}

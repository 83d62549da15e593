package chain

import (
	"fmt"
	"sync"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
)

// Authority is one registered validator identity. Expertise and
// Regions describe what the validator is authorized to vouch for;
// Active gates schedule participation.
type Authority struct {
	ID        string
	PubKey    ed25519.PublicKey
	Expertise []string // energy sources, e.g. "solar"
	Regions   []string
	Active    bool
}

// Registry is the explicit validator-set context owned by the
// consensus engine. It is not a process-wide singleton so multiple
// chains and tests can run independently.
type Registry struct {
	mu    sync.RWMutex
	byID  map[string]*Authority
	order []string // insertion order of active validators
}

func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Authority)}
}

// Add registers or re-activates a validator.
func (r *Registry) Add(a Authority) error {
	if a.ID == "" {
		return fmt.Errorf("registry: empty validator id")
	}
	if len(a.PubKey) != ed25519.PublicKeySize {
		return fmt.Errorf("registry: validator %s has no valid public key", a.ID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byID[a.ID]; ok {
		wasActive := existing.Active
		a.Active = true
		*existing = a
		if !wasActive {
			r.order = append(r.order, a.ID)
		}
		return nil
	}
	a.Active = true
	cp := a
	r.byID[a.ID] = &cp
	r.order = append(r.order, a.ID)
	return nil
}

// Remove deactivates a validator. The schedule must be recomputed
// afterwards so round mod count stays well-defined.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok || !a.Active {
		return fmt.Errorf("registry: validator %s not active", id)
	}
	a.Active = false
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a copy of the authority, active or not.
func (r *Registry) Get(id string) (Authority, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	if !ok {
		return Authority{}, false
	}
	return *a, true
}

// ActiveIDs returns the active validator identities in registration
// order. This ordering is what the schedule rotates over.
func (r *Registry) ActiveIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) ActiveCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

package events

import (
	"sync"
	"sync/atomic"
)

// Publisher fans events out to subscribers over bounded queues.
// Publishing never blocks: a subscriber that cannot keep up has
// events dropped and its drop counter incremented. Ordering follows
// emission order for every subscriber that does keep up.
type Publisher struct {
	mu     sync.RWMutex
	subs   map[uint64]*subscription
	nextID uint64
	seq    atomic.Uint64
	buffer int
}

type subscription struct {
	ch      chan Event
	dropped atomic.Uint64
}

// NewPublisher creates a publisher with the given per-subscriber
// buffer size.
func NewPublisher(buffer int) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{
		subs:   make(map[uint64]*subscription),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. The returned cancel func
// closes the channel and must be called exactly once.
func (p *Publisher) Subscribe() (<-chan Event, func()) {
	sub := &subscription{ch: make(chan Event, p.buffer)}

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = sub
	p.mu.Unlock()

	cancel := func() {
		p.mu.Lock()
		if s, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(s.ch)
		}
		p.mu.Unlock()
	}
	return sub.ch, cancel
}

// Publish stamps the event with a sequence number and delivers it to
// every subscriber with room in its queue.
func (p *Publisher) Publish(ev Event) {
	ev.Seq = p.seq.Add(1)

	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, sub := range p.subs {
		select {
		case sub.ch <- ev:
		default:
			sub.dropped.Add(1)
		}
	}
}

// Dropped sums drop counters across live subscribers.
func (p *Publisher) Dropped() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var total uint64
	for _, sub := range p.subs {
		total += sub.dropped.Load()
	}
	return total
}

// SubscriberCount reports the number of live subscribers.
func (p *Publisher) SubscriberCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subs)
}

package orderbook

// PriceLevel holds all resting orders at one price, FIFO by arrival.
type PriceLevel struct {
	Price      int64
	head       *Order
	tail       *Order
	TotalQty   int64
	OrderCount int
}

func (p *PriceLevel) Head() *Order { return p.head }

func (p *PriceLevel) Enqueue(o *Order) {
	if p.head == nil {
		p.head = o
		p.tail = o
	} else {
		p.tail.next = o
		o.prev = p.tail
		p.tail = o
	}
	p.TotalQty += o.Remaining
	p.OrderCount++
}

func (p *PriceLevel) unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		p.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		p.tail = o.prev
	}
	o.next = nil
	o.prev = nil
	p.TotalQty -= o.Remaining
	p.OrderCount--
	if p.TotalQty < 0 {
		p.TotalQty = 0
	}
}

// recount restores TotalQty/OrderCount from the chain after a
// forced removal tripped the integrity check.
func (p *PriceLevel) recount() {
	var qty int64
	n := 0
	for o := p.head; o != nil; o = o.next {
		qty += o.Remaining
		n++
	}
	p.TotalQty = qty
	p.OrderCount = n
}

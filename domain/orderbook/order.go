package orderbook

type Side int
type Kind int
type TimeInForce int
type Status int

const (
	Bid Side = iota
	Ask
)

const (
	Limit Kind = iota
	Market
)

const (
	GoodTillCancelled TimeInForce = iota
	ImmediateOrCancel
	FillOrKill
)

const (
	Active Status = iota
	PartiallyFilled
	Filled
	Cancelled
	Expired
)

func (s Side) String() string {
	if s == Bid {
		return "bid"
	}
	return "ask"
}

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case PartiallyFilled:
		return "partially_filled"
	case Filled:
		return "filled"
	case Cancelled:
		return "cancelled"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

func (t TimeInForce) String() string {
	switch t {
	case GoodTillCancelled:
		return "GTC"
	case ImmediateOrCancel:
		return "IOC"
	case FillOrKill:
		return "FOK"
	default:
		return "unknown"
	}
}

// Order is a resting or incoming energy order. Price is fixed-point
// currency per kWh, Qty and Remaining are watt-hours. Seq is the
// venue-local arrival sequence used for time-priority tie-break.
type Order struct {
	ID        uint64
	AccountID uint64
	Venue     string
	Source    string // optional energy-source tag ("solar", "wind", ...)
	Side      Side
	Kind      Kind
	TIF       TimeInForce
	Price     int64
	Qty       int64
	Remaining int64
	Seq       uint64
	ExpiresAt int64 // unix nanos, 0 means no deadline
	Status    Status

	retireEpoch uint64
	next        *Order
	prev        *Order
}

func (o *Order) Filled() int64 { return o.Qty - o.Remaining }

// Next walks the FIFO chain inside a price level.
func (o *Order) Next() *Order { return o.next }

// Implement memory.Reclaimable.
func (o *Order) Reset()                  { *o = Order{} }
func (o *Order) RetireEpoch() uint64     { return o.retireEpoch }
func (o *Order) SetRetireEpoch(v uint64) { o.retireEpoch = v }

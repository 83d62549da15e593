package events

// Standard event topics.
const (
	TopicTrade = "trade"
	TopicBook  = "book"
	TopicBlock = "block"
)

// TradeEvent is published for every execution.
type TradeEvent struct {
	TradeID     string
	Venue       string
	Price       int64
	Qty         int64
	BuyOrderID  uint64
	SellOrderID uint64
	BuyAccount  uint64
	SellAccount uint64
	Source      string
	Time        int64
}

// BookEvent is published for every book mutation.
type BookEvent struct {
	Venue     string
	Action    string // "insert", "fill", "cancel", "expire"
	OrderID   uint64
	Side      string
	Price     int64
	Remaining int64
	Time      int64
}

// BlockEvent notifies finality of a sealed block.
type BlockEvent struct {
	Height      uint64
	Hash        string
	Validator   string
	TxCount     int
	TotalEnergy int64
	TotalFees   int64
	Time        int64
}

// Event is the tagged union delivered to subscribers. Exactly one of
// the payload pointers is set, matching Topic.
type Event struct {
	Topic string
	Seq   uint64
	Trade *TradeEvent
	Book  *BookEvent
	Block *BlockEvent
}

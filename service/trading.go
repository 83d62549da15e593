package service

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/rs/zerolog"

	"ampere/domain/chain"
	"ampere/domain/orderbook"
	"ampere/events"
	"ampere/infra/journal"
	"ampere/infra/memory"
	"ampere/infra/sequence"
)

// Typed rejection reasons. None of them mutate the book.
var (
	ErrUnknownVenue       = errors.New("trading: unknown venue")
	ErrInvalidQuantity    = errors.New("trading: quantity out of bounds")
	ErrInvalidPrice       = errors.New("trading: price out of bounds")
	ErrInvalidTimeInForce = errors.New("trading: unrecognized time-in-force")
	ErrGridCongestion     = errors.New("trading: grid capacity exceeded")
)

// CapacityOracle is the grid-capacity collaborator consulted before
// an order is admitted.
type CapacityOracle interface {
	CheckCapacity(venue string, qty int64) bool
}

// Persistence is the fire-and-forget audit-trail collaborator.
// Failures are logged and never roll back in-memory state.
type Persistence interface {
	PersistOrder(o orderbook.Order) error
	PersistTrade(t chain.TradeSettlement) error
}

// VenueConfig bounds one grid location's market.
type VenueConfig struct {
	Name     string
	MinPrice int64
	MaxPrice int64
	MaxQty   int64
	Book     orderbook.Config
}

type venue struct {
	cfg   VenueConfig
	mu    sync.RWMutex
	book  *orderbook.OrderBook
	stats *venueStats
}

// SubmitRequest carries one inbound order.
type SubmitRequest struct {
	AccountID uint64
	Venue     string
	Source    string
	Side      orderbook.Side
	Kind      orderbook.Kind
	TIF       orderbook.TimeInForce
	Price     int64
	Qty       int64
	ExpiresAt int64
}

// SubmitResult reports the immediate matching outcome.
type SubmitResult struct {
	OrderID    uint64
	Seq        uint64
	Status     orderbook.Status
	Remaining  int64
	Executions []orderbook.Execution
}

/*
TradingService is the ONLY write entry point into the matching side.

All coordination between the venue books, memory reclamation, the
intent journal, the event publisher, and the settlement pipeline
happens here. State mutations hold the venue lock, and the intent
journal is appended under that same lock so replay rebuilds the books
in mutation order. Persistence and event emission are dispatched after
the lock is released, so external latency never extends the lock-held
window.
*/
type TradingService struct {
	venues map[string]*venue

	pool   *memory.Pool[orderbook.Order]
	ring   *memory.RetireRing
	reader *memory.ReaderEpoch
	seq    *sequence.Sequencer

	jrnl   *journal.Journal
	pub    *events.Publisher
	txpool *chain.TxPool
	oracle CapacityOracle
	store  Persistence
	log    zerolog.Logger

	// Settlement transactions are stamped by the venue operator
	// account with its own monotonic nonce.
	operatorAccount uint64
	operatorKey     ed25519.PrivateKey
	operatorNonce   atomic.Uint64
}

// NewTradingService wires all dependencies. No globals.
func NewTradingService(
	venueCfgs []VenueConfig,
	ring *memory.RetireRing,
	seq *sequence.Sequencer,
	jrnl *journal.Journal,
	pub *events.Publisher,
	txpool *chain.TxPool,
	oracle CapacityOracle,
	store Persistence,
	operatorAccount uint64,
	operatorKey ed25519.PrivateKey,
	log zerolog.Logger,
) *TradingService {
	s := &TradingService{
		venues: make(map[string]*venue, len(venueCfgs)),
		pool: memory.NewPool(func() *orderbook.Order {
			return &orderbook.Order{}
		}),
		ring:            ring,
		reader:          memory.NewReaderEpoch(),
		seq:             seq,
		jrnl:            jrnl,
		pub:             pub,
		txpool:          txpool,
		oracle:          oracle,
		store:           store,
		operatorAccount: operatorAccount,
		operatorKey:     operatorKey,
		log:             log.With().Str("module", "trading").Logger(),
	}
	for _, cfg := range venueCfgs {
		s.venues[cfg.Name] = &venue{
			cfg:   cfg,
			book:  orderbook.NewOrderBook(cfg.Book, ring),
			stats: newVenueStats(),
		}
	}
	return s
}

// Venues lists the configured venue names.
func (s *TradingService) Venues() []string {
	out := make([]string, 0, len(s.venues))
	for name := range s.venues {
		out = append(out, name)
	}
	return out
}

// Submit validates, journals, and matches one order. The returned
// executions are what matched immediately; the remainder either
// rests or is cancelled per the order's time-in-force.
func (s *TradingService) Submit(req SubmitRequest) (*SubmitResult, error) {
	v, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	o := s.pool.Get()

	v.mu.Lock()
	id := s.seq.Next()

	// Journal the intent before touching the book, inside the venue
	// lock so replay sees the same placement order. Best effort: a
	// journal failure degrades recovery, not matching.
	if _, err := s.jrnl.Append(
		journal.RecordSubmit,
		encodeSubmit(submitPayload{
			OrderID:   id,
			AccountID: req.AccountID,
			Venue:     req.Venue,
			Source:    req.Source,
			Side:      req.Side,
			Kind:      req.Kind,
			TIF:       req.TIF,
			Price:     req.Price,
			Qty:       req.Qty,
			ExpiresAt: req.ExpiresAt,
		}),
	); err != nil {
		s.log.Error().Err(err).Uint64("order", id).Msg("journal append failed")
	}

	*o = orderbook.Order{
		ID:        id,
		AccountID: req.AccountID,
		Venue:     req.Venue,
		Source:    req.Source,
		Side:      req.Side,
		Kind:      req.Kind,
		TIF:       req.TIF,
		Price:     req.Price,
		Qty:       req.Qty,
		Remaining: req.Qty,
		Seq:       id,
		ExpiresAt: req.ExpiresAt,
		Status:    orderbook.Active,
	}

	execs := v.book.Place(o)
	res := &SubmitResult{
		OrderID:    id,
		Seq:        id,
		Status:     o.Status,
		Remaining:  o.Remaining,
		Executions: execs,
	}
	orderCopy := *o
	v.mu.Unlock()

	s.afterMatch(v, orderCopy, execs)
	return res, nil
}

// Cancel removes a resting order if the requester owns it.
func (s *TradingService) Cancel(venueName string, orderID, accountID uint64) (orderbook.CancelResult, error) {
	v, ok := s.venues[venueName]
	if !ok {
		return orderbook.CancelNotFound, ErrUnknownVenue
	}

	v.mu.Lock()
	if _, err := s.jrnl.Append(
		journal.RecordCancel,
		encodeCancel(cancelPayload{OrderID: orderID, AccountID: accountID, Venue: venueName}),
	); err != nil {
		s.log.Error().Err(err).Uint64("order", orderID).Msg("journal append failed")
	}

	var snapshot orderbook.Order
	if o := v.book.Lookup(orderID); o != nil {
		snapshot = *o
	}
	res := v.book.Cancel(orderID, accountID)
	v.mu.Unlock()

	if res == orderbook.CancelOK {
		snapshot.Status = orderbook.Cancelled
		s.publishBook(venueName, "cancel", snapshot)
		s.persistOrder(snapshot)
	}
	return res, nil
}

// ExpireSweep removes resting orders whose deadline passed across all
// venues and emits cancellation events for them.
func (s *TradingService) ExpireSweep(now time.Time) int {
	total := 0
	for name, v := range s.venues {
		v.mu.Lock()
		expired := v.book.ExpireBefore(now.UnixNano())
		snapshots := make([]orderbook.Order, len(expired))
		for i, o := range expired {
			snapshots[i] = *o
		}
		v.mu.Unlock()

		for _, snap := range snapshots {
			s.publishBook(name, "expire", snap)
			s.persistOrder(snap)
		}
		total += len(snapshots)
	}
	return total
}

// AdvanceEpoch performs safe reclamation of retired orders. Called
// periodically by a background job.
func (s *TradingService) AdvanceEpoch() {
	memory.AdvanceEpochAndReclaim(s.ring, s.pool, s.reader)
}

// --- validation ---

func (s *TradingService) validate(req SubmitRequest) (*venue, error) {
	v, ok := s.venues[req.Venue]
	if !ok {
		return nil, ErrUnknownVenue
	}
	if req.Qty <= 0 || (v.cfg.MaxQty > 0 && req.Qty > v.cfg.MaxQty) {
		return nil, ErrInvalidQuantity
	}
	if req.Kind != orderbook.Market {
		if req.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		if v.cfg.MinPrice > 0 && req.Price < v.cfg.MinPrice {
			return nil, ErrInvalidPrice
		}
		if v.cfg.MaxPrice > 0 && req.Price > v.cfg.MaxPrice {
			return nil, ErrInvalidPrice
		}
	}
	switch req.TIF {
	case orderbook.GoodTillCancelled, orderbook.ImmediateOrCancel, orderbook.FillOrKill:
	default:
		return nil, ErrInvalidTimeInForce
	}
	if s.oracle != nil && !s.oracle.CheckCapacity(req.Venue, req.Qty) {
		return nil, ErrGridCongestion
	}
	return v, nil
}

// --- post-match dispatch (outside the venue lock) ---

func (s *TradingService) afterMatch(v *venue, incoming orderbook.Order, execs []orderbook.Execution) {
	now := time.Now().UnixNano()

	restingSide := orderbook.Ask
	if incoming.Side == orderbook.Ask {
		restingSide = orderbook.Bid
	}

	for _, ex := range execs {
		settlement := s.settlementFor(incoming, ex, now)
		v.stats.AddTrade(ex.Price, ex.Qty, now)

		s.pub.Publish(events.Event{Topic: events.TopicTrade, Trade: &events.TradeEvent{
			TradeID:     settlement.TradeID,
			Venue:       incoming.Venue,
			Price:       ex.Price,
			Qty:         ex.Qty,
			BuyOrderID:  settlement.BuyOrderID,
			SellOrderID: settlement.SellOrderID,
			BuyAccount:  settlement.BuyAccount,
			SellAccount: settlement.SellAccount,
			Source:      incoming.Source,
			Time:        now,
		}})
		s.publishBookDelta(incoming.Venue, "fill", ex.RestingID, restingSide.String(), ex.Price, now)

		tx := &chain.Transaction{
			Kind:    chain.TxTradeSettlement,
			Account: s.operatorAccount,
			Nonce:   s.operatorNonce.Add(1),
			Trade:   settlement,
		}
		tx.Sign(s.operatorKey)
		if err := s.txpool.Admit(tx); err != nil {
			s.log.Error().Err(err).
				Str("trade", settlement.TradeID).
				Msg("settlement admission failed")
		}
		s.persistTrade(settlement)
	}

	switch incoming.Status {
	case orderbook.Active, orderbook.PartiallyFilled:
		if incoming.Remaining > 0 {
			s.publishBook(incoming.Venue, "insert", incoming)
		}
	}
	s.persistOrder(incoming)
}

func (s *TradingService) settlementFor(incoming orderbook.Order, ex orderbook.Execution, now int64) chain.TradeSettlement {
	t := chain.TradeSettlement{
		TradeID:    uuid.Must(uuid.NewV7()).String(),
		Venue:      incoming.Venue,
		Price:      ex.Price,
		Qty:        ex.Qty,
		Source:     incoming.Source,
		ExecutedAt: now,
	}
	if incoming.Side == orderbook.Bid {
		t.BuyOrderID, t.BuyAccount = ex.IncomingID, ex.IncomingAccount
		t.SellOrderID, t.SellAccount = ex.RestingID, ex.RestingAccount
	} else {
		t.BuyOrderID, t.BuyAccount = ex.RestingID, ex.RestingAccount
		t.SellOrderID, t.SellAccount = ex.IncomingID, ex.IncomingAccount
	}
	return t
}

func (s *TradingService) publishBook(venueName, action string, o orderbook.Order) {
	s.pub.Publish(events.Event{Topic: events.TopicBook, Book: &events.BookEvent{
		Venue:     venueName,
		Action:    action,
		OrderID:   o.ID,
		Side:      o.Side.String(),
		Price:     o.Price,
		Remaining: o.Remaining,
		Time:      time.Now().UnixNano(),
	}})
}

func (s *TradingService) publishBookDelta(venueName, action string, orderID uint64, side string, price, now int64) {
	s.pub.Publish(events.Event{Topic: events.TopicBook, Book: &events.BookEvent{
		Venue:   venueName,
		Action:  action,
		OrderID: orderID,
		Side:    side,
		Price:   price,
		Time:    now,
	}})
}

func (s *TradingService) persistOrder(o orderbook.Order) {
	if s.store == nil {
		return
	}
	go func() {
		if err := s.store.PersistOrder(o); err != nil {
			s.log.Error().Err(err).Uint64("order", o.ID).Msg("persist order failed")
		}
	}()
}

func (s *TradingService) persistTrade(t chain.TradeSettlement) {
	if s.store == nil {
		return
	}
	go func() {
		if err := s.store.PersistTrade(t); err != nil {
			s.log.Error().Err(err).Str("trade", t.TradeID).Msg("persist trade failed")
		}
	}()
}

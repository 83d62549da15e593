package chain

import (
	"context"
	"errors"
	"time"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/rs/zerolog"
)

var (
	ErrBadSignature     = errors.New("consensus: invalid validator signature")
	ErrWrongValidator   = errors.New("consensus: validator not scheduled for round")
	ErrUnknownValidator = errors.New("consensus: validator not registered")
	ErrBadTxRoot        = errors.New("consensus: tx root mismatch")
	ErrEmptyBlock       = errors.New("consensus: empty block not allowed")
)

type EngineConfig struct {
	// LocalID is this node's validator identity; empty for a
	// non-producing observer.
	LocalID string
	// MaxBlockTxs caps how many transactions one block may seal.
	MaxBlockTxs int
	// AllowEmptyBlocks keeps the interval cadence even when the pool
	// is empty.
	AllowEmptyBlocks bool
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{MaxBlockTxs: 512}
}

// Engine orchestrates block production: drain the pool, assemble and
// seal a block as the scheduled validator, append it, advance the
// schedule. Production is strictly serialized; at most one block is
// being appended at any instant.
type Engine struct {
	cfg      EngineConfig
	priv     ed25519.PrivateKey
	registry *Registry
	schedule *Schedule
	pool     *TxPool
	chain    *ChainState
	log      zerolog.Logger

	// onCommit is invoked after every locally accepted block, outside
	// the append path.
	onCommit func(*Block)
}

func NewEngine(
	cfg EngineConfig,
	priv ed25519.PrivateKey,
	registry *Registry,
	schedule *Schedule,
	pool *TxPool,
	chain *ChainState,
	log zerolog.Logger,
) *Engine {
	return &Engine{
		cfg:      cfg,
		priv:     priv,
		registry: registry,
		schedule: schedule,
		pool:     pool,
		chain:    chain,
		log:      log.With().Str("module", "consensus").Logger(),
	}
}

// OnCommit registers the block-finality callback.
func (e *Engine) OnCommit(fn func(*Block)) { e.onCommit = fn }

// Run drives the produce loop until the context is cancelled. The
// tick is a fraction of the block interval so a late round is picked
// up promptly.
func (e *Engine) Run(ctx context.Context) {
	tick := e.schedule.Interval() / 4
	if tick <= 0 {
		tick = time.Second
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			e.maybeProduce(now)
		}
	}
}

func (e *Engine) maybeProduce(now time.Time) {
	if e.cfg.LocalID == "" || !e.schedule.Due(now) {
		return
	}
	round, scheduled := e.schedule.Current()
	if scheduled != e.cfg.LocalID {
		return
	}
	if err := e.ProduceBlock(round, now); err != nil {
		// Back to idle without advancing the round; this validator
		// retries on the next interval tick.
		if !errors.Is(err, ErrEmptyBlock) {
			e.log.Warn().Err(err).Uint64("round", round).Msg("block production failed")
		}
	}
}

// ProduceBlock assembles, seals, and appends one block for the given
// round. On any failure drained transactions go back to the pool and
// the round does not advance.
func (e *Engine) ProduceBlock(round uint64, now time.Time) error {
	txs := e.pool.Drain(e.cfg.MaxBlockTxs)
	if len(txs) == 0 && !e.cfg.AllowEmptyBlocks {
		return ErrEmptyBlock
	}

	head := e.chain.Head()
	totalEnergy, totalFees := BlockStats(txs)
	b := &Block{
		Header: BlockHeader{
			Height:      head.Header.Height + 1,
			Round:       round,
			ParentHash:  head.Hash(),
			Time:        now.UnixNano(),
			Validator:   e.cfg.LocalID,
			TxRoot:      TxRoot(txs),
			TotalEnergy: totalEnergy,
			TotalFees:   totalFees,
		},
		Txs: txs,
	}
	b.Seal(e.priv)

	if err := e.chain.Append(b); err != nil {
		e.pool.Requeue(txs)
		return err
	}
	e.schedule.Advance(now)

	e.log.Info().
		Uint64("height", b.Header.Height).
		Uint64("round", round).
		Int("txs", len(txs)).
		Int64("energy_wh", totalEnergy).
		Msg("block sealed")

	if e.onCommit != nil {
		e.onCommit(b)
	}
	return nil
}

// VerifyBlock performs full admission checks on a received block:
// tx-root recomputation, seal verification against the registered
// key, schedule membership for the block's round, and continuity
// against the current head. A failed block is never partially
// applied.
func (e *Engine) VerifyBlock(b *Block) error {
	if TxRoot(b.Txs) != b.Header.TxRoot {
		return ErrBadTxRoot
	}
	auth, ok := e.registry.Get(b.Header.Validator)
	if !ok || !auth.Active {
		return ErrUnknownValidator
	}
	if !b.VerifySeal(auth.PubKey) {
		return ErrBadSignature
	}
	if e.schedule.ScheduledFor(b.Header.Round) != b.Header.Validator {
		return ErrWrongValidator
	}
	head := e.chain.Head()
	if b.Header.ParentHash != head.Hash() {
		return ErrBadParent
	}
	if b.Header.Height != head.Header.Height+1 {
		return ErrBadHeight
	}
	return nil
}

// ApplyBlock verifies and appends a block produced elsewhere, then
// advances the schedule exactly once.
func (e *Engine) ApplyBlock(b *Block) error {
	if err := e.VerifyBlock(b); err != nil {
		e.log.Warn().Err(err).
			Uint64("height", b.Header.Height).
			Str("validator", b.Header.Validator).
			Msg("rejecting block")
		return err
	}
	if err := e.chain.Append(b); err != nil {
		return err
	}
	e.schedule.Advance(time.Unix(0, b.Header.Time))
	if e.onCommit != nil {
		e.onCommit(b)
	}
	return nil
}

// AddValidator mutates the active set and recomputes the schedule.
func (e *Engine) AddValidator(a Authority) error {
	if err := e.registry.Add(a); err != nil {
		return err
	}
	e.schedule.Recompute(e.registry.ActiveIDs())
	return nil
}

// RemoveValidator deactivates a validator and recomputes the
// schedule; a removed scheduled validator falls through to the next
// active one without skipping an interval.
func (e *Engine) RemoveValidator(id string) error {
	if err := e.registry.Remove(id); err != nil {
		return err
	}
	e.schedule.Recompute(e.registry.ActiveIDs())
	return nil
}

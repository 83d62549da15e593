package broadcaster

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"ampere/infra/store"
)

// Broadcaster drains the block-finality outbox into Kafka. The
// outbox lives in pebble so finality notifications survive restarts:
// anything not ACKED is replayed on the next tick.
type Broadcaster struct {
	st       *store.Store
	producer sarama.SyncProducer
	topic    string
	interval time.Duration
	log      zerolog.Logger
}

func New(
	st *store.Store,
	brokers []string,
	topic string,
	interval time.Duration,
	log zerolog.Logger,
) (*Broadcaster, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Broadcaster{
		st:       st,
		producer: producer,
		topic:    topic,
		interval: interval,
		log:      log.With().Str("module", "broadcaster").Logger(),
	}, nil
}

// Run replays pending outbox records until the context is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.replayOnce()
		}
	}
}

func (b *Broadcaster) replayOnce() {
	err := b.st.OutboxScanPending(func(rec *store.OutboxRecord) error {
		// Mark SENT first: a crash between send and ack re-delivers
		// rather than losing the notification.
		if err := b.st.OutboxMarkSent(rec.Seq); err != nil {
			return err
		}

		msg := &sarama.ProducerMessage{
			Topic: b.topic,
			Value: sarama.ByteEncoder(rec.Payload),
		}
		if _, _, err := b.producer.SendMessage(msg); err != nil {
			b.log.Warn().Err(err).Uint64("seq", rec.Seq).Msg("broadcast failed, will retry")
			return nil
		}

		return b.st.OutboxMarkAcked(rec.Seq)
	})
	if err != nil {
		b.log.Error().Err(err).Msg("outbox scan failed")
	}
}

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}

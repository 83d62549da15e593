package streamer

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/rs/zerolog"

	"ampere/events"
	"ampere/infra/kafka"
)

// Streamer bridges the in-process publisher to Kafka: it subscribes
// like any other consumer and forwards trade and book events as JSON.
// Dropped events follow the publisher's overflow semantics; the
// stream is a feed, not a ledger.
type Streamer struct {
	pub      *events.Publisher
	producer *kafka.Producer
	log      zerolog.Logger
}

func New(pub *events.Publisher, producer *kafka.Producer, log zerolog.Logger) *Streamer {
	return &Streamer{
		pub:      pub,
		producer: producer,
		log:      log.With().Str("module", "streamer").Logger(),
	}
}

// Run consumes until the context is cancelled.
func (s *Streamer) Run(ctx context.Context) {
	ch, cancel := s.pub.Subscribe()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			s.forward(ctx, ev)
		}
	}
}

func (s *Streamer) forward(ctx context.Context, ev events.Event) {
	payload, err := json.Marshal(ev)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal event")
		return
	}
	key := []byte(ev.Topic + "/" + strconv.FormatUint(ev.Seq, 10))
	if err := s.producer.Send(ctx, key, payload); err != nil {
		s.log.Warn().Err(err).Str("topic", ev.Topic).Msg("kafka send failed")
	}
}

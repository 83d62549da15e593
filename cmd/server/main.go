package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"google.golang.org/grpc"

	"ampere/api/grpcserver"
	pb "ampere/api/pb"
	"ampere/domain/chain"
	"ampere/domain/orderbook"
	"ampere/events"
	"ampere/infra/grid"
	"ampere/infra/journal"
	"ampere/infra/kafka"
	"ampere/infra/ledger"
	"ampere/infra/memory"
	"ampere/infra/sequence"
	"ampere/infra/store"
	"ampere/jobs/broadcaster"
	"ampere/jobs/streamer"
	"ampere/service"
)

func main() {
	cfg := loadConfig()

	level, err := zerolog.ParseLevel(cfg.GetString("log.level"))
	if err != nil {
		level = zerolog.InfoLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	// ---------------- Keys and identity ----------------

	validatorID := cfg.GetString("validator.id")
	priv, pubKey := loadKey(cfg.GetString("validator.key_seed"), log)

	// ---------------- Storage ----------------

	st, err := store.Open(cfg.GetString("store.dir"))
	if err != nil {
		log.Fatal().Err(err).Msg("store open failed")
	}
	defer st.Close()

	jrnl, err := journal.Open(journal.Config{
		Dir:         cfg.GetString("journal.dir"),
		SegmentSize: cfg.GetInt64("journal.segment_size"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("journal open failed")
	}
	defer jrnl.Close()

	// ---------------- Chain ----------------

	lgr := ledger.NewInMemory()
	for acct, amount := range cfg.GetStringMap("ledger.balances") {
		creditBalance(lgr, acct, amount, log)
	}

	registry := chain.NewRegistry()
	if validatorID != "" {
		mustAdd(registry, chain.Authority{
			ID:     validatorID,
			PubKey: pubKey,
			Active: true,
		}, log)
	}
	for _, peer := range peerValidators(cfg, log) {
		mustAdd(registry, peer, log)
	}

	interval := cfg.GetDuration("chain.block_interval")
	schedule := chain.NewSchedule(registry.ActiveIDs(), interval)
	state := chain.NewChainState()
	txpool := chain.NewTxPool(lgr, cfg.GetInt("chain.pool_size"))

	engineCfg := chain.DefaultEngineConfig()
	engineCfg.LocalID = validatorID
	engineCfg.MaxBlockTxs = cfg.GetInt("chain.max_block_txs")
	engineCfg.AllowEmptyBlocks = cfg.GetBool("chain.allow_empty_blocks")
	engine := chain.NewEngine(engineCfg, priv, registry, schedule, txpool, state, log)

	// ---------------- Events ----------------

	pub := events.NewPublisher(cfg.GetInt("events.buffer"))

	engine.OnCommit(func(b *chain.Block) {
		hash := b.Hash()
		pub.Publish(events.Event{
			Topic: events.TopicBlock,
			Block: &events.BlockEvent{
				Height:      b.Header.Height,
				Hash:        hex.EncodeToString(hash[:]),
				Validator:   b.Header.Validator,
				TxCount:     len(b.Txs),
				TotalEnergy: b.Header.TotalEnergy,
				TotalFees:   b.Header.TotalFees,
				Time:        b.Header.Time,
			},
		})
		if err := st.PersistBlock(b); err != nil {
			log.Error().Err(err).Uint64("height", b.Header.Height).Msg("persist block failed")
		}
		if err := st.OutboxPut(b.Header.Height, chain.EncodeBlock(b)); err != nil {
			log.Error().Err(err).Uint64("height", b.Header.Height).Msg("outbox put failed")
		}
	})

	// ---------------- Trading service ----------------

	ring := memory.NewRetireRing(1 << 18)
	seqGen := sequence.New(0)
	oracle := grid.NewStaticOracle(capacityLimits(cfg))

	svc := service.NewTradingService(
		venueConfigs(cfg),
		ring,
		seqGen,
		jrnl,
		pub,
		txpool,
		oracle,
		st,
		cfg.GetUint64("operator.account"),
		priv,
		log,
	)

	// Books must be rebuilt before any traffic is accepted.
	if err := svc.ReplayJournal(cfg.GetString("journal.dir")); err != nil {
		log.Fatal().Err(err).Msg("journal replay failed")
	}

	// ---------------- Background jobs ----------------

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	go svc.RunEpochJob(ctx, cfg.GetDuration("jobs.epoch_interval"))
	go svc.RunExpiryJob(ctx, cfg.GetDuration("jobs.expiry_interval"))
	go engine.Run(ctx)

	producer := kafka.NewProducer(
		cfg.GetStringSlice("kafka.brokers"),
		cfg.GetString("kafka.events_topic"),
	)
	defer producer.Close()
	go streamer.New(pub, producer, log).Run(ctx)

	bc, err := broadcaster.New(
		st,
		cfg.GetStringSlice("kafka.brokers"),
		cfg.GetString("kafka.blocks_topic"),
		cfg.GetDuration("jobs.broadcast_interval"),
		log,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("broadcaster init failed")
	}
	defer bc.Close()
	go bc.Run(ctx)

	// ---------------- gRPC ----------------

	lis, err := net.Listen("tcp", cfg.GetString("grpc.listen"))
	if err != nil {
		log.Fatal().Err(err).Msg("listen failed")
	}

	grpcSrv := grpc.NewServer()
	pb.RegisterTradingServer(grpcSrv, grpcserver.NewServer(svc))
	pb.RegisterValidatorsServer(grpcSrv, grpcserver.NewValidatorServer(engine, registry, schedule))

	go func() {
		<-ctx.Done()
		grpcSrv.GracefulStop()
	}()

	log.Info().
		Str("listen", cfg.GetString("grpc.listen")).
		Str("validator", validatorID).
		Int("venues", len(svc.Venues())).
		Msg("ampere engine running")

	if err := grpcSrv.Serve(lis); err != nil {
		log.Fatal().Err(err).Msg("grpc server exited")
	}
}

func loadConfig() *viper.Viper {
	v := viper.New()
	v.SetConfigName("ampere")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/ampere")
	v.SetEnvPrefix("AMPERE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("grpc.listen", ":50051")
	v.SetDefault("journal.dir", "./data/journal")
	v.SetDefault("journal.segment_size", int64(2*1024*1024))
	v.SetDefault("store.dir", "./data/store")
	v.SetDefault("kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("kafka.events_topic", "ampere.events")
	v.SetDefault("kafka.blocks_topic", "ampere.blocks")
	v.SetDefault("events.buffer", 256)
	v.SetDefault("chain.block_interval", 2*time.Second)
	v.SetDefault("chain.pool_size", 1<<16)
	v.SetDefault("chain.max_block_txs", 512)
	v.SetDefault("chain.allow_empty_blocks", false)
	v.SetDefault("jobs.epoch_interval", 2*time.Second)
	v.SetDefault("jobs.expiry_interval", time.Second)
	v.SetDefault("jobs.broadcast_interval", 2*time.Second)
	v.SetDefault("operator.account", uint64(0))
	v.SetDefault("validator.id", "")
	v.SetDefault("validator.key_seed", "")

	// Config file is optional; defaults plus env cover dev runs.
	_ = v.ReadInConfig()
	return v
}

// loadKey derives the validator keypair from a hex seed, generating
// an ephemeral one when no seed is configured.
func loadKey(seedHex string, log zerolog.Logger) (ed25519.PrivateKey, ed25519.PublicKey) {
	if seedHex == "" {
		pub, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			log.Fatal().Err(err).Msg("key generation failed")
		}
		log.Warn().Msg("no validator.key_seed configured, using ephemeral key")
		return priv, pub
	}
	seed, err := hex.DecodeString(seedHex)
	if err != nil || len(seed) != ed25519.SeedSize {
		log.Fatal().Msg("validator.key_seed must be a 32-byte hex string")
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return priv, priv.Public().(ed25519.PublicKey)
}

func mustAdd(r *chain.Registry, a chain.Authority, log zerolog.Logger) {
	if err := r.Add(a); err != nil {
		log.Fatal().Err(err).Str("validator", a.ID).Msg("registry add failed")
	}
}

// peerValidators reads the remote authority set from config. Each
// entry carries an id and a hex public key.
func peerValidators(cfg *viper.Viper, log zerolog.Logger) []chain.Authority {
	var raw []struct {
		ID        string   `mapstructure:"id"`
		PubKey    string   `mapstructure:"pub_key"`
		Expertise []string `mapstructure:"expertise"`
		Regions   []string `mapstructure:"regions"`
	}
	if err := cfg.UnmarshalKey("validators", &raw); err != nil {
		log.Fatal().Err(err).Msg("bad validators config")
	}
	out := make([]chain.Authority, 0, len(raw))
	for _, r := range raw {
		pub, err := hex.DecodeString(r.PubKey)
		if err != nil || len(pub) != ed25519.PublicKeySize {
			log.Fatal().Str("validator", r.ID).Msg("bad validator pub_key")
		}
		out = append(out, chain.Authority{
			ID:        r.ID,
			PubKey:    pub,
			Expertise: r.Expertise,
			Regions:   r.Regions,
			Active:    true,
		})
	}
	return out
}

func venueConfigs(cfg *viper.Viper) []service.VenueConfig {
	var raw []struct {
		Name           string `mapstructure:"name"`
		MinPrice       int64  `mapstructure:"min_price"`
		MaxPrice       int64  `mapstructure:"max_price"`
		MaxQty         int64  `mapstructure:"max_qty"`
		Algorithm      string `mapstructure:"algorithm"`
		AllowSelfMatch bool   `mapstructure:"allow_self_match"`
	}
	if err := cfg.UnmarshalKey("venues", &raw); err != nil || len(raw) == 0 {
		return []service.VenueConfig{{
			Name: "default",
			Book: orderbook.DefaultConfig(),
		}}
	}
	out := make([]service.VenueConfig, 0, len(raw))
	for _, r := range raw {
		book := orderbook.DefaultConfig()
		if r.Algorithm == "pro_rata" {
			book.Algorithm = orderbook.ProRata
		}
		book.AllowSelfMatch = r.AllowSelfMatch
		out = append(out, service.VenueConfig{
			Name:     r.Name,
			MinPrice: r.MinPrice,
			MaxPrice: r.MaxPrice,
			MaxQty:   r.MaxQty,
			Book:     book,
		})
	}
	return out
}

func capacityLimits(cfg *viper.Viper) map[string]int64 {
	out := make(map[string]int64)
	for venue, limit := range cfg.GetStringMap("grid.capacity") {
		switch n := limit.(type) {
		case int:
			out[venue] = int64(n)
		case int64:
			out[venue] = n
		case float64:
			out[venue] = int64(n)
		}
	}
	return out
}

func creditBalance(l *ledger.InMemory, acct string, amount any, log zerolog.Logger) {
	id, err := strconv.ParseUint(acct, 10, 64)
	if err != nil {
		log.Fatal().Str("account", acct).Msg("bad ledger account id")
	}
	switch n := amount.(type) {
	case int:
		l.Credit(id, int64(n))
	case int64:
		l.Credit(id, n)
	case float64:
		l.Credit(id, int64(n))
	default:
		log.Fatal().Str("account", acct).Msg("bad ledger balance value")
	}
}

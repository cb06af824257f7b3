// Command node loads the leadership secrets once and produces blocks on a test chain.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/chainauth/internal/clock"
	"github.com/goodnatureofminers/chainauth/internal/consensus"
	"github.com/goodnatureofminers/chainauth/internal/consensus/mockchain"
	"github.com/goodnatureofminers/chainauth/internal/keys"
	"github.com/goodnatureofminers/chainauth/internal/leadership"
	"github.com/goodnatureofminers/chainauth/internal/metrics"
	"github.com/goodnatureofminers/chainauth/internal/model"
	"github.com/goodnatureofminers/chainauth/internal/producer"
	"github.com/goodnatureofminers/chainauth/internal/secrets"
	grpcMiddleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpcZap "github.com/grpc-ecosystem/go-grpc-middleware/logging/zap"
	grpcRecovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	grpcCtxTags "github.com/grpc-ecosystem/go-grpc-middleware/tags"
	grpcPrometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type config struct {
	Secret           string               `long:"secret" env:"NODE_SECRET" description:"path to the leadership secrets file" required:"true"`
	Consensus        leadership.Consensus `long:"consensus" env:"NODE_CONSENSUS" description:"consensus to produce blocks for" choice:"bft" choice:"genesis" choice:"genesis-praos" default:"bft"`
	GenesisBlockHash model.HeaderHash     `long:"genesis-block-hash" env:"NODE_GENESIS_BLOCK_HASH" description:"hex hash of the genesis block" required:"true"`
	GenesisTime      int64                `long:"genesis-time" env:"NODE_GENESIS_TIME" description:"unix time of slot 0.0; now if 0"`
	BftLeaders       []string             `long:"bft-leader" env:"NODE_BFT_LEADERS" env-delim:"," description:"bech32 ed25519 public key of a BFT leader, in schedule order"`
	PoolsFile        string               `long:"pools" env:"NODE_POOLS" description:"YAML file of Genesis-Praos pools keyed by node id; the node alone if omitted"`
	SlotDuration     time.Duration        `long:"slot-duration" env:"NODE_SLOT_DURATION" description:"slot duration" default:"2s"`
	SlotsPerEpoch    uint32               `long:"slots-per-epoch" env:"NODE_SLOTS_PER_EPOCH" description:"slots per epoch" default:"60"`
	ActiveSlotCoeff  float64              `long:"active-slot-coeff" env:"NODE_ACTIVE_SLOT_COEFF" description:"Genesis-Praos active slot coefficient" default:"0.5"`
	StatusAddr       string               `long:"status-addr" env:"NODE_STATUS_ADDR" description:"address for the status and metrics HTTP server" default:":8080"`
	GRPCAddr         string               `long:"grpc-addr" env:"NODE_GRPC_ADDR" description:"address for the gRPC health server" default:":9090"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	grpcZap.ReplaceGrpcLoggerV2(logger)

	if _, err := flags.ParseArgs(&cfg, os.Args[1:]); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal("node failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	loader, err := secrets.NewLoader(metrics.NewSecretsLoader(), logger)
	if err != nil {
		return err
	}
	store, err := loader.Load(cfg.Secret)
	if err != nil {
		return fmt.Errorf("load secrets: %w", err)
	}

	genesisTime := time.Now()
	if cfg.GenesisTime != 0 {
		genesisTime = time.Unix(cfg.GenesisTime, 0)
	}
	slots, err := clock.NewSlotClock(genesisTime, cfg.SlotDuration, cfg.SlotsPerEpoch)
	if err != nil {
		return err
	}

	startStatusServer(ctx, cfg.StatusAddr, store, logger)
	if err := startGRPCServer(ctx, cfg.GRPCAddr, logger); err != nil {
		return err
	}

	switch cfg.Consensus {
	case leadership.BFT:
		leaders, err := parseLeaders(cfg.BftLeaders, store)
		if err != nil {
			return err
		}
		blockConfig, err := mockchain.NewBFT(leaders, cfg.SlotsPerEpoch)
		if err != nil {
			return err
		}
		return runProducer(ctx, blockConfig, store, slots, cfg.GenesisBlockHash, logger)
	case leadership.GenesisPraos:
		pools, err := loadPools(cfg.PoolsFile, store)
		if err != nil {
			return err
		}
		blockConfig, err := mockchain.NewPraos(cfg.GenesisBlockHash, cfg.SlotsPerEpoch, cfg.ActiveSlotCoeff, pools)
		if err != nil {
			return err
		}
		return runProducer(ctx, blockConfig, store, slots, cfg.GenesisBlockHash, logger)
	default:
		return fmt.Errorf("unsupported consensus %s", cfg.Consensus)
	}
}

func runProducer[K leadership.Credential](
	ctx context.Context,
	blockConfig consensus.BlockConfig[K],
	store *secrets.Store,
	slots *clock.SlotClock,
	genesis model.HeaderHash,
	logger *zap.Logger,
) error {
	if _, ok := store.Credential(blockConfig.Consensus()); !ok {
		logger.Warn("secrets hold no credential for the consensus; the node will only follow",
			zap.Stringer("consensus", blockConfig.Consensus()))
	}
	chain := mockchain.NewChain(genesis, blockConfig.LeaderSelection)
	svc, err := producer.New[K](
		blockConfig,
		store,
		slots,
		chain,
		mockchain.NewMempool(),
		func(s clock.SlotTime) consensus.BlockDate { return mockchain.NewDate(s.Epoch, s.Slot) },
		metrics.NewBlockProducer(blockConfig.Consensus()),
		logger,
	)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}

// parseLeaders returns the BFT schedule. Without explicit leaders the node schedules itself.
func parseLeaders(values []string, store *secrets.Store) ([]keys.PublicKey[keys.Ed25519], error) {
	if len(values) == 0 {
		leader, ok := store.BftLeader()
		if !ok {
			return nil, errors.New("no --bft-leader given and secrets hold no bft key")
		}
		return []keys.PublicKey[keys.Ed25519]{leader.Public()}, nil
	}
	leaders := make([]keys.PublicKey[keys.Ed25519], 0, len(values))
	for i, value := range values {
		pk, err := keys.PublicKeyFromBech32[keys.Ed25519](value)
		if err != nil {
			return nil, fmt.Errorf("bft leader %d: %w", i, err)
		}
		leaders = append(leaders, pk)
	}
	return leaders, nil
}

func startGRPCServer(ctx context.Context, addr string, logger *zap.Logger) error {
	chain := []grpc.UnaryServerInterceptor{
		grpcRecovery.UnaryServerInterceptor(),
		grpcCtxTags.UnaryServerInterceptor(),
		grpcPrometheus.UnaryServerInterceptor,
		grpcZap.UnaryServerInterceptor(logger),
	}
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grpcMiddleware.ChainUnaryServer(chain...)),
	)
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	grpcPrometheus.EnableHandlingTimeHistogram()
	grpcPrometheus.Register(grpcServer)

	socket, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}
	go func() {
		logger.Info("starting gRPC server", zap.String("addr", addr))
		if serveErr := grpcServer.Serve(socket); serveErr != nil {
			logger.Error("gRPC server failed", zap.Error(serveErr))
		}
	}()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down gRPC server")
		healthServer.Shutdown()
		grpcServer.GracefulStop()
	}()
	return nil
}

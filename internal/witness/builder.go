package witness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/chainauth/pkg/workerpool"
	"go.uber.org/zap"
)

// Builder builds witnesses and records the outcome of every attempt.
type Builder struct {
	logger  *zap.Logger
	metrics Metrics
	build   func(Request) (Witness, error)
}

// NewBuilder constructs a Builder.
func NewBuilder(metrics Metrics, logger *zap.Logger) (*Builder, error) {
	if metrics == nil {
		return nil, errors.New("witness builder metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		logger:  logger.Named("witness"),
		metrics: metrics,
		build:   Build,
	}, nil
}

// Build builds a single witness. Errors are returned unchanged.
func (b *Builder) Build(req Request) (Witness, error) {
	started := time.Now()
	w, err := b.build(req)
	b.metrics.ObserveBuild(req.Kind, err, started)
	if err != nil {
		b.logger.Debug("build witness failed",
			zap.Stringer("kind", req.Kind),
			zap.Stringer("transaction_id", req.TransactionID),
			zap.Error(err),
		)
		return nil, err
	}
	b.logger.Debug("witness built",
		zap.Stringer("kind", req.Kind),
		zap.Stringer("transaction_id", req.TransactionID),
	)
	return w, nil
}

// BuildAll builds one witness per request on up to workers goroutines. The result keeps
// the order of reqs. Nothing is returned unless every request succeeds.
func (b *Builder) BuildAll(ctx context.Context, reqs []Request, workers int) ([]Witness, error) {
	started := time.Now()
	witnesses, err := workerpool.Map(ctx, workers, reqs, func(_ context.Context, req Request) (Witness, error) {
		w, err := b.Build(req)
		if err != nil {
			return nil, fmt.Errorf("transaction %s: %w", req.TransactionID, err)
		}
		return w, nil
	})
	if err != nil {
		return nil, err
	}
	b.logger.Info("witnesses built",
		zap.Int("count", len(witnesses)),
		zap.Duration("elapsed", time.Since(started)),
	)
	return witnesses, nil
}

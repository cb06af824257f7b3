package secrets

import (
	"errors"
	"time"

	"go.uber.org/zap"
)

// Loader loads the secrets file once at startup.
type Loader struct {
	logger  *zap.Logger
	metrics Metrics
	load    func(path string) (*Record, error)
}

// NewLoader constructs a Loader.
func NewLoader(metrics Metrics, logger *zap.Logger) (*Loader, error) {
	if metrics == nil {
		return nil, errors.New("secrets loader metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger:  logger.Named("secrets"),
		metrics: metrics,
		load:    LoadFile,
	}, nil
}

// Load reads path and returns the credential store. Only public keys are logged.
func (l *Loader) Load(path string) (*Store, error) {
	started := time.Now()
	record, err := l.load(path)
	l.metrics.ObserveLoad(err, started)
	if err != nil {
		return nil, err
	}

	store := Load(record)
	public := store.Public()
	fields := []zap.Field{zap.String("source", path)}
	if public.BftPublicKey != nil {
		fields = append(fields, zap.Stringer("bft_public_key", public.BftPublicKey))
	}
	if public.Genesis != nil {
		fields = append(fields,
			zap.Stringer("node_id", public.Genesis.NodeID),
			zap.Stringer("kes_public_key", public.Genesis.SigKey),
			zap.Stringer("vrf_public_key", public.Genesis.VRFKey),
		)
	}
	l.logger.Info("secrets loaded", fields...)
	return store, nil
}

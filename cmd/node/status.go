package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/goodnatureofminers/chainauth/internal/leadership"
	"github.com/goodnatureofminers/chainauth/internal/model"
	"github.com/goodnatureofminers/chainauth/internal/secrets"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type publicSource interface {
	Public() leadership.NodePublic
}

// newStatusHandler serves the metrics and the public projection of the node secrets.
func newStatusHandler(source publicSource, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/api/v0/node/public", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(source.Public()); err != nil {
			logger.Error("write node public keys", zap.Error(err))
		}
	})
	return cors.Default().Handler(mux)
}

func startStatusServer(ctx context.Context, addr string, source publicSource, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           newStatusHandler(source, logger),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting status server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("status server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown status server", zap.Error(err))
		}
	}()
}

// loadPools reads the Genesis-Praos registrations. Without a file the node registers
// itself as the only pool.
func loadPools(path string, store *secrets.Store) (map[model.NodeID]leadership.GenesisPraosPublic, error) {
	if path == "" {
		leader, ok := store.GenesisLeader()
		if !ok {
			return nil, errors.New("no --pools given and secrets hold no genesis keys")
		}
		return map[model.NodeID]leadership.GenesisPraosPublic{leader.NodeID: leader.Public()}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pools: %w", err)
	}
	var raw map[string]leadership.GenesisPraosPublic
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode pools %s: %w", path, err)
	}
	pools := make(map[model.NodeID]leadership.GenesisPraosPublic, len(raw))
	for id, keys := range raw {
		nodeID, err := model.ParseNodeID(id)
		if err != nil {
			return nil, fmt.Errorf("pool %q: %w", id, err)
		}
		pools[nodeID] = keys
	}
	return pools, nil
}

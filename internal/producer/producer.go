// Package producer makes blocks in the slots the node leads.
package producer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/chainauth/internal/clock"
	"github.com/goodnatureofminers/chainauth/internal/consensus"
	"github.com/goodnatureofminers/chainauth/internal/leadership"
	"go.uber.org/zap"
)

const errorSleepDuration = time.Second

// Producer waits for each slot, checks leadership with the credential held by the store
// and appends the block it makes to the chain.
type Producer[K leadership.Credential] struct {
	logger  *zap.Logger
	metrics Metrics
	config  consensus.BlockConfig[K]
	store   CredentialStore
	clock   SlotClock
	chain   Chain
	mempool Mempool
	newDate func(clock.SlotTime) consensus.BlockDate
	now     func() time.Time
	sleep   func(context.Context, time.Duration) error
}

// New builds a Producer. newDate converts clock slots into the chain's dates.
func New[K leadership.Credential](
	config consensus.BlockConfig[K],
	store CredentialStore,
	slots SlotClock,
	chain Chain,
	mempool Mempool,
	newDate func(clock.SlotTime) consensus.BlockDate,
	metrics Metrics,
	logger *zap.Logger,
) (*Producer[K], error) {
	if metrics == nil {
		return nil, errors.New("producer metrics is required")
	}
	if config == nil || store == nil || slots == nil || chain == nil || mempool == nil || newDate == nil {
		return nil, errors.New("producer dependencies are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Producer[K]{
		logger:  logger.Named("producer").With(zap.Stringer("consensus", config.Consensus())),
		metrics: metrics,
		config:  config,
		store:   store,
		clock:   slots,
		chain:   chain,
		mempool: mempool,
		newDate: newDate,
		now:     time.Now,
		sleep:   clock.SleepWithContext,
	}, nil
}

// Run produces blocks until the context is canceled.
func (p *Producer[K]) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := p.run(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			p.logger.Warn("slot failed, backing off", zap.Error(err), zap.Duration("sleep", errorSleepDuration))
			if sleepErr := p.sleep(ctx, errorSleepDuration); sleepErr != nil {
				return sleepErr
			}
		}
	}
}

func (p *Producer[K]) run(ctx context.Context) error {
	slot, wait, err := p.clock.Next(p.now())
	if err != nil {
		return fmt.Errorf("next slot: %w", err)
	}
	if err := p.sleep(ctx, wait); err != nil {
		return err
	}
	_, err = p.produce(p.newDate(slot))
	return err
}

// produce makes and appends a block at date if the node leads it. A nil block with a
// nil error means the node does not lead the slot.
func (p *Producer[K]) produce(date consensus.BlockDate) (consensus.Block, error) {
	credential, ok := p.store.Credential(p.config.Consensus())
	if !ok {
		p.logger.Debug("no credential for consensus; skipping slot", zap.Stringer("date", date))
		return nil, nil
	}
	key, err := consensus.CredentialFor(p.config, credential)
	if err != nil {
		return nil, err
	}

	settings, ledger := p.chain.Tip()
	elected, err := p.config.LeaderSelection(settings).IsLeader(credential, date)
	p.metrics.ObserveLeadership(elected, err)
	if err != nil {
		return nil, fmt.Errorf("leadership at %s: %w", date, err)
	}
	if !elected {
		p.logger.Debug("not leader", zap.Stringer("date", date))
		return nil, nil
	}

	messages, rejected := applicable(ledger, p.mempool.Pending(settings.MaxMessagesPerBlock()))
	if len(rejected) > 0 {
		p.logger.Warn("dropping messages the ledger rejects", zap.Stringer("date", date), zap.Int("rejected", len(rejected)))
		p.mempool.Reject(rejected)
	}
	started := time.Now()
	block, err := p.config.MakeBlock(key, settings, ledger, date, messages)
	if err == nil {
		err = p.chain.Append(block)
	}
	p.metrics.ObserveMakeBlock(err, len(messages), started)
	if err != nil {
		return nil, fmt.Errorf("make block at %s: %w", date, err)
	}
	p.mempool.Remove(messages)

	p.logger.Info("block produced",
		zap.Stringer("date", date),
		zap.Stringer("id", block.ID()),
		zap.Uint32("chain_length", block.Header().ChainLength()),
		zap.Int("messages", len(messages)),
	)
	return block, nil
}

// applicable splits pending into the messages the ledger accepts in order and the ones it
// rejects. Rejected messages would fail every block they are put in.
func applicable(ledger consensus.Ledger, pending []consensus.Message) (accepted, rejected []consensus.Message) {
	for _, m := range pending {
		next, err := ledger.Apply([]consensus.Message{m})
		if err != nil {
			rejected = append(rejected, m)
			continue
		}
		ledger = next
		accepted = append(accepted, m)
	}
	return accepted, rejected
}

package metrics

import (
	"time"

	"github.com/goodnatureofminers/chainauth/internal/leadership"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	producerLeadershipTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainauth",
		Subsystem: "block_producer",
		Name:      "leadership_checks_total",
		Help:      "Count of slot leadership checks by outcome.",
	}, []string{"consensus", "outcome"})

	producerBlocksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chainauth",
		Subsystem: "block_producer",
		Name:      "blocks_total",
		Help:      "Count of block making attempts.",
	}, []string{"consensus", "status"})

	producerBlockDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chainauth",
		Subsystem: "block_producer",
		Name:      "block_duration_seconds",
		Help:      "Duration of making and signing a block.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"consensus", "status"})

	producerBlockSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "chainauth",
		Subsystem: "block_producer",
		Name:      "block_messages",
		Help:      "Number of messages per produced block.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 9), // 1..256
	}, []string{"consensus"})
)

// BlockProducer tracks metrics for the slot-driven block producer.
type BlockProducer struct {
	consensus string
}

// NewBlockProducer constructs a BlockProducer labelled with the consensus it produces for.
func NewBlockProducer(consensus leadership.Consensus) *BlockProducer {
	return &BlockProducer{consensus: consensus.String()}
}

// ObserveLeadership records whether the node led a slot.
func (m BlockProducer) ObserveLeadership(elected bool, err error) {
	outcome := "follower"
	switch {
	case err != nil:
		outcome = "error"
	case elected:
		outcome = "leader"
	}
	producerLeadershipTotal.WithLabelValues(m.consensus, outcome).Inc()
}

// ObserveMakeBlock records a block making outcome, its size and duration.
func (m BlockProducer) ObserveMakeBlock(err error, messages int, started time.Time) {
	status := statusOf(err)
	producerBlocksTotal.WithLabelValues(m.consensus, status).Inc()
	producerBlockDuration.WithLabelValues(m.consensus, status).Observe(time.Since(started).Seconds())
	if err == nil {
		producerBlockSize.WithLabelValues(m.consensus).Observe(float64(messages))
	}
}

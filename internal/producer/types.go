package producer

import (
	"time"

	"github.com/goodnatureofminers/chainauth/internal/clock"
	"github.com/goodnatureofminers/chainauth/internal/consensus"
	"github.com/goodnatureofminers/chainauth/internal/leadership"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	CredentialStore interface {
		Credential(consensus leadership.Consensus) (leadership.Credential, bool)
	}
	SlotClock interface {
		Next(now time.Time) (clock.SlotTime, time.Duration, error)
	}
	Chain interface {
		Tip() (consensus.Settings, consensus.Ledger)
		Append(block consensus.Block) error
	}
	Mempool interface {
		Pending(limit int) []consensus.Message
		Remove(messages []consensus.Message)
		Reject(messages []consensus.Message)
	}
	Metrics interface {
		ObserveLeadership(elected bool, err error)
		ObserveMakeBlock(err error, messages int, started time.Time)
	}
)

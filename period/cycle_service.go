package period

import (
	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/ledger"
	"github.com/spikeekips/mitum-dao/util/logging"
)

// PhaseDurationer gives the governed duration of phase at the height.
type PhaseDurationer interface {
	PhaseDuration(base.Phase, base.Height) uint64
}

// CycleService appends the cycles to the ledger as the chain grows. The first
// cycle starts at the genesis height; the next cycle starts right after the
// last block of the previous one and takes the phase durations which are
// effective at its first block.
type CycleService struct {
	*logging.Logging
	ledger    ledger.ReadWriter
	durations PhaseDurationer
}

func NewCycleService(lr ledger.ReadWriter, durations PhaseDurationer) *CycleService {
	return &CycleService{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "cycle-service")
		}),
		ledger:    lr,
		durations: durations,
	}
}

func (cs *CycleService) NewCycle(firstBlock base.Height) (base.Cycle, error) {
	pds := make([]base.PhaseDuration, len(base.OrderedPhases))
	for i := range base.OrderedPhases {
		ph := base.OrderedPhases[i]
		pds[i] = base.NewPhaseDuration(ph, cs.durations.PhaseDuration(ph, firstBlock))
	}

	return base.NewCycle(firstBlock, pds)
}

// OnChainHeight adds the cycles until the last cycle covers height.
func (cs *CycleService) OnChainHeight(height base.Height) error {
	genesis := cs.ledger.GenesisHeight()
	if height < genesis {
		return nil
	}

	for {
		cycles := cs.ledger.Cycles()

		var next base.Height
		switch {
		case len(cycles) < 1:
			next = genesis
		case cycles[len(cycles)-1].LastBlock() >= height:
			return nil
		default:
			next = cycles[len(cycles)-1].LastBlock() + 1
		}

		cy, err := cs.NewCycle(next)
		if err != nil {
			return err
		}

		if err := cs.ledger.AddCycle(cy); err != nil {
			return err
		}

		cs.Log().Debug().Object("cycle", cy).Msg("new cycle added")
	}
}

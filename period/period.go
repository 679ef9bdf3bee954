package period

import (
	"sort"

	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/ledger"
)

// Service answers which cycle and phase a height belongs to. Service has no
// state except the ledger.Reader, so it can be used concurrently.
type Service struct {
	ledger ledger.Reader
}

func NewService(lr ledger.Reader) *Service {
	return &Service{ledger: lr}
}

func (sv *Service) ChainHeight() base.Height {
	return sv.ledger.ChainHeight()
}

// Cycle returns the cycle, which contains height.
func (sv *Service) Cycle(height base.Height) (base.Cycle, bool) {
	cycles := sv.ledger.Cycles()

	i := sort.Search(len(cycles), func(i int) bool {
		return cycles[i].LastBlock() >= height
	})

	if i >= len(cycles) || !cycles[i].Contains(height) {
		return base.Cycle{}, false
	}

	return cycles[i], true
}

func (sv *Service) CurrentCycle() (base.Cycle, bool) {
	return sv.Cycle(sv.ledger.ChainHeight())
}

func (sv *Service) CurrentPhase() base.Phase {
	return sv.PhaseForHeight(sv.ledger.ChainHeight())
}

func (sv *Service) PhaseForHeight(height base.Height) base.Phase {
	cy, found := sv.Cycle(height)
	if !found {
		return base.PhaseUndefined
	}

	return cy.PhaseForHeight(height)
}

func (sv *Service) IsInPhase(height base.Height, phase base.Phase) bool {
	cy, found := sv.Cycle(height)
	if !found {
		return false
	}

	return cy.IsInPhase(height, phase)
}

// IsInPhaseButNotLastBlock is useful to prevent that tx is broadcasted at the
// last block of phase and confirmed in the next phase.
func (sv *Service) IsInPhaseButNotLastBlock(phase base.Phase) bool {
	height := sv.ledger.ChainHeight()

	cy, found := sv.Cycle(height)
	if !found || !cy.IsInPhase(height, phase) {
		return false
	}

	return height != cy.LastBlockOfPhase(phase)
}

func (sv *Service) IsTxInPhase(txID string, phase base.Phase) bool {
	tx, found := sv.ledger.Tx(txID)
	if !found {
		return false
	}

	return sv.IsInPhase(tx.Height(), phase)
}

// IsTxInCorrectCycle checks whether txHeight and chainHeight belong to the
// same cycle.
func (sv *Service) IsTxInCorrectCycle(txHeight, chainHeight base.Height) bool {
	cy, found := sv.Cycle(txHeight)
	if !found {
		return false
	}

	return cy.Contains(chainHeight)
}

func (sv *Service) IsTxIDInCorrectCycle(txID string, chainHeight base.Height) bool {
	tx, found := sv.ledger.Tx(txID)
	if !found {
		return false
	}

	return sv.IsTxInCorrectCycle(tx.Height(), chainHeight)
}

func (sv *Service) IsTxInCurrentCycle(txID string) bool {
	return sv.IsTxIDInCorrectCycle(txID, sv.ledger.ChainHeight())
}

// IsTxInPastCycle checks whether the cycle of tx ended before the current
// cycle.
func (sv *Service) IsTxInPastCycle(txID string, chainHeight base.Height) bool {
	tx, found := sv.ledger.Tx(txID)
	if !found {
		return false
	}

	cy, found := sv.Cycle(tx.Height())
	if !found {
		return false
	}

	return cy.LastBlock() < chainHeight
}

// IsTxInPhaseAndCycle checks that tx is confirmed in the phase and the
// current chain height is still in the same cycle.
func (sv *Service) IsTxInPhaseAndCycle(txID string, phase base.Phase) bool {
	tx, found := sv.ledger.Tx(txID)
	if !found {
		return false
	}

	return sv.IsTxHeightInPhaseAndCycle(tx.Height(), phase)
}

func (sv *Service) IsTxHeightInPhaseAndCycle(txHeight base.Height, phase base.Phase) bool {
	return sv.IsInPhase(txHeight, phase) && sv.IsTxInCorrectCycle(txHeight, sv.ledger.ChainHeight())
}

func (sv *Service) DurationOfPhase(height base.Height, phase base.Phase) uint64 {
	cy, found := sv.Cycle(height)
	if !found {
		return 0
	}

	return cy.DurationOfPhase(phase)
}

func (sv *Service) FirstBlockOfPhase(height base.Height, phase base.Phase) base.Height {
	cy, found := sv.Cycle(height)
	if !found {
		return 0
	}

	return cy.FirstBlockOfPhase(phase)
}

func (sv *Service) LastBlockOfPhase(height base.Height, phase base.Phase) base.Height {
	cy, found := sv.Cycle(height)
	if !found {
		return 0
	}

	return cy.LastBlockOfPhase(phase)
}

func (sv *Service) IsFirstBlockInCycle(height base.Height) bool {
	cy, found := sv.Cycle(height)

	return found && cy.FirstBlock() == height
}

func (sv *Service) IsLastBlockInCycle(height base.Height) bool {
	cy, found := sv.Cycle(height)

	return found && cy.LastBlock() == height
}

package base

import (
	"github.com/spikeekips/mitum-dao/util/isvalid"
)

type PhaseDuration struct {
	Phase    Phase  `json:"phase" bson:"phase"`
	Duration uint64 `json:"duration" bson:"duration"`
}

func NewPhaseDuration(phase Phase, duration uint64) PhaseDuration {
	return PhaseDuration{Phase: phase, Duration: duration}
}

// Cycle is the fixed range of heights, which is split by the ordered phases.
// Cycle is immutable; all the methods are safe to be called concurrently.
type Cycle struct {
	firstBlock Height
	phases     []PhaseDuration
}

func NewCycle(firstBlock Height, phases []PhaseDuration) (Cycle, error) {
	cy := Cycle{
		firstBlock: firstBlock,
		phases:     copyPhaseDurations(phases),
	}

	if err := cy.IsValid(nil); err != nil {
		return Cycle{}, err
	}

	return cy, nil
}

func MustNewCycle(firstBlock Height, phases []PhaseDuration) Cycle {
	cy, err := NewCycle(firstBlock, phases)
	if err != nil {
		panic(err)
	}

	return cy
}

// IsValid checks that every phase in OrderedPhases appears exactly once in
// order. Zero duration means the phase is skipped in this cycle, but the cycle
// itself can not be empty.
func (cy Cycle) IsValid([]byte) error {
	if err := cy.firstBlock.IsValid(nil); err != nil {
		return isvalid.InvalidError.Errorf("invalid first block: %w", err)
	}

	if len(cy.phases) != len(OrderedPhases) {
		return isvalid.InvalidError.Errorf("cycle must have %d phases, not %d", len(OrderedPhases), len(cy.phases))
	}

	for i := range cy.phases {
		pd := cy.phases[i]
		if pd.Phase != OrderedPhases[i] {
			return isvalid.InvalidError.Errorf("wrong phase order; %d-th phase should be %s, not %s",
				i, OrderedPhases[i], pd.Phase)
		}
	}

	if cy.Length() < 1 {
		return isvalid.InvalidError.Errorf("empty cycle")
	}

	return nil
}

func (cy Cycle) FirstBlock() Height {
	return cy.firstBlock
}

func (cy Cycle) LastBlock() Height {
	return cy.firstBlock + Height(cy.Length()) - 1
}

func (cy Cycle) Length() uint64 {
	var l uint64
	for i := range cy.phases {
		l += cy.phases[i].Duration
	}

	return l
}

func (cy Cycle) Phases() []PhaseDuration {
	return copyPhaseDurations(cy.phases)
}

func (cy Cycle) Contains(height Height) bool {
	if len(cy.phases) < 1 {
		return false
	}

	return height >= cy.firstBlock && height <= cy.LastBlock()
}

// PhaseForHeight returns PhaseUndefined if height is out of Cycle.
func (cy Cycle) PhaseForHeight(height Height) Phase {
	if !cy.Contains(height) {
		return PhaseUndefined
	}

	start := cy.firstBlock
	for i := range cy.phases {
		pd := cy.phases[i]
		end := start + Height(pd.Duration)
		if height < end {
			return pd.Phase
		}

		start = end
	}

	return PhaseUndefined
}

func (cy Cycle) IsInPhase(height Height, phase Phase) bool {
	return phase != PhaseUndefined && cy.PhaseForHeight(height) == phase
}

func (cy Cycle) DurationOfPhase(phase Phase) uint64 {
	for i := range cy.phases {
		if cy.phases[i].Phase == phase {
			return cy.phases[i].Duration
		}
	}

	return 0
}

// FirstBlockOfPhase returns 0 for unknown or skipped phase; 0 means unknown,
// not a valid boundary.
func (cy Cycle) FirstBlockOfPhase(phase Phase) Height {
	start := cy.firstBlock
	for i := range cy.phases {
		if cy.phases[i].Phase == phase {
			if cy.phases[i].Duration < 1 {
				return 0
			}

			return start
		}

		start += Height(cy.phases[i].Duration)
	}

	return 0
}

// LastBlockOfPhase returns 0 for unknown or skipped phase.
func (cy Cycle) LastBlockOfPhase(phase Phase) Height {
	start := cy.firstBlock
	for i := range cy.phases {
		end := start + Height(cy.phases[i].Duration)
		if cy.phases[i].Phase == phase {
			if end == start {
				return 0
			}

			return end - 1
		}

		start = end
	}

	return 0
}

func (cy Cycle) Equal(b Cycle) bool {
	if cy.firstBlock != b.firstBlock || len(cy.phases) != len(b.phases) {
		return false
	}

	for i := range cy.phases {
		if cy.phases[i] != b.phases[i] {
			return false
		}
	}

	return true
}

func copyPhaseDurations(a []PhaseDuration) []PhaseDuration {
	if a == nil {
		return nil
	}

	b := make([]PhaseDuration, len(a))
	copy(b, a)

	return b
}

package base

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/util/isvalid"
)

// Phase is the named sub interval of Cycle. The ordinal of Phase is used in
// the persisted and gossiped data, so new Phase must not be inserted between
// the existing ones.
type Phase uint8

const (
	PhaseUndefined Phase = iota
	PhaseProposal
	PhaseBreak1
	PhaseBlindVote
	PhaseBreak2
	PhaseVoteReveal
	PhaseResult
)

// OrderedPhases is the order of phases inside Cycle.
var OrderedPhases = []Phase{
	PhaseProposal,
	PhaseBreak1,
	PhaseBlindVote,
	PhaseBreak2,
	PhaseVoteReveal,
	PhaseResult,
}

func PhaseFromString(s string) (Phase, error) {
	for _, p := range append([]Phase{PhaseUndefined}, OrderedPhases...) {
		if p.String() == strings.ToUpper(s) {
			return p, nil
		}
	}

	return PhaseUndefined, errors.Errorf("unknown phase, %q", s)
}

func (ph Phase) String() string {
	switch ph {
	case PhaseUndefined:
		return "UNDEFINED"
	case PhaseProposal:
		return "PROPOSAL"
	case PhaseBreak1:
		return "BREAK1"
	case PhaseBlindVote:
		return "BLIND_VOTE"
	case PhaseBreak2:
		return "BREAK2"
	case PhaseVoteReveal:
		return "VOTE_REVEAL"
	case PhaseResult:
		return "RESULT"
	default:
		return "<unknown phase>"
	}
}

func (ph Phase) IsValid([]byte) error {
	switch ph {
	case PhaseProposal, PhaseBreak1, PhaseBlindVote, PhaseBreak2, PhaseVoteReveal, PhaseResult:
		return nil
	default:
		return isvalid.InvalidError.Errorf("unknown phase, %d", ph)
	}
}

// Param returns the Param, which governs the duration of Phase.
func (ph Phase) Param() Param {
	switch ph {
	case PhaseProposal:
		return ParamPhaseProposal
	case PhaseBreak1:
		return ParamPhaseBreak1
	case PhaseBlindVote:
		return ParamPhaseBlindVote
	case PhaseBreak2:
		return ParamPhaseBreak2
	case PhaseVoteReveal:
		return ParamPhaseVoteReveal
	case PhaseResult:
		return ParamPhaseResult
	default:
		return ParamPhaseUndefined
	}
}

func (ph Phase) MarshalText() ([]byte, error) {
	return []byte(ph.String()), nil
}

func (ph *Phase) UnmarshalText(b []byte) error {
	p, err := PhaseFromString(string(b))
	if err != nil {
		return err
	}

	*ph = p

	return nil
}

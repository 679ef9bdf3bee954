//go:build test
// +build test

package base

import (
	"time"

	"github.com/spikeekips/mitum-dao/base/key"
	"github.com/spikeekips/mitum-dao/util"
)

// DefaultPhaseDurations builds the phase durations from the param defaults.
func DefaultPhaseDurations() []PhaseDuration {
	pds := make([]PhaseDuration, len(OrderedPhases))
	for i := range OrderedPhases {
		pds[i] = NewPhaseDuration(OrderedPhases[i], uint64(OrderedPhases[i].Param().Default()))
	}

	return pds
}

// NewTestPhaseDurations returns durations in the order of OrderedPhases.
func NewTestPhaseDurations(durations ...uint64) []PhaseDuration {
	pds := make([]PhaseDuration, len(OrderedPhases))
	for i := range OrderedPhases {
		pds[i] = NewPhaseDuration(OrderedPhases[i], durations[i])
	}

	return pds
}

func NewTestProposal(signer key.BTCPublickey, txID string) Proposal {
	uid := util.UUID().String()

	return NewGenericProposal(
		uid,
		ProposalFields{
			Name:        "name-" + uid,
			Title:       "title-" + uid,
			Description: "description",
			Link:        "https://example.org/" + uid,
		},
		signer,
		time.Now(),
	).CloneWithTxID(txID)
}

func NewTestTx(id string, height Height, t TxType, opReturn []byte) Tx {
	return NewTx(id, height, t, []TxOutput{{Index: 0, Value: 100, Address: "address", Type: TxOutputTypeBSQ}}, opReturn)
}

package base

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/util/isvalid"
)

// Param is the governable numeric setting. The ordinal is used in the
// persisted events and in the gossip payload; new Param must be appended at
// the end.
type Param uint8

const (
	ParamUndefined Param = iota
	ParamBSQMakerFeeInPercent
	ParamBSQTakerFeeInPercent
	ParamBTCMakerFeeInPercent
	ParamBTCTakerFeeInPercent
	ParamProposalFee
	ParamBlindVoteFee
	ParamCompensationRequestMinAmount
	ParamCompensationRequestMaxAmount
	ParamQuorumProposal
	ParamQuorumCompRequest
	ParamQuorumChangeParam
	ParamThresholdProposal
	ParamThresholdCompRequest
	ParamThresholdChangeParam
	ParamPhaseUndefined
	ParamPhaseProposal
	ParamPhaseBreak1
	ParamPhaseBlindVote
	ParamPhaseBreak2
	ParamPhaseVoteReveal
	ParamPhaseResult
)

type paramInfo struct {
	name string
	def  int64
}

// Fee percents are in 1/100 percent, fees and amounts in BSQ satoshi,
// thresholds in 1/100 percent and phase durations in blocks.
var params = []paramInfo{
	{name: "UNDEFINED", def: 0},
	{name: "BSQ_MAKER_FEE_IN_PERCENT", def: 5},
	{name: "BSQ_TAKER_FEE_IN_PERCENT", def: 15},
	{name: "BTC_MAKER_FEE_IN_PERCENT", def: 10},
	{name: "BTC_TAKER_FEE_IN_PERCENT", def: 30},
	{name: "PROPOSAL_FEE", def: 100},
	{name: "BLIND_VOTE_FEE", def: 200},
	{name: "COMPENSATION_REQUEST_MIN_AMOUNT", def: 1_000},
	{name: "COMPENSATION_REQUEST_MAX_AMOUNT", def: 20_000_000},
	{name: "QUORUM_PROPOSAL", def: 100_000},
	{name: "QUORUM_COMP_REQUEST", def: 100_000},
	{name: "QUORUM_CHANGE_PARAM", def: 100_000},
	{name: "THRESHOLD_PROPOSAL", def: 5_000},
	{name: "THRESHOLD_COMP_REQUEST", def: 5_000},
	{name: "THRESHOLD_CHANGE_PARAM", def: 5_000},
	{name: "PHASE_UNDEFINED", def: 0},
	{name: "PHASE_PROPOSAL", def: 380},
	{name: "PHASE_BREAK1", def: 10},
	{name: "PHASE_BLIND_VOTE", def: 300},
	{name: "PHASE_BREAK2", def: 10},
	{name: "PHASE_VOTE_REVEAL", def: 300},
	{name: "PHASE_RESULT", def: 10},
}

// AllParams returns every defined Param except ParamUndefined in ordinal
// order.
func AllParams() []Param {
	ps := make([]Param, len(params)-1)
	for i := range ps {
		ps[i] = Param(i + 1)
	}

	return ps
}

func ParamFromString(s string) (Param, error) {
	u := strings.ToUpper(s)
	for i := range params {
		if params[i].name == u {
			return Param(i), nil
		}
	}

	return ParamUndefined, errors.Errorf("unknown param, %q", s)
}

func (p Param) String() string {
	if int(p) >= len(params) {
		return "<unknown param>"
	}

	return params[p].name
}

// Default is the built-in value, which is used when no ParamChangeEvent
// exists.
func (p Param) Default() int64 {
	if int(p) >= len(params) {
		return 0
	}

	return params[p].def
}

func (p Param) IsValid([]byte) error {
	if p == ParamUndefined || int(p) >= len(params) {
		return isvalid.InvalidError.Errorf("invalid param, %d", p)
	}

	return nil
}

func (p Param) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Param) UnmarshalText(b []byte) error {
	i, err := ParamFromString(string(b))
	if err != nil {
		return err
	}

	*p = i

	return nil
}

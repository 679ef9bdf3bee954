package base

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/util/isvalid"
	"github.com/spikeekips/mitum-dao/util/valuehash"
)

type PayloadKind uint8

const (
	PayloadKindUndefined PayloadKind = iota
	PayloadKindProposal
	PayloadKindBlindVote
	PayloadKindChangeParam
)

func (k PayloadKind) String() string {
	switch k {
	case PayloadKindProposal:
		return "proposal"
	case PayloadKindBlindVote:
		return "blind-vote"
	case PayloadKindChangeParam:
		return "change-param"
	default:
		return "undefined"
	}
}

// Payload is the gossiped data. Exactly one body matches the kind.
type Payload struct {
	kind        PayloadKind
	proposal    Proposal
	blindVote   BlindVote
	changeParam ChangeParam
}

func NewProposalPayload(pr Proposal) Payload {
	return Payload{kind: PayloadKindProposal, proposal: pr}
}

func NewBlindVotePayload(bv BlindVote) Payload {
	return Payload{kind: PayloadKindBlindVote, blindVote: bv}
}

func NewChangeParamPayload(cp ChangeParam) Payload {
	return Payload{kind: PayloadKindChangeParam, changeParam: cp}
}

func (pl Payload) Kind() PayloadKind {
	return pl.kind
}

func (pl Payload) Proposal() (Proposal, bool) {
	return pl.proposal, pl.kind == PayloadKindProposal
}

func (pl Payload) BlindVote() (BlindVote, bool) {
	return pl.blindVote, pl.kind == PayloadKindBlindVote
}

func (pl Payload) ChangeParam() (ChangeParam, bool) {
	return pl.changeParam, pl.kind == PayloadKindChangeParam
}

func (pl Payload) IsValid([]byte) error {
	switch pl.kind {
	case PayloadKindProposal:
		return pl.proposal.IsValid(nil)
	case PayloadKindBlindVote:
		return pl.blindVote.IsValid(nil)
	case PayloadKindChangeParam:
		return pl.changeParam.IsValid(nil)
	default:
		return isvalid.InvalidError.Errorf("unknown payload kind, %d", pl.kind)
	}
}

func (pl Payload) Body() ([]byte, error) {
	switch pl.kind {
	case PayloadKindProposal:
		return pl.proposal.Bytes()
	case PayloadKindBlindVote:
		return rlp.EncodeToBytes(pl.blindVote)
	case PayloadKindChangeParam:
		if pl.changeParam.Value < 0 {
			return nil, isvalid.InvalidError.Errorf("negative param value can not be encoded")
		}

		return rlp.EncodeToBytes([]uint64{uint64(pl.changeParam.Param), uint64(pl.changeParam.Value)})
	default:
		return nil, errors.Errorf("unknown payload kind, %d", pl.kind)
	}
}

// Hash is the key of payload in the gossip store.
func (pl Payload) Hash() (valuehash.L32, error) {
	body, err := pl.Body()
	if err != nil {
		return valuehash.L32{}, err
	}

	var buf bytes.Buffer
	_ = buf.WriteByte(byte(pl.kind))
	_, _ = buf.Write(body)

	return valuehash.NewSHA256(buf.Bytes()), nil
}

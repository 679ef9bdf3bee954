package base

import (
	"github.com/spikeekips/mitum-dao/util/isvalid"
	"github.com/spikeekips/mitum-dao/util/valuehash"
)

// OpReturnType is the first byte of op-return data. The values are consensus
// critical.
type OpReturnType byte

const (
	OpReturnTypeUndefined           OpReturnType = 0x00
	OpReturnTypeProposal            OpReturnType = 0x10
	OpReturnTypeCompensationRequest OpReturnType = 0x11
	OpReturnTypeBlindVote           OpReturnType = 0x12
	OpReturnTypeVoteReveal          OpReturnType = 0x13
	OpReturnTypeLockup              OpReturnType = 0x14
)

const (
	OpReturnVersion    byte = 0x01
	opReturnHeaderSize      = 2
	OpReturnDataSize        = opReturnHeaderSize + valuehash.L32Size
)

func (t OpReturnType) String() string {
	switch t {
	case OpReturnTypeProposal:
		return "PROPOSAL"
	case OpReturnTypeCompensationRequest:
		return "COMPENSATION_REQUEST"
	case OpReturnTypeBlindVote:
		return "BLIND_VOTE"
	case OpReturnTypeVoteReveal:
		return "VOTE_REVEAL"
	case OpReturnTypeLockup:
		return "LOCKUP"
	default:
		return "UNDEFINED"
	}
}

// OpReturnData is the only on-chain trace of the off-chain payload; type,
// version and the sha3-256 hash of the payload.
type OpReturnData struct {
	Type    OpReturnType
	Version byte
	Hash    valuehash.L32
}

func NewOpReturnData(t OpReturnType, h valuehash.L32) OpReturnData {
	return OpReturnData{Type: t, Version: OpReturnVersion, Hash: h}
}

func ParseOpReturnData(b []byte) (OpReturnData, error) {
	if len(b) != OpReturnDataSize {
		return OpReturnData{}, isvalid.InvalidError.Errorf(
			"wrong length of op return data; %d != %d", len(b), OpReturnDataSize)
	}

	h, err := valuehash.NewL32FromBytes(b[opReturnHeaderSize:])
	if err != nil {
		return OpReturnData{}, isvalid.InvalidError.Wrap(err)
	}

	od := OpReturnData{
		Type:    OpReturnType(b[0]),
		Version: b[1],
		Hash:    h,
	}

	if err := od.IsValid(nil); err != nil {
		return OpReturnData{}, err
	}

	return od, nil
}

func (od OpReturnData) IsValid([]byte) error {
	switch od.Type {
	case OpReturnTypeProposal, OpReturnTypeCompensationRequest, OpReturnTypeBlindVote,
		OpReturnTypeVoteReveal, OpReturnTypeLockup:
	default:
		return isvalid.InvalidError.Errorf("unknown op return type, 0x%x", byte(od.Type))
	}

	if od.Version != OpReturnVersion {
		return isvalid.InvalidError.Errorf("unsupported op return version, %d", od.Version)
	}

	return od.Hash.IsValid(nil)
}

func (od OpReturnData) Bytes() []byte {
	b := make([]byte, OpReturnDataSize)
	b[0] = byte(od.Type)
	b[1] = od.Version
	copy(b[opReturnHeaderSize:], od.Hash.Bytes())

	return b
}

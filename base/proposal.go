package base

import (
	"time"

	"github.com/spikeekips/mitum-dao/base/key"
	"github.com/spikeekips/mitum-dao/util/isvalid"
	"github.com/spikeekips/mitum-dao/util/valuehash"
)

type ProposalType uint8

const (
	ProposalTypeUndefined ProposalType = iota
	ProposalTypeGeneric
	ProposalTypeCompensationRequest
	ProposalTypeChangeParam
)

func (t ProposalType) String() string {
	switch t {
	case ProposalTypeGeneric:
		return "GENERIC"
	case ProposalTypeCompensationRequest:
		return "COMPENSATION_REQUEST"
	case ProposalTypeChangeParam:
		return "CHANGE_PARAM"
	default:
		return "UNDEFINED"
	}
}

func (t ProposalType) IsValid([]byte) error {
	switch t {
	case ProposalTypeGeneric, ProposalTypeCompensationRequest, ProposalTypeChangeParam:
		return nil
	default:
		return isvalid.InvalidError.Errorf("unknown proposal type, %d", t)
	}
}

// OpReturnType returns the op-return type of the proposal tx.
func (t ProposalType) OpReturnType() OpReturnType {
	if t == ProposalTypeCompensationRequest {
		return OpReturnTypeCompensationRequest
	}

	return OpReturnTypeProposal
}

func (t ProposalType) TxType() TxType {
	if t == ProposalTypeCompensationRequest {
		return TxTypeCompensationRequest
	}

	return TxTypeProposal
}

func (t ProposalType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ProposalType) UnmarshalText(b []byte) error {
	for _, i := range []ProposalType{ProposalTypeGeneric, ProposalTypeCompensationRequest, ProposalTypeChangeParam} {
		if i.String() == string(b) {
			*t = i

			return nil
		}
	}

	*t = ProposalTypeUndefined

	return nil
}

// ProposalFields are the fields, which the proposer fills.
type ProposalFields struct {
	Name        string
	Title       string
	Description string
	Link        string
}

// Proposal is immutable. Proposals are identified by uid; tx id is empty until
// the proposal tx is created.
type Proposal struct {
	uid             string
	proposalType    ProposalType
	fields          ProposalFields
	signer          key.BTCPublickey
	createdAt       time.Time
	txID            string
	requestedAmount int64
	bsqAddress      string
	param           Param
	paramValue      int64
}

func newProposal(
	uid string, t ProposalType, fields ProposalFields, signer key.BTCPublickey, createdAt time.Time,
) Proposal {
	return Proposal{
		uid:          uid,
		proposalType: t,
		fields:       fields,
		signer:       signer,
		createdAt:    normalizeTime(createdAt),
	}
}

func NewGenericProposal(
	uid string, fields ProposalFields, signer key.BTCPublickey, createdAt time.Time,
) Proposal {
	return newProposal(uid, ProposalTypeGeneric, fields, signer, createdAt)
}

func NewCompensationRequestProposal(
	uid string, fields ProposalFields, signer key.BTCPublickey, createdAt time.Time,
	requestedAmount int64, bsqAddress string,
) Proposal {
	pr := newProposal(uid, ProposalTypeCompensationRequest, fields, signer, createdAt)
	pr.requestedAmount = requestedAmount
	pr.bsqAddress = bsqAddress

	return pr
}

func NewChangeParamProposal(
	uid string, fields ProposalFields, signer key.BTCPublickey, createdAt time.Time,
	param Param, value int64,
) Proposal {
	pr := newProposal(uid, ProposalTypeChangeParam, fields, signer, createdAt)
	pr.param = param
	pr.paramValue = value

	return pr
}

// IsValid checks only the structure; business rules are checked by
// proposal.Validator.
func (pr Proposal) IsValid([]byte) error {
	if len(pr.uid) < 1 {
		return isvalid.InvalidError.Errorf("empty uid")
	}

	if err := pr.proposalType.IsValid(nil); err != nil {
		return err
	}

	if err := pr.signer.IsValid(nil); err != nil {
		return isvalid.InvalidError.Wrap(err)
	}

	if pr.createdAt.IsZero() {
		return isvalid.InvalidError.Errorf("empty created at")
	}

	switch pr.proposalType {
	case ProposalTypeCompensationRequest:
		if pr.requestedAmount < 0 {
			return isvalid.InvalidError.Errorf("negative requested amount")
		}
	case ProposalTypeChangeParam:
		if err := NewChangeParam(pr.param, pr.paramValue).IsValid(nil); err != nil {
			return err
		}
	}

	return nil
}

func (pr Proposal) UID() string {
	return pr.uid
}

func (pr Proposal) Type() ProposalType {
	return pr.proposalType
}

func (pr Proposal) Fields() ProposalFields {
	return pr.fields
}

func (pr Proposal) Name() string {
	return pr.fields.Name
}

func (pr Proposal) Title() string {
	return pr.fields.Title
}

func (pr Proposal) Signer() key.BTCPublickey {
	return pr.signer
}

func (pr Proposal) CreatedAt() time.Time {
	return pr.createdAt
}

func (pr Proposal) TxID() string {
	return pr.txID
}

func (pr Proposal) RequestedAmount() int64 {
	return pr.requestedAmount
}

func (pr Proposal) BSQAddress() string {
	return pr.bsqAddress
}

func (pr Proposal) ChangeParam() ChangeParam {
	return NewChangeParam(pr.param, pr.paramValue)
}

// Equal compares by uid.
func (pr Proposal) Equal(b Proposal) bool {
	return pr.uid == b.uid
}

func (pr Proposal) CloneWithTxID(txID string) Proposal {
	npr := pr
	npr.txID = txID

	return npr
}

// PayloadHash is the hash embedded in the op-return of the proposal tx. It is
// calculated without tx id, because tx id is not known before the tx is
// created.
func (pr Proposal) PayloadHash() (valuehash.L32, error) {
	b, err := pr.CloneWithTxID("").Bytes()
	if err != nil {
		return valuehash.L32{}, err
	}

	return valuehash.NewSHA256(b), nil
}

func (pr Proposal) OpReturnData() (OpReturnData, error) {
	h, err := pr.PayloadHash()
	if err != nil {
		return OpReturnData{}, err
	}

	return NewOpReturnData(pr.proposalType.OpReturnType(), h), nil
}

func normalizeTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}

	return time.UnixMilli(t.UnixMilli()).UTC()
}

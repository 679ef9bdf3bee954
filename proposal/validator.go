package proposal

import (
	"net/url"

	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/ledger"
	"github.com/spikeekips/mitum-dao/util/isvalid"
)

const (
	MaxNameLength        = 100
	MaxTitleLength       = 200
	MaxDescriptionLength = 10000
	MaxLinkLength        = 300
)

// Validator checks the business rules of proposal.
type Validator interface {
	Validate(base.Proposal) error
}

// ParamValuer gives the governed value at height.
type ParamValuer interface {
	Value(base.Param, base.Height) int64
}

type DefaultValidator struct {
	params ParamValuer
	ledger ledger.Reader
}

func NewDefaultValidator(params ParamValuer, lr ledger.Reader) DefaultValidator {
	return DefaultValidator{params: params, ledger: lr}
}

// ValidateDataFields checks the fields, which the proposer fills; tx id is not
// checked.
func (dv DefaultValidator) ValidateDataFields(pr base.Proposal) error {
	if err := pr.IsValid(nil); err != nil {
		return err
	}

	fields := pr.Fields()

	switch {
	case len(fields.Name) < 1:
		return isvalid.InvalidError.Errorf("empty name")
	case len(fields.Name) > MaxNameLength:
		return isvalid.InvalidError.Errorf("too long name, %d", len(fields.Name))
	case len(fields.Title) < 1:
		return isvalid.InvalidError.Errorf("empty title")
	case len(fields.Title) > MaxTitleLength:
		return isvalid.InvalidError.Errorf("too long title, %d", len(fields.Title))
	case len(fields.Description) > MaxDescriptionLength:
		return isvalid.InvalidError.Errorf("too long description, %d", len(fields.Description))
	case len(fields.Link) < 1:
		return isvalid.InvalidError.Errorf("empty link")
	case len(fields.Link) > MaxLinkLength:
		return isvalid.InvalidError.Errorf("too long link, %d", len(fields.Link))
	}

	if _, err := url.ParseRequestURI(fields.Link); err != nil {
		return isvalid.InvalidError.Errorf("invalid link: %w", err)
	}

	switch pr.Type() {
	case base.ProposalTypeCompensationRequest:
		return dv.validateCompensationRequest(pr)
	case base.ProposalTypeChangeParam:
		cp := pr.ChangeParam()
		if cp.Param == base.ParamPhaseUndefined {
			return isvalid.InvalidError.Errorf("param, %s can not be changed", cp.Param)
		}
	}

	return nil
}

func (dv DefaultValidator) Validate(pr base.Proposal) error {
	if err := dv.ValidateDataFields(pr); err != nil {
		return err
	}

	if len(pr.TxID()) < 1 {
		return isvalid.InvalidError.Errorf("empty tx id")
	}

	return nil
}

func (dv DefaultValidator) validateCompensationRequest(pr base.Proposal) error {
	if len(pr.BSQAddress()) < 1 {
		return isvalid.InvalidError.Errorf("empty bsq address")
	}

	height := dv.ledger.ChainHeight()
	min := dv.params.Value(base.ParamCompensationRequestMinAmount, height)
	max := dv.params.Value(base.ParamCompensationRequestMaxAmount, height)

	if a := pr.RequestedAmount(); a < min || a > max {
		return isvalid.InvalidError.Errorf("requested amount, %d out of range, [%d, %d]", a, min, max)
	}

	return nil
}

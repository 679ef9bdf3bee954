package proposal

import (
	"time"

	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/base/key"
	"github.com/spikeekips/mitum-dao/util"
)

// NewGeneric creates new generic proposal of signer with new uid.
func NewGeneric(fields base.ProposalFields, signer key.BTCPublickey) base.Proposal {
	return base.NewGenericProposal(newUID(), fields, signer, time.Now())
}

func NewCompensationRequest(
	fields base.ProposalFields, signer key.BTCPublickey, requestedAmount int64, bsqAddress string,
) base.Proposal {
	return base.NewCompensationRequestProposal(
		newUID(), fields, signer, time.Now(), requestedAmount, bsqAddress)
}

func NewChangeParam(
	fields base.ProposalFields, signer key.BTCPublickey, param base.Param, value int64,
) base.Proposal {
	return base.NewChangeParamProposal(newUID(), fields, signer, time.Now(), param, value)
}

func newUID() string {
	return util.UUID().String()
}

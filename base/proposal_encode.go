package base

import (
	"time"

	"github.com/spikeekips/mitum-dao/base/key"
	"github.com/spikeekips/mitum-dao/util"
	"go.mongodb.org/mongo-driver/bson"
)

type ProposalPacker struct {
	UI string           `json:"uid" bson:"uid"`
	TY ProposalType     `json:"type" bson:"type"`
	NA string           `json:"name" bson:"name"`
	TI string           `json:"title" bson:"title"`
	DE string           `json:"description" bson:"description"`
	LI string           `json:"link" bson:"link"`
	SI key.BTCPublickey `json:"signer" bson:"signer"`
	CA time.Time        `json:"created_at" bson:"created_at"`
	TX string           `json:"tx_id" bson:"tx_id"`
	RA int64            `json:"requested_amount,omitempty" bson:"requested_amount,omitempty"`
	BA string           `json:"bsq_address,omitempty" bson:"bsq_address,omitempty"`
	PA Param            `json:"param,omitempty" bson:"param,omitempty"`
	PV int64            `json:"param_value,omitempty" bson:"param_value,omitempty"`
}

func (pr Proposal) packer() ProposalPacker {
	return ProposalPacker{
		UI: pr.uid,
		TY: pr.proposalType,
		NA: pr.fields.Name,
		TI: pr.fields.Title,
		DE: pr.fields.Description,
		LI: pr.fields.Link,
		SI: pr.signer,
		CA: pr.createdAt,
		TX: pr.txID,
		RA: pr.requestedAmount,
		BA: pr.bsqAddress,
		PA: pr.param,
		PV: pr.paramValue,
	}
}

func (pr *Proposal) unpack(u ProposalPacker) {
	*pr = Proposal{
		uid:          u.UI,
		proposalType: u.TY,
		fields: ProposalFields{
			Name:        u.NA,
			Title:       u.TI,
			Description: u.DE,
			Link:        u.LI,
		},
		signer:          u.SI,
		createdAt:       normalizeTime(u.CA),
		txID:            u.TX,
		requestedAmount: u.RA,
		bsqAddress:      u.BA,
		param:           u.PA,
		paramValue:      u.PV,
	}
}

func (pr Proposal) MarshalJSON() ([]byte, error) {
	return util.JSON.Marshal(pr.packer())
}

func (pr *Proposal) UnmarshalJSON(b []byte) error {
	var u ProposalPacker
	if err := util.JSON.Unmarshal(b, &u); err != nil {
		return err
	}

	pr.unpack(u)

	return nil
}

func (pr Proposal) MarshalBSON() ([]byte, error) {
	return bson.Marshal(pr.packer())
}

func (pr *Proposal) UnmarshalBSON(b []byte) error {
	var u ProposalPacker
	if err := bson.Unmarshal(b, &u); err != nil {
		return err
	}

	pr.unpack(u)

	return nil
}

package base

import (
	"github.com/spikeekips/mitum-dao/util"
	"go.mongodb.org/mongo-driver/bson"
)

type CyclePacker struct {
	FB Height          `json:"first_block" bson:"first_block"`
	LB Height          `json:"last_block" bson:"last_block"`
	PS []PhaseDuration `json:"phases" bson:"phases"`
}

func (cy Cycle) packer() CyclePacker {
	return CyclePacker{
		FB: cy.firstBlock,
		LB: cy.LastBlock(),
		PS: cy.phases,
	}
}

func (cy Cycle) MarshalJSON() ([]byte, error) {
	return util.JSON.Marshal(cy.packer())
}

func (cy *Cycle) UnmarshalJSON(b []byte) error {
	var u CyclePacker
	if err := util.JSON.Unmarshal(b, &u); err != nil {
		return err
	}

	return cy.unpack(u)
}

func (cy Cycle) MarshalBSON() ([]byte, error) {
	return bson.Marshal(cy.packer())
}

func (cy *Cycle) UnmarshalBSON(b []byte) error {
	var u CyclePacker
	if err := bson.Unmarshal(b, &u); err != nil {
		return err
	}

	return cy.unpack(u)
}

func (cy *Cycle) unpack(u CyclePacker) error {
	ncy, err := NewCycle(u.FB, u.PS)
	if err != nil {
		return err
	}

	*cy = ncy

	return nil
}

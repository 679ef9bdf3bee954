package base

import (
	"github.com/spikeekips/mitum-dao/base/key"
	"github.com/spikeekips/mitum-dao/util"
	"go.mongodb.org/mongo-driver/bson"
)

type BlindVotePacker struct {
	EP []byte           `json:"encrypted_proposal_list" bson:"encrypted_proposal_list"`
	TX string           `json:"tx_id" bson:"tx_id"`
	ST int64            `json:"stake" bson:"stake"`
	SI key.BTCPublickey `json:"signer" bson:"signer"`
}

func (bv BlindVote) packer() BlindVotePacker {
	return BlindVotePacker{
		EP: bv.encryptedProposalList,
		TX: bv.txID,
		ST: bv.stake,
		SI: bv.signer,
	}
}

func (bv BlindVote) MarshalJSON() ([]byte, error) {
	return util.JSON.Marshal(bv.packer())
}

func (bv *BlindVote) UnmarshalJSON(b []byte) error {
	var u BlindVotePacker
	if err := util.JSON.Unmarshal(b, &u); err != nil {
		return err
	}

	*bv = NewBlindVote(u.EP, u.TX, u.ST, u.SI)

	return nil
}

func (bv BlindVote) MarshalBSON() ([]byte, error) {
	return bson.Marshal(bv.packer())
}

func (bv *BlindVote) UnmarshalBSON(b []byte) error {
	var u BlindVotePacker
	if err := bson.Unmarshal(b, &u); err != nil {
		return err
	}

	*bv = NewBlindVote(u.EP, u.TX, u.ST, u.SI)

	return nil
}

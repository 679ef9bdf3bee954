package base

import (
	"github.com/spikeekips/mitum-dao/util"
	"go.mongodb.org/mongo-driver/bson"
)

type TxPacker struct {
	ID string     `json:"id" bson:"id"`
	HT Height     `json:"height" bson:"height"`
	TT TxType     `json:"type" bson:"type"`
	OS []TxOutput `json:"outputs" bson:"outputs"`
	OR []byte     `json:"op_return" bson:"op_return"`
}

func (tx Tx) packer() TxPacker {
	return TxPacker{
		ID: tx.id,
		HT: tx.height,
		TT: tx.txType,
		OS: tx.outputs,
		OR: tx.opReturn,
	}
}

func (tx Tx) MarshalJSON() ([]byte, error) {
	return util.JSON.Marshal(tx.packer())
}

func (tx Tx) MarshalBSON() ([]byte, error) {
	return bson.Marshal(tx.packer())
}

func (tx *Tx) UnmarshalBSON(b []byte) error {
	var u TxPacker
	if err := bson.Unmarshal(b, &u); err != nil {
		return err
	}

	*tx = NewTx(u.ID, u.HT, u.TT, u.OS, u.OR)

	return nil
}

package base

import (
	"github.com/spikeekips/mitum-dao/util/isvalid"
)

// TxType is the governance type recognized by the ledger. The ordinal is
// persisted, so do not reorder.
type TxType uint8

const (
	TxTypeUndefined TxType = iota
	TxTypeUnverified
	TxTypeInvalid
	TxTypeGenesis
	TxTypeTransferBSQ
	TxTypePayTradeFee
	TxTypeProposal
	TxTypeCompensationRequest
	TxTypeBlindVote
	TxTypeVoteReveal
	TxTypeLockup
	TxTypeUnlock
)

func (t TxType) String() string {
	switch t {
	case TxTypeUndefined:
		return "UNDEFINED"
	case TxTypeUnverified:
		return "UNVERIFIED"
	case TxTypeInvalid:
		return "INVALID"
	case TxTypeGenesis:
		return "GENESIS"
	case TxTypeTransferBSQ:
		return "TRANSFER_BSQ"
	case TxTypePayTradeFee:
		return "PAY_TRADE_FEE"
	case TxTypeProposal:
		return "PROPOSAL"
	case TxTypeCompensationRequest:
		return "COMPENSATION_REQUEST"
	case TxTypeBlindVote:
		return "BLIND_VOTE"
	case TxTypeVoteReveal:
		return "VOTE_REVEAL"
	case TxTypeLockup:
		return "LOCKUP"
	case TxTypeUnlock:
		return "UNLOCK"
	default:
		return "<unknown tx type>"
	}
}

func (t TxType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type TxOutputType uint8

const (
	TxOutputTypeUndefined TxOutputType = iota
	TxOutputTypeGenesis
	TxOutputTypeBSQ
	TxOutputTypeBTC
	TxOutputTypeInvalid
	TxOutputTypeOpReturn
)

func (t TxOutputType) String() string {
	switch t {
	case TxOutputTypeUndefined:
		return "UNDEFINED"
	case TxOutputTypeGenesis:
		return "GENESIS_OUTPUT"
	case TxOutputTypeBSQ:
		return "BSQ_OUTPUT"
	case TxOutputTypeBTC:
		return "BTC_OUTPUT"
	case TxOutputTypeInvalid:
		return "INVALID_OUTPUT"
	case TxOutputTypeOpReturn:
		return "OP_RETURN_OUTPUT"
	default:
		return "<unknown tx output type>"
	}
}

func (t TxOutputType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

type TxOutput struct {
	Index   int          `json:"index" bson:"index"`
	Value   int64        `json:"value" bson:"value"`
	Address string       `json:"address" bson:"address"`
	Type    TxOutputType `json:"type" bson:"type"`
}

// Tx is the confirmed transaction. Tx is not modified after it is recorded;
// use MutableTx to annotate it.
type Tx struct {
	id       string
	height   Height
	txType   TxType
	outputs  []TxOutput
	opReturn []byte
}

func NewTx(id string, height Height, txType TxType, outputs []TxOutput, opReturn []byte) Tx {
	return Tx{
		id:       id,
		height:   height,
		txType:   txType,
		outputs:  copyTxOutputs(outputs),
		opReturn: copyBytes(opReturn),
	}
}

func (tx Tx) IsValid([]byte) error {
	if len(tx.id) < 1 {
		return isvalid.InvalidError.Errorf("empty tx id")
	}

	if err := tx.height.IsValid(nil); err != nil {
		return err
	}

	for i := range tx.outputs {
		if tx.outputs[i].Value < 0 {
			return isvalid.InvalidError.Errorf("negative output value; index=%d", i)
		}
	}

	return nil
}

func (tx Tx) ID() string {
	return tx.id
}

func (tx Tx) Height() Height {
	return tx.height
}

func (tx Tx) Type() TxType {
	return tx.txType
}

func (tx Tx) Outputs() []TxOutput {
	return copyTxOutputs(tx.outputs)
}

func (tx Tx) OpReturn() []byte {
	return copyBytes(tx.opReturn)
}

// MutableTx is the working copy of Tx while the ledger parses it.
type MutableTx struct {
	tx Tx
}

func NewMutableTx(tx Tx) *MutableTx {
	return &MutableTx{tx: NewTx(tx.id, tx.height, tx.txType, tx.outputs, tx.opReturn)}
}

func (mt *MutableTx) ID() string {
	return mt.tx.id
}

func (mt *MutableTx) Height() Height {
	return mt.tx.height
}

func (mt *MutableTx) Outputs() []TxOutput {
	return mt.tx.Outputs()
}

func (mt *MutableTx) SetType(t TxType) {
	mt.tx.txType = t
}

func (mt *MutableTx) SetOutputType(index int, t TxOutputType) bool {
	if index < 0 || index >= len(mt.tx.outputs) {
		return false
	}

	mt.tx.outputs[index].Type = t

	return true
}

// Tx returns the frozen copy.
func (mt *MutableTx) Tx() Tx {
	return NewTx(mt.tx.id, mt.tx.height, mt.tx.txType, mt.tx.outputs, mt.tx.opReturn)
}

func copyTxOutputs(a []TxOutput) []TxOutput {
	if a == nil {
		return nil
	}

	b := make([]TxOutput, len(a))
	copy(b, a)

	return b
}

func copyBytes(a []byte) []byte {
	if a == nil {
		return nil
	}

	b := make([]byte, len(a))
	copy(b, a)

	return b
}

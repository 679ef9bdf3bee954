package wallet

import (
	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/util"
)

var (
	// WalletError is the failure of the wallet itself, like the broken
	// keystore or the lost connection.
	WalletError            = util.NewError("wallet failure")
	InsufficientMoneyError = util.NewError("insufficient money")
	TxVerificationError    = util.NewError("tx verification failed")
	SigningError           = util.NewError("failed to sign tx")
)

// Broadcast outcome errors; these are delivered through BroadcastCallback and
// never retried automatically.
var (
	BroadcastTimeoutError = util.NewError("broadcast timeout")
	TxMalleabilityError   = util.NewError("tx malleability")
	BroadcastFailedError  = util.NewError("broadcast failed")
)

// Transaction is the wallet side tx. ID is set after the tx is signed.
type Transaction struct {
	ID        string `json:"id" bson:"id"`
	BurnedFee int64  `json:"burned_fee" bson:"burned_fee"`
	Stake     int64  `json:"stake" bson:"stake"`
	OpReturn  []byte `json:"op_return" bson:"op_return"`
	Signed    bool   `json:"signed" bson:"signed"`
}

type TxStatus uint8

const (
	TxStatusUnknown TxStatus = iota
	TxStatusPending
	TxStatusConfirmed
	TxStatusDead
)

func (s TxStatus) String() string {
	switch s {
	case TxStatusPending:
		return "pending"
	case TxStatusConfirmed:
		return "confirmed"
	case TxStatusDead:
		return "dead"
	default:
		return "unknown"
	}
}

// BroadcastCallback receives exactly one of the broadcast outcomes. There is
// no cancellation of the in-flight broadcast.
type BroadcastCallback struct {
	OnSuccess      func(Transaction)
	OnTimeout      func(error)
	OnMalleability func(error)
	OnFailure      func(error)
}

type Wallet interface {
	AvailableBalance() int64
	// PrepareBurnFeeTx prepares the tx, which burns fee.
	PrepareBurnFeeTx(fee int64) (Transaction, error)
	// PrepareBlindVoteTx prepares the tx, which burns fee and locks stake.
	PrepareBlindVoteTx(fee, stake int64) (Transaction, error)
	AttachOpReturn(Transaction, []byte) (Transaction, error)
	Sign(Transaction) (Transaction, error)
	Broadcast(Transaction, BroadcastCallback)
	TxStatus(id string) TxStatus
}

// WrapError keeps the known wallet error kinds; the others become WalletError.
func WrapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, InsufficientMoneyError),
		errors.Is(err, TxVerificationError),
		errors.Is(err, SigningError),
		errors.Is(err, WalletError):
		return err
	default:
		return WalletError.Wrap(err)
	}
}

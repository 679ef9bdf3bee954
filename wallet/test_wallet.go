//go:build test
// +build test

package wallet

import (
	"sync"

	"github.com/spikeekips/mitum-dao/util"
)

type BroadcastOutcome uint8

const (
	BroadcastOutcomeSuccess BroadcastOutcome = iota
	BroadcastOutcomeTimeout
	BroadcastOutcomeMalleability
	BroadcastOutcomeFailure
)

// TestWallet is the in memory Wallet for tests.
type TestWallet struct {
	sync.RWMutex
	balance     int64
	outcome     BroadcastOutcome
	signErr     error
	statuses    map[string]TxStatus
	broadcasted []Transaction
}

func NewTestWallet(balance int64) *TestWallet {
	return &TestWallet{
		balance:  balance,
		statuses: map[string]TxStatus{},
	}
}

func (tw *TestWallet) SetOutcome(o BroadcastOutcome) {
	tw.Lock()
	defer tw.Unlock()

	tw.outcome = o
}

func (tw *TestWallet) SetSignError(err error) {
	tw.Lock()
	defer tw.Unlock()

	tw.signErr = err
}

func (tw *TestWallet) SetTxStatus(id string, s TxStatus) {
	tw.Lock()
	defer tw.Unlock()

	tw.statuses[id] = s
}

func (tw *TestWallet) Broadcasted() []Transaction {
	tw.RLock()
	defer tw.RUnlock()

	b := make([]Transaction, len(tw.broadcasted))
	copy(b, tw.broadcasted)

	return b
}

func (tw *TestWallet) AvailableBalance() int64 {
	tw.RLock()
	defer tw.RUnlock()

	return tw.balance
}

func (tw *TestWallet) PrepareBurnFeeTx(fee int64) (Transaction, error) {
	return tw.PrepareBlindVoteTx(fee, 0)
}

func (tw *TestWallet) PrepareBlindVoteTx(fee, stake int64) (Transaction, error) {
	if fee+stake > tw.AvailableBalance() {
		return Transaction{}, InsufficientMoneyError.Errorf("%d > %d", fee+stake, tw.AvailableBalance())
	}

	return Transaction{BurnedFee: fee, Stake: stake}, nil
}

func (tw *TestWallet) AttachOpReturn(tx Transaction, b []byte) (Transaction, error) {
	if len(b) > 80 {
		return Transaction{}, TxVerificationError.Errorf("too large op return, %d", len(b))
	}

	tx.OpReturn = b

	return tx, nil
}

func (tw *TestWallet) Sign(tx Transaction) (Transaction, error) {
	tw.RLock()
	err := tw.signErr
	tw.RUnlock()

	if err != nil {
		return Transaction{}, SigningError.Wrap(err)
	}

	tx.ID = util.UUID().String()
	tx.Signed = true

	return tx, nil
}

func (tw *TestWallet) Broadcast(tx Transaction, cb BroadcastCallback) {
	tw.Lock()
	outcome := tw.outcome
	tw.broadcasted = append(tw.broadcasted, tx)
	if outcome == BroadcastOutcomeSuccess || outcome == BroadcastOutcomeTimeout {
		tw.statuses[tx.ID] = TxStatusPending
		tw.balance -= tx.BurnedFee + tx.Stake
	}
	tw.Unlock()

	go func() {
		switch outcome {
		case BroadcastOutcomeSuccess:
			cb.OnSuccess(tx)
		case BroadcastOutcomeTimeout:
			cb.OnTimeout(BroadcastTimeoutError.Errorf("tx=%q", tx.ID))
		case BroadcastOutcomeMalleability:
			cb.OnMalleability(TxMalleabilityError.Errorf("tx=%q", tx.ID))
		default:
			cb.OnFailure(BroadcastFailedError.Errorf("tx=%q", tx.ID))
		}
	}()
}

func (tw *TestWallet) TxStatus(id string) TxStatus {
	tw.RLock()
	defer tw.RUnlock()

	return tw.statuses[id]
}

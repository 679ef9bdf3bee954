package proposal

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/gossip"
	"github.com/spikeekips/mitum-dao/ledger"
	"github.com/spikeekips/mitum-dao/util/logging"
	"github.com/spikeekips/mitum-dao/wallet"
)

// FeeProvider gives the burnt fee of proposal tx.
type FeeProvider interface {
	ProposalFee(base.Height) int64
}

// Service creates the proposal tx and publishes the proposal after the tx is
// broadcasted.
type Service struct {
	*logging.Logging
	ledger    ledger.Reader
	fees      FeeProvider
	validator DefaultValidator
	wallet    wallet.Wallet
	store     gossip.Store
}

func NewService(
	lr ledger.Reader,
	fees FeeProvider,
	validator DefaultValidator,
	wl wallet.Wallet,
	store gossip.Store,
) *Service {
	return &Service{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "proposal-service")
		}),
		ledger:    lr,
		fees:      fees,
		validator: validator,
		wallet:    wl,
		store:     store,
	}
}

// MakeTx creates the signed proposal tx. The op return carries the hash of
// proposal without tx id, and the returned proposal has the tx id of the
// signed tx.
func (sv *Service) MakeTx(pr base.Proposal) (base.Proposal, wallet.Transaction, error) {
	temp := pr.CloneWithTxID("")
	if err := sv.validator.ValidateDataFields(temp); err != nil {
		return base.Proposal{}, wallet.Transaction{}, err
	}

	od, err := temp.OpReturnData()
	if err != nil {
		return base.Proposal{}, wallet.Transaction{}, err
	}

	fee := sv.fees.ProposalFee(sv.ledger.ChainHeight())

	tx, err := sv.wallet.PrepareBurnFeeTx(fee)
	if err != nil {
		return base.Proposal{}, wallet.Transaction{}, wallet.WrapError(err)
	}

	if tx, err = sv.wallet.AttachOpReturn(tx, od.Bytes()); err != nil {
		return base.Proposal{}, wallet.Transaction{}, wallet.WrapError(err)
	}

	if tx, err = sv.wallet.Sign(tx); err != nil {
		return base.Proposal{}, wallet.Transaction{}, wallet.WrapError(err)
	}

	made := temp.CloneWithTxID(tx.ID)

	sv.Log().Debug().Object("proposal", made).Int64("fee", fee).Msg("proposal tx made")

	return made, tx, nil
}

// Publish broadcasts tx; after the successful broadcast, proposal is
// published to the gossip network. The returned channel gets exactly one
// result; gossip.PublishFailedError means the tx is broadcasted, but the
// gossip network did not take the proposal.
func (sv *Service) Publish(pr base.Proposal, tx wallet.Transaction) <-chan error {
	ch := make(chan error, 1)

	if pr.TxID() != tx.ID {
		ch <- errors.Errorf("tx id does not match; proposal=%q tx=%q", pr.TxID(), tx.ID)

		return ch
	}

	failed := func(err error) {
		sv.Log().Error().Err(err).Object("proposal", pr).Msg("failed to broadcast proposal tx")

		ch <- err
	}

	sv.wallet.Broadcast(tx, wallet.BroadcastCallback{
		OnSuccess: func(wallet.Transaction) {
			if !sv.store.Publish(base.NewProposalPayload(pr), true) {
				err := gossip.PublishFailedError.Errorf("proposal, tx=%q", pr.TxID())
				sv.Log().Error().Err(err).Object("proposal", pr).Msg("proposal tx broadcasted, but not published")

				ch <- err

				return
			}

			sv.Log().Info().Object("proposal", pr).Msg("proposal published")

			ch <- nil
		},
		OnTimeout:      failed,
		OnMalleability: failed,
		OnFailure:      failed,
	})

	return ch
}

package proposal

import (
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/ledger"
	"github.com/spikeekips/mitum-dao/period"
	"github.com/spikeekips/mitum-dao/storage"
	"github.com/spikeekips/mitum-dao/util"
	"github.com/spikeekips/mitum-dao/util/logging"
)

const BallotListStorageName = "ballot-list"

// BallotListService keeps the ballots of the proposals, which arrived in the
// proposal phase. The add and remove from the gossip network are serialized;
// the readers get the copy.
type BallotListService struct {
	sync.RWMutex
	*logging.Logging
	devEnv    util.DevEnv
	db        storage.Database
	ledger    ledger.Reader
	period    *period.Service
	validator Validator
	ballots   base.BallotList
	queue     *storage.SaveQueue
}

func NewBallotListService(
	db storage.Database,
	maxBackups int,
	lr ledger.Reader,
	ps *period.Service,
	validator Validator,
	devEnv util.DevEnv,
) *BallotListService {
	bs := &BallotListService{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "ballot-list-service")
		}),
		devEnv:    devEnv,
		db:        db,
		ledger:    lr,
		period:    ps,
		validator: validator,
	}

	bs.queue = storage.NewSaveQueue(db, BallotListStorageName, maxBackups, func() interface{} {
		bs.RLock()
		defer bs.RUnlock()

		return base.BallotList{Ballots: bs.ballots.Copy()}
	})

	return bs
}

func (bs *BallotListService) SetLogging(l *logging.Logging) *logging.Logging {
	_ = bs.queue.SetLogging(l)

	return bs.Logging.SetLogging(l)
}

// Load reads the persisted ballots.
func (bs *BallotListService) Load() error {
	var bl base.BallotList
	found, err := storage.LoadOrDefault(bs.db, BallotListStorageName, &bl)
	if err != nil {
		return err
	}

	if !found {
		return nil
	}

	bs.Lock()
	defer bs.Unlock()

	bs.ballots = bl

	bs.Log().Debug().Int("ballots", bl.Len()).Msg("ballots loaded")

	return nil
}

// Start applies the payloads, which are already known by the gossip network.
// They are saved once at the end.
func (bs *BallotListService) Start(snapshot map[string]base.Payload) error {
	if err := bs.queue.Start(); err != nil {
		return err
	}

	var added int
	for k := range snapshot {
		pr, ok := snapshot[k].Proposal()
		if !ok {
			continue
		}

		if bs.add(pr) {
			added++
		}
	}

	if added > 0 {
		bs.queue.QueueSave()
	}

	bs.Log().Debug().Int("added", added).Msg("ballot list service started")

	return nil
}

func (bs *BallotListService) Stop() error {
	if err := bs.queue.Stop(); err != nil && !errors.Is(err, util.DaemonAlreadyStoppedError) {
		return err
	}

	return nil
}

func (bs *BallotListService) Flush() error {
	return bs.queue.Flush()
}

func (bs *BallotListService) OnAdded(payload base.Payload) error {
	pr, ok := payload.Proposal()
	if !ok {
		return nil
	}

	if bs.add(pr) {
		bs.queue.QueueSave()
	}

	return nil
}

// OnRemoved removes the ballot only when the proposal tx is not confirmed or
// it is confirmed in the proposal phase of the current cycle. The other
// removal is the protocol violation; it is ignored, but in developer mode the
// error is returned.
func (bs *BallotListService) OnRemoved(payload base.Payload) error {
	pr, ok := payload.Proposal()
	if !ok {
		return nil
	}

	bs.Lock()
	defer bs.Unlock()

	i := bs.ballots.Find(pr)
	if i < 0 {
		bs.Log().Warn().Object("proposal", pr).Msg("proposal to remove not found in ballot list")

		return nil
	}

	if !bs.canRemoveProposal(pr) {
		return bs.devEnv.ProtocolViolation(bs.Log(),
			"ballot removal outside of the proposal phase is ignored; proposal=%q tx=%q", pr.UID(), pr.TxID())
	}

	ballots := make([]base.Ballot, 0, bs.ballots.Len()-1)
	ballots = append(ballots, bs.ballots.Ballots[:i]...)
	ballots = append(ballots, bs.ballots.Ballots[i+1:]...)
	bs.ballots = base.BallotList{Ballots: ballots}

	bs.queue.QueueSave()

	bs.Log().Info().Object("proposal", pr).Msg("ballot removed")

	return nil
}

func (bs *BallotListService) add(pr base.Proposal) bool {
	bs.Lock()
	defer bs.Unlock()

	if bs.ballots.Contains(pr) {
		bs.Log().Trace().Object("proposal", pr).Msg("proposal already in ballot list")

		return false
	}

	if err := bs.isValidToAdd(pr); err != nil {
		bs.Log().Warn().Err(err).Object("proposal", pr).Msg("proposal rejected")

		return false
	}

	ballots := make([]base.Ballot, bs.ballots.Len()+1)
	copy(ballots, bs.ballots.Ballots)
	ballots[len(ballots)-1] = base.NewBallot(pr)
	bs.ballots = base.BallotList{Ballots: ballots}

	bs.Log().Info().Object("proposal", pr).Msg("proposal added to ballot list")

	return true
}

func (bs *BallotListService) isValidToAdd(pr base.Proposal) error {
	if err := bs.validator.Validate(pr); err != nil {
		return err
	}

	chainHeight := bs.ledger.ChainHeight()

	tx, found := bs.ledger.Tx(pr.TxID())
	if !found {
		if !bs.period.IsInPhase(chainHeight, base.PhaseProposal) {
			return RejectedError.Errorf("unconfirmed proposal tx and not in proposal phase anymore")
		}

		return nil
	}

	if !bs.period.IsTxInCorrectCycle(tx.Height(), chainHeight) {
		return RejectedError.Errorf("proposal tx is not in current cycle")
	}

	if !bs.period.IsInPhase(tx.Height(), base.PhaseProposal) {
		return RejectedError.Errorf("proposal tx is not in proposal phase")
	}

	return nil
}

func (bs *BallotListService) canRemoveProposal(pr base.Proposal) bool {
	tx, found := bs.ledger.Tx(pr.TxID())

	return !found || bs.IsTxInPhaseAndCycle(tx)
}

// IsUnconfirmed uses the ledger, not the wallet.
func (bs *BallotListService) IsUnconfirmed(txID string) bool {
	_, found := bs.ledger.Tx(txID)

	return !found
}

func (bs *BallotListService) IsTxInPhaseAndCycle(tx base.Tx) bool {
	return bs.period.IsTxHeightInPhaseAndCycle(tx.Height(), base.PhaseProposal)
}

func (bs *BallotListService) Contains(pr base.Proposal) bool {
	bs.RLock()
	defer bs.RUnlock()

	return bs.ballots.Contains(pr)
}

// Ballots returns the copy of ballots.
func (bs *BallotListService) Ballots() []base.Ballot {
	bs.RLock()
	defer bs.RUnlock()

	return bs.ballots.Copy()
}

// ActiveProposals returns the proposals, which tx is confirmed in the
// proposal phase of the current cycle.
func (bs *BallotListService) ActiveProposals() base.ProposalList {
	ballots := bs.Ballots()

	var l base.ProposalList
	for i := range ballots {
		pr := ballots[i].Proposal

		tx, found := bs.ledger.Tx(pr.TxID())
		if !found || !bs.IsTxInPhaseAndCycle(tx) {
			continue
		}

		l = append(l, pr)
	}

	return l
}

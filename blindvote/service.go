package blindvote

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/base/key"
	"github.com/spikeekips/mitum-dao/gossip"
	"github.com/spikeekips/mitum-dao/ledger"
	"github.com/spikeekips/mitum-dao/period"
	"github.com/spikeekips/mitum-dao/storage"
	"github.com/spikeekips/mitum-dao/util"
	"github.com/spikeekips/mitum-dao/util/cache"
	"github.com/spikeekips/mitum-dao/util/isvalid"
	"github.com/spikeekips/mitum-dao/util/logging"
	"github.com/spikeekips/mitum-dao/util/valuehash"
	"github.com/spikeekips/mitum-dao/wallet"
)

const (
	BlindVoteListStorageName     = "blind-vote-list"
	PendingCommitListStorageName = "pending-commit-list"
)

// ActiveProposalsProvider gives the proposals, which can be voted in the
// current cycle.
type ActiveProposalsProvider interface {
	ActiveProposals() base.ProposalList
}

type FeeProvider interface {
	BlindVoteFee(base.Height) int64
}

// RevealTracker keeps the materials of own blind votes for the vote reveal.
type RevealTracker interface {
	OnNewBlindVote(base.ProposalList, SecretKey, base.BlindVote)
}

// CommitOutcome is the result of broadcasting the blind vote tx. Without
// BlindVote, Err is one of wallet.BroadcastTimeoutError,
// wallet.TxMalleabilityError or wallet.BroadcastFailedError. With BlindVote,
// the tx is broadcasted and the blind vote is stored; Err is
// gossip.PublishFailedError when the gossip network did not take the payload.
type CommitOutcome struct {
	BlindVote base.BlindVote
	Err       error
}

type Service struct {
	sync.RWMutex
	*logging.Logging
	devEnv       util.DevEnv
	db           storage.Database
	ledger       ledger.Reader
	period       *period.Service
	proposals    ActiveProposalsProvider
	fees         FeeProvider
	wallet       wallet.Wallet
	store        gossip.Store
	signer       key.BTCPublickey
	tracker      RevealTracker
	hashes       cache.Cache
	blindVotes   base.BlindVoteList
	pending      PendingCommitList
	queue        *storage.SaveQueue
	pendingQueue *storage.SaveQueue
}

func NewService(
	db storage.Database,
	maxBackups int,
	lr ledger.Reader,
	ps *period.Service,
	proposals ActiveProposalsProvider,
	fees FeeProvider,
	wl wallet.Wallet,
	store gossip.Store,
	signer key.BTCPublickey,
	hashes cache.Cache,
	devEnv util.DevEnv,
) *Service {
	if hashes == nil {
		hashes = cache.Dummy{}
	}

	sv := &Service{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "blind-vote-service")
		}),
		devEnv:    devEnv,
		db:        db,
		ledger:    lr,
		period:    ps,
		proposals: proposals,
		fees:      fees,
		wallet:    wl,
		store:     store,
		signer:    signer,
		hashes:    hashes,
	}

	sv.queue = storage.NewSaveQueue(db, BlindVoteListStorageName, maxBackups, func() interface{} {
		sv.RLock()
		defer sv.RUnlock()

		return base.BlindVoteList{BlindVotes: sv.blindVotes.Copy()}
	})

	sv.pendingQueue = storage.NewSaveQueue(db, PendingCommitListStorageName, maxBackups, func() interface{} {
		sv.RLock()
		defer sv.RUnlock()

		commits := make([]PendingCommit, len(sv.pending.Commits))
		copy(commits, sv.pending.Commits)

		return PendingCommitList{Commits: commits}
	})

	return sv
}

func (sv *Service) SetLogging(l *logging.Logging) *logging.Logging {
	_ = sv.queue.SetLogging(l)
	_ = sv.pendingQueue.SetLogging(l)

	return sv.Logging.SetLogging(l)
}

func (sv *Service) SetRevealTracker(tracker RevealTracker) {
	sv.Lock()
	defer sv.Unlock()

	sv.tracker = tracker
}

func (sv *Service) Load() error {
	var bl base.BlindVoteList
	if _, err := storage.LoadOrDefault(sv.db, BlindVoteListStorageName, &bl); err != nil {
		return err
	}

	var pl PendingCommitList
	if _, err := storage.LoadOrDefault(sv.db, PendingCommitListStorageName, &pl); err != nil {
		return err
	}

	sv.Lock()
	defer sv.Unlock()

	sv.blindVotes = bl
	sv.pending = pl

	sv.Log().Debug().Int("blind_votes", bl.Len()).Int("pending_commits", len(pl.Commits)).
		Msg("blind votes loaded")

	return nil
}

// Start applies the blind votes, which are already known by the gossip
// network.
func (sv *Service) Start(snapshot map[string]base.Payload) error {
	if err := sv.queue.Start(); err != nil {
		return err
	}

	if err := sv.pendingQueue.Start(); err != nil {
		return err
	}

	var added int
	for k := range snapshot {
		bv, ok := snapshot[k].BlindVote()
		if !ok {
			continue
		}

		if sv.add(bv) {
			added++
		}
	}

	if added > 0 {
		sv.queue.QueueSave()
	}

	sv.Log().Debug().Int("added", added).Msg("blind vote service started")

	return nil
}

func (sv *Service) Stop() error {
	for _, q := range []*storage.SaveQueue{sv.queue, sv.pendingQueue} {
		if err := q.Stop(); err != nil && !errors.Is(err, util.DaemonAlreadyStoppedError) {
			return err
		}
	}

	return nil
}

func (sv *Service) Flush() error {
	if err := sv.queue.Flush(); err != nil {
		return err
	}

	return sv.pendingQueue.Flush()
}

// Commit creates and broadcasts the blind vote tx for the active proposals.
// The errors before broadcasting are returned directly; the broadcast outcome
// is delivered through the returned channel exactly once.
func (sv *Service) Commit(stake int64) (<-chan CommitOutcome, error) {
	if stake < 1 {
		return nil, isvalid.InvalidError.Errorf("stake should be positive, %d", stake)
	}

	proposals := base.SortProposals(sv.proposals.ActiveProposals())

	sk, err := NewSecretKey()
	if err != nil {
		return nil, err
	}

	encrypted, err := EncryptProposalList(proposals, sk)
	if err != nil {
		return nil, err
	}

	od := base.NewOpReturnData(base.OpReturnTypeBlindVote, sv.hashOfEncryptedProposalList(encrypted))

	fee := sv.fees.BlindVoteFee(sv.ledger.ChainHeight())
	if balance := sv.wallet.AvailableBalance(); balance < stake+fee {
		return nil, wallet.InsufficientMoneyError.Errorf("stake and fee, %d > balance, %d", stake+fee, balance)
	}

	tx, err := sv.wallet.PrepareBlindVoteTx(fee, stake)
	if err != nil {
		return nil, wallet.WrapError(err)
	}

	if tx, err = sv.wallet.AttachOpReturn(tx, od.Bytes()); err != nil {
		return nil, wallet.WrapError(err)
	}

	if tx, err = sv.wallet.Sign(tx); err != nil {
		return nil, wallet.WrapError(err)
	}

	l := sv.Log().With().Str("tx_id", tx.ID).Int64("stake", stake).Int64("fee", fee).
		Int("proposals", len(proposals)).Logger()

	ch := make(chan CommitOutcome, 1)

	failed := func(err error) {
		l.Error().Err(err).Msg("failed to broadcast blind vote tx")

		ch <- CommitOutcome{Err: err}
	}

	sv.wallet.Broadcast(tx, wallet.BroadcastCallback{
		OnSuccess: func(wallet.Transaction) {
			bv := base.NewBlindVote(encrypted, tx.ID, stake, sv.signer)
			if err := sv.materialize(bv, proposals, sk); err != nil {
				l.Error().Err(err).Object("blind_vote", bv).Msg("blind vote committed, but not published")

				ch <- CommitOutcome{BlindVote: bv, Err: err}

				return
			}

			l.Info().Object("blind_vote", bv).Msg("blind vote committed")

			ch <- CommitOutcome{BlindVote: bv}
		},
		OnTimeout: func(err error) {
			sv.addPending(tx.ID, stake, fee, encrypted, sk, proposals)

			failed(err)
		},
		OnMalleability: failed,
		OnFailure:      failed,
	})

	return ch, nil
}

// ReconcilePending resolves the timed out commits. The confirmed tx with the
// matching op return becomes blind vote; the tx, which wallet does not know
// or is dead, is released.
func (sv *Service) ReconcilePending() []Reconciliation {
	sv.RLock()
	commits := make([]PendingCommit, len(sv.pending.Commits))
	copy(commits, sv.pending.Commits)
	sv.RUnlock()

	if len(commits) < 1 {
		return nil
	}

	rs := make([]Reconciliation, len(commits))
	var resolved []string

	for i := range commits {
		rs[i] = sv.reconcile(commits[i])

		if rs[i].Result != ReconcileKept {
			resolved = append(resolved, commits[i].TxID)
		}

		sv.Log().Info().Object("commit", commits[i]).Stringer("result", rs[i].Result).Err(rs[i].Err).
			Msg("pending commit reconciled")
	}

	if len(resolved) > 0 {
		sv.removePending(resolved)
	}

	return rs
}

func (sv *Service) reconcile(pc PendingCommit) Reconciliation {
	r := Reconciliation{TxID: pc.TxID}

	if tx, found := sv.ledger.Tx(pc.TxID); found {
		bv := base.NewBlindVote(pc.EncryptedProposalList, pc.TxID, pc.Stake, sv.signer)
		if err := sv.validateWithTx(bv, tx); err != nil {
			r.Result = ReconcileReleased
			r.Err = err

			return r
		}

		proposals, err := pc.Proposals()
		if err != nil {
			r.Result = ReconcileReleased
			r.Err = err

			return r
		}

		// NOTE the cycle is over; the blind vote can not be revealed anymore.
		if !sv.period.IsTxInCurrentCycle(pc.TxID) {
			r.Result = ReconcileReleased
			r.Err = isvalid.InvalidError.Errorf("blind vote tx not in current cycle")

			return r
		}

		r.Result = ReconcileMaterialized
		r.BlindVote = bv
		r.Err = sv.materialize(bv, proposals, pc.SecretKey)

		return r
	}

	switch sv.wallet.TxStatus(pc.TxID) {
	case wallet.TxStatusPending, wallet.TxStatusConfirmed:
		r.Result = ReconcileKept
	default:
		r.Result = ReconcileReleased
	}

	return r
}

func (sv *Service) PendingCommits() []PendingCommit {
	sv.RLock()
	defer sv.RUnlock()

	commits := make([]PendingCommit, len(sv.pending.Commits))
	copy(commits, sv.pending.Commits)

	return commits
}

func (sv *Service) OnAdded(payload base.Payload) error {
	bv, ok := payload.BlindVote()
	if !ok {
		return nil
	}

	if sv.add(bv) {
		sv.queue.QueueSave()
	}

	return nil
}

// OnRemoved of blind vote is never allowed; blind votes only grow. The removal
// is ignored and only in developer mode it returns error.
func (sv *Service) OnRemoved(payload base.Payload) error {
	bv, ok := payload.BlindVote()
	if !ok {
		return nil
	}

	return sv.devEnv.ProtocolViolation(sv.Log(), "blind vote can not be removed; tx=%q", bv.TxID())
}

// BlindVotes returns all the known blind votes including the invalid ones.
func (sv *Service) BlindVotes() []base.BlindVote {
	sv.RLock()
	defer sv.RUnlock()

	return sv.blindVotes.Copy()
}

// ValidBlindVotes returns the blind votes, which tx is confirmed in the
// current cycle and anchors the encrypted proposal list. The invalid blind
// votes are kept; after reorg they can become valid.
func (sv *Service) ValidBlindVotes() []base.BlindVote {
	all := sv.BlindVotes()

	var valid []base.BlindVote
	for i := range all {
		if err := sv.isValid(all[i]); err != nil {
			sv.Log().Debug().Err(err).Object("blind_vote", all[i]).Msg("invalid blind vote")

			continue
		}

		valid = append(valid, all[i])
	}

	return valid
}

func (sv *Service) isValid(bv base.BlindVote) error {
	tx, found := sv.ledger.Tx(bv.TxID())
	if !found {
		return isvalid.InvalidError.Errorf("blind vote tx not confirmed")
	}

	if !sv.period.IsTxInCurrentCycle(bv.TxID()) {
		return isvalid.InvalidError.Errorf("blind vote tx not in current cycle")
	}

	return sv.validateWithTx(bv, tx)
}

func (sv *Service) validateWithTx(bv base.BlindVote, tx base.Tx) error {
	if err := bv.IsValid(nil); err != nil {
		return err
	}

	od, err := base.ParseOpReturnData(tx.OpReturn())
	if err != nil {
		return err
	}

	if od.Type != base.OpReturnTypeBlindVote {
		return isvalid.InvalidError.Errorf("op return type is not blind vote, %s", od.Type)
	}

	if !od.Hash.Equal(sv.hashOfEncryptedProposalList(bv.EncryptedProposalList())) {
		return isvalid.InvalidError.Errorf("hash of encrypted proposal list does not match with op return data")
	}

	return bv.ValidateCorrectTxType(tx)
}

func (sv *Service) hashOfEncryptedProposalList(b []byte) valuehash.L32 {
	k := string(b)
	if i, found := sv.hashes.Get(k); found {
		if h, ok := i.(valuehash.L32); ok {
			return h
		}
	}

	h := valuehash.NewSHA256(b)
	_ = sv.hashes.Set(k, h)

	return h
}

func (sv *Service) add(bv base.BlindVote) bool {
	sv.Lock()
	defer sv.Unlock()

	if sv.blindVotes.Contains(bv) {
		sv.Log().Trace().Object("blind_vote", bv).Msg("blind vote already in list")

		return false
	}

	sv.blindVotes = base.BlindVoteList{BlindVotes: append(sv.blindVotes.Copy(), bv)}

	sv.Log().Info().Object("blind_vote", bv).Msg("blind vote added")

	return true
}

// materialize stores the blind vote and hands it to the reveal tracker. The
// blind vote is kept even if the gossip network rejects it; the tx is already
// broadcasted and the stake is locked.
func (sv *Service) materialize(bv base.BlindVote, proposals base.ProposalList, sk SecretKey) error {
	if sv.add(bv) {
		sv.queue.QueueSave()
	}

	var err error
	if !sv.store.Publish(base.NewBlindVotePayload(bv), true) {
		err = gossip.PublishFailedError.Errorf("blind vote, tx=%q", bv.TxID())
	}

	sv.RLock()
	tracker := sv.tracker
	sv.RUnlock()

	if tracker != nil {
		tracker.OnNewBlindVote(proposals, sk, bv)
	}

	return err
}

func (sv *Service) addPending(
	txID string, stake, fee int64, encrypted []byte, sk SecretKey, proposals base.ProposalList,
) {
	b, err := proposals.Bytes()
	if err != nil {
		sv.Log().Error().Err(err).Str("tx_id", txID).Msg("failed to encode proposals of pending commit")
	}

	pc := PendingCommit{
		TxID:                  txID,
		Stake:                 stake,
		Fee:                   fee,
		EncryptedProposalList: util.CopyBytes(encrypted),
		SecretKey:             SecretKey(util.CopyBytes(sk)),
		ProposalList:          b,
		CreatedAt:             time.Now().UTC(),
	}

	sv.Lock()
	commits := make([]PendingCommit, len(sv.pending.Commits), len(sv.pending.Commits)+1)
	copy(commits, sv.pending.Commits)
	sv.pending = PendingCommitList{Commits: append(commits, pc)}
	sv.Unlock()

	sv.pendingQueue.QueueSave()

	sv.Log().Warn().Object("commit", pc).Msg("timed out commit is pending")
}

func (sv *Service) removePending(txIDs []string) {
	sv.Lock()

	var commits []PendingCommit
	for i := range sv.pending.Commits {
		pc := sv.pending.Commits[i]

		var found bool
		for j := range txIDs {
			if pc.TxID == txIDs[j] {
				found = true

				break
			}
		}

		if !found {
			commits = append(commits, pc)
		}
	}

	sv.pending = PendingCommitList{Commits: commits}
	sv.Unlock()

	sv.pendingQueue.QueueSave()
}

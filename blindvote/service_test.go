package blindvote

import (
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/base/key"
	"github.com/spikeekips/mitum-dao/gossip"
	"github.com/spikeekips/mitum-dao/ledger"
	"github.com/spikeekips/mitum-dao/param"
	"github.com/spikeekips/mitum-dao/period"
	leveldbstorage "github.com/spikeekips/mitum-dao/storage/leveldb"
	"github.com/spikeekips/mitum-dao/util"
	"github.com/spikeekips/mitum-dao/util/cache"
	"github.com/spikeekips/mitum-dao/util/isvalid"
	"github.com/spikeekips/mitum-dao/util/valuehash"
	"github.com/spikeekips/mitum-dao/wallet"
	"github.com/stretchr/testify/suite"
)

type dummyProposals struct {
	l base.ProposalList
}

func (dp dummyProposals) ActiveProposals() base.ProposalList {
	return dp.l
}

type recordTracker struct {
	sync.Mutex
	proposals []base.ProposalList
	keys      []SecretKey
	votes     []base.BlindVote
}

func (rt *recordTracker) OnNewBlindVote(l base.ProposalList, sk SecretKey, bv base.BlindVote) {
	rt.Lock()
	defer rt.Unlock()

	rt.proposals = append(rt.proposals, l)
	rt.keys = append(rt.keys, sk)
	rt.votes = append(rt.votes, bv)
}

// rejectingStore does not take any payload from local.
type rejectingStore struct {
	*gossip.MemStore
}

func (rejectingStore) Publish(base.Payload, bool) bool {
	return false
}

type testService struct {
	suite.Suite
	signer    key.BTCPublickey
	db        *leveldbstorage.Database
	st        *ledger.State
	ps        *period.Service
	params    *param.Service
	wl        *wallet.TestWallet
	store     *gossip.MemStore
	tracker   *recordTracker
	proposals base.ProposalList
	sv        *Service
}

func (t *testService) SetupSuite() {
	t.signer = key.MustNewBTCPrivatekey().Publickey()
}

func (t *testService) SetupTest() {
	t.db = leveldbstorage.NewMemDatabase()
	t.st = ledger.NewState(ledger.GenesisParams{Height: base.Height(100)})

	// PROPOSAL [100,109], BREAK1 110, BLIND_VOTE [111,115], BREAK2 116,
	// VOTE_REVEAL [117,121], RESULT 122
	t.NoError(t.st.AddCycle(base.MustNewCycle(base.Height(100), base.NewTestPhaseDurations(10, 1, 5, 1, 5, 1))))
	t.NoError(t.st.AddCycle(base.MustNewCycle(base.Height(123), base.NewTestPhaseDurations(10, 1, 5, 1, 5, 1))))
	t.NoError(t.st.SetChainHeight(112))

	t.ps = period.NewService(t.st)
	t.params = param.NewService(t.db, 3, util.NewDevEnv(true))
	t.wl = wallet.NewTestWallet(10000)
	t.store = gossip.NewMemStore()
	t.tracker = &recordTracker{}

	t.proposals = base.ProposalList{
		base.NewTestProposal(t.signer, "tx1"),
		base.NewTestProposal(t.signer, "tx0"),
	}

	t.sv = t.newService()
	t.NoError(t.sv.Start(nil))
}

func (t *testService) TearDownTest() {
	t.NoError(t.sv.Stop())
	_ = t.db.Close()
}

func (t *testService) newService() *Service {
	return t.newServiceWith(t.store, util.NewDevEnv(true))
}

func (t *testService) newServiceWith(store gossip.Store, devEnv util.DevEnv) *Service {
	hashes, err := cache.NewGCache("lru", 10, time.Minute)
	t.NoError(err)

	sv := NewService(
		t.db, 3, t.st, t.ps,
		dummyProposals{l: t.proposals},
		t.params, t.wl, store, t.signer, hashes,
		devEnv,
	)
	sv.SetRevealTracker(t.tracker)

	return sv
}

func (t *testService) waitOutcome(ch <-chan CommitOutcome) CommitOutcome {
	select {
	case o := <-ch:
		return o
	case <-time.After(time.Second * 3):
		t.NoError(errors.Errorf("failed to wait commit outcome"))

		return CommitOutcome{}
	}
}

func (t *testService) confirm(id string, height base.Height, tp base.TxType, opReturn []byte) {
	t.st.RecordTx(base.NewMutableTx(base.NewTestTx(id, height, tp, opReturn)))
}

func (t *testService) commit(stake int64) (CommitOutcome, wallet.Transaction) {
	ch, err := t.sv.Commit(stake)
	t.NoError(err)

	o := t.waitOutcome(ch)

	broadcasted := t.wl.Broadcasted()
	t.NotEmpty(broadcasted)

	return o, broadcasted[len(broadcasted)-1]
}

func (t *testService) TestCommit() {
	o, tx := t.commit(300)
	t.NoError(o.Err)

	bv := o.BlindVote
	t.NoError(bv.IsValid(nil))
	t.Equal(tx.ID, bv.TxID())
	t.Equal(int64(300), bv.Stake())
	t.Equal(int64(300), tx.Stake)
	t.Equal(base.ParamBlindVoteFee.Default(), tx.BurnedFee)

	// added and published
	t.Equal(1, len(t.sv.BlindVotes()))
	broadcasted := t.store.Broadcasted()
	t.Equal(1, len(broadcasted))
	pbv, ok := broadcasted[0].BlindVote()
	t.True(ok)
	t.True(bv.Equal(pbv))

	// reveal tracker gets the sorted proposals and key
	t.Equal(1, len(t.tracker.votes))
	t.True(bv.Equal(t.tracker.votes[0]))
	sorted := base.SortProposals(t.proposals)
	t.Equal(sorted.UIDs(), t.tracker.proposals[0].UIDs())

	decrypted, err := DecryptProposalList(bv.EncryptedProposalList(), t.tracker.keys[0])
	t.NoError(err)
	t.Equal(sorted.UIDs(), decrypted.UIDs())

	// not yet confirmed
	t.Empty(t.sv.ValidBlindVotes())

	t.confirm(tx.ID, 113, base.TxTypeBlindVote, tx.OpReturn)

	valid := t.sv.ValidBlindVotes()
	t.Equal(1, len(valid))
	t.True(bv.Equal(valid[0]))
	t.NoError(bv.ValidateHashOfOpReturnData(base.NewTestTx(tx.ID, 113, base.TxTypeBlindVote, tx.OpReturn)))
}

func (t *testService) TestCommitInvalidStake() {
	_, err := t.sv.Commit(0)
	t.True(errors.Is(err, isvalid.InvalidError))
	t.Empty(t.wl.Broadcasted())
}

func (t *testService) TestCommitInsufficientMoney() {
	_, err := t.sv.Commit(10000)
	t.True(errors.Is(err, wallet.InsufficientMoneyError))
	t.Empty(t.wl.Broadcasted())
}

func (t *testService) TestCommitSignError() {
	t.wl.SetSignError(errors.Errorf("locked"))

	_, err := t.sv.Commit(100)
	t.True(errors.Is(err, wallet.SigningError))
	t.Empty(t.wl.Broadcasted())
	t.Empty(t.sv.BlindVotes())
}

func (t *testService) TestCommitFailed() {
	cases := []struct {
		outcome wallet.BroadcastOutcome
		err     error
	}{
		{outcome: wallet.BroadcastOutcomeMalleability, err: wallet.TxMalleabilityError},
		{outcome: wallet.BroadcastOutcomeFailure, err: wallet.BroadcastFailedError},
	}

	for i, c := range cases {
		t.wl.SetOutcome(c.outcome)

		o, _ := t.commit(100)
		t.True(errors.Is(o.Err, c.err), "%d: %v", i, o.Err)
	}

	t.Empty(t.sv.BlindVotes())
	t.Empty(t.sv.PendingCommits())
	t.Empty(t.store.Broadcasted())
	t.Empty(t.tracker.votes)
}

func (t *testService) TestCommitTimeout() {
	t.wl.SetOutcome(wallet.BroadcastOutcomeTimeout)

	o, tx := t.commit(100)
	t.True(errors.Is(o.Err, wallet.BroadcastTimeoutError))
	t.Empty(t.sv.BlindVotes())

	pending := t.sv.PendingCommits()
	t.Equal(1, len(pending))
	t.Equal(tx.ID, pending[0].TxID)
	t.Equal(int64(100), pending[0].Stake)
	t.Equal(base.ParamBlindVoteFee.Default(), pending[0].Fee)

	proposals, err := pending[0].Proposals()
	t.NoError(err)
	t.Equal(base.SortProposals(t.proposals).UIDs(), proposals.UIDs())
}

func (t *testService) TestReconcilePending() {
	t.wl.SetOutcome(wallet.BroadcastOutcomeTimeout)

	_, confirmed := t.commit(100)
	_, dead := t.commit(100)
	_, kept := t.commit(100)
	t.Equal(3, len(t.sv.PendingCommits()))

	t.confirm(confirmed.ID, 113, base.TxTypeBlindVote, confirmed.OpReturn)
	t.wl.SetTxStatus(dead.ID, wallet.TxStatusDead)

	rs := t.sv.ReconcilePending()
	t.Equal(3, len(rs))

	results := map[string]ReconcileResult{}
	for i := range rs {
		results[rs[i].TxID] = rs[i].Result
	}

	t.Equal(ReconcileMaterialized, results[confirmed.ID])
	t.Equal(ReconcileReleased, results[dead.ID])
	t.Equal(ReconcileKept, results[kept.ID])

	pending := t.sv.PendingCommits()
	t.Equal(1, len(pending))
	t.Equal(kept.ID, pending[0].TxID)

	valid := t.sv.ValidBlindVotes()
	t.Equal(1, len(valid))
	t.Equal(confirmed.ID, valid[0].TxID())
	t.Equal(1, len(t.tracker.votes))
	t.Equal(1, len(t.store.Broadcasted()))
}

func (t *testService) TestReconcileWrongOpReturn() {
	t.wl.SetOutcome(wallet.BroadcastOutcomeTimeout)

	_, tx := t.commit(100)

	wrong := base.NewOpReturnData(base.OpReturnTypeBlindVote, valuehash.NewSHA256([]byte("showme")))
	t.confirm(tx.ID, 113, base.TxTypeBlindVote, wrong.Bytes())

	rs := t.sv.ReconcilePending()
	t.Equal(1, len(rs))
	t.Equal(ReconcileReleased, rs[0].Result)
	t.True(errors.Is(rs[0].Err, isvalid.InvalidError))

	t.Empty(t.sv.PendingCommits())
	t.Empty(t.sv.BlindVotes())
}

func (t *testService) TestCommitPublishFailed() {
	sv := t.newServiceWith(rejectingStore{MemStore: t.store}, util.NewDevEnv(true))
	t.NoError(sv.Start(nil))
	defer func() {
		_ = sv.Stop()
	}()

	ch, err := sv.Commit(100)
	t.NoError(err)

	o := t.waitOutcome(ch)
	t.True(errors.Is(o.Err, gossip.PublishFailedError))

	// the tx is broadcasted, so the blind vote is kept for reveal
	t.NoError(o.BlindVote.IsValid(nil))
	t.Equal(1, len(sv.BlindVotes()))
	t.True(o.BlindVote.Equal(sv.BlindVotes()[0]))
	t.Equal(1, len(t.tracker.votes))
	t.Empty(t.store.Broadcasted())
}

func (t *testService) TestReconcilePublishFailed() {
	sv := t.newServiceWith(rejectingStore{MemStore: t.store}, util.NewDevEnv(true))
	t.NoError(sv.Start(nil))
	defer func() {
		_ = sv.Stop()
	}()

	t.wl.SetOutcome(wallet.BroadcastOutcomeTimeout)

	ch, err := sv.Commit(100)
	t.NoError(err)
	t.True(errors.Is(t.waitOutcome(ch).Err, wallet.BroadcastTimeoutError))

	broadcasted := t.wl.Broadcasted()
	tx := broadcasted[len(broadcasted)-1]
	t.confirm(tx.ID, 113, base.TxTypeBlindVote, tx.OpReturn)

	rs := sv.ReconcilePending()
	t.Equal(1, len(rs))
	t.Equal(ReconcileMaterialized, rs[0].Result)
	t.True(errors.Is(rs[0].Err, gossip.PublishFailedError))
	t.Equal(tx.ID, rs[0].BlindVote.TxID())

	t.Empty(sv.PendingCommits())
	t.Equal(1, len(sv.BlindVotes()))
	t.Equal(1, len(t.tracker.votes))
}

func (t *testService) TestReconcileConfirmedInPastCycle() {
	t.wl.SetOutcome(wallet.BroadcastOutcomeTimeout)

	_, tx := t.commit(100)
	t.confirm(tx.ID, 113, base.TxTypeBlindVote, tx.OpReturn)

	// next cycle
	t.NoError(t.st.SetChainHeight(125))

	rs := t.sv.ReconcilePending()
	t.Equal(1, len(rs))
	t.Equal(ReconcileReleased, rs[0].Result)
	t.True(errors.Is(rs[0].Err, isvalid.InvalidError))

	t.Empty(t.sv.PendingCommits())
	t.Empty(t.sv.BlindVotes())
	t.Empty(t.tracker.votes)
	t.Empty(t.store.Broadcasted())
}

func (t *testService) TestIngestion() {
	bv := base.NewBlindVote([]byte("encrypted"), "tx0", 100, t.signer)

	t.NoError(t.sv.OnAdded(base.NewBlindVotePayload(bv)))
	t.NoError(t.sv.OnAdded(base.NewBlindVotePayload(bv)))
	t.Equal(1, len(t.sv.BlindVotes()))

	// same tx id, different blob
	other := base.NewBlindVote([]byte("findme"), "tx0", 100, t.signer)
	t.NoError(t.sv.OnAdded(base.NewBlindVotePayload(other)))
	t.Equal(2, len(t.sv.BlindVotes()))

	err := t.sv.OnRemoved(base.NewBlindVotePayload(bv))
	t.True(errors.Is(err, util.ProtocolViolationError))
	t.Equal(2, len(t.sv.BlindVotes()))

	// the other payloads are ignored
	pl := base.NewProposalPayload(t.proposals[0])
	t.NoError(t.sv.OnAdded(pl))
	t.NoError(t.sv.OnRemoved(pl))
	t.Equal(2, len(t.sv.BlindVotes()))
}

func (t *testService) TestRemoveNotDevMode() {
	sv := t.newServiceWith(t.store, util.NewDevEnv(false))
	t.NoError(sv.Start(nil))
	defer func() {
		_ = sv.Stop()
	}()

	bv := base.NewBlindVote([]byte("encrypted"), "tx0", 100, t.signer)
	t.NoError(sv.OnAdded(base.NewBlindVotePayload(bv)))

	t.NoError(sv.OnRemoved(base.NewBlindVotePayload(bv)))
	t.Equal(1, len(sv.BlindVotes()))
	t.True(bv.Equal(sv.BlindVotes()[0]))
}

func (t *testService) TestValidityFilter() {
	newBlindVote := func(id string, blob string) (base.BlindVote, []byte) {
		bv := base.NewBlindVote([]byte(blob), id, 100, t.signer)

		return bv, base.NewOpReturnData(base.OpReturnTypeBlindVote, bv.HashOfEncryptedProposalList()).Bytes()
	}

	valid, od := newBlindVote("valid", "showme")
	t.confirm(valid.TxID(), 113, base.TxTypeBlindVote, od)

	unconfirmed, _ := newBlindVote("unconfirmed", "showme")

	wrongType, od := newBlindVote("wrong-type", "showme")
	t.confirm(wrongType.TxID(), 113, base.TxTypeProposal, od)

	wrongHash, _ := newBlindVote("wrong-hash", "showme")
	_, od = newBlindVote("wrong-hash", "findme")
	t.confirm(wrongHash.TxID(), 113, base.TxTypeBlindVote, od)

	wrongOpReturn, _ := newBlindVote("wrong-op-return", "showme")
	t.confirm(wrongOpReturn.TxID(), 113, base.TxTypeBlindVote, []byte("killme"))

	for _, bv := range []base.BlindVote{valid, unconfirmed, wrongType, wrongHash, wrongOpReturn} {
		t.NoError(t.sv.OnAdded(base.NewBlindVotePayload(bv)))
	}

	vs := t.sv.ValidBlindVotes()
	t.Equal(1, len(vs))
	t.True(valid.Equal(vs[0]))

	// invalid ones are retained
	t.Equal(5, len(t.sv.BlindVotes()))

	// next cycle
	t.NoError(t.st.SetChainHeight(125))
	t.Empty(t.sv.ValidBlindVotes())
	t.Equal(5, len(t.sv.BlindVotes()))
}

func (t *testService) TestLoad() {
	o, tx := t.commit(100)
	t.NoError(o.Err)

	t.wl.SetOutcome(wallet.BroadcastOutcomeTimeout)
	_, pending := t.commit(100)

	t.NoError(t.sv.Flush())

	loaded := t.newService()
	t.NoError(loaded.Load())

	bvs := loaded.BlindVotes()
	t.Equal(1, len(bvs))
	t.Equal(tx.ID, bvs[0].TxID())
	t.True(o.BlindVote.Equal(bvs[0]))

	commits := loaded.PendingCommits()
	t.Equal(1, len(commits))
	t.Equal(pending.ID, commits[0].TxID)
	t.NoError(commits[0].SecretKey.IsValid(nil))
}

func (t *testService) TestStartReplay() {
	bv := base.NewBlindVote([]byte("encrypted"), "tx0", 100, t.signer)
	pl := base.NewBlindVotePayload(bv)
	h, err := pl.Hash()
	t.NoError(err)

	sv := t.newService()
	t.NoError(sv.Start(map[string]base.Payload{
		h.String(): pl,
		"proposal":  base.NewProposalPayload(t.proposals[0]),
	}))
	defer func() {
		_ = sv.Stop()
	}()

	t.Equal(1, len(sv.BlindVotes()))
}

func TestService(t *testing.T) {
	suite.Run(t, new(testService))
}

package cmds

import (
	"bytes"
	"testing"

	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/base/key"
	"github.com/spikeekips/mitum-dao/blindvote"
	"github.com/spikeekips/mitum-dao/param"
	"github.com/spikeekips/mitum-dao/proposal"
	"github.com/spikeekips/mitum-dao/storage"
	leveldbstorage "github.com/spikeekips/mitum-dao/storage/leveldb"
	"github.com/spikeekips/mitum-dao/util"
	"github.com/stretchr/testify/suite"
)

type testDump struct {
	suite.Suite
}

func (t *testDump) save(db storage.Database, name string, v interface{}) {
	b, err := storage.Encode(v)
	t.NoError(err)
	t.NoError(db.Save(name, b, 3))
}

func (t *testDump) TestDump() {
	dir := t.T().TempDir()

	db, err := leveldbstorage.NewDatabaseFromPath(dir)
	t.NoError(err)

	signer := key.MustNewBTCPrivatekey().Publickey()

	t.save(db, param.StorageName, base.ParamChangeEventList{Events: []base.ParamChangeEvent{
		base.NewParamChangeEvent(base.ParamProposalFee, 10, base.Height(100)),
	}})
	t.save(db, proposal.BallotListStorageName, base.BallotList{Ballots: []base.Ballot{
		base.NewBallot(base.NewTestProposal(signer, "tx0")),
		base.NewBallot(base.NewTestProposal(signer, "tx1")),
	}})
	t.save(db, blindvote.BlindVoteListStorageName, base.BlindVoteList{BlindVotes: []base.BlindVote{
		base.NewBlindVote([]byte("encrypted"), "tx2", 100, signer),
	}})
	t.save(db, blindvote.PendingCommitListStorageName, blindvote.PendingCommitList{Commits: []blindvote.PendingCommit{
		{TxID: "tx3", Stake: 100, Fee: 10, SecretKey: blindvote.SecretKey([]byte("killme"))},
	}})
	t.NoError(db.Close())

	flags := struct {
		Dump DumpCommand `cmd:"" name:"dump"`
	}{
		Dump: NewDumpCommand(),
	}

	kctx, err := Context([]string{"dump", "leveldb://" + dir}, &flags)
	t.NoError(err)

	var out bytes.Buffer
	flags.Dump.Out = &out
	flags.Dump.LogOutput = &bytes.Buffer{}

	t.NoError(kctx.Run())

	var m map[string][]map[string]interface{}
	t.NoError(util.JSON.Unmarshal(out.Bytes(), &m))

	t.Equal(1, len(m["param_change_events"]))
	t.Equal(2, len(m["ballots"]))
	t.Equal(1, len(m["blind_votes"]))
	t.Equal(1, len(m["pending_commits"]))
	t.NotContains(out.String(), "killme")
}

func TestDump(t *testing.T) {
	suite.Run(t, new(testDump))
}

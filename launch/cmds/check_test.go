package cmds

import (
	"bytes"
	"os"
	"path/filepath"
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

type testCheck struct {
	suite.Suite
	priv key.BTCPrivatekey
}

func (t *testCheck) SetupSuite() {
	t.priv = key.MustNewBTCPrivatekey()
}

func (t *testCheck) writeConfig(uri string, withPrivatekey bool) string {
	f := filepath.Join(t.T().TempDir(), "config.yml")

	var priv string
	if withPrivatekey {
		priv = "privatekey: " + t.priv.String() + "\n"
	}

	t.NoError(os.WriteFile(f, []byte(`
dev-mode: true
`+priv+`genesis:
  height: 100
  tx-id: showme
  total-supply: 1000
storage:
  uri: `+uri+`
  max-backups: 3
`), 0o600))

	return f
}

func (t *testCheck) run(args ...string) (checked, error) {
	flags := struct {
		Check CheckCommand `cmd:"" name:"check"`
	}{
		Check: NewCheckCommand(),
	}

	kctx, err := Context(append([]string{"check"}, args...), &flags)
	t.NoError(err)

	var out bytes.Buffer
	flags.Check.Out = &out
	flags.Check.LogOutput = &bytes.Buffer{}

	if err := kctx.Run(); err != nil {
		return checked{}, err
	}

	var c checked
	t.NoError(util.JSON.Unmarshal(out.Bytes(), &c))

	return c, nil
}

func (t *testCheck) save(db storage.Database, name string, v interface{}) {
	b, err := storage.Encode(v)
	t.NoError(err)
	t.NoError(db.Save(name, b, 3))
}

func (t *testCheck) TestPersisted() {
	dir := t.T().TempDir()

	db, err := leveldbstorage.NewDatabaseFromPath(dir)
	t.NoError(err)

	signer := t.priv.Publickey()

	t.save(db, param.StorageName, base.ParamChangeEventList{Events: []base.ParamChangeEvent{
		base.NewParamChangeEvent(base.ParamProposalFee, 10, base.Height(100)),
	}})
	t.save(db, proposal.BallotListStorageName, base.BallotList{Ballots: []base.Ballot{
		base.NewBallot(base.NewTestProposal(signer, "tx0")),
	}})
	t.save(db, blindvote.BlindVoteListStorageName, base.BlindVoteList{BlindVotes: []base.BlindVote{
		base.NewBlindVote([]byte("encrypted"), "tx1", 100, signer),
	}})
	t.save(db, blindvote.PendingCommitListStorageName, blindvote.PendingCommitList{Commits: []blindvote.PendingCommit{
		{TxID: "tx2", Stake: 100, Fee: 10, SecretKey: blindvote.SecretKey([]byte("killme"))},
	}})
	t.NoError(db.Close())

	c, err := t.run(t.writeConfig("leveldb://"+dir, true), "--height", "112")
	t.NoError(err)

	t.True(c.DevMode)
	t.Equal(base.Height(112), c.ChainHeight)
	t.Equal(base.PhaseProposal, c.Phase)
	t.NotNil(c.Cycle)
	t.Equal(base.Height(100), c.Cycle.FirstBlock)
	t.Equal(1, c.ParamChangeEvents)
	t.Equal(1, c.Ballots)
	t.Equal(1, c.BlindVotes)
	t.Equal(0, c.ValidBlindVotes)

	// offline wallet keeps the unknown tx as pending
	t.Equal(1, c.PendingCommits)
}

func (t *testCheck) TestMemory() {
	c, err := t.run(t.writeConfig("memory://", true))
	t.NoError(err)

	t.Equal(base.Height(100), c.ChainHeight)
	t.Equal(base.PhaseProposal, c.Phase)
	t.Equal(0, c.Ballots)
	t.Equal(0, c.PendingCommits)
}

func (t *testCheck) TestWithoutPrivatekey() {
	_, err := t.run(t.writeConfig("memory://", false))
	t.Error(err)
	t.Contains(err.Error(), "privatekey")
}

func (t *testCheck) TestUnknownStorage() {
	_, err := t.run(t.writeConfig("findme://", true))
	t.Error(err)
	t.Contains(err.Error(), "not supported storage uri")
}

func TestCheck(t *testing.T) {
	suite.Run(t, new(testCheck))
}

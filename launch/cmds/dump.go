package cmds

import (
	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/blindvote"
	"github.com/spikeekips/mitum-dao/dao"
	"github.com/spikeekips/mitum-dao/param"
	"github.com/spikeekips/mitum-dao/proposal"
	"github.com/spikeekips/mitum-dao/storage"
	"github.com/spikeekips/mitum-dao/util"
)

type DumpCommand struct {
	*BaseCommand
	URI string `arg:"" name:"storage uri" help:"storage uri; leveldb://<path> or mongodb://..."`
}

func NewDumpCommand() DumpCommand {
	return DumpCommand{
		BaseCommand: NewBaseCommand("dump"),
	}
}

type dumped struct {
	ParamChangeEvents []base.ParamChangeEvent   `json:"param_change_events"`
	Ballots           []base.Ballot             `json:"ballots"`
	BlindVotes        []base.BlindVote          `json:"blind_votes"`
	PendingCommits    []blindvote.PendingCommit `json:"pending_commits"`
}

// Run prints the persisted governance states; the secret keys of pending
// commits are not printed.
func (cmd *DumpCommand) Run() error {
	if err := cmd.Initialize(cmd); err != nil {
		return errors.Wrap(err, "failed to initialize command")
	}

	defer cmd.Done()

	db, err := dao.NewDatabaseFromURI(cmd.URI)
	if err != nil {
		return err
	}

	defer func() {
		_ = db.Close()
	}()

	d, err := cmd.load(db)
	if err != nil {
		return err
	}

	b, err := util.JSONMarshalIndent(d)
	if err != nil {
		return err
	}

	return cmd.print(b)
}

func (cmd *DumpCommand) load(db storage.Database) (dumped, error) {
	var events base.ParamChangeEventList
	var ballots base.BallotList
	var blindVotes base.BlindVoteList
	var commits blindvote.PendingCommitList

	for name, v := range map[string]interface{}{
		param.StorageName:                      &events,
		proposal.BallotListStorageName:         &ballots,
		blindvote.BlindVoteListStorageName:     &blindVotes,
		blindvote.PendingCommitListStorageName: &commits,
	} {
		found, err := storage.LoadOrDefault(db, name, v)
		if err != nil {
			return dumped{}, errors.Wrapf(err, "failed to load %q", name)
		}

		cmd.Log().Debug().Str("name", name).Bool("found", found).Msg("loaded")
	}

	return dumped{
		ParamChangeEvents: events.Copy(),
		Ballots:           ballots.Copy(),
		BlindVotes:        blindVotes.Copy(),
		PendingCommits:    commits.Commits,
	}, nil
}

package cmds

import (
	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/dao"
	"github.com/spikeekips/mitum-dao/gossip"
	yamlconfig "github.com/spikeekips/mitum-dao/launch/config/yaml"
	"github.com/spikeekips/mitum-dao/ledger"
	"github.com/spikeekips/mitum-dao/util"
	"github.com/spikeekips/mitum-dao/wallet"
)

// CheckCommand starts the dao node of config without network; the persisted
// states are loaded and the summary is printed.
type CheckCommand struct {
	*BaseCommand
	Config FileLoad `arg:"" name:"config" help:"config file; '-' is stdin"`
	Height int64    `name:"height" help:"chain height; genesis height by default" default:"-1"`
}

func NewCheckCommand() CheckCommand {
	return CheckCommand{
		BaseCommand: NewBaseCommand("check"),
	}
}

type checked struct {
	DevMode           bool           `json:"dev_mode"`
	ChainHeight       base.Height    `json:"chain_height"`
	Phase             base.Phase     `json:"phase"`
	Cycle             *cycleSchedule `json:"cycle,omitempty"`
	ParamChangeEvents int            `json:"param_change_events"`
	Ballots           int            `json:"ballots"`
	ActiveProposals   int            `json:"active_proposals"`
	BlindVotes        int            `json:"blind_votes"`
	ValidBlindVotes   int            `json:"valid_blind_votes"`
	PendingCommits    int            `json:"pending_commits"`
}

func (cmd *CheckCommand) Run() error {
	if err := cmd.Initialize(cmd); err != nil {
		return errors.Wrap(err, "failed to initialize command")
	}

	defer cmd.Done()

	conf, err := yamlconfig.Load(cmd.Config.Bytes())
	if err != nil {
		return err
	}

	dc, err := conf.DAOConfig()
	if err != nil {
		return errors.Wrap(err, "invalid dao config")
	}

	st := ledger.NewState(conf.Genesis().Params())

	height := conf.Genesis().Height()
	if base.Height(cmd.Height) > height {
		height = base.Height(cmd.Height)
	}

	if err := st.SetChainHeight(height); err != nil {
		return err
	}

	db, err := dao.NewDatabaseFromURI(conf.Storage().URI())
	if err != nil {
		return err
	}

	d, err := dao.Setup(dc, db, st, gossip.NewMemStore(), wallet.NewOfflineWallet())
	if err != nil {
		_ = db.Close()

		return err
	}
	_ = d.SetLogging(cmd.Logging)

	if err := d.Start(); err != nil {
		_ = d.Close()

		return errors.Wrap(err, "failed to start dao")
	}

	c := cmd.check(d, dc.DevMode)

	if err := d.Close(); err != nil {
		return errors.Wrap(err, "failed to close dao")
	}

	b, err := util.JSONMarshalIndent(c)
	if err != nil {
		return err
	}

	return cmd.print(b)
}

func (cmd *CheckCommand) check(d *dao.DAO, devMode bool) checked {
	c := checked{
		DevMode:           devMode,
		ChainHeight:       d.Period.ChainHeight(),
		Phase:             d.Period.CurrentPhase(),
		ParamChangeEvents: len(d.Params.Events()),
		Ballots:           len(d.Ballots.Ballots()),
		ActiveProposals:   len(d.Ballots.ActiveProposals()),
		BlindVotes:        len(d.BlindVotes.BlindVotes()),
		ValidBlindVotes:   len(d.BlindVotes.ValidBlindVotes()),
		PendingCommits:    len(d.BlindVotes.PendingCommits()),
	}

	if cy, found := d.Period.CurrentCycle(); found {
		c.Cycle = &cycleSchedule{
			FirstBlock: cy.FirstBlock(),
			LastBlock:  cy.LastBlock(),
			Phases:     cy.Phases(),
		}
	}

	return c
}

package cmds

import (
	"github.com/alecthomas/kong"
	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/launch/config"
	yamlconfig "github.com/spikeekips/mitum-dao/launch/config/yaml"
	"github.com/spikeekips/mitum-dao/ledger"
	"github.com/spikeekips/mitum-dao/period"
	"github.com/spikeekips/mitum-dao/util"
)

var ScheduleVars = kong.Vars{
	"schedule_cycles": "3",
}

type ScheduleCommand struct {
	*BaseCommand
	Config FileLoad    `arg:"" name:"config" help:"config file; '-' is stdin"`
	Cycles uint        `name:"cycles" help:"number of cycles (default: ${schedule_cycles})" default:"${schedule_cycles}"`
	Height int64       `name:"height" help:"print the phase of height" default:"-1"`
	conf   *config.DAO `kong:"-"`
}

func NewScheduleCommand() ScheduleCommand {
	return ScheduleCommand{
		BaseCommand: NewBaseCommand("schedule"),
	}
}

type cycleSchedule struct {
	FirstBlock base.Height          `json:"first_block"`
	LastBlock  base.Height          `json:"last_block"`
	Phases     []base.PhaseDuration `json:"phases"`
}

type heightPhase struct {
	Height     base.Height `json:"height"`
	Phase      base.Phase  `json:"phase"`
	FirstBlock base.Height `json:"first_block_of_phase"`
	LastBlock  base.Height `json:"last_block_of_phase"`
}

// Run prints the cycles from the genesis height; every cycle has the phase
// durations of config.
func (cmd *ScheduleCommand) Run() error {
	if err := cmd.Initialize(cmd); err != nil {
		return errors.Wrap(err, "failed to initialize command")
	}

	defer cmd.Done()

	conf, err := yamlconfig.Load(cmd.Config.Bytes())
	if err != nil {
		return err
	}
	cmd.conf = conf

	if cmd.Cycles < 1 {
		return errors.Errorf("cycles should be over 0")
	}

	st := ledger.NewState(conf.Genesis().Params())
	cs := period.NewCycleService(st, cmd)
	_ = cs.SetLogging(cmd.Logging)

	st.AddHeightListener(func(height base.Height) {
		if err := cs.OnChainHeight(height); err != nil {
			cmd.Log().Error().Err(err).Msg("failed to add cycles")
		}
	})

	genesis := conf.Genesis().Height()
	if err := st.SetChainHeight(genesis); err != nil {
		return err
	}

	for uint(len(st.Cycles())) < cmd.Cycles {
		cycles := st.Cycles()
		if err := st.SetChainHeight(cycles[len(cycles)-1].LastBlock() + 1); err != nil {
			return err
		}
	}

	cycles := st.Cycles()[:cmd.Cycles]
	out := make([]cycleSchedule, len(cycles))
	for i := range cycles {
		out[i] = cycleSchedule{
			FirstBlock: cycles[i].FirstBlock(),
			LastBlock:  cycles[i].LastBlock(),
			Phases:     cycles[i].Phases(),
		}
	}

	b, err := util.JSONMarshalIndent(out)
	if err != nil {
		return err
	}

	if err := cmd.print(b); err != nil {
		return err
	}

	if cmd.Height < 0 {
		return nil
	}

	return cmd.printHeight(period.NewService(st), base.Height(cmd.Height))
}

func (cmd *ScheduleCommand) printHeight(ps *period.Service, height base.Height) error {
	ph := ps.PhaseForHeight(height)
	if ph == base.PhaseUndefined {
		return errors.Errorf("height, %d out of scheduled cycles", height)
	}

	b, err := util.JSONMarshalIndent(heightPhase{
		Height:     height,
		Phase:      ph,
		FirstBlock: ps.FirstBlockOfPhase(height, ph),
		LastBlock:  ps.LastBlockOfPhase(height, ph),
	})
	if err != nil {
		return err
	}

	return cmd.print(b)
}

// PhaseDuration gives the duration of config regardless of height.
func (cmd *ScheduleCommand) PhaseDuration(ph base.Phase, _ base.Height) uint64 {
	for _, pd := range cmd.conf.PhaseDurations() {
		if pd.Phase == ph {
			return pd.Duration
		}
	}

	return 0
}

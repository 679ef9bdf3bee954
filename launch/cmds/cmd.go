package cmds

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/util/logging"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	DefaultName        = "dao-inspect"
	DefaultDescription = "dao governance inspector"
	MainOptions        = kong.HelpOptions{NoAppSummary: false, Compact: true, Summary: false, Tree: true}
)

var defaultKongOptions = []kong.Option{
	kong.Name(DefaultName),
	kong.Description(DefaultDescription),
	kong.UsageOnError(),
	kong.ConfigureHelp(MainOptions),
	LogVars,
	ScheduleVars,
}

func Context(args []string, flags interface{}, options ...kong.Option) (*kong.Context, error) {
	ops := make([]kong.Option, len(defaultKongOptions)+len(options))
	copy(ops, defaultKongOptions)
	copy(ops[len(defaultKongOptions):], options)

	p, err := kong.New(flags, ops...)
	if err != nil {
		return nil, err
	}

	return p.Parse(args)
}

type BaseCommand struct {
	*logging.Logging
	*LogFlags
	LogOutput io.Writer `kong:"-"`
	Out       io.Writer `kong:"-"`
	exithooks []func() error
}

func NewBaseCommand(name string) *BaseCommand {
	return &BaseCommand{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", fmt.Sprintf("command-%s", name))
		}),
		LogFlags: &LogFlags{},
	}
}

func (cmd *BaseCommand) Initialize(flags interface{}) error {
	if cmd.LogOutput == nil {
		cmd.LogOutput = os.Stderr
	}

	if cmd.Out == nil {
		cmd.Out = os.Stdout
	}

	i, err := SetupLoggingFromFlags(cmd.LogFlags, cmd.LogOutput)
	if err != nil {
		return err
	}
	_ = cmd.SetLogging(i)

	undo, err := maxprocs.Set(maxprocs.Logger(func(f string, s ...interface{}) {
		cmd.Log().Debug().Msgf(f, s...)
	}))
	if err == nil {
		cmd.exithooks = append(cmd.exithooks, func() error {
			undo()

			return nil
		})
	}

	cmd.Log().Debug().Interface("flags", flags).Msg("flags parsed")

	return nil
}

func (cmd *BaseCommand) Done() {
	for i := range cmd.exithooks {
		if err := cmd.exithooks[i](); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		}
	}

	cmd.Log().Debug().Msg("done")
}

func (cmd *BaseCommand) print(b []byte) error {
	if _, err := cmd.Out.Write(b); err != nil {
		return err
	}

	_, err := fmt.Fprintln(cmd.Out)

	return err
}

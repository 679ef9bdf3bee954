package cmds

// DAOInspectCommand is the command line model of dao-inspect.
type DAOInspectCommand struct {
	Version       struct{}             `cmd:"" help:"print version"`
	Check         CheckCommand         `cmd:"" help:"start dao of config offline and print the summary"`
	Schedule      ScheduleCommand      `cmd:"" help:"print the cycles of config"`
	Dump          DumpCommand          `cmd:"" help:"print the persisted governance states"`
	DefaultConfig DefaultConfigCommand `cmd:"" name:"default-config" help:"print default yaml config"`
}

func NewDAOInspectCommand() DAOInspectCommand {
	return DAOInspectCommand{
		Check:         NewCheckCommand(),
		Schedule:      NewScheduleCommand(),
		Dump:          NewDumpCommand(),
		DefaultConfig: NewDefaultConfigCommand(),
	}
}

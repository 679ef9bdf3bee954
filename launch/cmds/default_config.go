package cmds

import (
	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/launch/config"
	"gopkg.in/yaml.v3"
)

type DefaultConfigCommand struct {
	*BaseCommand
}

func NewDefaultConfigCommand() DefaultConfigCommand {
	return DefaultConfigCommand{
		BaseCommand: NewBaseCommand("default_config"),
	}
}

func (cmd *DefaultConfigCommand) Run() error {
	if err := cmd.Initialize(cmd); err != nil {
		return errors.Wrap(err, "failed to initialize command")
	}

	defer cmd.Done()

	conf, err := config.DefaultDAO()
	if err != nil {
		return err
	}

	b, err := yaml.Marshal(conf)
	if err != nil {
		return errors.Wrap(err, "failed to marshal default config")
	}

	_, err = cmd.Out.Write(b)

	return err
}

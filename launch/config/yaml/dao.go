package yamlconfig

import (
	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/launch/config"
	"gopkg.in/yaml.v3"
)

type Genesis struct {
	Height      *string `yaml:",omitempty"`
	TxID        *string `yaml:"tx-id,omitempty"`
	TotalSupply *string `yaml:"total-supply,omitempty"`
}

func (no Genesis) Set(conf *config.Genesis) error {
	if no.Height != nil {
		if err := conf.SetHeight(*no.Height); err != nil {
			return err
		}
	}

	if no.TxID != nil {
		if err := conf.SetTxID(*no.TxID); err != nil {
			return err
		}
	}

	if no.TotalSupply != nil {
		if err := conf.SetTotalSupply(*no.TotalSupply); err != nil {
			return err
		}
	}

	return nil
}

type Storage struct {
	URI        *string `yaml:",omitempty"`
	HashCache  *string `yaml:"hash-cache,omitempty"`
	MaxBackups *int    `yaml:"max-backups,omitempty"`
}

func (no Storage) Set(conf *config.Storage) error {
	if no.URI != nil {
		if err := conf.SetURI(*no.URI); err != nil {
			return err
		}
	}

	if no.HashCache != nil {
		if err := conf.SetHashCache(*no.HashCache); err != nil {
			return err
		}
	}

	if no.MaxBackups != nil {
		if err := conf.SetMaxBackups(*no.MaxBackups); err != nil {
			return err
		}
	}

	return nil
}

type DAO struct {
	DevMode        *bool             `yaml:"dev-mode,omitempty"`
	Privatekey     *string           `yaml:",omitempty"`
	Genesis        *Genesis          `yaml:",omitempty"`
	Storage        *Storage          `yaml:",omitempty"`
	PhaseDurations map[string]uint64 `yaml:"phase-durations,omitempty"`
}

func (no DAO) Set(conf *config.DAO) error {
	if no.DevMode != nil {
		if err := conf.SetDevMode(*no.DevMode); err != nil {
			return err
		}
	}

	if no.Privatekey != nil {
		if err := conf.SetPrivatekey(*no.Privatekey); err != nil {
			return errors.Wrap(err, "invalid privatekey")
		}
	}

	if no.Genesis != nil {
		if err := no.Genesis.Set(conf.Genesis()); err != nil {
			return errors.Wrap(err, "invalid genesis")
		}
	}

	if no.Storage != nil {
		if err := no.Storage.Set(conf.Storage()); err != nil {
			return errors.Wrap(err, "invalid storage")
		}
	}

	for k, d := range no.PhaseDurations {
		if err := conf.SetPhaseDuration(k, d); err != nil {
			return err
		}
	}

	return nil
}

// Load parses the yaml source and checks it.
func Load(source []byte) (*config.DAO, error) {
	var yconf DAO
	if err := yaml.Unmarshal(source, &yconf); err != nil {
		return nil, errors.Wrap(err, "failed to parse yaml config")
	}

	var m map[string]interface{}
	if err := yaml.Unmarshal(source, &m); err != nil {
		return nil, errors.Wrap(err, "failed to parse yaml config")
	}

	conf := config.NewDAO(m)
	if err := yconf.Set(conf); err != nil {
		return nil, err
	}

	if err := config.NewChecker(conf).Check(); err != nil {
		return nil, err
	}

	return conf, nil
}

package config

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/util/logging"
)

type checker struct {
	*logging.Logging
	config *DAO
}

// NewChecker checks the loaded config and fills the missing ones with the
// defaults.
func NewChecker(conf *DAO) *checker { // revive:disable-line:unexported-return
	return &checker{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "config-checker")
		}),
		config: conf,
	}
}

func (cc *checker) Check() error {
	for _, f := range []func() (bool, error){
		cc.CheckGenesis,
		cc.CheckStorage,
		cc.CheckPhaseDurations,
	} {
		if keep, err := f(); err != nil {
			return err
		} else if !keep {
			break
		}
	}

	return nil
}

func (cc *checker) CheckGenesis() (bool, error) {
	conf := cc.config.Genesis()

	if len(conf.TxID()) < 1 {
		return false, errors.Errorf("genesis tx id is missing")
	}

	if conf.TotalSupply() < 1 {
		return false, errors.Errorf("genesis total supply is missing")
	}

	return true, nil
}

func (cc *checker) CheckStorage() (bool, error) {
	conf := cc.config.Storage()

	if len(conf.URI()) < 1 {
		if err := conf.SetURI(DefaultStorageURI); err != nil {
			return false, err
		}
	}

	if len(conf.HashCache()) < 1 {
		if err := conf.SetHashCache(DefaultHashCache); err != nil {
			return false, err
		}
	}

	if conf.MaxBackups() < 1 {
		if err := conf.SetMaxBackups(DefaultMaxBackups); err != nil {
			return false, err
		}
	}

	return true, nil
}

func (cc *checker) CheckPhaseDurations() (bool, error) {
	pds := cc.config.PhaseDurations()
	if _, err := base.NewCycle(cc.config.Genesis().Height(), pds); err != nil {
		return false, errors.Wrap(err, "invalid phase durations")
	}

	cc.Log().Debug().Interface("phase_durations", pds).Msg("phase durations checked")

	return true, nil
}

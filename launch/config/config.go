package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/base/key"
	"github.com/spikeekips/mitum-dao/dao"
)

type DAO struct {
	source         map[string]interface{}
	devMode        bool
	privatekey     *key.BTCPrivatekey
	genesis        *Genesis
	storage        *Storage
	phaseDurations map[base.Phase]uint64
}

func NewDAO(source map[string]interface{}) *DAO {
	return &DAO{
		source:         source,
		genesis:        &Genesis{},
		storage:        &Storage{},
		phaseDurations: map[base.Phase]uint64{},
	}
}

func (no DAO) Source() map[string]interface{} {
	return no.source
}

func (no DAO) DevMode() bool {
	return no.devMode
}

func (no *DAO) SetDevMode(b bool) error {
	no.devMode = b

	return nil
}

func (no DAO) Privatekey() *key.BTCPrivatekey {
	return no.privatekey
}

func (no *DAO) SetPrivatekey(s string) error {
	priv, err := key.NewBTCPrivatekeyFromString(strings.TrimSpace(s))
	if err != nil {
		return err
	}

	no.privatekey = &priv

	return nil
}

func (no DAO) Genesis() *Genesis {
	return no.genesis
}

func (no DAO) Storage() *Storage {
	return no.storage
}

// PhaseDurations returns the durations of the first cycle; the phase, which
// is not set, has the param default.
func (no DAO) PhaseDurations() []base.PhaseDuration {
	pds := make([]base.PhaseDuration, len(base.OrderedPhases))
	for i := range base.OrderedPhases {
		ph := base.OrderedPhases[i]

		d, found := no.phaseDurations[ph]
		if !found {
			d = uint64(ph.Param().Default())
		}

		pds[i] = base.NewPhaseDuration(ph, d)
	}

	return pds
}

func (no *DAO) SetPhaseDuration(s string, d uint64) error {
	ph, err := base.PhaseFromString(strings.TrimSpace(s))
	if err != nil {
		return err
	}

	if ph == base.PhaseUndefined {
		return errors.Errorf("undefined phase can not have duration")
	}

	no.phaseDurations[ph] = d

	return nil
}

// DAOConfig returns the config of dao node; the signer comes from the
// privatekey.
func (no DAO) DAOConfig() (dao.Config, error) {
	if no.privatekey == nil {
		return dao.Config{}, errors.Errorf("empty privatekey")
	}

	return dao.Config{
		DevMode:    no.devMode,
		HashCache:  no.storage.HashCache(),
		MaxBackups: no.storage.MaxBackups(),
		Signer:     no.privatekey.Publickey(),
	}, nil
}

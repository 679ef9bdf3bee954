package config

import (
	"github.com/spikeekips/mitum-dao/base"
)

type GenesisPackerYAML struct {
	Height      int64  `yaml:"height"`
	TxID        string `yaml:"tx-id"`
	TotalSupply int64  `yaml:"total-supply"`
}

type StoragePackerYAML struct {
	URI        string `yaml:"uri,omitempty"`
	HashCache  string `yaml:"hash-cache,omitempty"`
	MaxBackups int    `yaml:"max-backups"`
}

type DAOPackerYAML struct {
	DevMode        bool              `yaml:"dev-mode"`
	Privatekey     string            `yaml:"privatekey,omitempty"`
	Genesis        GenesisPackerYAML `yaml:"genesis"`
	Storage        StoragePackerYAML `yaml:"storage"`
	PhaseDurations map[string]uint64 `yaml:"phase-durations"`
}

func (no DAO) MarshalYAML() (interface{}, error) {
	pds := map[string]uint64{}
	for _, pd := range no.PhaseDurations() {
		pds[pd.Phase.String()] = pd.Duration
	}

	var priv string
	if no.privatekey != nil {
		priv = no.privatekey.String()
	}

	st := StoragePackerYAML{
		URI:        no.storage.URI(),
		HashCache:  no.storage.HashCache(),
		MaxBackups: no.storage.MaxBackups(),
	}

	return DAOPackerYAML{
		DevMode:    no.devMode,
		Privatekey: priv,
		Genesis: GenesisPackerYAML{
			Height:      no.genesis.Height().Int64(),
			TxID:        no.genesis.TxID(),
			TotalSupply: no.genesis.TotalSupply(),
		},
		Storage:        st,
		PhaseDurations: pds,
	}, nil
}

// DefaultDAO is the config example with the default values.
func DefaultDAO() (*DAO, error) {
	conf := NewDAO(nil)

	if err := conf.Genesis().SetHeight(base.Height(0).String()); err != nil {
		return nil, err
	}

	if err := conf.Genesis().SetTxID("<genesis tx id>"); err != nil {
		return nil, err
	}

	if err := conf.Genesis().SetTotalSupply("250000000"); err != nil {
		return nil, err
	}

	if err := NewChecker(conf).Check(); err != nil {
		return nil, err
	}

	return conf, nil
}

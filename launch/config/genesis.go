package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/ledger"
)

// Genesis is the network parameter; all the nodes of same network should have
// same genesis.
type Genesis struct {
	height      base.Height
	txID        string
	totalSupply int64
}

func (no Genesis) Height() base.Height {
	return no.height
}

func (no *Genesis) SetHeight(s string) error {
	h, err := base.NewHeightFromString(strings.TrimSpace(s))
	if err != nil {
		return err
	}

	if err := h.IsValid(nil); err != nil {
		return err
	}

	no.height = h

	return nil
}

func (no Genesis) TxID() string {
	return no.txID
}

func (no *Genesis) SetTxID(s string) error {
	s = strings.TrimSpace(s)
	if len(s) < 1 {
		return errors.Errorf("empty genesis tx id")
	}

	no.txID = s

	return nil
}

func (no Genesis) TotalSupply() int64 {
	return no.totalSupply
}

func (no *Genesis) SetTotalSupply(s string) error {
	i, err := parseInt64(s)
	if err != nil {
		return err
	}

	if i < 1 {
		return errors.Errorf("total supply should be over 0, %d", i)
	}

	no.totalSupply = i

	return nil
}

func (no Genesis) Params() ledger.GenesisParams {
	return ledger.GenesisParams{
		Height:      no.height,
		TxID:        no.txID,
		TotalSupply: no.totalSupply,
	}
}

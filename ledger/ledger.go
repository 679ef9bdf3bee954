package ledger

import (
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/util"
)

var (
	CycleError  = util.NewError("wrong cycle")
	HeightError = util.NewError("wrong height")
)

// Reader is the read-only view of the confirmed chain.
type Reader interface {
	ChainHeight() base.Height
	// Tx returns only confirmed tx.
	Tx(string) (base.Tx, bool)
	// Cycles returns the ordered cycles; the returned slice must not be
	// modified.
	Cycles() []base.Cycle
	GenesisHeight() base.Height
	GenesisTxID() string
	GenesisTotalSupply() int64
}

type Writer interface {
	RecordTx(*base.MutableTx)
	AddCycle(base.Cycle) error
	SetChainHeight(base.Height) error
}

type ReadWriter interface {
	Reader
	Writer
}

// HeightListener is called after the chain height is changed.
type HeightListener func(base.Height)

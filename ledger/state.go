package ledger

import (
	"sync"

	"github.com/spikeekips/mitum-dao/base"
)

// GenesisParams is the fixed network parameter of genesis tx.
type GenesisParams struct {
	Height      base.Height
	TxID        string
	TotalSupply int64
}

// State is the in memory ReadWriter.
type State struct {
	sync.RWMutex
	genesis   GenesisParams
	height    base.Height
	txs       map[string]base.Tx
	cycles    []base.Cycle
	listeners []HeightListener
}

func NewState(genesis GenesisParams) *State {
	return &State{
		genesis: genesis,
		height:  base.NilHeight,
		txs:     map[string]base.Tx{},
	}
}

func (st *State) ChainHeight() base.Height {
	st.RLock()
	defer st.RUnlock()

	return st.height
}

func (st *State) Tx(id string) (base.Tx, bool) {
	st.RLock()
	defer st.RUnlock()

	tx, found := st.txs[id]

	return tx, found
}

func (st *State) Txs() []base.Tx {
	st.RLock()
	defer st.RUnlock()

	txs := make([]base.Tx, 0, len(st.txs))
	for id := range st.txs {
		txs = append(txs, st.txs[id])
	}

	return txs
}

// Cycles returns the snapshot; cycles are only appended, so the returned
// slice is not changed by the later AddCycle.
func (st *State) Cycles() []base.Cycle {
	st.RLock()
	defer st.RUnlock()

	return st.cycles[:len(st.cycles):len(st.cycles)]
}

func (st *State) GenesisHeight() base.Height {
	return st.genesis.Height
}

func (st *State) GenesisTxID() string {
	return st.genesis.TxID
}

func (st *State) GenesisTotalSupply() int64 {
	return st.genesis.TotalSupply
}

func (st *State) RecordTx(mt *base.MutableTx) {
	st.Lock()
	defer st.Unlock()

	st.txs[mt.ID()] = mt.Tx()
}

// AddCycle appends new cycle. The new cycle must start right after the last
// block of the last cycle.
func (st *State) AddCycle(cy base.Cycle) error {
	if err := cy.IsValid(nil); err != nil {
		return CycleError.Wrap(err)
	}

	st.Lock()
	defer st.Unlock()

	if len(st.cycles) > 0 {
		last := st.cycles[len(st.cycles)-1]
		if cy.FirstBlock() != last.LastBlock()+1 {
			return CycleError.Errorf(
				"new cycle should start at %d, not %d", last.LastBlock()+1, cy.FirstBlock())
		}
	}

	st.cycles = append(st.cycles, cy)

	return nil
}

// SetChainHeight does not allow lower height.
func (st *State) SetChainHeight(height base.Height) error {
	if err := height.IsValid(nil); err != nil {
		return HeightError.Wrap(err)
	}

	listeners, err := func() ([]HeightListener, error) {
		st.Lock()
		defer st.Unlock()

		if height < st.height {
			return nil, HeightError.Errorf("lower height, %d; current=%d", height, st.height)
		}

		st.height = height

		return st.listeners, nil
	}()
	if err != nil {
		return err
	}

	for i := range listeners {
		listeners[i](height)
	}

	return nil
}

// AddHeightListener registers the listener, which is called synchronously
// after the chain height is set.
func (st *State) AddHeightListener(l HeightListener) {
	st.Lock()
	defer st.Unlock()

	st.listeners = append(st.listeners, l)
}

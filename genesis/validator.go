package genesis

import (
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/ledger"
	"github.com/spikeekips/mitum-dao/util/logging"
)

// Validator recognizes the genesis tx and distributes the genesis supply to
// its outputs. The genesis tx is recognized at most once.
type Validator struct {
	*logging.Logging
	sync.RWMutex
	ledger      ledger.ReadWriter
	fired       int32
	allocations map[int]int64
}

func NewValidator(lr ledger.ReadWriter) *Validator {
	return &Validator{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "genesis-validator")
		}),
		ledger: lr,
	}
}

// Validate returns true only when tx is the genesis tx, which is found at the
// configured height and id. The recorded tx has GENESIS type and the typed
// outputs.
func (gv *Validator) Validate(tx base.Tx, blockHeight base.Height) bool {
	if blockHeight != gv.ledger.GenesisHeight() || tx.ID() != gv.ledger.GenesisTxID() {
		return false
	}

	if !atomic.CompareAndSwapInt32(&gv.fired, 0, 1) {
		gv.Log().Error().Str("tx_id", tx.ID()).Msg("genesis tx already recognized; ignored")

		return false
	}

	mt := base.NewMutableTx(tx)
	mt.SetType(base.TxTypeGenesis)

	allocations := gv.validateOutputs(mt)

	gv.ledger.RecordTx(mt)

	gv.Lock()
	gv.allocations = allocations
	gv.Unlock()

	gv.Log().Info().Str("tx_id", tx.ID()).Int64("height", blockHeight.Int64()).
		Int("outputs", len(allocations)).Msg("genesis tx recognized")

	return true
}

// validateOutputs walks the outputs in order. Each output consumes the
// remaining supply; once an output exceeds it, that and the following outputs
// are not genesis outputs.
func (gv *Validator) validateOutputs(mt *base.MutableTx) map[int]int64 {
	remaining := gv.ledger.GenesisTotalSupply()
	allocations := map[int]int64{}

	var exceeded bool

	outputs := mt.Outputs()
	for i := range outputs {
		value := outputs[i].Value

		if !exceeded && value >= 0 && value <= remaining {
			remaining -= value
			allocations[i] = value
			_ = mt.SetOutputType(i, base.TxOutputTypeGenesis)

			continue
		}

		exceeded = true
		_ = mt.SetOutputType(i, base.TxOutputTypeBTC)

		gv.Log().Warn().Int("index", i).Int64("value", value).Int64("remaining", remaining).
			Msg("genesis output exceeds remaining supply; set as btc output")
	}

	return allocations
}

func (gv *Validator) IsFired() bool {
	return atomic.LoadInt32(&gv.fired) == 1
}

// Allocations returns the genesis amount by output index.
func (gv *Validator) Allocations() map[int]int64 {
	gv.RLock()
	defer gv.RUnlock()

	m := make(map[int]int64, len(gv.allocations))
	for k := range gv.allocations {
		m[k] = gv.allocations[k]
	}

	return m
}

package param

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/base"
	leveldbstorage "github.com/spikeekips/mitum-dao/storage/leveldb"
	"github.com/spikeekips/mitum-dao/util"
	"github.com/spikeekips/mitum-dao/util/isvalid"
	"github.com/stretchr/testify/suite"
)

type testService struct {
	suite.Suite
	db *leveldbstorage.Database
	sv *Service
}

func (t *testService) SetupTest() {
	t.db = leveldbstorage.NewMemDatabase()
	t.sv = NewService(t.db, 3, util.NewDevEnv(true))
	t.NoError(t.sv.Start())
}

func (t *testService) TearDownTest() {
	_ = t.sv.Stop()
	_ = t.db.Close()
}

func (t *testService) TestValueByHeight() {
	t.NoError(t.sv.AddEvent(base.NewParamChangeEvent(base.ParamProposalFee, 10, base.Height(100))))
	t.NoError(t.sv.AddEvent(base.NewParamChangeEvent(base.ParamProposalFee, 20, base.Height(200))))

	t.Equal(base.ParamProposalFee.Default(), t.sv.ProposalFee(99))
	t.Equal(int64(10), t.sv.ProposalFee(100))
	t.Equal(int64(10), t.sv.ProposalFee(199))
	t.Equal(int64(20), t.sv.ProposalFee(200))
	t.Equal(base.ParamBlindVoteFee.Default(), t.sv.BlindVoteFee(200))

	m := t.sv.Map()
	t.Equal(int64(20), m.Value(base.ParamProposalFee))

	// no more events, no change
	t.Equal(m.Map(), t.sv.Map().Map())
}

func (t *testService) TestInvalidEvent() {
	err := t.sv.AddEvent(base.NewParamChangeEvent(base.ParamUndefined, 10, base.Height(100)))
	t.True(errors.Is(err, isvalid.InvalidError))

	err = t.sv.AddEvent(base.NewParamChangeEvent(base.ParamProposalFee, -1, base.Height(100)))
	t.True(errors.Is(err, isvalid.InvalidError))

	t.Empty(t.sv.Events())
}

func (t *testService) TestPhaseDuration() {
	t.Equal(uint64(base.ParamPhaseProposal.Default()), t.sv.PhaseDuration(base.PhaseProposal, 0))

	t.NoError(t.sv.AddEvent(base.NewParamChangeEvent(base.ParamPhaseProposal, 7, base.Height(10))))
	t.Equal(uint64(7), t.sv.PhaseDuration(base.PhaseProposal, 10))
	t.Equal(uint64(0), t.sv.PhaseDuration(base.PhaseUndefined, 10))
}

func (t *testService) TestPersisted() {
	t.NoError(t.sv.AddEvent(base.NewParamChangeEvent(base.ParamProposalFee, 10, base.Height(100))))
	t.NoError(t.sv.AddEvent(base.NewParamChangeEvent(base.ParamBlindVoteFee, 30, base.Height(100))))
	t.NoError(t.sv.queue.Flush())

	nsv := NewService(t.db, 3, util.NewDevEnv(true))
	t.NoError(nsv.Load())

	t.Equal(t.sv.Events(), nsv.Events())
	t.Equal(int64(30), nsv.BlindVoteFee(100))
}

func (t *testService) TestRemoveChangeParam() {
	pl := base.NewChangeParamPayload(base.NewChangeParam(base.ParamProposalFee, 3))
	t.NoError(t.sv.OnAdded(pl))

	err := t.sv.OnRemoved(pl)
	t.True(errors.Is(err, util.ProtocolViolationError))

	t.NoError(t.sv.OnRemoved(base.NewProposalPayload(base.Proposal{})))
}

func (t *testService) TestRemoveChangeParamNotDevMode() {
	sv := NewService(t.db, 3, util.NewDevEnv(false))
	t.NoError(sv.AddEvent(base.NewParamChangeEvent(base.ParamProposalFee, 10, base.Height(100))))

	pl := base.NewChangeParamPayload(base.NewChangeParam(base.ParamProposalFee, 3))
	t.NoError(sv.OnAdded(pl))
	t.NoError(sv.OnRemoved(pl))

	t.Equal(1, len(sv.Events()))
	t.Equal(int64(10), sv.ProposalFee(100))
}

func TestService(t *testing.T) {
	suite.Run(t, new(testService))
}

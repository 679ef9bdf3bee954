package period

import (
	"testing"

	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/ledger"
	"github.com/stretchr/testify/suite"
)

type testService struct {
	suite.Suite
	st *ledger.State
	sv *Service
}

func (t *testService) SetupTest() {
	t.st = ledger.NewState(ledger.GenesisParams{Height: base.Height(100)})

	// PROPOSAL [100,109], BREAK1 [110,110]; the next cycle starts at 111
	t.NoError(t.st.AddCycle(base.MustNewCycle(base.Height(100), base.NewTestPhaseDurations(10, 1, 0, 0, 0, 0))))
	t.NoError(t.st.AddCycle(base.MustNewCycle(base.Height(111), base.NewTestPhaseDurations(10, 1, 5, 1, 5, 1))))
	t.NoError(t.st.AddCycle(base.MustNewCycle(base.Height(134), base.NewTestPhaseDurations(3, 1, 3, 1, 3, 1))))

	t.sv = NewService(t.st)
}

func (t *testService) recordTx(id string, height base.Height) {
	t.st.RecordTx(base.NewMutableTx(base.NewTestTx(id, height, base.TxTypeProposal, nil)))
}

func (t *testService) TestCycle() {
	cases := []struct {
		height base.Height
		first  base.Height
		found  bool
	}{
		{height: 99, found: false},
		{height: 100, first: 100, found: true},
		{height: 110, first: 100, found: true},
		{height: 111, first: 111, found: true},
		{height: 133, first: 111, found: true},
		{height: 134, first: 134, found: true},
		{height: 145, first: 134, found: true},
		{height: 146, found: false},
	}

	for i, c := range cases {
		cy, found := t.sv.Cycle(c.height)
		t.Equal(c.found, found, "%d: height=%d", i, c.height)

		if c.found {
			t.Equal(c.first, cy.FirstBlock(), "%d: height=%d", i, c.height)
		}
	}
}

func (t *testService) TestUnknownHeight() {
	t.Equal(base.PhaseUndefined, t.sv.PhaseForHeight(99))
	t.Equal(base.PhaseUndefined, t.sv.PhaseForHeight(1000))
	t.Equal(uint64(0), t.sv.DurationOfPhase(1000, base.PhaseProposal))
	t.Equal(base.Height(0), t.sv.FirstBlockOfPhase(1000, base.PhaseProposal))
	t.Equal(base.Height(0), t.sv.LastBlockOfPhase(1000, base.PhaseProposal))
	t.False(t.sv.IsFirstBlockInCycle(1000))
	t.False(t.sv.IsLastBlockInCycle(1000))

	t.Equal(base.PhaseUndefined, t.sv.CurrentPhase())
	_, found := t.sv.CurrentCycle()
	t.False(found)
}

func (t *testService) TestPhaseQueries() {
	t.Equal(base.PhaseProposal, t.sv.PhaseForHeight(105))
	t.Equal(base.PhaseBreak1, t.sv.PhaseForHeight(110))
	t.Equal(base.PhaseProposal, t.sv.PhaseForHeight(111))
	t.Equal(base.PhaseBlindVote, t.sv.PhaseForHeight(122))

	t.Equal(uint64(5), t.sv.DurationOfPhase(122, base.PhaseBlindVote))
	t.Equal(base.Height(122), t.sv.FirstBlockOfPhase(130, base.PhaseBlindVote))
	t.Equal(base.Height(126), t.sv.LastBlockOfPhase(111, base.PhaseBlindVote))

	t.True(t.sv.IsFirstBlockInCycle(111))
	t.False(t.sv.IsFirstBlockInCycle(112))
	t.True(t.sv.IsLastBlockInCycle(110))
	t.True(t.sv.IsLastBlockInCycle(133))
}

func (t *testService) TestIsInPhaseButNotLastBlock() {
	t.NoError(t.st.SetChainHeight(108))
	t.True(t.sv.IsInPhaseButNotLastBlock(base.PhaseProposal))

	t.NoError(t.st.SetChainHeight(109))
	t.False(t.sv.IsInPhaseButNotLastBlock(base.PhaseProposal))

	t.NoError(t.st.SetChainHeight(110))
	t.False(t.sv.IsInPhaseButNotLastBlock(base.PhaseProposal))
}

func (t *testService) TestIsTxInCorrectCycle() {
	heights := []base.Height{99, 100, 105, 110, 111, 120, 133, 134, 145, 146}

	for _, h := range heights {
		for _, c := range heights {
			cy, found := t.sv.Cycle(h)
			expected := found && cy.Contains(c)

			t.Equal(expected, t.sv.IsTxInCorrectCycle(h, c), "tx height=%d chain height=%d", h, c)
		}
	}
}

func (t *testService) TestIsTxInPhaseAndCycle() {
	t.recordTx("tx0", 105)

	t.NoError(t.st.SetChainHeight(108))
	t.True(t.sv.IsTxInPhaseAndCycle("tx0", base.PhaseProposal))
	t.True(t.sv.IsTxInCurrentCycle("tx0"))
	t.False(t.sv.IsTxInPastCycle("tx0", 108))

	t.NoError(t.st.SetChainHeight(111))
	t.False(t.sv.IsTxInPhaseAndCycle("tx0", base.PhaseProposal))
	t.False(t.sv.IsTxInCurrentCycle("tx0"))
	t.True(t.sv.IsTxInPastCycle("tx0", 111))

	t.True(t.sv.IsTxInPhase("tx0", base.PhaseProposal))
	t.False(t.sv.IsTxInPhase("tx0", base.PhaseBreak1))

	t.False(t.sv.IsTxInPhaseAndCycle("unknown", base.PhaseProposal))
	t.False(t.sv.IsTxInPhase("unknown", base.PhaseProposal))
	t.False(t.sv.IsTxIDInCorrectCycle("unknown", 105))
}

func TestService(t *testing.T) {
	suite.Run(t, new(testService))
}

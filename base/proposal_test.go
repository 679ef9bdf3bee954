package base

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/base/key"
	"github.com/spikeekips/mitum-dao/util"
	"github.com/spikeekips/mitum-dao/util/isvalid"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
)

type testProposal struct {
	suite.Suite
	signer key.BTCPublickey
}

func (t *testProposal) SetupSuite() {
	t.signer = key.MustNewBTCPrivatekey().Publickey()
}

func (t *testProposal) compare(a, b Proposal) {
	t.Equal(a.UID(), b.UID())
	t.Equal(a.Type(), b.Type())
	t.Equal(a.Fields(), b.Fields())
	t.True(a.Signer().Equal(b.Signer()))
	t.True(a.CreatedAt().Equal(b.CreatedAt()))
	t.Equal(a.TxID(), b.TxID())
	t.Equal(a.RequestedAmount(), b.RequestedAmount())
	t.Equal(a.BSQAddress(), b.BSQAddress())
	t.Equal(a.ChangeParam(), b.ChangeParam())
}

func (t *testProposal) TestNew() {
	pr := NewTestProposal(t.signer, "tx0")
	t.NoError(pr.IsValid(nil))
	t.Equal(ProposalTypeGeneric, pr.Type())
	t.Equal("tx0", pr.TxID())
}

func (t *testProposal) TestInvalid() {
	pr := NewGenericProposal("", ProposalFields{}, t.signer, time.Now())
	t.True(errors.Is(pr.IsValid(nil), isvalid.InvalidError))

	pr = NewGenericProposal("uid", ProposalFields{}, key.BTCPublickey{}, time.Now())
	t.True(errors.Is(pr.IsValid(nil), isvalid.InvalidError))

	pr = NewChangeParamProposal("uid", ProposalFields{}, t.signer, time.Now(), ParamUndefined, 3)
	t.True(errors.Is(pr.IsValid(nil), isvalid.InvalidError))

	pr = NewCompensationRequestProposal("uid", ProposalFields{}, t.signer, time.Now(), -1, "address")
	t.True(errors.Is(pr.IsValid(nil), isvalid.InvalidError))
}

func (t *testProposal) TestEqualByUID() {
	pr := NewTestProposal(t.signer, "tx0")
	t.True(pr.Equal(pr.CloneWithTxID("tx1")))
	t.False(pr.Equal(NewTestProposal(t.signer, "tx0")))
}

func (t *testProposal) TestCloneWithTxID() {
	pr := NewTestProposal(t.signer, "")
	npr := pr.CloneWithTxID("tx0")

	t.Empty(pr.TxID())
	t.Equal("tx0", npr.TxID())
}

func (t *testProposal) TestPayloadHashWithoutTxID() {
	pr := NewTestProposal(t.signer, "")

	a, err := pr.PayloadHash()
	t.NoError(err)

	b, err := pr.CloneWithTxID("tx0").PayloadHash()
	t.NoError(err)
	t.True(a.Equal(b))

	od, err := pr.OpReturnData()
	t.NoError(err)
	t.Equal(OpReturnTypeProposal, od.Type)
	t.True(a.Equal(od.Hash))
}

func (t *testProposal) TestRLP() {
	prs := []Proposal{
		NewTestProposal(t.signer, "tx0"),
		NewCompensationRequestProposal(
			"uid1", ProposalFields{Name: "n", Title: "t", Link: "l"}, t.signer, time.Now(), 33, "bsq-address"),
		NewChangeParamProposal(
			"uid2", ProposalFields{Name: "n", Title: "t", Link: "l"}, t.signer, time.Now(), ParamProposalFee, 44),
	}

	for i := range prs {
		pr := prs[i]

		b, err := pr.Bytes()
		t.NoError(err)

		upr, err := NewProposalFromBytes(b)
		t.NoError(err)
		t.compare(pr, upr)

		ub, err := upr.Bytes()
		t.NoError(err)
		t.Equal(b, ub)
	}
}

func (t *testProposal) TestJSON() {
	pr := NewChangeParamProposal(
		"uid2", ProposalFields{Name: "n", Title: "t", Link: "l"}, t.signer, time.Now(), ParamProposalFee, 44)

	b, err := util.JSONMarshal(pr)
	t.NoError(err)

	var upr Proposal
	t.NoError(util.JSONUnmarshal(b, &upr))
	t.compare(pr, upr)
}

func (t *testProposal) TestBSON() {
	pr := NewCompensationRequestProposal(
		"uid1", ProposalFields{Name: "n", Title: "t", Link: "l"}, t.signer, time.Now(), 33, "bsq-address")

	b, err := bson.Marshal(pr)
	t.NoError(err)

	var upr Proposal
	t.NoError(bson.Unmarshal(b, &upr))
	t.compare(pr, upr)
}

func (t *testProposal) TestSortProposals() {
	a := NewTestProposal(t.signer, "tx-b")
	b := NewTestProposal(t.signer, "tx-a")
	c := NewGenericProposal("uid-1", ProposalFields{}, t.signer, time.Now()).CloneWithTxID("tx-c")
	d := NewGenericProposal("uid-0", ProposalFields{}, t.signer, time.Now()).CloneWithTxID("tx-c")

	l := ProposalList{a, c, b, d}
	sorted := SortProposals(l)

	t.Equal([]string{b.UID(), a.UID(), "uid-0", "uid-1"}, sorted.UIDs())
	t.Equal([]string{a.UID(), "uid-1", b.UID(), "uid-0"}, l.UIDs())

	t.Equal(sorted.UIDs(), SortProposals(ProposalList{d, b, c, a}).UIDs())
}

func (t *testProposal) TestProposalListBytes() {
	l := SortProposals(ProposalList{
		NewTestProposal(t.signer, "tx1"),
		NewTestProposal(t.signer, "tx0"),
	})

	b, err := l.Bytes()
	t.NoError(err)

	ul, err := NewProposalListFromBytes(b)
	t.NoError(err)
	t.Equal(l.UIDs(), ul.UIDs())

	for i := range l {
		t.compare(l[i], ul[i])
	}

	_, err = NewProposalListFromBytes([]byte("showme"))
	t.Error(err)
}

func TestProposal(t *testing.T) {
	suite.Run(t, new(testProposal))
}

package key

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/util"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
)

type testBTCKey struct {
	suite.Suite
}

func (t *testBTCKey) TestNew() {
	priv, err := NewBTCPrivatekey()
	t.NoError(err)
	t.NoError(priv.IsValid(nil))

	pub := priv.Publickey()
	t.NoError(pub.IsValid(nil))
	t.Len(pub.Bytes(), 33)
}

func (t *testBTCKey) TestFromString() {
	priv := MustNewBTCPrivatekey()

	upriv, err := NewBTCPrivatekeyFromString(priv.String())
	t.NoError(err)
	t.True(priv.Publickey().Equal(upriv.Publickey()))

	upub, err := NewBTCPublickeyFromString(priv.Publickey().String())
	t.NoError(err)
	t.True(priv.Publickey().Equal(upub))
}

func (t *testBTCKey) TestEmpty() {
	var pub BTCPublickey
	t.True(pub.IsEmpty())
	t.True(errors.Is(pub.IsValid(nil), InvalidKeyError))
	t.Empty(pub.String())
}

func (t *testBTCKey) TestSignVerify() {
	priv := MustNewBTCPrivatekey()

	input := []byte("showme")
	sig, err := priv.Sign(input)
	t.NoError(err)

	t.NoError(priv.Publickey().Verify(input, sig))

	err = priv.Publickey().Verify([]byte("findme"), sig)
	t.True(errors.Is(err, SignatureVerificationFailedError))

	err = MustNewBTCPrivatekey().Publickey().Verify(input, sig)
	t.True(errors.Is(err, SignatureVerificationFailedError))
}

func (t *testBTCKey) TestEncode() {
	pub := MustNewBTCPrivatekey().Publickey()

	b, err := util.JSONMarshal(struct {
		K BTCPublickey `json:"k"`
	}{K: pub})
	t.NoError(err)

	var uj struct {
		K BTCPublickey `json:"k"`
	}
	t.NoError(util.JSONUnmarshal(b, &uj))
	t.True(pub.Equal(uj.K))

	b, err = bson.Marshal(bson.M{"k": pub})
	t.NoError(err)

	var ub struct {
		K BTCPublickey `bson:"k"`
	}
	t.NoError(bson.Unmarshal(b, &ub))
	t.True(pub.Equal(ub.K))
}

func TestBTCKey(t *testing.T) {
	suite.Run(t, new(testBTCKey))
}

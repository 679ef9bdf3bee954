package valuehash

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/spikeekips/mitum-dao/util"
	"github.com/spikeekips/mitum-dao/util/isvalid"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
)

type testL32 struct {
	suite.Suite
}

func (t *testL32) TestNew() {
	h := NewSHA256(nil)
	t.Implements((*Hash)(nil), h)

	b := []byte("showme")
	a := NewSHA256(b)

	t.NotEqual(h.Bytes(), a.Bytes())
	t.Equal(a.Bytes(), NewSHA256(b).Bytes())
	t.Equal(32, a.Size())
	t.NoError(a.IsValid(nil))
}

func (t *testL32) TestFromBytes() {
	b := bytes.Repeat([]byte("1"), 32)
	h, err := NewL32FromBytes(b)
	t.NoError(err)
	t.Equal(b, h.Bytes())

	_, err = NewL32FromBytes(bytes.Repeat([]byte("1"), 33))
	t.True(errors.Is(err, InvalidHashError))
}

func (t *testL32) TestEmpty() {
	h := L32{}
	t.True(h.IsEmpty())

	err := h.IsValid(nil)
	t.True(errors.Is(err, isvalid.InvalidError))
	t.True(errors.Is(err, EmptyHashError))
}

func (t *testL32) TestString() {
	h := NewSHA256([]byte("findme"))

	u, err := NewL32FromString(h.String())
	t.NoError(err)
	t.True(h.Equal(u))
}

func (t *testL32) TestJSON() {
	h := NewSHA256([]byte("findme"))

	b, err := util.JSONMarshal(h)
	t.NoError(err)

	var u L32
	t.NoError(util.JSONUnmarshal(b, &u))
	t.True(h.Equal(u))
}

func (t *testL32) TestBSON() {
	h := NewSHA256([]byte("findme"))

	b, err := bson.Marshal(bson.M{"h": h})
	t.NoError(err)

	var u struct {
		H L32 `bson:"h"`
	}
	t.NoError(bson.Unmarshal(b, &u))
	t.True(h.Equal(u.H))
}

func TestL32(t *testing.T) {
	suite.Run(t, new(testL32))
}

package key

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

func (bt BTCPublickey) MarshalText() ([]byte, error) {
	return []byte(bt.String()), nil
}

func (bt *BTCPublickey) UnmarshalText(b []byte) error {
	k, err := NewBTCPublickeyFromString(string(b))
	if err != nil {
		return err
	}

	*bt = k

	return nil
}

func (bt BTCPublickey) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bsontype.String, bsoncore.AppendString(nil, bt.String()), nil
}

func (bt *BTCPublickey) UnmarshalBSONValue(t bsontype.Type, b []byte) error {
	if t != bsontype.String {
		return errors.Errorf("invalid bson type for BTCPublickey, %v", t)
	}

	s, ok := (bson.RawValue{Type: t, Value: b}).StringValueOK()
	if !ok {
		return errors.Errorf("invalid encoded input for BTCPublickey")
	}

	return bt.UnmarshalText([]byte(s))
}

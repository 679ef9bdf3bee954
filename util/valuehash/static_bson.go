package valuehash

import (
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

func (h L32) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bsontype.String, bsoncore.AppendString(nil, h.String()), nil
}

func (h *L32) UnmarshalBSONValue(t bsontype.Type, b []byte) error {
	if t != bsontype.String {
		return errors.Errorf("invalid bson type for L32, %v", t)
	}

	s, ok := (bson.RawValue{Type: t, Value: b}).StringValueOK()
	if !ok {
		return errors.Errorf("invalid encoded input for L32")
	}

	return h.UnmarshalText([]byte(s))
}

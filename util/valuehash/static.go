package valuehash

import (
	"bytes"

	"github.com/btcsuite/btcutil/base58"
	"github.com/spikeekips/mitum-dao/util/isvalid"
)

type L32 [sha256Size]byte

var emptyL32 L32

func NewL32FromBytes(b []byte) (L32, error) {
	if len(b) != sha256Size {
		return L32{}, InvalidHashError.Errorf("invalid length for L32, %d", len(b))
	}

	var h L32
	copy(h[:], b)

	return h, nil
}

func NewL32FromString(s string) (L32, error) {
	return NewL32FromBytes(base58.Decode(s))
}

func (h L32) IsValid([]byte) error {
	if h.IsEmpty() {
		return isvalid.InvalidError.Wrap(EmptyHashError)
	}

	return nil
}

func (h L32) Bytes() []byte {
	return h[:]
}

func (h L32) String() string {
	return base58.Encode(h[:])
}

func (L32) Size() int {
	return sha256Size
}

func (h L32) Equal(b Hash) bool {
	if b == nil {
		return false
	}

	return bytes.Equal(h[:], b.Bytes())
}

func (h L32) IsEmpty() bool {
	return emptyL32 == h
}

package base

import (
	"fmt"
	"strconv"

	"github.com/spikeekips/mitum-dao/util"
	"github.com/spikeekips/mitum-dao/util/isvalid"
)

var NilHeight = Height(-1)

// Height stands for the height of bitcoin block.
type Height int64

func NewHeightFromString(s string) (Height, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return NilHeight, err
	}

	return Height(i), nil
}

func (ht Height) IsValid([]byte) error {
	if ht < 0 {
		return isvalid.InvalidError.Errorf("height must not be negative; height=%d", ht)
	}

	return nil
}

func (ht Height) Int64() int64 {
	return int64(ht)
}

func (ht Height) Bytes() []byte {
	return util.Int64ToBytes(int64(ht))
}

func (ht Height) String() string {
	return fmt.Sprintf("%d", ht)
}

func (ht Height) IsEmpty() bool {
	return ht == NilHeight
}

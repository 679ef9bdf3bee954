package isvalid

import "github.com/spikeekips/mitum-dao/util"

// InvalidError marks structural or rule validation failures. Items failing
// with it are rejected, never propagated as fatal.
var InvalidError = util.NewError("invalid")

type IsValider interface {
	IsValid([]byte) error
}

package key

import (
	"github.com/spikeekips/mitum-dao/util"
)

var (
	InvalidKeyError                  = util.NewError("invalid key")
	SignatureVerificationFailedError = util.NewError("signature verification failed")
)

type Signature []byte

package proposal

import "github.com/spikeekips/mitum-dao/util"

var RejectedError = util.NewError("proposal rejected")

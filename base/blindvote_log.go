package base

import "github.com/rs/zerolog"

func (bv BlindVote) MarshalZerologObject(e *zerolog.Event) {
	e.Str("tx_id", bv.txID).
		Int64("stake", bv.stake).
		Stringer("hash", bv.HashOfEncryptedProposalList())
}

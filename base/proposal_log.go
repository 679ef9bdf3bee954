package base

import "github.com/rs/zerolog"

func (pr Proposal) MarshalZerologObject(e *zerolog.Event) {
	e.Str("uid", pr.uid).
		Stringer("type", pr.proposalType).
		Str("name", pr.fields.Name).
		Str("tx_id", pr.txID)
}

package base

import "github.com/rs/zerolog"

func (cy Cycle) MarshalZerologObject(e *zerolog.Event) {
	e.Int64("first_block", cy.firstBlock.Int64()).Int64("last_block", cy.LastBlock().Int64())
}

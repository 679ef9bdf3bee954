package gossip

import (
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/util"
)

// PublishFailedError is returned when the payload of a broadcasted tx could
// not be added to the gossip network.
var PublishFailedError = util.NewError("failed to publish payload")

// Listener receives the payloads from the gossip network. The callbacks are
// called from the network context; the returned error is logged by Store.
type Listener interface {
	OnAdded(base.Payload) error
	OnRemoved(base.Payload) error
}

// Store is the replicated payload store of the gossip network.
type Store interface {
	AddListener(Listener)
	// Snapshot returns the known payloads by the hash string.
	Snapshot() map[string]base.Payload
	// Publish adds payload; if broadcast is true, payload is sent to the
	// peers. Publish returns false if payload is already known or invalid.
	Publish(payload base.Payload, broadcast bool) bool
	Remove(base.Payload) bool
}

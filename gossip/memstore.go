package gossip

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/util/logging"
)

// MemStore is the in memory Store; the payloads are deduplicated by hash.
type MemStore struct {
	sync.RWMutex
	*logging.Logging
	payloads    map[string]base.Payload
	listeners   []Listener
	broadcasted []base.Payload
}

func NewMemStore() *MemStore {
	return &MemStore{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "gossip-memstore")
		}),
		payloads: map[string]base.Payload{},
	}
}

func (ms *MemStore) AddListener(l Listener) {
	ms.Lock()
	defer ms.Unlock()

	ms.listeners = append(ms.listeners, l)
}

func (ms *MemStore) Snapshot() map[string]base.Payload {
	ms.RLock()
	defer ms.RUnlock()

	m := make(map[string]base.Payload, len(ms.payloads))
	for k := range ms.payloads {
		m[k] = ms.payloads[k]
	}

	return m
}

func (ms *MemStore) Publish(payload base.Payload, broadcast bool) bool {
	if err := payload.IsValid(nil); err != nil {
		ms.Log().Debug().Err(err).Stringer("kind", payload.Kind()).Msg("invalid payload; ignored")

		return false
	}

	h, err := payload.Hash()
	if err != nil {
		ms.Log().Error().Err(err).Msg("failed to hash payload")

		return false
	}

	listeners, added := func() ([]Listener, bool) {
		ms.Lock()
		defer ms.Unlock()

		if _, found := ms.payloads[h.String()]; found {
			return nil, false
		}

		ms.payloads[h.String()] = payload
		if broadcast {
			ms.broadcasted = append(ms.broadcasted, payload)
		}

		return ms.listeners, true
	}()
	if !added {
		return false
	}

	for i := range listeners {
		if err := listeners[i].OnAdded(payload); err != nil {
			ms.Log().Error().Err(err).Stringer("hash", h).Msg("listener failed to handle added payload")
		}
	}

	return true
}

func (ms *MemStore) Remove(payload base.Payload) bool {
	h, err := payload.Hash()
	if err != nil {
		return false
	}

	listeners, removed := func() ([]Listener, bool) {
		ms.Lock()
		defer ms.Unlock()

		if _, found := ms.payloads[h.String()]; !found {
			return nil, false
		}

		delete(ms.payloads, h.String())

		return ms.listeners, true
	}()
	if !removed {
		return false
	}

	for i := range listeners {
		if err := listeners[i].OnRemoved(payload); err != nil {
			ms.Log().Error().Err(err).Stringer("hash", h).Msg("listener failed to handle removed payload")
		}
	}

	return true
}

// Broadcasted returns the payloads, which were published with broadcast.
func (ms *MemStore) Broadcasted() []base.Payload {
	ms.RLock()
	defer ms.RUnlock()

	b := make([]base.Payload, len(ms.broadcasted))
	copy(b, ms.broadcasted)

	return b
}

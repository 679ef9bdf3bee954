package param

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/spikeekips/mitum-dao/base"
	"github.com/spikeekips/mitum-dao/storage"
	"github.com/spikeekips/mitum-dao/util"
	"github.com/spikeekips/mitum-dao/util/isvalid"
	"github.com/spikeekips/mitum-dao/util/logging"
)

const StorageName = "param-change-events"

// Service keeps the accepted ParamChangeEvents. The events only grow; the
// values are looked up by the height, so every node gets the same value at
// the same height.
type Service struct {
	sync.RWMutex
	*logging.Logging
	devEnv util.DevEnv
	db     storage.Database
	events base.ParamChangeEventList
	queue  *storage.SaveQueue
}

func NewService(db storage.Database, maxBackups int, devEnv util.DevEnv) *Service {
	sv := &Service{
		Logging: logging.NewLogging(func(c zerolog.Context) zerolog.Context {
			return c.Str("module", "param-service")
		}),
		devEnv: devEnv,
		db:     db,
	}

	sv.queue = storage.NewSaveQueue(db, StorageName, maxBackups, func() interface{} {
		sv.RLock()
		defer sv.RUnlock()

		return sv.events
	})

	return sv
}

func (sv *Service) SetLogging(l *logging.Logging) *logging.Logging {
	_ = sv.queue.SetLogging(l)

	return sv.Logging.SetLogging(l)
}

// Load reads the persisted events; it should be called before Start.
func (sv *Service) Load() error {
	var events base.ParamChangeEventList
	found, err := storage.LoadOrDefault(sv.db, StorageName, &events)
	if err != nil {
		return err
	}

	if !found {
		return nil
	}

	sv.Lock()
	defer sv.Unlock()

	sv.events = events

	sv.Log().Debug().Int("events", events.Len()).Msg("param change events loaded")

	return nil
}

func (sv *Service) Start() error {
	return sv.queue.Start()
}

func (sv *Service) Stop() error {
	return sv.queue.Stop()
}

// AddEvent appends the event, which passed the tally.
func (sv *Service) AddEvent(ev base.ParamChangeEvent) error {
	if err := ev.IsValid(nil); err != nil {
		return err
	}

	sv.Lock()
	sv.events = sv.events.Append(ev)
	sv.Unlock()

	sv.queue.QueueSave()

	sv.Log().Info().Stringer("param", ev.Param).Int64("value", ev.Value).
		Int64("height", ev.Height.Int64()).Msg("param changed")

	return nil
}

func (sv *Service) Events() []base.ParamChangeEvent {
	sv.RLock()
	defer sv.RUnlock()

	return sv.events.Copy()
}

// Map returns the latest values regardless of the activation height.
func (sv *Service) Map() base.ParamChangeMap {
	return base.NewParamChangeMap(sv.Events())
}

// Value returns the value of the last event of param, which is activated at
// or before height. Without such event, the default is returned.
func (sv *Service) Value(p base.Param, height base.Height) int64 {
	sv.RLock()
	defer sv.RUnlock()

	for i := len(sv.events.Events) - 1; i >= 0; i-- {
		ev := sv.events.Events[i]
		if ev.Param == p && ev.Height <= height {
			return ev.Value
		}
	}

	return p.Default()
}

func (sv *Service) ProposalFee(height base.Height) int64 {
	return sv.Value(base.ParamProposalFee, height)
}

func (sv *Service) BlindVoteFee(height base.Height) int64 {
	return sv.Value(base.ParamBlindVoteFee, height)
}

func (sv *Service) PhaseDuration(ph base.Phase, height base.Height) uint64 {
	if err := ph.IsValid(nil); err != nil {
		return 0
	}

	v := sv.Value(ph.Param(), height)
	if v < 0 {
		return 0
	}

	return uint64(v)
}

// OnAdded ignores change param payload; events are appended only by
// AddEvent after tally.
func (sv *Service) OnAdded(payload base.Payload) error {
	cp, ok := payload.ChangeParam()
	if !ok {
		return nil
	}

	if err := cp.IsValid(nil); err != nil {
		return isvalid.InvalidError.Wrap(err)
	}

	sv.Log().Debug().Stringer("param", cp.Param).Int64("value", cp.Value).
		Msg("change param payload received")

	return nil
}

// OnRemoved of change param payload is not allowed. The removal is ignored and
// only in developer mode it returns error.
func (sv *Service) OnRemoved(payload base.Payload) error {
	cp, ok := payload.ChangeParam()
	if !ok {
		return nil
	}

	return sv.devEnv.ProtocolViolation(sv.Log(),
		"change param can not be removed; param=%s value=%d", cp.Param, cp.Value)
}

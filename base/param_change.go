package base

import (
	"github.com/spikeekips/mitum-dao/util/isvalid"
)

// ChangeParam is the gossip payload of an accepted parameter change.
type ChangeParam struct {
	Param Param `json:"param" bson:"param"`
	Value int64 `json:"value" bson:"value"`
}

func NewChangeParam(p Param, v int64) ChangeParam {
	return ChangeParam{Param: p, Value: v}
}

func (cp ChangeParam) IsValid([]byte) error {
	if err := cp.Param.IsValid(nil); err != nil {
		return err
	}

	if cp.Value < 0 {
		return isvalid.InvalidError.Errorf("negative param value, %d", cp.Value)
	}

	return nil
}

// ParamChangeEvent is the immutable record of accepted change; Value becomes
// effective from Height.
type ParamChangeEvent struct {
	Param  Param  `json:"param" bson:"param"`
	Value  int64  `json:"value" bson:"value"`
	Height Height `json:"height" bson:"height"`
}

func NewParamChangeEvent(p Param, v int64, height Height) ParamChangeEvent {
	return ParamChangeEvent{Param: p, Value: v, Height: height}
}

func (ev ParamChangeEvent) IsValid([]byte) error {
	if err := NewChangeParam(ev.Param, ev.Value).IsValid(nil); err != nil {
		return err
	}

	return ev.Height.IsValid(nil)
}

// ParamChangeEventList keeps the events in the order they were accepted.
type ParamChangeEventList struct {
	Events []ParamChangeEvent `json:"events" bson:"events"`
}

func (el ParamChangeEventList) Len() int {
	return len(el.Events)
}

// Append returns new list; the existing events are never modified.
func (el ParamChangeEventList) Append(ev ParamChangeEvent) ParamChangeEventList {
	events := make([]ParamChangeEvent, len(el.Events)+1)
	copy(events, el.Events)
	events[len(el.Events)] = ev

	return ParamChangeEventList{Events: events}
}

// Copy returns the snapshot of events.
func (el ParamChangeEventList) Copy() []ParamChangeEvent {
	events := make([]ParamChangeEvent, len(el.Events))
	copy(events, el.Events)

	return events
}

// ParamChangeMap holds the currently effective value of each Param, derived
// from ParamChangeEventList.
type ParamChangeMap struct {
	m map[Param]int64
}

// NewParamChangeMap derives the map from events; the later event of the same
// Param wins.
func NewParamChangeMap(events []ParamChangeEvent) ParamChangeMap {
	m := map[Param]int64{}
	for i := range events {
		m[events[i].Param] = events[i].Value
	}

	return ParamChangeMap{m: m}
}

// Value returns the Param default if no event changed it.
func (pm ParamChangeMap) Value(p Param) int64 {
	if v, found := pm.m[p]; found {
		return v
	}

	return p.Default()
}

func (pm ParamChangeMap) IsChanged(p Param) bool {
	_, found := pm.m[p]

	return found
}

func (pm ParamChangeMap) Len() int {
	return len(pm.m)
}

func (pm ParamChangeMap) Map() map[Param]int64 {
	m := make(map[Param]int64, len(pm.m))
	for k := range pm.m {
		m[k] = pm.m[k]
	}

	return m
}

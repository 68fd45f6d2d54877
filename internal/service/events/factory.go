package events

import (
	"context"
	"strings"
)

type actionFunc func(context.Context, Event) error

type actionFactory struct {
	byType map[string]actionFunc
}

func newActionFactory(onArrived, onDeparted, onDischarged, onDecided, onPickedUp actionFunc) *actionFactory {
	return &actionFactory{
		byType: map[string]actionFunc{
			TypeVesselArrived:      onArrived,
			TypeVesselDeparted:     onDeparted,
			TypeContainerDischarge: onDischarged,
			TypeCustomsDecided:     onDecided,
			TypeContainerPickedUp:  onPickedUp,
		},
	}
}

func (f *actionFactory) get(eventType string) (actionFunc, bool) {
	eventType = strings.ToLower(strings.TrimSpace(eventType))
	fn, ok := f.byType[eventType]
	return fn, ok
}

package events

import (
	"time"
)

// List of terminal event types carried on the events topic.
const (
	TypeVesselArrived      = "vessel_arrived"
	TypeVesselDeparted     = "vessel_departed"
	TypeContainerDischarge = "container_discharged"
	TypeCustomsDecided     = "customs_decided"
	TypeContainerPickedUp  = "container_picked_up"
)

// Event is a single terminal event. Only the fields relevant to its Type are
// populated by producers.
type Event struct {
	Type          string    `json:"type"`
	VesselID      int64     `json:"vessel_id,omitempty"`
	BerthID       int64     `json:"berth_id,omitempty"`
	ContainerID   int64     `json:"container_id,omitempty"`
	YardStackID   int64     `json:"yard_stack_id,omitempty"`
	DeclarationID int64     `json:"declaration_id,omitempty"`
	TruckID       int64     `json:"truck_id,omitempty"`
	Decision      string    `json:"decision,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

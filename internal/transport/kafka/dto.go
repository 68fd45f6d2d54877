package kafka

import (
	"strings"
	"time"

	"port-terminal-core/internal/service/events"
)

// EventDTO is a data transfer object for events.Event
type EventDTO struct {
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

// ToDomain converts EventDTO to events.Event
func ToDomain(dto EventDTO) events.Event {
	return events.Event{
		Type:          strings.ToLower(strings.TrimSpace(dto.Type)),
		VesselID:      dto.VesselID,
		BerthID:       dto.BerthID,
		ContainerID:   dto.ContainerID,
		YardStackID:   dto.YardStackID,
		DeclarationID: dto.DeclarationID,
		TruckID:       dto.TruckID,
		Decision:      strings.TrimSpace(dto.Decision),
		OccurredAt:    dto.OccurredAt,
	}
}

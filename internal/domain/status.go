package domain

type (
	// ShipmentStatus represents the lifecycle state of a shipment.
	ShipmentStatus string
	// BerthStatus represents the state of a mooring slot.
	BerthStatus string
	// DeclarationStatus represents the decision state of a customs declaration.
	DeclarationStatus string
	// ContainerType represents the construction type of a container.
	ContainerType string
)

// List of shipment lifecycle states, in forward order.
const (
	ShipmentPending         ShipmentStatus = "PENDING"
	ShipmentInTransit       ShipmentStatus = "IN_TRANSIT"
	ShipmentAwaitingCustoms ShipmentStatus = "AWAITING_CUSTOMS"
	ShipmentCleared         ShipmentStatus = "CLEARED"
	ShipmentDelivered       ShipmentStatus = "DELIVERED"
)

// List of possible berth statuses
const (
	BerthAvailable   BerthStatus = "AVAILABLE"
	BerthOccupied    BerthStatus = "OCCUPIED"
	BerthMaintenance BerthStatus = "MAINTENANCE"
)

// List of customs declaration decision states
const (
	DeclarationPending  DeclarationStatus = "PENDING"
	DeclarationApproved DeclarationStatus = "APPROVED"
	DeclarationRejected DeclarationStatus = "REJECTED"
)

// List of container types
const (
	ContainerDry      ContainerType = "DRY"
	ContainerReefer   ContainerType = "REEFER"
	ContainerOpenTop  ContainerType = "OPEN_TOP"
	ContainerFlatRack ContainerType = "FLAT_RACK"
)

var shipmentStatusOrder = [...]ShipmentStatus{
	ShipmentPending, ShipmentInTransit, ShipmentAwaitingCustoms, ShipmentCleared, ShipmentDelivered,
}

var allowedBerthStatuses = [...]BerthStatus{
	BerthAvailable, BerthOccupied, BerthMaintenance,
}

var allowedDeclarationStatuses = [...]DeclarationStatus{
	DeclarationPending, DeclarationApproved, DeclarationRejected,
}

var allowedContainerTypes = [...]ContainerType{
	ContainerDry, ContainerReefer, ContainerOpenTop, ContainerFlatRack,
}

// Valid checks if the ShipmentStatus is valid
func (s ShipmentStatus) Valid() bool {
	return s.rank() >= 0
}

// Before reports whether s comes strictly earlier than other in the
// forward lifecycle order. Unknown statuses compare as not-before.
func (s ShipmentStatus) Before(other ShipmentStatus) bool {
	sr, or := s.rank(), other.rank()
	return sr >= 0 && or >= 0 && sr < or
}

func (s ShipmentStatus) rank() int {
	for i, v := range shipmentStatusOrder {
		if s == v {
			return i
		}
	}
	return -1
}

// Valid checks if the BerthStatus is valid
func (s BerthStatus) Valid() bool {
	for _, v := range allowedBerthStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Valid checks if the DeclarationStatus is valid
func (s DeclarationStatus) Valid() bool {
	for _, v := range allowedDeclarationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// Decided reports whether the declaration has received its one-shot decision.
func (s DeclarationStatus) Decided() bool {
	return s == DeclarationApproved || s == DeclarationRejected
}

// Valid checks if the ContainerType is valid
func (t ContainerType) Valid() bool {
	for _, v := range allowedContainerTypes {
		if t == v {
			return true
		}
	}
	return false
}

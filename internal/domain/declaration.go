package domain

import "time"

// CustomsDeclaration - the regulatory filing for one shipment; exactly one
// declaration exists per shipment.
type CustomsDeclaration struct {
	ID         int64
	ShipmentID int64
	DeclaredAt time.Time
	Status     DeclarationStatus
}

package domain

import (
	"regexp"
	"time"
)

// Shipment - a logical movement of cargo under one bill of lading.
type Shipment struct {
	ID             int64
	ClientID       int64
	Status         ShipmentStatus
	BillOfLadingNo string
	Origin         string
	Destination    string
	DeclaredValue  float64
	ArchivedAt     *time.Time
}

// Archived reports whether the shipment has been logically closed.
func (s *Shipment) Archived() bool {
	return s.ArchivedAt != nil
}

// reBillOfLading matches the terminal's bill of lading numbering scheme.
var reBillOfLading = regexp.MustCompile(`^BLD[0-9]{9}$`)

// validateBillOfLading validates the bill of lading number format.
func validateBillOfLading(s string) bool {
	return reBillOfLading.MatchString(s)
}

package domain

import "regexp"

// List of standard container sizes in feet.
const (
	ContainerSize20 = 20
	ContainerSize40 = 40
)

// Container belongs to exactly one shipment and is either aboard a vessel,
// stored in a yard stack, or unlocated, never more than one at a time.
type Container struct {
	ID         int64
	ShipmentID int64
	Number     string
	Type       ContainerType
	Size       int
	Location   Location
}

// LocationKind discriminates the container location union.
type LocationKind int

// List of container location kinds
const (
	LocationNone LocationKind = iota
	LocationVessel
	LocationYard
)

// Location is the current physical placement of a container. Exactly one of
// VesselID/YardStackID is meaningful, selected by Kind.
type Location struct {
	Kind        LocationKind
	VesselID    int64
	YardStackID int64
}

// Unlocated returns the empty location (released to a truck or final drop-off).
func Unlocated() Location {
	return Location{Kind: LocationNone}
}

// AboardVessel returns a location on the given vessel.
func AboardVessel(vesselID int64) Location {
	return Location{Kind: LocationVessel, VesselID: vesselID}
}

// InYardStack returns a location in the given yard stack.
func InYardStack(yardStackID int64) Location {
	return Location{Kind: LocationYard, YardStackID: yardStackID}
}

// Aboard returns the vessel ID and true when the container is afloat or berthed.
func (l Location) Aboard() (int64, bool) {
	if l.Kind == LocationVessel {
		return l.VesselID, true
	}
	return 0, false
}

// InYard returns the yard stack ID and true when the container is yard-stored.
func (l Location) InYard() (int64, bool) {
	if l.Kind == LocationYard {
		return l.YardStackID, true
	}
	return 0, false
}

// None reports whether the container is currently unlocated.
func (l Location) None() bool {
	return l.Kind == LocationNone
}

var reContainerNumber = regexp.MustCompile(`^[A-Z]{3}U[0-9]{7}$`)

// validateContainerNumber validates an ISO 6346 container number: a
// three-letter owner code, the universal product group 'U', a six-digit
// serial and a check digit.
func validateContainerNumber(s string) bool {
	if !reContainerNumber.MatchString(s) {
		return false
	}
	return containerCheckDigit(s[:10]) == int(s[10]-'0')
}

// containerCheckDigit computes the ISO 6346 check digit over the 10-character
// base: letters map to 10..35, digits to their value, each position weighted
// by 2^i, total mod 11 mod 10.
func containerCheckDigit(base string) int {
	total := 0
	weight := 1
	for i := 0; i < len(base); i++ {
		ch := base[i]
		var v int
		switch {
		case ch >= 'A' && ch <= 'Z':
			v = int(ch) - 55
		case ch >= '0' && ch <= '9':
			v = int(ch) - '0'
		}
		total += v * weight
		weight <<= 1
	}
	return total % 11 % 10
}

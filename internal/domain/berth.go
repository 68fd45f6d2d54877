package domain

// Berth - a physical mooring slot. VesselID is set while a vessel is moored;
// a berth holds at most one vessel and a vessel occupies at most one berth.
type Berth struct {
	ID       int64
	Number   string
	Status   BerthStatus
	VesselID *int64
}

// Occupied reports whether a vessel is currently moored at the berth.
func (b *Berth) Occupied() bool {
	return b.Status == BerthOccupied && b.VesselID != nil
}

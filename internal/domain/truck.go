package domain

// Truck represents a road truck; ContainerID is set while the truck holds a
// pickup assignment. A truck hauls at most one container at a time.
type Truck struct {
	ID          int64
	PlateNo     string
	ContainerID *int64
}

// Loaded reports whether the truck currently holds a pickup assignment.
func (t *Truck) Loaded() bool {
	return t.ContainerID != nil
}

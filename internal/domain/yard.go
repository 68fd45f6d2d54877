package domain

// YardStack - a storage location in the terminal yard with finite container
// capacity. Occupancy is mutated only through the resource ledger and never
// exceeds Capacity.
type YardStack struct {
	ID        int64
	Code      string
	Capacity  int
	Occupancy int
}

// Full reports whether the stack has no free slots left.
func (y *YardStack) Full() bool {
	return y.Occupancy >= y.Capacity
}

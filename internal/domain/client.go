package domain

// Client represents a shipping company holding cargo contracts with the
// terminal. Identity is immutable once created; only contact fields change.
type Client struct {
	ID            int64
	CompanyName   string
	ContactPerson string
	Email         string
	PhoneNumber   string
}

// ClientContactUpdate carries optional contact fields to update a client.
// A nil field means "do not change" that attribute.
type ClientContactUpdate struct {
	ID            int64
	ContactPerson *string
	Email         *string
	PhoneNumber   *string
}

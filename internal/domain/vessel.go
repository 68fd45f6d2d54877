package domain

import "regexp"

// Vessel represents a ship calling at the terminal.
type Vessel struct {
	ID        int64
	Name      string
	IMONumber string
}

// reIMO matches a 7-digit IMO registration number.
var reIMO = regexp.MustCompile(`^[0-9]{7}$`)

// validateIMO validates the IMO number format.
func validateIMO(s string) bool {
	return reIMO.MatchString(s)
}

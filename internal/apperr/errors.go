package apperr

import "errors"

// ErrInvalid is returned when the input fails domain validation.
var ErrInvalid = errors.New("invalid input")

// ErrNotFound indicates that the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrResourceConflict indicates that a berth or vessel is already engaged
// (occupied berth, berth under maintenance, moored vessel).
var ErrResourceConflict = errors.New("resource conflict")

// ErrAlreadyAssigned indicates that the vessel or truck already holds
// another assignment.
var ErrAlreadyAssigned = errors.New("already assigned")

// ErrCapacityExceeded indicates that a yard stack is full.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// ErrNotOccupied indicates a release of a berth that holds no vessel.
var ErrNotOccupied = errors.New("not occupied")

// ErrDuplicateDeclaration indicates that the shipment already has a
// customs declaration on file.
var ErrDuplicateDeclaration = errors.New("duplicate declaration")

// ErrAlreadyDecided indicates that a customs declaration was already
// approved or rejected; decisions are one-shot.
var ErrAlreadyDecided = errors.New("already decided")

// ErrInvalidTransition indicates a lifecycle event fired from a state it
// is not allowed in, or with a failed precondition.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrTerminalState indicates an event fired on a delivered shipment.
var ErrTerminalState = errors.New("terminal state")

var domainErrors = []error{
	ErrInvalid,
	ErrNotFound,
	ErrResourceConflict,
	ErrAlreadyAssigned,
	ErrCapacityExceeded,
	ErrNotOccupied,
	ErrDuplicateDeclaration,
	ErrAlreadyDecided,
	ErrInvalidTransition,
	ErrTerminalState,
}

// IsDomain reports whether err is one of the typed business-rule errors.
// Such errors are final: retrying the same call cannot succeed.
func IsDomain(err error) bool {
	for _, kind := range domainErrors {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

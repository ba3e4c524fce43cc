package event

import "errors"

var (
	ErrMalformedLocation   = errors.New("malformed location")
	ErrUnexpectedTeamCount = errors.New("unexpected team count")
	ErrNoEvents            = errors.New("event table is empty")
)

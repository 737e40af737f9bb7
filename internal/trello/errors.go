package trello

import (
	"errors"
	"fmt"
)

// ErrAuth marks responses rejected for missing or invalid credentials.
var ErrAuth = errors.New("trello: unauthorized")

// Reason classifies why a fetch failed.
type Reason string

const (
	ReasonNetwork Reason = "network"
	ReasonStatus  Reason = "status"
	ReasonDecode  Reason = "decode"
)

// FetchError describes a failed read against the Trello API.
type FetchError struct {
	Op     string // boards, lists or cards
	Reason Reason
	Status int // HTTP status for ReasonStatus
	Err    error
}

func (e *FetchError) Error() string {
	if e.Reason == ReasonStatus {
		return fmt.Sprintf("fetch %s: api returned status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.Op, e.Reason, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// IsFetchFailure reports whether err came from a failed API read.
func IsFetchFailure(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

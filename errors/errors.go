package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	ErrMissingRequiredAttr = fmt.Errorf("missing required attribute")
	ErrAssertion           = fmt.Errorf("assertion failed")
	ErrAlreadyStarted      = fmt.Errorf("component already started")
	ErrNotStarted          = fmt.Errorf("component not started")
	ErrTagCollision        = fmt.Errorf("tag name already registered")
	ErrInvalidTagName      = fmt.Errorf("tag name must contain a hyphen")
	ErrDestroyed           = fmt.Errorf("component destroyed")

	ErrInvalidMessage = fmt.Errorf("invalid message")
	ErrInvalidTime    = fmt.Errorf("message time is missing")
	ErrNotAudio       = fmt.Errorf("clip is not audio")
	ErrUnknownChat    = fmt.Errorf("unknown chat")
	ErrEmptyWords     = fmt.Errorf("no words have been found")

	ErrInvalidRoster   = fmt.Errorf("invalid roster")
	ErrInvalidEnvelope = fmt.Errorf("invalid envelope")
	ErrNotConnected    = fmt.Errorf("feed not connected")
)

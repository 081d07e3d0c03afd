package component

import (
	"chat-box/errors"
	"fmt"
)

// AssertionError is raised when an invariant a component relies on is broken.
type AssertionError struct {
	Tag     string
	Message string
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", errors.ErrAssertion, e.Tag, e.Message)
}

func (e *AssertionError) Unwrap() error {
	return errors.ErrAssertion
}

// Assert panics with an *AssertionError when cond is false.
// It flags programmer error, never an expected runtime condition.
func (b *Base) Assert(cond bool, message string) {
	if !cond {
		panic(&AssertionError{Tag: b.tag, Message: message})
	}
}

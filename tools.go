//go:build tools

// Package tools tracks the code generators used by go generate (mockgen
// for the contract mocks) so go.mod pins their version.
package tools

import (
	_ "go.uber.org/mock/mockgen"
)

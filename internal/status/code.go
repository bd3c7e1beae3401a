// internal/status/code.go
package status

import "github.com/pkg/errors"

// Code extracts the 16-bit code for the last-error slot.
// nil is 0. Errors exposing Code() uint16 anywhere in their chain report it;
// anything else is 1 (generic error).
func Code(err error) uint16 {
	if err == nil {
		return 0
	}

	type coder interface{ Code() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return 1
}

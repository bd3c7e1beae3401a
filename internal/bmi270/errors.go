// internal/bmi270/errors.go
package bmi270

import (
	"fmt"

	"github.com/tamzrod/bmi270-replicator/internal/bmi270/regs"
)

// Status codes reported by driver errors through Code().
const (
	CodeInitTimeout  uint16 = 0x0200
	CodeFirmwareSize uint16 = 0x0201
)

var (
	// ErrInitTimeout means every init attempt hit the status poll cap
	// while the sensor still reported not_init.
	ErrInitTimeout error = &codeError{msg: "bmi270: init timed out", code: CodeInitTimeout}

	// ErrFirmwareSize means the configuration image is empty or does not fit the upload window.
	ErrFirmwareSize error = &codeError{msg: "bmi270: firmware size out of range", code: CodeFirmwareSize}
)

type codeError struct {
	msg  string
	code uint16
}

func (e *codeError) Error() string { return e.msg }
func (e *codeError) Code() uint16  { return e.code }

// StatusError carries a terminal InitStatus other than init_ok
// for callers that need it as an error.
type StatusError struct {
	Status regs.InitStatus
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bmi270: init status %s", e.Status)
}

// Code is 0x0100 | InitStatus.
func (e *StatusError) Code() uint16 {
	return 0x0100 | uint16(e.Status)
}

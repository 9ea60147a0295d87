package oam

import "fmt"

// ContractError is the panic value raised when a caller breaks the
// contract of this package (out-of-range field, prohibited shape, table
// overrun). It is never returned as an error: these are programming bugs.
type ContractError struct {
	Op  string
	Msg string
}

func (e *ContractError) Error() string { return "oam: " + e.Op + ": " + e.Msg }

// require panics with a ContractError when checks are compiled in and cond
// is false. With -tags oamrelease the call folds away.
func require(cond bool, op, format string, args ...any) {
	if contractChecks && !cond {
		panic(&ContractError{Op: op, Msg: fmt.Sprintf(format, args...)})
	}
}

package runtime

import (
	"errors"
	"fmt"
)

// Error is a ledger error with a stable numeric code, as reported to clients
// in transaction results.
type Error struct {
	Code uint32
	Name string
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%d): %s", e.Name, e.Code, e.Msg)
}

// NewError declares a ledger error. Programs use it for their own error tables.
func NewError(code uint32, name, msg string) *Error {
	return &Error{Code: code, Name: name, Msg: msg}
}

// Errors raised by the runtime and its built-in system program.
var (
	ErrAddressAlreadyInUse = NewError(0, "AddressAlreadyInUse", "an account with the same address already exists")
	ErrInsufficientFunds   = NewError(1, "InsufficientFunds", "account does not have enough lamports to perform the operation")
	ErrInvalidDataLength   = NewError(3, "InvalidAccountDataLength", "cannot allocate account data of this length")
	ErrSignatureMissing    = NewError(3010, "SignatureMissing", "a required signature was not provided")
	ErrAccountNotWritable  = NewError(3006, "AccountNotMutable", "account is not writable in this transaction")
	ErrIllegalOwner        = NewError(3007, "AccountOwnedByWrongProgram", "account is not owned by the executing program")
	ErrDataTooSmall        = NewError(9000, "AccountDataTooSmall", "data does not fit in the allocated account space")
	ErrConcurrentUpdate    = NewError(9001, "AccountModified", "account changed while the transaction was executing")
	ErrUnknownProgram      = NewError(9002, "ProgramNotFound", "no program is registered under this id")
)

// Code extracts the ledger error code from err, if any.
func Code(err error) (uint32, bool) {
	var le *Error
	if errors.As(err, &le) {
		return le.Code, true
	}
	return 0, false
}

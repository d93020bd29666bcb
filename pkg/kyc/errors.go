package kyc

import "github.com/chainsafe/kyc-ledger/pkg/ledger/runtime"

// Program error codes follow the Anchor numbering so clients built against the
// deployed program decode them the same way.
var (
	ErrInstructionMissing           = runtime.NewError(100, "InstructionMissing", "8 byte instruction identifier not provided")
	ErrInstructionFallbackNotFound  = runtime.NewError(101, "InstructionFallbackNotFound", "fallback functions are not supported")
	ErrInstructionDidNotDeserialize = runtime.NewError(102, "InstructionDidNotDeserialize", "the program could not deserialize the given instruction")
	ErrAccountDiscriminatorNotFound = runtime.NewError(3001, "AccountDiscriminatorNotFound", "no 8 byte discriminator was found on the account")
	ErrAccountDiscriminatorMismatch = runtime.NewError(3002, "AccountDiscriminatorMismatch", "account discriminator did not match what was expected")
	ErrAccountDidNotDeserialize     = runtime.NewError(3003, "AccountDidNotDeserialize", "failed to deserialize the account")
	ErrSerializationOverflow        = runtime.NewError(3004, "SerializationOverflow", "record field exceeds its reserved capacity")
)

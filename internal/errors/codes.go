package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeDataLoss           Code = "DATA_LOSS"
	CodeUnavailable        Code = "UNAVAILABLE"

	// CodeEmptyInput marks a sample drawn from an empty candidate set.
	CodeEmptyInput Code = "EMPTY_INPUT"
	// CodeInvalidRange marks a numeric range whose max is below its min.
	CodeInvalidRange Code = "INVALID_RANGE"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// ExitCode maps an error code to a process exit status for the CLI.
func (c Code) ExitCode() int {
	switch c {
	case CodeOK:
		return 0
	case CodeInvalidArgument, CodeNotFound, CodeFailedPrecondition:
		return 2
	case CodeUnavailable:
		return 3
	case CodeEmptyInput, CodeInvalidRange:
		// programming invariants, surface loudly
		return 70
	default:
		return 1
	}
}

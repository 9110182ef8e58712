package demangle

import (
	"errors"
	"fmt"

	"github.com/skdltmxn/undname-go/internal/stream"
)

// Sentinel errors. Every error returned by Parse or Demangle matches exactly
// one of these under errors.Is.
var (
	// ErrMalformedMangledName indicates a syntax violation such as a missing
	// terminator or truncated input.
	ErrMalformedMangledName = errors.New("demangle: malformed mangled name")

	// ErrMalformedNumber indicates a numeric encoding that overflows or is
	// missing its terminator.
	ErrMalformedNumber = errors.New("demangle: malformed number")

	// ErrUnknownIdentifierForm indicates an unrecognized name component code.
	ErrUnknownIdentifierForm = errors.New("demangle: unknown identifier form")

	// ErrUnknownTypeForm indicates an unrecognized type code.
	ErrUnknownTypeForm = errors.New("demangle: unknown type form")

	// ErrUnsupportedSymbolKind indicates a symbol discriminator that is
	// invalid or recognized but not supported.
	ErrUnsupportedSymbolKind = errors.New("demangle: unsupported symbol kind")

	// ErrBackrefOutOfRange indicates a back-reference digit naming a table
	// slot that was never populated.
	ErrBackrefOutOfRange = errors.New("demangle: back-reference out of range")

	// ErrInputTooComplex indicates the input exceeded a resource bound
	// (node count, nesting depth, or rendered size).
	ErrInputTooComplex = errors.New("demangle: input too complex")

	// ErrUnknownFlag is returned by ParseFlags for an unrecognized name.
	ErrUnknownFlag = errors.New("demangle: unknown flag")
)

// ParseError describes where and why parsing stopped.
type ParseError struct {
	Offset  int    // Byte offset within the mangled name
	Message string // Production that failed
	Err     error  // One of the sentinel errors above
	Cause   error  // Underlying scanner error, if any
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %s at offset %d: %v", e.Err, e.Message, e.Offset, e.Cause)
	}
	return fmt.Sprintf("%v: %s at offset %d", e.Err, e.Message, e.Offset)
}

func (e *ParseError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

// classify maps scanner failures onto the sentinel taxonomy.
func classify(cause error) error {
	switch {
	case errors.Is(cause, stream.ErrInvalidNumeric),
		errors.Is(cause, stream.ErrUnterminatedNumber),
		errors.Is(cause, stream.ErrNumberOverflow):
		return ErrMalformedNumber
	case errors.Is(cause, errTooManyNodes):
		return ErrInputTooComplex
	default:
		return ErrMalformedMangledName
	}
}

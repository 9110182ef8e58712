package demangle

import (
	"errors"
	"strings"
	"testing"

	"github.com/skdltmxn/undname-go/internal/stream"
)

func TestParseErrorFormat(t *testing.T) {
	err := &ParseError{Offset: 7, Message: "array rank", Err: ErrMalformedNumber, Cause: stream.ErrUnterminatedNumber}
	msg := err.Error()
	for _, part := range []string{"malformed number", "array rank", "offset 7", stream.ErrUnterminatedNumber.Error()} {
		if !strings.Contains(msg, part) {
			t.Fatalf("Error() = %q, missing %q", msg, part)
		}
	}
	if !errors.Is(err, ErrMalformedNumber) || !errors.Is(err, stream.ErrUnterminatedNumber) {
		t.Fatalf("errors.Is does not see both sentinel and cause")
	}

	plain := &ParseError{Offset: 0, Message: "mangled name", Err: ErrMalformedMangledName}
	if got, want := plain.Error(), "demangle: malformed mangled name: mangled name at offset 0"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestErrorsMatchExactlyOneSentinel(t *testing.T) {
	sentinels := []error{
		ErrMalformedMangledName,
		ErrMalformedNumber,
		ErrUnknownIdentifierForm,
		ErrUnknownTypeForm,
		ErrUnsupportedSymbolKind,
		ErrBackrefOutOfRange,
		ErrInputTooComplex,
	}
	inputs := []string{
		"?1@@3HA",
		"?x@@3YAB",
		"?",
		"?x@@3_ZA",
		"?f@@!AXXZ",
		"??_A",
		"??0@@QEAA@XZ",
		"?x@@3" + strings.Repeat("PEA", maxDepth+1) + "HEA",
	}
	for _, in := range inputs {
		_, err := Demangle(in, 0)
		if err == nil {
			t.Fatalf("Demangle(%q) succeeded", in)
		}
		matched := 0
		for _, s := range sentinels {
			if errors.Is(err, s) {
				matched++
			}
		}
		if matched != 1 {
			t.Fatalf("Demangle(%q) error %v matches %d sentinels", in, err, matched)
		}
	}
}

func TestErrorOffsets(t *testing.T) {
	tests := []struct {
		input  string
		offset int
	}{
		{"?1@@3HA", 1},
		{"?x@@3_ZA", 6},
		{"?f@@!AXXZ", 4},
		{"?x@@", 4},
	}
	for _, tt := range tests {
		_, err := Demangle(tt.input, 0)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("Demangle(%q) error %v is not a *ParseError", tt.input, err)
		}
		if pe.Offset != tt.offset {
			t.Fatalf("Demangle(%q) offset = %d, want %d", tt.input, pe.Offset, tt.offset)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		cause error
		want  error
	}{
		{stream.ErrInvalidNumeric, ErrMalformedNumber},
		{stream.ErrUnterminatedNumber, ErrMalformedNumber},
		{stream.ErrNumberOverflow, ErrMalformedNumber},
		{stream.ErrUnexpectedEnd, ErrMalformedMangledName},
		{stream.ErrLiteralMismatch, ErrMalformedMangledName},
		{errTooManyNodes, ErrInputTooComplex},
	}
	for _, tt := range tests {
		if got := classify(tt.cause); got != tt.want {
			t.Fatalf("classify(%v) = %v, want %v", tt.cause, got, tt.want)
		}
	}
}

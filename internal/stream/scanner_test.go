package stream

import (
	"errors"
	"testing"
)

func TestScannerBasics(t *testing.T) {
	s := NewScanner("?x@")

	if c, ok := s.Peek(); !ok || c != '?' {
		t.Fatalf("Peek() = %q, %v, want '?', true", c, ok)
	}
	if !s.ConsumeByte('?') {
		t.Fatal("ConsumeByte('?') = false")
	}
	if s.ConsumeByte('?') {
		t.Fatal("ConsumeByte('?') consumed a mismatching byte")
	}
	if got := s.IndexByte('@'); got != 1 {
		t.Fatalf("IndexByte('@') = %d, want 1", got)
	}
	name, err := s.Take(1)
	if err != nil || name != "x" {
		t.Fatalf("Take(1) = %q, %v", name, err)
	}
	if err := s.Expect("@"); err != nil {
		t.Fatalf("Expect(@) = %v", err)
	}
	if !s.Empty() || s.Offset() != 3 {
		t.Fatalf("scanner not at end: offset %d", s.Offset())
	}
	if _, err := s.Bump(); !errors.Is(err, ErrUnexpectedEnd) {
		t.Fatalf("Bump() at end = %v, want ErrUnexpectedEnd", err)
	}
	if _, ok := s.PeekAt(5); ok {
		t.Fatal("PeekAt past end reported a byte")
	}
}

func TestScannerExpect(t *testing.T) {
	s := NewScanner("$$")
	if err := s.Expect("$$Q"); !errors.Is(err, ErrUnexpectedEnd) {
		t.Fatalf("Expect on truncated literal = %v, want ErrUnexpectedEnd", err)
	}
	if err := s.Expect("$A"); !errors.Is(err, ErrLiteralMismatch) {
		t.Fatalf("Expect on different literal = %v, want ErrLiteralMismatch", err)
	}
	if s.Offset() != 0 {
		t.Fatalf("failed Expect moved the cursor to %d", s.Offset())
	}
}

func TestScannerClone(t *testing.T) {
	s := NewScanner("PEAH")
	ahead := s.Clone()
	ahead.Skip(2)
	if s.Offset() != 0 {
		t.Fatalf("clone advanced the original to %d", s.Offset())
	}
	if ahead.Rest() != "AH" {
		t.Fatalf("clone rest = %q, want AH", ahead.Rest())
	}
}

func TestScannerNumber(t *testing.T) {
	tests := []struct {
		input    string
		value    uint64
		negative bool
		rest     string
	}{
		{"0", 1, false, ""},
		{"9X", 10, false, "X"},
		{"@", 0, false, ""},
		{"A@", 0, false, ""},
		{"BA@", 16, false, ""},
		{"KA@H", 160, false, "H"},
		{"NKM@", 3500, false, ""},
		{"?0", 1, true, ""},
		{"?BA@", 16, true, ""},
		{"PPPPPPPPPPPPPPPP@", 1<<64 - 1, false, ""},
	}

	for _, tt := range tests {
		s := NewScanner(tt.input)
		v, neg, err := s.Number()
		if err != nil {
			t.Fatalf("Number(%q) error: %v", tt.input, err)
		}
		if v != tt.value || neg != tt.negative {
			t.Fatalf("Number(%q) = %d, %v, want %d, %v", tt.input, v, neg, tt.value, tt.negative)
		}
		if s.Rest() != tt.rest {
			t.Fatalf("Number(%q) left %q, want %q", tt.input, s.Rest(), tt.rest)
		}
	}
}

func TestScannerNumberErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"", ErrUnterminatedNumber},
		{"?", ErrUnterminatedNumber},
		{"BCD", ErrUnterminatedNumber},
		{"BZ@", ErrInvalidNumeric},
		{"BAAAAAAAAAAAAAAAA@", ErrNumberOverflow},
	}

	for _, tt := range tests {
		_, _, err := NewScanner(tt.input).Number()
		if !errors.Is(err, tt.want) {
			t.Fatalf("Number(%q) error = %v, want %v", tt.input, err, tt.want)
		}
	}
}

func TestScannerSignedUnsigned(t *testing.T) {
	if v, err := NewScanner("?3").Signed(); err != nil || v != -4 {
		t.Fatalf("Signed(?3) = %d, %v, want -4", v, err)
	}
	if _, err := NewScanner("IAAAAAAAAAAAAAAA@").Signed(); !errors.Is(err, ErrNumberOverflow) {
		t.Fatalf("Signed of 1<<63 = %v, want ErrNumberOverflow", err)
	}
	if _, err := NewScanner("?3").Unsigned(); !errors.Is(err, ErrInvalidNumeric) {
		t.Fatalf("Unsigned(?3) = %v, want ErrInvalidNumeric", err)
	}
	if v, err := NewScanner("BA@").Unsigned(); err != nil || v != 16 {
		t.Fatalf("Unsigned(BA@) = %d, %v, want 16", v, err)
	}
}

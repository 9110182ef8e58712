package demangle

import (
	"errors"
	"strings"
	"testing"
)

func TestWriteEscaped(t *testing.T) {
	tests := []struct {
		c    uint32
		want string
	}{
		{'a', "a"},
		{' ', " "},
		{'~', "~"},
		{0, `\0`},
		{'\n', `\n`},
		{'\t', `\t`},
		{'\'', `\'`},
		{'"', `\"`},
		{'\\', `\\`},
		{0x7F, `\x7F`},
		{0x01, `\x01`},
		{0xE1, `\xE1`},
		{0x0100, `\x0100`},
		{0x1234, `\x1234`},
		{0x10FFFF, `\x10FFFF`},
	}
	for _, tt := range tests {
		var b strings.Builder
		writeEscaped(&b, tt.c)
		if got := b.String(); got != tt.want {
			t.Fatalf("writeEscaped(%#x) = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestGuessCharWidth(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		size uint64
		want int
	}{
		{"odd size", []byte{'a', 0, 0, 0, 0}, 5, 1},
		{"narrow terminator", []byte{'h', 'i', 0}, 3, 1},
		{"utf16 terminator", []byte{'h', 0, 'i', 0, 0, 0}, 6, 2},
		{"utf32 terminator", []byte{'h', 0, 0, 0, 0, 0, 0, 0}, 8, 4},
		{"single trailing nul", []byte{'a', 'b', 'c', 0}, 4, 1},
		{"long narrow", []byte(strings.Repeat("x", 32)), 64, 1},
		{"long utf16", []byte(strings.Repeat("x\x00", 16)), 64, 2},
		{"long utf32", []byte(strings.Repeat("x\x00\x00\x00", 8)), 64, 4},
	}
	for _, tt := range tests {
		if got := guessCharWidth(tt.raw, tt.size); got != tt.want {
			t.Fatalf("%s: guessCharWidth = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestStringLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"??_C@_05CJBACGMB@hello?$AA@", `"hello"`},
		{"??_C@_00CNPNBAHC@?$AA@", `""`},
		{"??_C@_03KLBACJLH@a?5b?$AA@", `"a b"`},
		{"??_C@_02ABCDEFGH@?6?$CC?$AA@", `"\n\""`},
		{"??_C@_1M@ABCDEFGH@?$AAh?$AAe?$AAl?$AAl?$AAo?$AA?$AA@", `L"hello"`},
		{"??_C@_05ABCDEFGH@h?$AAi?$AA?$AA?$AA@", `u"hi"`},
		{"??_C@_0CA@ABCDEFGH@abcdefghijklmnop@", `"abcdefghijklmnop"...`},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Demangle(tt.input, 0)
			if err != nil {
				t.Fatalf("Demangle(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("Demangle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStringLiteralSymbol(t *testing.T) {
	res, err := Parse("??_C@_1M@ABCDEFGH@?$AAh?$AAe?$AAl?$AAl?$AAo?$AA?$AA@")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	lit, ok := res.Symbol.(*StringLiteralSymbol)
	if !ok {
		t.Fatalf("Symbol is %T, want *StringLiteralSymbol", res.Symbol)
	}
	if lit.Char != CharWide || lit.Decoded != "hello" || lit.Truncated {
		t.Fatalf("literal = %+v", lit)
	}
	if lit.QualifiedName() != nil {
		t.Fatalf("string literal has a name")
	}
}

func TestStringLiteralErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{"??_C@_25ABC@x@", ErrMalformedMangledName},
		{"??_C@_0?1ABC@x@", ErrMalformedMangledName},
		{"??_C@_05ABC", ErrMalformedMangledName},
		{"??_C@_05ABC@", ErrMalformedMangledName},
		{"??_C@_05ABC@?$QQ@", ErrMalformedMangledName},
		{"??_C@_05ABC@?!@", ErrMalformedMangledName},
		{"??_C@_1A@ABC@?$AA@", ErrMalformedMangledName},
		{"??_C@_0", ErrMalformedNumber},
		{"??_C@_0" + strings.Repeat("P", 17) + "@ABC@x@", ErrMalformedNumber},
		{"??_C@_0CA@ABC@" + strings.Repeat("x", maxLiteralBytes+1) + "@", ErrMalformedMangledName},
	}
	for _, tt := range tests {
		_, err := Demangle(tt.input, 0)
		if !errors.Is(err, tt.want) {
			t.Fatalf("Demangle(%q) error = %v, want %v", tt.input, err, tt.want)
		}
	}
}

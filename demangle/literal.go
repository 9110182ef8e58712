package demangle

import "strings"

// maxLiteralBytes bounds the payload of a narrow string literal. Compilers
// encode at most 32 bytes but some have emitted more.
const maxLiteralBytes = 32 * 4

// maxWideLiteralBytes is the longest wide literal encoded in full.
const maxWideLiteralBytes = 64

// stringLiteral reads @_ {0|1} <byte-size> <crc> @ <chars> @.
func (d *demangler) stringLiteral() (Symbol, error) {
	if err := d.expect("@_", "string literal"); err != nil {
		return nil, err
	}

	c, err := d.s.Bump()
	if err != nil {
		return nil, d.wrap(err, "expected string literal char type")
	}
	var wide bool
	switch c {
	case '1':
		wide = true
	case '0':
	default:
		return nil, d.failAt(d.s.Offset()-1, ErrMalformedMangledName, "unknown string literal char type")
	}

	size, negative, err := d.number("string literal size")
	if err != nil {
		return nil, err
	}
	minSize := uint64(1)
	if wide {
		minSize = 2
	}
	if negative || size < minSize {
		return nil, d.fail(ErrMalformedMangledName, "invalid string literal size")
	}

	// CRC of the full literal, not decoded.
	n := d.s.IndexByte('@')
	if n < 0 {
		return nil, d.fail(ErrMalformedMangledName, "unterminated string literal checksum")
	}
	d.s.Skip(n + 1)
	if d.s.Empty() {
		return nil, d.fail(ErrMalformedMangledName, "missing string literal payload")
	}

	lit := StringLiteralSymbol{}
	var b strings.Builder
	if wide {
		lit.Char = CharWide
		lit.Truncated = size > maxWideLiteralBytes
		if err := d.wideLiteral(&b, size, lit.Truncated); err != nil {
			return nil, err
		}
	} else {
		kind, truncated, err := d.narrowLiteral(&b, size)
		if err != nil {
			return nil, err
		}
		lit.Char = kind
		lit.Truncated = truncated
	}
	lit.Decoded = b.String()

	sym, err := alloc(d.arena, lit)
	if err != nil {
		return nil, d.wrap(err, "string literal")
	}
	return sym, nil
}

func (d *demangler) wideLiteral(b *strings.Builder, size uint64, truncated bool) error {
	for !d.s.ConsumeByte('@') {
		if d.s.Remaining() < 2 {
			return d.fail(ErrMalformedMangledName, "truncated wide character")
		}
		hi, err := d.charLiteral()
		if err != nil {
			return err
		}
		if d.s.Empty() {
			return d.fail(ErrMalformedMangledName, "truncated wide character")
		}
		lo, err := d.charLiteral()
		if err != nil {
			return err
		}

		// The final code unit is the terminator unless the payload was cut.
		if size != 2 || truncated {
			writeEscaped(b, uint32(hi)<<8|uint32(lo))
		}
		if size >= 2 {
			size -= 2
		} else {
			size = 0
		}
	}
	return nil
}

func (d *demangler) narrowLiteral(b *strings.Builder, size uint64) (CharKind, bool, error) {
	var raw [maxLiteralBytes]byte
	n := 0
	for !d.s.ConsumeByte('@') {
		if d.s.Empty() {
			return 0, false, d.fail(ErrMalformedMangledName, "unterminated string literal")
		}
		if n >= maxLiteralBytes {
			return 0, false, d.fail(ErrMalformedMangledName, "string literal too long")
		}
		c, err := d.charLiteral()
		if err != nil {
			return 0, false, err
		}
		raw[n] = c
		n++
	}

	truncated := size > uint64(n)
	width := guessCharWidth(raw[:n], size)
	kind := CharNarrow
	switch width {
	case 2:
		kind = Char16
	case 4:
		kind = Char32
	}

	chars := n / width
	for i := 0; i < chars; i++ {
		if i+1 < chars || truncated {
			writeEscaped(b, decodeChar(raw[:n], i, width))
		}
	}
	return kind, truncated, nil
}

// guessCharWidth infers the character size of a narrow-encoded literal.
// size is the byte length of the whole literal, which may exceed the
// encoded payload.
func guessCharWidth(raw []byte, size uint64) int {
	if size%2 == 1 {
		return 1
	}

	// Short literals are encoded in full, terminator included.
	if size < 32 {
		trailing := 0
		for i := len(raw) - 1; i >= 0 && raw[i] == 0; i-- {
			trailing++
		}
		switch {
		case trailing >= 4 && size%4 == 0:
			return 4
		case trailing >= 2:
			return 2
		}
		return 1
	}

	// Long literals: guess from the share of NUL bytes.
	nulls := 0
	for _, c := range raw {
		if c == 0 {
			nulls++
		}
	}
	switch {
	case nulls >= 2*len(raw)/3 && size%4 == 0:
		return 4
	case nulls >= len(raw)/3:
		return 2
	}
	return 1
}

func decodeChar(raw []byte, index, width int) uint32 {
	var v uint32
	off := index * width
	for i := 0; i < width; i++ {
		v |= uint32(raw[off+i]) << (8 * i)
	}
	return v
}

var digitChars = [10]byte{',', '/', '\\', ':', '.', ' ', '\n', '\t', '\'', '-'}

// charLiteral decodes one byte of a string literal payload:
//
//	?$XY     byte 0xXY, nibbles A-P
//	?0-9     one of ,/\:. \n\t'-
//	?a-z     0xE1-0xFA
//	?A-Z     0xC1-0xDA
//	other    the byte itself
func (d *demangler) charLiteral() (byte, error) {
	c, err := d.s.Bump()
	if err != nil {
		return 0, d.wrap(err, "expected string literal character")
	}
	if c != '?' {
		return c, nil
	}

	c, err = d.s.Bump()
	if err != nil {
		return 0, d.wrap(err, "truncated character escape")
	}
	switch {
	case c == '$':
		hi, err1 := d.s.Bump()
		lo, err2 := d.s.Bump()
		if err1 != nil || err2 != nil {
			return 0, d.fail(ErrMalformedMangledName, "truncated hex character")
		}
		if !isNibble(hi) || !isNibble(lo) {
			return 0, d.failAt(d.s.Offset()-2, ErrMalformedMangledName, "invalid hex character")
		}
		return (hi-'A')<<4 | (lo - 'A'), nil
	case c >= '0' && c <= '9':
		return digitChars[c-'0'], nil
	case c >= 'a' && c <= 'z':
		return 0xE1 + (c - 'a'), nil
	case c >= 'A' && c <= 'Z':
		return 0xC1 + (c - 'A'), nil
	}
	return 0, d.failAt(d.s.Offset()-1, ErrMalformedMangledName, "unknown character escape")
}

func isNibble(c byte) bool { return c >= 'A' && c <= 'P' }

const hexDigits = "0123456789ABCDEF"

// writeEscaped writes c as it would appear inside a C string literal.
// Non-printable values use \x with an even number of hex digits.
func writeEscaped(b *strings.Builder, c uint32) {
	switch c {
	case 0:
		b.WriteString(`\0`)
	case '\'':
		b.WriteString(`\'`)
	case '"':
		b.WriteString(`\"`)
	case '\\':
		b.WriteString(`\\`)
	case '\a':
		b.WriteString(`\a`)
	case '\b':
		b.WriteString(`\b`)
	case '\f':
		b.WriteString(`\f`)
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	case '\v':
		b.WriteString(`\v`)
	default:
		if c > 0x1F && c < 0x7F {
			b.WriteByte(byte(c))
			return
		}
		var digits []byte
		for c != 0 {
			digits = append(digits, hexDigits[c&0xF], hexDigits[c>>4&0xF])
			c >>= 8
		}
		b.WriteString(`\x`)
		for i := len(digits) - 1; i >= 0; i-- {
			b.WriteByte(digits[i])
		}
	}
}

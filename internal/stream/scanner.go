// Package stream provides a forward-only cursor over mangled symbol names.
package stream

import (
	"errors"
	"math"
	"strings"
)

// Errors returned by Scanner
var (
	ErrUnexpectedEnd      = errors.New("stream: unexpected end of input")
	ErrLiteralMismatch    = errors.New("stream: literal mismatch")
	ErrInvalidNumeric     = errors.New("stream: invalid numeric encoding")
	ErrUnterminatedNumber = errors.New("stream: unterminated numeric encoding")
	ErrNumberOverflow     = errors.New("stream: numeric encoding overflows 64 bits")
)

// Scanner reads a mangled name front to back. Reads past the end of the
// input never panic; they report ErrUnexpectedEnd.
type Scanner struct {
	data   string
	offset int
}

// NewScanner creates a Scanner positioned at the start of data.
func NewScanner(data string) *Scanner {
	return &Scanner{data: data}
}

// Clone returns an independent copy for speculative lookahead.
func (s *Scanner) Clone() *Scanner {
	c := *s
	return &c
}

// Offset returns the current read position.
func (s *Scanner) Offset() int {
	return s.offset
}

// Remaining returns the number of bytes remaining.
func (s *Scanner) Remaining() int {
	return len(s.data) - s.offset
}

// Empty reports whether the whole input has been consumed.
func (s *Scanner) Empty() bool {
	return s.offset >= len(s.data)
}

// Rest returns the unconsumed input.
func (s *Scanner) Rest() string {
	return s.data[s.offset:]
}

// Peek returns the next byte without consuming it.
func (s *Scanner) Peek() (byte, bool) {
	return s.PeekAt(0)
}

// PeekAt returns the byte n positions ahead without consuming anything.
func (s *Scanner) PeekAt(n int) (byte, bool) {
	if n < 0 || s.offset+n >= len(s.data) {
		return 0, false
	}
	return s.data[s.offset+n], true
}

// PeekDigit reports whether the next byte is an ASCII digit.
func (s *Scanner) PeekDigit() bool {
	c, ok := s.Peek()
	return ok && c >= '0' && c <= '9'
}

// HasPrefix reports whether the unconsumed input starts with lit.
func (s *Scanner) HasPrefix(lit string) bool {
	return strings.HasPrefix(s.Rest(), lit)
}

// Bump consumes and returns one byte.
func (s *Scanner) Bump() (byte, error) {
	if s.offset >= len(s.data) {
		return 0, ErrUnexpectedEnd
	}
	c := s.data[s.offset]
	s.offset++
	return c, nil
}

// Skip advances the read position by n bytes.
func (s *Scanner) Skip(n int) error {
	if n < 0 || n > s.Remaining() {
		return ErrUnexpectedEnd
	}
	s.offset += n
	return nil
}

// Take consumes the next n bytes and returns them.
func (s *Scanner) Take(n int) (string, error) {
	if n < 0 || n > s.Remaining() {
		return "", ErrUnexpectedEnd
	}
	v := s.data[s.offset : s.offset+n]
	s.offset += n
	return v, nil
}

// Consume consumes lit if the input starts with it.
func (s *Scanner) Consume(lit string) bool {
	if !s.HasPrefix(lit) {
		return false
	}
	s.offset += len(lit)
	return true
}

// ConsumeByte consumes c if it is the next byte.
func (s *Scanner) ConsumeByte(c byte) bool {
	if s.offset < len(s.data) && s.data[s.offset] == c {
		s.offset++
		return true
	}
	return false
}

// Expect consumes lit or fails without moving.
func (s *Scanner) Expect(lit string) error {
	if s.Consume(lit) {
		return nil
	}
	if s.Remaining() < len(lit) && strings.HasPrefix(lit, s.Rest()) {
		return ErrUnexpectedEnd
	}
	return ErrLiteralMismatch
}

// IndexByte returns the distance to the next c, or -1.
func (s *Scanner) IndexByte(c byte) int {
	return strings.IndexByte(s.Rest(), c)
}

// Number reads the format's integer encoding:
//
//	[?] <digit>          value digit+1
//	[?] [A-P]* @         base-16 nibbles, A = 0, most significant first
//
// A leading '?' marks the value negative. A bare '@' is zero.
func (s *Scanner) Number() (uint64, bool, error) {
	negative := s.ConsumeByte('?')

	c, err := s.Bump()
	if err != nil {
		return 0, negative, ErrUnterminatedNumber
	}
	if c >= '0' && c <= '9' {
		return uint64(c-'0') + 1, negative, nil
	}

	var v uint64
	for {
		switch {
		case c == '@':
			return v, negative, nil
		case c >= 'A' && c <= 'P':
			if v > math.MaxUint64>>4 {
				return 0, negative, ErrNumberOverflow
			}
			v = v<<4 | uint64(c-'A')
		default:
			return 0, negative, ErrInvalidNumeric
		}
		if c, err = s.Bump(); err != nil {
			return 0, negative, ErrUnterminatedNumber
		}
	}
}

// Unsigned reads a non-negative Number.
func (s *Scanner) Unsigned() (uint64, error) {
	v, negative, err := s.Number()
	if err != nil {
		return 0, err
	}
	if negative {
		return 0, ErrInvalidNumeric
	}
	return v, nil
}

// Signed reads a Number that must fit in an int64.
func (s *Scanner) Signed() (int64, error) {
	v, negative, err := s.Number()
	if err != nil {
		return 0, err
	}
	if v > math.MaxInt64 {
		return 0, ErrNumberOverflow
	}
	if negative {
		return -int64(v), nil
	}
	return int64(v), nil
}

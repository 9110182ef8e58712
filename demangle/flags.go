package demangle

import (
	"fmt"
	"strings"
)

// Flags controls which parts of a declaration are rendered. The zero value
// renders everything.
type Flags uint32

const (
	// NoCallingConvention omits __cdecl, __stdcall and friends.
	NoCallingConvention Flags = 1 << iota
	// NoTagSpecifier omits class/struct/union/enum before type names.
	NoTagSpecifier
	// NoAccessSpecifier omits public:/protected:/private:.
	NoAccessSpecifier
	// NoMemberType omits static, virtual and extern "C".
	NoMemberType
	// NoReturnType omits function return types.
	NoReturnType
	// NoVariableType omits the type of data symbols.
	NoVariableType
	// NoThisType omits cv- and ref-qualifiers of the implicit this.
	NoThisType
	// NoLeadingUnderscores renders __cdecl as cdecl, __restrict as restrict.
	NoLeadingUnderscores
	// NoMSKeywords drops Microsoft keywords such as __cdecl and __restrict.
	NoMSKeywords
	// NameOnly renders only the qualified name of the symbol.
	NameOnly
	// NoArguments omits the parameter list of the symbol's own signature.
	NoArguments
	// LegacyTemplateSpacing renders nested template closers as ">>".
	LegacyTemplateSpacing
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{NoCallingConvention, "no-calling-convention"},
	{NoTagSpecifier, "no-tag-specifier"},
	{NoAccessSpecifier, "no-access-specifier"},
	{NoMemberType, "no-member-type"},
	{NoReturnType, "no-return-type"},
	{NoVariableType, "no-variable-type"},
	{NoThisType, "no-this-type"},
	{NoLeadingUnderscores, "no-leading-underscores"},
	{NoMSKeywords, "no-ms-keywords"},
	{NameOnly, "name-only"},
	{NoArguments, "no-arguments"},
	{LegacyTemplateSpacing, "legacy-template-spacing"},
}

// Has reports whether every bit of o is set.
func (f Flags) Has(o Flags) bool {
	return f&o == o
}

func (f Flags) String() string {
	if f == 0 {
		return "default"
	}
	var parts []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			parts = append(parts, fn.name)
			f &^= fn.flag
		}
	}
	if f != 0 {
		parts = append(parts, fmt.Sprintf("0x%x", uint32(f)))
	}
	return strings.Join(parts, "|")
}

// FlagNames lists the kebab-case name of every flag in bit order.
func FlagNames() []string {
	names := make([]string, len(flagNames))
	for i, fn := range flagNames {
		names[i] = fn.name
	}
	return names
}

// ParseFlag looks up a single flag by its kebab-case name.
func ParseFlag(name string) (Flags, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, fn := range flagNames {
		if fn.name == name {
			return fn.flag, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, name)
}

// ParseFlags ORs together the named flags.
func ParseFlags(names []string) (Flags, error) {
	var f Flags
	for _, name := range names {
		v, err := ParseFlag(name)
		if err != nil {
			return 0, err
		}
		f |= v
	}
	return f, nil
}

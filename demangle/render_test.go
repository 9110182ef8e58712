package demangle

import (
	"strings"
	"testing"
)

func TestRenderFlags(t *testing.T) {
	tests := []struct {
		input string
		flags Flags
		want  string
	}{
		{"?func@MyClass@@UEAAHHH@Z", 0, "public: virtual int __cdecl MyClass::func(int, int)"},
		{"?func@MyClass@@UEAAHHH@Z", NoCallingConvention, "public: virtual int MyClass::func(int, int)"},
		{"?func@MyClass@@UEAAHHH@Z", NoReturnType, "public: virtual __cdecl MyClass::func(int, int)"},
		{"?func@MyClass@@UEAAHHH@Z", NoAccessSpecifier, "virtual int __cdecl MyClass::func(int, int)"},
		{"?func@MyClass@@UEAAHHH@Z", NoMemberType, "public: int __cdecl MyClass::func(int, int)"},
		{"?func@MyClass@@UEAAHHH@Z", NoVariableType, "public: virtual int __cdecl MyClass::func(int, int)"},
		{"?func@MyClass@@UEAAHHH@Z", NoArguments, "public: virtual int __cdecl MyClass::func"},
		{"?func@MyClass@@UEAAHHH@Z", NameOnly, "MyClass::func"},

		{"?array2d@@3PAY09HA", NoVariableType, "array2d"},
		{"?a@abc@@3PAY09HA", NoVariableType, "abc::a"},
		{"?x@@3PEAEEA", NoVariableType, "x"},
		{"?x@@3PEAEEA", NameOnly, "x"},

		{"?x@@3PEAVty@@EA", NoTagSpecifier, "ty *x"},
		{"?x@@3V?$A@V?$B@H@@@@A", NoTagSpecifier, "A<B<int> > x"},

		{"?world@hello@@QEDAXXZ", NoThisType, "public: void __cdecl hello::world(void)"},
		{"?world@hello@@QEDAXXZ", NameOnly, "hello::world"},

		{"?foo_piad@@YAXPIAD@Z", NoLeadingUnderscores, "void cdecl foo_piad(char *restrict)"},
		{"?unaligned_foo5@@YAXPIFAH@Z", NoLeadingUnderscores, "void cdecl unaligned_foo5(int unaligned *restrict)"},
		{"?beta@@YI_N_J_W@Z", NoLeadingUnderscores, "bool fastcall beta(__int64, wchar_t)"},
		{"?f5@@YCXXZ", NoLeadingUnderscores, "void pascal f5(void)"},
		{"?j@@3P6GHCE@ZA", NoLeadingUnderscores, "int (stdcall *j)(signed char, unsigned char)"},
		{"?vector_func@@YQXXZ", NoLeadingUnderscores, "void vectorcall vector_func(void)"},

		{"?f@@YAXPEIFAH@Z", NoMSKeywords, "void f(int *)"},
		{"?j@@3P6GHCE@ZA", NoMSKeywords, "int (*j)(signed char, unsigned char)"},

		{"??_9Base@@$B7AA", NameOnly, "Base::`vcall'{8}"},
		{"??_7Base@@6B@", NameOnly, "Base::`vftable'"},

		{"?x@@3V?$A@V?$B@H@@@@A", LegacyTemplateSpacing, "class A<class B<int>> x"},
	}

	for _, tt := range tests {
		t.Run(tt.input+"/"+tt.flags.String(), func(t *testing.T) {
			res, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) failed: %v", tt.input, err)
			}
			if got := Render(res.Symbol, tt.flags); got != tt.want {
				t.Fatalf("Render(%q, %v) mismatch:\n got %q\nwant %q", tt.input, tt.flags, got, tt.want)
			}
		})
	}
}

// Symbols nested in template arguments and local scopes keep their full
// form when the outer symbol is rendered by name.
func TestRenderNameOnlyOuterSymbolOnly(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"??_B?1??getS@@YAAAUS@@XZ@51", "`struct S & __cdecl getS(void)'::`2'::`local static guard'{2}"},
		{"?Zoo@@3U?$Foo@$1??$x@H@@3HA$1?1@3HA@@A", "Zoo"},
	}
	for _, tt := range tests {
		got, err := Demangle(tt.input, NameOnly)
		if err != nil {
			t.Fatalf("Demangle(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Fatalf("Demangle(%q, NameOnly) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

var callingConventionInputs = []string{
	"?world@@YA?AUhello@@XZ",
	"?func@MyClass@@UEAAHHH@Z",
	"??0klass@@QEAA@XZ",
	"??BOps@@QAEHXZ",
	"?x@@3P6AHP6AHM@Z0@ZEA",
	"?j@@3P6GHCE@ZA",
	"?beta@@YI_N_J_W@Z",
	"??_9Base@@$B7AA",
	"??__E?i@C@@0HA@@YAXXZ",
	"??_B?1??getS@@YAAAUS@@XZ@51",
	"?x@@YAXMHZZ",
}

func TestRenderNoCallingConventionRemovesOnlyKeyword(t *testing.T) {
	keywords := []string{"__cdecl ", "__thiscall ", "__stdcall ", "__fastcall "}
	for _, in := range callingConventionInputs {
		res, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", in, err)
		}
		full := Render(res.Symbol, 0)
		want := full
		for _, kw := range keywords {
			want = strings.ReplaceAll(want, kw, "")
		}
		if want == full {
			t.Fatalf("%q rendered without a calling convention: %q", in, full)
		}
		if got := Render(res.Symbol, NoCallingConvention); got != want {
			t.Fatalf("Render(%q, NoCallingConvention) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderTemplateClosersDoNotMerge(t *testing.T) {
	inputs := []string{
		"?x@@3V?$A@V?$B@H@@@@A",
		"?x@@3V?$A@V?$B@V?$C@H@@@@@@A",
		"?x@@3PEAV?$A@U?$B@H@@@@EA",
	}
	for _, in := range inputs {
		res, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", in, err)
		}
		if got := Render(res.Symbol, 0); strings.Contains(got, ">>") {
			t.Fatalf("Render(%q) = %q contains >>", in, got)
		}
		if got := Render(res.Symbol, LegacyTemplateSpacing); !strings.Contains(got, ">>") {
			t.Fatalf("Render(%q, LegacyTemplateSpacing) = %q lacks >>", in, got)
		}
	}
}

func TestRenderNodeFragments(t *testing.T) {
	res, err := Parse("?x@@3PEAV?$klass@HH@ns@@EA")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	v := res.Symbol.(*VariableSymbol)
	ptr, ok := v.Type.(*PointerType)
	if !ok {
		t.Fatalf("Type is %T, want *PointerType", v.Type)
	}
	if got, want := RenderNode(ptr, 0), "class ns::klass<int, int> *"; got != want {
		t.Fatalf("RenderNode(pointer) = %q, want %q", got, want)
	}
	if got, want := ptr.Pointee.String(), "class ns::klass<int, int>"; got != want {
		t.Fatalf("pointee.String() = %q, want %q", got, want)
	}
	if got, want := RenderNode(ptr.Pointee, NoTagSpecifier), "ns::klass<int, int>"; got != want {
		t.Fatalf("RenderNode(pointee, NoTagSpecifier) = %q, want %q", got, want)
	}
	if got := Render(nil, 0); got != "" {
		t.Fatalf("Render(nil) = %q", got)
	}
}

func TestRenderStandaloneFunctionType(t *testing.T) {
	res, err := Parse("?x@@3P6AHMNH@ZEA")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	sig := res.Symbol.(*VariableSymbol).Type.(*PointerType).Pointee
	if got, want := sig.String(), "int __cdecl(float, double, int)"; got != want {
		t.Fatalf("signature = %q, want %q", got, want)
	}
}

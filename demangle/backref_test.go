package demangle

import (
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNameTableCapacity(t *testing.T) {
	var tab nameTable
	for i := 0; i < maxBackrefs; i++ {
		key := "n" + strconv.Itoa(i)
		if slot := tab.insert(key, &NamedIdentifier{Name: key}); slot != i {
			t.Fatalf("insert(%q) = %d, want %d", key, slot, i)
		}
	}
	if !tab.full() || tab.len() != maxBackrefs {
		t.Fatalf("table not full after %d inserts (len %d)", maxBackrefs, tab.len())
	}
	if slot := tab.insert("extra", &NamedIdentifier{Name: "extra"}); slot != -1 {
		t.Fatalf("insert into full table = %d, want -1", slot)
	}
	if tab.contains("extra") || tab.len() != maxBackrefs {
		t.Fatalf("full table accepted a new entry")
	}
	// A duplicate still resolves to its original slot.
	if slot := tab.insert("n3", &NamedIdentifier{Name: "other"}); slot != 3 {
		t.Fatalf("insert(duplicate) = %d, want 3", slot)
	}
	id, ok := tab.resolve(3)
	if !ok || id.(*NamedIdentifier).Name != "n3" {
		t.Fatalf("resolve(3) = %v, %v", id, ok)
	}
}

func TestNameTableResolveOutOfRange(t *testing.T) {
	var tab nameTable
	tab.insert("a", &NamedIdentifier{Name: "a"})
	for _, i := range []int{-1, 1, 9, 10} {
		if _, ok := tab.resolve(i); ok {
			t.Fatalf("resolve(%d) succeeded on a table of length 1", i)
		}
	}
}

func TestTypeTableCapacity(t *testing.T) {
	var tab typeTable
	for i := 0; i < maxBackrefs; i++ {
		if slot := tab.insert(&PrimitiveType{Primitive: PrimInt}); slot != i {
			t.Fatalf("insert %d = %d, want %d", i, slot, i)
		}
	}
	if slot := tab.insert(&PrimitiveType{Primitive: PrimBool}); slot != -1 {
		t.Fatalf("insert into full table = %d, want -1", slot)
	}
	if _, ok := tab.resolve(maxBackrefs); ok {
		t.Fatalf("resolve(%d) succeeded", maxBackrefs)
	}
}

// Eleven distinct names: the eleventh parses but is not cached, so
// digits only reach the first ten.
func TestBackrefsOverflowStillParses(t *testing.T) {
	scopes := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"}
	input := "?x@" + strings.Join(scopes, "@") + "@k@@3HA"
	got, err := Demangle(input, 0)
	if err != nil {
		t.Fatalf("Demangle(%q) failed: %v", input, err)
	}
	if want := "int k::i::h::g::f::e::d::c::b::a::x"; got != want {
		t.Fatalf("Demangle = %q, want %q", got, want)
	}

	// Slot 9 holds i; the later k never entered the table.
	got, err = Demangle("?y@"+strings.Join(scopes, "@")+"@k@@3PEAV9@EA", 0)
	if err != nil {
		t.Fatalf("Demangle failed: %v", err)
	}
	if want := "class i *k::i::h::g::f::e::d::c::b::a::y"; got != want {
		t.Fatalf("Demangle = %q, want %q", got, want)
	}
}

func TestBackrefsReuseParsedComponents(t *testing.T) {
	res, err := Parse("?f@@YAXPEAUS@@0@Z")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	sig := res.Symbol.(*FunctionSymbol).Signature
	if len(sig.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(sig.Params))
	}
	if sig.Params[0] != sig.Params[1] {
		t.Fatalf("parameter back-reference did not reuse the parsed type")
	}

	var kinds []NodeKind
	for _, p := range sig.Params {
		kinds = append(kinds, p.Kind())
	}
	want := []NodeKind{NodeKindPointerType, NodeKindPointerType}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Fatalf("param kinds mismatch (-want +got):\n%s", diff)
	}
}

package demangle

import (
	"errors"
	"math/rand"
	"testing"
)

var fuzzSeeds = []string{
	"?world@@YA?AUhello@@XZ",
	"?x@@3PEAY1NKM@5HEA",
	"?x@@3P6AHP6AHM@Z0@ZEA",
	"?x@ns@@3PEAV?$klass@HH@1@EA",
	"??4klass@@QEAAAEBV0@AEBV0@@Z",
	"?Zoo@@3U?$Foo@$1??$x@H@@3HA$1?1@3HA@@A",
	"??_B?1??getS@@YAAAUS@@XZ@51",
	"??__E?i@C@@0HA@@YAXXZ",
	"??_R1A@?0A@EA@Base@@8",
	"??_C@_1M@ABCDEFGH@?$AAh?$AAe?$AAl?$AAl?$AAo?$AA?$AA@",
	"??_C@_0CA@ABCDEFGH@abcdefghijklmnop@",
	"??_9Base@@$B7AA",
	"?f@@$$J0YAXXZ",
	"?f@C@@$4PPPPPPPM@A@EAAXXZ",
	"?x@@3$$QEAHEA",
	"?x@@3P8C@@EAAXXZEQ1@",
	".?AUBase@@",
	".text",
}

var typeinfoDemangler = NewDemangler(WithTypeinfoNames())

// checkError fails unless err is a ParseError carrying exactly one sentinel
// and an offset inside in.
func checkError(t *testing.T, in, out string, err error) {
	t.Helper()
	if out != "" {
		t.Fatalf("Demangle(%q) returned %q alongside error %v", in, out, err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Demangle(%q) error %T is not a *ParseError", in, err)
	}
	if pe.Offset < 0 || pe.Offset > len(in) {
		t.Fatalf("Demangle(%q) offset %d outside input", in, pe.Offset)
	}
	matched := 0
	for _, s := range sentinelsByName {
		if errors.Is(err, s) {
			matched++
		}
	}
	if matched != 1 {
		t.Fatalf("Demangle(%q) error %v matches %d sentinels", in, err, matched)
	}
}

// checkTotal demangles in and fails unless the call either succeeds or
// returns a well-formed ParseError. Input not starting with '?' must come
// back unchanged.
func checkTotal(t *testing.T, in string) {
	t.Helper()
	if out, err := typeinfoDemangler.Demangle(in); err != nil {
		checkError(t, in, out, err)
	}

	out, err := Demangle(in, 0)
	if len(in) == 0 || in[0] != '?' {
		if err != nil || out != in {
			t.Fatalf("Demangle(%q) = %q, %v, want passthrough", in, out, err)
		}
	}
	if err != nil {
		checkError(t, in, out, err)
		return
	}

	again, err := Demangle(in, 0)
	if err != nil || again != out {
		t.Fatalf("Demangle(%q) not deterministic: %q then %q, %v", in, out, again, err)
	}

	res, err := Parse(in)
	if err != nil {
		t.Fatalf("Parse(%q) failed after Demangle succeeded: %v", in, err)
	}
	for _, flags := range []Flags{NameOnly, NoArguments, ^Flags(0)} {
		Render(res.Symbol, flags)
	}
}

func allSeeds(t *testing.T) []string {
	seeds := append([]string(nil), fuzzSeeds...)
	for _, e := range loadCorpus(t) {
		seeds = append(seeds, e.Input)
	}
	return seeds
}

func TestTruncatedInputs(t *testing.T) {
	for _, seed := range allSeeds(t) {
		for i := 0; i <= len(seed); i++ {
			checkTotal(t, seed[:i])
		}
	}
}

var mutationBytes = []byte("?@$0129AEPQYZ_ \x00\xff")

func TestMutatedInputs(t *testing.T) {
	for _, seed := range allSeeds(t) {
		for i := 0; i < len(seed); i++ {
			for _, c := range mutationBytes {
				b := []byte(seed)
				b[i] = c
				checkTotal(t, string(b))
			}
			// deletion
			checkTotal(t, seed[:i]+seed[i+1:])
		}
	}
}

func TestRandomMutations(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seeds := allSeeds(t)
	for n := 0; n < 5000; n++ {
		b := []byte(seeds[rng.Intn(len(seeds))])
		for k := rng.Intn(4) + 1; k > 0 && len(b) > 0; k-- {
			switch rng.Intn(3) {
			case 0:
				b[rng.Intn(len(b))] = byte(rng.Intn(256))
			case 1:
				b = b[:rng.Intn(len(b)+1)]
			case 2:
				i := rng.Intn(len(b) + 1)
				b = append(b[:i], append([]byte{mutationBytes[rng.Intn(len(mutationBytes))]}, b[i:]...)...)
			}
		}
		checkTotal(t, string(b))
	}
}

func FuzzDemangle(f *testing.F) {
	for _, s := range fuzzSeeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, in string) {
		checkTotal(t, in)
	})
}

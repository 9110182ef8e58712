package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// resetCLI clears flag values left behind by an earlier Execute.
func resetCLI() {
	for _, on := range render.set {
		*on = false
	}
	outputFile, configFile = "", ""
	typeinfoNames = false
	demangleShowMangled = false
	batchSkipErrors, batchShowMangled, batchLimit = false, false, 0
	dumpFormat = "text"
	profile = &Profile{}
}

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetCLI()
	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	err := execute()
	return stdout.String(), stderr.String(), err
}

func TestDemangleCommand(t *testing.T) {
	out, _, err := runCLI(t, "", "demangle", "--no-calling-convention", "?func@MyClass@@UEAAHHH@Z", "plain_c_symbol")
	if err != nil {
		t.Fatalf("demangle failed: %v", err)
	}
	want := "public: virtual int MyClass::func(int, int)\nplain_c_symbol\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestDemangleCommandError(t *testing.T) {
	_, _, err := runCLI(t, "", "demangle", "?1@@3HA")
	if err == nil || !strings.Contains(err.Error(), "?1@@3HA") {
		t.Fatalf("error = %v, want one naming the input", err)
	}
}

func TestBatchSkipErrors(t *testing.T) {
	in := "?x@@3HA\n\n?1@@3HA\n  plain_c_symbol  \n"
	out, stderr, err := runCLI(t, in, "batch", "--skip-errors", "--show-mangled")
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if want := "?x@@3HA\tint x\nplain_c_symbol\tplain_c_symbol\n"; out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
	if !strings.Contains(stderr, "error: ?1@@3HA: ") {
		t.Fatalf("stderr = %q, want a per-line error", stderr)
	}
}

func TestBatchStopsOnError(t *testing.T) {
	out, stderr, err := runCLI(t, "?x@@3HA\n?1@@3HA\n?x@@3HA\n", "batch")
	if err == nil {
		t.Fatalf("batch succeeded, want error")
	}
	if out != "int x\n" {
		t.Fatalf("output = %q, want only the first result", out)
	}
	if n := strings.Count(stderr, "?1@@3HA"); n != 1 {
		t.Fatalf("failure reported %d times in stderr %q, want once", n, stderr)
	}
}

func TestBatchLimitAndFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "names.txt")
	if err := os.WriteFile(path, []byte("?x@@3HA\n?x@ns@@3HA\n?y@@3HA\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLI(t, "", "batch", "-n", "2", path)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	if want := "int x\nint ns::x\n"; out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestOutputFileClosedOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	_, _, err := runCLI(t, "", "-o", path, "demangle", "?x@@3HA", "?1@@3HA")
	if err == nil {
		t.Fatalf("demangle succeeded, want error")
	}
	f, ok := output.(*os.File)
	if !ok {
		t.Fatalf("output is %T, want *os.File", output)
	}
	if err := f.Close(); !errors.Is(err, os.ErrClosed) {
		t.Fatalf("output file still open after failed run (Close = %v)", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "int x\n" {
		t.Fatalf("output file = %q, want %q", data, "int x\n")
	}
}

func TestTypeinfoNamesFlag(t *testing.T) {
	out, _, err := runCLI(t, "", "demangle", ".?AUBase@@", ".text")
	if err != nil {
		t.Fatalf("demangle failed: %v", err)
	}
	if want := ".?AUBase@@\n.text\n"; out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}

	out, _, err = runCLI(t, "", "--typeinfo-names", "demangle", ".?AUBase@@")
	if err != nil {
		t.Fatalf("demangle failed: %v", err)
	}
	if want := "struct Base `RTTI Type Descriptor Name'\n"; out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestConfigProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	if err := os.WriteFile(path, []byte("flags: [name-only]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLI(t, "", "--config", path, "demangle", "?world@hello@@QEDAXXZ")
	if err != nil {
		t.Fatalf("demangle failed: %v", err)
	}
	if out != "hello::world\n" {
		t.Fatalf("output = %q, want %q", out, "hello::world\n")
	}
}

func TestDumpJSON(t *testing.T) {
	out, _, err := runCLI(t, "", "dump", "--format", "json", "?x@@3PEAHEA")
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	var dump SymbolDump
	if err := json.Unmarshal([]byte(out), &dump); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if dump.Demangled != "int *x" || dump.Tree.Kind != "VariableSymbol" {
		t.Fatalf("dump = %+v", dump)
	}
	if len(dump.Tree.Children) != 2 || dump.Tree.Children[0].Text != "int *" {
		t.Fatalf("tree children = %+v", dump.Tree.Children)
	}
}

func TestDumpText(t *testing.T) {
	out, _, err := runCLI(t, "", "dump", "--format", "text", "?x@@3HA")
	if err != nil {
		t.Fatalf("dump failed: %v", err)
	}
	for _, line := range []string{"Demangled: int x", "VariableSymbol: int x", "  PrimitiveType: int", "    NamedIdentifier: x"} {
		if !strings.Contains(out, line+"\n") {
			t.Fatalf("output missing %q:\n%s", line, out)
		}
	}
}

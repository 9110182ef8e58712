package main

import (
	"github.com/skdltmxn/undname-go/demangle"
	"github.com/spf13/pflag"
)

var renderFlagUsage = map[string]string{
	"no-calling-convention":   "omit __cdecl, __stdcall and other calling conventions",
	"no-tag-specifier":        "omit class/struct/union/enum before type names",
	"no-access-specifier":     "omit public:/protected:/private:",
	"no-member-type":          "omit static, virtual and extern \"C\"",
	"no-return-type":          "omit function return types",
	"no-variable-type":        "omit the type of data symbols",
	"no-this-type":            "omit cv- and ref-qualifiers of this",
	"no-leading-underscores":  "print cdecl instead of __cdecl",
	"no-ms-keywords":          "omit Microsoft keywords entirely",
	"name-only":               "print only the qualified name",
	"no-arguments":            "omit the parameter list",
	"legacy-template-spacing": "print >> instead of > > between template closers",
}

// renderFlags holds one boolean command-line flag per demangle.Flags bit.
type renderFlags struct {
	set map[demangle.Flags]*bool
}

func bindRenderFlags(fs *pflag.FlagSet) *renderFlags {
	r := &renderFlags{set: make(map[demangle.Flags]*bool)}
	for _, name := range demangle.FlagNames() {
		f, err := demangle.ParseFlag(name)
		if err != nil {
			panic(err)
		}
		r.set[f] = fs.Bool(name, false, renderFlagUsage[name])
	}
	return r
}

func (r *renderFlags) value() demangle.Flags {
	var flags demangle.Flags
	for f, on := range r.set {
		if *on {
			flags |= f
		}
	}
	return flags
}

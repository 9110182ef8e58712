// Package demangle decodes Microsoft Visual C++ decorated symbol names into
// readable C++ declarations.
//
//	s, err := demangle.Demangle("?world@@YA?AUhello@@XZ", 0)
//	// s == "struct hello __cdecl world(void)"
//
// Input that does not start with '?', such as C symbols or section names, is
// returned unchanged. Parsing and rendering are separate phases: Parse builds
// an AST that Render turns into text under any combination of Flags.
package demangle

// Result is the outcome of a successful Parse.
type Result struct {
	// Symbol is the root of the AST.
	Symbol Symbol
	// Nodes is the number of nodes allocated while parsing.
	Nodes int
}

// String renders the result with default flags.
func (r *Result) String() string {
	return Render(r.Symbol, 0)
}

// Option configures a Demangler.
type Option func(*Demangler)

// WithFlags sets the default rendering flags.
func WithFlags(flags Flags) Option {
	return func(d *Demangler) {
		d.flags = flags
	}
}

// WithMaxNodes bounds the number of AST nodes one parse may allocate.
// Values <= 0 select DefaultMaxNodes.
func WithMaxNodes(n int) Option {
	return func(d *Demangler) {
		if n <= 0 {
			n = DefaultMaxNodes
		}
		d.maxNodes = n
	}
}

// WithTypeinfoNames decodes '.'-prefixed names, the strings stored in RTTI
// type descriptors (".?AUBase@@"). Without it they pass through unchanged.
func WithTypeinfoNames() Option {
	return func(d *Demangler) {
		d.typeinfoNames = true
	}
}

// Demangler holds demangling configuration. It keeps no per-call state and
// is safe for concurrent use.
type Demangler struct {
	flags         Flags
	maxNodes      int
	typeinfoNames bool
}

// NewDemangler creates a Demangler with the given options.
func NewDemangler(opts ...Option) *Demangler {
	d := &Demangler{maxNodes: DefaultMaxNodes}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

var defaultDemangler = NewDemangler()

// Demangle converts a decorated name to its declaration. If the name is
// not decorated, it is returned unchanged.
func Demangle(mangled string, flags Flags) (string, error) {
	return defaultDemangler.render(mangled, flags)
}

// Parse decodes mangled into an AST without rendering it.
func Parse(mangled string) (*Result, error) {
	return defaultDemangler.Parse(mangled)
}

// IsMangled reports whether Demangle and Parse would decode s rather than
// pass it through.
func IsMangled(s string) bool {
	return len(s) > 0 && s[0] == '?'
}

func (dm *Demangler) isMangled(s string) bool {
	if dm.typeinfoNames && len(s) > 0 && s[0] == '.' {
		return true
	}
	return IsMangled(s)
}

// Demangle renders mangled with the configured flags.
func (dm *Demangler) Demangle(mangled string) (string, error) {
	return dm.render(mangled, dm.flags)
}

// Flags returns the configured rendering flags.
func (dm *Demangler) Flags() Flags {
	return dm.flags
}

func (dm *Demangler) render(mangled string, flags Flags) (string, error) {
	if !dm.isMangled(mangled) {
		return mangled, nil
	}
	res, err := dm.Parse(mangled)
	if err != nil {
		return "", err
	}
	return Render(res.Symbol, flags), nil
}

// Parse decodes mangled into an AST. Undecorated input yields a RawSymbol.
func (dm *Demangler) Parse(mangled string) (*Result, error) {
	if !dm.isMangled(mangled) {
		return &Result{Symbol: &RawSymbol{Text: mangled}}, nil
	}

	d := newDemangler(mangled, dm.maxNodes)
	sym, err := d.parse()
	if err != nil {
		return nil, err
	}
	if err := d.measure(sym); err != nil {
		return nil, err
	}
	return &Result{Symbol: sym, Nodes: d.arena.count}, nil
}

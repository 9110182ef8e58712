package demangle

import (
	"errors"

	"github.com/skdltmxn/undname-go/internal/stream"
)

// demangler holds the state of one parse. It is not safe for concurrent
// use and is discarded once the parse returns.
type demangler struct {
	input string
	s     *stream.Scanner
	arena *arena
	refs  backrefs
	depth int
}

func newDemangler(mangled string, maxNodes int) *demangler {
	return &demangler{
		input: mangled,
		s:     stream.NewScanner(mangled),
		arena: newArena(maxNodes),
	}
}

func (d *demangler) fail(sentinel error, msg string) error {
	return d.failAt(d.s.Offset(), sentinel, msg)
}

func (d *demangler) failAt(offset int, sentinel error, msg string) error {
	if offset < 0 {
		offset = 0
	}
	return &ParseError{Offset: offset, Message: msg, Err: sentinel}
}

// wrap converts a scanner or arena error into a ParseError at the current
// offset. Errors that already are ParseErrors pass through.
func (d *demangler) wrap(cause error, msg string) error {
	var pe *ParseError
	if errors.As(cause, &pe) {
		return pe
	}
	return &ParseError{Offset: d.s.Offset(), Message: msg, Err: classify(cause), Cause: cause}
}

func (d *demangler) expect(lit, msg string) error {
	if err := d.s.Expect(lit); err != nil {
		return d.wrap(err, msg)
	}
	return nil
}

func (d *demangler) number(msg string) (uint64, bool, error) {
	v, negative, err := d.s.Number()
	if err != nil {
		return 0, false, d.wrap(err, msg)
	}
	return v, negative, nil
}

func (d *demangler) unsigned(msg string) (uint64, error) {
	v, err := d.s.Unsigned()
	if err != nil {
		return 0, d.wrap(err, msg)
	}
	return v, nil
}

func (d *demangler) signed(msg string) (int64, error) {
	v, err := d.s.Signed()
	if err != nil {
		return 0, d.wrap(err, msg)
	}
	return v, nil
}

func (d *demangler) enter() error {
	d.depth++
	if d.depth > maxDepth {
		return d.fail(ErrInputTooComplex, "nesting too deep")
	}
	return nil
}

func (d *demangler) leave() {
	d.depth--
}

// measure walks the tree under n and fails once more than maxVisits nodes
// have been seen. Shared subtrees are counted at every reference, so this
// bounds the cost of rendering n.
func (d *demangler) measure(n Node) error {
	budget := maxVisits
	if !walk(n, &budget) {
		return d.fail(ErrInputTooComplex, "expansion too large")
	}
	return nil
}

func walk(n Node, budget *int) bool {
	if n == nil {
		return true
	}
	*budget -= 1 + textLen(n)/16
	if *budget < 0 {
		return false
	}
	for _, c := range Children(n) {
		if !walk(c, budget) {
			return false
		}
	}
	return true
}

// textLen is the length of the literal text n carries into the output.
func textLen(n Node) int {
	switch n := n.(type) {
	case *NamedIdentifier:
		return len(n.Name)
	case *LiteralOperatorIdentifier:
		return len(n.Name)
	case *StringLiteralSymbol:
		return len(n.Decoded)
	}
	return 0
}

// parse reads a complete mangled name.
func (d *demangler) parse() (Symbol, error) {
	switch {
	case d.s.HasPrefix("."):
		return d.typeinfoName()
	case d.s.HasPrefix("??@"):
		return d.md5Name()
	}
	return d.parseSymbol()
}

// nestedSymbol reads a symbol embedded in a template argument or local
// scope.
func (d *demangler) nestedSymbol() (Symbol, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()
	return d.parse()
}

func (d *demangler) parseSymbol() (Symbol, error) {
	if err := d.expect("?", "mangled name"); err != nil {
		return nil, err
	}
	sym, ok, err := d.specialIntrinsic()
	if err != nil {
		return nil, err
	}
	if ok {
		return sym, nil
	}
	return d.declarator()
}

// typeinfoName reads .<type>, the string stored in RTTI type descriptors.
func (d *demangler) typeinfoName() (Symbol, error) {
	if err := d.expect(".", "typeinfo name"); err != nil {
		return nil, err
	}
	t, err := d.parseType(qualsResult)
	if err != nil {
		return nil, err
	}
	if !d.s.Empty() {
		return nil, d.fail(ErrMalformedMangledName, "trailing data after typeinfo name")
	}
	v, err := alloc(d.arena, VariableSymbol{Type: t, IsTypeDescriptor: true})
	if err != nil {
		return nil, d.wrap(err, "typeinfo name")
	}
	return v, nil
}

// md5Name reads ??@<hash>@, optionally followed by ??_R4@ for the complete
// object locator of a hashed name. The hash cannot be reversed and is kept
// verbatim.
func (d *demangler) md5Name() (Symbol, error) {
	start := d.s.Offset()
	if err := d.expect("??@", "hashed name"); err != nil {
		return nil, err
	}
	n := d.s.IndexByte('@')
	if n < 0 {
		return nil, d.fail(ErrMalformedMangledName, "unterminated hashed name")
	}
	d.s.Skip(n + 1)
	d.s.Consume("??_R4@")

	text := d.sliceFrom(start)
	id, err := d.newNamed(text)
	if err != nil {
		return nil, err
	}
	qn, err := d.newQualifiedName([]Identifier{id})
	if err != nil {
		return nil, err
	}
	m, err := alloc(d.arena, MD5Symbol{Name: qn})
	if err != nil {
		return nil, d.wrap(err, "hashed name")
	}
	return m, nil
}

// sliceFrom returns the input consumed since offset start.
func (d *demangler) sliceFrom(start int) string {
	return d.input[start:d.s.Offset()]
}

// declarator reads <qualified-name> <symbol-encoding>.
func (d *demangler) declarator() (Symbol, error) {
	name, err := d.fullyQualifiedSymbolName()
	if err != nil {
		return nil, err
	}
	sym, err := d.encodedSymbol(name)
	if err != nil {
		return nil, err
	}

	if conv, ok := name.Unqualified().(*ConversionOperatorIdentifier); ok && conv.Target == nil {
		return nil, d.fail(ErrUnknownIdentifierForm, "conversion operator without a target type")
	}
	return sym, nil
}

func (d *demangler) encodedSymbol(name *QualifiedName) (Symbol, error) {
	c, ok := d.s.Peek()
	if !ok {
		return nil, d.fail(ErrMalformedMangledName, "expected symbol encoding")
	}

	if c >= '0' && c <= '4' {
		d.s.Skip(1)
		v, err := d.variableEncoding(StoragePrivateStatic + StorageClass(c-'0'))
		if err != nil {
			return nil, err
		}
		v.Name = name
		return v, nil
	}

	fn, err := d.functionEncoding()
	if err != nil {
		return nil, err
	}
	fn.Name = name
	if conv, ok := name.Unqualified().(*ConversionOperatorIdentifier); ok {
		conv.Target = fn.Signature.Return
	}
	return fn, nil
}

// variableEncoding reads <type> <cvr-qualifiers>. Pointers carry the
// qualifiers of their pointee instead.
func (d *demangler) variableEncoding(storage StorageClass) (*VariableSymbol, error) {
	t, err := d.parseType(qualsDrop)
	if err != nil {
		return nil, err
	}

	if p, ok := t.(*PointerType); ok {
		p.Quals |= d.pointerExtQualifiers()
		q, _, err := d.qualifiers()
		if err != nil {
			return nil, err
		}
		if p.ClassParent != nil {
			if _, err := d.fullyQualifiedTypeName(); err != nil {
				return nil, err
			}
		}
		addQualifiers(p.Pointee, q)
	} else {
		q, _, err := d.qualifiers()
		if err != nil {
			return nil, err
		}
		t.setQualifiers(q)
	}

	v, err := alloc(d.arena, VariableSymbol{Storage: storage, Type: t})
	if err != nil {
		return nil, d.wrap(err, "variable")
	}
	return v, nil
}

// functionEncoding reads [$$J0] <function-class> [<this-adjustment>]
// <function-type>.
func (d *demangler) functionEncoding() (*FunctionSymbol, error) {
	var extra FuncClass
	if d.s.Consume("$$J0") {
		extra = FuncExternC
	}
	if d.s.Empty() {
		return nil, d.fail(ErrMalformedMangledName, "expected function class")
	}

	class, err := d.functionClass()
	if err != nil {
		return nil, err
	}
	class |= extra

	var thunk *ThisAdjustor
	switch {
	case class.Has(FuncStaticThisAdjust):
		thunk = &ThisAdjustor{}
		off, err := d.signed("adjustor offset")
		if err != nil {
			return nil, err
		}
		thunk.StaticOffset = uint32(off)
	case class.Has(FuncVirtualThisAdjust):
		thunk = &ThisAdjustor{}
		if class.Has(FuncVirtualThisAdjustEx) {
			vbptr, err := d.signed("vbptr offset")
			if err != nil {
				return nil, err
			}
			vboff, err := d.signed("vboffset offset")
			if err != nil {
				return nil, err
			}
			thunk.VBPtrOffset = int32(vbptr)
			thunk.VBOffsetOffset = int32(vboff)
		}
		vtordisp, err := d.signed("vtordisp offset")
		if err != nil {
			return nil, err
		}
		static, err := d.signed("adjustor offset")
		if err != nil {
			return nil, err
		}
		thunk.VtorDispOffset = int32(vtordisp)
		thunk.StaticOffset = uint32(static)
	}

	var sig *FunctionSignature
	if class.Has(FuncNoParameterList) {
		// extern "C" functions whose signature was not mangled
		sig, err = place(d.arena, &d.arena.sigs, FunctionSignature{})
		if err != nil {
			return nil, d.wrap(err, "function type")
		}
	} else {
		hasThis := class&(FuncGlobal|FuncStatic) == 0
		if sig, err = d.functionType(hasThis); err != nil {
			return nil, err
		}
	}
	sig.Class = class
	sig.Thunk = thunk

	fn, err := alloc(d.arena, FunctionSymbol{Signature: sig})
	if err != nil {
		return nil, d.wrap(err, "function")
	}
	return fn, nil
}

var functionClassCodes = map[byte]FuncClass{
	'9': FuncExternC | FuncNoParameterList,
	'A': FuncPrivate,
	'B': FuncPrivate | FuncFar,
	'C': FuncPrivate | FuncStatic,
	'D': FuncPrivate | FuncStatic | FuncFar,
	'E': FuncPrivate | FuncVirtual,
	'F': FuncPrivate | FuncVirtual | FuncFar,
	'G': FuncPrivate | FuncStaticThisAdjust,
	'H': FuncPrivate | FuncStaticThisAdjust | FuncFar,
	'I': FuncProtected,
	'J': FuncProtected | FuncFar,
	'K': FuncProtected | FuncStatic,
	'L': FuncProtected | FuncStatic | FuncFar,
	'M': FuncProtected | FuncVirtual,
	'N': FuncProtected | FuncVirtual | FuncFar,
	'O': FuncProtected | FuncVirtual | FuncStaticThisAdjust,
	'P': FuncProtected | FuncVirtual | FuncStaticThisAdjust | FuncFar,
	'Q': FuncPublic,
	'R': FuncPublic | FuncFar,
	'S': FuncPublic | FuncStatic,
	'T': FuncPublic | FuncStatic | FuncFar,
	'U': FuncPublic | FuncVirtual,
	'V': FuncPublic | FuncVirtual | FuncFar,
	'W': FuncPublic | FuncVirtual | FuncStaticThisAdjust,
	'X': FuncPublic | FuncVirtual | FuncStaticThisAdjust | FuncFar,
	'Y': FuncGlobal,
	'Z': FuncGlobal | FuncFar,
}

var vtordispClassCodes = map[byte]FuncClass{
	'0': FuncPrivate | FuncVirtual,
	'1': FuncPrivate | FuncVirtual | FuncFar,
	'2': FuncProtected | FuncVirtual,
	'3': FuncProtected | FuncVirtual | FuncFar,
	'4': FuncPublic | FuncVirtual,
	'5': FuncPublic | FuncVirtual | FuncFar,
}

func (d *demangler) functionClass() (FuncClass, error) {
	c, err := d.s.Bump()
	if err != nil {
		return 0, d.wrap(err, "expected function class")
	}
	if class, ok := functionClassCodes[c]; ok {
		return class, nil
	}
	if c != '$' {
		return 0, d.failAt(d.s.Offset()-1, ErrUnsupportedSymbolKind, "unknown function class")
	}

	adjust := FuncVirtualThisAdjust
	if d.s.ConsumeByte('R') {
		adjust |= FuncVirtualThisAdjustEx
	}
	if c, err = d.s.Bump(); err != nil {
		return 0, d.wrap(err, "expected vtordisp function class")
	}
	class, ok := vtordispClassCodes[c]
	if !ok {
		return 0, d.failAt(d.s.Offset()-1, ErrUnsupportedSymbolKind, "unknown vtordisp function class")
	}
	return class | adjust, nil
}

package demangle

import "math"

// specialKind identifies a compiler-generated symbol introduced by ??_.
type specialKind int

const (
	specialNone specialKind = iota
	specialVftable
	specialVbtable
	specialVcallThunk
	specialTypeof
	specialLocalStaticGuard
	specialStringLiteral
	specialUdtReturning
	specialRttiTypeDescriptor
	specialRttiBaseClassDescriptor
	specialRttiBaseClassArray
	specialRttiClassHierarchyDescriptor
	specialRttiCompleteObjectLocator
	specialLocalVftable
	specialDynamicInitializer
	specialDynamicAtexitDestructor
	specialLocalStaticThreadGuard
)

// specialCodes is searched in order; no code is a prefix of a later one.
var specialCodes = []struct {
	code string
	kind specialKind
}{
	{"?_7", specialVftable},
	{"?_8", specialVbtable},
	{"?_9", specialVcallThunk},
	{"?_A", specialTypeof},
	{"?_B", specialLocalStaticGuard},
	{"?_C", specialStringLiteral},
	{"?_P", specialUdtReturning},
	{"?_R0", specialRttiTypeDescriptor},
	{"?_R1", specialRttiBaseClassDescriptor},
	{"?_R2", specialRttiBaseClassArray},
	{"?_R3", specialRttiClassHierarchyDescriptor},
	{"?_R4", specialRttiCompleteObjectLocator},
	{"?_S", specialLocalVftable},
	{"?__E", specialDynamicInitializer},
	{"?__F", specialDynamicAtexitDestructor},
	{"?__J", specialLocalStaticThreadGuard},
}

func (d *demangler) specialKind() specialKind {
	for _, sc := range specialCodes {
		if d.s.Consume(sc.code) {
			return sc.kind
		}
	}
	return specialNone
}

// specialIntrinsic parses the symbol following a special code. ok is false
// when the input does not start with one.
func (d *demangler) specialIntrinsic() (sym Symbol, ok bool, err error) {
	start := d.s.Offset()
	kind := d.specialKind()

	switch kind {
	case specialNone:
		return nil, false, nil
	case specialStringLiteral:
		sym, err = d.stringLiteral()
	case specialVftable:
		sym, err = d.specialTable(SpecialVftable)
	case specialVbtable:
		sym, err = d.specialTable(SpecialVbtable)
	case specialLocalVftable:
		sym, err = d.specialTable(SpecialLocalVftable)
	case specialRttiCompleteObjectLocator:
		sym, err = d.specialTable(SpecialRttiCompleteObjectLocator)
	case specialVcallThunk:
		sym, err = d.vcallThunk()
	case specialLocalStaticGuard:
		sym, err = d.localStaticGuard(false)
	case specialLocalStaticThreadGuard:
		sym, err = d.localStaticGuard(true)
	case specialRttiTypeDescriptor:
		sym, err = d.rttiTypeDescriptor()
	case specialRttiBaseClassArray:
		sym, err = d.untypedVariable(SpecialRttiBaseClassArray)
	case specialRttiClassHierarchyDescriptor:
		sym, err = d.untypedVariable(SpecialRttiClassHierarchyDescriptor)
	case specialRttiBaseClassDescriptor:
		sym, err = d.rttiBaseClassDescriptor()
	case specialDynamicInitializer:
		sym, err = d.initFiniStub(false)
	case specialDynamicAtexitDestructor:
		sym, err = d.initFiniStub(true)
	default:
		// typeof and UDT-returning specials have no known producer.
		return nil, true, d.failAt(start, ErrUnsupportedSymbolKind, "unsupported special symbol")
	}
	if err != nil {
		return nil, true, err
	}
	return sym, true, nil
}

func (d *demangler) newSpecialName(kind SpecialNameKind) (*SpecialName, error) {
	sn, err := alloc(d.arena, SpecialName{Special: kind})
	if err != nil {
		return nil, d.wrap(err, "special name")
	}
	return sn, nil
}

// specialTable reads <scope> {6|7} <qualifiers> [<target> | @].
func (d *demangler) specialTable(kind SpecialNameKind) (Symbol, error) {
	sn, err := d.newSpecialName(kind)
	if err != nil {
		return nil, err
	}
	name, err := d.nameScopeChain(sn)
	if err != nil {
		return nil, err
	}

	c, err := d.s.Bump()
	if err != nil {
		return nil, d.wrap(err, "expected table storage class")
	}
	if c != '6' && c != '7' {
		return nil, d.failAt(d.s.Offset()-1, ErrUnsupportedSymbolKind, "unknown table storage class")
	}

	quals, _, err := d.qualifiers()
	if err != nil {
		return nil, err
	}
	table := SpecialTableSymbol{Name: name, Quals: quals}
	if !d.s.ConsumeByte('@') {
		if table.Target, err = d.fullyQualifiedTypeName(); err != nil {
			return nil, err
		}
	}

	sym, err := alloc(d.arena, table)
	if err != nil {
		return nil, d.wrap(err, "special table")
	}
	return sym, nil
}

// localStaticGuard reads <scope> {4IA|5} [<index>].
func (d *demangler) localStaticGuard(thread bool) (Symbol, error) {
	id, err := alloc(d.arena, LocalStaticGuardIdentifier{IsThread: thread})
	if err != nil {
		return nil, d.wrap(err, "local static guard")
	}
	name, err := d.nameScopeChain(id)
	if err != nil {
		return nil, err
	}

	guard := LocalStaticGuardVariable{Name: name}
	switch {
	case d.s.Consume("4IA"):
	case d.s.ConsumeByte('5'):
		guard.IsVisible = true
	case d.s.Empty():
		return nil, d.fail(ErrMalformedMangledName, "expected guard visibility")
	default:
		return nil, d.fail(ErrUnsupportedSymbolKind, "unknown guard visibility")
	}

	if !d.s.Empty() {
		index, err := d.unsigned("guard scope index")
		if err != nil {
			return nil, err
		}
		if index > math.MaxUint32 {
			return nil, d.fail(ErrMalformedNumber, "guard scope index out of range")
		}
		id.ScopeIndex = uint32(index)
	}

	sym, err := alloc(d.arena, guard)
	if err != nil {
		return nil, d.wrap(err, "local static guard")
	}
	return sym, nil
}

// rttiTypeDescriptor reads <type> @8, which must end the input.
func (d *demangler) rttiTypeDescriptor() (Symbol, error) {
	t, err := d.parseType(qualsResult)
	if err != nil {
		return nil, err
	}
	if err := d.expect("@8", "type descriptor terminator"); err != nil {
		return nil, err
	}
	if !d.s.Empty() {
		return nil, d.fail(ErrMalformedMangledName, "trailing data after type descriptor")
	}

	sn, err := d.newSpecialName(SpecialRttiTypeDescriptor)
	if err != nil {
		return nil, err
	}
	name, err := d.newQualifiedName([]Identifier{sn})
	if err != nil {
		return nil, err
	}
	v, err := alloc(d.arena, VariableSymbol{Name: name, Type: t})
	if err != nil {
		return nil, d.wrap(err, "type descriptor")
	}
	return v, nil
}

// untypedVariable reads <scope> 8.
func (d *demangler) untypedVariable(kind SpecialNameKind) (Symbol, error) {
	sn, err := d.newSpecialName(kind)
	if err != nil {
		return nil, err
	}
	name, err := d.nameScopeChain(sn)
	if err != nil {
		return nil, err
	}
	if err := d.expect("8", "RTTI terminator"); err != nil {
		return nil, err
	}
	v, err := alloc(d.arena, VariableSymbol{Name: name})
	if err != nil {
		return nil, d.wrap(err, "RTTI variable")
	}
	return v, nil
}

// rttiBaseClassDescriptor reads <nv> <vbptr> <vbtable> <flags> <scope> [8].
func (d *demangler) rttiBaseClassDescriptor() (Symbol, error) {
	nv, err := d.unsigned("non-virtual offset")
	if err != nil {
		return nil, err
	}
	vbptr, err := d.signed("vbptr offset")
	if err != nil {
		return nil, err
	}
	vbtable, err := d.unsigned("vbtable offset")
	if err != nil {
		return nil, err
	}
	flags, err := d.unsigned("descriptor flags")
	if err != nil {
		return nil, err
	}

	id, err := alloc(d.arena, RttiBaseClassDescriptor{
		NVOffset:      uint32(nv),
		VBPtrOffset:   int32(vbptr),
		VBTableOffset: uint32(vbtable),
		Flags:         uint32(flags),
	})
	if err != nil {
		return nil, d.wrap(err, "base class descriptor")
	}
	name, err := d.nameScopeChain(id)
	if err != nil {
		return nil, err
	}
	d.s.ConsumeByte('8')

	v, err := alloc(d.arena, VariableSymbol{Name: name})
	if err != nil {
		return nil, d.wrap(err, "base class descriptor")
	}
	return v, nil
}

// vcallThunk reads <scope> $B <offset> A <calling-convention>.
func (d *demangler) vcallThunk() (Symbol, error) {
	id, err := alloc(d.arena, VcallThunkIdentifier{})
	if err != nil {
		return nil, d.wrap(err, "vcall thunk")
	}
	name, err := d.nameScopeChain(id)
	if err != nil {
		return nil, err
	}
	if err := d.expect("$B", "vcall thunk"); err != nil {
		return nil, err
	}
	if id.OffsetInVTable, err = d.unsigned("vtable offset"); err != nil {
		return nil, err
	}
	if err := d.expect("A", "vcall thunk"); err != nil {
		return nil, err
	}
	cc, err := d.callingConvention()
	if err != nil {
		return nil, err
	}

	sig, err := place(d.arena, &d.arena.sigs, FunctionSignature{
		Class:       FuncNoParameterList,
		CallingConv: cc,
		Thunk:       &ThisAdjustor{},
	})
	if err != nil {
		return nil, d.wrap(err, "vcall thunk")
	}
	fn, err := alloc(d.arena, FunctionSymbol{Name: name, Signature: sig})
	if err != nil {
		return nil, d.wrap(err, "vcall thunk")
	}
	return fn, nil
}

// initFiniStub reads a dynamic initializer or atexit destructor:
//
//	[?] <variable-declarator> @[@] <function-encoding>
//	<function-declarator>
//
// The leading '?' marks a static data member and requires two '@'.
func (d *demangler) initFiniStub(destructor bool) (Symbol, error) {
	knownStatic := d.s.ConsumeByte('?')

	sym, err := d.declarator()
	if err != nil {
		return nil, err
	}
	id, err := alloc(d.arena, DynamicStructorIdentifier{IsDestructor: destructor})
	if err != nil {
		return nil, d.wrap(err, "dynamic structor")
	}
	name, err := d.newQualifiedName([]Identifier{id})
	if err != nil {
		return nil, err
	}

	switch s := sym.(type) {
	case *VariableSymbol:
		id.Variable = s
		terminator := "@"
		if knownStatic {
			terminator = "@@"
		}
		if err := d.expect(terminator, "dynamic structor variable terminator"); err != nil {
			return nil, err
		}
		fn, err := d.functionEncoding()
		if err != nil {
			return nil, err
		}
		fn.Name = name
		return fn, nil
	case *FunctionSymbol:
		if knownStatic {
			return nil, d.fail(ErrUnsupportedSymbolKind, "static data member initializer names a function")
		}
		id.Name = s.Name
		s.Name = name
		return s, nil
	}
	return nil, d.fail(ErrUnsupportedSymbolKind, "unexpected dynamic structor target")
}

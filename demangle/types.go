package demangle

// qualMode selects how a type's own cv-qualifiers are encoded.
type qualMode int

const (
	qualsDrop   qualMode = iota // not encoded
	qualsMangle                 // always encoded before the type
	qualsResult                 // encoded only when prefixed with '?'
)

func addQualifiers(t Type, q Qualifiers) {
	t.setQualifiers(t.Qualifiers() | q)
}

// parseType reads <type>.
func (d *demangler) parseType(mode qualMode) (Type, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	var quals Qualifiers
	switch mode {
	case qualsMangle:
		q, _, err := d.qualifiers()
		if err != nil {
			return nil, err
		}
		quals = q
	case qualsResult:
		if d.s.ConsumeByte('?') {
			q, _, err := d.qualifiers()
			if err != nil {
				return nil, err
			}
			quals = q
		}
	}

	c, ok := d.s.Peek()
	if !ok {
		return nil, d.fail(ErrMalformedMangledName, "expected type")
	}

	var (
		t   Type
		err error
	)
	switch {
	case c == 'T' || c == 'U' || c == 'V' || c == 'W':
		t, err = d.tagType()
	case d.isPointerType():
		member, ok := d.isMemberPointer()
		if !ok {
			return nil, d.fail(ErrUnknownTypeForm, "unrecognized pointer type")
		}
		if member {
			t, err = d.memberPointerType()
		} else {
			t, err = d.pointerType()
		}
	case c == 'Y':
		t, err = d.arrayType()
	case d.s.Consume("$$A8@@"):
		t, err = d.functionType(true)
	case d.s.Consume("$$A6"):
		t, err = d.functionType(false)
	case c == '?':
		t, err = d.customType()
	default:
		t, err = d.primitiveType()
	}
	if err != nil {
		return nil, err
	}

	addQualifiers(t, quals)
	return t, nil
}

func (d *demangler) isPointerType() bool {
	if d.s.HasPrefix("$$Q") {
		return true
	}
	c, _ := d.s.Peek()
	switch c {
	case 'A', 'P', 'Q', 'R', 'S':
		return true
	}
	return false
}

// isMemberPointer looks ahead to tell a pointer to member from an ordinary
// pointer. ok is false when the encoding is neither.
func (d *demangler) isMemberPointer() (member, ok bool) {
	ahead := d.s.Clone()
	c, err := ahead.Bump()
	if err != nil {
		return false, false
	}
	switch c {
	case '$', 'A':
		// rvalue references and references never point to members
		return false, true
	case 'P', 'Q', 'R', 'S':
	default:
		return false, false
	}

	if ahead.PeekDigit() {
		digit, _ := ahead.Bump()
		switch digit {
		case '6':
			return false, true
		case '8':
			return true, true
		}
		return false, false
	}

	ahead.ConsumeByte('E')
	ahead.ConsumeByte('I')
	ahead.ConsumeByte('F')

	c, ok = ahead.Peek()
	if !ok {
		return false, false
	}
	switch c {
	case 'A', 'B', 'C', 'D':
		return false, true
	case 'Q', 'R', 'S', 'T':
		return true, true
	}
	return false, false
}

var primitiveCodes = map[byte]PrimitiveKind{
	'X': PrimVoid,
	'D': PrimChar,
	'C': PrimSChar,
	'E': PrimUChar,
	'F': PrimShort,
	'G': PrimUShort,
	'H': PrimInt,
	'I': PrimUInt,
	'J': PrimLong,
	'K': PrimULong,
	'M': PrimFloat,
	'N': PrimDouble,
	'O': PrimLongDouble,
}

var extendedPrimitiveCodes = map[byte]PrimitiveKind{
	'N': PrimBool,
	'J': PrimInt64,
	'K': PrimUInt64,
	'W': PrimWChar,
	'Q': PrimChar8,
	'S': PrimChar16,
	'U': PrimChar32,
	'P': PrimAuto,
	'T': PrimDecltypeAuto,
}

func (d *demangler) primitiveType() (Type, error) {
	if d.s.Consume("$$T") {
		return d.newPrimitive(PrimNullptr)
	}

	c, err := d.s.Bump()
	if err != nil {
		return nil, d.wrap(err, "expected primitive type")
	}
	codes := primitiveCodes
	if c == '_' {
		if c, err = d.s.Bump(); err != nil {
			return nil, d.wrap(err, "expected extended primitive type")
		}
		codes = extendedPrimitiveCodes
	}
	kind, ok := codes[c]
	if !ok {
		return nil, d.failAt(d.s.Offset()-1, ErrUnknownTypeForm, "unknown primitive type")
	}
	return d.newPrimitive(kind)
}

func (d *demangler) newPrimitive(kind PrimitiveKind) (Type, error) {
	p, err := place(d.arena, &d.arena.prims, PrimitiveType{Primitive: kind})
	if err != nil {
		return nil, d.wrap(err, "primitive type")
	}
	return p, nil
}

func (d *demangler) customType() (Type, error) {
	if err := d.expect("?", "custom type"); err != nil {
		return nil, err
	}
	id, err := d.unqualifiedTypeName(true)
	if err != nil {
		return nil, err
	}
	if err := d.expect("@", "custom type terminator"); err != nil {
		return nil, err
	}
	ct, err := alloc(d.arena, CustomType{Name: id})
	if err != nil {
		return nil, d.wrap(err, "custom type")
	}
	return ct, nil
}

func (d *demangler) tagType() (Type, error) {
	c, err := d.s.Bump()
	if err != nil {
		return nil, d.wrap(err, "expected tag")
	}
	var tag TagKind
	switch c {
	case 'T':
		tag = TagUnion
	case 'U':
		tag = TagStruct
	case 'V':
		tag = TagClass
	case 'W':
		if !d.s.ConsumeByte('4') {
			if d.s.Empty() {
				return nil, d.fail(ErrMalformedMangledName, "truncated enum tag")
			}
			return nil, d.fail(ErrUnknownTypeForm, "unknown enum underlying type")
		}
		tag = TagEnum
	default:
		return nil, d.failAt(d.s.Offset()-1, ErrUnknownTypeForm, "unknown tag")
	}

	name, err := d.fullyQualifiedTypeName()
	if err != nil {
		return nil, err
	}
	t, err := place(d.arena, &d.arena.tags, TagType{Tag: tag, Name: name})
	if err != nil {
		return nil, d.wrap(err, "tag type")
	}
	return t, nil
}

// pointerExtQualifiers reads the optional E, I and F markers.
func (d *demangler) pointerExtQualifiers() Qualifiers {
	var q Qualifiers
	if d.s.ConsumeByte('E') {
		q |= QualPointer64
	}
	if d.s.ConsumeByte('I') {
		q |= QualRestrict
	}
	if d.s.ConsumeByte('F') {
		q |= QualUnaligned
	}
	return q
}

// qualifiers reads a cv code. member reports whether the code belongs to
// the pointer-to-member family.
func (d *demangler) qualifiers() (q Qualifiers, member bool, err error) {
	c, err := d.s.Bump()
	if err != nil {
		return 0, false, d.wrap(err, "expected qualifiers")
	}
	switch c {
	case 'Q':
		return 0, true, nil
	case 'R':
		return QualConst, true, nil
	case 'S':
		return QualVolatile, true, nil
	case 'T':
		return QualConst | QualVolatile, true, nil
	case 'A':
		return 0, false, nil
	case 'B':
		return QualConst, false, nil
	case 'C':
		return QualVolatile, false, nil
	case 'D':
		return QualConst | QualVolatile, false, nil
	}
	return 0, false, d.failAt(d.s.Offset()-1, ErrUnknownTypeForm, "unknown qualifiers")
}

func (d *demangler) pointerCVQualifiers() (Qualifiers, PointerAffinity, error) {
	if d.s.Consume("$$Q") {
		return 0, AffinityRValueReference, nil
	}
	c, err := d.s.Bump()
	if err != nil {
		return 0, 0, d.wrap(err, "expected pointer qualifiers")
	}
	switch c {
	case 'A':
		return 0, AffinityReference, nil
	case 'P':
		return 0, AffinityPointer, nil
	case 'Q':
		return QualConst, AffinityPointer, nil
	case 'R':
		return QualVolatile, AffinityPointer, nil
	case 'S':
		return QualConst | QualVolatile, AffinityPointer, nil
	}
	return 0, 0, d.failAt(d.s.Offset()-1, ErrUnknownTypeForm, "unknown pointer qualifiers")
}

// pointerType reads <pointer-type> ::= <cv> [6 <function> | <ext> <type>].
func (d *demangler) pointerType() (Type, error) {
	quals, affinity, err := d.pointerCVQualifiers()
	if err != nil {
		return nil, err
	}

	var pointee Type
	if d.s.ConsumeByte('6') {
		pointee, err = d.functionType(false)
	} else {
		quals |= d.pointerExtQualifiers()
		pointee, err = d.parseType(qualsMangle)
	}
	if err != nil {
		return nil, err
	}

	p, err := place(d.arena, &d.arena.ptrs, PointerType{Quals: quals, Affinity: affinity, Pointee: pointee})
	if err != nil {
		return nil, d.wrap(err, "pointer type")
	}
	return p, nil
}

func (d *demangler) memberPointerType() (Type, error) {
	quals, affinity, err := d.pointerCVQualifiers()
	if err != nil {
		return nil, err
	}
	if affinity != AffinityPointer {
		return nil, d.fail(ErrUnknownTypeForm, "member pointer must be a pointer")
	}
	quals |= d.pointerExtQualifiers()

	var (
		class   *QualifiedName
		pointee Type
	)
	if d.s.ConsumeByte('8') {
		if class, err = d.fullyQualifiedTypeName(); err != nil {
			return nil, err
		}
		if pointee, err = d.functionType(true); err != nil {
			return nil, err
		}
	} else {
		pointeeQuals, member, err := d.qualifiers()
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, d.fail(ErrUnknownTypeForm, "expected member qualifiers")
		}
		if class, err = d.fullyQualifiedTypeName(); err != nil {
			return nil, err
		}
		if pointee, err = d.parseType(qualsDrop); err != nil {
			return nil, err
		}
		pointee.setQualifiers(pointeeQuals)
	}

	p, err := place(d.arena, &d.arena.ptrs, PointerType{
		Quals:       quals,
		Affinity:    affinity,
		ClassParent: class,
		Pointee:     pointee,
	})
	if err != nil {
		return nil, d.wrap(err, "member pointer type")
	}
	return p, nil
}

// functionType reads a function signature. hasThis selects the member
// function form, which carries the qualifiers of the implicit this.
func (d *demangler) functionType(hasThis bool) (*FunctionSignature, error) {
	sig := FunctionSignature{Class: FuncGlobal}
	if hasThis {
		sig.Quals = d.pointerExtQualifiers()
		switch {
		case d.s.ConsumeByte('G'):
			sig.RefQualifier = RefLValue
		case d.s.ConsumeByte('H'):
			sig.RefQualifier = RefRValue
		}
		q, _, err := d.qualifiers()
		if err != nil {
			return nil, err
		}
		sig.Quals |= q
	}

	cc, err := d.callingConvention()
	if err != nil {
		return nil, err
	}
	sig.CallingConv = cc

	// '@' in place of a return type marks a constructor or destructor.
	if !d.s.ConsumeByte('@') {
		if sig.Return, err = d.parseType(qualsResult); err != nil {
			return nil, err
		}
	}

	if err := d.functionParams(&sig); err != nil {
		return nil, err
	}
	if sig.IsNoexcept, err = d.throwSpec(); err != nil {
		return nil, err
	}

	p, err := place(d.arena, &d.arena.sigs, sig)
	if err != nil {
		return nil, d.wrap(err, "function type")
	}
	return p, nil
}

var callingConvCodes = map[byte]CallingConvention{
	'A': CallCdecl,
	'B': CallCdecl,
	'C': CallPascal,
	'D': CallPascal,
	'E': CallThiscall,
	'F': CallThiscall,
	'G': CallStdcall,
	'H': CallStdcall,
	'I': CallFastcall,
	'J': CallFastcall,
	'M': CallClrcall,
	'N': CallClrcall,
	'O': CallEabi,
	'P': CallEabi,
	'Q': CallVectorcall,
	'S': CallSwift,
	'W': CallSwiftAsync,
}

// callingConvention consumes one code. Unknown codes yield CallNone.
func (d *demangler) callingConvention() (CallingConvention, error) {
	c, err := d.s.Bump()
	if err != nil {
		return CallNone, d.wrap(err, "expected calling convention")
	}
	return callingConvCodes[c], nil
}

func (d *demangler) throwSpec() (bool, error) {
	switch {
	case d.s.Consume("_E"):
		return true, nil
	case d.s.ConsumeByte('Z'):
		return false, nil
	case d.s.Empty():
		return false, d.fail(ErrMalformedMangledName, "expected throw specification")
	}
	return false, d.fail(ErrUnknownTypeForm, "unknown throw specification")
}

// functionParams reads a parameter list terminated by '@' or, for
// variadic functions, 'Z'. A lone 'X' is (void).
func (d *demangler) functionParams(sig *FunctionSignature) error {
	if d.s.ConsumeByte('X') {
		sig.VoidParams = true
		return nil
	}

	for {
		c, ok := d.s.Peek()
		if !ok {
			return d.fail(ErrMalformedMangledName, "unterminated parameter list")
		}
		if c == '@' || c == 'Z' {
			break
		}

		if c >= '0' && c <= '9' {
			d.s.Skip(1)
			t, ok := d.refs.params.resolve(int(c - '0'))
			if !ok {
				return d.failAt(d.s.Offset()-1, ErrBackrefOutOfRange, "parameter back-reference")
			}
			sig.Params = append(sig.Params, t)
			continue
		}

		start := d.s.Offset()
		t, err := d.parseType(qualsDrop)
		if err != nil {
			return err
		}
		sig.Params = append(sig.Params, t)
		// Single-character types are not worth a back-reference slot.
		if d.s.Offset()-start > 1 {
			d.refs.params.insert(t)
		}
	}

	// The terminator is one byte; "@Z" leaves Z for the throw specification.
	if d.s.ConsumeByte('Z') {
		sig.IsVariadic = true
		return nil
	}
	d.s.ConsumeByte('@')
	return nil
}

// arrayType reads Y <rank> <dimension>... [$$C <qualifiers>] <type>.
func (d *demangler) arrayType() (Type, error) {
	if err := d.expect("Y", "array type"); err != nil {
		return nil, err
	}

	rank, err := d.unsigned("array rank")
	if err != nil {
		return nil, err
	}
	if rank == 0 {
		return nil, d.fail(ErrUnknownTypeForm, "array of rank zero")
	}
	// Every dimension takes at least one byte.
	if rank > uint64(d.s.Remaining()) {
		return nil, d.fail(ErrMalformedMangledName, "array rank exceeds input")
	}

	dims := make([]uint64, 0, rank)
	for i := uint64(0); i < rank; i++ {
		n, err := d.unsigned("array dimension")
		if err != nil {
			return nil, err
		}
		if err := d.arena.reserve(); err != nil {
			return nil, d.wrap(err, "array dimension")
		}
		dims = append(dims, n)
	}

	var quals Qualifiers
	if d.s.Consume("$$C") {
		q, member, err := d.qualifiers()
		if err != nil {
			return nil, err
		}
		if member {
			return nil, d.fail(ErrUnknownTypeForm, "member qualifiers on array")
		}
		quals = q
	}

	elem, err := d.parseType(qualsDrop)
	if err != nil {
		return nil, err
	}
	a, err := alloc(d.arena, ArrayType{Quals: quals, Dimensions: dims, Element: elem})
	if err != nil {
		return nil, d.wrap(err, "array type")
	}
	return a, nil
}

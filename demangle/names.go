package demangle

import (
	"strings"
)

// backrefMode controls which freshly parsed components are memorized.
type backrefMode int

const (
	backrefSimple   backrefMode = iota // plain names
	backrefTemplate                    // template instantiations
)

func (d *demangler) newNamed(name string) (*NamedIdentifier, error) {
	n, err := place(d.arena, &d.arena.named, NamedIdentifier{Name: name})
	if err != nil {
		return nil, d.wrap(err, "identifier")
	}
	return n, nil
}

func (d *demangler) newQualifiedName(components []Identifier) (*QualifiedName, error) {
	qn, err := place(d.arena, &d.arena.quals, QualifiedName{Components: components})
	if err != nil {
		return nil, d.wrap(err, "qualified name")
	}
	return qn, nil
}

// memorizeName records a plain name in the names table.
func (d *demangler) memorizeName(name string) error {
	if d.refs.names.contains(name) {
		return nil
	}
	id, err := d.newNamed(name)
	if err != nil {
		return err
	}
	d.refs.names.insert(name, id)
	return nil
}

// memorizeIdentifier records id under its rendered text, so a later
// back-reference to an identical instantiation reuses the slot.
func (d *demangler) memorizeIdentifier(id Identifier) error {
	if d.refs.names.full() {
		return nil
	}
	if err := d.measure(id); err != nil {
		return err
	}
	d.refs.names.insert(RenderNode(id, 0), id)
	return nil
}

// fullyQualifiedTypeName parses A@B@C@@, which names C::B::A.
func (d *demangler) fullyQualifiedTypeName() (*QualifiedName, error) {
	id, err := d.unqualifiedTypeName(true)
	if err != nil {
		return nil, err
	}
	return d.nameScopeChain(id)
}

// fullyQualifiedSymbolName is fullyQualifiedTypeName for the leftmost
// component of a symbol, which may also be an operator or structor.
func (d *demangler) fullyQualifiedSymbolName() (*QualifiedName, error) {
	id, err := d.unqualifiedSymbolName(backrefSimple)
	if err != nil {
		return nil, err
	}
	qn, err := d.nameScopeChain(id)
	if err != nil {
		return nil, err
	}

	if st, ok := id.(*StructorIdentifier); ok {
		if len(qn.Components) < 2 {
			return nil, d.fail(ErrUnknownIdentifierForm, "structor outside a class scope")
		}
		st.Class = qn.Components[len(qn.Components)-2]
	}
	return qn, nil
}

func (d *demangler) unqualifiedTypeName(memorize bool) (Identifier, error) {
	switch {
	case d.s.PeekDigit():
		return d.backrefName()
	case d.s.HasPrefix("?$"):
		return d.templateInstantiationName(backrefTemplate)
	}
	return d.simpleName(memorize)
}

func (d *demangler) unqualifiedSymbolName(mode backrefMode) (Identifier, error) {
	switch {
	case d.s.PeekDigit():
		return d.backrefName()
	case d.s.HasPrefix("?$"):
		return d.templateInstantiationName(mode)
	case d.s.HasPrefix("?"):
		return d.functionIdentifierCode()
	}
	return d.simpleName(mode == backrefSimple)
}

// nameScopeChain reads enclosing scopes until '@'. The encoding lists them
// innermost first; the result is outermost first.
func (d *demangler) nameScopeChain(unqualified Identifier) (*QualifiedName, error) {
	components := []Identifier{unqualified}
	for !d.s.ConsumeByte('@') {
		if d.s.Empty() {
			return nil, d.fail(ErrMalformedMangledName, "unterminated scope chain")
		}
		piece, err := d.nameScopePiece()
		if err != nil {
			return nil, err
		}
		components = append(components, piece)
	}

	for i, j := 0, len(components)-1; i < j; i, j = i+1, j-1 {
		components[i], components[j] = components[j], components[i]
	}
	return d.newQualifiedName(components)
}

func (d *demangler) nameScopePiece() (Identifier, error) {
	switch {
	case d.s.PeekDigit():
		return d.backrefName()
	case d.s.HasPrefix("?$"):
		return d.templateInstantiationName(backrefTemplate)
	case d.s.HasPrefix("?A"):
		return d.anonymousNamespaceName()
	case d.hasLocalScopePrefix():
		return d.localScopeName()
	}
	return d.simpleName(true)
}

func (d *demangler) backrefName() (Identifier, error) {
	c, err := d.s.Bump()
	if err != nil {
		return nil, d.wrap(err, "expected back-reference")
	}
	id, ok := d.refs.names.resolve(int(c - '0'))
	if !ok {
		return nil, d.failAt(d.s.Offset()-1, ErrBackrefOutOfRange, "name back-reference")
	}
	return id, nil
}

// templateInstantiationName reads ?$ <name> <template-args>. The arguments
// are parsed against a fresh back-reference context.
func (d *demangler) templateInstantiationName(mode backrefMode) (Identifier, error) {
	if err := d.expect("?$", "template instantiation"); err != nil {
		return nil, err
	}

	outer := d.refs
	d.refs = backrefs{}

	id, err := d.unqualifiedSymbolName(backrefSimple)
	if err != nil {
		return nil, err
	}
	args, err := d.templateArgs()
	if err != nil {
		return nil, err
	}
	id.setTemplateArgs(args)

	d.refs = outer

	if mode == backrefTemplate {
		switch id.(type) {
		case *StructorIdentifier, *ConversionOperatorIdentifier:
			return nil, d.fail(ErrUnknownIdentifierForm, "structor or conversion operator in a scope")
		}
		if err := d.memorizeIdentifier(id); err != nil {
			return nil, err
		}
	}
	return id, nil
}

// templateArgs reads template arguments up to '@'. Arguments do not enter
// the parameter back-reference table.
func (d *demangler) templateArgs() ([]Node, error) {
	if err := d.enter(); err != nil {
		return nil, err
	}
	defer d.leave()

	args := []Node{}
	for !d.s.ConsumeByte('@') {
		// parameter pack separators
		if d.s.Consume("$S") || d.s.Consume("$$V") || d.s.Consume("$$$V") || d.s.Consume("$$Z") {
			continue
		}
		if d.s.Empty() {
			return nil, d.fail(ErrMalformedMangledName, "unterminated template argument list")
		}

		arg, err := d.templateArg()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (d *demangler) templateArg() (Node, error) {
	// $M <type> introduces an auto non-type parameter. The deduced type is
	// not printed and the argument code loses its leading '$'.
	prefix := "$"
	if d.s.Consume("$M") {
		if _, err := d.parseType(qualsDrop); err != nil {
			return nil, err
		}
		prefix = ""
	}

	switch {
	case d.s.Consume("$$Y"):
		// alias template
		return d.fullyQualifiedTypeName()
	case d.s.Consume("$$B"):
		return d.parseType(qualsDrop)
	case d.s.Consume("$$C"):
		return d.parseType(qualsMangle)
	}

	for i, code := range [...]string{"1", "H", "I", "J"} {
		if d.s.Consume(prefix + code) {
			return d.memberPointerArg(i)
		}
	}

	if d.s.HasPrefix("$E?") {
		d.s.Skip(2)
		sym, err := d.nestedSymbol()
		if err != nil {
			return nil, err
		}
		ref, err := alloc(d.arena, TemplateParameterReference{
			Symbol:      sym,
			Affinity:    AffinityReference,
			HasAffinity: true,
		})
		if err != nil {
			return nil, d.wrap(err, "template argument")
		}
		return ref, nil
	}

	for i, code := range [...]string{"F", "G"} {
		if d.s.Consume(prefix + code) {
			return d.dataMemberPointerArg(i + 2)
		}
	}

	if d.s.Consume(prefix + "0") {
		v, negative, err := d.number("integer template argument")
		if err != nil {
			return nil, err
		}
		lit, err := alloc(d.arena, IntegerLiteral{Value: v, Negative: negative})
		if err != nil {
			return nil, d.wrap(err, "integer template argument")
		}
		return lit, nil
	}

	return d.parseType(qualsDrop)
}

// memberPointerArg reads a pointer-to-member argument: an optional symbol
// followed by one offset per level of the inheritance model.
func (d *demangler) memberPointerArg(offsets int) (Node, error) {
	ref := TemplateParameterReference{
		Affinity:        AffinityPointer,
		HasAffinity:     true,
		IsMemberPointer: true,
	}

	if d.s.HasPrefix("?") {
		sym, err := d.nestedSymbol()
		if err != nil {
			return nil, err
		}
		name := sym.QualifiedName()
		if name.Unqualified() == nil {
			return nil, d.fail(ErrUnknownIdentifierForm, "pointer-to-member argument has no name")
		}
		if err := d.memorizeIdentifier(name.Unqualified()); err != nil {
			return nil, err
		}
		ref.Symbol = sym
	}

	for i := 0; i < offsets; i++ {
		off, err := d.signed("member pointer offset")
		if err != nil {
			return nil, err
		}
		ref.Offsets = append(ref.Offsets, off)
	}

	p, err := alloc(d.arena, ref)
	if err != nil {
		return nil, d.wrap(err, "template argument")
	}
	return p, nil
}

func (d *demangler) dataMemberPointerArg(offsets int) (Node, error) {
	ref := TemplateParameterReference{IsMemberPointer: true}
	for i := 0; i < offsets; i++ {
		off, err := d.signed("data member offset")
		if err != nil {
			return nil, err
		}
		ref.Offsets = append(ref.Offsets, off)
	}
	p, err := alloc(d.arena, ref)
	if err != nil {
		return nil, d.wrap(err, "template argument")
	}
	return p, nil
}

// simpleString returns the bytes up to the next '@' and consumes the '@'.
func (d *demangler) simpleString() (string, error) {
	n := d.s.IndexByte('@')
	switch {
	case n < 0:
		return "", d.fail(ErrMalformedMangledName, "unterminated name")
	case n == 0:
		return "", d.fail(ErrMalformedMangledName, "empty name")
	}
	name, _ := d.s.Take(n)
	d.s.Skip(1)
	return name, nil
}

func (d *demangler) simpleName(memorize bool) (Identifier, error) {
	name, err := d.simpleString()
	if err != nil {
		return nil, err
	}
	if memorize {
		if err := d.memorizeName(name); err != nil {
			return nil, err
		}
	}
	return d.newNamed(name)
}

// anonymousNamespaceName reads ?A <key> @. The key, not the rendered
// marker, is what later back-references see.
func (d *demangler) anonymousNamespaceName() (Identifier, error) {
	if err := d.expect("?A", "anonymous namespace"); err != nil {
		return nil, err
	}
	n := d.s.IndexByte('@')
	if n < 0 {
		return nil, d.fail(ErrMalformedMangledName, "unterminated anonymous namespace")
	}
	key, _ := d.s.Take(n)
	d.s.Skip(1)
	if err := d.memorizeName(key); err != nil {
		return nil, err
	}

	ns, err := alloc(d.arena, AnonymousNamespace{Key: key})
	if err != nil {
		return nil, d.wrap(err, "anonymous namespace")
	}
	return ns, nil
}

// hasLocalScopePrefix matches ?<number>? where the number is a single
// digit, '@', or B-P followed by A-P and terminated with '@'.
func (d *demangler) hasLocalScopePrefix() bool {
	rest := d.s.Rest()
	if !strings.HasPrefix(rest, "?") {
		return false
	}
	rest = rest[1:]
	end := strings.IndexByte(rest, '?')
	if end <= 0 {
		return false
	}
	candidate := rest[:end]

	if len(candidate) == 1 {
		c := candidate[0]
		return c == '@' || (c >= '0' && c <= '9')
	}

	if candidate[len(candidate)-1] != '@' {
		return false
	}
	candidate = candidate[:len(candidate)-1]
	if candidate[0] < 'B' || candidate[0] > 'P' {
		return false
	}
	for i := 1; i < len(candidate); i++ {
		if candidate[i] < 'A' || candidate[i] > 'P' {
			return false
		}
	}
	return true
}

// localScopeName reads ?<index>?<symbol>, the numbered block scope of a
// function.
func (d *demangler) localScopeName() (Identifier, error) {
	if err := d.expect("?", "local scope"); err != nil {
		return nil, err
	}
	index, err := d.unsigned("local scope index")
	if err != nil {
		return nil, err
	}
	if err := d.expect("?", "local scope"); err != nil {
		return nil, err
	}
	scope, err := d.nestedSymbol()
	if err != nil {
		return nil, err
	}
	ls, err := alloc(d.arena, LocalScope{Scope: scope, Index: index})
	if err != nil {
		return nil, d.wrap(err, "local scope")
	}
	return ls, nil
}

// Operator code tables, indexed by 0-9 then A-Z.
var (
	basicOperators = [36]OperatorKind{
		OpUnknown, OpUnknown, OpNew, OpDelete, OpAssign, OpRightShift, OpLeftShift,
		OpLogicalNot, OpEqual, OpNotEqual, OpSubscript, OpUnknown, OpArrow,
		OpDereference, OpIncrement, OpDecrement, OpMinus, OpPlus, OpBitwiseAnd,
		OpArrowStar, OpDivide, OpModulo, OpLess, OpLessEqual, OpGreater,
		OpGreaterEqual, OpComma, OpCall, OpComplement, OpXor, OpBitwiseOr,
		OpLogicalAnd, OpLogicalOr, OpMultiplyAssign, OpPlusAssign, OpMinusAssign,
	}
	underOperators = [36]OperatorKind{
		OpDivideAssign, OpModuloAssign, OpRightShiftAssign, OpLeftShiftAssign,
		OpAndAssign, OpOrAssign, OpXorAssign, OpUnknown, OpUnknown, OpUnknown,
		OpUnknown, OpUnknown, OpUnknown, OpVbaseDtor, OpVecDelDtor,
		OpDefaultCtorClosure, OpScalarDelDtor, OpVecCtorIter, OpVecDtorIter,
		OpVecVbaseCtorIter, OpVdispMap, OpEHVecCtorIter, OpEHVecDtorIter,
		OpEHVecVbaseCtorIter, OpCopyCtorClosure, OpUnknown, OpUnknown, OpUnknown,
		OpUnknown, OpLocalVftableCtorClosure, OpArrayNew, OpArrayDelete,
		OpUnknown, OpUnknown, OpUnknown, OpUnknown,
	}
	doubleUnderOperators = [36]OperatorKind{
		OpUnknown, OpUnknown, OpUnknown, OpUnknown, OpUnknown, OpUnknown,
		OpUnknown, OpUnknown, OpUnknown, OpUnknown, OpManVectorCtorIter,
		OpManVectorDtorIter, OpEHVectorCopyCtorIter, OpEHVectorVbaseCopyCtorIter,
		OpUnknown, OpUnknown, OpVectorCopyCtorIter, OpVectorVbaseCopyCtorIter,
		OpManVectorVbaseCopyCtorIter, OpUnknown, OpUnknown, OpCoAwait,
		OpSpaceship, OpUnknown, OpUnknown, OpUnknown, OpUnknown, OpUnknown,
		OpUnknown, OpUnknown, OpUnknown, OpUnknown, OpUnknown, OpUnknown,
		OpUnknown, OpUnknown,
	}
)

func operatorIndex(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	}
	return 0, false
}

// functionIdentifierCode reads ? followed by an operator, structor or
// conversion code.
func (d *demangler) functionIdentifierCode() (Identifier, error) {
	if err := d.expect("?", "function identifier"); err != nil {
		return nil, err
	}

	table := &basicOperators
	switch {
	case d.s.Consume("__"):
		table = &doubleUnderOperators
	case d.s.ConsumeByte('_'):
		table = &underOperators
	}

	c, err := d.s.Bump()
	if err != nil {
		return nil, d.wrap(err, "expected function identifier code")
	}

	switch {
	case table == &basicOperators && (c == '0' || c == '1'):
		st, err := alloc(d.arena, StructorIdentifier{IsDestructor: c == '1'})
		if err != nil {
			return nil, d.wrap(err, "structor")
		}
		return st, nil
	case table == &basicOperators && c == 'B':
		conv, err := alloc(d.arena, ConversionOperatorIdentifier{})
		if err != nil {
			return nil, d.wrap(err, "conversion operator")
		}
		return conv, nil
	case table == &doubleUnderOperators && c == 'K':
		name, err := d.simpleString()
		if err != nil {
			return nil, err
		}
		lit, err := alloc(d.arena, LiteralOperatorIdentifier{Name: name})
		if err != nil {
			return nil, d.wrap(err, "literal operator")
		}
		return lit, nil
	}

	i, ok := operatorIndex(c)
	if !ok || table[i] == OpUnknown {
		return nil, d.failAt(d.s.Offset()-1, ErrUnknownIdentifierForm, "unknown function identifier code")
	}
	op, err := alloc(d.arena, OperatorIdentifier{Operator: table[i]})
	if err != nil {
		return nil, d.wrap(err, "operator")
	}
	return op, nil
}

package demangle

import (
	"strconv"
	"strings"
)

// printer accumulates rendered output. Symbols nested inside template
// arguments or local scopes always render in full: NameOnly and NoArguments
// apply to the outermost symbol only.
type printer struct {
	buf    []byte
	flags  Flags
	nested int
}

// Render renders a parsed symbol. It never fails.
func Render(sym Symbol, flags Flags) string {
	if sym == nil {
		return ""
	}
	return RenderNode(sym, flags)
}

// RenderNode renders any AST node.
func RenderNode(n Node, flags Flags) string {
	p := &printer{flags: flags}
	p.node(n)
	return string(p.buf)
}

func (p *printer) has(f Flags) bool { return p.flags&f != 0 }

func (p *printer) write(s string) { p.buf = append(p.buf, s...) }

func (p *printer) writeUint(v uint64) { p.buf = strconv.AppendUint(p.buf, v, 10) }

func (p *printer) writeInt(v int64) { p.buf = strconv.AppendInt(p.buf, v, 10) }

func (p *printer) last() byte {
	if len(p.buf) == 0 {
		return 0
	}
	return p.buf[len(p.buf)-1]
}

// spaceIfNeeded separates two tokens that would otherwise merge.
func (p *printer) spaceIfNeeded() {
	c := p.last()
	if c == '>' || c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
		p.write(" ")
	}
}

// keyword returns a Microsoft keyword adjusted for the flags, or "" when
// such keywords are suppressed.
func (p *printer) keyword(kw string) string {
	switch {
	case p.has(NoMSKeywords):
		return ""
	case p.has(NoLeadingUnderscores):
		return strings.TrimPrefix(kw, "__")
	}
	return kw
}

// callingConvention writes cc and reports whether anything was written.
func (p *printer) callingConvention(cc CallingConvention) bool {
	name := callingConvNames[cc]
	if name == "" || p.has(NoMSKeywords) {
		return false
	}
	if !strings.HasPrefix(name, "__attribute__") {
		name = p.keyword(name)
	}
	p.spaceIfNeeded()
	p.write(name)
	return true
}

var qualifierNames = [...]struct {
	q    Qualifiers
	name string
}{
	{QualConst, "const"},
	{QualVolatile, "volatile"},
	{QualRestrict, "__restrict"},
}

func (p *printer) qualifiers(q Qualifiers, spaceBefore, spaceAfter bool) {
	start := len(p.buf)
	for _, qn := range qualifierNames {
		if q&qn.q == 0 {
			continue
		}
		name := qn.name
		if qn.q == QualRestrict {
			if name = p.keyword(name); name == "" {
				continue
			}
		}
		if spaceBefore {
			p.write(" ")
		}
		p.write(name)
		spaceBefore = true
	}
	if spaceAfter && len(p.buf) > start {
		p.write(" ")
	}
}

func (p *printer) node(n Node) {
	switch n := n.(type) {
	case nil:
	case Symbol:
		p.symbol(n)
	case Identifier:
		n.output(p)
	case Type:
		p.typ(n)
	case *QualifiedName:
		p.qualifiedName(n)
	case *TemplateParameterReference:
		p.templateParameterReference(n)
	case *IntegerLiteral:
		if n.Negative {
			p.write("-")
		}
		p.writeUint(n.Value)
	}
}

func (p *printer) nodes(list []Node) {
	for i, n := range list {
		if i > 0 {
			p.write(", ")
		}
		p.node(n)
	}
}

func (p *printer) symbol(s Symbol) {
	saved := p.flags
	if p.nested > 0 {
		p.flags &^= NameOnly | NoArguments
	}
	p.nested++
	s.output(p)
	p.nested--
	p.flags = saved
}

func (p *printer) typ(t Type) {
	if t == nil {
		return
	}
	t.outputPre(p)
	t.outputPost(p)
}

func (p *printer) qualifiedName(qn *QualifiedName) {
	if qn == nil {
		return
	}
	for i, id := range qn.Components {
		if i > 0 {
			p.write("::")
		}
		id.output(p)
	}
}

func (p *printer) templateArgs(args []Node) {
	if args == nil {
		return
	}
	p.write("<")
	p.nodes(args)
	if p.last() == '>' && !p.has(LegacyTemplateSpacing) {
		p.write(" ")
	}
	p.write(">")
}

func (p *printer) templateParameterReference(n *TemplateParameterReference) {
	switch {
	case len(n.Offsets) > 0:
		p.write("{")
	case n.HasAffinity && n.Affinity == AffinityPointer:
		p.write("&")
	}
	if n.Symbol != nil {
		p.symbol(n.Symbol)
		if len(n.Offsets) > 0 {
			p.write(", ")
		}
	}
	for i, off := range n.Offsets {
		if i > 0 {
			p.write(", ")
		}
		p.writeInt(off)
	}
	if len(n.Offsets) > 0 {
		p.write("}")
	}
}

// Identifiers

func (n *NamedIdentifier) output(p *printer) {
	p.write(n.Name)
	p.templateArgs(n.Args)
}

func (n *OperatorIdentifier) output(p *printer) {
	p.write(n.Operator.String())
	p.templateArgs(n.Args)
}

func (n *LiteralOperatorIdentifier) output(p *printer) {
	p.write(`operator ""`)
	p.write(n.Name)
	p.templateArgs(n.Args)
}

func (n *ConversionOperatorIdentifier) output(p *printer) {
	p.write("operator")
	p.templateArgs(n.Args)
	if n.Target != nil {
		p.write(" ")
		p.typ(n.Target)
	}
}

func (n *StructorIdentifier) output(p *printer) {
	if n.IsDestructor {
		p.write("~")
	}
	if n.Class != nil {
		n.Class.output(p)
	}
	p.templateArgs(n.Args)
}

func (n *DynamicStructorIdentifier) output(p *printer) {
	if n.IsDestructor {
		p.write("`dynamic atexit destructor for ")
	} else {
		p.write("`dynamic initializer for ")
	}
	if n.Variable != nil {
		p.write("`")
		p.symbol(n.Variable)
	} else {
		p.write("'")
		p.qualifiedName(n.Name)
	}
	p.write("''")
}

func (n *LocalStaticGuardIdentifier) output(p *printer) {
	if n.IsThread {
		p.write("`local static thread guard'")
	} else {
		p.write("`local static guard'")
	}
	if n.ScopeIndex > 0 {
		p.write("{")
		p.writeUint(uint64(n.ScopeIndex))
		p.write("}")
	}
}

func (n *VcallThunkIdentifier) output(p *printer) {
	p.write("`vcall'{")
	p.writeUint(n.OffsetInVTable)
	if !p.has(NameOnly) {
		p.write(", {flat}")
	}
	p.write("}")
}

func (n *RttiBaseClassDescriptor) output(p *printer) {
	p.write("`RTTI Base Class Descriptor at (")
	p.writeUint(uint64(n.NVOffset))
	p.write(", ")
	p.writeInt(int64(n.VBPtrOffset))
	p.write(", ")
	p.writeUint(uint64(n.VBTableOffset))
	p.write(", ")
	p.writeUint(uint64(n.Flags))
	p.write(")'")
	p.templateArgs(n.Args)
}

func (n *SpecialName) output(p *printer) {
	p.write(n.Special.String())
	p.templateArgs(n.Args)
}

func (n *AnonymousNamespace) output(p *printer) {
	p.write("`anonymous namespace'")
	p.templateArgs(n.Args)
}

func (n *LocalScope) output(p *printer) {
	p.write("`")
	if n.Scope != nil {
		p.symbol(n.Scope)
	}
	p.write("'::`")
	p.writeUint(n.Index)
	p.write("'")
}

// Types

func (n *PrimitiveType) outputPre(p *printer) {
	p.write(n.Primitive.String())
	p.qualifiers(n.Quals, true, false)
}

func (n *PrimitiveType) outputPost(*printer) {}

func (n *TagType) outputPre(p *printer) {
	if !p.has(NoTagSpecifier) && !p.has(NameOnly) {
		p.write(n.Tag.String())
		p.write(" ")
	}
	p.qualifiedName(n.Name)
	p.qualifiers(n.Quals, true, false)
}

func (n *TagType) outputPost(*printer) {}

func (n *CustomType) outputPre(p *printer) {
	if n.Name != nil {
		n.Name.output(p)
	}
}

func (n *CustomType) outputPost(*printer) {}

func (n *ArrayType) outputPre(p *printer) {
	n.Element.outputPre(p)
	p.qualifiers(n.Quals, true, false)
}

func (n *ArrayType) outputPost(p *printer) {
	p.write("[")
	for i, dim := range n.Dimensions {
		if i > 0 {
			p.write("][")
		}
		if dim != 0 {
			p.writeUint(dim)
		}
	}
	p.write("]")
	n.Element.outputPost(p)
}

func (n *PointerType) outputPre(p *printer) {
	sig, isFunc := n.Pointee.(*FunctionSignature)
	if isFunc {
		// The calling convention moves inside the parentheses.
		sig.pre(p, true)
	} else {
		n.Pointee.outputPre(p)
	}
	p.spaceIfNeeded()

	if n.Quals&QualUnaligned != 0 {
		if kw := p.keyword("__unaligned"); kw != "" {
			p.write(kw)
			p.write(" ")
		}
	}

	switch {
	case isFunc:
		p.write("(")
		if !p.has(NoCallingConvention) && p.callingConvention(sig.CallingConv) {
			p.write(" ")
		}
	case isArray(n.Pointee):
		p.write("(")
	}

	if n.ClassParent != nil {
		p.qualifiedName(n.ClassParent)
		p.write("::")
	}
	switch n.Affinity {
	case AffinityPointer:
		p.write("*")
	case AffinityReference:
		p.write("&")
	case AffinityRValueReference:
		p.write("&&")
	}
	p.qualifiers(n.Quals, false, false)
}

func (n *PointerType) outputPost(p *printer) {
	if sig, ok := n.Pointee.(*FunctionSignature); ok {
		p.write(")")
		sig.post(p, true)
		return
	}
	if isArray(n.Pointee) {
		p.write(")")
	}
	n.Pointee.outputPost(p)
}

func isArray(t Type) bool {
	_, ok := t.(*ArrayType)
	return ok
}

func (n *FunctionSignature) outputPre(p *printer) { n.pre(p, false) }

func (n *FunctionSignature) outputPost(p *printer) { n.post(p, false) }

// pre writes everything left of the function name. inner marks a
// signature rendered inside a pointer declarator, whose calling convention
// the pointer places itself.
func (n *FunctionSignature) pre(p *printer, inner bool) {
	nameOnly := p.has(NameOnly)

	if n.Thunk != nil && !nameOnly {
		p.write("[thunk]: ")
	}
	if !p.has(NoAccessSpecifier) && !nameOnly {
		switch {
		case n.Class&FuncPublic != 0:
			p.write("public: ")
		case n.Class&FuncProtected != 0:
			p.write("protected: ")
		case n.Class&FuncPrivate != 0:
			p.write("private: ")
		}
	}
	if !p.has(NoMemberType) && !nameOnly {
		if n.Class&FuncGlobal == 0 && n.Class&FuncStatic != 0 {
			p.write("static ")
		}
		if n.Class&FuncVirtual != 0 {
			p.write("virtual ")
		}
		if n.Class&FuncExternC != 0 {
			p.write(`extern "C" `)
		}
	}
	if n.Return != nil && !p.has(NoReturnType) && (inner || !nameOnly) {
		n.Return.outputPre(p)
		p.write(" ")
	}
	if !inner && !nameOnly && !p.has(NoCallingConvention) {
		p.callingConvention(n.CallingConv)
	}
}

// post writes everything right of the function name.
func (n *FunctionSignature) post(p *printer, inner bool) {
	nameOnly := p.has(NameOnly)

	if t := n.Thunk; t != nil {
		switch {
		case n.Class&FuncStaticThisAdjust != 0:
			p.write("`adjustor{")
			p.writeUint(uint64(t.StaticOffset))
			p.write("}'")
		case n.Class&FuncVirtualThisAdjustEx != 0:
			p.write("`vtordispex{")
			p.writeInt(int64(t.VBPtrOffset))
			p.write(", ")
			p.writeInt(int64(t.VBOffsetOffset))
			p.write(", ")
			p.writeInt(int64(t.VtorDispOffset))
			p.write(", ")
			p.writeUint(uint64(t.StaticOffset))
			p.write("}'")
		case n.Class&FuncVirtualThisAdjust != 0:
			p.write("`vtordisp{")
			p.writeInt(int64(t.VtorDispOffset))
			p.write(", ")
			p.writeUint(uint64(t.StaticOffset))
			p.write("}'")
		}
	}

	if n.Class&FuncNoParameterList == 0 && (inner || !nameOnly && !p.has(NoArguments)) {
		p.params(n)
	}

	if !p.has(NoThisType) && !nameOnly {
		if n.Quals&QualConst != 0 {
			p.write(" const")
		}
		if n.Quals&QualVolatile != 0 {
			p.write(" volatile")
		}
		for _, kq := range [...]struct {
			q  Qualifiers
			kw string
		}{{QualRestrict, "__restrict"}, {QualUnaligned, "__unaligned"}} {
			if n.Quals&kq.q == 0 {
				continue
			}
			if kw := p.keyword(kq.kw); kw != "" {
				p.write(" ")
				p.write(kw)
			}
		}
	}
	if n.IsNoexcept && !nameOnly {
		p.write(" noexcept")
	}
	if !p.has(NoThisType) && !nameOnly {
		switch n.RefQualifier {
		case RefLValue:
			p.write(" &")
		case RefRValue:
			p.write(" &&")
		}
	}

	if n.Return != nil && !p.has(NoReturnType) && (inner || !nameOnly) {
		n.Return.outputPost(p)
	}
}

func (p *printer) params(n *FunctionSignature) {
	p.write("(")
	if len(n.Params) == 0 && !n.IsVariadic {
		p.write("void")
	}
	for i, t := range n.Params {
		if i > 0 {
			p.write(", ")
		}
		p.typ(t)
	}
	if n.IsVariadic {
		if p.last() != '(' {
			p.write(", ")
		}
		p.write("...")
	}
	p.write(")")
}

// Symbols

func (n *FunctionSymbol) output(p *printer) {
	if n.Signature == nil {
		p.qualifiedName(n.Name)
		return
	}
	n.Signature.pre(p, false)
	p.spaceIfNeeded()
	p.qualifiedName(n.Name)
	n.Signature.post(p, false)
}

func (n *VariableSymbol) output(p *printer) {
	nameOnly := p.has(NameOnly)

	if n.IsTypeDescriptor {
		p.typ(n.Type)
		if !nameOnly {
			p.spaceIfNeeded()
			p.write("`RTTI Type Descriptor Name'")
		}
		return
	}

	var access string
	switch n.Storage {
	case StoragePrivateStatic:
		access = "private"
	case StorageProtectedStatic:
		access = "protected"
	case StoragePublicStatic:
		access = "public"
	}
	if access != "" && !p.has(NoAccessSpecifier) && !nameOnly {
		p.write(access)
		p.write(": ")
	}
	if access != "" && !p.has(NoMemberType) && !nameOnly {
		p.write("static ")
	}

	showType := n.Type != nil && !p.has(NoVariableType) && !nameOnly
	if showType {
		n.Type.outputPre(p)
		p.spaceIfNeeded()
	}
	p.qualifiedName(n.Name)
	if showType {
		n.Type.outputPost(p)
	}
}

func (n *SpecialTableSymbol) output(p *printer) {
	if !p.has(NameOnly) {
		p.qualifiers(n.Quals, false, true)
	}
	p.qualifiedName(n.Name)
	if n.Target != nil {
		p.write("{for `")
		p.qualifiedName(n.Target)
		p.write("'}")
	}
}

var charPrefixes = map[CharKind]string{
	CharNarrow: `"`,
	CharWide:   `L"`,
	Char16:     `u"`,
	Char32:     `U"`,
}

func (n *StringLiteralSymbol) output(p *printer) {
	p.write(charPrefixes[n.Char])
	p.write(n.Decoded)
	p.write(`"`)
	if n.Truncated {
		p.write("...")
	}
}

func (n *LocalStaticGuardVariable) output(p *printer) { p.qualifiedName(n.Name) }

func (n *MD5Symbol) output(p *printer) { p.qualifiedName(n.Name) }

func (n *RawSymbol) output(p *printer) { p.write(n.Text) }

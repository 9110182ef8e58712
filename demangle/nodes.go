package demangle

// NodeKind identifies the type of AST node.
type NodeKind int

const (
	NodeKindUnknown NodeKind = iota
	// Identifier nodes
	NodeKindNamedIdentifier
	NodeKindOperator
	NodeKindLiteralOperator
	NodeKindConversionOperator
	NodeKindStructor
	NodeKindDynamicStructor
	NodeKindLocalStaticGuard
	NodeKindVcallThunk
	NodeKindRttiBaseClassDescriptor
	NodeKindSpecialName
	NodeKindAnonymousNamespace
	NodeKindLocalScope
	// Type nodes
	NodeKindPrimitiveType
	NodeKindPointerType
	NodeKindArrayType
	NodeKindFunctionSignature
	NodeKindTagType
	NodeKindCustomType
	// Template argument nodes
	NodeKindTemplateParameterReference
	NodeKindIntegerLiteral
	// Symbol nodes
	NodeKindFunctionSymbol
	NodeKindThunkSymbol
	NodeKindVariableSymbol
	NodeKindSpecialTableSymbol
	NodeKindStringLiteralSymbol
	NodeKindLocalStaticGuardVariable
	NodeKindMD5Symbol
	NodeKindRawSymbol
	// Container nodes
	NodeKindQualifiedName
)

var nodeKindNames = map[NodeKind]string{
	NodeKindUnknown:                    "Unknown",
	NodeKindNamedIdentifier:            "NamedIdentifier",
	NodeKindOperator:                   "Operator",
	NodeKindLiteralOperator:            "LiteralOperator",
	NodeKindConversionOperator:         "ConversionOperator",
	NodeKindStructor:                   "Structor",
	NodeKindDynamicStructor:            "DynamicStructor",
	NodeKindLocalStaticGuard:           "LocalStaticGuard",
	NodeKindVcallThunk:                 "VcallThunk",
	NodeKindRttiBaseClassDescriptor:    "RttiBaseClassDescriptor",
	NodeKindSpecialName:                "SpecialName",
	NodeKindAnonymousNamespace:         "AnonymousNamespace",
	NodeKindLocalScope:                 "LocalScope",
	NodeKindPrimitiveType:              "PrimitiveType",
	NodeKindPointerType:                "PointerType",
	NodeKindArrayType:                  "ArrayType",
	NodeKindFunctionSignature:          "FunctionSignature",
	NodeKindTagType:                    "TagType",
	NodeKindCustomType:                 "CustomType",
	NodeKindTemplateParameterReference: "TemplateParameterReference",
	NodeKindIntegerLiteral:             "IntegerLiteral",
	NodeKindFunctionSymbol:             "FunctionSymbol",
	NodeKindThunkSymbol:                "ThunkSymbol",
	NodeKindVariableSymbol:             "VariableSymbol",
	NodeKindSpecialTableSymbol:         "SpecialTableSymbol",
	NodeKindStringLiteralSymbol:        "StringLiteralSymbol",
	NodeKindLocalStaticGuardVariable:   "LocalStaticGuardVariable",
	NodeKindMD5Symbol:                  "MD5Symbol",
	NodeKindRawSymbol:                  "RawSymbol",
	NodeKindQualifiedName:              "QualifiedName",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Node is the interface implemented by all AST nodes. String renders the
// node with default flags.
type Node interface {
	Kind() NodeKind
	String() string
}

// Identifier is one component of a qualified name. Any identifier may carry
// template arguments.
type Identifier interface {
	Node
	TemplateArgs() []Node
	setTemplateArgs(args []Node)
	output(p *printer)
}

// Type is a type descriptor. Types render in two halves around the
// declarator name, C style.
type Type interface {
	Node
	Qualifiers() Qualifiers
	setQualifiers(q Qualifiers)
	outputPre(p *printer)
	outputPost(p *printer)
}

// Symbol is the root of a parsed mangled name.
type Symbol interface {
	Node
	// QualifiedName returns the symbol's name, or nil for symbols that have
	// none (string literals, typeinfo names, passthrough input).
	QualifiedName() *QualifiedName
	output(p *printer)
}

// templateArgs is embedded by every identifier.
type templateArgs struct {
	Args []Node
}

func (t *templateArgs) TemplateArgs() []Node { return t.Args }
func (t *templateArgs) setTemplateArgs(args []Node) { t.Args = args }

// QualifiedName is an ordered chain of scope components, outermost first.
type QualifiedName struct {
	Components []Identifier
}

func (n *QualifiedName) Kind() NodeKind { return NodeKindQualifiedName }
func (n *QualifiedName) String() string { return RenderNode(n, 0) }

// Unqualified returns the innermost component.
func (n *QualifiedName) Unqualified() Identifier {
	if n == nil || len(n.Components) == 0 {
		return nil
	}
	return n.Components[len(n.Components)-1]
}

// NamedIdentifier is a plain source-level name.
type NamedIdentifier struct {
	templateArgs
	Name string
}

func (n *NamedIdentifier) Kind() NodeKind { return NodeKindNamedIdentifier }
func (n *NamedIdentifier) String() string { return RenderNode(n, 0) }

// OperatorKind identifies an overloadable operator or compiler-generated
// special member function.
type OperatorKind int

const (
	OpUnknown OperatorKind = iota
	OpNew
	OpDelete
	OpAssign
	OpRightShift
	OpLeftShift
	OpLogicalNot
	OpEqual
	OpNotEqual
	OpSubscript
	OpArrow
	OpDereference
	OpIncrement
	OpDecrement
	OpMinus
	OpPlus
	OpBitwiseAnd
	OpArrowStar
	OpDivide
	OpModulo
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpComma
	OpCall
	OpComplement
	OpXor
	OpBitwiseOr
	OpLogicalAnd
	OpLogicalOr
	OpMultiplyAssign
	OpPlusAssign
	OpMinusAssign
	OpDivideAssign
	OpModuloAssign
	OpRightShiftAssign
	OpLeftShiftAssign
	OpAndAssign
	OpOrAssign
	OpXorAssign
	OpVbaseDtor
	OpVecDelDtor
	OpDefaultCtorClosure
	OpScalarDelDtor
	OpVecCtorIter
	OpVecDtorIter
	OpVecVbaseCtorIter
	OpVdispMap
	OpEHVecCtorIter
	OpEHVecDtorIter
	OpEHVecVbaseCtorIter
	OpCopyCtorClosure
	OpLocalVftableCtorClosure
	OpArrayNew
	OpArrayDelete
	OpManVectorCtorIter
	OpManVectorDtorIter
	OpEHVectorCopyCtorIter
	OpEHVectorVbaseCopyCtorIter
	OpVectorCopyCtorIter
	OpVectorVbaseCopyCtorIter
	OpManVectorVbaseCopyCtorIter
	OpCoAwait
	OpSpaceship
)

var operatorNames = map[OperatorKind]string{
	OpNew:                        "operator new",
	OpDelete:                     "operator delete",
	OpAssign:                     "operator=",
	OpRightShift:                 "operator>>",
	OpLeftShift:                  "operator<<",
	OpLogicalNot:                 "operator!",
	OpEqual:                      "operator==",
	OpNotEqual:                   "operator!=",
	OpSubscript:                  "operator[]",
	OpArrow:                      "operator->",
	OpDereference:                "operator*",
	OpIncrement:                  "operator++",
	OpDecrement:                  "operator--",
	OpMinus:                      "operator-",
	OpPlus:                       "operator+",
	OpBitwiseAnd:                 "operator&",
	OpArrowStar:                  "operator->*",
	OpDivide:                     "operator/",
	OpModulo:                     "operator%",
	OpLess:                       "operator<",
	OpLessEqual:                  "operator<=",
	OpGreater:                    "operator>",
	OpGreaterEqual:               "operator>=",
	OpComma:                      "operator,",
	OpCall:                       "operator()",
	OpComplement:                 "operator~",
	OpXor:                        "operator^",
	OpBitwiseOr:                  "operator|",
	OpLogicalAnd:                 "operator&&",
	OpLogicalOr:                  "operator||",
	OpMultiplyAssign:             "operator*=",
	OpPlusAssign:                 "operator+=",
	OpMinusAssign:                "operator-=",
	OpDivideAssign:               "operator/=",
	OpModuloAssign:               "operator%=",
	OpRightShiftAssign:           "operator>>=",
	OpLeftShiftAssign:            "operator<<=",
	OpAndAssign:                  "operator&=",
	OpOrAssign:                   "operator|=",
	OpXorAssign:                  "operator^=",
	OpVbaseDtor:                  "`vbase dtor'",
	OpVecDelDtor:                 "`vector deleting dtor'",
	OpDefaultCtorClosure:         "`default constructor closure'",
	OpScalarDelDtor:              "`scalar deleting dtor'",
	OpVecCtorIter:                "`vector ctor iterator'",
	OpVecDtorIter:                "`vector dtor iterator'",
	OpVecVbaseCtorIter:           "`vector vbase ctor iterator'",
	OpVdispMap:                   "`virtual displacement map'",
	OpEHVecCtorIter:              "`eh vector ctor iterator'",
	OpEHVecDtorIter:              "`eh vector dtor iterator'",
	OpEHVecVbaseCtorIter:         "`eh vector vbase ctor iterator'",
	OpCopyCtorClosure:            "`copy ctor closure'",
	OpLocalVftableCtorClosure:    "`local vftable ctor closure'",
	OpArrayNew:                   "operator new[]",
	OpArrayDelete:                "operator delete[]",
	OpManVectorCtorIter:          "`managed vector ctor iterator'",
	OpManVectorDtorIter:          "`managed vector dtor iterator'",
	OpEHVectorCopyCtorIter:       "`EH vector copy ctor iterator'",
	OpEHVectorVbaseCopyCtorIter:  "`EH vector vbase copy ctor iterator'",
	OpVectorCopyCtorIter:         "`vector copy ctor iterator'",
	OpVectorVbaseCopyCtorIter:    "`vector vbase copy constructor iterator'",
	OpManVectorVbaseCopyCtorIter: "`managed vector vbase copy constructor iterator'",
	OpCoAwait:                    "operator co_await",
	OpSpaceship:                  "operator<=>",
}

func (k OperatorKind) String() string {
	if name, ok := operatorNames[k]; ok {
		return name
	}
	return "operator ?"
}

// OperatorIdentifier names an operator or compiler-generated function.
type OperatorIdentifier struct {
	templateArgs
	Operator OperatorKind
}

func (n *OperatorIdentifier) Kind() NodeKind { return NodeKindOperator }
func (n *OperatorIdentifier) String() string { return RenderNode(n, 0) }

// LiteralOperatorIdentifier is a user-defined literal, operator ""_x.
type LiteralOperatorIdentifier struct {
	templateArgs
	Name string
}

func (n *LiteralOperatorIdentifier) Kind() NodeKind { return NodeKindLiteralOperator }
func (n *LiteralOperatorIdentifier) String() string { return RenderNode(n, 0) }

// ConversionOperatorIdentifier is operator T(). The target type is taken
// from the function's return type once the signature has been parsed.
type ConversionOperatorIdentifier struct {
	templateArgs
	Target Type
}

func (n *ConversionOperatorIdentifier) Kind() NodeKind { return NodeKindConversionOperator }
func (n *ConversionOperatorIdentifier) String() string { return RenderNode(n, 0) }

// StructorIdentifier is a constructor or destructor. Class is the enclosing
// class component.
type StructorIdentifier struct {
	templateArgs
	Class        Identifier
	IsDestructor bool
}

func (n *StructorIdentifier) Kind() NodeKind { return NodeKindStructor }
func (n *StructorIdentifier) String() string { return RenderNode(n, 0) }

// DynamicStructorIdentifier names a dynamic initializer or atexit destructor
// stub. Exactly one of Variable and Name is set.
type DynamicStructorIdentifier struct {
	templateArgs
	Variable     *VariableSymbol
	Name         *QualifiedName
	IsDestructor bool
}

func (n *DynamicStructorIdentifier) Kind() NodeKind { return NodeKindDynamicStructor }
func (n *DynamicStructorIdentifier) String() string { return RenderNode(n, 0) }

// LocalStaticGuardIdentifier names the guard variable of a function-local
// static.
type LocalStaticGuardIdentifier struct {
	templateArgs
	IsThread   bool
	ScopeIndex uint32
}

func (n *LocalStaticGuardIdentifier) Kind() NodeKind { return NodeKindLocalStaticGuard }
func (n *LocalStaticGuardIdentifier) String() string { return RenderNode(n, 0) }

// VcallThunkIdentifier names a virtual call thunk.
type VcallThunkIdentifier struct {
	templateArgs
	OffsetInVTable uint64
}

func (n *VcallThunkIdentifier) Kind() NodeKind { return NodeKindVcallThunk }
func (n *VcallThunkIdentifier) String() string { return RenderNode(n, 0) }

// RttiBaseClassDescriptor names an RTTI base class descriptor.
type RttiBaseClassDescriptor struct {
	templateArgs
	NVOffset      uint32
	VBPtrOffset   int32
	VBTableOffset uint32
	Flags         uint32
}

func (n *RttiBaseClassDescriptor) Kind() NodeKind { return NodeKindRttiBaseClassDescriptor }
func (n *RttiBaseClassDescriptor) String() string { return RenderNode(n, 0) }

// SpecialNameKind identifies a compiler-generated table or descriptor.
type SpecialNameKind int

const (
	SpecialVftable SpecialNameKind = iota
	SpecialVbtable
	SpecialLocalVftable
	SpecialRttiCompleteObjectLocator
	SpecialRttiTypeDescriptor
	SpecialRttiBaseClassArray
	SpecialRttiClassHierarchyDescriptor
)

var specialNames = map[SpecialNameKind]string{
	SpecialVftable:                      "`vftable'",
	SpecialVbtable:                      "`vbtable'",
	SpecialLocalVftable:                 "`local vftable'",
	SpecialRttiCompleteObjectLocator:    "`RTTI Complete Object Locator'",
	SpecialRttiTypeDescriptor:           "`RTTI Type Descriptor'",
	SpecialRttiBaseClassArray:           "`RTTI Base Class Array'",
	SpecialRttiClassHierarchyDescriptor: "`RTTI Class Hierarchy Descriptor'",
}

func (k SpecialNameKind) String() string { return specialNames[k] }

// SpecialName is a vftable, vbtable or RTTI marker component.
type SpecialName struct {
	templateArgs
	Special SpecialNameKind
}

func (n *SpecialName) Kind() NodeKind { return NodeKindSpecialName }
func (n *SpecialName) String() string { return RenderNode(n, 0) }

// AnonymousNamespace is `anonymous namespace'. Key is the compiler-chosen
// discriminator.
type AnonymousNamespace struct {
	templateArgs
	Key string
}

func (n *AnonymousNamespace) Kind() NodeKind { return NodeKindAnonymousNamespace }
func (n *AnonymousNamespace) String() string { return RenderNode(n, 0) }

// LocalScope is a numbered block scope inside a function, rendered as
// `scope'::`index'.
type LocalScope struct {
	templateArgs
	Scope Symbol
	Index uint64
}

func (n *LocalScope) Kind() NodeKind { return NodeKindLocalScope }
func (n *LocalScope) String() string { return RenderNode(n, 0) }

// Qualifiers is a set of type qualifiers.
type Qualifiers uint8

const (
	QualConst Qualifiers = 1 << iota
	QualVolatile
	QualRestrict
	QualUnaligned
	QualPointer64
)

// Has reports whether every bit of o is set.
func (q Qualifiers) Has(o Qualifiers) bool { return q&o == o }

// IsEmpty reports whether no qualifier is set.
func (q Qualifiers) IsEmpty() bool { return q == 0 }

// PrimitiveKind identifies primitive types.
type PrimitiveKind int

const (
	PrimVoid PrimitiveKind = iota
	PrimBool
	PrimChar
	PrimSChar
	PrimUChar
	PrimChar8
	PrimChar16
	PrimChar32
	PrimShort
	PrimUShort
	PrimInt
	PrimUInt
	PrimLong
	PrimULong
	PrimInt64
	PrimUInt64
	PrimWChar
	PrimFloat
	PrimDouble
	PrimLongDouble
	PrimNullptr
	PrimAuto
	PrimDecltypeAuto
)

var primitiveNames = map[PrimitiveKind]string{
	PrimVoid:         "void",
	PrimBool:         "bool",
	PrimChar:         "char",
	PrimSChar:        "signed char",
	PrimUChar:        "unsigned char",
	PrimChar8:        "char8_t",
	PrimChar16:       "char16_t",
	PrimChar32:       "char32_t",
	PrimShort:        "short",
	PrimUShort:       "unsigned short",
	PrimInt:          "int",
	PrimUInt:         "unsigned int",
	PrimLong:         "long",
	PrimULong:        "unsigned long",
	PrimInt64:        "__int64",
	PrimUInt64:       "unsigned __int64",
	PrimWChar:        "wchar_t",
	PrimFloat:        "float",
	PrimDouble:       "double",
	PrimLongDouble:   "long double",
	PrimNullptr:      "std::nullptr_t",
	PrimAuto:         "auto",
	PrimDecltypeAuto: "decltype(auto)",
}

func (k PrimitiveKind) String() string { return primitiveNames[k] }

// PrimitiveType is a fundamental type.
type PrimitiveType struct {
	Quals     Qualifiers
	Primitive PrimitiveKind
}

func (n *PrimitiveType) Kind() NodeKind { return NodeKindPrimitiveType }
func (n *PrimitiveType) String() string { return RenderNode(n, 0) }
func (n *PrimitiveType) Qualifiers() Qualifiers { return n.Quals }
func (n *PrimitiveType) setQualifiers(q Qualifiers) { n.Quals = q }

// PointerAffinity distinguishes pointer types.
type PointerAffinity int

const (
	AffinityPointer PointerAffinity = iota
	AffinityReference
	AffinityRValueReference
)

// PointerType is a pointer, reference, or rvalue reference. A non-nil
// ClassParent makes it a pointer to member.
type PointerType struct {
	Quals       Qualifiers
	Affinity    PointerAffinity
	ClassParent *QualifiedName
	Pointee     Type
}

func (n *PointerType) Kind() NodeKind { return NodeKindPointerType }
func (n *PointerType) String() string { return RenderNode(n, 0) }
func (n *PointerType) Qualifiers() Qualifiers { return n.Quals }
func (n *PointerType) setQualifiers(q Qualifiers) { n.Quals = q }

// IsMemberPointer reports whether this is a pointer to member.
func (n *PointerType) IsMemberPointer() bool { return n.ClassParent != nil }

// ArrayType is an array with one or more dimensions. A zero dimension is
// rendered as [].
type ArrayType struct {
	Quals      Qualifiers
	Dimensions []uint64
	Element    Type
}

func (n *ArrayType) Kind() NodeKind { return NodeKindArrayType }
func (n *ArrayType) String() string { return RenderNode(n, 0) }
func (n *ArrayType) Qualifiers() Qualifiers { return n.Quals }
func (n *ArrayType) setQualifiers(q Qualifiers) { n.Quals = q }

// CallingConvention represents function calling conventions.
type CallingConvention int

const (
	CallNone CallingConvention = iota
	CallCdecl
	CallPascal
	CallThiscall
	CallStdcall
	CallFastcall
	CallClrcall
	CallEabi
	CallVectorcall
	CallSwift
	CallSwiftAsync
)

var callingConvNames = map[CallingConvention]string{
	CallCdecl:      "__cdecl",
	CallPascal:     "__pascal",
	CallThiscall:   "__thiscall",
	CallStdcall:    "__stdcall",
	CallFastcall:   "__fastcall",
	CallClrcall:    "__clrcall",
	CallEabi:       "__eabi",
	CallVectorcall: "__vectorcall",
	CallSwift:      "__attribute__((__swiftcall__)) ",
	CallSwiftAsync: "__attribute__((__swiftasynccall__)) ",
}

func (c CallingConvention) String() string { return callingConvNames[c] }

// FuncClass holds the access, storage and thunk attributes of a function.
type FuncClass uint16

const (
	FuncPublic FuncClass = 1 << iota
	FuncProtected
	FuncPrivate
	FuncGlobal
	FuncStatic
	FuncVirtual
	FuncFar
	FuncExternC
	FuncNoParameterList
	FuncVirtualThisAdjust
	FuncVirtualThisAdjustEx
	FuncStaticThisAdjust
)

// Has reports whether every bit of o is set.
func (c FuncClass) Has(o FuncClass) bool { return c&o == o }

// RefQualifier for member function reference qualifiers.
type RefQualifier int

const (
	RefNone RefQualifier = iota
	RefLValue
	RefRValue
)

// ThisAdjustor holds the this-pointer adjustments of a thunk.
type ThisAdjustor struct {
	StaticOffset   uint32
	VBPtrOffset    int32
	VBOffsetOffset int32
	VtorDispOffset int32
}

// FunctionSignature is a function type. Quals and RefQualifier describe the
// implicit this of member functions. A non-nil Thunk marks an adjustor or
// vcall thunk.
type FunctionSignature struct {
	Quals        Qualifiers
	CallingConv  CallingConvention
	Class        FuncClass
	RefQualifier RefQualifier
	Return       Type // nil for structors
	Params       []Type
	VoidParams   bool // parameter list is the single code for (void)
	IsVariadic   bool
	IsNoexcept   bool
	Thunk        *ThisAdjustor
}

func (n *FunctionSignature) Kind() NodeKind { return NodeKindFunctionSignature }
func (n *FunctionSignature) String() string { return RenderNode(n, 0) }
func (n *FunctionSignature) Qualifiers() Qualifiers { return n.Quals }
func (n *FunctionSignature) setQualifiers(q Qualifiers) { n.Quals = q }

// TagKind identifies class types.
type TagKind int

const (
	TagClass TagKind = iota
	TagStruct
	TagUnion
	TagEnum
)

var tagNames = map[TagKind]string{
	TagClass:  "class",
	TagStruct: "struct",
	TagUnion:  "union",
	TagEnum:   "enum",
}

func (k TagKind) String() string { return tagNames[k] }

// TagType is a class, struct, union, or enum type.
type TagType struct {
	Quals Qualifiers
	Tag   TagKind
	Name  *QualifiedName
}

func (n *TagType) Kind() NodeKind { return NodeKindTagType }
func (n *TagType) String() string { return RenderNode(n, 0) }
func (n *TagType) Qualifiers() Qualifiers { return n.Quals }
func (n *TagType) setQualifiers(q Qualifiers) { n.Quals = q }

// CustomType is a type spelled as a bare identifier, such as <auto>.
type CustomType struct {
	Quals Qualifiers
	Name  Identifier
}

func (n *CustomType) Kind() NodeKind { return NodeKindCustomType }
func (n *CustomType) String() string { return RenderNode(n, 0) }
func (n *CustomType) Qualifiers() Qualifiers { return n.Quals }
func (n *CustomType) setQualifiers(q Qualifiers) { n.Quals = q }

// TemplateParameterReference is a non-type template argument naming a
// symbol or member, optionally with inheritance offsets.
type TemplateParameterReference struct {
	Symbol          Symbol
	Offsets         []int64
	Affinity        PointerAffinity
	HasAffinity     bool
	IsMemberPointer bool
}

func (n *TemplateParameterReference) Kind() NodeKind { return NodeKindTemplateParameterReference }
func (n *TemplateParameterReference) String() string { return RenderNode(n, 0) }

// IntegerLiteral represents an integer constant.
type IntegerLiteral struct {
	Value    uint64
	Negative bool
}

func (n *IntegerLiteral) Kind() NodeKind { return NodeKindIntegerLiteral }
func (n *IntegerLiteral) String() string { return RenderNode(n, 0) }

// FunctionSymbol is a function, or a thunk when its signature has one.
type FunctionSymbol struct {
	Name      *QualifiedName
	Signature *FunctionSignature
}

func (n *FunctionSymbol) Kind() NodeKind {
	if n.Signature != nil && n.Signature.Thunk != nil {
		return NodeKindThunkSymbol
	}
	return NodeKindFunctionSymbol
}
func (n *FunctionSymbol) String() string { return RenderNode(n, 0) }
func (n *FunctionSymbol) QualifiedName() *QualifiedName { return n.Name }

// StorageClass identifies the storage of a data symbol.
type StorageClass int

const (
	StorageNone StorageClass = iota
	StoragePrivateStatic
	StorageProtectedStatic
	StoragePublicStatic
	StorageGlobal
	StorageFunctionLocalStatic
)

// VariableSymbol is a data symbol. A typeinfo name has IsTypeDescriptor set
// and no name.
type VariableSymbol struct {
	Name             *QualifiedName
	Storage          StorageClass
	Type             Type
	IsTypeDescriptor bool
}

func (n *VariableSymbol) Kind() NodeKind { return NodeKindVariableSymbol }
func (n *VariableSymbol) String() string { return RenderNode(n, 0) }
func (n *VariableSymbol) QualifiedName() *QualifiedName { return n.Name }

// SpecialTableSymbol is a vftable, vbtable, local vftable, or complete
// object locator.
type SpecialTableSymbol struct {
	Name   *QualifiedName
	Target *QualifiedName
	Quals  Qualifiers
}

func (n *SpecialTableSymbol) Kind() NodeKind { return NodeKindSpecialTableSymbol }
func (n *SpecialTableSymbol) String() string { return RenderNode(n, 0) }
func (n *SpecialTableSymbol) QualifiedName() *QualifiedName { return n.Name }

// CharKind identifies the character type of a string literal.
type CharKind int

const (
	CharNarrow CharKind = iota
	CharWide
	Char16
	Char32
)

// StringLiteralSymbol is a string literal with its decoded, escaped text.
type StringLiteralSymbol struct {
	Char      CharKind
	Decoded   string
	Truncated bool
}

func (n *StringLiteralSymbol) Kind() NodeKind { return NodeKindStringLiteralSymbol }
func (n *StringLiteralSymbol) String() string { return RenderNode(n, 0) }
func (n *StringLiteralSymbol) QualifiedName() *QualifiedName { return nil }

// LocalStaticGuardVariable is the guard of a function-local static.
type LocalStaticGuardVariable struct {
	Name      *QualifiedName
	IsVisible bool
}

func (n *LocalStaticGuardVariable) Kind() NodeKind { return NodeKindLocalStaticGuardVariable }
func (n *LocalStaticGuardVariable) String() string { return RenderNode(n, 0) }
func (n *LocalStaticGuardVariable) QualifiedName() *QualifiedName { return n.Name }

// MD5Symbol is a hashed name. It cannot be decoded and renders verbatim.
type MD5Symbol struct {
	Name *QualifiedName
}

func (n *MD5Symbol) Kind() NodeKind { return NodeKindMD5Symbol }
func (n *MD5Symbol) String() string { return RenderNode(n, 0) }
func (n *MD5Symbol) QualifiedName() *QualifiedName { return n.Name }

// RawSymbol is input that is not a mangled C++ name, such as a C symbol.
type RawSymbol struct {
	Text string
}

func (n *RawSymbol) Kind() NodeKind { return NodeKindRawSymbol }
func (n *RawSymbol) String() string { return n.Text }
func (n *RawSymbol) QualifiedName() *QualifiedName { return nil }

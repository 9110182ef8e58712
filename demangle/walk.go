package demangle

// Children returns the direct children of n in rendering order. Nodes
// reached through back-references appear under every parent that uses
// them.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) { out = append(out, c) }

	switch n := n.(type) {
	case *QualifiedName:
		if n == nil {
			return nil
		}
		for _, c := range n.Components {
			add(c)
		}

	case *NamedIdentifier:
		return n.Args
	case *OperatorIdentifier:
		return n.Args
	case *LiteralOperatorIdentifier:
		return n.Args
	case *RttiBaseClassDescriptor:
		return n.Args
	case *SpecialName:
		return n.Args
	case *AnonymousNamespace:
		return n.Args
	case *ConversionOperatorIdentifier:
		out = append(out, n.Args...)
		if n.Target != nil {
			add(n.Target)
		}
	case *StructorIdentifier:
		if n.Class != nil {
			add(n.Class)
		}
		out = append(out, n.Args...)
	case *DynamicStructorIdentifier:
		switch {
		case n.Variable != nil:
			add(n.Variable)
		case n.Name != nil:
			add(n.Name)
		}
	case *LocalScope:
		if n.Scope != nil {
			add(n.Scope)
		}

	case *PointerType:
		if n.ClassParent != nil {
			add(n.ClassParent)
		}
		add(n.Pointee)
	case *ArrayType:
		add(n.Element)
	case *FunctionSignature:
		if n.Return != nil {
			add(n.Return)
		}
		for _, t := range n.Params {
			add(t)
		}
	case *TagType:
		if n.Name != nil {
			add(n.Name)
		}
	case *CustomType:
		if n.Name != nil {
			add(n.Name)
		}

	case *TemplateParameterReference:
		if n.Symbol != nil {
			add(n.Symbol)
		}

	case *FunctionSymbol:
		if n.Name != nil {
			add(n.Name)
		}
		if n.Signature != nil {
			add(n.Signature)
		}
	case *VariableSymbol:
		if n.Type != nil {
			add(n.Type)
		}
		if n.Name != nil {
			add(n.Name)
		}
	case *SpecialTableSymbol:
		if n.Name != nil {
			add(n.Name)
		}
		if n.Target != nil {
			add(n.Target)
		}
	case *LocalStaticGuardVariable:
		if n.Name != nil {
			add(n.Name)
		}
	case *MD5Symbol:
		if n.Name != nil {
			add(n.Name)
		}
	}
	return out
}

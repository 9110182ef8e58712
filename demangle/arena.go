package demangle

import "errors"

var errTooManyNodes = errors.New("node limit exceeded")

// DefaultMaxNodes bounds the number of AST nodes a single parse may create.
const DefaultMaxNodes = 2048

// maxDepth bounds nesting of types, template argument lists and nested
// symbols.
const maxDepth = 256

// maxVisits bounds the nodes reachable from the root, counting shared
// back-referenced subtrees once per reference.
const maxVisits = 1 << 16

// arena owns every node created during one parse. Nodes are carved out of
// per-type chunks so a typical symbol costs a handful of allocations.
type arena struct {
	limit int
	count int

	named chunk[NamedIdentifier]
	quals chunk[QualifiedName]
	prims chunk[PrimitiveType]
	ptrs  chunk[PointerType]
	tags  chunk[TagType]
	sigs  chunk[FunctionSignature]
}

func newArena(limit int) *arena {
	if limit <= 0 {
		limit = DefaultMaxNodes
	}
	return &arena{limit: limit}
}

// reserve accounts for one node.
func (a *arena) reserve() error {
	if a.count >= a.limit {
		return errTooManyNodes
	}
	a.count++
	return nil
}

const chunkSize = 32

// chunk hands out pointers into a fixed backing array, starting a fresh
// array when the current one is used up.
type chunk[T any] struct {
	buf []T
}

func (c *chunk[T]) next() *T {
	if len(c.buf) == 0 {
		c.buf = make([]T, chunkSize)
	}
	p := &c.buf[0]
	c.buf = c.buf[1:]
	return p
}

// place copies v into c after charging the node budget.
func place[T any](a *arena, c *chunk[T], v T) (*T, error) {
	if err := a.reserve(); err != nil {
		return nil, err
	}
	p := c.next()
	*p = v
	return p, nil
}

// alloc is place for node types without a dedicated chunk.
func alloc[T any](a *arena, v T) (*T, error) {
	if err := a.reserve(); err != nil {
		return nil, err
	}
	p := new(T)
	*p = v
	return p, nil
}

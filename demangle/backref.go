package demangle

// maxBackrefs is the capacity of each back-reference table. Digits 0-9 index
// into it.
const maxBackrefs = 10

type nameEntry struct {
	key string
	id  Identifier
}

// nameTable memorizes name components in order of first appearance.
// Insertion into a full table is silently skipped.
type nameTable struct {
	entries [maxBackrefs]nameEntry
	n       int
}

// insert adds id under key unless key is already present or the table is
// full. It returns the slot holding key, or -1.
func (t *nameTable) insert(key string, id Identifier) int {
	for i := 0; i < t.n; i++ {
		if t.entries[i].key == key {
			return i
		}
	}
	if t.n == maxBackrefs {
		return -1
	}
	t.entries[t.n] = nameEntry{key: key, id: id}
	t.n++
	return t.n - 1
}

func (t *nameTable) resolve(i int) (Identifier, bool) {
	if i < 0 || i >= t.n {
		return nil, false
	}
	return t.entries[i].id, true
}

func (t *nameTable) contains(key string) bool {
	for i := 0; i < t.n; i++ {
		if t.entries[i].key == key {
			return true
		}
	}
	return false
}

func (t *nameTable) full() bool { return t.n == maxBackrefs }

func (t *nameTable) len() int { return t.n }

// typeTable memorizes function parameter types whose encoding is longer
// than one character.
type typeTable struct {
	entries [maxBackrefs]Type
	n       int
}

// insert appends ty and returns its slot, or -1 when the table is full.
func (t *typeTable) insert(ty Type) int {
	if t.n == maxBackrefs {
		return -1
	}
	t.entries[t.n] = ty
	t.n++
	return t.n - 1
}

func (t *typeTable) resolve(i int) (Type, bool) {
	if i < 0 || i >= t.n {
		return nil, false
	}
	return t.entries[i], true
}

func (t *typeTable) len() int { return t.n }

// backrefs is the back-reference context. Template instantiations parse
// with a fresh context and restore the enclosing one afterwards.
type backrefs struct {
	names  nameTable
	params typeTable
}

package ash

// StructTable is the arena of struct definitions, keyed by name. Struct
// declarations refer into it by handle; the table never owns declarations.
type StructTable struct {
	structs  []*Struct
	byName   map[string]StructHandle
	pointers map[string]struct{}
}

// NewStructTable creates an empty table.
func NewStructTable() *StructTable {
	return &StructTable{
		byName:   make(map[string]StructHandle),
		pointers: make(map[string]struct{}),
	}
}

// Add registers s and returns its handle. The first definition of a name
// wins; later ones return the existing handle.
func (t *StructTable) Add(s *Struct) StructHandle {
	if h, ok := t.byName[s.Name]; ok {
		return h
	}
	h := StructHandle(len(t.structs))
	t.structs = append(t.structs, s)
	t.byName[s.Name] = h
	return h
}

// AddPointer registers name as a buffer reference type. Declarations of
// such a type are device addresses.
func (t *StructTable) AddPointer(name string) {
	t.pointers[name] = struct{}{}
}

// IsPointer reports whether name was registered with AddPointer.
func (t *StructTable) IsPointer(name string) bool {
	if t == nil {
		return false
	}
	_, ok := t.pointers[name]
	return ok
}

// Lookup returns the handle for name.
func (t *StructTable) Lookup(name string) (StructHandle, bool) {
	if t == nil {
		return 0, false
	}
	h, ok := t.byName[name]
	return h, ok
}

// Get returns the struct for h, or nil if h is out of range.
func (t *StructTable) Get(h StructHandle) *Struct {
	if t == nil || int(h) >= len(t.structs) {
		return nil
	}
	return t.structs[h]
}

// Len returns the number of registered structs.
func (t *StructTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.structs)
}

// pointerSize is the size of a buffer device address.
const pointerSize = 8

var builtinSizes = map[DeclType]int{
	DeclFloat:  4,
	DeclInt:    4,
	DeclBool:   4,
	DeclFloat2: 8,
	DeclInt2:   8,
	DeclFloat3: 12,
	DeclInt3:   12,
	DeclFloat4: 16,
	DeclInt4:   16,
	DeclMat3:   36,
	DeclMat4:   64,
}

// SizeOf returns the tightly packed byte size of d, counting array
// elements. An unsized array has size 0. Unbound struct declarations fail
// with ErrStructNotResolved unless their type is a registered buffer
// reference. A nil table is valid for builtin declarations.
func (t *StructTable) SizeOf(d Decl) (int, error) {
	return t.sizeOf(d, nil)
}

// StructSize returns the sum of the member sizes of s.
func (t *StructTable) StructSize(s *Struct) (int, error) {
	return t.membersSize(s.Declarations, nil)
}

// PushConstantSize returns the sum of the member sizes of pc.
func (t *StructTable) PushConstantSize(pc *PushConstant) (int, error) {
	return t.membersSize(pc.Declarations, nil)
}

func (t *StructTable) sizeOf(d Decl, visiting map[StructHandle]bool) (int, error) {
	switch d := d.(type) {
	case *Declaration:
		size, ok := builtinSizes[d.Type]
		if !ok {
			return 0, NewSourceErrorf(ErrUnsizedType, d.Span, "%s %s has no size", d.Type, d.Name)
		}
		return size * d.Count, nil

	case *StructDeclaration:
		if d.Struct == nil {
			if t.IsPointer(d.StructName) {
				return pointerSize * d.Count, nil
			}
			return 0, NewSourceErrorf(ErrStructNotResolved, d.Span, "struct %s is not resolved", d.StructName)
		}
		s := t.Get(*d.Struct)
		if s == nil {
			return 0, NewSourceErrorf(ErrStructNotResolved, d.Span, "struct %s is not in the struct table", d.StructName)
		}
		if visiting[*d.Struct] {
			return 0, NewSourceErrorf(ErrRecursiveStruct, d.Span, "struct %s contains itself", d.StructName)
		}
		if visiting == nil {
			visiting = make(map[StructHandle]bool)
		}
		visiting[*d.Struct] = true
		size, err := t.membersSize(s.Declarations, visiting)
		delete(visiting, *d.Struct)
		if err != nil {
			return 0, err
		}
		return size * d.Count, nil

	case *BlockDeclaration:
		size, err := t.membersSize(d.Declarations, visiting)
		if err != nil {
			return 0, err
		}
		return size * d.Count, nil

	case *BufferDeclaration:
		size, err := t.membersSize(d.Declarations, visiting)
		if err != nil {
			return 0, err
		}
		return size * d.Count, nil
	}
	return 0, NewSourceErrorf(ErrUnknownDeclarationType, d.Pos(), "no size rule for %s", d.Kind())
}

func (t *StructTable) membersSize(decls []Decl, visiting map[StructHandle]bool) (int, error) {
	total := 0
	for _, d := range decls {
		size, err := t.sizeOf(d, visiting)
		if err != nil {
			return 0, err
		}
		total += size
	}
	return total, nil
}

// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import "github.com/gogpu/ashl/ash"

// ExtractFunctionWithDependencies returns a module holding the last
// module-level function named entry and every statement before it that the
// function transitively depends on, in source order. Layout, PushConstant
// and Include statements are always kept. The second result is false when
// no function named entry exists.
//
// Run ExtractScope first: named scopes left in m are dropped.
func ExtractFunctionWithDependencies(m *ash.Module, entry string) (*ash.Module, bool) {
	entryIndex := -1
	for i, stmt := range m.Statements {
		if fn, ok := stmt.(*ash.Function); ok && fn.Name == entry {
			entryIndex = i
		}
	}
	if entryIndex < 0 {
		return nil, false
	}

	required := newSymbols()
	required.merge(symbolsOf(m.Statements[entryIndex]))
	kept := []ash.Node{m.Statements[entryIndex]}

	// Declarations never refer to later statements, so one backward pass
	// reaches the fixpoint.
	for i := entryIndex - 1; i >= 0; i-- {
		stmt := m.Statements[i]
		if !required.needs(stmt) {
			continue
		}
		required.merge(symbolsOf(stmt))
		kept = append(kept, stmt)
	}

	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	out := *m
	out.Statements = kept
	return &out, true
}

type nameSet map[string]struct{}

func (s nameSet) has(name string) bool {
	_, ok := s[name]
	return ok
}

// symbols is the set of names a piece of code depends on.
type symbols struct {
	calls       nameSet
	identifiers nameSet
	types       nameSet
}

func newSymbols() *symbols {
	return &symbols{
		calls:       make(nameSet),
		identifiers: make(nameSet),
		types:       make(nameSet),
	}
}

func (s *symbols) merge(o *symbols) {
	for name := range o.calls {
		s.calls[name] = struct{}{}
	}
	for name := range o.identifiers {
		s.identifiers[name] = struct{}{}
	}
	for name := range o.types {
		s.types[name] = struct{}{}
	}
}

// needs reports whether stmt defines something s depends on.
func (s *symbols) needs(stmt ash.Node) bool {
	switch n := stmt.(type) {
	case *ash.Function:
		return s.calls.has(n.Name)
	case *ash.Define:
		return s.identifiers.has(n.Name) || s.calls.has(n.Name)
	case *ash.Struct:
		return s.types.has(n.Name)
	case *ash.Layout, *ash.PushConstant, *ash.Include:
		return true
	}
	if c := constOf(stmt); c != nil {
		return s.identifiers.has(c.Declaration.DeclName())
	}
	return false
}

// constOf returns the Const declared by a module-level const statement,
// with or without an initializer.
func constOf(stmt ash.Node) *ash.Const {
	switch n := stmt.(type) {
	case *ash.Const:
		return n
	case *ash.Assign:
		if c, ok := n.Left.(*ash.Const); ok {
			return c
		}
	}
	return nil
}

// symbolsOf collects the names n depends on into a fresh set, so locals
// of one statement never hide names another statement needs.
func symbolsOf(n ash.Node) *symbols {
	s := newSymbols()
	s.collect(n)
	return s
}

// collect walks children last to first. A declaration removes its own name
// from the identifier set, so uses that follow a local declaration, which
// are visited first, do not leak out as dependencies.
func (s *symbols) collect(n ash.Node) {
	switch n := n.(type) {
	case *ash.Call:
		s.calls[n.Name] = struct{}{}
	case *ash.Identifier:
		s.identifiers[n.Name] = struct{}{}
		return
	case *ash.Access:
		// Only the root of a member chain is a reference.
		root := n.Left
		for {
			acc, ok := root.(*ash.Access)
			if !ok {
				break
			}
			root = acc.Left
		}
		s.collect(root)
		return
	case ash.Decl:
		children := n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			s.collect(children[i])
		}
		s.types[n.TypeName()] = struct{}{}
		delete(s.identifiers, n.DeclName())
		return
	}

	children := n.Children()
	for i := len(children) - 1; i >= 0; i-- {
		s.collect(children[i])
	}
}

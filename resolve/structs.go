// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import "github.com/gogpu/ashl/ash"

// ResolveStructReferences binds every struct declaration in m, including
// those in named scopes, to its struct definition. Definitions are
// collected in a first pass so declarations may come before the struct
// they name. Buffer blocks declared with layout(buffer_reference) are
// registered as pointer types. Unknown names stay unbound. The table is
// stored on m.Structs and returned.
func ResolveStructReferences(m *ash.Module) *ash.StructTable {
	table := ash.NewStructTable()

	ash.InspectAll(m.Statements, func(n ash.Node) bool {
		switch n := n.(type) {
		case *ash.Struct:
			table.Add(n)
		case *ash.Layout:
			buf, ok := n.Declaration.(*ash.BufferDeclaration)
			if ok && buf.BlockName != "" && n.Tags.Has("buffer_reference") {
				table.AddPointer(buf.BlockName)
			}
		}
		return true
	})

	ash.InspectAll(m.Statements, func(n ash.Node) bool {
		if d, ok := n.(*ash.StructDeclaration); ok {
			d.Struct = nil
			if h, found := table.Lookup(d.StructName); found {
				d.Struct = &h
			}
		}
		return true
	})

	m.Structs = table
	return table
}

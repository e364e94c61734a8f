// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import "github.com/gogpu/ashl/ash"

// ExtractScope returns a module holding the statements live for stage: the
// module-level statements before the last named scope for stage, followed
// by that scope's statements. Other named scopes are dropped. Without a
// scope for stage, every module-level statement is live.
func ExtractScope(m *ash.Module, stage ash.Stage) *ash.Module {
	last := -1
	for i, stmt := range m.Statements {
		if ns, ok := stmt.(*ash.NamedScope); ok && ns.Stage == stage {
			last = i
		}
	}

	preamble := m.Statements
	if last >= 0 {
		preamble = m.Statements[:last]
	}

	var stmts []ash.Node
	for _, stmt := range preamble {
		if stmt.Kind() != ash.NodeNamedScope {
			stmts = append(stmts, stmt)
		}
	}
	if last >= 0 {
		stmts = append(stmts, m.Statements[last].(*ash.NamedScope).Statements...)
	}

	out := *m
	out.Statements = stmts
	return &out
}

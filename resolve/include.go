// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import (
	"fmt"

	"github.com/gogpu/ashl/ash"
)

// PathResolver maps an include to the absolute path of its target. owner is
// the module whose includes are being resolved.
type PathResolver func(include *ash.Include, owner *ash.Module) (string, error)

// Loader reads and parses the file at an absolute path.
type Loader func(path string) (*ash.Module, error)

// ResolveIncludes returns a copy of m with every #include replaced by the
// statements of its target, depth first. Includes inside named scopes are
// expanded in place. A path that was already included anywhere in this
// pass is dropped, which also breaks include cycles. Paths in preincluded
// count as already included; pass the root file's own path to keep it from
// including itself. m is not modified.
func ResolveIncludes(m *ash.Module, resolve PathResolver, load Loader, preincluded ...string) (*ash.Module, error) {
	r := &includer{
		resolve: resolve,
		load:    load,
		owner:   m,
		seen:    make(map[string]struct{}, len(preincluded)),
	}
	for _, path := range preincluded {
		r.seen[path] = struct{}{}
	}

	stmts, err := r.expand(m.Statements, nil)
	if err != nil {
		return nil, err
	}
	out := *m
	out.Statements = stmts
	return &out, nil
}

type includer struct {
	resolve PathResolver
	load    Loader
	owner   *ash.Module
	seen    map[string]struct{}
}

// expand works through stmts as a worklist. A spliced include is re-scanned
// from its own position so nested includes expand too. scope is the named
// scope being expanded, or nil at module level.
func (r *includer) expand(stmts []ash.Node, scope *ash.NamedScope) ([]ash.Node, error) {
	out := make([]ash.Node, len(stmts))
	copy(out, stmts)

	for i := 0; i < len(out); {
		switch n := out[i].(type) {
		case *ash.Include:
			path, err := r.resolve(n, r.owner)
			if err != nil {
				return nil, fmt.Errorf("%s: include %q: %w", n.Span, n.Target, err)
			}
			if _, dup := r.seen[path]; dup {
				out = append(out[:i], out[i+1:]...)
				continue
			}
			r.seen[path] = struct{}{}

			included, err := r.load(path)
			if err != nil {
				return nil, fmt.Errorf("%s: include %q: %w", n.Span, n.Target, err)
			}
			if scope != nil {
				for _, stmt := range included.Statements {
					if ns, ok := stmt.(*ash.NamedScope); ok {
						return nil, fmt.Errorf("%s: include %q: @%s scope inside @%s",
							n.Span, n.Target, ns.Stage, scope.Stage)
					}
				}
			}

			spliced := make([]ash.Node, 0, len(out)-1+len(included.Statements))
			spliced = append(spliced, out[:i]...)
			spliced = append(spliced, included.Statements...)
			out = append(spliced, out[i+1:]...)

		case *ash.NamedScope:
			if scope == nil {
				body, err := r.expand(n.Statements, n)
				if err != nil {
					return nil, err
				}
				ns := *n
				ns.Statements = body
				out[i] = &ns
			}
			i++

		default:
			i++
		}
	}
	return out, nil
}

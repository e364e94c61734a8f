// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package resolve

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gogpu/ashl/ash"
)

// memoryFiles serves includes from a map keyed by include target.
type memoryFiles struct {
	files map[string]string
	loads map[string]int
}

func newMemoryFiles(files map[string]string) *memoryFiles {
	return &memoryFiles{files: files, loads: make(map[string]int)}
}

func (fs *memoryFiles) resolve(inc *ash.Include, _ *ash.Module) (string, error) {
	if _, ok := fs.files[inc.Target]; !ok {
		return "", fmt.Errorf("%s not found", inc.Target)
	}
	return inc.Target, nil
}

func (fs *memoryFiles) load(path string) (*ash.Module, error) {
	fs.loads[path]++
	return ash.ParseSource(fs.files[path], path)
}

func parse(t *testing.T, source string) *ash.Module {
	t.Helper()
	m, err := ash.ParseSource(source, "main.ash")
	require.NoError(t, err)
	return m
}

// describe renders statements as short labels for order assertions.
func describe(stmts []ash.Node) []string {
	out := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		switch n := stmt.(type) {
		case *ash.Define:
			out = append(out, "define "+n.Name)
		case *ash.Function:
			out = append(out, "func "+n.Name)
		case *ash.Struct:
			out = append(out, "struct "+n.Name)
		case *ash.Include:
			out = append(out, "include "+n.Target)
		case *ash.NamedScope:
			out = append(out, "@"+n.Stage.String())
		case *ash.Layout:
			out = append(out, "layout "+n.Declaration.DeclName())
		case *ash.PushConstant:
			out = append(out, "push")
		default:
			if c := constOf(stmt); c != nil {
				out = append(out, "const "+c.Declaration.DeclName())
				continue
			}
			out = append(out, stmt.Kind().String())
		}
	}
	return out
}

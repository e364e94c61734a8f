// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strings"

	"github.com/gogpu/ashl/ash"
)

// Writer generates GLSL source code from ash nodes. A Writer holds only its
// output buffer; indentation is derived from the depth passed down the
// tree.
type Writer struct {
	out strings.Builder
}

// Generate renders nodes as module-level GLSL.
func Generate(nodes []ash.Node) (string, error) {
	return GenerateDepth(nodes, 0)
}

// GenerateDepth renders nodes as GLSL indented by depth tabs.
func GenerateDepth(nodes []ash.Node, depth int) (string, error) {
	var w Writer
	if err := w.writeNodes(nodes, depth); err != nil {
		return "", err
	}
	return w.String(), nil
}

// String returns the generated source.
func (w *Writer) String() string {
	return w.out.String()
}

func (w *Writer) writeNodes(nodes []ash.Node, depth int) error {
	for _, n := range nodes {
		if err := w.writeTopLevel(n, depth); err != nil {
			return err
		}
	}
	return nil
}

// writeTopLevel writes one module-level statement.
func (w *Writer) writeTopLevel(n ash.Node, depth int) error {
	switch n := n.(type) {
	case *ash.Include:
		w.writeLine(depth, `#include "`+n.Target+`"`)
	case *ash.Define:
		return w.writeDefine(n, depth)
	case *ash.Layout:
		return w.writeLayout(n, depth)
	case *ash.PushConstant:
		return w.writePushConstant(n, depth)
	case *ash.Struct:
		return w.writeStruct(n, depth)
	case *ash.Function:
		return w.writeFunction(n, depth)
	case *ash.NamedScope:
		return unsupported(n, "in generated output; extract a stage first")
	case *ash.NoOp:
	default:
		return w.writeStatement(n, depth)
	}
	return nil
}

func (w *Writer) writeDefine(n *ash.Define, depth int) error {
	if n.Value == nil || n.Value.Kind() == ash.NodeNoOp {
		w.writeLine(depth, "#define "+n.Name)
		return nil
	}
	value, err := w.expr(n.Value, depth)
	if err != nil {
		return err
	}
	w.writeLine(depth, "#define "+n.Name+" "+value)
	return nil
}

func (w *Writer) writeLayout(n *ash.Layout, depth int) error {
	decl, err := w.declaration(n.Declaration, depth)
	if err != nil {
		return err
	}
	var line strings.Builder
	if quals := qualifiers(n.Tags, layoutTags); len(quals) > 0 {
		line.WriteString("layout(" + strings.Join(quals, ", ") + ") ")
	}
	if kind := n.LayoutKind.String(); kind != "" {
		line.WriteString(kind + " ")
	}
	line.WriteString(decl + ";")
	w.writeLine(depth, line.String())
	return nil
}

func (w *Writer) writePushConstant(n *ash.PushConstant, depth int) error {
	quals := append([]string{"push_constant"}, qualifiers(n.Tags, pushTags)...)
	w.writeLine(depth, "layout("+strings.Join(quals, ", ")+") uniform constant {")
	if err := w.writeMembers(n.Declarations, depth+1); err != nil {
		return err
	}
	w.writeLine(depth, "} push;")
	return nil
}

func (w *Writer) writeStruct(n *ash.Struct, depth int) error {
	w.writeLine(depth, "struct "+n.Name+" {")
	if err := w.writeMembers(n.Declarations, depth+1); err != nil {
		return err
	}
	w.writeLine(depth, "};")
	return nil
}

// writeMembers writes one declaration per line, each terminated by ';'.
func (w *Writer) writeMembers(decls []ash.Decl, depth int) error {
	for _, d := range decls {
		text, err := w.declaration(d, depth)
		if err != nil {
			return err
		}
		w.writeLine(depth, text+";")
	}
	return nil
}

func (w *Writer) writeFunction(fn *ash.Function, depth int) error {
	ret, err := w.declaration(fn.Return, depth)
	if err != nil {
		return err
	}
	args := make([]string, len(fn.Arguments))
	for i, arg := range fn.Arguments {
		decl, err := w.declaration(arg.Declaration, depth)
		if err != nil {
			return err
		}
		if arg.Input {
			args[i] = "in " + decl
		} else {
			args[i] = "out " + decl
		}
	}
	w.writeLine(depth, ret+" "+fn.Name+"("+strings.Join(args, ", ")+")")
	return w.writeScope(fn.Body, depth)
}

// writeLine writes one line at the given depth.
func (w *Writer) writeLine(depth int, line string) {
	w.out.WriteString(indent(depth))
	w.out.WriteString(line)
	w.out.WriteByte('\n')
}

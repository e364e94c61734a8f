// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"strconv"
	"strings"

	"github.com/gogpu/ashl/ash"
)

// compoundOps is the operator table for compound assignment.
var compoundOps = map[ash.Operator]string{
	ash.OpAdd:      "+=",
	ash.OpSubtract: "-=",
	ash.OpMultiply: "*=",
	ash.OpDivide:   "/=",
}

// expr renders an expression. depth is only used by inline block
// declarations, whose bodies span several lines.
func (w *Writer) expr(n ash.Node, depth int) (string, error) {
	switch n := n.(type) {
	case *ash.NoOp:
		return "", nil

	case *ash.Identifier:
		return identifierName(n.Name), nil

	case *ash.IntLiteral:
		return strconv.FormatInt(n.Value, 10), nil

	case *ash.FloatLiteral:
		return formatFloat(n.Value), nil

	case *ash.BooleanLiteral:
		return strconv.FormatBool(n.Value), nil

	case *ash.Discard:
		return "discard", nil

	case *ash.Const:
		decl, err := w.declaration(n.Declaration, depth)
		if err != nil {
			return "", err
		}
		return "const " + decl, nil

	case ash.Decl:
		return w.declaration(n, depth)

	case *ash.Assign:
		return w.binary(n.Left, "=", n.Right, depth)

	case *ash.BinaryOpAndAssign:
		op, ok := compoundOps[n.Op]
		if !ok {
			return "", &Error{
				Kind:    ErrUnsupportedNode,
				Message: "no compound assignment for operator " + n.Op.String(),
				Span:    n.Span,
			}
		}
		return w.binary(n.Left, op, n.Right, depth)

	case *ash.BinaryOp:
		if n.Op == ash.OpNot {
			return "", unsupported(n, "with the binary ! operator")
		}
		return w.binary(n.Left, n.Op.String(), n.Right, depth)

	case *ash.Conditional:
		parts, err := w.exprs(depth, n.Condition, n.Then, n.Else)
		if err != nil {
			return "", err
		}
		return parts[0] + " ? " + parts[1] + " : " + parts[2], nil

	case *ash.Call:
		args, err := w.exprs(depth, n.Arguments...)
		if err != nil {
			return "", err
		}
		return identifierName(n.Name) + "(" + strings.Join(args, ", ") + ")", nil

	case *ash.Access:
		parts, err := w.exprs(depth, n.Left, n.Right)
		if err != nil {
			return "", err
		}
		return parts[0] + "." + parts[1], nil

	case *ash.Index:
		parts, err := w.exprs(depth, n.Left, n.Index)
		if err != nil {
			return "", err
		}
		return parts[0] + "[" + parts[1] + "]", nil

	case *ash.Increment:
		target, err := w.expr(n.Target, depth)
		if err != nil {
			return "", err
		}
		if n.Post {
			return target + "++", nil
		}
		return "++" + target, nil

	case *ash.Decrement:
		target, err := w.expr(n.Target, depth)
		if err != nil {
			return "", err
		}
		if n.Post {
			return target + "--", nil
		}
		return "--" + target, nil

	case *ash.Negate:
		operand, err := w.expr(n.Operand, depth)
		if err != nil {
			return "", err
		}
		return "-" + operand, nil

	case *ash.LogicalNot:
		operand, err := w.expr(n.Operand, depth)
		if err != nil {
			return "", err
		}
		return "!" + operand, nil

	case *ash.Precedence:
		inner, err := w.expr(n.Inner, depth)
		if err != nil {
			return "", err
		}
		return "(" + inner + ")", nil

	case *ash.ArrayLiteral:
		elems, err := w.exprs(depth, n.Elements...)
		if err != nil {
			return "", err
		}
		return "{" + strings.Join(elems, ", ") + "}", nil
	}

	return "", unsupported(n, "as an expression")
}

func (w *Writer) binary(left ash.Node, op string, right ash.Node, depth int) (string, error) {
	parts, err := w.exprs(depth, left, right)
	if err != nil {
		return "", err
	}
	return parts[0] + " " + op + " " + parts[1], nil
}

func (w *Writer) exprs(depth int, nodes ...ash.Node) ([]string, error) {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		s, err := w.expr(n, depth)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// declaration renders a declaration without a trailing ';'. Inline block
// bodies are indented one level below depth.
func (w *Writer) declaration(d ash.Decl, depth int) (string, error) {
	switch d := d.(type) {
	case *ash.Declaration:
		typ, ok := typeNames[d.Type]
		if !ok {
			return "", &Error{
				Kind:    ErrUnsupportedType,
				Message: "no GLSL type for " + d.Type.String(),
				Span:    d.Span,
			}
		}
		return named(typ, d.Name, d.Count), nil

	case *ash.StructDeclaration:
		return named(d.StructName, d.Name, d.Count), nil

	case *ash.BlockDeclaration:
		return w.block("", d.BlockName, d.Declarations, d.Name, d.Count, depth)

	case *ash.BufferDeclaration:
		return w.block("buffer ", d.BlockName, d.Declarations, d.Name, d.Count, depth)
	}
	return "", unsupported(d, "as a declaration")
}

// named renders "type name[N]", or "type[N]" for unnamed return types.
func named(typ, name string, count int) string {
	if name == "" {
		return typ + arraySuffix(count)
	}
	return typ + " " + name + arraySuffix(count)
}

func (w *Writer) block(keyword, blockName string, members []ash.Decl, name string, count, depth int) (string, error) {
	var sb strings.Builder
	sb.WriteString(keyword)
	if blockName != "" {
		sb.WriteString(blockName + " ")
	}
	sb.WriteString("{\n")
	for _, m := range members {
		text, err := w.declaration(m, depth+1)
		if err != nil {
			return "", err
		}
		sb.WriteString(indent(depth+1) + text + ";\n")
	}
	sb.WriteString(indent(depth) + "}")
	if name != "" {
		sb.WriteString(" " + name + arraySuffix(count))
	}
	return sb.String(), nil
}

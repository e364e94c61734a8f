// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"github.com/gogpu/ashl/ash"
)

// writeScope writes a brace-delimited block with its statements one level
// deeper.
func (w *Writer) writeScope(s *ash.Scope, depth int) error {
	w.writeLine(depth, "{")
	for _, stmt := range s.Statements {
		if err := w.writeStatement(stmt, depth+1); err != nil {
			return err
		}
	}
	w.writeLine(depth, "}")
	return nil
}

// writeStatement writes a statement inside a function body.
func (w *Writer) writeStatement(n ash.Node, depth int) error {
	switch n := n.(type) {
	case *ash.Scope:
		return w.writeScope(n, depth)
	case *ash.If:
		return w.writeIf(n, depth, "")
	case *ash.For:
		return w.writeFor(n, depth)
	case *ash.Return:
		if n.Value == nil {
			w.writeLine(depth, "return;")
			return nil
		}
		value, err := w.expr(n.Value, depth)
		if err != nil {
			return err
		}
		w.writeLine(depth, "return "+value+";")
	case *ash.Break:
		w.writeLine(depth, "break;")
	case *ash.Continue:
		w.writeLine(depth, "continue;")
	case *ash.NoOp:
	default:
		text, err := w.expr(n, depth)
		if err != nil {
			return err
		}
		w.writeLine(depth, text+";")
	}
	return nil
}

// writeIf writes an if statement. prefix is "else " when n continues an
// else-if chain.
func (w *Writer) writeIf(n *ash.If, depth int, prefix string) error {
	cond, err := w.expr(n.Condition, depth)
	if err != nil {
		return err
	}
	w.writeLine(depth, prefix+"if("+cond+")")
	if err := w.writeScope(n.Then, depth); err != nil {
		return err
	}

	switch e := n.Else.(type) {
	case nil, *ash.NoOp:
		return nil
	case *ash.If:
		return w.writeIf(e, depth, "else ")
	case *ash.Scope:
		w.writeLine(depth, "else")
		return w.writeScope(e, depth)
	default:
		return unsupported(e, "as an else branch")
	}
}

func (w *Writer) writeFor(n *ash.For, depth int) error {
	initText, err := w.expr(n.Init, depth)
	if err != nil {
		return err
	}
	cond, err := w.expr(n.Condition, depth)
	if err != nil {
		return err
	}
	update, err := w.expr(n.Update, depth)
	if err != nil {
		return err
	}
	header := "for(" + initText + ";"
	if cond != "" {
		header += " " + cond
	}
	header += ";"
	if update != "" {
		header += " " + update
	}
	w.writeLine(depth, header+")")
	return w.writeScope(n.Body, depth)
}

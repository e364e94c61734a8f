// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

package glsl

import (
	"fmt"

	"github.com/gogpu/ashl/ash"
)

// ErrorKind categorizes GLSL generation errors.
type ErrorKind uint8

const (
	// ErrUnsupportedNode indicates a node with no GLSL emission rule in its position.
	ErrUnsupportedNode ErrorKind = iota

	// ErrUnsupportedType indicates a declaration type with no GLSL spelling.
	ErrUnsupportedType
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnsupportedNode:
		return "UnsupportedNode"
	case ErrUnsupportedType:
		return "UnsupportedType"
	default:
		return "Unknown"
	}
}

// Error represents a GLSL generation error.
type Error struct {
	// Kind categorizes the error.
	Kind ErrorKind

	// Message provides details about the error.
	Message string

	// Span identifies the offending node, when known.
	Span ash.Span
}

// Error implements the error interface.
func (e *Error) Error() string {
	if !e.Span.IsZero() {
		return fmt.Sprintf("glsl %s at %s: %s", e.Kind, e.Span, e.Message)
	}
	return fmt.Sprintf("glsl %s: %s", e.Kind, e.Message)
}

func unsupported(n ash.Node, context string) *Error {
	return &Error{
		Kind:    ErrUnsupportedNode,
		Message: fmt.Sprintf("%s is not supported %s", n.Kind(), context),
		Span:    n.Pos(),
	}
}

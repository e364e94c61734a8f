package ash

import (
	"fmt"
	"strings"
)

// ErrorKind categorizes front-end errors.
type ErrorKind uint8

const (
	// ErrUnexpectedToken indicates the parser found a token it cannot accept here.
	ErrUnexpectedToken ErrorKind = iota

	// ErrUnknownDeclarationType indicates a type token has no declaration type.
	ErrUnknownDeclarationType

	// ErrStructNotResolved indicates a size query on an unbound struct declaration.
	ErrStructNotResolved

	// ErrUnsizedType indicates a size query on a type without a size (void, sampler2D).
	ErrUnsizedType

	// ErrRecursiveStruct indicates a struct that contains itself.
	ErrRecursiveStruct
)

// String returns a human-readable error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnexpectedToken:
		return "UnexpectedToken"
	case ErrUnknownDeclarationType:
		return "UnknownDeclarationType"
	case ErrStructNotResolved:
		return "StructNotResolved"
	case ErrUnsizedType:
		return "UnsizedType"
	case ErrRecursiveStruct:
		return "RecursiveStruct"
	default:
		return "Unknown"
	}
}

// SourceError represents an error with source location information.
type SourceError struct {
	Kind    ErrorKind
	Message string
	Span    Span
	// Expected lists the token kinds that would have been accepted.
	Expected []TokenKind
	// Source is the original source text, for context display.
	Source string
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	if e.Span.IsZero() {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// Is matches another *SourceError of the same kind, so errors.Is works
// against a bare &SourceError{Kind: ...} target.
func (e *SourceError) Is(target error) bool {
	t, ok := target.(*SourceError)
	return ok && t.Kind == e.Kind && t.Message == ""
}

// FormatWithContext returns the error message with source context.
// Shows the problematic line with a caret pointing to the error location.
func (e *SourceError) FormatWithContext() string {
	if e.Source == "" || e.Span.IsZero() {
		return e.Error()
	}

	lines := strings.Split(e.Source, "\n")
	lineNum := e.Span.Start.Line
	if lineNum < 1 || lineNum > len(lines) {
		return e.Error()
	}

	line := lines[lineNum-1]
	col := e.Span.Start.Column
	if col < 1 {
		col = 1
	}
	if col > len(line)+1 {
		col = len(line) + 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "error: %s\n", e.Message)
	if e.Span.File != "" {
		fmt.Fprintf(&sb, "  --> %s:%d:%d\n", e.Span.File, lineNum, col)
	} else {
		fmt.Fprintf(&sb, "  --> line %d:%d\n", lineNum, col)
	}
	sb.WriteString("   |\n")
	fmt.Fprintf(&sb, "%3d| %s\n", lineNum, line)
	fmt.Fprintf(&sb, "   | %s^\n", strings.Repeat(" ", col-1))

	return sb.String()
}

// NewSourceErrorf creates a new SourceError with formatted message.
func NewSourceErrorf(kind ErrorKind, span Span, format string, args ...interface{}) *SourceError {
	return &SourceError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	}
}

func unexpectedToken(tok Token, expected ...TokenKind) *SourceError {
	var msg strings.Builder
	if tok.Kind == TokenEOF {
		msg.WriteString("unexpected end of input")
	} else {
		fmt.Fprintf(&msg, "unexpected %s %q", tok.Kind, tok.Lexeme)
	}
	if len(expected) > 0 {
		names := make([]string, len(expected))
		for i, k := range expected {
			names[i] = k.String()
		}
		fmt.Fprintf(&msg, ", expected %s", strings.Join(names, " or "))
	}
	return &SourceError{
		Kind:     ErrUnexpectedToken,
		Message:  msg.String(),
		Span:     tok.Span,
		Expected: expected,
	}
}

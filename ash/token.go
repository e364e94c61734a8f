package ash

import "fmt"

// TokenKind represents the type of token.
type TokenKind uint8

const (
	TokenEOF TokenKind = iota

	// Literals and names
	TokenIdentifier
	TokenNumeric
	TokenString

	// Directives and top-level keywords
	TokenInclude  // #include
	TokenDefine   // #define
	TokenLayout   // layout
	TokenPush     // push
	TokenStruct   // struct
	TokenConst    // const
	TokenVertex   // @Vertex
	TokenFragment // @Fragment

	// Qualifiers
	TokenIn       // in
	TokenOut      // out
	TokenUniform  // uniform
	TokenReadonly // readonly
	TokenBuffer   // buffer

	// Control flow
	TokenReturn
	TokenIf
	TokenElse
	TokenFor
	TokenDiscard
	TokenBreak
	TokenContinue

	// Types
	TokenFloat
	TokenInt
	TokenFloat2
	TokenInt2
	TokenFloat3
	TokenInt3
	TokenFloat4
	TokenInt4
	TokenMat3
	TokenMat4
	TokenBool
	TokenVoid
	TokenSampler2D

	// Operators
	TokenAssign         // =
	TokenAddAssign      // +=
	TokenSubtractAssign // -=
	TokenMultiplyAssign // *=
	TokenDivideAssign   // /=
	TokenEqual          // ==
	TokenNotEqual       // !=
	TokenLess           // <
	TokenLessEqual      // <=
	TokenGreater        // >
	TokenGreaterEqual   // >=
	TokenAnd            // &&
	TokenOr             // ||
	TokenNot            // !
	TokenAdd            // +
	TokenSubtract       // -
	TokenMultiply       // *
	TokenDivide         // /
	TokenMod            // %
	TokenIncrement      // ++
	TokenDecrement      // --
	TokenQuestion       // ?
	TokenColon          // :
	TokenArrow          // ->

	// Punctuation
	TokenOpenParen    // (
	TokenCloseParen   // )
	TokenOpenBrace    // {
	TokenCloseBrace   // }
	TokenOpenBracket  // [
	TokenCloseBracket // ]
	TokenComma        // ,
	TokenStatementEnd // ;
	TokenAccess       // .
)

var tokenNames = [...]string{
	TokenEOF:            "EOF",
	TokenIdentifier:     "Identifier",
	TokenNumeric:        "Numeric",
	TokenString:         "String",
	TokenInclude:        "Include",
	TokenDefine:         "Define",
	TokenLayout:         "Layout",
	TokenPush:           "Push",
	TokenStruct:         "Struct",
	TokenConst:          "Const",
	TokenVertex:         "Vertex",
	TokenFragment:       "Fragment",
	TokenIn:             "In",
	TokenOut:            "Out",
	TokenUniform:        "Uniform",
	TokenReadonly:       "Readonly",
	TokenBuffer:         "Buffer",
	TokenReturn:         "Return",
	TokenIf:             "If",
	TokenElse:           "Else",
	TokenFor:            "For",
	TokenDiscard:        "Discard",
	TokenBreak:          "Break",
	TokenContinue:       "Continue",
	TokenFloat:          "Float",
	TokenInt:            "Int",
	TokenFloat2:         "Float2",
	TokenInt2:           "Int2",
	TokenFloat3:         "Float3",
	TokenInt3:           "Int3",
	TokenFloat4:         "Float4",
	TokenInt4:           "Int4",
	TokenMat3:           "Mat3",
	TokenMat4:           "Mat4",
	TokenBool:           "Bool",
	TokenVoid:           "Void",
	TokenSampler2D:      "Sampler2D",
	TokenAssign:         "Assign",
	TokenAddAssign:      "OpAddAssign",
	TokenSubtractAssign: "OpSubtractAssign",
	TokenMultiplyAssign: "OpMultiplyAssign",
	TokenDivideAssign:   "OpDivideAssign",
	TokenEqual:          "OpEqual",
	TokenNotEqual:       "OpNotEqual",
	TokenLess:           "OpLess",
	TokenLessEqual:      "OpLessEqual",
	TokenGreater:        "OpGreater",
	TokenGreaterEqual:   "OpGreaterEqual",
	TokenAnd:            "OpAnd",
	TokenOr:             "OpOr",
	TokenNot:            "OpNot",
	TokenAdd:            "OpAdd",
	TokenSubtract:       "OpSubtract",
	TokenMultiply:       "OpMultiply",
	TokenDivide:         "OpDivide",
	TokenMod:            "OpMod",
	TokenIncrement:      "OpIncrement",
	TokenDecrement:      "OpDecrement",
	TokenQuestion:       "Conditional",
	TokenColon:          "Colon",
	TokenArrow:          "Arrow",
	TokenOpenParen:      "OpenParen",
	TokenCloseParen:     "CloseParen",
	TokenOpenBrace:      "OpenBrace",
	TokenCloseBrace:     "CloseBrace",
	TokenOpenBracket:    "OpenBracket",
	TokenCloseBracket:   "CloseBracket",
	TokenComma:          "Comma",
	TokenStatementEnd:   "StatementEnd",
	TokenAccess:         "Access",
}

// String returns the token kind name.
func (k TokenKind) String() string {
	if int(k) < len(tokenNames) && tokenNames[k] != "" {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", k)
}

// Token is a single lexeme with its source span.
type Token struct {
	Kind   TokenKind
	Lexeme string
	Span   Span
}

func (t Token) String() string {
	if t.Kind == TokenEOF {
		return "end of input"
	}
	return fmt.Sprintf("%s(%s)", t.Kind, t.Lexeme)
}

// Span represents a source code location span. End is inclusive.
type Span struct {
	File  string
	Start Position
	End   Position
}

// Position represents a position in source code.
type Position struct {
	Line   int
	Column int
	Offset int
}

func (p Position) before(o Position) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Column < o.Column
}

// Merge returns the smallest span covering both s and o.
func (s Span) Merge(o Span) Span {
	if s.IsZero() {
		return o
	}
	if o.IsZero() {
		return s
	}
	out := s
	if o.Start.before(out.Start) {
		out.Start = o.Start
	}
	if out.End.before(o.End) {
		out.End = o.End
	}
	return out
}

// IsZero reports whether the span carries no location.
func (s Span) IsZero() bool {
	return s.Start.Line == 0 && s.End.Line == 0
}

func (s Span) String() string {
	if s.File != "" {
		return fmt.Sprintf("%s:%d:%d", s.File, s.Start.Line, s.Start.Column)
	}
	return fmt.Sprintf("%d:%d", s.Start.Line, s.Start.Column)
}

var keywords = map[string]TokenKind{
	"#include":  TokenInclude,
	"#define":   TokenDefine,
	"layout":    TokenLayout,
	"push":      TokenPush,
	"struct":    TokenStruct,
	"const":     TokenConst,
	"@Vertex":   TokenVertex,
	"@Fragment": TokenFragment,

	"in":       TokenIn,
	"out":      TokenOut,
	"uniform":  TokenUniform,
	"readonly": TokenReadonly,
	"buffer":   TokenBuffer,

	"return":   TokenReturn,
	"if":       TokenIf,
	"else":     TokenElse,
	"for":      TokenFor,
	"discard":  TokenDiscard,
	"break":    TokenBreak,
	"continue": TokenContinue,

	"float":     TokenFloat,
	"int":       TokenInt,
	"float2":    TokenFloat2,
	"int2":      TokenInt2,
	"float3":    TokenFloat3,
	"int3":      TokenInt3,
	"float4":    TokenFloat4,
	"int4":      TokenInt4,
	"mat3":      TokenMat3,
	"mat4":      TokenMat4,
	"bool":      TokenBool,
	"void":      TokenVoid,
	"sampler2D": TokenSampler2D,

	"=":  TokenAssign,
	"+=": TokenAddAssign,
	"-=": TokenSubtractAssign,
	"*=": TokenMultiplyAssign,
	"/=": TokenDivideAssign,
	"==": TokenEqual,
	"!=": TokenNotEqual,
	"<":  TokenLess,
	"<=": TokenLessEqual,
	">":  TokenGreater,
	">=": TokenGreaterEqual,
	"&&": TokenAnd,
	"||": TokenOr,
	"!":  TokenNot,
	"+":  TokenAdd,
	"-":  TokenSubtract,
	"*":  TokenMultiply,
	"/":  TokenDivide,
	"%":  TokenMod,
	"++": TokenIncrement,
	"--": TokenDecrement,
	"?":  TokenQuestion,
	":":  TokenColon,
	"->": TokenArrow,

	"(": TokenOpenParen,
	")": TokenCloseParen,
	"{": TokenOpenBrace,
	"}": TokenCloseBrace,
	"[": TokenOpenBracket,
	"]": TokenCloseBracket,
	",": TokenComma,
	";": TokenStatementEnd,
	".": TokenAccess,
}

// keywordsByLength groups the keyword table by lexeme length for maximal munch.
var keywordsByLength, maxKeywordLength = groupKeywords(keywords)

func groupKeywords(table map[string]TokenKind) (map[int]map[string]TokenKind, int) {
	groups := make(map[int]map[string]TokenKind)
	longest := 0
	for lexeme, kind := range table {
		n := len(lexeme)
		if groups[n] == nil {
			groups[n] = make(map[string]TokenKind)
		}
		groups[n][lexeme] = kind
		if n > longest {
			longest = n
		}
	}
	return groups, longest
}

// LookupKeyword returns the keyword kind for text, or TokenIdentifier.
func LookupKeyword(text string) TokenKind {
	if kind, ok := keywords[text]; ok {
		return kind
	}
	return TokenIdentifier
}

// IsTypeKeyword reports whether kind names a builtin declaration type.
func IsTypeKeyword(kind TokenKind) bool {
	_, ok := builtinTypes[kind]
	return ok
}

var builtinTypes = map[TokenKind]DeclType{
	TokenFloat:     DeclFloat,
	TokenInt:       DeclInt,
	TokenFloat2:    DeclFloat2,
	TokenInt2:      DeclInt2,
	TokenFloat3:    DeclFloat3,
	TokenInt3:      DeclInt3,
	TokenFloat4:    DeclFloat4,
	TokenInt4:      DeclInt4,
	TokenMat3:      DeclMat3,
	TokenMat4:      DeclMat4,
	TokenBool:      DeclBool,
	TokenVoid:      DeclVoid,
	TokenSampler2D: DeclSampler2D,
}

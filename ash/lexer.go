package ash

// Lexer tokenizes ash source code.
//
// Keywords and operators are recognized by maximal munch over the keyword
// table: the longest candidate is tried first, and a word-like keyword only
// matches when the following byte cannot continue a name. Everything else is
// accumulated into identifier or numeric tokens. The lexer never fails;
// malformed input surfaces as a parse error.
type Lexer struct {
	source string
	file   string
	pos    int
	line   int
	column int
	tokens []Token
}

// NewLexer creates a new lexer for the given source. file is recorded in
// every token span.
func NewLexer(source, file string) *Lexer {
	estTokens := len(source) / 4
	if estTokens < 16 {
		estTokens = 16
	}
	return &Lexer{
		source: source,
		file:   file,
		line:   1,
		column: 1,
		tokens: make([]Token, 0, estTokens),
	}
}

// Tokenize is shorthand for NewLexer(source, file).Tokenize().
func Tokenize(source, file string) []Token {
	return NewLexer(source, file).Tokenize()
}

// Tokenize returns all tokens from the source. No end-of-input token is
// appended.
func (l *Lexer) Tokenize() []Token {
	for !l.isAtEnd() {
		l.scanToken()
	}
	return l.tokens
}

func (l *Lexer) scanToken() {
	c := l.peek()
	switch {
	case isSpace(c):
		l.advance()
	case c == '/' && l.peekAt(1) == '/':
		for !l.isAtEnd() && l.peek() != '\n' {
			l.advance()
		}
	case c == '/' && l.peekAt(1) == '*':
		l.blockComment()
	case c == '"' || c == '\'':
		l.str(c)
	case isDigit(c), c == '.' && isDigit(l.peekAt(1)):
		l.number()
	default:
		if !l.keyword() {
			l.identifier()
		}
	}
}

func (l *Lexer) blockComment() {
	l.advance()
	l.advance()
	for !l.isAtEnd() {
		if l.peek() == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			return
		}
		l.advance()
	}
}

// str scans a quoted literal. The lexeme keeps its delimiters.
func (l *Lexer) str(delim byte) {
	start := l.position()
	begin := l.pos
	l.advance()
	for !l.isAtEnd() {
		c := l.advance()
		if c == '\\' && !l.isAtEnd() {
			l.advance()
			continue
		}
		if c == delim {
			break
		}
	}
	l.emit(TokenString, begin, start)
}

func (l *Lexer) number() {
	start := l.position()
	begin := l.pos
	for isDigit(l.peek()) {
		l.advance()
	}
	// "1.", "1.5" and ".5" are numbers, "1.x" is a member access.
	if l.peek() == '.' && !isNameStart(l.peekAt(1)) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	l.emit(TokenNumeric, begin, start)
}

// keyword tries the keyword table longest first at the current position.
func (l *Lexer) keyword() bool {
	size := maxKeywordLength
	if rest := len(l.source) - l.pos; rest < size {
		size = rest
	}
	for ; size > 0; size-- {
		group := keywordsByLength[size]
		if group == nil {
			continue
		}
		candidate := l.source[l.pos : l.pos+size]
		kind, ok := group[candidate]
		if !ok {
			continue
		}
		next := l.pos + size
		if isWord(candidate[size-1]) && next < len(l.source) && isWord(l.source[next]) {
			continue
		}
		start := l.position()
		begin := l.pos
		for i := 0; i < size; i++ {
			l.advance()
		}
		l.emit(kind, begin, start)
		return true
	}
	return false
}

// identifier accumulates name bytes up to the next separator. A lone
// separator byte that is not a keyword becomes a single-byte token.
func (l *Lexer) identifier() {
	start := l.position()
	begin := l.pos
	for !l.isAtEnd() && isWord(l.peek()) {
		l.advance()
	}
	if l.pos == begin {
		l.advance()
	}
	l.emit(LookupKeyword(l.source[begin:l.pos]), begin, start)
}

func (l *Lexer) emit(kind TokenKind, begin int, start Position) {
	l.tokens = append(l.tokens, Token{
		Kind:   kind,
		Lexeme: l.source[begin:l.pos],
		Span: Span{
			File:  l.file,
			Start: start,
			End:   l.last(),
		},
	})
}

func (l *Lexer) advance() byte {
	c := l.source[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return c
}

func (l *Lexer) peek() byte {
	return l.peekAt(0)
}

func (l *Lexer) peekAt(n int) byte {
	if l.pos+n >= len(l.source) {
		return 0
	}
	return l.source[l.pos+n]
}

func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

func (l *Lexer) position() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.pos}
}

// last returns the position of the most recently consumed byte.
func (l *Lexer) last() Position {
	col := l.column - 1
	if col < 1 {
		col = 1
	}
	return Position{Line: l.line, Column: col, Offset: l.pos - 1}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c >= 0x80
}

func isWord(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

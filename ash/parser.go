package ash

import (
	"strconv"
	"strings"
)

// Parser builds a Module from tokens by recursive descent. Expressions use
// precedence climbing, lowest tier first: assignment, conditional, postfix
// increment/decrement, logical, comparison, additive, multiplicative,
// access/call/index, primary. Parsing stops at the first error.
type Parser struct {
	tokens  []Token
	current int
	source  string
}

// NewParser creates a new parser for the given tokens.
func NewParser(tokens []Token) *Parser {
	end := Token{Kind: TokenEOF}
	if n := len(tokens); n > 0 {
		last := tokens[n-1].Span
		end.Span = Span{File: last.File, Start: last.End, End: last.End}
	}
	toks := make([]Token, len(tokens), len(tokens)+1)
	copy(toks, tokens)
	return &Parser{tokens: append(toks, end)}
}

// Parse is shorthand for NewParser(tokens).Parse().
func Parse(tokens []Token) (*Module, error) {
	return NewParser(tokens).Parse()
}

// ParseSource tokenizes and parses source. Errors carry the source text so
// FormatWithContext can show the offending line.
func ParseSource(source, file string) (*Module, error) {
	p := NewParser(Tokenize(source, file))
	p.source = source
	m, err := p.Parse()
	if err != nil {
		return nil, err
	}
	m.File = file
	return m, nil
}

// Parse parses the tokens and returns a Module AST.
func (p *Parser) Parse() (*Module, error) {
	module := &Module{File: p.peek().Span.File}
	start := p.peek()
	for !p.isAtEnd() {
		stmt, err := p.topLevel(true)
		if err != nil {
			return nil, p.withSource(err)
		}
		module.Statements = append(module.Statements, stmt)
	}
	if len(module.Statements) > 0 {
		module.Span = start.Span.Merge(p.previous().Span)
	}
	return module, nil
}

func (p *Parser) withSource(err error) error {
	if se, ok := err.(*SourceError); ok && se.Source == "" {
		se.Source = p.source
	}
	return err
}

// topLevel parses one module or named scope statement.
func (p *Parser) topLevel(allowNamedScopes bool) (Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenInclude:
		return p.include()
	case TokenDefine:
		return p.define()
	case TokenLayout:
		return p.layout()
	case TokenPush:
		return p.pushConstant()
	case TokenStruct:
		return p.structDefinition()
	case TokenConst:
		return p.expressionStatement()
	case TokenVertex, TokenFragment:
		if allowNamedScopes {
			return p.namedScope()
		}
	case TokenIdentifier:
		return p.function()
	default:
		if IsTypeKeyword(tok.Kind) {
			return p.function()
		}
	}
	expected := []TokenKind{TokenInclude, TokenDefine, TokenLayout, TokenPush, TokenStruct, TokenConst}
	if allowNamedScopes {
		expected = append(expected, TokenVertex, TokenFragment)
	}
	return nil, unexpectedToken(tok, append(expected, TokenIdentifier)...)
}

func (p *Parser) include() (Node, error) {
	start := p.advance()
	target, err := p.expect(TokenString)
	if err != nil {
		return nil, err
	}
	p.match(TokenStatementEnd)
	return &Include{
		SourceFile: start.Span.File,
		Target:     unquote(target.Lexeme),
		Span:       p.spanFrom(start),
	}, nil
}

func (p *Parser) define() (Node, error) {
	start := p.advance()
	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	// The value runs to the end of the line or an optional ';'.
	end := p.current
	for end < len(p.tokens)-1 && p.tokens[end].Span.Start.Line == name.Span.End.Line &&
		p.tokens[end].Kind != TokenStatementEnd {
		end++
	}
	if end == p.current {
		p.match(TokenStatementEnd)
		return &Define{Name: name.Lexeme, Value: &NoOp{Span: name.Span}, Span: p.spanFrom(start)}, nil
	}
	sub := NewParser(p.tokens[p.current:end])
	value, err := sub.expression()
	if err != nil {
		return nil, err
	}
	if !sub.isAtEnd() {
		return nil, unexpectedToken(sub.peek(), TokenStatementEnd)
	}
	p.current = end
	p.match(TokenStatementEnd)
	return &Define{Name: name.Lexeme, Value: value, Span: p.spanFrom(start)}, nil
}

func (p *Parser) layout() (Node, error) {
	start := p.advance()
	tags, err := p.tags()
	if err != nil {
		return nil, err
	}

	kind, ok := layoutKinds[p.peek().Kind]
	switch {
	case ok:
		p.advance()
	case p.check(TokenBuffer):
		// layout(buffer_reference) buffer Name { ... };
		kind = LayoutBuffer
	default:
		return nil, unexpectedToken(p.peek(), TokenIn, TokenOut, TokenUniform, TokenReadonly, TokenBuffer)
	}

	decl, err := p.declaration()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenStatementEnd); err != nil {
		return nil, err
	}
	return &Layout{Tags: tags, LayoutKind: kind, Declaration: decl, Span: p.spanFrom(start)}, nil
}

var layoutKinds = map[TokenKind]LayoutKind{
	TokenIn:       LayoutIn,
	TokenOut:      LayoutOut,
	TokenUniform:  LayoutUniform,
	TokenReadonly: LayoutReadonly,
}

func (p *Parser) pushConstant() (Node, error) {
	start := p.advance()
	tags, err := p.tags()
	if err != nil {
		return nil, err
	}
	decls, err := p.declarationList()
	if err != nil {
		return nil, err
	}
	p.match(TokenStatementEnd)
	return &PushConstant{Tags: tags, Declarations: decls, Span: p.spanFrom(start)}, nil
}

// tags parses ( key [= value] {, key [= value]} ).
func (p *Parser) tags() (Tags, error) {
	if _, err := p.expect(TokenOpenParen); err != nil {
		return nil, err
	}
	var tags Tags
	for !p.check(TokenCloseParen) {
		key := p.advance()
		if !isWordLexeme(key) {
			return nil, unexpectedToken(key, TokenIdentifier)
		}
		value := ""
		if p.match(TokenAssign) {
			v := p.advance()
			if !isWordLexeme(v) {
				return nil, unexpectedToken(v, TokenIdentifier, TokenNumeric)
			}
			value = v.Lexeme
		}
		tags = tags.set(key.Lexeme, value)
		if !p.match(TokenComma) {
			break
		}
	}
	if _, err := p.expect(TokenCloseParen); err != nil {
		return nil, err
	}
	return tags, nil
}

func (p *Parser) structDefinition() (Node, error) {
	start := p.advance()
	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	decls, err := p.declarationList()
	if err != nil {
		return nil, err
	}
	p.match(TokenStatementEnd)
	return &Struct{Name: name.Lexeme, Declarations: decls, Span: p.spanFrom(start)}, nil
}

func (p *Parser) namedScope() (Node, error) {
	start := p.advance()
	stage := StageVertex
	if start.Kind == TokenFragment {
		stage = StageFragment
	}
	if _, err := p.expect(TokenOpenBrace); err != nil {
		return nil, err
	}
	var stmts []Node
	for !p.check(TokenCloseBrace) && !p.isAtEnd() {
		stmt, err := p.topLevel(false)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(TokenCloseBrace); err != nil {
		return nil, err
	}
	return &NamedScope{Stage: stage, Statements: stmts, Span: p.spanFrom(start)}, nil
}

// function parses <type>[N] name(args) { body } or <type> name(args) -> expr;
func (p *Parser) function() (Node, error) {
	start := p.peek()
	typeTok := p.advance()
	count, err := p.arraySuffix()
	if err != nil {
		return nil, err
	}
	ret, err := p.makeDeclaration(typeTok, "", count, p.spanFrom(start))
	if err != nil {
		return nil, err
	}

	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenOpenParen); err != nil {
		return nil, err
	}
	var args []*FunctionArgument
	for !p.check(TokenCloseParen) {
		arg, err := p.functionArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(TokenComma) {
			break
		}
	}
	if _, err := p.expect(TokenCloseParen); err != nil {
		return nil, err
	}

	var body *Scope
	if p.check(TokenArrow) {
		arrow := p.advance()
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenStatementEnd); err != nil {
			return nil, err
		}
		span := p.spanFrom(arrow)
		body = &Scope{Statements: []Node{&Return{Value: value, Span: span}}, Span: span}
	} else {
		body, err = p.scope()
		if err != nil {
			return nil, err
		}
	}

	return &Function{
		Name:      name.Lexeme,
		Return:    ret,
		Arguments: args,
		Body:      body,
		Span:      p.spanFrom(start),
	}, nil
}

func (p *Parser) functionArgument() (*FunctionArgument, error) {
	start := p.peek()
	input := true
	if p.match(TokenOut) {
		input = false
	} else {
		p.match(TokenIn)
	}

	typeTok := p.advance()
	count, err := p.arraySuffix()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	if p.check(TokenOpenBracket) {
		if count, err = p.arraySuffix(); err != nil {
			return nil, err
		}
	}
	decl, err := p.makeDeclaration(typeTok, name.Lexeme, count, p.spanFrom(start))
	if err != nil {
		return nil, err
	}
	return &FunctionArgument{Declaration: decl, Input: input, Span: p.spanFrom(start)}, nil
}

// declaration parses a typed declaration: builtin, struct, inline block or
// buffer, with an optional array suffix.
func (p *Parser) declaration() (Decl, error) {
	start := p.peek()
	typeTok := p.advance()

	if typeTok.Kind == TokenBuffer || (typeTok.Kind == TokenIdentifier && p.check(TokenOpenBrace)) {
		blockName := ""
		if typeTok.Kind == TokenIdentifier {
			blockName = typeTok.Lexeme
		} else if p.check(TokenIdentifier) {
			blockName = p.advance().Lexeme
		}
		decls, err := p.declarationList()
		if err != nil {
			return nil, err
		}
		name := ""
		if p.check(TokenIdentifier) {
			name = p.advance().Lexeme
		}
		count, err := p.arraySuffix()
		if err != nil {
			return nil, err
		}
		if typeTok.Kind == TokenBuffer {
			return &BufferDeclaration{
				BlockName:    blockName,
				Name:         name,
				Count:        count,
				Declarations: decls,
				Span:         p.spanFrom(start),
			}, nil
		}
		return &BlockDeclaration{
			BlockName:    blockName,
			Name:         name,
			Count:        count,
			Declarations: decls,
			Span:         p.spanFrom(start),
		}, nil
	}

	name, err := p.expect(TokenIdentifier)
	if err != nil {
		return nil, err
	}
	count, err := p.arraySuffix()
	if err != nil {
		return nil, err
	}
	return p.makeDeclaration(typeTok, name.Lexeme, count, p.spanFrom(start))
}

func (p *Parser) makeDeclaration(typeTok Token, name string, count int, span Span) (Decl, error) {
	if t, ok := builtinTypes[typeTok.Kind]; ok {
		return &Declaration{Type: t, Name: name, Count: count, Span: span}, nil
	}
	if typeTok.Kind == TokenIdentifier {
		return &StructDeclaration{StructName: typeTok.Lexeme, Name: name, Count: count, Span: span}, nil
	}
	return nil, &SourceError{
		Kind:    ErrUnknownDeclarationType,
		Message: "no declaration type for " + typeTok.String(),
		Span:    typeTok.Span,
	}
}

// declarationList parses { decl; decl; ... }.
func (p *Parser) declarationList() ([]Decl, error) {
	if _, err := p.expect(TokenOpenBrace); err != nil {
		return nil, err
	}
	var decls []Decl
	for !p.check(TokenCloseBrace) && !p.isAtEnd() {
		decl, err := p.declaration()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenStatementEnd); err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
	if _, err := p.expect(TokenCloseBrace); err != nil {
		return nil, err
	}
	return decls, nil
}

// arraySuffix parses an optional [N] or []. The count is 1 when absent and
// 0 for an unsized array.
func (p *Parser) arraySuffix() (int, error) {
	if !p.match(TokenOpenBracket) {
		return 1, nil
	}
	if p.match(TokenCloseBracket) {
		return 0, nil
	}
	size, err := p.expect(TokenNumeric)
	if err != nil {
		return 0, err
	}
	n, convErr := strconv.Atoi(size.Lexeme)
	if convErr != nil || n < 0 {
		return 0, unexpectedToken(size, TokenNumeric)
	}
	if _, err := p.expect(TokenCloseBracket); err != nil {
		return 0, err
	}
	return n, nil
}

// Statements

func (p *Parser) scope() (*Scope, error) {
	start, err := p.expect(TokenOpenBrace)
	if err != nil {
		return nil, err
	}
	var stmts []Node
	for !p.check(TokenCloseBrace) && !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.expect(TokenCloseBrace); err != nil {
		return nil, err
	}
	return &Scope{Statements: stmts, Span: p.spanFrom(start)}, nil
}

// body parses a braced scope, or a single statement wrapped in one.
func (p *Parser) body() (*Scope, error) {
	if p.check(TokenOpenBrace) {
		return p.scope()
	}
	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &Scope{Statements: []Node{stmt}, Span: stmt.Pos()}, nil
}

func (p *Parser) statement() (Node, error) {
	switch p.peek().Kind {
	case TokenOpenBrace:
		return p.scope()
	case TokenIf:
		return p.ifStatement()
	case TokenFor:
		return p.forStatement()
	case TokenReturn:
		start := p.advance()
		if p.match(TokenStatementEnd) {
			return &Return{Span: p.spanFrom(start)}, nil
		}
		value, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenStatementEnd); err != nil {
			return nil, err
		}
		return &Return{Value: value, Span: p.spanFrom(start)}, nil
	case TokenBreak, TokenContinue:
		start := p.advance()
		if _, err := p.expect(TokenStatementEnd); err != nil {
			return nil, err
		}
		if start.Kind == TokenBreak {
			return &Break{Span: p.spanFrom(start)}, nil
		}
		return &Continue{Span: p.spanFrom(start)}, nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser) expressionStatement() (Node, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenStatementEnd); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) ifStatement() (Node, error) {
	start := p.advance()
	if _, err := p.expect(TokenOpenParen); err != nil {
		return nil, err
	}
	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenCloseParen); err != nil {
		return nil, err
	}
	then, err := p.body()
	if err != nil {
		return nil, err
	}

	var elseNode Node
	if elseTok := p.peek(); p.match(TokenElse) {
		if p.check(TokenIf) {
			elseNode, err = p.ifStatement()
		} else {
			elseNode, err = p.body()
		}
		if err != nil {
			return nil, err
		}
	} else {
		elseNode = &NoOp{Span: elseTok.Span}
	}
	return &If{Condition: cond, Then: then, Else: elseNode, Span: p.spanFrom(start)}, nil
}

func (p *Parser) forStatement() (Node, error) {
	start := p.advance()
	if _, err := p.expect(TokenOpenParen); err != nil {
		return nil, err
	}
	init, err := p.optionalExpression(TokenStatementEnd)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenStatementEnd); err != nil {
		return nil, err
	}
	cond, err := p.optionalExpression(TokenStatementEnd)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenStatementEnd); err != nil {
		return nil, err
	}
	update, err := p.optionalExpression(TokenCloseParen)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenCloseParen); err != nil {
		return nil, err
	}
	body, err := p.body()
	if err != nil {
		return nil, err
	}
	return &For{Init: init, Condition: cond, Update: update, Body: body, Span: p.spanFrom(start)}, nil
}

// optionalExpression returns a NoOp when the next token is end.
func (p *Parser) optionalExpression(end TokenKind) (Node, error) {
	if p.check(end) {
		return &NoOp{Span: p.peek().Span}, nil
	}
	return p.expression()
}

// Expressions

func (p *Parser) expression() (Node, error) {
	return p.assignment()
}

var compoundAssign = map[TokenKind]Operator{
	TokenAddAssign:      OpAdd,
	TokenSubtractAssign: OpSubtract,
	TokenMultiplyAssign: OpMultiply,
	TokenDivideAssign:   OpDivide,
}

func (p *Parser) assignment() (Node, error) {
	left, err := p.conditional()
	if err != nil {
		return nil, err
	}
	if p.match(TokenAssign) {
		right, err := p.assignment()
		if err != nil {
			return nil, err
		}
		return &Assign{Left: left, Right: right, Span: left.Pos().Merge(right.Pos())}, nil
	}
	if op, ok := compoundAssign[p.peek().Kind]; ok {
		p.advance()
		right, err := p.assignment()
		if err != nil {
			return nil, err
		}
		return &BinaryOpAndAssign{Left: left, Right: right, Op: op, Span: left.Pos().Merge(right.Pos())}, nil
	}
	return left, nil
}

func (p *Parser) conditional() (Node, error) {
	cond, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if !p.match(TokenQuestion) {
		return cond, nil
	}
	then, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	els, err := p.conditional()
	if err != nil {
		return nil, err
	}
	return &Conditional{Condition: cond, Then: then, Else: els, Span: cond.Pos().Merge(els.Pos())}, nil
}

// postfix attaches a trailing ++ or -- to an identifier or access chain.
func (p *Parser) postfix() (Node, error) {
	left, err := p.logical()
	if err != nil {
		return nil, err
	}
	if !isAssignable(left) {
		return left, nil
	}
	switch tok := p.peek(); tok.Kind {
	case TokenIncrement:
		p.advance()
		return &Increment{Target: left, Post: true, Span: left.Pos().Merge(tok.Span)}, nil
	case TokenDecrement:
		p.advance()
		return &Decrement{Target: left, Post: true, Span: left.Pos().Merge(tok.Span)}, nil
	}
	return left, nil
}

var (
	logicalOps = map[TokenKind]Operator{
		TokenAnd: OpAnd,
		TokenOr:  OpOr,
		TokenNot: OpNot,
	}
	comparisonOps = map[TokenKind]Operator{
		TokenEqual:        OpEqual,
		TokenNotEqual:     OpNotEqual,
		TokenLess:         OpLess,
		TokenLessEqual:    OpLessEqual,
		TokenGreater:      OpGreater,
		TokenGreaterEqual: OpGreaterEqual,
	}
	additiveOps = map[TokenKind]Operator{
		TokenAdd:      OpAdd,
		TokenSubtract: OpSubtract,
	}
	multiplicativeOps = map[TokenKind]Operator{
		TokenMultiply: OpMultiply,
		TokenDivide:   OpDivide,
		TokenMod:      OpMod,
	}
)

func (p *Parser) logical() (Node, error) {
	return p.binary(logicalOps, p.comparison)
}

func (p *Parser) comparison() (Node, error) {
	return p.binary(comparisonOps, p.additive)
}

func (p *Parser) additive() (Node, error) {
	return p.binary(additiveOps, p.multiplicative)
}

func (p *Parser) multiplicative() (Node, error) {
	return p.binary(multiplicativeOps, p.access)
}

// binary parses a left-associative chain of ops over next.
func (p *Parser) binary(ops map[TokenKind]Operator, next func() (Node, error)) (Node, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.peek().Kind]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = &BinaryOp{Left: left, Right: right, Op: op, Span: left.Pos().Merge(right.Pos())}
	}
}

// access parses member access, calls and indexing after a primary.
func (p *Parser) access() (Node, error) {
	left, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(TokenAccess):
			right, err := p.member()
			if err != nil {
				return nil, err
			}
			left = &Access{Left: left, Right: right, Span: left.Pos().Merge(right.Pos())}
		case p.check(TokenOpenParen) && left.Kind() == NodeIdentifier:
			left, err = p.call(left.(*Identifier))
			if err != nil {
				return nil, err
			}
		case p.match(TokenOpenBracket):
			index, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(TokenCloseBracket); err != nil {
				return nil, err
			}
			left = &Index{Left: left, Index: index, Span: left.Pos().Merge(p.previous().Span)}
		default:
			return left, nil
		}
	}
}

// member parses the right side of a '.': a primary, or a method-style call
// such as data.length().
func (p *Parser) member() (Node, error) {
	right, err := p.primary()
	if err != nil {
		return nil, err
	}
	if ident, ok := right.(*Identifier); ok && p.check(TokenOpenParen) {
		return p.call(ident)
	}
	return right, nil
}

func (p *Parser) call(callee *Identifier) (Node, error) {
	p.advance()
	var args []Node
	for !p.check(TokenCloseParen) {
		arg, err := p.expression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if !p.match(TokenComma) {
			break
		}
	}
	if _, err := p.expect(TokenCloseParen); err != nil {
		return nil, err
	}
	return &Call{Name: callee.Name, Arguments: args, Span: callee.Span.Merge(p.previous().Span)}, nil
}

func (p *Parser) primary() (Node, error) {
	tok := p.peek()
	switch tok.Kind {
	case TokenConst:
		p.advance()
		decl, err := p.declaration()
		if err != nil {
			return nil, err
		}
		return &Const{Declaration: decl, Span: p.spanFrom(tok)}, nil

	case TokenSubtract:
		p.advance()
		operand, err := p.access()
		if err != nil {
			return nil, err
		}
		return &Negate{Operand: operand, Span: p.spanFrom(tok)}, nil

	case TokenNot:
		p.advance()
		operand, err := p.access()
		if err != nil {
			return nil, err
		}
		return &LogicalNot{Operand: operand, Span: p.spanFrom(tok)}, nil

	case TokenOpenBrace:
		p.advance()
		var elems []Node
		for !p.check(TokenCloseBrace) {
			elem, err := p.expression()
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
			if !p.match(TokenComma) {
				break
			}
		}
		if _, err := p.expect(TokenCloseBrace); err != nil {
			return nil, err
		}
		return &ArrayLiteral{Elements: elems, Span: p.spanFrom(tok)}, nil

	case TokenOpenParen:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenCloseParen); err != nil {
			return nil, err
		}
		return &Precedence{Inner: inner, Span: p.spanFrom(tok)}, nil

	case TokenIncrement, TokenDecrement:
		p.advance()
		target, err := p.access()
		if err != nil {
			return nil, err
		}
		if !isAssignable(target) {
			return nil, NewSourceErrorf(ErrUnexpectedToken, target.Pos(),
				"%s needs an identifier, member access or index, got %s", tok.Lexeme, target.Kind())
		}
		if tok.Kind == TokenIncrement {
			return &Increment{Target: target, Span: p.spanFrom(tok)}, nil
		}
		return &Decrement{Target: target, Span: p.spanFrom(tok)}, nil

	case TokenDiscard:
		p.advance()
		return &Discard{Span: tok.Span}, nil

	case TokenNumeric:
		p.advance()
		return numericLiteral(tok)

	case TokenPush:
		// The push constant block is addressed by its instance name.
		p.advance()
		return &Identifier{Name: tok.Lexeme, Span: tok.Span}, nil

	case TokenBuffer:
		return p.declaration()
	}

	if tok.Kind == TokenIdentifier || IsTypeKeyword(tok.Kind) {
		if p.peekAt(1).Kind == TokenIdentifier {
			return p.declaration()
		}
		p.advance()
		switch tok.Lexeme {
		case "true":
			return &BooleanLiteral{Value: true, Span: tok.Span}, nil
		case "false":
			return &BooleanLiteral{Value: false, Span: tok.Span}, nil
		}
		return &Identifier{Name: tok.Lexeme, Span: tok.Span}, nil
	}

	return nil, unexpectedToken(tok,
		TokenIdentifier, TokenNumeric, TokenConst, TokenSubtract, TokenNot,
		TokenOpenBrace, TokenOpenParen, TokenIncrement, TokenDecrement, TokenDiscard)
}

// numericLiteral converts a numeric lexeme. Lexemes without a '.' are
// integers and must fit in 64 bits; they are never rounded to a float.
func numericLiteral(tok Token) (Node, error) {
	if !strings.Contains(tok.Lexeme, ".") {
		v, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, NewSourceErrorf(ErrUnexpectedToken, tok.Span,
				"integer literal %s out of range", tok.Lexeme)
		}
		return &IntLiteral{Value: v, Span: tok.Span}, nil
	}
	v, err := strconv.ParseFloat(tok.Lexeme, 32)
	if err != nil {
		return nil, unexpectedToken(tok, TokenNumeric)
	}
	return &FloatLiteral{Value: v, Span: tok.Span}, nil
}

// isAssignable reports whether n is an identifier, or a chain of member
// accesses and indexing rooted at one.
func isAssignable(n Node) bool {
	switch n := n.(type) {
	case *Identifier:
		return true
	case *Access:
		return n.Right.Kind() == NodeIdentifier && isAssignable(n.Left)
	case *Index:
		return isAssignable(n.Left)
	}
	return false
}

// isWordLexeme reports whether tok can serve as a layout tag key or value.
func isWordLexeme(tok Token) bool {
	return tok.Kind != TokenEOF && tok.Lexeme != "" && isWord(tok.Lexeme[0])
}

func unquote(lexeme string) string {
	if len(lexeme) >= 2 && (lexeme[0] == '"' || lexeme[0] == '\'') && lexeme[len(lexeme)-1] == lexeme[0] {
		return lexeme[1 : len(lexeme)-1]
	}
	return lexeme
}

// Helper methods

func (p *Parser) spanFrom(start Token) Span {
	return start.Span.Merge(p.previous().Span)
}

func (p *Parser) advance() Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) peek() Token {
	return p.tokens[p.current]
}

func (p *Parser) peekAt(n int) Token {
	if p.current+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.current+n]
}

func (p *Parser) previous() Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == TokenEOF
}

func (p *Parser) check(kind TokenKind) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kind TokenKind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return Token{}, unexpectedToken(p.peek(), kind)
}

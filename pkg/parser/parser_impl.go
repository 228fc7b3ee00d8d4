package parser

import (
	"github.com/sandrolain/golox/pkg/types"
)

// maxArgs is the largest number of call arguments or function parameters.
const maxArgs = 255

// Parser implements a recursive descent parser for golox programs.
// Each grammar rule is one method; binary precedence levels are
// left-associative loops.
type Parser struct {
	tokens  []types.Token
	current int
	arena   *types.Arena
	source  string
	errs    types.ErrorList
	opts    CompileOptions
	depth   int
}

// NewParser creates a new parser over tokens. The token sequence should end
// with EOF; one is appended when it does not.
func NewParser(tokens []types.Token, opts ...CompileOption) *Parser {
	options := CompileOptions{
		MaxDepth: 512,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if n := len(tokens); n == 0 || tokens[n-1].Kind != types.TokenEOF {
		var line uint = 1
		if n > 0 {
			line = tokens[n-1].Line
		}
		tokens = append(tokens[:n:n], types.Token{Kind: types.TokenEOF, Line: line})
	}

	return &Parser{
		tokens: tokens,
		arena:  types.NewArena(),
		opts:   options,
	}
}

// Parse parses every declaration up to EOF.
//
// Statements that fail to parse are reported and dropped; the rest of the
// program is still returned.
func (p *Parser) Parse() (*types.Program, error) {
	var stmts []types.NodeID
	for !p.isAtEnd() {
		if id := p.declaration(); id != types.NoNode {
			stmts = append(stmts, id)
		}
	}
	return types.NewProgram(p.arena, p.arena.List(stmts), p.source), p.errs.Err()
}

// Errors returns the grammar errors reported so far.
func (p *Parser) Errors() types.ErrorList {
	return p.errs
}

// Declarations

// declaration → classDecl | funDecl | varDecl | statement
//
// It is the recovery boundary: a grammar error anywhere below unwinds to
// here and the parser resynchronizes.
func (p *Parser) declaration() types.NodeID {
	var (
		id  types.NodeID
		err error
	)
	switch {
	case p.match(types.TokenClass):
		id, err = p.classDeclaration()
	case p.match(types.TokenFun):
		id, err = p.function("function")
	case p.match(types.TokenVar):
		id, err = p.varDeclaration()
	default:
		id, err = p.statement()
	}
	if err != nil {
		p.synchronize()
		return types.NoNode
	}
	return id
}

// classDecl → "class" IDENTIFIER ( "<" IDENTIFIER )? "{" function* "}"
func (p *Parser) classDeclaration() (types.NodeID, error) {
	name, err := p.consume(types.TokenIdentifier, "Expect class name.")
	if err != nil {
		return types.NoNode, err
	}

	superclass := types.NoNode
	if p.match(types.TokenLess) {
		tok, err := p.consume(types.TokenIdentifier, "Expect superclass name.")
		if err != nil {
			return types.NoNode, err
		}
		superclass = p.arena.Alloc(types.NodeVariable, tok)
	}

	if _, err := p.consume(types.TokenLeftBrace, "Expect '{' before class body."); err != nil {
		return types.NoNode, err
	}

	var methods []types.NodeID
	for !p.check(types.TokenRightBrace) && !p.isAtEnd() {
		method, err := p.function("method")
		if err != nil {
			return types.NoNode, err
		}
		methods = append(methods, method)
	}

	if _, err := p.consume(types.TokenRightBrace, "Expect '}' after class body."); err != nil {
		return types.NoNode, err
	}

	id := p.arena.Alloc(types.NodeClass, name)
	n := p.arena.Node(id)
	n.Left = superclass
	n.List = p.arena.List(methods)
	return id, nil
}

// function → IDENTIFIER "(" parameters? ")" block
func (p *Parser) function(kind string) (types.NodeID, error) {
	name, err := p.consume(types.TokenIdentifier, "Expect "+kind+" name.")
	if err != nil {
		return types.NoNode, err
	}
	if _, err := p.consume(types.TokenLeftParen, "Expect '(' after "+kind+" name."); err != nil {
		return types.NoNode, err
	}

	var params []types.Token
	if !p.check(types.TokenRightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), types.ErrTooManyParameters, "Can't have more than 255 parameters.")
			}
			param, err := p.consume(types.TokenIdentifier, "Expect parameter name.")
			if err != nil {
				return types.NoNode, err
			}
			params = append(params, param)
			if !p.match(types.TokenComma) {
				break
			}
		}
	}
	if _, err := p.consume(types.TokenRightParen, "Expect ')' after parameters."); err != nil {
		return types.NoNode, err
	}

	if _, err := p.consume(types.TokenLeftBrace, "Expect '{' before "+kind+" body."); err != nil {
		return types.NoNode, err
	}
	body, err := p.block()
	if err != nil {
		return types.NoNode, err
	}

	id := p.arena.Alloc(types.NodeFunction, name)
	n := p.arena.Node(id)
	n.Params = params
	n.List = body
	return id, nil
}

// varDecl → "var" IDENTIFIER ( "=" expression )? ";"
func (p *Parser) varDeclaration() (types.NodeID, error) {
	name, err := p.consume(types.TokenIdentifier, "Expect variable name.")
	if err != nil {
		return types.NoNode, err
	}

	initializer := types.NoNode
	if p.match(types.TokenEqual) {
		if initializer, err = p.expression(); err != nil {
			return types.NoNode, err
		}
	}

	if _, err := p.consume(types.TokenSemicolon, "Expect ';' after variable declaration."); err != nil {
		return types.NoNode, err
	}

	id := p.arena.Alloc(types.NodeVar, name)
	p.arena.Node(id).Left = initializer
	return id, nil
}

// Statements

// statement → exprStmt | forStmt | ifStmt | printStmt | returnStmt | whileStmt | block
func (p *Parser) statement() (types.NodeID, error) {
	if err := p.enter(); err != nil {
		return types.NoNode, err
	}
	defer p.leave()

	switch {
	case p.match(types.TokenFor):
		return p.forStatement()
	case p.match(types.TokenIf):
		return p.ifStatement()
	case p.match(types.TokenPrint):
		return p.printStatement()
	case p.match(types.TokenReturn):
		return p.returnStatement()
	case p.match(types.TokenWhile):
		return p.whileStatement()
	case p.match(types.TokenLeftBrace):
		brace := p.previous()
		stmts, err := p.block()
		if err != nil {
			return types.NoNode, err
		}
		id := p.arena.Alloc(types.NodeBlock, brace)
		p.arena.Node(id).List = stmts
		return id, nil
	default:
		return p.expressionStatement()
	}
}

// forStmt → "for" "(" ( varDecl | exprStmt | ";" ) expression? ";" expression? ")" statement
//
// There is no for node: the loop is desugared into a block holding the
// initializer and a while loop whose body runs the increment last.
func (p *Parser) forStatement() (types.NodeID, error) {
	keyword := p.previous()
	if _, err := p.consume(types.TokenLeftParen, "Expect '(' after 'for'."); err != nil {
		return types.NoNode, err
	}

	var (
		initializer = types.NoNode
		err         error
	)
	switch {
	case p.match(types.TokenSemicolon):
	case p.match(types.TokenVar):
		initializer, err = p.varDeclaration()
	default:
		initializer, err = p.expressionStatement()
	}
	if err != nil {
		return types.NoNode, err
	}

	condition := types.NoNode
	if !p.check(types.TokenSemicolon) {
		if condition, err = p.expression(); err != nil {
			return types.NoNode, err
		}
	}
	if _, err := p.consume(types.TokenSemicolon, "Expect ';' after loop condition."); err != nil {
		return types.NoNode, err
	}

	increment := types.NoNode
	if !p.check(types.TokenRightParen) {
		if increment, err = p.expression(); err != nil {
			return types.NoNode, err
		}
	}
	if _, err := p.consume(types.TokenRightParen, "Expect ')' after for clauses."); err != nil {
		return types.NoNode, err
	}

	body, err := p.statement()
	if err != nil {
		return types.NoNode, err
	}

	if increment != types.NoNode {
		step := p.arena.Alloc(types.NodeExprStmt, keyword)
		p.arena.Node(step).Left = increment
		body = p.blockOf(keyword, body, step)
	}

	if condition == types.NoNode {
		condition = p.arena.Alloc(types.NodeLiteral, keyword)
		p.arena.Node(condition).Value = types.Bool(true)
	}
	loop := p.arena.Alloc(types.NodeWhile, keyword)
	n := p.arena.Node(loop)
	n.Cond = condition
	n.Left = body

	if initializer != types.NoNode {
		return p.blockOf(keyword, initializer, loop), nil
	}
	return loop, nil
}

// ifStmt → "if" "(" expression ")" statement ( "else" statement )?
func (p *Parser) ifStatement() (types.NodeID, error) {
	keyword := p.previous()
	if _, err := p.consume(types.TokenLeftParen, "Expect '(' after 'if'."); err != nil {
		return types.NoNode, err
	}
	condition, err := p.expression()
	if err != nil {
		return types.NoNode, err
	}
	if _, err := p.consume(types.TokenRightParen, "Expect ')' after if condition."); err != nil {
		return types.NoNode, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return types.NoNode, err
	}
	elseBranch := types.NoNode
	if p.match(types.TokenElse) {
		if elseBranch, err = p.statement(); err != nil {
			return types.NoNode, err
		}
	}

	id := p.arena.Alloc(types.NodeIf, keyword)
	n := p.arena.Node(id)
	n.Cond = condition
	n.Left = thenBranch
	n.Right = elseBranch
	return id, nil
}

// printStmt → "print" expression ";"
func (p *Parser) printStatement() (types.NodeID, error) {
	keyword := p.previous()
	value, err := p.expression()
	if err != nil {
		return types.NoNode, err
	}
	if _, err := p.consume(types.TokenSemicolon, "Expect ';' after value."); err != nil {
		return types.NoNode, err
	}
	id := p.arena.Alloc(types.NodePrint, keyword)
	p.arena.Node(id).Left = value
	return id, nil
}

// returnStmt → "return" expression? ";"
func (p *Parser) returnStatement() (types.NodeID, error) {
	keyword := p.previous()
	value := types.NoNode
	if !p.check(types.TokenSemicolon) {
		var err error
		if value, err = p.expression(); err != nil {
			return types.NoNode, err
		}
	}
	if _, err := p.consume(types.TokenSemicolon, "Expect ';' after return value."); err != nil {
		return types.NoNode, err
	}
	id := p.arena.Alloc(types.NodeReturn, keyword)
	p.arena.Node(id).Left = value
	return id, nil
}

// whileStmt → "while" "(" expression ")" statement
func (p *Parser) whileStatement() (types.NodeID, error) {
	keyword := p.previous()
	if _, err := p.consume(types.TokenLeftParen, "Expect '(' after 'while'."); err != nil {
		return types.NoNode, err
	}
	condition, err := p.expression()
	if err != nil {
		return types.NoNode, err
	}
	if _, err := p.consume(types.TokenRightParen, "Expect ')' after condition."); err != nil {
		return types.NoNode, err
	}
	body, err := p.statement()
	if err != nil {
		return types.NoNode, err
	}

	id := p.arena.Alloc(types.NodeWhile, keyword)
	n := p.arena.Node(id)
	n.Cond = condition
	n.Left = body
	return id, nil
}

// block → "{" declaration* "}"
// The opening brace has already been consumed.
func (p *Parser) block() ([]types.NodeID, error) {
	var stmts []types.NodeID
	for !p.check(types.TokenRightBrace) && !p.isAtEnd() {
		if id := p.declaration(); id != types.NoNode {
			stmts = append(stmts, id)
		}
	}
	if _, err := p.consume(types.TokenRightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}
	return p.arena.List(stmts), nil
}

// exprStmt → expression ";"
func (p *Parser) expressionStatement() (types.NodeID, error) {
	start := p.peek()
	expr, err := p.expression()
	if err != nil {
		return types.NoNode, err
	}
	if _, err := p.consume(types.TokenSemicolon, "Expect ';' after expression."); err != nil {
		return types.NoNode, err
	}
	id := p.arena.Alloc(types.NodeExprStmt, start)
	p.arena.Node(id).Left = expr
	return id, nil
}

// blockOf builds a synthetic block around stmts.
func (p *Parser) blockOf(tok types.Token, stmts ...types.NodeID) types.NodeID {
	id := p.arena.Alloc(types.NodeBlock, tok)
	p.arena.Node(id).List = p.arena.List(stmts)
	return id
}

// Expressions

// expression → assignment
func (p *Parser) expression() (types.NodeID, error) {
	if err := p.enter(); err != nil {
		return types.NoNode, err
	}
	defer p.leave()
	return p.assignment()
}

// assignment → ( call "." )? IDENTIFIER "=" assignment | logic_or
//
// The target is parsed as an ordinary expression first and then checked:
// a Variable becomes an Assign, a Get becomes a Set. Any other target is
// reported without unwinding.
func (p *Parser) assignment() (types.NodeID, error) {
	expr, err := p.or()
	if err != nil {
		return types.NoNode, err
	}

	if !p.match(types.TokenEqual) {
		return expr, nil
	}

	equals := p.previous()
	value, err := p.assignment()
	if err != nil {
		return types.NoNode, err
	}

	switch target := p.arena.Node(expr); target.Kind {
	case types.NodeVariable:
		id := p.arena.Alloc(types.NodeAssign, target.Token)
		p.arena.Node(id).Right = value
		return id, nil
	case types.NodeGet:
		object, name := target.Left, target.Token
		id := p.arena.Alloc(types.NodeSet, name)
		n := p.arena.Node(id)
		n.Left = object
		n.Right = value
		return id, nil
	}

	p.errorAt(equals, types.ErrInvalidAssignment, "Invalid assignment target.")
	return expr, nil
}

// logic_or → logic_and ( "or" logic_and )*
func (p *Parser) or() (types.NodeID, error) {
	return p.binary(types.NodeLogical, p.and, types.TokenOr)
}

// logic_and → equality ( "and" equality )*
func (p *Parser) and() (types.NodeID, error) {
	return p.binary(types.NodeLogical, p.equality, types.TokenAnd)
}

// equality → comparison ( ( "!=" | "==" ) comparison )*
func (p *Parser) equality() (types.NodeID, error) {
	return p.binary(types.NodeBinary, p.comparison, types.TokenBangEqual, types.TokenEqualEqual)
}

// comparison → term ( ( ">" | ">=" | "<" | "<=" ) term )*
func (p *Parser) comparison() (types.NodeID, error) {
	return p.binary(types.NodeBinary, p.term,
		types.TokenGreater, types.TokenGreaterEqual, types.TokenLess, types.TokenLessEqual)
}

// term → factor ( ( "-" | "+" ) factor )*
func (p *Parser) term() (types.NodeID, error) {
	return p.binary(types.NodeBinary, p.factor, types.TokenMinus, types.TokenPlus)
}

// factor → unary ( ( "/" | "*" ) unary )*
func (p *Parser) factor() (types.NodeID, error) {
	return p.binary(types.NodeBinary, p.unary, types.TokenSlash, types.TokenStar)
}

// binary parses one left-associative precedence level.
func (p *Parser) binary(kind types.NodeKind, operand func() (types.NodeID, error), ops ...types.TokenKind) (types.NodeID, error) {
	left, err := operand()
	if err != nil {
		return types.NoNode, err
	}
	for p.match(ops...) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return types.NoNode, err
		}
		id := p.arena.Alloc(kind, op)
		n := p.arena.Node(id)
		n.Left = left
		n.Right = right
		left = id
	}
	return left, nil
}

// unary → ( "!" | "-" ) unary | call
func (p *Parser) unary() (types.NodeID, error) {
	if !p.match(types.TokenBang, types.TokenMinus) {
		return p.call()
	}

	op := p.previous()
	if err := p.enter(); err != nil {
		return types.NoNode, err
	}
	defer p.leave()

	right, err := p.unary()
	if err != nil {
		return types.NoNode, err
	}
	id := p.arena.Alloc(types.NodeUnary, op)
	p.arena.Node(id).Right = right
	return id, nil
}

// call → primary ( "(" arguments? ")" | "." IDENTIFIER )*
func (p *Parser) call() (types.NodeID, error) {
	expr, err := p.primary()
	if err != nil {
		return types.NoNode, err
	}

	for {
		switch {
		case p.match(types.TokenLeftParen):
			if expr, err = p.finishCall(expr); err != nil {
				return types.NoNode, err
			}
		case p.match(types.TokenDot):
			name, err := p.consume(types.TokenIdentifier, "Expect property name after '.'.")
			if err != nil {
				return types.NoNode, err
			}
			id := p.arena.Alloc(types.NodeGet, name)
			p.arena.Node(id).Left = expr
			expr = id
		default:
			return expr, nil
		}
	}
}

// finishCall parses the argument list of a call whose '(' was consumed.
func (p *Parser) finishCall(callee types.NodeID) (types.NodeID, error) {
	var args []types.NodeID
	if !p.check(types.TokenRightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), types.ErrTooManyArguments, "Can't have more than 255 arguments.")
			}
			arg, err := p.expression()
			if err != nil {
				return types.NoNode, err
			}
			args = append(args, arg)
			if !p.match(types.TokenComma) {
				break
			}
		}
	}

	paren, err := p.consume(types.TokenRightParen, "Expect ')' after arguments.")
	if err != nil {
		return types.NoNode, err
	}

	id := p.arena.Alloc(types.NodeCall, paren)
	n := p.arena.Node(id)
	n.Left = callee
	n.List = p.arena.List(args)
	return id, nil
}

// primary → "true" | "false" | "nil" | "this" | NUMBER | STRING | IDENTIFIER
//
//	| "(" expression ")" | "super" "." IDENTIFIER
func (p *Parser) primary() (types.NodeID, error) {
	tok := p.peek()

	switch tok.Kind {
	case types.TokenFalse, types.TokenTrue, types.TokenNil, types.TokenNumber, types.TokenString:
		p.advance()
		id := p.arena.Alloc(types.NodeLiteral, tok)
		p.arena.Node(id).Value = tok.Literal
		return id, nil

	case types.TokenSuper:
		p.advance()
		if _, err := p.consume(types.TokenDot, "Expect '.' after 'super'."); err != nil {
			return types.NoNode, err
		}
		method, err := p.consume(types.TokenIdentifier, "Expect superclass method name.")
		if err != nil {
			return types.NoNode, err
		}
		id := p.arena.Alloc(types.NodeSuper, tok)
		p.arena.Node(id).Name = method
		return id, nil

	case types.TokenThis:
		p.advance()
		return p.arena.Alloc(types.NodeThis, tok), nil

	case types.TokenIdentifier:
		p.advance()
		return p.arena.Alloc(types.NodeVariable, tok), nil

	case types.TokenLeftParen:
		p.advance()
		inner, err := p.expression()
		if err != nil {
			return types.NoNode, err
		}
		if _, err := p.consume(types.TokenRightParen, "Expect ')' after expression."); err != nil {
			return types.NoNode, err
		}
		id := p.arena.Alloc(types.NodeGrouping, tok)
		p.arena.Node(id).Left = inner
		return id, nil
	}

	return types.NoNode, p.errorAt(tok, types.ErrExpectedExpression, "Expect expression.")
}

// Token helpers

// match advances past the current token when it has one of the given kinds.
func (p *Parser) match(kinds ...types.TokenKind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// consume checks that the current token has the expected kind and advances.
func (p *Parser) consume(kind types.TokenKind, message string) (types.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	return types.Token{}, p.errorAt(p.peek(), types.ErrExpectedToken, message)
}

func (p *Parser) check(kind types.TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) advance() types.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == types.TokenEOF
}

func (p *Parser) peek() types.Token {
	return p.tokens[p.current]
}

func (p *Parser) previous() types.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

// enter and leave bound the recursion depth of nested statements and
// expressions.
func (p *Parser) enter() error {
	if p.opts.MaxDepth > 0 && p.depth >= p.opts.MaxDepth {
		return p.errorAt(p.peek(), types.ErrNestingTooDeep, "Expression nesting too deep.")
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// errorAt records a parser error located at tok and returns it.
func (p *Parser) errorAt(tok types.Token, code types.ErrorCode, message string) error {
	err := types.NewTokenError(code, tok, message)
	p.errs.Add(err)
	return err
}

// synchronize discards tokens until a statement boundary: just past a ';'
// or right before a keyword that starts a statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == types.TokenSemicolon {
			return
		}
		if statementStarts[p.peek().Kind] {
			return
		}
		p.advance()
	}
}

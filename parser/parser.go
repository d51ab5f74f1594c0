// Package parser turns a token stream into a forest of top-level ast.Nodes.
//
// It is a recursive-descent, precedence-climbing parser:
// https://en.wikipedia.org/wiki/Recursive_descent_parser
package parser

import (
	"github.com/hashicorp/go-multierror"

	"lead/ast"
	"lead/token"
)

// Parser walks a flat token slice produced by the lexer and builds ast.Node
// values out of it. Like the lexer it is a single cursor over a fixed
// slice; there is no backtracking beyond the controlled lookahead the
// grammar needs (checkType/peekNext).
type Parser struct {
	tokens   []token.Token
	position int
}

// New creates a Parser over the tokens produced by a completed lexer Scan.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse parses the entire token stream into top-level declarations,
// collecting every syntax error found rather than stopping at the first
// one. A non-nil error is always a *multierror.Error wrapping one or more
// *SyntaxError values.
func (p *Parser) Parse() ([]ast.Node, error) {
	var nodes []ast.Node
	var errs *multierror.Error

	for !p.isFinished() {
		node, err := p.declaration()
		if err != nil {
			errs = multierror.Append(errs, err)
			p.synchronize()
			continue
		}
		nodes = append(nodes, node)
	}

	return nodes, errs.ErrorOrNil()
}

// synchronize discards tokens up to the next statement boundary after a
// parse error, so a single malformed statement doesn't cascade into
// spurious errors for everything that follows it.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isFinished() {
		if p.previous().Type == token.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case token.VAR, token.LET, token.CONST, token.FN, token.RETURN, token.HASH:
			return
		}
		p.advance()
	}
}

func (p *Parser) peek() token.Token {
	return p.tokens[p.position]
}

func (p *Parser) peekNext() token.Token {
	if p.position+1 >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.position+1]
}

func (p *Parser) previous() token.Token {
	return p.tokens[p.position-1]
}

func (p *Parser) isFinished() bool {
	return p.peek().Type == token.EOF
}

func (p *Parser) advance() token.Token {
	if !p.isFinished() {
		p.position++
	}
	return p.previous()
}

func (p *Parser) check(typ token.Type) bool {
	if p.isFinished() {
		return typ == token.EOF
	}
	return p.peek().Type == typ
}

// match advances and returns true if the current token's type is one of
// the given types, otherwise leaves the cursor untouched.
func (p *Parser) match(types ...token.Type) bool {
	for _, typ := range types {
		if p.check(typ) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(typ token.Type, message string) (token.Token, error) {
	if p.check(typ) {
		return p.advance(), nil
	}
	return token.Token{}, newSyntaxErrorf(p.peek().Span, "%s, got %q", message, p.peek().Lexeme)
}

var baseTypeTokens = map[token.Type]ast.Kind{
	token.U8:      ast.U8,
	token.U16:     ast.U16,
	token.U32:     ast.U32,
	token.U64:     ast.U64,
	token.I8:      ast.I8,
	token.I16:     ast.I16,
	token.I32:     ast.I32,
	token.I64:     ast.I64,
	token.BOOL:    ast.Bool,
	token.STR:     ast.String,
	token.CHAR_TY: ast.Char,
	token.VOID_TY: ast.Void,
}

var comptimeBaseTokens = map[token.Type]ast.Kind{
	token.U8: ast.ComptimeNumber, token.U16: ast.ComptimeNumber, token.U32: ast.ComptimeNumber, token.U64: ast.ComptimeNumber,
	token.I8: ast.ComptimeNumber, token.I16: ast.ComptimeNumber, token.I32: ast.ComptimeNumber, token.I64: ast.ComptimeNumber,
	token.BOOL:    ast.ComptimeBool,
	token.STR:     ast.ComptimeString,
	token.CHAR_TY: ast.ComptimeChar,
}

// parseType parses a type annotation: an optional `ref`/`const ref` prefix,
// an optional `comptime` prefix, then a base type keyword.
func (p *Parser) parseType() (ast.DataType, error) {
	if p.check(token.CONST) && p.peekNext().Type == token.REF {
		p.advance()
		p.advance()
		inner, err := p.parseType()
		if err != nil {
			return ast.DataType{}, err
		}
		return ast.MakeConstRef(inner), nil
	}
	if p.match(token.REF) {
		inner, err := p.parseType()
		if err != nil {
			return ast.DataType{}, err
		}
		return ast.MakeRef(inner), nil
	}
	if p.match(token.COMPTIME) {
		tok := p.peek()
		kind, ok := comptimeBaseTokens[tok.Type]
		if !ok {
			return ast.DataType{}, newSyntaxErrorf(tok.Span, "expected a type after 'comptime'")
		}
		p.advance()
		return ast.Simple(kind), nil
	}
	tok := p.peek()
	kind, ok := baseTypeTokens[tok.Type]
	if !ok {
		return ast.DataType{}, newSyntaxErrorf(tok.Span, "expected a type name")
	}
	p.advance()
	return ast.Simple(kind), nil
}

// parseParams parses a parenthesized, comma-separated parameter list:
// `name: type, name: type, ...` with an optional trailing `...` marking
// the function as variadic (only meaningful for #extern declarations).
func (p *Parser) parseParams() ([]ast.Param, bool, error) {
	if _, err := p.consume(token.LPAREN, "expected '('"); err != nil {
		return nil, false, err
	}

	var params []ast.Param
	variadic := false
	if !p.check(token.RPAREN) {
		for {
			if p.match(token.ELLIPSIS) {
				variadic = true
				break
			}
			nameTok, err := p.consume(token.IDENTIFIER, "expected a parameter name")
			if err != nil {
				return nil, false, err
			}
			if _, err := p.consume(token.COLON, "expected ':' after parameter name"); err != nil {
				return nil, false, err
			}
			typ, err := p.parseType()
			if err != nil {
				return nil, false, err
			}
			params = append(params, ast.Param{Name: nameTok.Lexeme, Type: typ})
			if !p.match(token.COMMA) {
				break
			}
		}
	}

	if _, err := p.consume(token.RPAREN, "expected ')' after parameters"); err != nil {
		return nil, false, err
	}
	return params, variadic, nil
}

// parseArgs parses a parenthesized, comma-separated argument list for a
// call expression.
func (p *Parser) parseArgs() ([]ast.Node, error) {
	if _, err := p.consume(token.LPAREN, "expected '('"); err != nil {
		return nil, err
	}
	var args []ast.Node
	if !p.check(token.RPAREN) {
		for {
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(token.RPAREN, "expected ')' after arguments"); err != nil {
		return nil, err
	}
	return args, nil
}

package parser

import (
	"lead/ast"
	"lead/position"
	"lead/token"
)

// declaration dispatches to whichever top-level or body-level production
// the current token starts: a variable definition, a function definition,
// a return, a compiler directive, or a bare expression statement.
func (p *Parser) declaration() (ast.Node, error) {
	switch {
	case p.match(token.VAR, token.LET, token.CONST):
		return p.varDef()
	case p.match(token.FN):
		return p.funcDef()
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.HASH):
		return p.directive()
	default:
		return p.expressionStmt()
	}
}

func varKindFor(typ token.Type) ast.VarKind {
	switch typ {
	case token.LET:
		return ast.KindLet
	case token.CONST:
		return ast.KindConst
	default:
		return ast.KindVar
	}
}

// varDef parses `var|let|const name[: type][= init];`. previous() is the
// var/let/const keyword already consumed by declaration's dispatch.
func (p *Parser) varDef() (ast.Node, error) {
	start := p.previous().Span
	kind := varKindFor(p.previous().Type)

	nameTok, err := p.consume(token.IDENTIFIER, "expected a variable name")
	if err != nil {
		return nil, err
	}

	var declared *ast.DataType
	if p.match(token.COLON) {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		declared = &typ
	}

	var init ast.Node
	if p.match(token.ASSIGN) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	end, err := p.consume(token.SEMICOLON, "expected ';' after variable definition")
	if err != nil {
		return nil, err
	}

	return &ast.VarDef{
		VarKind:  kind,
		Name:     nameTok.Lexeme,
		DataType: declared,
		Init:     init,
		Span_:    position.Merge(start, end.Span),
	}, nil
}

// funcDef parses `fn name(params)[: return_type] { body }`. previous() is
// the already-consumed `fn` keyword.
func (p *Parser) funcDef() (ast.Node, error) {
	start := p.previous().Span

	nameTok, err := p.consume(token.IDENTIFIER, "expected a function name")
	if err != nil {
		return nil, err
	}

	params, _, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	var returnType *ast.DataType
	if p.match(token.COLON) {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		returnType = &typ
	}

	if _, err := p.consume(token.LBRACE, "expected '{' to start a function body"); err != nil {
		return nil, err
	}

	var body []ast.Node
	for !p.check(token.RBRACE) && !p.isFinished() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	end, err := p.consume(token.RBRACE, "expected '}' to close a function body")
	if err != nil {
		return nil, err
	}

	return &ast.FuncDef{
		Name:       nameTok.Lexeme,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		Span_:      position.Merge(start, end.Span),
	}, nil
}

// returnStmt parses `return [expr];`. previous() is the consumed `return`.
func (p *Parser) returnStmt() (ast.Node, error) {
	start := p.previous().Span

	var expr ast.Node
	if !p.check(token.SEMICOLON) {
		var err error
		expr, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	end, err := p.consume(token.SEMICOLON, "expected ';' after return statement")
	if err != nil {
		return nil, err
	}

	return &ast.Return{Expr: expr, Span_: position.Merge(start, end.Span)}, nil
}

// directive parses a `#extern`/`#import`/`#include` compiler directive.
// previous() is the already-consumed `#`.
func (p *Parser) directive() (ast.Node, error) {
	start := p.previous().Span

	switch {
	case p.match(token.EXTERN):
		return p.externDecl(start)
	case p.match(token.IMPORT):
		return p.pathDirective(start, func(path string, span position.Span) ast.Node {
			return &ast.Import{Path: path, Span_: span}
		})
	case p.match(token.INCLUDE):
		return p.pathDirective(start, func(path string, span position.Span) ast.Node {
			return &ast.Include{Path: path, Span_: span}
		})
	default:
		return nil, newSyntaxErrorf(p.peek().Span, "unknown compiler directive %q", p.peek().Lexeme)
	}
}

// externDecl parses `extern name(params[, ...])[: return_type];`.
func (p *Parser) externDecl(start position.Span) (ast.Node, error) {
	nameTok, err := p.consume(token.IDENTIFIER, "expected a function name")
	if err != nil {
		return nil, err
	}

	params, variadic, err := p.parseParams()
	if err != nil {
		return nil, err
	}

	var returnType *ast.DataType
	if p.match(token.COLON) {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		returnType = &typ
	}

	end, err := p.consume(token.SEMICOLON, "expected ';' after extern declaration")
	if err != nil {
		return nil, err
	}

	return &ast.ExternFn{
		Name:       nameTok.Lexeme,
		Params:     params,
		Variadic:   variadic,
		ReturnType: returnType,
		Span_:      position.Merge(start, end.Span),
	}, nil
}

// pathDirective parses `keyword "path";`, shared by #import and #include.
func (p *Parser) pathDirective(start position.Span, build func(path string, span position.Span) ast.Node) (ast.Node, error) {
	pathTok, err := p.consume(token.STRING, "expected a quoted path")
	if err != nil {
		return nil, err
	}
	end, err := p.consume(token.SEMICOLON, "expected ';' after directive")
	if err != nil {
		return nil, err
	}
	return build(pathTok.Literal.(string), position.Merge(start, end.Span)), nil
}

// expressionStmt parses a bare expression followed by a semicolon: a
// variable call, function call, or assignment used as a statement.
func (p *Parser) expressionStmt() (ast.Node, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMICOLON, "expected ';' after expression"); err != nil {
		return nil, err
	}
	return expr, nil
}

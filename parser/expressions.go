package parser

import (
	"lead/ast"
	"lead/position"
	"lead/token"
)

// binaryLevelTokens maps each precedence level, loosest to tightest, to
// the token types that operate at it and the ast.Operator each produces.
var binaryLevelTokens = []map[token.Type]ast.Operator{
	{ // PrecLogical
		token.AMP_AMP: ast.And, token.AND: ast.And,
		token.PIPE_PIPE: ast.Or, token.OR: ast.Or,
		token.CARET_CARET: ast.Xor, token.XOR: ast.Xor,
	},
	{ // PrecComparison
		token.GT: ast.Greater, token.GT_EQ: ast.GreaterOrEqual,
		token.LT: ast.Less, token.LT_EQ: ast.LessOrEqual,
		token.EQ_EQ: ast.Equal, token.BANG_EQ: ast.NotEqual,
	},
	{ // PrecBitwise
		token.SHL: ast.LeftShift, token.SHR: ast.RightShift,
		token.AMP: ast.BitAnd, token.PIPE: ast.BitOr, token.CARET: ast.BitXor,
	},
	{ // PrecAdditive
		token.PLUS: ast.Plus, token.MINUS: ast.Minus,
	},
	{ // PrecFactor
		token.STAR: ast.Multiply, token.SLASH: ast.Divide, token.PERCENT: ast.Remainder,
	},
}

// expression is the grammar's entry point: assignment sits above the
// binary ladder because `name = value` is only legal where a VarCall
// would otherwise stand.
func (p *Parser) expression() (ast.Node, error) {
	return p.assignment()
}

func (p *Parser) assignment() (ast.Node, error) {
	left, err := p.binary(0)
	if err != nil {
		return nil, err
	}

	if p.match(token.ASSIGN) {
		call, ok := left.(*ast.VarCall)
		if !ok {
			return nil, newSyntaxErrorf(p.previous().Span, "invalid assignment target")
		}
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		return &ast.VarAssign{
			Name:  call.Name,
			Value: value,
			Span_: position.Merge(call.Span_, value.Span()),
		}, nil
	}

	return left, nil
}

// binary implements the 5-level precedence ladder by recursive descent:
// level climbs from 0 (loosest, PrecLogical) to len(binaryLevelTokens)-1
// (tightest, PrecFactor), bottoming out into unary.
func (p *Parser) binary(level int) (ast.Node, error) {
	if level >= len(binaryLevelTokens) {
		return p.unary()
	}

	left, err := p.binary(level + 1)
	if err != nil {
		return nil, err
	}

	ops := binaryLevelTokens[level]
	for {
		op, ok := ops[p.peek().Type]
		if !ok {
			return left, nil
		}
		p.advance()
		right, err := p.binary(level + 1)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{
			Left:     left,
			Operator: op,
			Right:    right,
			Span_:    position.Merge(left.Span(), right.Span()),
		}
	}
}

// unary parses the prefix operators: `+ - ! ~ not ref deref` and the
// two-keyword `const ref` form, then falls through to cast.
func (p *Parser) unary() (ast.Node, error) {
	start := p.peek().Span

	if p.check(token.CONST) && p.peekNext().Type == token.REF {
		p.advance()
		p.advance()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Operator: ast.ConstRefOp, Operand: operand, Span_: position.Merge(start, operand.Span())}, nil
	}

	var op ast.Operator
	switch {
	case p.match(token.PLUS):
		op = ast.Plus
	case p.match(token.MINUS):
		op = ast.Minus
	case p.match(token.BANG, token.NOT):
		op = ast.Not
	case p.match(token.TILDE):
		op = ast.BitNot
	case p.match(token.REF):
		op = ast.RefOp
	case p.match(token.DEREF):
		op = ast.Deref
	default:
		return p.castExpr()
	}

	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &ast.UnaryOp{Operator: op, Operand: operand, Span_: position.Merge(start, operand.Span())}, nil
}

// castExpr parses `expr [to type]*`, left-associative so `x to i32 to u8`
// re-casts its own result.
func (p *Parser) castExpr() (ast.Node, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.match(token.TO) {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		expr = &ast.Cast{Expr: expr, To: typ, Span_: position.Merge(expr.Span(), p.previous().Span)}
	}
	return expr, nil
}

// primary parses the grammar's leaves: literals, a parenthesized
// expression, and identifiers (bare variable reference or call).
func (p *Parser) primary() (ast.Node, error) {
	tok := p.peek()

	switch {
	case p.match(token.TRUE):
		return &ast.Value{Kind: ast.ValueBoolean, Bool: true, Span_: tok.Span}, nil
	case p.match(token.FALSE):
		return &ast.Value{Kind: ast.ValueBoolean, Bool: false, Span_: tok.Span}, nil
	case p.match(token.NUMBER):
		return &ast.Value{Kind: ast.ValueNumber, Text: tok.Lexeme, Span_: tok.Span}, nil
	case p.match(token.STRING):
		return &ast.Value{Kind: ast.ValueString, Text: tok.Literal.(string), Span_: tok.Span}, nil
	case p.match(token.CHAR):
		return &ast.Value{Kind: ast.ValueChar, Text: tok.Literal.(string), Span_: tok.Span}, nil
	case p.match(token.LPAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.RPAREN, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return expr, nil
	case p.match(token.IDENTIFIER):
		if p.check(token.LPAREN) {
			args, err := p.parseArgs()
			if err != nil {
				return nil, err
			}
			return &ast.FuncCall{Name: tok.Lexeme, Args: args, Span_: position.Merge(tok.Span, p.previous().Span)}, nil
		}
		return &ast.VarCall{Name: tok.Lexeme, Span_: tok.Span}, nil
	default:
		return nil, newSyntaxErrorf(tok.Span, "expected an expression, got %q", tok.Lexeme)
	}
}

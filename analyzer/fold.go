package analyzer

import (
	"errors"
	"math/big"

	"lead/ast"
)

var errBadDigits = errors.New("not a base-10 integer")

// mask128 keeps folded integer results within the unsigned 128-bit space
// the spec mandates: arithmetic wraps modulo 2^128 rather than erroring,
// matching the corrected semantics for the source's "missing overflow
// handling" design note (division/remainder by zero is the one case that
// stays an explicit error).
var mask128 = func() *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), 128)
	return m.Sub(m, big.NewInt(1))
}()

// foldConstant evaluates op over two literal Value leaves at compile
// time, returning the folded literal and ok=true, or ok=false if the
// pair isn't a foldable literal combination (the caller leaves the node
// as a residual BinaryOp in that case).
func foldConstant(op ast.Operator, left, right *ast.Value) (*ast.Value, bool, error) {
	if left.Kind == ast.ValueNumber && right.Kind == ast.ValueNumber {
		return foldNumberPair(op, left, right)
	}
	if left.Kind == ast.ValueBoolean && right.Kind == ast.ValueBoolean {
		return foldBoolPair(op, left, right)
	}
	if left.Kind == ast.ValueString && right.Kind == ast.ValueString && (op == ast.Equal || op == ast.NotEqual) {
		return &ast.Value{Kind: ast.ValueBoolean, Bool: (left.Text == right.Text) == (op == ast.Equal), Span_: left.Span_}, true, nil
	}
	if left.Kind == ast.ValueChar && right.Kind == ast.ValueChar {
		switch op {
		case ast.Equal, ast.NotEqual:
			return &ast.Value{Kind: ast.ValueBoolean, Bool: (left.Text == right.Text) == (op == ast.Equal), Span_: left.Span_}, true, nil
		case ast.Greater, ast.GreaterOrEqual, ast.Less, ast.LessOrEqual:
			return foldCharCompare(op, left, right), true, nil
		}
	}
	return nil, false, nil
}

func foldNumberPair(op ast.Operator, left, right *ast.Value) (*ast.Value, bool, error) {
	l, ok := new(big.Int).SetString(left.Text, 10)
	if !ok {
		return nil, false, errInvalidNumber(left.Text, errBadDigits, left.Span_)
	}
	r, ok := new(big.Int).SetString(right.Text, 10)
	if !ok {
		return nil, false, errInvalidNumber(right.Text, errBadDigits, right.Span_)
	}

	result := new(big.Int)
	switch op {
	case ast.Plus:
		result.Add(l, r).And(result, mask128)
	case ast.Minus:
		result.Sub(l, r)
		if result.Sign() < 0 {
			result.Add(result, new(big.Int).Lsh(big.NewInt(1), 128))
		}
		result.And(result, mask128)
	case ast.Multiply:
		result.Mul(l, r).And(result, mask128)
	case ast.Divide:
		if r.Sign() == 0 {
			return nil, false, errDivisionByZero(op, left.Span_)
		}
		result.Div(l, r)
	case ast.Remainder:
		if r.Sign() == 0 {
			return nil, false, errDivisionByZero(op, left.Span_)
		}
		result.Mod(l, r)
	case ast.LeftShift:
		result.Lsh(l, shiftAmount(r)).And(result, mask128)
	case ast.RightShift:
		result.Rsh(l, shiftAmount(r))
	case ast.BitAnd:
		result.And(l, r)
	case ast.BitOr:
		result.Or(l, r)
	case ast.BitXor:
		result.Xor(l, r)
	case ast.Greater:
		return boolValue(l.Cmp(r) > 0, left), true, nil
	case ast.GreaterOrEqual:
		return boolValue(l.Cmp(r) >= 0, left), true, nil
	case ast.Less:
		return boolValue(l.Cmp(r) < 0, left), true, nil
	case ast.LessOrEqual:
		return boolValue(l.Cmp(r) <= 0, left), true, nil
	case ast.Equal:
		return boolValue(l.Cmp(r) == 0, left), true, nil
	case ast.NotEqual:
		return boolValue(l.Cmp(r) != 0, left), true, nil
	default:
		return nil, false, nil
	}

	return &ast.Value{Kind: ast.ValueNumber, Text: result.String(), Span_: left.Span_}, true, nil
}

func shiftAmount(n *big.Int) uint {
	if !n.IsUint64() {
		return 128
	}
	amount := n.Uint64()
	if amount > 256 {
		return 256
	}
	return uint(amount)
}

func boolValue(b bool, like *ast.Value) *ast.Value {
	return &ast.Value{Kind: ast.ValueBoolean, Bool: b, Span_: like.Span_}
}

// foldBoolPair folds && (And), || (Or), xor (Xor) and the equality
// operators over two boolean literals. xor is computed exactly as the
// spec's `(a|b) ∧ ¬(a∧b)` rather than Go's native `!=`, to keep the
// grounding literal.
func foldBoolPair(op ast.Operator, left, right *ast.Value) (*ast.Value, bool, error) {
	a, b := left.Bool, right.Bool
	switch op {
	case ast.And:
		return boolValue(a && b, left), true, nil
	case ast.Or:
		return boolValue(a || b, left), true, nil
	case ast.Xor:
		return boolValue((a || b) && !(a && b), left), true, nil
	case ast.Equal, ast.NotEqual:
		return boolValue((a == b) == (op == ast.Equal), left), true, nil
	default:
		return nil, false, nil
	}
}

func foldCharCompare(op ast.Operator, left, right *ast.Value) *ast.Value {
	l, r := []rune(left.Text), []rune(right.Text)
	var lv, rv rune
	if len(l) > 0 {
		lv = l[0]
	}
	if len(r) > 0 {
		rv = r[0]
	}
	switch op {
	case ast.Greater:
		return boolValue(lv > rv, left)
	case ast.GreaterOrEqual:
		return boolValue(lv >= rv, left)
	case ast.Less:
		return boolValue(lv < rv, left)
	default:
		return boolValue(lv <= rv, left)
	}
}

// Package generator renders a C-IR forest into C source text: a
// recursive printer that parenthesizes every binary operation to
// preserve tree structure, tab-indents function bodies, and renders
// #include directives as `#include <path.h>`.
package generator

import (
	"fmt"
	"strings"

	"lead/cnode"
)

// Generator walks a C-IR forest left to right, the same one-pass
// index-advancing shape the lowering stage uses, and accumulates the
// rendered program in a strings.Builder.
type Generator struct {
	out strings.Builder
}

// New returns a Generator ready to render a forest.
func New() *Generator { return &Generator{} }

// Generate renders every top-level node in ast, each followed by a
// newline, and returns the accumulated C source.
func Generate(ast []cnode.Node) string {
	g := New()
	for _, n := range ast {
		g.out.WriteString(g.generateStatement(n, ""))
		g.out.WriteByte('\n')
	}
	return g.out.String()
}

// isFullStatement reports whether n is already a complete statement that
// the generator must not append a trailing semicolon to: FuncDef and
// Include are "full statements" per the spec, every other top-level node
// gets one.
func isFullStatement(n cnode.Node) bool {
	switch n.(type) {
	case *cnode.FuncDef, *cnode.Include:
		return true
	default:
		return false
	}
}

func (g *Generator) generateStatement(n cnode.Node, indent string) string {
	body := g.generateNode(n)
	if isFullStatement(n) {
		return indent + body
	}
	return indent + body + ";"
}

func (g *Generator) generateOperator(op cnode.COperator) string {
	return op.String()
}

func (g *Generator) generateUnaryOperator(op cnode.CUnaryOperator) string {
	return op.String()
}

func (g *Generator) generateBinOp(n *cnode.BinaryOp) string {
	return "(" + g.generateNode(n.Left) + " " + g.generateOperator(n.Operator) + " " + g.generateNode(n.Right) + ")"
}

func (g *Generator) generateUnaryOp(n *cnode.UnaryOp) string {
	return "(" + g.generateUnaryOperator(n.Operator) + g.generateNode(n.Operand) + ")"
}

func (g *Generator) generateValue(n *cnode.CValue) string {
	switch n.Kind {
	case cnode.CValueString:
		return "\"" + n.Text + "\""
	case cnode.CValueChar:
		return "'" + n.Text + "'"
	default:
		return n.Text
	}
}

func (g *Generator) generateCast(n *cnode.Cast) string {
	return "((" + n.To.String() + ")" + g.generateNode(n.Expr) + ")"
}

func (g *Generator) generateVarDef(n *cnode.VarDef) string {
	var b strings.Builder
	b.WriteString(n.Type.String())
	if n.Const {
		b.WriteString(" const")
	}
	b.WriteByte(' ')
	b.WriteString(n.Name)
	if n.Init != nil {
		b.WriteString(" = ")
		b.WriteString(g.generateNode(n.Init))
	}
	return b.String()
}

func (g *Generator) generateVarAssign(n *cnode.VarAssign) string {
	name := n.Name
	if n.ViaDeref {
		name = "*" + name
	}
	return name + " = " + g.generateNode(n.Value)
}

func (g *Generator) generateFuncDef(n *cnode.FuncDef) string {
	var b strings.Builder
	b.WriteString(n.ReturnType.String())
	b.WriteByte(' ')
	b.WriteString(n.Name)
	b.WriteByte('(')
	for i, p := range n.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Type.String())
		b.WriteByte(' ')
		b.WriteString(p.Name)
	}
	b.WriteString(") {\n")
	for _, stmt := range n.Body {
		b.WriteString(g.generateStatement(stmt, "\t"))
		b.WriteByte('\n')
	}
	b.WriteString("}")
	return b.String()
}

func (g *Generator) generateFuncCall(n *cnode.FuncCall) string {
	var b strings.Builder
	b.WriteString(n.Name)
	b.WriteByte('(')
	for i, arg := range n.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(g.generateNode(arg))
	}
	b.WriteByte(')')
	return b.String()
}

func (g *Generator) generateReturn(n *cnode.Return) string {
	if n.Expr == nil {
		return "return"
	}
	return "return " + g.generateNode(n.Expr)
}

func (g *Generator) generateInclude(n *cnode.Include) string {
	return fmt.Sprintf("#include <%s.h>", n.Path)
}

func (g *Generator) generateIdent(n *cnode.Ident) string {
	return n.Name
}

func (g *Generator) generateNode(n cnode.Node) string {
	switch v := n.(type) {
	case *cnode.BinaryOp:
		return g.generateBinOp(v)
	case *cnode.UnaryOp:
		return g.generateUnaryOp(v)
	case *cnode.CValue:
		return g.generateValue(v)
	case *cnode.Cast:
		return g.generateCast(v)
	case *cnode.Ident:
		return g.generateIdent(v)
	case *cnode.VarDef:
		return g.generateVarDef(v)
	case *cnode.VarAssign:
		return g.generateVarAssign(v)
	case *cnode.FuncDef:
		return g.generateFuncDef(v)
	case *cnode.FuncCall:
		return g.generateFuncCall(v)
	case *cnode.Return:
		return g.generateReturn(v)
	case *cnode.Include:
		return g.generateInclude(v)
	default:
		return fmt.Sprintf("/* unrenderable C-IR node %T */", n)
	}
}

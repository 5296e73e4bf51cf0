// Package gonewton finds real roots of single-variable functions with
// Newton–Raphson iteration.
//
// Design goals:
//   - Exact symbolic first and second derivatives (no finite differences)
//   - Deterministic simplification and stable output
//   - Explicit, tagged failures instead of silent NaN/Inf propagation
//   - Plot output as identifier-keyed primitives, independent of any renderer
//   - Embeddable in Go services, CLI tools, and agent backends
package gonewton

import (
	"encoding/json"
	"strings"
)

// Variable is the only free symbol a parsed function may contain.
const Variable = "x"

// Expr is a node of the symbolic expression tree. Nodes are immutable;
// Simplify returns a new tree.
type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Diff(varName string) Expr
	// Eval evaluates the node with Variable bound to x.
	Eval(x float64) (float64, error)

	operands() []Expr
	toJSON() map[string]interface{}
}

// flatten simplifies items and splices in the operands of any result that
// open recognises as the same operator.
func flatten(items []Expr, open func(Expr) ([]Expr, bool)) []Expr {
	out := make([]Expr, 0, len(items))
	for _, it := range items {
		s := it.Simplify()
		if inner, ok := open(s); ok {
			out = append(out, inner...)
			continue
		}
		out = append(out, s)
	}
	return out
}

func join(es []Expr, sep string, render func(Expr) string) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = render(e)
	}
	return strings.Join(parts, sep)
}

func jsonList(es []Expr) []map[string]interface{} {
	out := make([]map[string]interface{}, len(es))
	for i, e := range es {
		out[i] = e.toJSON()
	}
	return out
}

func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

// Diff returns the simplified derivative of expr with respect to varName.
func Diff(expr Expr, varName string) Expr {
	return expr.Diff(varName).Simplify()
}

func Diff2(expr Expr, varName string) Expr { return DiffN(expr, varName, 2) }

func DiffN(expr Expr, varName string, n int) Expr {
	for ; n > 0; n-- {
		expr = Diff(expr, varName)
	}
	return expr
}

// FreeSymbols returns the names of every Sym in e.
func FreeSymbols(e Expr) map[string]struct{} {
	found := map[string]struct{}{}
	var walk func(Expr)
	walk = func(n Expr) {
		if s, ok := n.(*Sym); ok {
			found[s.name] = struct{}{}
		}
		for _, c := range n.operands() {
			walk(c)
		}
	}
	walk(e)
	return found
}

// ToJSON encodes e as a tree of {"type": ...} objects.
func ToJSON(e Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

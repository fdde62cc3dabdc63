package queryfilter

import (
	"fmt"
	"strings"
)

// Expression is one node of a filter predicate tree. Exactly two types
// implement it: *Comparison (a leaf testing one field against an operand) and
// *Combination (AND/OR of two sub-expressions). Trees are immutable once
// built: And and Or always return a new node and never modify an operand, and
// every node exclusively owns its children, so a tree has no cycles and can
// be shared across goroutines without coordination.
type Expression interface {
	fmt.Stringer

	// And returns a new combination node joining this expression and other
	// with AND.
	And(other Expression) Expression

	// Or returns a new combination node joining this expression and other
	// with OR.
	Or(other Expression) Expression

	// expressionMarker prevents external implementations.
	expressionMarker()
}

// Comparison is a leaf expression testing one field against an operand.
type Comparison struct {
	Field string
	Op    Operation
	Value any
}

// And implements Expression.
func (c *Comparison) And(other Expression) Expression {
	return &Combination{Left: c, Right: other, Op: OpAnd}
}

// Or implements Expression.
func (c *Comparison) Or(other Expression) Expression {
	return &Combination{Left: c, Right: other, Op: OpOr}
}

func (c *Comparison) expressionMarker() {}

// String returns the infix form of the comparison, e.g. "col_a == test".
func (c *Comparison) String() string {
	return c.Field + " " + c.Op.String() + " " + formatOperand(c.Value)
}

// Combination joins two sub-expressions with AND or OR.
type Combination struct {
	Left  Expression
	Right Expression
	Op    Operation
}

// And implements Expression.
func (c *Combination) And(other Expression) Expression {
	return &Combination{Left: c, Right: other, Op: OpAnd}
}

// Or implements Expression.
func (c *Combination) Or(other Expression) Expression {
	return &Combination{Left: c, Right: other, Op: OpOr}
}

func (c *Combination) expressionMarker() {}

// String returns the infix form of the combination with both operands
// parenthesized, e.g. "(col_a == test) AND (col_c == 1)".
func (c *Combination) String() string {
	return "(" + c.Left.String() + ") " + c.Op.String() + " (" + c.Right.String() + ")"
}

func formatOperand(v any) string {
	if vs, ok := v.([]any); ok {
		parts := make([]string, len(vs))
		for i, elem := range vs {
			parts[i] = formatOperand(elem)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprintf("%v", v)
}

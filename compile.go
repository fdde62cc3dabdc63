package queryfilter

import (
	"errors"
	"fmt"
)

// ErrNilExpression is returned when compiling a nil expression.
var ErrNilExpression = errors.New("cannot compile a nil expression")

// UnsupportedOperandError is returned by a backend compiler that receives an
// operand shape it cannot represent for the given field.
type UnsupportedOperandError struct {
	Backend string
	Field   string
	Value   any
}

func (e *UnsupportedOperandError) Error() string {
	return fmt.Sprintf("%s: unsupported operand type %T for field %q", e.Backend, e.Value, e.Field)
}

// UnsupportedOperationError is returned by a backend compiler that receives
// an operation it has no mapping for, e.g. a comparison operation passed to
// Combine.
type UnsupportedOperationError struct {
	Backend string
	Op      Operation
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("%s: unsupported operation %s", e.Backend, e.Op)
}

// Compiler lowers filter expressions into a backend-native representation T.
// Implementations provide only the two backend-specific halves; the shared
// orchestration in Compile guarantees every backend observes identical
// boolean semantics for identical input trees.
type Compiler[T any] interface {
	// CompileComparison produces the atomic backend-native predicate for one
	// field/operation/operand test.
	CompileComparison(field string, op Operation, value any) (T, error)

	// Combine merges two already-compiled fragments with OpAnd or OpOr.
	Combine(left, right T, op Operation) (T, error)
}

// Compile lowers expr into the backend representation of c. The expression is
// first split into same-operation groups; each group is compiled
// independently and the results are folded left-to-right using each group's
// combining operation. Compilation either returns a complete result or the
// first error encountered, never a partial best effort.
func Compile[T any](c Compiler[T], expr Expression) (T, error) {
	var zero T
	if expr == nil {
		return zero, ErrNilExpression
	}

	subs := Split(expr)

	result, err := compileSingle(c, subs[0].Expr)
	if err != nil {
		return zero, err
	}
	for _, sub := range subs[1:] {
		next, err := compileSingle(c, sub.Expr)
		if err != nil {
			return zero, err
		}
		result, err = c.Combine(result, next, sub.CombineOp)
		if err != nil {
			return zero, err
		}
	}
	return result, nil
}

func compileSingle[T any](c Compiler[T], expr Expression) (T, error) {
	var zero T
	switch node := expr.(type) {
	case *Comparison:
		return c.CompileComparison(node.Field, node.Op, node.Value)
	case *Combination:
		left, err := compileSingle(c, node.Left)
		if err != nil {
			return zero, err
		}
		right, err := compileSingle(c, node.Right)
		if err != nil {
			return zero, err
		}
		return c.Combine(left, right, node.Op)
	default:
		return zero, fmt.Errorf("unknown expression type %T", expr)
	}
}

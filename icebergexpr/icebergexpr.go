// Package icebergexpr compiles filter expressions into Apache Iceberg boolean
// expressions for use in table scan planning.
package icebergexpr

import (
	"github.com/apache/iceberg-go"

	queryfilter "github.com/hugr-lab/queryfilter-go"
)

// Compiler lowers filter expressions to Iceberg boolean expressions. The zero
// value is ready to use.
type Compiler struct{}

// New returns a new Compiler.
func New() *Compiler {
	return &Compiler{}
}

// Compile lowers expr into an Iceberg boolean expression.
func Compile(expr queryfilter.Expression) (iceberg.BooleanExpression, error) {
	return queryfilter.Compile[iceberg.BooleanExpression](New(), expr)
}

var _ queryfilter.Compiler[iceberg.BooleanExpression] = (*Compiler)(nil)

// CompileComparison implements queryfilter.Compiler. Operands must be
// scalars Iceberg has a literal type for; int values are widened to int64.
func (c *Compiler) CompileComparison(field string, op queryfilter.Operation, value any) (iceberg.BooleanExpression, error) {
	ref := iceberg.Reference(field)

	if op == queryfilter.OpIn {
		return c.compileIn(field, ref, value)
	}

	switch v := value.(type) {
	case string:
		return apply(op, ref, v)
	case bool:
		return apply(op, ref, v)
	case int:
		return apply(op, ref, int64(v))
	case int32:
		return apply(op, ref, v)
	case int64:
		return apply(op, ref, v)
	case float32:
		return apply(op, ref, v)
	case float64:
		return apply(op, ref, v)
	default:
		return nil, &queryfilter.UnsupportedOperandError{Backend: "iceberg", Field: field, Value: value}
	}
}

// Combine implements queryfilter.Compiler.
func (c *Compiler) Combine(left, right iceberg.BooleanExpression, op queryfilter.Operation) (iceberg.BooleanExpression, error) {
	switch op {
	case queryfilter.OpAnd:
		return iceberg.NewAnd(left, right), nil
	case queryfilter.OpOr:
		return iceberg.NewOr(left, right), nil
	default:
		return nil, &queryfilter.UnsupportedOperationError{Backend: "iceberg", Op: op}
	}
}

// compileIn requires a homogeneous scalar list. Integer widths are widened to
// int64 so mixed int/int64 lists still form one typed set.
func (c *Compiler) compileIn(field string, ref iceberg.UnboundTerm, value any) (iceberg.BooleanExpression, error) {
	values, ok := value.([]any)
	if !ok || len(values) == 0 {
		return nil, &queryfilter.UnsupportedOperandError{Backend: "iceberg", Field: field, Value: value}
	}

	switch values[0].(type) {
	case string:
		set, err := typedSet[string](field, values)
		if err != nil {
			return nil, err
		}
		return iceberg.IsIn(ref, set...), nil

	case bool:
		set, err := typedSet[bool](field, values)
		if err != nil {
			return nil, err
		}
		return iceberg.IsIn(ref, set...), nil

	case int, int32, int64:
		set := make([]int64, len(values))
		for i, v := range values {
			switch iv := v.(type) {
			case int:
				set[i] = int64(iv)
			case int32:
				set[i] = int64(iv)
			case int64:
				set[i] = iv
			default:
				return nil, &queryfilter.UnsupportedOperandError{Backend: "iceberg", Field: field, Value: value}
			}
		}
		return iceberg.IsIn(ref, set...), nil

	case float32, float64:
		set := make([]float64, len(values))
		for i, v := range values {
			switch fv := v.(type) {
			case float32:
				set[i] = float64(fv)
			case float64:
				set[i] = fv
			default:
				return nil, &queryfilter.UnsupportedOperandError{Backend: "iceberg", Field: field, Value: value}
			}
		}
		return iceberg.IsIn(ref, set...), nil

	default:
		return nil, &queryfilter.UnsupportedOperandError{Backend: "iceberg", Field: field, Value: value}
	}
}

func typedSet[T iceberg.LiteralType](field string, values []any) ([]T, error) {
	out := make([]T, len(values))
	for i, v := range values {
		tv, ok := v.(T)
		if !ok {
			return nil, &queryfilter.UnsupportedOperandError{Backend: "iceberg", Field: field, Value: values}
		}
		out[i] = tv
	}
	return out, nil
}

func apply[T iceberg.LiteralType](op queryfilter.Operation, ref iceberg.UnboundTerm, v T) (iceberg.BooleanExpression, error) {
	switch op {
	case queryfilter.OpEq:
		return iceberg.EqualTo(ref, v), nil
	case queryfilter.OpGt:
		return iceberg.GreaterThan(ref, v), nil
	case queryfilter.OpGe:
		return iceberg.GreaterThanEqual(ref, v), nil
	case queryfilter.OpLt:
		return iceberg.LessThan(ref, v), nil
	case queryfilter.OpLe:
		return iceberg.LessThanEqual(ref, v), nil
	default:
		return nil, &queryfilter.UnsupportedOperationError{Backend: "iceberg", Op: op}
	}
}

// Package arrowexpr compiles filter expressions into Apache Arrow compute
// expressions suitable for filtering columnar record batches and datasets.
//
// Comparisons map directly onto Arrow's compute kernels. Operands the
// comparison kernels cannot address structurally (lists of lists, maps,
// lists of maps) are linearized first: both the field reference and the
// operand are turned into delimiter-joined strings, so an engine without
// structural comparison can still test equality or membership.
package arrowexpr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/compute"
	"github.com/apache/arrow-go/v18/arrow/memory"

	queryfilter "github.com/hugr-lab/queryfilter-go"
)

// Separator joins the elements of composite operands during linearization.
const Separator = ","

// Compiler lowers filter expressions to Arrow compute expressions.
// The zero value is ready to use.
type Compiler struct {
	// Allocator backs the Arrow arrays materialized for IN value sets.
	// If nil, memory.DefaultAllocator is used.
	Allocator memory.Allocator
}

// New returns a Compiler using the default allocator.
func New() *Compiler {
	return &Compiler{}
}

// Compile lowers expr into an Arrow compute expression using default
// settings.
func Compile(expr queryfilter.Expression) (compute.Expression, error) {
	return queryfilter.Compile[compute.Expression](New(), expr)
}

var _ queryfilter.Compiler[compute.Expression] = (*Compiler)(nil)

// CompileComparison implements queryfilter.Compiler.
func (c *Compiler) CompileComparison(field string, op queryfilter.Operation, value any) (compute.Expression, error) {
	fieldExpr := compute.NewFieldRef(field)

	switch v := value.(type) {
	case map[string]any:
		// A map operand compares against the delimiter-joined values of the
		// field's struct members, in sorted key order.
		keys := sortedKeys(v)
		return comparisonCall(op, structJoinField(field, keys), compute.NewLiteral(joinMapValues(v, keys)), field, value)

	case []any:
		if len(v) == 0 {
			return nil, &queryfilter.UnsupportedOperandError{Backend: "arrow", Field: field, Value: value}
		}
		return c.compileListOperand(field, fieldExpr, op, v)

	default:
		if op == queryfilter.OpIn {
			return nil, &queryfilter.UnsupportedOperandError{Backend: "arrow", Field: field, Value: value}
		}
		lit, err := scalarLiteral(field, value)
		if err != nil {
			return nil, err
		}
		return comparisonCall(op, fieldExpr, lit, field, value)
	}
}

// scalarLiteral vets the operand against the scalar types this backend
// materializes. The literal constructor panics on types outside Arrow's
// scalar set, so anything else is rejected here first.
func scalarLiteral(field string, value any) (compute.Expression, error) {
	switch value.(type) {
	case nil, bool, string, int, int32, int64, float32, float64:
		return compute.NewLiteral(value), nil
	default:
		return nil, &queryfilter.UnsupportedOperandError{Backend: "arrow", Field: field, Value: value}
	}
}

// Combine implements queryfilter.Compiler, mapping AND/OR onto Arrow's
// null-aware boolean kernels.
func (c *Compiler) Combine(left, right compute.Expression, op queryfilter.Operation) (compute.Expression, error) {
	switch op {
	case queryfilter.OpAnd:
		return compute.NewCall("and_kleene", []compute.Expression{left, right}, nil), nil
	case queryfilter.OpOr:
		return compute.NewCall("or_kleene", []compute.Expression{left, right}, nil), nil
	default:
		return nil, &queryfilter.UnsupportedOperationError{Backend: "arrow", Op: op}
	}
}

func (c *Compiler) compileListOperand(field string, fieldExpr compute.Expression, op queryfilter.Operation, values []any) (compute.Expression, error) {
	switch first := values[0].(type) {
	case []any:
		// List of lists: each inner list joins into one string, the field is
		// joined the same way, and membership is tested over the strings.
		if op != queryfilter.OpIn {
			return nil, &queryfilter.UnsupportedOperandError{Backend: "arrow", Field: field, Value: values}
		}
		set := make([]any, len(values))
		for i, elem := range values {
			inner, ok := elem.([]any)
			if !ok {
				return nil, &queryfilter.UnsupportedOperandError{Backend: "arrow", Field: field, Value: values}
			}
			set[i] = joinScalars(inner)
		}
		return c.isIn(field, listJoinField(fieldExpr), set)

	case map[string]any:
		// List of maps: values of each map join in the key order of the
		// first, matched against the element-wise join of the struct fields.
		if op != queryfilter.OpIn {
			return nil, &queryfilter.UnsupportedOperandError{Backend: "arrow", Field: field, Value: values}
		}
		keys := sortedKeys(first)
		set := make([]any, len(values))
		for i, elem := range values {
			m, ok := elem.(map[string]any)
			if !ok {
				return nil, &queryfilter.UnsupportedOperandError{Backend: "arrow", Field: field, Value: values}
			}
			set[i] = joinMapValues(m, keys)
		}
		return c.isIn(field, structJoinField(field, keys), set)

	default:
		switch op {
		case queryfilter.OpIn:
			// Scalar membership needs no linearization.
			return c.isIn(field, fieldExpr, values)
		case queryfilter.OpEq:
			// Equality on a scalar list means "the field, joined by the
			// separator, equals the joined operand", not element-wise
			// equality.
			return comparisonCall(op, listJoinField(fieldExpr), compute.NewLiteral(joinScalars(values)), field, values)
		default:
			return nil, &queryfilter.UnsupportedOperandError{Backend: "arrow", Field: field, Value: values}
		}
	}
}

// isIn materializes the value set as an Arrow array and emits a set-lookup
// call. The array's ownership passes to the returned expression.
func (c *Compiler) isIn(field string, fieldExpr compute.Expression, values []any) (compute.Expression, error) {
	set, err := c.buildValueSet(field, values)
	if err != nil {
		return nil, err
	}
	opts := &compute.SetLookupOptions{ValueSet: compute.NewDatum(set), SkipNulls: true}
	return compute.NewCall("is_in", []compute.Expression{fieldExpr}, opts), nil
}

// buildValueSet converts a homogeneous scalar list into an Arrow array.
// Integer widths are widened to int64 and float32 to float64.
func (c *Compiler) buildValueSet(field string, values []any) (arrow.Array, error) {
	mem := c.Allocator
	if mem == nil {
		mem = memory.DefaultAllocator
	}

	switch values[0].(type) {
	case string:
		b := array.NewStringBuilder(mem)
		defer b.Release()
		for _, v := range values {
			s, ok := v.(string)
			if !ok {
				return nil, &queryfilter.UnsupportedOperandError{Backend: "arrow", Field: field, Value: values}
			}
			b.Append(s)
		}
		return b.NewArray(), nil

	case bool:
		b := array.NewBooleanBuilder(mem)
		defer b.Release()
		for _, v := range values {
			bv, ok := v.(bool)
			if !ok {
				return nil, &queryfilter.UnsupportedOperandError{Backend: "arrow", Field: field, Value: values}
			}
			b.Append(bv)
		}
		return b.NewArray(), nil

	case int, int32, int64:
		b := array.NewInt64Builder(mem)
		defer b.Release()
		for _, v := range values {
			switch iv := v.(type) {
			case int:
				b.Append(int64(iv))
			case int32:
				b.Append(int64(iv))
			case int64:
				b.Append(iv)
			default:
				return nil, &queryfilter.UnsupportedOperandError{Backend: "arrow", Field: field, Value: values}
			}
		}
		return b.NewArray(), nil

	case float32, float64:
		b := array.NewFloat64Builder(mem)
		defer b.Release()
		for _, v := range values {
			switch fv := v.(type) {
			case float32:
				b.Append(float64(fv))
			case float64:
				b.Append(fv)
			default:
				return nil, &queryfilter.UnsupportedOperandError{Backend: "arrow", Field: field, Value: values}
			}
		}
		return b.NewArray(), nil

	default:
		return nil, &queryfilter.UnsupportedOperandError{Backend: "arrow", Field: field, Value: values}
	}
}

// comparisonCall emits the compute kernel call for one comparison operation.
func comparisonCall(op queryfilter.Operation, left, right compute.Expression, field string, value any) (compute.Expression, error) {
	var name string
	switch op {
	case queryfilter.OpEq:
		name = "equal"
	case queryfilter.OpGt:
		name = "greater"
	case queryfilter.OpGe:
		name = "greater_equal"
	case queryfilter.OpLt:
		name = "less"
	case queryfilter.OpLe:
		name = "less_equal"
	case queryfilter.OpIn:
		// Membership over a linearized operand is handled by the caller; a
		// map operand reaching here has no set form.
		return nil, &queryfilter.UnsupportedOperandError{Backend: "arrow", Field: field, Value: value}
	default:
		return nil, &queryfilter.UnsupportedOperationError{Backend: "arrow", Op: op}
	}
	return compute.NewCall(name, []compute.Expression{left, right}, nil), nil
}

// listJoinField casts the field to a list of strings and joins its elements
// with the separator, yielding one comparable string per row.
func listJoinField(fieldExpr compute.Expression) compute.Expression {
	cast := compute.NewCall("cast", []compute.Expression{fieldExpr},
		compute.SafeCastOptions(arrow.ListOf(arrow.BinaryTypes.String)))
	return compute.NewCall("binary_join", []compute.Expression{cast, compute.NewLiteral(Separator)}, nil)
}

// structJoinField joins the named struct members of the field element-wise
// with the separator, yielding one comparable string per row.
func structJoinField(field string, keys []string) compute.Expression {
	args := make([]compute.Expression, 0, len(keys)+1)
	for _, key := range keys {
		member := compute.NewRef(compute.FieldRefList(field, key))
		args = append(args, compute.NewCall("cast", []compute.Expression{member},
			compute.SafeCastOptions(arrow.BinaryTypes.LargeString)))
	}
	args = append(args, compute.NewLiteral(Separator))
	return compute.NewCall("binary_join_element_wise", args, nil)
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func joinScalars(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%v", v)
	}
	return strings.Join(parts, Separator)
}

func joinMapValues(m map[string]any, keys []string) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%v", m[k])
	}
	return strings.Join(parts, Separator)
}

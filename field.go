package queryfilter

import (
	"fmt"
	"reflect"
)

// FilterField is a typed handle to a named column. It carries no backend
// knowledge; its comparison methods produce Expression leaves.
type FilterField struct {
	name string
}

// Field creates a FilterField for the named column.
func Field(name string) FilterField {
	return FilterField{name: name}
}

// Name returns the wrapped column name.
func (f FilterField) Name() string { return f.name }

// Eq generates a condition checking that the field equals value.
// The operand may be a scalar, or a composite value (slice, map, slice of
// slices, slice of maps) for backends that define a linearization rule.
func (f FilterField) Eq(value any) Expression {
	return &Comparison{Field: f.name, Op: OpEq, Value: value}
}

// Gt generates a condition checking that the field is greater than value.
// Panics if value is a slice, array, or map: ordering operators compare
// scalars only.
func (f FilterField) Gt(value any) Expression {
	return f.ordering(OpGt, value)
}

// Ge generates a condition checking that the field is greater than or equal
// to value. Panics for composite operands, see Gt.
func (f FilterField) Ge(value any) Expression {
	return f.ordering(OpGe, value)
}

// Lt generates a condition checking that the field is less than value.
// Panics for composite operands, see Gt.
func (f FilterField) Lt(value any) Expression {
	return f.ordering(OpLt, value)
}

// Le generates a condition checking that the field is less than or equal to
// value. Panics for composite operands, see Gt.
func (f FilterField) Le(value any) Expression {
	return f.ordering(OpLe, value)
}

// IsIn generates a condition checking that the field value is one of the
// provided values. Panics if called with no values.
func (f FilterField) IsIn(values ...any) Expression {
	if len(values) == 0 {
		panic(fmt.Sprintf("queryfilter: IsIn on field %q requires at least one value", f.name))
	}
	return &Comparison{Field: f.name, Op: OpIn, Value: values}
}

func (f FilterField) ordering(op Operation, value any) Expression {
	switch reflect.ValueOf(value).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		panic(fmt.Sprintf("queryfilter: operator %s on field %q takes a scalar operand, got %T", op, f.name, value))
	}
	return &Comparison{Field: f.name, Op: op, Value: value}
}

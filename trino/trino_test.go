package trino

import (
	"errors"
	"testing"
	"time"

	queryfilter "github.com/hugr-lab/queryfilter-go"
)

func TestCompileComparisons(t *testing.T) {
	tests := []struct {
		name string
		expr queryfilter.Expression
		want string
	}{
		{
			name: "string equality",
			expr: queryfilter.Field("a").Eq("x"),
			want: "a = 'x'",
		},
		{
			name: "greater than",
			expr: queryfilter.Field("price").Gt(100),
			want: "price > 100",
		},
		{
			name: "greater or equal",
			expr: queryfilter.Field("price").Ge(100),
			want: "price >= 100",
		},
		{
			name: "less than",
			expr: queryfilter.Field("price").Lt(100),
			want: "price < 100",
		},
		{
			name: "less or equal",
			expr: queryfilter.Field("price").Le(100),
			want: "price <= 100",
		},
		{
			name: "membership",
			expr: queryfilter.Field("region").IsIn("eu", "us", "apac"),
			want: "region IN ('eu', 'us', 'apac')",
		},
		{
			name: "numeric membership",
			expr: queryfilter.Field("code").IsIn(1, 2, 3),
			want: "code IN (1, 2, 3)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Compile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompileCombinations(t *testing.T) {
	tests := []struct {
		name string
		expr queryfilter.Expression
		want string
	}{
		{
			name: "AND",
			expr: queryfilter.Field("category").Eq("electronics").And(queryfilter.Field("price").Le(500)),
			want: "(category = 'electronics' AND price <= 500)",
		},
		{
			name: "OR of two AND subtrees",
			expr: queryfilter.Field("col_a").Eq("test").And(queryfilter.Field("col_c").Eq(1)).
				Or(queryfilter.Field("col_b").Eq("other").And(queryfilter.Field("col_c").Eq(1))),
			want: "((col_a = 'test' AND col_c = 1) OR (col_b = 'other' AND col_c = 1))",
		},
		{
			name: "flat run folds left to right",
			expr: queryfilter.Field("a").Eq(1).And(queryfilter.Field("b").Eq(2)).And(queryfilter.Field("c").Eq(3)),
			want: "((a = 1 AND b = 2) AND c = 3)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Compile() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, "NULL"},
		{"plain string", "test", "'test'"},
		{"string with quote", "O'Brien", "'O''Brien'"},
		{"true", true, "TRUE"},
		{"false", false, "FALSE"},
		{"int", 42, "42"},
		{"negative int64", int64(-7), "-7"},
		{"uint", uint32(7), "7"},
		{"float", 2.5, "2.5"},
		{"date", Date(time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)), "DATE '2026-08-28'"},
		{
			"timestamp without sub-second detail",
			time.Date(2026, 8, 28, 12, 30, 45, 0, time.UTC),
			"TIMESTAMP '2026-08-28 12:30:45'",
		},
		{
			"timestamp with sub-second detail",
			time.Date(2026, 8, 28, 12, 30, 45, 123456000, time.UTC),
			"TIMESTAMP '2026-08-28 12:30:45.123456'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatValue("col", tt.value)
			if err != nil {
				t.Fatalf("formatValue() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestCompileRejectsUnsupportedOperands(t *testing.T) {
	tests := []struct {
		name string
		expr queryfilter.Expression
	}{
		{"struct operand", queryfilter.Field("col").Eq(struct{ X int }{1})},
		{"map operand", queryfilter.Field("col").Eq(map[string]any{"k": "v"})},
		{"nested list in membership", queryfilter.Field("col").IsIn([]any{1, 2}, []any{3})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expr)
			var operandErr *queryfilter.UnsupportedOperandError
			if !errors.As(err, &operandErr) {
				t.Fatalf("Compile() error = %v, want UnsupportedOperandError", err)
			}
			if operandErr.Backend != "trino" {
				t.Errorf("error backend = %q, want %q", operandErr.Backend, "trino")
			}
		})
	}
}

func TestCombineRejectsComparisonOperation(t *testing.T) {
	_, err := New().Combine("a = 1", "b = 2", queryfilter.OpGt)
	var opErr *queryfilter.UnsupportedOperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("Combine() error = %v, want UnsupportedOperationError", err)
	}
}

package queryfilter

import (
	"strings"
	"testing"
)

func TestComparisonString(t *testing.T) {
	tests := []struct {
		name string
		expr Expression
		want string
	}{
		{
			name: "equality",
			expr: Field("col_a").Eq("test"),
			want: "col_a == test",
		},
		{
			name: "greater than",
			expr: Field("col_a").Gt(5),
			want: "col_a > 5",
		},
		{
			name: "greater or equal",
			expr: Field("col_a").Ge(5),
			want: "col_a >= 5",
		},
		{
			name: "less than",
			expr: Field("col_a").Lt(5),
			want: "col_a < 5",
		},
		{
			name: "less or equal",
			expr: Field("col_a").Le(5),
			want: "col_a <= 5",
		},
		{
			name: "membership",
			expr: Field("col_a").IsIn(1, 2, 3),
			want: "col_a IN [1, 2, 3]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.expr.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCombinationString(t *testing.T) {
	expr := Field("col_a").Eq("test").And(Field("col_c").Eq(1)).
		Or(Field("col_b").Eq("other").And(Field("col_c").Eq(1)))

	want := "((col_a == test) AND (col_c == 1)) OR ((col_b == other) AND (col_c == 1))"
	if got := expr.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFieldName(t *testing.T) {
	if got := Field("col_a").Name(); got != "col_a" {
		t.Errorf("Name() = %q, want %q", got, "col_a")
	}
}

func TestOrderingPanicsOnCompositeOperand(t *testing.T) {
	tests := []struct {
		name  string
		build func()
	}{
		{"slice", func() { Field("col_a").Gt([]any{1, 2}) }},
		{"map", func() { Field("col_a").Le(map[string]any{"k": 1}) }},
		{"array", func() { Field("col_a").Lt([2]int{1, 2}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatal("expected panic for composite ordering operand")
				}
				if !strings.Contains(r.(string), "scalar operand") {
					t.Errorf("panic message = %q, want it to mention scalar operand", r)
				}
			}()
			tt.build()
		})
	}
}

func TestIsInPanicsOnEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for empty IN value list")
		}
	}()
	Field("col_a").IsIn()
}

func TestEqAcceptsCompositeOperands(t *testing.T) {
	// Equality takes composite operands; backends that cannot linearize them
	// reject at compile time, not at construction time.
	expr := Field("col_a").Eq(map[string]any{"k": "v"})
	if cmp, ok := expr.(*Comparison); !ok || cmp.Op != OpEq {
		t.Fatalf("Eq built %#v, want *Comparison with OpEq", expr)
	}
}

func TestTreesAreImmutable(t *testing.T) {
	left := Field("col_a").Eq("test")
	right := Field("col_b").Eq("other")

	combined := left.And(right)
	again := left.Or(right)

	if combined == left || combined == right || again == left {
		t.Fatal("combining returned an operand instead of a new node")
	}
	if got := left.String(); got != "col_a == test" {
		t.Errorf("operand changed after combination: %q", got)
	}
}

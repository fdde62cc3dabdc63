// Package trino renders filter expressions as Trino SQL predicate fragments
// suitable for substitution into a WHERE clause.
package trino

import (
	"strconv"
	"strings"
	"time"

	queryfilter "github.com/hugr-lab/queryfilter-go"
)

// Date is a calendar date rendered as a DATE literal. Plain time.Time values
// render as TIMESTAMP literals.
type Date time.Time

// Compiler renders filter expressions to SQL strings. The zero value is
// ready to use.
type Compiler struct{}

// New returns a new SQL Compiler.
func New() *Compiler {
	return &Compiler{}
}

// Compile renders expr as a parenthesized SQL predicate fragment.
func Compile(expr queryfilter.Expression) (string, error) {
	return queryfilter.Compile[string](New(), expr)
}

var _ queryfilter.Compiler[string] = (*Compiler)(nil)

// CompileComparison implements queryfilter.Compiler.
func (c *Compiler) CompileComparison(field string, op queryfilter.Operation, value any) (string, error) {
	if op == queryfilter.OpIn {
		return c.compileIn(field, value)
	}

	symbol, err := operatorSymbol(op)
	if err != nil {
		return "", err
	}
	literal, err := formatValue(field, value)
	if err != nil {
		return "", err
	}
	return field + " " + symbol + " " + literal, nil
}

// Combine implements queryfilter.Compiler. The result is always
// parenthesized so operator precedence is preserved at any nesting depth.
func (c *Compiler) Combine(left, right string, op queryfilter.Operation) (string, error) {
	switch op {
	case queryfilter.OpAnd:
		return "(" + left + " AND " + right + ")", nil
	case queryfilter.OpOr:
		return "(" + left + " OR " + right + ")", nil
	default:
		return "", &queryfilter.UnsupportedOperationError{Backend: "trino", Op: op}
	}
}

func (c *Compiler) compileIn(field string, value any) (string, error) {
	values, ok := value.([]any)
	if !ok {
		return "", &queryfilter.UnsupportedOperandError{Backend: "trino", Field: field, Value: value}
	}

	parts := make([]string, len(values))
	for i, v := range values {
		literal, err := formatValue(field, v)
		if err != nil {
			return "", err
		}
		parts[i] = literal
	}
	return field + " IN (" + strings.Join(parts, ", ") + ")", nil
}

func operatorSymbol(op queryfilter.Operation) (string, error) {
	switch op {
	case queryfilter.OpEq:
		return "=", nil
	case queryfilter.OpGt:
		return ">", nil
	case queryfilter.OpGe:
		return ">=", nil
	case queryfilter.OpLt:
		return "<", nil
	case queryfilter.OpLe:
		return "<=", nil
	default:
		return "", &queryfilter.UnsupportedOperationError{Backend: "trino", Op: op}
	}
}

// formatValue renders a Go value as a typed SQL literal: strings are
// single-quoted with escaping, timestamps and dates use Trino's typed literal
// syntax, numbers and booleans render verbatim, and nil renders NULL.
func formatValue(field string, value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "NULL", nil
	case string:
		return quoteLiteral(v), nil
	case bool:
		if v {
			return "TRUE", nil
		}
		return "FALSE", nil
	case Date:
		return "DATE '" + time.Time(v).Format("2006-01-02") + "'", nil
	case time.Time:
		return "TIMESTAMP '" + formatTimestamp(v) + "'", nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	default:
		return "", &queryfilter.UnsupportedOperandError{Backend: "trino", Field: field, Value: value}
	}
}

// formatTimestamp renders a timestamp with microsecond precision only when
// the value carries sub-second detail.
func formatTimestamp(t time.Time) string {
	if t.Nanosecond() == 0 {
		return t.Format("2006-01-02 15:04:05")
	}
	return t.Format("2006-01-02 15:04:05.000000")
}

// escapeString escapes single quotes in a string value for SQL.
func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// quoteLiteral returns a SQL string literal with proper escaping.
func quoteLiteral(s string) string {
	return "'" + escapeString(s) + "'"
}

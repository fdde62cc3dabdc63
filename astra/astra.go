// Package astra compiles filter expressions into flat filter groups for
// partition/clustering-key stores that use the Astra/Cassandra object-mapper
// keyword convention.
//
// The compiled form is an ordered list of groups. Keys inside one group are
// AND'ed together by the store; the list itself denotes OR across groups,
// each of which the caller executes as a physically independent query. The
// store cannot express cross-group disjunction natively, so AND of two group
// lists is their cartesian product: "(A or B) and (C or D)" becomes four
// separate query groups.
package astra

import (
	queryfilter "github.com/hugr-lab/queryfilter-go"
)

// Group holds the filters of one physically independent query: field names
// (with operator suffix) mapped to operand values.
type Group map[string]any

// DefaultInThreshold is the longest IN operand list the store plans reliably
// in a single query. Longer lists are chunked into several groups.
const DefaultInThreshold = 25

// Compiler lowers filter expressions to ordered group lists. The zero value
// is ready to use.
type Compiler struct {
	// InThreshold caps the number of values in a single IN group. An IN
	// operand of length L over the threshold is split into ceil(L/threshold)
	// near-equal chunks, one group per chunk, instead of being rejected.
	// Zero means DefaultInThreshold.
	InThreshold int
}

// New returns a Compiler with the default IN threshold.
func New() *Compiler {
	return &Compiler{InThreshold: DefaultInThreshold}
}

// Compile lowers expr into an ordered list of filter groups using default
// settings.
func Compile(expr queryfilter.Expression) ([]Group, error) {
	return queryfilter.Compile[[]Group](New(), expr)
}

var _ queryfilter.Compiler[[]Group] = (*Compiler)(nil)

// CompileComparison implements queryfilter.Compiler. Equality uses the bare
// field name as key; other operations append the mapper's operator suffix.
func (c *Compiler) CompileComparison(field string, op queryfilter.Operation, value any) ([]Group, error) {
	suffix, err := operatorSuffix(op)
	if err != nil {
		return nil, err
	}

	if op == queryfilter.OpIn {
		if values, ok := value.([]any); ok && len(values) > c.threshold() {
			return c.chunkedIn(field+suffix, values), nil
		}
	}
	return []Group{{field + suffix: value}}, nil
}

// Combine implements queryfilter.Compiler. OR concatenates the two group
// lists; AND takes their cartesian product, merging each pair of groups by
// key union. Both build entirely new data and never mutate an argument.
func (c *Compiler) Combine(left, right []Group, op queryfilter.Operation) ([]Group, error) {
	switch op {
	case queryfilter.OpOr:
		out := make([]Group, 0, len(left)+len(right))
		out = append(out, left...)
		return append(out, right...), nil

	case queryfilter.OpAnd:
		out := make([]Group, 0, len(left)*len(right))
		for _, lg := range left {
			for _, rg := range right {
				merged := make(Group, len(lg)+len(rg))
				for k, v := range lg {
					merged[k] = v
				}
				for k, v := range rg {
					merged[k] = v
				}
				out = append(out, merged)
			}
		}
		return out, nil

	default:
		return nil, &queryfilter.UnsupportedOperationError{Backend: "astra", Op: op}
	}
}

// chunkedIn splits an oversized IN operand into ceil(L/threshold) contiguous
// chunks of near-equal size and emits one group per chunk. The chunks
// partition the operand in order, with no gaps or overlap.
func (c *Compiler) chunkedIn(key string, values []any) []Group {
	threshold := c.threshold()
	numChunks := (len(values) + threshold - 1) / threshold
	chunkSize := (len(values) + numChunks - 1) / numChunks

	out := make([]Group, 0, numChunks)
	for start := 0; start < len(values); start += chunkSize {
		end := min(start+chunkSize, len(values))
		out = append(out, Group{key: values[start:end:end]})
	}
	return out
}

func (c *Compiler) threshold() int {
	if c.InThreshold > 0 {
		return c.InThreshold
	}
	return DefaultInThreshold
}

func operatorSuffix(op queryfilter.Operation) (string, error) {
	switch op {
	case queryfilter.OpEq:
		return "", nil
	case queryfilter.OpGt:
		return "__gt", nil
	case queryfilter.OpGe:
		return "__gte", nil
	case queryfilter.OpLt:
		return "__lt", nil
	case queryfilter.OpLe:
		return "__lte", nil
	case queryfilter.OpIn:
		return "__in", nil
	default:
		return "", &queryfilter.UnsupportedOperationError{Backend: "astra", Op: op}
	}
}

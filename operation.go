package queryfilter

import "strconv"

// Operation identifies a comparison or combining operation in a filter
// expression tree.
type Operation int

const (
	// OpNone marks the absence of a combining operation. It only appears as
	// the CombineOp of the first element of a split sequence.
	OpNone Operation = iota

	// Combining operations join two sub-expressions.
	OpAnd
	OpOr

	// Comparison operations test a field against an operand.
	OpGt
	OpGe
	OpLt
	OpLe
	OpEq
	OpIn
)

// String returns the printable form of the operation, as used by the
// expression printer.
func (op Operation) String() string {
	switch op {
	case OpNone:
		return ""
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpEq:
		return "=="
	case OpIn:
		return "IN"
	default:
		return "Operation(" + strconv.Itoa(int(op)) + ")"
	}
}

// IsCombining reports whether op joins two sub-expressions.
func (op Operation) IsCombining() bool {
	return op == OpAnd || op == OpOr
}

// IsComparison reports whether op tests a field against an operand.
func (op Operation) IsComparison() bool {
	switch op {
	case OpGt, OpGe, OpLt, OpLe, OpEq, OpIn:
		return true
	default:
		return false
	}
}

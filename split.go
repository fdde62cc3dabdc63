package queryfilter

// Subexpression is one same-operation group produced by Split.
type Subexpression struct {
	// Expr is the group's expression: either a comparison leaf or a
	// combination whose operation differs from the surrounding pass.
	Expr Expression

	// CombineOp is the operation joining this group with the previous one in
	// the split sequence. OpNone for the first element.
	CombineOp Operation
}

// Split flattens expr into an ordered sequence of same-operation groups.
// A maximal run of combination nodes sharing one operation is merged into a
// single pass rather than re-split recursively; a change of operation at any
// point starts a new group tagged with the operation separating it from its
// predecessor. A lone comparison yields a one-element sequence tagged OpNone.
//
// The walk uses an explicit LIFO work list instead of call-stack recursion,
// so pathologically deep or unbalanced trees cannot overflow the stack.
func Split(expr Expression) []Subexpression {
	type frame struct {
		node     Expression
		parentOp Operation
	}

	var out []Subexpression
	stack := []frame{{node: expr, parentOp: OpNone}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch node := f.node.(type) {
		case *Comparison:
			out = append(out, Subexpression{Expr: node, CombineOp: f.parentOp})

		case *Combination:
			// An operation change ends the current pass: the whole subtree
			// becomes one group and is compiled on its own later.
			if f.parentOp != OpNone && node.Op != f.parentOp {
				out = append(out, Subexpression{Expr: node, CombineOp: f.parentOp})
				continue
			}

			// Same operation as the inherited one (or no parent yet): keep
			// merging. Left is pushed last so it is emitted first.
			stack = append(stack, frame{node: node.Right, parentOp: node.Op})
			stack = append(stack, frame{node: node.Left, parentOp: node.Op})
		}
	}

	// Every element of a pass carries the root operation; the first group has
	// nothing before it to combine with.
	if len(out) > 0 {
		out[0].CombineOp = OpNone
	}
	return out
}

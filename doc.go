// Package queryfilter provides a small predicate algebra for expressing a
// query filter once and lowering it into the native filter representation of
// several unrelated storage backends.
//
// A predicate is built from field comparisons combined with AND/OR:
//
//	expr := queryfilter.Field("category").Eq("electronics").
//		And(queryfilter.Field("price").Le(500))
//
// and compiled by one of the backend packages:
//
//   - arrowexpr: Apache Arrow compute expressions for filtering columnar data
//   - astra: flat key/value filter groups for partition-key stores
//     (Astra/Cassandra object-mapper convention)
//   - trino: Trino SQL predicate fragments for WHERE clauses
//   - icebergexpr: Apache Iceberg boolean expressions for table scans
//
// The same tree compiles to every backend; callers never rewrite a predicate
// per target:
//
//	sql, err := trino.Compile(expr)
//	// (category = 'electronics' AND price <= 500)
//
//	groups, err := astra.Compile(expr)
//	// [{"category": "electronics", "price__lte": 500}]
//
// # Architecture
//
// Compilation happens in two stages shared by all backends:
//
//   - Split normalizes an arbitrarily nested tree into an ordered sequence of
//     same-operation groups (Subexpression values), merging maximal runs of
//     one operator into a single pass.
//   - Compile folds the groups through a backend Compiler, which only has to
//     implement two operations: CompileComparison for one leaf and Combine
//     for two already-compiled fragments.
//
// Because the orchestration is shared, all backends observe identical boolean
// semantics; they differ only in how a leaf and a combination are rendered.
// Backends with restricted filter models do the heavy lifting in those two
// hooks: the astra backend, for example, realizes OR as group replication
// and AND as a cartesian product of group lists, because the store executes
// each group as a physically independent query.
//
// # Purity
//
// The compiler only translates syntax. It never connects to a backend, never
// evaluates a predicate against data, and never mutates an expression tree:
// every operation is a deterministic, allocation-only computation, so trees
// and compilers are safe for concurrent use without coordination.
package queryfilter

// Package expr implements the expression-evaluation core of the query engine.
//
// Every expression node implements the sealed Expression interface: it can
// produce a term value or an effective boolean value for a row of the input
// multiset installed in an EvalContext, enumerate its free variables, rebuild
// itself around rewritten children, and render canonical text.
//
// ARCHITECTURE:
//
// The query evaluator drives rows one at a time through a filter tree:
//
//	for id := range input.Rows() {
//	    ok, err := filter.EffectiveBooleanValue(ec, id)
//	    // err => row excluded (filter-error-as-false)
//	}
//
// Nodes recurse into their children and consult the shared EvalContext.
// EXISTS additionally calls the external PatternEvaluator exactly once per
// execution and then acts as a pure per-row semi-join predicate.
//
// QUERY-SCOPED CACHES:
//
// NOW() and EXISTS cache values per execution token (see memo). A cached
// value is returned only when the stored token matches the context's token;
// a new execution recomputes it. This is the only mutable state on otherwise
// immutable nodes.
//
// ERRORS:
//
// Child errors propagate unchanged. The exceptions are explicit: IN treats an
// unbound variable as false, and the logical operators follow SPARQL's
// error-tolerant truth tables. Callers distinguish "false" from "error" with
// IsTypeError, IsUnboundError and IsEvaluationError.
//
// CONCURRENCY:
//
// Evaluation is synchronous and row-at-a-time. One goroutine drives an
// expression tree for a given EvalContext.
package expr

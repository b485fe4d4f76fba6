// Package engine evaluates filtered graph-pattern queries against the store.
//
// The engine owns the pieces the expression core consumes as collaborators:
// the pattern evaluator (basic graph patterns compiled to SQL by
// internal/querysql), the execution token that scopes query-level caches,
// and the clock NOW() reads.
//
// ARCHITECTURE:
//
// Row-at-a-Time Evaluation:
// A query execution runs in a single goroutine:
// 1. A fresh execution token is generated and stamped with a logical seq
// 2. The WHERE pattern is evaluated to the input multiset
// 3. The input is installed in the expr.EvalContext
// 4. Each row id is driven through the FILTER expression
// 5. Rows whose filter is true are copied to the result
//
// A filter that raises an error excludes the row (filter-error-as-false).
// The error is logged at debug level and counted, never returned.
//
// CRITICAL PATTERNS:
//
// Logical Clock:
// Executions are stamped with a monotonic seq from Clock.Next(), never with
// wall-clock time.
//
// Deterministic Results:
// Pattern queries order by the joined triples' insertion ids, and rows
// are filtered in input order.
package engine

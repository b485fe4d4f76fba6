package expr

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/roach88/rdfexpr/internal/term"
)

// Expression is the contract every expression node implements.
//
// This is a sealed interface: only types in this package implement it, so
// rewriting passes can switch exhaustively over the node kinds:
//
//	Variable, Constant, Bound, And, Or, Not, Digest, In, NotIn, Now, Exists
//
// Nodes are immutable after construction apart from the query-scoped caches
// held by Now and Exists.
type Expression interface {
	// Value evaluates the node to a term for row id.
	Value(ec *EvalContext, id int) (term.Term, error)

	// EffectiveBooleanValue evaluates the node's boolean coercion for row id.
	// Nodes whose type admits no coercion return a type error, never false.
	EffectiveBooleanValue(ec *EvalContext, id int) (bool, error)

	// Variables returns the sorted free variables of the node. Pure.
	Variables() []string

	// Transform applies fn to each direct child and returns a new node of the
	// same kind wrapping the results.
	Transform(fn Rewriter) (Expression, error)

	// String renders canonical text: functor(args) or <iri>(args). Pure.
	String() string

	expressionNode() // Marker method - seals interface to this package
}

// Rewriter maps an expression to its replacement during a rewriting pass.
type Rewriter func(Expression) (Expression, error)

// Rewrite applies fn bottom-up to every node of e: children are rewritten
// first, then fn is applied to the rebuilt parent.
func Rewrite(e Expression, fn Rewriter) (Expression, error) {
	rebuilt, err := e.Transform(func(child Expression) (Expression, error) {
		return Rewrite(child, fn)
	})
	if err != nil {
		return nil, err
	}
	return fn(rebuilt)
}

// EffectiveBooleanValue applies SPARQL's boolean coercion to a term.
//
//   - xsd:boolean: its value; an invalid lexical form is false
//   - plain, xsd:string and language-tagged literals: non-empty
//   - numeric literals: non-zero and not NaN; an invalid lexical form is false
//   - anything else (IRIs, blank nodes, date-times, other datatypes): EBV error
func EffectiveBooleanValue(t term.Term) (bool, error) {
	if !t.IsLiteral() {
		return false, newEBVError("", "no effective boolean value for %s term %s", t.Kind(), t)
	}

	switch {
	case t.HasDatatype(term.XSDBoolean):
		switch strings.TrimSpace(t.Value()) {
		case "true", "1":
			return true, nil
		default:
			return false, nil
		}

	case term.IsStringLike(t):
		return t.Value() != "", nil

	case term.IsNumeric(t):
		f, err := strconv.ParseFloat(strings.TrimSpace(t.Value()), 64)
		if err != nil {
			return false, nil
		}
		return f != 0 && !math.IsNaN(f), nil

	default:
		return false, newEBVError("", "no effective boolean value for datatype <%s>", t.Datatype())
	}
}

// unionVariables merges variable lists into one sorted, duplicate-free slice.
func unionVariables(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		for _, v := range l {
			if !slices.Contains(out, v) {
				out = append(out, v)
			}
		}
	}
	slices.Sort(out)
	return out
}

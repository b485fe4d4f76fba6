package report

import (
	"github.com/roach88/rdfexpr/internal/engine"
	"github.com/roach88/rdfexpr/internal/solution"
)

// Report is the serializable view of one execution.
type Report struct {
	Name       string
	Token      string
	Seq        int64
	Variables  []string
	Rows       []map[string]string // variable -> N-Triples text; unbound omitted
	Input      int
	Rejected   int
	Errors     int
	BindErrors int
}

// FromResult captures res under name.
func FromResult(name string, res *engine.Result) Report {
	r := Report{
		Name:       name,
		Token:      res.Token,
		Seq:        res.Seq,
		Input:      res.Input,
		Rejected:   res.Rejected,
		Errors:     res.Errors,
		BindErrors: res.BindErrors,
	}
	r.Variables, r.Rows = Rows(res.Solutions)
	return r
}

// Rows renders every row of m as variable -> N-Triples text.
func Rows(m *solution.Multiset) ([]string, []map[string]string) {
	vars := append([]string{}, m.Variables()...)
	rows := make([]map[string]string, 0, m.Count())
	for _, b := range m.Rows() {
		row := make(map[string]string, b.Len())
		for _, v := range b.Variables() {
			t, _ := b.Get(v)
			row[v] = t.String()
		}
		rows = append(rows, row)
	}
	return vars, rows
}

// Map returns r as nested maps accepted by MarshalCanonical.
func (r Report) Map() map[string]any {
	rows := make([]any, len(r.Rows))
	for i, row := range r.Rows {
		obj := make(map[string]any, len(row))
		for k, v := range row {
			obj[k] = v
		}
		rows[i] = obj
	}

	m := map[string]any{
		"name":      r.Name,
		"seq":       r.Seq,
		"variables": r.Variables,
		"rows":      rows,
		"counts": map[string]any{
			"input":       r.Input,
			"output":      len(r.Rows),
			"rejected":    r.Rejected,
			"errors":      r.Errors,
			"bind_errors": r.BindErrors,
		},
	}
	if r.Token != "" {
		m["token"] = r.Token
	}
	return m
}

// Canonical encodes r as canonical JSON.
func (r Report) Canonical() ([]byte, error) {
	return MarshalCanonical(r.Map())
}

package harness

import (
	"fmt"

	"github.com/roach88/rdfexpr/internal/expr"
	"github.com/roach88/rdfexpr/internal/pattern"
	"github.com/roach88/rdfexpr/internal/term"
)

// ExprNode is one node of a structured expression tree.
// Exactly one of Var, Const, Fn, In, NotIn, Exists or NotExists is set.
type ExprNode struct {
	Var       string      `yaml:"var,omitempty"`
	Const     string      `yaml:"const,omitempty"`
	Fn        string      `yaml:"fn,omitempty"`
	Args      []ExprNode  `yaml:"args,omitempty"`
	In        *Membership `yaml:"in,omitempty"`
	NotIn     *Membership `yaml:"not_in,omitempty"`
	Exists    *Block      `yaml:"exists,omitempty"`
	NotExists *Block      `yaml:"not_exists,omitempty"`
}

// Membership is the operand of in / not_in.
type Membership struct {
	Var   string   `yaml:"var"`
	Terms []string `yaml:"terms"`
}

// Block is an embedded graph pattern.
type Block struct {
	Where []string `yaml:"where"`
}

// kinds returns the names of the node kinds set on n.
func (n *ExprNode) kinds() []string {
	var set []string
	if n.Var != "" {
		set = append(set, "var")
	}
	if n.Const != "" {
		set = append(set, "const")
	}
	if n.Fn != "" {
		set = append(set, "fn")
	}
	if n.In != nil {
		set = append(set, "in")
	}
	if n.NotIn != nil {
		set = append(set, "not_in")
	}
	if n.Exists != nil {
		set = append(set, "exists")
	}
	if n.NotExists != nil {
		set = append(set, "not_exists")
	}
	return set
}

// validate checks the tree shape. path names n in error messages.
func (n *ExprNode) validate(path string) error {
	kinds := n.kinds()
	switch len(kinds) {
	case 0:
		return fmt.Errorf("%s: empty expression node", path)
	case 1:
	default:
		return fmt.Errorf("%s: node sets more than one of %v", path, kinds)
	}

	if n.Fn == "" && len(n.Args) > 0 {
		return fmt.Errorf("%s: args without fn", path)
	}
	for i := range n.Args {
		if err := n.Args[i].validate(fmt.Sprintf("%s.args[%d]", path, i)); err != nil {
			return err
		}
	}

	for _, m := range []*Membership{n.In, n.NotIn} {
		if m != nil && m.Var == "" {
			return fmt.Errorf("%s: membership needs var", path)
		}
	}
	return nil
}

// Build turns the tree into an expression, resolving function calls with f.
func (n *ExprNode) Build(f *expr.Factory) (expr.Expression, error) {
	if err := n.validate("expr"); err != nil {
		return nil, err
	}
	return n.build(f)
}

func (n *ExprNode) build(f *expr.Factory) (expr.Expression, error) {
	switch {
	case n.Var != "":
		return expr.NewVariable(n.Var), nil

	case n.Const != "":
		t, err := term.Parse(n.Const)
		if err != nil {
			return nil, fmt.Errorf("const %q: %w", n.Const, err)
		}
		return expr.NewConstant(t), nil

	case n.Fn != "":
		args := make([]expr.Expression, len(n.Args))
		for i := range n.Args {
			arg, err := n.Args[i].build(f)
			if err != nil {
				return nil, err
			}
			args[i] = arg
		}
		return f.Create(n.Fn, args...)

	case n.In != nil:
		terms, err := n.In.terms()
		if err != nil {
			return nil, err
		}
		return expr.NewIn(expr.NewVariable(n.In.Var), terms...), nil

	case n.NotIn != nil:
		terms, err := n.NotIn.terms()
		if err != nil {
			return nil, err
		}
		return expr.NewNotIn(expr.NewVariable(n.NotIn.Var), terms...), nil

	case n.Exists != nil:
		p, err := pattern.Parse(n.Exists.Where...)
		if err != nil {
			return nil, fmt.Errorf("exists: %w", err)
		}
		return expr.NewExists(p), nil

	default:
		p, err := pattern.Parse(n.NotExists.Where...)
		if err != nil {
			return nil, fmt.Errorf("not_exists: %w", err)
		}
		return expr.NewNotExists(p), nil
	}
}

func (m *Membership) terms() ([]term.Term, error) {
	out := make([]term.Term, 0, len(m.Terms))
	for _, s := range m.Terms {
		t, err := term.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("set member %q: %w", s, err)
		}
		out = append(out, t)
	}
	return out, nil
}

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfexpr/internal/engine"
	"github.com/roach88/rdfexpr/internal/harness"
	"github.com/roach88/rdfexpr/internal/pattern"
	"github.com/roach88/rdfexpr/internal/store"
)

// PlanOutput is the JSON payload of the plan command.
type PlanOutput struct {
	Where     string   `json:"where"`
	SQL       string   `json:"sql,omitempty"`
	Params    []any    `json:"params,omitempty"`
	Filter    string   `json:"filter,omitempty"`
	Variables []string `json:"variables,omitempty"`
	Binds     []string `json:"binds,omitempty"`
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan <scenario.yaml>",
		Short: "Show the compiled query of a scenario without running it",
		Long: `Compile a scenario's where pattern to SQL and print it together with
the canonical text of its filter and bind expressions.

Examples:
  rdfexpr plan ./scenarios/exists.yaml
  rdfexpr plan ./scenarios/exists.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runPlan(opts *RootOptions, path string, cmd *cobra.Command) error {
	cfg, err := prepare(opts, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}
	applyConfig(scenario, cfg)

	where, err := pattern.Parse(scenario.Where...)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid where pattern", err)
	}
	q, err := harness.BuildQuery(where, scenario)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid expression", err)
	}

	st, err := store.OpenMemory()
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open store", err)
	}
	defer st.Close()

	plan, err := engine.New(st, engine.UUIDv7Generator{}).Explain(q)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to compile query", err)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return out.Success(PlanOutput{
			Where:     plan.Where,
			SQL:       plan.SQL,
			Params:    plan.Params,
			Filter:    plan.Filter,
			Variables: plan.Variables,
			Binds:     plan.Binds,
		})
	}
	writePlanText(out.Writer, plan)
	return nil
}

func writePlanText(w io.Writer, plan engine.Plan) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "where:\t%s\n", plan.Where)
	if plan.SQL != "" {
		fmt.Fprintf(tw, "sql:\t%s\n", plan.SQL)
		fmt.Fprintf(tw, "params:\t%s\n", formatParams(plan.Params))
	}
	if plan.Filter != "" {
		fmt.Fprintf(tw, "filter:\t%s\n", plan.Filter)
		fmt.Fprintf(tw, "variables:\t%s\n", formatVars(plan.Variables))
	}
	for _, b := range plan.Binds {
		fmt.Fprintf(tw, "bind:\t%s\n", b)
	}
	tw.Flush()
}

func formatParams(params []any) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprint(p)
	}
	return strings.Join(parts, " ")
}

func formatVars(vars []string) string {
	parts := make([]string, len(vars))
	for i, v := range vars {
		parts[i] = "?" + v
	}
	return strings.Join(parts, " ")
}

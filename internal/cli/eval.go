package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfexpr/internal/config"
	"github.com/roach88/rdfexpr/internal/harness"
	"github.com/roach88/rdfexpr/internal/report"
	"github.com/roach88/rdfexpr/internal/store"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Database string
}

// EvalOutput is the JSON payload of the eval command.
type EvalOutput struct {
	Pass        bool            `json:"pass"`
	Fingerprint string          `json:"fingerprint,omitempty"`
	Report      json.RawMessage `json:"report,omitempty"`
	Error       string          `json:"error,omitempty"`
	Errors      []string        `json:"errors,omitempty"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <scenario.yaml>",
		Short: "Evaluate one scenario and print its solutions",
		Long: `Evaluate a scenario file against a fresh in-memory store.

The scenario's dataset is loaded, its where pattern is evaluated, and the
filter and bind expressions run with the scenario's fixed execution token
and NOW() instant. Digest policy and row quota come from the config file
unless the scenario sets them.

With --db, or a file database in the config, the scenario runs against
that database instead (e.g. one filled by rdfexpr load). Such a scenario
must not declare a dataset.

Exit codes:
  0 - Scenario expectations hold
  1 - An expectation failed
  2 - Command error (unreadable scenario, invalid config)

Examples:
  rdfexpr eval ./scenarios/exists.yaml
  rdfexpr eval ./scenarios/exists.yaml --format json
  rdfexpr eval --config rdfexpr.cue ./scenarios/digest.yaml
  rdfexpr eval --db ./triples.db ./queries/knows.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "evaluate against this SQLite database instead of the scenario dataset")

	return cmd
}

func runEval(opts *EvalOptions, path string, cmd *cobra.Command) error {
	cfg, err := prepare(opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}
	applyConfig(scenario, cfg)

	slog.Debug("evaluating scenario", "path", path, "scenario", scenario.Name)
	result, err := evalScenario(cmd.Context(), opts, cfg, scenario)
	if err != nil {
		return err
	}

	out := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
	if opts.Format == "json" {
		payload, err := evalOutput(result)
		if err != nil {
			return err
		}
		if err := out.SuccessFor(result.Report.Token, payload); err != nil {
			return err
		}
	} else {
		writeEvalText(out.Writer, scenario.Name, result)
		if result.Err == nil {
			if fp, err := result.Report.Fingerprint(); err == nil {
				out.VerboseLog("fingerprint %s", fp)
			}
		}
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed", scenario.Name))
	}
	return nil
}

// evalScenario runs scenario on its own dataset, or on the --db / configured
// database when one is set.
func evalScenario(ctx context.Context, opts *EvalOptions, cfg config.Config, scenario *harness.Scenario) (*harness.Result, error) {
	dbPath := opts.Database
	if dbPath == "" {
		dbPath = cfg.Database
	}

	if dbPath == store.MemoryPath {
		result, err := harness.RunContext(ctx, scenario)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to run scenario", err)
		}
		return result, nil
	}

	if _, err := os.Stat(dbPath); err != nil {
		return nil, WrapExitError(ExitCommandError, "database not found", err)
	}
	slog.Info("opening database", "path", dbPath)
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	result, err := harness.RunOnStore(ctx, st, scenario)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to run scenario", err)
	}
	return result, nil
}

// applyConfig fills scenario settings the scenario itself leaves open.
func applyConfig(s *harness.Scenario, cfg config.Config) {
	if len(s.Digest) == 0 {
		s.Digest = cfg.Digest.Allowed
	}
	if s.MaxRows == nil {
		maxRows := cfg.MaxRows
		s.MaxRows = &maxRows
	}
}

func evalOutput(result *harness.Result) (EvalOutput, error) {
	payload := EvalOutput{Pass: result.Pass, Errors: result.Errors}
	if result.Err != nil {
		payload.Error = result.Err.Error()
		return payload, nil
	}

	data, err := result.Report.Canonical()
	if err != nil {
		return EvalOutput{}, fmt.Errorf("render report: %w", err)
	}
	payload.Report = data

	payload.Fingerprint, err = result.Report.Fingerprint()
	if err != nil {
		return EvalOutput{}, err
	}
	return payload, nil
}

// writeEvalText prints the solutions as a table followed by the counters.
func writeEvalText(w io.Writer, name string, result *harness.Result) {
	status := "PASS"
	if !result.Pass {
		status = "FAIL"
	}

	if result.Err != nil {
		fmt.Fprintf(w, "%s %s\n", status, name)
		fmt.Fprintf(w, "  error: %v\n", result.Err)
	} else {
		r := result.Report
		fmt.Fprintf(w, "%s %s (token %s, seq %d)\n", status, name, r.Token, r.Seq)
		writeRows(w, r)
		fmt.Fprintf(w, "%d rows (input %d, rejected %d, filter errors %d, bind errors %d)\n",
			len(r.Rows), r.Input, r.Rejected, r.Errors, r.BindErrors)
	}

	for _, e := range result.Errors {
		fmt.Fprintf(w, "  %s\n", strings.TrimSpace(e))
	}
}

func writeRows(w io.Writer, r report.Report) {
	if len(r.Variables) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := make([]string, len(r.Variables))
	for i, v := range r.Variables {
		header[i] = "?" + v
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for _, row := range r.Rows {
		cells := make([]string, len(r.Variables))
		for i, v := range r.Variables {
			cells[i] = row[v]
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()
}

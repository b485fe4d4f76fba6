package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfexpr/internal/store"
)

// LoadOptions holds flags for the load command.
type LoadOptions struct {
	*RootOptions
	Database string // overrides the configured database
}

// LoadOutput reports what a load added.
type LoadOutput struct {
	Database string `json:"database"`
	Added    int    `json:"added"`
	Total    int    `json:"total"`
}

// NewLoadCommand creates the load command.
func NewLoadCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LoadOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "load <file.nt>...",
		Short: "Load N-Triples files into the triple store",
		Long: `Add the statements of one or more N-Triples files to the store.

Statements already present are skipped. The database comes from --db or,
failing that, from the config file.

Examples:
  rdfexpr load --db ./triples.db people.nt
  rdfexpr load --config rdfexpr.cue a.nt b.nt`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database")

	return cmd
}

func runLoad(opts *LoadOptions, files []string, cmd *cobra.Command) error {
	cfg, err := prepare(opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	dbPath := opts.Database
	if dbPath == "" {
		dbPath = cfg.Database
	}
	if dbPath == store.MemoryPath {
		return NewExitError(ExitCommandError, "load needs a file database (set --db or database in the config)")
	}

	slog.Info("opening database", "path", dbPath)
	st, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	added := 0
	for _, path := range files {
		n, err := loadFile(cmd, st, path)
		if err != nil {
			return err
		}
		slog.Info("file loaded", "path", path, "added", n)
		added += n
	}

	total, err := st.Count(ctx)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to count triples", err)
	}

	out := LoadOutput{Database: dbPath, Added: added, Total: total}
	if opts.Format == "json" {
		return (&OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}).Success(out)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d new triples into %s (%d total)\n", added, dbPath, total)
	return nil
}

func loadFile(cmd *cobra.Command, st *store.Store, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "failed to open input", err)
	}
	defer f.Close()

	n, err := st.LoadNTriples(cmd.Context(), f)
	if err != nil {
		return 0, WrapExitError(ExitFailure, fmt.Sprintf("failed to load %s", path), err)
	}
	return n, nil
}

package cli

import (
	"io"
	"log/slog"

	"github.com/roach88/rdfexpr/internal/config"
)

// loadConfig reads the --config file, or returns the defaults when none is set.
func loadConfig(opts *RootOptions) (config.Config, error) {
	if opts.Config == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return config.Config{}, WrapExitError(ExitCommandError, "invalid config", err)
	}
	return cfg, nil
}

// setupLogging installs a text slog handler on w. --verbose forces debug;
// otherwise the configured level applies.
func setupLogging(opts *RootOptions, cfg config.Config, w io.Writer) {
	level := cfg.SlogLevel()
	if opts.Verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// prepare loads config and configures logging for a command run.
func prepare(opts *RootOptions, w io.Writer) (config.Config, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return config.Config{}, err
	}
	setupLogging(opts, cfg, w)
	return cfg, nil
}

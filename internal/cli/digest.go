package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/rdfexpr/internal/expr"
)

// DigestOptions holds flags for the digest command.
type DigestOptions struct {
	*RootOptions
	Algorithm string
}

// DigestOutput is one hashed value.
type DigestOutput struct {
	Algorithm string `json:"algorithm"`
	Input     string `json:"input"`
	Hex       string `json:"hex"`
}

// NewDigestCommand creates the digest command.
func NewDigestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DigestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "digest <value>...",
		Short: "Hash strings the way the digest functions do",
		Long: `Print the lowercase hex digest of each argument.

The algorithm must be permitted by the configured digest policy; MD5 is
rejected unless the config allows it.

Examples:
  rdfexpr digest --alg SHA256 abc
  rdfexpr digest --alg sha-1 http://example.org/alice
  rdfexpr digest --config rdfexpr.cue --alg MD5 abc`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Algorithm, "alg", string(expr.SHA256), "digest algorithm (MD5|SHA1|SHA256|SHA384|SHA512)")

	return cmd
}

func runDigest(opts *DigestOptions, values []string, cmd *cobra.Command) error {
	cfg, err := prepare(opts.RootOptions, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	alg, err := expr.ParseAlgorithm(opts.Algorithm)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --alg", err)
	}
	policy, err := cfg.DigestPolicy()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid config", err)
	}
	if !policy.Permits(alg) {
		return WrapExitError(ExitFailure, "digest refused", fmt.Errorf("%w: %s", expr.ErrDigestNotPermitted, alg))
	}

	outputs := make([]DigestOutput, 0, len(values))
	for _, v := range values {
		sum, err := alg.Sum(v)
		if err != nil {
			return WrapExitError(ExitFailure, "digest failed", err)
		}
		outputs = append(outputs, DigestOutput{Algorithm: string(alg), Input: v, Hex: sum})
	}

	w := cmd.OutOrStdout()
	if opts.Format == "json" {
		return (&OutputFormatter{Format: opts.Format, Writer: w}).Success(outputs)
	}
	for _, o := range outputs {
		fmt.Fprintf(w, "%s  %s\n", o.Hex, o.Input)
	}
	return nil
}

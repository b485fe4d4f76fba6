// Package config loads deployment configuration for rdfexpr.
//
// Configuration files are CUE. A file is unified with the embedded #Config
// schema, so unknown fields and out-of-range values are rejected with a
// position, and omitted fields take the schema defaults.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/rdfexpr/internal/expr"
)

//go:embed schema.cue
var schemaSource string

// Config is the decoded deployment configuration.
type Config struct {
	Database string `json:"database"`
	LogLevel string `json:"log_level"`
	MaxRows  int    `json:"max_rows"`
	Digest   Digest `json:"digest"`
}

// Digest lists the hash algorithms the function factory permits.
type Digest struct {
	Allowed []string `json:"allowed"`
}

// Error is a configuration error with the CUE source position when known.
type Error struct {
	Message string
	Pos     token.Pos
}

// Error formats the message with its source position when one is known.
func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// Default returns the configuration an empty file decodes to.
func Default() Config {
	cfg, err := Parse("default.cue", nil)
	if err != nil {
		panic(fmt.Sprintf("config: embedded schema is invalid: %v", err))
	}
	return cfg
}

// Load reads and validates the CUE file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(path, data)
}

// Parse validates src against the schema and decodes it. filename is only
// used in error positions.
func Parse(filename string, src []byte) (Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}
	def := schema.LookupPath(cue.ParsePath("#Config"))

	user := ctx.CompileBytes(src, cue.Filename(filename))
	if err := user.Err(); err != nil {
		return Config{}, formatCUEError(err)
	}

	v := def.Unify(user)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return Config{}, formatCUEError(err)
	}

	var cfg Config
	if err := v.Decode(&cfg); err != nil {
		return Config{}, formatCUEError(err)
	}
	return cfg, nil
}

// SlogLevel maps LogLevel to a slog level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DigestPolicy converts the allowed algorithm names into a factory policy.
func (c Config) DigestPolicy() (expr.DigestPolicy, error) {
	algs := make([]expr.Algorithm, 0, len(c.Digest.Allowed))
	for _, name := range c.Digest.Allowed {
		alg, err := expr.ParseAlgorithm(name)
		if err != nil {
			return expr.DigestPolicy{}, &Error{
				Message: fmt.Sprintf("digest.allowed: %v", err),
			}
		}
		algs = append(algs, alg)
	}
	return expr.NewDigestPolicy(algs...), nil
}

// formatCUEError keeps the first CUE error and its position.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	msg := strings.TrimSpace(first.Error())
	if positions := errors.Positions(first); len(positions) > 0 {
		return &Error{Message: msg, Pos: positions[0]}
	}
	return &Error{Message: msg}
}

package expr

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Factory errors.
var (
	// ErrUnknownFunction is returned for a functor the factory does not know.
	ErrUnknownFunction = errors.New("unknown function")

	// ErrDigestNotPermitted is returned for a digest algorithm the policy disallows.
	ErrDigestNotPermitted = errors.New("digest algorithm not permitted")

	// ErrArity is returned when a function receives the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")
)

// DigestPolicy decides which digest algorithms may be used.
type DigestPolicy struct {
	allowed map[Algorithm]bool
}

// NewDigestPolicy permits exactly algs.
func NewDigestPolicy(algs ...Algorithm) DigestPolicy {
	p := DigestPolicy{allowed: make(map[Algorithm]bool, len(algs))}
	for _, a := range algs {
		p.allowed[a] = true
	}
	return p
}

// DefaultDigestPolicy permits the SHA family. MD5 must be enabled explicitly.
func DefaultDigestPolicy() DigestPolicy {
	return NewDigestPolicy(SHA1, SHA256, SHA384, SHA512)
}

// Permits reports whether a may be used.
func (p DigestPolicy) Permits(a Algorithm) bool {
	return p.allowed[a]
}

// Allowed returns the permitted algorithms in canonical order.
func (p DigestPolicy) Allowed() []Algorithm {
	var out []Algorithm
	for _, a := range Algorithms {
		if p.allowed[a] {
			out = append(out, a)
		}
	}
	return out
}

// ParseAlgorithm accepts SHA256, sha256 and SHA-256 spellings.
func ParseAlgorithm(s string) (Algorithm, error) {
	a := Algorithm(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "")))
	if !a.Valid() {
		return "", fmt.Errorf("%w: digest algorithm %q", ErrUnknownFunction, s)
	}
	return a, nil
}

// extensionFunctions maps extension function IRIs to their algorithms.
var extensionFunctions = map[string]Algorithm{
	ExtensionNamespace + "md5hash":    MD5,
	ExtensionNamespace + "sha256hash": SHA256,
}

// Factory builds function-call nodes from a functor and its arguments.
//
// Functors are SPARQL keywords (SHA256, NOW, BOUND, ...) matched
// case-insensitively, or extension function IRIs with or without angle
// brackets.
type Factory struct {
	policy DigestPolicy
}

// NewFactory creates a factory enforcing policy.
func NewFactory(policy DigestPolicy) *Factory {
	return &Factory{policy: policy}
}

// Policy returns the digest policy.
func (f *Factory) Policy() DigestPolicy { return f.policy }

// Create builds the node for functor applied to args.
func (f *Factory) Create(functor string, args ...Expression) (Expression, error) {
	name := strings.TrimSuffix(strings.TrimPrefix(strings.TrimSpace(functor), "<"), ">")

	if alg, ok := extensionFunctions[name]; ok {
		if err := f.checkDigest(name, alg, args); err != nil {
			return nil, err
		}
		return NewExtensionDigest(alg, args[0]), nil
	}

	keyword := strings.ToUpper(name)
	if alg := Algorithm(keyword); slices.Contains(Algorithms, alg) {
		if err := f.checkDigest(keyword, alg, args); err != nil {
			return nil, err
		}
		return NewDigest(alg, args[0]), nil
	}

	switch keyword {
	case "NOW":
		if err := checkArity(keyword, args, 0); err != nil {
			return nil, err
		}
		return NewNow(), nil

	case "BOUND":
		if err := checkArity(keyword, args, 1); err != nil {
			return nil, err
		}
		v, err := asVariable(keyword, args[0])
		if err != nil {
			return nil, err
		}
		return NewBound(v), nil

	case "&&", "AND":
		if err := checkArity(keyword, args, 2); err != nil {
			return nil, err
		}
		return NewAnd(args[0], args[1]), nil

	case "||", "OR":
		if err := checkArity(keyword, args, 2); err != nil {
			return nil, err
		}
		return NewOr(args[0], args[1]), nil

	case "!", "NOT":
		if err := checkArity(keyword, args, 1); err != nil {
			return nil, err
		}
		return NewNot(args[0]), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownFunction, functor)
}

func (f *Factory) checkDigest(functor string, alg Algorithm, args []Expression) error {
	if !f.policy.Permits(alg) {
		return fmt.Errorf("%w: %s", ErrDigestNotPermitted, alg)
	}
	return checkArity(functor, args, 1)
}

func checkArity(functor string, args []Expression, want int) error {
	if len(args) != want {
		return fmt.Errorf("%w: %s takes %d, got %d", ErrArity, functor, want, len(args))
	}
	return nil
}

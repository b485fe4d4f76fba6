package expr

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"strings"

	"github.com/roach88/rdfexpr/internal/term"
)

// ExtensionNamespace is the namespace of the extension hash functions
// (md5hash, sha256hash) accepted for interoperability.
const ExtensionNamespace = "http://www.dotnetrdf.org/leviathan#"

// Algorithm identifies a digest algorithm.
type Algorithm string

const (
	MD5    Algorithm = "MD5"
	SHA1   Algorithm = "SHA1"
	SHA256 Algorithm = "SHA256"
	SHA384 Algorithm = "SHA384"
	SHA512 Algorithm = "SHA512"
)

// Algorithms lists every supported algorithm in a stable order.
var Algorithms = []Algorithm{MD5, SHA1, SHA256, SHA384, SHA512}

func (a Algorithm) newHash() (hash.Hash, bool) {
	switch a {
	case MD5:
		return md5.New(), true
	case SHA1:
		return sha1.New(), true
	case SHA256:
		return sha256.New(), true
	case SHA384:
		return sha512.New384(), true
	case SHA512:
		return sha512.New(), true
	default:
		return nil, false
	}
}

// HexLength returns the length of the algorithm's hex-encoded digest, or 0
// for an unknown algorithm.
func (a Algorithm) HexLength() int {
	h, ok := a.newHash()
	if !ok {
		return 0
	}
	return h.Size() * 2
}

// Valid reports whether a is a supported algorithm.
func (a Algorithm) Valid() bool {
	_, ok := a.newHash()
	return ok
}

// Sum hashes s and returns the lowercase hex digest.
func (a Algorithm) Sum(s string) (string, error) {
	h, ok := a.newHash()
	if !ok {
		return "", newTypeError(string(a), "unsupported digest algorithm")
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Digest hashes the lexical form of its operand.
//
// The result is a plain literal holding the lowercase hex digest. Digests
// have no effective boolean value.
type Digest struct {
	alg       Algorithm
	namespace string
	name      string
	operand   Expression
}

// NewDigest creates the SPARQL keyword form, e.g. SHA256(?x).
func NewDigest(alg Algorithm, operand Expression) *Digest {
	return &Digest{alg: alg, name: string(alg), operand: operand}
}

// NewExtensionDigest creates the extension form, e.g.
// <http://www.dotnetrdf.org/leviathan#sha256hash>(?x).
func NewExtensionDigest(alg Algorithm, operand Expression) *Digest {
	return &Digest{
		alg:       alg,
		namespace: ExtensionNamespace,
		name:      extensionName(alg),
		operand:   operand,
	}
}

func extensionName(alg Algorithm) string {
	switch alg {
	case MD5:
		return "md5hash"
	case SHA256:
		return "sha256hash"
	default:
		return strings.ToLower(string(alg)) + "hash"
	}
}

func (*Digest) expressionNode() {}

// Algorithm returns the digest algorithm.
func (d *Digest) Algorithm() Algorithm { return d.alg }

// Operand returns the hashed expression.
func (d *Digest) Operand() Expression { return d.operand }

// Functor returns the function identifier: the keyword, or the full
// extension IRI.
func (d *Digest) Functor() string { return d.namespace + d.name }

// Value hashes the operand's lexical form. Operand errors propagate unchanged.
func (d *Digest) Value(ec *EvalContext, id int) (term.Term, error) {
	t, err := d.operand.Value(ec, id)
	if err != nil {
		return term.Term{}, err
	}
	lex, ok := t.Lexical()
	if !ok {
		return term.Term{}, newTypeError(d.Functor(), "cannot hash %s term %s", t.Kind(), t)
	}
	sum, err := d.alg.Sum(lex)
	if err != nil {
		return term.Term{}, err
	}
	return term.NewLiteral(sum), nil
}

// EffectiveBooleanValue always fails with a type error.
func (d *Digest) EffectiveBooleanValue(*EvalContext, int) (bool, error) {
	return false, newTypeError(d.Functor(), "digest values have no effective boolean value")
}

// Variables returns the operand's variables.
func (d *Digest) Variables() []string { return d.operand.Variables() }

// Transform rewrites the operand and keeps the algorithm and functor name.
func (d *Digest) Transform(fn Rewriter) (Expression, error) {
	op, err := fn(d.operand)
	if err != nil {
		return nil, err
	}
	return &Digest{alg: d.alg, namespace: d.namespace, name: d.name, operand: op}, nil
}

// String renders SHA256(arg) or <namespace#name>(arg).
func (d *Digest) String() string {
	if d.namespace != "" {
		return "<" + d.Functor() + ">(" + d.operand.String() + ")"
	}
	return d.name + "(" + d.operand.String() + ")"
}

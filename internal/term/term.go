package term

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
)

// Kind identifies which of the three RDF term kinds a Term is.
type Kind uint8

const (
	// KindInvalid is the zero Kind; the zero Term has it.
	KindInvalid Kind = iota
	KindIRI
	KindBlank
	KindLiteral
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlank:
		return "blank"
	case KindLiteral:
		return "literal"
	default:
		return "invalid"
	}
}

// Term is an immutable RDF term.
//
// The zero value is not a valid term (Kind() == KindInvalid). Language tags are
// stored lower-cased so that structural equality matches RDF's case-insensitive
// language tag comparison.
type Term struct {
	kind     Kind
	value    string
	datatype string
	lang     string
}

// NewIRI creates an IRI term.
func NewIRI(iri string) Term {
	return Term{kind: KindIRI, value: iri}
}

// NewBlank creates a blank node term with the given local label.
func NewBlank(label string) Term {
	return Term{kind: KindBlank, value: label}
}

// NewLiteral creates a plain literal with no datatype and no language tag.
func NewLiteral(lexical string) Term {
	return Term{kind: KindLiteral, value: lexical}
}

// NewTypedLiteral creates a literal with a datatype IRI.
// An empty datatype yields a plain literal.
func NewTypedLiteral(lexical, datatype string) Term {
	return Term{kind: KindLiteral, value: lexical, datatype: datatype}
}

// NewLangLiteral creates a language-tagged literal.
// The tag must be a well-formed BCP 47 tag.
func NewLangLiteral(lexical, lang string) (Term, error) {
	if _, err := language.Parse(lang); err != nil {
		return Term{}, fmt.Errorf("invalid language tag %q: %w", lang, err)
	}
	return Term{kind: KindLiteral, value: lexical, lang: strings.ToLower(lang)}, nil
}

// MustLangLiteral is like NewLangLiteral but panics on an invalid tag.
// Use only in tests or when inputs are known to be valid.
func MustLangLiteral(lexical, lang string) Term {
	t, err := NewLangLiteral(lexical, lang)
	if err != nil {
		panic(err)
	}
	return t
}

// NewBoolean creates an xsd:boolean literal in canonical lexical form.
func NewBoolean(b bool) Term {
	if b {
		return NewTypedLiteral("true", XSDBoolean)
	}
	return NewTypedLiteral("false", XSDBoolean)
}

// DateTimeLayout is the fixed-width xsd:dateTime layout used for generated
// date-time literals: microsecond precision and a numeric offset.
const DateTimeLayout = "2006-01-02T15:04:05.000000-07:00"

// NewDateTime creates an xsd:dateTime literal formatted with DateTimeLayout.
func NewDateTime(t time.Time) Term {
	return NewTypedLiteral(t.Format(DateTimeLayout), XSDDateTime)
}

// Kind returns the term kind.
func (t Term) Kind() Kind { return t.kind }

// IsZero reports whether t is the zero (invalid) term.
func (t Term) IsZero() bool { return t.kind == KindInvalid }

// IsIRI reports whether t is an IRI.
func (t Term) IsIRI() bool { return t.kind == KindIRI }

// IsBlank reports whether t is a blank node.
func (t Term) IsBlank() bool { return t.kind == KindBlank }

// IsLiteral reports whether t is a literal.
func (t Term) IsLiteral() bool { return t.kind == KindLiteral }

// Value returns the IRI string, blank node label or literal lexical form.
func (t Term) Value() string { return t.value }

// Datatype returns the literal datatype IRI, or "" for plain and language-tagged literals.
func (t Term) Datatype() string { return t.datatype }

// Language returns the lower-cased language tag, or "".
func (t Term) Language() string { return t.lang }

// Lexical returns the string form used when a term is consumed as a string:
// the IRI for IRIs and the lexical form for literals. Blank nodes have no
// lexical form and return ok=false.
func (t Term) Lexical() (string, bool) {
	switch t.kind {
	case KindIRI, KindLiteral:
		return t.value, true
	default:
		return "", false
	}
}

// Equal reports structural equality.
func (t Term) Equal(other Term) bool {
	return t == other
}

// HasDatatype reports whether t is a literal with the given datatype.
func (t Term) HasDatatype(datatype string) bool {
	return t.kind == KindLiteral && t.datatype == datatype
}

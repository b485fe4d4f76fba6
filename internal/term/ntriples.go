package term

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// String renders the term in N-Triples syntax:
// <iri>, _:label, "lexical", "lexical"@lang or "lexical"^^<datatype>.
// The rendering is canonical: equal terms render identically and Parse
// inverts it.
func (t Term) String() string {
	switch t.kind {
	case KindIRI:
		return "<" + t.value + ">"
	case KindBlank:
		return "_:" + t.value
	case KindLiteral:
		var b strings.Builder
		b.WriteByte('"')
		escapeLiteral(&b, t.value)
		b.WriteByte('"')
		if t.lang != "" {
			b.WriteByte('@')
			b.WriteString(t.lang)
		} else if t.datatype != "" {
			b.WriteString("^^<")
			b.WriteString(t.datatype)
			b.WriteByte('>')
		}
		return b.String()
	default:
		return "<invalid>"
	}
}

func escapeLiteral(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
}

// Parse decodes a single term written in N-Triples syntax.
func Parse(s string) (Term, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Term{}, fmt.Errorf("empty term")
	}

	switch {
	case s[0] == '<':
		if !strings.HasSuffix(s, ">") || len(s) < 2 {
			return Term{}, fmt.Errorf("unterminated IRI: %s", s)
		}
		iri := s[1 : len(s)-1]
		if strings.ContainsAny(iri, "<> ") {
			return Term{}, fmt.Errorf("invalid character in IRI: %s", s)
		}
		if strings.ContainsRune(iri, '\\') {
			var err error
			if iri, err = unescapeIRI(iri); err != nil {
				return Term{}, fmt.Errorf("%w: %s", err, s)
			}
		}
		return NewIRI(iri), nil

	case strings.HasPrefix(s, "_:"):
		label := s[2:]
		if label == "" {
			return Term{}, fmt.Errorf("empty blank node label")
		}
		return NewBlank(label), nil

	case s[0] == '"':
		return parseLiteral(s)

	default:
		return Term{}, fmt.Errorf("unrecognised term syntax: %s", s)
	}
}

// MustParse is like Parse but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustParse(s string) Term {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

func parseLiteral(s string) (Term, error) {
	var lex strings.Builder
	i := 1
	closed := false
	for i < len(s) {
		c := s[i]
		if c == '"' {
			closed = true
			i++
			break
		}
		if c != '\\' {
			lex.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			return Term{}, fmt.Errorf("dangling escape in literal: %s", s)
		}
		switch s[i+1] {
		case 'u', 'U':
			r, n, err := decodeUCHAR(s[i:])
			if err != nil {
				return Term{}, fmt.Errorf("%w in literal: %s", err, s)
			}
			lex.WriteRune(r)
			i += n
			continue
		case '\\':
			lex.WriteByte('\\')
		case '"':
			lex.WriteByte('"')
		case '\'':
			lex.WriteByte('\'')
		case 'n':
			lex.WriteByte('\n')
		case 'r':
			lex.WriteByte('\r')
		case 't':
			lex.WriteByte('\t')
		case 'b':
			lex.WriteByte('\b')
		case 'f':
			lex.WriteByte('\f')
		default:
			return Term{}, fmt.Errorf("unsupported escape \\%c in literal: %s", s[i+1], s)
		}
		i += 2
	}
	if !closed {
		return Term{}, fmt.Errorf("unterminated literal: %s", s)
	}

	rest := s[i:]
	switch {
	case rest == "":
		return NewLiteral(lex.String()), nil
	case strings.HasPrefix(rest, "@"):
		return NewLangLiteral(lex.String(), rest[1:])
	case strings.HasPrefix(rest, "^^"):
		dt, err := Parse(rest[2:])
		if err != nil {
			return Term{}, fmt.Errorf("literal datatype: %w", err)
		}
		if !dt.IsIRI() {
			return Term{}, fmt.Errorf("literal datatype must be an IRI: %s", rest[2:])
		}
		return NewTypedLiteral(lex.String(), dt.Value()), nil
	default:
		return Term{}, fmt.Errorf("unexpected suffix after literal: %s", rest)
	}
}

// decodeUCHAR decodes the \uXXXX or \UXXXXXXXX escape at the start of s and
// returns the rune and the escape's length.
func decodeUCHAR(s string) (rune, int, error) {
	n := 6
	if s[1] == 'U' {
		n = 10
	}
	if len(s) < n {
		return 0, 0, fmt.Errorf("truncated escape %q", s)
	}
	v, err := strconv.ParseUint(s[2:n], 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid escape %q", s[:n])
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, 0, fmt.Errorf("escape %q is not a valid code point", s[:n])
	}
	return r, n, nil
}

// unescapeIRI expands the \u and \U escapes N-Triples allows in IRIs.
func unescapeIRI(iri string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(iri); {
		if iri[i] != '\\' {
			b.WriteByte(iri[i])
			i++
			continue
		}
		if i+1 >= len(iri) || (iri[i+1] != 'u' && iri[i+1] != 'U') {
			return "", fmt.Errorf("invalid escape in IRI")
		}
		r, n, err := decodeUCHAR(iri[i:])
		if err != nil {
			return "", err
		}
		b.WriteRune(r)
		i += n
	}
	return b.String(), nil
}

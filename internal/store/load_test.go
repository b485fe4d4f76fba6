package store

import (
	"context"
	"strings"
	"testing"

	"github.com/roach88/rdfexpr/internal/term"
)

func TestParseTriple(t *testing.T) {
	tests := []struct {
		line string
		want Triple
	}{
		{
			`<http://example.org/a> <http://example.org/p> <http://example.org/b> .`,
			T(iri("a"), iri("p"), iri("b")),
		},
		{
			`_:b0 <http://example.org/p> "hello world" .`,
			T(term.NewBlank("b0"), iri("p"), term.NewLiteral("hello world")),
		},
		{
			`<http://example.org/a> <http://example.org/p> "a \"b\" c"@en-GB .`,
			T(iri("a"), iri("p"), term.MustLangLiteral(`a "b" c`, "en-gb")),
		},
		{
			`<http://example.org/a> <http://example.org/p> "7"^^<http://www.w3.org/2001/XMLSchema#integer>.`,
			T(iri("a"), iri("p"), term.NewTypedLiteral("7", term.XSDInteger)),
		},
		{
			`<http://example.org/a> <http://example.org/p> "caf\u00E9" .`,
			T(iri("a"), iri("p"), term.NewLiteral("café")),
		},
		{
			`<http://example.org/a> <http://example.org/p> "\U0001F600 \'q\' \b" .`,
			T(iri("a"), iri("p"), term.NewLiteral("\U0001F600 'q' \b")),
		},
		{
			`<http://example.org/caf\u00e9> <http://example.org/p> "x" .`,
			T(term.NewIRI("http://example.org/café"), iri("p"), term.NewLiteral("x")),
		},
		{
			`<http://example.org/a> <http://example.org/p> "x" . # trailing comment`,
			T(iri("a"), iri("p"), term.NewLiteral("x")),
		},
		{
			`<http://example.org/a> <http://example.org/p> "x" .# no space`,
			T(iri("a"), iri("p"), term.NewLiteral("x")),
		},
		{
			`<http://example.org/a> <http://example.org/p> "x"@en-US.`,
			T(iri("a"), iri("p"), term.MustLangLiteral("x", "en-us")),
		},
		{
			`<http://example.org/a> <http://example.org/p> _:b1.`,
			T(iri("a"), iri("p"), term.NewBlank("b1")),
		},
		{
			`_:node.one <http://example.org/p> "#not a comment" .`,
			T(term.NewBlank("node.one"), iri("p"), term.NewLiteral("#not a comment")),
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseTriple(tt.line)
			if err != nil {
				t.Fatalf("ParseTriple() failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseTriple() = %s, want %s", got, tt.want)
			}
			if again, err := ParseTriple(got.String()); err != nil || again != got {
				t.Errorf("ParseTriple(String()) = %s, %v", again, err)
			}
		})
	}
}

func TestParseTriple_Errors(t *testing.T) {
	for _, line := range []string{
		`<http://example.org/a> <http://example.org/p> <http://example.org/b>`,
		`<http://example.org/a> <http://example.org/p>`,
		`<http://example.org/a> <http://example.org/p> "open .`,
		`"s" <http://example.org/p> <http://example.org/b> .`,
		`<http://example.org/a <http://example.org/p> <http://example.org/b> .`,
		`<http://example.org/a> <http://example.org/p> "x" . extra`,
		`<http://example.org/a> <http://example.org/p> "\u00G1" .`,
		`<http://example.org/a> <http://example.org/p> "\uD800" .`,
		`<http://example.org/a> <http://example.org/p> "\u00E" .`,
		`<http://example.org/a\x> <http://example.org/p> "x" .`,
	} {
		if _, err := ParseTriple(line); err == nil {
			t.Errorf("ParseTriple(%q) succeeded, want error", line)
		}
	}
}

func TestLoadNTriples(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	doc := `# people
<http://example.org/a> <http://example.org/p> <http://example.org/b> .

<http://example.org/a> <http://example.org/p> "x" .
<http://example.org/a> <http://example.org/p> <http://example.org/b> .
`
	added, err := s.LoadNTriples(ctx, strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadNTriples() failed: %v", err)
	}
	if added != 2 {
		t.Errorf("LoadNTriples() = %d, want 2", added)
	}
}

func TestLoadNTriples_ReportsLine(t *testing.T) {
	s := createTestStore(t)

	doc := "<http://example.org/a> <http://example.org/p> <http://example.org/b> .\nnot a triple\n"
	_, err := s.LoadNTriples(context.Background(), strings.NewReader(doc))
	if err == nil {
		t.Fatal("LoadNTriples() succeeded, want error")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name line 2", err)
	}
}

func TestReadNTriples_EscapesAndComments(t *testing.T) {
	doc := `<http://example.org/a> <http://example.org/name> "caf\u00E9" .
<http://example.org/a> <http://example.org/note> "x" . # trailing comment
<http://example.org/a> <http://example.org/label> "x"@en-US.
`
	triples, err := ReadNTriples(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ReadNTriples() failed: %v", err)
	}

	want := []Triple{
		T(iri("a"), iri("name"), term.NewLiteral("café")),
		T(iri("a"), iri("note"), term.NewLiteral("x")),
		T(iri("a"), iri("label"), term.MustLangLiteral("x", "en-us")),
	}
	if len(triples) != len(want) {
		t.Fatalf("ReadNTriples() returned %d triples, want %d", len(triples), len(want))
	}
	for i := range want {
		if triples[i] != want[i] {
			t.Errorf("triple %d = %s, want %s", i, triples[i], want[i])
		}
	}
}

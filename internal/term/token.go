package term

import (
	"fmt"
	"strings"
)

// NextToken splits the leading N-Triples term off s. Tokens that are not
// IRIs or literals run to the next space or tab.
func NextToken(s string) (tok, rest string, err error) {
	if s == "" {
		return "", "", fmt.Errorf("unexpected end of statement")
	}

	switch s[0] {
	case '<':
		end := strings.IndexByte(s, '>')
		if end < 0 {
			return "", "", fmt.Errorf("unterminated IRI in %q", s)
		}
		return s[:end+1], s[end+1:], nil

	case '"':
		end := closingQuote(s)
		if end < 0 {
			return "", "", fmt.Errorf("unterminated literal in %q", s)
		}
		end++
		switch {
		case strings.HasPrefix(s[end:], "^^<"):
			dt := strings.IndexByte(s[end:], '>')
			if dt < 0 {
				return "", "", fmt.Errorf("unterminated datatype in %q", s)
			}
			end += dt + 1
		case strings.HasPrefix(s[end:], "@"):
			end += langTagEnd(s[end:])
		}
		return s[:end], s[end:], nil

	case '_':
		// A blank node label may contain '.' but not end with one.
		end := tokenEnd(s)
		for end > 2 && s[end-1] == '.' {
			end--
		}
		return s[:end], s[end:], nil

	default:
		end := tokenEnd(s)
		return s[:end], s[end:], nil
	}
}

// langTagEnd returns the length of the language tag at s, '@' included:
// letters, then '-'-separated letter/digit subtags.
func langTagEnd(s string) int {
	i := 1
	for i < len(s) && isLetter(s[i]) {
		i++
	}
	for i+1 < len(s) && s[i] == '-' && isAlnum(s[i+1]) {
		i += 2
		for i < len(s) && isAlnum(s[i]) {
			i++
		}
	}
	return i
}

func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isAlnum(c byte) bool { return isLetter(c) || c >= '0' && c <= '9' }

// closingQuote returns the index of the quote closing the literal that
// starts at s[0], skipping escaped characters.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}

// tokenEnd returns the index of the first whitespace byte, or len(s).
func tokenEnd(s string) int {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return i
	}
	return len(s)
}

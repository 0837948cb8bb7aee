package domain

import "strings"

// asciiSpace lists the bytes that separate tokens. Only ASCII bytes are
// special, so the line is scanned byte by byte and non-UTF-8 text from
// legacy code pages is copied unchanged.
const asciiSpace = " \t\n\v\f\r"

// lexState is the tokenizer's position relative to quoting
type lexState uint8

const (
	// stateScanning is between tokens or inside an unquoted token
	stateScanning lexState = iota

	// stateInQuotedToken is inside a token that began with '"'. The closing
	// quote ends the token.
	stateInQuotedToken

	// stateInEmbeddedQuote is inside a quoted segment of an unquoted token,
	// as in --flag="a b". The closing quote resumes the outer token.
	stateInEmbeddedQuote
)

// Tokenize splits one line into shell-like tokens.
//
// Whitespace outside quotes separates tokens. Quote characters are removed
// and backslashes and every other byte are kept verbatim. An unterminated quote runs to the end
// of the line. Empty tokens (such as a bare "") are never produced.
func Tokenize(line string) []string {
	var (
		tokens  []string
		cur     strings.Builder
		inToken bool
		state   = stateScanning
	)

	emit := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
		}
		cur.Reset()
		inToken = false
	}

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch state {
		case stateInQuotedToken:
			if c == '"' {
				emit()
				state = stateScanning
				continue
			}
			cur.WriteByte(c)

		case stateInEmbeddedQuote:
			if c == '"' {
				state = stateScanning
				continue
			}
			cur.WriteByte(c)

		default:
			switch {
			case isSpace(c):
				if inToken {
					emit()
				}
			case c == '"' && inToken:
				state = stateInEmbeddedQuote
			case c == '"':
				inToken = true
				state = stateInQuotedToken
			default:
				inToken = true
				cur.WriteByte(c)
			}
		}
	}
	emit()

	return tokens
}

// FormatCommandLine joins args into one line that Tokenize splits back into
// the same arguments. Arguments that are empty or contain whitespace are
// wrapped in double quotes; arguments containing '"' cannot be represented
// and are written unchanged.
func FormatCommandLine(args []string) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		if needsQuoting(a) {
			a = `"` + a + `"`
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

func needsQuoting(arg string) bool {
	if arg == "" {
		return true
	}
	if strings.ContainsRune(arg, '"') {
		return false
	}
	return strings.ContainsAny(arg, asciiSpace)
}

func isSpace(c byte) bool {
	return strings.IndexByte(asciiSpace, c) >= 0
}

package diff

import "unicode"

// Tokenize splits a line into the tokens used for word-level alignment: a
// maximal run of alphanumeric-or-underscore characters is one identifier
// token, a maximal run of whitespace is one token, and every other character
// is its own token.
func Tokenize(line string) []string {
	const (
		classNone = iota
		classWord
		classSpace
	)

	var tokens []string
	var buf []rune
	bufClass := classNone

	flush := func() {
		if len(buf) > 0 {
			tokens = append(tokens, string(buf))
			buf = buf[:0]
		}
		bufClass = classNone
	}

	for _, r := range line {
		switch {
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			if bufClass != classWord {
				flush()
				bufClass = classWord
			}
			buf = append(buf, r)
		case unicode.IsSpace(r):
			if bufClass != classSpace {
				flush()
				bufClass = classSpace
			}
			buf = append(buf, r)
		default:
			flush()
			tokens = append(tokens, string(r))
		}
	}
	flush()

	return tokens
}

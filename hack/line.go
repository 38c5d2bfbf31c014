package hack

import (
	"regexp"
	"strings"
)

// COMMENT starts a comment that runs to the end of the line.
const COMMENT = "//"

// EXPRESSION opens a compile-time expression, closed by the matching ')'.
const EXPRESSION = "$("

var symbolRe = regexp.MustCompile(`^[A-Za-z_.$:][A-Za-z0-9_.$:]*$`)

// ValidSymbol reports whether name is usable as a label or variable.
func ValidSymbol(name string) bool {
	return symbolRe.MatchString(name)
}

// Normalize strips the comment and all whitespace from a raw source
// line, and classifies what remains. The body of a $(...) expression is
// kept as written, apart from its edge whitespace.
func Normalize(line string) (in Instruction) {
	text := strip(line)
	if start := strings.Index(line, EXPRESSION); start >= 0 && !strings.Contains(line[:start], COMMENT) {
		body := start + len(EXPRESSION)
		if end, ok := closeParen(line, body); ok {
			text = strip(line[:start]) + EXPRESSION + strings.TrimSpace(line[body:end]) + ")" + strip(line[end+1:])
		}
	}

	in.Text = text
	switch {
	case len(text) == 0:
		in.Kind = KIND_BLANK
	case text[0] == '@':
		in.Kind = KIND_ADDRESS
	case text[0] == '(':
		in.Kind = KIND_LABEL
		in.Label = strings.TrimSuffix(text[1:], ")")
	default:
		in.Kind = KIND_COMPUTE
	}

	return
}

// strip removes the comment and all whitespace.
func strip(line string) string {
	line, _, _ = strings.Cut(line, COMMENT)
	return strings.Join(strings.Fields(line), "")
}

// closeParen finds the ')' balancing an already opened '(' before from.
func closeParen(line string, from int) (end int, ok bool) {
	depth := 1
	for n := from; n < len(line); n++ {
		switch line[n] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				end, ok = n, true
				return
			}
		}
	}
	return
}

// checkLabel verifies a label declaration is of the form (NAME).
func checkLabel(in Instruction) (err error) {
	if !strings.HasSuffix(in.Text, ")") || !ValidSymbol(in.Label) {
		err = ErrLabelSyntax
		return
	}
	return
}

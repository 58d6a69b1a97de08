package rule

import (
	"regexp"
)

// 🔍 Pattern is a literal or regular expression searched in a name
type Pattern struct {
	Text          string
	IsRegex       bool
	CaseSensitive bool
}

// Compile turns the pattern into a regular expression. Literal text is quoted.
func (p Pattern) Compile() (*regexp.Regexp, error) {
	expr := p.Text
	if !p.IsRegex {
		expr = regexp.QuoteMeta(expr)
	}
	if !p.CaseSensitive {
		expr = "(?i)" + expr
	}
	return regexp.Compile(expr)
}

// defaultSentenceSeparator splits sentences when no separator is configured
const defaultSentenceSeparator = `\.+`

// separatorPattern is the sentence separator of a ChangeCase rule
func separatorPattern(sep string, isRegex bool) Pattern {
	if sep == "" {
		return Pattern{Text: defaultSentenceSeparator, IsRegex: true, CaseSensitive: true}
	}
	return Pattern{Text: sep, IsRegex: isRegex, CaseSensitive: true}
}

package prompt

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	escapedOpenCode = iota + 1
	escapedCloseCode
	placeholderCode
	textCode
)

var (
	escapedOpenToken  = parsly.NewToken(escapedOpenCode, "{{", matcher.NewFragment("{{"))
	escapedCloseToken = parsly.NewToken(escapedCloseCode, "}}", matcher.NewFragment("}}"))
	placeholderToken  = parsly.NewToken(placeholderCode, "{name}", &placeholderMatcher{})
	textToken         = parsly.NewToken(textCode, "Text", &textMatcher{})
)

// placeholderMatcher matches '{' followed by any bytes up to the first '}'
type placeholderMatcher struct{}

func (m *placeholderMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	pos := cursor.Pos
	size := cursor.InputSize
	if pos >= size || input[pos] != '{' {
		return 0
	}
	for i := pos + 1; i < size; i++ {
		switch input[i] {
		case '}':
			return i - pos + 1
		case '{':
			return 0
		}
	}
	return 0
}

// textMatcher matches a run of bytes without braces
type textMatcher struct{}

func (m *textMatcher) Match(cursor *parsly.Cursor) int {
	input := cursor.Input
	matched := 0
	for i := cursor.Pos; i < cursor.InputSize; i++ {
		if input[i] == '{' || input[i] == '}' {
			break
		}
		matched++
	}
	return matched
}

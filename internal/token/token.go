package token

import "pseudogo/internal/source"

// Token is a single lexeme with its source span. Keyword tokens carry the
// canonical uppercase spelling in Keyword; every other kind leaves it empty.
type Token struct {
	Kind    Kind
	Text    string
	Keyword string
	Span    source.Span
}

// Is reports whether t is a keyword matching upper (already
// uppercased), e.g. t.Is("ENDIF").
func (t Token) Is(upper string) bool {
	return t.Kind == Keyword && t.Keyword == upper
}

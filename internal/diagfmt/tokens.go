package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"pseudogo/internal/source"
	"pseudogo/internal/token"
)

// TokenOutput is the JSON wire shape of one token.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Keyword string      `json:"keyword,omitempty"`
	Span    source.Span `json:"span"`
}

// FormatTokensPretty prints one line per token: index, kind, lexeme, span.
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		fmt.Fprintf(w, "%3d: %-16s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n", tok.Span.StartLine, tok.Span.StartCol, tok.Span.EndLine, tok.Span.EndCol)
		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes tokens as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	var out []TokenOutput
	for _, tok := range tokens {
		out = append(out, TokenOutput{
			Kind:    tok.Kind.String(),
			Text:    tok.Text,
			Keyword: tok.Keyword,
			Span:    tok.Span,
		})
		if tok.Kind == token.EOF {
			break
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Package lexer turns pseudocode source text into a token stream,
// enforcing the uppercase-keyword rule and tracking line/column spans.
package lexer

import (
	"strings"
	"unicode"

	"pseudogo/internal/diag"
	"pseudogo/internal/source"
	"pseudogo/internal/token"
)

// Lexer scans one source file into a flat token slice.
type Lexer struct {
	file   source.FileID
	cur    *cursor
	report diag.Reporter
}

// New creates a Lexer over src, attributing spans to file and reporting
// diagnostics to report.
func New(file source.FileID, src []byte, report diag.Reporter) *Lexer {
	return &Lexer{file: file, cur: newCursor(src), report: report}
}

// Tokenize scans the entire source and returns its token stream, always
// terminated by a single EOF token.
func (lx *Lexer) Tokenize() []token.Token {
	var out []token.Token
	for {
		tok := lx.next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (lx *Lexer) span(startLine, startCol uint32) source.Span {
	endLine, endCol := lx.cur.line1col()
	return source.Span{File: lx.file, StartLine: startLine, StartCol: startCol, EndLine: endLine, EndCol: endCol}
}

func (lx *Lexer) next() token.Token {
	for {
		lx.skipSpacesAndComments()
		if lx.cur.eof() {
			line, col := lx.cur.line1col()
			return token.Token{Kind: token.EOF, Span: source.Point(lx.file, line, col)}
		}

		startLine, startCol := lx.cur.line1col()
		ch := lx.cur.peek()

		switch {
		case ch == '\n':
			lx.cur.advance()
			return token.Token{Kind: token.Newline, Text: "\n", Span: lx.span(startLine, startCol)}
		case ch == '←':
			lx.cur.advance()
			return token.Token{Kind: token.Assign, Text: "←", Span: lx.span(startLine, startCol)}
		case ch == '"':
			return lx.scanString(startLine, startCol)
		case ch == '\'' || ch == 'ꞌ':
			return lx.scanChar(startLine, startCol)
		case isDigit(ch):
			return lx.scanNumber(startLine, startCol)
		case isIdentStart(ch):
			return lx.scanIdent(startLine, startCol)
		default:
			return lx.scanOperator(startLine, startCol)
		}
	}
}

func (lx *Lexer) skipSpacesAndComments() {
	for {
		ch := lx.cur.peek()
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			lx.cur.advance()
		case ch == '/' && lx.cur.peekAt(1) == '/':
			for !lx.cur.eof() && lx.cur.peek() != '\n' {
				lx.cur.advance()
			}
		default:
			return
		}
	}
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isIdentStart(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

func (lx *Lexer) scanIdent(startLine, startCol uint32) token.Token {
	var b strings.Builder
	for isIdentContinue(lx.cur.peek()) {
		b.WriteRune(lx.cur.advance())
	}
	text := b.String()
	upper := strings.ToUpper(text)

	if canon, ok := token.LookupKeyword(upper); ok {
		sp := lx.span(startLine, startCol)
		if text != canon {
			diag.Errorf(lx.report, diag.LexKeywordNotUppercase, sp,
				"keyword %q must be uppercase in strict mode", canon)
		}
		return token.Token{Kind: token.Keyword, Text: text, Keyword: canon, Span: sp}
	}
	return token.Token{Kind: token.Ident, Text: text, Span: lx.span(startLine, startCol)}
}

func (lx *Lexer) scanNumber(startLine, startCol uint32) token.Token {
	var b strings.Builder
	for isDigit(lx.cur.peek()) {
		b.WriteRune(lx.cur.advance())
	}
	kind := token.IntLit
	if lx.cur.peek() == '.' && isDigit(lx.cur.peekAt(1)) {
		kind = token.RealLit
		b.WriteRune(lx.cur.advance()) // '.'
		for isDigit(lx.cur.peek()) {
			b.WriteRune(lx.cur.advance())
		}
	}
	return token.Token{Kind: kind, Text: b.String(), Span: lx.span(startLine, startCol)}
}

func (lx *Lexer) scanString(startLine, startCol uint32) token.Token {
	lx.cur.advance() // opening quote
	var b strings.Builder
	for {
		if lx.cur.eof() || lx.cur.peek() == '\n' {
			sp := lx.span(startLine, startCol)
			diag.Errorf(lx.report, diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.StringLit, Text: b.String(), Span: sp}
		}
		if lx.cur.peek() == '"' {
			lx.cur.advance()
			return token.Token{Kind: token.StringLit, Text: b.String(), Span: lx.span(startLine, startCol)}
		}
		b.WriteRune(lx.cur.advance())
	}
}

func isQuoteRune(r rune) bool { return r == '\'' || r == 'ꞌ' }

func (lx *Lexer) scanChar(startLine, startCol uint32) token.Token {
	lx.cur.advance() // opening quote
	var b strings.Builder
	for {
		if lx.cur.eof() || lx.cur.peek() == '\n' {
			sp := lx.span(startLine, startCol)
			diag.Errorf(lx.report, diag.LexUnterminatedChar, sp, "unterminated character literal")
			return token.Token{Kind: token.CharLit, Text: b.String(), Span: sp}
		}
		if isQuoteRune(lx.cur.peek()) {
			lx.cur.advance()
			return token.Token{Kind: token.CharLit, Text: b.String(), Span: lx.span(startLine, startCol)}
		}
		b.WriteRune(lx.cur.advance())
	}
}

func (lx *Lexer) scanOperator(startLine, startCol uint32) token.Token {
	ch := lx.cur.peek()
	two := string(ch) + string(lx.cur.peekAt(1))

	switch two {
	case "<-":
		lx.cur.advance()
		lx.cur.advance()
		return token.Token{Kind: token.Assign, Text: "<-", Span: lx.span(startLine, startCol)}
	case "<=":
		lx.cur.advance()
		lx.cur.advance()
		return token.Token{Kind: token.Le, Text: "<=", Span: lx.span(startLine, startCol)}
	case ">=":
		lx.cur.advance()
		lx.cur.advance()
		return token.Token{Kind: token.Ge, Text: ">=", Span: lx.span(startLine, startCol)}
	case "<>":
		lx.cur.advance()
		lx.cur.advance()
		return token.Token{Kind: token.Ne, Text: "<>", Span: lx.span(startLine, startCol)}
	}

	single := map[rune]token.Kind{
		':': token.Colon, ',': token.Comma, '(': token.LParen, ')': token.RParen,
		'[': token.LBracket, ']': token.RBracket, '+': token.Plus, '-': token.Minus,
		'*': token.Star, '/': token.Slash, '^': token.Caret, '=': token.Eq,
		'<': token.Lt, '>': token.Gt,
	}
	if kind, ok := single[ch]; ok {
		lx.cur.advance()
		return token.Token{Kind: kind, Text: string(ch), Span: lx.span(startLine, startCol)}
	}

	lx.cur.advance()
	sp := lx.span(startLine, startCol)
	rendered := string(ch)
	if unicode.IsControl(ch) {
		rendered = "?"
	}
	diag.Errorf(lx.report, diag.LexUnexpectedChar, sp, "unexpected character %q", rendered)
	return token.Token{Kind: token.Invalid, Text: string(ch), Span: sp}
}

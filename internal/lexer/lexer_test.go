package lexer

import (
	"testing"

	"pseudogo/internal/diag"
	"pseudogo/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag()
	lx := New(0, []byte(src), diag.BagReporter{Bag: bag})
	return lx.Tokenize(), bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, tk := range toks {
		out[i] = tk.Kind
	}
	return out
}

func TestLexerBasicDeclare(t *testing.T) {
	toks, bag := lexAll(t, "DECLARE X : INTEGER")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	want := []token.Kind{token.Keyword, token.Ident, token.Colon, token.Keyword, token.EOF}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestLexerAssignArrows(t *testing.T) {
	toks, bag := lexAll(t, "X <- 1\nY ← 2\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	var assigns int
	for _, tk := range toks {
		if tk.Kind == token.Assign {
			assigns++
		}
	}
	if assigns != 2 {
		t.Fatalf("expected 2 assign tokens, got %d", assigns)
	}
}

func TestLexerLowercaseKeywordEmitsSYN001(t *testing.T) {
	_, bag := lexAll(t, "declare X : INTEGER")
	if !bag.HasErrors() {
		t.Fatal("expected SYN001 for lowercase keyword")
	}
	if bag.Items()[0].Code != diag.LexKeywordNotUppercase {
		t.Fatalf("code = %v, want LexKeywordNotUppercase", bag.Items()[0].Code)
	}
	if id := bag.Items()[0].Code.ID(); id != "SYN001" {
		t.Fatalf("ID = %s, want SYN001", id)
	}
}

func TestLexerUnterminatedString(t *testing.T) {
	toks, bag := lexAll(t, `OUTPUT "hello`)
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected SYN008, got %+v", bag.Items())
	}
	found := false
	for _, tk := range toks {
		if tk.Kind == token.StringLit && tk.Text == "hello" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a STRING_LITERAL token with the partial text")
	}
}

func TestLexerTwoCharOperators(t *testing.T) {
	toks, bag := lexAll(t, "A <= B >= C <> D")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Items())
	}
	want := []token.Kind{token.Ident, token.Le, token.Ident, token.Ge, token.Ident, token.Ne, token.Ident, token.EOF}
	if got := kinds(toks); !equalKinds(got, want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
}

func TestLexerRealLiteral(t *testing.T) {
	toks, _ := lexAll(t, "3.14")
	if toks[0].Kind != token.RealLit || toks[0].Text != "3.14" {
		t.Fatalf("got %+v", toks[0])
	}
}

func TestLexerUnexpectedChar(t *testing.T) {
	_, bag := lexAll(t, "X <- 1 @ 2")
	if !bag.HasErrors() || bag.Items()[0].Code != diag.LexUnexpectedChar {
		t.Fatalf("expected SYN002 for '@', got %+v", bag.Items())
	}
}

func equalKinds(a, b []token.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

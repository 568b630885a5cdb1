package parser

import (
	"strings"

	"pseudogo/internal/ast"
	"pseudogo/internal/diag"
	"pseudogo/internal/source"
	"pseudogo/internal/token"
)

// parseStatements parses statements until the next keyword is in stop, or
// EOF is reached.
func (p *Parser) parseStatements(stop map[string]bool) []ast.Stmt {
	var stmts []ast.Stmt
	p.skipNewlines()
	for !p.atEOF() {
		if tok := p.peek(); tok.Kind == token.Keyword && stop[tok.Keyword] {
			break
		}
		if stmt := p.parseOneStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
		p.skipNewlines()
	}
	return stmts
}

// parseOneStatement dispatches on the current token, which must not be a
// NEWLINE. It never itself skips leading newlines, so callers that need to
// detect same-line placement (CASE clause bodies) can inspect the token
// before invoking it.
func (p *Parser) parseOneStatement() ast.Stmt {
	tok := p.peek()
	if tok.Kind == token.Ident {
		return p.parseAssign()
	}
	if tok.Kind != token.Keyword {
		diag.Errorf(p.report, diag.SynExpectStatement, p.currentSpan(), "%s, found %s", diag.SynExpectStatement.Title(), p.describeCurrent())
		p.skipToNewline()
		return nil
	}
	switch tok.Keyword {
	case "DECLARE":
		p.advance()
		return p.parseDeclare(tok)
	case "CONSTANT":
		p.advance()
		return p.parseConstant(tok)
	case "INPUT":
		p.advance()
		return p.parseInput(tok)
	case "OUTPUT":
		p.advance()
		return p.parseOutput(tok)
	case "IF":
		p.advance()
		return p.parseIf(tok)
	case "CASE":
		p.advance()
		return p.parseCase(tok)
	case "FOR":
		p.advance()
		return p.parseFor(tok)
	case "REPEAT":
		p.advance()
		return p.parseRepeat(tok)
	case "WHILE":
		p.advance()
		return p.parseWhile(tok)
	case "PROCEDURE":
		p.advance()
		return p.parseProcedure(tok)
	case "FUNCTION":
		p.advance()
		return p.parseFunction(tok)
	case "CALL":
		p.advance()
		return p.parseCall(tok)
	case "RETURN":
		p.advance()
		return p.parseReturn(tok)
	case "OPENFILE":
		p.advance()
		return p.parseOpenFile(tok)
	case "READFILE":
		p.advance()
		return p.parseReadFile(tok)
	case "WRITEFILE":
		p.advance()
		return p.parseWriteFile(tok)
	case "CLOSEFILE":
		p.advance()
		return p.parseCloseFile(tok)
	}
	diag.Errorf(p.report, diag.SynExpectStatement, p.currentSpan(), "%s, found %s", diag.SynExpectStatement.Title(), p.describeCurrent())
	p.skipToNewline()
	return nil
}

func (p *Parser) parseAssign() ast.Stmt {
	nameTok := p.advance()
	target := p.parseAssignTarget(nameTok)
	if _, ok := p.expectKind(token.Assign, diag.SynExpectAssign); !ok {
		p.skipToNewline()
		return nil
	}
	value := p.parseExpr(1)
	if value == nil {
		p.skipToNewline()
		return nil
	}
	return &ast.Assign{Target: target, Value: value, Sp: nameTok.Span.Cover(value.Span())}
}

func (p *Parser) parseAssignTarget(nameTok token.Token) ast.Expr {
	if p.peek().Kind != token.LBracket {
		return &ast.Identifier{Name: nameTok.Text, Sp: nameTok.Span}
	}
	p.advance()
	indices := p.parseExprList()
	rb, ok := p.expectKind(token.RBracket, diag.SynExpectRBracket)
	sp := nameTok.Span
	if ok {
		sp = sp.Cover(rb.Span)
	}
	return &ast.ArrayAccess{Name: nameTok.Text, Indices: indices, Sp: sp}
}

func (p *Parser) parseDeclare(kw token.Token) ast.Stmt {
	nameTok, ok := p.expectKind(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.skipToNewline()
		return nil
	}
	if _, ok := p.expectKind(token.Colon, diag.SynExpectColon); !ok {
		p.skipToNewline()
		return nil
	}
	typ := p.parseType()
	return &ast.Declare{Name: nameTok.Text, Type: typ, Sp: kw.Span.Cover(p.prevSpan())}
}

func (p *Parser) parseConstant(kw token.Token) ast.Stmt {
	nameTok, ok := p.expectKind(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.skipToNewline()
		return nil
	}
	if _, ok := p.expectKind(token.Assign, diag.SynExpectAssign); !ok {
		p.skipToNewline()
		return nil
	}
	value := p.parseExpr(1)
	if value == nil {
		p.skipToNewline()
		return nil
	}
	return &ast.Constant{Name: nameTok.Text, Value: value, Sp: kw.Span.Cover(value.Span())}
}

func (p *Parser) parseInput(kw token.Token) ast.Stmt {
	nameTok, ok := p.expectKind(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.skipToNewline()
		return nil
	}
	target := p.parseAssignTarget(nameTok)
	return &ast.Input{Target: target, Sp: kw.Span.Cover(target.Span())}
}

func (p *Parser) parseOutput(kw token.Token) ast.Stmt {
	args := p.parseExprList()
	sp := kw.Span
	if len(args) > 0 {
		sp = sp.Cover(args[len(args)-1].Span())
	}
	return &ast.Output{Args: args, Sp: sp}
}

func (p *Parser) parseIf(kw token.Token) ast.Stmt {
	cond := p.parseExpr(1)
	p.expectKeyword("THEN", diag.SynExpectThen)
	thenBody := p.parseStatements(map[string]bool{"ELSE": true, "ENDIF": true})
	var elseBody []ast.Stmt
	if p.isKeyword("ELSE") {
		p.advance()
		elseBody = p.parseStatements(map[string]bool{"ENDIF": true})
	}
	end, ok := p.expectKeyword("ENDIF", diag.SynMissingEndif)
	sp := kw.Span
	if ok {
		sp = sp.Cover(end.Span)
	}
	return &ast.If{Cond: cond, Then: thenBody, Else: elseBody, Sp: sp}
}

func (p *Parser) parseCase(kw token.Token) ast.Stmt {
	p.expectKeyword("OF", diag.SynExpectCaseOf)
	subject := p.parseExpr(1)
	p.skipNewlines()
	var clauses []ast.CaseClause
	var otherwise ast.Stmt
	for !p.atEOF() && !p.isKeyword("ENDCASE") {
		if p.isKeyword("OTHERWISE") {
			owTok := p.advance()
			otherwise = p.parseCaseClauseBody(owTok)
			p.skipNewlines()
			continue
		}
		clauseStart := p.currentSpan()
		value := p.parseExpr(1)
		if value == nil {
			p.skipToNewline()
			continue
		}
		colonTok, ok := p.expectKind(token.Colon, diag.SynExpectColonInCase)
		if !ok {
			p.skipToNewline()
			continue
		}
		body := p.parseCaseClauseBody(colonTok)
		sp := clauseStart.Cover(colonTok.Span)
		if body != nil {
			sp = sp.Cover(body.Span())
		}
		clauses = append(clauses, ast.CaseClause{Value: value, Body: body, Sp: sp})
		p.skipNewlines()
	}
	end, ok := p.expectKeyword("ENDCASE", diag.SynMissingEndcase)
	sp := kw.Span
	if ok {
		sp = sp.Cover(end.Span)
	}
	return &ast.Case{Subject: subject, Clauses: clauses, Otherwise: otherwise, Sp: sp}
}

// parseCaseClauseBody parses the single statement following a CASE clause's
// ':'/'OTHERWISE' marker. The statement must begin on the same source line
// as marker; a body starting on a later line is SYN023.
func (p *Parser) parseCaseClauseBody(marker token.Token) ast.Stmt {
	if p.peek().Kind == token.Newline || p.peek().Span.StartLine != marker.Span.EndLine {
		diag.Errorf(p.report, diag.SynCaseClauseMultiline, p.currentSpan(), "%s", diag.SynCaseClauseMultiline.Title())
		p.skipNewlines()
	}
	if p.peek().Kind == token.EOF || (p.peek().Kind == token.Keyword && (p.peek().Keyword == "ENDCASE" || p.peek().Keyword == "OTHERWISE")) {
		diag.Errorf(p.report, diag.SynExpectCaseClauseStmt, p.currentSpan(), "%s", diag.SynExpectCaseClauseStmt.Title())
		return nil
	}
	return p.parseOneStatement()
}

func (p *Parser) parseFor(kw token.Token) ast.Stmt {
	iterTok, ok := p.expectKind(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.skipToNewline()
		return nil
	}
	p.expectKind(token.Assign, diag.SynExpectAssign)
	start := p.parseExpr(1)
	p.expectKeyword("TO", diag.SynExpectTo)
	end := p.parseExpr(1)
	var step ast.Expr
	if p.isKeyword("STEP") {
		p.advance()
		step = p.parseExpr(1)
	}
	if p.peek().Kind != token.Newline {
		diag.Errorf(p.report, diag.SynExpectNewlineAfterFor, p.currentSpan(), "%s", diag.SynExpectNewlineAfterFor.Title())
	}
	body := p.parseStatements(map[string]bool{"NEXT": true})
	nextTok, ok := p.expectKeyword("NEXT", diag.SynMissingNext)
	var nextName string
	var nextSp source.Span
	if ok && p.peek().Kind == token.Ident {
		idTok := p.advance()
		nextName = idTok.Text
		nextSp = idTok.Span
		if !strings.EqualFold(nextName, iterTok.Text) {
			diag.Errorf(p.report, diag.SynForNextMismatch, nextSp, "%s", diag.SynForNextMismatch.Title())
		}
	}
	sp := kw.Span
	if ok {
		sp = sp.Cover(nextTok.Span)
	}
	if nextName != "" {
		sp = sp.Cover(nextSp)
	}
	return &ast.For{Iterator: iterTok.Text, Start: start, End: end, Step: step, Body: body, NextName: nextName, NextSp: nextSp, Sp: sp}
}

func (p *Parser) parseRepeat(kw token.Token) ast.Stmt {
	body := p.parseStatements(map[string]bool{"UNTIL": true})
	untilTok, ok := p.expectKeyword("UNTIL", diag.SynExpectUntil)
	cond := p.parseExpr(1)
	sp := kw.Span
	if ok {
		sp = sp.Cover(untilTok.Span)
	}
	if cond != nil {
		sp = sp.Cover(cond.Span())
	}
	return &ast.Repeat{Body: body, Until: cond, Sp: sp}
}

func (p *Parser) parseWhile(kw token.Token) ast.Stmt {
	cond := p.parseExpr(1)
	p.expectKeyword("DO", diag.SynExpectDo)
	body := p.parseStatements(map[string]bool{"ENDWHILE": true})
	end, ok := p.expectKeyword("ENDWHILE", diag.SynMissingEndwhile)
	sp := kw.Span
	if ok {
		sp = sp.Cover(end.Span)
	}
	return &ast.While{Cond: cond, Body: body, Sp: sp}
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if p.peek().Kind == token.RParen {
		return params
	}
	for {
		nameTok, ok := p.expectKind(token.Ident, diag.SynExpectParam)
		if !ok {
			break
		}
		p.expectKind(token.Colon, diag.SynExpectColon)
		typ := p.parseType()
		params = append(params, ast.Param{Name: nameTok.Text, Type: typ, Sp: nameTok.Span.Cover(p.prevSpan())})
		if p.peek().Kind == token.Comma {
			p.advance()
			continue
		}
		break
	}
	return params
}

func (p *Parser) parseProcedure(kw token.Token) ast.Stmt {
	nameTok, ok := p.expectKind(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.skipToNewline()
		return nil
	}
	var params []ast.Param
	if p.isCallOpenParen() {
		p.advance()
		params = p.parseParamList()
		p.expectKind(token.RParen, diag.SynExpectRParen)
	}
	body := p.parseStatements(map[string]bool{"ENDPROCEDURE": true})
	end, ok := p.expectKeyword("ENDPROCEDURE", diag.SynMissingEndprocedure)
	sp := kw.Span
	if ok {
		sp = sp.Cover(end.Span)
	}
	return &ast.ProcedureDef{Name: nameTok.Text, Params: params, Body: body, Sp: sp}
}

func (p *Parser) parseFunction(kw token.Token) ast.Stmt {
	nameTok, ok := p.expectKind(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.skipToNewline()
		return nil
	}
	var params []ast.Param
	if p.isCallOpenParen() {
		p.advance()
		params = p.parseParamList()
		p.expectKind(token.RParen, diag.SynExpectRParen)
	}
	p.expectKeyword("RETURNS", diag.SynExpectReturns)
	retType := p.parseType()
	body := p.parseStatements(map[string]bool{"ENDFUNCTION": true})
	end, ok := p.expectKeyword("ENDFUNCTION", diag.SynMissingEndfunction)
	sp := kw.Span
	if ok {
		sp = sp.Cover(end.Span)
	}
	return &ast.FunctionDef{Name: nameTok.Text, Params: params, ReturnType: retType, Body: body, Sp: sp}
}

func (p *Parser) isCallOpenParen() bool {
	return p.peek().Kind == token.LParen
}

func (p *Parser) parseCall(kw token.Token) ast.Stmt {
	nameTok, ok := p.expectKind(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.skipToNewline()
		return nil
	}
	var args []ast.Expr
	if p.isCallOpenParen() {
		p.advance()
		if p.peek().Kind != token.RParen {
			args = p.parseExprList()
		}
		p.expectKind(token.RParen, diag.SynExpectRParen)
	}
	return &ast.CallStmt{Name: nameTok.Text, Args: args, Sp: kw.Span.Cover(p.prevSpan())}
}

func (p *Parser) parseReturn(kw token.Token) ast.Stmt {
	value := p.parseExpr(1)
	sp := kw.Span
	if value != nil {
		sp = sp.Cover(value.Span())
	}
	return &ast.Return{Value: value, Sp: sp}
}

func (p *Parser) parseOpenFile(kw token.Token) ast.Stmt {
	file := p.parseExpr(1)
	p.expectKeyword("FOR", diag.SynExpectFor)
	mode := ast.FileRead
	if p.isKeyword("READ") {
		p.advance()
	} else if p.isKeyword("WRITE") {
		p.advance()
		mode = ast.FileWrite
	} else {
		diag.Errorf(p.report, diag.SynExpectFileMode, p.currentSpan(), "%s, found %s", diag.SynExpectFileMode.Title(), p.describeCurrent())
	}
	sp := kw.Span.Cover(p.prevSpan())
	return &ast.OpenFile{File: file, Mode: mode, Sp: sp}
}

func (p *Parser) parseReadFile(kw token.Token) ast.Stmt {
	file := p.parseExpr(1)
	p.expectKind(token.Comma, diag.SynExpectComma)
	target := p.parseExpr(1)
	sp := kw.Span
	if target != nil {
		sp = sp.Cover(target.Span())
	}
	return &ast.ReadFile{File: file, Target: target, Sp: sp}
}

func (p *Parser) parseWriteFile(kw token.Token) ast.Stmt {
	file := p.parseExpr(1)
	p.expectKind(token.Comma, diag.SynExpectComma)
	value := p.parseExpr(1)
	sp := kw.Span
	if value != nil {
		sp = sp.Cover(value.Span())
	}
	return &ast.WriteFile{File: file, Value: value, Sp: sp}
}

func (p *Parser) parseCloseFile(kw token.Token) ast.Stmt {
	file := p.parseExpr(1)
	sp := kw.Span
	if file != nil {
		sp = sp.Cover(file.Span())
	}
	return &ast.CloseFile{File: file, Sp: sp}
}

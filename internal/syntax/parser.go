package syntax

import (
	"strconv"
)

// bailout unwinds the parser on the first syntax error.
type bailout struct{}

type parser struct {
	lx   *Lexer
	tok  Token
	next Token
	prog *Program
	errs ErrorList
}

// Parse parses a Decaf program. Parsing stops at the first syntax error, so
// a failed parse returns exactly one error and a nil program.
func Parse(src []byte) (prog *Program, errs ErrorList) {
	p := &parser{lx: NewLexer(src), prog: &Program{}}
	p.tok = p.lx.Next()
	p.next = p.lx.Next()

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			prog, errs = nil, p.errs
		}
	}()

	for p.tok.Kind != Eof {
		p.prog.Classes = append(p.prog.Classes, p.classDef())
	}
	return p.prog, nil
}

func (p *parser) advance() Token {
	t := p.tok
	p.tok = p.next
	p.next = p.lx.Next()
	return t
}

func (p *parser) got(k TokenKind) bool {
	if p.tok.Kind == k {
		p.advance()
		return true
	}
	return false
}

func (p *parser) want(k TokenKind) Token {
	if p.tok.Kind != k {
		p.errorExpected(describe(k))
	}
	return p.advance()
}

func (p *parser) errorExpected(what string) {
	found := "end of file"
	if p.tok.Kind != Eof {
		found = strconv.Quote(p.tok.Text)
	}
	p.errs.Add(p.tok.Loc(), "syntax error: expected %s, found %s", what, found)
	panic(bailout{})
}

func describe(k TokenKind) string {
	switch k {
	case Id:
		return "identifier"
	case LPar:
		return "'('"
	case RPar:
		return "')'"
	case LBrc:
		return "'{'"
	case RBrc:
		return "'}'"
	case LBrk:
		return "'['"
	case RBrk:
		return "']'"
	case Semi:
		return "';'"
	case OpAssign:
		return "'='"
	}
	return k.String()
}

func (p *parser) classDef() *ClassDef {
	kw := p.want(Class)
	name := p.want(Id)
	c := &ClassDef{Loc: kw.Loc(), NameLoc: name.Loc(), Name: name.Text}
	if p.got(Extends) {
		c.Parent = p.want(Id).Text
	}
	c.ID = p.prog.addDecl(c)

	p.want(LBrc)
	for p.tok.Kind != RBrc {
		if p.tok.Kind == Eof {
			p.errorExpected(describe(RBrc))
		}
		c.Fields = append(c.Fields, p.fieldDef())
	}
	c.End = p.advance().Loc()
	return c
}

func (p *parser) fieldDef() FieldDef {
	static := p.got(Static)
	typ := p.typeRef()
	name := p.want(Id)

	if p.tok.Kind != LPar {
		if static {
			p.errorExpected(describe(LPar))
		}
		p.want(Semi)
		v := &VarDef{Loc: name.Loc(), Name: name.Text, Type: typ}
		v.ID = p.prog.addDecl(v)
		return v
	}

	f := &FuncDef{Loc: name.Loc(), Name: name.Text, Static: static, Ret: typ}
	f.ID = p.prog.addDecl(f)
	p.want(LPar)
	if p.tok.Kind != RPar {
		for {
			ptyp := p.typeRef()
			pname := p.want(Id)
			v := &VarDef{Loc: pname.Loc(), Name: pname.Text, Type: ptyp}
			v.ID = p.prog.addDecl(v)
			f.Params = append(f.Params, v)
			if !p.got(Comma) {
				break
			}
		}
	}
	p.want(RPar)
	f.Body = p.block()
	return f
}

func isTypeStart(k TokenKind) bool {
	switch k {
	case Int, Bool, String, Void, Class:
		return true
	}
	return false
}

func (p *parser) typeRef() TypeRef {
	t := TypeRef{Loc: p.tok.Loc()}
	switch p.tok.Kind {
	case Int:
		t.Base = TyInt
	case Bool:
		t.Base = TyBool
	case String:
		t.Base = TyString
	case Void:
		t.Base = TyVoid
	case Class:
		p.advance()
		t.Base = TyClass
		t.Class = p.want(Id).Text
		p.arrayDims(&t)
		return t
	default:
		p.errorExpected("type")
	}
	p.advance()
	p.arrayDims(&t)
	return t
}

func (p *parser) arrayDims(t *TypeRef) {
	for p.tok.Kind == LBrk && p.next.Kind == RBrk {
		p.advance()
		p.advance()
		t.Dim++
	}
}

func (p *parser) block() *Block {
	lbrc := p.want(LBrc)
	b := &Block{Loc: lbrc.Loc()}
	for p.tok.Kind != RBrc {
		if p.tok.Kind == Eof {
			p.errorExpected(describe(RBrc))
		}
		b.Stmts = append(b.Stmts, p.stmt())
	}
	p.advance()
	return b
}

// blockOf parses a statement and wraps it in a block unless it already is one.
func (p *parser) blockOf() *Block {
	if p.tok.Kind == LBrc {
		return p.block()
	}
	s := p.stmt()
	return &Block{Loc: s.Pos(), Stmts: []Stmt{s}}
}

func (p *parser) stmt() Stmt {
	loc := p.tok.Loc()
	switch p.tok.Kind {
	case LBrc:
		return p.block()
	case KwIf:
		p.advance()
		p.want(LPar)
		s := &If{Loc: loc, Cond: p.expr()}
		p.want(RPar)
		s.Then = p.blockOf()
		if p.got(Else) {
			s.Else = p.blockOf()
		}
		return s
	case KwWhile:
		p.advance()
		p.want(LPar)
		s := &While{Loc: loc, Cond: p.expr()}
		p.want(RPar)
		s.Body = p.blockOf()
		return s
	case KwFor:
		p.advance()
		p.want(LPar)
		s := &For{Loc: loc, Init: p.simpleStmt()}
		p.want(Semi)
		s.Cond = p.expr()
		p.want(Semi)
		s.Update = p.simpleStmt()
		p.want(RPar)
		s.Body = p.blockOf()
		return s
	case KwReturn:
		p.advance()
		s := &Return{Loc: loc}
		if p.tok.Kind != Semi {
			s.X = p.expr()
		}
		p.want(Semi)
		return s
	case KwBreak:
		p.advance()
		p.want(Semi)
		return &Break{Loc: loc}
	case KwPrint:
		p.advance()
		p.want(LPar)
		s := &Print{Loc: loc, Args: p.exprList(RPar)}
		p.want(RPar)
		p.want(Semi)
		return s
	}

	s := p.simpleStmt()
	p.want(Semi)
	return s
}

// simpleStmt parses a declaration, assignment, expression or nothing; the
// terminator is left to the caller.
func (p *parser) simpleStmt() Stmt {
	loc := p.tok.Loc()
	switch {
	case p.tok.Kind == Semi || p.tok.Kind == RPar:
		return &Skip{Loc: loc}
	case isTypeStart(p.tok.Kind):
		typ := p.typeRef()
		name := p.want(Id)
		v := &VarDef{Loc: name.Loc(), Name: name.Text, Type: typ}
		v.ID = p.prog.addDecl(v)
		if p.got(OpAssign) {
			v.Init = p.expr()
		}
		return &LocalDecl{Var: v}
	}

	x := p.expr()
	if p.tok.Kind == OpAssign {
		eq := p.advance()
		return &Assign{Loc: eq.Loc(), Dst: x, Src: p.expr()}
	}
	return &ExprStmt{X: x}
}

func (p *parser) exprList(end TokenKind) []Expr {
	var list []Expr
	if p.tok.Kind == end {
		return list
	}
	for {
		list = append(list, p.expr())
		if !p.got(Comma) {
			return list
		}
	}
}

// precedence returns the binding strength of a binary operator, loosest
// first, or 0 for anything else.
func precedence(k TokenKind) int {
	switch k {
	case Or:
		return 1
	case And:
		return 2
	case Eq, Ne:
		return 3
	case Lt, Le, Gt, Ge:
		return 4
	case Plus, Minus:
		return 5
	case Mul, Div, Mod:
		return 6
	}
	return 0
}

func (p *parser) expr() Expr {
	return p.binary(1)
}

func (p *parser) binary(minPrec int) Expr {
	x := p.unary()
	for {
		prec := precedence(p.tok.Kind)
		if prec == 0 || prec < minPrec {
			return x
		}
		op := p.advance()
		y := p.binary(prec + 1)
		b := &Binary{Op: op.Kind, L: x, R: y}
		b.Loc = op.Loc()
		x = b
	}
}

func (p *parser) unary() Expr {
	if p.tok.Kind == Minus || p.tok.Kind == Not {
		op := p.advance()
		u := &Unary{Op: op.Kind, R: p.unary()}
		u.Loc = op.Loc()
		return u
	}
	return p.postfix(p.primary())
}

func (p *parser) postfix(x Expr) Expr {
	for {
		switch p.tok.Kind {
		case Dot:
			p.advance()
			name := p.want(Id)
			x = p.selectOrCall(x, name)
		case LBrk:
			lbrk := p.advance()
			s := &IndexSel{Arr: x, Idx: p.expr()}
			s.Loc = lbrk.Loc()
			p.want(RBrk)
			x = s
		default:
			return x
		}
	}
}

func (p *parser) selectOrCall(owner Expr, name Token) Expr {
	sel := &VarSel{Owner: owner, Name: name.Text, Decl: NoDecl}
	sel.Loc = name.Loc()
	if p.tok.Kind != LPar {
		return sel
	}
	p.advance()
	c := &Call{Func: sel, Args: p.exprList(RPar)}
	c.Loc = name.Loc()
	p.want(RPar)
	return c
}

func (p *parser) primary() Expr {
	tok := p.tok
	switch tok.Kind {
	case Id:
		p.advance()
		return p.selectOrCall(nil, tok)
	case IntLit:
		p.advance()
		v, err := strconv.Atoi(tok.Text)
		if err != nil {
			p.errs.Add(tok.Loc(), "integer literal %s is too large", tok.Text)
			panic(bailout{})
		}
		e := &IntLitExpr{Value: v}
		e.Loc = tok.Loc()
		return e
	case StringLit:
		p.advance()
		e := &StringLitExpr{Value: unquote(tok.Text)}
		e.Loc = tok.Loc()
		return e
	case UntermString:
		p.errs.Add(tok.Loc(), "unterminated string constant %s", tok.Text)
		panic(bailout{})
	case True, False:
		p.advance()
		e := &BoolLitExpr{Value: tok.Kind == True}
		e.Loc = tok.Loc()
		return e
	case Null:
		p.advance()
		e := &NullLit{}
		e.Loc = tok.Loc()
		return e
	case This:
		p.advance()
		e := &ThisExpr{}
		e.Loc = tok.Loc()
		return e
	case ReadInteger:
		p.advance()
		p.want(LPar)
		p.want(RPar)
		e := &ReadIntExpr{}
		e.Loc = tok.Loc()
		return e
	case ReadLine:
		p.advance()
		p.want(LPar)
		p.want(RPar)
		e := &ReadLineExpr{}
		e.Loc = tok.Loc()
		return e
	case New:
		return p.newExpr()
	case LPar:
		p.advance()
		x := p.expr()
		p.want(RPar)
		return x
	}
	p.errorExpected("expression")
	return nil
}

func (p *parser) newExpr() Expr {
	kw := p.advance()
	if p.tok.Kind == Id && p.next.Kind == LPar {
		name := p.advance()
		p.advance()
		p.want(RPar)
		e := &NewClass{Name: name.Text, NameLoc: name.Loc(), Decl: NoDecl}
		e.Loc = kw.Loc()
		return e
	}

	elem := TypeRef{Loc: p.tok.Loc()}
	switch p.tok.Kind {
	case Int:
		elem.Base = TyInt
	case Bool:
		elem.Base = TyBool
	case String:
		elem.Base = TyString
	case Id:
		elem.Base = TyClass
		elem.Class = p.tok.Text
	default:
		p.errorExpected("type")
	}
	p.advance()
	p.arrayDims(&elem)
	p.want(LBrk)
	e := &NewArray{Elem: elem, Len: p.expr()}
	e.Loc = kw.Loc()
	p.want(RBrk)
	return e
}

// unquote strips the quotes of a string literal and resolves the simple
// escapes Decaf supports. Unknown escapes keep the escaped byte.
func unquote(lit string) string {
	if len(lit) < 2 {
		return ""
	}
	body := lit[1 : len(lit)-1]
	out := make([]byte, 0, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 == len(body) {
			out = append(out, c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		default:
			out = append(out, body[i])
		}
	}
	return string(out)
}

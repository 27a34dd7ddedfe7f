package syntax

// Loc is a 1-based (line, column) source location. The zero Loc means
// "unknown".
type Loc struct {
	Line int
	Col  int
}

// DeclID indexes Program.Decls.
type DeclID int

// NoDecl marks a name that did not resolve to a declaration.
const NoDecl DeclID = -1

// Decl is anything a name can resolve to: a class, a method or a variable.
type Decl interface {
	DeclName() string
	// DeclLoc is the location of the declared name.
	DeclLoc() Loc
	DeclType() *Ty
}

// Program is the root of a parsed compilation unit.
type Program struct {
	Classes []*ClassDef
	// Decls is the declaration arena. Uses refer to entries by DeclID so
	// the tree never points back up at its own declarations.
	Decls []Decl
}

// Decl returns the declaration for id, or nil for NoDecl or out of range.
func (p *Program) Decl(id DeclID) Decl {
	if id < 0 || int(id) >= len(p.Decls) {
		return nil
	}
	return p.Decls[id]
}

func (p *Program) addDecl(d Decl) DeclID {
	p.Decls = append(p.Decls, d)
	return DeclID(len(p.Decls) - 1)
}

// TypeRef is a type as written in source.
type TypeRef struct {
	Loc   Loc
	Base  TyKind
	Class string
	Dim   int
}

// ClassDef is a class declaration. Loc is the `class` keyword, NameLoc the
// class name and End the closing brace.
type ClassDef struct {
	Loc     Loc
	NameLoc Loc
	End     Loc
	Name    string
	Parent  string
	Fields  []FieldDef
	ID      DeclID
	Ty      *Ty
}

func (c *ClassDef) DeclName() string { return c.Name }
func (c *ClassDef) DeclLoc() Loc     { return c.NameLoc }
func (c *ClassDef) DeclType() *Ty    { return c.Ty }

// FieldDef is either a *FuncDef or a *VarDef.
type FieldDef interface {
	Decl
	fieldDef()
}

// FuncDef is a method. Loc is the method name.
type FuncDef struct {
	Loc    Loc
	Name   string
	Static bool
	Ret    TypeRef
	Params []*VarDef
	Body   *Block
	ID     DeclID
	Ty     *Ty
}

func (f *FuncDef) DeclName() string { return f.Name }
func (f *FuncDef) DeclLoc() Loc     { return f.Loc }
func (f *FuncDef) DeclType() *Ty    { return f.Ty }
func (*FuncDef) fieldDef()          {}

// VarDef declares a field, parameter or local. Loc is the variable name.
type VarDef struct {
	Loc  Loc
	Name string
	Type TypeRef
	Init Expr
	ID   DeclID
	Ty   *Ty
}

func (v *VarDef) DeclName() string { return v.Name }
func (v *VarDef) DeclLoc() Loc     { return v.Loc }
func (v *VarDef) DeclType() *Ty    { return v.Ty }
func (*VarDef) fieldDef()          {}

// Stmt is implemented by every statement node.
type Stmt interface {
	Pos() Loc
	stmtNode()
}

type (
	// Assign is `Dst = Src`.
	Assign struct {
		Loc      Loc
		Dst, Src Expr
	}

	// LocalDecl wraps a local variable declaration.
	LocalDecl struct {
		Var *VarDef
	}

	// ExprStmt evaluates an expression for its effects.
	ExprStmt struct {
		X Expr
	}

	If struct {
		Loc  Loc
		Cond Expr
		Then *Block
		Else *Block
	}

	While struct {
		Loc  Loc
		Cond Expr
		Body *Block
	}

	For struct {
		Loc    Loc
		Init   Stmt
		Cond   Expr
		Update Stmt
		Body   *Block
	}

	// Return has a nil X for a bare `return;`.
	Return struct {
		Loc Loc
		X   Expr
	}

	Print struct {
		Loc  Loc
		Args []Expr
	}

	Break struct {
		Loc Loc
	}

	// Skip is the empty statement.
	Skip struct {
		Loc Loc
	}

	Block struct {
		Loc   Loc
		Stmts []Stmt
	}
)

func (s *Assign) Pos() Loc    { return s.Loc }
func (s *LocalDecl) Pos() Loc { return s.Var.Loc }
func (s *ExprStmt) Pos() Loc  { return s.X.Pos() }
func (s *If) Pos() Loc        { return s.Loc }
func (s *While) Pos() Loc     { return s.Loc }
func (s *For) Pos() Loc       { return s.Loc }
func (s *Return) Pos() Loc    { return s.Loc }
func (s *Print) Pos() Loc     { return s.Loc }
func (s *Break) Pos() Loc     { return s.Loc }
func (s *Skip) Pos() Loc      { return s.Loc }
func (s *Block) Pos() Loc     { return s.Loc }

func (*Assign) stmtNode()    {}
func (*LocalDecl) stmtNode() {}
func (*ExprStmt) stmtNode()  {}
func (*If) stmtNode()        {}
func (*While) stmtNode()     {}
func (*For) stmtNode()       {}
func (*Return) stmtNode()    {}
func (*Print) stmtNode()     {}
func (*Break) stmtNode()     {}
func (*Skip) stmtNode()      {}
func (*Block) stmtNode()     {}

// Expr is implemented by every expression node. Type returns the inferred
// type, nil until the checker has visited the node.
type Expr interface {
	Pos() Loc
	Type() *Ty
	SetType(*Ty)
	exprNode()
}

type exprBase struct {
	Loc Loc
	Ty  *Ty
}

func (e *exprBase) Pos() Loc      { return e.Loc }
func (e *exprBase) Type() *Ty     { return e.Ty }
func (e *exprBase) SetType(t *Ty) { e.Ty = t }
func (*exprBase) exprNode()       {}

type (
	// VarSel selects Name, optionally through Owner. Loc is the name.
	VarSel struct {
		exprBase
		Owner Expr
		Name  string
		Decl  DeclID
	}

	IndexSel struct {
		exprBase
		Arr, Idx Expr
	}

	// Call invokes Func, whose Decl resolves to the called method.
	Call struct {
		exprBase
		Func *VarSel
		Args []Expr
	}

	Unary struct {
		exprBase
		Op TokenKind
		R  Expr
	}

	Binary struct {
		exprBase
		Op   TokenKind
		L, R Expr
	}

	IntLitExpr struct {
		exprBase
		Value int
	}

	BoolLitExpr struct {
		exprBase
		Value bool
	}

	StringLitExpr struct {
		exprBase
		Value string
	}

	NullLit struct {
		exprBase
	}

	ThisExpr struct {
		exprBase
	}

	ReadIntExpr struct {
		exprBase
	}

	ReadLineExpr struct {
		exprBase
	}

	// NewClass is `new Name()`; Decl resolves to the class.
	NewClass struct {
		exprBase
		Name    string
		NameLoc Loc
		Decl    DeclID
	}

	NewArray struct {
		exprBase
		Elem TypeRef
		Len  Expr
	}
)

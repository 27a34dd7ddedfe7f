package syntax

// TokenKind represents the kind of a lexical token.
type TokenKind int

const (
	// Special
	Eof TokenKind = iota
	Unknown

	// Literals & identifiers
	Id
	IntLit
	StringLit
	UntermString

	// Keywords
	Void
	Int
	Bool
	String
	Class
	Extends
	Static
	New
	Null
	This
	True
	False
	KwIf
	Else
	KwWhile
	KwFor
	KwReturn
	KwBreak
	KwPrint
	ReadInteger
	ReadLine

	// Operators
	Plus
	Minus
	Mul
	Div
	Mod
	OpAssign
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	And
	Or
	Not

	// Punctuation
	LPar
	RPar
	LBrc
	RBrc
	LBrk
	RBrk
	Semi
	Comma
	Dot

	numTokenKinds
)

var kindNames = [...]string{
	Eof:          "Eof",
	Unknown:      "Unknown",
	Id:           "Id",
	IntLit:       "IntLit",
	StringLit:    "StringLit",
	UntermString: "UntermString",
	Void:         "Void",
	Int:          "Int",
	Bool:         "Bool",
	String:       "String",
	Class:        "Class",
	Extends:      "Extends",
	Static:       "Static",
	New:          "New",
	Null:         "Null",
	This:         "This",
	True:         "True",
	False:        "False",
	KwIf:         "If",
	Else:         "Else",
	KwWhile:      "While",
	KwFor:        "For",
	KwReturn:     "Return",
	KwBreak:      "Break",
	KwPrint:      "Print",
	ReadInteger:  "ReadInteger",
	ReadLine:     "ReadLine",
	Plus:         "Plus",
	Minus:        "Minus",
	Mul:          "Mul",
	Div:          "Div",
	Mod:          "Mod",
	OpAssign:     "Assign",
	Eq:           "Eq",
	Ne:           "Ne",
	Lt:           "Lt",
	Le:           "Le",
	Gt:           "Gt",
	Ge:           "Ge",
	And:          "And",
	Or:           "Or",
	Not:          "Not",
	LPar:         "LPar",
	RPar:         "RPar",
	LBrc:         "LBrc",
	RBrc:         "RBrc",
	LBrk:         "LBrk",
	RBrk:         "RBrk",
	Semi:         "Semi",
	Comma:        "Comma",
	Dot:          "Dot",
}

// String returns the token-type name, e.g. "LPar".
func (k TokenKind) String() string {
	if k >= 0 && k < numTokenKinds {
		return kindNames[k]
	}
	return "Unknown"
}

// KindByName looks up a token kind by its String() name.
func KindByName(name string) (TokenKind, bool) {
	for k := TokenKind(0); k < numTokenKinds; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return Unknown, false
}

var keywords = map[string]TokenKind{
	"void":        Void,
	"int":         Int,
	"bool":        Bool,
	"string":      String,
	"class":       Class,
	"extends":     Extends,
	"static":      Static,
	"new":         New,
	"null":        Null,
	"this":        This,
	"true":        True,
	"false":       False,
	"if":          KwIf,
	"else":        Else,
	"while":       KwWhile,
	"for":         KwFor,
	"return":      KwReturn,
	"break":       KwBreak,
	"Print":       KwPrint,
	"ReadInteger": ReadInteger,
	"ReadLine":    ReadLine,
}

// Token is a lexical token. Line and Col are 1-based; Col counts bytes.
type Token struct {
	Kind TokenKind
	Line int
	Col  int
	Text string
}

// Loc returns the token's start location.
func (t Token) Loc() Loc {
	return Loc{Line: t.Line, Col: t.Col}
}

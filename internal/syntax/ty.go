package syntax

import "strings"

// TyKind enumerates the base types of Decaf.
type TyKind int

const (
	TyInt TyKind = iota
	TyBool
	TyString
	TyVoid
	TyNull
	TyClass
	TyFunc
)

// Ty is a resolved type. A nil *Ty means "not inferred".
type Ty struct {
	Kind TyKind
	// Class names the class for TyClass.
	Class string
	// Dim is the array dimension; 0 for scalars.
	Dim int
	// Params and Ret describe TyFunc.
	Params []*Ty
	Ret    *Ty
}

var (
	IntTy    = &Ty{Kind: TyInt}
	BoolTy   = &Ty{Kind: TyBool}
	StringTy = &Ty{Kind: TyString}
	VoidTy   = &Ty{Kind: TyVoid}
	NullTy   = &Ty{Kind: TyNull}
)

// UnknownTy is how a missing type is rendered.
const UnknownTy = "<unknown>"

// ClassTy returns the object type of the named class.
func ClassTy(name string) *Ty {
	return &Ty{Kind: TyClass, Class: name}
}

// ArrayOf returns t with one more array dimension.
func ArrayOf(t *Ty) *Ty {
	cp := *t
	cp.Dim++
	return &cp
}

// Elem returns the element type of an array type.
func (t *Ty) Elem() *Ty {
	cp := *t
	cp.Dim--
	return &cp
}

// IsArray reports whether t is an array type.
func (t *Ty) IsArray() bool {
	return t != nil && t.Dim > 0
}

// Is reports whether t is the scalar type of kind k.
func (t *Ty) Is(k TyKind) bool {
	return t != nil && t.Dim == 0 && t.Kind == k
}

// Equal reports structural equality.
func (t *Ty) Equal(o *Ty) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind || t.Dim != o.Dim || t.Class != o.Class {
		return false
	}
	if t.Kind != TyFunc {
		return true
	}
	if len(t.Params) != len(o.Params) || !t.Ret.Equal(o.Ret) {
		return false
	}
	for i := range t.Params {
		if !t.Params[i].Equal(o.Params[i]) {
			return false
		}
	}
	return true
}

func (t *Ty) String() string {
	if t == nil {
		return UnknownTy
	}
	var b strings.Builder
	switch t.Kind {
	case TyInt:
		b.WriteString("int")
	case TyBool:
		b.WriteString("bool")
	case TyString:
		b.WriteString("string")
	case TyVoid:
		b.WriteString("void")
	case TyNull:
		b.WriteString("null")
	case TyClass:
		b.WriteString("class ")
		b.WriteString(t.Class)
	case TyFunc:
		b.WriteByte('(')
		for i, p := range t.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteString(") -> ")
		b.WriteString(t.Ret.String())
	}
	for i := 0; i < t.Dim; i++ {
		b.WriteString("[]")
	}
	return b.String()
}

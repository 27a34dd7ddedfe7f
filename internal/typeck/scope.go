package typeck

import "github.com/woxQAQ/decaf-lsp/internal/syntax"

// scope maps names to declarations. Class scopes chain to their parent
// class; local scopes chain to the enclosing block.
type scope struct {
	names  map[string]syntax.Decl
	parent *scope
}

func newScope(parent *scope) *scope {
	return &scope{names: make(map[string]syntax.Decl), parent: parent}
}

func (s *scope) lookup(name string) (syntax.Decl, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if d, ok := cur.names[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// declare adds d and returns the earlier declaration when the name is
// already taken in this very scope.
func (s *scope) declare(d syntax.Decl) (syntax.Decl, bool) {
	if prev, ok := s.names[d.DeclName()]; ok {
		return prev, false
	}
	s.names[d.DeclName()] = d
	return nil, true
}

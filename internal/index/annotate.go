package index

import (
	"fmt"

	"github.com/woxQAQ/decaf-lsp/internal/position"
	"github.com/woxQAQ/decaf-lsp/internal/syntax"
	"github.com/woxQAQ/decaf-lsp/pkg/protocol"
)

// SkipSet holds the token kinds the annotator does not describe.
type SkipSet map[syntax.TokenKind]struct{}

// DefaultSkipTokens are skipped unless configured otherwise: identifiers get
// richer hovers from the AST, and parens and semicolons say nothing useful.
var DefaultSkipTokens = []string{"Id", "LPar", "RPar", "Semi"}

// UnknownTokenKindError reports a skip-set entry that names no token kind.
type UnknownTokenKindError struct {
	Name string
}

func (e *UnknownTokenKindError) Error() string {
	return fmt.Sprintf("unknown token kind '%s'", e.Name)
}

// ParseSkipSet builds a SkipSet from token-type names such as "LPar".
func ParseSkipSet(names []string) (SkipSet, error) {
	set := make(SkipSet, len(names))
	for _, name := range names {
		k, ok := syntax.KindByName(name)
		if !ok {
			return nil, &UnknownTokenKindError{Name: name}
		}
		set[k] = struct{}{}
	}
	return set, nil
}

// DefaultSkipSet returns the SkipSet for DefaultSkipTokens.
func DefaultSkipSet() SkipSet {
	set, _ := ParseSkipSet(DefaultSkipTokens)
	return set
}

// Has reports whether k is skipped.
func (s SkipSet) Has(k syntax.TokenKind) bool {
	_, ok := s[k]
	return ok
}

// AnnotateTokens re-lexes src and returns one hover per token not in skip.
// It runs on raw text, so it produces results even when parsing fails.
func AnnotateTokens(src []byte, skip SkipSet) []protocol.Hover {
	var hovers []protocol.Hover
	lx := syntax.NewLexer(src)
	for {
		tok := lx.Next()
		if tok.Kind == syntax.Eof {
			return hovers
		}
		if skip.Has(tok.Kind) {
			continue
		}
		hovers = append(hovers, protocol.Hover{
			Range:    position.ToTokenRange(tok),
			Contents: tokenLabel(tok.Kind),
		})
	}
}

func tokenLabel(k syntax.TokenKind) string {
	switch k {
	case syntax.IntLit:
		return "Integer Literal"
	case syntax.StringLit:
		return "String Literal"
	case syntax.UntermString:
		return "Unterminated String Literal"
	default:
		return k.String()
	}
}

package index

import (
	"strings"

	"github.com/woxQAQ/decaf-lsp/internal/syntax"
	"github.com/woxQAQ/decaf-lsp/pkg/protocol"
)

// Document is an immutable snapshot of everything known about one open
// file. A new snapshot replaces the old one on every update; readers holding
// a pointer keep a consistent view.
type Document struct {
	URI         string
	Text        string
	Symbols     []protocol.SymbolInformation
	Hovers      []protocol.Hover
	Definitions []protocol.DefinitionLink
}

// Hover returns the most specific hover at p.
func (d *Document) Hover(p protocol.Position) (protocol.Hover, bool) {
	return HoverAt(d.Hovers, p)
}

// Definition returns the declaration range of the use at p.
func (d *Document) Definition(p protocol.Position) (protocol.Range, bool) {
	link, ok := DefinitionAt(d.Definitions, p)
	if !ok {
		return protocol.Range{}, false
	}
	return link.Decl, true
}

// WithoutSymbols returns a copy of d with its symbol list cleared.
func (d *Document) WithoutSymbols() *Document {
	cp := *d
	cp.Symbols = nil
	return &cp
}

// IdentifierBefore returns the identifier characters immediately left of p,
// which is the partial word a completion request is made for.
func (d *Document) IdentifierBefore(p protocol.Position) string {
	line := lineAt(d.Text, p.Line)
	end := min(max(p.Character, 0), len(line))
	start := end
	for start > 0 && syntax.IsIdentByte(line[start-1]) {
		start--
	}
	return line[start:end]
}

func lineAt(text string, n int) string {
	if n < 0 {
		return ""
	}
	for i := 0; i < n; i++ {
		nl := strings.IndexByte(text, '\n')
		if nl < 0 {
			return ""
		}
		text = text[nl+1:]
	}
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[:nl]
	}
	return strings.TrimSuffix(text, "\r")
}

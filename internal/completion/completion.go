// Package completion offers the fixed set of built-in Decaf names as
// completion candidates.
package completion

import (
	"strings"

	"go.uber.org/zap"

	"github.com/woxQAQ/decaf-lsp/pkg/protocol"
)

// Set is an immutable, ordered list of completion candidates.
type Set struct {
	items []protocol.CompletionItem
}

// Load builds a Set from the builtins file at path, or from the embedded
// manifest when path is empty.
func Load(path string, logger *zap.Logger) (*Set, error) {
	logger = logger.With(zap.String("component", "completion"))

	var m *Manifest
	var err error
	if path == "" {
		m, err = DefaultManifest()
	} else {
		m, err = ParseManifest(path)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Builtins loaded",
		zap.String("path", m.Path()),
		zap.Int("count", len(m.Builtins)),
	)
	return NewSet(m), nil
}

// NewSet converts a validated manifest into completion items.
func NewSet(m *Manifest) *Set {
	s := &Set{items: make([]protocol.CompletionItem, 0, len(m.Builtins))}
	for _, b := range m.Builtins {
		s.items = append(s.items, toItem(b))
	}
	return s
}

func toItem(b Builtin) protocol.CompletionItem {
	insert := b.Insert
	if insert == "" {
		insert = b.Label
	}
	format := protocol.InsertTextFormatPlainText
	if strings.Contains(insert, "$") {
		format = protocol.InsertTextFormatSnippet
	}
	return protocol.CompletionItem{
		Label:            b.Label,
		Kind:             itemKind(b.Kind),
		Detail:           b.Detail,
		InsertText:       insert,
		InsertTextFormat: format,
	}
}

func itemKind(kind string) protocol.CompletionItemKind {
	switch kind {
	case "function":
		return protocol.CompletionItemKindFunction
	case "class":
		return protocol.CompletionItemKindClass
	case "snippet":
		return protocol.CompletionItemKindSnippet
	default:
		return protocol.CompletionItemKindKeyword
	}
}

// Complete returns the candidates whose label starts with prefix, in
// manifest order. Matching is case-sensitive; an empty prefix matches
// everything.
func (s *Set) Complete(prefix string) []protocol.CompletionItem {
	items := make([]protocol.CompletionItem, 0)
	for _, it := range s.items {
		if strings.HasPrefix(it.Label, prefix) {
			items = append(items, it)
		}
	}
	return items
}

// Len returns the number of candidates.
func (s *Set) Len() int {
	return len(s.items)
}

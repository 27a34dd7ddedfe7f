package index

import (
	"testing"

	"github.com/woxQAQ/decaf-lsp/pkg/protocol"
)

func TestDocument_IdentifierBefore(t *testing.T) {
	doc := &Document{Text: "class Main {\n    void main() {\n        Pri\n\r\n    }\n}"}

	tests := []struct {
		name string
		at   protocol.Position
		want string
	}{
		{"partial word", pos(2, 11), "Pri"},
		{"middle of word", pos(2, 10), "Pr"},
		{"after whitespace", pos(2, 4), ""},
		{"start of line", pos(0, 0), ""},
		{"after class name", pos(0, 10), "Main"},
		{"past end of line", pos(2, 40), "Pri"},
		{"crlf line", pos(3, 1), ""},
		{"past last line", pos(9, 3), ""},
		{"negative", pos(-1, 0), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := doc.IdentifierBefore(tt.at); got != tt.want {
				t.Errorf("IdentifierBefore(%v) = %q, want %q", tt.at, got, tt.want)
			}
		})
	}
}

func TestDocument_WithoutSymbols(t *testing.T) {
	doc := &Document{
		URI:         testURI,
		Text:        "x",
		Symbols:     []protocol.SymbolInformation{{Name: "Main"}},
		Hovers:      []protocol.Hover{{Contents: "Main"}},
		Definitions: []protocol.DefinitionLink{{}},
	}
	closed := doc.WithoutSymbols()
	if len(closed.Symbols) != 0 {
		t.Errorf("symbols = %v, want none", closed.Symbols)
	}
	if len(closed.Hovers) != 1 || len(closed.Definitions) != 1 {
		t.Error("hovers and definitions should be retained")
	}
	if len(doc.Symbols) != 1 {
		t.Error("previous snapshot must not change")
	}
}

func TestDocument_DefinitionMiss(t *testing.T) {
	doc := &Document{}
	if _, ok := doc.Definition(pos(0, 0)); ok {
		t.Error("empty document should have no definitions")
	}
	if _, ok := doc.Hover(pos(0, 0)); ok {
		t.Error("empty document should have no hovers")
	}
}

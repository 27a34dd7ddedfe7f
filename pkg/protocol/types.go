package protocol

// Core LSP types for the Decaf language server
// This package defines shared types used across internal packages

// Position represents a 0-based position in a text document
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Less reports whether p sorts before other by (line, character).
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

// LessEq reports whether p sorts before or at other.
func (p Position) LessEq(other Position) bool {
	return !other.Less(p)
}

// Range represents a range in a text document
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Contains reports whether p lies within r. Both ends are inclusive, so a
// zero-width range matches a query at exactly its own position.
func (r Range) Contains(p Position) bool {
	return r.Start.LessEq(p) && p.LessEq(r.End)
}

// Within reports whether r is fully nested inside outer.
func (r Range) Within(outer Range) bool {
	return outer.Start.LessEq(r.Start) && r.End.LessEq(outer.End)
}

// Location is a range inside a specific document
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// TextEdit represents a text edit
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// Hover is a hover annotation: a range tagged with displayable text
type Hover struct {
	Range    Range  `json:"range"`
	Contents string `json:"contents"`
}

// DefinitionLink maps a use-site range to the range of its declaration
type DefinitionLink struct {
	Use  Range `json:"use"`
	Decl Range `json:"decl"`
}

// SymbolKind mirrors the LSP SymbolKind numbering
type SymbolKind int

const (
	SymbolKindClass  SymbolKind = 5
	SymbolKindMethod SymbolKind = 6
	SymbolKindField  SymbolKind = 8
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolKindClass:
		return "Class"
	case SymbolKindMethod:
		return "Method"
	case SymbolKindField:
		return "Field"
	default:
		return "Unknown"
	}
}

// SymbolInformation is a named, kinded declaration record
type SymbolInformation struct {
	Name     string     `json:"name"`
	Kind     SymbolKind `json:"kind"`
	Location Location   `json:"location"`
	// ContainerName is empty for top-level symbols (classes)
	ContainerName string `json:"containerName,omitempty"`
}

// DiagnosticSeverity mirrors the LSP severity numbering
type DiagnosticSeverity int

const (
	DiagnosticSeverityError DiagnosticSeverity = iota + 1
	DiagnosticSeverityWarning
	DiagnosticSeverityInformation
	DiagnosticSeverityHint
)

// Diagnostic is a parse or type error surfaced to the client
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity"`
	Source   string             `json:"source,omitempty"`
	Message  string             `json:"message"`
}

// CompletionItemKind represents the kind of completion item
type CompletionItemKind int

const (
	CompletionItemKindKeyword CompletionItemKind = iota + 1
	CompletionItemKindFunction
	CompletionItemKindClass
	CompletionItemKindSnippet
)

// InsertTextFormat tells the client how to interpret InsertText
type InsertTextFormat int

const (
	InsertTextFormatPlainText InsertTextFormat = 1
	InsertTextFormatSnippet   InsertTextFormat = 2
)

// CompletionItem represents a completion item
type CompletionItem struct {
	Label            string             `json:"label"`
	Kind             CompletionItemKind `json:"kind"`
	Detail           string             `json:"detail,omitempty"`
	Documentation    string             `json:"documentation,omitempty"`
	InsertText       string             `json:"insertText,omitempty"`
	InsertTextFormat InsertTextFormat   `json:"insertTextFormat,omitempty"`
	TextEdit         *TextEdit          `json:"textEdit,omitempty"`
	SortText         string             `json:"sortText,omitempty"`
	FilterText       string             `json:"filterText,omitempty"`
}

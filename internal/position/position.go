// Package position converts between the 1-based (line, column) locations
// produced by the Decaf frontend and the 0-based (line, character)
// positions used on the protocol side.
package position

import (
	"github.com/woxQAQ/decaf-lsp/internal/syntax"
	"github.com/woxQAQ/decaf-lsp/pkg/protocol"
)

// ToProtocol converts a source location to a protocol position. A location
// with a zero (or negative) line or column is the parser's "unknown"
// sentinel and maps to the zero position instead of underflowing.
func ToProtocol(loc syntax.Loc) protocol.Position {
	if loc.Line <= 0 || loc.Col <= 0 {
		return protocol.Position{}
	}
	return protocol.Position{Line: loc.Line - 1, Character: loc.Col - 1}
}

// ToRange returns the zero-width range at loc.
func ToRange(loc syntax.Loc) protocol.Range {
	p := ToProtocol(loc)
	return protocol.Range{Start: p, End: p}
}

// ToRangeSpan returns the range from start to end.
func ToRangeSpan(start, end syntax.Loc) protocol.Range {
	return protocol.Range{Start: ToProtocol(start), End: ToProtocol(end)}
}

// ToNamedRange returns the range covering name written at loc. The end is
// len(name) bytes after the start on the same line; Decaf identifiers are
// ASCII, so bytes and characters coincide.
func ToNamedRange(loc syntax.Loc, name string) protocol.Range {
	start := ToProtocol(loc)
	end := start
	end.Character += len(name)
	return protocol.Range{Start: start, End: end}
}

// ToTokenRange returns the range of a lexed token. The end column is
//
//	Col + len(Text) - 2
//
// in 0-based terms: the 1-based start column minus one, plus the text
// length, minus one more so the end lands on the token's last character
// rather than one past it. A one-character token therefore yields a
// zero-width range at its own position. Empty tokens clamp to zero width.
func ToTokenRange(tok syntax.Token) protocol.Range {
	start := ToProtocol(tok.Loc())
	end := start
	if n := len(tok.Text); n > 1 {
		end.Character = start.Character + n - 1
	}
	return protocol.Range{Start: start, End: end}
}

package index

import "github.com/woxQAQ/decaf-lsp/pkg/protocol"

// Lookup returns the most specific item whose range contains p.
//
// Items are scanned once in order. The first containing item becomes the
// best match; a later containing item replaces it only when its range lies
// within the current best's range. Among overlapping ranges that do not
// nest, the earliest item therefore wins, and among identical ranges the
// latest does. Range bounds are inclusive on both ends, so a zero-width
// range matches exactly its own position.
func Lookup[T any](items []T, p protocol.Position, span func(T) protocol.Range) (T, bool) {
	var best T
	var bestRange protocol.Range
	found := false
	for _, it := range items {
		r := span(it)
		if !r.Contains(p) {
			continue
		}
		if !found || r.Within(bestRange) {
			best, bestRange, found = it, r, true
		}
	}
	return best, found
}

// HoverAt returns the most specific hover at p.
func HoverAt(hovers []protocol.Hover, p protocol.Position) (protocol.Hover, bool) {
	return Lookup(hovers, p, func(h protocol.Hover) protocol.Range { return h.Range })
}

// DefinitionAt returns the definition link whose use range is the most
// specific one containing p.
func DefinitionAt(links []protocol.DefinitionLink, p protocol.Position) (protocol.DefinitionLink, bool) {
	return Lookup(links, p, func(l protocol.DefinitionLink) protocol.Range { return l.Use })
}

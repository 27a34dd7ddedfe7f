package protocol

import "testing"

func TestCompletionItemKind(t *testing.T) {
	kinds := []CompletionItemKind{
		CompletionItemKindKeyword,
		CompletionItemKindFunction,
		CompletionItemKindClass,
		CompletionItemKindSnippet,
	}

	for i, kind := range kinds {
		if kind != CompletionItemKind(i+1) {
			t.Errorf("Kind mismatch: got %d, want %d", kind, i+1)
		}
	}
}

func TestPositionOrdering(t *testing.T) {
	tests := []struct {
		a, b Position
		less bool
	}{
		{Position{0, 0}, Position{0, 1}, true},
		{Position{0, 9}, Position{1, 0}, true},
		{Position{1, 0}, Position{0, 9}, false},
		{Position{2, 3}, Position{2, 3}, false},
	}

	for _, tt := range tests {
		if got := tt.a.Less(tt.b); got != tt.less {
			t.Errorf("%v.Less(%v) = %v, want %v", tt.a, tt.b, got, tt.less)
		}
	}

	if !(Position{2, 3}).LessEq(Position{2, 3}) {
		t.Error("LessEq should hold for equal positions")
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{
		Start: Position{Line: 1, Character: 4},
		End:   Position{Line: 3, Character: 2},
	}

	inside := []Position{{1, 4}, {2, 0}, {2, 100}, {3, 2}}
	for _, p := range inside {
		if !r.Contains(p) {
			t.Errorf("expected %v to contain %v", r, p)
		}
	}

	outside := []Position{{1, 3}, {0, 10}, {3, 3}, {4, 0}}
	for _, p := range outside {
		if r.Contains(p) {
			t.Errorf("expected %v not to contain %v", r, p)
		}
	}
}

func TestRangeContainsZeroWidth(t *testing.T) {
	p := Position{Line: 5, Character: 7}
	r := Range{Start: p, End: p}
	if !r.Contains(p) {
		t.Error("zero-width range should contain its own position")
	}
}

func TestRangeWithin(t *testing.T) {
	outer := Range{Start: Position{0, 0}, End: Position{9, 0}}
	inner := Range{Start: Position{2, 0}, End: Position{3, 5}}
	crossing := Range{Start: Position{8, 0}, End: Position{10, 0}}

	if !inner.Within(outer) {
		t.Error("inner should be within outer")
	}
	if outer.Within(inner) {
		t.Error("outer should not be within inner")
	}
	if crossing.Within(outer) {
		t.Error("crossing range should not be within outer")
	}
	if !outer.Within(outer) {
		t.Error("a range should be within itself")
	}
}

func TestSymbolKindString(t *testing.T) {
	if SymbolKindClass.String() != "Class" {
		t.Errorf("got %s, want Class", SymbolKindClass)
	}
	if SymbolKindMethod.String() != "Method" {
		t.Errorf("got %s, want Method", SymbolKindMethod)
	}
	if SymbolKind(99).String() != "Unknown" {
		t.Errorf("got %s, want Unknown", SymbolKind(99))
	}
}

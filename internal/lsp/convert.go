package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	types "github.com/woxQAQ/decaf-lsp/pkg/protocol"
)

func fromPosition(p protocol.Position) types.Position {
	return types.Position{Line: int(p.Line), Character: int(p.Character)}
}

func toPosition(p types.Position) protocol.Position {
	return protocol.Position{
		Line:      protocol.UInteger(max(p.Line, 0)),
		Character: protocol.UInteger(max(p.Character, 0)),
	}
}

func toRange(r types.Range) protocol.Range {
	return protocol.Range{Start: toPosition(r.Start), End: toPosition(r.End)}
}

func toLocation(l types.Location) protocol.Location {
	return protocol.Location{URI: l.URI, Range: toRange(l.Range)}
}

func toSymbols(symbols []types.SymbolInformation) []protocol.SymbolInformation {
	out := make([]protocol.SymbolInformation, 0, len(symbols))
	for _, sym := range symbols {
		si := protocol.SymbolInformation{
			Name:     sym.Name,
			Kind:     protocol.SymbolKind(sym.Kind),
			Location: toLocation(sym.Location),
		}
		if sym.ContainerName != "" {
			container := sym.ContainerName
			si.ContainerName = &container
		}
		out = append(out, si)
	}
	return out
}

func toDiagnostics(diags []types.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	for _, d := range diags {
		severity := protocol.DiagnosticSeverity(d.Severity)
		pd := protocol.Diagnostic{
			Range:    toRange(d.Range),
			Severity: &severity,
			Message:  d.Message,
		}
		if d.Source != "" {
			source := d.Source
			pd.Source = &source
		}
		out = append(out, pd)
	}
	return out
}

func toCompletionItems(items []types.CompletionItem) []protocol.CompletionItem {
	out := make([]protocol.CompletionItem, 0, len(items))
	for _, it := range items {
		kind := toCompletionKind(it.Kind)
		format := protocol.InsertTextFormat(it.InsertTextFormat)
		insert := it.InsertText
		ci := protocol.CompletionItem{
			Label:            it.Label,
			Kind:             &kind,
			InsertText:       &insert,
			InsertTextFormat: &format,
		}
		if it.Detail != "" {
			detail := it.Detail
			ci.Detail = &detail
		}
		out = append(out, ci)
	}
	return out
}

func toCompletionKind(k types.CompletionItemKind) protocol.CompletionItemKind {
	switch k {
	case types.CompletionItemKindFunction:
		return protocol.CompletionItemKindFunction
	case types.CompletionItemKindClass:
		return protocol.CompletionItemKindClass
	case types.CompletionItemKindSnippet:
		return protocol.CompletionItemKindSnippet
	default:
		return protocol.CompletionItemKindKeyword
	}
}

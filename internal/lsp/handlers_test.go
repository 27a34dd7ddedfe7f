package lsp

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.uber.org/zap/zaptest"

	"github.com/woxQAQ/decaf-lsp/internal/config"
)

const testURI = "file:///work/main.decaf"

type notification struct {
	method string
	params any
}

func newTestServer(t *testing.T) (*Server, *glsp.Context, *[]notification) {
	t.Helper()

	cfg, err := config.LoadServerConfig("")
	if err != nil {
		t.Fatalf("LoadServerConfig() failed: %v", err)
	}
	s, err := NewServer(context.Background(), cfg, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewServer() failed: %v", err)
	}

	var sent []notification
	ctx := &glsp.Context{
		Notify: func(method string, params any) {
			sent = append(sent, notification{method: method, params: params})
		},
	}
	return s, ctx, &sent
}

func open(t *testing.T, s *Server, ctx *glsp.Context, text string) {
	t.Helper()
	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: testURI, LanguageID: "decaf", Text: text},
	})
	if err != nil {
		t.Fatalf("didOpen failed: %v", err)
	}
}

func lastDiagnostics(t *testing.T, sent []notification) protocol.PublishDiagnosticsParams {
	t.Helper()
	if len(sent) == 0 {
		t.Fatal("no notifications were sent")
	}
	n := sent[len(sent)-1]
	if n.method != protocol.ServerTextDocumentPublishDiagnostics {
		t.Fatalf("last notification = %s", n.method)
	}
	params, ok := n.params.(protocol.PublishDiagnosticsParams)
	if !ok {
		t.Fatalf("unexpected params type %T", n.params)
	}
	return params
}

func at(line, char uint32) protocol.TextDocumentPositionParams {
	return protocol.TextDocumentPositionParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Position:     protocol.Position{Line: line, Character: char},
	}
}

func TestInitialize(t *testing.T) {
	s, ctx, _ := newTestServer(t)

	res, err := s.initialize(ctx, &protocol.InitializeParams{})
	if err != nil {
		t.Fatalf("initialize failed: %v", err)
	}
	result, ok := res.(protocol.InitializeResult)
	if !ok {
		t.Fatalf("unexpected result type %T", res)
	}
	if result.ServerInfo == nil || result.ServerInfo.Name != "decaf-lsp" {
		t.Errorf("server info = %+v", result.ServerInfo)
	}
	if result.ServerInfo.Version == nil || *result.ServerInfo.Version != Version {
		t.Errorf("server version = %v, want %s", result.ServerInfo.Version, Version)
	}

	sync, ok := result.Capabilities.TextDocumentSync.(*protocol.TextDocumentSyncOptions)
	if !ok {
		t.Fatalf("unexpected sync options type %T", result.Capabilities.TextDocumentSync)
	}
	if sync.Change == nil || *sync.Change != protocol.TextDocumentSyncKindFull {
		t.Errorf("sync kind = %v, want full", sync.Change)
	}
	if result.Capabilities.HoverProvider == nil {
		t.Error("hover capability not advertised")
	}
	if result.Capabilities.DefinitionProvider == nil {
		t.Error("definition capability not advertised")
	}
	if result.Capabilities.CompletionProvider == nil {
		t.Error("completion capability not advertised")
	}
}

func TestDidOpen_PublishesDiagnostics(t *testing.T) {
	s, ctx, sent := newTestServer(t)

	open(t, s, ctx, "class Main {")
	params := lastDiagnostics(t, *sent)
	if params.URI != testURI {
		t.Errorf("diagnostics URI = %s", params.URI)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(params.Diagnostics))
	}
	d := params.Diagnostics[0]
	if d.Range.Start != (protocol.Position{Line: 0, Character: 12}) {
		t.Errorf("diagnostic start = %+v", d.Range.Start)
	}
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("severity = %v, want error", d.Severity)
	}
	if d.Source == nil || *d.Source != "decaf" {
		t.Errorf("source = %v, want decaf", d.Source)
	}
}

func TestDidChange_CleanTextClearsDiagnostics(t *testing.T) {
	s, ctx, sent := newTestServer(t)
	open(t, s, ctx, "class Main {")

	err := s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "class Main { }"},
		},
	})
	if err != nil {
		t.Fatalf("didChange failed: %v", err)
	}

	params := lastDiagnostics(t, *sent)
	if params.Diagnostics == nil || len(params.Diagnostics) != 0 {
		t.Errorf("expected an empty diagnostics list, got %v", params.Diagnostics)
	}
}

func TestDidChange_RejectsIncremental(t *testing.T) {
	s, ctx, _ := newTestServer(t)
	open(t, s, ctx, "class Main { }")

	err := s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{},
				Text:  "x",
			},
		},
	})
	if err == nil {
		t.Fatal("expected an error for a ranged change")
	}
}

func TestHoverAndDefinition(t *testing.T) {
	s, ctx, _ := newTestServer(t)
	open(t, s, ctx, "class Main { void main() { int x; x = x + 1; } }")

	hover, err := s.textDocumentHover(ctx, &protocol.HoverParams{TextDocumentPositionParams: at(0, 34)})
	if err != nil {
		t.Fatalf("hover failed: %v", err)
	}
	if hover == nil {
		t.Fatal("expected a hover")
	}
	content, ok := hover.Contents.(protocol.MarkupContent)
	if !ok || content.Value != "x: int" {
		t.Errorf("hover contents = %+v", hover.Contents)
	}

	def, err := s.textDocumentDefinition(ctx, &protocol.DefinitionParams{TextDocumentPositionParams: at(0, 34)})
	if err != nil {
		t.Fatalf("definition failed: %v", err)
	}
	want := protocol.Location{
		URI: testURI,
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 31},
			End:   protocol.Position{Line: 0, Character: 32},
		},
	}
	if diff := cmp.Diff(want, def); diff != "" {
		t.Errorf("definition mismatch (-want +got):\n%s", diff)
	}
}

func TestHover_Miss(t *testing.T) {
	s, ctx, _ := newTestServer(t)

	hover, err := s.textDocumentHover(ctx, &protocol.HoverParams{TextDocumentPositionParams: at(0, 0)})
	if err != nil || hover != nil {
		t.Errorf("hover on an unknown document = %v, %v", hover, err)
	}

	def, err := s.textDocumentDefinition(ctx, &protocol.DefinitionParams{TextDocumentPositionParams: at(0, 0)})
	if err != nil || def != nil {
		t.Errorf("definition on an unknown document = %v, %v", def, err)
	}
}

func TestDocumentSymbol(t *testing.T) {
	s, ctx, _ := newTestServer(t)
	open(t, s, ctx, "class Main { void main() { } }")

	res, err := s.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	if err != nil {
		t.Fatalf("documentSymbol failed: %v", err)
	}
	symbols, ok := res.([]protocol.SymbolInformation)
	if !ok {
		t.Fatalf("unexpected result type %T", res)
	}
	if len(symbols) != 2 {
		t.Fatalf("expected two symbols, got %d", len(symbols))
	}
	if symbols[0].Name != "Main" || symbols[0].Kind != protocol.SymbolKindClass {
		t.Errorf("first symbol = %+v", symbols[0])
	}
	if symbols[0].ContainerName != nil {
		t.Errorf("class container = %q, want none", *symbols[0].ContainerName)
	}
	if symbols[1].Name != "main" || symbols[1].Kind != protocol.SymbolKindMethod {
		t.Errorf("second symbol = %+v", symbols[1])
	}
	if symbols[1].ContainerName == nil || *symbols[1].ContainerName != "Main" {
		t.Errorf("method container = %v, want Main", symbols[1].ContainerName)
	}
}

func TestWorkspaceSymbol(t *testing.T) {
	s, ctx, _ := newTestServer(t)
	open(t, s, ctx, "class Main { void main() { } }")

	symbols, err := s.workspaceSymbol(ctx, &protocol.WorkspaceSymbolParams{Query: "mai"})
	if err != nil {
		t.Fatalf("workspaceSymbol failed: %v", err)
	}
	var names []string
	for _, sym := range symbols {
		names = append(names, sym.Name)
	}
	if diff := cmp.Diff([]string{"Main", "main"}, names); diff != "" {
		t.Errorf("workspace symbols mismatch (-want +got):\n%s", diff)
	}
}

func TestCompletion(t *testing.T) {
	s, ctx, _ := newTestServer(t)
	open(t, s, ctx, "class Main {\n    void main() {\n        Pri\n    }\n}")

	res, err := s.textDocumentCompletion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: at(2, 11),
	})
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	items, ok := res.([]protocol.CompletionItem)
	if !ok {
		t.Fatalf("unexpected result type %T", res)
	}
	if len(items) != 1 || items[0].Label != "Print" {
		t.Fatalf("items = %+v", items)
	}
	if items[0].InsertTextFormat == nil || *items[0].InsertTextFormat != protocol.InsertTextFormatSnippet {
		t.Errorf("insert format = %v, want snippet", items[0].InsertTextFormat)
	}
	if items[0].Kind == nil || *items[0].Kind != protocol.CompletionItemKindFunction {
		t.Errorf("kind = %v, want function", items[0].Kind)
	}
}

func TestDidClose(t *testing.T) {
	s, ctx, sent := newTestServer(t)
	open(t, s, ctx, "class Main { void main() { } }")

	err := s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	})
	if err != nil {
		t.Fatalf("didClose failed: %v", err)
	}

	params := lastDiagnostics(t, *sent)
	if len(params.Diagnostics) != 0 {
		t.Errorf("close should clear diagnostics, got %v", params.Diagnostics)
	}
	if got := s.Store().DocumentSymbols(testURI); len(got) != 0 {
		t.Errorf("symbols after close = %v", got)
	}
}

func TestCompletion_UnknownDocument(t *testing.T) {
	s, ctx, _ := newTestServer(t)

	res, err := s.textDocumentCompletion(ctx, &protocol.CompletionParams{
		TextDocumentPositionParams: at(0, 0),
	})
	if err != nil {
		t.Fatalf("completion failed: %v", err)
	}
	items, ok := res.([]protocol.CompletionItem)
	if !ok {
		t.Fatalf("unexpected result type %T", res)
	}
	// No text means no prefix, so every builtin is offered.
	if len(items) == 0 {
		t.Error("expected the full builtin set for an unknown document")
	}
}

func TestServer_Close(t *testing.T) {
	s, ctx, _ := newTestServer(t)
	open(t, s, ctx, "class Main { }")

	if err := s.Close(context.Background()); err != nil {
		t.Errorf("Close() failed: %v", err)
	}
	if diff := cmp.Diff([]string{testURI}, s.Store().URIs()); diff != "" {
		t.Errorf("URIs mismatch (-want +got):\n%s", diff)
	}
}

package lsp

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.uber.org/zap"

	types "github.com/woxQAQ/decaf-lsp/pkg/protocol"
)

func (s *Server) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	syncKind := protocol.TextDocumentSyncKindFull
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}

	version := Version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    s.cfg.Server.Name,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(
	context *glsp.Context,
	params *protocol.InitializedParams,
) error {
	s.logger.Info("Client initialized")
	return nil
}

func (s *Server) shutdown(context *glsp.Context) error {
	s.logger.Info("Client requested shutdown")
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (s *Server) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	s.logger.Debug("Trace set", zap.String("value", string(params.Value)))
	return nil
}

func (s *Server) publishDiagnostics(context *glsp.Context, uri string, diags []types.Diagnostic) {
	context.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: toDiagnostics(diags),
	})
}

func (s *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	s.logger.Debug("Document opened", zap.String("uri", uri))

	diags := s.store.Update(uri, params.TextDocument.Text)
	s.publishDiagnostics(context, uri, diags)
	return nil
}

func (s *Server) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	if len(params.ContentChanges) == 0 {
		return nil
	}

	// Full sync: the last change carries the whole document.
	var text string
	switch change := params.ContentChanges[len(params.ContentChanges)-1].(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		text = change.Text
	case protocol.TextDocumentContentChangeEvent:
		return fmt.Errorf("incremental change for %s is not supported", uri)
	default:
		return fmt.Errorf("unexpected change event type %T", change)
	}

	diags := s.store.Update(uri, text)
	s.publishDiagnostics(context, uri, diags)
	return nil
}

func (s *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	uri := params.TextDocument.URI
	s.store.Close(uri)
	s.publishDiagnostics(context, uri, nil)
	return nil
}

func (s *Server) textDocumentHover(
	context *glsp.Context,
	params *protocol.HoverParams,
) (*protocol.Hover, error) {
	h, ok := s.store.Hover(params.TextDocument.URI, fromPosition(params.Position))
	if !ok {
		return nil, nil
	}
	r := toRange(h.Range)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: h.Contents,
		},
		Range: &r,
	}, nil
}

func (s *Server) textDocumentDefinition(
	context *glsp.Context,
	params *protocol.DefinitionParams,
) (any, error) {
	loc, ok := s.store.Definition(params.TextDocument.URI, fromPosition(params.Position))
	if !ok {
		return nil, nil
	}
	return toLocation(loc), nil
}

func (s *Server) textDocumentDocumentSymbol(
	context *glsp.Context,
	params *protocol.DocumentSymbolParams,
) (any, error) {
	return toSymbols(s.store.DocumentSymbols(params.TextDocument.URI)), nil
}

func (s *Server) workspaceSymbol(
	context *glsp.Context,
	params *protocol.WorkspaceSymbolParams,
) ([]protocol.SymbolInformation, error) {
	return toSymbols(s.store.WorkspaceSymbols(params.Query)), nil
}

func (s *Server) textDocumentCompletion(
	context *glsp.Context,
	params *protocol.CompletionParams,
) (any, error) {
	uri := params.TextDocument.URI
	p := fromPosition(params.Position)

	var partial string
	doc, err := s.store.Lookup(uri)
	if err != nil {
		s.logger.Debug("Completion without document text", zap.Error(err))
	} else {
		partial = doc.IdentifierBefore(p)
	}
	return toCompletionItems(s.store.Completion(uri, p, partial)), nil
}

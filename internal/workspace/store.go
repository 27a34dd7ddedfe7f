// Package workspace holds the per-document index snapshots of every open
// document and answers queries against them.
package workspace

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/woxQAQ/decaf-lsp/internal/completion"
	"github.com/woxQAQ/decaf-lsp/internal/index"
	"github.com/woxQAQ/decaf-lsp/internal/metrics"
	"github.com/woxQAQ/decaf-lsp/pkg/protocol"
)

// DocumentNotFoundError occurs when a document was never opened.
type DocumentNotFoundError struct {
	URI string
}

func (e *DocumentNotFoundError) Error() string {
	return fmt.Sprintf("document '%s' not found", e.URI)
}

// Store maps document URIs to immutable index snapshots.
//
// Analysis runs without the lock; the lock only guards reading and swapping
// map entries. Two racing updates for the same URI both complete and the
// last one to take the lock wins.
type Store struct {
	sync.RWMutex
	docs     map[string]*index.Document // uri -> snapshot
	analyzer *index.Analyzer
	builtins *completion.Set
	logger   *zap.Logger
}

// NewStore creates an empty store.
func NewStore(analyzer *index.Analyzer, builtins *completion.Set, logger *zap.Logger) *Store {
	return &Store{
		docs:     make(map[string]*index.Document),
		analyzer: analyzer,
		builtins: builtins,
		logger:   logger.With(zap.String("component", "workspace")),
	}
}

// Update re-derives the index for uri from text and returns the diagnostics
// to publish, an empty list when the text is clean.
func (s *Store) Update(uri, text string) []protocol.Diagnostic {
	start := time.Now()
	an := s.analyzer.Analyze(uri, text)

	outcome := metrics.OutcomeOK
	if !an.Parsed {
		outcome = metrics.OutcomeParseError
	}
	metrics.ObserveIndex(outcome, time.Since(start))
	metrics.AddDiagnostics(metrics.KindParse, an.ParseErrors)
	metrics.AddDiagnostics(metrics.KindType, an.TypeErrors)

	s.Lock()
	doc := an.Apply(s.docs[uri])
	s.docs[uri] = doc
	n := len(s.docs)
	s.Unlock()
	metrics.SetDocuments(n)

	s.logger.Debug("Document updated",
		zap.String("uri", uri),
		zap.Bool("parsed", an.Parsed),
		zap.Int("symbols", len(doc.Symbols)),
		zap.Int("hovers", len(doc.Hovers)),
		zap.Int("diagnostics", len(an.Diagnostics)),
	)
	return an.Diagnostics
}

// Close clears the symbol list of uri. Hovers and definition links stay
// queryable, and the snapshot itself is never evicted.
func (s *Store) Close(uri string) {
	s.Lock()
	defer s.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		return
	}
	s.docs[uri] = doc.WithoutSymbols()

	s.logger.Debug("Document closed", zap.String("uri", uri))
}

// Get returns the current snapshot of uri.
func (s *Store) Get(uri string) (*index.Document, bool) {
	s.RLock()
	defer s.RUnlock()

	doc, ok := s.docs[uri]
	return doc, ok
}

// Lookup is Get with a typed error for unknown documents.
func (s *Store) Lookup(uri string) (*index.Document, error) {
	doc, ok := s.Get(uri)
	if !ok {
		return nil, &DocumentNotFoundError{URI: uri}
	}
	return doc, nil
}

// Hover returns the most specific hover at p in uri.
func (s *Store) Hover(uri string, p protocol.Position) (protocol.Hover, bool) {
	doc, ok := s.Get(uri)
	if !ok {
		metrics.CountQuery("hover", false)
		return protocol.Hover{}, false
	}
	h, ok := doc.Hover(p)
	metrics.CountQuery("hover", ok)
	return h, ok
}

// Definition returns the declaration location for the use at p in uri.
func (s *Store) Definition(uri string, p protocol.Position) (protocol.Location, bool) {
	doc, ok := s.Get(uri)
	if !ok {
		metrics.CountQuery("definition", false)
		return protocol.Location{}, false
	}
	r, ok := doc.Definition(p)
	metrics.CountQuery("definition", ok)
	if !ok {
		return protocol.Location{}, false
	}
	return protocol.Location{URI: uri, Range: r}, true
}

// DocumentSymbols returns the symbols of uri, or nil if it is unknown.
func (s *Store) DocumentSymbols(uri string) []protocol.SymbolInformation {
	doc, ok := s.Get(uri)
	metrics.CountQuery("document_symbol", ok && len(doc.Symbols) > 0)
	if !ok {
		return nil
	}
	return doc.Symbols
}

// WorkspaceSymbols concatenates the symbols of every document. Documents
// are visited in URI order. A non-empty query keeps only symbols whose name
// contains it, ignoring case.
func (s *Store) WorkspaceSymbols(query string) []protocol.SymbolInformation {
	s.RLock()
	docs := make(map[string]*index.Document, len(s.docs))
	for uri, doc := range s.docs {
		docs[uri] = doc
	}
	s.RUnlock()

	uris := make([]string, 0, len(docs))
	for uri := range docs {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	query = strings.ToLower(query)

	symbols := []protocol.SymbolInformation{}
	for _, uri := range uris {
		for _, sym := range docs[uri].Symbols {
			if query == "" || strings.Contains(strings.ToLower(sym.Name), query) {
				symbols = append(symbols, sym)
			}
		}
	}
	metrics.CountQuery("workspace_symbol", len(symbols) > 0)
	return symbols
}

// Completion returns the built-in names starting with partial. The
// candidate set does not depend on uri or p.
func (s *Store) Completion(uri string, p protocol.Position, partial string) []protocol.CompletionItem {
	items := s.builtins.Complete(partial)
	metrics.CountQuery("completion", len(items) > 0)

	s.logger.Debug("Completion",
		zap.String("uri", uri),
		zap.Int("line", p.Line),
		zap.Int("character", p.Character),
		zap.String("prefix", partial),
		zap.Int("items", len(items)),
	)
	return items
}

// URIs returns the URIs of all indexed documents.
func (s *Store) URIs() []string {
	s.RLock()
	defer s.RUnlock()

	uris := make([]string, 0, len(s.docs))
	for uri := range s.docs {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

// Count returns the number of indexed documents.
func (s *Store) Count() int {
	s.RLock()
	defer s.RUnlock()

	return len(s.docs)
}

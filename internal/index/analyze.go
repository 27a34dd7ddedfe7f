package index

import (
	"go.uber.org/zap"

	"github.com/woxQAQ/decaf-lsp/internal/position"
	"github.com/woxQAQ/decaf-lsp/internal/syntax"
	"github.com/woxQAQ/decaf-lsp/internal/typeck"
	"github.com/woxQAQ/decaf-lsp/pkg/protocol"
)

// DefaultSource tags diagnostics when no source is configured.
const DefaultSource = "decaf"

// Analysis is the result of running the pipeline over one version of a
// document. It is computed without touching shared state and merged into
// the previous snapshot by Apply.
type Analysis struct {
	URI         string
	Text        string
	TokenHovers []protocol.Hover

	// Parsed is false when parsing failed; AST is then empty.
	Parsed bool
	AST    Facts

	Diagnostics []protocol.Diagnostic
	ParseErrors int
	TypeErrors  int
}

// Analyzer runs token annotation, parsing, type checking and AST indexing.
type Analyzer struct {
	skip   SkipSet
	source string
	logger *zap.Logger
}

// NewAnalyzer creates an analyzer. A nil skip set means DefaultSkipSet and
// an empty source means DefaultSource.
func NewAnalyzer(skip SkipSet, source string, logger *zap.Logger) *Analyzer {
	if skip == nil {
		skip = DefaultSkipSet()
	}
	if source == "" {
		source = DefaultSource
	}
	return &Analyzer{
		skip:   skip,
		source: source,
		logger: logger.With(zap.String("component", "analyzer")),
	}
}

// Analyze runs the full pipeline over text. Parse and type errors become
// diagnostics; they never fail the call.
func (a *Analyzer) Analyze(uri, text string) *Analysis {
	src := []byte(text)
	an := &Analysis{
		URI:         uri,
		Text:        text,
		TokenHovers: AnnotateTokens(src, a.skip),
		Diagnostics: []protocol.Diagnostic{},
	}

	prog, errs := syntax.Parse(src)
	if len(errs) > 0 {
		an.ParseErrors = len(errs)
		an.Diagnostics = append(an.Diagnostics, a.diagnostics(errs)...)
		a.logger.Debug("Parse failed",
			zap.String("uri", uri),
			zap.Int("errors", len(errs)))
		return an
	}

	terrs := typeck.Check(prog)
	an.TypeErrors = len(terrs)
	an.Diagnostics = append(an.Diagnostics, a.diagnostics(terrs)...)
	an.Parsed = true
	an.AST = IndexProgram(uri, prog)

	a.logger.Debug("Indexed document",
		zap.String("uri", uri),
		zap.Int("symbols", len(an.AST.Symbols)),
		zap.Int("hovers", len(an.TokenHovers)+len(an.AST.Hovers)),
		zap.Int("definitions", len(an.AST.Definitions)),
		zap.Int("type_errors", len(terrs)))
	return an
}

func (a *Analyzer) diagnostics(errs syntax.ErrorList) []protocol.Diagnostic {
	diags := make([]protocol.Diagnostic, 0, len(errs))
	for _, e := range errs {
		diags = append(diags, protocol.Diagnostic{
			Range:    position.ToRange(e.Loc),
			Severity: protocol.DiagnosticSeverityError,
			Source:   a.source,
			Message:  e.Msg,
		})
	}
	return diags
}

// Apply builds the snapshot that replaces prev, which may be nil.
//
// On success every field comes from this analysis and hovers are the token
// hovers followed by the AST hovers. When parsing failed the text and token
// hovers are fresh, but symbols and definition links carry over from prev
// so navigation keeps working while the user is mid-edit.
func (an *Analysis) Apply(prev *Document) *Document {
	doc := &Document{URI: an.URI, Text: an.Text}
	if an.Parsed {
		doc.Symbols = an.AST.Symbols
		doc.Hovers = make([]protocol.Hover, 0, len(an.TokenHovers)+len(an.AST.Hovers))
		doc.Hovers = append(doc.Hovers, an.TokenHovers...)
		doc.Hovers = append(doc.Hovers, an.AST.Hovers...)
		doc.Definitions = an.AST.Definitions
		return doc
	}

	doc.Hovers = an.TokenHovers
	if prev != nil {
		doc.Symbols = prev.Symbols
		doc.Definitions = prev.Definitions
	}
	return doc
}

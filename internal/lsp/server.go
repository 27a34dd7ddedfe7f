package lsp

import (
	"context"
	"fmt"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
	"go.uber.org/zap"

	"github.com/woxQAQ/decaf-lsp/internal/completion"
	"github.com/woxQAQ/decaf-lsp/internal/config"
	"github.com/woxQAQ/decaf-lsp/internal/index"
	"github.com/woxQAQ/decaf-lsp/internal/metrics"
	"github.com/woxQAQ/decaf-lsp/internal/workspace"
)

// Version is reported to clients in the initialize result.
var Version = "dev"

type Server struct {
	cfg     *config.ServerConfig
	logger  *zap.Logger
	store   *workspace.Store
	handler protocol.Handler
	glsp    *server.Server
}

func NewServer(ctx context.Context, cfg *config.ServerConfig, logger *zap.Logger) (*Server, error) {
	skip, err := index.ParseSkipSet(cfg.Annotate.SkipTokens)
	if err != nil {
		return nil, fmt.Errorf("failed to build token skip set: %w", err)
	}

	builtins, err := completion.Load(cfg.Completion.BuiltinsFile, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load completion builtins: %w", err)
	}

	analyzer := index.NewAnalyzer(skip, cfg.Diagnostics.Source, logger)

	s := &Server{
		cfg:    cfg,
		logger: logger.With(zap.String("component", "lsp")),
		store:  workspace.NewStore(analyzer, builtins, logger),
	}
	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.textDocumentDidOpen,
		TextDocumentDidChange:      s.textDocumentDidChange,
		TextDocumentDidClose:       s.textDocumentDidClose,
		TextDocumentHover:          s.textDocumentHover,
		TextDocumentDefinition:     s.textDocumentDefinition,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
		TextDocumentCompletion:     s.textDocumentCompletion,
		WorkspaceSymbol:            s.workspaceSymbol,
	}
	s.glsp = server.NewServer(&s.handler, cfg.Server.Name, cfg.LogLevel == "debug")

	s.logger.Info("LSP server initialized",
		zap.String("name", cfg.Server.Name),
		zap.Strings("skip_tokens", cfg.Annotate.SkipTokens),
		zap.Int("builtins", builtins.Len()),
	)

	return s, nil
}

// Store exposes the document store.
func (s *Server) Store() *workspace.Store {
	return s.store
}

// Close gracefully shuts down the server.
func (s *Server) Close(ctx context.Context) error {
	s.logger.Info("Shutting down LSP server",
		zap.Strings("documents", s.store.URIs()),
	)
	s.logger.Info("LSP server shutdown complete")
	return nil
}

func (s *Server) ServeStdio(ctx context.Context) error {
	s.startMetrics(ctx)
	s.logger.Info("Serving LSP over stdio")
	return s.run(ctx, s.glsp.RunStdio)
}

func (s *Server) ServeTCP(ctx context.Context, port int) error {
	s.startMetrics(ctx)
	addr := fmt.Sprintf(":%d", port)
	s.logger.Info("Serving LSP over TCP", zap.String("addr", addr))
	return s.run(ctx, func() error { return s.glsp.RunTCP(addr) })
}

// run blocks until serve returns or ctx is cancelled.
func (s *Server) run(ctx context.Context, serve func() error) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- serve()
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) startMetrics(ctx context.Context) {
	if !s.cfg.MetricsEnabled {
		return
	}
	go func() {
		if err := metrics.Serve(ctx, s.cfg.MetricsPort, s.logger); err != nil {
			s.logger.Error("Metrics server failed", zap.Error(err))
		}
	}()
}

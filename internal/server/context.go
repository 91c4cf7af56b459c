package server

import (
	"context"
	"sync"

	"github.com/mailscope/mailscope/internal/instrumentation"
	"github.com/mailscope/mailscope/internal/outlook"
	"github.com/mailscope/mailscope/internal/refcache"
)

// ServerContext holds the shared state of the MCP server: the mailbox
// store, the short-reference cache, and the shutdown lifecycle.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	store outlook.Store
	refs  *refcache.Cache

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a server context around a mailbox store. The
// reference cache starts empty; tokens accumulate as searches run.
func NewServerContext(ctx context.Context, store outlook.Store) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		store:  store,
		refs:   refcache.New(),
	}
}

// Context returns the server lifecycle context, cancelled on Shutdown.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Store returns the mailbox store.
func (sc *ServerContext) Store() outlook.Store {
	return sc.store
}

// Refs returns the short-reference cache shared by all tools.
func (sc *ServerContext) Refs() *refcache.Cache {
	return sc.refs
}

// SetMetrics attaches a metrics recorder. May be nil when
// instrumentation is disabled.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder, or nil if none is configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger attaches an audit logger. May be nil when audit
// logging is disabled.
func (sc *ServerContext) SetAuditLogger(logger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = logger
}

// AuditLogger returns the audit logger, or nil if none is configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}

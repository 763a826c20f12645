package server

import (
	"context"
	"sync"

	"github.com/teemow/gmailsql/internal/emails"
	"github.com/teemow/gmailsql/internal/gmail"
	"github.com/teemow/gmailsql/internal/google"
	"github.com/teemow/gmailsql/internal/instrumentation"
	"github.com/teemow/gmailsql/internal/logging"
)

// ServerContext holds the shared state of one server process.
type ServerContext struct {
	ctx     context.Context
	cancel  context.CancelFunc
	logger  logging.Logger
	instr   *instrumentation.Provider
	service gmail.Service
	table   *emails.Table
	mu      sync.Mutex
}

// NewServerContext creates a server context. The provider session and table
// are created lazily on first use so the server can start before the user has
// authenticated.
func NewServerContext(ctx context.Context, logger logging.Logger, instr *instrumentation.Provider) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	if logger == nil {
		logger = logging.DefaultLogger()
	}
	return &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		logger: logger,
		instr:  instr,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Logger returns the structured logger.
func (sc *ServerContext) Logger() logging.Logger {
	return sc.logger
}

// Metrics returns the metrics recorder, never nil.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	if sc.instr == nil {
		return &instrumentation.Metrics{}
	}
	return sc.instr.Metrics()
}

// SetService injects a provider session, replacing any lazily created one.
// Used by tests and by callers that manage authentication themselves.
func (sc *ServerContext) SetService(svc gmail.Service) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.service = svc
	sc.table = nil
}

// Service returns the provider session, creating it from the stored OAuth
// token on first use.
func (sc *ServerContext) Service() (gmail.Service, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.serviceLocked()
}

func (sc *ServerContext) serviceLocked() (gmail.Service, error) {
	if sc.service != nil {
		return sc.service, nil
	}

	httpClient, err := google.GetHTTPClient(sc.ctx)
	if err != nil {
		return nil, err
	}
	client, err := gmail.NewClient(sc.ctx, httpClient)
	if err != nil {
		return nil, err
	}

	sc.service = client
	return sc.service, nil
}

// Table returns the emails table over the provider session, creating both on
// first use.
func (sc *ServerContext) Table() (*emails.Table, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.table != nil {
		return sc.table, nil
	}

	svc, err := sc.serviceLocked()
	if err != nil {
		return nil, err
	}

	sc.table = emails.NewTable(svc,
		emails.WithLogger(sc.logger),
		emails.WithMetrics(sc.Metrics()),
	)
	return sc.table, nil
}

// Shutdown cancels the server context.
func (sc *ServerContext) Shutdown() {
	sc.cancel()
}

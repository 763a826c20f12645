package emails

import (
	"context"

	"github.com/teemow/gmailsql/internal/gmail"
	"github.com/teemow/gmailsql/internal/instrumentation"
	"github.com/teemow/gmailsql/internal/logging"
	"github.com/teemow/gmailsql/internal/relquery"
)

// TableName is the name the table registers under with the relational engine.
const TableName = "emails"

// Table is the emails table adapter over a Gmail provider session.
type Table struct {
	svc     gmail.Service
	logger  logging.Logger
	metrics *instrumentation.Metrics
}

// Option configures a Table.
type Option func(*Table)

// WithLogger sets the structured logger for diagnostics.
func WithLogger(logger logging.Logger) Option {
	return func(t *Table) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithMetrics sets the metrics recorder for provider-call and row counters.
func WithMetrics(metrics *instrumentation.Metrics) Option {
	return func(t *Table) {
		if metrics != nil {
			t.metrics = metrics
		}
	}
}

// NewTable creates the emails table over the given provider session.
func NewTable(svc gmail.Service, opts ...Option) *Table {
	t := &Table{
		svc:     svc,
		logger:  logging.DefaultLogger(),
		metrics: &instrumentation.Metrics{},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the table name.
func (t *Table) Name() string {
	return TableName
}

// ResultSet is the projected output of one select: column names after
// aliasing and one value slice per row. Requested columns outside the schema
// hold nil.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Select translates the query, pulls matching emails from the provider and
// returns them projected onto the requested columns. Translation failures
// surface before any network call.
func (t *Table) Select(ctx context.Context, query relquery.SelectQuery) (*ResultSet, error) {
	params, err := listParams(query.Conditions)
	if err != nil {
		return nil, err
	}
	proj, err := projectionFor(query.Targets)
	if err != nil {
		return nil, err
	}

	rows, err := t.fetch(ctx, methodListMessages, params, query.Limit)
	if err != nil {
		return nil, err
	}

	t.metrics.RecordQueryRows(ctx, len(rows))
	return proj.apply(rows), nil
}

// Insert composes one outbound message per value row and sends them. Nothing
// is sent if any row fails translation.
func (t *Table) Insert(ctx context.Context, query relquery.InsertQuery) error {
	messages, err := outboundMessages(query)
	if err != nil {
		return err
	}

	for _, msg := range messages {
		if _, err := t.fetch(ctx, methodSendMessage, composePayload(msg), nil); err != nil {
			return err
		}
	}
	return nil
}

// apply projects rows onto the resolved columns.
func (p projection) apply(rows []Row) *ResultSet {
	out := &ResultSet{
		Columns: p.names,
		Rows:    make([][]any, 0, len(rows)),
	}

	for _, row := range rows {
		values := make([]any, len(p.columns))
		for i, col := range p.columns {
			if v, ok := row.value(col); ok {
				values[i] = v
			}
		}
		out.Rows = append(out.Rows, values)
	}

	return out
}

package emails

import (
	"context"
	"time"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/teemow/gmailsql/internal/instrumentation"
)

// maxBatchSize is the most message references one multiplexed bundle carries.
const maxBatchSize = 100

// resolve turns a page of message references into rows. References are
// partitioned into chunks of at most maxBatchSize; each chunk is submitted as
// one bundle and every completed item runs through the decode/project
// pipeline. Items that fail to fetch or decode are logged, counted and
// skipped; they never abort the batch or the query. Rows are appended as
// bundle slots complete, so callers must not rely on a particular order.
func (t *Table) resolve(ctx context.Context, refs []*gmailapi.Message) []Row {
	rows := make([]Row, 0, len(refs))

	for offset := 0; offset < len(refs); offset += maxBatchSize {
		chunk := refs[offset:min(offset+maxBatchSize, len(refs))]
		ids := make([]string, 0, len(chunk))
		for _, ref := range chunk {
			ids = append(ids, ref.Id)
		}

		t.logger.Debug("calling gmail api", "method", "batch_get_messages", "size", len(ids))
		began := time.Now()
		results := t.svc.BatchGetMessages(ctx, ids)
		t.metrics.RecordAPIOperation(ctx, "batch_get_messages", instrumentation.StatusSuccess, time.Since(began))

		for _, res := range results {
			if res.Err != nil {
				t.logger.Error("failed to fetch full message", "id", res.ID, "error", res.Err)
				t.metrics.RecordBatchItemFailure(ctx)
				continue
			}

			row, err := projectMessage(res.Msg, t.logger)
			if err != nil {
				t.logger.Error("failed to decode message", "id", res.ID, "error", err)
				t.metrics.RecordBatchItemFailure(ctx)
				continue
			}

			rows = append(rows, row)
		}
	}

	return rows
}

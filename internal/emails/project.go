package emails

import (
	"encoding/json"
	"fmt"
	"strings"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/teemow/gmailsql/internal/logging"
)

// projectMessage flattens one full message record into a Row. Header names
// match case-insensitively: to, subject and date map verbatim, from maps to
// sender and message-id to message_id; every other header is dropped. Fields
// the record does not carry stay at their zero values.
func projectMessage(msg *gmailapi.Message, log logging.Logger) (Row, error) {
	row := Row{
		ID:           msg.Id,
		ThreadID:     msg.ThreadId,
		LabelIDs:     msg.LabelIds,
		Snippet:      msg.Snippet,
		HistoryID:    msg.HistoryId,
		SizeEstimate: msg.SizeEstimate,
	}

	var body string
	attachments := []AttachmentRef{}

	if msg.Payload != nil {
		for _, header := range msg.Payload.Headers {
			switch strings.ToLower(header.Name) {
			case "to":
				row.To = header.Value
			case "subject":
				row.Subject = header.Value
			case "date":
				row.Date = header.Value
			case "from":
				row.Sender = header.Value
			case "message-id":
				row.MessageID = header.Value
			}
		}

		decoded, atts, err := decodeParts(msg.Payload.Parts, log)
		if err != nil {
			return Row{}, err
		}
		body = decoded
		attachments = append(attachments, atts...)
	}

	row.Body = body

	serialized, err := json.Marshal(attachments)
	if err != nil {
		return Row{}, fmt.Errorf("failed to serialize attachments: %w", err)
	}
	row.Attachments = string(serialized)

	return row, nil
}

package emails

// Columns returns the fixed schema of the emails table, in order.
func Columns() []string {
	return []string{
		"id",
		"message_id",
		"thread_id",
		"label_ids",
		"sender",
		"to",
		"date",
		"subject",
		"snippet",
		"history_id",
		"size_estimate",
		"body",
		"attachments",
	}
}

// Row is one flattened email record.
type Row struct {
	ID           string
	MessageID    string
	ThreadID     string
	LabelIDs     []string
	Sender       string
	To           string
	Date         string
	Subject      string
	Snippet      string
	HistoryID    uint64
	SizeEstimate int64
	Body         string

	// Attachments is a JSON array of attachment references
	// ({filename, mimeType, attachmentId} per entry).
	Attachments string
}

// AttachmentRef is the metadata recorded for one attachment part. The content
// itself is never fetched; attachmentId is enough to retrieve it later.
type AttachmentRef struct {
	Filename     string `json:"filename"`
	MimeType     string `json:"mimeType"`
	AttachmentID string `json:"attachmentId"`
}

// value returns the row's value for a schema column. Columns outside the
// schema yield (nil, false) so the projection can fill them with null.
func (r Row) value(column string) (any, bool) {
	switch column {
	case "id":
		return r.ID, true
	case "message_id":
		return r.MessageID, true
	case "thread_id":
		return r.ThreadID, true
	case "label_ids":
		return r.LabelIDs, true
	case "sender":
		return r.Sender, true
	case "to":
		return r.To, true
	case "date":
		return r.Date, true
	case "subject":
		return r.Subject, true
	case "snippet":
		return r.Snippet, true
	case "history_id":
		return r.HistoryID, true
	case "size_estimate":
		return r.SizeEstimate, true
	case "body":
		return r.Body, true
	case "attachments":
		return r.Attachments, true
	}
	return nil, false
}

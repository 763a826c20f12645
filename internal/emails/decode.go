package emails

import (
	"encoding/base64"
	"fmt"
	"unicode/utf8"

	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/teemow/gmailsql/internal/logging"
)

const (
	mimeTextPlain            = "text/plain"
	mimeMultipartAlternative = "multipart/alternative"
)

// decodeParts folds a message part tree into the concatenated plain-text body
// and the attachment references found along the way. Traversal is depth-first
// in part order, so the body reads in the order the parts are listed.
//
// Parts that are neither plain text, nor containers, nor attachments are
// logged at debug level and ignored. A text part whose content does not decode
// to valid UTF-8 fails the whole message with ErrDecode; the batch engine
// treats that as a per-item failure.
func decodeParts(parts []*gmailapi.MessagePart, log logging.Logger) (string, []AttachmentRef, error) {
	var body string
	var attachments []AttachmentRef

	for _, part := range parts {
		if part == nil {
			continue
		}
		switch {
		case part.MimeType == mimeTextPlain:
			var data string
			if part.Body != nil {
				data = part.Body.Data
			}
			text, err := decodeWebSafe(data)
			if err != nil {
				return "", nil, err
			}
			body += text

		case part.MimeType == mimeMultipartAlternative || len(part.Parts) > 0:
			nested, nestedAtts, err := decodeParts(part.Parts, log)
			if err != nil {
				return "", nil, err
			}
			body += nested
			attachments = append(attachments, nestedAtts...)

		case part.Filename != "" && part.Body != nil && part.Body.AttachmentId != "":
			attachments = append(attachments, AttachmentRef{
				Filename:     part.Filename,
				MimeType:     part.MimeType,
				AttachmentID: part.Body.AttachmentId,
			})

		default:
			log.Debug("ignoring message part", "mime_type", part.MimeType)
		}
	}

	return body, attachments, nil
}

// decodeWebSafe decodes Gmail's web-safe base64 (RFC 4648 base64url, padding
// optional) into UTF-8 text.
func decodeWebSafe(data string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		raw, err = base64.RawURLEncoding.DecodeString(data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: text part is not valid UTF-8", ErrDecode)
	}
	return string(raw), nil
}

package emails

import (
	"encoding/base64"
	"mime"
	"strings"

	"github.com/teemow/gmailsql/internal/gmail"
)

// composePayload renders an OutboundMessage as an RFC 2822 message and wraps
// it in the wire payload the send call expects: web-safe base64 raw bytes plus
// the thread to attach the message to.
func composePayload(msg OutboundMessage) gmail.OutboundPayload {
	var b strings.Builder

	b.WriteString("To: ")
	b.WriteString(msg.To)
	b.WriteString("\r\n")

	b.WriteString("Subject: ")
	b.WriteString(encodeRFC2047(msg.Subject))
	b.WriteString("\r\n")

	if msg.InReplyTo != "" {
		b.WriteString("In-Reply-To: ")
		b.WriteString(msg.InReplyTo)
		b.WriteString("\r\n")
		b.WriteString("References: ")
		b.WriteString(msg.InReplyTo)
		b.WriteString("\r\n")
	}

	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.Body)

	return gmail.OutboundPayload{
		Raw:      base64.URLEncoding.EncodeToString([]byte(b.String())),
		ThreadID: msg.ThreadID,
	}
}

// encodeRFC2047 encodes a header value for non-ASCII content (RFC 2047).
// All-ASCII values pass through unchanged.
func encodeRFC2047(s string) string {
	for _, r := range s {
		if r > 127 {
			return mime.BEncoding.Encode("UTF-8", s)
		}
	}
	return s
}

package emails

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmailapi "google.golang.org/api/gmail/v1"

	"github.com/teemow/gmailsql/internal/logging"
)

func textPart(text string) *gmailapi.MessagePart {
	return &gmailapi.MessagePart{
		MimeType: "text/plain",
		Body:     &gmailapi.MessagePartBody{Data: base64.RawURLEncoding.EncodeToString([]byte(text))},
	}
}

func TestDecodeParts(t *testing.T) {
	log := logging.DefaultLogger()

	t.Run("single text part", func(t *testing.T) {
		body, atts, err := decodeParts([]*gmailapi.MessagePart{textPart("Hello")}, log)
		require.NoError(t, err)
		assert.Equal(t, "Hello", body)
		assert.Empty(t, atts)
	})

	t.Run("text parts concatenate in order", func(t *testing.T) {
		body, _, err := decodeParts([]*gmailapi.MessagePart{
			textPart("Hello "),
			textPart("world"),
		}, log)
		require.NoError(t, err)
		assert.Equal(t, "Hello world", body)
	})

	t.Run("recurses into multipart alternative", func(t *testing.T) {
		parts := []*gmailapi.MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*gmailapi.MessagePart{
					textPart("nested"),
					{MimeType: "text/html", Body: &gmailapi.MessagePartBody{Data: "aWdub3JlZA"}},
				},
			},
		}
		body, _, err := decodeParts(parts, log)
		require.NoError(t, err)
		assert.Equal(t, "nested", body)
	})

	t.Run("recurses into any container part", func(t *testing.T) {
		parts := []*gmailapi.MessagePart{
			{
				MimeType: "multipart/mixed",
				Parts:    []*gmailapi.MessagePart{textPart("inner")},
			},
		}
		body, _, err := decodeParts(parts, log)
		require.NoError(t, err)
		assert.Equal(t, "inner", body)
	})

	t.Run("collects attachment references", func(t *testing.T) {
		parts := []*gmailapi.MessagePart{
			textPart("see attached"),
			{
				MimeType: "application/pdf",
				Filename: "report.pdf",
				Body:     &gmailapi.MessagePartBody{AttachmentId: "att-1"},
			},
		}
		body, atts, err := decodeParts(parts, log)
		require.NoError(t, err)
		assert.Equal(t, "see attached", body)
		require.Len(t, atts, 1)
		assert.Equal(t, AttachmentRef{Filename: "report.pdf", MimeType: "application/pdf", AttachmentID: "att-1"}, atts[0])
	})

	t.Run("ignores unrecognized leaf parts", func(t *testing.T) {
		parts := []*gmailapi.MessagePart{
			{MimeType: "text/html", Body: &gmailapi.MessagePartBody{Data: "PGI-aGk8L2I-"}},
			textPart("plain"),
		}
		body, atts, err := decodeParts(parts, log)
		require.NoError(t, err)
		assert.Equal(t, "plain", body)
		assert.Empty(t, atts)
	})

	t.Run("invalid base64 fails with ErrDecode", func(t *testing.T) {
		parts := []*gmailapi.MessagePart{
			{MimeType: "text/plain", Body: &gmailapi.MessagePartBody{Data: "!!! not base64 !!!"}},
		}
		_, _, err := decodeParts(parts, log)
		require.ErrorIs(t, err, ErrDecode)
	})

	t.Run("non-UTF-8 text fails with ErrDecode", func(t *testing.T) {
		parts := []*gmailapi.MessagePart{
			{MimeType: "text/plain", Body: &gmailapi.MessagePartBody{
				Data: base64.RawURLEncoding.EncodeToString([]byte{0xff, 0xfe, 0xfd}),
			}},
		}
		_, _, err := decodeParts(parts, log)
		require.ErrorIs(t, err, ErrDecode)
	})

	t.Run("nil parts are skipped", func(t *testing.T) {
		body, _, err := decodeParts([]*gmailapi.MessagePart{nil, textPart("ok")}, log)
		require.NoError(t, err)
		assert.Equal(t, "ok", body)
	})
}

func TestDecodeWebSafe(t *testing.T) {
	t.Run("padded input", func(t *testing.T) {
		got, err := decodeWebSafe(base64.URLEncoding.EncodeToString([]byte("padded?")))
		require.NoError(t, err)
		assert.Equal(t, "padded?", got)
	})

	t.Run("unpadded input", func(t *testing.T) {
		got, err := decodeWebSafe(base64.RawURLEncoding.EncodeToString([]byte("unpadded?")))
		require.NoError(t, err)
		assert.Equal(t, "unpadded?", got)
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := decodeWebSafe("")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

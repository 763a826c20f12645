package emails

import "errors"

// Error taxonomy of the emails table. Translation errors (unsupported
// predicate, field, projection, column, missing recipient) are raised before
// any network call. ErrDecode is per-item and non-fatal; the batch engine logs
// it and skips the item. ErrTimeout and ErrProvider abort the whole query.
var (
	ErrUnsupportedPredicate  = errors.New("unsupported predicate")
	ErrUnsupportedField      = errors.New("unsupported filter field")
	ErrUnsupportedProjection = errors.New("unsupported projection target")
	ErrUnsupportedColumn     = errors.New("unsupported column")
	ErrMissingRecipient      = errors.New("to_email is required to send an email")
	ErrTimeout               = errors.New("query deadline exceeded")
	ErrDecode                = errors.New("message body decode failed")
	ErrProvider              = errors.New("gmail provider error")
	ErrUnknownMethod         = errors.New("unknown provider method")
)

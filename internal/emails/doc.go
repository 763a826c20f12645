// Package emails exposes a Gmail mailbox as a relational table.
//
// The table has a fixed 13-column schema (see Columns). Selects translate a
// structured filter/projection (relquery package) into paginated
// users.messages.list calls, resolve each page of message references into full
// records through bounded batch fetches, and flatten every record into one
// row. Inserts compose RFC 822 messages and send them through
// users.messages.send.
//
// A single query executes synchronously: the pagination controller drives
// repeated list calls under a 60 second wall-clock deadline, and the batch
// engine fans each chunk of at most 100 references out as one multiplexed
// bundle. A failed item inside a bundle is logged and skipped; it never aborts
// the query. No state survives a query except the provider-issued page token,
// which is treated as opaque and echoed back verbatim.
package emails

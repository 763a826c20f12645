// Package relquery defines the structured query input consumed by the emails
// table adapter.
//
// The SQL front end is an external collaborator: it parses SQL text and hands
// over a flat list of comparison conditions, a projection list and, for
// inserts, column names with value rows. This package only defines that
// contract; it performs no parsing and no validation beyond what the types
// express. Validation of fields, operators and columns happens in the emails
// package where the provider semantics are known.
package relquery

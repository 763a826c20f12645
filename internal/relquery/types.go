package relquery

// Operator identifies the comparison operator of a condition.
type Operator string

const (
	// OpEq is the only operator the emails table supports.
	OpEq Operator = "="

	// OpOr marks a logical OR combination. The parser flattens OR expressions
	// into a single condition with this operator so the consumer can reject it.
	OpOr Operator = "or"
)

// Condition is one comparison extracted from a WHERE clause.
type Condition struct {
	Field string
	Op    Operator
	Value any
}

// Target is one entry of a projection list.
// Exactly one of Star or Column is set; a Target with neither represents an
// expression the parser could not reduce to an identifier.
type Target struct {
	Star   bool
	Column string
	Alias  string
}

// SelectQuery is the structured form of a SELECT against the emails table.
type SelectQuery struct {
	Conditions []Condition
	Targets    []Target

	// Limit is the result-count limit, nil when the query has no LIMIT clause.
	Limit *int64
}

// InsertQuery is the structured form of an INSERT into the emails table.
// Every row in Rows has one value per entry of Columns.
type InsertQuery struct {
	Columns []string
	Rows    [][]any
}

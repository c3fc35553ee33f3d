package query

// Statement is one planned CQL statement with positional arguments.
// Statements are values; planners build them, the executor runs them.
type Statement struct {
	CQL  string
	Args []any
}

// Batch is an ordered list of statements executed as a single logged batch.
// The store applies a batch atomically: either every statement takes effect
// or none does. Cross-batch atomicity is not provided.
type Batch struct {
	Statements []Statement
}

// Add appends a statement to the batch.
func (b *Batch) Add(stmt Statement) {
	b.Statements = append(b.Statements, stmt)
}

// Append appends every statement from another batch.
func (b *Batch) Append(other Batch) {
	b.Statements = append(b.Statements, other.Statements...)
}

// Len returns the number of statements in the batch.
func (b Batch) Len() int {
	return len(b.Statements)
}

// IsEmpty reports whether the batch contains no statements.
func (b Batch) IsEmpty() bool {
	return len(b.Statements) == 0
}

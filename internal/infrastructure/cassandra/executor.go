package cassandra

import (
	"context"
	"fmt"

	"github.com/gocql/gocql"
	"github.com/google/uuid"

	"github.com/noaccOS/astarte/internal/query"
)

// ChunkError reports which chunk of a chunked statement group failed.
//
// Chunks are applied sequentially and execution stops at the first
// failure: chunks before Index are committed, chunks from Index on are
// not. The whole group is idempotent, so re-running it converges.
type ChunkError struct {
	// Index is the zero-based position of the failed chunk.
	Index int
	// Total is the number of chunks in the group.
	Total int
	// Err is the underlying execution failure.
	Err error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("cassandra: chunk %d of %d failed: %v", e.Index+1, e.Total, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

// Select runs a planned read and returns every row as a column→value map.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//   - stmt: Planned statement from the query package
//
// Returns:
//   - []map[string]any: One map per row, in store order
//   - error: If the session is closed or the query fails
func (c *Client) Select(ctx context.Context, stmt query.Statement) ([]map[string]any, error) {
	if !c.IsConnected() {
		return nil, ErrNotConnected
	}

	iter := c.session.Query(stmt.CQL, bindArgs(stmt.Args)...).
		WithContext(ctx).
		Iter()

	var rows []map[string]any
	for {
		row := make(map[string]any)
		if !iter.MapScan(row) {
			break
		}
		rows = append(rows, row)
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("executing select: %w", err)
	}
	return rows, nil
}

// Execute runs a single planned mutation.
func (c *Client) Execute(ctx context.Context, stmt query.Statement) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	err := c.session.Query(stmt.CQL, bindArgs(stmt.Args)...).
		WithContext(ctx).
		Exec()
	if err != nil {
		return fmt.Errorf("executing statement: %w", err)
	}
	return nil
}

// ExecuteBatch runs a planned batch as one logged batch.
//
// A logged batch is the atomicity unit: every statement takes effect or
// none do. An empty batch is a no-op.
func (c *Client) ExecuteBatch(ctx context.Context, batch query.Batch) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}
	if batch.IsEmpty() {
		return nil
	}

	b := c.session.NewBatch(gocql.LoggedBatch).WithContext(ctx)
	for _, stmt := range batch.Statements {
		b.Query(stmt.CQL, bindArgs(stmt.Args)...)
	}

	if err := c.session.ExecuteBatch(b); err != nil {
		return fmt.Errorf("executing batch: %w", err)
	}
	return nil
}

// ExecuteChunked runs a group of batches sequentially, stopping at the
// first failure.
//
// Each chunk is atomic on its own; the group is not. On failure the
// returned error is a *ChunkError naming the failed chunk, so the caller
// knows every earlier chunk committed. There is no compensation: the
// statements the planners emit are idempotent and a re-run converges.
func (c *Client) ExecuteChunked(ctx context.Context, batches []query.Batch) error {
	for i, batch := range batches {
		if err := c.ExecuteBatch(ctx, batch); err != nil {
			return &ChunkError{Index: i, Total: len(batches), Err: err}
		}
	}
	return nil
}

// bindArgs converts planner argument values to driver types.
//
// Planners emit google/uuid values so they stay driver-free; the
// conversion to gocql.UUID happens here, at the boundary.
func bindArgs(args []any) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		switch v := arg.(type) {
		case uuid.UUID:
			out[i] = gocql.UUID(v)
		case []uuid.UUID:
			converted := make([]gocql.UUID, len(v))
			for j, u := range v {
				converted[j] = gocql.UUID(u)
			}
			out[i] = converted
		default:
			out[i] = arg
		}
	}
	return out
}

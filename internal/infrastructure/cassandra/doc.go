// Package cassandra provides the wide-column store client and the single
// executor that runs planned statements and batches.
//
// Everything above this package plans; only this package talks to the
// cluster. Plans arrive as query.Statement and query.Batch values, realm
// data lives in one keyspace per realm, and a logged batch is the atomicity
// unit: all statements of a batch take effect or none do. Chunked statement
// groups spanning multiple queries have no cross-chunk atomicity; see
// ExecuteChunked for the failure contract.
//
// # Thread Safety
//
//   - All methods are safe for concurrent use from multiple goroutines.
package cassandra

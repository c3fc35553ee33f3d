package cassandra

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gocql/gocql"

	"github.com/noaccOS/astarte/internal/infrastructure/config"
)

// Default timeouts for cluster operations.
const (
	defaultHealthCheckTimeout = 5 * time.Second
)

// Client wraps a gocql session with Astarte-specific functionality.
//
// It provides connection management, statement execution, and health
// monitoring. Planners never see this type; they hand their plans to the
// executor methods in executor.go.
//
// Thread Safety:
//   - All methods are safe for concurrent use from multiple goroutines.
type Client struct {
	session *gocql.Session
	cfg     config.CassandraConfig

	// connected tracks current connection state.
	connected bool
	mu        sync.RWMutex
}

// Connect establishes a session against the cluster.
//
// It performs the following setup:
//  1. Builds the cluster configuration from config.yaml values
//  2. Parses the configured consistency level
//  3. Opens the session, which verifies connectivity
//
// Parameters:
//   - cfg: Cassandra configuration from config.yaml
//
// Returns:
//   - *Client: Connected client ready for use
//   - error: If the configuration is unusable or connection fails
func Connect(cfg config.CassandraConfig) (*Client, error) {
	if len(cfg.Hosts) == 0 {
		return nil, fmt.Errorf("%w: no hosts", ErrInvalidConfig)
	}

	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Port = cfg.Port
	cluster.ConnectTimeout = time.Duration(cfg.ConnectTimeout) * time.Second
	cluster.Timeout = time.Duration(cfg.RequestTimeout) * time.Second

	consistency, err := gocql.ParseConsistencyWrapper(cfg.Consistency)
	if err != nil {
		return nil, fmt.Errorf("%w: consistency %q", ErrInvalidConfig, cfg.Consistency)
	}
	cluster.Consistency = consistency

	session, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	return &Client{
		session:   session,
		cfg:       cfg,
		connected: true,
	}, nil
}

// Close shuts down the session.
//
// Safe to call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	c.connected = false
	c.mu.Unlock()

	if c.session != nil {
		c.session.Close()
	}
	return nil
}

// HealthCheck verifies the cluster connection is alive and functioning.
//
// Parameters:
//   - ctx: Context for timeout/cancellation
//
// Returns:
//   - error: nil if healthy, error describing the issue otherwise
func (c *Client) HealthCheck(ctx context.Context) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	checkCtx, cancel := context.WithTimeout(ctx, defaultHealthCheckTimeout)
	defer cancel()

	var version string
	err := c.session.Query("SELECT release_version FROM system.local").
		WithContext(checkCtx).
		Scan(&version)
	if err != nil {
		return fmt.Errorf("cassandra health check failed: %w", err)
	}

	return nil
}

// IsConnected returns the current connection state.
//
// Note: This reflects the last known state. For reliability,
// use HealthCheck which performs an active query.
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// KeyspaceName derives the keyspace holding a realm's data.
//
// The realm name is lowercased and stripped of characters the store does
// not accept in identifiers before the prefix is applied. The result is
// truncated to the store's 48-character identifier ceiling.
func KeyspaceName(prefix, realm string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(realm) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}

	name := prefix + b.String()
	if len(name) > 48 {
		name = name[:48]
	}
	return name
}

package cassandra

import (
	"errors"
	"testing"

	"github.com/noaccOS/astarte/internal/infrastructure/config"
)

func TestConnect_NoHosts(t *testing.T) {
	_, err := Connect(config.CassandraConfig{
		Port:        9042,
		Consistency: "quorum",
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Connect() error = %v, want ErrInvalidConfig", err)
	}
}

func TestConnect_BadConsistency(t *testing.T) {
	_, err := Connect(config.CassandraConfig{
		Hosts:       []string{"localhost"},
		Port:        9042,
		Consistency: "eventual",
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Connect() error = %v, want ErrInvalidConfig", err)
	}
}

func TestKeyspaceName(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		realm  string
		want   string
	}{
		{
			name:   "plain realm",
			prefix: "astarte_",
			realm:  "acme",
			want:   "astarte_acme",
		},
		{
			name:   "uppercase folded",
			prefix: "astarte_",
			realm:  "Acme",
			want:   "astarte_acme",
		},
		{
			name:   "invalid characters stripped",
			prefix: "astarte_",
			realm:  "acme-prod.eu",
			want:   "astarte_acmeprodeu",
		},
		{
			name:   "truncated to identifier ceiling",
			prefix: "astarte_",
			realm:  "a_realm_name_far_too_long_to_survive_as_a_keyspace",
			want:   "astarte_a_realm_name_far_too_long_to_survive_as_",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KeyspaceName(tt.prefix, tt.realm)
			if got != tt.want {
				t.Errorf("KeyspaceName(%q, %q) = %q, want %q", tt.prefix, tt.realm, got, tt.want)
			}
			if len(got) > 48 {
				t.Errorf("KeyspaceName() length = %d, want <= 48", len(got))
			}
		})
	}
}

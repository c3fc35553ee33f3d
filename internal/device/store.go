package device

import "context"

// ObjectType discriminates rows in the realm-wide name index.
type ObjectType int

const (
	// ObjectTypeAlias marks name-index rows owned by device alias values.
	ObjectTypeAlias ObjectType = 1
)

// NameOwner is one name-index row: a claimed name and the device owning it.
type NameOwner struct {
	Name  string
	Owner ID
}

// NameLookup resolves exact names against the realm's name index.
//
// Implementations must filter by the given names only; the planner owns
// chunking so that each call stays under the store's restriction ceiling.
type NameLookup interface {
	OwnersByName(ctx context.Context, realm string, names []string, objectType ObjectType) ([]NameOwner, error)
}

// ExistenceChecker reports which of the given device ids exist in the
// realm's device table. The planner owns chunking.
type ExistenceChecker interface {
	FilterExisting(ctx context.Context, realm string, ids []ID) (map[ID]struct{}, error)
}

// GroupProbe reports whether a group name is already in use in the realm.
type GroupProbe interface {
	GroupExists(ctx context.Context, realm string, groupName string) (bool, error)
}

// DeletionChecker reports which of the given device ids carry a
// deletion-in-progress marker. Marked devices are excluded from listings.
type DeletionChecker interface {
	DeletionInProgress(ctx context.Context, realm string, ids []ID) (map[ID]struct{}, error)
}

// Logger defines the logging interface used by the planners.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

package device

import (
	"context"
	"fmt"
	"sort"

	"github.com/noaccOS/astarte/internal/query"
)

// nameIndexChunk is the largest equality-set the store accepts on the name
// index per query. Lookups and deletes over more names are split into
// groups of at most this size.
const nameIndexChunk = 99

// AliasChanges is a requested alias mutation: tag to new value, with a nil
// value requesting deletion of the tag.
type AliasChanges map[string]*string

// ValidatedAliases is the outcome of a successful alias validation, ready
// to be applied in memory and planned as a batch.
type ValidatedAliases struct {
	// DeleteTags are the tags being removed, sorted.
	DeleteTags []string
	// Updates maps tags to their new values.
	Updates map[string]string
	// FreedNames are the name-index rows to drop: current values of deleted
	// tags plus current values of overwritten tags, sorted. An overwrite
	// frees the old row because the alias value is part of the index key.
	FreedNames []string
}

// AliasPlanner validates and plans alias mutations against the realm-wide
// name index.
type AliasPlanner struct {
	names NameLookup
	log   Logger
}

// NewAliasPlanner creates an alias planner backed by the given name lookup.
func NewAliasPlanner(names NameLookup) *AliasPlanner {
	return &AliasPlanner{names: names, log: noopLogger{}}
}

// SetLogger sets the logger for the planner.
func (p *AliasPlanner) SetLogger(log Logger) {
	p.log = log
}

// Validate checks a requested alias mutation for shape and realm-wide
// uniqueness.
//
// The request is partitioned into a delete-set (nil values) and an
// update-set. Empty tags and empty update values are rejected with
// ErrInvalidAlias. Every involved alias value is then checked against the
// name index in chunks of at most 99 names per query. A value owned by
// another device is a conflict:
//   - if that value also appears in this device's own aliases mapping the
//     index and the record disagree, which is corruption: logged at error
//     severity and surfaced as ErrDatabaseInconsistency
//   - otherwise it is an ordinary ErrAliasAlreadyInUse
//
// Store-access failures propagate unmodified; there is no retry here.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - realm: Realm keyspace name
//   - dev: Device record already loaded by the caller
//   - changes: Requested mutation, nil value meaning delete
//
// Returns:
//   - *ValidatedAliases: Validated mutation ready for Apply and AliasBatch
//   - error: Validation failure or propagated store error
func (p *AliasPlanner) Validate(ctx context.Context, realm string, dev *Device, changes AliasChanges) (*ValidatedAliases, error) {
	validated := &ValidatedAliases{Updates: make(map[string]string)}

	for tag, value := range changes {
		if tag == "" {
			return nil, fmt.Errorf("%w: empty tag", ErrInvalidAlias)
		}
		if value == nil {
			validated.DeleteTags = append(validated.DeleteTags, tag)
			continue
		}
		if *value == "" {
			return nil, fmt.Errorf("%w: empty value for tag %q", ErrInvalidAlias, tag)
		}
		validated.Updates[tag] = *value
	}
	sort.Strings(validated.DeleteTags)

	for _, tag := range validated.DeleteTags {
		if current, ok := dev.Aliases[tag]; ok {
			validated.FreedNames = append(validated.FreedNames, current)
		}
	}
	for tag, value := range validated.Updates {
		if current, ok := dev.Aliases[tag]; ok && current != value {
			validated.FreedNames = append(validated.FreedNames, current)
		}
	}
	sort.Strings(validated.FreedNames)

	if err := p.checkUniqueness(ctx, realm, dev, validated); err != nil {
		return nil, err
	}
	return validated, nil
}

// checkUniqueness resolves every involved alias value against the name
// index, chunked under the restriction ceiling, and classifies conflicts.
func (p *AliasPlanner) checkUniqueness(ctx context.Context, realm string, dev *Device, validated *ValidatedAliases) error {
	values := make([]string, 0, len(validated.Updates)+len(validated.FreedNames))
	values = append(values, validated.FreedNames...)
	for _, value := range validated.Updates {
		values = append(values, value)
	}
	sort.Strings(values)
	values = dedupe(values)

	for _, chunk := range chunkStrings(values, nameIndexChunk) {
		owners, err := p.names.OwnersByName(ctx, realm, chunk, ObjectTypeAlias)
		if err != nil {
			return fmt.Errorf("looking up alias owners: %w", err)
		}
		for _, owner := range owners {
			if owner.Owner == dev.ID {
				continue
			}
			if dev.HasAliasValue(owner.Name) {
				p.log.Error("alias value owned by another device but present on this record",
					"realm", realm,
					"alias", owner.Name,
					"device_id", dev.ID.Encode(),
					"owner_id", owner.Owner.Encode(),
				)
				return fmt.Errorf("%w: alias %q", ErrDatabaseInconsistency, owner.Name)
			}
			return fmt.Errorf("%w: %q", ErrAliasAlreadyInUse, owner.Name)
		}
	}
	return nil
}

// Apply mutates the device's alias mapping in memory: the delete-set is
// removed first, then the update-set is merged, last write wins per tag.
//
// Returns ErrAliasTagNotFound when a delete-set tag is absent.
func Apply(dev *Device, validated *ValidatedAliases) error {
	for _, tag := range validated.DeleteTags {
		if _, ok := dev.Aliases[tag]; !ok {
			return fmt.Errorf("%w: %q", ErrAliasTagNotFound, tag)
		}
		delete(dev.Aliases, tag)
	}

	if len(validated.Updates) > 0 && dev.Aliases == nil {
		dev.Aliases = make(map[string]string, len(validated.Updates))
	}
	for tag, value := range validated.Updates {
		dev.Aliases[tag] = value
	}
	return nil
}

// AliasBatch plans the store mutation for a validated alias change as one
// atomic batch: name-index deletions for every freed value (chunked at 99
// per statement), device-record map mutations, and name-index insertions
// for every new value.
//
// The batch must commit atomically; "at most one owner per alias" holds
// only if the whole unit is applied.
func AliasBatch(realm string, dev *Device, validated *ValidatedAliases) query.Batch {
	var batch query.Batch

	for _, chunk := range chunkStrings(validated.FreedNames, nameIndexChunk) {
		batch.Add(query.Statement{
			CQL:  fmt.Sprintf("DELETE FROM %s.names WHERE object_name IN ? AND object_type = ?", realm),
			Args: []any{chunk, int(ObjectTypeAlias)},
		})
	}

	for _, tag := range validated.DeleteTags {
		batch.Add(query.Statement{
			CQL:  fmt.Sprintf("DELETE aliases[?] FROM %s.devices WHERE device_id = ?", realm),
			Args: []any{tag, dev.ID.UUID()},
		})
	}

	for _, tag := range sortedKeys(validated.Updates) {
		batch.Add(query.Statement{
			CQL:  fmt.Sprintf("UPDATE %s.devices SET aliases[?] = ? WHERE device_id = ?", realm),
			Args: []any{tag, validated.Updates[tag], dev.ID.UUID()},
		})
		batch.Add(query.Statement{
			CQL:  fmt.Sprintf("INSERT INTO %s.names (object_name, object_type, object_uuid) VALUES (?, ?, ?)", realm),
			Args: []any{validated.Updates[tag], int(ObjectTypeAlias), dev.ID.UUID()},
		})
	}

	return batch
}

// chunkStrings splits values into groups of at most size elements.
func chunkStrings(values []string, size int) [][]string {
	if len(values) == 0 {
		return nil
	}
	chunks := make([][]string, 0, (len(values)+size-1)/size)
	for start := 0; start < len(values); start += size {
		end := start + size
		if end > len(values) {
			end = len(values)
		}
		chunks = append(chunks, values[start:end])
	}
	return chunks
}

// dedupe removes adjacent duplicates from a sorted slice.
func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, v := range sorted {
		if i == 0 || sorted[i-1] != v {
			out = append(out, v)
		}
	}
	return out
}

// sortedKeys returns the map keys in sorted order.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

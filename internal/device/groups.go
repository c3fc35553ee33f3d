package device

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/noaccOS/astarte/internal/query"
)

// deviceExistenceChunk is the largest equality-set the store accepts on the
// device table per query. Existence checks over more ids are split into
// groups of at most this size.
const deviceExistenceChunk = 100

// GroupPlanner validates and plans group membership mutations, keeping the
// device record's groups mapping and the grouped-device index consistent.
type GroupPlanner struct {
	devices ExistenceChecker
	groups  GroupProbe
	log     Logger

	// newInsertionID mints the time-ordered identifier for one membership
	// assignment. Overridable in tests.
	newInsertionID func() (uuid.UUID, error)
}

// NewGroupPlanner creates a group planner backed by the given store lookups.
func NewGroupPlanner(devices ExistenceChecker, groups GroupProbe) *GroupPlanner {
	return &GroupPlanner{
		devices:        devices,
		groups:         groups,
		log:            noopLogger{},
		newInsertionID: uuid.NewUUID,
	}
}

// SetLogger sets the logger for the planner.
func (p *GroupPlanner) SetLogger(log Logger) {
	p.log = log
}

// CreateGroup validates and plans the creation of a group containing the
// given devices.
//
// Validation order matters and is fail-fast:
//  1. every external id must decode; the first malformed one aborts with
//     ErrInvalidDeviceID naming it
//  2. every decoded id must exist, checked in chunks of 100; the first
//     missing id aborts with ErrDeviceNotFound naming it
//  3. the group name must be unused, else ErrGroupExists
//
// No statement is emitted on any failure. On success the returned batch
// adds the group to every device's groups mapping and inserts the matching
// grouped-device index row, one fresh insertion identifier per device, as a
// single atomic unit.
//
// Parameters:
//   - ctx: Context for cancellation and timeout
//   - realm: Realm keyspace name
//   - groupName: Name of the group to create
//   - encodedIDs: External representations of the member devices
//
// Returns:
//   - query.Batch: Atomic membership batch
//   - error: Validation failure or propagated store error
func (p *GroupPlanner) CreateGroup(ctx context.Context, realm, groupName string, encodedIDs []string) (query.Batch, error) {
	ids := make([]ID, 0, len(encodedIDs))
	for _, encoded := range encodedIDs {
		id, err := DecodeID(encoded)
		if err != nil {
			return query.Batch{}, err
		}
		ids = append(ids, id)
	}

	if err := p.checkAllExist(ctx, realm, ids); err != nil {
		return query.Batch{}, err
	}

	exists, err := p.groups.GroupExists(ctx, realm, groupName)
	if err != nil {
		return query.Batch{}, fmt.Errorf("probing group name: %w", err)
	}
	if exists {
		return query.Batch{}, fmt.Errorf("%w: %q", ErrGroupExists, groupName)
	}

	var batch query.Batch
	for _, id := range ids {
		membership, err := p.membershipStatements(realm, groupName, id)
		if err != nil {
			return query.Batch{}, err
		}
		batch.Append(membership)
	}
	return batch, nil
}

// AddDevice validates and plans adding one device to an existing group.
//
// Re-adding a member succeeds and mints a fresh insertion identifier; the
// membership predicate is unaffected.
func (p *GroupPlanner) AddDevice(ctx context.Context, realm, groupName, encodedID string) (query.Batch, error) {
	id, err := DecodeID(encodedID)
	if err != nil {
		return query.Batch{}, err
	}

	if err := p.checkAllExist(ctx, realm, []ID{id}); err != nil {
		return query.Batch{}, err
	}

	exists, err := p.groups.GroupExists(ctx, realm, groupName)
	if err != nil {
		return query.Batch{}, fmt.Errorf("probing group name: %w", err)
	}
	if !exists {
		return query.Batch{}, fmt.Errorf("%w: %q", ErrGroupNotFound, groupName)
	}

	return p.membershipStatements(realm, groupName, id)
}

// RemoveDevice plans removing a device from a group, deleting the record
// mapping entry and the index row together so neither side is orphaned.
//
// Removing a non-member is an explicit no-op success: the returned batch is
// empty and the error nil.
func RemoveDevice(realm, groupName string, dev *Device) (query.Batch, error) {
	insertionID, ok := dev.Groups[groupName]
	if !ok {
		return query.Batch{}, nil
	}

	var batch query.Batch
	batch.Add(query.Statement{
		CQL:  fmt.Sprintf("DELETE groups[?] FROM %s.devices WHERE device_id = ?", realm),
		Args: []any{groupName, dev.ID.UUID()},
	})
	batch.Add(query.Statement{
		CQL:  fmt.Sprintf("DELETE FROM %s.grouped_devices WHERE group_name = ? AND insertion_uuid = ? AND device_id = ?", realm),
		Args: []any{groupName, insertionID, dev.ID.UUID()},
	})
	return batch, nil
}

// CheckDeviceInGroup reports whether the device is a member of the group.
// Membership is defined by the device record's groups mapping; the index
// row exists if and only if the mapping entry does.
func CheckDeviceInGroup(dev *Device, groupName string) bool {
	return dev.InGroup(groupName)
}

// checkAllExist verifies every id exists in the realm's device table,
// chunked under the restriction ceiling. The first missing id, in input
// order, aborts with ErrDeviceNotFound naming its external representation.
func (p *GroupPlanner) checkAllExist(ctx context.Context, realm string, ids []ID) error {
	for start := 0; start < len(ids); start += deviceExistenceChunk {
		end := start + deviceExistenceChunk
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		existing, err := p.devices.FilterExisting(ctx, realm, chunk)
		if err != nil {
			return fmt.Errorf("checking device existence: %w", err)
		}
		for _, id := range chunk {
			if _, ok := existing[id]; !ok {
				return fmt.Errorf("%w: %s", ErrDeviceNotFound, id.Encode())
			}
		}
	}
	return nil
}

// membershipStatements plans the two-sided insertion of one membership
// assignment with a freshly minted insertion identifier.
func (p *GroupPlanner) membershipStatements(realm, groupName string, id ID) (query.Batch, error) {
	insertionID, err := p.newInsertionID()
	if err != nil {
		return query.Batch{}, fmt.Errorf("minting insertion identifier: %w", err)
	}

	var batch query.Batch
	batch.Add(query.Statement{
		CQL:  fmt.Sprintf("UPDATE %s.devices SET groups[?] = ? WHERE device_id = ?", realm),
		Args: []any{groupName, insertionID, id.UUID()},
	})
	batch.Add(query.Statement{
		CQL:  fmt.Sprintf("INSERT INTO %s.grouped_devices (group_name, insertion_uuid, device_id) VALUES (?, ?, ?)", realm),
		Args: []any{groupName, insertionID, id.UUID()},
	})
	return batch, nil
}

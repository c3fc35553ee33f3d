package cassandra

import (
	"context"
	"fmt"

	"github.com/gocql/gocql"

	"github.com/noaccOS/astarte/internal/device"
)

// DeviceStore implements the narrow read interfaces the device planners
// depend on: name-index lookups, device existence filtering, group
// probing, and deletion markers.
//
// Each method answers exactly one chunk; the planners own chunking and
// never hand this type a name or id set over the restriction ceiling.
type DeviceStore struct {
	client *Client
}

// NewDeviceStore creates a device store backed by the given client.
func NewDeviceStore(client *Client) *DeviceStore {
	return &DeviceStore{client: client}
}

// OwnersByName resolves names against the realm's name index.
func (s *DeviceStore) OwnersByName(ctx context.Context, realm string, names []string, objectType device.ObjectType) ([]device.NameOwner, error) {
	if !s.client.IsConnected() {
		return nil, ErrNotConnected
	}

	cql := fmt.Sprintf(
		"SELECT object_name, object_uuid FROM %s.names WHERE object_name IN ? AND object_type = ?",
		realm,
	)
	iter := s.client.session.Query(cql, names, int(objectType)).
		WithContext(ctx).
		Iter()

	var owners []device.NameOwner
	var name string
	var owner gocql.UUID
	for iter.Scan(&name, &owner) {
		owners = append(owners, device.NameOwner{
			Name:  name,
			Owner: device.ID(owner),
		})
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("querying name index: %w", err)
	}
	return owners, nil
}

// FilterExisting reports which of the given ids have a device record.
func (s *DeviceStore) FilterExisting(ctx context.Context, realm string, ids []device.ID) (map[device.ID]struct{}, error) {
	if !s.client.IsConnected() {
		return nil, ErrNotConnected
	}

	cql := fmt.Sprintf("SELECT device_id FROM %s.devices WHERE device_id IN ?", realm)
	iter := s.client.session.Query(cql, deviceUUIDs(ids)).
		WithContext(ctx).
		Iter()

	existing := make(map[device.ID]struct{}, len(ids))
	var id gocql.UUID
	for iter.Scan(&id) {
		existing[device.ID(id)] = struct{}{}
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	return existing, nil
}

// GroupExists reports whether any device belongs to the named group.
//
// Group existence is probed through the grouped_devices index rather than
// the name index: a group has no single owning device, so it never claims
// a name-index row.
func (s *DeviceStore) GroupExists(ctx context.Context, realm string, groupName string) (bool, error) {
	if !s.client.IsConnected() {
		return false, ErrNotConnected
	}

	cql := fmt.Sprintf("SELECT group_name FROM %s.grouped_devices WHERE group_name = ? LIMIT 1", realm)
	iter := s.client.session.Query(cql, groupName).
		WithContext(ctx).
		Iter()

	var found string
	exists := iter.Scan(&found)

	if err := iter.Close(); err != nil {
		return false, fmt.Errorf("querying grouped devices: %w", err)
	}
	return exists, nil
}

// DeletionInProgress reports which of the given ids carry a deletion
// marker. Marked devices are excluded from listings.
func (s *DeviceStore) DeletionInProgress(ctx context.Context, realm string, ids []device.ID) (map[device.ID]struct{}, error) {
	if !s.client.IsConnected() {
		return nil, ErrNotConnected
	}

	cql := fmt.Sprintf("SELECT device_id FROM %s.deletion_in_progress WHERE device_id IN ?", realm)
	iter := s.client.session.Query(cql, deviceUUIDs(ids)).
		WithContext(ctx).
		Iter()

	marked := make(map[device.ID]struct{})
	var id gocql.UUID
	for iter.Scan(&id) {
		marked[device.ID(id)] = struct{}{}
	}

	if err := iter.Close(); err != nil {
		return nil, fmt.Errorf("querying deletion markers: %w", err)
	}
	return marked, nil
}

// deviceUUIDs converts planner ids to driver values for an IN binding.
func deviceUUIDs(ids []device.ID) []gocql.UUID {
	out := make([]gocql.UUID, len(ids))
	for i, id := range ids {
		out[i] = gocql.UUID(id)
	}
	return out
}

package device

import (
	"errors"
	"reflect"
	"testing"
)

func TestCursor_RoundTrip(t *testing.T) {
	cursor := Cursor{Token: -9007199254740993, Last: testID(t, 7)}

	decoded, err := DecodeCursor(cursor.Encode())
	if err != nil {
		t.Fatalf("DecodeCursor() error = %v", err)
	}
	if decoded != cursor {
		t.Errorf("DecodeCursor() = %+v, want %+v", decoded, cursor)
	}
}

func TestDecodeCursor_Malformed(t *testing.T) {
	for _, encoded := range []string{"", "????", "AAAA"} {
		if _, err := DecodeCursor(encoded); !errors.Is(err, ErrInvalidCursor) {
			t.Errorf("DecodeCursor(%q) error = %v, want ErrInvalidCursor", encoded, err)
		}
	}
}

func TestListDevices_FirstPage(t *testing.T) {
	stmt := ListDevices("r1", 10, false, nil).Build()

	want := "SELECT TOKEN(device_id), device_id FROM r1.devices LIMIT 11"
	if stmt.CQL != want {
		t.Errorf("CQL = %q, want %q", stmt.CQL, want)
	}
}

func TestListDevices_WithCursor(t *testing.T) {
	cursor := &Cursor{Token: 42, Last: testID(t, 1)}
	stmt := ListDevices("r1", 10, false, cursor).Build()

	want := "SELECT TOKEN(device_id), device_id FROM r1.devices WHERE TOKEN(device_id) >= ? LIMIT 12"
	if stmt.CQL != want {
		t.Errorf("CQL = %q, want %q", stmt.CQL, want)
	}
	if !reflect.DeepEqual(stmt.Args, []any{int64(42)}) {
		t.Errorf("Args = %v, want [42]", stmt.Args)
	}
}

func TestListDevices_Details(t *testing.T) {
	plan := ListDevices("r1", 10, true, nil)
	columns := plan.Columns()

	found := false
	for _, c := range columns {
		if c == "aliases" {
			found = true
		}
	}
	if !found {
		t.Errorf("detail columns missing aliases: %v", columns)
	}
}

func listedRow(t *testing.T, token int64, seed byte) ListedRow {
	t.Helper()
	return ListedRow{Token: token, Device: Device{ID: testID(t, seed)}}
}

func TestAssemblePage_FullTraversal(t *testing.T) {
	// Five devices, page size two: repeatedly following cursors enumerates
	// every device exactly once in nondecreasing token order.
	rows := []ListedRow{
		listedRow(t, -300, 1),
		listedRow(t, -100, 2),
		listedRow(t, 0, 3),
		listedRow(t, 250, 4),
		listedRow(t, 900, 5),
	}

	pageFor := func(cursor *Cursor) DevicePage {
		// Emulate the store: token filter and row limit from the plan.
		fetch := ListDevices("r1", 2, false, cursor).EffectiveLimit()
		var matched []ListedRow
		for _, row := range rows {
			if cursor == nil || row.Token >= cursor.Token {
				matched = append(matched, row)
			}
			if len(matched) == fetch {
				break
			}
		}
		return AssemblePage(matched, 2, cursor, nil)
	}

	var seen []ID
	var cursor *Cursor
	for page := pageFor(nil); ; page = pageFor(cursor) {
		for _, dev := range page.Devices {
			seen = append(seen, dev.ID)
		}
		if page.NextCursor == "" {
			break
		}
		decoded, err := DecodeCursor(page.NextCursor)
		if err != nil {
			t.Fatalf("DecodeCursor() error = %v", err)
		}
		cursor = &decoded
	}

	want := []ID{testID(t, 1), testID(t, 2), testID(t, 3), testID(t, 4), testID(t, 5)}
	if !reflect.DeepEqual(seen, want) {
		t.Errorf("traversal = %v, want %v", seen, want)
	}
}

func TestAssemblePage_TokenCollision(t *testing.T) {
	// Two devices share token 50. The cursor's id tie-break drops only the
	// already-returned row, so the collision partner still appears.
	first := listedRow(t, 50, 1)
	second := listedRow(t, 50, 2)
	third := listedRow(t, 60, 3)

	page := AssemblePage([]ListedRow{first, second}, 1, nil, nil)
	if len(page.Devices) != 1 || page.Devices[0].ID != first.Device.ID {
		t.Fatalf("first page = %+v", page.Devices)
	}
	cursor, err := DecodeCursor(page.NextCursor)
	if err != nil {
		t.Fatalf("DecodeCursor() error = %v", err)
	}

	page = AssemblePage([]ListedRow{first, second, third}, 1, &cursor, nil)
	if len(page.Devices) != 1 || page.Devices[0].ID != second.Device.ID {
		t.Errorf("second page = %+v, want the collision partner", page.Devices)
	}
}

func TestAssemblePage_DeletionFiltered(t *testing.T) {
	rows := []ListedRow{
		listedRow(t, 10, 1),
		listedRow(t, 20, 2),
		listedRow(t, 30, 3),
	}
	deleting := map[ID]struct{}{testID(t, 2): {}}

	page := AssemblePage(rows, 5, nil, deleting)
	if len(page.Devices) != 2 {
		t.Fatalf("Devices length = %d, want 2", len(page.Devices))
	}
	for _, dev := range page.Devices {
		if dev.ID == testID(t, 2) {
			t.Errorf("deletion-marked device listed")
		}
	}
}

func TestAssemblePage_LastPageHasNoCursor(t *testing.T) {
	rows := []ListedRow{listedRow(t, 10, 1)}
	page := AssemblePage(rows, 2, nil, nil)
	if page.NextCursor != "" {
		t.Errorf("NextCursor = %q, want empty on last page", page.NextCursor)
	}
}

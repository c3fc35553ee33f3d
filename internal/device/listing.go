package device

import (
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/noaccOS/astarte/internal/query"
)

// Cursor resumes a device listing. It carries the partition-ranking token
// of the last returned device and that device's id.
//
// The token is a hash-derived surrogate ordering, so two devices can share
// one. The id tie-breaks the boundary: the next page filters on
// token >= Token (inclusive) and the assembler drops the already-returned
// boundary row, so a collision can at worst repeat a row, never silently
// skip one.
type Cursor struct {
	Token int64
	Last  ID
}

// cursorLength is the raw byte length of an encoded cursor.
const cursorLength = 8 + idLength

// Encode returns the opaque external form of the cursor.
func (c Cursor) Encode() string {
	var raw [cursorLength]byte
	binary.BigEndian.PutUint64(raw[:8], uint64(c.Token))
	copy(raw[8:], c.Last[:])
	return base64.RawURLEncoding.EncodeToString(raw[:])
}

// DecodeCursor parses an opaque cursor.
//
// Returns ErrInvalidCursor on malformed input. Decoding reproduces exactly
// the filter that produced the next page.
func DecodeCursor(encoded string) (Cursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Cursor{}, fmt.Errorf("%w: %q", ErrInvalidCursor, encoded)
	}
	if len(raw) != cursorLength {
		return Cursor{}, fmt.Errorf("%w: %q", ErrInvalidCursor, encoded)
	}

	var c Cursor
	c.Token = int64(binary.BigEndian.Uint64(raw[:8]))
	copy(c.Last[:], raw[8:])
	return c, nil
}

// summaryColumns is the projection for a plain device listing.
var summaryColumns = []string{
	"TOKEN(device_id)",
	"device_id",
}

// detailColumns extends the projection when details are requested.
var detailColumns = []string{
	"aliases",
	"groups",
	"introspection",
	"connected",
	"last_connection",
	"last_disconnection",
	"last_seen_ip",
	"first_registration",
	"first_credentials_request",
	"total_received_msgs",
	"total_received_bytes",
}

// ListDevices plans one page of the realm's device listing.
//
// Pagination is keyset-based over the partition token of the device id: a
// cursor from the previous page narrows the scan to token >= cursor.Token.
// The plan requests one row beyond the page size so the assembler can
// detect whether another page exists, plus one more on resumed pages to
// absorb the boundary row the inclusive filter re-reads.
//
// Parameters:
//   - realm: Realm keyspace name
//   - limit: Page size
//   - includeDetails: Project the full record instead of ids only
//   - cursor: Cursor from the previous page, nil for the first page
//
// Returns:
//   - query.Plan: Immutable select plan for the executor
func ListDevices(realm string, limit int, includeDetails bool, cursor *Cursor) query.Plan {
	columns := append([]string(nil), summaryColumns...)
	if includeDetails {
		columns = append(columns, detailColumns...)
	}

	plan := query.NewPlan(realm + ".devices").Select(columns...)
	fetch := limit + 1
	if cursor != nil {
		plan = plan.Where("device_id", query.TokenGte, cursor.Token)
		fetch++
	}
	return plan.Limit(fetch)
}

// ListedRow is one row of a listing result: the device's partition token
// and the decoded record (ids only unless details were requested).
type ListedRow struct {
	Token  int64
	Device Device
}

// DevicePage is one assembled page of the device listing.
type DevicePage struct {
	Devices []Device
	// NextCursor resumes the listing after this page; empty on the last
	// page.
	NextCursor string
}

// AssemblePage turns the rows of a ListDevices plan into a page.
//
// The boundary row already returned by the previous page is dropped using
// the cursor's id tie-break. Devices with a deletion-in-progress marker are
// excluded from the page but still advance the cursor, so a resumed listing
// never revisits them.
//
// Parameters:
//   - rows: Result rows in store order (nondecreasing token)
//   - limit: Requested page size
//   - prev: Cursor that produced the plan, nil for the first page
//   - deleting: Device ids carrying a deletion marker
//
// Returns:
//   - DevicePage: Page contents and the next cursor
func AssemblePage(rows []ListedRow, limit int, prev *Cursor, deleting map[ID]struct{}) DevicePage {
	remaining := rows
	if prev != nil {
		filtered := make([]ListedRow, 0, len(rows))
		for _, row := range rows {
			if row.Token == prev.Token && row.Device.ID == prev.Last {
				continue
			}
			filtered = append(filtered, row)
		}
		remaining = filtered
	}

	hasMore := len(remaining) > limit
	if hasMore {
		remaining = remaining[:limit]
	}

	page := DevicePage{Devices: make([]Device, 0, len(remaining))}
	for _, row := range remaining {
		if _, marked := deleting[row.Device.ID]; marked {
			continue
		}
		page.Devices = append(page.Devices, row.Device)
	}

	if hasMore && len(remaining) > 0 {
		last := remaining[len(remaining)-1]
		page.NextCursor = Cursor{Token: last.Token, Last: last.Device.ID}.Encode()
	}
	return page
}

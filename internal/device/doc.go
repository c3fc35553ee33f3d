// Package device provides the device identity and consistency core.
//
// A device record lives in the realm's wide-column store together with two
// derived indexes: the name index (realm-wide alias uniqueness) and the
// grouped-device index (chronological group membership). The store offers no
// multi-table transactions, so every mutation here is planned as a single
// atomic batch that touches the record and its indexes in lockstep.
//
// # Architecture
//
//	┌────────────────────────────────────────────────────────────────┐
//	│                     Device consistency core                    │
//	│                                                                │
//	│  ┌───────────────┐   ┌───────────────┐   ┌──────────────────┐  │
//	│  │ AliasPlanner  │   │ GroupPlanner  │   │  Device listing  │  │
//	│  │ (aliases.go)  │   │  (groups.go)  │   │   (listing.go)   │  │
//	│  │               │   │               │   │                  │  │
//	│  │ • validation  │   │ • existence   │   │ • keyset paging  │  │
//	│  │ • uniqueness  │   │   checks      │   │ • cursor codec   │  │
//	│  │ • batch plans │   │ • batch plans │   │ • deletion filter│  │
//	│  └───────┬───────┘   └───────┬───────┘   └────────┬─────────┘  │
//	└──────────│───────────────────│────────────────────│────────────┘
//	           ▼                   ▼                    ▼
//	   name index table      grouped_devices       devices table
//	       (names)                table
//
// Planners never execute writes. They validate against the store through
// narrow lookup interfaces (NameLookup, ExistenceChecker, GroupProbe) and
// return query.Batch values that the caller executes atomically. Uniqueness
// therefore holds only if the whole batch commits; concurrent validations
// racing past each other is an accepted limitation of the store model.
//
// # Thread Safety
//
// Planners hold no mutable state beyond their injected dependencies and are
// safe for concurrent use.
package device

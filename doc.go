// Package recdal provides a declarative data-access layer for ERP business
// records.
//
// Define your record and line types as Go structs with struct tags, and get
// typed field access, sublist virtualization, subrecord composition, and
// serialization that follows the platform's standard- and dynamic-mode
// semantics.
//
// The module is organized into four packages:
//
//   - [github.com/netlark/go-recdal/platform] — boundary interfaces to the host record API, plus an in-memory reference client
//   - [github.com/netlark/go-recdal/rec] — mapping core: registry, record/sublist/line wrappers, field access
//   - [github.com/netlark/go-recdal/fixture] — SQLite-backed store for record snapshots used to seed test backends
//   - [github.com/netlark/go-recdal/recgen] — code generator: record layout DSL to Go structs
//
// All packages compile and test without a live ERP connection; the
// platform/memclient package implements the full boundary in memory.
package recdal

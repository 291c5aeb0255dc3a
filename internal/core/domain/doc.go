// Package domain defines the core business entities for eventscope.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawEvent: An untrusted, shape-varying record from the harvester
//   - RawDocument: The decoded harvester artifact (meta + events + notes)
//   - Event: The canonical, validated, immutable event record
//   - Group: A calendar-month bucket of events
//   - View: One render-ready derivation of the working set
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

// Package kernel provides shared value objects used across the domain model.
//
// The package contains the building blocks that every aggregate depends on:
//   - UUID: a validated, immutable identifier value object backed by
//     time-sortable version 7 UUIDs
//
// Value objects in this package are immutable, compared by value, and can only
// be created through their constructor functions. Zero values fail validation,
// which catches improperly initialized domain objects before they reach
// persistence or carrier APIs.
package kernel

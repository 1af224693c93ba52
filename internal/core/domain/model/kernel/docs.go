// Package kernel holds the value objects shared by every aggregate of the cargo
// service: UUID identifiers and geographic Location points.
//
// Both are immutable, safe for concurrent use, and invalid as zero values, so a
// forgotten initialisation is caught by Validate instead of being persisted.
package kernel

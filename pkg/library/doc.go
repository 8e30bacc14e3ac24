// Package library defines the curated directory's data model: the dataset
// document, its ordered author registry, listings, and the author references
// that tie listings to registry entries.
//
// The registry keeps document order. Reconciliation iterates it in that order,
// so the first matching author is always the earliest one in the file.
package library

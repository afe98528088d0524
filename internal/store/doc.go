// Package store persists named enrollments in a local bbolt database.
//
// Two buckets: "helpers" maps an enrollment name to the binary helper blob,
// "meta" maps the same name to a small JSON record used for listing.
// Helpers are public data; nothing in the vault is secret, and the derived
// keys are never written here.
package store

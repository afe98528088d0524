// Package enrollment orchestrates the extractor and the vault: it names
// enrollments, persists their helpers, and replays readings against them.
package enrollment

// Package domain defines core data models shared across fuzex.
// It contains plain types (parameters, lockers, helpers, keys), the sentinel
// errors reported by the planner and the extractor, and the helper wire
// codec.
package domain

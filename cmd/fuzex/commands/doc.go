// Package commands defines the fuzex CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - plan       Show the locker geometry for the configured parameters
//   - enroll     Generate a key from a reading and store its helper
//   - reproduce  Recover the key for an enrollment from a new reading
//   - ls         List stored enrollments
//   - rm         Delete an enrollment
//
// # Implementation
//
// The root command plans the extractor before any subcommand runs, so
// infeasible or invalid parameters fail early with a clear message. The
// vault database is opened lazily by the commands that touch it.
package commands

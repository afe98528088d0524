// Package app wires the extractor, vault and services for the CLI.
package app

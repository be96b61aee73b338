// Package docdex provides a CLI toolkit for documentation search indexes.
// It scans documentation sources (local markdown trees or built static
// sites), stores their pages, builds a Sphinx-compatible search index,
// queries and validates index files, and checks pre-commit hook
// configurations.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, snowball/).
package docdex

// Package core provides the business logic for branded careers pages.
//
// This package holds the domain logic independent of any transport or
// storage layer. It is used by the web handlers, the careersctl CLI and
// tests without modification.
//
// # Architecture
//
//   - Types: [Company], [ContentSection], [Job] and the ephemeral [RawCsvRow].
//   - Service: the entry point for editor operations, imports, preview
//     tokens and the public careers page.
//   - Store: the persistence boundary ([Store]); implementations live in
//     the store package.
//
// # CSV Import
//
// An import is driven by an [Importer], an explicit state machine:
//
//	idle -> uploading -> parsing -> validating -> saving -> complete
//
// with an error state reachable from parsing, validating and saving (and
// from idle when the file is rejected before parsing). The mapped batch is
// held in memory until the caller confirms, which performs a single bulk
// insert through a [JobInserter].
//
//  1. [ParseRows] reads the file (BOM skipped, UTF-8 sanitized)
//  2. [ValidateRows] reports rows missing required fields
//  3. [MapRow] normalizes every row into a [Job]
//  4. [Importer.Confirm] persists the whole batch in one call
//
// # Error Handling
//
// Domain failures are reported as [*Error] values carrying an [ErrorKind].
// Technical errors are mapped to user-friendly messages using [MapError].
// Each category has a code for support reference:
//
//   - IMP001-IMP005: Import errors (file type, size, parse, data, fields)
//   - AUTH001-AUTH003: Authentication and preview token errors
//   - DB001-DB007: Database errors (duplicates, constraints, connections)
//   - UPL002: Too many concurrent imports
package core

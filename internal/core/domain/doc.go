// Package domain defines the core business entities for File Search.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Store: A named remote document collection
//   - DocumentRecord: One ingested document and its custom metadata
//   - Operation: A handle to an asynchronous remote ingestion job
//   - GraphElement: Nodes and relationships extracted from one document
//   - Task: The progress record for one bulk ingestion job
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - FileSearchService: The remote indexing collection service
//   - TaskStore: Bulk task record persistence
//   - FolderScanner: Candidate file enumeration for bulk ingestion
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - TextGenerator: Metadata inference and graph-literal generation.
//     Without it, metadata falls back to filename-derived values and
//     graph extraction only runs on caller-supplied literals.
//   - GraphStore: Knowledge graph persistence. Without it, extracted
//     graphs are reported but not stored.
//   - TextExtractor: Local document text. Without one that supports a
//     file, the graph step is skipped unless the caller supplies text.
//   - FolderWatcher: Filesystem watching for the watch command.
//   - PromptStore: Customisable prompt templates; hardcoded defaults
//     are used otherwise.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven

// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The ingestion path is StoreRegistry -> IngestionPipeline ->
// GraphExtractor for one document, with BulkOrchestrator and
// TaskTracker layered on top for folder batches.
package services

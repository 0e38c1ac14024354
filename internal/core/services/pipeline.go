package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// Ensure IngestionPipeline implements the interface.
var _ driving.IngestService = (*IngestionPipeline)(nil)

// graphSourcePipeline is the provenance value stamped on graph elements
// produced by the ingestion pipeline, overriding the extraction default.
const graphSourcePipeline = "filesearch_pipeline"

// IngestionPipeline drives one document from local file to indexed
// record: metadata resolution, upload, operation polling and the
// optional graph step.
//
// The text generator, graph service and extractors are optional. When
// absent, inference falls back to filename-derived metadata and the
// graph step is skipped.
type IngestionPipeline struct {
	fileSearch driven.FileSearchService
	registry   *StoreRegistry
	textGen    driven.TextGenerator
	graph      driving.GraphService
	extractors []driven.TextExtractor
	prompts    driven.PromptStore
	settings   domain.IngestionSettings
	schema     domain.MetadataSchema
}

// NewIngestionPipeline creates a new ingestion pipeline. New uploads are
// written under the current metadata schema; the legacy schema remains
// readable for records created by earlier versions.
func NewIngestionPipeline(
	fileSearch driven.FileSearchService,
	registry *StoreRegistry,
	textGen driven.TextGenerator,
	graph driving.GraphService,
	extractors []driven.TextExtractor,
	prompts driven.PromptStore,
	settings domain.IngestionSettings,
) *IngestionPipeline {
	return &IngestionPipeline{
		fileSearch: fileSearch,
		registry:   registry,
		textGen:    textGen,
		graph:      graph,
		extractors: extractors,
		prompts:    prompts,
		settings:   settings,
		schema:     domain.SchemaCurrent,
	}
}

// IngestDocument runs the full pipeline for one file.
func (p *IngestionPipeline) IngestDocument(ctx context.Context, req driving.IngestRequest) (*driving.IngestReceipt, error) {
	// 1. Validate preconditions before any remote I/O
	if !req.Type.IsValid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDocumentType, req.Type)
	}
	info, err := os.Stat(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrValidation, req.FilePath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrValidation, req.FilePath)
	}
	filename := filepath.Base(req.FilePath)

	// 2. Resolve metadata: caller-supplied wins, inference otherwise
	var meta domain.DocumentMeta
	inferred := false
	if req.Title != "" {
		meta, err = ManualMetadata(req.Title, req.ID, filename)
		if err != nil {
			return nil, err
		}
	} else {
		meta = p.InferMetadata(ctx, req.FilePath, filename)
		inferred = true
	}

	// 3. Resolve the target store
	store, err := p.registry.StoreFor(ctx, req.Type)
	if err != nil {
		return nil, err
	}

	// 4. Upload and wait for the remote job
	if _, err := p.Upload(ctx, store, req.FilePath, meta, p.schema); err != nil {
		return nil, err
	}
	logger.Info("Indexed %s into %s", filename, store.DisplayName)

	receipt := &driving.IngestReceipt{Store: store, Meta: meta, Inferred: inferred}

	// 5. Graph step, best effort: a failure here never undoes the
	// completed index write
	p.runGraphStep(ctx, req, meta, receipt)
	return receipt, nil
}

// Upload submits one file to a store and blocks until the remote
// operation finishes. The operation's error is checked at both the top
// and the nested result level after every fetch.
func (p *IngestionPipeline) Upload(ctx context.Context, store domain.Store, filePath string, meta domain.DocumentMeta, schema domain.MetadataSchema) (domain.Operation, error) {
	op, err := p.fileSearch.Upload(ctx, driven.UploadRequest{
		StoreName:   store.Name,
		FilePath:    filePath,
		DisplayName: meta.Title,
		Chunking:    p.settings.Chunking,
		Metadata:    domain.CustomMetadata(schema, meta),
	})
	if err != nil {
		return domain.Operation{}, fmt.Errorf("%w: upload %s: %w", domain.ErrOperation, filepath.Base(filePath), err)
	}
	if failure := op.Failure(); failure != nil {
		return op, operationFailed(failure)
	}
	return p.awaitOperation(ctx, op)
}

// awaitOperation polls an operation at a fixed interval until it is
// done. Polling honours ctx cancellation and, when configured, an
// overall timeout, so a stuck remote job cannot stall the caller
// indefinitely.
func (p *IngestionPipeline) awaitOperation(ctx context.Context, op domain.Operation) (domain.Operation, error) {
	interval := p.settings.PollInterval
	if interval <= 0 {
		interval = domain.DefaultAppSettings().Ingestion.PollInterval
	}
	if p.settings.UploadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.settings.UploadTimeout)
		defer cancel()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !op.Done {
		select {
		case <-ctx.Done():
			return op, fmt.Errorf("%w: waiting for %s: %w", domain.ErrOperation, op.Name, ctx.Err())
		case <-ticker.C:
		}

		var err error
		op, err = p.fileSearch.GetOperation(ctx, op.Name)
		if err != nil {
			return op, fmt.Errorf("%w: poll %s: %w", domain.ErrOperation, op.Name, err)
		}
		if failure := op.Failure(); failure != nil {
			return op, operationFailed(failure)
		}
		logger.Debug("[ingest] operation %s done=%v", op.Name, op.Done)
	}

	// The terminal state can carry an error the loop never fetched,
	// e.g. when the operation arrived already done.
	if failure := op.Failure(); failure != nil {
		return op, operationFailed(failure)
	}
	return op, nil
}

// InferMetadata asks the text generator for a document's title and id.
// Inference never fails the caller: any problem falls back to a
// filename-derived title and the unknown id.
func (p *IngestionPipeline) InferMetadata(ctx context.Context, filePath, filename string) domain.DocumentMeta {
	fallback := domain.DocumentMeta{
		Title:    strings.TrimSuffix(filename, filepath.Ext(filename)),
		ID:       domain.UnknownID,
		FileName: filename,
	}

	if p.textGen == nil {
		return fallback
	}
	prompt, err := p.prompts.Load(driven.PromptMetadataInference)
	if err != nil {
		logger.Warn("[ingest] metadata prompt unavailable: %v", err)
		return fallback
	}

	raw, err := p.textGen.GenerateWithFile(ctx, filePath, prompt)
	if err != nil {
		logger.Warn("[ingest] metadata inference failed for %s: %v", filename, err)
		return fallback
	}

	meta, err := parseInferredMetadata(raw)
	if err != nil {
		logger.Warn("[ingest] metadata reply unusable for %s: %v", filename, err)
		return fallback
	}
	meta.FileName = filename
	logger.Debug("[ingest] inferred metadata for %s: title=%q id=%q", filename, meta.Title, meta.ID)
	return meta
}

// ManualMetadata validates caller-supplied metadata. The title must be
// non-blank after trimming; a blank id becomes the unknown id.
func ManualMetadata(title, id, filename string) (domain.DocumentMeta, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return domain.DocumentMeta{}, fmt.Errorf("%w: title must not be blank", domain.ErrValidation)
	}
	id = strings.TrimSpace(id)
	if id == "" {
		id = domain.UnknownID
	}
	return domain.DocumentMeta{Title: title, ID: id, FileName: filename}, nil
}

// runGraphStep extracts and stores a graph for the document when text
// is available. Failures are recorded on the receipt, never returned.
func (p *IngestionPipeline) runGraphStep(ctx context.Context, req driving.IngestRequest, meta domain.DocumentMeta, receipt *driving.IngestReceipt) {
	if req.SkipGraph || p.graph == nil {
		receipt.GraphSkipped = true
		receipt.GraphNote = "graph step disabled"
		return
	}

	text := req.Text
	if text == "" {
		text = p.extractText(ctx, req.FilePath)
	}
	if strings.TrimSpace(text) == "" {
		receipt.GraphSkipped = true
		receipt.GraphNote = "no text available for graph extraction"
		return
	}

	element, err := p.graph.ExtractFromText(ctx, text, graphProvenance(meta))
	if err != nil {
		logger.Warn("[graph] extraction failed for %s: %v", meta.FileName, err)
		receipt.GraphSkipped = true
		receipt.GraphNote = err.Error()
		return
	}
	if err := p.graph.Store(ctx, []domain.GraphElement{*element}); err != nil {
		logger.Warn("[graph] store failed for %s: %v", meta.FileName, err)
		receipt.GraphSkipped = true
		receipt.GraphNote = err.Error()
		return
	}

	receipt.GraphNodes = len(element.Nodes)
	receipt.GraphRelationships = len(element.Relationships)
	logger.Info("Graph for %s: %d nodes, %d relationships", meta.FileName, receipt.GraphNodes, receipt.GraphRelationships)
}

// extractText runs the first extractor that supports the file. No
// extractor or an extraction error both yield empty text.
func (p *IngestionPipeline) extractText(ctx context.Context, path string) string {
	for _, extractor := range p.extractors {
		if !extractor.Supports(path) {
			continue
		}
		text, err := extractor.Extract(ctx, path)
		if err != nil {
			logger.Warn("[ingest] text extraction failed for %s: %v", filepath.Base(path), err)
			return ""
		}
		return text
	}
	return ""
}

// graphProvenance is the metadata stamped on every node and relationship
// extracted from a document.
func graphProvenance(meta domain.DocumentMeta) map[string]string {
	return map[string]string{
		"document_title": meta.Title,
		"document_id":    meta.ID,
		"file_name":      meta.FileName,
		"source":         graphSourcePipeline,
	}
}

// parseInferredMetadata decodes the model's JSON reply, tolerating a
// wrapping markdown code fence.
func parseInferredMetadata(raw string) (domain.DocumentMeta, error) {
	var reply struct {
		Title string `json:"title"`
		ID    string `json:"id"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(raw)), &reply); err != nil {
		return domain.DocumentMeta{}, fmt.Errorf("%w: %w", domain.ErrMetadataInference, err)
	}

	title := strings.TrimSpace(reply.Title)
	if title == "" {
		return domain.DocumentMeta{}, fmt.Errorf("%w: blank title in reply", domain.ErrMetadataInference)
	}
	id := strings.TrimSpace(reply.ID)
	if id == "" {
		id = domain.UnknownID
	}
	return domain.DocumentMeta{Title: title, ID: id}, nil
}

// stripCodeFence removes a wrapping markdown code fence when present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// operationFailed converts a remote operation error into a Go error.
func operationFailed(opErr *domain.OperationError) error {
	if opErr.Code != 0 {
		return fmt.Errorf("%w: remote error %d: %s", domain.ErrOperation, opErr.Code, opErr.Message)
	}
	return fmt.Errorf("%w: remote error: %s", domain.ErrOperation, opErr.Message)
}

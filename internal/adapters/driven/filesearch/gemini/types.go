package gemini

import (
	"strconv"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

// Wire types for the v1beta REST surface. Field names follow the
// canonical proto3 JSON mapping.

type storeResource struct {
	Name        string `json:"name,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

type listStoresResponse struct {
	FileSearchStores []storeResource `json:"fileSearchStores"`
	NextPageToken    string          `json:"nextPageToken"`
}

type createStoreRequest struct {
	DisplayName string `json:"displayName,omitempty"`
}

type customMetadatum struct {
	Key          string   `json:"key"`
	StringValue  string   `json:"stringValue,omitempty"`
	NumericValue *float64 `json:"numericValue,omitempty"`
}

// value flattens a metadata entry to its string form. Numeric values are
// formatted; the core only compares metadata as strings.
func (m customMetadatum) value() string {
	if m.StringValue != "" {
		return m.StringValue
	}
	if m.NumericValue != nil {
		return strconv.FormatFloat(*m.NumericValue, 'f', -1, 64)
	}
	return ""
}

type whiteSpaceConfig struct {
	MaxTokensPerChunk int `json:"maxTokensPerChunk,omitempty"`
	MaxOverlapTokens  int `json:"maxOverlapTokens,omitempty"`
}

type chunkingConfig struct {
	WhiteSpaceConfig *whiteSpaceConfig `json:"whiteSpaceConfig,omitempty"`
}

type uploadStartRequest struct {
	DisplayName    string            `json:"displayName,omitempty"`
	CustomMetadata []customMetadatum `json:"customMetadata,omitempty"`
	ChunkingConfig *chunkingConfig   `json:"chunkingConfig,omitempty"`
}

type statusProto struct {
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Status  string `json:"status,omitempty"`
}

type operationResult struct {
	Error *statusProto `json:"error,omitempty"`
}

type operationResource struct {
	Name   string           `json:"name"`
	Done   bool             `json:"done"`
	Error  *statusProto     `json:"error,omitempty"`
	Result *operationResult `json:"result,omitempty"`
}

type documentResource struct {
	Name           string            `json:"name"`
	DisplayName    string            `json:"displayName,omitempty"`
	CustomMetadata []customMetadatum `json:"customMetadata,omitempty"`
}

type listDocumentsResponse struct {
	Documents     []documentResource `json:"documents"`
	NextPageToken string             `json:"nextPageToken"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type fileSearchTool struct {
	FileSearchStoreNames []string `json:"fileSearchStoreNames"`
}

type tool struct {
	FileSearch *fileSearchTool `json:"fileSearch,omitempty"`
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
	Tools    []tool    `json:"tools,omitempty"`
}

type chunkSource struct {
	URI   string `json:"uri,omitempty"`
	Title string `json:"title,omitempty"`
}

type groundingChunk struct {
	Web              *chunkSource `json:"web,omitempty"`
	RetrievedContext *chunkSource `json:"retrievedContext,omitempty"`
}

type groundingMetadata struct {
	GroundingChunks []groundingChunk `json:"groundingChunks"`
}

type candidate struct {
	Content           *content           `json:"content,omitempty"`
	GroundingMetadata *groundingMetadata `json:"groundingMetadata,omitempty"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

// toStore maps a wire store onto the domain type.
func (s storeResource) toStore() domain.Store {
	return domain.Store{Name: s.Name, DisplayName: s.DisplayName}
}

// toOperation maps a wire operation onto the domain type, preserving
// both the top-level error and the one nested under result.
func (o operationResource) toOperation() domain.Operation {
	op := domain.Operation{Name: o.Name, Done: o.Done}
	if o.Error != nil {
		op.Error = &domain.OperationError{Code: o.Error.Code, Message: o.Error.Message}
	}
	if o.Result != nil {
		op.Result = &domain.OperationResult{}
		if o.Result.Error != nil {
			op.Result.Error = &domain.OperationError{
				Code:    o.Result.Error.Code,
				Message: o.Result.Error.Message,
			}
		}
	}
	return op
}

// toRecord maps a wire document onto the domain type. The schema tag is
// derived from which mandatory metadata key the record carries.
func (d documentResource) toRecord() domain.DocumentRecord {
	entries := make([]domain.MetadataEntry, 0, len(d.CustomMetadata))
	for _, m := range d.CustomMetadata {
		entries = append(entries, domain.MetadataEntry{Key: m.Key, Value: m.value()})
	}
	return domain.DocumentRecord{
		Name:        d.Name,
		DisplayName: d.DisplayName,
		Schema:      domain.DetectSchema(entries),
		Metadata:    entries,
	}
}

// toWireMetadata maps ordered domain metadata onto the wire layout.
func toWireMetadata(entries []domain.MetadataEntry) []customMetadatum {
	if len(entries) == 0 {
		return nil
	}
	out := make([]customMetadatum, 0, len(entries))
	for _, e := range entries {
		out = append(out, customMetadatum{Key: e.Key, StringValue: e.Value})
	}
	return out
}

// toWireChunking maps a chunking policy onto the wire layout. A zero
// policy yields nil so the server default applies.
func toWireChunking(policy domain.ChunkingPolicy) *chunkingConfig {
	if policy.MaxTokensPerChunk == 0 && policy.MaxOverlapTokens == 0 {
		return nil
	}
	return &chunkingConfig{
		WhiteSpaceConfig: &whiteSpaceConfig{
			MaxTokensPerChunk: policy.MaxTokensPerChunk,
			MaxOverlapTokens:  policy.MaxOverlapTokens,
		},
	}
}

package domain

import "strings"

// MetadataSchema tags which custom-metadata layout a document uses.
// The schema is explicit rather than inferred from which keys happen
// to be present.
type MetadataSchema string

const (
	// SchemaLegacy is the original layout: title, optional ID, file_name.
	// The dedup key is title.
	SchemaLegacy MetadataSchema = "legacy"

	// SchemaCurrent is the layout used for new uploads: short_name,
	// optional abstract_title, optional abstract_id, file_name.
	// The dedup key is short_name.
	SchemaCurrent MetadataSchema = "current"
)

// IsValid returns true if the schema is recognised.
func (s MetadataSchema) IsValid() bool {
	switch s {
	case SchemaLegacy, SchemaCurrent:
		return true
	default:
		return false
	}
}

// DedupKeyField returns the metadata key whose value identifies a
// document for deduplication under this schema.
func (s MetadataSchema) DedupKeyField() string {
	if s == SchemaLegacy {
		return "title"
	}
	return "short_name"
}

// MetadataEntry is one key-value pair of remote custom metadata.
// Order is preserved as the remote service returns it.
type MetadataEntry struct {
	Key   string
	Value string
}

// DocumentMeta is the caller- or inference-supplied metadata for one
// document ahead of upload.
type DocumentMeta struct {
	// Title is the human-readable document title. Mandatory.
	Title string

	// ID is the document identifier, "N/A" when unknown.
	ID string

	// FileName is the original filename including extension.
	FileName string
}

// UnknownID is stored when no document identifier could be determined.
const UnknownID = "N/A"

// CustomMetadata maps DocumentMeta onto the ordered metadata entries for
// the given schema. Mandatory keys are always present; optional keys are
// omitted entirely when empty rather than written as blank values.
func CustomMetadata(schema MetadataSchema, meta DocumentMeta) []MetadataEntry {
	if schema == SchemaLegacy {
		return legacyMetadata(meta)
	}
	return currentMetadata(meta)
}

func legacyMetadata(meta DocumentMeta) []MetadataEntry {
	entries := []MetadataEntry{{Key: "title", Value: meta.Title}}
	if meta.ID != "" {
		entries = append(entries, MetadataEntry{Key: "ID", Value: meta.ID})
	}
	entries = append(entries, MetadataEntry{Key: "file_name", Value: meta.FileName})
	return entries
}

func currentMetadata(meta DocumentMeta) []MetadataEntry {
	shortName := strings.TrimSuffix(meta.FileName, pathExt(meta.FileName))
	entries := []MetadataEntry{{Key: "short_name", Value: shortName}}
	if meta.Title != "" {
		entries = append(entries, MetadataEntry{Key: "abstract_title", Value: meta.Title})
	}
	if meta.ID != "" && meta.ID != UnknownID {
		entries = append(entries, MetadataEntry{Key: "abstract_id", Value: meta.ID})
	}
	entries = append(entries, MetadataEntry{Key: "file_name", Value: meta.FileName})
	return entries
}

// pathExt returns the filename extension including the dot, or "" when
// the name has none. Mirrors path.Ext without importing it here.
func pathExt(name string) string {
	for i := len(name) - 1; i >= 0 && name[i] != '/'; i-- {
		if name[i] == '.' {
			return name[i:]
		}
	}
	return ""
}

// DocumentRecord is one ingested document inside a store. Created on
// upload completion and never mutated afterwards; removal happens only
// through an explicit delete.
type DocumentRecord struct {
	// Name is the opaque remote identifier,
	// e.g. "fileSearchStores/abc/documents/def".
	Name string

	// DisplayName is the title the document was uploaded under.
	DisplayName string

	// Schema tags which metadata layout the record carries.
	Schema MetadataSchema

	// Metadata is the ordered custom metadata as stored remotely.
	Metadata []MetadataEntry
}

// MetadataValue returns the value for key and whether it was present.
func (r *DocumentRecord) MetadataValue(key string) (string, bool) {
	for _, entry := range r.Metadata {
		if entry.Key == key {
			return entry.Value, true
		}
	}
	return "", false
}

// DedupKey returns the document's dedup key under its schema, and false
// when the record carries no such key.
func (r *DocumentRecord) DedupKey() (string, bool) {
	return r.MetadataValue(r.Schema.DedupKeyField())
}

// DetectSchema tags a record fetched from the remote store by which
// mandatory key it carries. This is the single place where key presence
// is inspected; everything downstream branches on the returned tag.
func DetectSchema(entries []MetadataEntry) MetadataSchema {
	for _, entry := range entries {
		if entry.Key == "short_name" {
			return SchemaCurrent
		}
	}
	return SchemaLegacy
}

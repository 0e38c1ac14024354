package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCustomMetadata_LegacySchema tests the legacy metadata layout
func TestCustomMetadata_LegacySchema(t *testing.T) {
	meta := DocumentMeta{
		Title:    "Spinal Congestion Cases",
		ID:       "354",
		FileName: "354.pdf",
	}

	entries := CustomMetadata(SchemaLegacy, meta)

	require.Len(t, entries, 3)
	assert.Equal(t, MetadataEntry{Key: "title", Value: "Spinal Congestion Cases"}, entries[0])
	assert.Equal(t, MetadataEntry{Key: "ID", Value: "354"}, entries[1])
	assert.Equal(t, MetadataEntry{Key: "file_name", Value: "354.pdf"}, entries[2])
}

// TestCustomMetadata_LegacyOmitsEmptyID tests that an empty ID is not written
func TestCustomMetadata_LegacyOmitsEmptyID(t *testing.T) {
	entries := CustomMetadata(SchemaLegacy, DocumentMeta{
		Title:    "Untitled",
		FileName: "doc.pdf",
	})

	require.Len(t, entries, 2)
	assert.Equal(t, "title", entries[0].Key)
	assert.Equal(t, "file_name", entries[1].Key)
}

// TestCustomMetadata_CurrentSchema tests the current metadata layout
func TestCustomMetadata_CurrentSchema(t *testing.T) {
	meta := DocumentMeta{
		Title:    "Spinal Congestion Cases",
		ID:       "354",
		FileName: "354.pdf",
	}

	entries := CustomMetadata(SchemaCurrent, meta)

	require.Len(t, entries, 4)
	assert.Equal(t, MetadataEntry{Key: "short_name", Value: "354"}, entries[0])
	assert.Equal(t, MetadataEntry{Key: "abstract_title", Value: "Spinal Congestion Cases"}, entries[1])
	assert.Equal(t, MetadataEntry{Key: "abstract_id", Value: "354"}, entries[2])
	assert.Equal(t, MetadataEntry{Key: "file_name", Value: "354.pdf"}, entries[3])
}

// TestCustomMetadata_CurrentOmitsOptionalFields tests that optional keys
// are omitted entirely rather than written empty
func TestCustomMetadata_CurrentOmitsOptionalFields(t *testing.T) {
	entries := CustomMetadata(SchemaCurrent, DocumentMeta{
		ID:       UnknownID,
		FileName: "355.pdf",
	})

	require.Len(t, entries, 2)
	assert.Equal(t, MetadataEntry{Key: "short_name", Value: "355"}, entries[0])
	assert.Equal(t, MetadataEntry{Key: "file_name", Value: "355.pdf"}, entries[1])
}

// TestDocumentRecord_DedupKey tests dedup key lookup per schema
func TestDocumentRecord_DedupKey(t *testing.T) {
	tests := []struct {
		name   string
		record DocumentRecord
		want   string
		ok     bool
	}{
		{
			name: "current schema uses short_name",
			record: DocumentRecord{
				Schema: SchemaCurrent,
				Metadata: []MetadataEntry{
					{Key: "short_name", Value: "354"},
					{Key: "file_name", Value: "354.pdf"},
				},
			},
			want: "354",
			ok:   true,
		},
		{
			name: "legacy schema uses title",
			record: DocumentRecord{
				Schema: SchemaLegacy,
				Metadata: []MetadataEntry{
					{Key: "title", Value: "Old Manuscript"},
					{Key: "file_name", Value: "old.pdf"},
				},
			},
			want: "Old Manuscript",
			ok:   true,
		},
		{
			name: "missing key",
			record: DocumentRecord{
				Schema:   SchemaCurrent,
				Metadata: []MetadataEntry{{Key: "file_name", Value: "x.pdf"}},
			},
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.record.DedupKey()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// TestDetectSchema tests schema tagging from remote metadata
func TestDetectSchema(t *testing.T) {
	current := DetectSchema([]MetadataEntry{
		{Key: "short_name", Value: "354"},
		{Key: "file_name", Value: "354.pdf"},
	})
	assert.Equal(t, SchemaCurrent, current)

	legacy := DetectSchema([]MetadataEntry{
		{Key: "title", Value: "Old Manuscript"},
		{Key: "ID", Value: "12"},
		{Key: "file_name", Value: "old.pdf"},
	})
	assert.Equal(t, SchemaLegacy, legacy)
}

// TestMetadataSchema_DedupKeyField tests key selection per schema
func TestMetadataSchema_DedupKeyField(t *testing.T) {
	assert.Equal(t, "title", SchemaLegacy.DedupKeyField())
	assert.Equal(t, "short_name", SchemaCurrent.DedupKeyField())
}

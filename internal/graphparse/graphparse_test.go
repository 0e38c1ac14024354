package graphparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutput = `Nodes:
Node(id='paralysis_spinal_blood_congestion', type='ClinicalObservation')
Node(id='incomplete_paralysis', type='ClinicalObservation')
Node(id='spontaneous_resolution', type='TherapeuticOutcome')
Node(id='Ollivier', type='SourceText')

Relationships:
Relationship(subj=Node(id='paralysis_spinal_blood_congestion', type='ClinicalObservation'), obj=Node(id='incomplete_paralysis', type='ClinicalObservation'), type='co_occurs_with')
Relationship(subj=Node(id='paralysis_spinal_blood_congestion', type='ClinicalObservation'), obj=Node(id='spontaneous_resolution', type='TherapeuticOutcome'), type='results_in')
Relationship(subj=Node(id='paralysis_spinal_blood_congestion', type='ClinicalObservation'), obj=Node(id='Ollivier', type='SourceText'), type='described_in', timestamp='1827')
`

// TestParse_WellFormedOutput tests a complete generator response
func TestParse_WellFormedOutput(t *testing.T) {
	res := Parse(sampleOutput)

	require.Len(t, res.Nodes, 4)
	require.Len(t, res.Relationships, 3)
	assert.Empty(t, res.Diagnostics)

	assert.Equal(t, "paralysis_spinal_blood_congestion", res.Nodes[0].ID)
	assert.Equal(t, "ClinicalObservation", res.Nodes[0].Type)
	assert.Equal(t, "Ollivier", res.Nodes[3].ID)

	first := res.Relationships[0]
	assert.Equal(t, "paralysis_spinal_blood_congestion", first.Subject.ID)
	assert.Equal(t, "incomplete_paralysis", first.Object.ID)
	assert.Equal(t, "co_occurs_with", first.Type)
	assert.Empty(t, first.Timestamp)

	last := res.Relationships[2]
	assert.Equal(t, "described_in", last.Type)
	assert.Equal(t, "1827", last.Timestamp)
}

// TestParse_EndpointsNotReportedStandalone tests that node literals
// embedded in a well-formed relationship stay with the relationship
func TestParse_EndpointsNotReportedStandalone(t *testing.T) {
	text := `Relationship(subj=Node(id='a', type='T'), obj=Node(id='b', type='T'), type='associated_with')`

	res := Parse(text)

	assert.Empty(t, res.Nodes)
	require.Len(t, res.Relationships, 1)
	assert.Equal(t, "a", res.Relationships[0].Subject.ID)
	assert.Equal(t, "b", res.Relationships[0].Object.ID)
}

// TestParse_WhitespaceTolerance tests literals split across lines
func TestParse_WhitespaceTolerance(t *testing.T) {
	text := `Relationship(
		subj = Node( id='cold_exposure', type='ContextualFactor' ),
		obj  = Node( id='paralysis', type='ClinicalObservation' ),
		type = 'associated_with'
	)`

	res := Parse(text)

	require.Len(t, res.Relationships, 1)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, "cold_exposure", res.Relationships[0].Subject.ID)
}

// TestParse_MalformedNode tests that a broken node literal is skipped
// with a diagnostic
func TestParse_MalformedNode(t *testing.T) {
	text := `Node(id='orphan') and Node(id='whole', type='SourceText')`

	res := Parse(text)

	require.Len(t, res.Nodes, 1)
	assert.Equal(t, "whole", res.Nodes[0].ID)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, 0, res.Diagnostics[0].Offset)
	assert.Contains(t, res.Diagnostics[0].Reason, "expected")
}

// TestParse_MalformedRelationshipSalvagesNodes tests that intact node
// literals inside a broken relationship are still recovered
func TestParse_MalformedRelationshipSalvagesNodes(t *testing.T) {
	text := `Relationship(subj=Node(id='a', type='T'), obj=Node(id='b', type='T'))`

	res := Parse(text)

	assert.Empty(t, res.Relationships)
	require.Len(t, res.Nodes, 2)
	assert.Equal(t, "a", res.Nodes[0].ID)
	assert.Equal(t, "b", res.Nodes[1].ID)
	require.Len(t, res.Diagnostics, 1)
	assert.Contains(t, res.Diagnostics[0].Fragment, "Relationship(")
}

// TestParse_UnterminatedQuote tests unterminated value handling
func TestParse_UnterminatedQuote(t *testing.T) {
	res := Parse(`Node(id='runaway, type='X')`)

	// The first quote swallows up to the next one, leaving a broken
	// literal. Nothing is admitted.
	assert.Empty(t, res.Nodes)
	assert.NotEmpty(t, res.Diagnostics)
}

// TestParse_WordBoundary tests that longer identifiers are not mistaken
// for literals
func TestParse_WordBoundary(t *testing.T) {
	res := Parse(`SuperNode(id='x', type='T') LymphNode(id='y', type='T')`)

	assert.Empty(t, res.Nodes)
	assert.Empty(t, res.Diagnostics)
}

// TestParse_ProseOnly tests text with no literals at all
func TestParse_ProseOnly(t *testing.T) {
	res := Parse("The model found no entities worth reporting in this passage.")

	assert.Empty(t, res.Nodes)
	assert.Empty(t, res.Relationships)
	assert.Empty(t, res.Diagnostics)
}

// TestParse_EmptyValuesAreShapeValid tests that the parser only checks
// shape; empty values are a semantic concern for the extractor
func TestParse_EmptyValuesAreShapeValid(t *testing.T) {
	res := Parse(`Node(id='', type='')`)

	require.Len(t, res.Nodes, 1)
	assert.Empty(t, res.Nodes[0].ID)
	assert.Empty(t, res.Nodes[0].Type)
}

// TestParse_KeywordWithoutParen tests that bare keywords are ignored
func TestParse_KeywordWithoutParen(t *testing.T) {
	res := Parse("Node types should be one of the following: Relationship types too.")

	assert.Empty(t, res.Nodes)
	assert.Empty(t, res.Relationships)
	assert.Empty(t, res.Diagnostics)
}

// TestParse_DuplicateNodesPreserved tests that the parser reports every
// occurrence; first-wins dedup happens downstream
func TestParse_DuplicateNodesPreserved(t *testing.T) {
	text := `Node(id='a', type='T') Node(id='a', type='U')`

	res := Parse(text)

	require.Len(t, res.Nodes, 2)
	assert.Equal(t, "T", res.Nodes[0].Type)
	assert.Equal(t, "U", res.Nodes[1].Type)
}

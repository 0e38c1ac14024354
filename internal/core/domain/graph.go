package domain

import "strings"

// NodeType categorises an extracted entity. The vocabulary is fixed and
// embedded in the extraction prompt; the parser itself only requires a
// non-empty type so that novel categories degrade gracefully.
type NodeType string

// Node categories for historical spine-science texts.
const (
	// NodeClinicalObservation covers signs, symptoms and disease presentations.
	NodeClinicalObservation NodeType = "ClinicalObservation"

	// NodeTherapeuticOutcome covers treatment responses and recovery patterns.
	NodeTherapeuticOutcome NodeType = "TherapeuticOutcome"

	// NodeContextualFactor covers environmental, behavioural and constitutional factors.
	NodeContextualFactor NodeType = "ContextualFactor"

	// NodeMechanisticConcept covers traditional explanatory models and processes.
	NodeMechanisticConcept NodeType = "MechanisticConcept"

	// NodeTherapeuticApproach covers interventions, remedies and methods.
	NodeTherapeuticApproach NodeType = "TherapeuticApproach"

	// NodeSourceText references original documents or authors.
	NodeSourceText NodeType = "SourceText"
)

// AllNodeTypes returns the node vocabulary in prompt order.
func AllNodeTypes() []NodeType {
	return []NodeType{
		NodeClinicalObservation,
		NodeTherapeuticOutcome,
		NodeContextualFactor,
		NodeMechanisticConcept,
		NodeTherapeuticApproach,
		NodeSourceText,
	}
}

// RelationshipType categorises an extracted relationship.
type RelationshipType string

// Relationship categories.
const (
	RelCoOccursWith   RelationshipType = "co_occurs_with"
	RelPrecededBy     RelationshipType = "preceded_by"
	RelFollowedBy     RelationshipType = "followed_by"
	RelModifiedBy     RelationshipType = "modified_by"
	RelRespondsTo     RelationshipType = "responds_to"
	RelAssociatedWith RelationshipType = "associated_with"
	RelResultsIn      RelationshipType = "results_in"
	RelDescribedIn    RelationshipType = "described_in"
	RelContradicts    RelationshipType = "contradicts"
	RelCorroborates   RelationshipType = "corroborates"
)

// AllRelationshipTypes returns the relationship vocabulary in prompt order.
func AllRelationshipTypes() []RelationshipType {
	return []RelationshipType{
		RelCoOccursWith,
		RelPrecededBy,
		RelFollowedBy,
		RelModifiedBy,
		RelRespondsTo,
		RelAssociatedWith,
		RelResultsIn,
		RelDescribedIn,
		RelContradicts,
		RelCorroborates,
	}
}

// SourceAgentCreated is the default provenance value attached to every
// extracted node and relationship unless the caller overrides it.
const SourceAgentCreated = "agent_created"

// Node is one extracted entity. Identity is the id within a single
// extraction; later duplicates are dropped, first occurrence wins.
type Node struct {
	// ID is the stable identifier within one extraction.
	ID string

	// Type is the entity category.
	Type string

	// Properties always carries name = ID plus provenance metadata.
	Properties map[string]string
}

// Relationship links two nodes captured in the same extraction.
// Relationships referencing an unknown node id are discarded.
type Relationship struct {
	// Subject is the originating node.
	Subject *Node

	// Object is the target node.
	Object *Node

	// Type is the relationship category.
	Type string

	// Timestamp is optional; empty means absent.
	Timestamp string

	// Properties carries provenance metadata.
	Properties map[string]string
}

// GraphElement is the bundle of nodes and relationships produced by one
// extraction pass over a document's text. Immutable once returned.
type GraphElement struct {
	Nodes         []Node
	Relationships []Relationship

	// Source is the text the graph was extracted from.
	Source string
}

// ValidNodeID reports whether id is usable as a node identity: a
// non-blank string. Integer-looking values are strings by the time they
// reach here and pass the same check.
func ValidNodeID(id string) bool {
	return strings.TrimSpace(id) != ""
}

// ValidGraphType reports whether a node or relationship type is
// well-formed: a non-blank string.
func ValidGraphType(t string) bool {
	return strings.TrimSpace(t) != ""
}

// MergeProperties builds the property map for an extracted node:
// name = id, then the default provenance source, with caller metadata
// taking precedence over the default.
func MergeProperties(id string, metadata map[string]string) map[string]string {
	props := map[string]string{
		"name":   id,
		"source": SourceAgentCreated,
	}
	for k, v := range metadata {
		props[k] = v
	}
	return props
}

// RelationshipProperties builds the property map for an extracted
// relationship: provenance only, no name key, with caller metadata
// taking precedence over the default source.
func RelationshipProperties(metadata map[string]string) map[string]string {
	props := map[string]string{"source": SourceAgentCreated}
	for k, v := range metadata {
		props[k] = v
	}
	return props
}

package services

import (
	"context"
	"fmt"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/core/ports/driving"
	"github.com/Sidharth1743/File-Search/internal/graphparse"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// Ensure GraphExtractor implements the interface.
var _ driving.GraphService = (*GraphExtractor)(nil)

// GraphExtractor turns generated text into a validated knowledge graph.
// Extraction is deterministic and side-effect-free beyond logging:
// malformed fragments, invalid nodes and dangling relationships are
// dropped, never fatal.
type GraphExtractor struct {
	textGen    driven.TextGenerator
	graphStore driven.GraphStore
	prompts    driven.PromptStore
}

// NewGraphExtractor creates a new graph extractor. The text generator
// is only needed by ExtractFromText and the graph store only by Store;
// either may be nil when that path is unused.
func NewGraphExtractor(textGen driven.TextGenerator, graphStore driven.GraphStore, prompts driven.PromptStore) *GraphExtractor {
	return &GraphExtractor{
		textGen:    textGen,
		graphStore: graphStore,
		prompts:    prompts,
	}
}

// Extract parses node and relationship literals out of generated text
// and assembles the graph. Nodes are registered first occurrence wins;
// relationships must reference registered nodes on both ends or they
// are discarded. Caller metadata is merged into every element's
// properties and takes precedence over the extraction defaults.
func (g *GraphExtractor) Extract(_ context.Context, generated string, metadata map[string]string) (*domain.GraphElement, error) {
	parsed := graphparse.Parse(generated)
	for _, diag := range parsed.Diagnostics {
		logger.Debug("[graph] dropped fragment at offset %d: %q (%s)", diag.Offset, diag.Fragment, diag.Reason)
	}

	// 1. Register nodes, first occurrence wins
	nodes := make(map[string]*domain.Node)
	order := make([]string, 0, len(parsed.Nodes))
	for _, n := range parsed.Nodes {
		if !domain.ValidNodeID(n.ID) || !domain.ValidGraphType(n.Type) {
			logger.Warn("[graph] dropping node with blank id or type at offset %d", n.Offset)
			continue
		}
		if _, seen := nodes[n.ID]; seen {
			continue
		}
		nodes[n.ID] = &domain.Node{
			ID:         n.ID,
			Type:       n.Type,
			Properties: domain.MergeProperties(n.ID, metadata),
		}
		order = append(order, n.ID)
	}

	// 2. Admit relationships whose endpoints are both registered
	relationships := make([]domain.Relationship, 0, len(parsed.Relationships))
	for _, r := range parsed.Relationships {
		if !domain.ValidGraphType(r.Type) {
			logger.Warn("[graph] dropping relationship with blank type at offset %d", r.Offset)
			continue
		}
		subject, okSubj := nodes[r.Subject.ID]
		object, okObj := nodes[r.Object.ID]
		if !okSubj || !okObj {
			logger.Debug("[graph] dropping dangling relationship %s -> %s at offset %d", r.Subject.ID, r.Object.ID, r.Offset)
			continue
		}
		relationships = append(relationships, domain.Relationship{
			Subject:    subject,
			Object:     object,
			Type:       r.Type,
			Timestamp:  r.Timestamp,
			Properties: domain.RelationshipProperties(metadata),
		})
	}

	element := &domain.GraphElement{
		Nodes:         make([]domain.Node, 0, len(order)),
		Relationships: relationships,
		Source:        generated,
	}
	for _, id := range order {
		element.Nodes = append(element.Nodes, *nodes[id])
	}

	logger.Debug("[graph] extracted %d nodes, %d relationships (%d fragments dropped)",
		len(element.Nodes), len(element.Relationships), len(parsed.Diagnostics))
	return element, nil
}

// ExtractFromText asks the text generator to emit graph literals over a
// passage, then extracts them.
func (g *GraphExtractor) ExtractFromText(ctx context.Context, text string, metadata map[string]string) (*domain.GraphElement, error) {
	if g.textGen == nil {
		return nil, domain.ErrTextGenUnavailable
	}
	template, err := g.prompts.Load(driven.PromptGraphExtraction)
	if err != nil {
		return nil, fmt.Errorf("load graph prompt: %w", err)
	}

	generated, err := g.textGen.Generate(ctx, fmt.Sprintf(template, text))
	if err != nil {
		return nil, fmt.Errorf("generate graph literals: %w", err)
	}
	return g.Extract(ctx, generated, metadata)
}

// Store writes graph elements to the graph database in one batch.
func (g *GraphExtractor) Store(ctx context.Context, elements []domain.GraphElement) error {
	if g.graphStore == nil {
		return domain.ErrGraphStoreUnavailable
	}
	if len(elements) == 0 {
		return nil
	}
	if err := g.graphStore.AddGraphElements(ctx, elements); err != nil {
		return fmt.Errorf("store graph elements: %w", err)
	}
	return nil
}

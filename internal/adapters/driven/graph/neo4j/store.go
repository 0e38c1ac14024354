// Package neo4j persists extracted knowledge graphs to a Neo4j
// database over the bolt protocol.
//
// Nodes are merged by id so re-ingesting a document never duplicates
// entities; relationships are merged between their endpoints. Labels
// and relationship types come from model output, so they are reduced to
// safe identifier characters before being spliced into Cypher.
package neo4j

import (
	"context"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
	"github.com/Sidharth1743/File-Search/internal/logger"
)

// Fallback labels for model output that sanitises to nothing.
const (
	fallbackNodeLabel       = "Entity"
	fallbackRelationshipTag = "RELATED_TO"
)

// Store implements the graph store port over the official driver.
type Store struct {
	driver   neo4j.DriverWithContext
	database string
}

// NewStore connects a graph store. The connection is lazy; use Ping to
// verify connectivity eagerly.
func NewStore(settings domain.GraphSettings) (*Store, error) {
	driver, err := neo4j.NewDriverWithContext(
		settings.URI,
		neo4j.BasicAuth(settings.Username, settings.Password, ""),
	)
	if err != nil {
		return nil, fmt.Errorf("connect to graph database: %w", err)
	}
	return &Store{driver: driver, database: settings.Database}, nil
}

// Ping verifies the database is reachable with the configured
// credentials.
func (s *Store) Ping(ctx context.Context) error {
	return s.driver.VerifyConnectivity(ctx)
}

// AddGraphElements writes a batch of graph elements in one write
// transaction.
func (s *Store) AddGraphElements(ctx context.Context, elements []domain.GraphElement) error {
	if len(elements) == 0 {
		return nil
	}

	session := s.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: s.database,
	})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, writeElements(ctx, tx, elements)
	})
	if err != nil {
		return fmt.Errorf("write graph elements: %w", err)
	}

	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close(ctx context.Context) error {
	return s.driver.Close(ctx)
}

// cypherRunner is the slice of a managed transaction the writer needs.
type cypherRunner interface {
	Run(ctx context.Context, cypher string, params map[string]any) (neo4j.ResultWithContext, error)
}

// writeElements merges every node and relationship of the batch.
func writeElements(ctx context.Context, tx cypherRunner, elements []domain.GraphElement) error {
	nodes := 0
	relationships := 0

	for _, element := range elements {
		for i := range element.Nodes {
			cypher, params := nodeQuery(&element.Nodes[i])
			if _, err := tx.Run(ctx, cypher, params); err != nil {
				return fmt.Errorf("merge node %q: %w", element.Nodes[i].ID, err)
			}
			nodes++
		}

		for i := range element.Relationships {
			cypher, params := relationshipQuery(&element.Relationships[i])
			if _, err := tx.Run(ctx, cypher, params); err != nil {
				return fmt.Errorf("merge relationship %q: %w", element.Relationships[i].Type, err)
			}
			relationships++
		}
	}

	logger.Debug("[neo4j] merged %d nodes and %d relationships", nodes, relationships)
	return nil
}

// nodeQuery builds the merge statement for one node. The label cannot
// be parameterised in Cypher, so it is sanitised and spliced in.
func nodeQuery(node *domain.Node) (string, map[string]any) {
	label := sanitizeToken(node.Type, fallbackNodeLabel)
	cypher := fmt.Sprintf("MERGE (n:`%s` {id: $id}) SET n += $props", label)
	return cypher, map[string]any{
		"id":    node.ID,
		"props": toAnyMap(node.Properties),
	}
}

// relationshipQuery builds the merge statement for one relationship.
// Endpoints are merged too, so a relationship never dangles even if its
// nodes arrive in a different element of the batch.
func relationshipQuery(rel *domain.Relationship) (string, map[string]any) {
	subjLabel := sanitizeToken(rel.Subject.Type, fallbackNodeLabel)
	objLabel := sanitizeToken(rel.Object.Type, fallbackNodeLabel)
	relType := sanitizeToken(rel.Type, fallbackRelationshipTag)

	cypher := fmt.Sprintf(
		"MERGE (a:`%s` {id: $subj}) MERGE (b:`%s` {id: $obj}) MERGE (a)-[r:`%s`]->(b) SET r += $props",
		subjLabel, objLabel, relType,
	)

	props := toAnyMap(rel.Properties)
	if rel.Timestamp != "" {
		props["timestamp"] = rel.Timestamp
	}

	return cypher, map[string]any{
		"subj":  rel.Subject.ID,
		"obj":   rel.Object.ID,
		"props": props,
	}
}

// sanitizeToken reduces a model-supplied label or relationship type to
// identifier characters. Anything else would escape the backtick
// quoting in the statement text.
func sanitizeToken(token, fallback string) string {
	var b strings.Builder
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return fallback
	}
	return b.String()
}

func toAnyMap(in map[string]string) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

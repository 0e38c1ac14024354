package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Sidharth1743/File-Search/internal/core/domain"
)

// GenerateGrounded answers a question grounded on the given stores. The
// model call carries the file search tool scoped to those stores; the
// citation titles are lifted from the grounding chunks of the first
// candidate.
func (c *Client) GenerateGrounded(ctx context.Context, question string, storeNames []string) (domain.Answer, error) {
	body := generateContentRequest{
		Contents: []content{{
			Role:  "user",
			Parts: []part{{Text: question}},
		}},
		Tools: []tool{{
			FileSearch: &fileSearchTool{FileSearchStoreNames: storeNames},
		}},
	}

	var resp generateContentResponse
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, body, &resp); err != nil {
		return domain.Answer{}, fmt.Errorf("generate grounded answer: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return domain.Answer{}, nil
	}
	first := resp.Candidates[0]

	var text strings.Builder
	if first.Content != nil {
		for _, p := range first.Content.Parts {
			text.WriteString(p.Text)
		}
	}

	var citations []string
	if first.GroundingMetadata != nil {
		for _, chunk := range first.GroundingMetadata.GroundingChunks {
			switch {
			case chunk.Web != nil && chunk.Web.Title != "":
				citations = append(citations, chunk.Web.Title)
			case chunk.RetrievedContext != nil && chunk.RetrievedContext.Title != "":
				citations = append(citations, chunk.RetrievedContext.Title)
			}
		}
	}

	return domain.Answer{Text: text.String(), Citations: citations}, nil
}

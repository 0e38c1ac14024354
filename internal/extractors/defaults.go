package extractors

import (
	"github.com/Sidharth1743/File-Search/internal/core/ports/driven"
	"github.com/Sidharth1743/File-Search/internal/extractors/markdown"
	"github.com/Sidharth1743/File-Search/internal/extractors/plaintext"
)

// Defaults returns the built-in extractors in selection order. The
// ingestion pipeline runs the first extractor that supports a file.
func Defaults() []driven.TextExtractor {
	return []driven.TextExtractor{
		markdown.New(),
		plaintext.New(),
	}
}

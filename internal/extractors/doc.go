// Package extractors provides implementations of the TextExtractor
// interface for text-like document formats. Each extractor knows how to
// produce plain text from files with specific extensions.
//
// PDFs are intentionally absent: text extraction from page images is
// owned by an external OCR collaborator, so the graph step for PDFs
// runs only when the caller supplies already-extracted text.
package extractors

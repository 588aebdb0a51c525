package report

import "context"

// TextExtractor pulls plain text out of an uploaded report document.
// PDF text extraction is an external collaborator; the service only depends
// on this boundary.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// PlainTextExtractor treats the uploaded bytes as already-extracted text.
// Useful for tests and for plain-text report exports.
type PlainTextExtractor struct{}

// ExtractText returns the document bytes as a string
func (PlainTextExtractor) ExtractText(_ context.Context, data []byte) (string, error) {
	return string(data), nil
}

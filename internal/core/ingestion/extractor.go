package ingestion

import (
	"bytes"
	"fmt"

	"code.sajari.com/docconv"
)

// Extractor pulls plain text out of an uploaded document. A readable
// document with no extractable text (scanned images, for instance) yields
// an empty string, not an error.
type Extractor interface {
	ExtractText(data []byte, contentType string) (string, error)
}

// DocconvExtractor implements Extractor using sajari/docconv, which
// handles PDF and the common office formats.
type DocconvExtractor struct {
	useReadability bool
}

func NewDocconvExtractor(useReadability bool) *DocconvExtractor {
	return &DocconvExtractor{useReadability: useReadability}
}

func (e *DocconvExtractor) ExtractText(data []byte, contentType string) (string, error) {
	res, err := docconv.Convert(bytes.NewReader(data), contentType, e.useReadability)
	if err != nil {
		return "", fmt.Errorf("docconv: %w", err)
	}
	return res.Body, nil
}

var _ Extractor = (*DocconvExtractor)(nil)

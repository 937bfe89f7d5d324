package ingestion

import (
	"context"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/neoconsult/booking-assistant/internal/core"
	"github.com/neoconsult/booking-assistant/internal/core/index"
)

// UploadedDocument is one file received from the upload endpoint.
type UploadedDocument struct {
	Name        string
	ContentType string
	Data        []byte
}

// Config tunes the chunking step.
//
// ChunkSize: words per chunk (default 800).
// Overlap:   words shared between consecutive chunks (default 100).
type Config struct {
	ChunkSize int
	Overlap   int
}

// Ingestor turns a batch of uploaded documents into a fresh vector index.
type Ingestor struct {
	extractor Extractor
	embedder  core.EmbeddingProvider
	cfg       Config
}

func NewIngestor(extractor Extractor, embedder core.EmbeddingProvider, cfg Config) *Ingestor {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 800
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = 0
	}
	return &Ingestor{extractor: extractor, embedder: embedder, cfg: cfg}
}

// IngestAndIndex extracts every document, concatenates the texts in upload
// order, chunks the combined text and builds a new index. Documents that
// cannot be read are skipped and reported in skipped; a batch with no
// usable text returns a nil index. Chunk boundaries may span a document
// boundary; that approximation is intentional.
func (ing *Ingestor) IngestAndIndex(ctx context.Context, docs []UploadedDocument) (ix *index.Index, skipped []string, err error) {
	texts := make([]string, len(docs))
	failed := make([]bool, len(docs))

	g, _ := errgroup.WithContext(ctx)
	for i := range docs {
		g.Go(func() error {
			text, extractErr := ing.extractor.ExtractText(docs[i].Data, docs[i].ContentType)
			if extractErr != nil {
				log.Printf("ingestion: could not read %q: %v", docs[i].Name, extractErr)
				failed[i] = true
				return nil
			}
			texts[i] = text
			return nil
		})
	}
	_ = g.Wait()

	for i := range docs {
		if failed[i] {
			skipped = append(skipped, docs[i].Name)
		}
	}

	combined := strings.Join(texts, "\n")
	if strings.TrimSpace(combined) == "" {
		return nil, skipped, nil
	}

	chunks := ChunkWords(combined, ing.cfg.ChunkSize, ing.cfg.Overlap)
	ix, err = index.Build(ctx, ing.embedder, chunks)
	if err != nil {
		return nil, skipped, err
	}
	return ix, skipped, nil
}

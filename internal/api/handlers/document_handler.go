package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/neoconsult/booking-assistant/internal/core/assistant"
	"github.com/neoconsult/booking-assistant/internal/core/ingestion"
	"github.com/neoconsult/booking-assistant/internal/core/objectstore"
)

// DocumentHandler receives uploaded service documents, archives them and
// rebuilds the session's vector index from the batch.
type DocumentHandler struct {
	ingestor *ingestion.Ingestor
	session  *assistant.Session
	archive  objectstore.ObjectClient
}

func NewDocumentHandler(ingestor *ingestion.Ingestor, session *assistant.Session, archive objectstore.ObjectClient) *DocumentHandler {
	return &DocumentHandler{ingestor: ingestor, session: session, archive: archive}
}

type uploadResponse struct {
	ChunksIndexed int      `json:"chunks_indexed"`
	Skipped       []string `json:"skipped,omitempty"`
	Message       string   `json:"message,omitempty"`
}

// Upload accepts one or more files in the multipart field "files". The
// new index replaces the previous one only when the batch produced text.
func (h *DocumentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(64 << 20); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		http.Error(w, "no files uploaded", http.StatusBadRequest)
		return
	}

	batchID := uuid.NewString()
	var docs []ingestion.UploadedDocument
	for _, header := range r.MultipartForm.File["files"] {
		file, err := header.Open()
		if err != nil {
			http.Error(w, fmt.Sprintf("could not open %q", header.Filename), http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			http.Error(w, fmt.Sprintf("could not read %q", header.Filename), http.StatusBadRequest)
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		name := filepath.Base(header.Filename)
		if h.archive != nil {
			key := fmt.Sprintf("%s/%s", batchID, name)
			if _, err := h.archive.UploadFile(r.Context(), key, data, contentType); err != nil {
				log.Printf("upload: archive of %q failed: %v", name, err)
			}
		}

		docs = append(docs, ingestion.UploadedDocument{
			Name:        name,
			ContentType: contentType,
			Data:        data,
		})
	}

	ix, skipped, err := h.ingestor.IngestAndIndex(r.Context(), docs)
	if err != nil {
		http.Error(w, fmt.Sprintf("indexing failed: %v", err), http.StatusInternalServerError)
		return
	}

	resp := uploadResponse{Skipped: skipped}
	if ix == nil {
		resp.Message = "no usable text found in the uploaded documents"
	} else {
		h.session.SetIndex(ix)
		resp.ChunksIndexed = ix.Len()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

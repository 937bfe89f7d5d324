package rag

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/neoconsult/booking-assistant/internal/core"
	"github.com/neoconsult/booking-assistant/internal/core/index"
	"github.com/neoconsult/booking-assistant/internal/models"
)

const systemPrompt = "You are NeoConsult — an AI Project Booking Assistant for an analytics company. " +
	"You answer questions about services using given context and help users book " +
	"project consultation slots. Be concise, professional, and clear."

const noMaterialReply = "I'm currently unable to use the language model and I " +
	"also couldn't find relevant information in the uploaded documents."

// Answerer composes retrieved chunks and recent conversation history into
// a generation request, degrading to an extractive answer when the
// generation service is unavailable.
type Answerer struct {
	embedder     core.EmbeddingProvider
	llm          core.LLMProvider
	topK         int
	historyLimit int
	maxSentences int
}

func NewAnswerer(embedder core.EmbeddingProvider, llm core.LLMProvider, topK int) *Answerer {
	if topK <= 0 {
		topK = 4
	}
	return &Answerer{
		embedder:     embedder,
		llm:          llm,
		topK:         topK,
		historyLimit: 20,
		maxSentences: defaultMaxSentences,
	}
}

// Answer never fails outward: any failure of the generation service is
// converted into an extractive answer over the retrieved context, or into
// a fixed message when there is no context to extract from.
func (a *Answerer) Answer(ctx context.Context, query string, ix *index.Index, history []models.ConversationTurn) string {
	results, err := ix.Search(ctx, a.embedder, query, a.topK)
	if err != nil {
		log.Printf("rag: retrieval failed: %v", err)
		results = nil
	}
	parts := make([]string, 0, len(results))
	for _, r := range results {
		parts = append(parts, r.Text)
	}
	contextText := strings.Join(parts, "\n\n")

	turns := history
	if len(turns) > a.historyLimit {
		turns = turns[len(turns)-a.historyLimit:]
	}
	historyLines := make([]string, 0, len(turns))
	for _, t := range turns {
		historyLines = append(historyLines, fmt.Sprintf("%s: %s", t.Role, t.Content))
	}

	userPrompt := fmt.Sprintf(
		"Conversation so far:\n%s\n\nContext from uploaded documents:\n%s\n\nUser question: %s",
		strings.Join(historyLines, "\n"), contextText, query,
	)

	answer, err := a.llm.Generate(ctx, systemPrompt, userPrompt)
	if err == nil {
		return answer
	}
	log.Printf("rag: generation unavailable, falling back to extractive answer: %v", err)

	if strings.TrimSpace(contextText) == "" {
		return noMaterialReply
	}

	summary := Summarize(contextText, query, a.maxSentences)
	return fmt.Sprintf(
		"I'm temporarily unable to use the language model service, so here's a "+
			"concise answer built directly from your uploaded documents.\n\n"+
			"What the documents say about %q:\n\n%s\n\n"+
			"This summary is extracted from the uploaded material; you can ask "+
			"follow-up questions or start a booking if you'd like.",
		query, summary,
	)
}

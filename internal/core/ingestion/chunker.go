package ingestion

import "strings"

// ChunkWords splits text on whitespace and emits overlapping windows of at
// most chunkSize words. The window start advances by chunkSize-overlap
// words (minimum 1) each step, so consecutive chunks share the last
// overlap words. The final partial window is emitted as-is; empty input
// yields no chunks.
func ChunkWords(text string, chunkSize, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	step := chunkSize - overlap
	if step < 1 {
		step = 1
	}
	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
	}
	return chunks
}

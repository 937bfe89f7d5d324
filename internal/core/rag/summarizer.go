package rag

import (
	"regexp"
	"sort"
	"strings"
)

const defaultMaxSentences = 6

var wordPattern = regexp.MustCompile(`\w+`)

// Used in place of the query tokens when the query has no word longer
// than three characters to match against.
var fallbackKeywords = []string{"service", "solution", "project", "booking"}

// Summarize produces an extractive summary of text focused on the query:
// sentences are scored by how many distinct query words they share (plus a
// bonus for bullet lines), the top maxSentences are kept, and the
// selection is returned in original reading order. It is a pure function
// of its inputs.
func Summarize(text, query string, maxSentences int) string {
	if maxSentences <= 0 {
		maxSentences = defaultMaxSentences
	}

	queryWords := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(query), -1) {
		if len(w) > 3 {
			queryWords[w] = struct{}{}
		}
	}
	if len(queryWords) == 0 {
		for _, w := range fallbackKeywords {
			queryWords[w] = struct{}{}
		}
	}

	sentences := splitSentences(text)

	type scoredSentence struct {
		idx   int
		score int
		text  string
	}
	var selected []scoredSentence
	for i, sent := range sentences {
		score := 0
		seen := make(map[string]struct{})
		for _, tok := range wordPattern.FindAllString(strings.ToLower(sent), -1) {
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			if _, ok := queryWords[tok]; ok {
				score++
			}
		}
		if strings.Contains(sent, "•") {
			score++
		}
		if score > 0 {
			selected = append(selected, scoredSentence{idx: i, score: score, text: strings.TrimSpace(sent)})
		}
	}

	// Nothing matched at all: fall back to the leading sentences verbatim.
	if len(selected) == 0 {
		n := maxSentences
		if n > len(sentences) {
			n = len(sentences)
		}
		for i := 0; i < n; i++ {
			selected = append(selected, scoredSentence{idx: i, score: 1, text: strings.TrimSpace(sentences[i])})
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		if selected[i].score != selected[j].score {
			return selected[i].score > selected[j].score
		}
		return selected[i].idx < selected[j].idx
	})
	if len(selected) > maxSentences {
		selected = selected[:maxSentences]
	}
	// Restore document order so the summary reads naturally.
	sort.Slice(selected, func(i, j int) bool { return selected[i].idx < selected[j].idx })

	lines := make([]string, len(selected))
	for i, s := range selected {
		lines[i] = normalizeBullets(s.text)
	}
	return strings.Join(lines, "\n")
}

// splitSentences splits on a trailing '.', '!' or '?' followed by
// whitespace, dropping the separating whitespace.
func splitSentences(text string) []string {
	var out []string
	start := 0
	i := 0
	for i < len(text) {
		c := text[i]
		if (c == '.' || c == '!' || c == '?') && i+1 < len(text) && isSpace(text[i+1]) {
			out = append(out, text[start:i+1])
			i++
			for i < len(text) && isSpace(text[i]) {
				i++
			}
			start = i
			continue
		}
		i++
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// normalizeBullets ensures every bullet marker is followed by a space.
func normalizeBullets(s string) string {
	return strings.ReplaceAll(s, "•", "• ")
}

package utils

import (
	"regexp"
	"strings"
)

var (
	sentenceEndRe = regexp.MustCompile(`[.!?]\s+`)
	spaceRunRe    = regexp.MustCompile(`[ \t]+`)
	newlineRunRe  = regexp.MustCompile(`\n+`)
)

// ChunkText splits text into sentence-respecting chunks of at most
// maxChunkSize characters. Sentences accumulate into a buffer; the buffer is
// flushed whenever appending the next sentence would push it past the limit.
// A single sentence longer than maxChunkSize is emitted whole as its own
// oversized chunk rather than truncated.
func ChunkText(text string, maxChunkSize int) []string {
	var chunks []string

	sentences := splitSentences(text)
	currentChunk := ""

	for _, sentence := range sentences {
		if len(currentChunk)+len(sentence) > maxChunkSize && len(currentChunk) > 0 {
			chunks = append(chunks, strings.TrimSpace(currentChunk))
			currentChunk = sentence
		} else {
			if currentChunk != "" {
				currentChunk += ". "
			}
			currentChunk += sentence
		}
	}

	if strings.TrimSpace(currentChunk) != "" {
		chunks = append(chunks, strings.TrimSpace(currentChunk))
	}

	return chunks
}

// splitSentences splits on sentence-terminal punctuation followed by
// whitespace. The terminator itself is dropped; ChunkText reinserts a
// separator when joining.
func splitSentences(text string) []string {
	parts := sentenceEndRe.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		sentences = append(sentences, p)
	}
	return sentences
}

// CleanText normalizes extracted document text: runs of spaces/tabs collapse
// to a single space, runs of newlines to a single newline, ends trimmed.
func CleanText(text string) string {
	text = spaceRunRe.ReplaceAllString(text, " ")
	text = newlineRunRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}

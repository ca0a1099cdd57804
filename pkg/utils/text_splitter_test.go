package utils

import (
	"strings"
	"testing"
)

func TestChunkTextShortInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"single sentence", "Coaching is about listening"},
		{"two short sentences", "Listen first. Then ask questions"},
		{"trailing punctuation", "Trust the process."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := ChunkText(tt.text, 1000)
			if len(chunks) != 1 {
				t.Fatalf("chunks = %d, want 1", len(chunks))
			}
		})
	}
}

func TestChunkTextEmptyInput(t *testing.T) {
	if chunks := ChunkText("", 1000); len(chunks) != 0 {
		t.Errorf("chunks = %d, want 0", len(chunks))
	}
	if chunks := ChunkText("   \n  ", 1000); len(chunks) != 0 {
		t.Errorf("whitespace-only chunks = %d, want 0", len(chunks))
	}
}

func TestChunkTextPreservesSentencesInOrder(t *testing.T) {
	sentences := []string{
		"Active listening builds trust",
		"Powerful questions open new perspectives",
		"Accountability turns insight into action",
		"Silence gives the client room to think",
	}
	text := strings.Join(sentences, ". ") + "."

	chunks := ChunkText(text, 60)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks for limit 60, got %d", len(chunks))
	}

	joined := strings.Join(chunks, ". ")
	for _, s := range sentences {
		if strings.Count(joined, s) != 1 {
			t.Errorf("sentence %q appears %d times, want 1", s, strings.Count(joined, s))
		}
	}

	// Order check: each sentence must appear after the previous one.
	last := -1
	for _, s := range sentences {
		idx := strings.Index(joined, s)
		if idx <= last {
			t.Errorf("sentence %q out of order", s)
		}
		last = idx
	}
}

func TestChunkTextOversizedSentence(t *testing.T) {
	long := strings.Repeat("x", 500)
	chunks := ChunkText(long+". Short tail", 100)

	if len(chunks) != 2 {
		t.Fatalf("chunks = %d, want 2", len(chunks))
	}
	if len(chunks[0]) < 500 {
		t.Errorf("oversized sentence was truncated to %d chars", len(chunks[0]))
	}
}

func TestChunkTextIdempotent(t *testing.T) {
	text := "One idea per session. Review progress weekly. Celebrate small wins. " +
		"Set the next experiment. Reflect on what changed."

	first := ChunkText(text, 50)
	for _, c := range first {
		if len(c) > 50 {
			// Oversized chunks are allowed only for single oversized sentences.
			continue
		}
		again := ChunkText(c, 50)
		if len(again) != 1 {
			t.Errorf("re-chunking %q split into %d chunks, want 1", c, len(again))
		}
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"space runs", "a   b\t\tc", "a b c"},
		{"newline runs", "a\n\n\nb", "a\nb"},
		{"trims ends", "  hello  ", "hello"},
		{"mixed", "  a  b\n\n c \n", "a b\n c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanText(tt.in); got != tt.want {
				t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

package services

import (
	"strings"
	"testing"
)

func TestChunkWords(t *testing.T) {
	words := make([]string, 250)
	for i := range words {
		words[i] = "word"
	}
	text := strings.Join(words, " ")

	chunks := ChunkWords(text, 100, 20)
	if len(chunks) < 3 {
		t.Fatalf("expected at least 3 chunks for 250 words with window 100, got %d", len(chunks))
	}

	for i, chunk := range chunks {
		if chunk.Order != i {
			t.Fatalf("chunk %d has order %d", i, chunk.Order)
		}
		if chunk.ChunkID == "" {
			t.Fatalf("chunk %d missing ID", i)
		}
		if count := len(strings.Fields(chunk.Text)); count > 100 {
			t.Fatalf("chunk %d has %d words, window is 100", i, count)
		}
	}
}

func TestChunkWordsShortText(t *testing.T) {
	chunks := ChunkWords("just a few words here", 100, 20)
	if len(chunks) != 1 {
		t.Fatalf("expected a single chunk, got %d", len(chunks))
	}
	if chunks[0].Text != "just a few words here" {
		t.Fatalf("unexpected chunk text: %q", chunks[0].Text)
	}
}

func TestChunkWordsEmpty(t *testing.T) {
	if chunks := ChunkWords("   ", 100, 20); len(chunks) != 0 {
		t.Fatalf("expected no chunks for blank text, got %d", len(chunks))
	}
}

package services

import (
	"strings"

	"github.com/google/uuid"
)

// Chunk is one slice of an extracted document, ready for embedding.
type Chunk struct {
	ChunkID string `json:"chunk_id" bson:"chunk_id"`
	Text    string `json:"text" bson:"text"`
	Order   int    `json:"order" bson:"order"`
}

// ChunkWords splits text into overlapping word windows. Overlap keeps context
// intact across chunk boundaries.
func ChunkWords(text string, maxWords, overlap int) []Chunk {
	if maxWords <= 0 {
		maxWords = 200
	}
	if overlap < 0 || overlap >= maxWords {
		overlap = maxWords / 5
	}

	words := strings.Fields(text)
	var chunks []Chunk

	for i := 0; i < len(words); {
		end := i + maxWords
		if end > len(words) {
			end = len(words)
		}

		chunks = append(chunks, Chunk{
			ChunkID: uuid.NewString(),
			Text:    strings.Join(words[i:end], " "),
			Order:   len(chunks),
		})

		if end >= len(words) {
			break
		}

		nextStart := end - overlap
		if nextStart <= i {
			nextStart = i + 1
		}
		i = nextStart
	}

	return chunks
}

package services

import "errors"

var (
	// ErrEmbedding means the embedding model call failed; the index or query
	// attempt is dead, but nothing was partially written.
	ErrEmbedding = errors.New("embedding generation failed")

	// ErrStorage means the vector store rejected the write (connectivity,
	// disk, quota).
	ErrStorage = errors.New("vector storage failed")
)

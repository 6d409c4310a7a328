package services

import (
	"context"
	"fmt"
	"strconv"

	"reddit-insight-backend/internal/ai"
	"reddit-insight-backend/internal/vectorstore"
	"reddit-insight-backend/models"
)

// Retriever embeds queries with the same model used at index time and runs
// similarity search against an already-built collection. Read-only.
type Retriever struct {
	store    *vectorstore.Store
	embedder ai.Embedder
}

func NewRetriever(store *vectorstore.Store, embedder ai.Embedder) *Retriever {
	return &Retriever{store: store, embedder: embedder}
}

// RetrieveComments returns the top-k most relevant comment records for a
// query, ordered by decreasing relevance with insertion order breaking ties.
// Propagates vectorstore.ErrCollectionNotFound when the post was never
// indexed.
func (r *Retriever) RetrieveComments(ctx context.Context, postID, query string, k int) ([]models.CommentRecord, error) {
	vec, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrEmbedding, err)
	}

	results, err := r.store.Search(ctx, RedditCollection(postID), vec, k)
	if err != nil {
		return nil, err
	}

	records := make([]models.CommentRecord, len(results))
	for i, result := range results {
		score, _ := strconv.Atoi(result.Entry.Metadata["score"])
		records[i] = models.CommentRecord{
			CommentID: result.Entry.ID,
			Author:    result.Entry.Metadata["author"],
			Score:     score,
			Text:      result.Entry.Text,
			PostTitle: result.Entry.Metadata["post_title"],
			SourceURL: result.Entry.Metadata["source_url"],
		}
	}
	return records, nil
}

// RetrieveChunks returns the top-k most relevant chunk texts of a document.
func (r *Retriever) RetrieveChunks(ctx context.Context, documentID, query string, k int) ([]string, error) {
	vec, err := r.embedder.EmbedText(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: query: %v", ErrEmbedding, err)
	}

	results, err := r.store.Search(ctx, DocumentCollection(documentID), vec, k)
	if err != nil {
		return nil, err
	}

	chunks := make([]string, len(results))
	for i, result := range results {
		chunks[i] = result.Entry.Text
	}
	return chunks, nil
}

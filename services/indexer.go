package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"reddit-insight-backend/internal/ai"
	"reddit-insight-backend/internal/vectorstore"
	"reddit-insight-backend/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// RedditCollection returns the vector collection name for a post ID. The
// naming convention is a persisted-state contract other tooling depends on.
func RedditCollection(postID string) string {
	return "reddit_" + postID
}

// DocumentCollection returns the vector collection name for a document ID.
func DocumentCollection(documentID string) string {
	return "doc_" + documentID
}

// Indexer owns all writes into vector collections. Indexing the same source
// twice is idempotent: the collection is rebuilt and atomically swapped, so
// stale entries from a prior run never remain retrievable.
type Indexer struct {
	store    *vectorstore.Store
	embedder ai.Embedder

	// Serializes concurrent index requests per collection. Different
	// collections index in parallel.
	locks sync.Map // collection name -> *sync.Mutex
}

func NewIndexer(store *vectorstore.Store, embedder ai.Embedder) *Indexer {
	return &Indexer{store: store, embedder: embedder}
}

// IndexComments embeds the normalized comments and replaces the post's
// collection with them. Returns the number of comments indexed.
func (ix *Indexer) IndexComments(ctx context.Context, postID string, records []models.CommentRecord) (int, error) {
	tracer := otel.Tracer("indexer")
	ctx, span := tracer.Start(ctx, "indexer.index_comments")
	defer span.End()
	span.SetAttributes(
		attribute.String("post_id", postID),
		attribute.Int("comment_count", len(records)),
	)

	entries := make([]vectorstore.Entry, len(records))
	for i, record := range records {
		vec, err := ix.embedder.EmbedText(ctx, record.Text)
		if err != nil {
			return 0, fmt.Errorf("%w: comment %s: %v", ErrEmbedding, record.CommentID, err)
		}
		entries[i] = vectorstore.Entry{
			ID:     record.CommentID,
			Order:  i,
			Text:   record.Text,
			Vector: vec,
			Metadata: map[string]string{
				"author":     record.Author,
				"score":      strconv.Itoa(record.Score),
				"post_title": record.PostTitle,
				"source_url": record.SourceURL,
			},
		}
	}

	if err := ix.replace(ctx, RedditCollection(postID), entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

// IndexChunks embeds document chunks and replaces the document's collection.
func (ix *Indexer) IndexChunks(ctx context.Context, documentID string, chunks []Chunk) (int, error) {
	entries := make([]vectorstore.Entry, len(chunks))
	for i, chunk := range chunks {
		vec, err := ix.embedder.EmbedText(ctx, chunk.Text)
		if err != nil {
			return 0, fmt.Errorf("%w: chunk %s: %v", ErrEmbedding, chunk.ChunkID, err)
		}
		entries[i] = vectorstore.Entry{
			ID:     chunk.ChunkID,
			Order:  chunk.Order,
			Text:   chunk.Text,
			Vector: vec,
		}
	}

	if err := ix.replace(ctx, DocumentCollection(documentID), entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}

func (ix *Indexer) replace(ctx context.Context, collection string, entries []vectorstore.Entry) error {
	lock, _ := ix.locks.LoadOrStore(collection, &sync.Mutex{})
	mu := lock.(*sync.Mutex)
	mu.Lock()
	defer mu.Unlock()

	if err := ix.store.Replace(ctx, collection, entries); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return nil
}

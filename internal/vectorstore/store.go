package vectorstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrCollectionNotFound means the named collection was never built (or was
// dropped). The caller must re-index before querying.
var ErrCollectionNotFound = errors.New("collection not found")

// Entry is one embedded text unit inside a collection. Order records the
// insertion index and is the tie-break for equal similarity scores.
type Entry struct {
	ID       string            `bson:"_id"`
	Order    int               `bson:"order"`
	Text     string            `bson:"text"`
	Vector   []float32         `bson:"vector"`
	Metadata map[string]string `bson:"metadata,omitempty"`
}

// Result is a search hit with its similarity score.
type Result struct {
	Entry      Entry
	Similarity float64
}

// Store keeps one Mongo collection of embedded entries per indexed source.
// Writers go through Replace; readers only ever see a fully built collection.
type Store struct {
	db *mongo.Database
}

func NewStore(db *mongo.Database) *Store {
	return &Store{db: db}
}

// Replace atomically swaps the named collection's content for the given
// entries. Entries are written into a staging collection first, then
// renameCollection with dropTarget moves it into place, so a concurrent
// reader observes either the old or the new content, never a partial state.
func (s *Store) Replace(ctx context.Context, name string, entries []Entry) error {
	staging := name + "__staging"

	// Drop any staging leftover from a previously failed build.
	if err := s.db.Collection(staging).Drop(ctx); err != nil {
		return fmt.Errorf("failed to clear staging collection: %w", err)
	}

	if err := s.db.CreateCollection(ctx, staging); err != nil {
		return fmt.Errorf("failed to create staging collection: %w", err)
	}

	if len(entries) > 0 {
		docs := make([]interface{}, len(entries))
		for i, e := range entries {
			docs[i] = e
		}
		if _, err := s.db.Collection(staging).InsertMany(ctx, docs); err != nil {
			return fmt.Errorf("failed to write staging collection: %w", err)
		}
	}

	cmd := bson.D{
		{Key: "renameCollection", Value: s.db.Name() + "." + staging},
		{Key: "to", Value: s.db.Name() + "." + name},
		{Key: "dropTarget", Value: true},
	}
	if err := s.db.Client().Database("admin").RunCommand(ctx, cmd).Err(); err != nil {
		return fmt.Errorf("failed to swap collection %s: %w", name, err)
	}

	return nil
}

// Exists reports whether the named collection has been built.
func (s *Store) Exists(ctx context.Context, name string) (bool, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, fmt.Errorf("failed to list collections: %w", err)
	}
	return len(names) > 0, nil
}

// Search returns the top-k entries of the named collection ranked by cosine
// similarity against the query vector. Per-source collections stay small
// (hundreds of entries), so scoring happens in-process, which also pins down
// the tie-break order the ranking promises.
func (s *Store) Search(ctx context.Context, name string, query []float32, k int) ([]Result, error) {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}

	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := s.db.Collection(name).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection %s: %w", name, err)
	}
	defer cursor.Close(ctx)

	var entries []Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode collection %s: %w", name, err)
	}

	return Rank(entries, query, k), nil
}

// Count returns the number of entries in the named collection.
func (s *Store) Count(ctx context.Context, name string) (int64, error) {
	exists, err := s.Exists(ctx, name)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("%w: %s", ErrCollectionNotFound, name)
	}
	return s.db.Collection(name).CountDocuments(ctx, bson.M{})
}

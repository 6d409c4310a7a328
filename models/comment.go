package models

// CommentRecord is a normalized comment that survived filtering. Created by
// the filter, embedded and stored by the indexer, returned read-only by the
// retriever; never mutated after creation.
type CommentRecord struct {
	CommentID string `json:"comment_id" bson:"comment_id"`
	Author    string `json:"author,omitempty" bson:"author,omitempty"` // empty when the account is deleted
	Score     int    `json:"score" bson:"score"`
	Text      string `json:"text" bson:"text"`
	PostTitle string `json:"post_title" bson:"post_title"`
	SourceURL string `json:"source_url" bson:"source_url"`
}

// AnonymizedSnippet is the PII-free view of a retrieved comment: text and
// score only, with the author replaced by an opaque placeholder. This is the
// only comment shape the answer generator ever sees.
type AnonymizedSnippet struct {
	Placeholder string `json:"placeholder"`
	Text        string `json:"text"`
	Score       int    `json:"score"`
}

// AttributionResult pairs a generated answer with its provenance: the source
// URL and the de-duplicated, order-preserving list of real contributors.
type AttributionResult struct {
	Answer       string   `json:"answer"`
	SourceURL    string   `json:"source_url"`
	Contributors []string `json:"citations"`
}

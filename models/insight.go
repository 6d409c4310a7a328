package models

// IndexRequest asks for a Reddit post's comments to be fetched and indexed.
type IndexRequest struct {
	URL string `json:"url" binding:"required"`
}

// IndexResult reports a completed index run.
type IndexResult struct {
	Status       string `json:"status"`
	PostID       string `json:"post_id"`
	PostTitle    string `json:"post_title"`
	CommentCount int    `json:"comment_count"`
	OriginalURL  string `json:"original_url"`
}

// QueryRequest asks a natural-language question about an indexed post.
type QueryRequest struct {
	PostID      string `json:"post_id" binding:"required"`
	Query       string `json:"query" binding:"required"`
	OriginalURL string `json:"original_url"`
}

// QueryResult is the attributed answer returned to the caller.
type QueryResult struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations"`
	SourceURL string   `json:"source_url"`
}

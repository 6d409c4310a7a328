package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is an uploaded PDF tracked in the documents collection. Its chunks
// live in the doc_{id} vector collection once is_indexed flips to true.
type Document struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Filename    string             `json:"filename" bson:"filename"`
	StoredPath  string             `json:"-" bson:"stored_path"`
	ContentType string             `json:"content_type" bson:"content_type"`
	Size        int64              `json:"size" bson:"size"`
	Pages       int                `json:"pages" bson:"pages"`
	ChunkCount  int                `json:"chunk_count" bson:"chunk_count"`
	IsIndexed   bool               `json:"is_indexed" bson:"is_indexed"`
	UploadedAt  time.Time          `json:"uploaded_at" bson:"uploaded_at"`
}

// DocumentQueryRequest asks a question about one indexed document.
type DocumentQueryRequest struct {
	DocumentID string `json:"document_id" binding:"required"`
	Query      string `json:"query" binding:"required"`
}

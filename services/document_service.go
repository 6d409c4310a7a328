package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reddit-insight-backend/internal/config"
	"reddit-insight-backend/internal/logger"
	"reddit-insight-backend/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocumentService runs the PDF sibling pipeline: upload, extract, chunk,
// embed, index under doc_{id}, and answer plain RAG queries. Document chunks
// carry no authors, so there is no anonymization or attribution here.
type DocumentService struct {
	config    *config.Config
	documents *mongo.Collection
	indexer   *Indexer
	retriever *Retriever
	generator Generator
}

func NewDocumentService(cfg *config.Config, documents *mongo.Collection, indexer *Indexer, retriever *Retriever, generator Generator) *DocumentService {
	return &DocumentService{
		config:    cfg,
		documents: documents,
		indexer:   indexer,
		retriever: retriever,
		generator: generator,
	}
}

// Upload stores the file, extracts and chunks its text, and indexes the
// chunks. The stored file and record are cleaned up when indexing fails.
func (s *DocumentService) Upload(ctx context.Context, title string, fileHeader *multipart.FileHeader) (*models.Document, error) {
	if fileHeader.Size > s.config.MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (limit %d)", fileHeader.Size, s.config.MaxFileSize)
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !s.typeAllowed(contentType) {
		return nil, fmt.Errorf("unsupported file type: %s", contentType)
	}

	storedPath, err := s.saveFile(fileHeader)
	if err != nil {
		return nil, err
	}

	if title == "" {
		title = strings.TrimSuffix(fileHeader.Filename, filepath.Ext(fileHeader.Filename))
	}

	doc := models.Document{
		Title:       title,
		Filename:    fileHeader.Filename,
		StoredPath:  storedPath,
		ContentType: contentType,
		Size:        fileHeader.Size,
		UploadedAt:  time.Now(),
	}

	insertResult, err := s.documents.InsertOne(ctx, doc)
	if err != nil {
		os.Remove(storedPath)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	doc.ID = insertResult.InsertedID.(primitive.ObjectID)

	if err := s.indexDocument(ctx, &doc); err != nil {
		// Roll back the upload so a failed index never leaves a phantom record.
		s.documents.DeleteOne(ctx, bson.M{"_id": doc.ID})
		os.Remove(storedPath)
		return nil, err
	}

	return &doc, nil
}

func (s *DocumentService) indexDocument(ctx context.Context, doc *models.Document) error {
	text, pages, err := ExtractPDFText(doc.StoredPath)
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("no extractable text in %s", doc.Filename)
	}

	chunks := ChunkWords(text, s.config.MaxChunkSize/5, s.config.ChunkOverlap/5)
	count, err := s.indexer.IndexChunks(ctx, doc.ID.Hex(), chunks)
	if err != nil {
		return err
	}

	update := bson.M{"$set": bson.M{
		"is_indexed":  true,
		"chunk_count": count,
		"pages":       pages,
	}}
	if _, err := s.documents.UpdateOne(ctx, bson.M{"_id": doc.ID}, update); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	doc.IsIndexed = true
	doc.ChunkCount = count
	doc.Pages = pages

	logger.Info("Indexed document", "document_id", doc.ID.Hex(), "pages", pages, "chunks", count)
	return nil
}

// Query answers a question against one indexed document.
func (s *DocumentService) Query(ctx context.Context, documentID, query string) (string, error) {
	chunks, err := s.retriever.RetrieveChunks(ctx, documentID, query, 5)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Use the following document excerpts to answer the question. ")
	sb.WriteString("If the excerpts do not contain enough information, state that clearly.\n\nExcerpts:\n")
	for i, chunk := range chunks {
		fmt.Fprintf(&sb, "\n[%d]\n%s\n", i+1, chunk)
	}
	sb.WriteString("\nQuestion: ")
	sb.WriteString(query)

	return s.generator.GenerateText(ctx, sb.String())
}

// List returns document records, newest first.
func (s *DocumentService) List(ctx context.Context) ([]models.Document, error) {
	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cursor, err := s.documents.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var docs []models.Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return docs, nil
}

func (s *DocumentService) typeAllowed(contentType string) bool {
	for _, allowed := range s.config.AllowedTypes {
		if strings.TrimSpace(allowed) == contentType {
			return true
		}
	}
	return false
}

func (s *DocumentService) saveFile(fileHeader *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(s.config.FileStorageDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage dir: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	storedPath := filepath.Join(s.config.FileStorageDir, uuid.NewString()+filepath.Ext(fileHeader.Filename))
	dst, err := os.Create(storedPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(storedPath)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return storedPath, nil
}

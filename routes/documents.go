package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"reddit-insight-backend/internal/ai"
	"reddit-insight-backend/internal/logger"
	"reddit-insight-backend/internal/vectorstore"
	"reddit-insight-backend/models"
	"reddit-insight-backend/services"
	"reddit-insight-backend/utils"

	"github.com/gin-gonic/gin"
)

// SetupDocumentRoutes wires the PDF upload/query endpoints.
func SetupDocumentRoutes(router *gin.Engine, documents *services.DocumentService) {
	api := router.Group("/api/documents")

	api.GET("", func(c *gin.Context) {
		docs, err := documents.List(c.Request.Context())
		if err != nil {
			logger.Error("Document listing failed", "error", err)
			utils.RespondWithInternalError(c, "listing_failed", "Failed to list documents", nil)
			return
		}
		c.JSON(http.StatusOK, gin.H{"documents": docs})
	})

	api.POST("", func(c *gin.Context) {
		fileHeader, err := c.FormFile("uploaded_file")
		if err != nil {
			utils.RespondWithBadRequest(c, "Missing 'uploaded_file'", gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Minute)
		defer cancel()

		doc, err := documents.Upload(ctx, c.PostForm("title"), fileHeader)
		if err != nil {
			if errors.Is(err, services.ErrEmbedding) || errors.Is(err, services.ErrStorage) {
				logger.Error("Document indexing failed", "error", err)
				utils.RespondWithInternalError(c, "indexing_failed",
					"Indexing failed. Check API key or file integrity.", nil)
				return
			}
			utils.RespondWithBadRequest(c, "Upload rejected", gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"status":   "success",
			"document": doc,
			"chunks":   doc.ChunkCount,
		})
	})

	api.POST("/query", func(c *gin.Context) {
		var req models.DocumentQueryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Missing 'document_id' or 'query'", gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Minute)
		defer cancel()

		answer, err := documents.Query(ctx, req.DocumentID, req.Query)
		if err != nil {
			switch {
			case errors.Is(err, vectorstore.ErrCollectionNotFound):
				utils.RespondWithNotFound(c, "collection_not_found",
					"Document '"+req.DocumentID+"' has not been indexed")
			case errors.Is(err, ai.ErrModelConfig):
				logger.Error("Model configuration error", "error", err)
				utils.RespondWithInternalError(c, "model_config_error",
					"Generative model configuration error - check GEMINI_API_KEY and GEMINI_MODEL", nil)
			default:
				logger.Error("Document query failed", "error", err)
				utils.RespondWithInternalError(c, "query_failed", "Query failed", nil)
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"answer": answer})
	})
}

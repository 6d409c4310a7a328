package routes

import (
	"context"
	"errors"
	"net/http"
	"time"

	"reddit-insight-backend/internal/ai"
	"reddit-insight-backend/internal/config"
	"reddit-insight-backend/internal/logger"
	"reddit-insight-backend/internal/reddit"
	"reddit-insight-backend/internal/telemetry"
	"reddit-insight-backend/internal/vectorstore"
	"reddit-insight-backend/models"
	"reddit-insight-backend/services"
	"reddit-insight-backend/utils"

	"github.com/gin-gonic/gin"
)

// Neutral user-facing message when the model refuses per policy. Deliberately
// free of any model or stack detail.
const refusalMessage = "This question can't be answered here because doing so would go against the content policy. Try rephrasing your question."

// SetupInsightRoutes wires the Reddit insight endpoints.
func SetupInsightRoutes(router *gin.Engine, cfg *config.Config, insight *services.InsightService, metrics *telemetry.Metrics) {
	api := router.Group("/api/reddit")

	api.POST("/index", func(c *gin.Context) {
		var req models.IndexRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Missing 'url' parameter", gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Minute)
		defer cancel()

		result, err := insight.IndexPost(ctx, req.URL)
		if err != nil {
			respondIndexError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	})

	api.POST("/query", func(c *gin.Context) {
		var req models.QueryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, "Missing 'post_id' or 'query'", gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(cfg.GenerationTimeout)*time.Second)
		defer cancel()

		result, err := insight.QueryPost(ctx, req.PostID, req.Query, req.OriginalURL)
		if err != nil {
			respondQueryError(c, metrics, req.PostID, err)
			return
		}

		c.JSON(http.StatusOK, result)
	})
}

// respondIndexError translates pipeline failures into the structured payloads
// the caller can act on. Raw upstream error text never reaches the response
// for auth failures, so credentials cannot leak.
func respondIndexError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reddit.ErrInvalidURL):
		utils.RespondWithError(c, http.StatusBadRequest, "invalid_url",
			"Invalid Reddit URL - could not extract a post ID", nil)

	case errors.Is(err, reddit.ErrUpstreamAuth):
		utils.RespondWithError(c, http.StatusBadGateway, "reddit_auth_failed",
			"Reddit API authentication failed - check REDDIT_CLIENT_ID and REDDIT_CLIENT_SECRET", nil)

	case errors.Is(err, reddit.ErrNotFound):
		utils.RespondWithNotFound(c, "post_not_found", "Reddit post not found")

	case errors.Is(err, reddit.ErrRateLimited):
		utils.RespondWithError(c, http.StatusTooManyRequests, "reddit_rate_limited",
			"Reddit API rate limit exceeded - try again later", nil)

	case errors.Is(err, services.ErrEmbedding):
		logger.Error("Embedding failed during indexing", "error", err)
		utils.RespondWithInternalError(c, "embedding_failed",
			"Failed to embed comments - check GEMINI_API_KEY and quota", nil)

	case errors.Is(err, services.ErrStorage):
		logger.Error("Vector storage failed during indexing", "error", err)
		utils.RespondWithInternalError(c, "storage_failed",
			"Failed to store the comment index", nil)

	default:
		logger.Error("Indexing failed", "error", err)
		utils.RespondWithInternalError(c, "indexing_failed", "Indexing failed", nil)
	}
}

func respondQueryError(c *gin.Context, metrics *telemetry.Metrics, postID string, err error) {
	switch {
	case errors.Is(err, vectorstore.ErrCollectionNotFound):
		utils.RespondWithNotFound(c, "collection_not_found",
			"Post '"+postID+"' has not been indexed - index it first")

	case errors.Is(err, ai.ErrPolicyRefusal):
		// An intentional, safe non-answer, not an error condition.
		metrics.RecordPolicyRefusal(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"status":     "refused",
			"error_code": "policy_refusal",
			"error":      refusalMessage,
		})

	case errors.Is(err, ai.ErrModelConfig):
		logger.Error("Model configuration error", "error", err)
		utils.RespondWithInternalError(c, "model_config_error",
			"Generative model configuration error - check GEMINI_API_KEY and GEMINI_MODEL", nil)

	case errors.Is(err, ai.ErrEmptyResponse):
		utils.RespondWithError(c, http.StatusBadGateway, "empty_response",
			"The model returned no usable text - try again or rephrase", nil)

	case errors.Is(err, services.ErrEmbedding):
		logger.Error("Embedding failed during query", "error", err)
		utils.RespondWithInternalError(c, "embedding_failed",
			"Failed to embed the query - check GEMINI_API_KEY and quota", nil)

	default:
		logger.Error("Query failed", "error", err)
		utils.RespondWithInternalError(c, "query_failed", "Query failed", nil)
	}
}

package services

import (
	"context"

	"reddit-insight-backend/internal/logger"
	"reddit-insight-backend/internal/reddit"
	"reddit-insight-backend/internal/telemetry"
	"reddit-insight-backend/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

// PostFetcher resolves a post ID into its metadata and comment forest.
// Satisfied by *reddit.Client.
type PostFetcher interface {
	FetchPost(ctx context.Context, postID string) (*reddit.PostMeta, []reddit.RawComment, error)
}

// InsightService orchestrates the discussion insight pipeline: URL resolution,
// fetch, filter, and index on the write path; retrieve, anonymize, generate,
// and attribute on the read path.
type InsightService struct {
	fetcher   PostFetcher
	filter    *FilterService
	indexer   *Indexer
	retriever *Retriever
	answers   *AnswerService
	metrics   *telemetry.Metrics
	topK      int
}

func NewInsightService(fetcher PostFetcher, filter *FilterService, indexer *Indexer, retriever *Retriever, answers *AnswerService, metrics *telemetry.Metrics, topK int) *InsightService {
	if topK <= 0 {
		topK = 10
	}
	return &InsightService{
		fetcher:   fetcher,
		filter:    filter,
		indexer:   indexer,
		retriever: retriever,
		answers:   answers,
		metrics:   metrics,
		topK:      topK,
	}
}

// IndexPost fetches a post's comment tree and builds its vector collection.
// Zero qualifying comments is not an error; the result just reports count 0.
func (s *InsightService) IndexPost(ctx context.Context, url string) (*models.IndexResult, error) {
	tracer := otel.Tracer("insight-service")
	ctx, span := tracer.Start(ctx, "insight.index_post")
	defer span.End()

	postID, err := reddit.ExtractPostID(url)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("post_id", postID))

	meta, rawComments, err := s.fetcher.FetchPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	records := s.filter.Normalize(meta, rawComments)
	count, err := s.indexer.IndexComments(ctx, postID, records)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCommentsIndexed(ctx, count)
	logger.Info("Indexed Reddit post",
		"post_id", meta.ID, "fetched", len(rawComments), "indexed", count)

	return &models.IndexResult{
		Status:       "success",
		PostID:       meta.ID,
		PostTitle:    meta.Title,
		CommentCount: count,
		OriginalURL:  meta.URL,
	}, nil
}

// QueryPost answers a question about an indexed post. The author map exists
// only inside this call; by the time the result is returned, anonymized
// content has been reunited with identities exactly once, in the attribution
// step.
func (s *InsightService) QueryPost(ctx context.Context, postID, query, originalURL string) (*models.QueryResult, error) {
	tracer := otel.Tracer("insight-service")
	ctx, span := tracer.Start(ctx, "insight.query_post")
	defer span.End()
	span.SetAttributes(attribute.String("post_id", postID))

	records, err := s.retriever.RetrieveComments(ctx, postID, query, s.topK)
	if err != nil {
		return nil, err
	}

	snippets, authorMap := Anonymize(records)

	answer, err := s.answers.Answer(ctx, query, snippets)
	if err != nil {
		return nil, err
	}

	sourceURL := originalURL
	if len(records) > 0 && records[0].SourceURL != "" {
		sourceURL = records[0].SourceURL
	}
	if sourceURL == "" {
		sourceURL = reddit.PostURL(postID)
	}

	attribution := BuildAttribution(answer, snippets, authorMap, sourceURL)
	s.metrics.RecordQueryAnswered(ctx)

	return &models.QueryResult{
		Answer:    attribution.Answer,
		Citations: attribution.Contributors,
		SourceURL: attribution.SourceURL,
	}, nil
}

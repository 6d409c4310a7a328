package services

import (
	"context"
	"fmt"
	"strings"

	"reddit-insight-backend/models"
)

// Generator produces text for a prompt. Satisfied by *ai.GeminiClient.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// safetyPreamble is the fixed policy header of every generation prompt. The
// anonymized context and question are appended below it; nothing about the
// prompt changes between attempts.
const safetyPreamble = `You are an assistant for analyzing discussion comments and generating insights.

Safety policy, which overrides everything below it:
- Refuse to generate content that describes or enables illegal activity.
- Refuse to generate instructions or encouragement for self-harm.
- Refuse to generate hate speech or harassment targeting any person or group.
- If the question or the comments would require such content in the answer, reply only with a brief, neutral refusal.

Answer the user's question using only the provided comments. Refer to commenters
only by their contributor labels, never guess at identities, and keep phrasing
citation-neutral. If the comments do not contain enough information, state that
clearly.`

// AnswerService wraps the generative model for the insight pipeline.
type AnswerService struct {
	generator Generator
}

func NewAnswerService(generator Generator) *AnswerService {
	return &AnswerService{generator: generator}
}

// BuildPrompt assembles the constrained prompt: safety policy, anonymized
// snippets tagged with their placeholder, then the question.
func BuildPrompt(query string, snippets []models.AnonymizedSnippet) string {
	var sb strings.Builder
	sb.WriteString(safetyPreamble)
	sb.WriteString("\n\nContext (discussion comments):\n")

	for _, snippet := range snippets {
		fmt.Fprintf(&sb, "\n[%s, score %d]\n%s\n", snippet.Placeholder, snippet.Score, snippet.Text)
	}

	sb.WriteString("\nQuestion: ")
	sb.WriteString(query)
	return sb.String()
}

// Answer invokes the model exactly once for the query. Policy refusals, model
// configuration failures, and empty completions pass through as the ai
// package's sentinel errors for the route layer to translate.
func (s *AnswerService) Answer(ctx context.Context, query string, snippets []models.AnonymizedSnippet) (string, error) {
	return s.generator.GenerateText(ctx, BuildPrompt(query, snippets))
}

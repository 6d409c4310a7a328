package services

import (
	"fmt"

	"reddit-insight-backend/models"
)

// AuthorMap maps placeholder identifiers back to real author handles. It is
// built per request, lives only in the request-scoped query context, and must
// never be persisted or logged.
type AuthorMap map[string]string

// Anonymize produces the PII-free view of retrieved records. Each distinct
// author gets one sequential "Contributor N" placeholder reused across their
// comments; comments from deleted accounts get their own placeholder with no
// AuthorMap entry. No real handle or user ID survives into the snippets.
func Anonymize(records []models.CommentRecord) ([]models.AnonymizedSnippet, AuthorMap) {
	snippets := make([]models.AnonymizedSnippet, 0, len(records))
	authorMap := make(AuthorMap)
	byAuthor := make(map[string]string)
	next := 1

	for _, record := range records {
		placeholder, seen := byAuthor[record.Author]
		if !seen || record.Author == "" {
			placeholder = fmt.Sprintf("Contributor %d", next)
			next++
			if record.Author != "" {
				byAuthor[record.Author] = placeholder
				authorMap[placeholder] = record.Author
			}
		}

		snippets = append(snippets, models.AnonymizedSnippet{
			Placeholder: placeholder,
			Text:        record.Text,
			Score:       record.Score,
		})
	}

	return snippets, authorMap
}

package services

import "reddit-insight-backend/models"

// BuildAttribution reunites the generated answer with real identities for the
// outward-facing result. Every retrieved snippet is conservatively assumed to
// have contributed, so the contributor list is the ordered, de-duplicated set
// of real authors behind the snippets; deleted accounts are excluded. This is
// the only place placeholders are resolved back to handles, and the result is
// never re-stored.
func BuildAttribution(answer string, snippets []models.AnonymizedSnippet, authors AuthorMap, sourceURL string) models.AttributionResult {
	contributors := make([]string, 0, len(authors))
	seen := make(map[string]bool)

	for _, snippet := range snippets {
		handle, ok := authors[snippet.Placeholder]
		if !ok || handle == "" || seen[handle] {
			continue
		}
		seen[handle] = true
		contributors = append(contributors, handle)
	}

	return models.AttributionResult{
		Answer:       answer,
		SourceURL:    sourceURL,
		Contributors: contributors,
	}
}

package services

import (
	"strings"
	"unicode/utf8"

	"reddit-insight-backend/internal/reddit"
	"reddit-insight-backend/models"
)

// Bodies Reddit substitutes when a comment or account is gone.
var deletionPlaceholders = map[string]bool{
	"[deleted]": true,
	"[removed]": true,
}

// FilterService turns raw comments into normalized records. It only filters;
// a run that drops every comment is a valid outcome, not an error.
type FilterService struct {
	minLength int
}

func NewFilterService(minLength int) *FilterService {
	return &FilterService{minLength: minLength}
}

// Normalize drops comments that have no usable text (empty, deletion
// placeholder, or shorter than the minimum after trimming) and maps the rest
// into CommentRecords carrying the post's canonical URL for attribution.
func (f *FilterService) Normalize(meta *reddit.PostMeta, raw []reddit.RawComment) []models.CommentRecord {
	records := make([]models.CommentRecord, 0, len(raw))

	for _, comment := range raw {
		body := strings.TrimSpace(comment.Body)
		if body == "" || deletionPlaceholders[body] {
			continue
		}
		// Length is measured in characters, not bytes, so multi-byte
		// scripts are held to the same minimum.
		if utf8.RuneCountInString(body) < f.minLength {
			continue
		}

		author := comment.Author
		if deletionPlaceholders[author] {
			author = ""
		}

		records = append(records, models.CommentRecord{
			CommentID: comment.ID,
			Author:    author,
			Score:     comment.Score,
			Text:      body,
			PostTitle: meta.Title,
			SourceURL: meta.URL,
		})
	}

	return records
}

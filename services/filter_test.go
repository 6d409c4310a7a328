package services

import (
	"strings"
	"testing"

	"reddit-insight-backend/internal/reddit"
)

var testMeta = &reddit.PostMeta{
	ID:    "1abc23",
	Title: "What editor do you use for Go?",
	URL:   "https://www.reddit.com/r/golang/comments/1abc23/what_editor/",
}

func longBody(seed string) string {
	return seed + strings.Repeat(" detail", 20)
}

func TestNormalizeDropsShortAndDeleted(t *testing.T) {
	filter := NewFilterService(50)

	raw := []reddit.RawComment{
		{ID: "c1", Author: "alice", Body: longBody("I have been using vim for years and it works"), Score: 10},
		{ID: "c2", Author: "bob", Body: "too short"},
		{ID: "c3", Author: "[deleted]", Body: "[deleted]"},
		{ID: "c4", Author: "carol", Body: "[removed]"},
		{ID: "c5", Author: "dave", Body: "   "},
		{ID: "c6", Author: "erin", Body: longBody("GoLand has the best refactoring support by far"), Score: 3},
	}

	records := filter.Normalize(testMeta, raw)
	if len(records) != 2 {
		t.Fatalf("expected 2 surviving records, got %d", len(records))
	}

	for _, record := range records {
		if len(strings.TrimSpace(record.Text)) < 50 {
			t.Fatalf("record %s survived with %d chars", record.CommentID, len(record.Text))
		}
		if record.Text == "[deleted]" || record.Text == "[removed]" {
			t.Fatalf("deletion placeholder survived: %s", record.CommentID)
		}
		if record.SourceURL != testMeta.URL {
			t.Fatalf("record %s missing canonical URL", record.CommentID)
		}
		if record.PostTitle != testMeta.Title {
			t.Fatalf("record %s missing post title", record.CommentID)
		}
	}
}

func TestNormalizeBoundaryLength(t *testing.T) {
	filter := NewFilterService(50)

	exactly50 := strings.Repeat("x", 50)
	at49 := strings.Repeat("x", 49)
	padded := "  " + strings.Repeat("x", 49) + "  " // 49 after trimming

	raw := []reddit.RawComment{
		{ID: "keep", Author: "a", Body: exactly50},
		{ID: "drop", Author: "b", Body: at49},
		{ID: "drop-padded", Author: "c", Body: padded},
	}

	records := filter.Normalize(testMeta, raw)
	if len(records) != 1 || records[0].CommentID != "keep" {
		t.Fatalf("expected only the 50-char comment to survive, got %+v", records)
	}
}

func TestNormalizeCountsCharactersNotBytes(t *testing.T) {
	filter := NewFilterService(50)

	// 25 characters but 75 bytes; must not pass a 50-character minimum.
	shortMultiByte := strings.Repeat("日", 25)
	// 50 characters, 150 bytes.
	exactMultiByte := strings.Repeat("語", 50)

	raw := []reddit.RawComment{
		{ID: "drop-cjk", Author: "a", Body: shortMultiByte},
		{ID: "keep-cjk", Author: "b", Body: exactMultiByte},
	}

	records := filter.Normalize(testMeta, raw)
	if len(records) != 1 || records[0].CommentID != "keep-cjk" {
		t.Fatalf("expected only the 50-character comment to survive, got %+v", records)
	}
}

func TestNormalizeDeletedAuthorBecomesEmpty(t *testing.T) {
	filter := NewFilterService(50)

	raw := []reddit.RawComment{
		{ID: "c1", Author: "[deleted]", Body: longBody("this comment body remains even though the account is gone"), Score: 2},
	}

	records := filter.Normalize(testMeta, raw)
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Author != "" {
		t.Fatalf("deleted author should normalize to empty, got %q", records[0].Author)
	}
}

func TestNormalizeTwelveQualifyingThreeShort(t *testing.T) {
	filter := NewFilterService(50)

	var raw []reddit.RawComment
	for i := 0; i < 12; i++ {
		raw = append(raw, reddit.RawComment{
			ID:     "q" + strings.Repeat("x", i+1),
			Author: "user",
			Body:   longBody("a sufficiently long and substantive comment body"),
		})
	}
	raw = append(raw,
		reddit.RawComment{ID: "s1", Author: "user", Body: "short"},
		reddit.RawComment{ID: "s2", Author: "user", Body: "also short"},
		reddit.RawComment{ID: "s3", Author: "user", Body: "nope"},
	)

	records := filter.Normalize(testMeta, raw)
	if len(records) != 12 {
		t.Fatalf("expected comment_count 12, got %d", len(records))
	}
}

func TestNormalizeEmptyInputIsValid(t *testing.T) {
	filter := NewFilterService(50)
	if records := filter.Normalize(testMeta, nil); len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

package services

import (
	"testing"

	"reddit-insight-backend/models"
)

func TestBuildAttribution(t *testing.T) {
	snippets := []models.AnonymizedSnippet{
		{Placeholder: "Contributor 1"},
		{Placeholder: "Contributor 2"},
		{Placeholder: "Contributor 1"}, // same author, second comment
		{Placeholder: "Contributor 3"}, // deleted author, no map entry
	}
	authors := AuthorMap{
		"Contributor 1": "alice",
		"Contributor 2": "bob",
	}

	result := BuildAttribution("the answer", snippets, authors, "https://www.reddit.com/comments/1abc23/")

	if result.Answer != "the answer" {
		t.Fatalf("answer not carried through: %q", result.Answer)
	}
	if result.SourceURL != "https://www.reddit.com/comments/1abc23/" {
		t.Fatalf("source URL not carried through: %q", result.SourceURL)
	}

	// De-duplicated, order-preserving, deleted authors excluded
	want := []string{"alice", "bob"}
	if len(result.Contributors) != len(want) {
		t.Fatalf("expected %d contributors, got %v", len(want), result.Contributors)
	}
	for i, handle := range want {
		if result.Contributors[i] != handle {
			t.Fatalf("contributor %d: expected %q, got %q", i, handle, result.Contributors[i])
		}
	}
}

func TestBuildAttributionOnlyRetrievedAuthors(t *testing.T) {
	// The map may know more authors than the snippets reference; only
	// authors of retrieved snippets can appear.
	snippets := []models.AnonymizedSnippet{
		{Placeholder: "Contributor 2"},
	}
	authors := AuthorMap{
		"Contributor 1": "alice",
		"Contributor 2": "bob",
	}

	result := BuildAttribution("answer", snippets, authors, "url")
	if len(result.Contributors) != 1 || result.Contributors[0] != "bob" {
		t.Fatalf("expected only bob, got %v", result.Contributors)
	}
}

func TestBuildAttributionNoAuthors(t *testing.T) {
	result := BuildAttribution("answer", nil, AuthorMap{}, "url")
	if len(result.Contributors) != 0 {
		t.Fatalf("expected no contributors, got %v", result.Contributors)
	}
}

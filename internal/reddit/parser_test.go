package reddit

import (
	"encoding/json"
	"testing"
)

const forestJSON = `[
  {"kind": "t1", "data": {
    "id": "c1", "author": "alice", "body": "Top level comment", "score": 42, "depth": 0,
    "replies": {"kind": "Listing", "data": {"children": [
      {"kind": "t1", "data": {
        "id": "c2", "author": "bob", "body": "Nested reply", "score": 7, "depth": 1,
        "replies": {"kind": "Listing", "data": {"children": [
          {"kind": "t1", "data": {"id": "c3", "author": "[deleted]", "body": "[deleted]", "score": 0, "depth": 2, "replies": ""}}
        ]}}
      }},
      {"kind": "more", "data": {"count": 5, "children": ["d1", "d2"]}}
    ]}}
  }},
  {"kind": "t1", "data": {"id": "c4", "author": "carol", "body": "Another top level", "score": 3, "depth": 0, "replies": ""}},
  {"kind": "more", "data": {"count": 12, "children": ["d3", "d4", "d5"]}}
]`

func TestParseCommentForest(t *testing.T) {
	var children []thing
	if err := json.Unmarshal([]byte(forestJSON), &children); err != nil {
		t.Fatalf("failed to unmarshal fixture: %v", err)
	}

	comments, moreIDs, err := parseCommentForest(children)
	if err != nil {
		t.Fatalf("parseCommentForest error: %v", err)
	}

	if len(comments) != 4 {
		t.Fatalf("expected 4 comments (nested replies included), got %d", len(comments))
	}

	// Depth-first order: c1, c2, c3, c4
	wantOrder := []string{"c1", "c2", "c3", "c4"}
	for i, want := range wantOrder {
		if comments[i].ID != want {
			t.Fatalf("comment %d: expected ID %q, got %q", i, want, comments[i].ID)
		}
	}

	if comments[0].Author != "alice" || comments[0].Score != 42 {
		t.Fatalf("unexpected first comment: %+v", comments[0])
	}
	if comments[2].Author != "[deleted]" {
		t.Fatalf("deleted author should pass through raw, got %q", comments[2].Author)
	}

	// Placeholders at all depths are collected, not dropped
	if len(moreIDs) != 5 {
		t.Fatalf("expected 5 pending more IDs, got %d (%v)", len(moreIDs), moreIDs)
	}
}

func TestParseCommentForestEmpty(t *testing.T) {
	comments, moreIDs, err := parseCommentForest(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(comments) != 0 || len(moreIDs) != 0 {
		t.Fatalf("expected empty results, got %d comments, %d more IDs", len(comments), len(moreIDs))
	}
}

package reddit

import (
	"errors"
	"testing"
)

func TestExtractPostID(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{"standard", "https://www.reddit.com/r/golang/comments/1abc23/some_title/", "1abc23"},
		{"no trailing slash", "https://www.reddit.com/r/golang/comments/1abc23/some_title", "1abc23"},
		{"no www", "https://reddit.com/r/golang/comments/1abc23/some_title/", "1abc23"},
		{"old reddit", "https://old.reddit.com/r/golang/comments/1abc23/some_title/", "1abc23"},
		{"query params", "https://www.reddit.com/r/golang/comments/1abc23/some_title/?sort=top&utm_source=share", "1abc23"},
		{"bare comments path", "https://www.reddit.com/comments/1abc23", "1abc23"},
		{"short link", "https://redd.it/1abc23", "1abc23"},
		{"short link trailing slash", "https://redd.it/1abc23/", "1abc23"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractPostID(tc.url)
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.url, err)
			}
			if got != tc.want {
				t.Fatalf("ExtractPostID(%q) = %q, want %q", tc.url, got, tc.want)
			}
		})
	}
}

func TestExtractPostIDInvalid(t *testing.T) {
	invalid := []string{
		"",
		"not a url",
		"https://www.reddit.com/r/golang/",
		"https://www.reddit.com/user/someone/",
		"https://example.com/comments-are-disabled",
	}

	for _, url := range invalid {
		if _, err := ExtractPostID(url); !errors.Is(err, ErrInvalidURL) {
			t.Fatalf("ExtractPostID(%q): expected ErrInvalidURL, got %v", url, err)
		}
	}
}

func TestExtractPostIDDeterministic(t *testing.T) {
	url := "https://www.reddit.com/r/golang/comments/1abc23/some_title/"
	first, _ := ExtractPostID(url)
	second, _ := ExtractPostID(url)
	if first != second {
		t.Fatalf("resolver not deterministic: %q vs %q", first, second)
	}
}

package reddit

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Matches /comments/{post_id} with or without a trailing segment or slash.
var commentsPathRegex = regexp.MustCompile(`/comments/([a-zA-Z0-9]+)`)

// Matches a bare base-36 post ID, used for redd.it short links.
var postIDRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ExtractPostID extracts the stable submission ID from a Reddit post URL.
// Handles the known URL shapes:
//   - https://www.reddit.com/r/sub/comments/{post_id}/title/
//   - https://old.reddit.com/r/sub/comments/{post_id}/title?sort=top
//   - https://reddit.com/comments/{post_id}
//   - https://redd.it/{post_id}
//
// Pure and deterministic; returns ErrInvalidURL when no ID is present.
func ExtractPostID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	if m := commentsPathRegex.FindStringSubmatch(u.Path); m != nil {
		return m[1], nil
	}

	// Short-link form: the post ID is the single path segment.
	if strings.EqualFold(u.Hostname(), "redd.it") {
		id := strings.Trim(u.Path, "/")
		if postIDRegex.MatchString(id) {
			return id, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
}

// PostURL returns the canonical URL for a post ID.
func PostURL(postID string) string {
	return "https://www.reddit.com/comments/" + postID + "/"
}

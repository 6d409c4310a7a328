package reddit

import "errors"

var (
	// ErrInvalidURL means no post ID could be extracted from the given URL.
	ErrInvalidURL = errors.New("could not extract post ID from URL")

	// ErrNotFound means the post ID did not resolve to a submission.
	ErrNotFound = errors.New("reddit post not found")

	// ErrRateLimited means Reddit returned 429. The caller may retry later;
	// this package never retries on its own.
	ErrRateLimited = errors.New("reddit API rate limit exceeded")

	// ErrUpstreamAuth means credentials are missing or rejected. Retrying
	// without reconfiguration will not help.
	ErrUpstreamAuth = errors.New("reddit API authentication failed")
)

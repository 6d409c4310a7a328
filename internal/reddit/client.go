package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reddit-insight-backend/internal/config"
	"reddit-insight-backend/internal/logger"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	tokenURL = "https://www.reddit.com/api/v1/access_token"
	apiBase  = "https://oauth.reddit.com"

	// Reddit caps morechildren batches at 100 IDs per call.
	moreBatchSize = 100
)

// Client talks to the Reddit data API using app-only OAuth2
// (client-credentials grant).
type Client struct {
	httpClient     *http.Client
	maxMoreLookups int
}

// userAgentTransport sets the User-Agent Reddit requires on every request,
// including the token exchange.
type userAgentTransport struct {
	base      http.RoundTripper
	userAgent string
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(clone)
}

func NewClient(cfg *config.Config) *Client {
	creds := &clientcredentials.Config{
		ClientID:     cfg.RedditClientID,
		ClientSecret: cfg.RedditClientSecret,
		TokenURL:     tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	timeout := time.Duration(cfg.RedditTimeout) * time.Second
	base := &http.Client{
		Transport: &userAgentTransport{base: http.DefaultTransport, userAgent: cfg.RedditUserAgent},
		Timeout:   timeout,
	}

	// The oauth2 client inherits the base transport, so the User-Agent is
	// applied to API calls and token refreshes alike.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	httpClient := creds.Client(ctx)
	httpClient.Timeout = timeout

	return &Client{
		httpClient:     httpClient,
		maxMoreLookups: cfg.RedditMaxMoreLookups,
	}
}

// FetchPost resolves a submission and traverses its full comment forest,
// nested replies included. "Load more comments" placeholders are expanded via
// /api/morechildren, bounded at maxMoreLookups round-trips; anything beyond
// the bound is logged and skipped rather than silently hanging the request.
func (c *Client) FetchPost(ctx context.Context, postID string) (*PostMeta, []RawComment, error) {
	endpoint := fmt.Sprintf("%s/comments/%s?limit=500&raw_json=1", apiBase, url.PathEscape(postID))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, nil, err
	}

	var payload []struct {
		Kind string      `json:"kind"`
		Data listingData `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, nil, fmt.Errorf("failed to decode comments response: %w", err)
	}
	if len(payload) < 2 || len(payload[0].Data.Children) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, postID)
	}

	var link linkData
	if err := json.Unmarshal(payload[0].Data.Children[0].Data, &link); err != nil {
		return nil, nil, fmt.Errorf("failed to decode submission: %w", err)
	}

	meta := &PostMeta{
		ID:          link.ID,
		Title:       link.Title,
		URL:         "https://www.reddit.com" + link.Permalink,
		Subreddit:   link.Subreddit,
		NumComments: link.NumComments,
	}

	comments, moreIDs, err := parseCommentForest(payload[1].Data.Children)
	if err != nil {
		return nil, nil, err
	}

	expanded, err := c.expandMore(ctx, postID, moreIDs)
	if err != nil {
		return nil, nil, err
	}
	comments = append(comments, expanded...)

	return meta, comments, nil
}

// parseCommentForest walks a listing's children depth-first, collecting
// comments and the IDs behind "more" placeholders.
func parseCommentForest(children []thing) ([]RawComment, []string, error) {
	var comments []RawComment
	var moreIDs []string

	for _, child := range children {
		switch child.Kind {
		case kindComment:
			var cd commentData
			if err := json.Unmarshal(child.Data, &cd); err != nil {
				return nil, nil, fmt.Errorf("failed to decode comment: %w", err)
			}
			comments = append(comments, RawComment{
				ID:     cd.ID,
				Author: cd.Author,
				Body:   cd.Body,
				Score:  cd.Score,
				Depth:  cd.Depth,
			})

			// Replies is "" when there are none, a listing otherwise.
			if len(cd.Replies) > 0 && cd.Replies[0] == '{' {
				var replies struct {
					Data listingData `json:"data"`
				}
				if err := json.Unmarshal(cd.Replies, &replies); err != nil {
					return nil, nil, fmt.Errorf("failed to decode replies: %w", err)
				}
				nested, nestedMore, err := parseCommentForest(replies.Data.Children)
				if err != nil {
					return nil, nil, err
				}
				comments = append(comments, nested...)
				moreIDs = append(moreIDs, nestedMore...)
			}

		case kindMore:
			var md moreData
			if err := json.Unmarshal(child.Data, &md); err != nil {
				return nil, nil, fmt.Errorf("failed to decode more placeholder: %w", err)
			}
			moreIDs = append(moreIDs, md.Children...)
		}
	}

	return comments, moreIDs, nil
}

// expandMore resolves pending "more" comment IDs. Each round-trip handles up
// to moreBatchSize IDs; newly discovered placeholders join the queue until the
// lookup budget runs out.
func (c *Client) expandMore(ctx context.Context, postID string, pending []string) ([]RawComment, error) {
	var comments []RawComment

	for lookups := 0; len(pending) > 0 && lookups < c.maxMoreLookups; lookups++ {
		batch := pending
		if len(batch) > moreBatchSize {
			batch = batch[:moreBatchSize]
		}
		pending = pending[len(batch):]

		endpoint := fmt.Sprintf(
			"%s/api/morechildren?api_type=json&raw_json=1&limit_children=false&link_id=%s_%s&children=%s",
			apiBase, kindLink, url.QueryEscape(postID), url.QueryEscape(strings.Join(batch, ",")),
		)
		body, err := c.get(ctx, endpoint)
		if err != nil {
			return nil, err
		}

		var payload struct {
			JSON struct {
				Data struct {
					Things []thing `json:"things"`
				} `json:"data"`
			} `json:"json"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("failed to decode morechildren response: %w", err)
		}

		parsed, moreIDs, err := parseCommentForest(payload.JSON.Data.Things)
		if err != nil {
			return nil, err
		}
		comments = append(comments, parsed...)
		pending = append(pending, moreIDs...)
	}

	if len(pending) > 0 {
		logger.Warn("Comment expansion budget exhausted",
			"post_id", postID, "unresolved", len(pending), "budget", c.maxMoreLookups)
	}

	return comments, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Token exchange failures mean bad or missing credentials.
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return nil, fmt.Errorf("%w: token request rejected", ErrUpstreamAuth)
		}
		return nil, fmt.Errorf("reddit request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: status %d", ErrUpstreamAuth, resp.StatusCode)
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("reddit returned unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

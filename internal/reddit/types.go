package reddit

import "encoding/json"

// PostMeta describes a resolved submission. Immutable once fetched.
type PostMeta struct {
	ID          string
	Title       string
	URL         string // canonical permalink
	Subreddit   string
	NumComments int
}

// RawComment is one comment as returned by the API, before filtering.
// Author keeps Reddit's raw value; deleted accounts arrive as "[deleted]".
type RawComment struct {
	ID     string
	Author string
	Body   string
	Score  int
	Depth  int
}

// Reddit wire format: everything is a kinded "thing".
type thing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type listingData struct {
	Children []thing `json:"children"`
}

type linkData struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Permalink   string `json:"permalink"`
	Subreddit   string `json:"subreddit"`
	NumComments int    `json:"num_comments"`
}

type commentData struct {
	ID      string          `json:"id"`
	Author  string          `json:"author"`
	Body    string          `json:"body"`
	Score   int             `json:"score"`
	Depth   int             `json:"depth"`
	Replies json.RawMessage `json:"replies"` // nested listing, or "" when empty
}

type moreData struct {
	Count    int      `json:"count"`
	Children []string `json:"children"`
}

const (
	kindComment = "t1"
	kindLink    = "t3"
	kindMore    = "more"
)

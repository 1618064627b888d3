package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"devscout/pkg/models"
)

// Time decodes the backend's timestamps, which are ISO 8601 and may lack a
// zone offset (naive UTC)
type Time struct {
	time.Time
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON accepts null, RFC 3339 and naive timestamps
func (t *Time) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timeLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", raw)
}

// MarshalJSON writes RFC 3339, or null for the zero time
func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

// StoredPost is a post as persisted by the backend
type StoredPost struct {
	ID                int               `json:"id"`
	RedditID          string            `json:"reddit_id"`
	Subreddit         string            `json:"subreddit"`
	Title             string            `json:"title"`
	Body              string            `json:"body"`
	URL               string            `json:"url"`
	Author            string            `json:"author"`
	Score             int               `json:"score"`
	NumComments       int               `json:"num_comments"`
	CreatedUTC        Time              `json:"created_utc"`
	RelevanceScore    float64           `json:"relevance_score"`
	KeywordsMatched   string            `json:"keywords_matched"`
	SuggestedResponse string            `json:"suggested_response"`
	Status            models.PostStatus `json:"status"`
	RespondedAt       Time              `json:"responded_at"`
	DiscoveredAt      Time              `json:"discovered_at"`
	MyCommentURL      string            `json:"my_comment_url,omitempty"`
	UnreadReplies     int               `json:"unread_replies,omitempty"`
}

// Keywords decodes the JSON array the backend stores as text. Malformed or
// empty values yield nil.
func (p StoredPost) Keywords() []string {
	if p.KeywordsMatched == "" {
		return nil
	}
	var out []string
	if err := json.Unmarshal([]byte(p.KeywordsMatched), &out); err != nil {
		return nil
	}
	return out
}

// Stats is the dashboard summary
type Stats struct {
	TotalPosts       int            `json:"total_posts"`
	NewPosts         int            `json:"new_posts"`
	RespondedPosts   int            `json:"responded_posts"`
	SkippedPosts     int            `json:"skipped_posts"`
	PostsBySubreddit map[string]int `json:"posts_by_subreddit"`
}

// SubmitResult reports how many submitted posts were new to the backend
type SubmitResult struct {
	Received int `json:"received"`
	Added    int `json:"added"`
}

// ListOptions filters ListPosts. Zero values are omitted from the query;
// the backend caps Limit at 100 and defaults to 50.
type ListOptions struct {
	Status    models.PostStatus
	Subreddit string
	Limit     int
}

// PostUpdate changes a stored post. Empty fields are left untouched.
type PostUpdate struct {
	Status            models.PostStatus `json:"status,omitempty"`
	SuggestedResponse string            `json:"suggested_response,omitempty"`
	MyCommentURL      string            `json:"my_comment_url,omitempty"`
}

// ReplyRequest asks for a response to someone who replied to a comment
type ReplyRequest struct {
	Subreddit  string `json:"subreddit"`
	MyComment  string `json:"my_comment"`
	TheirReply string `json:"their_reply"`
}

// EngageRequest asks for a discussion post built from an idea template
type EngageRequest struct {
	Subreddit    string `json:"subreddit"`
	IdeaTemplate string `json:"idea_template"`
	Category     string `json:"category"`
}

// NewsRequest asks for a response to a news-site post. Source is the
// record's source label, e.g. "HN:Ask".
type NewsRequest struct {
	Title  string `json:"title"`
	Body   string `json:"body,omitempty"`
	Source string `json:"source"`
}

type submitRequest struct {
	Posts []models.Post `json:"posts"`
}

type generateRequest struct {
	PostID        int    `json:"post_id"`
	CustomContext string `json:"custom_context,omitempty"`
}

type generated struct {
	Response string `json:"response"`
}

type cleared struct {
	Deleted int `json:"deleted"`
}

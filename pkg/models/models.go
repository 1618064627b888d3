package models

import (
	"strconv"
	"time"
)

// Record is implemented by every type the aggregator can merge and rank
type Record interface {
	// RecordID is unique across all sources of one run
	RecordID() string
	// RecordScore orders records, highest first
	RecordScore() float64
}

// PostStatus is the triage state a post carries in the backend
type PostStatus string

const (
	StatusNew       PostStatus = "new"
	StatusResponded PostStatus = "responded"
	StatusSkipped   PostStatus = "skipped"
)

// Valid reports whether s is one of the known statuses
func (s PostStatus) Valid() bool {
	switch s {
	case StatusNew, StatusResponded, StatusSkipped:
		return true
	}
	return false
}

// Post is a normalized content item from any discussion source. The JSON
// shape matches what the backend accepts on submit.
type Post struct {
	ID              string   `json:"reddit_id"`
	SourceLabel     string   `json:"subreddit"`
	Title           string   `json:"title"`
	BodyExcerpt     string   `json:"body,omitempty"`
	URL             string   `json:"url"`
	Author          string   `json:"author"`
	UpvoteCount     int      `json:"score"`
	CommentCount    int      `json:"num_comments"`
	CreatedAt       float64  `json:"created_utc"`
	MatchedKeywords []string `json:"keywords_matched"`
	RelevanceScore  float64  `json:"relevance_score"`
}

func (p Post) RecordID() string     { return p.ID }
func (p Post) RecordScore() float64 { return p.RelevanceScore }

// Created returns CreatedAt as a time
func (p Post) Created() time.Time {
	return unixFloat(p.CreatedAt)
}

// SourceKind distinguishes where a prospect came from
type SourceKind string

const (
	SourceCommunity      SourceKind = "community"
	SourceLinkAggregator SourceKind = "link-aggregator"
)

// Prospect is an outreach or hiring lead
type Prospect struct {
	ID            string     `json:"id"`
	SourceKind    SourceKind `json:"source"`
	SourceLabel   string     `json:"subreddit"`
	Title         string     `json:"title"`
	BodyExcerpt   string     `json:"body,omitempty"`
	URL           string     `json:"url"`
	Author        string     `json:"author"`
	UpvoteCount   int        `json:"score"`
	CommentCount  int        `json:"num_comments"`
	CreatedAt     float64    `json:"created_utc"`
	ProspectScore int        `json:"prospect_score"`
	SearchQuery   string     `json:"query"`
	IsHiring      bool       `json:"is_hiring"`
	ThreadTitle   string     `json:"thread_title,omitempty"`
	ThreadURL     string     `json:"thread_url,omitempty"`
}

func (p Prospect) RecordID() string     { return p.ID }
func (p Prospect) RecordScore() float64 { return float64(p.ProspectScore) }

// Created returns CreatedAt as a time
func (p Prospect) Created() time.Time {
	return unixFloat(p.CreatedAt)
}

// Issue is an open GitHub issue that may be worth contributing to
type Issue struct {
	ID             int64     `json:"id"`
	Number         int       `json:"number"`
	Title          string    `json:"title"`
	BodyExcerpt    string    `json:"body,omitempty"`
	URL            string    `json:"url"`
	RepoFullName   string    `json:"repo"`
	RepoURL        string    `json:"repo_url"`
	Author         string    `json:"author"`
	CommentCount   int       `json:"comments"`
	Labels         []string  `json:"labels"`
	CreatedAt      time.Time `json:"created_at"`
	RelevanceScore float64   `json:"relevance_score"`
}

func (i Issue) RecordID() string     { return strconv.FormatInt(i.ID, 10) }
func (i Issue) RecordScore() float64 { return i.RelevanceScore }

// Reply is a direct reply to one of the tracked user's comments
type Reply struct {
	ID        string  `json:"id"`
	Author    string  `json:"author"`
	Body      string  `json:"body"`
	CreatedAt float64 `json:"created_utc"`
	Score     int     `json:"score"`
	Permalink string  `json:"permalink"`
	// HasUserReply is true when the tracked user appears anywhere below
	// this reply
	HasUserReply bool `json:"has_user_reply"`
}

// UserComment is a comment written by the tracked user
type UserComment struct {
	ID             string  `json:"id"`
	Body           string  `json:"body"`
	CreatedAt      float64 `json:"created_utc"`
	Score          int     `json:"score"`
	Permalink      string  `json:"permalink"`
	Replies        []Reply `json:"replies"`
	UnrepliedCount int     `json:"unreplied_count"`
}

// ReplyThread collects the tracked user's comments on one post
type ReplyThread struct {
	PostID         string        `json:"post_id"`
	Comments       []UserComment `json:"comments"`
	TotalUnreplied int           `json:"total_unreplied"`
}

// NewReplyThread builds a thread and sums the unreplied counts
func NewReplyThread(postID string, comments []UserComment) ReplyThread {
	total := 0
	for _, c := range comments {
		total += c.UnrepliedCount
	}
	return ReplyThread{PostID: postID, Comments: comments, TotalUnreplied: total}
}

// IdeaTemplate is a discussion-starter idea from the engagement catalog
type IdeaTemplate struct {
	Title      string   `json:"title"`
	Tags       []string `json:"tags"`
	Subreddits []string `json:"subreddits"`
	Category   string   `json:"category,omitempty"`
}

func unixFloat(sec float64) time.Time {
	whole := int64(sec)
	return time.Unix(whole, int64((sec-float64(whole))*1e9))
}

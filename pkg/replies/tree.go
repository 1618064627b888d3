package replies

import (
	"encoding/json"
	"fmt"
	"strings"

	"devscout/pkg/models"
)

// MaxDepth bounds every walk over a comment tree
const MaxDepth = 64

// Kind is the Reddit thing kind of a node
type Kind string

const (
	KindComment Kind = "t1"
	KindMore    Kind = "more"
)

// Comment is the payload of a t1 node
type Comment struct {
	ID         string
	Author     string
	Body       string
	CreatedUTC float64
	Score      int
	Permalink  string
	ParentID   string
}

// Node is one entry of a comment tree. Only comment nodes carry a Comment
// and Children; "more" placeholders and unknown kinds are kept as leaves.
type Node struct {
	Kind     Kind
	Comment  Comment
	Children []Node
}

// IsComment reports whether n is a t1 comment
func (n Node) IsComment() bool { return n.Kind == KindComment }

type wireThing struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

type wireListing struct {
	Data struct {
		Children []Node `json:"children"`
	} `json:"data"`
}

type wireComment struct {
	ID         string          `json:"id"`
	Author     string          `json:"author"`
	Body       string          `json:"body"`
	CreatedUTC float64         `json:"created_utc"`
	Score      int             `json:"score"`
	Permalink  string          `json:"permalink"`
	ParentID   string          `json:"parent_id"`
	Replies    json.RawMessage `json:"replies"`
}

// UnmarshalJSON decodes a Reddit thing. A comment's replies field is either
// an empty string or a nested listing.
func (n *Node) UnmarshalJSON(data []byte) error {
	var thing wireThing
	if err := json.Unmarshal(data, &thing); err != nil {
		return err
	}
	n.Kind = Kind(thing.Kind)
	if n.Kind != KindComment {
		return nil
	}

	var c wireComment
	if err := json.Unmarshal(thing.Data, &c); err != nil {
		return fmt.Errorf("failed to decode comment: %w", err)
	}
	n.Comment = Comment{
		ID:         c.ID,
		Author:     c.Author,
		Body:       c.Body,
		CreatedUTC: c.CreatedUTC,
		Score:      c.Score,
		Permalink:  c.Permalink,
		ParentID:   c.ParentID,
	}

	if len(c.Replies) > 0 && c.Replies[0] == '{' {
		var replies wireListing
		if err := json.Unmarshal(c.Replies, &replies); err != nil {
			return fmt.Errorf("failed to decode replies of %s: %w", c.ID, err)
		}
		n.Children = replies.Data.Children
	}
	return nil
}

// ParseThread decodes a comments endpoint response, a two element array of
// the post listing and the comment listing, and returns the top-level
// comment nodes
func ParseThread(body []byte) ([]Node, error) {
	var listings []wireListing
	if err := json.Unmarshal(body, &listings); err != nil {
		return nil, fmt.Errorf("failed to decode thread: %w", err)
	}
	if len(listings) < 2 {
		return nil, fmt.Errorf("unexpected thread shape: %d listings", len(listings))
	}
	return listings[1].Data.Children, nil
}

func sameUser(author, username string) bool {
	return author != "" && strings.EqualFold(author, username)
}

func permalink(p string) string {
	return "https://reddit.com" + p
}

func toReply(c Comment) models.Reply {
	author := c.Author
	if author == "" {
		author = "[deleted]"
	}
	return models.Reply{
		ID:        c.ID,
		Author:    author,
		Body:      c.Body,
		CreatedAt: c.CreatedUTC,
		Score:     c.Score,
		Permalink: permalink(c.Permalink),
	}
}

// FindUserComments walks the tree depth first and returns every comment
// written by username, each with its direct replies from other people
func FindUserComments(nodes []Node, username string) []models.UserComment {
	var found []models.UserComment
	findUserComments(nodes, username, 0, &found)
	return found
}

func findUserComments(nodes []Node, username string, depth int, found *[]models.UserComment) {
	if depth >= MaxDepth {
		return
	}
	for _, n := range nodes {
		if !n.IsComment() {
			continue
		}

		if sameUser(n.Comment.Author, username) {
			var replies []models.Reply
			unreplied := 0
			for _, child := range n.Children {
				if !child.IsComment() || sameUser(child.Comment.Author, username) {
					continue
				}
				r := toReply(child.Comment)
				r.HasUserReply = HasUserReply(child.Children, username)
				if !r.HasUserReply {
					unreplied++
				}
				replies = append(replies, r)
			}

			*found = append(*found, models.UserComment{
				ID:             n.Comment.ID,
				Body:           n.Comment.Body,
				CreatedAt:      n.Comment.CreatedUTC,
				Score:          n.Comment.Score,
				Permalink:      permalink(n.Comment.Permalink),
				Replies:        replies,
				UnrepliedCount: unreplied,
			})
		}

		findUserComments(n.Children, username, depth+1, found)
	}
}

// HasUserReply reports whether username wrote any comment in nodes or below
func HasUserReply(nodes []Node, username string) bool {
	return hasUserReply(nodes, username, 0)
}

func hasUserReply(nodes []Node, username string, depth int) bool {
	if depth >= MaxDepth {
		return false
	}
	for _, n := range nodes {
		if !n.IsComment() {
			continue
		}
		if sameUser(n.Comment.Author, username) || hasUserReply(n.Children, username, depth+1) {
			return true
		}
	}
	return false
}

// RepliesTo collects the replies to commentID: the direct replies under
// the comment itself plus any comment elsewhere whose parent is commentID
func RepliesTo(nodes []Node, commentID string) []models.Reply {
	var replies []models.Reply
	seen := make(map[string]bool)
	add := func(c Comment) {
		if seen[c.ID] {
			return
		}
		seen[c.ID] = true
		replies = append(replies, toReply(c))
	}

	parent := "t1_" + commentID
	var walk func(nodes []Node, depth int)
	walk = func(nodes []Node, depth int) {
		if depth >= MaxDepth {
			return
		}
		for _, n := range nodes {
			if !n.IsComment() {
				continue
			}
			if n.Comment.ParentID == parent {
				add(n.Comment)
			}
			walk(n.Children, depth+1)
		}
	}

	for _, n := range nodes {
		if !n.IsComment() {
			continue
		}
		if n.Comment.ID == commentID {
			for _, child := range n.Children {
				if child.IsComment() {
					add(child.Comment)
				}
			}
			continue
		}
		walk([]Node{n}, 0)
	}
	return replies
}

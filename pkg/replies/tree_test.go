package replies

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const me = "jessedev_"

type obj = map[string]interface{}

func listing(children ...obj) obj {
	list := make([]interface{}, 0, len(children))
	for _, c := range children {
		list = append(list, c)
	}
	return obj{"kind": "Listing", "data": obj{"children": list}}
}

func comment(id, author, parent string, children ...obj) obj {
	var replies interface{} = ""
	if len(children) > 0 {
		replies = listing(children...)
	}
	return obj{"kind": "t1", "data": obj{
		"id":          id,
		"author":      author,
		"body":        "body of " + id,
		"created_utc": 1740830400.0,
		"score":       2,
		"permalink":   "/r/webdev/comments/post1/slug/" + id + "/",
		"parent_id":   parent,
		"replies":     replies,
	}}
}

func more() obj {
	return obj{"kind": "more", "data": obj{"count": 3, "children": []string{"x", "y"}}}
}

func thread(t *testing.T, comments ...obj) []byte {
	t.Helper()
	post := listing(obj{"kind": "t3", "data": obj{"id": "post1", "title": "A post"}})
	body, err := json.Marshal([]interface{}{post, listing(comments...)})
	require.NoError(t, err)
	return body
}

// sampleThread:
//
//	top1 alice
//	  me1 jessedev_
//	    r1 bob
//	    r2 carol
//	      d1 dave
//	        e1 erin
//	          deep JesseDev_
//	    r3 jessedev_
//	    more
//	top2 JESSEDEV_
func sampleThread(t *testing.T) []byte {
	return thread(t,
		comment("top1", "alice", "t3_post1",
			comment("me1", me, "t1_top1",
				comment("r1", "bob", "t1_me1"),
				comment("r2", "carol", "t1_me1",
					comment("d1", "dave", "t1_r2",
						comment("e1", "erin", "t1_d1",
							comment("deep", "JesseDev_", "t1_e1"),
						),
					),
				),
				comment("r3", me, "t1_me1"),
				more(),
			),
		),
		comment("top2", "JESSEDEV_", "t3_post1"),
		more(),
	)
}

func TestParseThread(t *testing.T) {
	nodes, err := ParseThread(sampleThread(t))
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	assert.True(t, nodes[0].IsComment())
	assert.Equal(t, "alice", nodes[0].Comment.Author)
	assert.Equal(t, "t3_post1", nodes[0].Comment.ParentID)
	require.Len(t, nodes[0].Children, 1)
	assert.Len(t, nodes[0].Children[0].Children, 4)
	assert.Equal(t, KindMore, nodes[2].Kind)
	assert.Empty(t, nodes[1].Children)
}

func TestParseThreadRejectsOtherShapes(t *testing.T) {
	_, err := ParseThread([]byte(`{"kind":"Listing"}`))
	assert.Error(t, err)

	_, err = ParseThread([]byte(`[{"kind":"Listing","data":{"children":[]}}]`))
	assert.Error(t, err)
}

func TestFindUserComments(t *testing.T) {
	nodes, err := ParseThread(sampleThread(t))
	require.NoError(t, err)

	found := FindUserComments(nodes, me)

	var ids []string
	for _, c := range found {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"me1", "deep", "r3", "top2"}, ids)

	me1 := found[0]
	assert.Equal(t, "https://reddit.com/r/webdev/comments/post1/slug/me1/", me1.Permalink)
	require.Len(t, me1.Replies, 2, "own replies and placeholders are not replies")
	assert.Equal(t, "r1", me1.Replies[0].ID)
	assert.False(t, me1.Replies[0].HasUserReply)
	assert.Equal(t, "r2", me1.Replies[1].ID)
	assert.True(t, me1.Replies[1].HasUserReply, "tracked user answered three levels down")
	assert.Equal(t, 1, me1.UnrepliedCount)

	assert.Empty(t, found[3].Replies)
	assert.Zero(t, found[3].UnrepliedCount)
}

func TestFindUserCommentsNoMatches(t *testing.T) {
	nodes, err := ParseThread(sampleThread(t))
	require.NoError(t, err)
	assert.Empty(t, FindUserComments(nodes, "somebody_else"))
}

func TestHasUserReply(t *testing.T) {
	withUserAtDepth3 := []Node{
		{Kind: KindComment, Comment: Comment{Author: "a"}, Children: []Node{
			{Kind: KindComment, Comment: Comment{Author: "b"}, Children: []Node{
				{Kind: KindComment, Comment: Comment{Author: "c"}, Children: []Node{
					{Kind: KindComment, Comment: Comment{Author: me}},
				}},
			}},
		}},
	}
	assert.True(t, HasUserReply(withUserAtDepth3, me))

	without := []Node{
		{Kind: KindComment, Comment: Comment{Author: "a"}, Children: []Node{
			{Kind: KindComment, Comment: Comment{Author: "b"}},
			{Kind: KindMore},
		}},
	}
	assert.False(t, HasUserReply(without, me))
	assert.False(t, HasUserReply(nil, me))
}

func TestWalksAreDepthBounded(t *testing.T) {
	leaf := Node{Kind: KindComment, Comment: Comment{ID: "bottom", Author: me}}
	chain := leaf
	for i := 0; i < MaxDepth+5; i++ {
		chain = Node{Kind: KindComment, Comment: Comment{Author: "someone"}, Children: []Node{chain}}
	}

	assert.False(t, HasUserReply([]Node{chain}, me))
	assert.Empty(t, FindUserComments([]Node{chain}, me))
}

func TestDeletedAuthorsNeverMatch(t *testing.T) {
	nodes := []Node{{Kind: KindComment, Comment: Comment{Author: ""}}}
	assert.False(t, HasUserReply(nodes, ""))
}

func TestRepliesTo(t *testing.T) {
	body := thread(t,
		comment("mine", me, "t3_post1",
			comment("a", "bob", "t1_mine"),
			comment("b", "", "t1_mine"),
			more(),
		),
		comment("other", "carol", "t3_post1",
			comment("stray", "dave", "t1_mine"),
			comment("unrelated", "erin", "t1_other"),
		),
	)

	nodes, err := ParseThread(body)
	require.NoError(t, err)

	replies := RepliesTo(nodes, "mine")
	var ids []string
	for _, r := range replies {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"a", "b", "stray"}, ids)
	assert.Equal(t, "[deleted]", replies[1].Author)
}

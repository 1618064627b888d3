package ideas

import (
	"math/rand/v2"
	"testing"

	"devscout/pkg/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubreddits(t *testing.T) {
	names := Subreddits()
	require.Len(t, names, len(catalog.EngagementSubreddits()))
	assert.Equal(t, "programming", names[0])
}

func TestRelatedSubreddits(t *testing.T) {
	assert.Equal(t, []string{"programming", "frontend", "webdevelopment", "coding"}, RelatedSubreddits("webdev"))
	assert.Nil(t, RelatedSubreddits("Webdev"))
	assert.Nil(t, RelatedSubreddits("cooking"))
}

func TestForCategory(t *testing.T) {
	assert.Equal(t, catalog.AllIdeas(), ForCategory(""))
	assert.Len(t, ForCategory("production_comparisons"), 4)
	assert.Empty(t, ForCategory("unknown"))
}

func TestForSubreddit(t *testing.T) {
	ideas := ForSubreddit("node")
	require.NotEmpty(t, ideas)
	for _, idea := range ideas {
		assert.Contains(t, idea.Subreddits, "node")
		assert.NotEmpty(t, idea.Category)
	}
	assert.Equal(t, "The hidden complexity of {X} integrations that nobody talks about", ideas[0].Title)
	assert.Equal(t, "architecture_deep_dives", ideas[0].Category)

	assert.Empty(t, ForSubreddit("cooking"))
}

func TestRandomSubreddit(t *testing.T) {
	p := NewPicker(rand.New(rand.NewPCG(1, 2)))
	names := Subreddits()
	for i := 0; i < 20; i++ {
		assert.Contains(t, names, p.RandomSubreddit())
	}

	again := NewPicker(rand.New(rand.NewPCG(1, 2)))
	first := NewPicker(rand.New(rand.NewPCG(1, 2))).RandomSubreddit()
	assert.Equal(t, first, again.RandomSubreddit(), "same seed, same pick")

	assert.Contains(t, names, NewPicker(nil).RandomSubreddit())
}

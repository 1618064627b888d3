package main

import (
	"fmt"
	"slices"
	"strings"

	"devscout/pkg/catalog"
	"devscout/pkg/ideas"
	"devscout/pkg/models"
	"devscout/pkg/ui"

	"github.com/spf13/cobra"
)

var (
	ideaCategory  string
	ideaSubreddit string
	ideaRandom    bool
)

// ideasCmd browses the discussion-starter catalog
var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Browse discussion ideas for engagement subreddits",
	Example: `  devscout ideas --category production_war_stories
  devscout ideas --subreddit selfhosted
  devscout ideas --random`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		subreddit := ideaSubreddit
		if ideaRandom {
			subreddit = ideas.NewPicker(nil).RandomSubreddit()
			ui.PrintInfo("Subreddit", "r/"+subreddit)
		}

		var list []models.IdeaTemplate
		switch {
		case subreddit != "":
			list = ideas.ForSubreddit(subreddit)
			if related := ideas.RelatedSubreddits(subreddit); len(related) > 0 {
				ui.PrintInfo("Related", "r/"+strings.Join(related, ", r/"))
			}
		case ideaCategory != "":
			if !slices.Contains(catalog.IdeaCategories(), ideaCategory) {
				return fmt.Errorf("unknown category %q (choose from: %s)",
					ideaCategory, strings.Join(catalog.IdeaCategories(), ", "))
			}
			list = ideas.ForCategory(ideaCategory)
		default:
			list = ideas.ForCategory("")
		}

		ui.RenderIdeas(list)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ideasCmd)
	ideasCmd.Flags().StringVar(&ideaCategory, "category", "", "show the ideas of one category")
	ideasCmd.Flags().StringVar(&ideaSubreddit, "subreddit", "", "show the ideas that fit one subreddit")
	ideasCmd.Flags().BoolVar(&ideaRandom, "random", false, "pick a random engagement subreddit")
	ideasCmd.MarkFlagsMutuallyExclusive("subreddit", "random")
}

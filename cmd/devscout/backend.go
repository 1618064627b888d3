package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"devscout/pkg/backend"
	"devscout/pkg/models"
	"devscout/pkg/ui"

	"github.com/spf13/cobra"
)

var (
	listStatus    string
	listSubreddit string
	listLimit     int
	updateStatus  string
	commentURL    string
	customContext string
	draftCategory string
	newsBody      string
	newsSource    string
)

// backendCmd groups the commands that talk to the DevScout backend
var backendCmd = &cobra.Command{
	Use:   "backend",
	Short: "Manage posts stored in the DevScout backend",
}

var backendStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show post counts by status and subreddit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := newApp(cfg).backend().Stats(cmd.Context())
		if err != nil {
			return err
		}
		ui.PrintInfo("Total", strconv.Itoa(stats.TotalPosts))
		ui.PrintInfo("New", strconv.Itoa(stats.NewPosts))
		ui.PrintInfo("Responded", strconv.Itoa(stats.RespondedPosts))
		ui.PrintInfo("Skipped", strconv.Itoa(stats.SkippedPosts))

		subs := make([]string, 0, len(stats.PostsBySubreddit))
		for s := range stats.PostsBySubreddit {
			subs = append(subs, s)
		}
		sort.Slice(subs, func(i, j int) bool {
			return stats.PostsBySubreddit[subs[i]] > stats.PostsBySubreddit[subs[j]]
		})
		for _, s := range subs {
			fmt.Printf("  %-24s %d\n", s, stats.PostsBySubreddit[s])
		}
		return nil
	},
}

var backendListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored posts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		status := models.PostStatus(listStatus)
		if status != "" && !status.Valid() {
			return fmt.Errorf("invalid status %q (new, responded or skipped)", listStatus)
		}
		posts, err := newApp(cfg).backend().ListPosts(cmd.Context(), backend.ListOptions{
			Status:    status,
			Subreddit: listSubreddit,
			Limit:     listLimit,
		})
		if err != nil {
			return err
		}
		printStoredPosts(posts)
		return nil
	},
}

var backendGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one stored post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := postID(args[0])
		if err != nil {
			return err
		}
		post, err := newApp(cfg).backend().GetPost(cmd.Context(), id)
		if err != nil {
			return err
		}
		printStoredPost(cmd.OutOrStdout(), post)
		return nil
	},
}

var backendUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change a stored post's status or comment link",
	Example: `  devscout backend update 42 --status responded --comment-url https://www.reddit.com/r/golang/comments/abc/t/def/
  devscout backend update 43 --status skipped`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := postID(args[0])
		if err != nil {
			return err
		}
		status := models.PostStatus(updateStatus)
		if status == "" && commentURL == "" {
			return fmt.Errorf("nothing to update, pass --status or --comment-url")
		}
		post, err := newApp(cfg).backend().UpdatePost(cmd.Context(), id, backend.PostUpdate{
			Status:       status,
			MyCommentURL: commentURL,
		})
		if err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("Post %d is now %s", post.ID, post.Status))
		return nil
	},
}

var backendDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := postID(args[0])
		if err != nil {
			return err
		}
		if err := newApp(cfg).backend().DeletePost(cmd.Context(), id); err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("Deleted post %d", id))
		return nil
	},
}

var backendClearStaleCmd = &cobra.Command{
	Use:   "clear-stale",
	Short: "Delete new posts the backend considers stale",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deleted, err := newApp(cfg).backend().ClearStale(cmd.Context())
		if err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("Deleted %d stale posts", deleted))
		return nil
	},
}

var backendMarkReadCmd = &cobra.Command{
	Use:   "mark-read <id>",
	Short: "Reset a tracked post's unread reply count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := postID(args[0])
		if err != nil {
			return err
		}
		return newApp(cfg).backend().MarkRepliesRead(cmd.Context(), id)
	},
}

var backendGenerateCmd = &cobra.Command{
	Use:   "generate <id>",
	Short: "Generate a suggested response for a stored post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := postID(args[0])
		if err != nil {
			return err
		}
		response, err := newApp(cfg).backend().GenerateResponse(cmd.Context(), id, customContext)
		if err != nil {
			return err
		}
		fmt.Println(response)
		return nil
	},
}

var backendReplyCmd = &cobra.Command{
	Use:   "reply <subreddit> <my-comment> <their-reply>",
	Short: "Generate an answer to someone who replied to your comment",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		response, err := newApp(cfg).backend().GenerateReply(cmd.Context(), backend.ReplyRequest{
			Subreddit:  args[0],
			MyComment:  args[1],
			TheirReply: args[2],
		})
		if err != nil {
			return err
		}
		fmt.Println(response)
		return nil
	},
}

var backendEngageCmd = &cobra.Command{
	Use:     "engage <subreddit> <idea>",
	Short:   "Draft a discussion post from an idea template",
	Example: `  devscout backend engage selfhosted "The silent failure that went unnoticed for 3 months" --category production_war_stories`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		response, err := newApp(cfg).backend().GenerateEngagePost(cmd.Context(), backend.EngageRequest{
			Subreddit:    args[0],
			IdeaTemplate: args[1],
			Category:     draftCategory,
		})
		if err != nil {
			return err
		}
		fmt.Println(response)
		return nil
	},
}

var backendNewsCmd = &cobra.Command{
	Use:   "news-response <title>",
	Short: "Generate a response to a news-site post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		response, err := newApp(cfg).backend().GenerateNewsResponse(cmd.Context(), backend.NewsRequest{
			Title:  args[0],
			Body:   newsBody,
			Source: newsSource,
		})
		if err != nil {
			return err
		}
		fmt.Println(response)
		return nil
	},
}

func postID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid post id %q", arg)
	}
	return id, nil
}

func printStoredPost(w io.Writer, p backend.StoredPost) {
	fmt.Fprintf(w, "#%d [%s] r/%s  score %.0f\n", p.ID, p.Status, p.Subreddit, p.RelevanceScore)
	fmt.Fprintln(w, p.Title)
	fmt.Fprintln(w, p.URL)
	if kw := p.Keywords(); len(kw) > 0 {
		fmt.Fprintf(w, "Keywords: %s\n", strings.Join(kw, ", "))
	}
	if p.MyCommentURL != "" {
		fmt.Fprintf(w, "My comment: %s (%d unread replies)\n", p.MyCommentURL, p.UnreadReplies)
	}
	if p.SuggestedResponse != "" {
		fmt.Fprintf(w, "\nSuggested response:\n%s\n", p.SuggestedResponse)
	}
}

func printStoredPosts(posts []backend.StoredPost) {
	if len(posts) == 0 {
		ui.PrintInfo("Posts", "none")
		return
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tSCORE\tSUBREDDIT\tTITLE")
	for _, p := range posts {
		fmt.Fprintf(tw, "%d\t%s\t%.0f\t%s\t%s\n", p.ID, p.Status, p.RelevanceScore, p.Subreddit, p.Title)
	}
	tw.Flush()
}

func init() {
	rootCmd.AddCommand(backendCmd)
	backendCmd.AddCommand(
		backendStatsCmd,
		backendListCmd,
		backendGetCmd,
		backendUpdateCmd,
		backendDeleteCmd,
		backendClearStaleCmd,
		backendMarkReadCmd,
		backendGenerateCmd,
		backendReplyCmd,
		backendEngageCmd,
		backendNewsCmd,
	)

	backendListCmd.Flags().StringVar(&listStatus, "status", "", "only posts with this status (new, responded, skipped)")
	backendListCmd.Flags().StringVar(&listSubreddit, "subreddit", "", "only posts from this subreddit")
	backendListCmd.Flags().IntVar(&listLimit, "limit", 50, "maximum number of posts (the backend caps this at 100)")

	backendUpdateCmd.Flags().StringVar(&updateStatus, "status", "", "new status (new, responded, skipped)")
	backendUpdateCmd.Flags().StringVar(&commentURL, "comment-url", "", "link to your comment on the post")

	backendGenerateCmd.Flags().StringVar(&customContext, "context", "", "extra context for the generated response")
	backendEngageCmd.Flags().StringVar(&draftCategory, "category", "", "idea category")
	backendNewsCmd.Flags().StringVar(&newsBody, "body", "", "post body")
	backendNewsCmd.Flags().StringVar(&newsSource, "source", "", "source label, e.g. HN:Ask")
}

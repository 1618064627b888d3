package main

import (
	"context"
	"errors"
	"fmt"

	"devscout/pkg/backend"
	"devscout/pkg/models"
	"devscout/pkg/replies"
	"devscout/pkg/ui"

	"github.com/spf13/cobra"
)

var (
	replyUsername  string
	trackedReplies bool
	updateCounts   bool
)

// repliesCmd checks posts for replies to the tracked user's comments
var repliesCmd = &cobra.Command{
	Use:   "replies [post-url...]",
	Short: "Check Reddit posts for unanswered replies to your comments",
	Long: `Fetch the comment tree of each Reddit post and list the tracked user's
comments together with the direct replies they received. Replies the user has
already answered are marked.

With --tracked the posts marked as responded in the backend are checked in
batches instead, and --update stores the unanswered count back in the backend.`,
	Example: `  devscout replies https://www.reddit.com/r/golang/comments/abc123/title/
  devscout replies --tracked --update
  devscout replies --username someone https://www.reddit.com/r/rust/comments/xyz/t/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if trackedReplies == (len(args) > 0) {
			return errors.New("pass post URLs or --tracked, not both")
		}

		a := newApp(cfg)
		defer a.flushMetrics()

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		scraper := replies.NewScraper(a.http, cfg.Replies, a.log)
		if trackedReplies {
			return checkTracked(ctx, a, scraper)
		}
		return checkPosts(ctx, a, scraper, args)
	},
}

// commentRepliesCmd lists the replies to one comment
var commentRepliesCmd = &cobra.Command{
	Use:     "comment-replies <comment-url>",
	Short:   "List the direct replies to one Reddit comment",
	Example: `  devscout comment-replies https://www.reddit.com/r/golang/comments/abc123/title/def456/`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cfg)
		defer a.flushMetrics()

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		scraper := replies.NewScraper(a.http, cfg.Replies, a.log)
		found, err := scraper.FetchCommentReplies(ctx, args[0])
		if err != nil {
			return err
		}
		ui.RenderReplies(found)
		return nil
	},
}

func checkPosts(ctx context.Context, a *app, scraper *replies.Scraper, urls []string) error {
	unanswered := 0
	for _, u := range urls {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		result := scraper.ScrapePost(ctx, u)
		a.metrics.RecordReplyScrape(result.OK())

		switch err := result.Err(); {
		case errors.Is(err, replies.ErrMalformedURL):
			ui.PrintError(u, err)
			continue
		case err != nil:
			ui.PrintError(fmt.Sprintf("post %s", result.PostID), err)
			continue
		}

		thread := models.NewReplyThread(result.PostID, result.Comments)
		ui.RenderReplyThread(thread)
		unanswered += thread.TotalUnreplied
	}
	a.notifier.Unanswered(unanswered)
	return nil
}

func checkTracked(ctx context.Context, a *app, scraper *replies.Scraper) error {
	client := a.backend()
	posts, err := client.TrackedPosts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load tracked posts: %w", err)
	}
	if len(posts) == 0 {
		ui.PrintInfo("Tracked posts", "none")
		return nil
	}

	targets := make([]replies.Target, 0, len(posts))
	byID := make(map[int]backend.StoredPost, len(posts))
	for _, p := range posts {
		targets = append(targets, replies.Target{ID: p.ID, URL: p.URL})
		byID[p.ID] = p
	}

	threads := scraper.ScrapeTracked(ctx, targets)
	for _, t := range targets {
		_, ok := threads[t.ID]
		a.metrics.RecordReplyScrape(ok)
	}

	unanswered := 0
	for _, t := range targets {
		thread, ok := threads[t.ID]
		if !ok {
			ui.PrintWarning(fmt.Sprintf("Could not fetch %s", byID[t.ID].URL))
			continue
		}
		ui.PrintHighlight(byID[t.ID].Title)
		ui.RenderReplyThread(thread)
		unanswered += thread.TotalUnreplied

		if updateCounts {
			if err := client.UpdateReplyCount(ctx, t.ID, thread.TotalUnreplied); err != nil {
				a.log.WithError(err).WithField("post_id", t.ID).Warn("Failed to update reply count")
			}
		}
	}

	ui.PrintInfo("Checked", fmt.Sprintf("%d of %d tracked posts", len(threads), len(targets)))
	a.notifier.Unanswered(unanswered)
	return nil
}

func init() {
	rootCmd.AddCommand(repliesCmd, commentRepliesCmd)
	rootCmd.PersistentFlags().StringVar(&replyUsername, "username", "", "Reddit username whose comments are tracked")
	repliesCmd.Flags().BoolVar(&trackedReplies, "tracked", false, "check every responded post stored in the backend")
	repliesCmd.Flags().BoolVar(&updateCounts, "update", false, "store unanswered reply counts in the backend (with --tracked)")
}

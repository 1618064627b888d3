package main

import (
	"context"
	"fmt"

	"devscout/pkg/aggregator"
	"devscout/pkg/catalog"
	"devscout/pkg/models"
	"devscout/pkg/sources"
	"devscout/pkg/ui"

	"github.com/spf13/cobra"
)

var (
	// Scan flags shared by posts, news, prospects and issues
	resumeRun    bool
	forceRestart bool
	submitPosts  bool
	displayLimit int
)

// postsCmd scans the target subreddits
var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Scan the target subreddits for posts worth answering",
	Long: `Scan every target subreddit's newest posts, keep the fresh ones with few
comments, score them by keyword matches and recency and print the ranked list.

The scan saves a checkpoint after every subreddit. An interrupted scan (Ctrl-C)
can be continued with --resume.`,
	Example: `  # Scan and show the 20 best posts
  devscout posts --limit 20

  # Continue an interrupted scan and send the results to the backend
  devscout posts --resume --submit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cfg)
		defer a.flushMetrics()

		srcs := sources.SubredditSources(a.sourceBase(), catalog.TargetSubreddits())
		return scanPosts(cmd.Context(), a, "posts", srcs, runOptions{
			kind:         "posts",
			delay:        cfg.Scan.SourceDelay,
			checkpointed: true,
			resume:       resumeRun,
			forceRestart: forceRestart,
		})
	},
}

// newsCmd scans the news and community sites
var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Scan Hacker News, Lobsters, Dev.to, Hashnode, Indie Hackers and Tildes",
	Example: `  devscout news --limit 30
  devscout news --submit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cfg)
		defer a.flushMetrics()

		return scanPosts(cmd.Context(), a, "news", sources.NewsSources(a.sourceBase()), runOptions{
			kind:  "news",
			delay: cfg.Scan.SourceDelay,
		})
	},
}

func scanPosts(parent context.Context, a *app, label string, srcs []aggregator.Source[models.Post], opts runOptions) error {
	ctx, stop := signalContext(parent)
	defer stop()

	res, err := runAggregation(ctx, a, srcs, opts)
	if err != nil {
		return err
	}
	if res.State != aggregator.Completed {
		return nil
	}

	ui.RenderPosts(limit(res.Records, displayLimit), a.now())

	if submitPosts {
		if err := submit(ctx, a, res.Records); err != nil {
			return fmt.Errorf("failed to submit %s: %w", label, err)
		}
	}
	return nil
}

func submit(ctx context.Context, a *app, posts []models.Post) error {
	result, err := a.backend().SubmitPosts(ctx, posts)
	if err != nil {
		return err
	}
	ui.PrintSuccess(fmt.Sprintf("Submitted %d posts, %d new", result.Received, result.Added))
	return nil
}

func addScanFlags(cmd *cobra.Command, resumable, submittable bool) {
	cmd.Flags().IntVar(&displayLimit, "limit", 0, "show at most N results (0 shows all)")
	if resumable {
		cmd.Flags().BoolVar(&resumeRun, "resume", false, "resume from the last checkpoint")
		cmd.Flags().BoolVar(&forceRestart, "force-restart", false, "discard any checkpoint and start over")
	}
	if submittable {
		cmd.Flags().BoolVar(&submitPosts, "submit", false, "send the results to the backend")
	}
}

func init() {
	rootCmd.AddCommand(postsCmd, newsCmd)
	addScanFlags(postsCmd, true, true)
	addScanFlags(newsCmd, false, true)
}

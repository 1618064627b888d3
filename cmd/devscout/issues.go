package main

import (
	"fmt"
	"os"

	"devscout/pkg/aggregator"
	"devscout/pkg/models"
	"devscout/pkg/sources"
	"devscout/pkg/storage"
	"devscout/pkg/ui"

	"github.com/spf13/cobra"
)

var briefIssueID int64

// issuesCmd finds open GitHub issues to contribute to
var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Find open GitHub issues labelled for new contributors",
	Long: `Search GitHub for open issues carrying each configured label in the
configured languages and rank them by relevance and freshness.

--brief prints a ready-to-paste contribution brief for one issue from the
most recent issues export instead of running a new search.`,
	Example: `  devscout issues --limit 15
  devscout issues --brief 2345678901`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if briefIssueID != 0 {
			return printBrief(briefIssueID)
		}

		a := newApp(cfg)
		defer a.flushMetrics()

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		res, err := runAggregation(ctx, a, sources.IssueSources(a.sourceBase(), cfg.GitHub), runOptions{
			kind:  "issues",
			delay: cfg.Scan.IssueDelay,
		})
		if err != nil {
			return err
		}
		if res.State == aggregator.Completed {
			ui.RenderIssues(limit(res.Records, displayLimit), a.now())
		}
		return nil
	},
}

// printBrief looks the issue up in the latest export
func printBrief(id int64) error {
	store, err := storage.NewManager(cfg.Output.Directory)
	if err != nil {
		return err
	}
	path := store.Latest("issues")
	if path == "" {
		return fmt.Errorf("no issues export in %s, run 'devscout issues' first", store.GetOutputDir())
	}

	var issues []models.Issue
	if err := storage.LoadJSON(path, &issues); err != nil {
		return err
	}
	for _, issue := range issues {
		if issue.ID == id {
			fmt.Fprintln(os.Stdout, issue.Brief())
			return nil
		}
	}
	return fmt.Errorf("issue %d not found in %s", id, path)
}

func init() {
	rootCmd.AddCommand(issuesCmd)
	addScanFlags(issuesCmd, false, false)
	issuesCmd.Flags().Int64Var(&briefIssueID, "brief", 0, "print the contribution brief for this issue id")
}

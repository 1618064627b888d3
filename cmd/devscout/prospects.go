package main

import (
	"fmt"

	"devscout/pkg/aggregator"
	"devscout/pkg/catalog"
	"devscout/pkg/report"
	"devscout/pkg/sources"
	"devscout/pkg/storage"
	"devscout/pkg/ui"

	"github.com/spf13/cobra"
)

var writeReports bool

// prospectsCmd searches for outreach and hiring leads
var prospectsCmd = &cobra.Command{
	Use:   "prospects",
	Short: "Search Reddit and Hacker News hiring threads for leads",
	Long: `Run the prospect searches across Reddit and the latest Hacker News
"Who is hiring?" and "Freelancer?" threads. Every lead gets a score from
hiring intent, budget and tech keywords; posts from people offering their own
services are dropped.

With --report the leads are written to HOT_LEADS.txt, WARM_LEADS.txt and
ALL_PROSPECTS.txt in the output directory.`,
	Example: `  devscout prospects --report
  devscout prospects --resume --limit 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a := newApp(cfg)
		defer a.flushMetrics()

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		srcs := sources.ProspectSources(a.sourceBase(), catalog.ProspectSearches())
		res, err := runAggregation(ctx, a, srcs, runOptions{
			kind:         "prospects",
			delay:        cfg.Scan.ProspectDelay,
			checkpointed: true,
			resume:       resumeRun,
			forceRestart: forceRestart,
		})
		if err != nil {
			return err
		}
		if res.State != aggregator.Completed {
			return nil
		}

		ui.RenderProspects(limit(res.Records, displayLimit), a.now())

		if !writeReports {
			return nil
		}
		leads := report.Classify(res.Records, cfg.Output.HotThreshold, cfg.Output.WarmThreshold)
		store, err := storage.NewManager(cfg.Output.Directory)
		if err != nil {
			return err
		}
		written, err := report.Write(store, leads, a.now())
		if err != nil {
			return err
		}

		ui.PrintHighlight(fmt.Sprintf("%d hot, %d warm, %d total (%d competitor posts kept out of the lead lists)",
			len(leads.Hot), len(leads.Warm), len(leads.All), leads.CompetitorsRemoved))
		for _, name := range written {
			ui.PrintInfo("Report", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(prospectsCmd)
	addScanFlags(prospectsCmd, true, false)
	prospectsCmd.Flags().BoolVar(&writeReports, "report", false, "write the hot, warm and full lead reports")
}

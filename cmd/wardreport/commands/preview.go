package commands

import (
	"fmt"
	"slices"
	"strings"
	"wardreport/lib/configutil"
	"wardreport/lib/mdtable"
	"wardreport/lib/serviceutil"
	"wardreport/lib/timezone"
	"wardreport/services/recommend"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

var rawPreview bool

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Fetch recommend status and render every report group in the terminal, sending nothing.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg, err := configutil.ReadConfig[Config](*configPath)
		if err != nil {
			serviceutil.Fatal("failed to read configuration", err)
		}
		windows, err := recommend.ResolveWindows(cfg.Reports, timezone.Now())
		if err != nil {
			serviceutil.Fatal("failed to resolve report windows", err)
		}

		store := openArchive(cfg.Archive)
		if store != nil {
			defer store.Close()
		}
		client := createClient(ctx, cfg.Portal)

		entries, err := fetchRecommends(ctx, store, client)
		if err != nil {
			serviceutil.Fatal("failed to fetch recommend status", err)
		}
		grouped := recommend.Partition(windows, recommend.FromEntries(entries))
		reports := recommend.BuildReports(grouped)

		names := make([]string, 0, len(windows))
		for name := range windows {
			names = append(names, name)
		}
		slices.Sort(names)

		doc := []string{mdtable.Title("Temple recommend expirations")}
		for _, name := range names {
			doc = append(doc, mdtable.Heading(windows[name].Title), reports[name])
		}
		markdown := strings.Join(doc, "\n")

		if rawPreview {
			fmt.Print(markdown)
			return
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(0),
		)
		if err != nil {
			serviceutil.Fatal("failed to initialize the terminal renderer", err)
		}
		rendered, err := renderer.Render(markdown)
		if err != nil {
			serviceutil.Fatal("failed to render the report preview", err)
		}
		fmt.Print(rendered)
	},
}

func init() {
	previewCmd.Flags().BoolVar(&rawPreview, "raw", false, "print the markdown source instead of rendering it")
	rootCmd.AddCommand(previewCmd)
}

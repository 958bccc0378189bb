package commands

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"
	"wardreport/lib/configutil"
	"wardreport/lib/serviceutil"
	"wardreport/lib/timezone"
	"wardreport/services/membership"
	"wardreport/services/notify"
	"wardreport/services/recommend"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	noEmail bool
	testRun bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch recommend status and send the expiration report emails.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		cfg, err := configutil.ReadConfig[Config](*configPath)
		if err != nil {
			serviceutil.Fatal("failed to read configuration", err)
		}
		if testRun {
			if cfg.Email.BccAddr == "" {
				serviceutil.Fatal(
					"a test run redirects all mail to bcc_addr, which is not configured",
					fmt.Errorf("email.bcc_addr is empty"),
				)
			}
			cfg.Email.TestAddr = cfg.Email.BccAddr
		}

		today := timezone.Now()
		windows, err := recommend.ResolveWindows(cfg.Reports, today)
		if err != nil {
			serviceutil.Fatal("failed to resolve report windows", err)
		}
		memberWindow, err := resolveMemberWindow(cfg.Email.Member, today)
		if err != nil {
			serviceutil.Fatal("failed to resolve the member notice window", err)
		}

		store := openArchive(cfg.Archive)
		if store != nil {
			defer store.Close()
		}
		client := createClient(ctx, cfg.Portal)

		payload, err := fetchMembership(ctx, store, client)
		if err != nil {
			serviceutil.Fatal("failed to fetch membership", err)
		}
		index, err := membership.Build(ctx, payload)
		if err != nil {
			serviceutil.Fatal("failed to index membership", err)
		}
		bishopric, err := index.Bishopric()
		if err != nil {
			serviceutil.Fatal("failed to resolve the bishopric", err)
		}

		entries, err := fetchRecommends(ctx, store, client)
		if err != nil {
			serviceutil.Fatal("failed to fetch recommend status", err)
		}
		records := recommend.FromEntries(entries)
		slog.Info("fetched recommend records", "count", len(records), "members", index.Len())

		grouped := recommend.Partition(windows, records)
		reports := recommend.BuildReports(grouped)
		printSummary(windows, grouped)

		if noEmail {
			slog.Info("email disabled, stopping before send")
			return
		}

		svc := notify.NewService(cfg.Email, notify.NewSender(cfg.Smtp))
		err = svc.SendBishopReport(ctx, bishopric, windows, reports)
		if err != nil {
			serviceutil.Fatal("failed to send the bishop report", err)
		}
		err = svc.SendCounselorReport(ctx, bishopric, windows, reports)
		if err != nil {
			serviceutil.Fatal("failed to send the counselor report", err)
		}

		err = svc.SendMemberNotices(ctx, bishopric, records, memberWindow)
		if err != nil {
			serviceutil.Fatal("failed to send member notices", err)
		}
	},
}

// resolveMemberWindow validates the member notice offsets the same way
// report groups are validated, so an inverted window fails the run at
// startup instead of silently notifying nobody.
func resolveMemberWindow(cfg notify.MemberConfig, today time.Time) (recommend.Window, error) {
	windows, err := recommend.ResolveWindows(map[string]recommend.GroupConfig{
		"member": {Head: cfg.Head, Tail: cfg.Tail},
	}, today)
	if err != nil {
		return recommend.Window{}, err
	}
	return windows["member"], nil
}

func printSummary(windows map[string]recommend.Window, grouped map[string][]recommend.Record) {
	names := make([]string, 0, len(windows))
	for name := range windows {
		names = append(names, name)
	}
	slices.Sort(names)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Group", "Window", "Title", "Matches"})
	for _, name := range names {
		w := windows[name]
		t.AppendRow(table.Row{name, w.Start + "-" + w.End, w.Title, len(grouped[name])})
	}
	t.Render()
}

func init() {
	runCmd.Flags().BoolVar(&noEmail, "no-email", false, "fetch and report, but send nothing")
	runCmd.Flags().BoolVar(&testRun, "test", false, "redirect every email to bcc_addr")
	rootCmd.AddCommand(runCmd)
}

package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/vitalkeeper/internal/filex"
	"github.com/dmitrijs2005/vitalkeeper/internal/netx"
	"github.com/spf13/cobra"
)

func (a *App) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Push pending activities and the profile to the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.remoteContext(cmd.Context())
			defer cancel()

			res, err := a.sync.Sync(ctx)
			if err != nil {
				return fmt.Errorf("sync: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "synced %d of %d activities\n", res.Accepted, res.Pushed)
			return nil
		},
	}
}

func (a *App) leaderboardCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the streak ranking",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.remoteContext(cmd.Context())
			defer cancel()

			entries, err := a.sync.Leaderboard(ctx, limit)
			if err != nil {
				return fmt.Errorf("leaderboard: %w", err)
			}

			out := cmd.OutOrStdout()
			t := themeFor(out)
			for _, e := range entries {
				name := e.DisplayName
				if name == "" {
					name = t.muted.Render(e.UserID)
				}
				fmt.Fprintf(out, "%3d. %-20s %4d days (best %d), %d XP\n", e.Rank, name, e.Streak, e.LongestStreak, e.XP)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of rows")
	return cmd
}

func (a *App) exportCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the synced journal and print a download link",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := a.remoteContext(cmd.Context())
			defer cancel()

			exp, err := a.sync.ExportJournal(ctx)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%d entries exported\n", exp.Entries)
			if outPath == "" {
				fmt.Fprintln(out, exp.URL)
				return nil
			}

			n, err := downloadTo(ctx, exp.URL, outPath)
			if err != nil {
				return fmt.Errorf("export: %w", err)
			}
			fmt.Fprintf(out, "saved %d bytes to %s\n", n, outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "download the export to this file instead of printing the link")
	return cmd
}

func downloadTo(ctx context.Context, url, path string) (int64, error) {
	f, err := filex.CreateFile(path)
	if err != nil {
		return 0, err
	}

	n, err := netx.DownloadPresignedURL(ctx, nil, url, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

package app

import (
	"context"
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func newCoversCmd() *cobra.Command {
	var concurrency int

	cmd := &cobra.Command{
		Use:   "covers",
		Short: "Download every shelf cover into the local cache",
		Long: `Download the cover image of every book on your shelf so the interactive
shelf can show them without waiting. Covers already cached are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			books, err := client.FetchMySummaryBooks(ctx)
			if err != nil {
				return err
			}
			if len(books) == 0 {
				warn("No books on your shelf yet.")
				return nil
			}

			bar := progressbar.Default(int64(len(books)), "covers")
			res, err := cacheMgr.Prefetch(ctx, client, books, concurrency, func() {
				_ = bar.Add(1)
			})
			_ = bar.Finish()
			if err != nil {
				return fmt.Errorf("prefetching covers: %w", err)
			}

			ok("%d downloaded, %d already cached or without cover", res.Fetched, res.Skipped)
			if res.Failed > 0 {
				warn("%d covers failed; see %s", res.Failed, cfg.Log.File)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Parallel downloads")
	return cmd
}

package app

import (
	"context"
	"os"

	"github.com/blackwell-systems/shelflog/internal/tui"
	"github.com/blackwell-systems/shelflog/internal/unified"
	"github.com/spf13/cobra"
)

func newShelfCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shelf",
		Short: "Show the books you have read",
		Long: `Show the books linked from your reading records, most recent first.

On a terminal this opens the interactive shelf. Use --no-interactive to
print a table instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				return runTUI(unified.ViewShelf)
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			books, err := client.FetchMySummaryBooks(ctx)
			if err != nil {
				return err
			}
			header("── Shelf  (%d books)", len(books))
			printShelf(os.Stdout, books)
			return nil
		},
	}
}

package app

import (
	"context"
	"fmt"
	"os"

	"github.com/blackwell-systems/shelflog/internal/catalog"
	"github.com/blackwell-systems/shelflog/internal/tui"
	"github.com/blackwell-systems/shelflog/internal/unified"
	"github.com/spf13/cobra"
)

func newRecordsCmd() *cobra.Command {
	var (
		q    string
		page int
		size int
	)

	cmd := &cobra.Command{
		Use:   "records",
		Short: "Page through your reading records",
		Long: `Page through your reading records, newest first.

On a terminal this opens the interactive records view, where you can search,
page, and link records to catalog books. The --q, --page and --size flags
select the page printed with --no-interactive.

Examples:
  shelflog records
  shelflog records --no-interactive --q tolstoy
  shelflog records --no-interactive --page 2 --size 6`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tui.ShouldUseTUI(cmd) {
				return runTUI(unified.ViewRecords)
			}

			if !catalog.ValidSize(size) {
				return fmt.Errorf("--size must be %d or %d", catalog.SizeCompact, catalog.SizeWide)
			}
			if page < 1 {
				return fmt.Errorf("--page starts at 1")
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			query := catalog.Query{Page: page - 1, Size: size, Q: catalog.NormalizeQuery(q)}
			res, err := client.FetchMyRecords(ctx, query)
			if err != nil {
				return err
			}
			if query.Q != "" {
				header("── Records matching %q", query.Q)
			} else {
				header("── Records")
			}
			printRecords(os.Stdout, res)
			return nil
		},
	}

	cmd.Flags().StringVar(&q, "q", "", "Search title, author, sentence and comment")
	cmd.Flags().IntVar(&page, "page", 1, "Page number, starting at 1")
	cmd.Flags().IntVar(&size, "size", catalog.SizeWide, "Records per page (6 or 10)")
	return cmd
}

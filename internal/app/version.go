package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var appVersion = "dev"

// SetVersion is called from main with the linker-injected version.
func SetVersion(v string) {
	if v != "" {
		appVersion = v
	}
	rootCmd.Version = appVersion
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the shelflog version",
		Args:        cobra.NoArgs,
		Annotations: offline(),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("shelflog %s\n", appVersion)
		},
	}
}

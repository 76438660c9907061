package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// infoCmd describes Entrez databases.
var infoCmd = &cobra.Command{
	Use:                        "info [db]",
	Short:                      "Describe Entrez databases",
	Args:                       cobra.MaximumNArgs(1),
	SuggestionsMinimumDistance: 2,
	Example:                    "  ncbi info pubmed",
	Long: `Describe an Entrez database with einfo: record counts, search
fields and link names. Without an argument, list every database`,
	Run: runInfo,
}

func init() {
	RootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	client, done := newClient()
	defer done()

	if len(args) == 0 {
		names, err := client.Databases(cmd.Context())
		if err != nil {
			logger.Fatal("info failed", "err", err)
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return
	}

	info, err := client.Info(cmd.Context(), args[0])
	if err != nil {
		logger.Fatal("info failed", "err", err)
	}
	printJSON(info)
}

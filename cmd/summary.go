package cmd

import (
	"github.com/amdshrif/ncbi-client/internal/eutils"
	"github.com/spf13/cobra"
)

// summaryCmd retrieves document summaries for a list of UIDs.
var summaryCmd = &cobra.Command{
	Use:                        "summary [db] [ids...]",
	Short:                      "Fetch document summaries",
	Args:                       cobra.MinimumNArgs(2),
	SuggestionsMinimumDistance: 2,
	Example:                    "  ncbi summary pubmed 11748933 11700088",
	Long: `Fetch document summaries with esummary and print them as JSON.
Summaries are lighter than full records and cover every Entrez database`,
	Run: runSummary,
}

func init() {
	summaryCmd.Flags().String("version", "1.0", "DocSum schema version: 1.0 or 2.0")

	RootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) {
	version, _ := cmd.Flags().GetString("version")

	client, done := newClient()
	defer done()

	result, err := client.Summary(cmd.Context(), args[0], splitIDs(args[1:]),
		eutils.SummaryOptions{Version: version})
	if err != nil {
		logger.Fatal("summary failed", "err", err)
	}

	printJSON(result)
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// gqueryCmd searches every Entrez database at once.
var gqueryCmd = &cobra.Command{
	Use:                        "gquery [term]",
	Short:                      "Count hits across every Entrez database",
	Args:                       cobra.MinimumNArgs(1),
	SuggestionsMinimumDistance: 2,
	Example:                    "  ncbi gquery p53",
	Run:                        runGQuery,
}

func init() {
	gqueryCmd.Flags().BoolP("json", "j", false, "print the full JSON response")

	RootCmd.AddCommand(gqueryCmd)
}

func runGQuery(cmd *cobra.Command, args []string) {
	asJSON, _ := cmd.Flags().GetBool("json")

	client, done := newClient()
	defer done()

	result, err := client.GlobalQuery(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		logger.Fatal("gquery failed", "err", err)
	}

	if asJSON {
		printJSON(result)
		return
	}
	for _, db := range result.Databases {
		fmt.Printf("%s\t%d\n", db.DB, db.Count)
	}
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// postCmd uploads UIDs to the Entrez history server.
var postCmd = &cobra.Command{
	Use:                        "post [db] [ids...]",
	Short:                      "Upload UIDs to the history server",
	Args:                       cobra.MinimumNArgs(2),
	SuggestionsMinimumDistance: 2,
	Example:                    "  ncbi post pubmed 11748933 11700088",
	Long: `Upload a UID list to the Entrez history server with epost.
The printed WebEnv/QueryKey pair can drive later fetch and link calls`,
	Run: runPost,
}

func init() {
	RootCmd.AddCommand(postCmd)
}

func runPost(cmd *cobra.Command, args []string) {
	client, done := newClient()
	defer done()

	result, err := client.Post(cmd.Context(), args[0], splitIDs(args[1:]), "")
	if err != nil {
		logger.Fatal("post failed", "err", err)
	}

	fmt.Printf("WebEnv\t%s\nQueryKey\t%d\n", result.WebEnv, result.QueryKey)
}

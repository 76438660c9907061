package cmd

import (
	"github.com/amdshrif/ncbi-client/internal/eutils"
	"github.com/spf13/cobra"
)

// linkCmd finds records related to a set of UIDs in another database.
var linkCmd = &cobra.Command{
	Use:                        "link [dbfrom] [db] [ids...]",
	Short:                      "Find related records across databases",
	Args:                       cobra.MinimumNArgs(3),
	SuggestionsMinimumDistance: 2,
	Example:                    "  ncbi link pubmed protein 11748933",
	Long: `Find records in one database linked to UIDs from another with elink.
Each input UID gets its own link set, so links stay attributable`,
	Run: runLink,
}

func init() {
	linkCmd.Flags().String("name", "", "restrict to one link name (eg pubmed_protein)")
	linkCmd.Flags().String("cmd", "neighbor", "elink command mode")

	RootCmd.AddCommand(linkCmd)
}

func runLink(cmd *cobra.Command, args []string) {
	linkName, _ := cmd.Flags().GetString("name")
	mode, _ := cmd.Flags().GetString("cmd")

	client, done := newClient()
	defer done()

	sets, err := client.Link(cmd.Context(), args[0], args[1], eutils.LinkOptions{
		IDs:      splitIDs(args[2:]),
		LinkName: linkName,
		Cmd:      mode,
	})
	if err != nil {
		logger.Fatal("link failed", "err", err)
	}

	printJSON(sets)
}

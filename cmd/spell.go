package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// spellCmd asks for spelling suggestions on a search term.
var spellCmd = &cobra.Command{
	Use:                        "spell [db] [term]",
	Short:                      "Suggest spelling corrections for a term",
	Args:                       cobra.MinimumNArgs(2),
	SuggestionsMinimumDistance: 2,
	Example:                    "  ncbi spell pubmed \"canser treatmnt\"",
	Run:                        runSpell,
}

func init() {
	spellCmd.Flags().BoolP("json", "j", false, "print the full JSON response")

	RootCmd.AddCommand(spellCmd)
}

func runSpell(cmd *cobra.Command, args []string) {
	asJSON, _ := cmd.Flags().GetBool("json")

	client, done := newClient()
	defer done()

	result, err := client.Spell(cmd.Context(), args[0], strings.Join(args[1:], " "))
	if err != nil {
		logger.Fatal("spell failed", "err", err)
	}

	if asJSON {
		printJSON(result)
		return
	}
	if result.CorrectedQuery == "" {
		fmt.Println(result.Query)
		return
	}
	fmt.Println(result.CorrectedQuery)
}

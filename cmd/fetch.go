package cmd

import (
	"strings"

	"github.com/amdshrif/ncbi-client/internal/eutils"
	"github.com/spf13/cobra"
)

// fetchCmd retrieves full records from an Entrez database.
var fetchCmd = &cobra.Command{
	Use:                        "fetch [db] [ids...]",
	Short:                      "Fetch full records from an Entrez database",
	Args:                       cobra.MinimumNArgs(2),
	SuggestionsMinimumDistance: 2,
	Example:                    "  ncbi fetch nuccore NM_000546 --rettype fasta --retmode text -o tp53.fasta",
	Long: `Fetch full records with efetch, in any format the database supports.

Common rettype/retmode pairs: fasta/text and gb/text for sequence
databases, abstract/text and xml for PubMed`,
	Run: runFetch,
}

func init() {
	fetchCmd.Flags().String("rettype", "docsum", "record format (eg fasta, gb, abstract)")
	fetchCmd.Flags().String("retmode", "xml", "serialization: text, xml or json")
	fetchCmd.Flags().StringP("out", "o", "", "output file name (default stdout)")

	RootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) {
	rettype, _ := cmd.Flags().GetString("rettype")
	retmode, _ := cmd.Flags().GetString("retmode")
	out, _ := cmd.Flags().GetString("out")

	client, done := newClient()
	defer done()

	body, err := client.Fetch(cmd.Context(), args[0], eutils.FetchOptions{
		IDs:     splitIDs(args[1:]),
		RetType: rettype,
		RetMode: retmode,
	})
	if err != nil {
		logger.Fatal("fetch failed", "err", err)
	}

	writeOutput(out, body)
}

// splitIDs flattens arguments that are themselves comma separated lists.
func splitIDs(args []string) []string {
	var ids []string
	for _, arg := range args {
		for _, id := range strings.Split(arg, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

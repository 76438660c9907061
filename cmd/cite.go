package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/amdshrif/ncbi-client/internal/eutils"
	"github.com/spf13/cobra"
)

// citeCmd resolves citation strings to PubMed IDs.
var citeCmd = &cobra.Command{
	Use:                        "cite [citations...]",
	Short:                      "Resolve citations to PubMed IDs",
	SuggestionsMinimumDistance: 2,
	Example:                    "  ncbi cite \"proc natl acad sci u s a|1991|88|3248|mann bj|art1|\"",
	Long: `Resolve journal citations to PubMed IDs with ecitmatch.

Each citation uses the pipe-delimited form
  journal|year|volume|first-page|author|key|
and can be passed as an argument or read one-per-line from a file`,
	Run: runCite,
}

func init() {
	citeCmd.Flags().StringP("file", "i", "", "file with one citation per line")
	citeCmd.Flags().BoolP("json", "j", false, "print parsed matches as JSON")

	RootCmd.AddCommand(citeCmd)
}

func runCite(cmd *cobra.Command, args []string) {
	file, _ := cmd.Flags().GetString("file")
	asJSON, _ := cmd.Flags().GetBool("json")

	citations := args
	if file != "" {
		body, err := os.ReadFile(file)
		if err != nil {
			logger.Fatal("failed to read citations", "err", err)
		}
		citations = append(citations, nonEmptyLines(string(body))...)
	}
	if len(citations) == 0 {
		logger.Fatal("no citations given")
	}

	client, done := newClient()
	defer done()

	body, err := client.CitMatch(cmd.Context(), citations)
	if err != nil {
		logger.Fatal("cite failed", "err", err)
	}

	matches := eutils.ParseCitations(body)
	if asJSON {
		printJSON(matches)
		return
	}
	for _, match := range matches {
		fmt.Printf("%s\t%s\n", match.Key, match.PMID)
	}
}

// nonEmptyLines splits body into trimmed, non-blank lines.
func nonEmptyLines(body string) []string {
	var lines []string
	for _, line := range strings.Split(body, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/amdshrif/ncbi-client/internal/eutils"
	"github.com/spf13/cobra"
)

// searchCmd queries an Entrez database for UIDs matching a term.
var searchCmd = &cobra.Command{
	Use:                        "search [db] [term]",
	Short:                      "Search an Entrez database",
	Args:                       cobra.MinimumNArgs(2),
	SuggestionsMinimumDistance: 2,
	Example:                    "  ncbi search pubmed \"p53[Title] AND 2020[PDAT]\"",
	Long: `Search an Entrez database with esearch and print the matching UIDs.

Terms use standard Entrez query syntax, including field tags like [Title]
and boolean operators. Results can be printed as a UID list, a count, or
the full JSON response`,
	Run: runSearch,
}

func init() {
	searchCmd.Flags().IntP("retmax", "m", 20, "maximum number of UIDs to return")
	searchCmd.Flags().IntP("retstart", "s", 0, "index of the first UID to return")
	searchCmd.Flags().String("sort", "", "sort order (eg relevance, pub_date)")
	searchCmd.Flags().String("field", "", "restrict the term to one search field")
	searchCmd.Flags().String("mindate", "", "start of the date range (YYYY/MM/DD)")
	searchCmd.Flags().String("maxdate", "", "end of the date range (YYYY/MM/DD)")
	searchCmd.Flags().Bool("history", false, "store the result on the history server")
	searchCmd.Flags().StringP("format", "f", "ids", "output format: ids, count or json")

	RootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	db := args[0]
	term := strings.Join(args[1:], " ")

	retmax, _ := cmd.Flags().GetInt("retmax")
	retstart, _ := cmd.Flags().GetInt("retstart")
	sortBy, _ := cmd.Flags().GetString("sort")
	field, _ := cmd.Flags().GetString("field")
	minDate, _ := cmd.Flags().GetString("mindate")
	maxDate, _ := cmd.Flags().GetString("maxdate")
	history, _ := cmd.Flags().GetBool("history")
	format, _ := cmd.Flags().GetString("format")

	client, done := newClient()
	defer done()

	result, err := client.Search(cmd.Context(), db, term, eutils.SearchOptions{
		RetMax:     retmax,
		RetStart:   retstart,
		Sort:       sortBy,
		Field:      field,
		MinDate:    minDate,
		MaxDate:    maxDate,
		UseHistory: history,
	})
	if err != nil {
		logger.Fatal("search failed", "err", err)
	}

	switch format {
	case "count":
		fmt.Println(result.Count)
	case "json":
		printJSON(result)
	default:
		for _, id := range result.IDs {
			fmt.Println(id)
		}
	}
}

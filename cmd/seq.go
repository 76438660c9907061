package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/amdshrif/ncbi-client/internal/fasta"
	"github.com/amdshrif/ncbi-client/internal/seqtools"
	"github.com/spf13/cobra"
)

// commonEnzymes is the default set scanned by 'ncbi seq sites'.
var commonEnzymes = map[string]string{
	"EcoRI":   "GAATTC",
	"BamHI":   "GGATCC",
	"HindIII": "AAGCTT",
	"NotI":    "GCGGCCGC",
	"XhoI":    "CTCGAG",
	"PstI":    "CTGCAG",
	"SmaI":    "CCCGGG",
	"KpnI":    "GGTACC",
	"SacI":    "GAGCTC",
	"SalI":    "GTCGAC",
}

// seqCmd groups the local sequence analysis commands.
var seqCmd = &cobra.Command{
	Use:                        "seq",
	Short:                      "Analyze sequences locally",
	SuggestionsMinimumDistance: 2,
	Long: `Analyze FASTA sequences without touching the network: translation,
reverse complement, GC content, ORFs, primers, repeats and restriction sites.

Every subcommand reads FASTA from a file argument or from stdin`,
}

var seqTranslateCmd = &cobra.Command{
	Use:                        "translate [file]",
	Short:                      "Translate sequences to protein",
	SuggestionsMinimumDistance: 2,
	Example:                    "  ncbi seq translate tp53.fasta --table 1",
	Run: func(cmd *cobra.Command, args []string) {
		table, _ := cmd.Flags().GetInt("table")
		for _, rec := range readRecords(args) {
			fmt.Printf(">%s\n%s\n", rec.Header, seqtools.Translate(rec.Seq, table, false))
		}
	},
}

var seqRevCompCmd = &cobra.Command{
	Use:                        "revcomp [file]",
	Short:                      "Reverse complement sequences",
	SuggestionsMinimumDistance: 2,
	Aliases:                    []string{"rc"},
	Run: func(cmd *cobra.Command, args []string) {
		for _, rec := range readRecords(args) {
			out := rec
			out.Seq = seqtools.ReverseComplement(rec.Seq)
			fmt.Print(out.Format(70))
		}
	},
}

var seqGCCmd = &cobra.Command{
	Use:                        "gc [file]",
	Short:                      "Report GC content and base composition",
	SuggestionsMinimumDistance: 2,
	Run: func(cmd *cobra.Command, args []string) {
		asJSON, _ := cmd.Flags().GetBool("json")
		for _, rec := range readRecords(args) {
			if asJSON {
				printJSON(map[string]interface{}{
					"accession":   rec.Accession,
					"composition": seqtools.Compose(rec.Seq),
				})
				continue
			}
			fmt.Printf("%s\t%.2f\n", rec.Accession, seqtools.GC(rec.Seq))
		}
	},
}

var seqORFCmd = &cobra.Command{
	Use:                        "orf [file]",
	Short:                      "Find open reading frames",
	SuggestionsMinimumDistance: 2,
	Run: func(cmd *cobra.Command, args []string) {
		minLen, _ := cmd.Flags().GetInt("min-length")
		for _, rec := range readRecords(args) {
			orfs := seqtools.FindORFs(rec.Seq, minLen)
			logger.Info("scanned", "record", rec.Accession, "orfs", len(orfs))
			printJSON(orfs)
		}
	},
}

var seqPrimersCmd = &cobra.Command{
	Use:                        "primers [file]",
	Short:                      "Design PCR primer candidates",
	SuggestionsMinimumDistance: 2,
	Long: `Design PCR primer candidates from the ends of each sequence,
filtered by melting temperature and GC content, ranked by distance
from a 60C melting temperature`,
	Run: func(cmd *cobra.Command, args []string) {
		minLen, _ := cmd.Flags().GetInt("min-length")
		maxLen, _ := cmd.Flags().GetInt("max-length")
		minTm, _ := cmd.Flags().GetFloat64("min-tm")
		maxTm, _ := cmd.Flags().GetFloat64("max-tm")
		for _, rec := range readRecords(args) {
			printJSON(seqtools.DesignPrimers(rec.Seq, minLen, maxLen, minTm, maxTm))
		}
	},
}

var seqRepeatsCmd = &cobra.Command{
	Use:                        "repeats [file]",
	Short:                      "Find tandem repeats",
	SuggestionsMinimumDistance: 2,
	Run: func(cmd *cobra.Command, args []string) {
		minLen, _ := cmd.Flags().GetInt("min-length")
		maxDist, _ := cmd.Flags().GetInt("max-distance")
		for _, rec := range readRecords(args) {
			printJSON(seqtools.FindRepeats(rec.Seq, minLen, maxDist))
		}
	},
}

var seqSitesCmd = &cobra.Command{
	Use:                        "sites [file]",
	Short:                      "Find restriction enzyme sites",
	SuggestionsMinimumDistance: 2,
	Example:                    "  ncbi seq sites tp53.fasta -e EcoRI=GAATTC,MyEnz=GANTC",
	Run: func(cmd *cobra.Command, args []string) {
		spec, _ := cmd.Flags().GetString("enzymes")
		enzymes := commonEnzymes
		if spec != "" {
			enzymes = parseEnzymes(spec)
		}
		for _, rec := range readRecords(args) {
			sites, err := seqtools.FindRestrictionSites(rec.Seq, enzymes)
			if err != nil {
				logger.Fatal("site scan failed", "err", err)
			}
			printJSON(sites)
		}
	},
}

var seqStatsCmd = &cobra.Command{
	Use:                        "stats [file]",
	Short:                      "Summarize a FASTA file",
	SuggestionsMinimumDistance: 2,
	Run: func(cmd *cobra.Command, args []string) {
		printJSON(fasta.Summarize(readRecords(args)))
	},
}

func init() {
	seqTranslateCmd.Flags().Int("table", 1, "NCBI genetic code table")

	seqGCCmd.Flags().BoolP("json", "j", false, "print full base composition as JSON")

	seqORFCmd.Flags().Int("min-length", 100, "minimum ORF length in nucleotides")

	seqPrimersCmd.Flags().Int("min-length", 18, "minimum primer length")
	seqPrimersCmd.Flags().Int("max-length", 25, "maximum primer length")
	seqPrimersCmd.Flags().Float64("min-tm", 55, "minimum melting temperature")
	seqPrimersCmd.Flags().Float64("max-tm", 65, "maximum melting temperature")

	seqRepeatsCmd.Flags().Int("min-length", 10, "minimum repeat unit length")
	seqRepeatsCmd.Flags().Int("max-distance", 1000, "maximum distance between copies")

	seqSitesCmd.Flags().StringP("enzymes", "e", "", "comma separated NAME=SITE pairs (default: common enzymes)")

	seqCmd.AddCommand(seqTranslateCmd)
	seqCmd.AddCommand(seqRevCompCmd)
	seqCmd.AddCommand(seqGCCmd)
	seqCmd.AddCommand(seqORFCmd)
	seqCmd.AddCommand(seqPrimersCmd)
	seqCmd.AddCommand(seqRepeatsCmd)
	seqCmd.AddCommand(seqSitesCmd)
	seqCmd.AddCommand(seqStatsCmd)

	RootCmd.AddCommand(seqCmd)
}

// readRecords loads FASTA records from the first argument, or stdin when
// no file is named.
func readRecords(args []string) []fasta.Record {
	if len(args) > 0 {
		records, err := fasta.ReadFile(args[0])
		if err != nil {
			logger.Fatal("failed to read FASTA", "path", args[0], "err", err)
		}
		return records
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		logger.Fatal("failed to read stdin", "err", err)
	}
	return fasta.Parse(string(content))
}

// parseEnzymes decodes comma separated NAME=SITE pairs.
func parseEnzymes(spec string) map[string]string {
	enzymes := make(map[string]string)
	for _, pair := range strings.Split(spec, ",") {
		name, site, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || name == "" || site == "" {
			logger.Fatal("bad enzyme spec, want NAME=SITE", "got", pair)
		}
		enzymes[name] = site
	}
	return enzymes
}

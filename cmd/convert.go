package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/amdshrif/ncbi-client/internal/seqconv"
	"github.com/spf13/cobra"
)

// convertCmd translates sequence files between formats.
var convertCmd = &cobra.Command{
	Use:                        "convert [files...]",
	Short:                      "Convert sequence files between formats",
	SuggestionsMinimumDistance: 2,
	Example:                    "  ncbi convert tp53.gb -t fasta -o tp53.fasta",
	Long: `Convert sequence files between FASTA, GenBank flat-file and GenBank
XML formats. The source format is sniffed from the content unless -f is
given. Without files, a single input is read from stdin.

Supported conversions: xml to fasta, genbank to fasta, fasta to genbank`,
	Run: runConvert,
}

func init() {
	convertCmd.Flags().StringP("from", "f", "auto", "source format: auto, fasta, genbank or xml")
	convertCmd.Flags().StringP("to", "t", "fasta", "target format: fasta or genbank")
	convertCmd.Flags().StringP("out", "o", "", "output file name; with multiple inputs, an output directory")
	convertCmd.Flags().String("organism", "", "organism name written into synthesized GenBank records")

	RootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	out, _ := cmd.Flags().GetString("out")
	organism, _ := cmd.Flags().GetString("organism")

	opts := seqconv.Options{Organism: organism}

	if len(args) == 0 {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.Fatal("failed to read stdin", "err", err)
		}
		converted, err := seqconv.Convert(string(content),
			seqconv.Format(from), seqconv.Format(to), opts)
		if err != nil {
			logger.Fatal("conversion failed", "err", err)
		}
		writeOutput(out, converted)
		return
	}

	bar := newProgress(len(args))
	for _, path := range args {
		content, err := os.ReadFile(path)
		if err != nil {
			logger.Fatal("failed to read input", "path", path, "err", err)
		}

		converted, err := seqconv.Convert(string(content),
			seqconv.Format(from), seqconv.Format(to), opts)
		if err != nil {
			logger.Fatal("conversion failed", "path", path, "err", err)
		}

		writeOutput(outputPath(out, path, to, len(args)), converted)
		bar.increment()
	}
	bar.finish()
}

// outputPath decides where one converted file goes. A single input honors
// -o as a file name; multiple inputs treat -o as a directory and derive
// names from the inputs.
func outputPath(out, in, to string, inputs int) string {
	if inputs == 1 {
		return out
	}
	if out == "" {
		return ""
	}

	base := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	ext := ".fasta"
	if to == "genbank" {
		ext = ".gb"
	}
	return filepath.Join(out, fmt.Sprintf("%s%s", base, ext))
}

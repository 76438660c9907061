// Package seqconv detects biological text formats and converts between
// FASTA, GenBank flat-file, and GenBank XML representations.
package seqconv

import (
	"errors"
	"fmt"
	"strings"

	"github.com/amdshrif/ncbi-client/internal/fasta"
	"github.com/amdshrif/ncbi-client/internal/genbank"
	"github.com/amdshrif/ncbi-client/internal/xmlmap"
)

// Format identifies a sequence text format.
type Format string

const (
	Auto    Format = "auto"
	Fasta   Format = "fasta"
	GenBank Format = "genbank"
	XML     Format = "xml"
	Unknown Format = "unknown"
)

// ErrUnsupportedConversion marks a format pair outside the conversion
// matrix.
var ErrUnsupportedConversion = errors.New("conversion not supported")

// genbankKeywords hint at a flat-file record that does not open with LOCUS.
var genbankKeywords = []string{
	"DEFINITION", "ACCESSION", "VERSION", "SOURCE", "FEATURES", "ORIGIN",
}

// Detect sniffs the format of content structurally. Anything that is not
// recognizably FASTA, XML, or GenBank comes back Unknown.
func Detect(content string) Format {
	content = strings.TrimSpace(content)

	switch {
	case strings.HasPrefix(content, ">"):
		return Fasta
	case strings.HasPrefix(content, "<?xml"), strings.HasPrefix(content, "<"):
		return XML
	case strings.HasPrefix(content, "LOCUS"):
		return GenBank
	}

	head := content
	if len(head) > 1000 {
		head = head[:1000]
	}
	for _, kw := range genbankKeywords {
		if strings.Contains(head, kw) {
			return GenBank
		}
	}

	return Unknown
}

// Options carries conversion parameters beyond the format pair.
type Options struct {
	// Organism names the source organism in synthesized GenBank records.
	Organism string
}

// Convert translates content between formats. Auto as the source resolves
// via Detect; an identical pair is a no-op; pairs outside the matrix fail
// with ErrUnsupportedConversion.
func Convert(content string, from, to Format, opts Options) (string, error) {
	if from == Auto {
		from = Detect(content)
	}

	switch {
	case from == XML && to == Fasta:
		return XMLToFasta(content)
	case from == GenBank && to == Fasta:
		return GenBankToFasta(content), nil
	case from == Fasta && to == GenBank:
		return FastaToGenBankMinimal(content, opts.Organism), nil
	case from == to:
		return content, nil
	}

	return "", fmt.Errorf("%w: %s to %s", ErrUnsupportedConversion, from, to)
}

// XMLToFasta renders the sequences of a GenBank XML set as FASTA. Records
// missing an accession or sequence are skipped.
func XMLToFasta(content string) (string, error) {
	records, err := xmlmap.ParseGBSet(content)
	if err != nil {
		return "", fmt.Errorf("failed to convert XML to FASTA: %w", err)
	}

	var lines []string
	for _, rec := range records {
		if rec.Accession == "" || rec.Sequence == "" {
			continue
		}
		header := ">" + rec.Accession
		if rec.Definition != "" {
			header += " " + rec.Definition
		}
		lines = append(lines, header)
		lines = append(lines, wrap(rec.Sequence, 70)...)
	}

	return strings.Join(lines, "\n"), nil
}

// GenBankToFasta renders flat-file records as FASTA, one block per record,
// with the accession and definition as the header.
func GenBankToFasta(content string) string {
	var parts []string
	for _, rec := range genbank.Parse(content) {
		lines := []string{strings.TrimSpace(">" + rec.Accession + " " + rec.Definition)}
		lines = append(lines, wrap(rec.Sequence(), 70)...)
		parts = append(parts, strings.Join(lines, "\n"))
	}
	return strings.Join(parts, "\n")
}

// FastaToGenBankMinimal synthesizes a minimal GenBank block per FASTA
// record: fixed header template, lower-case sequence in numbered 60-column
// lines of ten-base groups. Records without an accession get an UNKNOWN_<n>
// placeholder from their 1-based position.
func FastaToGenBankMinimal(content, organism string) string {
	if organism == "" {
		organism = "Unknown"
	}

	var parts []string
	for i, rec := range fasta.Parse(content) {
		accession := rec.Accession
		if accession == "" {
			accession = fmt.Sprintf("UNKNOWN_%d", i+1)
		}
		definition := rec.Description
		if definition == "" {
			definition = "No description available"
		}

		var b strings.Builder
		fmt.Fprintf(&b, "LOCUS       %-16s %8d bp    DNA     linear   UNK 01-JAN-1980\n",
			accession, rec.Length())
		fmt.Fprintf(&b, "DEFINITION  %s\n", definition)
		fmt.Fprintf(&b, "ACCESSION   %s\n", accession)
		fmt.Fprintf(&b, "VERSION     %s.1\n", accession)
		b.WriteString("KEYWORDS    .\n")
		fmt.Fprintf(&b, "SOURCE      %s\n", organism)
		fmt.Fprintf(&b, "  ORGANISM  %s\n", organism)
		b.WriteString("            Unclassified.\n")
		b.WriteString("FEATURES             Location/Qualifiers\n")
		fmt.Fprintf(&b, "     source          1..%d\n", rec.Length())
		fmt.Fprintf(&b, "                     /organism=\"%s\"\n", organism)
		b.WriteString("ORIGIN      \n")

		seq := strings.ToLower(rec.Seq)
		for pos := 0; pos < len(seq); pos += 60 {
			end := pos + 60
			if end > len(seq) {
				end = len(seq)
			}
			fmt.Fprintf(&b, "%9d %s\n", pos+1, strings.Join(wrap(seq[pos:end], 10), " "))
		}
		b.WriteString("//\n")

		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n")
}

// SequenceInfo is the sequence-level view of one XML record, without the
// feature table.
type SequenceInfo struct {
	Accession  string `json:"accession"`
	Definition string `json:"definition"`
	Organism   string `json:"organism"`
	Length     int    `json:"length"`
	Sequence   string `json:"sequence"`
}

// ExtractSequences pulls per-record sequence information out of GenBank
// XML.
func ExtractSequences(content string) ([]SequenceInfo, error) {
	records, err := xmlmap.ParseGBSet(content)
	if err != nil {
		return nil, fmt.Errorf("failed to extract sequences from XML: %w", err)
	}

	infos := make([]SequenceInfo, 0, len(records))
	for _, rec := range records {
		infos = append(infos, SequenceInfo{
			Accession:  rec.Accession,
			Definition: rec.Definition,
			Organism:   rec.Organism,
			Length:     rec.Length,
			Sequence:   rec.Sequence,
		})
	}
	return infos, nil
}

// BlastFasta formats records for BLAST database builds: gi|N|ref|ACC|
// headers when a GI is known and 80-column sequence lines.
func BlastFasta(records []fasta.Record) string {
	var lines []string
	for _, rec := range records {
		header := ">" + rec.Accession
		if rec.GI != "" {
			header = fmt.Sprintf(">gi|%s|ref|%s|", rec.GI, rec.Accession)
		}
		if rec.Description != "" {
			header += " " + rec.Description
		}
		lines = append(lines, header)
		lines = append(lines, wrap(rec.Seq, 80)...)
	}
	return strings.Join(lines, "\n")
}

// SplitMultiFasta partitions the records of a FASTA file into chunks of at
// most perChunk records, each re-serialized independently.
func SplitMultiFasta(content string, perChunk int) []string {
	records := fasta.Parse(content)

	var chunks []string
	for i := 0; i < len(records); i += perChunk {
		end := i + perChunk
		if end > len(records) {
			end = len(records)
		}
		var lines []string
		for _, rec := range records[i:end] {
			lines = append(lines, rec.Format(70))
		}
		chunks = append(chunks, strings.Join(lines, "\n"))
	}
	return chunks
}

func wrap(seq string, width int) []string {
	var lines []string
	for i := 0; i < len(seq); i += width {
		end := i + width
		if end > len(seq) {
			end = len(seq)
		}
		lines = append(lines, seq[i:end])
	}
	return lines
}

// Package fasta parses FASTA formatted text into records and serializes
// records back out, recognizing the common NCBI header conventions.
package fasta

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/amdshrif/ncbi-client/internal/seqtools"
)

// ncbiHeader matches the pipe-delimited "gi|number|db|accession|description"
// convention used by older NCBI FASTA releases.
var ncbiHeader = regexp.MustCompile(`^gi\|(\d+)\|(\w+)\|([^|]+)\|?(.*)`)

// seqCleaner strips the whitespace that may be embedded in sequence data.
var seqCleaner = strings.NewReplacer(" ", "", "\n", "", "\r", "", "\t", "")

// Record is a single FASTA record. Accession, Description, GI and Database
// are derived from the header line; Seq never contains whitespace.
type Record struct {
	Header      string `json:"header"`
	Accession   string `json:"accession"`
	Description string `json:"description"`
	GI          string `json:"gi,omitempty"`
	Database    string `json:"database,omitempty"`
	Seq         string `json:"sequence"`
}

// NewRecord builds a Record from a raw header (without the leading >) and
// sequence data, deriving the identifier fields from the header.
func NewRecord(header, seq string) Record {
	rec := Record{
		Header: strings.TrimSpace(header),
		Seq:    seqCleaner.Replace(strings.TrimSpace(seq)),
	}

	if m := ncbiHeader.FindStringSubmatch(rec.Header); m != nil {
		rec.GI = m[1]
		rec.Database = m[2]
		rec.Accession = m[3]
		rec.Description = strings.TrimSpace(m[4])
	} else {
		// simple convention: first token is the accession, the rest is a
		// free-text description
		parts := strings.SplitN(rec.Header, " ", 2)
		rec.Accession = parts[0]
		if len(parts) > 1 {
			rec.Description = parts[1]
		}
	}

	return rec
}

// Length returns the number of residues in the record.
func (r Record) Length() int {
	return len(r.Seq)
}

// GC returns the record's GC content percentage.
func (r Record) GC() float64 {
	return seqtools.GC(r.Seq)
}

// ReverseComplement returns the reverse complement of the record's sequence.
func (r Record) ReverseComplement() string {
	return seqtools.ReverseComplement(r.Seq)
}

// Translate translates the record's sequence from position zero using the
// given genetic code table.
func (r Record) Translate(geneticCode int) string {
	return seqtools.Translate(r.Seq, geneticCode, false)
}

// Format serializes the record back to FASTA text with sequence lines
// wrapped at width characters. Re-parsing the output yields an identical
// header and sequence for any positive width.
func (r Record) Format(width int) string {
	lines := []string{">" + r.Header}
	for i := 0; i < len(r.Seq); i += width {
		end := i + width
		if end > len(r.Seq) {
			end = len(r.Seq)
		}
		lines = append(lines, r.Seq[i:end])
	}
	return strings.Join(lines, "\n")
}

// Parse reads every record out of FASTA text. Content before the first
// header line is discarded; degenerate input yields an empty slice.
func Parse(content string) []Record {
	var records []Record

	open := false
	var header string
	var seq strings.Builder

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, ">") {
			if open {
				records = append(records, NewRecord(header, seq.String()))
			}
			header = line[1:]
			seq.Reset()
			open = true
		} else if line != "" && open {
			seq.WriteString(line)
		}
	}

	if open {
		records = append(records, NewRecord(header, seq.String()))
	}

	return records
}

// ParseReader streams records from r one at a time, calling fn for each.
// Semantics match Parse exactly; fn returning an error stops the scan.
// Suited to inputs too large to parse in one batch.
func ParseReader(r io.Reader, fn func(Record) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	open := false
	var header string
	var seq strings.Builder

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, ">") {
			if open {
				if err := fn(NewRecord(header, seq.String())); err != nil {
					return err
				}
			}
			header = line[1:]
			seq.Reset()
			open = true
		} else if line != "" && open {
			seq.WriteString(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to scan FASTA input: %w", err)
	}

	if open {
		return fn(NewRecord(header, seq.String()))
	}
	return nil
}

// Write serializes records to w with the given sequence line width.
func Write(w io.Writer, records []Record, width int) error {
	for _, rec := range records {
		if _, err := io.WriteString(w, rec.Format(width)+"\n"); err != nil {
			return fmt.Errorf("failed to write FASTA record %s: %w", rec.Accession, err)
		}
	}
	return nil
}

// FilterByLength keeps records whose sequence length is at least minLength
// and, when maxLength is positive, at most maxLength.
func FilterByLength(records []Record, minLength, maxLength int) []Record {
	var filtered []Record
	for _, rec := range records {
		if rec.Length() < minLength {
			continue
		}
		if maxLength > 0 && rec.Length() > maxLength {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

// Stats summarizes the sequence lengths of a record set.
type Stats struct {
	Count        int     `json:"count"`
	TotalLength  int     `json:"total_length"`
	MinLength    int     `json:"min_length"`
	MaxLength    int     `json:"max_length"`
	MeanLength   float64 `json:"mean_length"`
	MedianLength int     `json:"median_length"`
}

// Summarize computes length statistics over records. An empty set returns
// the zero value.
func Summarize(records []Record) Stats {
	if len(records) == 0 {
		return Stats{}
	}

	lengths := make([]int, len(records))
	for i, rec := range records {
		lengths[i] = rec.Length()
	}

	stats := Stats{
		Count:     len(records),
		MinLength: lengths[0],
		MaxLength: lengths[0],
	}
	for _, l := range lengths {
		stats.TotalLength += l
		if l < stats.MinLength {
			stats.MinLength = l
		}
		if l > stats.MaxLength {
			stats.MaxLength = l
		}
	}
	stats.MeanLength = float64(stats.TotalLength) / float64(stats.Count)

	sorted := append([]int(nil), lengths...)
	sort.Ints(sorted)
	stats.MedianLength = sorted[len(sorted)/2]

	return stats
}

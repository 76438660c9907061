// Package genbank parses GenBank flat-file text into structured records.
//
// The parser is deliberately lenient: unrecognized sections are ignored,
// unparseable feature lines are skipped, and a chunk that yields nothing
// still produces an empty record rather than an error.
package genbank

import (
	"regexp"
	"strings"
)

// Feature is one entry of a record's feature table.
type Feature struct {
	Key        string            `json:"key"`
	Location   string            `json:"location"`
	Qualifiers map[string]string `json:"qualifiers"`
}

// Reference is one literature reference attached to a record.
type Reference struct {
	Number   string `json:"number"`
	Citation string `json:"citation"`
}

// Record is a parsed GenBank record. Origin holds the raw sequence block
// including position numbers; Sequence and Length are derived views.
type Record struct {
	Locus      string      `json:"locus"`
	Definition string      `json:"definition"`
	Accession  string      `json:"accession"`
	Version    string      `json:"version"`
	Keywords   string      `json:"keywords"`
	Source     string      `json:"source"`
	Organism   string      `json:"organism"`
	References []Reference `json:"references"`
	Features   []Feature   `json:"features"`
	Origin     string      `json:"origin"`
}

var originJunk = regexp.MustCompile(`[\s\d]`)

// Sequence returns the record's residues with position numbers and
// whitespace stripped out of the origin block.
func (r Record) Sequence() string {
	return originJunk.ReplaceAllString(r.Origin, "")
}

// Length returns the number of residues in the record.
func (r Record) Length() int {
	return len(r.Sequence())
}

// parser modes: most sections accumulate continuation lines, but the
// feature table and the origin block need their own line handling.
const (
	modeSections = iota
	modeFeatures
	modeOrigin
)

// reference sub-sections fold into the citation of the open reference
var refSubSections = map[string]bool{
	"AUTHORS": true,
	"CONSRTM": true,
	"TITLE":   true,
	"JOURNAL": true,
	"MEDLINE": true,
	"PUBMED":  true,
	"REMARK":  true,
}

var refNumber = regexp.MustCompile(`^(\d+)`)

// Parse reads every record out of GenBank flat-file text. Records are
// separated by // terminator lines; each chunk is parsed independently, so
// one malformed record cannot corrupt its neighbors.
func Parse(content string) []Record {
	var records []Record

	for _, chunk := range strings.Split(content, "//\n") {
		chunk = strings.TrimSpace(chunk)
		chunk = strings.TrimSuffix(chunk, "\n//")
		if chunk == "" {
			continue
		}
		records = append(records, parseRecord(chunk))
	}

	return records
}

func parseRecord(chunk string) Record {
	var rec Record

	mode := modeSections
	section := ""
	var acc strings.Builder
	features := newFeatureParser()

	closeSection := func() {
		if section != "" {
			applySection(&rec, section, acc.String())
		}
		section = ""
		acc.Reset()
	}

	for _, line := range strings.Split(chunk, "\n") {
		if strings.TrimSpace(line) == "//" {
			continue
		}

		switch mode {
		case modeOrigin:
			rec.Origin += line + "\n"
			continue

		case modeFeatures:
			if len(line) > 0 && line[0] != ' ' {
				// a top-level keyword ends the feature table
				features.close(&rec)
				mode = modeSections
			} else {
				features.line(line)
				continue
			}
		}

		// split the fixed-width left column from the content
		var keyword, content string
		switch {
		case len(line) >= 12:
			keyword = strings.TrimSpace(line[:12])
			content = strings.TrimSpace(line[12:])
		case len(line) > 0 && line[0] != ' ':
			keyword = strings.TrimSpace(line)
		default:
			content = strings.TrimSpace(line)
		}

		if keyword == "" {
			// blank left column: continuation of the current section
			if section != "" && content != "" {
				acc.WriteString(" ")
				acc.WriteString(content)
			}
			continue
		}

		closeSection()
		switch keyword {
		case "FEATURES":
			mode = modeFeatures
		case "ORIGIN":
			if content != "" {
				rec.Origin += content + "\n"
			}
			mode = modeOrigin
		default:
			section = keyword
			acc.WriteString(content)
		}
	}

	closeSection()
	features.close(&rec)

	return rec
}

// applySection stores one completed section's space-joined content.
func applySection(rec *Record, section, content string) {
	switch section {
	case "LOCUS":
		rec.Locus = content
	case "DEFINITION":
		if rec.Definition != "" {
			rec.Definition += " " + content
		} else {
			rec.Definition = content
		}
	case "ACCESSION":
		// secondary accessions after the first token are dropped
		if fields := strings.Fields(content); len(fields) > 0 {
			rec.Accession = fields[0]
		}
	case "VERSION":
		rec.Version = content
	case "KEYWORDS":
		rec.Keywords = content
	case "SOURCE":
		rec.Source = content
	case "ORGANISM":
		rec.Organism = content
	case "REFERENCE":
		if m := refNumber.FindStringSubmatch(content); m != nil {
			rec.References = append(rec.References, Reference{
				Number:   m[1],
				Citation: content,
			})
		}
	default:
		if refSubSections[section] && len(rec.References) > 0 {
			ref := &rec.References[len(rec.References)-1]
			ref.Citation += " " + content
		}
	}
}

// featureParser reassembles the feature table's wrapped lines into logical
// units before matching them, so locations and quoted qualifier values that
// span lines come back space-joined.
type featureParser struct {
	buf  string
	open *Feature
	out  []Feature
}

var (
	featureKey = regexp.MustCompile(`^(\w+)\s+(.+)`)
	qualifier  = regexp.MustCompile(`^/([^=]+)=?"?([^"]*)"?`)
)

func newFeatureParser() *featureParser {
	return &featureParser{}
}

func (p *featureParser) line(raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return
	}

	indent := len(raw) - len(strings.TrimLeft(raw, " "))
	startsQualifier := strings.HasPrefix(trimmed, "/")
	startsFeature := indent < 21 && !startsQualifier && featureKey.MatchString(trimmed)

	if startsQualifier || startsFeature {
		p.flush()
		p.buf = trimmed
		return
	}
	if p.buf != "" {
		p.buf += " " + trimmed
	}
}

func (p *featureParser) flush() {
	logical := p.buf
	p.buf = ""
	if logical == "" {
		return
	}

	if strings.HasPrefix(logical, "/") {
		if p.open == nil {
			return
		}
		if m := qualifier.FindStringSubmatch(logical); m != nil {
			p.open.Qualifiers[m[1]] = m[2]
		}
		return
	}

	if m := featureKey.FindStringSubmatch(logical); m != nil {
		if p.open != nil {
			p.out = append(p.out, *p.open)
		}
		p.open = &Feature{
			Key:        m[1],
			Location:   m[2],
			Qualifiers: map[string]string{},
		}
	}
}

func (p *featureParser) close(rec *Record) {
	p.flush()
	if p.open != nil {
		p.out = append(p.out, *p.open)
		p.open = nil
	}
	if len(p.out) > 0 {
		rec.Features = append(rec.Features, p.out...)
		p.out = nil
	}
}

// CDSFeatures returns the record's coding sequence features.
func CDSFeatures(rec Record) []Feature {
	return featuresByKey(rec, "CDS")
}

// GeneFeatures returns the record's gene features.
func GeneFeatures(rec Record) []Feature {
	return featuresByKey(rec, "gene")
}

func featuresByKey(rec Record, key string) []Feature {
	var matches []Feature
	for _, f := range rec.Features {
		if f.Key == key {
			matches = append(matches, f)
		}
	}
	return matches
}

// FeaturesByQualifier returns the features whose named qualifier contains
// value, compared case-insensitively.
func FeaturesByQualifier(rec Record, name, value string) []Feature {
	var matches []Feature
	for _, f := range rec.Features {
		got, ok := f.Qualifiers[name]
		if ok && strings.Contains(strings.ToLower(got), strings.ToLower(value)) {
			matches = append(matches, f)
		}
	}
	return matches
}

package xmlmap

import (
	"fmt"
	"strconv"
)

// GBFeature is one feature-table entry of a GBSeq element.
type GBFeature struct {
	Key        string            `json:"key"`
	Location   string            `json:"location"`
	Qualifiers map[string]string `json:"qualifiers"`
}

// GBSeq is one sequence record extracted from a GBSet document.
type GBSeq struct {
	Accession  string      `json:"accession"`
	Definition string      `json:"definition"`
	Length     int         `json:"length"`
	Organism   string      `json:"organism"`
	Sequence   string      `json:"sequence"`
	Features   []GBFeature `json:"features"`
}

// ParseGBSet extracts sequence records from GenBank XML. Both a GBSet
// wrapper and a bare GBSeq root are accepted.
func ParseGBSet(content string) ([]GBSeq, error) {
	root, err := Parse(content)
	if err != nil {
		return nil, err
	}

	nodes := root.FindAll("GBSeq")
	if len(nodes) == 0 && root.Tag == "GBSeq" {
		nodes = []*Node{root}
	}

	records := make([]GBSeq, 0, len(nodes))
	for _, node := range nodes {
		rec := GBSeq{
			Accession:  node.ChildText("GBSeq_primary-accession"),
			Definition: node.ChildText("GBSeq_definition"),
			Organism:   node.ChildText("GBSeq_organism"),
			Sequence:   node.ChildText("GBSeq_sequence"),
		}
		rec.Length, _ = strconv.Atoi(node.ChildText("GBSeq_length"))

		if table := node.Child("GBSeq_feature-table"); table != nil {
			for _, feat := range table.Children {
				if feat.Tag != "GBFeature" {
					continue
				}
				gf := GBFeature{
					Key:        feat.ChildText("GBFeature_key"),
					Location:   feat.ChildText("GBFeature_location"),
					Qualifiers: map[string]string{},
				}
				if quals := feat.Child("GBFeature_quals"); quals != nil {
					for _, q := range quals.Children {
						if q.Tag != "GBQualifier" {
							continue
						}
						if name := q.ChildText("GBQualifier_name"); name != "" {
							gf.Qualifiers[name] = q.ChildText("GBQualifier_value")
						}
					}
				}
				rec.Features = append(rec.Features, gf)
			}
		}

		records = append(records, rec)
	}

	return records, nil
}

// ErrorMessages pulls error text out of a service response. Both the
// top-level <ERROR> element and <ErrorList> phrase entries are checked;
// undecodable input yields no messages.
func ErrorMessages(content string) []string {
	root, err := Parse(content)
	if err != nil {
		return nil
	}

	var errors []string
	if e := root.Child("ERROR"); e != nil {
		errors = append(errors, e.Text)
	}
	if list := root.Child("ErrorList"); list != nil {
		for _, phrase := range list.Children {
			if phrase.Tag == "PhraseNotFound" {
				errors = append(errors, fmt.Sprintf("Phrase not found: %s", phrase.Text))
			}
		}
	}
	return errors
}

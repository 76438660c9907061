package eutils

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Citation is one ecitmatch entry. PMID is filled in from the service's
// answer; the remaining fields echo the query.
type Citation struct {
	Journal string `json:"journal"`
	Year    string `json:"year"`
	Volume  string `json:"volume"`
	Page    string `json:"page"`
	Author  string `json:"author"`
	Key     string `json:"key"`
	PMID    string `json:"pmid,omitempty"`
}

// String renders the citation in the service's pipe-delimited query form.
func (c Citation) String() string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%s|",
		c.Journal, c.Year, c.Volume, c.Page, c.Author, c.Key)
}

// CitMatch resolves citation strings to PubMed IDs via ecitmatch. Each
// citation must be in the journal|year|volume|page|author|key| form.
func (c *Client) CitMatch(ctx context.Context, citations []string) (string, error) {
	if len(citations) == 0 {
		return "", fmt.Errorf("citmatch: at least one citation is required")
	}
	for i, citation := range citations {
		if strings.Count(citation, "|") < 5 {
			return "", fmt.Errorf(
				"citmatch: citation %d is not in journal|year|volume|page|author|key| form", i+1)
		}
	}

	params := url.Values{}
	params.Set("db", "pubmed")
	params.Set("retmode", "xml")
	params.Set("bdata", strings.Join(citations, "\r"))

	return c.get(ctx, "ecitmatch.cgi", params)
}

// MatchCitation resolves a single citation to a PubMed ID.
func (c *Client) MatchCitation(ctx context.Context, citation Citation) (string, error) {
	return c.CitMatch(ctx, []string{citation.String()})
}

// ParseCitations decodes an ecitmatch answer: one pipe-delimited line per
// citation with the PMID appended as the seventh field.
func ParseCitations(body string) []Citation {
	var citations []Citation
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		if len(parts) < 7 {
			continue
		}
		citations = append(citations, Citation{
			Journal: parts[0],
			Year:    parts[1],
			Volume:  parts[2],
			Page:    parts[3],
			Author:  parts[4],
			Key:     parts[5],
			PMID:    strings.TrimSpace(parts[6]),
		})
	}
	return citations
}

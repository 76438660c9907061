package eutils

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/amdshrif/ncbi-client/internal/xmlmap"
)

// Replacement is one corrected term with the service's suggestions.
type Replacement struct {
	Original    string   `json:"original"`
	Suggestions []string `json:"suggestions"`
}

// SpellResult is a shaped espell response.
type SpellResult struct {
	Database       string        `json:"database"`
	Query          string        `json:"query"`
	CorrectedQuery string        `json:"corrected_query"`
	Replaced       []Replacement `json:"replaced,omitempty"`
}

// Spell asks espell for spelling suggestions on a search term.
func (c *Client) Spell(ctx context.Context, db, term string) (*SpellResult, error) {
	if db == "" {
		return nil, fmt.Errorf("spell: database is required")
	}
	if term == "" {
		return nil, fmt.Errorf("spell: term is required")
	}

	params := url.Values{}
	params.Set("db", db)
	params.Set("term", term)
	params.Set("retmode", "xml")

	body, err := c.get(ctx, "espell.fcgi", params)
	if err != nil {
		return nil, err
	}

	root, err := xmlmap.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse espell response: %w", err)
	}
	if msgs := xmlmap.ErrorMessages(body); len(msgs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrAPI, strings.Join(msgs, "; "))
	}

	result := &SpellResult{
		Database:       root.ChildText("Database"),
		Query:          root.ChildText("Query"),
		CorrectedQuery: root.ChildText("CorrectedQuery"),
	}

	for _, replaced := range root.FindAll("Replaced") {
		rep := Replacement{Original: strings.TrimSpace(replaced.Text)}
		for _, suggestion := range replaced.Children {
			if suggestion.Tag == "Suggestion" {
				rep.Suggestions = append(rep.Suggestions, strings.TrimSpace(suggestion.Text))
			}
		}
		result.Replaced = append(result.Replaced, rep)
	}

	return result, nil
}

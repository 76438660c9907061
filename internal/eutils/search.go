package eutils

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/amdshrif/ncbi-client/internal/xmlmap"
)

// SearchOptions refine an esearch call. The zero value asks for the
// first 20 UIDs sorted by the database default.
type SearchOptions struct {
	RetMax   int
	RetStart int
	Sort     string
	Field    string

	// date filtering; dates use YYYY/MM/DD
	RelDate  int
	MinDate  string
	MaxDate  string
	DateType string

	// UseHistory stores the result on the history server.
	UseHistory bool
	WebEnv     string
	QueryKey   int
}

// Translation is one query-term rewrite reported by the service.
type Translation struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// SearchResult is a shaped esearch response.
type SearchResult struct {
	Count        int           `json:"count"`
	RetMax       int           `json:"retmax"`
	RetStart     int           `json:"retstart"`
	IDs          []string      `json:"ids"`
	WebEnv       string        `json:"webenv,omitempty"`
	QueryKey     int           `json:"query_key,omitempty"`
	Translations []Translation `json:"translations,omitempty"`
}

// Search queries db for term via esearch. When the result carries
// history state it is saved on the client's History.
func (c *Client) Search(ctx context.Context, db, term string, opts SearchOptions) (*SearchResult, error) {
	if db == "" {
		return nil, fmt.Errorf("search: database is required")
	}
	if term == "" {
		return nil, fmt.Errorf("search: term is required")
	}
	if opts.RetMax == 0 {
		opts.RetMax = 20
	}
	if opts.RetMax < 0 || opts.RetMax > 100000 {
		return nil, fmt.Errorf("search: retmax %d outside [1, 100000]", opts.RetMax)
	}
	if opts.RetStart < 0 {
		return nil, fmt.Errorf("search: retstart must not be negative")
	}

	params := url.Values{}
	params.Set("db", db)
	params.Set("term", term)
	params.Set("retmax", strconv.Itoa(opts.RetMax))
	params.Set("retstart", strconv.Itoa(opts.RetStart))
	params.Set("retmode", "xml")
	if opts.Sort != "" {
		params.Set("sort", opts.Sort)
	}
	if opts.Field != "" {
		params.Set("field", opts.Field)
	}
	if opts.RelDate > 0 {
		params.Set("reldate", strconv.Itoa(opts.RelDate))
	}
	if opts.MinDate != "" {
		params.Set("mindate", opts.MinDate)
	}
	if opts.MaxDate != "" {
		params.Set("maxdate", opts.MaxDate)
	}
	if opts.DateType != "" && opts.DateType != "pdat" {
		params.Set("datetype", opts.DateType)
	}
	if opts.UseHistory {
		params.Set("usehistory", "y")
	}
	if opts.WebEnv != "" {
		params.Set("WebEnv", opts.WebEnv)
	}
	if opts.QueryKey != 0 {
		params.Set("query_key", strconv.Itoa(opts.QueryKey))
	}

	body, err := c.get(ctx, "esearch.fcgi", params)
	if err != nil {
		return nil, err
	}

	result, err := parseSearchResponse(body)
	if err != nil {
		return nil, err
	}

	if result.WebEnv != "" && result.QueryKey != 0 {
		c.History.SaveSearch(result.WebEnv, result.QueryKey, db, term, result.Count)
	}
	return result, nil
}

// SearchCombined reruns earlier history-server queries joined by a
// boolean operator.
func (c *Client) SearchCombined(ctx context.Context, webEnv string, queryKeys []int, operator string) (*SearchResult, error) {
	term, err := CombineQueries(queryKeys, operator)
	if err != nil {
		return nil, err
	}
	return c.Search(ctx, "pubmed", term, SearchOptions{
		WebEnv:     webEnv,
		UseHistory: true,
	})
}

func parseSearchResponse(body string) (*SearchResult, error) {
	root, err := xmlmap.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse esearch response: %w", err)
	}

	if msgs := xmlmap.ErrorMessages(body); len(msgs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrAPI, strings.Join(msgs, "; "))
	}

	result := &SearchResult{}
	result.Count, _ = strconv.Atoi(root.ChildText("Count"))
	result.RetMax, _ = strconv.Atoi(root.ChildText("RetMax"))
	result.RetStart, _ = strconv.Atoi(root.ChildText("RetStart"))
	result.WebEnv = root.ChildText("WebEnv")
	result.QueryKey, _ = strconv.Atoi(root.ChildText("QueryKey"))

	if ids := root.Child("IdList"); ids != nil {
		for _, id := range ids.Children {
			if id.Tag == "Id" {
				result.IDs = append(result.IDs, strings.TrimSpace(id.Text))
			}
		}
	}

	if set := root.Child("TranslationSet"); set != nil {
		for _, trans := range set.Children {
			if trans.Tag != "Translation" {
				continue
			}
			result.Translations = append(result.Translations, Translation{
				From: trans.ChildText("From"),
				To:   trans.ChildText("To"),
			})
		}
	}

	return result, nil
}

package eutils

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// FetchOptions refine an efetch call. Either IDs or a WebEnv/QueryKey
// pair must be set.
type FetchOptions struct {
	IDs      []string
	WebEnv   string
	QueryKey int

	// RetType and RetMode default to docsum/xml.
	RetType string
	RetMode string

	RetStart int
	RetMax   int

	// sequence databases only; zero means unset
	Strand     int
	SeqStart   int
	SeqStop    int
	Complexity int
}

// Fetch retrieves full records from db via efetch, returning the raw
// response in the requested format.
func (c *Client) Fetch(ctx context.Context, db string, opts FetchOptions) (string, error) {
	if db == "" {
		return "", fmt.Errorf("fetch: database is required")
	}
	if len(opts.IDs) == 0 && (opts.WebEnv == "" || opts.QueryKey == 0) {
		return "", fmt.Errorf("fetch: either IDs or WebEnv/QueryKey is required")
	}
	if opts.RetType == "" {
		opts.RetType = "docsum"
	}
	if opts.RetMode == "" {
		opts.RetMode = "xml"
	}

	params := url.Values{}
	params.Set("db", db)
	params.Set("rettype", opts.RetType)
	params.Set("retmode", opts.RetMode)
	if len(opts.IDs) > 0 {
		params.Set("id", strings.Join(opts.IDs, ","))
	}
	if opts.WebEnv != "" {
		params.Set("WebEnv", opts.WebEnv)
	}
	if opts.QueryKey != 0 {
		params.Set("query_key", strconv.Itoa(opts.QueryKey))
	}
	if opts.RetStart > 0 {
		params.Set("retstart", strconv.Itoa(opts.RetStart))
	}
	if opts.RetMax > 0 {
		params.Set("retmax", strconv.Itoa(opts.RetMax))
	}
	if opts.Strand != 0 {
		params.Set("strand", strconv.Itoa(opts.Strand))
	}
	if opts.SeqStart != 0 {
		params.Set("seq_start", strconv.Itoa(opts.SeqStart))
	}
	if opts.SeqStop != 0 {
		params.Set("seq_stop", strconv.Itoa(opts.SeqStop))
	}
	if opts.Complexity != 0 {
		params.Set("complexity", strconv.Itoa(opts.Complexity))
	}

	return c.get(ctx, "efetch.fcgi", params)
}

// FetchBatches pulls a large history-server result set in retmax-sized
// pages, returning one response per page. fn, when non-nil, observes each
// page index as it completes.
func (c *Client) FetchBatches(ctx context.Context, db string, webEnv string, queryKey int,
	total, batchSize int, opts FetchOptions, fn func(batch int)) ([]string, error) {
	if batchSize <= 0 {
		batchSize = 500
	}

	var pages []string
	for start := 0; start < total; start += batchSize {
		size := batchSize
		if remaining := total - start; remaining < size {
			size = remaining
		}

		page := opts
		page.IDs = nil
		page.WebEnv = webEnv
		page.QueryKey = queryKey
		page.RetStart = start
		page.RetMax = size

		body, err := c.Fetch(ctx, db, page)
		if err != nil {
			return pages, fmt.Errorf("batch at offset %d: %w", start, err)
		}
		pages = append(pages, body)
		if fn != nil {
			fn(len(pages))
		}
	}
	return pages, nil
}

package eutils

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/amdshrif/ncbi-client/internal/xmlmap"
)

// SummaryOptions refine an esummary call.
type SummaryOptions struct {
	WebEnv   string
	QueryKey int
	RetStart int
	RetMax   int

	// Version selects the DocSum schema; "" and "1.0" mean version 1.0.
	Version string
}

// DocSum is one document summary. Fields holds the per-item values;
// list-typed items appear as nested structures.
type DocSum struct {
	UID    string         `json:"uid"`
	Fields map[string]any `json:"fields"`
}

// SummaryResult is a shaped esummary response.
type SummaryResult struct {
	Version string   `json:"version"`
	DocSums []DocSum `json:"docsums"`
}

// Summary retrieves document summaries for UIDs or the current history
// selection via esummary.
func (c *Client) Summary(ctx context.Context, db string, ids []string, opts SummaryOptions) (*SummaryResult, error) {
	if db == "" {
		return nil, fmt.Errorf("summary: database is required")
	}
	if len(ids) == 0 && (opts.WebEnv == "" || opts.QueryKey == 0) {
		return nil, fmt.Errorf("summary: either IDs or WebEnv/QueryKey is required")
	}
	version := opts.Version
	if version == "" {
		version = "1.0"
	}
	if version != "1.0" && version != "2.0" {
		return nil, fmt.Errorf("summary: version %q is not 1.0 or 2.0", version)
	}

	params := url.Values{}
	params.Set("db", db)
	params.Set("retmode", "xml")
	if version == "2.0" {
		params.Set("version", "2.0")
	}
	if len(ids) > 0 {
		params.Set("id", strings.Join(ids, ","))
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

	body, err := c.get(ctx, "esummary.fcgi", params)
	if err != nil {
		return nil, err
	}

	root, err := xmlmap.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse esummary response: %w", err)
	}
	if msgs := xmlmap.ErrorMessages(body); len(msgs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrAPI, strings.Join(msgs, "; "))
	}

	if version == "2.0" {
		return parseSummaryV2(root), nil
	}
	return parseSummaryV1(root), nil
}

// parseSummaryV1 shapes the classic DocSum schema: Item elements with a
// Name attribute, nested for list types.
func parseSummaryV1(root *xmlmap.Node) *SummaryResult {
	result := &SummaryResult{Version: "1.0"}

	for _, docsum := range root.FindAll("DocSum") {
		doc := DocSum{
			UID:    docsum.ChildText("Id"),
			Fields: map[string]any{},
		}
		for _, item := range docsum.Children {
			if item.Tag == "Item" {
				addSummaryItem(doc.Fields, item)
			}
		}
		result.DocSums = append(result.DocSums, doc)
	}
	return result
}

func addSummaryItem(fields map[string]any, item *xmlmap.Node) {
	name := item.Attr["Name"]
	if name == "" {
		return
	}

	var value any
	if len(item.Children) > 0 {
		nested := map[string]any{}
		for _, child := range item.Children {
			if child.Tag == "Item" {
				addSummaryItem(nested, child)
			}
		}
		value = nested
	} else {
		value = strings.TrimSpace(item.Text)
	}

	if existing, ok := fields[name]; ok {
		if list, ok := existing.([]any); ok {
			fields[name] = append(list, value)
		} else {
			fields[name] = []any{existing, value}
		}
	} else {
		fields[name] = value
	}
}

// parseSummaryV2 shapes the version 2.0 DocumentSummary schema, where
// fields are plain child elements.
func parseSummaryV2(root *xmlmap.Node) *SummaryResult {
	result := &SummaryResult{Version: "2.0"}

	for _, summary := range root.FindAll("DocumentSummary") {
		doc := DocSum{
			UID:    summary.Attr["uid"],
			Fields: map[string]any{},
		}
		for _, child := range summary.Children {
			doc.Fields[child.Tag] = child.Map(false)
		}
		result.DocSums = append(result.DocSums, doc)
	}
	return result
}

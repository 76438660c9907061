package eutils

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/amdshrif/ncbi-client/internal/xmlmap"
)

// GlobalCount is one database's hit count from a global query.
type GlobalCount struct {
	DB     string `json:"db"`
	Count  int    `json:"count"`
	Status string `json:"status"`
}

// GlobalResult is a shaped egquery response.
type GlobalResult struct {
	Term      string        `json:"term"`
	Databases []GlobalCount `json:"databases"`
}

// GlobalQuery searches every Entrez database at once via egquery,
// reporting per-database hit counts.
func (c *Client) GlobalQuery(ctx context.Context, term string) (*GlobalResult, error) {
	if term == "" {
		return nil, fmt.Errorf("gquery: term is required")
	}

	params := url.Values{}
	params.Set("term", term)
	params.Set("retmode", "xml")

	body, err := c.get(ctx, "egquery.fcgi", params)
	if err != nil {
		return nil, err
	}

	root, err := xmlmap.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse egquery response: %w", err)
	}
	if msgs := xmlmap.ErrorMessages(body); len(msgs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrAPI, strings.Join(msgs, "; "))
	}

	result := &GlobalResult{Term: root.ChildText("Term")}
	for _, item := range root.FindAll("ResultItem") {
		count := GlobalCount{
			DB:     item.ChildText("DbName"),
			Status: item.ChildText("Status"),
		}
		count.Count, _ = strconv.Atoi(item.ChildText("Count"))
		result.Databases = append(result.Databases, count)
	}
	return result, nil
}

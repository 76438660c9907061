package eutils

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/amdshrif/ncbi-client/internal/xmlmap"
)

// PostResult is the history handle returned by epost.
type PostResult struct {
	WebEnv   string `json:"webenv"`
	QueryKey int    `json:"query_key"`
}

// Post uploads UIDs to the history server via epost. Passing webEnv adds
// the set to an existing environment; the resulting handle is saved on
// the client's History.
func (c *Client) Post(ctx context.Context, db string, ids []string, webEnv string) (*PostResult, error) {
	if db == "" {
		return nil, fmt.Errorf("post: database is required")
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("post: at least one UID is required")
	}

	params := url.Values{}
	params.Set("db", db)
	params.Set("id", strings.Join(ids, ","))
	if webEnv != "" {
		params.Set("WebEnv", webEnv)
	}

	body, err := c.post(ctx, "epost.fcgi", params)
	if err != nil {
		return nil, err
	}

	root, err := xmlmap.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse epost response: %w", err)
	}
	if msgs := xmlmap.ErrorMessages(body); len(msgs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrAPI, strings.Join(msgs, "; "))
	}

	result := &PostResult{WebEnv: root.ChildText("WebEnv")}
	result.QueryKey, _ = strconv.Atoi(root.ChildText("QueryKey"))
	if result.WebEnv == "" {
		return nil, fmt.Errorf("%w: epost response carries no WebEnv", ErrAPI)
	}

	c.History.SavePost(result.WebEnv, result.QueryKey, db, len(ids))
	return result, nil
}

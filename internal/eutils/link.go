package eutils

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/amdshrif/ncbi-client/internal/xmlmap"
)

// LinkOptions refine an elink call.
type LinkOptions struct {
	IDs      []string
	WebEnv   string
	QueryKey int

	// Cmd selects the link mode; the default is "neighbor".
	Cmd      string
	LinkName string
	Term     string
	Holding  string

	RelDate  int
	MinDate  string
	MaxDate  string
	DateType string
}

// LinkSetDB is one target database's related UIDs within a LinkSet.
type LinkSetDB struct {
	DBTo     string   `json:"dbto"`
	LinkName string   `json:"linkname"`
	IDs      []string `json:"ids"`
}

// LinkSet groups the links found for one set of input UIDs.
type LinkSet struct {
	DBFrom string      `json:"dbfrom"`
	IDs    []string    `json:"ids"`
	Links  []LinkSetDB `json:"links"`
}

// Link finds records in db related to UIDs from dbfrom via elink.
func (c *Client) Link(ctx context.Context, dbfrom, db string, opts LinkOptions) ([]LinkSet, error) {
	if dbfrom == "" || db == "" {
		return nil, fmt.Errorf("link: both source and target databases are required")
	}
	if len(opts.IDs) == 0 && (opts.WebEnv == "" || opts.QueryKey == 0) {
		return nil, fmt.Errorf("link: either IDs or WebEnv/QueryKey is required")
	}
	if opts.Cmd == "" {
		opts.Cmd = "neighbor"
	}

	params := url.Values{}
	params.Set("dbfrom", dbfrom)
	params.Set("db", db)
	params.Set("cmd", opts.Cmd)
	params.Set("retmode", "xml")
	// one id parameter per UID keeps the service in by-ID mode, so each
	// input UID gets its own LinkSet
	for _, id := range opts.IDs {
		params.Add("id", id)
	}
	if opts.WebEnv != "" {
		params.Set("WebEnv", opts.WebEnv)
	}
	if opts.QueryKey != 0 {
		params.Set("query_key", strconv.Itoa(opts.QueryKey))
	}
	if opts.LinkName != "" {
		params.Set("linkname", opts.LinkName)
	}
	if opts.Term != "" {
		params.Set("term", opts.Term)
	}
	if opts.Holding != "" {
		params.Set("holding", opts.Holding)
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

	body, err := c.get(ctx, "elink.fcgi", params)
	if err != nil {
		return nil, err
	}

	root, err := xmlmap.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse elink response: %w", err)
	}
	if msgs := xmlmap.ErrorMessages(body); len(msgs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrAPI, strings.Join(msgs, "; "))
	}

	var sets []LinkSet
	for _, node := range root.FindAll("LinkSet") {
		set := LinkSet{DBFrom: node.ChildText("DbFrom")}

		if ids := node.Child("IdList"); ids != nil {
			for _, id := range ids.Children {
				if id.Tag == "Id" {
					set.IDs = append(set.IDs, strings.TrimSpace(id.Text))
				}
			}
		}

		for _, lsdb := range node.Children {
			if lsdb.Tag != "LinkSetDb" {
				continue
			}
			linkDB := LinkSetDB{
				DBTo:     lsdb.ChildText("DbTo"),
				LinkName: lsdb.ChildText("LinkName"),
			}
			for _, link := range lsdb.Children {
				if link.Tag == "Link" {
					linkDB.IDs = append(linkDB.IDs, link.ChildText("Id"))
				}
			}
			set.Links = append(set.Links, linkDB)
		}

		sets = append(sets, set)
	}
	return sets, nil
}

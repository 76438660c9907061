package eutils

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/amdshrif/ncbi-client/internal/xmlmap"
)

// FieldInfo describes one search field of a database.
type FieldInfo struct {
	Name        string `json:"name"`
	FullName    string `json:"fullname"`
	Description string `json:"description"`
	TermCount   int    `json:"termcount"`
	IsDate      bool   `json:"isdate"`
	IsNumerical bool   `json:"isnumerical"`
	IsHierarchy bool   `json:"ishierarchy"`
}

// LinkInfo describes one outgoing link type of a database.
type LinkInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DBTo        string `json:"dbto"`
}

// DBInfo describes one database: statistics, search fields, and links.
type DBInfo struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Count       int         `json:"count"`
	LastUpdate  string      `json:"lastupdate"`
	Fields      []FieldInfo `json:"fields"`
	Links       []LinkInfo  `json:"links"`
}

// Databases lists every Entrez database via einfo.
func (c *Client) Databases(ctx context.Context) ([]string, error) {
	root, err := c.info(ctx, "")
	if err != nil {
		return nil, err
	}

	list := root.Child("DbList")
	if list == nil {
		return nil, fmt.Errorf("%w: einfo response carries no DbList", ErrAPI)
	}

	var names []string
	for _, db := range list.Children {
		if db.Tag == "DbName" {
			names = append(names, strings.TrimSpace(db.Text))
		}
	}
	return names, nil
}

// Info describes one database via einfo.
func (c *Client) Info(ctx context.Context, db string) (*DBInfo, error) {
	if db == "" {
		return nil, fmt.Errorf("info: database is required")
	}

	root, err := c.info(ctx, db)
	if err != nil {
		return nil, err
	}

	node := root.Child("DbInfo")
	if node == nil {
		return nil, fmt.Errorf("%w: einfo response carries no DbInfo", ErrAPI)
	}

	info := &DBInfo{
		Name:        node.ChildText("DbName"),
		Description: node.ChildText("Description"),
		LastUpdate:  node.ChildText("LastUpdate"),
	}
	info.Count, _ = strconv.Atoi(node.ChildText("Count"))

	if fields := node.Child("FieldList"); fields != nil {
		for _, field := range fields.Children {
			if field.Tag != "Field" {
				continue
			}
			fi := FieldInfo{
				Name:        field.ChildText("Name"),
				FullName:    field.ChildText("FullName"),
				Description: field.ChildText("Description"),
				IsDate:      field.ChildText("IsDate") == "Y",
				IsNumerical: field.ChildText("IsNumerical") == "Y",
				IsHierarchy: field.ChildText("IsHierarchy") == "Y",
			}
			fi.TermCount, _ = strconv.Atoi(field.ChildText("TermCount"))
			info.Fields = append(info.Fields, fi)
		}
	}

	if links := node.Child("LinkList"); links != nil {
		for _, link := range links.Children {
			if link.Tag != "Link" {
				continue
			}
			info.Links = append(info.Links, LinkInfo{
				Name:        link.ChildText("Name"),
				Description: link.ChildText("Description"),
				DBTo:        link.ChildText("DbTo"),
			})
		}
	}

	return info, nil
}

func (c *Client) info(ctx context.Context, db string) (*xmlmap.Node, error) {
	params := url.Values{}
	params.Set("retmode", "xml")
	params.Set("version", "2.0")
	if db != "" {
		params.Set("db", db)
	}

	body, err := c.get(ctx, "einfo.fcgi", params)
	if err != nil {
		return nil, err
	}

	root, err := xmlmap.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse einfo response: %w", err)
	}
	if msgs := xmlmap.ErrorMessages(body); len(msgs) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrAPI, strings.Join(msgs, "; "))
	}
	return root, nil
}

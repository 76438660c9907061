package main

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/amdshrif/ncbi-client/cmd"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootCmd = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

// child command without children
const childCmd = `---
layout: default
title: %s
parent: %s
nav_order: %d
---
`

// child with children
const childParentCmd = `---
layout: default
title: %s
parent: %s
nav_order: %d
has_children: true
---
`

// grandchildren
const grandchildCmd = `---
layout: default
title: %s
parent: %s
grand_parent: %s
nav_order: %d
---
`

// docType codes whether the command is a grandchild, child, etc
type docType int

const (
	root docType = iota
	child
	childParent
	grandchild
)

// meta is for describing the position/info for a command doc page
type meta struct {
	docType     docType
	title       string
	navOrder    int
	parent      string
	grandParent string
}

// map from the base Markdown file name to its build meta
var metaMap = map[string]meta{
	"ncbi":         {root, "ncbi", 0, "", ""},
	"ncbi_search":  {child, "search", 0, "ncbi", ""},
	"ncbi_fetch":   {child, "fetch", 1, "ncbi", ""},
	"ncbi_summary": {child, "summary", 2, "ncbi", ""},
	"ncbi_link":    {child, "link", 3, "ncbi", ""},
	"ncbi_info":    {child, "info", 4, "ncbi", ""},
	"ncbi_spell":   {child, "spell", 5, "ncbi", ""},
	"ncbi_cite":    {child, "cite", 6, "ncbi", ""},
	"ncbi_post":    {child, "post", 7, "ncbi", ""},
	"ncbi_gquery":  {child, "gquery", 8, "ncbi", ""},
	"ncbi_convert": {child, "convert", 9, "ncbi", ""},

	"ncbi_seq":           {childParent, "seq", 10, "ncbi", ""},
	"ncbi_seq_translate": {grandchild, "translate", 0, "seq", "ncbi"},
	"ncbi_seq_revcomp":   {grandchild, "revcomp", 1, "seq", "ncbi"},
	"ncbi_seq_gc":        {grandchild, "gc", 2, "seq", "ncbi"},
	"ncbi_seq_orf":       {grandchild, "orf", 3, "seq", "ncbi"},
	"ncbi_seq_primers":   {grandchild, "primers", 4, "seq", "ncbi"},
	"ncbi_seq_repeats":   {grandchild, "repeats", 5, "seq", "ncbi"},
	"ncbi_seq_sites":     {grandchild, "sites", 6, "seq", "ncbi"},
	"ncbi_seq_stats":     {grandchild, "stats", 7, "seq", "ncbi"},

	"ncbi_cache":       {childParent, "cache", 11, "ncbi", ""},
	"ncbi_cache_clear": {grandchild, "clear", 0, "cache", "ncbi"},
	"ncbi_cache_stats": {grandchild, "stats", 1, "cache", "ncbi"},
}

// makeDocs parses the custom commands and outputs Markdown documentation files
func makeDocs() {
	if err := doc.GenMarkdownTreeCustom(cmd.RootCmd, "./docs", filePrepender, linkHandler); err != nil {
		fmt.Println(err.Error())
	}
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))
	m := metaMap[base]

	switch m.docType {
	case root:
		return fmt.Sprintf(rootCmd, m.title, m.navOrder)
	case child:
		return fmt.Sprintf(childCmd, m.title, m.parent, m.navOrder)
	case childParent:
		return fmt.Sprintf(childParentCmd, m.title, m.parent, m.navOrder)
	case grandchild:
		return fmt.Sprintf(grandchildCmd, m.title, m.parent, m.grandParent, m.navOrder)
	}

	return ""
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	name := filepath.Base(filename)
	base := strings.TrimSuffix(name, path.Ext(name))

	if base == "ncbi" {
		return "/"
	}
	return base
}

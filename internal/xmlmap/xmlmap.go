// Package xmlmap converts XML documents into a lightweight node tree and
// nested map form, without schema types. It backs the format converter and
// the E-utilities response shaping.
package xmlmap

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrParse marks XML that could not be decomposed into a document tree.
var ErrParse = errors.New("malformed XML")

// Node is one element of a parsed document. Text holds the character data
// that precedes the first child element, matching the usual tree model.
type Node struct {
	Tag      string
	Attr     map[string]string
	Text     string
	Children []*Node
}

// Parse decodes an XML document into a node tree. A leading byte order
// mark is tolerated; namespace prefixes are dropped.
func Parse(content string) (*Node, error) {
	content = strings.TrimPrefix(content, "\uFEFF")

	dec := xml.NewDecoder(strings.NewReader(content))

	var root *Node
	var stack []*Node
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Tag: t.Name.Local}
			if len(t.Attr) > 0 {
				node.Attr = make(map[string]string, len(t.Attr))
				for _, a := range t.Attr {
					node.Attr[a.Name.Local] = a.Value
				}
			}
			if len(stack) == 0 {
				root = node
			} else {
				top := stack[len(stack)-1]
				top.Children = append(top.Children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			stack = stack[:len(stack)-1]

		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				if len(top.Children) == 0 {
					top.Text += string(t)
				}
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("%w: no root element", ErrParse)
	}
	return root, nil
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildText returns the trimmed text of the first direct child with the
// given tag, or the empty string when absent.
func (n *Node) ChildText(tag string) string {
	if c := n.Child(tag); c != nil {
		return strings.TrimSpace(c.Text)
	}
	return ""
}

// Find returns the first descendant with the given tag in depth-first
// order, or nil. The receiver itself is not considered.
func (n *Node) Find(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
		if found := c.Find(tag); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every descendant with the given tag in depth-first
// order. The receiver itself is not considered.
func (n *Node) FindAll(tag string) []*Node {
	var found []*Node
	for _, c := range n.Children {
		if c.Tag == tag {
			found = append(found, c)
		}
		found = append(found, c.FindAll(tag)...)
	}
	return found
}

// Map converts the subtree into nested maps. An element holding only text
// collapses to its text string; repeated child tags become lists;
// attributes land under "@attributes" and mixed text under "#text".
func (n *Node) Map(includeAttributes bool) any {
	if strings.TrimSpace(n.Text) != "" && len(n.Children) == 0 {
		return n.Text
	}

	result := map[string]any{}
	if includeAttributes && len(n.Attr) > 0 {
		result["@attributes"] = n.Attr
	}
	if strings.TrimSpace(n.Text) != "" {
		result["#text"] = strings.TrimSpace(n.Text)
	}

	for _, child := range n.Children {
		value := child.Map(includeAttributes)
		if existing, ok := result[child.Tag]; ok {
			if list, ok := existing.([]any); ok {
				result[child.Tag] = append(list, value)
			} else {
				result[child.Tag] = []any{existing, value}
			}
		} else {
			result[child.Tag] = value
		}
	}
	return result
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scrape

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Column labels the source table uses on its data cells (R2.1).
const (
	psalmLabel   = "Psalms:"
	relatedLabel = "After What Scripture:"
)

// ParseTable extracts the two citation columns from the fetched page
// (R2.1-R2.4). The table marks each cell with a data-label attribute;
// psalm cells carry "Psalms:" and related cells "After What Scripture:".
// Within a cell every citation is an <a> link, and link text is collected
// in document order.
//
// The two returned slices are parallel: element i of each came from the
// same table row. A page with no labeled cells at all is a structural
// failure and returns an error; the build has nothing to work with.
func ParseTable(content string) (psalms, related [][]string, err error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("parsing html: %w", err)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "td" {
			switch attr(n, "data-label") {
			case psalmLabel:
				psalms = append(psalms, linkTexts(n))
			case relatedLabel:
				related = append(related, linkTexts(n))
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(psalms) == 0 && len(related) == 0 {
		return nil, nil, fmt.Errorf("no labeled citation cells found: page structure changed or wrong URL")
	}

	return psalms, related, nil
}

// attr returns the value of the named attribute, or "" when absent.
func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// linkTexts collects the text content of every <a> descendant of n, in
// document order.
func linkTexts(n *html.Node) []string {
	texts := make([]string, 0, 2)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if t := strings.TrimSpace(textContent(n)); t != "" {
				texts = append(texts, t)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return texts
}

// textContent concatenates all text nodes under n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

package ingest

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/tsawler/restitch/model"
)

// HTMLDocument parses an HTML document and turns every <table> element into
// a fragment. Page attribution comes from a data-page attribute on the table
// element when present; otherwise tables inherit the page of the preceding
// table, starting at 1. Full text content per page is collected for profile
// detection.
func HTMLDocument(r io.Reader, source string) (*Document, error) {
	decoded, err := charset.NewReader(r, "text/html")
	if err != nil {
		return nil, fmt.Errorf("detecting charset: %w", err)
	}

	root, err := html.Parse(decoded)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc := &Document{}
	page := 1
	perPage := make(map[int]int)

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			if p, ok := pageAttr(n); ok {
				page = p
			}
			rows := parseTableRows(n)
			if len(rows) > 0 {
				doc.Fragments = append(doc.Fragments, model.Fragment{
					Data:       rows,
					Page:       page,
					TableIndex: perPage[page],
					Source:     source,
				})
				perPage[page]++
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	doc.PageTexts = []string{textContent(root)}
	return doc, nil
}

// pageAttr reads the data-page attribute on a table element.
func pageAttr(n *html.Node) (int, bool) {
	for _, attr := range n.Attr {
		if attr.Key == "data-page" {
			if p, err := strconv.Atoi(strings.TrimSpace(attr.Val)); err == nil && p >= 1 {
				return p, true
			}
		}
	}
	return 0, false
}

// parseTableRows flattens thead, tbody, and direct tr children into a cell
// matrix.
func parseTableRows(tableNode *html.Node) [][]string {
	var rows [][]string

	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead", "tbody", "tfoot":
				collect(c)
			case "tr":
				if row := parseRow(c); len(row) > 0 {
					rows = append(rows, row)
				}
			}
		}
	}
	collect(tableNode)

	return rows
}

// parseRow extracts the td/th cells of one table row.
func parseRow(tr *html.Node) []string {
	var row []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			row = append(row, strings.TrimSpace(textContent(c)))
		}
	}
	return row
}

// textContent recursively extracts the text content of a node, skipping
// non-content elements.
func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	if n.Type == html.ElementNode {
		switch n.Data {
		case "script", "style", "noscript", "template":
			return ""
		}
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textContent(c))
		sb.WriteString(" ")
	}
	return strings.TrimSpace(sb.String())
}

package book

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// SummaryFile is the table of contents inside the source directory.
const SummaryFile = "SUMMARY.md"

// ErrInvalidSummary is returned for SUMMARY.md content that is neither a
// heading, a link, a list of links nor a separator.
var ErrInvalidSummary = errors.New("invalid summary")

// ItemKind distinguishes the entries of a [Summary].
type ItemKind int

const (
	ItemLink ItemKind = iota
	ItemSeparator
	ItemPartTitle
)

// SummaryItem is one parsed SUMMARY.md entry. Numbered links carry a section
// number; prefix and suffix links do not.
type SummaryItem struct {
	Kind     ItemKind
	Name     string
	Location string
	Number   SectionNumber
	Nested   []SummaryItem
}

// Summary is the parsed form of SUMMARY.md.
type Summary struct {
	Title string
	Items []SummaryItem
}

// ParseSummary parses a SUMMARY.md document. The first heading, if it comes
// before any chapter, is the summary title; later headings start parts.
// Links outside lists are unnumbered prefix or suffix chapters, links in
// lists are numbered and may nest.
func ParseSummary(source []byte) (*Summary, error) {
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	summary := &Summary{}
	counter := 0

	for node := root.FirstChild(); node != nil; node = node.NextSibling() {
		switch n := node.(type) {
		case *ast.Heading:
			title := inlineText(n, source)
			if len(summary.Items) == 0 && summary.Title == "" {
				summary.Title = title

				continue
			}

			summary.Items = append(summary.Items, SummaryItem{Kind: ItemPartTitle, Name: title})
		case *ast.ThematicBreak:
			summary.Items = append(summary.Items, SummaryItem{Kind: ItemSeparator})
		case *ast.Paragraph:
			links := findLinks(n)
			if len(links) == 0 {
				return nil, fmt.Errorf("%w: line %d: expected a link", ErrInvalidSummary, lineOf(n, source))
			}

			for _, link := range links {
				summary.Items = append(summary.Items, linkItem(link, source, nil))
			}
		case *ast.List:
			items, next, err := parseList(n, source, nil, counter)
			if err != nil {
				return nil, err
			}

			counter = next
			summary.Items = append(summary.Items, items...)
		case *ast.HTMLBlock:
		default:
			return nil, fmt.Errorf("%w: line %d: unexpected %s", ErrInvalidSummary, lineOf(n, source), n.Kind())
		}
	}

	return summary, nil
}

func parseList(list *ast.List, source []byte, parent SectionNumber, counter int) ([]SummaryItem, int, error) {
	var items []SummaryItem

	for node := list.FirstChild(); node != nil; node = node.NextSibling() {
		var (
			link   *ast.Link
			nested *ast.List
		)

		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if l, ok := child.(*ast.List); ok {
				nested = l

				continue
			}

			if links := findLinks(child); link == nil && len(links) > 0 {
				link = links[0]
			}
		}

		if link == nil {
			return nil, counter, fmt.Errorf("%w: line %d: list item without a link", ErrInvalidSummary, lineOf(node, source))
		}

		counter++

		number := append(append(SectionNumber{}, parent...), counter)
		item := linkItem(link, source, number)

		if nested != nil {
			children, _, err := parseList(nested, source, number, 0)
			if err != nil {
				return nil, counter, err
			}

			item.Nested = children
		}

		items = append(items, item)
	}

	return items, counter, nil
}

func linkItem(link *ast.Link, source []byte, number SectionNumber) SummaryItem {
	return SummaryItem{
		Kind:     ItemLink,
		Name:     inlineText(link, source),
		Location: string(link.Destination),
		Number:   number,
	}
}

func findLinks(node ast.Node) []*ast.Link {
	var links []*ast.Link

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if l, ok := n.(*ast.Link); ok {
			links = append(links, l)

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return links
}

func inlineText(node ast.Node, source []byte) string {
	var buf bytes.Buffer

	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(source))

			if t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		}

		return ast.WalkContinue, nil
	})

	return string(bytes.TrimSpace(buf.Bytes()))
}

func lineOf(node ast.Node, source []byte) int {
	for n := node; n != nil; n = n.FirstChild() {
		if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
			return bytes.Count(source[:n.Lines().At(0).Start], []byte{'\n'}) + 1
		}
	}

	return 0
}

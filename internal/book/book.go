// Package book loads an mdBook-style book, runs preprocessors over its
// chapters and renders the result.
package book

import (
	"strconv"
	"strings"
)

// Book is the ordered tree of items listed in SUMMARY.md.
type Book struct {
	Sections []BookItem
}

// BookItem is one entry of a [Book]: a [*Chapter], a [Separator] or a
// [PartTitle].
type BookItem interface {
	bookItem()
}

// Separator is a horizontal rule between groups of chapters.
type Separator struct{}

// PartTitle is a heading that groups the numbered chapters following it.
type PartTitle string

func (Separator) bookItem() {}
func (PartTitle) bookItem() {}
func (*Chapter) bookItem()  {}

// Chapter is a single Markdown file of the book. Path is relative to the
// source directory and empty for draft chapters.
type Chapter struct {
	Name        string
	Content     string
	Number      SectionNumber
	SubItems    []BookItem
	Path        string
	ParentNames []string
}

// IsDraft reports whether the chapter is listed without a file.
func (c *Chapter) IsDraft() bool {
	return c.Path == ""
}

// SectionNumber is the hierarchical number of a numbered chapter, e.g. 1.2.
type SectionNumber []int

func (n SectionNumber) String() string {
	if len(n) == 0 {
		return ""
	}

	var sb strings.Builder

	for _, part := range n {
		sb.WriteString(strconv.Itoa(part))
		sb.WriteByte('.')
	}

	return sb.String()
}

// ForEachChapter calls fn for every chapter, parents before their children,
// and stops at the first error fn returns.
func (b *Book) ForEachChapter(fn func(*Chapter) error) error {
	return forEachChapter(b.Sections, fn)
}

func forEachChapter(items []BookItem, fn func(*Chapter) error) error {
	for _, item := range items {
		ch, ok := item.(*Chapter)
		if !ok {
			continue
		}

		if err := fn(ch); err != nil {
			return err
		}

		if err := forEachChapter(ch.SubItems, fn); err != nil {
			return err
		}
	}

	return nil
}

// Chapters returns every chapter in [Book.ForEachChapter] order.
func (b *Book) Chapters() []*Chapter {
	var out []*Chapter

	_ = b.ForEachChapter(func(ch *Chapter) error {
		out = append(out, ch)

		return nil
	})

	return out
}

package mdcode

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Parse parses a Markdown document into a flat event stream.
//
// Every code block, fenced or indented, becomes a start marker, one text event
// per physical body line and an end marker. All other content is carried by
// passthrough events, so concatenating the Raw bytes of the result yields
// source unchanged. Parse never fails: unreadable info string attributes are
// recorded on the block and otherwise ignored.
func Parse(source []byte) []Event {
	root := goldmark.DefaultParser().Parse(text.NewReader(source))

	p := &eventParser{source: source}

	_ = ast.Walk(root, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.FencedCodeBlock:
			block := extractFenced(n, source)

			anchor := p.cursor
			if n.Info != nil {
				anchor = n.Info.Segment.Stop
			}

			p.block(block, n.Lines(), anchor)

			return ast.WalkSkipChildren, nil
		case *ast.CodeBlock:
			p.block(&Block{}, n.Lines(), p.cursor)

			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	p.flush(len(source))

	return p.events
}

type eventParser struct {
	source []byte
	cursor int
	events []Event
}

// flush emits the source between the cursor and pos as a passthrough event.
func (p *eventParser) flush(pos int) {
	if pos <= p.cursor {
		return
	}

	p.events = append(p.events, Other(p.source[p.cursor:pos]))
	p.cursor = pos
}

func (p *eventParser) block(block *Block, lines *text.Segments, anchor int) {
	if lines.Len() == 0 {
		p.flush(anchor)
		p.events = append(p.events, Start(block), End(block))

		return
	}

	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)

		p.flush(lineStart(p.source, seg.Start))

		if i == 0 {
			p.events = append(p.events, Start(block))
		}

		p.events = append(p.events, Event{
			Kind: KindText,
			Text: seg.Value(p.source),
			Raw:  p.source[p.cursor:seg.Stop],
		})
		p.cursor = seg.Stop
	}

	p.events = append(p.events, End(block))
}

// lineStart returns the offset of the first byte of the physical line holding
// offset, so container prefixes travel with the line.
func lineStart(source []byte, offset int) int {
	return bytes.LastIndexByte(source[:offset], '\n') + 1
}

func extractFenced(fcb *ast.FencedCodeBlock, source []byte) *Block {
	block := &Block{}

	if fcb.Info != nil {
		block.Lang, block.Meta, block.MetaErr = parseInfo(fcb.Info.Segment.Value(source))
	}

	block.StartLine, block.EndLine = fenceLines(fcb, source)

	return block
}

// fenceLines returns the lines of the opening and closing fence. Every body
// line is a segment, so the closing fence sits right after the last one. An
// unterminated block reports the line past the end of the document.
func fenceLines(fcb *ast.FencedCodeBlock, source []byte) (int, int) {
	var open int

	lines := fcb.Lines()

	switch {
	case fcb.Info != nil:
		open = lineAt(source, fcb.Info.Segment.Start)
	case lines.Len() > 0:
		open = lineAt(source, lines.At(0).Start) - 1
	default:
		return 0, 0
	}

	return open, open + lines.Len() + 1
}

func lineAt(source []byte, offset int) int {
	if offset > len(source) {
		offset = len(source)
	}

	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}

// parseInfo splits an info string into its language tag and attributes. The
// tag is everything up to the first blank or comma and is taken verbatim, so
// "scala,editable" is scala while "scala-js" and "{.scala}" are not.
func parseInfo(info []byte) (string, Meta, error) {
	info = bytes.TrimSpace(info)

	end := bytes.IndexFunc(info, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if end < 0 {
		return string(info), Meta{}, nil
	}

	lang := string(info[:end])
	rest := bytes.TrimLeft(info[end:], ", \t")

	meta, err := parseMeta(rest)

	return lang, meta, err
}

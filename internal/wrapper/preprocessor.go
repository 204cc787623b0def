package wrapper

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ezerfernandes/scalawrap/internal/book"
	"github.com/ezerfernandes/scalawrap/internal/mdcode"
)

// Name identifies the preprocessor in diagnostics and errors.
const Name = "scala-wrapper-preprocessor"

// ChapterError is returned when a chapter cannot be turned back into Markdown.
type ChapterError struct {
	Preprocessor string
	Chapter      string
	Err          error
}

func (e *ChapterError) Error() string {
	return fmt.Sprintf("markdown serialization failed within %s (chapter %q): %v", e.Preprocessor, e.Chapter, e.Err)
}

func (e *ChapterError) Unwrap() error {
	return e.Err
}

// Report summarises what happened to one chapter.
type Report struct {
	Chapter string
	Stats
}

// Preprocessor strips wrapper objects from the scala blocks of every chapter.
// The zero value is ready to use.
type Preprocessor struct {
	Patterns Patterns
	Diag     io.Writer
	Logger   *slog.Logger

	reports []Report
	render  func(io.Writer, []mdcode.Event) error
}

var _ book.Preprocessor = (*Preprocessor)(nil)

// New returns a preprocessor using the default patterns and writing its
// diagnostics to diag.
func New(diag io.Writer) *Preprocessor {
	return &Preprocessor{Patterns: DefaultPatterns(), Diag: diag}
}

// Name satisfies [book.Preprocessor].
func (p *Preprocessor) Name() string {
	return Name
}

// Reports returns one entry per chapter handled by the last [Preprocessor.Run].
func (p *Preprocessor) Reports() []Report {
	return p.reports
}

func (p *Preprocessor) status(format string, args ...interface{}) {
	diag := p.Diag
	if diag == nil {
		diag = os.Stderr
	}

	fmt.Fprintf(diag, format, args...)
}

func (p *Preprocessor) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}

	return slog.Default()
}

func (p *Preprocessor) patterns() Patterns {
	pats := p.Patterns
	if pats.Start == nil {
		pats.Start = IsWrapperStart
	}

	if pats.End == nil {
		pats.End = IsWrapperEnd
	}

	return pats
}

// Run rewrites every chapter of b. It stops at the first chapter that fails;
// chapters rewritten before it keep their new content.
func (p *Preprocessor) Run(_ *book.PreprocessorContext, b *book.Book) error {
	p.status("Running '%s' preprocessor\n", p.Name())
	p.reports = nil

	return b.ForEachChapter(func(ch *book.Chapter) error {
		p.status("%s: processing chapter '%s'\n", p.Name(), ch.Name)

		content, stats, err := p.RemoveWrappers(ch)
		if err != nil {
			return err
		}

		ch.Content = content
		p.reports = append(p.reports, Report{Chapter: ch.Name, Stats: stats})

		for _, block := range stats.Wrapped {
			p.logger().Debug("stripped wrapper",
				slog.String("chapter", ch.Name),
				slog.String("block", Label(block)),
			)
		}

		return nil
	})
}

// RemoveWrappers returns the chapter content with wrapper scaffolding removed.
// The chapter itself is left untouched.
func (p *Preprocessor) RemoveWrappers(ch *book.Chapter) (string, Stats, error) {
	events := mdcode.Parse([]byte(ch.Content))

	for _, ev := range events {
		if ev.IsCodeStart(Lang) && ev.Block.MetaErr != nil {
			p.logger().Warn("ignoring unreadable code block attributes",
				slog.String("chapter", ch.Name),
				slog.Int("line", ev.Block.StartLine),
				slog.String("error", ev.Block.MetaErr.Error()),
			)
		}
	}

	filtered, stats := Transform(events, p.patterns())

	var buf bytes.Buffer
	buf.Grow(len(ch.Content))

	render := p.render
	if render == nil {
		render = mdcode.Render
	}

	if err := render(&buf, filtered); err != nil {
		return "", stats, &ChapterError{Preprocessor: p.Name(), Chapter: ch.Name, Err: err}
	}

	return buf.String(), stats, nil
}

// Label names a code block by its line range, followed by its title or file
// attribute when one is declared, e.g. "L12-18 Main.scala".
func Label(block *mdcode.Block) string {
	label := fmt.Sprintf("L%d-%d", block.StartLine, block.EndLine)

	for _, key := range []string{"title", "file"} {
		if name := block.Meta.Get(key); name != "" {
			return label + " " + name
		}
	}

	return label
}

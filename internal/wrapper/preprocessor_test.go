package wrapper

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ezerfernandes/scalawrap/internal/book"
	"github.com/ezerfernandes/scalawrap/internal/mdcode"
)

const wrapped = "```scala\nobject wrapper {\n  val x = 1\n}\n```\n"

func testBook() *book.Book {
	nested := &book.Chapter{Name: "Nested", Path: "intro/nested.md", Content: wrapped}

	return &book.Book{Sections: []book.BookItem{
		&book.Chapter{Name: "Intro", Path: "intro.md", Content: "# Intro\n\n" + wrapped, SubItems: []book.BookItem{nested}},
		book.Separator{},
		book.PartTitle("Reference"),
		&book.Chapter{Name: "Plain", Path: "plain.md", Content: "no code here\n"},
		&book.Chapter{Name: "Draft"},
	}}
}

func TestPreprocessor_Run(t *testing.T) {
	var diag bytes.Buffer

	p := New(&diag)
	b := testBook()

	require.NoError(t, p.Run(&book.PreprocessorContext{}, b))

	chapters := b.Chapters()
	require.Equal(t, "# Intro\n\n```scala\n  val x = 1\n```\n", chapters[0].Content)
	require.Equal(t, "```scala\n  val x = 1\n```\n", chapters[1].Content)
	require.Equal(t, "no code here\n", chapters[2].Content)
	require.Equal(t, "", chapters[3].Content)

	require.Equal(t, ""+
		"Running 'scala-wrapper-preprocessor' preprocessor\n"+
		"scala-wrapper-preprocessor: processing chapter 'Intro'\n"+
		"scala-wrapper-preprocessor: processing chapter 'Nested'\n"+
		"scala-wrapper-preprocessor: processing chapter 'Plain'\n"+
		"scala-wrapper-preprocessor: processing chapter 'Draft'\n",
		diag.String())

	reports := p.Reports()
	require.Len(t, reports, 4)
	require.Equal(t, "Intro", reports[0].Chapter)
	require.Equal(t, 1, reports[0].Stripped)
	require.Equal(t, 0, reports[2].Blocks)
}

func TestPreprocessor_StopsAtFirstFailure(t *testing.T) {
	var diag bytes.Buffer

	errBroken := errors.New("broken serializer")
	calls := 0

	p := New(&diag)
	p.render = func(w io.Writer, events []mdcode.Event) error {
		calls++
		if calls == 2 {
			return errBroken
		}

		return mdcode.Render(w, events)
	}

	b := testBook()
	err := p.Run(nil, b)
	require.ErrorIs(t, err, errBroken)

	var cerr *ChapterError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, "Nested", cerr.Chapter)
	require.Equal(t,
		`markdown serialization failed within scala-wrapper-preprocessor (chapter "Nested"): broken serializer`,
		err.Error())

	chapters := b.Chapters()
	require.Equal(t, "# Intro\n\n```scala\n  val x = 1\n```\n", chapters[0].Content)
	require.Equal(t, wrapped, chapters[1].Content)
	require.Equal(t, 2, calls)
	require.NotContains(t, diag.String(), "'Plain'")
}

func TestPreprocessor_ZeroValue(t *testing.T) {
	var diag bytes.Buffer

	p := &Preprocessor{Diag: &diag}
	require.Equal(t, Name, p.Name())

	out, stats, err := p.RemoveWrappers(&book.Chapter{Name: "c", Content: wrapped})
	require.NoError(t, err)
	require.Equal(t, "```scala\n  val x = 1\n```\n", out)
	require.Equal(t, 1, stats.Blocks)
	require.Equal(t, 1, stats.Stripped)
	require.Equal(t, 2, stats.Suppressed)
	require.Len(t, stats.Wrapped, 1)
	require.Equal(t, "L1-5", Label(stats.Wrapped[0]))
	require.Empty(t, diag.String())
}

func TestPreprocessor_RemoveWrappersLeavesChapter(t *testing.T) {
	ch := &book.Chapter{Name: "c", Content: wrapped}

	_, _, err := New(io.Discard).RemoveWrappers(ch)
	require.NoError(t, err)
	require.Equal(t, wrapped, ch.Content)
}

func TestLabel(t *testing.T) {
	tests := []struct {
		block *mdcode.Block
		want  string
	}{
		{&mdcode.Block{StartLine: 3, EndLine: 7}, "L3-7"},
		{&mdcode.Block{StartLine: 3, EndLine: 7, Meta: mdcode.Meta{"title": "Main.scala"}}, "L3-7 Main.scala"},
		{&mdcode.Block{StartLine: 1, EndLine: 4, Meta: mdcode.Meta{"file": "a.scala", "editable": true}}, "L1-4 a.scala"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, Label(tt.block))
	}
}

func TestPreprocessor_LogsBlocks(t *testing.T) {
	var logs bytes.Buffer

	p := New(io.Discard)
	p.Logger = slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	b := &book.Book{Sections: []book.BookItem{&book.Chapter{
		Name: "Attrs",
		Content: "# A\n\n```scala,editable title=Main.scala\nobject wrapper {\n  run()\n}\n```\n\n" +
			"```scala {\"title\": }\nval x = 1\n```\n",
	}}}

	require.NoError(t, p.Run(nil, b))

	out := logs.String()
	require.Contains(t, out, `msg="stripped wrapper" chapter=Attrs block="L3-7 Main.scala"`)
	require.Contains(t, out, `msg="ignoring unreadable code block attributes" chapter=Attrs line=9`)
	require.Equal(t, 2, strings.Count(out, "\n"))
}

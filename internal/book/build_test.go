package book

import (
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/liamg/memoryfs"
	"github.com/stretchr/testify/require"
)

type upperPreprocessor struct {
	err  error
	runs *[]string
}

func (p upperPreprocessor) Name() string { return "upper" }

func (p upperPreprocessor) Run(ctx *PreprocessorContext, b *Book) error {
	*p.runs = append(*p.runs, ctx.Renderer)

	if p.err != nil {
		return p.err
	}

	return b.ForEachChapter(func(ch *Chapter) error {
		ch.Content = strings.ToUpper(ch.Content)

		return nil
	})
}

func TestBuild(t *testing.T) {
	in := writeFiles(t, map[string]string{
		"book.toml":       "[book]\ntitle = \"Guide\"\n",
		"src/SUMMARY.md":  "- [Intro](intro.md)\n- [Part](part/one.md)\n- [Draft]()\n",
		"src/intro.md":    "intro text\n",
		"src/part/one.md": "| a | b |\n|---|---|\n| 1 | 2 |\n",
	})

	md, err := LoadFS(in)
	require.NoError(t, err)

	var runs []string

	md.WithPreprocessor(upperPreprocessor{runs: &runs})

	out := memoryfs.New()
	require.NoError(t, md.Build(out))
	require.Equal(t, []string{RendererHTML}, runs)

	intro, err := fs.ReadFile(out, "book/intro.html")
	require.NoError(t, err)
	require.Contains(t, string(intro), "<title>Intro - Guide</title>")
	require.Contains(t, string(intro), "<p>INTRO TEXT</p>")

	index, err := fs.ReadFile(out, "book/index.html")
	require.NoError(t, err)
	require.Equal(t, intro, index)

	part, err := fs.ReadFile(out, "book/part/one.html")
	require.NoError(t, err)
	require.Contains(t, string(part), "<table>")
}

func TestBuild_PreprocessorFailureStopsBuild(t *testing.T) {
	in := writeFiles(t, map[string]string{
		"book.toml":      "[book]\n",
		"src/SUMMARY.md": "- [Intro](intro.md)\n",
		"src/intro.md":   "intro\n",
	})

	md, err := LoadFS(in)
	require.NoError(t, err)

	errBoom := errors.New("boom")

	var runs []string

	md.WithPreprocessor(upperPreprocessor{err: errBoom, runs: &runs}).
		WithPreprocessor(upperPreprocessor{runs: &runs})

	out := memoryfs.New()
	require.ErrorIs(t, md.Build(out), errBoom)
	require.Len(t, runs, 1)

	_, err = fs.ReadFile(out, "book/intro.html")
	require.Error(t, err)
}

func TestHTMLPath(t *testing.T) {
	require.Equal(t, "intro.html", htmlPath("intro.md"))
	require.Equal(t, "a/b.html", htmlPath("a/b.md"))
	require.Equal(t, "notes.html", htmlPath("notes"))
}

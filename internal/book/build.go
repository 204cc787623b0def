package book

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// RendererHTML is the only renderer the builder ships with.
const RendererHTML = "html"

// PreprocessorContext is handed to every preprocessor run.
type PreprocessorContext struct {
	Root     string
	Config   *Config
	Renderer string
}

// Preprocessor rewrites the book in place before rendering. An error aborts
// the build.
type Preprocessor interface {
	Name() string
	Run(ctx *PreprocessorContext, book *Book) error
}

// OutputFS is the writable side of a build.
type OutputFS interface {
	MkdirAll(name string, perm fs.FileMode) error
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

// DirFS returns an [OutputFS] rooted at the directory dir.
func DirFS(dir string) OutputFS {
	return dirFS(dir)
}

type dirFS string

func (d dirFS) join(name string) string {
	return filepath.Join(string(d), filepath.FromSlash(name))
}

func (d dirFS) MkdirAll(name string, perm fs.FileMode) error {
	return os.MkdirAll(d.join(name), perm)
}

func (d dirFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(d.join(name), data, perm)
}

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// WithPreprocessor registers p. Preprocessors run in registration order.
func (md *MDBook) WithPreprocessor(p Preprocessor) *MDBook {
	md.preprocessors = append(md.preprocessors, p)

	return md
}

func (md *MDBook) logger() *slog.Logger {
	if md.Logger != nil {
		return md.Logger
	}

	return slog.Default()
}

// Preprocess runs the registered preprocessors over the book. The first
// failure is returned unchanged and later preprocessors do not run.
func (md *MDBook) Preprocess() error {
	ctx := &PreprocessorContext{Root: md.Root, Config: md.Config, Renderer: RendererHTML}

	for _, p := range md.preprocessors {
		md.logger().Debug("running preprocessor", slog.String("preprocessor", p.Name()))

		if err := p.Run(ctx, md.Book); err != nil {
			return err
		}
	}

	return nil
}

// Build preprocesses the book and writes one HTML page per chapter below the
// configured build directory of out. The first chapter is also written as
// index.html.
func (md *MDBook) Build(out OutputFS) error {
	if err := md.Preprocess(); err != nil {
		return err
	}

	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	first := true

	return md.Book.ForEachChapter(func(ch *Chapter) error {
		if ch.IsDraft() {
			return nil
		}

		page, err := md.renderPage(engine, ch)
		if err != nil {
			return err
		}

		name := path.Join(md.Config.Build.BuildDir, htmlPath(ch.Path))
		if err := writeFile(out, name, page); err != nil {
			return err
		}

		md.logger().Debug("rendered chapter", slog.String("chapter", ch.Name), slog.String("path", name))

		if first {
			first = false

			return writeFile(out, path.Join(md.Config.Build.BuildDir, "index.html"), page)
		}

		return nil
	})
}

func htmlPath(chapterPath string) string {
	return strings.TrimSuffix(chapterPath, path.Ext(chapterPath)) + ".html"
}

func writeFile(out OutputFS, name string, data []byte) error {
	if err := out.MkdirAll(path.Dir(name), dirMode); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", name, err)
	}

	if err := out.WriteFile(name, data, fileMode); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<main>
{{.Body}}
</main>
</body>
</html>
`))

type pageData struct {
	Lang  string
	Title string
	Body  template.HTML
}

func (md *MDBook) renderPage(engine goldmark.Markdown, ch *Chapter) ([]byte, error) {
	var body bytes.Buffer

	if err := engine.Convert([]byte(ch.Content), &body); err != nil {
		return nil, fmt.Errorf("render chapter %q: %w", ch.Name, err)
	}

	title := ch.Name
	if md.Config.Book.Title != "" {
		title += " - " + md.Config.Book.Title
	}

	var page bytes.Buffer

	err := pageTemplate.Execute(&page, pageData{
		Lang:  md.Config.Book.Language,
		Title: title,
		Body:  template.HTML(body.String()), //nolint:gosec
	})
	if err != nil {
		return nil, fmt.Errorf("render chapter %q: %w", ch.Name, err)
	}

	return page.Bytes(), nil
}

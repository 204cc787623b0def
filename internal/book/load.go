package book

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
)

// MDBook is a loaded book together with its configuration and the
// preprocessors that run before rendering.
type MDBook struct {
	Root   string
	Config *Config
	Book   *Book
	Logger *slog.Logger

	preprocessors []Preprocessor
}

// Load reads the book rooted at the directory root.
func Load(root string) (*MDBook, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("book root: %w", err)
	}

	md, err := LoadFS(os.DirFS(root))
	if err != nil {
		return nil, err
	}

	md.Root = root

	return md, nil
}

// LoadFS reads book.toml, the summary and every chapter file from fsys.
func LoadFS(fsys fs.FS) (*MDBook, error) {
	cfg, err := LoadConfig(fsys)
	if err != nil {
		return nil, err
	}

	summaryPath := path.Join(cfg.Book.Src, SummaryFile)

	raw, err := fs.ReadFile(fsys, summaryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", summaryPath, err)
	}

	summary, err := ParseSummary(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", summaryPath, err)
	}

	l := &loader{fsys: fsys, cfg: cfg}

	sections, err := l.items(summary.Items, nil)
	if err != nil {
		return nil, err
	}

	if cfg.Book.Title == "" {
		cfg.Book.Title = summary.Title
	}

	return &MDBook{
		Config: cfg,
		Book:   &Book{Sections: sections},
	}, nil
}

type loader struct {
	fsys fs.FS
	cfg  *Config
}

func (l *loader) items(summary []SummaryItem, parents []string) ([]BookItem, error) {
	items := make([]BookItem, 0, len(summary))

	for _, si := range summary {
		switch si.Kind {
		case ItemSeparator:
			items = append(items, Separator{})
		case ItemPartTitle:
			items = append(items, PartTitle(si.Name))
		case ItemLink:
			ch, err := l.chapter(si, parents)
			if err != nil {
				return nil, err
			}

			items = append(items, ch)
		}
	}

	return items, nil
}

func (l *loader) chapter(si SummaryItem, parents []string) (*Chapter, error) {
	ch := &Chapter{
		Name:        si.Name,
		Number:      si.Number,
		Path:        si.Location,
		ParentNames: append([]string(nil), parents...),
	}

	if !ch.IsDraft() {
		content, err := l.content(si)
		if err != nil {
			return nil, err
		}

		ch.Content = content
	}

	sub, err := l.items(si.Nested, append(ch.ParentNames, ch.Name))
	if err != nil {
		return nil, err
	}

	ch.SubItems = sub

	return ch, nil
}

func (l *loader) content(si SummaryItem) (string, error) {
	name := path.Join(l.cfg.Book.Src, si.Location)

	data, err := fs.ReadFile(l.fsys, name)
	if errors.Is(err, fs.ErrNotExist) && l.cfg.Build.CreateMissing {
		return "# " + si.Name + "\n", nil
	}

	if err != nil {
		return "", fmt.Errorf("chapter %q: %w", si.Name, err)
	}

	return string(data), nil
}

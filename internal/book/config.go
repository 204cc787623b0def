package book

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ConfigFile is the name of the book configuration file at the book root.
const ConfigFile = "book.toml"

// Config mirrors the parts of book.toml the builder understands. Unknown
// tables, such as per-preprocessor settings, are ignored.
type Config struct {
	Book  Metadata    `toml:"book"`
	Build BuildConfig `toml:"build"`
}

// Metadata holds the [book] table.
type Metadata struct {
	Title       string   `toml:"title"`
	Authors     []string `toml:"authors"`
	Description string   `toml:"description"`
	Language    string   `toml:"language"`
	Src         string   `toml:"src"`
}

// BuildConfig holds the [build] table.
type BuildConfig struct {
	BuildDir      string `toml:"build-dir"`
	CreateMissing bool   `toml:"create-missing"`
}

// DefaultConfig returns the configuration used when book.toml is absent.
func DefaultConfig() *Config {
	return &Config{
		Book: Metadata{
			Language: "en",
			Src:      "src",
		},
		Build: BuildConfig{
			BuildDir: "book",
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Book.Validate(); err != nil {
		return fmt.Errorf("book: %w", err)
	}

	if err := c.Build.Validate(); err != nil {
		return fmt.Errorf("build: %w", err)
	}

	return nil
}

// Validate validates the [book] table.
func (m *Metadata) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Src, validation.Required, validation.By(relativePath)),
	)
}

// Validate validates the [build] table.
func (b *BuildConfig) Validate() error {
	return validation.ValidateStruct(b,
		validation.Field(&b.BuildDir, validation.Required, validation.By(relativePath)),
	)
}

var errNotRelative = errors.New("must be a relative path inside the book")

func relativePath(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}

	if path.IsAbs(s) || !fs.ValidPath(path.Clean(s)) {
		return errNotRelative
	}

	return nil
}

// LoadConfig reads book.toml from the root of fsys, falling back to
// [DefaultConfig] when the file does not exist.
func LoadConfig(fsys fs.FS) (*Config, error) {
	cfg := DefaultConfig()

	data, err := fs.ReadFile(fsys, ConfigFile)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFile, err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFile, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

package internal

import (
	"log/slog"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/himekawa/kodama/internal/parser"
	"github.com/himekawa/kodama/internal/tags"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Site    SiteConfig        `yaml:"site"`
	Source  SourceConfig      `yaml:"source"`
	Output  OutputConfig      `yaml:"output"`
	Excerpt ExcerptConfig     `yaml:"excerpt"`
	Tags    TagsConfig        `yaml:"tags"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Site.Validate(); err != nil {
		return err
	}
	if err := c.Source.Validate(); err != nil {
		return err
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	if err := c.Excerpt.Validate(); err != nil {
		return err
	}
	return c.Tags.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// SiteConfig holds site-wide presentation settings.
type SiteConfig struct {
	// Title appears in the header, footer, and page titles.
	Title string `yaml:"title"`
	// BaseURL prefixes search-index URLs when the site is served from a
	// subpath (e.g. "/notes" on GitHub Pages).
	BaseURL string `yaml:"base_url"`
	// Lang is the HTML lang attribute.
	Lang string `yaml:"lang"`
}

// Validate validates the site configuration.
func (c *SiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Title, validation.Required),
	)
}

// SourceConfig holds the path to the Markdown corpus directory.
type SourceConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the source configuration.
func (c *SourceConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// OutputConfig holds the site output directory.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the output configuration.
func (c *OutputConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// ExcerptConfig bounds note summaries.
type ExcerptConfig struct {
	MaxLength int `yaml:"max_length"`
}

// Validate validates the excerpt configuration.
func (c *ExcerptConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MaxLength, validation.Required, validation.Min(10)),
	)
}

// TagsConfig controls tag identifier derivation.
type TagsConfig struct {
	// AllowChars is a regexp character-class fragment of extra runes kept
	// in tag identifiers, alongside ASCII alphanumerics, "-", "_", ".".
	// Set it to the script of the corpus locale.
	AllowChars string `yaml:"allow_chars"`
}

// Validate checks that AllowChars compiles inside a character class.
func (c *TagsConfig) Validate() error {
	if c.AllowChars == "" {
		return nil
	}
	_, err := regexp.Compile(`[^0-9A-Za-z\-_.` + c.AllowChars + `]+`)
	return err
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Site: SiteConfig{
			Title: "My Knowledge Base",
			Lang:  "ja",
		},
		Source: SourceConfig{
			Path: "./notes",
		},
		Output: OutputConfig{
			Path: "./public",
		},
		Excerpt: ExcerptConfig{
			MaxLength: parser.DefaultExcerptLength,
		},
		Tags: TagsConfig{
			AllowChars: tags.DefaultAllowChars,
		},
	}
}

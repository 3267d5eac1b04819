package internal

import "github.com/himekawa/kodama/internal/render"

// Option is a functional option for configuring the build.
type Option func(*application)

type application struct {
	config   *Config
	renderer render.Renderer
}

// WithConfig sets the build configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithRenderer overrides the default goldmark Markdown renderer.
func WithRenderer(r render.Renderer) Option {
	return func(a *application) {
		a.renderer = r
	}
}

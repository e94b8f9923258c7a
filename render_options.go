package cardsmith

import "github.com/rs/zerolog"

// RenderOption configures an Engine.
type RenderOption func(*renderConfig)

type renderConfig struct {
	logger zerolog.Logger
	theme  Theme
	layout LayoutConfig
	title  string
}

func defaultRenderConfig() renderConfig {
	return renderConfig{
		logger: zerolog.Nop(),
		theme:  DefaultTheme(),
		layout: DefaultLayoutConfig(DefaultPixelsPerInch),
	}
}

// WithLogger sets the logger used for recoverable markup problems.
func WithLogger(logger zerolog.Logger) RenderOption {
	return func(cfg *renderConfig) {
		cfg.logger = logger
	}
}

// WithTheme selects the palette. A nil theme keeps the current one.
func WithTheme(theme Theme) RenderOption {
	return func(cfg *renderConfig) {
		if theme != nil {
			cfg.theme = theme
		}
	}
}

// WithLayoutConfig overrides layout constants. Zero fields keep their
// defaults; a different PixelsPerInch re-derives every default first.
func WithLayoutConfig(layout LayoutConfig) RenderOption {
	return func(cfg *renderConfig) {
		applyLayoutConfig(&cfg.layout, layout)
	}
}

// WithTitleSubstitution replaces <THIS> with name instead of the card title.
func WithTitleSubstitution(name string) RenderOption {
	return func(cfg *renderConfig) {
		cfg.title = name
	}
}

// Package raster renders cards to PNG images using anti-aliased vector
// fills and OpenType fonts.
package raster

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"pkt.systems/cardsmith"
	"pkt.systems/cardsmith/icons"
)

// Config holds raster rendering settings.
type Config struct {
	PixelsPerInch int
	Theme         cardsmith.Theme
	Icons         *icons.Catalog
	Fonts         FontSet
	// Logger receives markup warnings. Nil silences them.
	Logger *zerolog.Logger
}

// DefaultConfig returns a baseline configuration.
func DefaultConfig() Config {
	return Config{
		PixelsPerInch: cardsmith.DefaultPixelsPerInch,
		Theme:         cardsmith.DefaultTheme(),
		Fonts:         GoFonts(),
	}
}

func applyConfig(dst *Config, src Config) {
	if src.PixelsPerInch > 0 {
		dst.PixelsPerInch = src.PixelsPerInch
	}
	if src.Theme != nil {
		dst.Theme = src.Theme
	}
	if src.Icons != nil {
		dst.Icons = src.Icons
	}
	if len(src.Fonts.Regular) > 0 {
		dst.Fonts = src.Fonts
	}
	if src.Logger != nil {
		dst.Logger = src.Logger
	}
}

// RenderRequest describes a single-card PNG render.
type RenderRequest struct {
	Card   cardsmith.CardDescription
	Writer io.Writer
	Config Config
}

// Render draws req.Card and writes it to req.Writer as PNG.
func Render(req RenderRequest) error {
	if req.Writer == nil {
		return errors.New("raster render: writer is nil")
	}
	img, err := RenderImage(req.Card, req.Config)
	if err != nil {
		return err
	}
	if err := imaging.Encode(req.Writer, img, imaging.PNG); err != nil {
		return fmt.Errorf("raster render: encode: %w", err)
	}
	return nil
}

// RenderImage draws card onto a new image sized by the card layout.
func RenderImage(card cardsmith.CardDescription, cfg Config) (*image.RGBA, error) {
	session, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	defer session.Close()
	layout := cardsmith.DefaultCardLayout(session.config.PixelsPerInch)
	img := image.NewRGBA(layout.Bounds())
	canvas := NewCanvas(img, session.faces, session.config.Icons, session.logger)
	if err := session.engine.RenderCard(canvas, card, layout); err != nil {
		return nil, fmt.Errorf("raster render: %w", err)
	}
	return img, nil
}

// Session bundles the faces, metrics and engine for one goroutine.
type Session struct {
	config Config
	faces  *Faces
	engine *cardsmith.Engine
	logger zerolog.Logger
}

// NewSession prepares fonts and an engine for cfg merged over DefaultConfig.
func NewSession(cfg Config) (*Session, error) {
	merged := DefaultConfig()
	applyConfig(&merged, cfg)
	layout := cardsmith.DefaultLayoutConfig(merged.PixelsPerInch)
	faces, err := NewFaces(layout, merged.Fonts)
	if err != nil {
		return nil, err
	}
	logger := zerolog.Nop()
	if merged.Logger != nil {
		logger = *merged.Logger
	}
	if merged.Icons == nil {
		merged.Icons = icons.Default()
	}
	engine := cardsmith.NewEngine(NewMetrics(faces),
		cardsmith.WithLayoutConfig(layout),
		cardsmith.WithTheme(merged.Theme),
		cardsmith.WithLogger(logger),
	)
	return &Session{config: merged, faces: faces, engine: engine, logger: logger}, nil
}

// Engine returns the session's layout engine.
func (s *Session) Engine() *cardsmith.Engine { return s.engine }

// Close releases the session's fonts.
func (s *Session) Close() error { return s.faces.Close() }

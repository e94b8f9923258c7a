package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pkt.systems/cardsmith"
	"pkt.systems/cardsmith/raster"
)

var errUnknownTheme = errors.New("unknown theme")

type cardRequest struct {
	PrimaryElement   string `json:"primary_element" binding:"required,oneof=F W D L N G"`
	SecondaryElement string `json:"secondary_element" binding:"omitempty,oneof=F W D L N G"`
	CardType         string `json:"card_type" binding:"required,oneof=Attachment Spell Memory Unit Leader Token"`
	Title            string `json:"title" binding:"required,max=120"`
	Cost             string `json:"cost" binding:"max=8"`
	Attributes       string `json:"attributes" binding:"max=120"`
	BodyText         string `json:"body_text" binding:"max=4000"`
	Strength         string `json:"strength" binding:"max=8"`
	Health           string `json:"health" binding:"max=8"`
	FlavorText       string `json:"flavor_text" binding:"max=1000"`
	Theme            string `json:"theme"`
	PixelsPerInch    int    `json:"ppi" binding:"omitempty,min=10,max=1200"`
}

func (req cardRequest) card() cardsmith.CardDescription {
	return cardsmith.CardDescription{
		PrimaryElement:   cardsmith.Element(req.PrimaryElement),
		SecondaryElement: cardsmith.Element(req.SecondaryElement),
		CardType:         cardsmith.CardType(req.CardType),
		Title:            req.Title,
		Cost:             req.Cost,
		Attributes:       req.Attributes,
		BodyText:         req.BodyText,
		Strength:         req.Strength,
		Health:           req.Health,
		FlavorText:       req.FlavorText,
	}
}

func (service *Service) rasterConfig(req cardRequest) (raster.Config, error) {
	name := req.Theme
	if name == "" {
		name = service.config.Theme
	}
	theme, ok := cardsmith.ThemeByName(name)
	if !ok {
		return raster.Config{}, fmt.Errorf("%w: %q", errUnknownTheme, name)
	}
	ppi := req.PixelsPerInch
	if ppi == 0 {
		ppi = service.config.PixelsPerInch
	}
	return raster.Config{
		PixelsPerInch: ppi,
		Theme:         theme,
		Icons:         service.icons,
		Logger:        &service.logger,
	}, nil
}

// bindCard binds and validates the request body, writing a 400 on failure.
func (service *Service) bindCard(ctx *gin.Context) (cardsmith.CardDescription, raster.Config, bool) {
	var req cardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, NewErrorResponse(err))
		return cardsmith.CardDescription{}, raster.Config{}, false
	}
	card := req.card()
	if err := card.Validate(); err != nil {
		ctx.JSON(statusFor(err), NewErrorResponse(err))
		return card, raster.Config{}, false
	}
	cfg, err := service.rasterConfig(req)
	if err != nil {
		ctx.JSON(statusFor(err), NewErrorResponse(err))
		return card, cfg, false
	}
	return card, cfg, true
}

// withTimeout runs fn on its own goroutine and gives up after the
// configured render timeout.
func (service *Service) withTimeout(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, service.config.RenderTimeout)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- fn() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ErrRenderTimeout
	}
}

func (service *Service) renderCard(ctx *gin.Context) {
	card, cfg, ok := service.bindCard(ctx)
	if !ok {
		return
	}
	var buf bytes.Buffer
	err := service.withTimeout(ctx.Request.Context(), func() error {
		return raster.Render(raster.RenderRequest{Card: card, Writer: &buf, Config: cfg})
	})
	if err != nil {
		ctx.JSON(statusFor(err), NewErrorResponse(err))
		return
	}
	ctx.Data(http.StatusOK, "image/png", buf.Bytes())
}

type cursorResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type rowResponse struct {
	Y      int      `json:"y"`
	Tokens []string `json:"tokens"`
}

type frameResponse struct {
	Label  string `json:"label"`
	Top    int    `json:"top"`
	Bottom int    `json:"bottom"`
}

type layoutResponse struct {
	Box    [4]int          `json:"box"`
	Rows   []rowResponse   `json:"rows"`
	Frames []frameResponse `json:"frames"`
	End    cursorResponse  `json:"end"`
}

func newLayoutResponse(layout *cardsmith.Layout) layoutResponse {
	resp := layoutResponse{
		Box:    [4]int{layout.Box.Min.X, layout.Box.Min.Y, layout.Box.Max.X, layout.Box.Max.Y},
		Rows:   make([]rowResponse, len(layout.Rows)),
		Frames: make([]frameResponse, 0, len(layout.Frames)),
		End:    cursorResponse{X: layout.End.X, Y: layout.End.Y},
	}
	for i, row := range layout.RowTokens() {
		tokens := make([]string, 0, len(row))
		for _, p := range row {
			tokens = append(tokens, p.Token.Raw)
		}
		resp.Rows[i] = rowResponse{Y: layout.Rows[i], Tokens: tokens}
	}
	for _, frame := range layout.Frames {
		resp.Frames = append(resp.Frames, frameResponse{Label: frame.Label, Top: frame.Top, Bottom: frame.Bottom})
	}
	return resp
}

func (service *Service) layoutCard(ctx *gin.Context) {
	card, cfg, ok := service.bindCard(ctx)
	if !ok {
		return
	}
	var layout *cardsmith.Layout
	err := service.withTimeout(ctx.Request.Context(), func() error {
		session, err := raster.NewSession(cfg)
		if err != nil {
			return err
		}
		defer session.Close()
		engine := session.Engine()
		box := cardsmith.DefaultCardLayout(cfg.PixelsPerInch).BodyBackground().Inset(engine.Config().BodyMargin)
		layout, err = engine.Layout(card, card.BodyText, box)
		return err
	})
	if err != nil {
		ctx.JSON(statusFor(err), NewErrorResponse(err))
		return
	}
	ctx.JSON(http.StatusOK, newLayoutResponse(layout))
}

type themesResponse struct {
	Default string   `json:"default"`
	Themes  []string `json:"themes"`
}

func (service *Service) listThemes(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, themesResponse{
		Default: service.config.Theme,
		Themes:  cardsmith.AvailableThemes(),
	})
}

package pdf

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"

	"pkt.systems/cardsmith"
	"pkt.systems/cardsmith/icons"
)

// RenderRequest contains inputs for PDF rendering.
type RenderRequest struct {
	Cards  []cardsmith.CardDescription
	Writer io.Writer
	Theme  cardsmith.Theme
	Icons  *icons.Catalog
	Config Config
	// Logger receives markup warnings. Nil silences them.
	Logger *zerolog.Logger
}

// grid is the card arrangement on one page.
type grid struct {
	cols, rows       int
	cardW, cardH     float64
	originX, originY float64
	gutter           float64
}

func (g grid) perPage() int { return g.cols * g.rows }

func (g grid) cell(i int) (x, y float64) {
	col, row := i%g.cols, i/g.cols
	return g.originX + float64(col)*(g.cardW+g.gutter), g.originY + float64(row)*(g.cardH+g.gutter)
}

// Render lays cards out on printable sheets, left to right and top to
// bottom, centred on each page.
func Render(req RenderRequest) error {
	if req.Writer == nil {
		return fmt.Errorf("pdf render: writer is nil")
	}
	if len(req.Cards) == 0 {
		return fmt.Errorf("pdf render: no cards")
	}
	cfg := DefaultConfig()
	applyConfig(&cfg, req.Config)
	hasBytes := len(cfg.RegularFontBytes) > 0 || len(cfg.BoldFontBytes) > 0 || len(cfg.ItalicFontBytes) > 0
	if hasBytes && (len(cfg.RegularFontBytes) == 0 || len(cfg.BoldFontBytes) == 0 || len(cfg.ItalicFontBytes) == 0) {
		return fmt.Errorf("pdf render: missing embedded font bytes")
	}
	if !hasBytes {
		cfg.RegularFontBytes, cfg.BoldFontBytes, cfg.ItalicFontBytes = EmbeddedGoFonts()
	}
	theme := req.Theme
	if theme == nil {
		theme = cardsmith.DefaultTheme()
	}
	if cfg.Boring {
		theme = cardsmith.BoringTheme()
	}
	catalog := req.Icons
	if catalog == nil {
		catalog = icons.Default()
	}
	logger := zerolog.Nop()
	if req.Logger != nil {
		logger = *req.Logger
	}

	pdf := gofpdf.New("P", "pt", cfg.PageSize, "")
	pdf.SetCreationDate(time.Unix(0, 0).UTC())
	pdf.SetMargins(cfg.Margin, cfg.Margin, cfg.Margin)
	pdf.SetAutoPageBreak(false, cfg.Margin)
	pdf.AddUTF8FontFromBytes(cfg.FontFamily, "", cfg.RegularFontBytes)
	pdf.AddUTF8FontFromBytes(cfg.FontFamily, "B", cfg.BoldFontBytes)
	pdf.AddUTF8FontFromBytes(cfg.FontFamily, "I", cfg.ItalicFontBytes)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("pdf render: font setup failed: %w", err)
	}

	cardLayout := cardsmith.DefaultCardLayout(cfg.PixelsPerInch)
	s := &sheet{
		pdf:        pdf,
		family:     cfg.FontFamily,
		layout:     cardsmith.DefaultLayoutConfig(cfg.PixelsPerInch),
		scale:      72 / float64(cfg.PixelsPerInch),
		icons:      catalog,
		registered: make(map[string]bool),
		log:        logger,
	}
	g, err := pageGrid(pdf, cfg, float64(cardLayout.Width)*s.scale, float64(cardLayout.Height)*s.scale)
	if err != nil {
		return err
	}
	engine := cardsmith.NewEngine(Metrics{sheet: s},
		cardsmith.WithLayoutConfig(s.layout),
		cardsmith.WithTheme(theme),
		cardsmith.WithLogger(logger),
	)

	cutLayer := -1
	if cfg.CutMarks {
		cutLayer = pdf.AddLayer("cut-marks", true)
		if cfg.OpenLayerPane {
			pdf.OpenLayerPane()
		}
	}
	for i, card := range req.Cards {
		slot := i % g.perPage()
		if slot == 0 {
			pdf.AddPage()
		}
		x, y := g.cell(slot)
		canvas := &Canvas{sheet: s, ox: x, oy: y}
		if err := engine.RenderCard(canvas, card, cardLayout); err != nil {
			return fmt.Errorf("pdf render: card %d: %w", i, err)
		}
		if cutLayer >= 0 {
			pdf.BeginLayer(cutLayer)
			drawCutMarks(pdf, x, y, g.cardW, g.cardH, cfg.CutMarkLength)
			pdf.EndLayer()
		}
	}
	if err := pdf.Output(req.Writer); err != nil {
		return fmt.Errorf("pdf render: output: %w", err)
	}
	return nil
}

func pageGrid(pdf *gofpdf.Fpdf, cfg Config, cardW, cardH float64) (grid, error) {
	pageW, pageH := pdf.GetPageSize()
	usableW, usableH := pageW-2*cfg.Margin, pageH-2*cfg.Margin
	cols := int((usableW + cfg.Gutter) / (cardW + cfg.Gutter))
	rows := int((usableH + cfg.Gutter) / (cardH + cfg.Gutter))
	if cols < 1 || rows < 1 {
		return grid{}, fmt.Errorf("pdf render: page %s too small for a %.0fx%.0fpt card", cfg.PageSize, cardW, cardH)
	}
	usedW := float64(cols)*cardW + float64(cols-1)*cfg.Gutter
	usedH := float64(rows)*cardH + float64(rows-1)*cfg.Gutter
	return grid{
		cols:    cols,
		rows:    rows,
		cardW:   cardW,
		cardH:   cardH,
		originX: (pageW - usedW) / 2,
		originY: (pageH - usedH) / 2,
		gutter:  cfg.Gutter,
	}, nil
}

// drawCutMarks draws short hairlines outside each corner of a card.
func drawCutMarks(pdf *gofpdf.Fpdf, x, y, w, h, length float64) {
	const gap = 2.0
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.25)
	for _, cx := range []float64{x, x + w} {
		pdf.Line(cx, y-gap-length, cx, y-gap)
		pdf.Line(cx, y+h+gap, cx, y+h+gap+length)
	}
	for _, cy := range []float64{y, y + h} {
		pdf.Line(x-gap-length, cy, x-gap, cy)
		pdf.Line(x+w+gap, cy, x+w+gap+length, cy)
	}
}

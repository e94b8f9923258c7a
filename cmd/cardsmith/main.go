package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"pkt.systems/cardsmith"
	"pkt.systems/cardsmith/icons"
	"pkt.systems/cardsmith/internal/config"
	"pkt.systems/cardsmith/internal/deck"
	"pkt.systems/cardsmith/internal/server"
	"pkt.systems/cardsmith/pdf"
	"pkt.systems/cardsmith/preview"
	"pkt.systems/cardsmith/raster"
	"pkt.systems/version"
)

func init() {
	version.SetDefaultModule("pkt.systems/cardsmith")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	pdfMode     bool
	preview     bool
	serve       bool
	boring      bool
	listThemes  bool
	showVersion bool
	configDir   string
	outputSet   bool
}

func newFlagSet(stderr io.Writer, opts *options) *pflag.FlagSet {
	pdfDefaults := pdf.DefaultConfig()
	flags := pflag.NewFlagSet("cardsmith", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringP("output", "o", "out", "Output directory for PNG cards, or .pdf file")
	flags.StringP("theme", "t", "default", "Theme name")
	flags.Int("ppi", cardsmith.DefaultPixelsPerInch, "Pixels per inch for PNG output")
	flags.String("icons", "", "Directory of PNG icons (missing icons fall back to generated badges)")
	flags.Int("workers", 4, "Cards rendered concurrently")
	flags.String("addr", "127.0.0.1:8080", "Listen address for --serve")
	flags.String("pdf-page-size", pdfDefaults.PageSize, "PDF page size")
	flags.Bool("pdf-cut-marks", false, "Draw cut marks on a separate PDF layer")
	flags.BoolVar(&opts.pdfMode, "pdf", false, "Generate a PDF sheet instead of PNG files")
	flags.BoolVar(&opts.preview, "preview", false, "Print a terminal preview of each card's body text")
	flags.BoolVar(&opts.serve, "serve", false, "Run the HTTP render server")
	flags.BoolVarP(&opts.boring, "boring", "b", false, "Use the monochrome theme and no terminal colour")
	flags.BoolVar(&opts.listThemes, "list-themes", false, "List available themes")
	flags.BoolVar(&opts.showVersion, "version", false, "Print version and exit")
	flags.StringVar(&opts.configDir, "config", ".", "Directory containing cardsmith.env")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: cardsmith [flags] [inputs...]\n")
		fmt.Fprintln(stderr, "\nInputs are JSON card files, file:// or http(s):// URLs. If none is given, cards are read from stdin.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}
	return flags
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts options
	flags := newFlagSet(stderr, &opts)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return 0
	}
	if opts.listThemes {
		printThemes(stdout)
		return 0
	}
	opts.outputSet = flags.Changed("output")

	cfg, err := config.LoadConfig(normalizePath(opts.configDir), flags)
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 2
	}
	logger := newLogger(cfg, stderr)

	catalog, err := loadIcons(cfg.IconDir)
	if err != nil {
		logger.Error().Err(err).Str("dir", cfg.IconDir).Msg("load icons")
		return 1
	}

	if opts.serve {
		if err := server.NewService(cfg, catalog, logger).Run(ctx); err != nil {
			logger.Error().Err(err).Msg("http server")
			return 1
		}
		return 0
	}

	theme, ok := cardsmith.ThemeByName(cfg.Theme)
	if !ok {
		fmt.Fprintf(stderr, "unknown theme %q\n\n", cfg.Theme)
		printThemes(stderr)
		return 2
	}
	if opts.boring {
		theme = cardsmith.BoringTheme()
	}

	cards, err := loadCards(ctx, flags.Args(), stdin, http.DefaultClient)
	if err != nil {
		logger.Error().Err(err).Msg("load cards")
		return 1
	}
	logger.Debug().Int("cards", len(cards)).Msg("deck loaded")

	if !opts.pdfMode && strings.HasSuffix(strings.ToLower(cfg.OutputDir), ".pdf") {
		fmt.Fprintf(stderr, "warning: output %q ends with .pdf; enabling --pdf\n", cfg.OutputDir)
		opts.pdfMode = true
	}

	switch {
	case opts.preview:
		err = renderPreview(stdout, cards, cfg, theme, opts.boring, logger)
	case opts.pdfMode:
		err = renderPDF(stdout, cards, cfg, opts, theme, catalog, logger)
	default:
		var paths []string
		paths, err = deck.RenderAll(ctx, deck.RenderAllRequest{
			Cards:   cards,
			Dir:     normalizePath(cfg.OutputDir),
			Workers: cfg.Workers,
			Config: raster.Config{
				PixelsPerInch: cfg.PixelsPerInch,
				Theme:         theme,
				Icons:         catalog,
				Logger:        &logger,
			},
			Logger: logger,
		})
		for _, path := range paths {
			fmt.Fprintln(stdout, path)
		}
	}
	if err != nil {
		logger.Error().Err(err).Msg("render")
		return 1
	}
	return 0
}

func newLogger(cfg config.Config, w io.Writer) zerolog.Logger {
	if cfg.IsDevelopment() {
		return zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger().Level(zerolog.DebugLevel)
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

func loadIcons(dir string) (*icons.Catalog, error) {
	if strings.TrimSpace(dir) == "" {
		return icons.Default(), nil
	}
	path := normalizePath(dir)
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", path)
	}
	return icons.Load(os.DirFS(path))
}

func renderPreview(w io.Writer, cards []cardsmith.CardDescription, cfg config.Config, theme cardsmith.Theme, boring bool, logger zerolog.Logger) error {
	layoutCfg := cardsmith.DefaultLayoutConfig(cfg.PixelsPerInch)
	engine := cardsmith.NewEngine(preview.NewMetrics(layoutCfg),
		cardsmith.WithLayoutConfig(layoutCfg),
		cardsmith.WithTheme(theme),
		cardsmith.WithLogger(logger),
	)
	box := cardsmith.DefaultCardLayout(cfg.PixelsPerInch).BodyBackground().Inset(layoutCfg.BodyMargin)
	for i, card := range cards {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s  [%s]\n", card.Title, card.TypeLine())
		layout, err := engine.Layout(card, card.BodyText, box)
		if err != nil {
			return fmt.Errorf("card %d: %w", i, err)
		}
		if err := preview.Render(w, layout, preview.Options{Theme: theme, Boring: boring}); err != nil {
			return err
		}
	}
	return nil
}

func renderPDF(stdout io.Writer, cards []cardsmith.CardDescription, cfg config.Config, opts options, theme cardsmith.Theme, catalog *icons.Catalog, logger zerolog.Logger) error {
	outPath := ""
	if opts.outputSet || strings.HasSuffix(strings.ToLower(cfg.OutputDir), ".pdf") {
		outPath = cfg.OutputDir
	}
	writer, closeOut, err := resolveOutput(outPath, stdout)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}
	if isTerminal(writer) {
		return fmt.Errorf("refusing to write PDF to terminal; use -o/--output")
	}
	return pdf.Render(pdf.RenderRequest{
		Cards:  cards,
		Writer: writer,
		Theme:  theme,
		Icons:  catalog,
		Config: pdf.Config{
			PageSize: cfg.PDFPageSize,
			CutMarks: cfg.PDFCutMarks,
			Boring:   opts.boring,
		},
		Logger: &logger,
	})
}

func printThemes(w io.Writer) {
	names := cardsmith.AvailableThemes()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
}

// loadCards decodes cards from args in order. Consecutive local inputs are
// streamed through one reader; remote decks are fetched one by one.
func loadCards(ctx context.Context, args []string, stdin io.Reader, client *http.Client) ([]cardsmith.CardDescription, error) {
	if len(args) == 0 {
		return deck.Decode(stdin)
	}
	var (
		cards []cardsmith.CardDescription
		local []string
	)
	flush := func() error {
		if len(local) == 0 {
			return nil
		}
		reader, closer, err := openInputs(local)
		if err != nil {
			return err
		}
		if closer != nil {
			defer func() { _ = closer.Close() }()
		}
		batch, err := deck.Decode(reader)
		if err != nil {
			return fmt.Errorf("%s: %w", strings.Join(local, ", "), err)
		}
		cards = append(cards, batch...)
		local = nil
		return nil
	}
	for _, raw := range args {
		if !isRemote(raw) {
			local = append(local, raw)
			continue
		}
		if err := flush(); err != nil {
			return nil, err
		}
		batch, err := deck.Fetch(ctx, deck.FetchRequest{URL: strings.TrimSpace(raw), Client: client})
		if err != nil {
			return nil, err
		}
		cards = append(cards, batch...)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cards, nil
}

func isRemote(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	m := &multiInputReader{sources: sources}
	return m, m, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	if raw == "-" {
		return inputSource{open: func() (io.Reader, io.Closer, error) {
			return os.Stdin, nil, nil
		}}, nil
	}
	u, err := url.Parse(raw)
	if err == nil && strings.EqualFold(u.Scheme, "file") {
		path := u.Path
		if path == "" {
			path = u.Host
		}
		if unescaped, err := url.PathUnescape(path); err == nil {
			path = unescaped
		}
		return inputSource{open: func() (io.Reader, io.Closer, error) {
			return openFile(path)
		}}, nil
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	clean := normalizePath(path)
	f, err := os.Open(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string, stdout io.Writer) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

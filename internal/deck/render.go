package deck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"pkt.systems/cardsmith"
	"pkt.systems/cardsmith/raster"
)

// LockFileName is created in the output directory while a deck renders.
const LockFileName = ".cardsmith.lock"

// ErrDirLocked is returned when another render holds the output directory.
var ErrDirLocked = errors.New("deck: output directory is locked by another render")

var nameSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://pkt.systems/cardsmith/card"))

// OutputName returns the PNG file name for the card at index. The UUID part
// is derived from the card's JSON so unchanged cards keep their name.
func OutputName(index int, card cardsmith.CardDescription) string {
	data, err := json.Marshal(card)
	if err != nil {
		data = []byte(card.Title)
	}
	return fmt.Sprintf("card_%d_%s.png", index, uuid.NewSHA1(nameSpace, data))
}

// RenderAllRequest configures RenderAll.
type RenderAllRequest struct {
	Cards   []cardsmith.CardDescription
	Dir     string
	Workers int
	Config  raster.Config
	Logger  zerolog.Logger
}

// RenderAll writes one PNG per card into req.Dir and returns the written
// paths in card order. At most req.Workers cards render concurrently; the
// first failure cancels the rest.
func RenderAll(ctx context.Context, req RenderAllRequest) ([]string, error) {
	if req.Dir == "" {
		return nil, fmt.Errorf("deck render: output directory is required")
	}
	if len(req.Cards) == 0 {
		return nil, ErrEmptyDeck
	}
	if err := os.MkdirAll(req.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("deck render: %w", err)
	}
	lock := flock.New(filepath.Join(req.Dir, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("deck render: lock: %w", err)
	}
	if !locked {
		return nil, ErrDirLocked
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			req.Logger.Warn().Err(err).Msg("release output lock")
		}
	}()

	workers := req.Workers
	if workers < 1 {
		workers = 1
	}
	cfg := req.Config
	if cfg.Logger == nil {
		cfg.Logger = &req.Logger
	}

	paths := make([]string, len(req.Cards))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, card := range req.Cards {
		if gctx.Err() != nil {
			break
		}
		path := filepath.Join(req.Dir, OutputName(i, card))
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := renderFile(path, card, cfg); err != nil {
				return fmt.Errorf("deck render: card %d (%s): %w", i, card.Title, err)
			}
			paths[i] = path
			req.Logger.Debug().Int("index", i).Str("title", card.Title).Str("path", path).Msg("card rendered")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

func renderFile(path string, card cardsmith.CardDescription, cfg raster.Config) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return raster.Render(raster.RenderRequest{Card: card, Writer: f, Config: cfg})
}

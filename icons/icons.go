// Package icons loads the artwork for body-text icon markup and scales it
// on demand. Keys without artwork get a generated badge so every card
// renders even without an icon directory.
package icons

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"strings"
	"sync"

	"github.com/disintegration/imaging"

	"pkt.systems/cardsmith"
)

const baseSize = 64

// ErrUnknownIcon reports a key that is not part of the icon vocabulary.
var ErrUnknownIcon = errors.New("unknown icon")

type sizeKey struct {
	key  string
	w, h int
}

// Catalog holds one source image per icon key plus a cache of scaled
// copies. It is safe for concurrent use.
type Catalog struct {
	mu     sync.Mutex
	base   map[string]image.Image
	scaled map[sizeKey]*image.NRGBA
	pngs   map[sizeKey][]byte
}

// FileName maps a markup key to its artwork file, e.g. "<DRAW_CARD>" to
// "draw_card.png".
func FileName(key string) string {
	return strings.ToLower(strings.Trim(key, "<>")) + ".png"
}

// Default returns a catalog of generated badges only.
func Default() *Catalog {
	c := newCatalog()
	for _, key := range cardsmith.IconKeys() {
		c.base[key] = badge(key)
	}
	return c
}

// Load reads artwork for every known key from fsys. Missing files fall
// back to generated badges; files that exist but fail to decode are errors.
func Load(fsys fs.FS) (*Catalog, error) {
	c := newCatalog()
	for _, key := range cardsmith.IconKeys() {
		name := FileName(key)
		data, err := fs.ReadFile(fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			c.base[key] = badge(key)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("icons: read %s: %w", name, err)
		}
		img, err := imaging.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("icons: decode %s: %w", name, err)
		}
		c.base[key] = img
	}
	return c, nil
}

func newCatalog() *Catalog {
	return &Catalog{
		base:   make(map[string]image.Image),
		scaled: make(map[sizeKey]*image.NRGBA),
		pngs:   make(map[sizeKey][]byte),
	}
}

// Image returns the icon for key scaled to w x h pixels.
func (c *Catalog) Image(key string, w, h int) (*image.NRGBA, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("icons: invalid size %dx%d", w, h)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.imageLocked(sizeKey{key: key, w: w, h: h})
}

func (c *Catalog) imageLocked(k sizeKey) (*image.NRGBA, error) {
	if img, ok := c.scaled[k]; ok {
		return img, nil
	}
	src, ok := c.base[k.key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownIcon, k.key)
	}
	img := imaging.Resize(src, k.w, k.h, imaging.Lanczos)
	c.scaled[k] = img
	return img, nil
}

// PNG returns the scaled icon encoded as PNG, for backends that embed
// images by bytes.
func (c *Catalog) PNG(key string, w, h int) ([]byte, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("icons: invalid size %dx%d", w, h)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	k := sizeKey{key: key, w: w, h: h}
	if data, ok := c.pngs[k]; ok {
		return data, nil
	}
	img, err := c.imageLocked(k)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("icons: encode %s: %w", key, err)
	}
	c.pngs[k] = buf.Bytes()
	return c.pngs[k], nil
}

var badgeColors = map[string]color.NRGBA{
	cardsmith.IconReveal:       {R: 0x00, G: 0x89, B: 0x7b, A: 0xff},
	cardsmith.IconExhaust:      {R: 0x6d, G: 0x4c, B: 0x41, A: 0xff},
	cardsmith.IconReady:        {R: 0x43, G: 0xa0, B: 0x47, A: 0xff},
	cardsmith.IconDrawCard:     {R: 0x1e, G: 0x88, B: 0xe5, A: 0xff},
	cardsmith.IconSacrifice:    {R: 0x88, G: 0x0e, B: 0x4f, A: 0xff},
	cardsmith.IconMemoryAction: {R: 0x5e, G: 0x35, B: 0xb1, A: 0xff},
	cardsmith.IconSummonAction: {R: 0x2e, G: 0x7d, B: 0x32, A: 0xff},
	cardsmith.IconCombatAction: {R: 0xc6, G: 0x28, B: 0x28, A: 0xff},
	cardsmith.IconRangedAction: {R: 0xef, G: 0x6c, B: 0x00, A: 0xff},
	cardsmith.IconAnyAction:    {R: 0x45, G: 0x5a, B: 0x64, A: 0xff},
	cardsmith.IconBreakAction:  {R: 0x4e, G: 0x34, B: 0x2e, A: 0xff},
}

// badge draws a placeholder: action keys get a disc with a white ring,
// other icons a square with a white dot.
func badge(key string) *image.NRGBA {
	fill, ok := badgeColors[key]
	if !ok {
		fill = color.NRGBA{R: 0x75, G: 0x75, B: 0x75, A: 0xff}
	}
	img := imaging.New(baseSize, baseSize, color.NRGBA{})
	action := strings.HasSuffix(key, "_ACTION>")
	const c = float64(baseSize-1) / 2
	for y := 0; y < baseSize; y++ {
		for x := 0; x < baseSize; x++ {
			dx, dy := float64(x)-c, float64(y)-c
			d2 := dx*dx + dy*dy
			switch {
			case action && d2 >= 22*22 && d2 <= 25*25:
				img.SetNRGBA(x, y, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
			case action && d2 <= 31*31:
				img.SetNRGBA(x, y, fill)
			case !action && d2 <= 10*10:
				img.SetNRGBA(x, y, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
			case !action && x >= 4 && x < baseSize-4 && y >= 4 && y < baseSize-4:
				img.SetNRGBA(x, y, fill)
			}
		}
	}
	return img
}

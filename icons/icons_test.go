package icons

import (
	"bytes"
	"errors"
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/disintegration/imaging"

	"pkt.systems/cardsmith"
)

func encodePNG(t *testing.T, c color.Color) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.New(8, 8, c), imaging.PNG); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestFileName(t *testing.T) {
	if got := FileName(cardsmith.IconDrawCard); got != "draw_card.png" {
		t.Fatalf("got %q", got)
	}
}

func TestLoadUsesArtworkAndFallsBack(t *testing.T) {
	red := color.NRGBA{R: 0xff, A: 0xff}
	fsys := fstest.MapFS{
		"reveal.png": {Data: encodePNG(t, red)},
	}
	c, err := Load(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	img, err := c.Image(cardsmith.IconReveal, 16, 16)
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 16 {
		t.Fatalf("unexpected bounds %v", b)
	}
	if got := img.NRGBAAt(8, 8); got != red {
		t.Fatalf("expected artwork colour, got %v", got)
	}
	if _, err := c.Image(cardsmith.IconExhaust, 16, 16); err != nil {
		t.Fatalf("fallback badge: %v", err)
	}
}

func TestLoadRejectsCorruptArtwork(t *testing.T) {
	fsys := fstest.MapFS{"ready.png": {Data: []byte("not a png")}}
	if _, err := Load(fsys); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestImageUnknownKey(t *testing.T) {
	if _, err := Default().Image("<FLY>", 8, 8); !errors.Is(err, ErrUnknownIcon) {
		t.Fatalf("expected ErrUnknownIcon, got %v", err)
	}
}

func TestPNGIsCached(t *testing.T) {
	c := Default()
	a, err := c.PNG(cardsmith.IconCombatAction, 20, 20)
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	b, err := c.PNG(cardsmith.IconCombatAction, 20, 20)
	if err != nil {
		t.Fatalf("png: %v", err)
	}
	if &a[0] != &b[0] {
		t.Fatalf("expected cached bytes")
	}
	img, err := imaging.Decode(bytes.NewReader(a))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 20 {
		t.Fatalf("unexpected width %d", img.Bounds().Dx())
	}
}

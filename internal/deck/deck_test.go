package deck

import (
	"context"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"pkt.systems/cardsmith"
)

const goblinJSON = `{"primary_element":"F","card_type":"Unit","title":"Goblin","cost":"1","body_text":"<COMBAT_ACTION><1F><END_COST>Deal <1_DAMAGE>.","strength":"1","health":"2"}`

func TestDecodeConcatenatedValues(t *testing.T) {
	input := goblinJSON + "\n" + `[{"primary_element":"W","card_type":"Spell","title":"Splash"},{"primary_element":"N","card_type":"Memory","title":"Grove"}]`
	cards, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, cards, 3)
	require.Equal(t, "Goblin", cards[0].Title)
	require.Equal(t, cardsmith.ElementWater, cards[1].PrimaryElement)
	require.Equal(t, cardsmith.CardTypeMemory, cards[2].CardType)
}

func TestDecodeAcceptsElementAndTypeNames(t *testing.T) {
	cards, err := Decode(strings.NewReader(`{"primary_element":"Fire","secondary_element":"dark","card_type":"leader","title":"Warlord"}`))
	require.NoError(t, err)
	require.Len(t, cards, 1)
	require.Equal(t, cardsmith.ElementFire, cards[0].PrimaryElement)
	require.Equal(t, cardsmith.ElementDark, cards[0].SecondaryElement)
	require.Equal(t, cardsmith.CardTypeLeader, cards[0].CardType)
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{
			name:  "empty",
			input: "   ",
			check: func(t *testing.T, err error) { require.ErrorIs(t, err, ErrEmptyDeck) },
		},
		{
			name:  "scalar",
			input: `"card"`,
			check: func(t *testing.T, err error) { require.ErrorIs(t, err, ErrInvalidValue) },
		},
		{
			name:  "unknown_field",
			input: `{"title":"x","colour":"red"}`,
			check: func(t *testing.T, err error) { require.ErrorContains(t, err, "colour") },
		},
		{
			name:  "invalid_second_card",
			input: goblinJSON + `{"primary_element":"Q","card_type":"Unit","title":"Bad"}`,
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, cardsmith.ErrUnknownElement)
				require.ErrorContains(t, err, "card 1")
			},
		},
		{
			name:  "truncated",
			input: `{"title":`,
			check: func(t *testing.T, err error) { require.Error(t, err) },
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tc.input))
			tc.check(t, err)
		})
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(goblinJSON))
	}))
	defer srv.Close()

	cards, err := Fetch(context.Background(), FetchRequest{URL: srv.URL + "/deck.json", Client: srv.Client()})
	require.NoError(t, err)
	require.Len(t, cards, 1)

	_, err = Fetch(context.Background(), FetchRequest{URL: srv.URL + "/missing", Client: srv.Client()})
	require.ErrorContains(t, err, "404")

	_, err = Fetch(context.Background(), FetchRequest{URL: "ftp://example.com/deck.json"})
	require.ErrorContains(t, err, "unsupported scheme")
}

func TestOutputNameIsStable(t *testing.T) {
	card := cardsmith.CardDescription{PrimaryElement: cardsmith.ElementFire, CardType: cardsmith.CardTypeUnit, Title: "Goblin"}
	first := OutputName(3, card)
	require.Equal(t, first, OutputName(3, card))
	require.True(t, strings.HasPrefix(first, "card_3_"))
	require.True(t, strings.HasSuffix(first, ".png"))

	card.BodyText = "changed"
	require.NotEqual(t, first, OutputName(3, card))
}

func TestRenderAllWritesPNGs(t *testing.T) {
	cards, err := Decode(strings.NewReader(goblinJSON + goblinJSON + `{"primary_element":"L","card_type":"Spell","title":"Dawn","body_text":"<TETHER> <REVEAL> </TETHER>"}`))
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "out")

	paths, err := RenderAll(context.Background(), RenderAllRequest{Cards: cards, Dir: dir, Workers: 2, Logger: zerolog.Nop()})
	require.NoError(t, err)
	require.Len(t, paths, len(cards))
	for i, path := range paths {
		require.Equal(t, filepath.Join(dir, OutputName(i, cards[i])), path)
		f, err := os.Open(path)
		require.NoError(t, err)
		cfg, err := png.DecodeConfig(f)
		require.NoError(t, f.Close())
		require.NoError(t, err)
		require.Equal(t, 250, cfg.Width)
		require.Equal(t, 350, cfg.Height)
	}
}

func TestRenderAllRefusesLockedDir(t *testing.T) {
	dir := t.TempDir()
	held := flock.New(filepath.Join(dir, LockFileName))
	locked, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, locked)
	defer held.Unlock()

	cards, err := Decode(strings.NewReader(goblinJSON))
	require.NoError(t, err)
	_, err = RenderAll(context.Background(), RenderAllRequest{Cards: cards, Dir: dir, Logger: zerolog.Nop()})
	require.True(t, errors.Is(err, ErrDirLocked))
}

func TestRenderAllHonoursCancellation(t *testing.T) {
	cards, err := Decode(strings.NewReader(goblinJSON))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RenderAll(ctx, RenderAllRequest{Cards: cards, Dir: t.TempDir(), Logger: zerolog.Nop()})
	require.ErrorIs(t, err, context.Canceled)
}

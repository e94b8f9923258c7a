// Package deck loads card descriptions from JSON and renders whole decks.
package deck

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"pkt.systems/cardsmith"
)

// MaxDeckBytes bounds how much of a fetched deck is read.
const MaxDeckBytes = 8 << 20

var (
	ErrEmptyDeck    = errors.New("deck: no cards")
	ErrInvalidValue = errors.New("deck: expected a JSON object or array of objects")
)

// Decode reads one or more concatenated JSON values from r. Each value is a
// card object or an array of card objects. Every card is validated; errors
// carry the zero-based card index.
func Decode(r io.Reader) ([]cardsmith.CardDescription, error) {
	dec := json.NewDecoder(bufio.NewReader(r))
	var cards []cardsmith.CardDescription
	for {
		var raw json.RawMessage
		err := dec.Decode(&raw)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("deck: decode: %w", err)
		}
		batch, err := decodeValue(raw)
		if err != nil {
			return nil, err
		}
		for _, card := range batch {
			if err := card.Validate(); err != nil {
				return nil, fmt.Errorf("deck: card %d: %w", len(cards), err)
			}
			cards = append(cards, card)
		}
	}
	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}
	return cards, nil
}

func decodeValue(raw json.RawMessage) ([]cardsmith.CardDescription, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrInvalidValue
	}
	strict := func(v any) error {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	}
	switch trimmed[0] {
	case '{':
		var card cardsmith.CardDescription
		if err := strict(&card); err != nil {
			return nil, fmt.Errorf("deck: decode card: %w", err)
		}
		return []cardsmith.CardDescription{card}, nil
	case '[':
		var cards []cardsmith.CardDescription
		if err := strict(&cards); err != nil {
			return nil, fmt.Errorf("deck: decode cards: %w", err)
		}
		return cards, nil
	default:
		return nil, ErrInvalidValue
	}
}

// FetchRequest configures Fetch.
type FetchRequest struct {
	URL    string
	Client *http.Client
}

// Fetch downloads and decodes a deck over HTTP(S).
func Fetch(ctx context.Context, req FetchRequest) ([]cardsmith.CardDescription, error) {
	if req.URL == "" {
		return nil, fmt.Errorf("deck fetch: URL is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("deck fetch: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return nil, fmt.Errorf("deck fetch: unsupported scheme %q", httpReq.URL.Scheme)
	}
	httpReq.Header.Set("Accept", "application/json")
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("deck fetch: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("deck fetch: status %s", resp.Status)
	}
	return Decode(io.LimitReader(resp.Body, MaxDeckBytes))
}

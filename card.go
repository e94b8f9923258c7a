package cardsmith

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"strings"
)

var (
	// ErrInvalidBox reports a destination rectangle with negative extent.
	ErrInvalidBox = errors.New("invalid bounding box")
	// ErrMissingTitle reports a card without a title.
	ErrMissingTitle = errors.New("card title is required")
	// ErrUnknownElement reports an element code outside F, W, D, L, N, G.
	ErrUnknownElement = errors.New("unknown element")
	// ErrUnknownCardType reports an unsupported card type.
	ErrUnknownCardType = errors.New("unknown card type")
)

// Element is the single-letter element code used by cards and mana markup.
type Element string

const (
	ElementFire    Element = "F"
	ElementWater   Element = "W"
	ElementDark    Element = "D"
	ElementLight   Element = "L"
	ElementNature  Element = "N"
	ElementGeneric Element = "G"
)

var elementNames = map[Element]string{
	ElementFire:    "Fire",
	ElementWater:   "Water",
	ElementDark:    "Dark",
	ElementLight:   "Light",
	ElementNature:  "Nature",
	ElementGeneric: "Generic",
}

// Elements returns every element in display order.
func Elements() []Element {
	return []Element{ElementFire, ElementWater, ElementDark, ElementLight, ElementNature, ElementGeneric}
}

// Valid reports whether e is a known element code.
func (e Element) Valid() bool {
	_, ok := elementNames[e]
	return ok
}

// Name returns the element's display name, or the raw code when unknown.
func (e Element) Name() string {
	if name, ok := elementNames[e]; ok {
		return name
	}
	return string(e)
}

// ParseElement accepts a code ("F") or a display name ("Fire"), case-insensitively.
func ParseElement(s string) (Element, error) {
	trimmed := strings.TrimSpace(s)
	for _, e := range Elements() {
		if strings.EqualFold(trimmed, string(e)) || strings.EqualFold(trimmed, e.Name()) {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownElement, s)
}

// UnmarshalJSON accepts a code or a display name. Unrecognised values are
// kept verbatim so Validate can report them with the card's context.
func (e *Element) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("element: %w", err)
	}
	if s == "" {
		*e = ""
		return nil
	}
	parsed, err := ParseElement(s)
	if err != nil {
		parsed = Element(s)
	}
	*e = parsed
	return nil
}

// CardType is the printed type line of a card.
type CardType string

const (
	CardTypeAttachment CardType = "Attachment"
	CardTypeSpell      CardType = "Spell"
	CardTypeMemory     CardType = "Memory"
	CardTypeUnit       CardType = "Unit"
	CardTypeLeader     CardType = "Leader"
	CardTypeToken      CardType = "Token"
)

// CardTypes returns all supported card types.
func CardTypes() []CardType {
	return []CardType{CardTypeAttachment, CardTypeSpell, CardTypeMemory, CardTypeUnit, CardTypeLeader, CardTypeToken}
}

// Valid reports whether t is a supported card type.
func (t CardType) Valid() bool {
	for _, known := range CardTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// ParseCardType matches s against the supported card types, ignoring case.
func ParseCardType(s string) (CardType, error) {
	trimmed := strings.TrimSpace(s)
	for _, t := range CardTypes() {
		if strings.EqualFold(trimmed, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCardType, s)
}

// UnmarshalJSON matches the type name ignoring case. Unrecognised values
// are kept verbatim for Validate.
func (t *CardType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("card type: %w", err)
	}
	parsed, err := ParseCardType(s)
	if err != nil {
		parsed = CardType(s)
	}
	*t = parsed
	return nil
}

// CardDescription is the structured input for one card. Amount fields are
// strings because they may hold "X".
type CardDescription struct {
	PrimaryElement   Element  `json:"primary_element"`
	SecondaryElement Element  `json:"secondary_element,omitempty"`
	CardType         CardType `json:"card_type"`
	Title            string   `json:"title"`
	Cost             string   `json:"cost,omitempty"`
	Attributes       string   `json:"attributes,omitempty"`
	BodyText         string   `json:"body_text,omitempty"`
	Strength         string   `json:"strength,omitempty"`
	Health           string   `json:"health,omitempty"`
	FlavorText       string   `json:"flavor_text,omitempty"`
}

// Validate checks the fields the composer cannot render without.
func (c CardDescription) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return ErrMissingTitle
	}
	if !c.PrimaryElement.Valid() {
		return fmt.Errorf("primary element: %w: %q", ErrUnknownElement, c.PrimaryElement)
	}
	if c.SecondaryElement != "" && !c.SecondaryElement.Valid() {
		return fmt.Errorf("secondary element: %w: %q", ErrUnknownElement, c.SecondaryElement)
	}
	if !c.CardType.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownCardType, c.CardType)
	}
	for _, field := range []struct{ name, value string }{
		{"title", c.Title},
		{"body_text", c.BodyText},
		{"flavor_text", c.FlavorText},
		{"attributes", c.Attributes},
	} {
		if err := ValidateInput([]byte(field.value)); err != nil {
			return fmt.Errorf("%s: %w", field.name, err)
		}
	}
	return nil
}

// TypeLine returns the attribute line text, e.g. "Unit - Beast".
func (c CardDescription) TypeLine() string {
	if strings.TrimSpace(c.Attributes) == "" {
		return string(c.CardType)
	}
	return string(c.CardType) + " - " + c.Attributes
}

func validateBox(box image.Rectangle) error {
	if box.Min.X > box.Max.X || box.Min.Y > box.Max.Y {
		return fmt.Errorf("%w: %v", ErrInvalidBox, box)
	}
	return nil
}

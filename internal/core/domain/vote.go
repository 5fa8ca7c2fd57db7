package domain

import (
	"fmt"
	"time"
)

// Category is one of the three satisfaction levels a visitor can vote for.
type Category string

const (
	VerySatisfied Category = "muito_satisfeito"
	Satisfied     Category = "satisfeito"
	Unsatisfied   Category = "insatisfeito"
)

// Categories lists every category in display order.
var Categories = [3]Category{VerySatisfied, Satisfied, Unsatisfied}

type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
)

type categoryInfo struct {
	label string
	emoji string
	tone  Tone
}

var categoryTable = map[Category]categoryInfo{
	VerySatisfied: {label: "Muito Satisfeito", emoji: "😊", tone: ToneSuccess},
	Satisfied:     {label: "Satisfeito", emoji: "😐", tone: ToneWarning},
	Unsatisfied:   {label: "Insatisfeito", emoji: "😞", tone: ToneDanger},
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryTable[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	_, ok := categoryTable[c]
	return ok
}

func (c Category) Label() string { return categoryTable[c].label }
func (c Category) Emoji() string { return categoryTable[c].emoji }
func (c Category) Tone() Tone    { return categoryTable[c].tone }

// UnmarshalText rejects anything outside the three known categories, so a
// decoded payload never carries a category without a label and emoji.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(c))
	}
	return []byte(c), nil
}

// CategoryForKey maps the numeric shortcut keys 1, 2 and 3 to categories.
func CategoryForKey(key rune) (Category, bool) {
	switch key {
	case '1':
		return VerySatisfied, true
	case '2':
		return Satisfied, true
	case '3':
		return Unsatisfied, true
	}
	return "", false
}

type VoteRequest struct {
	Satisfaction Category `json:"satisfacao"`
}

type VoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

const (
	VoteCooldown    = 3000 * time.Millisecond
	MessageDuration = 2000 * time.Millisecond
)

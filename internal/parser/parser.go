package parser

import (
	"context"
	"time"
)

// Activity is one structured tracking record extracted from a message.
type Activity struct {
	Category      string
	DurationHours float64
	Date          time.Time
}

// Parser turns a free-form activity message into structured records. The
// existing category list lets the implementation map close phrasings onto
// already-known categories instead of minting near-duplicates.
type Parser interface {
	ParseMessage(ctx context.Context, message string, existing []string) ([]Activity, error)
}

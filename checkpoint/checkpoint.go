// Package checkpoint persists the "last checked" timestamp that bounds each poll.
//
// The checkpoint is stored as plain text in the ISO-8601 UTC format used by the Drive query
// grammar (e.g. 2024-03-01T12:34:56.789Z). A missing checkpoint is reported as ErrNotFound so
// that callers can fall back to Epoch.
package checkpoint

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

const Layout = "2006-01-02T15:04:05.000Z"

var ErrNotFound = errors.New("checkpoint not found")

// Epoch is the lower bound used when no checkpoint has been recorded.
var Epoch = time.Unix(0, 0).UTC()

type Store interface {
	Load(ctx context.Context) (time.Time, error)
	Save(ctx context.Context, checkpoint time.Time) error
}

func Format(t time.Time) string {
	return t.UTC().Format(Layout)
}

// Parse decodes a stored checkpoint. Any RFC 3339 timestamp is accepted so that checkpoints
// written with other precisions remain readable.
func Parse(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return Epoch, fmt.Errorf("empty checkpoint")
	}

	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return Epoch, fmt.Errorf("invalid checkpoint '%s' (%w)", v, err)
	}

	return t.UTC(), nil
}

// Package pagination implements keyset cursors over rows ordered by
// (timestamp, id).
package pagination

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 25
	MaxLimit     = 200

	cursorVersion = 1
)

var ErrInvalidCursor = errors.New("invalid cursor")

type Params struct {
	Limit  int
	Cursor string
}

// Cursor is the sort key of the last row already served.
type Cursor struct {
	Timestamp time.Time
	ID        uuid.UUID
}

type wireCursor struct {
	V  int       `json:"v"`
	TS time.Time `json:"ts"`
	ID uuid.UUID `json:"id"`
}

// Compare orders cursors by timestamp, then by id bytes.
func (c Cursor) Compare(other Cursor) int {
	if cmp := c.Timestamp.Compare(other.Timestamp); cmp != 0 {
		return cmp
	}
	return bytes.Compare(c.ID[:], other.ID[:])
}

// Before reports whether (ts, id) was already served, i.e. sorts at or
// before the cursor.
func (c Cursor) Before(ts time.Time, id uuid.UUID) bool {
	return Cursor{Timestamp: ts, ID: id}.Compare(c) <= 0
}

func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}

func EncodeCursor(cursor Cursor) string {
	raw, _ := json.Marshal(wireCursor{V: cursorVersion, TS: cursor.Timestamp.UTC(), ID: cursor.ID})
	return base64.RawURLEncoding.EncodeToString(raw)
}

// ParseCursor returns nil for an empty value, meaning the first page.
func ParseCursor(value string) (*Cursor, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	raw, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	var wire wireCursor
	if err := json.Unmarshal(raw, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	if wire.V != cursorVersion || wire.TS.IsZero() || wire.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: unsupported cursor", ErrInvalidCursor)
	}
	return &Cursor{Timestamp: wire.TS, ID: wire.ID}, nil
}

// Page sorts items by key and returns those after params.Cursor, at most
// NormalizeLimit(params.Limit) of them. next is empty on the last page.
func Page[T any](items []T, key func(T) Cursor, params Params) (page []T, next string, err error) {
	after, err := ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int {
		return key(a).Compare(key(b))
	})

	start := 0
	if after != nil {
		start, _ = slices.BinarySearchFunc(sorted, *after, func(item T, target Cursor) int {
			if key(item).Compare(target) <= 0 {
				return -1
			}
			return 1
		})
	}

	limit := NormalizeLimit(params.Limit)
	end := min(start+limit, len(sorted))
	page = make([]T, 0, end-start)
	page = append(page, sorted[start:end]...)
	if end < len(sorted) && len(page) > 0 {
		next = EncodeCursor(key(page[len(page)-1]))
	}
	return page, next, nil
}

// Package todo holds the to-do item entity and its validation rules.
package todo

import (
	"errors"
	"strings"
	"time"
)

// ErrEmptyTitle indicates a title that is empty after trimming. Adding such a
// title is a no-op for the caller, never a created item.
var ErrEmptyTitle = errors.New("title must not be empty")

// ErrTitleTooLong indicates a title over MaxTitleLen after trimming.
var ErrTitleTooLong = errors.New("title is too long")

// MaxTitleLen matches the VARCHAR(100) column in the postgres schema.
const MaxTitleLen = 100

type Item struct {
	ID        string    `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Complete  bool      `json:"complete" db:"complete"`
	UserID    string    `json:"user_id" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (i Item) Validate() error {
	if i.ID == "" {
		return errors.New("id is required")
	}
	if i.Title == "" {
		return errors.New("title is required")
	}
	if i.UserID == "" {
		return errors.New("user id is required")
	}
	return nil
}

// NormalizeTitle trims surrounding whitespace and rejects titles that are
// empty or over MaxTitleLen afterwards.
func NormalizeTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if len(title) > MaxTitleLen {
		return "", ErrTitleTooLong
	}
	return title, nil
}

package database

import (
	"context"
	"errors"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrTransient tags store errors that are worth one more try, currently
// only sqlite busy/locked conflicts between concurrent writers.
var ErrTransient = errors.New("transient store conflict")

const (
	retryAttempts = 3
	retryBackoff  = 100 * time.Millisecond
)

// classify wraps sqlite busy/locked failures in ErrTransient so callers
// can match them by type instead of inspecting message text.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return errors.Join(ErrTransient, err)
		}
	}
	return err
}

// withRetry runs fn up to three times, backing off linearly (100ms x
// attempt) between tries. Only ErrTransient failures are retried; every
// other error propagates immediately.
func withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err = classify(fn())
		if err == nil || !errors.Is(err, ErrTransient) {
			return err
		}
		if attempt == retryAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryBackoff):
		}
	}
	return err
}

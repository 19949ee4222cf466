package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Backend persists the full entry set as one unit.
type Backend interface {
	// Save replaces everything previously stored with entries.
	Save(ctx context.Context, entries []Entry) error
	// Load returns the stored entries, or an error wrapping ErrNotFound when
	// nothing has been stored yet.
	Load(ctx context.Context) ([]Entry, error)
	// Location describes where the data lives, for messages.
	Location() string
}

// Diary couples a Store with its Backend. Every mutation is flushed in full.
type Diary struct {
	store     *Store
	backend   Backend
	log       zerolog.Logger
	now       func() time.Time
	lastSaved time.Time
}

type DiaryOption func(*Diary)

func WithLogger(l zerolog.Logger) DiaryOption {
	return func(d *Diary) { d.log = l }
}

func WithClock(now func() time.Time) DiaryOption {
	return func(d *Diary) { d.now = now }
}

func NewDiary(store *Store, backend Backend, opts ...DiaryOption) *Diary {
	d := &Diary{
		store:   store,
		backend: backend,
		log:     zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Diary) Store() *Store        { return d.store }
func (d *Diary) Location() string     { return d.backend.Location() }
func (d *Diary) LastSaved() time.Time { return d.lastSaved }

// Save upserts in and flushes the store. Invalid input never reaches the
// backend.
func (d *Diary) Save(ctx context.Context, in Input) (Entry, error) {
	e, err := d.store.Upsert(in)
	if err != nil {
		return Entry{}, err
	}
	if err := d.Flush(ctx); err != nil {
		return e, err
	}
	d.log.Debug().Str("date", e.Date).Msg("entry saved")
	return e, nil
}

// Delete removes the entry for date and flushes the store.
func (d *Diary) Delete(ctx context.Context, date string) error {
	if err := d.store.Remove(date); err != nil {
		return err
	}
	if err := d.Flush(ctx); err != nil {
		return err
	}
	d.log.Debug().Str("date", date).Msg("entry deleted")
	return nil
}

// Flush writes every entry to the backend.
func (d *Diary) Flush(ctx context.Context) error {
	entries := d.store.List()
	if err := d.backend.Save(ctx, entries); err != nil {
		d.log.Error().Err(err).Str("location", d.backend.Location()).Msg("flush failed")
		return fmt.Errorf("save %s: %w", d.backend.Location(), err)
	}
	d.lastSaved = d.now()
	d.log.Info().Int("entries", len(entries)).Str("location", d.backend.Location()).Msg("diary written")
	return nil
}

// Load replaces the in-memory entries with the stored ones and returns how
// many were loaded. When nothing is stored the store is left as it was and
// the returned error wraps ErrNotFound.
func (d *Diary) Load(ctx context.Context) (int, error) {
	entries, err := d.backend.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			d.log.Warn().Str("location", d.backend.Location()).Msg("no diary file yet")
		} else {
			d.log.Error().Err(err).Str("location", d.backend.Location()).Msg("load failed")
		}
		return 0, err
	}
	if err := d.store.Replace(entries); err != nil {
		return 0, fmt.Errorf("load %s: %w", d.backend.Location(), err)
	}
	d.log.Info().Int("entries", d.store.Len()).Str("location", d.backend.Location()).Msg("diary loaded")
	return d.store.Len(), nil
}

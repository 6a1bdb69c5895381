// Package store is the record store of the lens order database.
//
// Every operation opens its own SQLite connection, runs, and closes it before
// returning. Updates and deletes of an id that does not exist are no-ops.
// Write operations validate their input before touching the database and
// return validation errors unchanged.
package store

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/diewo77/lens-orders/internal/db"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

var (
	// ErrUnavailable wraps failures to open the database file.
	ErrUnavailable = errors.New("storage unavailable")
	// ErrNotFound is returned by reads of a single record that does not exist.
	ErrNotFound = errors.New("record not found")
)

// Store gives access to the database at a fixed path.
type Store struct {
	path  string
	debug bool
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithDebug enables gorm SQL logging.
func WithDebug(debug bool) Option {
	return func(s *Store) { s.debug = debug }
}

// WithClock replaces the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a Store for the database file at path. The schema must have
// been created with db.EnsureSchema.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// withConn runs fn on a fresh connection and always closes it.
func (s *Store) withConn(fn func(tx *gorm.DB) error) error {
	gdb, err := db.Open(s.path, s.debug)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer db.Close(gdb)
	return fn(gdb)
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern turns a search string into a LIKE "contains" pattern.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(search) + "%"
}

// sortByName orders catalog rows by name, ignoring case, then by id.
func sortByName[T any](rows []T, name func(T) string, id func(T) uint) {
	c := collate.New(language.Russian, collate.IgnoreCase)
	slices.SortStableFunc(rows, func(a, b T) int {
		if r := c.CompareString(name(a), name(b)); r != 0 {
			return r
		}
		switch ia, ib := id(a), id(b); {
		case ia < ib:
			return -1
		case ia > ib:
			return 1
		}
		return 0
	})
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

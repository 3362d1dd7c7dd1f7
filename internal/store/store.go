package store

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUnauthorized indicates a mutation was attempted without an acting identity.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidInput signals malformed or missing input fields.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSongNotFound reports a missing song row for a keyed lookup.
	ErrSongNotFound = errors.New("song not found")
	// ErrPlaylistNotFound reports a missing playlist row, including a song
	// create or link targeting a playlist that does not exist.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrSongExists signals a composite-key collision on song create or rename.
	ErrSongExists = errors.New("song already exists")
	// ErrPlaylistExists signals a composite-key collision on playlist create.
	ErrPlaylistExists = errors.New("playlist already exists")
	// ErrAlreadyLinked signals the song is already a member of the target playlist.
	ErrAlreadyLinked = errors.New("song already in playlist")
)

// SongKey identifies one song row. Song names are unique only per author per
// playlist, so all three fields are required for any keyed operation.
type SongKey struct {
	Name         string
	AuthorName   string
	PlaylistName string
}

// PlaylistKey identifies one playlist row. Playlist names are unique only
// within a single author's namespace.
type PlaylistKey struct {
	Name       string
	AuthorName string
}

// Store provides persistence backed by Postgres.
type Store struct {
	db *sql.DB
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// foreignKeyConstraint returns the violated constraint name, or "" when the
// error is not a foreign-key violation.
func foreignKeyConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return pgErr.ConstraintName
	}
	return ""
}

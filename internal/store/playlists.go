package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Playlist is a named collection of songs owned by one profile.
type Playlist struct {
	Name       string    `json:"name"`
	AuthorName string    `json:"authorName"`
	Genre      string    `json:"genre"`
	PictureURL string    `json:"pictureUrl"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
}

const playlistColumns = `name, author_name, genre, picture_url, tags, created_at`

func scanPlaylist(scan func(dest ...any) error) (Playlist, error) {
	var playlist Playlist
	err := scan(
		&playlist.Name, &playlist.AuthorName, &playlist.Genre,
		&playlist.PictureURL, pq.Array(&playlist.Tags), &playlist.CreatedAt,
	)
	return playlist, err
}

// CreatePlaylist persists a new playlist row.
func (s *Store) CreatePlaylist(ctx context.Context, playlist Playlist) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO playlists (name, author_name, genre, picture_url, tags)
		VALUES ($1, $2, $3, $4, $5)
	`, playlist.Name, playlist.AuthorName, playlist.Genre, playlist.PictureURL, pq.Array(playlist.Tags)); err != nil {
		if isUniqueViolation(err) {
			return ErrPlaylistExists
		}
		return fmt.Errorf("insert playlist: %w", err)
	}
	return nil
}

// PlaylistByKey returns a single playlist by its composite key.
func (s *Store) PlaylistByKey(ctx context.Context, key PlaylistKey) (Playlist, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+playlistColumns+`
		FROM playlists
		WHERE name = $1 AND author_name = $2
	`, key.Name, key.AuthorName)

	playlist, err := scanPlaylist(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Playlist{}, ErrPlaylistNotFound
	}
	if err != nil {
		return Playlist{}, fmt.Errorf("get playlist: %w", err)
	}
	return playlist, nil
}

// PlaylistsByAuthor returns every playlist owned by the given profile,
// newest first.
func (s *Store) PlaylistsByAuthor(ctx context.Context, authorName string) ([]Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+playlistColumns+`
		FROM playlists
		WHERE author_name = $1
		ORDER BY created_at DESC, name ASC
	`, authorName)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	return collectPlaylists(rows)
}

// PlaylistsByName returns playlists whose name contains the given text.
func (s *Store) PlaylistsByName(ctx context.Context, name string) ([]Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+playlistColumns+`
		FROM playlists
		WHERE name ILIKE $1
		ORDER BY name ASC
	`, "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("search playlists: %w", err)
	}
	defer rows.Close()

	return collectPlaylists(rows)
}

func collectPlaylists(rows *sql.Rows) ([]Playlist, error) {
	playlists := make([]Playlist, 0)
	for rows.Next() {
		playlist, err := scanPlaylist(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

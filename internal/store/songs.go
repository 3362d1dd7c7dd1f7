package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Song represents one track record. A song row is owned by exactly one
// (author, playlist) pair; cross-playlist sharing happens through membership
// links, never by duplicating the row.
type Song struct {
	Name         string    `json:"name"`
	PictureURL   string    `json:"pictureUrl"`
	SongURL      string    `json:"songUrl"`
	Genre        string    `json:"genre"`
	Album        string    `json:"album"`
	Artist       string    `json:"artist"`
	Description  string    `json:"description"`
	Rating       int       `json:"rating"`
	AuthorName   string    `json:"authorName"`
	PlaylistName string    `json:"playlistName"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SongUpdate carries a partial song update. PlaylistName and AuthorName are
// deliberately not representable here: the former is identity-bearing and the
// latter ownership-bearing, and both belong to the lookup key instead.
type SongUpdate struct {
	Name        *string
	PictureURL  *string
	SongURL     *string
	Genre       *string
	Album       *string
	Artist      *string
	Description *string
	Rating      *int
}

// recentSongsLimit caps the system-wide recent-songs feed.
const recentSongsLimit = 8

const songColumns = `name, author_name, playlist_name, picture_url, song_url, genre, album, artist, description, rating, created_at`

func scanSong(scan func(dest ...any) error) (Song, error) {
	var song Song
	err := scan(
		&song.Name, &song.AuthorName, &song.PlaylistName,
		&song.PictureURL, &song.SongURL, &song.Genre,
		&song.Album, &song.Artist, &song.Description,
		&song.Rating, &song.CreatedAt,
	)
	return song, err
}

// CreateSong inserts a song row and links it into its owning playlist in one
// transaction. The playlist row must already exist; a missing playlist fails
// closed with ErrPlaylistNotFound rather than auto-creating it.
func (s *Store) CreateSong(ctx context.Context, song Song) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO songs (name, author_name, playlist_name, picture_url, song_url, genre, album, artist, description, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, song.Name, song.AuthorName, song.PlaylistName,
		song.PictureURL, song.SongURL, song.Genre,
		song.Album, song.Artist, song.Description, song.Rating,
	); err != nil {
		if isUniqueViolation(err) {
			return ErrSongExists
		}
		if foreignKeyConstraint(err) == "songs_playlist_fk" {
			return ErrPlaylistNotFound
		}
		return fmt.Errorf("insert song: %w", err)
	}

	if err := linkSongTx(ctx, tx,
		SongKey{Name: song.Name, AuthorName: song.AuthorName, PlaylistName: song.PlaylistName},
		PlaylistKey{Name: song.PlaylistName, AuthorName: song.AuthorName},
	); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit song create: %w", err)
	}
	tx = nil

	return nil
}

// UpdateSong applies the non-nil fields of upd to the row named by key.
func (s *Store) UpdateSong(ctx context.Context, key SongKey, upd SongUpdate) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE songs
		SET name = COALESCE($1, name),
		    picture_url = COALESCE($2, picture_url),
		    song_url = COALESCE($3, song_url),
		    genre = COALESCE($4, genre),
		    album = COALESCE($5, album),
		    artist = COALESCE($6, artist),
		    description = COALESCE($7, description),
		    rating = COALESCE($8, rating)
		WHERE name = $9 AND author_name = $10 AND playlist_name = $11
	`, upd.Name, upd.PictureURL, upd.SongURL, upd.Genre,
		upd.Album, upd.Artist, upd.Description, upd.Rating,
		key.Name, key.AuthorName, key.PlaylistName)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSongExists
		}
		return fmt.Errorf("update song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// DeleteSong removes the row named by key. Membership links cascade.
func (s *Store) DeleteSong(ctx context.Context, key SongKey) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM songs
		WHERE name = $1 AND author_name = $2 AND playlist_name = $3
	`, key.Name, key.AuthorName, key.PlaylistName)
	if err != nil {
		return fmt.Errorf("delete song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrSongNotFound
	}
	return nil
}

// SongByKey returns a single song by its full composite key.
func (s *Store) SongByKey(ctx context.Context, key SongKey) (Song, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+songColumns+`
		FROM songs
		WHERE name = $1 AND author_name = $2 AND playlist_name = $3
	`, key.Name, key.AuthorName, key.PlaylistName)

	song, err := scanSong(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Song{}, ErrSongNotFound
	}
	if err != nil {
		return Song{}, fmt.Errorf("get song: %w", err)
	}
	return song, nil
}

// SongsByPlaylist returns every song whose membership includes the playlist,
// in playlist position order.
func (s *Store) SongsByPlaylist(ctx context.Context, key PlaylistKey) ([]Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.name, s.author_name, s.playlist_name, s.picture_url, s.song_url, s.genre, s.album, s.artist, s.description, s.rating, s.created_at
		FROM playlist_songs ps
		JOIN songs s ON s.name = ps.song_name AND s.author_name = ps.song_author AND s.playlist_name = ps.song_playlist
		WHERE ps.playlist_name = $1 AND ps.playlist_author = $2
		ORDER BY ps.position ASC, s.created_at ASC
	`, key.Name, key.AuthorName)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	return collectSongs(rows)
}

// RecentSongs returns the newest songs system-wide, newest first, capped at
// the feed limit.
func (s *Store) RecentSongs(ctx context.Context) ([]Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+songColumns+`
		FROM songs
		ORDER BY created_at DESC
		LIMIT $1
	`, recentSongsLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent songs: %w", err)
	}
	defer rows.Close()

	return collectSongs(rows)
}

// SongsByName returns songs whose name contains the given text.
func (s *Store) SongsByName(ctx context.Context, name string) ([]Song, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+songColumns+`
		FROM songs
		WHERE name ILIKE $1
		ORDER BY name ASC
	`, "%"+name+"%")
	if err != nil {
		return nil, fmt.Errorf("search songs: %w", err)
	}
	defer rows.Close()

	return collectSongs(rows)
}

// LinkSong adds an existing song to the membership of the target playlist.
// Missing rows fail closed on the membership foreign keys.
func (s *Store) LinkSong(ctx context.Context, song SongKey, target PlaylistKey) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if err := linkSongTx(ctx, tx, song, target); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit song link: %w", err)
	}
	tx = nil

	return nil
}

func linkSongTx(ctx context.Context, tx *sql.Tx, song SongKey, target PlaylistKey) error {
	var maxPos sql.NullInt32
	if err := tx.QueryRowContext(ctx, `
		SELECT MAX(position)
		FROM playlist_songs
		WHERE playlist_name = $1 AND playlist_author = $2
	`, target.Name, target.AuthorName).Scan(&maxPos); err != nil {
		return fmt.Errorf("next playlist position: %w", err)
	}
	position := 0
	if maxPos.Valid {
		position = int(maxPos.Int32) + 1
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO playlist_songs (playlist_name, playlist_author, song_name, song_author, song_playlist, position)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, target.Name, target.AuthorName, song.Name, song.AuthorName, song.PlaylistName, position); err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyLinked
		}
		switch foreignKeyConstraint(err) {
		case "playlist_songs_playlist_fk":
			return ErrPlaylistNotFound
		case "playlist_songs_song_fk":
			return ErrSongNotFound
		}
		return fmt.Errorf("insert playlist membership: %w", err)
	}
	return nil
}

func collectSongs(rows *sql.Rows) ([]Song, error) {
	songs := make([]Song, 0)
	for rows.Next() {
		song, err := scanSong(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

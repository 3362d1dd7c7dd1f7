package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tunecrate/internal/identity"
	"tunecrate/internal/store"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash BYTEA NOT NULL,
		profile_image_url TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS playlists (
		name TEXT NOT NULL,
		author_name TEXT NOT NULL,
		genre TEXT NOT NULL DEFAULT '',
		picture_url TEXT NOT NULL DEFAULT '',
		tags TEXT[] NOT NULL DEFAULT '{}',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (name, author_name),
		CONSTRAINT playlists_author_fk FOREIGN KEY (author_name)
			REFERENCES profiles (username)
	)`,
	`CREATE TABLE IF NOT EXISTS songs (
		name TEXT NOT NULL,
		author_name TEXT NOT NULL,
		playlist_name TEXT NOT NULL,
		picture_url TEXT NOT NULL,
		song_url TEXT NOT NULL DEFAULT '',
		genre TEXT NOT NULL DEFAULT '',
		album TEXT NOT NULL DEFAULT '',
		artist TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		rating INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (name, author_name, playlist_name),
		CONSTRAINT songs_playlist_fk FOREIGN KEY (playlist_name, author_name)
			REFERENCES playlists (name, author_name)
	)`,
	`CREATE TABLE IF NOT EXISTS playlist_songs (
		playlist_name TEXT NOT NULL,
		playlist_author TEXT NOT NULL,
		song_name TEXT NOT NULL,
		song_author TEXT NOT NULL,
		song_playlist TEXT NOT NULL,
		position INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (playlist_name, playlist_author, song_name, song_author, song_playlist),
		CONSTRAINT playlist_songs_playlist_fk FOREIGN KEY (playlist_name, playlist_author)
			REFERENCES playlists (name, author_name) ON DELETE CASCADE,
		CONSTRAINT playlist_songs_song_fk FOREIGN KEY (song_name, song_author, song_playlist)
			REFERENCES songs (name, author_name, playlist_name) ON DELETE CASCADE ON UPDATE CASCADE
	)`,
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func bootstrapDemoData(ctx context.Context, directory *identity.Directory, dataStore *store.Store) error {
	const username = "demo"

	if err := directory.Signup(ctx, username, "demo123", ""); err != nil {
		if errors.Is(err, identity.ErrProfileExists) {
			return nil
		}
		return fmt.Errorf("bootstrap demo profile: %w", err)
	}

	playlist := store.Playlist{
		Name:       "Late Night Tapes",
		AuthorName: username,
		Genre:      "Downtempo",
		Tags:       []string{"chill", "night"},
	}
	if err := dataStore.CreatePlaylist(ctx, playlist); err != nil && !errors.Is(err, store.ErrPlaylistExists) {
		return fmt.Errorf("bootstrap demo playlist: %w", err)
	}

	demoSongs := []store.Song{
		{
			Name:       "Teardrop",
			Artist:     "Massive Attack",
			Album:      "Mezzanine",
			Genre:      "Trip Hop",
			Rating:     5,
			PictureURL: "https://images.example.com/covers/mezzanine.jpg",
			SongURL:    "https://audio.example.com/teardrop.mp3",
		},
		{
			Name:       "Roygbiv",
			Artist:     "Boards of Canada",
			Album:      "Music Has the Right to Children",
			Genre:      "Electronic",
			Rating:     5,
			PictureURL: "https://images.example.com/covers/mhtrtc.jpg",
			SongURL:    "https://audio.example.com/roygbiv.mp3",
		},
		{
			Name:       "Kerala",
			Artist:     "Bonobo",
			Album:      "Migration",
			Genre:      "Downtempo",
			Rating:     4,
			PictureURL: "https://images.example.com/covers/migration.jpg",
			SongURL:    "https://audio.example.com/kerala.mp3",
		},
	}
	for _, song := range demoSongs {
		song.AuthorName = username
		song.PlaylistName = playlist.Name
		if err := dataStore.CreateSong(ctx, song); err != nil && !errors.Is(err, store.ErrSongExists) {
			return fmt.Errorf("bootstrap demo song %q: %w", song.Name, err)
		}
	}

	return nil
}

// Package searchagg fans a single text query out to the song and playlist
// tables and the profile directory, and normalizes the three record shapes
// into one ordered, type-tagged result sequence.
package searchagg

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"tunecrate/internal/identity"
	"tunecrate/internal/store"
)

// ErrSourceFailed reports that at least one fan-out source failed. The whole
// aggregation aborts so callers can tell "no matches" from "source down".
var ErrSourceFailed = errors.New("search source failed")

// SongSearcher matches songs by name substring.
type SongSearcher interface {
	SongsByName(ctx context.Context, name string) ([]store.Song, error)
}

// PlaylistSearcher matches playlists by name substring.
type PlaylistSearcher interface {
	PlaylistsByName(ctx context.Context, name string) ([]store.Playlist, error)
}

// CardValues is the flat record consumed by result cards. For profile items
// PlaylistName carries the username; the slot doubles as the display-name
// field so all three kinds share one card shape.
type CardValues struct {
	AuthorName   string `json:"authorName"`
	Genre        string `json:"genre"`
	PictureURL   string `json:"pictureUrl"`
	PlaylistName string `json:"playlistName"`
	SongName     string `json:"songName,omitempty"`
}

// FilterItem is one normalized search result.
type FilterItem struct {
	Type string     `json:"type"` // "song", "playlist", or "profile"
	Data CardValues `json:"data"`
	Href string     `json:"href"`
}

// Service aggregates search results across songs, playlists, and profiles.
type Service struct {
	songs     SongSearcher
	playlists PlaylistSearcher
	profiles  identity.Resolver
}

// New wires an aggregator over the three sources.
func New(songs SongSearcher, playlists PlaylistSearcher, profiles identity.Resolver) *Service {
	return &Service{songs: songs, playlists: playlists, profiles: profiles}
}

// FilteredItems runs the three lookups concurrently and concatenates the
// normalized results in fixed order: songs, then playlists, then profiles.
// No ranking and no dedup; the order is part of the contract. An empty query
// yields an empty slice, never an error. routeCtx is folded into song hrefs
// so the caller's UI can open a detail overlay without a full navigation.
func (s *Service) FilteredItems(ctx context.Context, name string, routeCtx url.Values) ([]FilterItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return []FilterItem{}, nil
	}

	var (
		songs     []store.Song
		playlists []store.Playlist
		profiles  []identity.Profile
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if songs, err = s.songs.SongsByName(ctx, name); err != nil {
			return fmt.Errorf("songs: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if playlists, err = s.playlists.PlaylistsByName(ctx, name); err != nil {
			return fmt.Errorf("playlists: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if profiles, err = s.profiles.SearchUsernames(ctx, name); err != nil {
			return fmt.Errorf("profiles: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, errors.Join(ErrSourceFailed, err)
	}

	items := make([]FilterItem, 0, len(songs)+len(playlists)+len(profiles))
	for _, song := range songs {
		items = append(items, songItem(song, routeCtx))
	}
	for _, playlist := range playlists {
		items = append(items, playlistItem(playlist))
	}
	for _, profile := range profiles {
		items = append(items, profileItem(profile))
	}
	return items, nil
}

func songItem(song store.Song, routeCtx url.Values) FilterItem {
	q := url.Values{}
	for key, values := range routeCtx {
		q[key] = append([]string(nil), values...)
	}
	q.Set("song", song.Name)
	q.Set("playlist", song.PlaylistName)
	q.Set("profileName", song.AuthorName)

	return FilterItem{
		Type: "song",
		Data: CardValues{
			AuthorName:   song.AuthorName,
			Genre:        song.Genre,
			PictureURL:   song.PictureURL,
			PlaylistName: song.PlaylistName,
			SongName:     song.Name,
		},
		Href: "?" + q.Encode(),
	}
}

func playlistItem(playlist store.Playlist) FilterItem {
	return FilterItem{
		Type: "playlist",
		Data: CardValues{
			AuthorName:   playlist.AuthorName,
			Genre:        playlist.Genre,
			PictureURL:   playlist.PictureURL,
			PlaylistName: playlist.Name,
		},
		Href: "/" + playlist.AuthorName + "/" + playlist.Name,
	}
}

func profileItem(profile identity.Profile) FilterItem {
	return FilterItem{
		Type: "profile",
		Data: CardValues{
			AuthorName:   profile.Username,
			Genre:        "",
			PictureURL:   profile.ProfileImageURL,
			PlaylistName: profile.Username,
		},
		Href: "/" + profile.Username,
	}
}

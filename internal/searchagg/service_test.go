package searchagg

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunecrate/internal/identity"
	"tunecrate/internal/store"
)

type stubSongs struct {
	songs []store.Song
	err   error
	calls int
}

func (s *stubSongs) SongsByName(ctx context.Context, name string) ([]store.Song, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	matched := make([]store.Song, 0)
	for _, song := range s.songs {
		if strings.Contains(strings.ToLower(song.Name), strings.ToLower(name)) {
			matched = append(matched, song)
		}
	}
	return matched, nil
}

type stubPlaylists struct {
	playlists []store.Playlist
	err       error
	calls     int
}

func (s *stubPlaylists) PlaylistsByName(ctx context.Context, name string) ([]store.Playlist, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	matched := make([]store.Playlist, 0)
	for _, playlist := range s.playlists {
		if strings.Contains(strings.ToLower(playlist.Name), strings.ToLower(name)) {
			matched = append(matched, playlist)
		}
	}
	return matched, nil
}

type stubProfiles struct {
	profiles []identity.Profile
	err      error
	calls    int
}

func (s *stubProfiles) LookupByUsername(ctx context.Context, username string) (identity.Profile, error) {
	for _, profile := range s.profiles {
		if profile.Username == username {
			return profile, nil
		}
	}
	return identity.Profile{}, identity.ErrProfileNotFound
}

func (s *stubProfiles) SearchUsernames(ctx context.Context, text string) ([]identity.Profile, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	matched := make([]identity.Profile, 0)
	for _, profile := range s.profiles {
		if strings.Contains(profile.Username, text) {
			matched = append(matched, profile)
		}
	}
	return matched, nil
}

func seededService() (*Service, *stubSongs, *stubPlaylists, *stubProfiles) {
	songs := &stubSongs{songs: []store.Song{{
		Name:         "Lo-fi Beat",
		AuthorName:   "alice",
		PlaylistName: "Chill",
		Genre:        "Lo-fi",
		PictureURL:   "https://images.example.com/lofi.jpg",
	}}}
	playlists := &stubPlaylists{playlists: []store.Playlist{{
		Name:       "Chill",
		AuthorName: "alice",
		Genre:      "Lo-fi",
		PictureURL: "https://images.example.com/chill.png",
	}}}
	profiles := &stubProfiles{profiles: []identity.Profile{{
		Username:        "alice",
		ProfileImageURL: "/avatars/default.png",
	}}}
	return New(songs, playlists, profiles), songs, playlists, profiles
}

func TestFilteredItemsProfileOnlyMatch(t *testing.T) {
	svc, _, _, _ := seededService()

	items, err := svc.FilteredItems(context.Background(), "ali", url.Values{})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "profile", items[0].Type)
	assert.Equal(t, "/alice", items[0].Href)
	assert.Equal(t, "alice", items[0].Data.AuthorName)
	assert.Equal(t, "alice", items[0].Data.PlaylistName)
	assert.Empty(t, items[0].Data.Genre)
}

func TestFilteredItemsFixedOrder(t *testing.T) {
	svc := New(
		&stubSongs{songs: []store.Song{{Name: "x song", AuthorName: "alice", PlaylistName: "Chill"}}},
		&stubPlaylists{playlists: []store.Playlist{{Name: "x list", AuthorName: "alice"}}},
		&stubProfiles{profiles: []identity.Profile{{Username: "x-user"}}},
	)

	items, err := svc.FilteredItems(context.Background(), "x", url.Values{})
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "song", items[0].Type)
	assert.Equal(t, "playlist", items[1].Type)
	assert.Equal(t, "profile", items[2].Type)
}

func TestFilteredItemsEmptyQuery(t *testing.T) {
	svc, songs, playlists, profiles := seededService()

	items, err := svc.FilteredItems(context.Background(), "   ", url.Values{})
	require.NoError(t, err)

	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Zero(t, songs.calls)
	assert.Zero(t, playlists.calls)
	assert.Zero(t, profiles.calls)
}

func TestFilteredItemsNoMatches(t *testing.T) {
	svc, _, _, _ := seededService()

	items, err := svc.FilteredItems(context.Background(), "zzz", url.Values{})
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestFilteredItemsSourceFailureAborts(t *testing.T) {
	songs := &stubSongs{}
	playlists := &stubPlaylists{err: errors.New("connection refused")}
	profiles := &stubProfiles{}
	svc := New(songs, playlists, profiles)

	items, err := svc.FilteredItems(context.Background(), "anything", url.Values{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceFailed)
	assert.Contains(t, err.Error(), "playlists:")
	assert.Nil(t, items)
}

func TestSongHrefMergesRouteContext(t *testing.T) {
	svc, _, _, _ := seededService()

	routeCtx := url.Values{}
	routeCtx.Set("tab", "library")

	items, err := svc.FilteredItems(context.Background(), "lo-fi", routeCtx)
	require.NoError(t, err)

	require.Len(t, items, 1)
	require.Equal(t, "song", items[0].Type)

	require.True(t, strings.HasPrefix(items[0].Href, "?"))
	q, err := url.ParseQuery(strings.TrimPrefix(items[0].Href, "?"))
	require.NoError(t, err)
	assert.Equal(t, "library", q.Get("tab"))
	assert.Equal(t, "Lo-fi Beat", q.Get("song"))
	assert.Equal(t, "Chill", q.Get("playlist"))
	assert.Equal(t, "alice", q.Get("profileName"))

	// caller's values are copied, never mutated
	assert.Equal(t, []string{"library"}, routeCtx["tab"])
	assert.Empty(t, routeCtx.Get("song"))
}

func TestPlaylistHref(t *testing.T) {
	svc, _, _, _ := seededService()

	items, err := svc.FilteredItems(context.Background(), "chill", url.Values{})
	require.NoError(t, err)

	require.Len(t, items, 1)
	require.Equal(t, "playlist", items[0].Type)
	assert.Equal(t, "/alice/Chill", items[0].Href)
	assert.Equal(t, "Chill", items[0].Data.PlaylistName)
	assert.Empty(t, items[0].Data.SongName)
}

package playlists

import (
	"context"
	"fmt"
	"strings"

	"tunecrate/internal/imagecheck"
	"tunecrate/internal/store"
)

// Store captures the persistence needs for playlist workflows.
type Store interface {
	CreatePlaylist(ctx context.Context, playlist store.Playlist) error
	PlaylistByKey(ctx context.Context, key store.PlaylistKey) (store.Playlist, error)
	PlaylistsByAuthor(ctx context.Context, authorName string) ([]store.Playlist, error)
	LinkSong(ctx context.Context, song store.SongKey, target store.PlaylistKey) error
}

// CreateInput carries the caller-supplied fields of a new playlist.
type CreateInput struct {
	Name       string   `json:"name"`
	Genre      string   `json:"genre"`
	PictureURL string   `json:"pictureUrl"`
	Tags       []string `json:"tags"`
}

// Service coordinates playlist-related operations.
type Service interface {
	Create(ctx context.Context, input CreateInput, acting string) error
	Get(ctx context.Context, key store.PlaylistKey) (store.Playlist, error)
	ByAuthor(ctx context.Context, authorName string) ([]store.Playlist, error)
	// AddSong links an existing song (any author's) into a playlist the
	// acting user owns. The song row itself is untouched.
	AddSong(ctx context.Context, song store.SongKey, playlistName, acting string) error
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, input CreateInput, acting string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if acting == "" {
		return store.ErrUnauthorized
	}
	if strings.TrimSpace(input.Name) == "" {
		return fmt.Errorf("%w: playlist name is required", store.ErrInvalidInput)
	}
	if input.PictureURL != "" && !imagecheck.IsImage(input.PictureURL) {
		return fmt.Errorf("%w: please make sure your URL is a picture URL", store.ErrInvalidInput)
	}

	return s.store.CreatePlaylist(ctx, store.Playlist{
		Name:       input.Name,
		AuthorName: acting,
		Genre:      input.Genre,
		PictureURL: input.PictureURL,
		Tags:       input.Tags,
	})
}

func (s *service) Get(ctx context.Context, key store.PlaylistKey) (store.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return store.Playlist{}, err
	}
	return s.store.PlaylistByKey(ctx, key)
}

func (s *service) ByAuthor(ctx context.Context, authorName string) ([]store.Playlist, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.PlaylistsByAuthor(ctx, authorName)
}

func (s *service) AddSong(ctx context.Context, song store.SongKey, playlistName, acting string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if acting == "" {
		return store.ErrUnauthorized
	}
	if song.Name == "" || song.AuthorName == "" || song.PlaylistName == "" || playlistName == "" {
		return fmt.Errorf("%w: full song key and target playlist are required", store.ErrInvalidInput)
	}

	// The target is always keyed on the acting user, so the link can never
	// land in someone else's playlist no matter what the request claims.
	return s.store.LinkSong(ctx, song, store.PlaylistKey{Name: playlistName, AuthorName: acting})
}

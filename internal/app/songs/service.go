package songs

import (
	"context"
	"fmt"
	"strings"

	"tunecrate/internal/imagecheck"
	"tunecrate/internal/store"
)

// Store captures the persistence needs for song workflows.
type Store interface {
	CreateSong(ctx context.Context, song store.Song) error
	UpdateSong(ctx context.Context, key store.SongKey, upd store.SongUpdate) error
	DeleteSong(ctx context.Context, key store.SongKey) error
	SongByKey(ctx context.Context, key store.SongKey) (store.Song, error)
	SongsByPlaylist(ctx context.Context, key store.PlaylistKey) ([]store.Song, error)
	RecentSongs(ctx context.Context) ([]store.Song, error)
}

// CreateInput carries the caller-supplied fields of a new song. The author
// is never part of the input; it is anchored to the acting identity.
type CreateInput struct {
	Name         string `json:"name"`
	PictureURL   string `json:"pictureUrl"`
	SongURL      string `json:"songUrl"`
	Genre        string `json:"genre"`
	Album        string `json:"albumName"`
	Artist       string `json:"artistName"`
	Description  string `json:"description"`
	Rating       int    `json:"rating"`
	PlaylistName string `json:"playlistName"`
}

// UpdateInput carries a partial song update. PlaylistName and AuthorName
// cannot be expressed here; they identify the row being changed instead.
type UpdateInput struct {
	Name        *string `json:"name"`
	PictureURL  *string `json:"pictureUrl"`
	SongURL     *string `json:"songUrl"`
	Genre       *string `json:"genre"`
	Album       *string `json:"albumName"`
	Artist      *string `json:"artistName"`
	Description *string `json:"description"`
	Rating      *int    `json:"rating"`
}

// Service coordinates song mutations and reads.
type Service interface {
	Create(ctx context.Context, input CreateInput, acting string) error
	Update(ctx context.Context, upd UpdateInput, currentSongName, currentPlaylistName, acting string) error
	Delete(ctx context.Context, name, playlistName, acting string) error
	Get(ctx context.Context, key store.SongKey) (store.Song, error)
	ByPlaylist(ctx context.Context, authorName, playlistName string) ([]store.Song, error)
	Recent(ctx context.Context) ([]store.Song, error)
}

type service struct {
	store Store
}

// New constructs a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func errNotPicture() error {
	return fmt.Errorf("%w: please make sure your URL is a picture URL", store.ErrInvalidInput)
}

func (s *service) Create(ctx context.Context, input CreateInput, acting string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if acting == "" {
		return store.ErrUnauthorized
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.PlaylistName) == "" {
		return fmt.Errorf("%w: song name and playlist name are required", store.ErrInvalidInput)
	}
	if !imagecheck.IsImage(input.PictureURL) {
		return errNotPicture()
	}

	return s.store.CreateSong(ctx, store.Song{
		Name:         input.Name,
		PictureURL:   input.PictureURL,
		SongURL:      input.SongURL,
		Genre:        input.Genre,
		Album:        input.Album,
		Artist:       input.Artist,
		Description:  input.Description,
		Rating:       input.Rating,
		AuthorName:   acting,
		PlaylistName: input.PlaylistName,
	})
}

func (s *service) Update(ctx context.Context, upd UpdateInput, currentSongName, currentPlaylistName, acting string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if acting == "" {
		return store.ErrUnauthorized
	}
	if currentSongName == "" || currentPlaylistName == "" {
		return fmt.Errorf("%w: current song and playlist names are required", store.ErrInvalidInput)
	}
	if upd.PictureURL != nil && !imagecheck.IsImage(*upd.PictureURL) {
		return errNotPicture()
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return fmt.Errorf("%w: song name cannot be empty", store.ErrInvalidInput)
	}

	key := store.SongKey{
		Name:         currentSongName,
		AuthorName:   acting,
		PlaylistName: currentPlaylistName,
	}
	return s.store.UpdateSong(ctx, key, store.SongUpdate{
		Name:        upd.Name,
		PictureURL:  upd.PictureURL,
		SongURL:     upd.SongURL,
		Genre:       upd.Genre,
		Album:       upd.Album,
		Artist:      upd.Artist,
		Description: upd.Description,
		Rating:      upd.Rating,
	})
}

func (s *service) Delete(ctx context.Context, name, playlistName, acting string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if acting == "" {
		return store.ErrUnauthorized
	}
	if name == "" || playlistName == "" {
		return fmt.Errorf("%w: song name and playlist name are required", store.ErrInvalidInput)
	}

	return s.store.DeleteSong(ctx, store.SongKey{
		Name:         name,
		AuthorName:   acting,
		PlaylistName: playlistName,
	})
}

func (s *service) Get(ctx context.Context, key store.SongKey) (store.Song, error) {
	if err := ctx.Err(); err != nil {
		return store.Song{}, err
	}
	return s.store.SongByKey(ctx, key)
}

func (s *service) ByPlaylist(ctx context.Context, authorName, playlistName string) ([]store.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.SongsByPlaylist(ctx, store.PlaylistKey{Name: playlistName, AuthorName: authorName})
}

func (s *service) Recent(ctx context.Context) ([]store.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.RecentSongs(ctx)
}
